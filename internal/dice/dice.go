// Package dice implements the randomized mechanics: notation parsing, rolls
// with advantage, ability score generation and modifiers.
package dice

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
)

const (
	maxDiceCount = 100
	maxDieSides  = 1000

	// AbilityScoreCount is the number of scores GenerateAbilityScores returns
	AbilityScoreCount = 6
)

var notationRegex = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// Notation is a parsed NdM+K expression
type Notation struct {
	Count    int
	Sides    int
	Modifier int
}

// String renders the canonical form of the notation
func (n Notation) String() string {
	switch {
	case n.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Sides, n.Modifier)
	case n.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", n.Count, n.Sides, n.Modifier)
	default:
		return fmt.Sprintf("%dd%d", n.Count, n.Sides)
	}
}

// ParseNotation parses "NdM", "NdM+K" or "NdM-K". Case and whitespace are ignored.
func ParseNotation(notation string) (*Notation, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(notation), ""))
	matches := notationRegex.FindStringSubmatch(normalized)
	if matches == nil {
		return nil, errors.InvalidDiceNotation(notation)
	}

	count, err := strconv.Atoi(matches[1])
	if err != nil || count <= 0 || count > maxDiceCount {
		return nil, errors.InvalidDiceNotation(notation)
	}
	sides, err := strconv.Atoi(matches[2])
	if err != nil || sides <= 0 || sides > maxDieSides {
		return nil, errors.InvalidDiceNotation(notation)
	}

	modifier := 0
	if matches[3] != "" {
		modifier, err = strconv.Atoi(matches[3])
		if err != nil {
			return nil, errors.InvalidDiceNotation(notation)
		}
	}

	return &Notation{Count: count, Sides: sides, Modifier: modifier}, nil
}

// AbilityModifier returns floor((score-10)/2). Scores below 10 give negative modifiers.
func AbilityModifier(score int) int {
	modifier := (score - 10) / 2
	if score < 10 && (score-10)%2 != 0 {
		modifier--
	}
	return modifier
}

// Config holds the dependencies for a Roller
type Config struct {
	// Roller draws individual dice. Defaults to the toolkit's crypto roller.
	Roller toolkitdice.Roller
}

// Roller rolls dice through an injectable toolkit roller
type Roller struct {
	roller toolkitdice.Roller
}

// NewRoller creates a Roller; a nil config uses the default toolkit roller
func NewRoller(cfg *Config) *Roller {
	var r toolkitdice.Roller = toolkitdice.DefaultRoller
	if cfg != nil && cfg.Roller != nil {
		r = cfg.Roller
	}
	return &Roller{roller: r}
}

func (r *Roller) faces(count, sides int) ([]int, error) {
	if count <= 0 || sides <= 0 {
		return nil, errors.InvalidArgumentf("dice count and sides must be positive: %dd%d", count, sides)
	}

	faces, err := r.roller.RollN(count, sides)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %dd%d", count, sides)
	}
	return faces, nil
}

// RollDice rolls count dice with the given number of sides and returns the sum
func (r *Roller) RollDice(count, sides int) (int, error) {
	faces, err := r.faces(count, sides)
	if err != nil {
		return 0, err
	}
	return sum(faces), nil
}

// RollNotation rolls a notation string. The notation is echoed verbatim on the result.
func (r *Roller) RollNotation(notation string) (*game.DiceRoll, error) {
	parsed, err := ParseNotation(notation)
	if err != nil {
		return nil, err
	}

	faces, err := r.faces(parsed.Count, parsed.Sides)
	if err != nil {
		return nil, err
	}

	return &game.DiceRoll{
		Rolls:    faces,
		Modifier: parsed.Modifier,
		Total:    sum(faces) + parsed.Modifier,
		Notation: notation,
	}, nil
}

// RollAdvantage rolls two d20 and keeps the higher
func (r *Roller) RollAdvantage(modifier int) (*game.DiceRoll, error) {
	return r.rollTwoD20(modifier, "advantage", func(a, b int) int { return max(a, b) })
}

// RollDisadvantage rolls two d20 and keeps the lower
func (r *Roller) RollDisadvantage(modifier int) (*game.DiceRoll, error) {
	return r.rollTwoD20(modifier, "disadvantage", func(a, b int) int { return min(a, b) })
}

func (r *Roller) rollTwoD20(modifier int, label string, keep func(a, b int) int) (*game.DiceRoll, error) {
	faces, err := r.faces(2, 20)
	if err != nil {
		return nil, err
	}

	return &game.DiceRoll{
		Rolls:    faces,
		Modifier: modifier,
		Total:    keep(faces[0], faces[1]) + modifier,
		Notation: fmt.Sprintf("%s (%s)", Notation{Count: 2, Sides: 20, Modifier: modifier}, label),
	}, nil
}

// GenerateAbilityScores rolls six scores using 4d6 drop lowest.
// Callers assign them in game.Abilities order.
func (r *Roller) GenerateAbilityScores() ([AbilityScoreCount]int, error) {
	var scores [AbilityScoreCount]int
	for i := range scores {
		faces, err := r.faces(4, 6)
		if err != nil {
			return scores, errors.Wrapf(err, "failed to roll ability score %d", i+1)
		}
		sort.Ints(faces)
		scores[i] = sum(faces[1:])
	}
	return scores, nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
