// Package character implements the character orchestrator
package character

import (
	"context"
	"log/slog"

	"github.com/onekill0503/dnd-bot/internal/dice"
	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/pkg/clock"
	"github.com/onekill0503/dnd-bot/internal/pkg/idgen"
	"github.com/onekill0503/dnd-bot/internal/rules"
)

const (
	startingLevel = 1
	// ProficiencyBonus is the flat bonus at character level 1
	ProficiencyBonus = 2
)

// Currency split of the starting purse, in percent
const (
	goldPercent     = 70
	silverPercent   = 20
	copperPercent   = 10
	electrumPercent = 2
	platinumPercent = 1
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	Roller      *dice.Roller
	IDGenerator idgen.Generator
	Rules       *rules.Book
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the character Service
type Orchestrator struct {
	roller *dice.Roller
	idGen  idgen.Generator
	rules  *rules.Book
	clock  clock.Clock
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	book := cfg.Rules
	if book == nil {
		book = rules.Default()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Orchestrator{
		roller: cfg.Roller,
		idGen:  cfg.IDGenerator,
		rules:  book,
		clock:  clk,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// CreateCharacter derives a level 1 character sheet. Unknown classes,
// races and backgrounds fall back to defaults instead of failing.
func (o *Orchestrator) CreateCharacter(_ context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("userID", input.UserID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateRequired("class", input.Class, vb)
	errors.ValidateRequired("race", input.Race, vb)
	errors.ValidateRequired("background", input.Background, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	class, knownClass := o.rules.Class(input.Class)
	background, knownBackground := o.rules.Background(input.Background)
	race, _ := o.rules.Race(input.Race)

	rolled, err := o.roller.GenerateAbilityScores()
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll ability scores")
	}
	stats := game.AbilityScoresFromRolls(rolled)

	alignment, err := o.pickAlignment()
	if err != nil {
		return nil, err
	}

	dexMod := dice.AbilityModifier(stats.Dexterity)
	hp := max(1, class.HitPoints+dice.AbilityModifier(stats.Constitution))

	pc := &game.PlayerCharacter{
		UserID:           input.UserID,
		Username:         input.Username,
		Name:             input.Name,
		Class:            input.Class,
		Race:             input.Race,
		Background:       input.Background,
		Description:      input.Description,
		Stats:            stats,
		HitPoints:        hp,
		MaxHitPoints:     hp,
		ArmorClass:       max(10, class.ArmorClass+min(dexMod, class.MaxDexBonus)),
		Alignment:        alignment,
		Status:           game.CharacterAlive,
		Skills:           deriveSkills(stats, class, background),
		Currency:         startingCurrency(class.Gold + background.GoldBonus),
		Inventory:        o.startingInventory(class, background),
		Level:            startingLevel,
		ProficiencyBonus: ProficiencyBonus,
		Initiative:       dexMod,
		Speed:            race.Speed,
		Languages:        mergeUnique(race.Languages, background.Languages),
		Features:         mergeUnique(class.Features, race.Traits),
		Proficiencies:    mergeUnique(class.Proficiencies),
		CreatedAt:        o.clock.Now(),
	}

	if class.Caster.IsCaster() {
		slots := class.Caster.FirstLevelSlots()
		pc.SpellSlots = map[int]game.SpellSlot{
			1: game.SpellSlot{Total: slots}.Normalize(),
		}
		pc.Cantrips = mergeUnique(class.Cantrips)
		if slots > 0 {
			pc.Spells = mergeUnique(class.Spells)
		}
	}

	slog.Info("Created character",
		"user_id", pc.UserID,
		"name", pc.Name,
		"class", pc.Class,
		"known_class", knownClass,
		"known_background", knownBackground,
		"hit_points", pc.HitPoints,
		"armor_class", pc.ArmorClass)

	return &CreateCharacterOutput{
		Character:       pc,
		KnownClass:      knownClass,
		KnownBackground: knownBackground,
	}, nil
}

func (o *Orchestrator) pickAlignment() (string, error) {
	alignments := o.rules.Alignments()
	n, err := o.roller.RollDice(1, len(alignments))
	if err != nil {
		return "", errors.Wrap(err, "failed to roll alignment")
	}
	return alignments[n-1], nil
}

func (o *Orchestrator) startingInventory(class rules.Class, background rules.Background) []game.Item {
	names := make([]string, 0, len(class.Equipment)+len(background.Equipment))
	names = append(names, class.Equipment...)
	names = append(names, background.Equipment...)

	items := make([]game.Item, 0, len(names))
	for _, name := range names {
		items = append(items, game.Item{
			ID:       o.idGen.Generate(),
			Name:     name,
			Quantity: 1,
		})
	}
	return items
}

// deriveSkills computes all skills from ability modifiers. A skill is
// proficient only when both the class and the background grant it.
func deriveSkills(stats game.AbilityScores, class rules.Class, background rules.Background) map[game.Skill]game.SkillScore {
	skills := make(map[game.Skill]game.SkillScore, len(game.Skills))
	for _, skill := range game.Skills {
		score := game.SkillScore{
			Modifier: dice.AbilityModifier(stats.Get(game.SkillAbility[skill])),
		}
		if class.HasSkill(skill) && background.HasSkill(skill) {
			score.Proficient = true
			score.Modifier += ProficiencyBonus
		}
		skills[skill] = score
	}
	return skills
}

func startingCurrency(total int) game.Currency {
	total = max(0, total)
	return game.Currency{
		Gold:     total * goldPercent / 100,
		Silver:   total * silverPercent / 100,
		Copper:   total * copperPercent / 100,
		Electrum: total * electrumPercent / 100,
		Platinum: total * platinumPercent / 100,
	}
}

func mergeUnique(lists ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, v := range list {
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
