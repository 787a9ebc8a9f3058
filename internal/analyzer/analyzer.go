// Package analyzer maps free-text player actions to the dice roll they call
// for. Matching is keyword based and deliberately forgiving: text that matches
// nothing is narrative and needs no roll.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/onekill0503/dnd-bot/internal/dice"
	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
)

// Category is the kind of roll an action calls for
type Category string

// Categories in precedence order
const (
	CategoryNone        Category = "none"
	CategoryAttack      Category = "attack"
	CategorySkill       Category = "skill"
	CategorySavingThrow Category = "saving_throw"
	CategoryDamage      Category = "damage"
	CategoryInitiative  Category = "initiative"
)

// ActionAnalysis describes the roll required by an action
type ActionAnalysis struct {
	RequiresRoll bool
	Category     Category
	AttackRoll   bool
	SkillCheck   game.Skill
	SavingThrow  game.Ability
	Ability      game.Ability
	Proficient   bool
	Dice         dice.Notation
	Modifier     int
	// DifficultyClass is nil when any result succeeds
	DifficultyClass *int
}

// Label names the roll for summaries, e.g. "Perception check"
func (a ActionAnalysis) Label() string {
	switch a.Category {
	case CategoryAttack:
		return "Attack"
	case CategorySkill:
		return fmt.Sprintf("%s check", a.SkillCheck)
	case CategorySavingThrow:
		return fmt.Sprintf("%s saving throw", capitalize(string(a.SavingThrow)))
	case CategoryDamage:
		return "Damage"
	case CategoryInitiative:
		return "Initiative"
	default:
		return ""
	}
}

// Config holds the dependencies for the analyzer
type Config struct {
	Roller *dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Analyzer classifies actions and rolls for them
type Analyzer struct {
	roller *dice.Roller
}

// New creates an analyzer
func New(cfg *Config) (*Analyzer, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Analyzer{roller: cfg.Roller}, nil
}

// Analyze classifies an action. The first matching category wins:
// attack, then skills, then saving throws, then damage, then initiative.
// A nil character uses neutral modifiers.
func (a *Analyzer) Analyze(actionText string, pc *game.PlayerCharacter) ActionAnalysis {
	text := strings.ToLower(strings.TrimSpace(actionText))
	if text == "" {
		return ActionAnalysis{Category: CategoryNone}
	}

	if attackKeywords.matches(text) {
		ability := game.AbilityStrength
		if rangedKeywords.matches(text) {
			ability = game.AbilityDexterity
		}
		return ActionAnalysis{
			RequiresRoll:    true,
			Category:        CategoryAttack,
			AttackRoll:      true,
			Ability:         ability,
			Dice:            d20(),
			Modifier:        abilityModifier(pc, ability),
			DifficultyClass: intPtr(AttackDC),
		}
	}

	for _, rule := range skillRules {
		if !rule.keywords.matches(text) {
			continue
		}
		modifier, proficient := skillModifier(pc, rule.skill)
		return ActionAnalysis{
			RequiresRoll:    true,
			Category:        CategorySkill,
			SkillCheck:      rule.skill,
			Ability:         game.SkillAbility[rule.skill],
			Proficient:      proficient,
			Dice:            d20(),
			Modifier:        modifier,
			DifficultyClass: intPtr(rule.dc),
		}
	}

	if savingThrowKeywords.matches(text) {
		ability := game.AbilityDexterity
		for _, save := range saveAbilityKeywords {
			if save.keywords.matches(text) {
				ability = save.ability
				break
			}
		}
		return ActionAnalysis{
			RequiresRoll:    true,
			Category:        CategorySavingThrow,
			SavingThrow:     ability,
			Ability:         ability,
			Dice:            d20(),
			Modifier:        abilityModifier(pc, ability),
			DifficultyClass: intPtr(SavingThrowDC),
		}
	}

	if damageKeywords.matches(text) {
		return ActionAnalysis{
			RequiresRoll: true,
			Category:     CategoryDamage,
			Ability:      game.AbilityStrength,
			Dice:         dice.Notation{Count: 1, Sides: 8},
			Modifier:     abilityModifier(pc, game.AbilityStrength),
		}
	}

	if initiativeKeywords.matches(text) {
		return ActionAnalysis{
			RequiresRoll: true,
			Category:     CategoryInitiative,
			Ability:      game.AbilityDexterity,
			Dice:         d20(),
			Modifier:     abilityModifier(pc, game.AbilityDexterity),
		}
	}

	return ActionAnalysis{Category: CategoryNone}
}

// GenerateAutomaticRoll analyzes the action and rolls for it. It returns nil
// when the action needs no roll. Criticals are read from individual d20 faces.
func (a *Analyzer) GenerateAutomaticRoll(actionText string, pc *game.PlayerCharacter) (*game.AutomaticDiceRoll, error) {
	analysis := a.Analyze(actionText, pc)
	if !analysis.RequiresRoll {
		return nil, nil
	}

	notation := analysis.Dice
	notation.Modifier = analysis.Modifier

	roll, err := a.roller.RollNotation(notation.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", analysis.Label())
	}

	result := &game.AutomaticDiceRoll{
		Action:          analysis.Label(),
		DiceType:        fmt.Sprintf("d%d", analysis.Dice.Sides),
		Modifier:        analysis.Modifier,
		DifficultyClass: analysis.DifficultyClass,
		Success:         analysis.DifficultyClass == nil || roll.Total >= *analysis.DifficultyClass,
		Roll:            *roll,
	}

	if analysis.Dice.Sides == 20 {
		for _, face := range roll.Rolls {
			if face == 20 {
				result.CriticalSuccess = true
			}
			if face == 1 {
				result.CriticalFailure = true
			}
		}
	}

	return result, nil
}

func d20() dice.Notation {
	return dice.Notation{Count: 1, Sides: 20}
}

func intPtr(v int) *int {
	return &v
}

func abilityModifier(pc *game.PlayerCharacter, ability game.Ability) int {
	if pc == nil {
		return 0
	}
	return dice.AbilityModifier(pc.Stats.Get(ability))
}

// skillModifier prefers the character sheet, which already folds in proficiency
func skillModifier(pc *game.PlayerCharacter, skill game.Skill) (int, bool) {
	if pc == nil {
		return 0, false
	}
	if score, ok := pc.Skills[skill]; ok {
		return score.Modifier, score.Proficient
	}
	return abilityModifier(pc, game.SkillAbility[skill]), false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
