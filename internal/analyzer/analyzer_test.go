package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onekill0503/dnd-bot/internal/analyzer"
	"github.com/onekill0503/dnd-bot/internal/dice"
	"github.com/onekill0503/dnd-bot/internal/entities/game"
)

func newAnalyzer(t *testing.T, faces ...int) *analyzer.Analyzer {
	t.Helper()
	a, err := analyzer.New(&analyzer.Config{
		Roller: dice.NewRoller(&dice.Config{Roller: dice.NewScriptedRoller(faces...)}),
	})
	require.NoError(t, err)
	return a
}

func fighter() *game.PlayerCharacter {
	return &game.PlayerCharacter{
		Name: "Brom",
		Stats: game.AbilityScores{
			Strength: 16, Dexterity: 12, Constitution: 14,
			Intelligence: 10, Wisdom: 8, Charisma: 10,
		},
		Skills: map[game.Skill]game.SkillScore{
			game.SkillPerception: {Proficient: false, Modifier: -1},
			game.SkillAthletics:  {Proficient: true, Modifier: 5},
		},
	}
}

func TestAnalyze_AttackWithStrength(t *testing.T) {
	result := newAnalyzer(t).Analyze("I attack the goblin with my sword", fighter())

	assert.True(t, result.RequiresRoll)
	assert.True(t, result.AttackRoll)
	assert.Equal(t, analyzer.CategoryAttack, result.Category)
	assert.Equal(t, game.AbilityStrength, result.Ability)
	assert.Equal(t, 3, result.Modifier)
	require.NotNil(t, result.DifficultyClass)
	assert.Equal(t, 15, *result.DifficultyClass)
}

func TestAnalyze_RangedAttackUsesDexterity(t *testing.T) {
	result := newAnalyzer(t).Analyze("I shoot an arrow at the bandit", fighter())

	assert.True(t, result.AttackRoll)
	assert.Equal(t, game.AbilityDexterity, result.Ability)
	assert.Equal(t, 1, result.Modifier)
}

func TestAnalyze_Skills(t *testing.T) {
	testCases := []struct {
		text     string
		skill    game.Skill
		modifier int
	}{
		{"I look around the room", game.SkillPerception, -1},
		{"I try climbing the wall", game.SkillAthletics, 5},
		{"I sneak past the guards", game.SkillStealth, 1},
		{"I try to persuade the merchant", game.SkillPersuasion, 0},
		{"I search the desk for clues", game.SkillInvestigation, 0},
		{"I pray at the altar", game.SkillReligion, 0},
	}

	a := newAnalyzer(t)
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			result := a.Analyze(tc.text, fighter())
			assert.True(t, result.RequiresRoll)
			assert.False(t, result.AttackRoll)
			assert.Equal(t, analyzer.CategorySkill, result.Category)
			assert.Equal(t, tc.skill, result.SkillCheck)
			assert.Equal(t, tc.modifier, result.Modifier)
			require.NotNil(t, result.DifficultyClass)
			assert.GreaterOrEqual(t, *result.DifficultyClass, 12)
			assert.LessOrEqual(t, *result.DifficultyClass, 15)
		})
	}
}

func TestAnalyze_AttackTakesPrecedenceOverSkills(t *testing.T) {
	result := newAnalyzer(t).Analyze("I sneak up and stab the guard", fighter())
	assert.Equal(t, analyzer.CategoryAttack, result.Category)
}

func TestAnalyze_SavingThrow(t *testing.T) {
	a := newAnalyzer(t)

	result := a.Analyze("I try to resist the poison", fighter())
	assert.Equal(t, analyzer.CategorySavingThrow, result.Category)
	assert.Equal(t, game.AbilityConstitution, result.SavingThrow)
	assert.Equal(t, 2, result.Modifier)
	require.NotNil(t, result.DifficultyClass)
	assert.Equal(t, 13, *result.DifficultyClass)

	result = a.Analyze("I dodge out of the way", fighter())
	assert.Equal(t, game.AbilityDexterity, result.SavingThrow)
}

func TestAnalyze_DamageAndInitiative(t *testing.T) {
	a := newAnalyzer(t)

	damage := a.Analyze("roll damage", fighter())
	assert.Equal(t, analyzer.CategoryDamage, damage.Category)
	assert.Equal(t, dice.Notation{Count: 1, Sides: 8}, damage.Dice)
	assert.Nil(t, damage.DifficultyClass)

	initiative := a.Analyze("Roll for initiative!", fighter())
	assert.Equal(t, analyzer.CategoryInitiative, initiative.Category)
	assert.Equal(t, game.AbilityDexterity, initiative.Ability)
	assert.Nil(t, initiative.DifficultyClass)
}

func TestAnalyze_NoRoll(t *testing.T) {
	a := newAnalyzer(t)

	for _, text := range []string{"I greet the innkeeper", "", "   ", "¿¿¿???", "I order an ale"} {
		result := a.Analyze(text, fighter())
		assert.False(t, result.RequiresRoll, text)
		assert.Equal(t, analyzer.CategoryNone, result.Category)
	}
}

func TestAnalyze_NilCharacter(t *testing.T) {
	result := newAnalyzer(t).Analyze("I attack", nil)
	assert.True(t, result.RequiresRoll)
	assert.Equal(t, 0, result.Modifier)
}

func TestGenerateAutomaticRoll_NoRollReturnsNil(t *testing.T) {
	roll, err := newAnalyzer(t).GenerateAutomaticRoll("I greet the innkeeper", fighter())
	require.NoError(t, err)
	assert.Nil(t, roll)
}

func TestGenerateAutomaticRoll_Attack(t *testing.T) {
	roll, err := newAnalyzer(t, 12).GenerateAutomaticRoll("I attack the goblin", fighter())
	require.NoError(t, err)
	require.NotNil(t, roll)

	assert.Equal(t, "Attack", roll.Action)
	assert.Equal(t, "d20", roll.DiceType)
	assert.Equal(t, 3, roll.Modifier)
	assert.Equal(t, []int{12}, roll.Roll.Rolls)
	assert.Equal(t, 15, roll.Roll.Total)
	assert.Equal(t, "1d20+3", roll.Roll.Notation)
	assert.True(t, roll.Success)
	assert.False(t, roll.CriticalSuccess)
	assert.False(t, roll.CriticalFailure)
}

func TestGenerateAutomaticRoll_Criticals(t *testing.T) {
	crit, err := newAnalyzer(t, 20).GenerateAutomaticRoll("I look for traps", fighter())
	require.NoError(t, err)
	assert.True(t, crit.CriticalSuccess)
	assert.Equal(t, "Perception check", crit.Action)
	assert.Equal(t, 19, crit.Roll.Total)

	fumble, err := newAnalyzer(t, 1).GenerateAutomaticRoll("I climb the cliff", fighter())
	require.NoError(t, err)
	assert.True(t, fumble.CriticalFailure)
	assert.Equal(t, 6, fumble.Roll.Total)
	assert.False(t, fumble.Success)
}

func TestGenerateAutomaticRoll_NoDifficultyAlwaysSucceeds(t *testing.T) {
	roll, err := newAnalyzer(t, 1).GenerateAutomaticRoll("roll initiative", fighter())
	require.NoError(t, err)
	assert.Nil(t, roll.DifficultyClass)
	assert.True(t, roll.Success)
	assert.Equal(t, "Initiative", roll.Action)
}

func TestGenerateAutomaticRoll_DamageHasNoCriticals(t *testing.T) {
	roll, err := newAnalyzer(t, 1).GenerateAutomaticRoll("I deal damage", fighter())
	require.NoError(t, err)
	assert.Equal(t, "d8", roll.DiceType)
	assert.False(t, roll.CriticalFailure)
}
