package analyzer

import (
	"regexp"
	"strings"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
)

// Difficulty classes
const (
	AttackDC      = 15
	SavingThrowDC = 13
)

// keywordSet matches any of its phrases at the start of a word, so
// "climb" also catches "climbing".
type keywordSet struct {
	re *regexp.Regexp
}

func newKeywordSet(phrases ...string) keywordSet {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return keywordSet{re: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)`)}
}

func (k keywordSet) matches(text string) bool {
	return k.re.MatchString(text)
}

type skillRule struct {
	skill    game.Skill
	dc       int
	keywords keywordSet
}

var (
	attackKeywords = newKeywordSet(
		"attack", "strike", "slash", "stab", "swing at", "swing my", "shoot",
		"punch", "kick", "smash", "lunge", "hit the", "hit him", "hit her",
		"hit it", "fight", "charge at", "cleave", "smite", "fire an arrow",
	)

	// Attacks with these fall back on dexterity
	rangedKeywords = newKeywordSet(
		"bow", "arrow", "crossbow", "shoot", "throw", "dagger", "rapier",
		"sling", "dart", "shortsword", "scimitar", "fire an arrow",
	)

	// Checked in this order; the first matching skill wins
	skillRules = []skillRule{
		{game.SkillAcrobatics, 13, newKeywordSet("acrobat", "flip", "tumble", "balance", "cartwheel", "somersault", "vault over")},
		{game.SkillAnimalHandling, 13, newKeywordSet("tame", "calm the", "soothe the", "animal", "horse", "mount", "steed")},
		{game.SkillArcana, 14, newKeywordSet("arcana", "arcane", "magic", "rune", "enchant", "sigil", "glyph")},
		{game.SkillAthletics, 13, newKeywordSet("climb", "jump", "swim", "lift", "shove", "grapple", "break down", "force the door", "leap")},
		{game.SkillDeception, 14, newKeywordSet("lie", "deceive", "bluff", "disguise", "pretend", "feint", "trick")},
		{game.SkillHistory, 12, newKeywordSet("history", "recall", "remember", "ancient", "legend", "lore")},
		{game.SkillInsight, 12, newKeywordSet("insight", "sense motive", "intention", "motive", "gauge", "trustworthy", "read his", "read her")},
		{game.SkillIntimidation, 13, newKeywordSet("intimidate", "threaten", "scare", "menace", "coerce", "frighten", "glare")},
		{game.SkillInvestigation, 13, newKeywordSet("investigate", "search", "examine", "inspect", "analyze", "clue", "deduce", "study the")},
		{game.SkillMedicine, 12, newKeywordSet("heal", "bandage", "medicine", "stabilize", "first aid", "diagnose", "tend to")},
		{game.SkillNature, 12, newKeywordSet("nature", "plant", "herb", "flora", "fauna", "weather", "terrain")},
		{game.SkillPerception, 12, newKeywordSet("look", "listen", "spot", "notice", "watch", "observe", "scan", "peer", "perceive", "hear")},
		{game.SkillPerformance, 12, newKeywordSet("perform", "sing", "dance", "play a song", "play my", "entertain", "recite", "juggle")},
		{game.SkillPersuasion, 13, newKeywordSet("persuade", "convince", "negotiate", "plead", "charm", "barter", "haggle", "diplomacy")},
		{game.SkillReligion, 12, newKeywordSet("pray", "religion", "holy", "divine", "deity", "temple", "ritual")},
		{game.SkillSleightOfHand, 14, newKeywordSet("pickpocket", "pick pocket", "pick the lock", "steal", "palm the", "sleight", "slip it")},
		{game.SkillStealth, 13, newKeywordSet("sneak", "hide", "stealth", "creep", "tiptoe", "quietly", "unseen")},
		{game.SkillSurvival, 12, newKeywordSet("track", "forage", "hunt", "navigate", "survive", "follow the trail", "campsite")},
	}

	savingThrowKeywords = newKeywordSet(
		"saving throw", "save against", "resist", "dodge", "evade", "endure",
		"withstand", "shake off", "brace",
	)

	saveAbilityKeywords = []struct {
		ability  game.Ability
		keywords keywordSet
	}{
		{game.AbilityConstitution, newKeywordSet("poison", "disease", "endure", "withstand", "toxin")},
		{game.AbilityWisdom, newKeywordSet("charm", "fear", "mind", "will", "illusion")},
		{game.AbilityStrength, newKeywordSet("brace", "hold on", "push back", "restrain")},
		{game.AbilityIntelligence, newKeywordSet("psychic", "madness")},
		{game.AbilityCharisma, newKeywordSet("banish", "possession")},
	}

	damageKeywords = newKeywordSet("damage", "roll damage", "deal", "wound")

	initiativeKeywords = newKeywordSet(
		"initiative", "ready myself", "prepare for combat", "draw my weapon",
		"get ready", "ready my",
	)
)
