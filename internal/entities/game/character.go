package game

import "time"

// Ability is one of the six ability scores
type Ability string

// Abilities
const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities lists the abilities in the order rolled scores are assigned
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// AbilityScores holds the six ability scores
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Get returns the score for an ability, 10 for an unknown ability
func (a AbilityScores) Get(ability Ability) int {
	switch ability {
	case AbilityStrength:
		return a.Strength
	case AbilityDexterity:
		return a.Dexterity
	case AbilityConstitution:
		return a.Constitution
	case AbilityIntelligence:
		return a.Intelligence
	case AbilityWisdom:
		return a.Wisdom
	case AbilityCharisma:
		return a.Charisma
	default:
		return 10
	}
}

// AbilityScoresFromRolls assigns rolled scores positionally
func AbilityScoresFromRolls(scores [6]int) AbilityScores {
	return AbilityScores{
		Strength:     scores[0],
		Dexterity:    scores[1],
		Constitution: scores[2],
		Intelligence: scores[3],
		Wisdom:       scores[4],
		Charisma:     scores[5],
	}
}

// Skill is one of the 18 named skills
type Skill string

// Skills
const (
	SkillAcrobatics     Skill = "Acrobatics"
	SkillAnimalHandling Skill = "Animal Handling"
	SkillArcana         Skill = "Arcana"
	SkillAthletics      Skill = "Athletics"
	SkillDeception      Skill = "Deception"
	SkillHistory        Skill = "History"
	SkillInsight        Skill = "Insight"
	SkillIntimidation   Skill = "Intimidation"
	SkillInvestigation  Skill = "Investigation"
	SkillMedicine       Skill = "Medicine"
	SkillNature         Skill = "Nature"
	SkillPerception     Skill = "Perception"
	SkillPerformance    Skill = "Performance"
	SkillPersuasion     Skill = "Persuasion"
	SkillReligion       Skill = "Religion"
	SkillSleightOfHand  Skill = "Sleight of Hand"
	SkillStealth        Skill = "Stealth"
	SkillSurvival       Skill = "Survival"
)

// Skills lists every skill
var Skills = []Skill{
	SkillAcrobatics, SkillAnimalHandling, SkillArcana, SkillAthletics,
	SkillDeception, SkillHistory, SkillInsight, SkillIntimidation,
	SkillInvestigation, SkillMedicine, SkillNature, SkillPerception,
	SkillPerformance, SkillPersuasion, SkillReligion, SkillSleightOfHand,
	SkillStealth, SkillSurvival,
}

// SkillAbility maps each skill to its governing ability
var SkillAbility = map[Skill]Ability{
	SkillAcrobatics:     AbilityDexterity,
	SkillAnimalHandling: AbilityWisdom,
	SkillArcana:         AbilityIntelligence,
	SkillAthletics:      AbilityStrength,
	SkillDeception:      AbilityCharisma,
	SkillHistory:        AbilityIntelligence,
	SkillInsight:        AbilityWisdom,
	SkillIntimidation:   AbilityCharisma,
	SkillInvestigation:  AbilityIntelligence,
	SkillMedicine:       AbilityWisdom,
	SkillNature:         AbilityIntelligence,
	SkillPerception:     AbilityWisdom,
	SkillPerformance:    AbilityCharisma,
	SkillPersuasion:     AbilityCharisma,
	SkillReligion:       AbilityIntelligence,
	SkillSleightOfHand:  AbilityDexterity,
	SkillStealth:        AbilityDexterity,
	SkillSurvival:       AbilityWisdom,
}

// SkillScore is a character's standing in one skill
type SkillScore struct {
	Proficient bool `json:"proficient"`
	Modifier   int  `json:"modifier"`
}

// Currency holds coin counts per denomination
type Currency struct {
	Copper   int `json:"cp"`
	Silver   int `json:"sp"`
	Electrum int `json:"ep"`
	Gold     int `json:"gp"`
	Platinum int `json:"pp"`
}

// Item is one inventory entry
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SpellSlot tracks slot usage for one spell level
type SpellSlot struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

// Normalize restores used <= total and available = total - used
func (s SpellSlot) Normalize() SpellSlot {
	if s.Total < 0 {
		s.Total = 0
	}
	if s.Used < 0 {
		s.Used = 0
	}
	if s.Used > s.Total {
		s.Used = s.Total
	}
	s.Available = s.Total - s.Used
	return s
}

// CharacterStatus is the life state of a character
type CharacterStatus string

// Character statuses
const (
	CharacterAlive       CharacterStatus = "alive"
	CharacterDead        CharacterStatus = "dead"
	CharacterUnconscious CharacterStatus = "unconscious"
)

// PlayerCharacter is one participant's character sheet within a session
type PlayerCharacter struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Race        string `json:"race"`
	Background  string `json:"background"`
	Description string `json:"description"`

	Stats        AbilityScores   `json:"stats"`
	HitPoints    int             `json:"hitPoints"`
	MaxHitPoints int             `json:"maxHitPoints"`
	ArmorClass   int             `json:"armorClass"`
	Alignment    string          `json:"alignment"`
	Status       CharacterStatus `json:"status"`

	Skills           map[Skill]SkillScore `json:"skills"`
	Currency         Currency             `json:"currency"`
	Inventory        []Item               `json:"inventory"`
	SpellSlots       map[int]SpellSlot    `json:"spellSlots"`
	Cantrips         []string             `json:"cantrips"`
	Spells           []string             `json:"spells"`
	Level            int                  `json:"level"`
	ProficiencyBonus int                  `json:"proficiencyBonus"`
	ExperiencePoints int                  `json:"experiencePoints"`
	Inspiration      bool                 `json:"inspiration"`
	Exhaustion       int                  `json:"exhaustion"`
	Initiative       int                  `json:"initiative"`
	Speed            int                  `json:"speed"`
	Languages        []string             `json:"languages"`
	Features         []string             `json:"features"`
	Proficiencies    []string             `json:"proficiencies"`

	CreatedAt time.Time `json:"createdAt"`
}

// GetID returns the participant id
func (pc *PlayerCharacter) GetID() string {
	return pc.UserID
}

// GetType returns the entity type used on the event bus
func (pc *PlayerCharacter) GetType() string {
	return "character"
}

// IsDead reports whether the character can no longer act
func (pc *PlayerCharacter) IsDead() bool {
	return pc.Status == CharacterDead
}
