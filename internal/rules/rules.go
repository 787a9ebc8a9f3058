// Package rules provides the static class, background, race and language
// tables used when deriving character sheets and narration settings.
package rules

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
)

//go:embed rules.yaml
var embedded []byte

// CasterType describes how a class gains spell slots
type CasterType string

// Caster types
const (
	CasterNone CasterType = "none"
	CasterFull CasterType = "full"
	CasterHalf CasterType = "half"
	CasterPact CasterType = "pact"
)

// FirstLevelSlots returns the number of level 1 spell slots at character level 1
func (c CasterType) FirstLevelSlots() int {
	switch c {
	case CasterFull:
		return 2
	case CasterPact:
		return 1
	default:
		// half casters gain slots from level 2
		return 0
	}
}

// IsCaster reports whether the class casts spells at all
func (c CasterType) IsCaster() bool {
	return c == CasterFull || c == CasterHalf || c == CasterPact
}

// Class is the static data for one character class
type Class struct {
	Name          string       `yaml:"name"`
	HitPoints     int          `yaml:"hit_points"`
	ArmorClass    int          `yaml:"armor_class"`
	MaxDexBonus   int          `yaml:"max_dex_bonus"`
	Gold          int          `yaml:"gold"`
	Caster        CasterType   `yaml:"caster"`
	Skills        []game.Skill `yaml:"skills"`
	Equipment     []string     `yaml:"equipment"`
	Cantrips      []string     `yaml:"cantrips"`
	Spells        []string     `yaml:"spells"`
	Features      []string     `yaml:"features"`
	Proficiencies []string     `yaml:"proficiencies"`
}

// HasSkill reports whether the class grants the skill
func (c Class) HasSkill(skill game.Skill) bool {
	for _, s := range c.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Background is the static data for one character background
type Background struct {
	Name      string       `yaml:"name"`
	GoldBonus int          `yaml:"gold_bonus"`
	Skills    []game.Skill `yaml:"skills"`
	Equipment []string     `yaml:"equipment"`
	Languages []string     `yaml:"languages"`
}

// HasSkill reports whether the background grants the skill
func (b Background) HasSkill(skill game.Skill) bool {
	for _, s := range b.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Race is the static data for one race
type Race struct {
	Name      string   `yaml:"name"`
	Speed     int      `yaml:"speed"`
	Languages []string `yaml:"languages"`
	Traits    []string `yaml:"traits"`
}

// Language is a narration language the generator and synthesizer support
type Language struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	SpeechCode string `yaml:"speech_code"`
}

type document struct {
	Defaults struct {
		Class      Class      `yaml:"class"`
		Background Background `yaml:"background"`
		Race       Race       `yaml:"race"`
	} `yaml:"defaults"`
	Classes     []Class      `yaml:"classes"`
	Backgrounds []Background `yaml:"backgrounds"`
	Races       []Race       `yaml:"races"`
	Alignments  []string     `yaml:"alignments"`
	Languages   []Language   `yaml:"languages"`
}

// Book indexes the rule tables by case-insensitive name
type Book struct {
	defaultClass      Class
	defaultBackground Background
	defaultRace       Race

	classes     map[string]Class
	backgrounds map[string]Background
	races       map[string]Race
	languages   map[string]Language
	alignments  []string
}

var (
	defaultOnce sync.Once
	defaultBook *Book
)

// Default returns the book parsed from the embedded tables
func Default() *Book {
	defaultOnce.Do(func() {
		b, err := Load(embedded)
		if err != nil {
			panic(fmt.Sprintf("rules: embedded tables are invalid: %v", err))
		}
		defaultBook = b
	})
	return defaultBook
}

// Load parses a rules document
func Load(data []byte) (*Book, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse rules document")
	}

	b := &Book{
		defaultClass:      doc.Defaults.Class,
		defaultBackground: doc.Defaults.Background,
		defaultRace:       doc.Defaults.Race,
		classes:           make(map[string]Class, len(doc.Classes)),
		backgrounds:       make(map[string]Background, len(doc.Backgrounds)),
		races:             make(map[string]Race, len(doc.Races)),
		languages:         make(map[string]Language, len(doc.Languages)),
		alignments:        doc.Alignments,
	}

	if err := validateSkills("default class", b.defaultClass.Skills); err != nil {
		return nil, err
	}
	if err := validateSkills("default background", b.defaultBackground.Skills); err != nil {
		return nil, err
	}

	for _, c := range doc.Classes {
		if c.Caster == "" {
			c.Caster = CasterNone
		}
		if err := validateSkills(c.Name, c.Skills); err != nil {
			return nil, err
		}
		b.classes[key(c.Name)] = c
	}
	for _, bg := range doc.Backgrounds {
		if err := validateSkills(bg.Name, bg.Skills); err != nil {
			return nil, err
		}
		b.backgrounds[key(bg.Name)] = bg
	}
	for _, r := range doc.Races {
		b.races[key(r.Name)] = r
	}
	for _, l := range doc.Languages {
		b.languages[key(l.Code)] = l
	}

	if len(b.alignments) == 0 {
		return nil, errors.InvalidArgument("rules document has no alignments")
	}

	return b, nil
}

func validateSkills(owner string, skills []game.Skill) error {
	for _, s := range skills {
		if _, ok := game.SkillAbility[s]; !ok {
			return errors.InvalidArgumentf("%s lists unknown skill %q", owner, s)
		}
	}
	return nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Class looks up a class, returning the default baseline when unknown
func (b *Book) Class(name string) (Class, bool) {
	if c, ok := b.classes[key(name)]; ok {
		return c, true
	}
	return b.defaultClass, false
}

// Background looks up a background, returning the default when unknown
func (b *Book) Background(name string) (Background, bool) {
	if bg, ok := b.backgrounds[key(name)]; ok {
		return bg, true
	}
	return b.defaultBackground, false
}

// Race looks up a race, returning the default when unknown
func (b *Book) Race(name string) (Race, bool) {
	if r, ok := b.races[key(name)]; ok {
		return r, true
	}
	return b.defaultRace, false
}

// Language looks up a narration language by code
func (b *Book) Language(code string) (Language, bool) {
	l, ok := b.languages[key(code)]
	return l, ok
}

// Alignments returns the alignments a character may be assigned
func (b *Book) Alignments() []string {
	out := make([]string, len(b.alignments))
	copy(out, b.alignments)
	return out
}

// ClassNames returns the known class names, sorted
func (b *Book) ClassNames() []string {
	names := make([]string, 0, len(b.classes))
	for _, c := range b.classes {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// BackgroundNames returns the known background names, sorted
func (b *Book) BackgroundNames() []string {
	names := make([]string, 0, len(b.backgrounds))
	for _, bg := range b.backgrounds {
		names = append(names, bg.Name)
	}
	sort.Strings(names)
	return names
}

// RaceNames returns the known race names, sorted
func (b *Book) RaceNames() []string {
	names := make([]string, 0, len(b.races))
	for _, r := range b.races {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}
