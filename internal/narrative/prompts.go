package narrative

import (
	"fmt"
	"strings"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/rules"
	"github.com/onekill0503/dnd-bot/internal/story"
)

// Fallback text used when generation fails
const (
	FallbackWelcome = "Welcome, adventurers! Gather around and create your characters to begin."
	FallbackOpening = "Your party stands at the edge of adventure. What do you do?"
)

const defaultLanguage = "English"

// RoundAction is one resolved player action fed to the round prompt
type RoundAction struct {
	CharacterName string
	ActionText    string
	DiceSummary   string
}

// PromptBuilder assembles every prompt the dungeon master sends
type PromptBuilder struct {
	rules *rules.Book
}

// NewPromptBuilder creates a prompt builder; a nil book uses the embedded rules
func NewPromptBuilder(book *rules.Book) *PromptBuilder {
	if book == nil {
		book = rules.Default()
	}
	return &PromptBuilder{rules: book}
}

// LanguageName returns the display name of a narration language code
func (p *PromptBuilder) LanguageName(code string) string {
	if l, ok := p.rules.Language(code); ok {
		return l.Name
	}
	return defaultLanguage
}

// SpeechCode returns the synthesizer locale for a narration language code
func (p *PromptBuilder) SpeechCode(code string) string {
	if l, ok := p.rules.Language(code); ok {
		return l.SpeechCode
	}
	return "en-US"
}

// System is the dungeon master persona with the session's language directive
func (p *PromptBuilder) System(s *game.Session) string {
	var b strings.Builder
	b.WriteString("You are an experienced Dungeon Master running a Dungeons & Dragons 5th edition game ")
	b.WriteString("for a group of friends in a voice channel. Narrate vividly but concisely, ")
	b.WriteString("in two to four short paragraphs meant to be read aloud. ")
	b.WriteString("Honor the dice results you are given: successes succeed, failures fail. ")
	b.WriteString("Never decide actions for the players and end by inviting them to act.\n")
	fmt.Fprintf(&b, "Party level: %d. Party size: %d.\n", s.PartyLevel, s.PartySize)
	if s.Theme != "" {
		fmt.Fprintf(&b, "Campaign theme: %s.\n", s.Theme)
	}
	fmt.Fprintf(&b, "Always respond in %s.", p.LanguageName(s.Language))
	return b.String()
}

// Welcome asks for the message shown when a session opens
func (p *PromptBuilder) Welcome(s *game.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new adventure is starting for %d players at level %d.", s.MaxPlayers, s.PartyLevel)
	if s.Theme != "" {
		fmt.Fprintf(&b, " The theme is %q.", s.Theme)
	}
	b.WriteString(" Greet the players, hint at the adventure ahead and ask them to create their characters.")
	return b.String()
}

// OpeningScene asks for the first scene once the party is complete
func (p *PromptBuilder) OpeningScene(s *game.Session) string {
	var b strings.Builder
	b.WriteString("The party is complete. Introduce the characters and set the opening scene.\n\n")
	writeParty(&b, s)
	return b.String()
}

// Round asks for the story continuation after a round of player actions
func (p *PromptBuilder) Round(s *game.Session, actions []RoundAction) string {
	var b strings.Builder
	b.WriteString("Story context:\n")
	b.WriteString(story.BuildPromptContext(s))
	b.WriteString("\n\n")
	writeParty(&b, s)
	b.WriteString("\nThis round the players did the following:\n")
	for _, a := range actions {
		fmt.Fprintf(&b, "- %s: %s", a.CharacterName, a.ActionText)
		if a.DiceSummary != "" {
			fmt.Fprintf(&b, " [%s]", a.DiceSummary)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nNarrate the outcome of all actions together and continue the story.")
	return b.String()
}

// Encounter asks for a fresh encounter without touching the round
func (p *PromptBuilder) Encounter(s *game.Session, kind, difficulty string) string {
	if kind == "" {
		kind = "combat"
	}
	if difficulty == "" {
		difficulty = "medium"
	}

	var b strings.Builder
	b.WriteString("Story context:\n")
	b.WriteString(story.BuildPromptContext(s))
	b.WriteString("\n\n")
	writeParty(&b, s)
	fmt.Fprintf(&b, "\nCreate a %s %s encounter suited to this party and describe how it begins.", difficulty, kind)
	return b.String()
}

func writeParty(b *strings.Builder, s *game.Session) {
	if s.Players.Len() == 0 {
		return
	}
	b.WriteString("Party:\n")
	for _, pc := range s.Players.Values() {
		fmt.Fprintf(b, "- %s, %s %s (%s), HP %d/%d, AC %d, %s",
			pc.Name, pc.Race, pc.Class, pc.Background,
			pc.HitPoints, pc.MaxHitPoints, pc.ArmorClass, pc.Status)
		if pc.Description != "" {
			fmt.Fprintf(b, ": %s", pc.Description)
		}
		b.WriteString("\n")
	}
}
