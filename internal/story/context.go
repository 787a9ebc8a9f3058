package story

import (
	"fmt"
	"strings"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
)

// Prompt window sizes
const (
	PromptRecentEvents    = 10
	PromptImportantEvents = 5
	PromptNPCEntries      = 3
)

// BuildPromptContext renders the narrative memory handed to the generator:
// the last recent and important events, the tail of every NPC log, all
// quests and environments, the scene, the last story beat and the round.
func BuildPromptContext(s *game.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Round: %d\n", s.SessionRound)
	if s.CurrentScene != "" {
		fmt.Fprintf(&b, "Current scene: %s\n", s.CurrentScene)
	}
	if s.StorySummary != "" {
		fmt.Fprintf(&b, "Story so far: %s\n", s.StorySummary)
	}
	if s.LastStoryBeat != "" {
		fmt.Fprintf(&b, "Last story beat: %s\n", s.LastStoryBeat)
	}

	writeList(&b, "Recent events", lastN(s.RecentEvents, PromptRecentEvents))
	writeList(&b, "Important events", lastN(s.ImportantEvents, PromptImportantEvents))

	if s.NPCInteractions.Len() > 0 {
		b.WriteString("NPC interactions:\n")
		for _, p := range s.NPCInteractions.Pairs() {
			fmt.Fprintf(&b, "- %s: %s\n", p.Key, strings.Join(lastN(p.Value, PromptNPCEntries), "; "))
		}
	}

	if s.QuestProgress.Len() > 0 {
		b.WriteString("Quests:\n")
		for _, p := range s.QuestProgress.Pairs() {
			if p.Value.Progress == "" {
				fmt.Fprintf(&b, "- %s [%s]\n", p.Key, p.Value.Status)
				continue
			}
			fmt.Fprintf(&b, "- %s [%s]: %s\n", p.Key, p.Value.Status, p.Value.Progress)
		}
	}

	if s.EnvironmentalState.Len() > 0 {
		b.WriteString("Environment:\n")
		for _, p := range s.EnvironmentalState.Pairs() {
			fmt.Fprintf(&b, "- %s: %s\n", p.Key, p.Value)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
