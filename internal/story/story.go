// Package story maintains the narrative memory of a session: recent and
// important events, NPC interaction logs, quests and environment state.
//
// Every function mutates the session in place and is safe to call in any
// sequence. Callers hold the session lock.
package story

import (
	"strings"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
)

// Retention limits
const (
	MaxRecentEvents    = 50
	MaxImportantEvents = 10
	MaxNPCInteractions = 5
)

// AppendEvent records text in the recent events and the full history.
// Recent events keep the latest MaxRecentEvents entries; history keeps everything.
func AppendEvent(s *game.Session, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.RecentEvents = appendCapped(s.RecentEvents, text, MaxRecentEvents)
	s.SessionHistory = append(s.SessionHistory, text)
}

// AddImportantEvent records a key story event, dropping the oldest past the cap
func AddImportantEvent(s *game.Session, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.InvalidArgument("event text is required")
	}
	s.ImportantEvents = appendCapped(s.ImportantEvents, text, MaxImportantEvents)
	return nil
}

// TrackNPCInteraction appends to an NPC's log, keeping the latest entries
func TrackNPCInteraction(s *game.Session, npcName, text string) error {
	npcName = strings.TrimSpace(npcName)
	text = strings.TrimSpace(text)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("npcName", npcName, vb)
	errors.ValidateRequired("interaction", text, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	log, _ := s.NPCInteractions.Get(npcName)
	s.NPCInteractions.Set(npcName, appendCapped(log, text, MaxNPCInteractions))
	return nil
}

// UpdateQuest replaces a quest's status and progress
func UpdateQuest(s *game.Session, name string, status game.QuestStatus, progress string) error {
	name = strings.TrimSpace(name)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("questName", name, vb)
	if !status.IsValid() {
		vb.InvalidField("status", "must be active, completed or failed")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	s.QuestProgress.Set(name, game.Quest{Status: status, Progress: strings.TrimSpace(progress)})
	return nil
}

// UpdateEnvironment replaces the state text for a location
func UpdateEnvironment(s *game.Session, location, state string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return errors.InvalidArgument("location is required")
	}
	s.EnvironmentalState.Set(location, strings.TrimSpace(state))
	return nil
}

// SetSummary replaces the running story summary
func SetSummary(s *game.Session, summary string) {
	s.StorySummary = strings.TrimSpace(summary)
}

// appendCapped returns a new slice holding the last limit entries of list plus v
func appendCapped(list []string, v string, limit int) []string {
	out := make([]string, 0, min(len(list)+1, limit))
	start := max(0, len(list)+1-limit)
	if start < len(list) {
		out = append(out, list[start:]...)
	}
	return append(out, v)
}

func lastN(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[len(list)-n:]
}
