package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/export"
	"github.com/onekill0503/dnd-bot/internal/testutils"
)

func TestTranscript_NilSession(t *testing.T) {
	_, err := export.Transcript(nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestTranscript_EmptySession(t *testing.T) {
	b, err := export.Transcript(testutils.CreateTestSession(2))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "missing %PDF header")
}

func TestTranscript_FullSession(t *testing.T) {
	s := testutils.CreateActiveTestSession("p1", "p2")
	s.StorySummary = "The party seeks the lost idol."
	s.CurrentScene = "A café in Montréal, oddly enough."
	s.ImportantEvents = []string{"The idol was stolen"}
	s.QuestProgress.Set("Find the idol", game.Quest{Status: game.QuestActive, Progress: "searching"})
	s.NPCInteractions.Set("Mara", []string{"offered a map", "asked for gold"})
	for range 80 {
		s.SessionHistory = append(s.SessionHistory, "The torches gutter as the party presses deeper into the temple, "+
			"every footstep echoing from walls carved with forgotten names.")
	}
	s.Status = game.StatusEnded
	s.EndReason = game.EndReasonAllPlayersDead

	b, err := export.Transcript(s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
	// the long history spills over several pages
	assert.Greater(t, bytes.Count(b, []byte("/Type /Page\n")), 1)
}
