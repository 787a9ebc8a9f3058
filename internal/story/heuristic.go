package story

import (
	"strings"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
)

// MaxStoryBeatRunes bounds the stored last story beat
const MaxStoryBeatRunes = 200

var sceneMarkers = []string{
	"scene", "location", "you arrive", "you enter", "you find yourselves",
}

// ApplySceneHeuristic updates scene tracking from a generated response.
//
// This is a best-effort heuristic, not an authoritative scene model: when the
// response mentions a scene or location marker its first sentence becomes the
// current scene. The last story beat is always the response, truncated.
// It reports whether the scene changed.
func ApplySceneHeuristic(s *game.Session, response string) bool {
	response = strings.TrimSpace(response)
	if response == "" {
		return false
	}

	s.LastStoryBeat = truncateRunes(response, MaxStoryBeatRunes)

	lower := strings.ToLower(response)
	for _, marker := range sceneMarkers {
		if strings.Contains(lower, marker) {
			if scene := firstSentence(response); scene != "" {
				s.CurrentScene = scene
				return true
			}
			return false
		}
	}
	return false
}

func firstSentence(text string) string {
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		text = text[:i+1]
	}
	return strings.TrimSpace(text)
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
