package dice

import (
	"sync"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/onekill0503/dnd-bot/internal/errors"
)

// ScriptedRoller replays a fixed sequence of faces. Tests use it to make rolls
// deterministic; once the script runs out it keeps returning Fallback.
type ScriptedRoller struct {
	mu       sync.Mutex
	faces    []int
	Fallback int
}

// NewScriptedRoller returns a roller that yields faces in order
func NewScriptedRoller(faces ...int) *ScriptedRoller {
	return &ScriptedRoller{faces: faces, Fallback: 10}
}

var _ toolkitdice.Roller = (*ScriptedRoller)(nil)

// Roll returns the next scripted face for one die
func (s *ScriptedRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	face := s.Fallback
	if len(s.faces) > 0 {
		face = s.faces[0]
		s.faces = s.faces[1:]
	}
	if face > size {
		face = size
	}
	if face < 1 {
		face = 1
	}
	return face, nil
}

// RollN returns the next count scripted faces
func (s *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		face, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, face)
	}
	return out, nil
}
