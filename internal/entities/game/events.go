package game

// Event types published on the session event bus
const (
	EventNarration     = "dm.narration"
	EventPlayerDied    = "dm.player_died"
	EventSessionActive = "dm.session_active"
	EventSessionEnded  = "dm.session_ended"
)

// Narration is text the dungeon master speaks in a voice channel. It rides the
// event bus as the event source.
type Narration struct {
	SessionID      string
	VoiceChannelID string
	Language       string
	Text           string
}

// GetID returns the owning session id
func (n *Narration) GetID() string {
	return n.SessionID
}

// GetType returns the entity type used on the event bus
func (n *Narration) GetType() string {
	return "narration"
}
