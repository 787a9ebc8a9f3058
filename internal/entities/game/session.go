// Package game holds the session and character records the dungeon master
// engine operates on. Types here are plain data plus invariant-preserving
// helpers; rules live in the orchestrators.
package game

import (
	"strings"
	"time"
)

// SessionStatus is the lifecycle state of a session
type SessionStatus string

// Session statuses, in their only legal order
const (
	StatusCharacterCreation SessionStatus = "character_creation"
	StatusActive            SessionStatus = "active"
	StatusEnded             SessionStatus = "ended"
)

func (s SessionStatus) rank() int {
	switch s {
	case StatusCharacterCreation:
		return 0
	case StatusActive:
		return 1
	case StatusEnded:
		return 2
	default:
		return -1
	}
}

// CanTransitionTo reports whether moving to next is a forward transition
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	return s.rank() >= 0 && next.rank() > s.rank()
}

// EndReason records why a session ended
type EndReason string

// End reasons
const (
	EndReasonExplicit       EndReason = "explicit"
	EndReasonAllPlayersDead EndReason = "all_players_dead"
)

// QuestStatus is the state of a tracked quest
type QuestStatus string

// Quest statuses
const (
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

// IsValid reports whether the status is one of the known values
func (q QuestStatus) IsValid() bool {
	switch q {
	case QuestActive, QuestCompleted, QuestFailed:
		return true
	}
	return false
}

// Quest is the latest known state of a quest
type Quest struct {
	Status   QuestStatus `json:"status"`
	Progress string      `json:"progress"`
}

// PendingAction is a submitted action waiting for the round to resolve
type PendingAction struct {
	ActionText  string             `json:"actionText"`
	DiceSummary string             `json:"diceSummary,omitempty"`
	Roll        *AutomaticDiceRoll `json:"roll,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}

const channelSessionPrefix = "session_"

// SessionIDForChannel returns the canonical session id for a voice channel
func SessionIDForChannel(voiceChannelID string) string {
	return channelSessionPrefix + voiceChannelID
}

// IsSessionID reports whether ref is already in canonical session id form.
// Voice channel ids of that form would be ambiguous and are refused.
func IsSessionID(ref string) bool {
	return strings.HasPrefix(strings.TrimSpace(ref), channelSessionPrefix)
}

// ResolveSessionID maps either a session id or a voice channel id to the
// canonical session id, so both addressing schemes reach one record.
func ResolveSessionID(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || IsSessionID(ref) {
		return ref
	}
	return SessionIDForChannel(ref)
}

// Session is one game bound to a voice channel
type Session struct {
	SessionID      string `json:"sessionId"`
	VoiceChannelID string `json:"voiceChannelId"`
	GuildID        string `json:"guildId"`
	CreatorID      string `json:"creatorId"`
	Theme          string `json:"theme"`

	Status     SessionStatus `json:"status"`
	EndReason  EndReason     `json:"endReason,omitempty"`
	PartyLevel int           `json:"partyLevel"`
	PartySize  int           `json:"partySize"`
	MaxPlayers int           `json:"maxPlayers"`
	Language   string        `json:"language"`

	Players        OrderedMap[*PlayerCharacter] `json:"players"`
	PendingActions OrderedMap[PendingAction]    `json:"pendingActions"`
	PlayerActions  OrderedMap[[]string]         `json:"playerActions"`
	RecentEvents   []string                     `json:"recentEvents"`
	SessionHistory []string                     `json:"sessionHistory"`

	StorySummary       string               `json:"storySummary"`
	CurrentScene       string               `json:"currentScene"`
	ImportantEvents    []string             `json:"importantEvents"`
	NPCInteractions    OrderedMap[[]string] `json:"npcInteractions"`
	QuestProgress      OrderedMap[Quest]    `json:"questProgress"`
	EnvironmentalState OrderedMap[string]   `json:"environmentalState"`
	LastStoryBeat      string               `json:"lastStoryBeat"`
	SessionRound       int                  `json:"sessionRound"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetID returns the session id
func (s *Session) GetID() string {
	return s.SessionID
}

// GetType returns the entity type used on the event bus
func (s *Session) GetType() string {
	return "session"
}

// IsFull reports whether every seat has a character
func (s *Session) IsFull() bool {
	return s.Players.Len() >= s.MaxPlayers
}

// Player returns the character of a participant
func (s *Session) Player(userID string) (*PlayerCharacter, bool) {
	return s.Players.Get(userID)
}

// AlivePlayers returns every character that is not dead, in join order.
// Unconscious characters count as alive.
func (s *Session) AlivePlayers() []*PlayerCharacter {
	var out []*PlayerCharacter
	for _, pc := range s.Players.Values() {
		if !pc.IsDead() {
			out = append(out, pc)
		}
	}
	return out
}

// WaitingOn returns the alive participants that have not acted this round
func (s *Session) WaitingOn() []string {
	var out []string
	for _, pc := range s.AlivePlayers() {
		if !s.PendingActions.Has(pc.UserID) {
			out = append(out, pc.UserID)
		}
	}
	return out
}

// AllAlivePlayersActed reports whether every alive character has a pending action
func (s *Session) AllAlivePlayersActed() bool {
	return len(s.AlivePlayers()) > 0 && len(s.WaitingOn()) == 0
}

// Transition moves the session forward, reporting false for an illegal move
func (s *Session) Transition(next SessionStatus) bool {
	if !s.Status.CanTransitionTo(next) {
		return false
	}
	s.Status = next
	return true
}
