package session

import (
	"context"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
)

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/onekill0503/dnd-bot/internal/orchestrators/session Service

// Service runs dungeon master sessions. Every operation addresses a session
// by SessionRef, which may be a session id or a voice channel id.
type Service interface {
	// Lifecycle
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)
	AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error)
	HandlePlayerDeath(ctx context.Context, input *HandlePlayerDeathInput) (*HandlePlayerDeathOutput, error)
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// Rounds
	TrackPlayerAction(ctx context.Context, input *TrackPlayerActionInput) (*TrackPlayerActionOutput, error)
	ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error)
	GenerateEncounter(ctx context.Context, input *GenerateEncounterInput) (*GenerateEncounterOutput, error)

	// Queries
	GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)

	// Story memory
	RecordImportantEvent(ctx context.Context, input *RecordImportantEventInput) (*MemoryOutput, error)
	TrackNPCInteraction(ctx context.Context, input *TrackNPCInteractionInput) (*MemoryOutput, error)
	UpdateQuest(ctx context.Context, input *UpdateQuestInput) (*MemoryOutput, error)
	UpdateEnvironment(ctx context.Context, input *UpdateEnvironmentInput) (*MemoryOutput, error)

	// Character progression
	UpdateCurrency(ctx context.Context, input *UpdateCurrencyInput) (*CharacterOutput, error)
	AddItem(ctx context.Context, input *AddItemInput) (*CharacterOutput, error)
	RemoveItem(ctx context.Context, input *RemoveItemInput) (*CharacterOutput, error)
	UseSpellSlot(ctx context.Context, input *UseSpellSlotInput) (*CharacterOutput, error)
	RestoreSpellSlots(ctx context.Context, input *RestoreSpellSlotsInput) (*CharacterOutput, error)
	UpdateHitPoints(ctx context.Context, input *UpdateHitPointsInput) (*CharacterOutput, error)
}

// StartSessionInput defines the request for opening a session in a voice channel
type StartSessionInput struct {
	VoiceChannelID string
	GuildID        string
	CreatorID      string
	// PartyLevel defaults to 1
	PartyLevel int
	// PartySize defaults to the configured party size
	PartySize int
	Theme     string
	// Language is a narration language code, defaults to "en"
	Language string
}

// StartSessionOutput defines the response for opening a session
type StartSessionOutput struct {
	Session *game.Session
	Welcome string
}

// AddCharacterInput defines the request for joining a session with a new character
type AddCharacterInput struct {
	SessionRef  string
	UserID      string
	Username    string
	Name        string
	Class       string
	Race        string
	Background  string
	Description string
}

// AddCharacterOutput defines the response for joining a session
type AddCharacterOutput struct {
	Character *game.PlayerCharacter
	// SessionActivated is true for the join that completed the party
	SessionActivated bool
	OpeningScene     string
	KnownClass       bool
	KnownBackground  bool
}

// TrackPlayerActionInput defines the request for submitting a round action
type TrackPlayerActionInput struct {
	SessionRef string
	UserID     string
	ActionText string
}

// TrackPlayerActionOutput defines the response for submitting a round action
type TrackPlayerActionOutput struct {
	Accepted bool
	// AllActed is true only for the submission that completed the round
	AllActed  bool
	Roll      *game.AutomaticDiceRoll
	WaitingOn []string
}

// ResolveRoundInput defines the request for resolving the current round
type ResolveRoundInput struct {
	SessionRef string
}

// ResolveRoundOutput defines the response for resolving the current round
type ResolveRoundOutput struct {
	Narrative string
	// Round is the round number after resolution
	Round    int
	Resolved []string
	// Fallback is true when generation failed and the stock narrative was used
	Fallback bool
}

// GenerateEncounterInput defines the request for generating an encounter
type GenerateEncounterInput struct {
	SessionRef string
	// Kind defaults to combat
	Kind string
	// Difficulty defaults to medium
	Difficulty string
}

// GenerateEncounterOutput defines the response for generating an encounter
type GenerateEncounterOutput struct {
	Encounter string
}

// GetStatusInput defines the request for reading a session
type GetStatusInput struct {
	SessionRef string
}

// GetStatusOutput defines the response for reading a session
type GetStatusOutput struct {
	// Session is a detached copy
	Session   *game.Session
	WaitingOn []string
}

// GetCharacterInput defines the request for reading one character
type GetCharacterInput struct {
	SessionRef string
	UserID     string
}

// GetCharacterOutput defines the response for reading one character
type GetCharacterOutput struct {
	Character *game.PlayerCharacter
}

// ListCharactersInput defines the request for listing a session's characters
type ListCharactersInput struct {
	SessionRef string
}

// ListCharactersOutput defines the response for listing characters in join order
type ListCharactersOutput struct {
	Characters []*game.PlayerCharacter
}

// HandlePlayerDeathInput defines the request for reporting a character death
type HandlePlayerDeathInput struct {
	SessionRef string
	UserID     string
	Cause      string
}

// HandlePlayerDeathOutput defines the response for reporting a character death
type HandlePlayerDeathOutput struct {
	SessionEnded bool
	Message      string
	Survivors    []string
	// AllActed is true when the death left every survivor with a pending action
	AllActed bool
}

// EndSessionInput defines the request for ending a session
type EndSessionInput struct {
	SessionRef  string
	RequestorID string
}

// EndSessionOutput defines the response for ending a session
type EndSessionOutput struct {
	Session *game.Session
}

// RecordImportantEventInput defines the request for remembering a story event
type RecordImportantEventInput struct {
	SessionRef string
	Event      string
}

// TrackNPCInteractionInput defines the request for logging an NPC interaction
type TrackNPCInteractionInput struct {
	SessionRef  string
	NPCName     string
	Interaction string
}

// UpdateQuestInput defines the request for upserting a quest
type UpdateQuestInput struct {
	SessionRef string
	Quest      string
	Status     game.QuestStatus
	Progress   string
}

// UpdateEnvironmentInput defines the request for upserting a location state
type UpdateEnvironmentInput struct {
	SessionRef string
	Location   string
	State      string
}

// MemoryOutput is the story context after a memory update
type MemoryOutput struct {
	Context string
}

// UpdateCurrencyInput defines the request for changing a character's coins
type UpdateCurrencyInput struct {
	SessionRef string
	UserID     string
	Delta      game.Currency
}

// AddItemInput defines the request for giving a character an item
type AddItemInput struct {
	SessionRef string
	UserID     string
	Name       string
	Quantity   int
}

// RemoveItemInput defines the request for taking an item from a character
type RemoveItemInput struct {
	SessionRef string
	UserID     string
	ItemID     string
	Quantity   int
}

// UseSpellSlotInput defines the request for expending a spell slot
type UseSpellSlotInput struct {
	SessionRef string
	UserID     string
	Level      int
}

// RestoreSpellSlotsInput defines the request for restoring spell slots
type RestoreSpellSlotsInput struct {
	SessionRef string
	UserID     string
}

// UpdateHitPointsInput defines the request for damage or healing
type UpdateHitPointsInput struct {
	SessionRef string
	UserID     string
	Delta      int
}

// CharacterOutput is a detached copy of a character after a progression change
type CharacterOutput struct {
	Character *game.PlayerCharacter
}
