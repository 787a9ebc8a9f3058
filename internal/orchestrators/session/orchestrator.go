// Package session implements the dungeon master session state machine
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/onekill0503/dnd-bot/internal/analyzer"
	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/narrative"
	"github.com/onekill0503/dnd-bot/internal/orchestrators/character"
	"github.com/onekill0503/dnd-bot/internal/pkg/clock"
	sessionrepo "github.com/onekill0503/dnd-bot/internal/repositories/session"
	"github.com/onekill0503/dnd-bot/internal/rules"
	"github.com/onekill0503/dnd-bot/internal/story"
)

// Session limits
const (
	DefaultPartySize = 4
	MaxPartySize     = 10
	MaxPartyLevel    = 20
	DefaultLanguage  = "en"
)

// Config holds the dependencies for the session orchestrator
type Config struct {
	Repository sessionrepo.Repository
	Characters character.Service
	Analyzer   *analyzer.Analyzer
	Generator  narrative.Generator
	// EventBus receives narration and lifecycle events (optional)
	EventBus events.EventBus
	Prompts  *narrative.PromptBuilder
	Rules    *rules.Book
	Clock    clock.Clock
	// DefaultPartySize applies when a start request leaves it unset
	DefaultPartySize int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Characters == nil {
		vb.RequiredField("Characters")
	}
	if c.Analyzer == nil {
		vb.RequiredField("Analyzer")
	}
	if c.Generator == nil {
		vb.RequiredField("Generator")
	}
	if c.DefaultPartySize < 0 || c.DefaultPartySize > MaxPartySize {
		vb.Fieldf("DefaultPartySize", "must be between 0 and %d", MaxPartySize)
	}

	return vb.Build()
}

// Orchestrator implements the session Service
type Orchestrator struct {
	repo       sessionrepo.Repository
	characters character.Service
	analyzer   *analyzer.Analyzer
	generator  narrative.Generator
	bus        events.EventBus
	prompts    *narrative.PromptBuilder
	rules      *rules.Book
	clock      clock.Clock
	partySize  int

	locks *lockRegistry
}

// New creates a new session orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	book := cfg.Rules
	if book == nil {
		book = rules.Default()
	}
	prompts := cfg.Prompts
	if prompts == nil {
		prompts = narrative.NewPromptBuilder(book)
	}
	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	partySize := cfg.DefaultPartySize
	if partySize == 0 {
		partySize = DefaultPartySize
	}

	return &Orchestrator{
		repo:       cfg.Repository,
		characters: cfg.Characters,
		analyzer:   cfg.Analyzer,
		generator:  cfg.Generator,
		bus:        bus,
		prompts:    prompts,
		rules:      book,
		clock:      clk,
		partySize:  partySize,
		locks:      newLockRegistry(),
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// EventBus returns the bus events are published on
func (o *Orchestrator) EventBus() events.EventBus {
	return o.bus
}

// resolveRef normalizes a session id or voice channel id
func resolveRef(ref string) (string, error) {
	id := game.ResolveSessionID(ref)
	if id == "" {
		return "", errors.InvalidArgument("session reference is required")
	}
	return id, nil
}

// withSession runs fn under the session lock with the live session
func (o *Orchestrator) withSession(ctx context.Context, ref string, fn func(s *game.Session) error) error {
	id, err := resolveRef(ref)
	if err != nil {
		return err
	}

	l := o.locks.acquire(id)
	defer o.locks.release(id, l)

	s, err := o.load(ctx, id)
	if err != nil {
		return err
	}
	return fn(s)
}

func (o *Orchestrator) load(ctx context.Context, id string) (*game.Session, error) {
	out, err := o.repo.Get(ctx, sessionrepo.GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

// persist saves the session. Failures are logged and never rolled back.
func (o *Orchestrator) persist(ctx context.Context, s *game.Session) {
	s.UpdatedAt = o.clock.Now()
	if _, err := o.repo.Save(ctx, sessionrepo.SaveInput{Session: s}); err != nil {
		slog.Warn("Failed to persist session",
			"session_id", s.SessionID,
			"round", s.SessionRound,
			"error", err)
	}
}

func (o *Orchestrator) publish(ctx context.Context, eventType string, source core.Entity) {
	if err := o.bus.Publish(ctx, events.NewGameEvent(eventType, source, nil)); err != nil {
		slog.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}

// narrate hands text to the narration subscribers
func (o *Orchestrator) narrate(ctx context.Context, s *game.Session, text string) {
	o.publish(ctx, game.EventNarration, &game.Narration{
		SessionID:      s.SessionID,
		VoiceChannelID: s.VoiceChannelID,
		Language:       s.Language,
		Text:           text,
	})
}

// generateOr calls the generator and substitutes fallback on failure
func (o *Orchestrator) generateOr(ctx context.Context, s *game.Session, prompt, fallback string) (string, bool) {
	text, err := o.generator.Generate(ctx, o.prompts.System(s), prompt)
	if err != nil {
		slog.Warn("Narrative generation failed, using fallback",
			"session_id", s.SessionID,
			"error", err)
		return fallback, true
	}
	return text, false
}

// StartSession opens a session for a voice channel in character creation
func (o *Orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	partyLevel := input.PartyLevel
	if partyLevel == 0 {
		partyLevel = 1
	}
	partySize := input.PartySize
	if partySize == 0 {
		partySize = o.partySize
	}
	language := strings.ToLower(strings.TrimSpace(input.Language))
	if language == "" {
		language = DefaultLanguage
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("voiceChannelID", input.VoiceChannelID, vb)
	errors.ValidateRequired("creatorID", input.CreatorID, vb)
	if game.IsSessionID(input.VoiceChannelID) {
		vb.InvalidField("voiceChannelID", "must not be a session id")
	}
	errors.ValidateRange("partyLevel", partyLevel, 1, MaxPartyLevel, vb)
	errors.ValidateRange("partySize", partySize, 1, MaxPartySize, vb)
	if _, ok := o.rules.Language(language); !ok {
		vb.InvalidField("language", "unsupported language "+language)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	channelID := strings.TrimSpace(input.VoiceChannelID)
	id := game.SessionIDForChannel(channelID)

	l := o.locks.acquire(id)
	defer o.locks.release(id, l)

	existing, err := o.load(ctx, id)
	switch {
	case err == nil && existing.Status != game.StatusEnded:
		return nil, errors.SessionRunning(channelID, id)
	case err != nil && !errors.IsNotFound(err):
		slog.Warn("Failed to check for an existing session", "session_id", id, "error", err)
	}

	now := o.clock.Now()
	s := &game.Session{
		SessionID:      id,
		VoiceChannelID: channelID,
		GuildID:        input.GuildID,
		CreatorID:      input.CreatorID,
		Theme:          strings.TrimSpace(input.Theme),
		Status:         game.StatusCharacterCreation,
		PartyLevel:     partyLevel,
		PartySize:      partySize,
		MaxPlayers:     partySize,
		Language:       language,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	welcome, _ := o.generateOr(ctx, s, o.prompts.Welcome(s), narrative.FallbackWelcome)
	story.AppendEvent(s, welcome)

	o.persist(ctx, s)
	o.narrate(ctx, s, welcome)

	slog.Info("Session started",
		"session_id", id,
		"creator_id", input.CreatorID,
		"party_size", partySize,
		"language", language)

	return &StartSessionOutput{
		Session: cloneSession(s),
		Welcome: welcome,
	}, nil
}

// AddCharacter creates a character for a participant. The join that fills
// the party activates the session and generates the opening scene.
func (o *Orchestrator) AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out *AddCharacterOutput
	err := o.withSession(ctx, input.SessionRef, func(s *game.Session) error {
		if s.Status == game.StatusEnded {
			return errors.NotActive(string(s.Status))
		}
		if s.Players.Has(input.UserID) {
			return errors.DuplicateCharacter(input.UserID)
		}
		if s.IsFull() {
			return errors.PartyFull(s.MaxPlayers)
		}

		created, err := o.characters.CreateCharacter(ctx, &character.CreateCharacterInput{
			UserID:      input.UserID,
			Username:    input.Username,
			Name:        strings.TrimSpace(input.Name),
			Class:       strings.TrimSpace(input.Class),
			Race:        strings.TrimSpace(input.Race),
			Background:  strings.TrimSpace(input.Background),
			Description: strings.TrimSpace(input.Description),
		})
		if err != nil {
			return err
		}

		pc := created.Character
		s.Players.Set(pc.UserID, pc)
		out = &AddCharacterOutput{
			KnownClass:      created.KnownClass,
			KnownBackground: created.KnownBackground,
		}

		slog.Info("Character joined session",
			"session_id", s.SessionID,
			"user_id", pc.UserID,
			"class", pc.Class,
			"players", s.Players.Len(),
			"max_players", s.MaxPlayers)

		// the status guard makes activation happen once even if joins race
		if s.IsFull() && s.Transition(game.StatusActive) {
			opening, _ := o.generateOr(ctx, s, o.prompts.OpeningScene(s), narrative.FallbackOpening)
			story.AppendEvent(s, opening)

			out.SessionActivated = true
			out.OpeningScene = opening

			o.persist(ctx, s)
			o.publish(ctx, game.EventSessionActive, cloneSession(s))
			o.narrate(ctx, s, opening)

			slog.Info("Session active", "session_id", s.SessionID)
		} else {
			o.persist(ctx, s)
		}

		out.Character = cloneCharacter(pc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetStatus returns a detached copy of the session
func (o *Orchestrator) GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out *GetStatusOutput
	err := o.withSession(ctx, input.SessionRef, func(s *game.Session) error {
		out = &GetStatusOutput{
			Session:   cloneSession(s),
			WaitingOn: s.WaitingOn(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetCharacter returns a detached copy of one participant's character
func (o *Orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out *GetCharacterOutput
	err := o.withSession(ctx, input.SessionRef, func(s *game.Session) error {
		pc, ok := s.Player(input.UserID)
		if !ok {
			return errors.CharacterNotFound(input.UserID)
		}
		out = &GetCharacterOutput{Character: cloneCharacter(pc)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCharacters returns detached copies of every character in join order
func (o *Orchestrator) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out *ListCharactersOutput
	err := o.withSession(ctx, input.SessionRef, func(s *game.Session) error {
		chars := make([]*game.PlayerCharacter, 0, s.Players.Len())
		for _, pc := range s.Players.Values() {
			chars = append(chars, cloneCharacter(pc))
		}
		out = &ListCharactersOutput{Characters: chars}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EndSession ends a session on behalf of its creator and drops the durable copy
func (o *Orchestrator) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out *EndSessionOutput
	err := o.withSession(ctx, input.SessionRef, func(s *game.Session) error {
		if input.RequestorID != s.CreatorID {
			return errors.Forbidden("only the session creator can end the session")
		}
		if !s.Transition(game.StatusEnded) {
			return errors.NotActive(string(s.Status))
		}
		s.EndReason = game.EndReasonExplicit
		s.UpdatedAt = o.clock.Now()

		if _, err := o.repo.Delete(ctx, sessionrepo.DeleteInput{ID: s.SessionID}); err != nil {
			slog.Warn("Failed to delete ended session", "session_id", s.SessionID, "error", err)
		}

		ended := cloneSession(s)
		o.publish(ctx, game.EventSessionEnded, ended)

		slog.Info("Session ended",
			"session_id", s.SessionID,
			"reason", s.EndReason,
			"rounds", s.SessionRound)

		out = &EndSessionOutput{Session: ended}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// cloneSession detaches a session from the live copy
func cloneSession(s *game.Session) *game.Session {
	var c game.Session
	mustClone(s, &c)
	return &c
}

func cloneCharacter(pc *game.PlayerCharacter) *game.PlayerCharacter {
	var c game.PlayerCharacter
	mustClone(pc, &c)
	return &c
}

// mustClone deep copies through the JSON encoding every record already has
func mustClone(src, dst any) {
	data, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		panic(err)
	}
}
