package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/narrative"
	"github.com/onekill0503/dnd-bot/internal/story"
)

// TrackPlayerAction records one participant's action for the current round.
// AllActed is reported only by the submission that completed the round;
// resolving the round is left to the caller.
func (o *Orchestrator) TrackPlayerAction(ctx context.Context, input *TrackPlayerActionInput) (*TrackPlayerActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	actionText := strings.TrimSpace(input.ActionText)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("userID", input.UserID, vb)
	errors.ValidateRequired("actionText", actionText, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var out *TrackPlayerActionOutput
	err := o.withSession(ctx, input.SessionRef, func(s *game.Session) error {
		if s.Status != game.StatusActive {
			return errors.NotActive(string(s.Status))
		}
		pc, ok := s.Player(input.UserID)
		if !ok {
			return errors.CharacterNotFound(input.UserID)
		}
		if pc.IsDead() {
			return errors.PlayerDead(pc.Name)
		}
		if s.PendingActions.Has(input.UserID) {
			return errors.AlreadyActed(input.UserID)
		}

		roll, err := o.analyzer.GenerateAutomaticRoll(actionText, pc)
		if err != nil {
			return errors.Wrap(err, "failed to roll for action")
		}

		completedBefore := s.AllAlivePlayersActed()

		s.PendingActions.Set(input.UserID, game.PendingAction{
			ActionText:  actionText,
			DiceSummary: roll.Summary(),
			Roll:        roll,
			Timestamp:   o.clock.Now(),
		})
		history, _ := s.PlayerActions.Get(input.UserID)
		s.PlayerActions.Set(input.UserID, append(history, actionText))
		story.AppendEvent(s, pc.Name+": "+actionText)
		if summary := roll.Summary(); summary != "" {
			story.AppendEvent(s, pc.Name+" rolled "+summary)
		}

		out = &TrackPlayerActionOutput{
			Accepted:  true,
			AllActed:  !completedBefore && s.AllAlivePlayersActed(),
			Roll:      roll,
			WaitingOn: s.WaitingOn(),
		}

		slog.Info("Player action tracked",
			"session_id", s.SessionID,
			"user_id", input.UserID,
			"round", s.SessionRound,
			"requires_roll", roll != nil,
			"all_acted", out.AllActed)

		o.persist(ctx, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveRound turns the pending actions into one story beat. The session
// lock is released while the generator runs; a second resolution of the
// same round in that window fails with RoundInProgress. A generation
// failure resolves the round with the fallback narrative.
func (o *Orchestrator) ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	id, err := resolveRef(input.SessionRef)
	if err != nil {
		return nil, err
	}

	l := o.locks.acquire(id)
	snap, err := o.snapshotRound(ctx, id, l)
	if err != nil {
		o.locks.release(id, l)
		return nil, err
	}
	l.resolving = true
	o.locks.retain(l)
	o.locks.release(id, l)

	text, fallback := o.generateOr(ctx, snap.session, snap.prompt, narrative.FallbackNarrative)

	l.mu.Lock()
	defer o.locks.release(id, l)
	l.resolving = false

	// the session may have been ended and evicted while unlocked
	s, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}

	story.AppendEvent(s, text)
	story.ApplySceneHeuristic(s, text)
	s.SessionRound++
	for userID, ts := range snap.resolved {
		if pending, ok := s.PendingActions.Get(userID); ok && pending.Timestamp.Equal(ts) {
			s.PendingActions.Delete(userID)
		}
	}

	o.persist(ctx, s)
	o.narrate(ctx, s, text)

	slog.Info("Round resolved",
		"session_id", s.SessionID,
		"round", s.SessionRound,
		"actions", len(snap.order),
		"fallback", fallback)

	return &ResolveRoundOutput{
		Narrative: text,
		Round:     s.SessionRound,
		Resolved:  snap.order,
		Fallback:  fallback,
	}, nil
}

type roundSnapshot struct {
	session  *game.Session
	prompt   string
	order    []string
	resolved map[string]time.Time
}

// snapshotRound captures what the round resolves; l must be held
func (o *Orchestrator) snapshotRound(ctx context.Context, id string, l *sessionLock) (*roundSnapshot, error) {
	if l.resolving {
		s, err := o.load(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, errors.RoundInProgress(s.SessionRound)
	}

	s, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status != game.StatusActive {
		return nil, errors.NotActive(string(s.Status))
	}
	if s.PendingActions.Len() == 0 {
		return nil, errors.NoPendingActions()
	}

	snap := &roundSnapshot{
		resolved: make(map[string]time.Time, s.PendingActions.Len()),
	}
	actions := make([]narrative.RoundAction, 0, s.PendingActions.Len())
	for _, p := range s.PendingActions.Pairs() {
		name := p.Key
		if pc, ok := s.Player(p.Key); ok {
			name = pc.Name
		}
		actions = append(actions, narrative.RoundAction{
			CharacterName: name,
			ActionText:    p.Value.ActionText,
			DiceSummary:   p.Value.DiceSummary,
		})
		snap.order = append(snap.order, p.Key)
		snap.resolved[p.Key] = p.Value.Timestamp
	}

	// the generator works from a detached copy so the live session can move on
	snap.session = cloneSession(s)
	snap.prompt = o.prompts.Round(snap.session, actions)
	return snap, nil
}

// GenerateEncounter asks for a new encounter. It never touches pending actions.
func (o *Orchestrator) GenerateEncounter(ctx context.Context, input *GenerateEncounterInput) (*GenerateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	id, err := resolveRef(input.SessionRef)
	if err != nil {
		return nil, err
	}

	l := o.locks.acquire(id)
	s, err := o.load(ctx, id)
	if err == nil && s.Status != game.StatusActive {
		err = errors.NotActive(string(s.Status))
	}
	if err != nil {
		o.locks.release(id, l)
		return nil, err
	}
	detached := cloneSession(s)
	o.locks.retain(l)
	o.locks.release(id, l)

	text, genErr := o.generator.Generate(ctx, o.prompts.System(detached), o.prompts.Encounter(detached, input.Kind, input.Difficulty))

	l.mu.Lock()
	defer o.locks.release(id, l)

	if genErr != nil {
		if errors.HasReason(genErr, errors.ReasonGenerationFailed) {
			return nil, genErr
		}
		return nil, errors.GenerationFailed(genErr)
	}

	s, err = o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	story.AppendEvent(s, text)
	o.persist(ctx, s)
	o.narrate(ctx, s, text)

	slog.Info("Encounter generated",
		"session_id", s.SessionID,
		"kind", input.Kind,
		"difficulty", input.Difficulty)

	return &GenerateEncounterOutput{Encounter: text}, nil
}
