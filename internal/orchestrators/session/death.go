package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/story"
)

// HandlePlayerDeath marks a character dead. When nobody is left alive the
// session ends with EndReasonAllPlayersDead. The check runs under the
// session lock so simultaneous deaths end the session exactly once.
func (o *Orchestrator) HandlePlayerDeath(ctx context.Context, input *HandlePlayerDeathInput) (*HandlePlayerDeathOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out *HandlePlayerDeathOutput
	err := o.withSession(ctx, input.SessionRef, func(s *game.Session) error {
		if s.Status == game.StatusEnded {
			return errors.NotActive(string(s.Status))
		}
		pc, ok := s.Player(input.UserID)
		if !ok {
			return errors.CharacterNotFound(input.UserID)
		}

		out = &HandlePlayerDeathOutput{}
		if pc.IsDead() {
			out.Message = fmt.Sprintf("%s has already fallen.", pc.Name)
			out.Survivors = survivorNames(s)
			return nil
		}

		completedBefore := s.AllAlivePlayersActed()

		pc.Status = game.CharacterDead
		pc.HitPoints = 0

		cause := strings.TrimSpace(input.Cause)
		if cause == "" {
			cause = "unknown causes"
		}
		deathEvent := fmt.Sprintf("%s died: %s", pc.Name, cause)
		story.AppendEvent(s, deathEvent)
		if err := story.AddImportantEvent(s, deathEvent); err != nil {
			return err
		}
		o.publish(ctx, game.EventPlayerDied, cloneCharacter(pc))

		slog.Info("Character died",
			"session_id", s.SessionID,
			"user_id", pc.UserID,
			"cause", cause)

		out.Survivors = survivorNames(s)
		if len(out.Survivors) == 0 {
			s.Transition(game.StatusEnded)
			s.EndReason = game.EndReasonAllPlayersDead
			out.SessionEnded = true
			out.Message = gameOverMessage(s)

			story.AppendEvent(s, out.Message)
			o.persist(ctx, s)
			o.publish(ctx, game.EventSessionEnded, cloneSession(s))
			o.narrate(ctx, s, out.Message)

			slog.Info("Session ended",
				"session_id", s.SessionID,
				"reason", s.EndReason,
				"rounds", s.SessionRound)
			return nil
		}

		out.AllActed = s.Status == game.StatusActive && !completedBefore && s.AllAlivePlayersActed()
		out.Message = fmt.Sprintf("%s has fallen. The adventure continues with %s.",
			pc.Name, strings.Join(out.Survivors, ", "))

		o.persist(ctx, s)
		o.narrate(ctx, s, out.Message)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func survivorNames(s *game.Session) []string {
	alive := s.AlivePlayers()
	names := make([]string, 0, len(alive))
	for _, pc := range alive {
		names = append(names, pc.Name)
	}
	return names
}

func gameOverMessage(s *game.Session) string {
	var b strings.Builder
	b.WriteString("Game over. The whole party has fallen:")
	for _, pc := range s.Players.Values() {
		fmt.Fprintf(&b, "\n- %s, %s %s (level %d)", pc.Name, pc.Race, pc.Class, pc.Level)
	}
	return b.String()
}
