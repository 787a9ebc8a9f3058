package session

import (
	"context"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/story"
)

// RecordImportantEvent remembers a key story event
func (o *Orchestrator) RecordImportantEvent(ctx context.Context, input *RecordImportantEventInput) (*MemoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.updateMemory(ctx, input.SessionRef, func(s *game.Session) error {
		return story.AddImportantEvent(s, input.Event)
	})
}

// TrackNPCInteraction logs an interaction with a named NPC
func (o *Orchestrator) TrackNPCInteraction(ctx context.Context, input *TrackNPCInteractionInput) (*MemoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.updateMemory(ctx, input.SessionRef, func(s *game.Session) error {
		return story.TrackNPCInteraction(s, input.NPCName, input.Interaction)
	})
}

// UpdateQuest replaces the state of a quest
func (o *Orchestrator) UpdateQuest(ctx context.Context, input *UpdateQuestInput) (*MemoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.updateMemory(ctx, input.SessionRef, func(s *game.Session) error {
		return story.UpdateQuest(s, input.Quest, input.Status, input.Progress)
	})
}

// UpdateEnvironment replaces the state of a location
func (o *Orchestrator) UpdateEnvironment(ctx context.Context, input *UpdateEnvironmentInput) (*MemoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.updateMemory(ctx, input.SessionRef, func(s *game.Session) error {
		return story.UpdateEnvironment(s, input.Location, input.State)
	})
}

func (o *Orchestrator) updateMemory(ctx context.Context, ref string, apply func(s *game.Session) error) (*MemoryOutput, error) {
	var out *MemoryOutput
	err := o.withSession(ctx, ref, func(s *game.Session) error {
		if s.Status == game.StatusEnded {
			return errors.NotActive(string(s.Status))
		}
		if err := apply(s); err != nil {
			return err
		}
		o.persist(ctx, s)
		out = &MemoryOutput{Context: story.BuildPromptContext(s)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
