package session

import (
	"context"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/orchestrators/character"
)

// UpdateCurrency adds the delta to a character's coins, flooring each at zero
func (o *Orchestrator) UpdateCurrency(ctx context.Context, input *UpdateCurrencyInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutateCharacter(ctx, input.SessionRef, input.UserID, func(pc *game.PlayerCharacter) error {
		_, err := o.characters.UpdateCurrency(ctx, &character.UpdateCurrencyInput{Character: pc, Delta: input.Delta})
		return err
	})
}

// AddItem gives a character an item
func (o *Orchestrator) AddItem(ctx context.Context, input *AddItemInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutateCharacter(ctx, input.SessionRef, input.UserID, func(pc *game.PlayerCharacter) error {
		_, err := o.characters.AddItem(ctx, &character.AddItemInput{Character: pc, Name: input.Name, Quantity: input.Quantity})
		return err
	})
}

// RemoveItem takes an item from a character
func (o *Orchestrator) RemoveItem(ctx context.Context, input *RemoveItemInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutateCharacter(ctx, input.SessionRef, input.UserID, func(pc *game.PlayerCharacter) error {
		_, err := o.characters.RemoveItem(ctx, &character.RemoveItemInput{Character: pc, ItemID: input.ItemID, Quantity: input.Quantity})
		return err
	})
}

// UseSpellSlot expends one slot of the given level
func (o *Orchestrator) UseSpellSlot(ctx context.Context, input *UseSpellSlotInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutateCharacter(ctx, input.SessionRef, input.UserID, func(pc *game.PlayerCharacter) error {
		_, err := o.characters.UseSpellSlot(ctx, &character.UseSpellSlotInput{Character: pc, Level: input.Level})
		return err
	})
}

// RestoreSpellSlots restores every spell slot
func (o *Orchestrator) RestoreSpellSlots(ctx context.Context, input *RestoreSpellSlotsInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutateCharacter(ctx, input.SessionRef, input.UserID, func(pc *game.PlayerCharacter) error {
		_, err := o.characters.RestoreSpellSlots(ctx, &character.RestoreSpellSlotsInput{Character: pc})
		return err
	})
}

// UpdateHitPoints applies damage or healing. Dropping to zero leaves the
// character unconscious; deaths go through HandlePlayerDeath.
func (o *Orchestrator) UpdateHitPoints(ctx context.Context, input *UpdateHitPointsInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.mutateCharacter(ctx, input.SessionRef, input.UserID, func(pc *game.PlayerCharacter) error {
		_, err := o.characters.ApplyHitPointChange(ctx, &character.ApplyHitPointChangeInput{Character: pc, Delta: input.Delta})
		return err
	})
}

func (o *Orchestrator) mutateCharacter(ctx context.Context, ref, userID string, apply func(pc *game.PlayerCharacter) error) (*CharacterOutput, error) {
	var out *CharacterOutput
	err := o.withSession(ctx, ref, func(s *game.Session) error {
		if s.Status == game.StatusEnded {
			return errors.NotActive(string(s.Status))
		}
		pc, ok := s.Player(userID)
		if !ok {
			return errors.CharacterNotFound(userID)
		}
		if err := apply(pc); err != nil {
			return err
		}
		o.persist(ctx, s)
		out = &CharacterOutput{Character: cloneCharacter(pc)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
