package character

import (
	"context"
	"strings"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
)

// UpdateCurrency adds delta to each denomination. No denomination drops below zero.
func (o *Orchestrator) UpdateCurrency(_ context.Context, input *UpdateCurrencyInput) (*UpdateCurrencyOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	c := &input.Character.Currency
	c.Copper = max(0, c.Copper+input.Delta.Copper)
	c.Silver = max(0, c.Silver+input.Delta.Silver)
	c.Electrum = max(0, c.Electrum+input.Delta.Electrum)
	c.Gold = max(0, c.Gold+input.Delta.Gold)
	c.Platinum = max(0, c.Platinum+input.Delta.Platinum)

	return &UpdateCurrencyOutput{Currency: *c}, nil
}

// AddItem adds an item, stacking onto an existing entry with the same name
func (o *Orchestrator) AddItem(_ context.Context, input *AddItemInput) (*AddItemOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	name := strings.TrimSpace(input.Name)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	if input.Quantity < 0 {
		vb.InvalidField("quantity", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	qty := max(1, input.Quantity)
	pc := input.Character

	for i := range pc.Inventory {
		if strings.EqualFold(pc.Inventory[i].Name, name) {
			pc.Inventory[i].Quantity += qty
			return &AddItemOutput{Item: pc.Inventory[i]}, nil
		}
	}

	item := game.Item{
		ID:       o.idGen.Generate(),
		Name:     name,
		Quantity: qty,
	}
	pc.Inventory = append(pc.Inventory, item)

	return &AddItemOutput{Item: item}, nil
}

// RemoveItem removes quantity of an item, or the whole stack
func (o *Orchestrator) RemoveItem(_ context.Context, input *RemoveItemInput) (*RemoveItemOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item id is required")
	}

	pc := input.Character
	for i, item := range pc.Inventory {
		if item.ID != input.ItemID {
			continue
		}

		if input.Quantity > 0 && input.Quantity < item.Quantity {
			pc.Inventory[i].Quantity -= input.Quantity
			return &RemoveItemOutput{Item: pc.Inventory[i], Remaining: pc.Inventory[i].Quantity}, nil
		}

		pc.Inventory = append(pc.Inventory[:i], pc.Inventory[i+1:]...)
		item.Quantity = 0
		return &RemoveItemOutput{Item: item, Remaining: 0}, nil
	}

	return nil, errors.ItemNotFound(pc.UserID, input.ItemID)
}

// UseSpellSlot expends one slot of the given level
func (o *Orchestrator) UseSpellSlot(_ context.Context, input *UseSpellSlotInput) (*UseSpellSlotOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input.Level < 1 || input.Level > 9 {
		return nil, errors.InvalidArgumentf("spell level must be between 1 and 9, got %d", input.Level)
	}

	pc := input.Character
	slot, ok := pc.SpellSlots[input.Level]
	if !ok || slot.Available <= 0 {
		return nil, errors.NoSpellSlots(pc.UserID, input.Level)
	}

	slot.Used++
	slot = slot.Normalize()
	pc.SpellSlots[input.Level] = slot

	return &UseSpellSlotOutput{Slot: slot}, nil
}

// RestoreSpellSlots marks every slot unused
func (o *Orchestrator) RestoreSpellSlots(_ context.Context, input *RestoreSpellSlotsInput) (*RestoreSpellSlotsOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	pc := input.Character
	for level, slot := range pc.SpellSlots {
		slot.Used = 0
		pc.SpellSlots[level] = slot.Normalize()
	}

	return &RestoreSpellSlotsOutput{SpellSlots: pc.SpellSlots}, nil
}

// ApplyHitPointChange applies damage or healing within [0, max].
// Reaching zero knocks an alive character unconscious; healing wakes them.
// Dead characters cannot be healed.
func (o *Orchestrator) ApplyHitPointChange(_ context.Context, input *ApplyHitPointChangeInput) (*ApplyHitPointChangeOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	pc := input.Character
	if pc.IsDead() {
		return nil, errors.PlayerDead(pc.Name)
	}

	pc.HitPoints = min(pc.MaxHitPoints, max(0, pc.HitPoints+input.Delta))

	switch {
	case pc.HitPoints == 0:
		pc.Status = game.CharacterUnconscious
	case pc.Status == game.CharacterUnconscious:
		pc.Status = game.CharacterAlive
	}

	return &ApplyHitPointChangeOutput{
		HitPoints: pc.HitPoints,
		Status:    pc.Status,
	}, nil
}
