package character

import (
	"context"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
)

// Service builds character sheets and applies progression changes to them.
// Mutations change the character in place; callers serialize access.
type Service interface {
	// Creation
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// Progression
	UpdateCurrency(ctx context.Context, input *UpdateCurrencyInput) (*UpdateCurrencyOutput, error)
	AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error)
	RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error)
	UseSpellSlot(ctx context.Context, input *UseSpellSlotInput) (*UseSpellSlotOutput, error)
	RestoreSpellSlots(ctx context.Context, input *RestoreSpellSlotsInput) (*RestoreSpellSlotsOutput, error)
	ApplyHitPointChange(ctx context.Context, input *ApplyHitPointChangeInput) (*ApplyHitPointChangeOutput, error)
}

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	UserID      string
	Username    string
	Name        string
	Class       string
	Race        string
	Background  string
	Description string
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *game.PlayerCharacter
	// KnownClass and KnownBackground are false when defaults were substituted
	KnownClass      bool
	KnownBackground bool
}

// UpdateCurrencyInput defines the request for changing a character's coins
type UpdateCurrencyInput struct {
	Character *game.PlayerCharacter
	Delta     game.Currency
}

// UpdateCurrencyOutput defines the response for changing a character's coins
type UpdateCurrencyOutput struct {
	Currency game.Currency
}

// AddItemInput defines the request for adding an inventory item
type AddItemInput struct {
	Character *game.PlayerCharacter
	Name      string
	Quantity  int
}

// AddItemOutput defines the response for adding an inventory item
type AddItemOutput struct {
	Item game.Item
}

// RemoveItemInput defines the request for removing an inventory item.
// A non-positive quantity removes the whole stack.
type RemoveItemInput struct {
	Character *game.PlayerCharacter
	ItemID    string
	Quantity  int
}

// RemoveItemOutput defines the response for removing an inventory item
type RemoveItemOutput struct {
	Item      game.Item
	Remaining int
}

// UseSpellSlotInput defines the request for expending a spell slot
type UseSpellSlotInput struct {
	Character *game.PlayerCharacter
	Level     int
}

// UseSpellSlotOutput defines the response for expending a spell slot
type UseSpellSlotOutput struct {
	Slot game.SpellSlot
}

// RestoreSpellSlotsInput defines the request for a rest
type RestoreSpellSlotsInput struct {
	Character *game.PlayerCharacter
}

// RestoreSpellSlotsOutput defines the response for a rest
type RestoreSpellSlotsOutput struct {
	SpellSlots map[int]game.SpellSlot
}

// ApplyHitPointChangeInput defines the request for damage or healing.
// Negative deltas are damage.
type ApplyHitPointChangeInput struct {
	Character *game.PlayerCharacter
	Delta     int
}

// ApplyHitPointChangeOutput defines the response for damage or healing
type ApplyHitPointChangeOutput struct {
	HitPoints int
	Status    game.CharacterStatus
}
