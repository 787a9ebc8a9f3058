package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/orchestrators/session"
)

// HeaderUserID identifies the participant making a request
const HeaderUserID = "X-User-ID"

type addItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type removeItemRequest struct {
	Quantity int `json:"quantity"`
}

type spellSlotRequest struct {
	Level int `json:"level"`
}

type hitPointsRequest struct {
	Delta int `json:"delta"`
}

func writeCharacter(c *gin.Context, out *session.CharacterOutput, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"character": out.Character})
}

// UpdateCurrency handles PATCH /sessions/:ref/characters/:userId/currency.
// The body is a coin delta, e.g. {"gp": 5, "sp": -2}.
func (h *Handler) UpdateCurrency(c *gin.Context) {
	var delta game.Currency
	if !bind(c, &delta) {
		return
	}
	out, err := h.sessions.UpdateCurrency(c.Request.Context(), &session.UpdateCurrencyInput{
		SessionRef: c.Param("ref"),
		UserID:     c.Param("userId"),
		Delta:      delta,
	})
	writeCharacter(c, out, err)
}

// AddItem handles POST /sessions/:ref/characters/:userId/items
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.sessions.AddItem(c.Request.Context(), &session.AddItemInput{
		SessionRef: c.Param("ref"),
		UserID:     c.Param("userId"),
		Name:       req.Name,
		Quantity:   req.Quantity,
	})
	writeCharacter(c, out, err)
}

// RemoveItem handles DELETE /sessions/:ref/characters/:userId/items/:itemId.
// Without a body the whole stack is removed.
func (h *Handler) RemoveItem(c *gin.Context) {
	var req removeItemRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}
	out, err := h.sessions.RemoveItem(c.Request.Context(), &session.RemoveItemInput{
		SessionRef: c.Param("ref"),
		UserID:     c.Param("userId"),
		ItemID:     c.Param("itemId"),
		Quantity:   req.Quantity,
	})
	writeCharacter(c, out, err)
}

// UseSpellSlot handles POST /sessions/:ref/characters/:userId/spell-slots/use
func (h *Handler) UseSpellSlot(c *gin.Context) {
	var req spellSlotRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.sessions.UseSpellSlot(c.Request.Context(), &session.UseSpellSlotInput{
		SessionRef: c.Param("ref"),
		UserID:     c.Param("userId"),
		Level:      req.Level,
	})
	writeCharacter(c, out, err)
}

// RestoreSpellSlots handles POST /sessions/:ref/characters/:userId/spell-slots/restore
func (h *Handler) RestoreSpellSlots(c *gin.Context) {
	out, err := h.sessions.RestoreSpellSlots(c.Request.Context(), &session.RestoreSpellSlotsInput{
		SessionRef: c.Param("ref"),
		UserID:     c.Param("userId"),
	})
	writeCharacter(c, out, err)
}

// UpdateHitPoints handles PATCH /sessions/:ref/characters/:userId/hit-points
func (h *Handler) UpdateHitPoints(c *gin.Context) {
	var req hitPointsRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.sessions.UpdateHitPoints(c.Request.Context(), &session.UpdateHitPointsInput{
		SessionRef: c.Param("ref"),
		UserID:     c.Param("userId"),
		Delta:      req.Delta,
	})
	writeCharacter(c, out, err)
}
