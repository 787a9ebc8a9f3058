package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
)

// RollDiceRequest rolls a notation such as "2d6+3"
type RollDiceRequest struct {
	Notation string `json:"notation"`
	// Mode is "advantage" or "disadvantage" for a d20 check; Notation is ignored
	Mode     string `json:"mode,omitempty"`
	Modifier int    `json:"modifier,omitempty"`
}

// RollDiceResponse carries the roll and its display form
type RollDiceResponse struct {
	Roll    *game.DiceRoll `json:"roll"`
	Display string         `json:"display"`
}

// RollDice handles POST /dice/roll
func (h *Handler) RollDice(c *gin.Context) {
	var req RollDiceRequest
	if !bind(c, &req) {
		return
	}

	var (
		roll *game.DiceRoll
		err  error
	)
	switch req.Mode {
	case "":
		if req.Notation == "" {
			writeError(c, errors.InvalidArgument("notation is required"))
			return
		}
		roll, err = h.roller.RollNotation(req.Notation)
	case "advantage":
		roll, err = h.roller.RollAdvantage(req.Modifier)
	case "disadvantage":
		roll, err = h.roller.RollDisadvantage(req.Modifier)
	default:
		err = errors.InvalidArgumentf("unknown roll mode %q", req.Mode)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, RollDiceResponse{Roll: roll, Display: roll.String()})
}
