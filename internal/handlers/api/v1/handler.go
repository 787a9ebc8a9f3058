// Package v1 exposes the dungeon master over HTTP
package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/onekill0503/dnd-bot/internal/dice"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/orchestrators/session"
)

// HandlerConfig holds dependencies for the HTTP handler
type HandlerConfig struct {
	SessionService session.Service
	// Roller backs the dice endpoint; defaults to a crypto roller
	Roller *dice.Roller
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.SessionService == nil {
		vb.RequiredField("SessionService")
	}
	return vb.Build()
}

// Handler serves the session and dice routes
type Handler struct {
	sessions session.Service
	roller   *dice.Roller
}

// NewHandler creates a handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRoller(nil)
	}

	return &Handler{
		sessions: cfg.SessionService,
		roller:   roller,
	}, nil
}

// Router builds a gin engine with every route registered
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	h.Register(r.Group("/api/v1"))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

// Register mounts the routes on a router group
func (h *Handler) Register(api *gin.RouterGroup) {
	api.POST("/dice/roll", h.RollDice)

	sessions := api.Group("/sessions")
	sessions.POST("", h.StartSession)
	sessions.GET("/:ref", h.GetStatus)
	sessions.DELETE("/:ref", h.EndSession)
	sessions.GET("/:ref/transcript.pdf", h.ExportTranscript)

	sessions.POST("/:ref/characters", h.AddCharacter)
	sessions.GET("/:ref/characters", h.ListCharacters)
	sessions.GET("/:ref/characters/:userId", h.GetCharacter)
	sessions.PATCH("/:ref/characters/:userId/currency", h.UpdateCurrency)
	sessions.POST("/:ref/characters/:userId/items", h.AddItem)
	sessions.DELETE("/:ref/characters/:userId/items/:itemId", h.RemoveItem)
	sessions.POST("/:ref/characters/:userId/spell-slots/use", h.UseSpellSlot)
	sessions.POST("/:ref/characters/:userId/spell-slots/restore", h.RestoreSpellSlots)
	sessions.PATCH("/:ref/characters/:userId/hit-points", h.UpdateHitPoints)

	sessions.POST("/:ref/actions", h.TrackPlayerAction)
	sessions.POST("/:ref/continue", h.ResolveRound)
	sessions.POST("/:ref/encounter", h.GenerateEncounter)
	sessions.POST("/:ref/deaths", h.HandlePlayerDeath)

	memory := sessions.Group("/:ref/memory")
	memory.POST("/events", h.RecordImportantEvent)
	memory.POST("/npcs", h.TrackNPCInteraction)
	memory.POST("/quests", h.UpdateQuest)
	memory.POST("/environment", h.UpdateEnvironment)
}

// errorBody is the wire form of every failed request
type errorBody struct {
	Code    string `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if !errors.IsUserFacing(err) {
		slog.Error("Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err)
	}
	c.AbortWithStatusJSON(code.HTTPStatus(), errorBody{
		Code:    code.String(),
		Reason:  errors.GetReason(err).String(),
		Message: errors.GetMessage(err),
	})
}

// bind decodes the JSON body, rendering INVALID_ARGUMENT on failure
func bind(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		writeError(c, errors.InvalidArgumentf("malformed request body: %v", err))
		return false
	}
	return true
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
