package v1

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/export"
	"github.com/onekill0503/dnd-bot/internal/orchestrators/session"
)

// StartSessionRequest opens a session in a voice channel
type StartSessionRequest struct {
	VoiceChannelID string `json:"voiceChannelId"`
	GuildID        string `json:"guildId"`
	CreatorID      string `json:"creatorId"`
	PartyLevel     int    `json:"partyLevel"`
	PartySize      int    `json:"partySize"`
	Theme          string `json:"theme"`
	Language       string `json:"language"`
}

// StartSessionResponse carries the new session and its welcome narration
type StartSessionResponse struct {
	Session *game.Session `json:"session"`
	Welcome string        `json:"welcome"`
}

// StartSession handles POST /sessions
func (h *Handler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.sessions.StartSession(c.Request.Context(), &session.StartSessionInput{
		VoiceChannelID: req.VoiceChannelID,
		GuildID:        req.GuildID,
		CreatorID:      req.CreatorID,
		PartyLevel:     req.PartyLevel,
		PartySize:      req.PartySize,
		Theme:          req.Theme,
		Language:       req.Language,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StartSessionResponse{Session: out.Session, Welcome: out.Welcome})
}

// StatusResponse is a session snapshot plus the players still to act
type StatusResponse struct {
	Session   *game.Session `json:"session"`
	WaitingOn []string      `json:"waitingOn"`
}

// GetStatus handles GET /sessions/:ref
func (h *Handler) GetStatus(c *gin.Context) {
	out, err := h.sessions.GetStatus(c.Request.Context(), &session.GetStatusInput{
		SessionRef: c.Param("ref"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Session: out.Session, WaitingOn: out.WaitingOn})
}

// EndSession handles DELETE /sessions/:ref. The requestor comes from the
// X-User-ID header.
func (h *Handler) EndSession(c *gin.Context) {
	out, err := h.sessions.EndSession(c.Request.Context(), &session.EndSessionInput{
		SessionRef:  c.Param("ref"),
		RequestorID: c.GetHeader(HeaderUserID),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": out.Session})
}

// ExportTranscript handles GET /sessions/:ref/transcript.pdf
func (h *Handler) ExportTranscript(c *gin.Context) {
	out, err := h.sessions.GetStatus(c.Request.Context(), &session.GetStatusInput{
		SessionRef: c.Param("ref"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	pdf, err := export.Transcript(out.Session)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.Session.SessionID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// AddCharacterRequest creates a character for a participant
type AddCharacterRequest struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Race        string `json:"race"`
	Background  string `json:"background"`
	Description string `json:"description"`
}

// AddCharacterResponse reports the created character and any activation
type AddCharacterResponse struct {
	Character        *game.PlayerCharacter `json:"character"`
	SessionActivated bool                  `json:"sessionActivated"`
	OpeningScene     string                `json:"openingScene,omitempty"`
	KnownClass       bool                  `json:"knownClass"`
	KnownBackground  bool                  `json:"knownBackground"`
}

// AddCharacter handles POST /sessions/:ref/characters
func (h *Handler) AddCharacter(c *gin.Context) {
	var req AddCharacterRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.sessions.AddCharacter(c.Request.Context(), &session.AddCharacterInput{
		SessionRef:  c.Param("ref"),
		UserID:      req.UserID,
		Username:    req.Username,
		Name:        req.Name,
		Class:       req.Class,
		Race:        req.Race,
		Background:  req.Background,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AddCharacterResponse{
		Character:        out.Character,
		SessionActivated: out.SessionActivated,
		OpeningScene:     out.OpeningScene,
		KnownClass:       out.KnownClass,
		KnownBackground:  out.KnownBackground,
	})
}

// ListCharacters handles GET /sessions/:ref/characters
func (h *Handler) ListCharacters(c *gin.Context) {
	out, err := h.sessions.ListCharacters(c.Request.Context(), &session.ListCharactersInput{
		SessionRef: c.Param("ref"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"characters": out.Characters})
}

// GetCharacter handles GET /sessions/:ref/characters/:userId
func (h *Handler) GetCharacter(c *gin.Context) {
	out, err := h.sessions.GetCharacter(c.Request.Context(), &session.GetCharacterInput{
		SessionRef: c.Param("ref"),
		UserID:     c.Param("userId"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"character": out.Character})
}

// TrackPlayerActionRequest submits one participant's action for the round
type TrackPlayerActionRequest struct {
	UserID     string `json:"userId"`
	ActionText string `json:"actionText"`
}

// TrackPlayerActionResponse reports the automatic roll and round progress.
// Resolution is set when this submission completed the round.
type TrackPlayerActionResponse struct {
	Accepted   bool                    `json:"accepted"`
	AllActed   bool                    `json:"allActed"`
	Roll       *game.AutomaticDiceRoll `json:"roll,omitempty"`
	WaitingOn  []string                `json:"waitingOn"`
	Resolution *ResolveRoundResponse   `json:"resolution,omitempty"`
}

// TrackPlayerAction handles POST /sessions/:ref/actions. The submission from
// the last alive player resolves the round before responding.
func (h *Handler) TrackPlayerAction(c *gin.Context) {
	var req TrackPlayerActionRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.sessions.TrackPlayerAction(c.Request.Context(), &session.TrackPlayerActionInput{
		SessionRef: c.Param("ref"),
		UserID:     req.UserID,
		ActionText: req.ActionText,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := TrackPlayerActionResponse{
		Accepted:  out.Accepted,
		AllActed:  out.AllActed,
		Roll:      out.Roll,
		WaitingOn: out.WaitingOn,
	}
	if out.AllActed {
		resp.Resolution = h.resolveCompletedRound(c, c.Param("ref"))
	}

	c.JSON(http.StatusAccepted, resp)
}

// resolveCompletedRound runs the round for the submission that completed it.
// The action is already recorded, so a failure here is logged and the round
// stays open for an explicit continue.
func (h *Handler) resolveCompletedRound(c *gin.Context, ref string) *ResolveRoundResponse {
	out, err := h.sessions.ResolveRound(c.Request.Context(), &session.ResolveRoundInput{SessionRef: ref})
	if err != nil {
		if errors.IsUserFacing(err) {
			slog.Info("Round not resolved after final action", "session_ref", ref, "reason", errors.GetReason(err))
		} else {
			slog.Error("Failed to resolve completed round", "session_ref", ref, "error", err)
		}
		return nil
	}

	resp := toResolveRoundResponse(out)
	return &resp
}

// ResolveRoundResponse carries the round narrative
type ResolveRoundResponse struct {
	Narrative string   `json:"narrative"`
	Round     int      `json:"round"`
	Resolved  []string `json:"resolved"`
	Fallback  bool     `json:"fallback"`
}

// ResolveRound handles POST /sessions/:ref/continue
func (h *Handler) ResolveRound(c *gin.Context) {
	out, err := h.sessions.ResolveRound(c.Request.Context(), &session.ResolveRoundInput{
		SessionRef: c.Param("ref"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResolveRoundResponse(out))
}

func toResolveRoundResponse(out *session.ResolveRoundOutput) ResolveRoundResponse {
	return ResolveRoundResponse{
		Narrative: out.Narrative,
		Round:     out.Round,
		Resolved:  out.Resolved,
		Fallback:  out.Fallback,
	}
}

// GenerateEncounterRequest selects the encounter kind and difficulty
type GenerateEncounterRequest struct {
	Kind       string `json:"kind"`
	Difficulty string `json:"difficulty"`
}

// GenerateEncounter handles POST /sessions/:ref/encounter. An empty body
// generates a medium combat encounter.
func (h *Handler) GenerateEncounter(c *gin.Context) {
	var req GenerateEncounterRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	out, err := h.sessions.GenerateEncounter(c.Request.Context(), &session.GenerateEncounterInput{
		SessionRef: c.Param("ref"),
		Kind:       req.Kind,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"encounter": out.Encounter})
}

// HandlePlayerDeathRequest reports a character's death
type HandlePlayerDeathRequest struct {
	UserID string `json:"userId"`
	Cause  string `json:"cause"`
}

// HandlePlayerDeathResponse reports whether the death ended the session
type HandlePlayerDeathResponse struct {
	SessionEnded bool     `json:"sessionEnded"`
	Message      string   `json:"message"`
	Survivors    []string `json:"survivors"`
	AllActed     bool     `json:"allActed"`
}

// HandlePlayerDeath handles POST /sessions/:ref/deaths
func (h *Handler) HandlePlayerDeath(c *gin.Context) {
	var req HandlePlayerDeathRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.sessions.HandlePlayerDeath(c.Request.Context(), &session.HandlePlayerDeathInput{
		SessionRef: c.Param("ref"),
		UserID:     req.UserID,
		Cause:      req.Cause,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, HandlePlayerDeathResponse{
		SessionEnded: out.SessionEnded,
		Message:      out.Message,
		Survivors:    out.Survivors,
		AllActed:     out.AllActed,
	})
}
