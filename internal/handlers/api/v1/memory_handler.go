package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/orchestrators/session"
)

// MemoryResponse is the story context after an update
type MemoryResponse struct {
	Context string `json:"context"`
}

type recordEventRequest struct {
	Event string `json:"event"`
}

type npcInteractionRequest struct {
	NPCName     string `json:"npcName"`
	Interaction string `json:"interaction"`
}

type questRequest struct {
	Quest    string           `json:"quest"`
	Status   game.QuestStatus `json:"status"`
	Progress string           `json:"progress"`
}

type environmentRequest struct {
	Location string `json:"location"`
	State    string `json:"state"`
}

func writeMemory(c *gin.Context, out *session.MemoryOutput, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MemoryResponse{Context: out.Context})
}

// RecordImportantEvent handles POST /sessions/:ref/memory/events
func (h *Handler) RecordImportantEvent(c *gin.Context) {
	var req recordEventRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.sessions.RecordImportantEvent(c.Request.Context(), &session.RecordImportantEventInput{
		SessionRef: c.Param("ref"),
		Event:      req.Event,
	})
	writeMemory(c, out, err)
}

// TrackNPCInteraction handles POST /sessions/:ref/memory/npcs
func (h *Handler) TrackNPCInteraction(c *gin.Context) {
	var req npcInteractionRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.sessions.TrackNPCInteraction(c.Request.Context(), &session.TrackNPCInteractionInput{
		SessionRef:  c.Param("ref"),
		NPCName:     req.NPCName,
		Interaction: req.Interaction,
	})
	writeMemory(c, out, err)
}

// UpdateQuest handles POST /sessions/:ref/memory/quests
func (h *Handler) UpdateQuest(c *gin.Context) {
	var req questRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.sessions.UpdateQuest(c.Request.Context(), &session.UpdateQuestInput{
		SessionRef: c.Param("ref"),
		Quest:      req.Quest,
		Status:     req.Status,
		Progress:   req.Progress,
	})
	writeMemory(c, out, err)
}

// UpdateEnvironment handles POST /sessions/:ref/memory/environment
func (h *Handler) UpdateEnvironment(c *gin.Context) {
	var req environmentRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.sessions.UpdateEnvironment(c.Request.Context(), &session.UpdateEnvironmentInput{
		SessionRef: c.Param("ref"),
		Location:   req.Location,
		State:      req.State,
	})
	writeMemory(c, out, err)
}
