package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"awaaz/internal/domain"
	"awaaz/internal/service"
)

// ProcessHandler handles dialogue turn requests.
type ProcessHandler struct {
	turns *service.TurnService
}

// NewProcessHandler creates a ProcessHandler.
func NewProcessHandler(turns *service.TurnService) *ProcessHandler {
	return &ProcessHandler{turns: turns}
}

// processRequest is one spoken turn: the transcript plus the record built up
// so far. The caller owns the state; the server holds nothing between turns.
type processRequest struct {
	Transcript   string            `json:"transcript"`
	CurrentState domain.FormRecord `json:"currentState"`
	SessionID    string            `json:"sessionId"`
}

// ProcessTurn handles POST /api/v1/process.
func (h *ProcessHandler) ProcessTurn(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	sessionID := uuid.Nil
	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "sessionId must be a valid UUID")
			return
		}
		sessionID = id
	}

	outcome, err := h.turns.ProcessTurn(c.Request.Context(), sessionID, req.Transcript, req.CurrentState)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, outcome)
}
