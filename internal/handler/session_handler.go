package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"awaaz/internal/domain"
	"awaaz/internal/service"
)

// SessionHandler handles stored session CRUD.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type saveSessionRequest struct {
	Record      domain.FormRecord        `json:"record"`
	Transcripts []domain.TranscriptEntry `json:"transcripts"`
	ChatLog     []domain.ChatEntry       `json:"chatLog"`
	Status      domain.SessionStatus     `json:"status"`
}

// SaveSession handles POST /api/v1/sessions and PUT /api/v1/sessions/:id.
func (h *SessionHandler) SaveSession(c *gin.Context) {
	var req saveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.Record == nil {
		HandleError(c, domain.ErrRecordRequired)
		return
	}

	sessionID := uuid.Nil
	if idParam := c.Param("id"); idParam != "" {
		id, err := uuid.Parse(idParam)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a valid UUID")
			return
		}
		sessionID = id
	}

	status := req.Status
	if status == "" {
		status = domain.SessionInProgress
	}

	session := &domain.FormSession{ID: sessionID, Status: status}
	session.Record, _ = json.Marshal(req.Record)
	session.Transcripts, _ = json.Marshal(req.Transcripts)
	session.ChatLog, _ = json.Marshal(req.ChatLog)

	if err := h.sessions.Save(c.Request.Context(), session); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, session)
}

// GetSession handles GET /api/v1/sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a valid UUID")
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, session)
}

// ListSessions handles GET /api/v1/sessions.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	sessions, total, err := h.sessions.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, sessions, PagMeta{Total: total, Offset: offset, Limit: limit})
}
