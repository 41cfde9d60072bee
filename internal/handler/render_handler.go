package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"awaaz/internal/domain"
	"awaaz/internal/service"
)

// RenderHandler handles form document generation and retrieval.
type RenderHandler struct {
	render *service.RenderService
}

// NewRenderHandler creates a RenderHandler.
func NewRenderHandler(render *service.RenderService) *RenderHandler {
	return &RenderHandler{render: render}
}

type generateRequest struct {
	FormData  domain.FormRecord `json:"formData"`
	SessionID string            `json:"sessionId"`
}

// GeneratePDF handles POST /api/v1/generate-pdf. The response body is the PDF
// itself, not a JSON envelope, so the client can offer it for download directly.
func (h *RenderHandler) GeneratePDF(c *gin.Context) {
	var req generateRequest
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

	pdf, err := h.render.Generate(c.Request.Context(), sessionID, req.FormData)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="loan-application.pdf"`)
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GetDocumentURL handles GET /api/v1/sessions/:id/document. It returns a
// presigned download link for the session's archived PDF.
func (h *RenderHandler) GetDocumentURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a valid UUID")
		return
	}

	url, err := h.render.DocumentURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}
