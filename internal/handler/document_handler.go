package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"awaaz/internal/port"
	"awaaz/internal/service"
)

// DocumentHandler handles ID document photo uploads.
type DocumentHandler struct {
	documents *service.DocumentService
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// ExtractDocument handles POST /api/v1/documents/extract. It accepts a
// multipart upload under the "image" form key.
func (h *DocumentHandler) ExtractDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "IMAGE_REQUIRED", "image file is required")
		return
	}
	if fileHeader.Size > service.MaxImageBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "image exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_IMAGE", "could not read uploaded image")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_IMAGE", "could not read uploaded image")
		return
	}

	out, err := h.documents.ExtractFields(c.Request.Context(), port.DocumentInput{
		ImageBytes:  data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}
