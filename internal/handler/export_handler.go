package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"awaaz/internal/csvexport"
	"awaaz/internal/domain"
	"awaaz/internal/service"
	"awaaz/internal/xlsxexport"
)

// ExportHandler streams stored sessions as CSV or Excel for back-office use.
type ExportHandler struct {
	sessions *service.SessionService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(sessions *service.SessionService) *ExportHandler {
	return &ExportHandler{sessions: sessions}
}

// Export handles GET /api/v1/export?format=csv|xlsx (default csv).
func (h *ExportHandler) Export(c *gin.Context) {
	sessions, err := h.collectAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		h.exportCSV(c, sessions)
	case "xlsx":
		h.exportXLSX(c, sessions)
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
	}
}

// collectAll pages through the repository until every session is loaded.
func (h *ExportHandler) collectAll(ctx context.Context) ([]domain.FormSession, error) {
	var all []domain.FormSession
	offset := 0
	for {
		page, total, err := h.sessions.List(ctx, offset, 100)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			return all, nil
		}
	}
}

func (h *ExportHandler) exportCSV(c *gin.Context, sessions []domain.FormSession) {
	var buf bytes.Buffer
	buf.Write(csvexport.BOM)

	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteSessions(sessions); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("loan_applications", "csv")+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) exportXLSX(c *gin.Context, sessions []domain.FormSession) {
	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, sessions); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("loan_applications", "xlsx")+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
