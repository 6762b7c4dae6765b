// Package api provides HTTP handlers for the kingraph exporter.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kinviz/kingraph/internal/models"
)

// ExportHandler serves the export endpoint.
type ExportHandler struct {
	svc ExportService
	log *logrus.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(svc ExportService, log *logrus.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: log}
}

// Export handles POST /api/v1/export. The body is a models.Selection; the
// response is the complete TAM document. The document is fully built before
// a single byte is written, so clients never see a partial export.
func (h *ExportHandler) Export(c *gin.Context) {
	var sel models.Selection

	if err := c.ShouldBindJSON(&sel); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid selection payload: "+err.Error())

		return
	}

	doc, err := h.svc.Export(c.Request.Context(), sel)
	if err != nil {
		if errors.Is(err, models.ErrSelectionEmpty) {
			respondError(c, http.StatusBadRequest, ErrCodeEmptySelection, err.Error())

			return
		}

		h.log.WithError(err).Error("export failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, doc)
}
