package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meetwise/meetwise-api/internal/dto"
	"github.com/meetwise/meetwise-api/internal/models"
	"github.com/meetwise/meetwise-api/internal/service"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
	"github.com/meetwise/meetwise-api/pkg/response"
)

type slotExporter interface {
	RenderSlots(slots []models.RankedSlot, format service.ExportFormat) ([]byte, string, error)
}

// ExportHandler renders slot search results as downloadable documents.
type ExportHandler struct {
	slots   slotFinderService
	exports slotExporter
}

// NewExportHandler constructs handler.
func NewExportHandler(slots slotFinderService, exports slotExporter) *ExportHandler {
	return &ExportHandler{slots: slots, exports: exports}
}

// Export godoc
// @Summary Export ranked slots as CSV or PDF
// @Tags Slots
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param payload body dto.FindSlotsRequest true "Slot search"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /slots/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.FindSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	slots, err := h.slots.FindOptimalSlots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	data, contentType, err := h.exports.RenderSlots(slots, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("slots-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
