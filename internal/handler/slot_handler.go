package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetwise/meetwise-api/internal/dto"
	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
	"github.com/meetwise/meetwise-api/pkg/response"
)

type slotFinderService interface {
	FindOptimalSlots(ctx context.Context, req dto.FindSlotsRequest) ([]models.RankedSlot, error)
}

// SlotHandler exposes the slot search endpoint.
type SlotHandler struct {
	service slotFinderService
}

// NewSlotHandler constructs handler.
func NewSlotHandler(svc slotFinderService) *SlotHandler {
	return &SlotHandler{service: svc}
}

// Find godoc
// @Summary Find optimal meeting slots
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.FindSlotsRequest true "Slot search"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /slots/find [post]
func (h *SlotHandler) Find(c *gin.Context) {
	var req dto.FindSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	slots, err := h.service.FindOptimalSlots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, slots, nil, map[string]interface{}{"count": len(slots)})
}
