package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
	"github.com/meetwise/meetwise-api/pkg/response"
)

type availabilityResolverService interface {
	Resolve(ctx context.Context, ids []models.ParticipantID, window models.TimeInterval) (models.ParticipantAvailability, error)
}

// AvailabilityHandler exposes a read-only view of resolved availability.
type AvailabilityHandler struct {
	service availabilityResolverService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(svc availabilityResolverService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// Get godoc
// @Summary Resolved free intervals for one participant
// @Tags Availability
// @Produce json
// @Param id path string true "Participant ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /participants/{id}/availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	id := models.ParticipantID(c.Param("id"))

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start must be RFC3339"))
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "end must be RFC3339"))
		return
	}
	if !end.After(start) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "end must be after start"))
		return
	}

	avail, err := h.service.Resolve(c.Request.Context(), []models.ParticipantID{id}, models.TimeInterval{Start: start, End: end})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"participant_id": id,
		"intervals":      avail[id],
	}, nil)
}
