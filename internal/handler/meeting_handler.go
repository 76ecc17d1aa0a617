package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meetwise/meetwise-api/internal/dto"
	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
	"github.com/meetwise/meetwise-api/pkg/response"
)

type meetingService interface {
	Create(ctx context.Context, req dto.CreateMeetingRequest) (*dto.MeetingWithProposals, error)
	List(ctx context.Context, filter models.MeetingFilter) ([]models.Meeting, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.MeetingWithProposals, error)
	Confirm(ctx context.Context, id string, req dto.ConfirmMeetingRequest) (*models.Meeting, error)
	Cancel(ctx context.Context, id string) error
}

// MeetingHandler manages meeting request endpoints.
type MeetingHandler struct {
	service meetingService
}

// NewMeetingHandler constructs handler.
func NewMeetingHandler(svc meetingService) *MeetingHandler {
	return &MeetingHandler{service: svc}
}

// Create godoc
// @Summary Create a meeting request with slot proposals
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body dto.CreateMeetingRequest true "Meeting request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /meetings [post]
func (h *MeetingHandler) Create(c *gin.Context) {
	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List godoc
// @Summary List meeting requests
// @Tags Meetings
// @Produce json
// @Param status query string false "Filter by status"
// @Param organizer query string false "Filter by organizer"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	filter := models.MeetingFilter{
		Status:    c.Query("status"),
		Organizer: c.Query("organizer"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.PageSize = limit
	}

	meetings, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, meetings, pagination)
}

// Get godoc
// @Summary Get a meeting request
// @Tags Meetings
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /meetings/{id} [get]
func (h *MeetingHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Confirm godoc
// @Summary Confirm a meeting at one of its proposed starts
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param payload body dto.ConfirmMeetingRequest true "Chosen start"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /meetings/{id}/confirm [post]
func (h *MeetingHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	meeting, err := h.service.Confirm(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, meeting, nil)
}

// Cancel godoc
// @Summary Cancel a meeting request
// @Tags Meetings
// @Param id path string true "Meeting ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /meetings/{id} [delete]
func (h *MeetingHandler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
