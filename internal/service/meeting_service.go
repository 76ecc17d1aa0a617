package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise-api/internal/dto"
	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
)

type meetingRepository interface {
	List(ctx context.Context, filter models.MeetingFilter) ([]models.Meeting, int, error)
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	Create(ctx context.Context, meeting *models.Meeting) error
	Confirm(ctx context.Context, id string, start, end time.Time) error
	UpdateStatus(ctx context.Context, id string, status models.MeetingStatus) error
}

type slotFinder interface {
	FindOptimalSlots(ctx context.Context, req dto.FindSlotsRequest) ([]models.RankedSlot, error)
}

// MeetingService manages the lifecycle of meeting requests around the slot
// engine: create with proposals, confirm one proposal, cancel.
type MeetingService struct {
	repo      meetingRepository
	slots     slotFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMeetingService constructs the service.
func NewMeetingService(repo meetingRepository, slots slotFinder, validate *validator.Validate, logger *zap.Logger) *MeetingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{repo: repo, slots: slots, validator: validate, logger: logger}
}

// Create persists a pending meeting and returns it with ranked proposals. The
// top proposal, when one exists, is stored as the suggested start.
func (s *MeetingService) Create(ctx context.Context, req dto.CreateMeetingRequest) (*dto.MeetingWithProposals, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meeting payload")
	}
	if !req.WindowEnd.After(req.WindowStart) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "window_end must be after window_start")
	}

	proposals, err := s.proposals(ctx, req.ParticipantEmails, req.WindowStart, req.WindowEnd, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	meeting := &models.Meeting{
		Title:             req.Title,
		Organizer:         req.Organizer,
		ParticipantEmails: req.ParticipantEmails,
		WindowStart:       req.WindowStart,
		WindowEnd:         req.WindowEnd,
		DurationMinutes:   req.DurationMinutes,
		Status:            models.MeetingStatusPending,
	}
	if len(proposals) > 0 {
		suggested := proposals[0].Start
		meeting.SuggestedStart = &suggested
	}

	if err := s.repo.Create(ctx, meeting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create meeting")
	}

	s.logger.Info("meeting created",
		zap.String("meeting_id", meeting.ID),
		zap.Int("participants", len(req.ParticipantEmails)),
		zap.Int("proposals", len(proposals)),
	)

	return &dto.MeetingWithProposals{Meeting: *meeting, Proposals: proposals}, nil
}

// List returns meetings with pagination.
func (s *MeetingService) List(ctx context.Context, filter models.MeetingFilter) ([]models.Meeting, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	meetings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list meetings")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return meetings, pagination, nil
}

// Get returns one meeting together with freshly computed proposals when it is
// still pending.
func (s *MeetingService) Get(ctx context.Context, id string) (*dto.MeetingWithProposals, error) {
	meeting, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &dto.MeetingWithProposals{Meeting: *meeting}
	if meeting.Status == models.MeetingStatusPending {
		proposals, err := s.proposals(ctx, meeting.ParticipantEmails, meeting.WindowStart, meeting.WindowEnd, meeting.DurationMinutes)
		if err != nil {
			return nil, err
		}
		result.Proposals = proposals
	}
	return result, nil
}

// Confirm schedules a pending meeting at one of its proposed starts.
func (s *MeetingService) Confirm(ctx context.Context, id string, req dto.ConfirmMeetingRequest) (*models.Meeting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid confirmation payload")
	}

	meeting, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting.Status != models.MeetingStatusPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only pending meetings can be confirmed")
	}

	proposals, err := s.proposals(ctx, meeting.ParticipantEmails, meeting.WindowStart, meeting.WindowEnd, meeting.DurationMinutes)
	if err != nil {
		return nil, err
	}

	var chosen *models.RankedSlot
	for i := range proposals {
		if proposals[i].Start.Equal(req.Start) {
			chosen = &proposals[i]
			break
		}
	}
	if chosen == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "requested start is not among the current proposals")
	}

	if err := s.repo.Confirm(ctx, id, chosen.Start, chosen.End); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to confirm meeting")
	}

	meeting.Status = models.MeetingStatusScheduled
	meeting.ScheduledStart = &chosen.Start
	meeting.ScheduledEnd = &chosen.End
	return meeting, nil
}

// Cancel transitions a meeting to cancelled.
func (s *MeetingService) Cancel(ctx context.Context, id string) error {
	meeting, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if meeting.Status == models.MeetingStatusCancelled {
		return appErrors.Clone(appErrors.ErrConflict, "meeting already cancelled")
	}
	if err := s.repo.UpdateStatus(ctx, id, models.MeetingStatusCancelled); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel meeting")
	}
	return nil
}

func (s *MeetingService) load(ctx context.Context, id string) (*models.Meeting, error) {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "meeting not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load meeting")
	}
	return meeting, nil
}

func (s *MeetingService) proposals(ctx context.Context, emails []string, start, end time.Time, durationMinutes int) ([]models.RankedSlot, error) {
	return s.slots.FindOptimalSlots(ctx, dto.FindSlotsRequest{
		ParticipantIDs:  emails,
		WindowStart:     start,
		WindowEnd:       end,
		DurationMinutes: durationMinutes,
	})
}
