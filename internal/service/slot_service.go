package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise-api/internal/dto"
	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
)

type availabilityResolver interface {
	Resolve(ctx context.Context, ids []models.ParticipantID, window models.TimeInterval) (models.ParticipantAvailability, error)
}

// SlotService is the caller-facing wrapper around the pure slot engine. It
// validates input, resolves availability and runs candidate generation and
// ranking. An empty result is a documented outcome, never an error.
type SlotService struct {
	availability availabilityResolver
	weights      models.ScoreWeights
	defaults     models.SchedulingRequirements
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
}

// SlotServiceConfig seeds the defaults applied when a request omits fields.
type SlotServiceConfig struct {
	WorkingHoursStart  models.TimeOfDay
	WorkingHoursEnd    models.TimeOfDay
	PreferredTimeOfDay models.TimeOfDay
	MaxResults         int
	Weights            models.ScoreWeights
}

// NewSlotService wires the slot engine facade.
func NewSlotService(availability availabilityResolver, cfg SlotServiceConfig, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WorkingHoursStart == 0 && cfg.WorkingHoursEnd == 0 {
		cfg.WorkingHoursStart = models.TimeOfDay(9 * 60)
		cfg.WorkingHoursEnd = models.TimeOfDay(17 * 60)
	}
	if cfg.PreferredTimeOfDay == 0 {
		cfg.PreferredTimeOfDay = models.TimeOfDay(10 * 60)
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.Weights == (models.ScoreWeights{}) {
		cfg.Weights = models.DefaultScoreWeights()
	}
	return &SlotService{
		availability: availability,
		weights:      cfg.Weights,
		defaults: models.SchedulingRequirements{
			PreferredTimeOfDay: cfg.PreferredTimeOfDay,
			WorkingHoursStart:  cfg.WorkingHoursStart,
			WorkingHoursEnd:    cfg.WorkingHoursEnd,
			MaxResults:         cfg.MaxResults,
		},
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// FindOptimalSlots returns up to MaxResults ranked meeting windows for the
// requested group, deterministic for identical inputs and availability data.
func (s *SlotService) FindOptimalSlots(ctx context.Context, req dto.FindSlotsRequest) ([]models.RankedSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot search payload")
	}
	if !req.WindowEnd.After(req.WindowStart) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "window_end must be after window_start")
	}

	reqs, err := s.requirements(req)
	if err != nil {
		return nil, err
	}

	ids := dedupeParticipants(req.ParticipantIDs)
	window := models.TimeInterval{Start: req.WindowStart, End: req.WindowEnd}

	avail, err := s.availability.Resolve(ctx, ids, window)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve availability")
	}

	candidates := generateCandidates(avail, reqs)
	slots := rankCandidates(candidates, avail, window, reqs, s.weights)
	if len(slots) > reqs.MaxResults {
		slots = slots[:reqs.MaxResults]
	}

	if s.metrics != nil {
		s.metrics.ObserveSlotSearch(len(candidates), len(slots))
	}
	s.logger.Debug("slot search completed",
		zap.Int("participants", len(ids)),
		zap.Int("candidates", len(candidates)),
		zap.Int("slots", len(slots)),
	)

	return slots, nil
}

func (s *SlotService) requirements(req dto.FindSlotsRequest) (models.SchedulingRequirements, error) {
	reqs := s.defaults
	reqs.DurationMinutes = req.DurationMinutes
	if req.MaxResults > 0 {
		reqs.MaxResults = req.MaxResults
	}

	var err error
	if req.WorkingHoursStart != "" {
		if reqs.WorkingHoursStart, err = models.ParseTimeOfDay(req.WorkingHoursStart); err != nil {
			return reqs, appErrors.Clone(appErrors.ErrValidation, "working_hours_start must be HH:MM")
		}
	}
	if req.WorkingHoursEnd != "" {
		if reqs.WorkingHoursEnd, err = models.ParseTimeOfDay(req.WorkingHoursEnd); err != nil {
			return reqs, appErrors.Clone(appErrors.ErrValidation, "working_hours_end must be HH:MM")
		}
	}
	if reqs.WorkingHoursEnd <= reqs.WorkingHoursStart {
		return reqs, appErrors.Clone(appErrors.ErrValidation, "working hours window is empty")
	}
	if req.PreferredTime != "" {
		if reqs.PreferredTimeOfDay, err = models.ParseTimeOfDay(req.PreferredTime); err != nil {
			return reqs, appErrors.Clone(appErrors.ErrValidation, "preferred_time must be HH:MM")
		}
	}
	return reqs, nil
}

func dedupeParticipants(raw []string) []models.ParticipantID {
	seen := make(map[models.ParticipantID]struct{}, len(raw))
	ids := make([]models.ParticipantID, 0, len(raw))
	for _, r := range raw {
		id := models.ParticipantID(r)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
