package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
	"github.com/meetwise/meetwise-api/pkg/jobs"
)

type intervalProvider interface {
	FreeIntervals(ctx context.Context, id models.ParticipantID, window models.TimeInterval) ([]models.TimeInterval, error)
}

type availabilityCache interface {
	Lookup(ctx context.Context, id models.ParticipantID) (*models.CachedAvailability, error)
	Store(ctx context.Context, id models.ParticipantID, payload models.CachedAvailability) error
}

// AvailabilityService resolves per-participant free intervals, preferring
// cached data younger than the freshness threshold and falling back to the
// live provider. Provider failures degrade a single participant to empty
// availability instead of failing the whole request.
type AvailabilityService struct {
	provider intervalProvider
	cache    availabilityCache
	metrics  *MetricsService
	logger   *zap.Logger

	freshness    time.Duration
	fetchTimeout time.Duration
	refresh      *jobs.Queue
}

// AvailabilityServiceConfig tunes freshness, timeouts and background refresh.
type AvailabilityServiceConfig struct {
	FreshnessTTL   time.Duration
	FetchTimeout   time.Duration
	RefreshWorkers int
	RefreshEnabled bool
}

type refreshRequest struct {
	ID     models.ParticipantID
	Window models.TimeInterval
}

// NewAvailabilityService wires the availability accessor.
func NewAvailabilityService(provider intervalProvider, cache availabilityCache, metrics *MetricsService, logger *zap.Logger, cfg AvailabilityServiceConfig) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FreshnessTTL <= 0 {
		cfg.FreshnessTTL = time.Hour
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}

	s := &AvailabilityService{
		provider:     provider,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
		freshness:    cfg.FreshnessTTL,
		fetchTimeout: cfg.FetchTimeout,
	}

	if cfg.RefreshEnabled {
		s.refresh = jobs.NewQueue("availability_refresh", s.handleRefresh, jobs.QueueConfig{
			Workers: cfg.RefreshWorkers,
			Logger:  logger,
		})
	}

	return s
}

// Start launches the background refresh workers, if enabled.
func (s *AvailabilityService) Start(ctx context.Context) {
	if s.refresh != nil {
		s.refresh.Start(ctx)
	}
}

// Stop drains the background refresh workers.
func (s *AvailabilityService) Stop() {
	if s.refresh != nil {
		s.refresh.Stop()
	}
}

// Resolve fans out per-participant lookups and joins them into one map. Every
// requested ID is present in the result; a failed participant maps to an empty
// list. Participant fetches never cancel their siblings.
func (s *AvailabilityService) Resolve(ctx context.Context, ids []models.ParticipantID, window models.TimeInterval) (models.ParticipantAvailability, error) {
	if len(ids) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "participant list must not be empty")
	}
	if !window.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "window end must be after window start")
	}

	result := make(models.ParticipantAvailability, len(ids))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range ids {
		wg.Add(1)
		go func(id models.ParticipantID) {
			defer wg.Done()
			intervals := s.resolveOne(ctx, id, window)
			mu.Lock()
			result[id] = intervals
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return result, nil
}

func (s *AvailabilityService) resolveOne(ctx context.Context, id models.ParticipantID, window models.TimeInterval) []models.TimeInterval {
	lookupStart := time.Now()
	cached, err := s.lookupCached(ctx, id)
	if cached != nil && cached.Covers(window) {
		age := time.Since(cached.FetchedAt)
		if age < s.freshness {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true, time.Since(lookupStart))
			}
			// Prewarm when the entry is in the last quarter of its freshness
			// window so the next request is served fresh.
			if age > s.freshness*3/4 {
				s.enqueueRefresh(id, window)
			}
			return clipIntervals(cached.Intervals, window)
		}
	}
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("availability cache lookup failed",
			zap.String("participant", string(id)), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(false, time.Since(lookupStart))
	}

	return s.fetchAndStore(ctx, id, window)
}

func (s *AvailabilityService) lookupCached(ctx context.Context, id models.ParticipantID) (*models.CachedAvailability, error) {
	if s.cache == nil {
		return nil, appErrors.ErrCacheMiss
	}
	return s.cache.Lookup(ctx, id)
}

// fetchAndStore pulls live intervals and stores them best-effort. A provider
// failure or timeout yields an empty list so the participant is treated as
// unavailable without blocking the rest of the group.
func (s *AvailabilityService) fetchAndStore(ctx context.Context, id models.ParticipantID, window models.TimeInterval) []models.TimeInterval {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	callStart := time.Now()
	intervals, err := s.provider.FreeIntervals(fetchCtx, id, window)
	if s.metrics != nil {
		s.metrics.ObserveProviderCall(time.Since(callStart), err != nil)
	}
	if err != nil {
		s.logger.Warn("provider fetch failed, treating participant as unavailable",
			zap.String("participant", string(id)), zap.Error(err))
		return []models.TimeInterval{}
	}

	if s.cache != nil {
		payload := models.CachedAvailability{
			Intervals:   intervals,
			FetchedAt:   time.Now().UTC(),
			WindowStart: window.Start,
			WindowEnd:   window.End,
		}
		if err := s.cache.Store(ctx, id, payload); err != nil {
			s.logger.Warn("availability cache store failed",
				zap.String("participant", string(id)), zap.Error(err))
		}
	}

	return intervals
}

func (s *AvailabilityService) enqueueRefresh(id models.ParticipantID, window models.TimeInterval) {
	if s.refresh == nil {
		return
	}
	err := s.refresh.Enqueue(jobs.Job{
		ID:      string(id),
		Type:    "availability_refresh",
		Payload: refreshRequest{ID: id, Window: window},
	})
	if err != nil {
		s.logger.Debug("refresh enqueue skipped", zap.String("participant", string(id)), zap.Error(err))
	}
}

func (s *AvailabilityService) handleRefresh(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(refreshRequest)
	if !ok {
		return nil
	}
	s.fetchAndStore(ctx, req.ID, req.Window)
	return nil
}

// clipIntervals trims cached intervals to the requested window, dropping any
// that fall outside it entirely.
func clipIntervals(intervals []models.TimeInterval, window models.TimeInterval) []models.TimeInterval {
	clipped := make([]models.TimeInterval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.Overlaps(window) {
			continue
		}
		if iv.Start.Before(window.Start) {
			iv.Start = window.Start
		}
		if iv.End.After(window.End) {
			iv.End = window.End
		}
		clipped = append(clipped, iv)
	}
	return clipped
}
