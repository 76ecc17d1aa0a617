package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/meetwise/meetwise-api/internal/models"
	"github.com/meetwise/meetwise-api/pkg/config"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
)

// GoogleCalendarProvider fetches a participant's free intervals from the
// Google Calendar free/busy endpoint. Busy blocks are merged, clipped to the
// queried window and inverted into free intervals.
type GoogleCalendarProvider struct {
	client *http.Client
	url    string
	logger *zap.Logger
}

// NewGoogleCalendarProvider builds a provider authenticated by the configured
// access token.
func NewGoogleCalendarProvider(cfg config.GoogleConfig, logger *zap.Logger) *GoogleCalendarProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	client := oauth2.NewClient(context.Background(), ts)
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}
	return &GoogleCalendarProvider{client: client, url: cfg.FreeBusyURL, logger: logger}
}

type freeBusyRequest struct {
	TimeMin string             `json:"timeMin"`
	TimeMax string             `json:"timeMax"`
	Items   []freeBusyCalendar `json:"items"`
}

type freeBusyCalendar struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]struct {
		Busy []struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"busy"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"calendars"`
}

// FreeIntervals returns the participant's free time within the window,
// clipped to it. Errors are propagated; the accessor decides how to degrade.
func (p *GoogleCalendarProvider) FreeIntervals(ctx context.Context, id models.ParticipantID, window models.TimeInterval) ([]models.TimeInterval, error) {
	payload, err := json.Marshal(freeBusyRequest{
		TimeMin: window.Start.Format(time.RFC3339),
		TimeMax: window.End.Format(time.RFC3339),
		Items:   []freeBusyCalendar{{ID: string(id)}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal freebusy request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build freebusy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrProviderUnavailable.Code, appErrors.ErrProviderUnavailable.Status, "freebusy call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		p.logger.Warn("freebusy call returned non-OK status",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, appErrors.Clone(appErrors.ErrProviderUnavailable, fmt.Sprintf("freebusy API status %d", resp.StatusCode))
	}

	var parsed freeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode freebusy response: %w", err)
	}

	calendar, ok := parsed.Calendars[string(id)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrProviderUnavailable, fmt.Sprintf("no freebusy data for %s", id))
	}
	if len(calendar.Errors) > 0 {
		return nil, appErrors.Clone(appErrors.ErrProviderUnavailable, fmt.Sprintf("freebusy lookup failed: %s", calendar.Errors[0].Reason))
	}

	busy := make([]models.TimeInterval, 0, len(calendar.Busy))
	for _, b := range calendar.Busy {
		busy = append(busy, models.TimeInterval{Start: b.Start, End: b.End})
	}

	return invertBusy(busy, window), nil
}

// invertBusy converts busy blocks into the free intervals of the window.
func invertBusy(busy []models.TimeInterval, window models.TimeInterval) []models.TimeInterval {
	free := make([]models.TimeInterval, 0, len(busy)+1)
	cursor := window.Start
	for _, b := range models.MergeIntervals(busy) {
		if !b.Overlaps(window) {
			continue
		}
		start := b.Start
		if start.Before(window.Start) {
			start = window.Start
		}
		if start.After(cursor) {
			free = append(free, models.TimeInterval{Start: cursor, End: start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, models.TimeInterval{Start: cursor, End: window.End})
	}
	return free
}
