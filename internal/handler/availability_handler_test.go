package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetwise/meetwise-api/internal/models"
)

type availabilityResolverMock struct {
	avail   models.ParticipantAvailability
	err     error
	lastIDs []models.ParticipantID
}

func (m *availabilityResolverMock) Resolve(ctx context.Context, ids []models.ParticipantID, window models.TimeInterval) (models.ParticipantAvailability, error) {
	m.lastIDs = ids
	return m.avail, m.err
}

func TestAvailabilityHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	start := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	mockSvc := &availabilityResolverMock{
		avail: models.ParticipantAvailability{
			"alice@example.com": {{Start: start.Add(time.Hour), End: start.Add(3 * time.Hour)}},
		},
	}
	handler := NewAvailabilityHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet,
		"/participants/alice@example.com/availability?start="+start.Format(time.RFC3339)+"&end="+start.Add(8*time.Hour).Format(time.RFC3339), nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "alice@example.com"}}

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []models.ParticipantID{"alice@example.com"}, mockSvc.lastIDs)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestAvailabilityHandlerGetBadWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAvailabilityHandler(&availabilityResolverMock{})

	cases := []struct {
		name  string
		query string
	}{
		{name: "missing start", query: "end=2025-03-04T17:00:00Z"},
		{name: "malformed end", query: "start=2025-03-04T09:00:00Z&end=teatime"},
		{name: "inverted", query: "start=2025-03-04T17:00:00Z&end=2025-03-04T09:00:00Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			req, _ := http.NewRequest(http.MethodGet, "/participants/a/availability?"+tc.query, nil)
			c.Request = req
			c.Params = gin.Params{{Key: "id", Value: "a"}}

			handler.Get(c)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
