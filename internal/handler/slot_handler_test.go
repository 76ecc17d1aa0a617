package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetwise/meetwise-api/internal/dto"
	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
)

type slotFinderMock struct {
	slots   []models.RankedSlot
	err     error
	called  bool
	lastReq dto.FindSlotsRequest
}

func (m *slotFinderMock) FindOptimalSlots(ctx context.Context, req dto.FindSlotsRequest) ([]models.RankedSlot, error) {
	m.called = true
	m.lastReq = req
	return m.slots, m.err
}

func findSlotsPayload(t *testing.T) []byte {
	t.Helper()
	start := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(dto.FindSlotsRequest{
		ParticipantIDs:  []string{"alice@example.com"},
		WindowStart:     start,
		WindowEnd:       start.Add(8 * time.Hour),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	return payload
}

func TestSlotHandlerFind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	start := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	mockSvc := &slotFinderMock{
		slots: []models.RankedSlot{{Start: start, End: start.Add(time.Hour), Score: 180, AvailableCount: 1, TotalCount: 1}},
	}
	handler := NewSlotHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/slots/find", bytes.NewReader(findSlotsPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Find(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.called)
	assert.Equal(t, []string{"alice@example.com"}, mockSvc.lastReq.ParticipantIDs)

	var body struct {
		Data []models.RankedSlot    `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, float64(1), body.Meta["count"])
}

func TestSlotHandlerFindInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSlotHandler(&slotFinderMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/slots/find", bytes.NewBufferString(`{"participant_ids":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Find(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlotHandlerFindServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &slotFinderMock{err: appErrors.Clone(appErrors.ErrValidation, "window_end must be after window_start")}
	handler := NewSlotHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/slots/find", bytes.NewReader(findSlotsPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Find(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
