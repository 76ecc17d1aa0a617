package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetwise/meetwise-api/internal/dto"
	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
)

type meetingRepoStub struct {
	meetings     map[string]*models.Meeting
	created      *models.Meeting
	createErr    error
	confirmedID  string
	confirmStart time.Time
	confirmEnd   time.Time
	statusID     string
	status       models.MeetingStatus
}

func (m *meetingRepoStub) List(ctx context.Context, filter models.MeetingFilter) ([]models.Meeting, int, error) {
	out := make([]models.Meeting, 0, len(m.meetings))
	for _, meeting := range m.meetings {
		out = append(out, *meeting)
	}
	return out, len(out), nil
}

func (m *meetingRepoStub) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	meeting, ok := m.meetings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *meeting
	return &copied, nil
}

func (m *meetingRepoStub) Create(ctx context.Context, meeting *models.Meeting) error {
	if m.createErr != nil {
		return m.createErr
	}
	meeting.ID = "meeting-1"
	m.created = meeting
	return nil
}

func (m *meetingRepoStub) Confirm(ctx context.Context, id string, start, end time.Time) error {
	m.confirmedID = id
	m.confirmStart = start
	m.confirmEnd = end
	return nil
}

func (m *meetingRepoStub) UpdateStatus(ctx context.Context, id string, status models.MeetingStatus) error {
	m.statusID = id
	m.status = status
	return nil
}

type slotFinderStub struct {
	slots   []models.RankedSlot
	err     error
	lastReq dto.FindSlotsRequest
}

func (s *slotFinderStub) FindOptimalSlots(ctx context.Context, req dto.FindSlotsRequest) ([]models.RankedSlot, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.slots, nil
}

func proposalAt(day time.Time, hour int) models.RankedSlot {
	return models.RankedSlot{
		Start:          at(day, hour, 0),
		End:            at(day, hour+1, 0),
		Score:          150,
		AvailableCount: 2,
		TotalCount:     2,
	}
}

func validCreateRequest() dto.CreateMeetingRequest {
	return dto.CreateMeetingRequest{
		Title:             "Planning sync",
		Organizer:         "organizer@example.com",
		ParticipantEmails: []string{"a@example.com", "b@example.com"},
		WindowStart:       at(testTuesday, 9, 0),
		WindowEnd:         at(testTuesday, 17, 0),
		DurationMinutes:   60,
	}
}

func pendingMeeting() *models.Meeting {
	return &models.Meeting{
		ID:                "meeting-1",
		Title:             "Planning sync",
		Organizer:         "organizer@example.com",
		ParticipantEmails: []string{"a@example.com", "b@example.com"},
		WindowStart:       at(testTuesday, 9, 0),
		WindowEnd:         at(testTuesday, 17, 0),
		DurationMinutes:   60,
		Status:            models.MeetingStatusPending,
	}
}

func TestMeetingServiceCreateStoresSuggestedStart(t *testing.T) {
	repo := &meetingRepoStub{}
	finder := &slotFinderStub{slots: []models.RankedSlot{proposalAt(testTuesday, 10), proposalAt(testTuesday, 11)}}
	service := NewMeetingService(repo, finder, nil, nil)

	result, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "meeting-1", result.Meeting.ID)
	assert.Equal(t, models.MeetingStatusPending, result.Meeting.Status)
	require.NotNil(t, repo.created.SuggestedStart)
	assert.Equal(t, at(testTuesday, 10, 0), *repo.created.SuggestedStart)
	assert.Len(t, result.Proposals, 2)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, finder.lastReq.ParticipantIDs)
}

func TestMeetingServiceCreateWithoutProposals(t *testing.T) {
	repo := &meetingRepoStub{}
	service := NewMeetingService(repo, &slotFinderStub{}, nil, nil)

	result, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Nil(t, repo.created.SuggestedStart)
	assert.Empty(t, result.Proposals)
}

func TestMeetingServiceCreateValidation(t *testing.T) {
	service := NewMeetingService(&meetingRepoStub{}, &slotFinderStub{}, nil, nil)

	req := validCreateRequest()
	req.Organizer = "not-an-email"

	_, err := service.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMeetingServiceGetRecomputesProposalsWhilePending(t *testing.T) {
	repo := &meetingRepoStub{meetings: map[string]*models.Meeting{"meeting-1": pendingMeeting()}}
	finder := &slotFinderStub{slots: []models.RankedSlot{proposalAt(testTuesday, 10)}}
	service := NewMeetingService(repo, finder, nil, nil)

	result, err := service.Get(context.Background(), "meeting-1")
	require.NoError(t, err)
	assert.Len(t, result.Proposals, 1)
}

func TestMeetingServiceGetNotFound(t *testing.T) {
	service := NewMeetingService(&meetingRepoStub{}, &slotFinderStub{}, nil, nil)

	_, err := service.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMeetingServiceConfirmAcceptsProposedStart(t *testing.T) {
	repo := &meetingRepoStub{meetings: map[string]*models.Meeting{"meeting-1": pendingMeeting()}}
	finder := &slotFinderStub{slots: []models.RankedSlot{proposalAt(testTuesday, 10), proposalAt(testTuesday, 14)}}
	service := NewMeetingService(repo, finder, nil, nil)

	meeting, err := service.Confirm(context.Background(), "meeting-1", dto.ConfirmMeetingRequest{Start: at(testTuesday, 14, 0)})
	require.NoError(t, err)

	assert.Equal(t, models.MeetingStatusScheduled, meeting.Status)
	require.NotNil(t, meeting.ScheduledStart)
	assert.Equal(t, at(testTuesday, 14, 0), *meeting.ScheduledStart)
	assert.Equal(t, "meeting-1", repo.confirmedID)
	assert.Equal(t, at(testTuesday, 15, 0), repo.confirmEnd)
}

func TestMeetingServiceConfirmRejectsUnknownStart(t *testing.T) {
	repo := &meetingRepoStub{meetings: map[string]*models.Meeting{"meeting-1": pendingMeeting()}}
	finder := &slotFinderStub{slots: []models.RankedSlot{proposalAt(testTuesday, 10)}}
	service := NewMeetingService(repo, finder, nil, nil)

	_, err := service.Confirm(context.Background(), "meeting-1", dto.ConfirmMeetingRequest{Start: at(testTuesday, 8, 0)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.confirmedID)
}

func TestMeetingServiceConfirmRejectsNonPending(t *testing.T) {
	scheduled := pendingMeeting()
	scheduled.Status = models.MeetingStatusScheduled
	repo := &meetingRepoStub{meetings: map[string]*models.Meeting{"meeting-1": scheduled}}
	service := NewMeetingService(repo, &slotFinderStub{}, nil, nil)

	_, err := service.Confirm(context.Background(), "meeting-1", dto.ConfirmMeetingRequest{Start: at(testTuesday, 10, 0)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestMeetingServiceCancel(t *testing.T) {
	repo := &meetingRepoStub{meetings: map[string]*models.Meeting{"meeting-1": pendingMeeting()}}
	service := NewMeetingService(repo, &slotFinderStub{}, nil, nil)

	require.NoError(t, service.Cancel(context.Background(), "meeting-1"))
	assert.Equal(t, models.MeetingStatusCancelled, repo.status)
}

func TestMeetingServiceCancelAlreadyCancelled(t *testing.T) {
	cancelled := pendingMeeting()
	cancelled.Status = models.MeetingStatusCancelled
	repo := &meetingRepoStub{meetings: map[string]*models.Meeting{"meeting-1": cancelled}}
	service := NewMeetingService(repo, &slotFinderStub{}, nil, nil)

	err := service.Cancel(context.Background(), "meeting-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestMeetingServiceCreateProposalErrorPropagates(t *testing.T) {
	finder := &slotFinderStub{err: errors.New("resolver down")}
	service := NewMeetingService(&meetingRepoStub{}, finder, nil, nil)

	_, err := service.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
}
