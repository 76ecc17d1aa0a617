package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetwise/meetwise-api/internal/models"
)

func newMeetingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func meetingRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "title", "organizer", "participant_emails", "window_start", "window_end",
		"duration_minutes", "status", "suggested_start", "scheduled_start", "scheduled_end",
		"created_at", "updated_at",
	}).AddRow(
		"meeting-1", "Planning sync", "organizer@example.com", "{a@example.com,b@example.com}",
		now, now.Add(8*time.Hour), 60, "pending", nil, nil, nil, now, now,
	)
}

func TestMeetingRepositoryListFiltersByStatus(t *testing.T) {
	db, mock, cleanup := newMeetingRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, organizer, participant_emails")).
		WithArgs("pending").
		WillReturnRows(meetingRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM meetings")).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	meetings, total, err := repo.List(context.Background(), models.MeetingFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "meeting-1", meetings[0].ID)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, []string(meetings[0].ParticipantEmails))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newMeetingRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, organizer")).
		WithArgs("meeting-1").
		WillReturnRows(meetingRows())

	meeting, err := repo.GetByID(context.Background(), "meeting-1")
	require.NoError(t, err)
	assert.Equal(t, models.MeetingStatusPending, meeting.Status)
}

func TestMeetingRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMeetingRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, organizer")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMeetingRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newMeetingRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO meetings")).
		WithArgs(
			sqlmock.AnyArg(), "Planning sync", "organizer@example.com", sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), 60, models.MeetingStatusPending,
			nil, sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	meeting := &models.Meeting{
		Title:             "Planning sync",
		Organizer:         "organizer@example.com",
		ParticipantEmails: []string{"a@example.com"},
		WindowStart:       time.Now().UTC(),
		WindowEnd:         time.Now().UTC().Add(8 * time.Hour),
		DurationMinutes:   60,
		Status:            models.MeetingStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), meeting))
	assert.NotEmpty(t, meeting.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepositoryConfirm(t *testing.T) {
	db, mock, cleanup := newMeetingRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	start := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE meetings SET status = $2, scheduled_start = $3")).
		WithArgs("meeting-1", models.MeetingStatusScheduled, start, start.Add(time.Hour), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Confirm(context.Background(), "meeting-1", start, start.Add(time.Hour)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepositoryConfirmNoRows(t *testing.T) {
	db, mock, cleanup := newMeetingRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	start := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE meetings SET status = $2, scheduled_start = $3")).
		WithArgs("missing", models.MeetingStatusScheduled, start, start.Add(time.Hour), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Confirm(context.Background(), "missing", start, start.Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows updated")
}

func TestMeetingRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newMeetingRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE meetings SET status = $2, updated_at = $3")).
		WithArgs("meeting-1", models.MeetingStatusCancelled, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "meeting-1", models.MeetingStatusCancelled))
	assert.NoError(t, mock.ExpectationsWereMet())
}
