package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meetwise/meetwise-api/internal/models"
)

// MeetingRepository persists meeting requests.
type MeetingRepository struct {
	db *sqlx.DB
}

// NewMeetingRepository constructs a meeting repository.
func NewMeetingRepository(db *sqlx.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

const meetingColumns = "id, title, organizer, participant_emails, window_start, window_end, duration_minutes, status, suggested_start, scheduled_start, scheduled_end, created_at, updated_at"

// List returns meetings matching the filter, newest first.
func (r *MeetingRepository) List(ctx context.Context, filter models.MeetingFilter) ([]models.Meeting, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Organizer != "" {
		where = append(where, fmt.Sprintf("LOWER(organizer) = LOWER($%d)", len(args)+1))
		args = append(args, filter.Organizer)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM meetings WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		meetingColumns, whereClause, size, offset)
	var meetings []models.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list meetings: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM meetings WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count meetings: %w", err)
	}

	return meetings, total, nil
}

// GetByID fetches a meeting.
func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	query := fmt.Sprintf("SELECT %s FROM meetings WHERE id = $1", meetingColumns)
	var meeting models.Meeting
	if err := r.db.GetContext(ctx, &meeting, query, id); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Create inserts a meeting request.
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	if meeting.ID == "" {
		meeting.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = now
	}
	meeting.UpdatedAt = now

	const query = `INSERT INTO meetings (id, title, organizer, participant_emails, window_start, window_end, duration_minutes, status, suggested_start, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		meeting.ID,
		meeting.Title,
		meeting.Organizer,
		meeting.ParticipantEmails,
		meeting.WindowStart,
		meeting.WindowEnd,
		meeting.DurationMinutes,
		meeting.Status,
		meeting.SuggestedStart,
		meeting.CreatedAt,
		meeting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}
	return nil
}

// Confirm pins a meeting to a scheduled window.
func (r *MeetingRepository) Confirm(ctx context.Context, id string, start, end time.Time) error {
	const query = `UPDATE meetings SET status = $2, scheduled_start = $3, scheduled_end = $4, updated_at = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, models.MeetingStatusScheduled, start, end, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("confirm meeting %s: %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("confirm meeting %s: no rows updated", id)
	}
	return nil
}

// UpdateStatus transitions a meeting's lifecycle state.
func (r *MeetingRepository) UpdateStatus(ctx context.Context, id string, status models.MeetingStatus) error {
	const query = `UPDATE meetings SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update meeting status %s: %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update meeting status %s: no rows updated", id)
	}
	return nil
}
