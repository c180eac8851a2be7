package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"doorlist/internal/event/models"
	"doorlist/internal/sentinel"
)

// PostgresStore persists events in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed event store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, ev *models.Event) error {
	if ev == nil {
		return fmt.Errorf("event is required: %w", sentinel.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, name, venue, starts_at, ends_at, check_in_opens_at, check_in_closes_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			venue = EXCLUDED.venue,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			check_in_opens_at = EXCLUDED.check_in_opens_at,
			check_in_closes_at = EXCLUDED.check_in_closes_at`,
		ev.ID, ev.Name, ev.Venue, ev.StartsAt, ev.EndsAt, ev.CheckInOpensAt, ev.CheckInClosesAt,
	)
	if err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, eventID string) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, venue, starts_at, ends_at, check_in_opens_at, check_in_closes_at
		FROM events WHERE id = $1`,
		eventID,
	)
	var ev models.Event
	var venue sql.NullString
	var endsAt, opensAt, closesAt sql.NullTime
	if err := row.Scan(&ev.ID, &ev.Name, &venue, &ev.StartsAt, &endsAt, &opensAt, &closesAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	ev.Venue = venue.String
	if endsAt.Valid {
		t := endsAt.Time
		ev.EndsAt = &t
	}
	if opensAt.Valid {
		t := opensAt.Time
		ev.CheckInOpensAt = &t
	}
	if closesAt.Valid {
		t := closesAt.Time
		ev.CheckInClosesAt = &t
	}
	return &ev, nil
}
