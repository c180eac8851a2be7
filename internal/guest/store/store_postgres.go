package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"doorlist/internal/guest/models"
	"doorlist/internal/sentinel"
	"doorlist/pkg/strfold"
)

// PostgresStore persists guests in PostgreSQL.
//
// Name matching uses a pre-folded name_folded column maintained on write, so
// lookups stay index-friendly without requiring the unaccent extension.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed guest store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const guestColumns = `id, event_id, name, email, table_label, checked_in_at`

func (s *PostgresStore) Save(ctx context.Context, g *models.Guest) error {
	if g == nil {
		return fmt.Errorf("guest is required: %w", sentinel.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guests (id, event_id, name, name_folded, email, table_label, checked_in_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			event_id = EXCLUDED.event_id,
			name = EXCLUDED.name,
			name_folded = EXCLUDED.name_folded,
			email = EXCLUDED.email,
			table_label = EXCLUDED.table_label`,
		g.ID, g.EventID, g.Name, strfold.Fold(g.Name), g.Email, g.Table, g.CheckedInAt,
	)
	if err != nil {
		return fmt.Errorf("save guest: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, guestID, eventID string) (*models.Guest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+guestColumns+` FROM guests
		WHERE id = $1 AND ($2 = '' OR event_id = $2)`,
		guestID, eventID,
	)
	g, err := scanGuest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("guest not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find guest by id: %w", err)
	}
	return g, nil
}

func (s *PostgresStore) FindByName(ctx context.Context, eventID, name string) ([]*models.Guest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+guestColumns+` FROM guests
		WHERE event_id = $1 AND name_folded LIKE '%' || $2 || '%'
		ORDER BY name, id`,
		eventID, strfold.Fold(name),
	)
	if err != nil {
		return nil, fmt.Errorf("find guests by name: %w", err)
	}
	defer rows.Close()
	return collectGuests(rows)
}

func (s *PostgresStore) FindByNameAnyEvent(ctx context.Context, name string) ([]*models.Guest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+guestColumns+` FROM guests
		WHERE name_folded LIKE '%' || $1 || '%'
		ORDER BY name, id`,
		strfold.Fold(name),
	)
	if err != nil {
		return nil, fmt.Errorf("find guests by name any event: %w", err)
	}
	defer rows.Close()
	return collectGuests(rows)
}

// MarkCheckedIn is idempotent at the SQL level: the timestamp is written only
// when still null, and the stored row is re-read either way so both the first
// and any repeat call observe the same CheckedInAt.
func (s *PostgresStore) MarkCheckedIn(ctx context.Context, guestID string) (*models.Guest, error) {
	_, err := s.db.ExecContext(ctx, `
		UPDATE guests SET checked_in_at = now()
		WHERE id = $1 AND checked_in_at IS NULL`,
		guestID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark guest checked in: %w", err)
	}
	return s.FindByID(ctx, guestID, "")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGuest(row rowScanner) (*models.Guest, error) {
	var g models.Guest
	var email, table sql.NullString
	var checkedInAt sql.NullTime
	if err := row.Scan(&g.ID, &g.EventID, &g.Name, &email, &table, &checkedInAt); err != nil {
		return nil, err
	}
	g.Email = email.String
	g.Table = table.String
	if checkedInAt.Valid {
		at := checkedInAt.Time
		g.CheckedInAt = &at
	}
	return &g, nil
}

func collectGuests(rows *sql.Rows) ([]*models.Guest, error) {
	var out []*models.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guest row: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate guest rows: %w", err)
	}
	return out, nil
}
