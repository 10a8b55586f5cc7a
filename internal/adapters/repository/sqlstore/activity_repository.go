package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

type activityRepository struct {
	db       *sql.DB
	postgres bool
}

func NewActivityRepository(db *sql.DB, dbType string) ports.ActivityRepository {
	return &activityRepository{
		db:       db,
		postgres: dbType == TypePostgres,
	}
}

func (r *activityRepository) Record(ctx context.Context, a domain.Activity) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	pollID := ""
	if a.PollID != uuid.Nil {
		pollID = a.PollID.String()
	}

	query := r.rebind(`
		INSERT INTO activities (id, kind, outcome, poll_id, detail, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		a.ID.String(), string(a.Kind), string(a.Outcome), pollID, a.Detail, a.RecordedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// List returns the most recent activities first.
func (r *activityRepository) List(ctx context.Context, limit int) ([]domain.Activity, error) {
	query := r.rebind(`
		SELECT id, kind, outcome, poll_id, detail, recorded_at
		FROM activities
		ORDER BY recorded_at DESC, id
		LIMIT ?
	`)
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var (
			a                 domain.Activity
			id, kind, outcome string
			pollID            string
			recordedAt        int64
		)
		if err := rows.Scan(&id, &kind, &outcome, &pollID, &a.Detail, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if a.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse activity id: %w", err)
		}
		if pollID != "" {
			if a.PollID, err = uuid.Parse(pollID); err != nil {
				return nil, fmt.Errorf("failed to parse poll id: %w", err)
			}
		}
		a.Kind = domain.ActivityKind(kind)
		a.Outcome = domain.ActivityOutcome(outcome)
		a.RecordedAt = time.Unix(recordedAt, 0).UTC()
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}

// rebind turns ? placeholders into $n for postgres.
func (r *activityRepository) rebind(query string) string {
	if !r.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
