package deliveries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itristenx/nova-notify/pkg/event"
)

// PostgresStorage is a pgx-backed Storage implementation. Events are
// write-once rows; delivery records are append-only and independently
// keyed, so concurrent inserts from dispatch workers need no coordination
// beyond the pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Storage over an established pool.
// Run Migrate before first use.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) CreateEvent(ctx context.Context, ev event.Event) error {
	if ev.ID == "" {
		return fmt.Errorf("%w: event ID is required", ErrInvalidRecord)
	}

	roles, err := json.Marshal(ev.RecipientRoles)
	if err != nil {
		return fmt.Errorf("deliveries: marshal recipient roles: %w", err)
	}
	users, err := json.Marshal(ev.RecipientUsers)
	if err != nil {
		return fmt.Errorf("deliveries: marshal recipient users: %w", err)
	}
	actions, err := json.Marshal(ev.Actions)
	if err != nil {
		return fmt.Errorf("deliveries: marshal actions: %w", err)
	}
	metadata, err := json.Marshal(ev.Metadata)
	if err != nil {
		return fmt.Errorf("deliveries: marshal metadata: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO notification_events
			(id, module, type, priority, title, message, occurred_at,
			 recipient_roles, recipient_users, actions, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`,
		ev.ID, ev.Module, ev.Type, string(ev.Priority), ev.Title, ev.Message,
		ev.Timestamp, roles, users, actions, metadata,
	)
	if err != nil {
		return fmt.Errorf("deliveries: insert event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateEvent, ev.ID)
	}
	return nil
}

func (s *PostgresStorage) CreateDelivery(ctx context.Context, rec Record) error {
	if rec.EventID == "" || rec.UserID == "" || rec.Channel == "" {
		return fmt.Errorf("%w: eventId, userId and channel are required", ErrInvalidRecord)
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	var errVal *string
	if rec.Error != "" {
		errVal = &rec.Error
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO notification_deliveries
			(id, event_id, user_id, channel, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.EventID, rec.UserID, rec.Channel, string(rec.Status), errVal, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("deliveries: insert delivery: %w", err)
	}
	return nil
}

func (s *PostgresStorage) ListDeliveries(ctx context.Context, opts ListOptions) ([]Record, error) {
	query := `
		SELECT id, event_id, user_id, channel, status, error, created_at
		FROM notification_deliveries`
	args := []any{}
	if opts.UserID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, opts.UserID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, opts.limit())

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("deliveries: query deliveries: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec    Record
			errVal *string
		)
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.UserID, &rec.Channel,
			&rec.Status, &errVal, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("deliveries: scan delivery: %w", err)
		}
		if errVal != nil {
			rec.Error = *errVal
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("deliveries: iterate deliveries: %w", err)
	}
	return records, nil
}

// IsNotFound reports whether err is pgx's no-rows sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
