// README: Walk request store backed by PostgreSQL.
package request

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawmatch/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const requestColumns = `
	id, owner_id, dog_id, walker_id, status, status_version,
	start_at, end_at, budget, budget_currency,
	created_at, accepted_at, completed_at, cancelled_at, cancellation_reason`

func (s *Store) Create(ctx context.Context, r *WalkRequest) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO walk_requests (
			id, owner_id, dog_id, walker_id, status, status_version,
			start_at, end_at, budget, budget_currency, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11
		)`,
		string(r.ID),
		string(r.OwnerID),
		string(r.DogID),
		toStringPtr(r.WalkerID),
		string(r.Status),
		r.StatusVersion,
		r.Start,
		r.End,
		r.Budget.Amount,
		r.Budget.Currency,
		r.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*WalkRequest, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM walk_requests
		WHERE id = $1`, string(id),
	)
	r, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// ListPending returns all matchable requests, oldest first.
func (s *Store) ListPending(ctx context.Context) ([]*WalkRequest, error) {
	return s.list(ctx, `
		SELECT `+requestColumns+`
		FROM walk_requests
		WHERE status = 'pending'
		ORDER BY created_at, id`)
}

// ListActiveByWalker returns a walker's accepted bookings, soonest first.
// Cancelled and completed requests never participate in conflict checks.
func (s *Store) ListActiveByWalker(ctx context.Context, walkerID types.ID) ([]*WalkRequest, error) {
	return s.list(ctx, `
		SELECT `+requestColumns+`
		FROM walk_requests
		WHERE walker_id = $1 AND status = 'accepted'
		ORDER BY start_at, id`, string(walkerID))
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*WalkRequest, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*WalkRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateStatus applies an optimistic status transition; returns false when
// another writer got there first.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, walkerID *types.ID) (bool, error) {
	var w *string
	if walkerID != nil {
		v := string(*walkerID)
		w = &v
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE walk_requests
		SET status = $1,
			status_version = status_version + 1,
			walker_id = COALESCE($2, walker_id),
			accepted_at = CASE WHEN $1 = 'accepted' THEN NOW() ELSE accepted_at END,
			completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
			cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END
		WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to),
		w,
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO walk_request_events (
			request_id, from_status, to_status, actor_type, actor_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.RequestID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

func scanRequest(row pgx.Row) (*WalkRequest, error) {
	var (
		r                                  WalkRequest
		walkerID, cancelReason             sql.NullString
		acceptedAt, completedAt, cancelled sql.NullTime
	)
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.DogID, &walkerID, &r.Status, &r.StatusVersion,
		&r.Start, &r.End, &r.Budget.Amount, &r.Budget.Currency,
		&r.CreatedAt, &acceptedAt, &completedAt, &cancelled, &cancelReason,
	)
	if err != nil {
		return nil, err
	}
	if walkerID.Valid {
		w := types.ID(walkerID.String)
		r.WalkerID = &w
	}
	if cancelReason.Valid {
		r.CancelReason = &cancelReason.String
	}
	r.AcceptedAt = toTimePtr(acceptedAt)
	r.CompletedAt = toTimePtr(completedAt)
	r.CancelledAt = toTimePtr(cancelled)
	return &r, nil
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
