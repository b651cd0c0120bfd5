// README: Review store backed by PostgreSQL.
package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawmatch/internal/types"
)

var ErrBadRating = errors.New("rating out of range")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, r *Review) error {
	if !r.ValidRating() {
		return ErrBadRating
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO reviews (
			id, reviewer_id, walker_id, request_id, rating, comment, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(r.ID),
		string(r.ReviewerID),
		string(r.WalkerID),
		string(r.RequestID),
		r.Rating,
		r.Comment,
		r.CreatedAt,
	)
	return err
}

// ListByWalker returns a walker's reviews in chronological order, which is
// the order the reputation estimators expect.
func (s *Store) ListByWalker(ctx context.Context, walkerID types.ID) ([]Review, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, reviewer_id, walker_id, request_id, rating, comment, created_at
		FROM reviews
		WHERE walker_id = $1
		ORDER BY created_at`, string(walkerID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.ReviewerID, &r.WalkerID, &r.RequestID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
