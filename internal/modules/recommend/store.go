// README: Preference matrix loading for the recommender.
package recommend

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawmatch/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// RatingMatrix builds the explicit-preference matrix from reviews:
// rows are owners, columns are walkers, cells average the owner's ratings
// for that walker.
func (s *Store) RatingMatrix(ctx context.Context) (Ratings, error) {
	rows, err := s.db.Query(ctx, `
		SELECT reviewer_id, walker_id, AVG(rating)
		FROM reviews
		GROUP BY reviewer_id, walker_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(Ratings)
	for rows.Next() {
		var ownerID, walkerID string
		var avg float64
		if err := rows.Scan(&ownerID, &walkerID, &avg); err != nil {
			return nil, err
		}
		row := out[types.ID(ownerID)]
		if row == nil {
			row = make(map[types.ID]float64)
			out[types.ID(ownerID)] = row
		}
		row[types.ID(walkerID)] = avg
	}
	return out, rows.Err()
}

// AcceptanceSets builds the implicit-preference matrix from completed and
// accepted walks: rows are walkers, columns are the owners they have
// worked with. Cancelled requests never count.
func (s *Store) AcceptanceSets(ctx context.Context) (Sets, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT walker_id, owner_id
		FROM walk_requests
		WHERE walker_id IS NOT NULL
		  AND status IN ('accepted', 'completed')`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(Sets)
	for rows.Next() {
		var walkerID, ownerID string
		if err := rows.Scan(&walkerID, &ownerID); err != nil {
			return nil, err
		}
		set := out[types.ID(walkerID)]
		if set == nil {
			set = make(map[types.ID]struct{})
			out[types.ID(walkerID)] = set
		}
		set[types.ID(ownerID)] = struct{}{}
	}
	return out, rows.Err()
}
