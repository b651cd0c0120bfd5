// README: Recommendation service over the review and booking history.
package recommend

import (
	"context"
	"fmt"

	"pawmatch/internal/types"
)

type Service struct {
	store  *Store
	params Params
}

func NewService(store *Store, params Params) *Service {
	if params.KNeighbors <= 0 {
		params.KNeighbors = DefaultParams().KNeighbors
	}
	if params.MaxResults <= 0 {
		params.MaxResults = DefaultParams().MaxResults
	}
	return &Service{store: store, params: params}
}

// WalkersForOwner recommends walkers the owner has not yet reviewed, based
// on owners with similar rating history. Owners with no review history get
// an empty list; cold starts are the matching scorer's job.
func (s *Service) WalkersForOwner(ctx context.Context, ownerID types.ID) ([]Recommendation, error) {
	matrix, err := s.store.RatingMatrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rating matrix: %w", err)
	}
	return RecommendFromRatings(matrix, ownerID, s.params), nil
}

// OwnersForWalker recommends owners a walker has not yet worked with, based
// on walkers with overlapping booking history.
func (s *Service) OwnersForWalker(ctx context.Context, walkerID types.ID) ([]Recommendation, error) {
	sets, err := s.store.AcceptanceSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load acceptance sets: %w", err)
	}
	return RecommendFromSets(sets, walkerID, s.params), nil
}
