// README: Reputation service: estimates per walker and refreshes aggregates.
package reputation

import (
	"context"
	"log"
	"time"

	"pawmatch/internal/modules/review"
	"pawmatch/internal/modules/walker"
	"pawmatch/internal/types"
)

type Service struct {
	reviews   *review.Store
	walkers   *walker.Store
	estimator *Estimator
}

func NewService(reviews *review.Store, walkers *walker.Store, estimator *Estimator) *Service {
	return &Service{reviews: reviews, walkers: walkers, estimator: estimator}
}

// Report is the snapshot plus the visualization series handlers expose.
type Report struct {
	Snapshot      Snapshot
	MovingAverage []Sample
	LargestDrop   Change
	LargestRise   Change
}

const movingAverageWindow = 5

func (s *Service) WalkerReport(ctx context.Context, walkerID types.ID) (*Report, error) {
	if _, err := s.walkers.Get(ctx, walkerID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByWalker(ctx, walkerID)
	if err != nil {
		return nil, err
	}
	drop, rise := MaxChanges(reviews)
	return &Report{
		Snapshot:      s.estimator.Estimate(reviews, time.Now()),
		MovingAverage: MovingAverage(reviews, movingAverageWindow),
		LargestDrop:   drop,
		LargestRise:   rise,
	}, nil
}

// RefreshAggregates recomputes every active walker's combined rating and
// writes it back to the profile, where the compatibility scorer reads it.
func (s *Service) RefreshAggregates(ctx context.Context) error {
	walkers, err := s.walkers.ListActive(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, w := range walkers {
		reviews, err := s.reviews.ListByWalker(ctx, w.ID)
		if err != nil {
			return err
		}
		snap := s.estimator.Estimate(reviews, now)
		if err := s.walkers.UpdateRatingAggregate(ctx, w.ID, snap.Combined, snap.ReviewCount); err != nil {
			return err
		}
	}
	return nil
}

// RunRefreshTicker periodically refreshes rating aggregates until ctx ends.
func (s *Service) RunRefreshTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RefreshAggregates(ctx); err != nil {
				log.Printf("reputation refresh: %v", err)
			}
		}
	}
}
