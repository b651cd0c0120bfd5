// README: Fleet-wide assignment service: pending requests to active walkers.
package assignment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pawmatch/internal/modules/matching"
	"pawmatch/internal/modules/owner"
	"pawmatch/internal/modules/request"
	"pawmatch/internal/modules/schedule"
	"pawmatch/internal/modules/walker"
	"pawmatch/internal/types"
)

var (
	sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pawmatch_assignment_sweeps_total",
		Help: "Number of global assignment sweeps executed.",
	})
	assignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pawmatch_assignment_pairs_total",
		Help: "Number of request/walker pairs produced by assignment sweeps.",
	})
)

// Assignment is one request/walker pairing from a sweep.
type Assignment struct {
	RequestID types.ID `json:"request_id"`
	WalkerID  types.ID `json:"walker_id"`
	Cost      float64  `json:"cost"`
}

// Result is the outcome of one global assignment sweep.
type Result struct {
	Assignments []Assignment `json:"assignments"`
	Unassigned  []types.ID   `json:"unassigned"`
	TotalCost   float64      `json:"total_cost"`
}

// Config tunes the assignment sweep.
type Config struct {
	Criteria      string      `koanf:"criteria"`
	Weights       CostWeights `koanf:"weights"`
	MaxDistanceKm float64     `koanf:"max_distance_km"`
}

func DefaultConfig() Config {
	return Config{
		Criteria:      string(CriteriaBalanced),
		Weights:       DefaultCostWeights(),
		MaxDistanceKm: 25,
	}
}

type Service struct {
	requests *request.Store
	walkers  *walker.Store
	owners   *owner.Store
	scorer   *matching.Scorer
	cfg      Config
}

func NewService(requests *request.Store, walkers *walker.Store, owners *owner.Store, scorer *matching.Scorer, cfg Config) *Service {
	return &Service{
		requests: requests,
		walkers:  walkers,
		owners:   owners,
		scorer:   scorer,
		cfg:      cfg,
	}
}

// Sweep computes the minimum-cost global assignment of all pending requests
// across all active walkers. It does not mutate any request; callers decide
// whether to act on the proposal. Criteria, when non-empty, overrides the
// configured default for this sweep.
func (s *Service) Sweep(ctx context.Context, criteria string) (*Result, error) {
	sweepsTotal.Inc()

	reqs, err := s.requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	walkers, err := s.walkers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active walkers: %w", err)
	}
	if len(reqs) == 0 || len(walkers) == 0 {
		out := &Result{}
		for _, r := range reqs {
			out.Unassigned = append(out.Unassigned, r.ID)
		}
		return out, nil
	}

	cands := make([]Candidate, len(walkers))
	for j, w := range walkers {
		booked, err := s.bookedIntervals(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		cands[j] = Candidate{Walker: *w, Booked: booked}
	}

	c := ParseCriteria(criteria)
	if criteria == "" {
		c = ParseCriteria(s.cfg.Criteria)
	}
	pricer := NewPricer(c, s.cfg.Weights, s.cfg.MaxDistanceKm)

	rows := make([]request.WalkRequest, len(reqs))
	origins := make([]*types.Point, len(reqs))
	cost := make([][]float64, len(reqs))
	for i, r := range reqs {
		rows[i] = *r
		ow, dog, err := s.requestContext(ctx, r)
		if err != nil {
			return nil, err
		}
		if ow != nil {
			origins[i] = ow.Location
		}
		cost[i] = make([]float64, len(cands))
		for j := range cands {
			// Candidate is copied so per-pair compatibility does not
			// leak between requests sharing a walker column.
			cand := cands[j]
			if ow != nil && dog != nil {
				cand.MatchFit = s.scorer.Score(&cand.Walker, r, ow, dog).Score
			}
			cost[i][j] = pricer.Cell(rows[i], cand, origins[i])
		}
	}

	assigned := Solve(cost)
	out := &Result{}
	for i, j := range assigned {
		if j == Unassigned {
			out.Unassigned = append(out.Unassigned, rows[i].ID)
			continue
		}
		out.Assignments = append(out.Assignments, Assignment{
			RequestID: rows[i].ID,
			WalkerID:  cands[j].Walker.ID,
			Cost:      cost[i][j],
		})
		out.TotalCost += cost[i][j]
	}
	assignedTotal.Add(float64(len(out.Assignments)))
	return out, nil
}

func (s *Service) requestContext(ctx context.Context, r *request.WalkRequest) (*owner.Owner, *owner.Dog, error) {
	ow, err := s.owners.GetOwner(ctx, r.OwnerID)
	if err != nil {
		if errors.Is(err, owner.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("load owner %s: %w", r.OwnerID, err)
	}
	dog, err := s.owners.GetDog(ctx, r.DogID)
	if err != nil {
		if errors.Is(err, owner.ErrNotFound) {
			return ow, nil, nil
		}
		return nil, nil, fmt.Errorf("load dog %s: %w", r.DogID, err)
	}
	return ow, dog, nil
}

func (s *Service) bookedIntervals(ctx context.Context, walkerID types.ID) ([]schedule.Interval, error) {
	active, err := s.requests.ListActiveByWalker(ctx, walkerID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for walker %s: %w", walkerID, err)
	}
	out := make([]schedule.Interval, 0, len(active))
	for _, r := range active {
		out = append(out, schedule.Interval{ID: r.ID, Start: r.Start, End: r.End})
	}
	return out, nil
}

// RunSweeper re-runs the global assignment on a fixed cadence until the
// context is cancelled. Proposals are logged, not applied.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := s.Sweep(ctx, "")
			if err != nil {
				log.Printf("assignment sweep failed: %v", err)
				continue
			}
			log.Printf("assignment sweep: %d assigned, %d unassigned, total cost %.2f",
				len(res.Assignments), len(res.Unassigned), res.TotalCost)
		}
	}
}
