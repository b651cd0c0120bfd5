// README: Matching service orchestrates candidate pools and ranks walkers.
package matching

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pawmatch/internal/modules/owner"
	"pawmatch/internal/modules/request"
	"pawmatch/internal/modules/walker"
	"pawmatch/internal/types"
)

var ErrNotMatchable = errors.New("request is not pending")

var (
	matchQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pawmatch_match_queries_total",
		Help: "Total number of match ranking queries",
	})
	matchScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pawmatch_compatibility_scores",
		Help:    "Distribution of computed compatibility scores",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
)

type Config struct {
	TopK           int     `koanf:"top_k"`
	GeoPrefilterKm float64 `koanf:"geo_prefilter_km"`
}

func DefaultConfig() Config {
	return Config{TopK: 10, GeoPrefilterKm: 25}
}

type Service struct {
	scorer   *Scorer
	walkers  *walker.Store
	geo      *walker.GeoStore
	owners   *owner.Store
	requests *request.Store
	cfg      Config
}

func NewService(scorer *Scorer, walkers *walker.Store, geo *walker.GeoStore, owners *owner.Store, requests *request.Store, cfg Config) *Service {
	return &Service{
		scorer:   scorer,
		walkers:  walkers,
		geo:      geo,
		owners:   owners,
		requests: requests,
		cfg:      cfg,
	}
}

// Matches ranks candidate walkers for one pending request. When the owner
// has a location the Redis GEO index narrows the pool before scoring;
// otherwise every active walker is scored.
func (s *Service) Matches(ctx context.Context, requestID types.ID) ([]Match, error) {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.Matchable() {
		return nil, ErrNotMatchable
	}
	ow, err := s.owners.GetOwner(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	dog, err := s.owners.GetDog(ctx, req.DogID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.candidatePool(ctx, ow)
	if err != nil {
		return nil, err
	}

	matchQueriesTotal.Inc()
	matches := s.scorer.Rank(candidates, req, ow, dog, s.cfg.TopK)
	for _, m := range matches {
		matchScores.Observe(m.Score)
	}
	return matches, nil
}

func (s *Service) candidatePool(ctx context.Context, ow *owner.Owner) ([]*walker.Walker, error) {
	if ow.Location == nil || s.geo == nil {
		return s.walkers.ListActive(ctx)
	}
	ids, err := s.geo.Nearby(ctx, *ow.Location, s.cfg.GeoPrefilterKm)
	if err != nil || len(ids) == 0 {
		// The GEO index is an optimization; fall back to the full pool.
		return s.walkers.ListActive(ctx)
	}
	var out []*walker.Walker
	for _, id := range ids {
		w, err := s.walkers.Get(ctx, id)
		if err != nil {
			if errors.Is(err, walker.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}
