// README: Walker presence service: location updates and availability toggling.
package walker

import (
	"context"
	"fmt"

	"pawmatch/internal/types"
)

// Service keeps the profile row and the Redis GEO index in step. The GEO
// index is a pre-filter, so Postgres is written first and a failed index
// write surfaces as an error rather than leaving stale truth in the profile.
type Service struct {
	store *Store
	geo   *GeoStore
}

func NewService(store *Store, geo *GeoStore) *Service {
	return &Service{store: store, geo: geo}
}

// UpdateLocation records a walker's position in both stores.
func (s *Service) UpdateLocation(ctx context.Context, id types.ID, p types.Point) error {
	if !p.Valid() {
		return fmt.Errorf("%w: invalid coordinates", ErrBadLocation)
	}
	if err := s.store.UpdateLocation(ctx, id, p); err != nil {
		return err
	}
	if err := s.geo.Upsert(ctx, id, p); err != nil {
		return fmt.Errorf("update geo index for walker %s: %w", id, err)
	}
	return nil
}

// SetActive toggles matching participation. Deactivated walkers leave the
// GEO index so radius queries never surface them.
func (s *Service) SetActive(ctx context.Context, id types.ID, active bool) error {
	if err := s.store.SetActive(ctx, id, active); err != nil {
		return err
	}
	if !active {
		if err := s.geo.Remove(ctx, id); err != nil {
			return fmt.Errorf("remove walker %s from geo index: %w", id, err)
		}
	}
	return nil
}
