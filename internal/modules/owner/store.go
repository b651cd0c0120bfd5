// README: Owner and dog store backed by PostgreSQL.
package owner

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawmatch/internal/modules/walker"
	"pawmatch/internal/types"
)

var ErrNotFound = errors.New("owner or dog not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetOwner(ctx context.Context, id types.ID) (*Owner, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, lat, lng
		FROM owners
		WHERE id = $1`, string(id),
	)
	var (
		o        Owner
		lat, lng *float64
	)
	err := row.Scan(&o.ID, &o.Name, &lat, &lng)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		o.Location = &types.Point{Lat: *lat, Lng: *lng}
	}
	return &o, nil
}

func (s *Store) GetDog(ctx context.Context, id types.ID) (*Dog, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, owner_id, name, size, temperament, energy, special_needs
		FROM dogs
		WHERE id = $1`, string(id),
	)
	var (
		d                        Dog
		size, temperament, energy string
	)
	err := row.Scan(&d.ID, &d.OwnerID, &d.Name, &size, &temperament, &energy, &d.SpecialNeeds)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Size = walker.ParseDogSize(size)
	d.Temperament = walker.ParseTemperament(temperament)
	d.Energy = walker.ParseEnergyLevel(energy)
	return &d, nil
}
