// README: Walker store backed by PostgreSQL.
package walker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawmatch/internal/types"
)

var (
	ErrNotFound    = errors.New("walker not found")
	ErrBadLocation = errors.New("bad walker location")
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const walkerColumns = `
	id, name, lat, lng,
	accepted_sizes, accepted_temperaments, accepted_energy, supported_needs,
	experience, hourly_rate, rate_currency,
	available_days, preferred_slots, max_distance_km,
	rating, review_count, active`

func (s *Store) Get(ctx context.Context, id types.ID) (*Walker, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+walkerColumns+`
		FROM walkers
		WHERE id = $1`, string(id),
	)
	w, err := scanWalker(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return w, err
}

func (s *Store) ListActive(ctx context.Context) ([]*Walker, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+walkerColumns+`
		FROM walkers
		WHERE active
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Walker
	for rows.Next() {
		w, err := scanWalker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// UpdateRatingAggregate writes the reputation service's refreshed rating and
// review count back onto the profile.
func (s *Store) UpdateRatingAggregate(ctx context.Context, id types.ID, rating float64, reviewCount int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE walkers
		SET rating = $1, review_count = $2
		WHERE id = $3`,
		rating, reviewCount, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateLocation writes a walker's current position to the profile row.
func (s *Store) UpdateLocation(ctx context.Context, id types.ID, p types.Point) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE walkers
		SET lat = $1, lng = $2
		WHERE id = $3`,
		p.Lat, p.Lng, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive toggles whether a walker participates in matching and assignment.
func (s *Store) SetActive(ctx context.Context, id types.ID, active bool) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE walkers
		SET active = $1
		WHERE id = $2`,
		active, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWalker(row rowScanner) (*Walker, error) {
	var (
		w              Walker
		lat, lng       *float64
		sizes          []string
		temperaments   []string
		energy         []string
		days           []int32
		slots          []string
		experience     string
		rateAmount     int64
		rateCurrency   string
	)
	err := row.Scan(
		&w.ID, &w.Name, &lat, &lng,
		&sizes, &temperaments, &energy, &w.SupportedNeeds,
		&experience, &rateAmount, &rateCurrency,
		&days, &slots, &w.MaxDistanceKm,
		&w.Rating, &w.ReviewCount, &w.Active,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		w.Location = &types.Point{Lat: *lat, Lng: *lng}
	}
	for _, v := range sizes {
		if sz := ParseDogSize(v); sz != SizeUnknown {
			w.AcceptedSizes = append(w.AcceptedSizes, sz)
		}
	}
	for _, v := range temperaments {
		if tp := ParseTemperament(v); tp != TemperamentUnknown {
			w.AcceptedTemperaments = append(w.AcceptedTemperaments, tp)
		}
	}
	for _, v := range energy {
		if e := ParseEnergyLevel(v); e != EnergyUnknown {
			w.AcceptedEnergy = append(w.AcceptedEnergy, e)
		}
	}
	for _, d := range days {
		if d >= 0 && d <= 6 {
			w.AvailableDays = append(w.AvailableDays, time.Weekday(d))
		}
	}
	for _, v := range slots {
		if slot, ok := ParseTimeSlot(strings.TrimSpace(v)); ok {
			w.PreferredSlots = append(w.PreferredSlots, slot)
		}
	}
	w.Experience = ParseExperienceTier(experience)
	w.HourlyRate = types.Money{Amount: rateAmount, Currency: rateCurrency}
	return &w, nil
}
