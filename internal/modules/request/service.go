// README: Walk request lifecycle: commands, conflict-checked acceptance, planning.
package request

import (
	"context"
	"errors"
	"time"

	"pawmatch/internal/modules/schedule"
	"pawmatch/internal/modules/walker"
	"pawmatch/internal/types"
)

var (
	ErrNotFound         = errors.New("walk request not found")
	ErrInvalidState     = errors.New("invalid state transition")
	ErrConflict         = errors.New("request state conflict")
	ErrScheduleConflict = errors.New("walker schedule conflict")
	ErrBadRequest       = errors.New("bad request")
)

type Service struct {
	store       *Store
	walkers     *walker.Store
	valueParams schedule.ValueParams
}

func NewService(store *Store, walkers *walker.Store, valueParams schedule.ValueParams) *Service {
	return &Service{store: store, walkers: walkers, valueParams: valueParams}
}

type CreateCommand struct {
	OwnerID types.ID
	DogID   types.ID
	Start   time.Time
	End     time.Time
	Budget  types.Money
}

type AcceptCommand struct {
	RequestID types.ID
	WalkerID  types.ID
}

type CompleteCommand struct {
	RequestID types.ID
}

type CancelCommand struct {
	RequestID types.ID
	ActorType string
	Reason    string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.OwnerID == "" || cmd.DogID == "" || !cmd.End.After(cmd.Start) {
		return "", ErrBadRequest
	}
	id := types.NewID()
	now := time.Now()
	r := &WalkRequest{
		ID:        id,
		OwnerID:   cmd.OwnerID,
		DogID:     cmd.DogID,
		Status:    StatusPending,
		Start:     cmd.Start,
		End:       cmd.End,
		Budget:    cmd.Budget,
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return "", err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		RequestID:  id,
		FromStatus: StatusNone,
		ToStatus:   StatusPending,
		ActorType:  "owner",
		ActorID:    &cmd.OwnerID,
		CreatedAt:  now,
	})
	return id, nil
}

// Accept books a pending request onto a walker. The walker's active bookings
// are conflict-checked first, and the status transition uses an optimistic
// version check so two concurrent acceptances cannot double-book.
func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) error {
	r, err := s.store.Get(ctx, cmd.RequestID)
	if err != nil {
		return err
	}
	if !CanTransition(r.Status, StatusAccepted) {
		return ErrInvalidState
	}

	existing, err := s.activeIntervals(ctx, cmd.WalkerID)
	if err != nil {
		return err
	}
	candidate := schedule.Interval{ID: r.ID, Start: r.Start, End: r.End}
	if len(schedule.FindConflicts(candidate, existing)) > 0 {
		return ErrScheduleConflict
	}

	ok, err := s.store.UpdateStatus(ctx, r.ID, r.Status, StatusAccepted, r.StatusVersion, &cmd.WalkerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		RequestID:  r.ID,
		FromStatus: StatusPending,
		ToStatus:   StatusAccepted,
		ActorType:  "walker",
		ActorID:    &cmd.WalkerID,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	r, err := s.store.Get(ctx, cmd.RequestID)
	if err != nil {
		return err
	}
	if !CanTransition(r.Status, StatusCompleted) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, r.ID, r.Status, StatusCompleted, r.StatusVersion, r.WalkerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		RequestID:  r.ID,
		FromStatus: StatusAccepted,
		ToStatus:   StatusCompleted,
		ActorType:  "walker",
		ActorID:    r.WalkerID,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	r, err := s.store.Get(ctx, cmd.RequestID)
	if err != nil {
		return err
	}
	if !CanTransition(r.Status, StatusCancelled) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, r.ID, r.Status, StatusCancelled, r.StatusVersion, r.WalkerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	actorID := r.WalkerID
	if cmd.ActorType == "owner" {
		actorID = &r.OwnerID
	}
	_ = s.store.AppendEvent(ctx, &Event{
		RequestID:  r.ID,
		FromStatus: r.Status,
		ToStatus:   StatusCancelled,
		ActorType:  cmd.ActorType,
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*WalkRequest, error) {
	return s.store.Get(ctx, id)
}

// ConflictReport is what a walker sees before taking on a new booking.
type ConflictReport struct {
	Conflicts       []schedule.Conflict
	SuggestedStarts []time.Time
}

// CheckConflicts evaluates a candidate booking against a walker's calendar
// and proposes alternative start times when it collides.
func (s *Service) CheckConflicts(ctx context.Context, walkerID types.ID, start, end time.Time) (*ConflictReport, error) {
	if !end.After(start) {
		return nil, ErrBadRequest
	}
	existing, err := s.activeIntervals(ctx, walkerID)
	if err != nil {
		return nil, err
	}
	candidate := schedule.Interval{Start: start, End: end}
	report := &ConflictReport{Conflicts: schedule.FindConflicts(candidate, existing)}
	if len(report.Conflicts) > 0 {
		report.SuggestedStarts = schedule.SuggestStarts(start, end.Sub(start), existing)
	}
	return report, nil
}

// OptimalSchedule plans the maximum-value set of pending requests a walker
// could take on, around their already accepted bookings.
func (s *Service) OptimalSchedule(ctx context.Context, walkerID types.ID) (*schedule.Plan, error) {
	w, err := s.walkers.Get(ctx, walkerID)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := s.activeIntervals(ctx, walkerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var items []schedule.Item
	for _, r := range pending {
		candidate := schedule.Interval{ID: r.ID, Start: r.Start, End: r.End}
		if len(schedule.FindConflicts(candidate, booked)) > 0 {
			continue
		}
		items = append(items, schedule.Item{
			ID:    r.ID,
			Start: r.Start,
			End:   r.End,
			Value: schedule.WalkValue(r.Start, r.End, w.Rating, now, s.valueParams),
		})
	}
	plan := schedule.MaxValue(items)
	return &plan, nil
}

func (s *Service) activeIntervals(ctx context.Context, walkerID types.ID) ([]schedule.Interval, error) {
	active, err := s.store.ListActiveByWalker(ctx, walkerID)
	if err != nil {
		return nil, err
	}
	intervals := make([]schedule.Interval, len(active))
	for i, b := range active {
		intervals[i] = schedule.Interval{ID: b.ID, Start: b.Start, End: b.End}
	}
	return intervals, nil
}
