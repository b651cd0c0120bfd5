// README: Walk request aggregate and status definitions.
package request

import (
	"time"

	"pawmatch/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type WalkRequest struct {
	ID            types.ID
	OwnerID       types.ID
	DogID         types.ID
	WalkerID      *types.ID
	Status        Status
	StatusVersion int
	Start         time.Time
	End           time.Time
	Budget        types.Money
	CreatedAt     time.Time
	AcceptedAt    *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  *string
}

func (r *WalkRequest) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Matchable reports whether the request is eligible for scoring and
// assignment. Only pending requests qualify.
func (r *WalkRequest) Matchable() bool {
	return r.Status == StatusPending
}

// AllowedTransitions represents the request lifecycle as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusCancelled},
	StatusAccepted: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

type Event struct {
	ID         int64
	RequestID  types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *types.ID
	CreatedAt  time.Time
}
