// README: Immutable review records; accumulation drives reputation.
package review

import (
	"time"

	"pawmatch/internal/types"
)

// Review is append-only. Rating is bounded to [0,5] at creation time.
type Review struct {
	ID         types.ID
	ReviewerID types.ID
	WalkerID   types.ID
	RequestID  types.ID
	Rating     float64
	Comment    string
	CreatedAt  time.Time
}

const (
	MinRating = 0.0
	MaxRating = 5.0
)

func (r *Review) ValidRating() bool {
	return r.Rating >= MinRating && r.Rating <= MaxRating
}
