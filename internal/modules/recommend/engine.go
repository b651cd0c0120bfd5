// README: Neighbor-based collaborative filtering over rating and acceptance data.
package recommend

import (
	"math"
	"sort"

	"pawmatch/internal/types"
)

// Ratings is a sparse preference matrix: row entity -> column entity -> value.
type Ratings map[types.ID]map[types.ID]float64

// Sets is the implicit variant: row entity -> set of accepted columns.
type Sets map[types.ID]map[types.ID]struct{}

// Params tunes neighbor search and result shaping.
type Params struct {
	KNeighbors int `koanf:"k_neighbors"`
	MaxResults int `koanf:"max_results"`
}

func DefaultParams() Params {
	return Params{KNeighbors: 5, MaxResults: 10}
}

// Recommendation is one scored candidate for the target row.
type Recommendation struct {
	ID         types.ID `json:"id"`
	Score      float64  `json:"score"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
}

type neighbor struct {
	id  types.ID
	sim float64
}

// CosineShared is cosine similarity restricted to the columns both rows have
// rated. With no shared columns the rows are incomparable and the result is 0.
// A row compared with itself over its own columns yields 1.
func CosineShared(a, b map[types.ID]float64) float64 {
	var dot, na, nb float64
	for col, av := range a {
		bv, ok := b[col]
		if !ok {
			continue
		}
		dot += av * bv
		na += av * av
		nb += bv * bv
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Jaccard is intersection over union for set-valued preferences.
func Jaccard(a, b map[types.ID]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for id := range a {
		if _, ok := b[id]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// RecommendFromRatings predicts scores for columns the target row has not yet
// rated, using its k most similar rows as neighbors. Explicit-rating variant.
func RecommendFromRatings(matrix Ratings, target types.ID, p Params) []Recommendation {
	row := matrix[target]
	if len(row) == 0 {
		return nil
	}

	neighbors := topNeighbors(target, p.KNeighbors, func(other types.ID) float64 {
		return CosineShared(row, matrix[other])
	}, ratingRows(matrix))
	if len(neighbors) == 0 {
		return nil
	}

	// Every column any neighbor rated that the target has not.
	preds := make(map[types.ID]*accum)
	for _, nb := range neighbors {
		for col, v := range matrix[nb.id] {
			if _, rated := row[col]; rated {
				continue
			}
			a := preds[col]
			if a == nil {
				a = &accum{}
				preds[col] = a
			}
			a.weighted += nb.sim * v
			a.simSum += nb.sim
		}
	}
	return shape(preds, p, "owners with similar rating history liked this walker")
}

// RecommendFromSets is the implicit-feedback variant over acceptance sets.
// Predictions are membership strengths in [0,1].
func RecommendFromSets(sets Sets, target types.ID, p Params) []Recommendation {
	row := sets[target]
	if len(row) == 0 {
		return nil
	}

	neighbors := topNeighbors(target, p.KNeighbors, func(other types.ID) float64 {
		return Jaccard(row, sets[other])
	}, setRows(sets))
	if len(neighbors) == 0 {
		return nil
	}

	preds := make(map[types.ID]*accum)
	for _, nb := range neighbors {
		for col := range sets[nb.id] {
			if _, has := row[col]; has {
				continue
			}
			a := preds[col]
			if a == nil {
				a = &accum{}
				preds[col] = a
			}
			// Membership counts as a rating of 1.
			a.weighted += nb.sim
			a.simSum += nb.sim
		}
	}
	return shape(preds, p, "walkers with similar booking history worked with this owner")
}

type accum struct {
	weighted float64
	simSum   float64
}

// topNeighbors ranks all other rows by similarity descending, id ascending on
// ties, and keeps the first k with positive similarity.
func topNeighbors(target types.ID, k int, sim func(types.ID) float64, rows []types.ID) []neighbor {
	if k <= 0 {
		return nil
	}
	cands := make([]neighbor, 0, len(rows))
	for _, id := range rows {
		if id == target {
			continue
		}
		s := sim(id)
		if s <= 0 {
			continue
		}
		cands = append(cands, neighbor{id: id, sim: s})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].sim != cands[j].sim {
			return cands[i].sim > cands[j].sim
		}
		return cands[i].id < cands[j].id
	})
	if len(cands) > k {
		cands = cands[:k]
	}
	return cands
}

// shape turns accumulated predictions into the final capped, ordered list.
// Confidence divides by k so sparse neighborhoods read as low-confidence even
// when the few neighbors present agree.
func shape(preds map[types.ID]*accum, p Params, reason string) []Recommendation {
	k := p.KNeighbors
	if k <= 0 {
		k = 1
	}
	out := make([]Recommendation, 0, len(preds))
	for id, a := range preds {
		if a.simSum == 0 {
			continue
		}
		out = append(out, Recommendation{
			ID:         id,
			Score:      a.weighted / a.simSum,
			Confidence: clamp01(a.simSum / float64(k)),
			Reason:     reason,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].ID < out[j].ID
	})
	if p.MaxResults > 0 && len(out) > p.MaxResults {
		out = out[:p.MaxResults]
	}
	return out
}

func ratingRows(m Ratings) []types.ID {
	out := make([]types.ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func setRows(m Sets) []types.ID {
	out := make([]types.ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
