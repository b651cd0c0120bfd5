package assignment

import (
	"math"
	"math/rand"
	"testing"
)

func TestSolve_Known3x3(t *testing.T) {
	cost := [][]float64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	}
	got := Solve(cost)
	// Optimal: row0->col1 (1), row1->col0 (2), row2->col2 (2) = 5.
	want := []int{1, 0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("assignment = %v, want %v", got, want)
		}
	}
	if total := TotalCost(cost, got); total != 5 {
		t.Fatalf("total cost = %v, want 5", total)
	}
}

func TestSolve_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(6)
		cost := make([][]float64, n)
		for i := range cost {
			cost[i] = make([]float64, n)
			for j := range cost[i] {
				cost[i][j] = math.Round(rng.Float64()*1000) / 10
			}
		}
		got := TotalCost(cost, Solve(cost))
		want := bruteForceMin(cost)
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("trial %d: solver cost %v, brute force %v, matrix %v", trial, got, want, cost)
		}
	}
}

func TestSolve_MoreRowsThanColumns(t *testing.T) {
	cost := [][]float64{
		{1},
		{2},
		{3},
	}
	got := Solve(cost)
	assigned := 0
	for i, j := range got {
		if j == Unassigned {
			continue
		}
		assigned++
		if i != 0 {
			t.Fatalf("expected the cheapest row to win the only column, got %v", got)
		}
	}
	if assigned != 1 {
		t.Fatalf("assigned = %d, want 1 (got %v)", assigned, got)
	}
}

func TestSolve_MoreColumnsThanRows(t *testing.T) {
	cost := [][]float64{
		{9, 2, 7},
	}
	got := Solve(cost)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("assignment = %v, want [1]", got)
	}
}

func TestSolve_InfeasibleCellsStayUnassigned(t *testing.T) {
	inf := math.Inf(1)
	cost := [][]float64{
		{inf, inf},
		{1, inf},
	}
	got := Solve(cost)
	if got[0] != Unassigned {
		t.Fatalf("row 0 has no feasible column, got assignment %v", got)
	}
	if got[1] != 0 {
		t.Fatalf("row 1 should take column 0, got %v", got)
	}
}

func TestSolve_Empty(t *testing.T) {
	if got := Solve(nil); got != nil {
		t.Fatalf("Solve(nil) = %v, want nil", got)
	}
	if got := Solve([][]float64{{}, {}}); got[0] != Unassigned || got[1] != Unassigned {
		t.Fatalf("empty rows should be unassigned, got %v", got)
	}
}

func TestSolve_DoesNotMutateInput(t *testing.T) {
	cost := [][]float64{
		{4, 1},
		{2, 3},
	}
	Solve(cost)
	if cost[0][0] != 4 || cost[0][1] != 1 || cost[1][0] != 2 || cost[1][1] != 3 {
		t.Fatalf("input matrix mutated: %v", cost)
	}
}

// bruteForceMin enumerates every permutation of a square matrix.
func bruteForceMin(cost [][]float64) float64 {
	n := len(cost)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := math.Inf(1)
	var walk func(k int)
	walk = func(k int) {
		if k == n {
			total := 0.0
			for i, j := range perm {
				total += cost[i][j]
			}
			if total < best {
				best = total
			}
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			walk(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	walk(0)
	return best
}
