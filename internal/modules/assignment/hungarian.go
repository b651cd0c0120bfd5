// README: Minimum-cost bipartite assignment via the Hungarian method.
package assignment

import "math"

// Unassigned marks a row that received no feasible column.
const Unassigned = -1

// infCost stands in for +Inf cells during solving; potential arithmetic on
// genuine infinities produces NaNs, so padding and infeasible pairs use a
// finite sentinel and are translated back to Unassigned afterwards.
const infCost = 1e12

// Solve returns, for each row of the cost matrix, the assigned column index,
// minimizing total cost. Non-square matrices are padded to square with
// infinite-cost cells; rows whose best option is an infinite cell come back
// Unassigned. The input is never mutated. O(n³) time, O(n²) space.
func Solve(cost [][]float64) []int {
	rows := len(cost)
	if rows == 0 {
		return nil
	}
	cols := 0
	for _, r := range cost {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		out := make([]int, rows)
		for i := range out {
			out[i] = Unassigned
		}
		return out
	}

	n := rows
	if cols > n {
		n = cols
	}

	// Working copy, padded square, infinities replaced by the sentinel.
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			v := infCost
			if i < rows && j < len(cost[i]) && !math.IsInf(cost[i][j], 1) && !math.IsNaN(cost[i][j]) {
				v = cost[i][j]
			}
			a[i][j] = v
		}
	}

	reduceRows(a)
	reduceCols(a)

	// Kuhn-Munkres with row/column potentials and shortest augmenting
	// paths. u/v are 1-indexed potentials, match[j] is the row matched to
	// column j (0 means free).
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	match := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := 0; j <= n; j++ {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0 := match[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := a[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if match[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	out := make([]int, rows)
	for i := range out {
		out[i] = Unassigned
	}
	for j := 1; j <= n; j++ {
		i := match[j] - 1
		if i < 0 || i >= rows || j-1 >= cols {
			continue
		}
		// Padding columns and infeasible pairings stay unassigned.
		if j-1 >= len(cost[i]) || math.IsInf(cost[i][j-1], 1) || math.IsNaN(cost[i][j-1]) {
			continue
		}
		out[i] = j - 1
	}
	return out
}

// reduceRows subtracts each row's minimum from the row. Classic first phase
// of the Hungarian method; keeps the optimal assignment invariant.
func reduceRows(a [][]float64) {
	for i := range a {
		min := a[i][0]
		for _, v := range a[i][1:] {
			if v < min {
				min = v
			}
		}
		for j := range a[i] {
			a[i][j] -= min
		}
	}
}

// reduceCols subtracts each column's minimum from the column.
func reduceCols(a [][]float64) {
	n := len(a)
	for j := 0; j < n; j++ {
		min := a[0][j]
		for i := 1; i < n; i++ {
			if a[i][j] < min {
				min = a[i][j]
			}
		}
		for i := 0; i < n; i++ {
			a[i][j] -= min
		}
	}
}

// TotalCost sums the cost of an assignment over the original matrix,
// skipping unassigned rows.
func TotalCost(cost [][]float64, assignment []int) float64 {
	total := 0.0
	for i, j := range assignment {
		if j == Unassigned {
			continue
		}
		total += cost[i][j]
	}
	return total
}
