package solver

import "math"

// hungarian solves the minimum-cost bipartite assignment on an n x m cost
// matrix, returning for each row i the matched column index, or -1 if row i
// has no counterpart (only possible when n != m). The matrix is padded to
// square internally with zero cost; callers must treat a padded match the
// same as "no real counterpart" by checking against the original n, m.
//
// This is the Jonker-Volgenant potential/dual formulation in its common
// O(n^3) array form, operating on 1-indexed internal arrays as the algorithm
// is conventionally expressed.
func hungarian(cost [][]float64, n, m int) []int {
	size := n
	if m > size {
		size = m
	}

	c := make([][]float64, size)
	for i := range c {
		c[i] = make([]float64, size)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			c[i][j] = cost[i][j]
		}
	}

	u := make([]float64, size+1)
	v := make([]float64, size+1)
	assignment := make([]int, size+1)
	way := make([]int, size+1)

	for i := 1; i <= size; i++ {
		assignment[0] = i
		j0 := 0
		minV := make([]float64, size+1)
		used := make([]bool, size+1)
		for j := range minV {
			minV[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := assignment[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= size; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minV[j] {
					minV[j] = cur
					way[j] = j0
				}
				if minV[j] < delta {
					delta = minV[j]
					j1 = j
				}
			}

			for j := 0; j <= size; j++ {
				if used[j] {
					u[assignment[j]] += delta
					v[j] -= delta
				} else {
					minV[j] -= delta
				}
			}

			j0 = j1
			if assignment[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			prev := way[j0]
			assignment[j0] = assignment[prev]
			j0 = prev
		}
	}

	result := make([]int, n)
	for i := range result {
		result[i] = -1
	}
	for j := 1; j <= size; j++ {
		i := assignment[j]
		if i >= 1 && i <= n && j >= 1 && j <= m {
			result[i-1] = j - 1
		}
	}
	return result
}
