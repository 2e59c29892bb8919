/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

// maxAssignment pairs each left vertex with at most one right vertex so that
// as many left vertices as possible are paired (Kuhn's augmenting paths).
// adj[i] lists the right vertices left vertex i may take, in preference
// order. The result maps left vertex to right vertex, or -1.
func maxAssignment(adj [][]int, right int) ([]int, int) {
	owner := make([]int, right)
	for i := range owner {
		owner[i] = -1
	}

	var try func(l int, seen []bool) bool
	try = func(l int, seen []bool) bool {
		for _, r := range adj[l] {
			if seen[r] {
				continue
			}
			seen[r] = true

			if owner[r] == -1 || try(owner[r], seen) {
				owner[r] = l
				return true
			}
		}

		return false
	}

	size := 0
	for l := range adj {
		if try(l, make([]bool, right)) {
			size++
		}
	}

	pairs := make([]int, len(adj))
	for i := range pairs {
		pairs[i] = -1
	}
	for r, l := range owner {
		if l >= 0 {
			pairs[l] = r
		}
	}

	return pairs, size
}
