package grid

// axisPartition computes a BLOCKED (as-equal-as-possible, contiguous)
// decomposition of extent cells across n units along one axis,
// matching dash::BLOCKED: the first extent%n units get one extra cell.
// It returns, for each unit, the first global index it owns and the
// count of cells it owns.
func axisPartition(extent, n int) (offsets []int, counts []int) {
	offsets = make([]int, n)
	counts = make([]int, n)
	base := extent / n
	rem := extent % n
	pos := 0
	for u := 0; u < n; u++ {
		c := base
		if u < rem {
			c++
		}
		offsets[u] = pos
		counts[u] = c
		pos += c
	}
	return offsets, counts
}

// axisUnitOf returns the index, along an axis partitioned by
// axisPartition, of the unit owning global coordinate g.
func axisUnitOf(g int, offsets, counts []int) int {
	for u := len(offsets) - 1; u >= 0; u-- {
		if g >= offsets[u] && g < offsets[u]+counts[u] {
			return u
		}
	}
	return 0
}
