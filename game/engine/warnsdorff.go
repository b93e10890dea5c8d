package engine

// EstimateMaxTour estimates the longest tour reachable from start using
// Warnsdorff's heuristic: simulate on a scratch clone of the board, always
// moving to the unvisited reachable cell with the fewest onward moves, ties
// broken by ascending row then column. Returns the number of cells the
// simulation visited, including start, which never exceeds rows*cols.
//
// The result is a heuristic estimate, not a guarantee: the greedy rule can
// miss the true longest tour on some boards. The real board is never
// mutated. Fails with an InvalidStartError if start is out of bounds.
func EstimateMaxTour(b *Board, start Position) (int, error) {
	if !b.InBounds(start) {
		return 0, &InvalidStartError{Start: start, Rows: b.Rows(), Cols: b.Cols()}
	}

	scratch := b.Clone()
	if visited, _ := scratch.IsVisited(start); !visited {
		scratch.CommitMove(start)
	}

	count := 1
	cur := start
	for {
		targets, _ := KnightTargets(scratch, cur)
		if len(targets) == 0 {
			return count, nil
		}

		// targets come back sorted, so a strict comparison keeps the
		// lowest row/col candidate on ties.
		best := targets[0]
		bestDegree := onwardDegree(scratch, best)
		for _, cell := range targets[1:] {
			if d := onwardDegree(scratch, cell); d < bestDegree {
				best, bestDegree = cell, d
			}
		}

		scratch.CommitMove(best)
		cur = best
		count++
	}
}

// onwardDegree counts the unvisited knight targets reachable from cell.
func onwardDegree(b *Board, cell Position) int {
	targets, _ := KnightTargets(b, cell)
	return len(targets)
}

// EstimateAllStarts runs the greedy simulation from every cell of the
// board, in row-major order. Used to compute the board-wide best tour shown
// to the player and by the analysis tooling.
func EstimateAllStarts(b *Board) []TourEstimate {
	estimates := make([]TourEstimate, 0, b.TotalCells())
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			start := Position{Row: r, Col: c}
			length, _ := EstimateMaxTour(b, start)
			estimates = append(estimates, TourEstimate{Start: start, Length: length})
		}
	}
	return estimates
}

// BestTour returns the estimate with the longest tour among all starting
// cells, the earliest start in row-major order winning ties.
func BestTour(b *Board) TourEstimate {
	best := TourEstimate{Start: Position{Row: 0, Col: 0}, Length: 0}
	for _, est := range EstimateAllStarts(b) {
		if est.Length > best.Length {
			best = est
		}
	}
	return best
}
