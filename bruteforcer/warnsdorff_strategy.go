package main

import (
	"fmt"
	"log"
)

// knightDeltas are the eight knight move offsets as (row, col) pairs.
var knightDeltas = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// WarnsdorffStrategy picks moves by Warnsdorff's rule: always jump to the
// legal square with the fewest onward moves. Attempts rotate through start
// squares (server-rated best first, then the corners, then the rest) and
// through tie-break choices, so repeated runs explore different tours.
type WarnsdorffStrategy struct {
	rows       int
	cols       int
	totalCells int

	starts   []Position // opening squares, cycled across attempts
	attempt  int        // 0-based, advanced by Reset
	tieBreak int        // rotates among equally ranked candidates
}

func NewWarnsdorffStrategy(state *GameState, bestStart *Position) *WarnsdorffStrategy {
	s := &WarnsdorffStrategy{
		rows:       state.Rows,
		cols:       state.Cols,
		totalCells: state.TotalCells,
		attempt:    -1,
	}
	s.starts = s.buildStartRotation(bestStart)

	log.Printf("📊 Warnsdorff strategy: %dx%d board, %d candidate starts", s.rows, s.cols, len(s.starts))

	return s
}

// buildStartRotation orders the opening squares: the server's best-rated
// start, then the four corners, then everything else row-major. Corners come
// early because low-degree squares are the hardest to reach late in a tour.
func (s *WarnsdorffStrategy) buildStartRotation(bestStart *Position) []Position {
	seen := make(map[Position]bool)
	starts := make([]Position, 0, s.rows*s.cols)

	add := func(p Position) {
		if p.Row < 0 || p.Row >= s.rows || p.Col < 0 || p.Col >= s.cols || seen[p] {
			return
		}
		seen[p] = true
		starts = append(starts, p)
	}

	if bestStart != nil {
		add(*bestStart)
	}
	add(Position{Row: 0, Col: 0})
	add(Position{Row: 0, Col: s.cols - 1})
	add(Position{Row: s.rows - 1, Col: 0})
	add(Position{Row: s.rows - 1, Col: s.cols - 1})
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			add(Position{Row: r, Col: c})
		}
	}

	return starts
}

// Reset advances the rotation for a fresh attempt. The start square changes
// every attempt; once all starts have been tried, the tie-break shifts so the
// same starts produce different tours.
func (s *WarnsdorffStrategy) Reset() {
	s.attempt++
	s.tieBreak = s.attempt / len(s.starts)
}

// StartCell returns the opening square for the current attempt.
func (s *WarnsdorffStrategy) StartCell() Position {
	return s.starts[s.attempt%len(s.starts)]
}

// StartLabel describes the current attempt's plan for logging.
func (s *WarnsdorffStrategy) StartLabel() string {
	p := s.StartCell()
	return fmt.Sprintf("(%d,%d) tie-break %d", p.Row, p.Col, s.tieBreak)
}

// NextTarget picks the next square to jump to. The opening move places the
// knight on the attempt's start square; after that the server-provided legal
// moves are ranked by onward degree. Returns nil when no move remains.
func (s *WarnsdorffStrategy) NextTarget(state *GameState) *Position {
	if state.KnightPos == nil {
		start := s.StartCell()
		return &start
	}

	if len(state.LegalMoves) == 0 {
		return nil
	}

	visited := func(p Position) bool {
		return p.Row < len(state.Visits) && p.Col < len(state.Visits[p.Row]) && state.Visits[p.Row][p.Col] > 0
	}

	candidates := s.rankCandidates(state.LegalMoves, visited)
	if len(candidates) == 0 {
		return nil
	}

	pick := candidates[s.tieBreak%len(candidates)]
	return &pick
}

// NextTargets plans up to maxMoves squares ahead by simulating the same
// greedy rule on a scratch copy of the visit grid. The server re-validates
// every step, so a stale state at worst stops the batch early.
func (s *WarnsdorffStrategy) NextTargets(state *GameState, maxMoves int) []Position {
	if maxMoves <= 0 {
		return nil
	}

	scratch := make([][]bool, s.rows)
	for r := range scratch {
		scratch[r] = make([]bool, s.cols)
		for c := 0; c < s.cols; c++ {
			if r < len(state.Visits) && c < len(state.Visits[r]) && state.Visits[r][c] > 0 {
				scratch[r][c] = true
			}
		}
	}
	visited := func(p Position) bool {
		return scratch[p.Row][p.Col]
	}

	targets := make([]Position, 0, maxMoves)

	var cur Position
	if state.KnightPos == nil {
		cur = s.StartCell()
		scratch[cur.Row][cur.Col] = true
		targets = append(targets, cur)
	} else {
		cur = *state.KnightPos
	}

	for len(targets) < maxMoves {
		var moves []Position
		for _, d := range knightDeltas {
			n := Position{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if n.Row < 0 || n.Row >= s.rows || n.Col < 0 || n.Col >= s.cols || scratch[n.Row][n.Col] {
				continue
			}
			moves = append(moves, n)
		}

		candidates := s.rankCandidates(moves, visited)
		if len(candidates) == 0 {
			break
		}

		next := candidates[s.tieBreak%len(candidates)]
		scratch[next.Row][next.Col] = true
		targets = append(targets, next)
		cur = next
	}

	return targets
}

// rankCandidates returns the candidates with the fewest onward moves.
func (s *WarnsdorffStrategy) rankCandidates(moves []Position, visited func(Position) bool) []Position {
	minDegree := 9
	var best []Position

	for _, m := range moves {
		deg := s.onwardDegree(m, visited)
		if deg < minDegree {
			minDegree = deg
			best = best[:0]
			best = append(best, m)
		} else if deg == minDegree {
			best = append(best, m)
		}
	}

	return best
}

// onwardDegree counts the unvisited squares a knight on from could jump to.
func (s *WarnsdorffStrategy) onwardDegree(from Position, visited func(Position) bool) int {
	degree := 0
	for _, d := range knightDeltas {
		n := Position{Row: from.Row + d[0], Col: from.Col + d[1]}
		if n.Row < 0 || n.Row >= s.rows || n.Col < 0 || n.Col >= s.cols {
			continue
		}
		if visited(n) {
			continue
		}
		degree++
	}
	return degree
}
