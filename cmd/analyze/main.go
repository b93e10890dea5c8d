// Command analyze prints quick, human-readable heuristics about the board
// presets in the project's configs directory. For each preset it runs the
// greedy tour simulation from every starting cell and summarizes the
// per-start estimate table, best/worst/average tour potential, and any
// isolated cells the knight cannot leave.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wricardo/mcp-training/knightstour/game/engine"
)

// AnalysisConfig is a light struct for reading preset files used by analysis.
type AnalysisConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
}

func main() {
	configs := []string{
		"default.json",
		"chessboard.json",
		"compact.json",
		"micro.json",
	}

	for _, configFile := range configs {
		fmt.Printf("\n=== Analyzing %s ===\n", configFile)
		analyzeConfig(filepath.Join("configs", configFile))
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config AnalysisConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Board: %d x %d (%d squares)\n", config.Rows, config.Cols, config.Rows*config.Cols)

	board, err := engine.NewBoard(config.Rows, config.Cols)
	if err != nil {
		fmt.Printf("Error building board: %v\n", err)
		return
	}

	estimates := engine.EstimateAllStarts(board)

	fmt.Println("Per-start tour estimates:")
	printEstimateTable(config.Rows, config.Cols, estimates)

	best, worst, avg := summarizeEstimates(estimates)
	fmt.Printf("Best start: (%d,%d) reaches %d\n", best.Start.Row, best.Start.Col, best.Length)
	fmt.Printf("Worst start: (%d,%d) reaches %d\n", worst.Start.Row, worst.Start.Col, worst.Length)
	fmt.Printf("Average estimate: %.1f of %d squares\n", avg, board.TotalCells())

	// How often the greedy rule finishes the whole board
	fullTourStarts := 0
	for _, est := range estimates {
		if est.Length == board.TotalCells() {
			fullTourStarts++
		}
	}
	if fullTourStarts > 0 {
		fmt.Printf("✅ Greedy simulation completes a full tour from %d of %d starts\n", fullTourStarts, len(estimates))
	} else {
		fmt.Printf("ℹ️  Greedy simulation never completes a full tour; best covers %d of %d squares\n", best.Length, board.TotalCells())
	}

	// Move-degree histogram over the empty board
	degrees := engine.DegreeMap(board)
	hist := make(map[int]int)
	for _, row := range degrees {
		for _, d := range row {
			hist[d]++
		}
	}
	fmt.Printf("Move-degree histogram:")
	for d := 0; d <= 8; d++ {
		if hist[d] > 0 {
			fmt.Printf(" %d:%d", d, hist[d])
		}
	}
	fmt.Println()

	isolated := isolatedCells(config.Rows, config.Cols)
	if len(isolated) > 0 {
		fmt.Printf("⚠️  WARNING: %d cells have no knight moves at all!\n", len(isolated))
		for i, p := range isolated {
			if i < 5 { // Show first 5 isolated cells
				fmt.Printf("   Isolated: (%d, %d)\n", p.Row, p.Col)
			}
		}
		if len(isolated) > 5 {
			fmt.Printf("   ... and %d more\n", len(isolated)-5)
		}
	} else {
		fmt.Printf("✅ Every cell has at least one knight move\n")
	}
}

// printEstimateTable renders the row-major estimate list as a grid.
func printEstimateTable(rows, cols int, estimates []engine.TourEstimate) {
	fmt.Printf("    ")
	for c := 0; c < cols; c++ {
		fmt.Printf("%4d", c)
	}
	fmt.Println()

	for r := 0; r < rows; r++ {
		fmt.Printf("%4d", r)
		for c := 0; c < cols; c++ {
			fmt.Printf("%4d", estimates[r*cols+c].Length)
		}
		fmt.Println()
	}
}

// summarizeEstimates returns the best and worst starting cells and the mean
// estimate. Earliest cell in row-major order wins ties on both ends.
func summarizeEstimates(estimates []engine.TourEstimate) (best, worst engine.TourEstimate, avg float64) {
	if len(estimates) == 0 {
		return
	}

	best, worst = estimates[0], estimates[0]
	sum := 0
	for _, est := range estimates {
		if est.Length > best.Length {
			best = est
		}
		if est.Length < worst.Length {
			worst = est
		}
		sum += est.Length
	}
	avg = float64(sum) / float64(len(estimates))
	return
}

// isolatedCells lists cells whose knight-graph component is just themselves,
// like the centre of a 3x3 board.
func isolatedCells(rows, cols int) []engine.Position {
	var isolated []engine.Position
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := engine.Position{Row: r, Col: c}
			if engine.ReachableCells(rows, cols, p) == 1 {
				isolated = append(isolated, p)
			}
		}
	}
	return isolated
}
