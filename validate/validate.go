// Command validate provides a small CLI that validates board preset JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board dimensions (rows and cols must be positive)
//   - Message keys and format strings (%d placeholders where the engine
//     expects them)
//   - Knight-graph connectivity: whether every square can reach every other
//     square by knight moves, with warnings for squares that have no knight
//     moves at all
//
// Connectivity problems are reported as warnings rather than errors because
// small boards are legitimately split: the centre of a 3x3 board has no
// knight moves, yet the board is still playable from the outer ring.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a board preset.
type Config struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Rows        int               `json:"rows"`
	Cols        int               `json:"cols"`
	Messages    map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// knownMessageKeys are the message slots the engine understands. Presets may
// omit any of them; the engine fills defaults for missing entries.
var knownMessageKeys = map[string]bool{
	"welcome":        true,
	"game_over":      true,
	"board_complete": true,
	"cell_visited":   true,
}

// validateConfig loads and validates a single preset JSON file. It performs
// structural checks, message validation, and knight-graph connectivity
// analysis.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate required fields
	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}

	// Validate dimensions
	if config.Rows < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("rows must be positive, got %d", config.Rows))
	}
	if config.Cols < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("cols must be positive, got %d", config.Cols))
	}

	// Validate messages. All keys are optional, but a present key must be
	// one the engine knows, and format strings must carry the placeholders
	// the engine substitutes at runtime.
	for key := range config.Messages {
		if !knownMessageKeys[key] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Unknown message key: %s", key))
		}
	}
	if msg, ok := config.Messages["game_over"]; ok && !strings.Contains(msg, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "messages.game_over must contain %d for the visited count")
	}
	if msg, ok := config.Messages["board_complete"]; ok && !strings.Contains(msg, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "messages.board_complete must contain %d for the visited count")
	}
	if msg, ok := config.Messages["cell_visited"]; ok && strings.Count(msg, "%d") < 2 {
		result.Valid = false
		result.Errors = append(result.Errors, "messages.cell_visited must contain %d twice for visited and total counts")
	}

	// Connectivity analysis - only meaningful once the dimensions are sane
	if result.Valid {
		connectivity := validateConnectivity(config.Rows, config.Cols)
		result.Errors = append(result.Errors, connectivity.Errors...)
	}

	// Add informational data
	if result.Valid {
		custom := len(config.Messages)
		defaulted := len(knownMessageKeys) - custom
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d (%d squares)", config.Rows, config.Cols, config.Rows*config.Cols))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Messages: %d custom, %d defaulted", custom, defaulted))
	}

	return result
}

// knightDeltas are the eight knight move offsets as (row, col) pairs.
var knightDeltas = [][]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// validateConnectivity analyses the knight-move graph of a rows x cols board.
// It flood fills components, counts squares with no knight moves at all, and
// reports whether the whole board is mutually reachable. The result is always
// Valid; split boards get warning lines instead of errors.
func validateConnectivity(rows, cols int) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	total := rows * cols

	inBounds := func(r, c int) bool {
		return r >= 0 && r < rows && c >= 0 && c < cols
	}

	// Flood fill each component of the knight graph
	visited := make(map[string]bool)
	components := 0
	largest := 0

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			key := fmt.Sprintf("%d,%d", r, c)
			if visited[key] {
				continue
			}

			components++
			size := 0
			queue := [][]int{{r, c}}
			visited[key] = true

			for len(queue) > 0 {
				current := queue[0]
				queue = queue[1:]
				size++

				for _, d := range knightDeltas {
					nr, nc := current[0]+d[0], current[1]+d[1]
					nkey := fmt.Sprintf("%d,%d", nr, nc)
					if inBounds(nr, nc) && !visited[nkey] {
						visited[nkey] = true
						queue = append(queue, []int{nr, nc})
					}
				}
			}

			if size > largest {
				largest = size
			}
		}
	}

	// Find squares with no knight moves at all
	var isolated [][]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			degree := 0
			for _, d := range knightDeltas {
				if inBounds(r+d[0], c+d[1]) {
					degree++
				}
			}
			if degree == 0 {
				isolated = append(isolated, []int{r, c})
			}
		}
	}

	if components == 1 {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Knight graph: all %d squares mutually reachable", total))
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("⚠ Knight graph splits into %d components (largest covers %d/%d squares)", components, largest, total))
	}

	if len(isolated) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("⚠ %d squares have no knight moves:", len(isolated)))
		for _, cell := range isolated {
			result.Errors = append(result.Errors, fmt.Sprintf("No moves from (%d,%d)", cell[0], cell[1]))
		}
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
