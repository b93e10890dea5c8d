package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateBoardConfig validates a board configuration for correctness and
// playability. Failures come back as a ConfigurationError so game start can
// be refused.
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return &ConfigurationError{Reason: "config is required"}
	}
	if config.Name == "" {
		return &ConfigurationError{Reason: "name is required"}
	}

	if config.Rows < MinBoardRows {
		return &ConfigurationError{Reason: fmt.Sprintf("rows must be positive, got %d", config.Rows)}
	}
	if config.Cols < MinBoardCols {
		return &ConfigurationError{Reason: fmt.Sprintf("cols must be positive, got %d", config.Cols)}
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return &ConfigurationError{Reason: "messages.welcome is required"}
	}
	if config.Messages.GameOver == "" {
		return &ConfigurationError{Reason: "messages.game_over is required"}
	}
	if config.Messages.BoardComplete == "" {
		return &ConfigurationError{Reason: "messages.board_complete is required"}
	}

	// Validate format strings
	if !strings.Contains(config.Messages.GameOver, "%d") {
		return &ConfigurationError{Reason: "messages.game_over must contain %d for the visited count"}
	}
	if !strings.Contains(config.Messages.BoardComplete, "%d") {
		return &ConfigurationError{Reason: "messages.board_complete must contain %d for the visited count"}
	}
	if config.Messages.CellVisited != "" && strings.Count(config.Messages.CellVisited, "%d") < 2 {
		return &ConfigurationError{Reason: "messages.cell_visited must contain %d twice for visited and total counts"}
	}

	return nil
}

// DefaultBoardConfig returns the built-in 5x10 board used when no preset
// files are available.
func DefaultBoardConfig() *BoardConfig {
	config := &BoardConfig{
		Name:        "default",
		Description: "Classic 5x10 knight's tour board",
		Rows:        5,
		Cols:        10,
	}
	config.Messages = defaultMessages()
	return config
}

func defaultMessages() Messages {
	return Messages{
		Welcome:       "Place your knight on any square to begin the tour.",
		GameOver:      "No legal moves remain. Tour ended at %d squares.",
		BoardComplete: "Full tour! All %d squares visited!",
		CellVisited:   "Visited %d of %d squares",
	}
}

// FillMessageDefaults fills empty message fields so preset files only need
// to override the strings they care about.
func FillMessageDefaults(config *BoardConfig) {
	defaults := defaultMessages()
	if config.Messages.Welcome == "" {
		config.Messages.Welcome = defaults.Welcome
	}
	if config.Messages.GameOver == "" {
		config.Messages.GameOver = defaults.GameOver
	}
	if config.Messages.BoardComplete == "" {
		config.Messages.BoardComplete = defaults.BoardComplete
	}
	if config.Messages.CellVisited == "" {
		config.Messages.CellVisited = defaults.CellVisited
	}
}

// LoadBoardConfig loads a board configuration from a JSON file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		// If filename starts with "configs/", replace with CONFIG_DIR
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	FillMessageDefaults(&config)

	// Validate the loaded configuration
	if err := ValidateBoardConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a board configuration by name from the configs directory
func LoadConfigByName(configName string) (*BoardConfig, error) {
	// Add .json extension if not present
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	// Load and parse the config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %v", configName, err)
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", configName, err)
	}
	FillMessageDefaults(&config)

	// Validate the config
	if err := ValidateBoardConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return &config, nil
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *BoardConfig) *GameState {
	if config == nil {
		config = DefaultBoardConfig()
	}

	visits := make([][]int, config.Rows)
	for r := range visits {
		visits[r] = make([]int, config.Cols)
	}

	return &GameState{
		Rows:              config.Rows,
		Cols:              config.Cols,
		Visits:            visits,
		KnightPos:         nil,
		VisitedCount:      0,
		TotalCells:        config.Rows * config.Cols,
		LegalMoves:        nil,
		GameOver:          false,
		BoardComplete:     false,
		Message:           config.Messages.Welcome,
		ConfigName:        config.Name,
		Attempt:           1,
		MoveHistory:       []MoveRecord{},
		TotalMoves:        0,
		CurrentMoves:      []MoveRecord{},
		CurrentMovesCount: 0,
	}
}
