// Package config provides configuration management for the knight's tour game.
//
// The config package handles:
//   - Loading board configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Board configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Board dimensions (rows and columns)
//   - Game messages for various events
//   - Display name and description for preset listings
//
// Available Configurations:
//
// The package ships with several board presets:
//   - default: Classic 5x10 board
//   - chessboard: Standard 8x8 chessboard
//   - compact: Small 5x5 board for quick games
//   - micro: Tiny 3x3 board where only the ring is tourable
//
// Usage:
//
//	manager := config.NewManager("configs")
//
//	// Load specific configuration
//	boardConfig, err := manager.LoadConfig("chessboard")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Positive board dimensions
//   - Required message templates
//   - Format verbs in templated messages
package config
