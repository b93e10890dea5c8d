package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type GameState struct {
	Rows          int        `json:"rows"`
	Cols          int        `json:"cols"`
	Visits        [][]int    `json:"visits"`
	KnightPos     *Position  `json:"knight_pos"`
	VisitedCount  int        `json:"visited_count"`
	TotalCells    int        `json:"total_cells"`
	LegalMoves    []Position `json:"legal_moves"`
	GameOver      bool       `json:"game_over"`
	BoardComplete bool       `json:"board_complete"`
	TourEstimate  int        `json:"tour_estimate,omitempty"`
	Message       string     `json:"message"`
	ConfigName    string     `json:"config_name"`
	Attempt       int        `json:"attempt"`
}

type SessionResponse struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	GameState  *GameState `json:"game_state"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configID string) (*GameState, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return session.GameState, nil
}

type MoveResponse struct {
	Success   bool       `json:"success"`
	GameState *GameState `json:"game_state"`
	Message   string     `json:"message"`
}

func (c *Client) Move(row, col int) (*MoveResponse, error) {
	body, err := json.Marshal(struct {
		Row int `json:"row"`
		Col int `json:"col"`
	}{Row: row, Col: col})
	if err != nil {
		return nil, fmt.Errorf("marshal move: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/move", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute move: %w", err)
	}
	defer resp.Body.Close()

	var moveResp MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&moveResp); err != nil {
		return nil, fmt.Errorf("parse move response: %w", err)
	}

	return &moveResp, nil
}

type BulkMoveResponse struct {
	MovesExecuted  int        `json:"moves_executed"`
	RequestedMoves int        `json:"requested_moves"`
	Success        bool       `json:"success"`
	GameState      *GameState `json:"game_state"`
	StoppedReason  string     `json:"stopped_reason,omitempty"`
	GameOver       bool       `json:"game_over"`
	BoardComplete  bool       `json:"board_complete"`
}

func (c *Client) BulkMove(cells []Position) (*BulkMoveResponse, error) {
	body, err := json.Marshal(struct {
		Cells []Position `json:"cells"`
	}{Cells: cells})
	if err != nil {
		return nil, fmt.Errorf("marshal bulk move: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/move", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute bulk move: %w", err)
	}
	defer resp.Body.Close()

	var bulkResp BulkMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return nil, fmt.Errorf("parse bulk move response: %w", err)
	}

	return &bulkResp, nil
}

type ResetResponse struct {
	Message string     `json:"message"`
	State   *GameState `json:"state"`
}

func (c *Client) Reset() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var resetResp ResetResponse
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}

	return resetResp.State, nil
}

type EstimateResponse struct {
	Start    Position  `json:"start"`
	Length   int       `json:"length"`
	BestTour *struct {
		Start  Position `json:"start"`
		Length int      `json:"length"`
	} `json:"best_tour"`
}

func (c *Client) Estimate(row, col int) (*EstimateResponse, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/estimate?row=%d&col=%d", c.baseURL, c.sessionID, row, col)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("estimate failed: %s - %s", resp.Status, string(body))
	}

	var estResp EstimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&estResp); err != nil {
		return nil, fmt.Errorf("parse estimate response: %w", err)
	}

	return &estResp, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Board configuration id (default, chessboard, compact, micro)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxMoves := flag.Int("max-moves", 500, "Maximum moves per attempt")
	maxAttempts := flag.Int("max-attempts", 100, "Maximum attempts before giving up")
	bulk := flag.Bool("bulk", false, "Plan tours locally and submit moves in bulk batches")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between moves in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *GameState
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		// Use explicitly provided session
		savedSessionID = *continueSession
	} else {
		// Try to load saved session
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		// Resume existing session
		client.sessionID = savedSessionID
		log.Printf("🔄 Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = "" // Force create new
		} else {
			log.Printf("Session resumed - Board: %dx%d, Squares: %d, Visited: %d",
				state.Rows, state.Cols, state.TotalCells, state.VisitedCount)
		}
	}

	if savedSessionID == "" {
		// Create new session
		state, err = client.CreateSession(*configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)
		log.Printf("Board: %dx%d, Squares to visit: %d", state.Rows, state.Cols, state.TotalCells)

		// Save session ID for next run
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	// Ask the server which start square its greedy simulation rates best.
	// That length is the bar this bot tries to match or beat.
	estimateBar := 0
	var bestStart *Position
	if est, err := client.Estimate(0, 0); err != nil {
		log.Printf("⚠️  Could not fetch tour estimate: %v", err)
	} else if est.BestTour != nil {
		estimateBar = est.BestTour.Length
		bestStart = &Position{Row: est.BestTour.Start.Row, Col: est.BestTour.Start.Col}
		log.Printf("📐 Server estimate: start (%d,%d) reaches %d of %d squares",
			bestStart.Row, bestStart.Col, estimateBar, state.TotalCells)
	}

	// Reset the game state at the beginning of each run
	log.Printf("🔄 Resetting game state...")
	state, err = client.Reset()
	if err != nil {
		log.Fatalf("Failed to reset game: %v", err)
	}

	// Initialize the Warnsdorff strategy
	strategy := NewWarnsdorffStrategy(state, bestStart)

	// Keep trying until a full tour or max attempts
	bestVisited := 0
	attemptNum := 0
	for attemptNum < *maxAttempts {
		attemptNum++

		// Reset the game for this attempt
		if attemptNum > 1 {
			state, err = client.Reset()
			if err != nil {
				log.Printf("Failed to reset: %v", err)
				break
			}
		}

		// Rotate to this attempt's start square and tie-break
		strategy.Reset()

		log.Printf("\n=== 🎮 Attempt %d/%d (start %s) ===",
			attemptNum, *maxAttempts, strategy.StartLabel())

		// Play the attempt
		moveCount := 0
		for !state.BoardComplete && !state.GameOver && moveCount < *maxMoves {
			if *verbose && moveCount%10 == 0 && state.KnightPos != nil {
				log.Printf("Knight: (%d,%d), Visited: %d/%d",
					state.KnightPos.Row, state.KnightPos.Col,
					state.VisitedCount, state.TotalCells)
			}

			if *bulk {
				targets := strategy.NextTargets(state, 50)
				if len(targets) == 0 {
					log.Printf("⚠️  No moves left to plan")
					break
				}

				bulkResp, err := client.BulkMove(targets)
				if err != nil {
					log.Printf("Bulk move failed: %v", err)
					break
				}
				if bulkResp.GameState != nil {
					state = bulkResp.GameState
				}
				moveCount += bulkResp.MovesExecuted
				if !bulkResp.Success && *verbose {
					log.Printf("Bulk stopped: %s", bulkResp.StoppedReason)
				}
			} else {
				target := strategy.NextTarget(state)
				if target == nil {
					log.Printf("⚠️  No legal moves available")
					break
				}

				moveResp, err := client.Move(target.Row, target.Col)
				if err != nil {
					log.Printf("Move failed: %v", err)
					break
				}
				if moveResp.GameState != nil {
					state = moveResp.GameState
				}
				if !moveResp.Success && *verbose {
					log.Printf("Rejected (%d,%d): %s", target.Row, target.Col, moveResp.Message)
				}
				moveCount++
			}

			// Add delay if specified
			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}

		if state.VisitedCount > bestVisited {
			bestVisited = state.VisitedCount
		}
		log.Printf("Attempt %d: Moves=%d, Visited=%d/%d (best so far %d, bar %d)",
			attemptNum, moveCount, state.VisitedCount, state.TotalCells, bestVisited, estimateBar)

		// Check if we completed the board
		if state.BoardComplete {
			log.Printf("\n🎉 FULL TOUR! All %d squares visited in attempt %d!", state.TotalCells, attemptNum)
			log.Printf("Session: %s", client.sessionID)
			os.Exit(0)
		}
	}

	// No full tour; matching the server's greedy estimate still counts
	if estimateBar > 0 && bestVisited >= estimateBar {
		log.Printf("\n✅ Best run visited %d/%d squares, matching the server estimate of %d",
			bestVisited, state.TotalCells, estimateBar)
		log.Printf("Session: %s", client.sessionID)
		os.Exit(0)
	}

	log.Printf("\n❌ Best run visited %d/%d squares after %d attempts (estimate was %d)",
		bestVisited, state.TotalCells, attemptNum, estimateBar)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
