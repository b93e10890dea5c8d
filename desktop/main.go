package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellSize          = 60
	headerHeight      = 80 // Taller header for multi-session stats
	screenWidth       = 800
	screenHeight      = 720
	baseURL           = "http://localhost:8080"
	animationDuration = 150 * time.Millisecond // Knight jump animation duration
	rejectDuration    = 400 * time.Millisecond // Rejected move shake duration
)

// ScreenType represents different screens in the app
type ScreenType int

const (
	ScreenWelcome ScreenType = iota
	ScreenGame
)

// Knight marker colors for different sessions
var knightColors = []color.RGBA{
	{255, 100, 100, 255}, // Red
	{100, 100, 255, 255}, // Blue
	{100, 255, 100, 255}, // Green
	{255, 255, 100, 255}, // Yellow
	{255, 100, 255, 255}, // Magenta
	{100, 255, 255, 255}, // Cyan
	{255, 165, 0, 255},   // Orange
	{128, 0, 128, 255},   // Purple
	{255, 192, 203, 255}, // Pink
}

// Position is a board coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameState represents the state from the knight's tour server
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
	TotalMoves    int        `json:"total_moves"`
}

// WSMessage represents WebSocket message wrapper
type WSMessage struct {
	SessionID string     `json:"session_id"`
	GameState *GameState `json:"game_state,omitempty"`
	Event     string     `json:"event,omitempty"`
}

// SessionData holds data for a single session
type SessionData struct {
	sessionID     string
	state         *GameState
	wsConn        *websocket.Conn
	lastUpdate    time.Time
	prevPos       Position  // Previous knight position for interpolation
	targetPos     Position  // Target knight position for interpolation
	moveStartTime time.Time // When the move started
	animationTime float64   // Animation progress 0.0 to 1.0
	rejectTime    time.Time // When a move was rejected
	isRejecting   bool      // Currently showing rejected-move shake
}

// SessionListItem represents a session from the server
type SessionListItem struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	CreatedAt  string     `json:"created_at"`
	GameState  *GameState `json:"game_state"`
}

// ConfigListItem represents a board configuration
type ConfigListItem struct {
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
}

// Game represents the desktop game client
type Game struct {
	sessions         []*SessionData
	activeSession    int // index of currently active session
	stateMutex       sync.RWMutex
	currentScreen    ScreenType
	welcomeScreen    *WelcomeScreen
	selectedSessions map[string]bool // session IDs selected to play
}

// WelcomeScreen manages the welcome screen state
type WelcomeScreen struct {
	availableSessions []SessionListItem
	availableConfigs  []ConfigListItem
	scrollOffset      int
	cursorPos         int
	loading           bool
	errorMsg          string
	newSessionConfig  string // selected config for new session
}

// NewGame creates a new game instance with initial sessions
func NewGame(sessionIDs []string) *Game {
	g := &Game{
		sessions:         make([]*SessionData, 0),
		activeSession:    0,
		currentScreen:    ScreenWelcome,
		selectedSessions: make(map[string]bool),
		welcomeScreen: &WelcomeScreen{
			availableSessions: make([]SessionListItem, 0),
			availableConfigs:  make([]ConfigListItem, 0),
			cursorPos:         0,
			scrollOffset:      0,
		},
	}

	// If session IDs provided, skip welcome screen and go straight to game
	if len(sessionIDs) > 0 {
		for _, sid := range sessionIDs {
			g.addSession(sid)
		}
		g.currentScreen = ScreenGame
	} else {
		// Load available sessions and configs for welcome screen
		g.loadWelcomeData()
	}

	return g
}

// addSession adds a new session to the game with optional config
func (g *Game) addSession(sessionID string) {
	session := &SessionData{
		sessionID:  sessionID,
		lastUpdate: time.Now(),
	}

	// If no session ID provided, create one with same config as first session
	if sessionID == "" {
		configID := ""
		if len(g.sessions) > 0 && g.sessions[0].state != nil {
			configID = g.sessions[0].state.ConfigName
		}
		if err := g.createSessionWithConfig(session, configID); err != nil {
			log.Printf("Failed to create session: %v", err)
			return
		}
	}

	g.sessions = append(g.sessions, session)

	// Connect to WebSocket
	if err := g.connectWebSocket(session); err != nil {
		log.Printf("Failed to connect WebSocket for %s: %v (falling back to polling)", session.sessionID, err)
	} else {
		// Start WebSocket listener
		go g.listenWebSocket(session)
	}

	// Initial state fetch
	g.fetchGameState(session)
}

// createSessionWithConfig creates a new game session with specific config
func (g *Game) createSessionWithConfig(session *SessionData, configID string) error {
	url := fmt.Sprintf("%s/api/sessions", baseURL)

	payload := "{}"
	if configID != "" {
		payload = fmt.Sprintf(`{"config_id":"%s"}`, configID)
	}

	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse session response: %v (body: %s)", err, string(body))
	}

	session.sessionID = result.ID
	log.Printf("Created new session: %s (config: %s)", session.sessionID, configID)
	return nil
}

// connectWebSocket establishes WebSocket connection
func (g *Game) connectWebSocket(session *SessionData) error {
	if session.sessionID == "" {
		return fmt.Errorf("no session ID set")
	}

	wsURL := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	q := wsURL.Query()
	q.Set("session", session.sessionID)
	wsURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return err
	}

	session.wsConn = conn
	log.Printf("WebSocket connected for session %s", session.sessionID)
	return nil
}

// listenWebSocket listens for WebSocket updates
func (g *Game) listenWebSocket(session *SessionData) {
	defer func() {
		if session.wsConn != nil {
			session.wsConn.Close()
		}
	}()

	for {
		_, message, err := session.wsConn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error for %s: %v", session.sessionID, err)
			return
		}

		// WebSocket sends wrapped message
		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			log.Printf("WebSocket JSON parse error: %v", err)
			continue
		}

		if wsMsg.GameState == nil {
			log.Printf("WebSocket message has no game_state field")
			continue
		}

		g.stateMutex.Lock()
		g.applyNewState(session, wsMsg.GameState)
		g.stateMutex.Unlock()
	}
}

// applyNewState stores a fresh state on the session and kicks off the jump
// or shake animation when the knight moved or a move was rejected.
// Caller must hold stateMutex.
func (g *Game) applyNewState(session *SessionData, state *GameState) {
	if session.state != nil {
		oldPos := session.state.KnightPos
		newPos := state.KnightPos
		oldMoves := session.state.TotalMoves
		newMoves := state.TotalMoves

		switch {
		case oldPos == nil && newPos != nil:
			// Opening placement - no slide from nowhere
			session.prevPos = *newPos
			session.targetPos = *newPos
			session.animationTime = 1.0
			session.isRejecting = false
		case oldPos != nil && newPos != nil && (oldPos.Row != newPos.Row || oldPos.Col != newPos.Col):
			// Knight jumped - start move animation
			session.prevPos = *oldPos
			session.targetPos = *newPos
			session.moveStartTime = time.Now()
			session.animationTime = 0.0
			session.isRejecting = false
		case newMoves > oldMoves:
			// Move was attempted but the knight did not go anywhere - rejected
			session.rejectTime = time.Now()
			session.isRejecting = true
		}
	} else if state.KnightPos != nil {
		// First state - no animation
		session.prevPos = *state.KnightPos
		session.targetPos = *state.KnightPos
		session.animationTime = 1.0
	}

	session.state = state
	session.lastUpdate = time.Now()
}

// fetchGameState gets the current game state from the server
func (g *Game) fetchGameState(session *SessionData) error {
	if session.sessionID == "" {
		return fmt.Errorf("no session ID set")
	}

	url := fmt.Sprintf("%s/api/sessions/%s/state", baseURL, session.sessionID)
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var state GameState
	if err := json.Unmarshal(body, &state); err != nil {
		return fmt.Errorf("failed to parse JSON: %v (body: %s)", err, string(body))
	}

	g.stateMutex.Lock()
	g.applyNewState(session, &state)
	g.stateMutex.Unlock()

	return nil
}

// loadWelcomeData fetches available sessions and configs from server
func (g *Game) loadWelcomeData() {
	g.welcomeScreen.loading = true
	g.welcomeScreen.errorMsg = ""

	// Fetch available sessions
	resp, err := http.Get(fmt.Sprintf("%s/api/sessions", baseURL))
	if err != nil {
		g.welcomeScreen.errorMsg = fmt.Sprintf("Error loading sessions: %v", err)
		g.welcomeScreen.loading = false
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var sessionsResp struct {
		Sessions []SessionListItem `json:"sessions"`
	}
	if err := json.Unmarshal(body, &sessionsResp); err == nil {
		g.welcomeScreen.availableSessions = sessionsResp.Sessions
	}

	// Fetch available configs
	resp, err = http.Get(fmt.Sprintf("%s/api/configs", baseURL))
	if err != nil {
		g.welcomeScreen.errorMsg = fmt.Sprintf("Error loading configs: %v", err)
		g.welcomeScreen.loading = false
		return
	}
	defer resp.Body.Close()

	body, _ = io.ReadAll(resp.Body)
	var configsResp struct {
		Configs []ConfigListItem `json:"configs"`
	}
	if err := json.Unmarshal(body, &configsResp); err == nil {
		g.welcomeScreen.availableConfigs = configsResp.Configs
	}

	g.welcomeScreen.loading = false
}

// createNewSessionFromWelcome creates a new session with selected config
func (g *Game) createNewSessionFromWelcome() error {
	configID := g.welcomeScreen.newSessionConfig
	url := fmt.Sprintf("%s/api/sessions", baseURL)

	payload := "{}"
	if configID != "" {
		payload = fmt.Sprintf(`{"config_id":"%s"}`, configID)
	}

	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse session response: %v", err)
	}

	// Add to selected sessions
	g.selectedSessions[result.ID] = true
	log.Printf("Created new session: %s (config: %s)", result.ID, configID)

	// Reload session list
	g.loadWelcomeData()
	return nil
}

// startGameWithSelectedSessions transitions to game screen with selected sessions
func (g *Game) startGameWithSelectedSessions() {
	if len(g.selectedSessions) == 0 {
		g.welcomeScreen.errorMsg = "Please select at least one session"
		return
	}

	// Create sessions for each selected ID
	for sessionID := range g.selectedSessions {
		g.addSession(sessionID)
	}

	// Switch to game screen
	g.currentScreen = ScreenGame
}

// sendMove asks the server to move the knight of the active session to the
// given cell. The server decides whether the jump is legal.
func (g *Game) sendMove(row, col int) error {
	if len(g.sessions) == 0 {
		return fmt.Errorf("no sessions available")
	}

	session := g.sessions[g.activeSession]
	if session.sessionID == "" {
		return fmt.Errorf("no session ID set")
	}

	url := fmt.Sprintf("%s/api/sessions/%s/move", baseURL, session.sessionID)
	payload := fmt.Sprintf(`{"row":%d,"col":%d}`, row, col)

	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return g.fetchGameState(session)
}

// sendReset restarts the active session's board
func (g *Game) sendReset() error {
	if len(g.sessions) == 0 {
		return fmt.Errorf("no sessions available")
	}

	session := g.sessions[g.activeSession]
	if session.sessionID == "" {
		return fmt.Errorf("no session ID set")
	}

	url := fmt.Sprintf("%s/api/sessions/%s/reset", baseURL, session.sessionID)
	resp, err := http.Post(url, "application/json", strings.NewReader("{}"))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return g.fetchGameState(session)
}

// Update updates game logic
func (g *Game) Update() error {
	// Route to appropriate screen update
	switch g.currentScreen {
	case ScreenWelcome:
		return g.updateWelcomeScreen()
	case ScreenGame:
		return g.updateGameScreen()
	}
	return nil
}

// updateWelcomeScreen handles welcome screen input
func (g *Game) updateWelcomeScreen() error {
	ws := g.welcomeScreen

	// Refresh data with F5
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.loadWelcomeData()
	}

	// Navigate with arrow keys
	totalItems := len(ws.availableSessions)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		ws.cursorPos++
		if ws.cursorPos >= totalItems {
			ws.cursorPos = totalItems - 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		ws.cursorPos--
		if ws.cursorPos < 0 {
			ws.cursorPos = 0
		}
	}

	// Toggle selection with Space
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if ws.cursorPos < len(ws.availableSessions) {
			sessionID := ws.availableSessions[ws.cursorPos].ID
			g.selectedSessions[sessionID] = !g.selectedSessions[sessionID]
			if !g.selectedSessions[sessionID] {
				delete(g.selectedSessions, sessionID)
			}
		}
	}

	// Cycle through configs with Tab
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if len(ws.availableConfigs) > 0 {
			// Find current config index
			currentIdx := -1
			for i, cfg := range ws.availableConfigs {
				if cfg.ConfigID == ws.newSessionConfig {
					currentIdx = i
					break
				}
			}
			// Move to next
			currentIdx++
			if currentIdx >= len(ws.availableConfigs) {
				ws.newSessionConfig = "" // No config (default)
			} else {
				ws.newSessionConfig = ws.availableConfigs[currentIdx].ConfigID
			}
		}
	}

	// Create new session with N
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.createNewSessionFromWelcome(); err != nil {
			ws.errorMsg = fmt.Sprintf("Failed to create session: %v", err)
		}
	}

	// Start game with Enter
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.startGameWithSelectedSessions()
	}

	// Back to game screen with Escape (if sessions exist)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && len(g.sessions) > 0 {
		g.currentScreen = ScreenGame
	}

	return nil
}

// updateGameScreen handles game screen input
func (g *Game) updateGameScreen() error {
	if len(g.sessions) == 0 {
		return nil
	}

	// Update animation progress for all sessions
	g.stateMutex.Lock()
	for _, session := range g.sessions {
		if session.animationTime < 1.0 {
			elapsed := time.Since(session.moveStartTime)
			session.animationTime = float64(elapsed) / float64(animationDuration)
			if session.animationTime > 1.0 {
				session.animationTime = 1.0
			}
		}

		// End shake animation after duration
		if session.isRejecting && time.Since(session.rejectTime) > rejectDuration {
			session.isRejecting = false
		}
	}
	g.stateMutex.Unlock()

	// Poll all sessions if WebSocket is not connected
	for _, session := range g.sessions {
		if session.wsConn == nil {
			if session.state == nil || time.Since(session.lastUpdate) > 500*time.Millisecond {
				if err := g.fetchGameState(session); err != nil {
					log.Printf("Error fetching state for %s: %v", session.sessionID, err)
				}
			}
		}
	}

	// Session switching with number keys (1-9)
	for i := ebiten.Key1; i <= ebiten.Key9; i++ {
		if inpututil.IsKeyJustPressed(i) {
			sessionIdx := int(i - ebiten.Key1)
			if sessionIdx < len(g.sessions) {
				g.activeSession = sessionIdx
				log.Printf("Switched to session %d: %s", sessionIdx+1, g.sessions[sessionIdx].sessionID)
			}
		}
	}

	// Add new session with N key
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if len(g.sessions) < 9 {
			g.addSession("")
			log.Printf("Added new session (total: %d)", len(g.sessions))
		}
	}

	// Click to move: map the cursor to a board cell and send it
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if row, col, ok := g.cellAtCursor(); ok {
			if err := g.sendMove(row, col); err != nil {
				log.Printf("Move failed: %v", err)
			}
		}
	}

	// Reset active session with R
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.sendReset(); err != nil {
			log.Printf("Reset failed: %v", err)
		}
	}

	// Return to welcome screen with Escape
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.currentScreen = ScreenWelcome
		g.loadWelcomeData()
	}

	return nil
}

// cellAtCursor translates the mouse position into board coordinates for the
// active session. Returns ok=false when the cursor is outside the board.
func (g *Game) cellAtCursor() (int, int, bool) {
	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	if g.activeSession >= len(g.sessions) {
		return 0, 0, false
	}
	state := g.sessions[g.activeSession].state
	if state == nil {
		return 0, 0, false
	}

	mx, my := ebiten.CursorPosition()
	if my < headerHeight {
		return 0, 0, false
	}

	col := mx / cellSize
	row := (my - headerHeight) / cellSize
	if row < 0 || row >= state.Rows || col < 0 || col >= state.Cols {
		return 0, 0, false
	}
	return row, col, true
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	// Route to appropriate screen renderer
	switch g.currentScreen {
	case ScreenWelcome:
		g.drawWelcomeScreen(screen)
	case ScreenGame:
		g.drawGameScreen(screen)
	}
}

// drawWelcomeScreen renders the welcome/session selection screen
func (g *Game) drawWelcomeScreen(screen *ebiten.Image) {
	ws := g.welcomeScreen

	// Clear screen
	screen.Fill(color.RGBA{20, 20, 30, 255})

	y := 20
	ebitenutil.DebugPrintAt(screen, "=== KNIGHT'S TOUR - SESSION SELECT ===", 220, y)
	y += 30

	if ws.loading {
		ebitenutil.DebugPrintAt(screen, "Loading sessions...", 20, y)
		return
	}

	if ws.errorMsg != "" {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("ERROR: %s", ws.errorMsg), 20, y)
		y += 20
	}

	// Session list
	ebitenutil.DebugPrintAt(screen, "Available Sessions:", 20, y)
	y += 20

	if len(ws.availableSessions) == 0 {
		ebitenutil.DebugPrintAt(screen, "  No sessions found. Press N to create one.", 20, y)
		y += 20
	} else {
		for i, session := range ws.availableSessions {
			cursor := "  "
			if i == ws.cursorPos {
				cursor = "> "
			}

			checkbox := "[ ]"
			if g.selectedSessions[session.ID] {
				checkbox = "[X]"
			}

			visited, total := 0, 0
			status := ""
			if session.GameState != nil {
				visited = session.GameState.VisitedCount
				total = session.GameState.TotalCells
				if session.GameState.BoardComplete {
					status = " FULL TOUR"
				} else if session.GameState.GameOver {
					status = " GAME OVER"
				}
			}

			line := fmt.Sprintf("%s%s %s | %s | Visited:%d/%d%s",
				cursor, checkbox, session.ID, session.ConfigName,
				visited, total, status)

			ebitenutil.DebugPrintAt(screen, line, 20, y)
			y += 15
		}
	}

	y += 20
	ebitenutil.DebugPrintAt(screen, "─────────────────────────────────────────", 20, y)
	y += 20

	// New session creation
	ebitenutil.DebugPrintAt(screen, "Create New Session:", 20, y)
	y += 20

	configDisplay := "default"
	if ws.newSessionConfig != "" {
		configDisplay = ws.newSessionConfig
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("  Selected Config: %s", configDisplay), 20, y)
	y += 15

	ebitenutil.DebugPrintAt(screen, "  Available Configs:", 20, y)
	y += 15
	for _, cfg := range ws.availableConfigs {
		marker := "  "
		if cfg.ConfigID == ws.newSessionConfig {
			marker = "→ "
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("    %s%s (%dx%d) - %s", marker, cfg.ConfigID, cfg.Rows, cfg.Cols, cfg.Description), 20, y)
		y += 15
	}

	y += 20
	ebitenutil.DebugPrintAt(screen, "─────────────────────────────────────────", 20, y)
	y += 20

	// Selected sessions summary
	selectedCount := len(g.selectedSessions)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Selected: %d session(s)", selectedCount), 20, y)
	y += 20

	// Controls
	y += 10
	ebitenutil.DebugPrintAt(screen, "CONTROLS:", 20, y)
	y += 20
	ebitenutil.DebugPrintAt(screen, "  ↑/↓      - Navigate sessions", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  SPACE    - Toggle session selection", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  TAB      - Cycle config for new session", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  N        - Create new session with selected config", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  ENTER    - Start game with selected sessions", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  F5       - Refresh session list", 20, y)
	y += 15
	if len(g.sessions) > 0 {
		ebitenutil.DebugPrintAt(screen, "  ESC      - Back to game", 20, y)
	}
}

// drawGameScreen renders the active session's board
func (g *Game) drawGameScreen(screen *ebiten.Image) {
	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	if len(g.sessions) == 0 {
		ebitenutil.DebugPrint(screen, "No sessions available. Press ESC to go to session select.")
		return
	}

	session := g.sessions[g.activeSession]
	if session.state == nil {
		ebitenutil.DebugPrint(screen, "Loading...")
		return
	}
	state := session.state

	// Draw header with all session stats
	g.drawSessionStats(screen)

	// Legal targets for quick lookup while painting cells
	legal := make(map[[2]int]bool, len(state.LegalMoves))
	for _, p := range state.LegalMoves {
		legal[[2]int{p.Row, p.Col}] = true
	}

	// Draw the board
	gridOffsetY := headerHeight
	for r := 0; r < state.Rows; r++ {
		for c := 0; c < state.Cols; c++ {
			visited := r < len(state.Visits) && c < len(state.Visits[r]) && state.Visits[r][c] > 0
			cellColor := boardCellColor(r, c, visited, legal[[2]int{r, c}])
			ebitenutil.DrawRect(screen,
				float64(c*cellSize),
				float64(r*cellSize+gridOffsetY),
				cellSize-1, cellSize-1, cellColor)

			// Show the visit order on visited cells
			if visited {
				ebitenutil.DebugPrintAt(screen,
					fmt.Sprintf("%d", state.Visits[r][c]),
					c*cellSize+cellSize/2-6,
					r*cellSize+gridOffsetY+cellSize/2-6)
			}
		}
	}

	// Draw the knight with smooth interpolation
	if state.KnightPos != nil {
		// Interpolate position for smooth animation
		t := session.animationTime
		if t > 1.0 {
			t = 1.0
		}

		// Linear interpolation between previous and target position
		displayCol := float64(session.prevPos.Col)*(1.0-t) + float64(session.targetPos.Col)*t
		displayRow := float64(session.prevPos.Row)*(1.0-t) + float64(session.targetPos.Row)*t

		// Get color for this session's knight
		knightColor := knightColors[g.activeSession%len(knightColors)]

		// Rejected-move animation: shake and flash
		var shakeX, shakeY float64
		if session.isRejecting {
			rejectProgress := time.Since(session.rejectTime).Seconds() / rejectDuration.Seconds()
			// Shake effect (dampening over time)
			shakeIntensity := 4.0 * (1.0 - rejectProgress)
			shakeX = shakeIntensity * math.Sin(rejectProgress*40) // Fast shake
			shakeY = shakeIntensity * math.Cos(rejectProgress*40)

			// Flash red color
			flashAmount := (1.0 - rejectProgress) * 0.7
			knightColor.R = uint8(float64(knightColor.R)*(1.0-flashAmount) + 255*flashAmount)
		}

		// Draw knight marker (interpolated position + shake)
		screenX := displayCol*float64(cellSize) + 6 + shakeX
		screenY := displayRow*float64(cellSize) + float64(gridOffsetY) + 6 + shakeY

		ebitenutil.DrawRect(screen,
			screenX,
			screenY,
			cellSize-12,
			cellSize-12,
			knightColor)

		ebitenutil.DebugPrintAt(screen,
			"K",
			int(screenX)+cellSize/2-9,
			int(screenY)+cellSize/2-12)
	}

	// Status line under the board
	statusY := state.Rows*cellSize + gridOffsetY + 10
	if state.Message != "" {
		ebitenutil.DebugPrintAt(screen, state.Message, 10, statusY)
	}

	// Footer controls
	ebitenutil.DebugPrintAt(screen, "Click: Move Knight | 1-9: Switch Session | N: New | R: Reset | ESC: Menu", 10, screenHeight-20)
}

// drawSessionStats draws stats for all sessions in header
func (g *Game) drawSessionStats(screen *ebiten.Image) {
	headerY := 5
	for idx, session := range g.sessions {
		if session.state == nil {
			continue
		}

		y := headerY + (idx * 15)
		knightColor := knightColors[idx%len(knightColors)]

		// Draw color indicator
		ebitenutil.DrawRect(screen, 5, float64(y), 10, 10, knightColor)

		// Session info
		activeMarker := ""
		if idx == g.activeSession {
			activeMarker = ">>>"
		}

		connStatus := "POLL"
		if session.wsConn != nil {
			connStatus = "WS"
		}

		info := fmt.Sprintf("%s [%d] %s [%s] Moves: %d / Max: %d  VIS:%d/%d ATT:%d",
			activeMarker,
			idx+1,
			session.sessionID,
			connStatus,
			session.state.VisitedCount,
			session.state.TourEstimate,
			session.state.VisitedCount,
			session.state.TotalCells,
			session.state.Attempt)

		if session.state.BoardComplete {
			info += " FULL TOUR!"
		} else if session.state.GameOver {
			info += " GAME OVER"
		}

		ebitenutil.DebugPrintAt(screen, info, 20, y)
	}
}

// Layout returns the game screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// boardCellColor picks the color for a board cell. The base is a chess
// checkerboard; visited cells dim, legal targets glow green.
func boardCellColor(row, col int, visited, legalTarget bool) color.Color {
	if legalTarget {
		return color.RGBA{110, 200, 110, 255} // Green for clickable targets
	}
	if visited {
		if (row+col)%2 == 0 {
			return color.RGBA{120, 110, 100, 255} // Dimmed light square
		}
		return color.RGBA{90, 70, 55, 255} // Dimmed dark square
	}
	if (row+col)%2 == 0 {
		return color.RGBA{240, 217, 181, 255} // Light square
	}
	return color.RGBA{181, 136, 99, 255} // Dark square
}

func main() {
	// Accept multiple session IDs as arguments
	sessionIDs := []string{}
	if len(os.Args) > 1 {
		sessionIDs = os.Args[1:]
	}

	game := NewGame(sessionIDs)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Knight's Tour - Desktop Client")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
