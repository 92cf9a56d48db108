package mcp

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/grid"
)

// Server wraps an MCP server that plays 2048 sessions.
type Server struct {
	sessions  *Sessions
	mcpServer *server.MCPServer
	logger    *log.Logger
}

// NewServer creates the MCP server and registers all tools.
func NewServer(sessions *Sessions, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		sessions: sessions,
		logger:   logger,
	}

	s.mcpServer = server.NewMCPServer(
		"2048",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`2048 - MCP Interface

Slide numbered tiles on a grid. Equal tiles that collide merge into one tile of
double value, and the merged value is added to the score. Every move that
changes the board spawns a new 2. The game ends when the board is full and no
neighbouring tiles are equal.

AVAILABLE TOOLS:
- new_game: Start a session (variant 2048_3x3, 2048, 2048_5x5 or 2048_6x6)
- move: Slide tiles up/down/left/right
- game_state: Show the grid of a session
- list_sessions: List active sessions
- end_game: Discard a session
- list_variants: List board variants

Rows are printed top to bottom, "." marks an empty cell.`),
	)

	s.registerTools()
	return s
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new 2048 game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"variant": map[string]interface{}{
					"type":        "string",
					"description": "Board variant ID (default 2048, the 4x4 board)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "RNG seed for reproducible games (optional)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide all tiles in a direction; the follow-up tile spawns immediately",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the grid, score, best score and game-over flag of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "end_game",
		Description: "Discard a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleEndGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_variants",
		Description: "List the available board variants",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListVariants)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

// arguments returns the tool arguments, tolerating a missing object.
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads an integer argument sent as a JSON number or a string.
func intArg(args map[string]interface{}, name string) (int64, error) {
	switch v := args[name].(type) {
	case nil:
		return 0, nil
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", name)
	}
}

// Tool handlers

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	variant, _ := args["variant"].(string)
	seed, err := intArg(args, "seed")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess, err := s.sessions.Create(variant, seed)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Debug("tool call", "tool", "new_game", "session", sess.ID)
	result := fmt.Sprintf("Created session: %s\nVariant: %s (%dx%d)\n\n%s",
		sess.ID, sess.Variant.ID, sess.Variant.Width, sess.Variant.Height, formatSnapshot(sess.Snapshot()))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)

	dir, err := grid.ParseDirection(strings.ToLower(strings.TrimSpace(direction)))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid direction %q: use up, down, left or right", direction)), nil
	}

	out, err := s.sessions.Move(sessionID, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Debug("tool call", "tool", "move", "session", sessionID, "direction", dir, "changed", out.Changed)

	var b strings.Builder
	switch {
	case out.Changed:
		fmt.Fprintf(&b, "Moved %s: +%d points, %d merges\n\n", dir, out.Gained, out.Merges)
	case out.State.GameOver:
		b.WriteString("Game is over; start a new game\n\n")
	default:
		fmt.Fprintf(&b, "Nothing moved %s\n\n", dir)
	}
	b.WriteString(formatSnapshot(out.State))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSnapshot(sess.Snapshot())), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions := s.sessions.List()

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(sessions))
	for _, sess := range sessions {
		snap := sess.Snapshot()
		status := "playing"
		if snap.GameOver {
			status = "game over"
		}
		fmt.Fprintf(&b, "- %s (Variant: %s, Score: %d, %s, Created: %s)\n",
			sess.ID, snap.Variant, snap.Score, status, sess.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	if err := s.sessions.Delete(sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Info("session ended", "session", sessionID)
	return mcp.NewToolResultText(fmt.Sprintf("Session %s ended.", sessionID)), nil
}

func (s *Server) handleListVariants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("Variants:\n\n")
	for _, v := range t2048.Variants() {
		fmt.Fprintf(&b, "- %s: %s, %dx%d\n", v.ID, v.Title, v.Width, v.Height)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// formatSnapshot renders a session as text for agents.
func formatSnapshot(snap Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", snap.ID)
	fmt.Fprintf(&b, "Score: %d | Best: %d | Max tile: %d | Moves: %d\n", snap.Score, snap.Best, snap.MaxTile, snap.Moves)
	if snap.GameOver {
		b.WriteString("Status: GAME OVER\n")
	} else {
		b.WriteString("Status: playing\n")
	}

	width := 1
	for _, row := range snap.Board {
		for _, v := range row {
			width = max(width, len(strconv.Itoa(v)))
		}
	}

	b.WriteString("\nGrid:\n")
	for _, row := range snap.Board {
		cells := make([]string, len(row))
		for x, v := range row {
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			cells[x] = fmt.Sprintf("%*s", width, cell)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}
	return b.String()
}
