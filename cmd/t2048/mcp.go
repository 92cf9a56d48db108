package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/transport/mcp"
)

var flagMCPNoDB bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game to agents over MCP stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout.

Agents call new_game to open a session, then move with a direction
(up, down, left, right) and read the board with game_state. Each move
settles immediately, so no tick loop is involved.

Logs go to stderr (or --log-file) because stdout carries the protocol.

Examples:
  t2048 mcp
  t2048 mcp --difficulty hard --no-db`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&flagMCPNoDB, "no-db", false, "Keep best scores in memory only")
}

func runMCP(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load2048(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		return err
	}

	// A nil *storage.Store must not reach the interface
	var best core.BestScoreStore
	if !flagMCPNoDB {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open scores database", "error", err)
		} else {
			defer store.Close()
			best = store
		}
	}

	sessions := mcp.NewSessions(cfg, best, logger)
	return mcp.NewServer(sessions, logger).ServeStdio()
}
