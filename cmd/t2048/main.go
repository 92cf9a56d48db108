// t2048 is the 2048 sliding tile puzzle for the terminal.
//
// Usage:
//
//	t2048 list               - List board variants
//	t2048 play [variant]     - Play a variant (default 2048)
//	t2048 menu               - Pick a variant interactively
//	t2048 serve              - Start SSH server for remote play
//	t2048 scores <variant>   - Show high scores for a variant
//	t2048 mcp                - Serve the game to agents over MCP stdio
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.t2048/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
	flagLogFile    string
)

// logger is shared by every subcommand once setupLogging has run.
var logger = log.New(io.Discard)

// logFile is closed by the root PersistentPostRun hook.
var logFile *os.File

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding tile puzzle for the terminal.

Slide every tile toward a wall. Equal tiles that collide merge into one
tile with double the value, and a new tile appears after each move.
The game ends when the board is full and no neighbours can merge.

Available commands:
  list     - Show all board variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  mcp      - Serve the game to agents over MCP stdio

Examples:
  t2048 play
  t2048 play 2048_5x5 --difficulty hard
  t2048 menu
  t2048 serve --ssh :2222
  t2048 scores 2048`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
		if err := setupLogging(cmd.Name()); err != nil {
			return err
		}
		t2048.SetConfigPath(flagConfig)
		t2048.SetDifficultyPreset(flagDifficulty)
		t2048.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mcpCmd)
}

// setupLogging builds the shared logger. Interactive commands own the
// terminal, so they only log when --log-file is given.
func setupLogging(command string) error {
	var out io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		out = f
	case command == "serve" || command == "mcp":
		// stdout carries the MCP protocol, so logs go to stderr
		out = os.Stderr
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}
