package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing immediately, skipping the menu. The game defaults to tetris.

Controls:
  Left/Right, A/D  - Move
  Down/S           - Soft drop
  Up/W/X           - Rotate
  Space            - Hard drop
  C                - Hold
  P/Esc            - Pause
  R                - Restart
  B                - Back to menu
  Ctrl+S           - Screenshot
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower gravity at level 1
  normal - The configured gravity curve
  hard   - Faster gravity with a lower floor
  fixed  - Gravity never speeds up

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --seed 42 --fps 30
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Initial difficulty preset")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := tetris.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)

	result, err := playGame(gameID, store, logger, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
	if result.BackToMenu {
		menuLoop(store, logger, cfg)
	}
}

// playGame creates a registered game and runs it until the player leaves.
func playGame(gameID string, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (tui.Result, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return tui.Result{}, fmt.Errorf("creating game: %w", err)
	}

	// A broken config is not fatal: the game falls back to defaults.
	type configErrorer interface{ ConfigError() error }
	if ce, ok := game.(configErrorer); ok && ce.ConfigError() != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", ce.ConfigError())
		logger.Warn("config", "err", ce.ConfigError())
	}

	return tui.Run(game, store, logger, cfg)
}
