package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to change the difficulty and
Enter to select. After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Q            - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./replays.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	tetris.SetConfigPath(flagConfig)
	menuLoop(store, logger, runtimeConfig())
}

// menuLoop shows the menu until the player quits.
func menuLoop(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) {
	preset := flagDifficulty
	for {
		menuResult, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config
		preset = string(menuResult.Difficulty)

		if menuResult.Quit {
			return
		}

		switch menuResult.Choice {
		case tui.ChoicePlay:
			tetris.SetDifficultyPreset(preset)

			// Fresh seed for each game unless one was pinned
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}

			result, err := playGame(tetris.GameID, store, logger, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				continue
			}
			if !result.BackToMenu {
				return
			}

		case tui.ChoiceReplays:
			if !replaysLoop(store, logger, cfg) {
				return
			}
		}
	}
}

// replaysLoop runs the replay browser and plays what the player picks.
// It returns false when the player quit rather than went back.
func replaysLoop(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) bool {
	for {
		res, err := tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		if res.ReplayID == "" {
			return res.GoBack
		}

		watched, err := watchReplay(store, logger, res.ReplayID, cfg)
		if err != nil {
			logger.Error("replay", "id", res.ReplayID, "err", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if !watched.BackToMenu {
			return false
		}
	}
}

// watchReplay loads a stored replay and plays it back.
func watchReplay(store *storage.Store, logger *log.Logger, id string, cfg core.RuntimeConfig) (tui.Result, error) {
	if store == nil {
		return tui.Result{}, errors.New("replay database is not available")
	}
	rec, err := store.FindReplay(id)
	if err != nil {
		return tui.Result{}, err
	}
	loaded, err := tetris.LoadRecord(rec)
	if err != nil {
		return tui.Result{}, err
	}
	return tui.RunReplay(rec.ID, loaded, logger, cfg)
}
