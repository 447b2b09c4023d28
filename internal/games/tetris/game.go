// Package tetris adapts the falling-block engine to the platform's Game
// interface: it maps actions to engine commands, runs the gravity clock at a
// fixed step, records inputs for replays and renders to a core.Screen.
package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry identifier.
const GameID = "tetris"

// Settings are the tunables that affect simulation and rendering.
// A replay stores them so playback runs with the same gravity curve.
type Settings struct {
	Gravity engine.Gravity
	Preview int
	Ghost   bool
	Preset  config.DifficultyPreset
}

// DefaultSettings returns the settings of the built-in configuration.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultTetrisConfig())
}

// SettingsFromConfig converts a loaded config.
func SettingsFromConfig(cfg config.TetrisConfig) Settings {
	base, step, minimum := cfg.Gravity.Durations()
	return Settings{
		Gravity: engine.Gravity{Base: base, Step: step, Min: minimum},
		Preview: max(cfg.Display.Preview, 1),
		Ghost:   cfg.Display.Ghost,
		Preset:  cfg.Difficulty.Preset,
	}
}

// Package-level variables for config/difficulty, set by the CLI before the
// registry creates the game.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset name.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// LoadSettings loads the config selected with SetConfigPath and applies the
// preset selected with SetDifficultyPreset, falling back to the preset
// named in the config file.
func LoadSettings() (Settings, error) {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		return DefaultSettings(), err
	}

	name := difficultyPreset
	if name == "" {
		name = string(cfg.Difficulty.Preset)
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		return SettingsFromConfig(cfg), err
	}
	config.ApplyTetrisPreset(&cfg, preset)
	return SettingsFromConfig(cfg), nil
}

// Layout constants, in terminal cells.
const (
	cellW      = 2 // Terminal columns per board cell
	wellW      = engine.Cols*cellW + 2
	wellH      = engine.Rows + 2
	sideW      = 14
	minScreenW = sideW + 1 + wellW + 1 + sideW
	minScreenH = wellH + 1
)

// Game implements registry.Game for Tetris.
type Game struct {
	settings Settings
	loadErr  error

	eng    *engine.Engine
	driver *engine.Driver

	seed     int64
	tickRate int
	step     time.Duration
	tick     uint64

	recorder Recorder
	playback bool

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game using the configured settings. A config that fails to
// load leaves the defaults in place; ConfigError reports why.
func New() *Game {
	s, err := LoadSettings()
	return &Game{settings: s, loadErr: err}
}

// NewWithSettings creates a game with explicit settings. Replays use it so
// that local config files cannot change the outcome.
func NewWithSettings(s Settings) *Game {
	s.Preview = max(s.Preview, 1)
	return &Game{settings: s}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          GameID,
		Title:       "Tetris",
		Description: "Stack falling tetrominoes and clear lines",
	}, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// ConfigError returns the error from loading the config, if any.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// Reset starts a new session with the given seed, tick rate and screen size.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.step = time.Second / time.Duration(g.tickRate)
	g.tick = 0

	g.eng = engine.New(engine.Options{Seed: cfg.Seed, Preview: g.settings.Preview})
	g.driver = engine.NewDriver(g.eng, g.settings.Gravity)
	g.recorder.Reset()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the layout for a new terminal size.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = width < minScreenW || height < minScreenH
}

// SetPlayback marks the game as replaying a recording. Playback never
// pauses on its own when the window is too small, so the recorded inputs
// replay against the same state they were recorded against.
func (g *Game) SetPlayback(on bool) {
	g.playback = on
}

// Step applies the frame's actions in order, then advances gravity by one
// fixed step. Every action that changed state is recorded with the tick it
// was applied on.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		g.Reset(core.DefaultConfig())
	}
	tick := g.tick
	g.tick++

	actions := in.Actions()
	if g.tooSmall && !g.playback && !g.eng.Paused() {
		actions = append([]core.Action{core.ActionPause}, actions...)
	}

	cleared := 0
	for _, a := range actions {
		before := g.eng.Lines()
		if !g.apply(a) {
			continue
		}
		g.recorder.Record(tick, a)
		cleared += max(g.eng.Lines()-before, 0)
	}

	before := g.eng.Lines()
	g.driver.Advance(g.step)
	cleared += g.eng.Lines() - before

	return core.StepResult{State: g.State(), Cleared: cleared}
}

// apply routes one action to the engine. It reports whether state changed.
func (g *Game) apply(a core.Action) bool {
	switch a {
	case core.ActionLeft:
		return g.eng.MoveLeft()
	case core.ActionRight:
		return g.eng.MoveRight()
	case core.ActionDown:
		return g.eng.SoftDrop()
	case core.ActionRotate:
		return g.eng.Rotate()
	case core.ActionHardDrop:
		_, ok := g.eng.HardDrop()
		return ok
	case core.ActionHold:
		return g.eng.Hold()
	case core.ActionPause:
		if g.tooSmall && !g.playback && g.eng.Paused() {
			return false // stay paused until the window is big enough
		}
		return g.driver.TogglePause(time.Time{})
	case core.ActionRestart:
		g.driver.Restart(time.Time{})
		return true
	default:
		return false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{Level: 1}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		Level:    g.eng.Level(),
		Lines:    g.eng.Lines(),
		GameOver: g.eng.GameOver(),
		Paused:   g.eng.Paused(),
	}
}

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 {
	return g.seed
}

// TickRate returns the simulation rate of the current session.
func (g *Game) TickRate() int {
	return g.tickRate
}

// Tick returns the number of steps since the last Reset.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Settings returns the game settings.
func (g *Game) Settings() Settings {
	return g.settings
}

// Events returns the recorded inputs since the last Reset.
func (g *Game) Events() []InputEvent {
	return g.recorder.Events()
}

// String summarizes the session for logs.
func (g *Game) String() string {
	s := g.State()
	return fmt.Sprintf("tetris seed=%d tick=%d score=%d level=%d lines=%d", g.seed, g.tick, s.Score, s.Level, s.Lines)
}
