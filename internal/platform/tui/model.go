package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Recordable is implemented by games that can be saved as replays.
type Recordable interface {
	Record() storage.Replay
}

// Result reports how a game session ended.
type Result struct {
	BackToMenu bool
	ReplayID   string // Last replay saved during the session
}

// Model is the Bubble Tea model for running a game.
// The bottom terminal row is reserved for the status and help line.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model

	// Playback state; nil when playing live.
	playback    *tetris.Playback
	replay      *tetris.Loaded
	replayGame  *tetris.Game
	replayID    string
	viewerPause bool

	status      string
	replaySaved bool
	lastReplay  string
	quitting    bool
	backToMenu  bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) *Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	return &Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       h,
	}
}

// NewReplayModel creates a model that plays back a stored replay.
func NewReplayModel(id string, replay tetris.Loaded, logger *log.Logger, cfg core.RuntimeConfig) *Model {
	game := tetris.NewWithSettings(replay.Settings)
	game.SetPlayback(true)

	cfg.Seed = replay.Seed
	cfg.TickRate = replay.TickRate

	m := NewModel(game, nil, logger, cfg)
	m.replay = &replay
	m.replayGame = game
	m.replayID = id
	m.playback = tetris.NewPlayback(replay.Events)
	return m
}

func gameHeight(h int) int {
	return max(h-1, 0)
}

// Init initializes the model and starts the game.
func (m *Model) Init() tea.Cmd {
	m.start()
	return tickCmd(m.config.TickRate)
}

func (m *Model) start() {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	m.game.Reset(cfg)
	m.gameState = m.game.State()
	m.replaySaved = false
	m.inputFrame.Clear()
	if m.replay != nil {
		m.playback = tetris.NewPlayback(m.replay.Events)
		m.viewerPause = false
		m.logger.Info("replay started", "id", m.replayID, "seed", cfg.Seed, "events", len(m.replay.Events))
		return
	}
	m.logger.Info("game started", "game", m.game.ID(), "seed", cfg.Seed, "tick_rate", cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.finish()
		m.backToMenu = true
		return m, tea.Quit
	case action == core.ActionRestart:
		m.finish()
		if m.replay == nil {
			m.config.Seed = time.Now().UnixNano()
		}
		m.start()
		return m, nil
	}

	if m.replay != nil {
		// Viewers can only pause; the recording drives the game.
		if action == core.ActionPause {
			m.viewerPause = !m.viewerPause
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The game keeps its state and
// only re-lays itself out.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.replay != nil {
		m.stepPlayback()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Cleared > 0 {
		m.logger.Debug("lines cleared", "count", result.Cleared, "total", result.State.Lines)
	}

	// Save the replay on game over (once)
	if m.gameState.GameOver && !m.replaySaved {
		m.logger.Info("game over", "score", m.gameState.Score, "level", m.gameState.Level, "lines", m.gameState.Lines)
		m.saveReplay()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) stepPlayback() {
	if m.viewerPause || m.playbackDone() {
		return
	}
	result := m.game.Step(m.playback.Frame(m.replayGame.Tick()))
	m.gameState = result.State
	if m.playbackDone() {
		m.logger.Info("replay finished", "id", m.replayID, "score", m.gameState.Score)
	}
}

func (m *Model) playbackDone() bool {
	return m.replay != nil && m.replayGame.Tick() >= m.replay.Ticks
}

// finish saves the running session before it is abandoned.
func (m *Model) finish() {
	if m.replay != nil || m.replaySaved {
		return
	}
	if m.game.State().Score > 0 {
		m.saveReplay()
	}
}

// saveReplay stores the session as a replay.
func (m *Model) saveReplay() {
	m.replaySaved = true
	rec, ok := m.game.(Recordable)
	if !ok || m.store == nil {
		return
	}
	id, err := m.store.SaveReplay(rec.Record())
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Error("save replay", "err", err)
		m.status = "replay not saved"
		return
	}
	m.lastReplay = id
	m.status = "replay saved " + shortID(id)
	m.logger.Info("replay saved", "id", id)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.status = "screenshot saved"
	m.logger.Info("screenshot saved", "path", path)
}

// Result returns how the session ended.
func (m *Model) Result() Result {
	return Result{BackToMenu: m.backToMenu, ReplayID: m.lastReplay}
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *Model) statusLine() string {
	if m.replay != nil {
		state := "playing"
		switch {
		case m.playbackDone():
			state = "finished, r to watch again"
		case m.viewerPause:
			state = "paused"
		}
		return statusStyle.Render(fmt.Sprintf("replay %s  %s  p pause  b back  q quit", shortID(m.replayID), state))
	}
	if m.help.ShowAll {
		return dimStyle.Render(m.help.View(m.keys.Keys()))
	}
	line := m.help.View(m.keys.Keys())
	if m.status != "" {
		line = m.status + "  " + line
	}
	return dimStyle.Render(line)
}

// shortID returns the first 8 characters of a replay id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (Result, error) {
	return runModel(NewModel(game, store, logger, cfg))
}

// RunReplay plays back a stored replay.
func RunReplay(id string, replay tetris.Loaded, logger *log.Logger, cfg core.RuntimeConfig) (Result, error) {
	return runModel(NewReplayModel(id, replay, logger, cfg))
}

func runModel(model *Model) (Result, error) {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		return Result{}, err
	}
	return model.Result(), nil
}
