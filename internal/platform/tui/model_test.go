package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: 7}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestModel(t *testing.T, store *storage.Store) (*Model, *tetris.Game) {
	t.Helper()
	game := tetris.NewWithSettings(tetris.DefaultSettings())
	m := NewModel(game, store, quietLogger(), testConfig())
	require.NotNil(t, m.Init())
	return m, game
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

// playUntilOver hard drops once per tick until the stack reaches the top.
func playUntilOver(t *testing.T, m *Model, game *tetris.Game) {
	t.Helper()
	for range 500 {
		if game.State().GameOver {
			return
		}
		send(m, tea.KeyMsg{Type: tea.KeySpace}, TickMsg{})
	}
	t.Fatal("game did not end")
}

func TestModelAppliesKeysOnTick(t *testing.T) {
	m, game := newTestModel(t, nil)

	send(m, runes("a"), runes("w"))
	assert.Empty(t, game.Events(), "keys must wait for the tick")

	send(m, TickMsg{})
	events := game.Events()
	require.Len(t, events, 2)
	assert.Equal(t, tetris.InputEvent{Tick: 0, Action: core.ActionLeft}, events[0])
	assert.Equal(t, tetris.InputEvent{Tick: 0, Action: core.ActionRotate}, events[1])

	// Input is consumed by the tick
	send(m, TickMsg{})
	assert.Len(t, game.Events(), 2)
}

func TestModelSavesReplayOnGameOver(t *testing.T) {
	store := testStore(t)
	m, game := newTestModel(t, store)

	playUntilOver(t, m, game)
	send(m, TickMsg{})

	list, err := store.RecentReplays(10)
	require.NoError(t, err)
	require.Len(t, list, 1, "replay must be saved exactly once")
	assert.Equal(t, m.Result().ReplayID, list[0].ID)
	assert.Equal(t, len(game.Events()), list[0].EventCount)
	assert.Contains(t, m.View(), "replay saved")

	rec, err := store.FindReplay(list[0].ID)
	require.NoError(t, err)
	loaded, err := tetris.LoadRecord(rec)
	require.NoError(t, err)

	got, ok := loaded.Verify(core.GameState{Score: rec.Score, Level: rec.Level, Lines: rec.Lines})
	assert.True(t, ok, "replayed %+v, recorded score %d", got, rec.Score)
}

func TestModelQuitWithoutScoreSavesNothing(t *testing.T) {
	store := testStore(t)
	m, _ := newTestModel(t, store)

	send(m, TickMsg{})
	_, cmd := m.Update(runes("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())

	list, err := store.RecentReplays(10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestModelBackToMenu(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(runes("b"))
	assert.NotNil(t, cmd)
	assert.True(t, m.Result().BackToMenu)
}

func TestModelRestartStartsNewSession(t *testing.T) {
	m, game := newTestModel(t, nil)

	send(m, runes("a"), TickMsg{}, TickMsg{})
	require.Equal(t, uint64(2), game.Tick())

	send(m, runes("r"))
	assert.Equal(t, uint64(0), game.Tick())
	assert.Empty(t, game.Events())
	assert.NotEqual(t, int64(7), game.Seed())
}

func TestModelResizeKeepsGame(t *testing.T) {
	m, game := newTestModel(t, nil)

	send(m, runes("a"), TickMsg{})
	send(m, tea.WindowSizeMsg{Width: 30, Height: 10}, TickMsg{})

	assert.Equal(t, uint64(2), game.Tick(), "resize must not reset")
	assert.Equal(t, tetris.StatePausedSmall, game.Snapshot().State)
	assert.Contains(t, m.View(), "Window too small")

	send(m, tea.WindowSizeMsg{Width: 80, Height: 24}, runes("p"), TickMsg{})
	assert.Equal(t, tetris.StatePlaying, game.Snapshot().State)
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, nil)
	send(m, TickMsg{})

	view := m.View()
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 24)
	assert.Contains(t, view, "TETRIS")
	assert.Contains(t, lines[len(lines)-1], "hold")

	send(m, runes("?"))
	assert.Contains(t, m.View(), "screenshot")
}

func TestReplayModelPlaysBack(t *testing.T) {
	store := testStore(t)
	m, game := newTestModel(t, store)
	playUntilOver(t, m, game)
	want := game.Snapshot()

	rec, err := store.FindReplay(m.Result().ReplayID)
	require.NoError(t, err)
	loaded, err := tetris.LoadRecord(rec)
	require.NoError(t, err)

	r := NewReplayModel(rec.ID, loaded, quietLogger(), testConfig())
	require.NotNil(t, r.Init())

	// Player input is ignored during playback
	send(r, runes("a"), tea.KeyMsg{Type: tea.KeySpace})

	for range loaded.Ticks + 10 {
		send(r, TickMsg{})
	}

	assert.True(t, r.playbackDone())
	assert.Equal(t, want.Tick, r.replayGame.Tick())
	assert.Equal(t, want.Engine, r.replayGame.Snapshot().Engine)
	assert.Contains(t, r.View(), "finished")

	// Restart rewinds to the same seed
	send(r, runes("r"))
	assert.Equal(t, uint64(0), r.replayGame.Tick())
	assert.Equal(t, loaded.Seed, r.replayGame.Seed())
}

func TestReplayModelViewerPause(t *testing.T) {
	loaded := tetris.Loaded{
		Settings: tetris.DefaultSettings(),
		Seed:     3,
		TickRate: 50,
		Ticks:    100,
	}
	r := NewReplayModel("abc", loaded, quietLogger(), testConfig())
	r.Init()

	send(r, TickMsg{}, runes("p"), TickMsg{}, TickMsg{})
	assert.Equal(t, uint64(1), r.replayGame.Tick())
	assert.Contains(t, r.View(), "paused")

	send(r, runes("p"), TickMsg{})
	assert.Equal(t, uint64(2), r.replayGame.Tick())
}
