package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func menuSend(t *testing.T, m MenuModel, msgs ...tea.Msg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(MenuModel)
		require.True(t, ok)
	}
	return m
}

func TestMenuDifficultyCycles(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), "hard")
	assert.Equal(t, config.DifficultyHard, m.Difficulty())

	down := tea.KeyMsg{Type: tea.KeyDown}
	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	// Left/Right only act on the difficulty row
	m = menuSend(t, m, right)
	assert.Equal(t, config.DifficultyHard, m.Difficulty())

	m = menuSend(t, m, down, right)
	assert.Equal(t, config.DifficultyFixed, m.Difficulty())
	m = menuSend(t, m, right)
	assert.Equal(t, config.DifficultyEasy, m.Difficulty())
	m = menuSend(t, m, left, left)
	assert.Equal(t, config.DifficultyFixed, m.Difficulty())

	assert.Contains(t, m.View(), "< fixed >")
}

func TestMenuUnknownPresetFallsBack(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), "brutal")
	assert.Equal(t, config.DifficultyNormal, m.Difficulty())
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), "")
	m = menuSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ChoicePlay, m.Selected())
	assert.False(t, m.IsQuitting())

	m = NewMenuModel(nil, testConfig(), "")
	m = menuSend(t, m, runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ChoiceReplays, m.Selected())

	m = NewMenuModel(nil, testConfig(), "")
	m = menuSend(t, m, runes("j"), runes("j"), runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.IsQuitting(), "cursor stops at Quit")
	assert.Empty(t, m.View())
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), "")
	m = menuSend(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.Config().ScreenW)
	assert.Equal(t, 40, m.Config().ScreenH)
}

func TestMenuShowsReplayCount(t *testing.T) {
	store := testStore(t)
	game := tetris.NewWithSettings(tetris.DefaultSettings())
	game.Reset(testConfig())
	_, err := store.SaveReplay(game.Record())
	require.NoError(t, err)

	m := NewMenuModel(store, testConfig(), "")
	assert.Contains(t, m.View(), "Replays (1)")
}
