package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"soccer/internal/config"
	"soccer/internal/game"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestMatch(t *testing.T) *game.Match {
	t.Helper()
	m, err := game.NewMatch(game.DefaultRules(), 7)
	require.NoError(t, err)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestHeldKeyDecays(t *testing.T) {
	model := NewModel(newTestMatch(t), nil, 60)
	model, _ = update(t, model, runes("d"))
	assert.True(t, model.Controls().Home.Right)

	startX := model.Match().Players[game.Home].X
	for range HoldFrames {
		model, _ = update(t, model, tickMsg{})
	}
	rules := model.Match().Rules
	assert.InDelta(t, startX+HoldFrames*rules.PaddleSpeed, model.Match().Players[game.Home].X, 1e-9)
	assert.False(t, model.Controls().Home.Right)

	model, _ = update(t, model, tickMsg{})
	assert.InDelta(t, startX+HoldFrames*rules.PaddleSpeed, model.Match().Players[game.Home].X, 1e-9)
}

func TestHoldBridgesRepeatDelay(t *testing.T) {
	// A typical terminal waits 500ms before auto-repeating a held key.
	assert.GreaterOrEqual(t, HoldFrames, game.TickRate/2)
}

func TestRepeatRefreshesHold(t *testing.T) {
	model := NewModel(newTestMatch(t), nil, 60)
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyLeft})
	for range HoldFrames - 1 {
		model, _ = update(t, model, tickMsg{})
	}
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyLeft})
	model, _ = update(t, model, tickMsg{})
	assert.True(t, model.Controls().Away.Left)
}

func TestUnboundKeysIgnored(t *testing.T) {
	model := NewModel(newTestMatch(t), nil, 60)
	model, _ = update(t, model, runes("x"))
	assert.Equal(t, game.Controls{}, model.Controls())
}

func TestPauseStopsSimulation(t *testing.T) {
	model := NewModel(newTestMatch(t), nil, 60)
	model, _ = update(t, model, tickMsg{})
	require.EqualValues(t, 1, model.Match().Frame)

	model, _ = update(t, model, runes("p"))
	model, cmd := update(t, model, tickMsg{})
	assert.NotNil(t, cmd, "ticks keep coming while paused")
	assert.EqualValues(t, 1, model.Match().Frame)
	assert.Contains(t, model.View(), "PAUSED")

	model, _ = update(t, model, runes("p"))
	model, _ = update(t, model, tickMsg{})
	assert.EqualValues(t, 2, model.Match().Frame)
}

func TestResetClearsHeldKeys(t *testing.T) {
	model := NewModel(newTestMatch(t), nil, 60)
	model, _ = update(t, model, runes("w"))
	model, _ = update(t, model, tickMsg{})
	model, _ = update(t, model, runes("r"))

	assert.Equal(t, game.Controls{}, model.Controls())
	assert.Zero(t, model.Match().Frame)
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		t.Run(msg.String(), func(t *testing.T) {
			model, cmd := update(t, NewModel(newTestMatch(t), nil, 60), msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, model.View())
		})
	}
}

func TestPilotDrivesAway(t *testing.T) {
	pilot, err := game.NewPilot("chase", 1)
	require.NoError(t, err)
	model := NewModel(newTestMatch(t), pilot, 60)

	// The human binding for Away is overridden by the pilot.
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	awayX := model.Match().Players[game.Away].X
	for range 30 {
		model, _ = update(t, model, tickMsg{})
	}
	assert.Less(t, model.Match().Players[game.Away].X, awayX, "chases the ball instead of holding right")
	assert.NotContains(t, model.View(), "←/→/↑")
}

func TestConfigMsg(t *testing.T) {
	model := NewModel(newTestMatch(t), nil, 60)

	bad := config.Default()
	bad.Rules.BallRadius = -1
	model, _ = update(t, model, ConfigMsg{Config: bad})
	assert.Contains(t, model.View(), "config rejected")
	assert.Equal(t, game.DefaultRules(), model.Match().Rules)

	good := config.Default()
	good.Rules.PaddleSpeed = 9
	good.CPU = "idle"
	good.TickRate = 30
	model, _ = update(t, model, ConfigMsg{Config: good})
	assert.Contains(t, model.View(), "config reloaded")
	assert.Equal(t, 9.0, model.Match().Rules.PaddleSpeed)
	assert.NotNil(t, model.pilot)
	assert.Equal(t, time.Second/30, model.tick)
}

func TestViewSize(t *testing.T) {
	model := NewModel(newTestMatch(t), nil, 60)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 60, Height: 20})

	view := model.View()
	assert.Len(t, strings.Split(view, "\n"), 20)
	assert.Contains(t, view, "PLAYER 1  0")
	assert.Contains(t, view, "0  PLAYER 2")
	assert.Contains(t, view, "●")
}
