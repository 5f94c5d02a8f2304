// Package tui plays the match inside a terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"soccer/internal/config"
	"soccer/internal/game"
)

// HoldFrames is how long a key counts as held after its last press event.
// Terminals report presses and auto-repeat but never releases, and the first
// repeat can take over half a second to arrive.
const HoldFrames = 30

const (
	minCols = 20
	minRows = 8
	// header plus footer
	chromeRows = 2
)

type tickMsg struct{}

// ConfigMsg carries a reloaded config into the running program.
type ConfigMsg struct {
	Config *config.Config
}

// Model is the bubbletea model for a terminal match.
type Model struct {
	match *game.Match
	pilot game.Pilot
	held  map[string]int
	tick  time.Duration

	width, height int
	status        string
	quitting      bool

	styles styles
}

type styles struct {
	cell   [CellSpark + 1]lipgloss.Style
	home   lipgloss.Style
	away   lipgloss.Style
	header lipgloss.Style
	footer lipgloss.Style
	alert  lipgloss.Style
}

var glyphs = [CellSpark + 1]rune{
	CellField:  ' ',
	CellLine:   '¦',
	CellCircle: '·',
	CellGoal:   '▒',
	CellHome:   '█',
	CellAway:   '█',
	CellBall:   '●',
	CellSpark:  '*',
}

func hex(c game.RGB) lipgloss.Color { return lipgloss.Color(c.Hex()) }

func newStyles() styles {
	field := hex(game.Palette.Field)
	base := lipgloss.NewStyle().Background(field)
	var s styles
	s.cell[CellField] = base
	s.cell[CellLine] = base.Foreground(hex(game.Palette.Line))
	s.cell[CellCircle] = base.Foreground(hex(game.Palette.Line))
	s.cell[CellGoal] = base.Foreground(hex(game.Palette.Goal))
	s.cell[CellHome] = base.Foreground(hex(game.SideColor(game.Home)))
	s.cell[CellAway] = base.Foreground(hex(game.SideColor(game.Away)))
	s.cell[CellBall] = base.Foreground(hex(game.Palette.Ball)).Bold(true)
	s.cell[CellSpark] = base.Foreground(hex(game.Palette.Spark))
	s.home = lipgloss.NewStyle().Foreground(hex(game.SideColor(game.Home))).Bold(true)
	s.away = lipgloss.NewStyle().Foreground(hex(game.SideColor(game.Away))).Bold(true)
	s.header = lipgloss.NewStyle().Bold(true)
	s.footer = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	s.alert = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	return s
}

// NewModel wraps m. pilot may be nil for two human players. tickRate is
// the simulation rate in frames per second.
func NewModel(m *game.Match, pilot game.Pilot, tickRate int) Model {
	if tickRate <= 0 {
		tickRate = game.TickRate
	}
	return Model{
		match:  m,
		pilot:  pilot,
		held:   make(map[string]int),
		tick:   time.Second / time.Duration(tickRate),
		width:  80,
		height: 24,
		styles: newStyles(),
	}
}

// Match exposes the simulated match.
func (m Model) Match() *game.Match { return m.match }

func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.step()
		return m, m.nextTick()

	case ConfigMsg:
		if err := m.apply(msg.Config); err != nil {
			m.status = "config rejected: " + err.Error()
		} else {
			m.status = "config reloaded"
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "p":
		m.match.TogglePause()
	case "r":
		m.match.Reset()
		clear(m.held)
	default:
		if isBound(key) {
			m.held[key] = HoldFrames
		}
	}
	return m, nil
}

func isBound(key string) bool {
	for _, k := range game.BoundKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Controls returns the key state the next step will use.
func (m Model) Controls() game.Controls {
	var c game.Controls
	for key, left := range m.held {
		c.Bind(key, left > 0)
	}
	return c
}

func (m *Model) step() {
	c := m.Controls()
	if m.pilot != nil {
		c.Away = m.pilot.Decide(m.match, game.Away)
	}
	m.match.Step(c)
	if m.match.Paused {
		return
	}
	for key, left := range m.held {
		if left <= 1 {
			delete(m.held, key)
			continue
		}
		m.held[key] = left - 1
	}
}

func (m *Model) apply(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	var pilot game.Pilot
	if cfg.CPU != "" {
		p, err := game.NewPilot(cfg.CPU, game.MixSeed(m.match.Seed(), 0xC0))
		if err != nil {
			return err
		}
		pilot = p
	}
	if err := m.match.ApplyRules(cfg.Rules); err != nil {
		return err
	}
	m.pilot = pilot
	if cfg.TickRate > 0 {
		m.tick = time.Second / time.Duration(cfg.TickRate)
	}
	return nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	cols := max(m.width, minCols)
	rows := max(m.height-chromeRows, minRows)

	var b strings.Builder
	b.WriteString(m.header(cols))
	b.WriteByte('\n')

	cells := Grid(m.match, cols, rows, nil)
	for row := range rows {
		line := cells[row*cols : (row+1)*cols]
		for start := 0; start < len(line); {
			kind := line[start]
			end := start + 1
			for end < len(line) && line[end] == kind {
				end++
			}
			b.WriteString(m.styles.cell[kind].Render(strings.Repeat(string(glyphs[kind]), end-start)))
			start = end
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.footer())
	return b.String()
}

func (m Model) header(cols int) string {
	home, away := m.match.Score()
	score := m.styles.home.Render(fmt.Sprintf("PLAYER 1  %d", home)) +
		m.styles.header.Render("  :  ") +
		m.styles.away.Render(fmt.Sprintf("%d  PLAYER 2", away))

	var extra string
	switch {
	case m.match.Paused:
		extra = m.styles.alert.Render("  PAUSED")
	case m.match.GoalFlash > 0:
		st := m.styles.home
		if m.match.LastScorer == game.Away {
			st = m.styles.away
		}
		extra = st.Render("  GOAL!")
	}
	return lipgloss.PlaceHorizontal(cols, lipgloss.Center, score+extra)
}

func (m Model) footer() string {
	hint := "A/D/W move+jump   ←/→/↑ move+jump   P pause   R reset   Q quit"
	if m.pilot != nil {
		hint = "A/D/W move+jump   P pause   R reset   Q quit"
	}
	if m.status != "" {
		hint += "   " + m.status
	}
	return m.styles.footer.Render(hint)
}
