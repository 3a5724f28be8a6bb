// Package tui is a terminal view of a running simulation.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/brensch/snek3d/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const frameInterval = 100 * time.Millisecond

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	foodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	clashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	snakePalette = []lipgloss.Color{"10", "14", "13", "208", "33", "199", "118", "226"}
)

type snapshotMsg struct{ snap *game.Snapshot }

type feedClosedMsg struct{}

type frameMsg time.Time

func waitForSnapshot(in <-chan *game.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-in
		if !ok {
			return feedClosedMsg{}
		}
		return snapshotMsg{snap: s}
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model renders the latest snapshot one Z slice at a time, or as a
// projection of the animated positions onto the XY plane.
type Model struct {
	in        <-chan *game.Snapshot
	positions Positions
	feed      *Feed

	snap      *game.Snapshot
	slice     int
	projected bool
	stopped   bool
	startTime time.Time
}

// New builds a model reading from feed. positions may be nil, in which
// case the projected view is unavailable.
func New(feed *Feed, positions Positions) Model {
	return Model{
		in:        feed.C(),
		feed:      feed,
		positions: positions,
		startTime: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.in), frameCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "[":
			if m.slice > 0 {
				m.slice--
			}
		case "]":
			if m.snap == nil || m.slice < m.snap.FieldSize-1 {
				m.slice++
			}
		case "p":
			if m.positions != nil {
				m.projected = !m.projected
			}
		}
		return m, nil
	case snapshotMsg:
		m.snap = msg.snap
		if m.slice >= m.snap.FieldSize {
			m.slice = m.snap.FieldSize - 1
		}
		return m, waitForSnapshot(m.in)
	case feedClosedMsg:
		m.stopped = true
		return m, nil
	case frameMsg:
		return m, frameCmd()
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("snek3d"))
	sb.WriteString("\n")

	if m.snap == nil {
		sb.WriteString("waiting for the first tick...\n")
		sb.WriteString(statusStyle.Render("q quit"))
		return sb.String()
	}

	var b board
	var where string
	if m.projected && m.positions != nil {
		b = projectedBoard(m.snap, m.positions)
		where = "projection XY"
	} else {
		b = sliceBoard(m.snap, m.slice)
		where = fmt.Sprintf("slice z=%d/%d", m.slice, m.snap.FieldSize-1)
	}
	sb.WriteString(boardStyle.Render(styleBoard(b)))
	sb.WriteString("\n")

	status := fmt.Sprintf("tick %d | %s | snakes %d | food %d | longest %d | up %s",
		m.snap.Tick, where, len(m.snap.Snakes), len(m.snap.Food), m.snap.LongestSnake(),
		time.Since(m.startTime).Round(time.Second))
	if m.feed != nil {
		if d := m.feed.Dropped(); d > 0 {
			status += fmt.Sprintf(" | dropped %d", d)
		}
	}
	if m.stopped {
		status += " | stopped"
	}
	sb.WriteString(statusStyle.Render(status))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render("[ ] slice  p projection  q quit"))
	return sb.String()
}

func styleBoard(b board) string {
	lines := make([]string, len(b))
	for y, row := range b {
		var sb strings.Builder
		for _, g := range row {
			sb.WriteString(styleFor(g).Render(string(g.r)))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func styleFor(g glyph) lipgloss.Style {
	switch {
	case g.owner >= 0:
		st := lipgloss.NewStyle().Foreground(snakePalette[g.owner%len(snakePalette)])
		if g.r == glyphHead {
			st = st.Bold(true)
		}
		return st
	case g.r == glyphFood:
		return foodStyle
	case g.r == glyphMany:
		return clashStyle
	}
	return emptyStyle
}
