package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cellsim/internal/automaton"
	"github.com/san-kum/cellsim/internal/sim"
)

const (
	historyWindow = 120
	minDelay      = time.Millisecond
	maxDelay      = 2 * time.Second
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().MarginTop(2)
)

type TickMsg time.Time

// Model holds the simulator and view state of the watch screen.
type Model struct {
	sim      *sim.Simulator
	delay    time.Duration
	running  bool
	theme    Theme
	showHelp bool
	err      error
}

// NewModel wraps a simulator that has already been started. Unknown theme
// names fall back to the default theme.
func NewModel(s *sim.Simulator, delay time.Duration, theme string) Model {
	if delay < minDelay {
		delay = minDelay
	}
	return Model{
		sim:     s,
		delay:   delay,
		running: true,
		theme:   GetTheme(theme),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.restart()
		case "+", "=":
			m.delay /= 2
			if m.delay < minDelay {
				m.delay = minDelay
			}
		case "-", "_":
			m.delay *= 2
			if m.delay > maxDelay {
				m.delay = maxDelay
			}
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one generation unless the run is over.
func (m *Model) step() {
	if m.err != nil || m.finished() {
		m.running = false
		return
	}
	if _, err := m.sim.Advance(); err != nil {
		m.err = err
		m.running = false
		return
	}
	if m.finished() {
		m.running = false
	}
}

func (m *Model) finished() bool {
	if m.sim.Phase() == sim.Terminated {
		return true
	}
	limit := m.sim.Config().MaxGenerations
	return limit > 0 && m.sim.Generation() >= limit
}

func (m *Model) restart() {
	if err := m.sim.Restart(0); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.err = nil
	m.running = true
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return "ERROR"
	case m.sim.Phase() == sim.Terminated:
		return "TERMINATED"
	case m.finished():
		return "STOPPED"
	case !m.running:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

func (m Model) board() string {
	alive := lipgloss.NewStyle().Foreground(m.theme.Alive)
	predator := lipgloss.NewStyle().Foreground(m.theme.Predator).Bold(true)
	dead := lipgloss.NewStyle().Foreground(m.theme.Muted)

	g := m.sim.Grid()
	var b strings.Builder
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			cell := g.At(r, c)
			glyph := string(cell.Glyph())
			switch cell {
			case automaton.Alive:
				b.WriteString(alive.Render(glyph))
			case automaton.Predator:
				b.WriteString(predator.Render(glyph))
			default:
				b.WriteString(dead.Render(glyph))
			}
		}
		if r < g.Height()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) chart() string {
	pop := m.sim.Population()
	if len(pop) > historyWindow {
		pop = pop[len(pop)-historyWindow:]
	}
	if len(pop) < 2 {
		return ""
	}
	data := make([]float64, len(pop))
	for i, v := range pop {
		data[i] = float64(v)
	}
	return asciigraph.Plot(data, asciigraph.Height(6), asciigraph.Width(36), asciigraph.Caption("Population"))
}

// View renders the board and the stats panel.
func (m Model) View() string {
	header := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).MarginBottom(1)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)
	warn := lipgloss.NewStyle().Foreground(m.theme.Warning).Bold(true)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	g := m.sim.Grid()
	var s strings.Builder
	s.WriteString(header.Render("CELLSIM") + "\n")
	s.WriteString(muted.Render(m.status()) + "\n\n")

	if chart := m.chart(); chart != "" {
		s.WriteString(graphStyle.Foreground(m.theme.Alive).Render(chart) + "\n\n")
	}

	rows := []struct{ label, value string }{
		{"Generation", fmt.Sprintf("%d", m.sim.Generation())},
		{"Alive", fmt.Sprintf("%d", g.Count(automaton.Alive))},
		{"Kills", fmt.Sprintf("%d", m.sim.Kills())},
		{"Board", fmt.Sprintf("%dx%d", g.Width(), g.Height())},
		{"Seed", fmt.Sprintf("%d", m.sim.Seed())},
		{"Delay", m.delay.String()},
		{"Theme", m.theme.Name},
	}
	for _, row := range rows {
		s.WriteString(labelStyle.Render(row.label) + value.Render(row.value) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + warn.Render(m.err.Error()) + "\n")
	} else if m.sim.Phase() == sim.Terminated {
		s.WriteString("\n" + warn.Render(sim.TerminalMessage) + "\n")
	}

	s.WriteString(helpStyle.Foreground(m.theme.Muted).Render("\n─────────────────────\nSP:Pause N:Step R:Restart\n+/-:Speed T:Theme Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.board()), statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  N        - Step once while paused   ║
║  R        - Restart with a new seed  ║
║  + / -    - Faster / slower          ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
