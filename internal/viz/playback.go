package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/physics"
)

const (
	canvasWidth  = 40
	canvasHeight = 18
	chartWidth   = 40
	frameRate    = 30
	maxSpeed     = 64
)

type TickMsg time.Time

// Model replays a finished run. It never integrates; every frame reads
// from the stored Result.
type Model struct {
	title    string
	result   *dynamo.Result
	track    []TrackPoint
	names    []string
	canvas   *Canvas
	playHead int
	speed    int
	selected int
	running  bool
	showHelp bool
}

func NewModel(title string, result *dynamo.Result, stateNames []string) Model {
	names := stateNames
	if len(names) == 0 {
		names = physics.StateNames
	}
	return Model{
		title:   title,
		result:  result,
		track:   GroundTrack(result),
		names:   names,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		speed:   1,
		running: true,
	}
}

func (m Model) PlayHead() int { return m.playHead }
func (m Model) Speed() int    { return m.speed }
func (m Model) Running() bool { return m.running }

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
			m.running = true
		case "[":
			m.running = false
			m.seek(-1)
		case "]":
			m.running = false
			m.seek(1)
		case "tab":
			m.selected = (m.selected + 1) % max(len(m.result.Series), 1)
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.seek(m.speed)
			if m.playHead == m.last() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) last() int {
	return max(m.result.Len()-1, 0)
}

func (m *Model) seek(delta int) {
	m.playHead = min(max(m.playHead+delta, 0), m.last())
}

func (m Model) stateName(i int) string {
	if i < len(m.names) {
		return m.names[i]
	}
	return fmt.Sprintf("x%d", i)
}

func (m Model) View() string {
	if m.result.Len() == 0 {
		return headerStyle.Render(strings.ToUpper(m.title)) + "\n(no samples)\n"
	}

	m.canvas.Clear()
	m.canvas.DrawTrack(m.track, m.playHead+1)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := StatusRunning.Render(fmt.Sprintf("PLAYING x%d", m.speed))
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n")
	progress := float64(m.playHead) / float64(max(m.last(), 1))
	s.WriteString(ProgressBar(progress, 30) + "\n\n")

	t := m.result.Times[m.playHead]
	s.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2fs", t)) + "\n")
	for i, series := range m.result.Series {
		val := formatState(m.stateName(i), series[m.playHead])
		line := fmt.Sprintf("%-8s %s", m.stateName(i), val)
		if i == m.selected {
			s.WriteString(activeStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if m.selected < len(m.result.Series) {
		data := m.result.Series[m.selected][:m.playHead+1]
		if len(data) > 1 {
			chart := asciigraph.Plot(data,
				asciigraph.Height(6),
				asciigraph.Width(chartWidth),
				asciigraph.Caption(m.stateName(m.selected)))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	if len(m.result.Metrics) > 0 {
		s.WriteString("\nMETRICS\n")
		keys := make([]string, 0, len(m.result.Metrics))
		for k := range m.result.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.WriteString("  " + labelStyle.Render(k) + valueStyle.Render(fmt.Sprintf("%.4g", m.result.Metrics[k])) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("SP:Pause [ ]:Step Tab:State +/-:Speed R:Restart Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

// formatState shows angles in degrees and airspeed in m/s.
func formatState(name string, v float64) string {
	if name == physics.StateNames[physics.IdxV] {
		return fmt.Sprintf("%8.2f m/s", v)
	}
	return fmt.Sprintf("%8.2f deg", v*180/math.Pi)
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  [ / ]    - Step back / forward      ║
║  Tab      - Cycle charted state      ║
║  + / -    - Faster / slower          ║
║  R        - Restart                  ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
