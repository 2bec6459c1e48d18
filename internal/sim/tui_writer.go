package sim

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"director-sim/internal/config"
	"director-sim/internal/director"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a log line for the event viewport.
type logMsg struct{ line string }

// encounterMsg carries an encounter log line.
type encounterMsg struct{ line string }

// statusMsg carries a director status update.
type statusMsg struct{ director.Status }

// adminMsg reports admin UI status.
type adminMsg struct{ active bool }

const (
	maxSectionHeightPct = 0.25
	tensionBarWidth     = 20
)

// TUIWriter renders director events using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.MatchConfig) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	m := newTUIModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_ = p.Start()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteDifficulty implements EventWriter.
func (w *TUIWriter) WriteDifficulty(row director.DifficultyRow) error {
	line := fmt.Sprintf("%s[%s]%s %sDIFFICULTY%s profile=%s%s%s scaling=%s%.2f%s accuracy=%.2f aggression=%.2f spawn_rate=%.2f health=%.2f",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorCyan, colorReset,
		colorYellow, row.Profile, colorReset,
		colorGreen, row.ScalingFactor, colorReset,
		row.Accuracy, row.Aggression, row.SpawnRate, row.Health)
	w.program.Send(logMsg{line: line})
	return nil
}

// WritePacing implements EventWriter.
func (w *TUIWriter) WritePacing(row director.PacingRow) error {
	line := fmt.Sprintf("%s[%s]%s %sPACING%s phase=%s%s%s tension=%.2f target=%.2f",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, colorReset,
		phaseColor(row.Phase), row.Phase, colorReset,
		row.Tension, row.TargetTension)
	w.program.Send(logMsg{line: line})
	return nil
}

// WriteEncounter implements EventWriter.
func (w *TUIWriter) WriteEncounter(row director.EncounterRow) error {
	c := colorGreen
	if row.EventType == director.EncounterEnded {
		c = colorGray
	}
	line := fmt.Sprintf("%s[%s]%s %s%s%s type=%s%s%s id=%s actors=%d pos=(%.1f,%.1f) %s%s%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		c, strings.ToUpper(row.EventType), colorReset,
		colorMagenta, row.Type, colorReset,
		row.EncounterID, row.ActorCount, row.X, row.Y,
		colorYellow, row.Difficulty, colorReset)
	w.program.Send(encounterMsg{line: line})
	return nil
}

// WriteStatus implements StatusWriter.
func (w *TUIWriter) WriteStatus(st director.Status) error {
	w.program.Send(statusMsg{Status: st})
	return nil
}

// SetAdminStatus updates the admin UI indicator.
func (w *TUIWriter) SetAdminStatus(active bool) {
	w.program.Send(adminMsg{active: active})
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	cfg          *config.MatchConfig
	table        table.Model
	vp           viewport.Model
	encVP        viewport.Model
	logs         []string
	encLogs      []string
	status       director.Status
	haveStatus   bool
	admin        bool
	wrap         bool
	autoscroll   bool
	help         bool
	header       string
	headerHeight int
	height       int
}

func newTUIModel(cfg *config.MatchConfig) tuiModel {
	cols := []table.Column{
		{Title: "Config", Width: 18},
		{Title: "Value", Width: 14},
	}
	rows := []table.Row{
		{"Match ID", cfg.MatchID},
		{"Arena", fmt.Sprintf("%.0fx%.0f", cfg.Arena.Width, cfg.Arena.Height)},
		{"Players", fmt.Sprintf("%d", cfg.PlayerCount())},
		{"Round Length (s)", fmt.Sprintf("%.0f", cfg.RoundSeconds)},
		{"Script", cfg.Script},
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1))
	return tuiModel{
		cfg:        cfg,
		table:      t,
		vp:         viewport.New(0, 0),
		encVP:      viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.encVP.Width = msg.Width
		m.height = msg.Height
		m.header = m.renderHeader()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
		m.refreshViewport()
		m.refreshEncounters()
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
				m.updateViewportHeight()
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
				m.encVP.GotoBottom()
			}
			return m, nil
		case "h", "?":
			m.help = !m.help
			m.updateViewportHeight()
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
				m.encVP.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
				m.encVP.LineUp(1)
			case "pgdown", "ctrl+n":
				m.vp.LineDown(10)
				m.encVP.LineDown(10)
			case "pgup", "ctrl+p":
				m.vp.LineUp(10)
				m.encVP.LineUp(10)
			default:
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				m.encVP, _ = m.encVP.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		return m, nil
	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > 1000 {
			m.logs = m.logs[len(m.logs)-1000:]
		}
		m.refreshViewport()
	case encounterMsg:
		m.encLogs = append(m.encLogs, msg.line)
		if len(m.encLogs) > 1000 {
			m.encLogs = m.encLogs[len(m.encLogs)-1000:]
		}
		m.updateViewportHeight()
		m.refreshEncounters()
		m.refreshViewport()
	case statusMsg:
		m.status = msg.Status
		m.haveStatus = true
	case adminMsg:
		m.admin = msg.active
	}
	return m, nil
}

func (m *tuiModel) updateViewportHeight() {
	bottomHeight := lipgloss.Height(m.renderBottom())

	encLines := len(m.encLogs)
	if encLines == 0 {
		encLines = 1
	}
	if max := m.maxSectionLines(); encLines > max {
		encLines = max
	}
	m.encVP.Height = encLines

	h := m.height - m.headerHeight - bottomHeight - m.encVP.Height - 4
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
		m.encVP.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshEncounters() {
	content := "none"
	if len(m.encLogs) > 0 {
		content = strings.Join(m.encLogs, "\n")
	}
	m.encVP.SetContent(content)
	if m.autoscroll {
		m.encVP.GotoBottom()
	}
}

func (m tuiModel) maxSectionLines() int {
	h := int(float64(m.height) * maxSectionHeightPct)
	if h < 1 {
		h = 1
	}
	return h
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.header,
		divider,
		m.vp.View(),
		divider,
		"Encounters:",
		m.encVP.View(),
		divider,
		m.renderBottom(),
	}
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string { return m.table.View() }

func tensionBar(tension float64) string {
	if tension < 0 {
		tension = 0
	}
	if tension > 1 {
		tension = 1
	}
	filled := int(tension * tensionBarWidth)
	return fmt.Sprintf("[%s%s]",
		strings.Repeat("█", filled),
		strings.Repeat("░", tensionBarWidth-filled))
}

func (m tuiModel) renderBottom() string {
	adminColor := lipgloss.Color("9")
	if m.admin {
		adminColor = lipgloss.Color("10")
	}
	scrollColor := lipgloss.Color("10")
	if !m.autoscroll {
		scrollColor = lipgloss.Color("9")
	}
	adminIndicator := lipgloss.NewStyle().Foreground(adminColor).Render("●")
	scrollIndicator := lipgloss.NewStyle().Foreground(scrollColor).Render("●")

	state := "STATE waiting for first tick"
	if m.haveStatus {
		st := m.status
		adaptive := "off"
		if st.Adaptive {
			adaptive = "on"
		}
		state = fmt.Sprintf("%sSTATE%s profile=%s%s%s scaling=%s%.2f%s adaptive=%s phase=%s%s%s tension=%s%.2f perf=%.2f encounters=%d squads=%d",
			colorBlue, colorReset,
			colorYellow, st.Profile, colorReset,
			colorGreen, st.ScalingFactor, colorReset,
			adaptive,
			phaseColor(st.Phase), st.Phase, colorReset,
			tensionBar(st.Tension), st.Tension,
			st.AveragePerformance,
			len(st.ActiveEncounters), st.Squads)
	}
	return fmt.Sprintf("%s | Admin UI %s | Scroll %s | h for help", state, adminIndicator, scrollIndicator)
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" q  quit",
		" w  toggle wrap for event log",
		" s  toggle auto-scroll",
		" h/? toggle this help view",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
	}
	return strings.Join(lines, "\n")
}
