// Package tui implements the onroad window: a camera backdrop, a floating
// diagnostic panel, and an alert banner, stacked back to front and driven by
// UI ticks off the message bus.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/driveline/onroad/internal/ui"
)

// DefaultTickInterval is the UI refresh cadence.
const DefaultTickInterval = 50 * time.Millisecond

// Cell insets of the floating diagnostic panel inside the window.
const (
	panelInsetX = 2
	panelInsetY = 1
)

// TickMsg delivers one UIState snapshot at the UI refresh cadence.
type TickMsg struct {
	State ui.State
}

// Config holds host construction parameters.
type Config struct {
	Sampler      *ui.Sampler
	TickInterval time.Duration
}

// Host is the root bubbletea model. It owns the tick subscription, the
// border color, and the tap-to-toggle state of the diagnostic panel.
type Host struct {
	sampler  *ui.Sampler
	interval time.Duration

	width  int
	height int

	panelVisible bool
	borderColor  lipgloss.Color
	prevStarted  bool
	quitting     bool

	camera *CameraLayer
	panel  *DiagPanel
	alerts *AlertBanner

	keys KeyMap
	help help.Model
}

// NewHost builds the window and its three children. The panel starts
// visible, matching the on-car default.
func NewHost(cfg Config) Host {
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	return Host{
		sampler:      cfg.Sampler,
		interval:     interval,
		panelVisible: true,
		borderColor:  ui.StatusDisengaged.BGColor(),
		camera:       NewCameraLayer(),
		panel:        NewDiagPanel(),
		alerts:       NewAlertBanner(),
		keys:         DefaultKeyMap(),
		help:         help.New(),
	}
}

// Init starts the tick loop.
func (m Host) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Host) tickCmd() tea.Cmd {
	sampler := m.sampler
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{State: sampler.Snapshot()}
	})
}

// Update handles ticks, window resizes, keys, and the toggle tap.
func (m Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.MouseMsg:
		// Any press toggles the diagnostic panel. The children never
		// intercept pointer events.
		if msg.Action == tea.MouseActionPress {
			m.panelVisible = !m.panelVisible
		}

	case TickMsg:
		m = m.handleTick(msg.State)
		return m, m.tickCmd()
	}

	return m, nil
}

// handleTick runs one UI tick: alerts, camera, then the panel if visible,
// then the border color decision.
func (m Host) handleTick(s ui.State) Host {
	if !s.Started {
		if m.prevStarted {
			// Offroad transition: drop whatever alert was up. Panel
			// visibility is untouched.
			m.alerts.Clear()
		}
		m.prevStarted = false
		return m
	}
	m.prevStarted = true

	m.alerts.Update(s)
	m.camera.Update(s)
	if m.panelVisible {
		m.updatePanel(s)
	}

	if bg := s.Status.BGColor(); bg != m.borderColor {
		m.borderColor = bg
	}
	return m
}

// updatePanel forwards the tick to the diagnostic panel. A failure there
// must not take down the rest of the tick.
func (m Host) updatePanel(s ui.State) {
	defer func() {
		_ = recover()
	}()
	m.panel.Update(s)
}

// layout distributes the window area to the children. The border frame
// takes one cell on each side and the footer one line.
func (m *Host) layout() {
	innerWidth := m.width - 2
	innerHeight := m.height - 3
	if innerWidth < 0 {
		innerWidth = 0
	}
	if innerHeight < 0 {
		innerHeight = 0
	}

	m.camera.Resize(innerWidth, innerHeight)
	m.panel.Resize(innerWidth-2*panelInsetX, innerHeight-2*panelInsetY)
	m.alerts.Resize(innerWidth)
}

// View composites camera, diagnostic panel, and alert banner back to front
// inside the status-colored border.
func (m Host) View() string {
	if m.quitting {
		return ""
	}

	content := m.camera.View()
	if m.panelVisible {
		content = placeOverlay(panelInsetX, panelInsetY, m.panel.View(), content)
	}
	if !m.alerts.Empty() {
		banner := m.alerts.View()
		x := (m.width - 2 - lipgloss.Width(banner)) / 2
		if x < 0 {
			x = 0
		}
		y := m.height - 3 - lipgloss.Height(banner) - 1
		if y < 0 {
			y = 0
		}
		content = placeOverlay(x, y, banner, content)
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(m.borderColor).
		Render(content)

	footer := footerStyle.Render(m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, frame, footer)
}
