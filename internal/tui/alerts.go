package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/driveline/onroad/internal/bus"
	"github.com/driveline/onroad/internal/ui"
)

// AlertBanner shows the current selfdriveState alert across the bottom of
// the window. It never receives input; the host owns all key and mouse
// events.
type AlertBanner struct {
	width  int
	text1  string
	text2  string
	status bus.AlertStatus
}

// NewAlertBanner returns an empty banner.
func NewAlertBanner() *AlertBanner {
	return &AlertBanner{}
}

// Resize sets the banner width.
func (a *AlertBanner) Resize(width int) {
	a.width = width
}

// Update refreshes the alert texts from selfdriveState. An unusable topic
// keeps the current alert on screen; stale alerts clear on the offroad
// transition.
func (a *AlertBanner) Update(s ui.State) {
	if s.SM == nil || !bus.Usable(s.SM, bus.TopicSelfdriveState) {
		return
	}
	payload, ok := s.SM.Get(bus.TopicSelfdriveState)
	if !ok {
		return
	}
	ss, ok := payload.(bus.SelfdriveState)
	if !ok {
		return
	}
	a.text1 = ss.AlertText1
	a.text2 = ss.AlertText2
	a.status = ss.AlertStatus
}

// Clear wipes the banner. Called when the session ends.
func (a *AlertBanner) Clear() {
	a.text1 = ""
	a.text2 = ""
	a.status = bus.AlertStatusNormal
}

// Empty reports whether there is anything to draw.
func (a *AlertBanner) Empty() bool {
	return a.text1 == ""
}

// View renders the banner, or an empty string when no alert is active.
func (a *AlertBanner) View() string {
	if a.Empty() {
		return ""
	}

	style := alertNormalStyle
	switch a.status {
	case bus.AlertStatusUserPrompt:
		style = alertPromptStyle
	case bus.AlertStatusCritical:
		style = alertCriticalStyle
	}

	limit := a.width - 8
	if limit < 16 {
		limit = 16
	}

	body := wordwrap.String(a.text1, limit)
	if a.text2 != "" {
		body = lipgloss.JoinVertical(lipgloss.Center, body, wordwrap.String(a.text2, limit))
	}
	return style.Render(body)
}
