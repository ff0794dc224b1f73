package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Status text palette for panel rows.
var (
	colorWhite  = lipgloss.Color("#FFFFFF")
	colorLime   = lipgloss.Color("#32CD32")
	colorOrange = lipgloss.Color("#FFA500")
	colorRed    = lipgloss.Color("#FF4040")
	colorCyan   = lipgloss.Color("#40E0FF")
	colorYellow = lipgloss.Color("#FFD700")
	colorGray   = lipgloss.Color("#808080")
)

// Panel styles
var (
	// The diagnostic panel frame: dark translucent box with a thin
	// light-blue border, matching the HUD look.
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6496FF")).
			Background(lipgloss.Color("#14141E")).
			Padding(0, 1)

	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorCyan).
				Background(lipgloss.Color("#003264")).
				Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#0A0A0A"))

	// Camera layer styles
	cameraFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorGray)

	cameraLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGray)

	// Alert banner styles, keyed by alert severity.
	alertNormalStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				Background(lipgloss.Color("#178644")).
				Padding(0, 2)

	alertPromptStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#000000")).
				Background(colorOrange).
				Padding(0, 2)

	alertCriticalStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				Background(lipgloss.Color("#C92231")).
				Padding(0, 2)

	// Footer styles
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7F849C")).
			Padding(0, 1)
)
