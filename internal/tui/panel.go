package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/driveline/onroad/internal/bus"
	"github.com/driveline/onroad/internal/ui"
)

// Unit conversion constants. 2.237 (not 2.23694) matches the value the rest
// of the stack displays, so readouts agree across tools.
const (
	msToKph = 3.6
	msToMph = 2.237
)

const notAvailable = "N/A"

// Fallback panel size used when the window dimensions are not known yet.
const (
	fallbackPanelWidth  = 72
	fallbackPanelHeight = 16
)

// row is one status line of the diagnostic panel: a fixed label prefix, the
// last formatted value, and the text color. Values persist across ticks
// until a usable payload replaces them.
type row struct {
	label string
	value string
	color lipgloss.TerminalColor
}

func newRow(label string) *row {
	return &row{label: label, value: notAvailable, color: colorWhite}
}

func (r *row) set(value string, color lipgloss.TerminalColor) {
	r.value = value
	r.color = color
}

// Text returns the rendered row text, e.g. "Speed: 36.0 km/h".
func (r *row) Text() string {
	return r.label + ": " + r.value
}

// column is one labeled section of the panel.
type column struct {
	header string
	rows   []*row
}

// DiagPanel is the four-column diagnostic status table. It holds a pure row
// model mutated only by Update on UI ticks; View renders it.
type DiagPanel struct {
	width  int
	height int

	isMetric bool

	// Actuator column
	torque    *row
	accel     *row
	gas       *row
	brake     *row
	longState *row

	// Vehicle column
	speed        *row
	steering     *row
	steerTorque  *row
	yawRate      *row
	brakePressed *row
	gasPressed   *row

	// Control column
	enabled    *row
	active     *row
	engageable *row

	// Panda column
	pandaConnected  *row
	pandaIgnition   *row
	controlsAllowed *row
	longitudinal    *row
	logging         *row

	columns [4]column
}

// NewDiagPanel builds the panel with every data row reading "N/A".
func NewDiagPanel() *DiagPanel {
	p := &DiagPanel{
		torque:    newRow("Torque"),
		accel:     newRow("Accel"),
		gas:       newRow("Gas"),
		brake:     newRow("Brake"),
		longState: newRow("Long State"),

		speed:        newRow("Speed"),
		steering:     newRow("Steering"),
		steerTorque:  newRow("Steer Torque"),
		yawRate:      newRow("Yaw Rate"),
		brakePressed: newRow("Brake"),
		gasPressed:   newRow("Gas"),

		enabled:    newRow("Enabled"),
		active:     newRow("Active"),
		engageable: newRow("Engageable"),

		pandaConnected:  newRow("Connected"),
		pandaIgnition:   newRow("Ignition"),
		controlsAllowed: newRow("Controls Allowed"),
		longitudinal:    newRow("Longitudinal"),
		logging:         newRow("Logging"),
	}

	p.columns = [4]column{
		{header: "ACTUATOR", rows: []*row{p.torque, p.accel, p.gas, p.brake, p.longState}},
		{header: "VEHICLE", rows: []*row{p.speed, p.steering, p.steerTorque, p.yawRate, p.brakePressed, p.gasPressed}},
		{header: "CONTROL", rows: []*row{p.enabled, p.active, p.engageable}},
		{header: "PANDA", rows: []*row{p.pandaConnected, p.pandaIgnition, p.controlsAllowed, p.longitudinal, p.logging}},
	}

	return p
}

// Resize sets the region the panel may fill.
func (p *DiagPanel) Resize(width, height int) {
	p.width = width
	p.height = height
}

// allRows returns every data row in column order. Tests use this to check
// the retain-on-stale contract.
func (p *DiagPanel) allRows() []*row {
	var rows []*row
	for _, col := range p.columns {
		rows = append(rows, col.rows...)
	}
	return rows
}

// Update pulls the latest messages off the bus and rewrites the row model.
// Each section updater is fault-isolated: a failure in one leaves its prior
// text in place and does not stop the others.
func (p *DiagPanel) Update(s ui.State) {
	if !s.Started || s.SM == nil {
		return
	}
	p.isMetric = s.IsMetric

	sections := []func(bus.Reader){
		p.updateActuator,
		p.updateVehicle,
		p.updateControl,
		p.updatePanda,
	}
	for _, section := range sections {
		runIsolated(section, s.SM)
	}
}

// runIsolated confines a panicking section to itself, so a decode failure
// on one topic cannot blank the other columns or abort the tick.
func runIsolated(section func(bus.Reader), sm bus.Reader) {
	defer func() {
		_ = recover()
	}()
	section(sm)
}

// topic reads a usable payload of type T, or reports false.
func topic[T any](sm bus.Reader, name string) (T, bool) {
	var zero T
	if !bus.Usable(sm, name) {
		return zero, false
	}
	payload, ok := sm.Get(name)
	if !ok {
		return zero, false
	}
	v, ok := payload.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

func (p *DiagPanel) updateActuator(sm bus.Reader) {
	cc, ok := topic[bus.CarControl](sm, bus.TopicCarControl)
	if !ok {
		return
	}
	a := cc.Actuators

	p.torque.set(fmt.Sprintf("%.2f", a.Torque), colorWhite)
	p.accel.set(fmt.Sprintf("%.2f m/s²", a.Accel), colorWhite)
	p.gas.set(fmt.Sprintf("%.2f", a.Gas), colorWhite)
	p.brake.set(fmt.Sprintf("%.2f", a.Brake), colorWhite)
	p.longState.set(a.LongControlState.String(), colorWhite)
}

func (p *DiagPanel) updateVehicle(sm bus.Reader) {
	cs, ok := topic[bus.CarState](sm, bus.TopicCarState)
	if !ok {
		return
	}

	p.speed.set(formatSpeed(cs.VEgo, p.isMetric), colorWhite)
	p.steering.set(fmt.Sprintf("%.1f°", cs.SteeringAngleDeg), colorWhite)
	p.steerTorque.set(fmt.Sprintf("%.1f", cs.SteeringTorque), colorWhite)
	p.yawRate.set(fmt.Sprintf("%.2f", cs.YawRate), colorWhite)
	p.brakePressed.set(pressed(cs.BrakePressed), colorWhite)
	p.gasPressed.set(pressed(cs.GasPressed), colorWhite)
}

func (p *DiagPanel) updateControl(sm bus.Reader) {
	ss, ok := topic[bus.SelfdriveState](sm, bus.TopicSelfdriveState)
	if !ok {
		return
	}

	p.enabled.set(yesNo(ss.Enabled), onColor(ss.Enabled, colorLime, colorWhite))
	p.active.set(yesNo(ss.Active), onColor(ss.Active, colorLime, colorWhite))
	p.engageable.set(yesNo(ss.Engageable), onColor(ss.Engageable, colorLime, colorOrange))
}

func (p *DiagPanel) updatePanda(sm bus.Reader) {
	states, ok := topic[[]bus.PandaState](sm, bus.TopicPandaStates)
	if !ok || len(states) == 0 {
		p.pandaConnected.set("No", colorWhite)
		p.pandaIgnition.set(notAvailable, colorWhite)
		p.controlsAllowed.set(notAvailable, colorWhite)
		p.longitudinal.set(notAvailable, colorWhite)
		p.logging.set(notAvailable, colorWhite)
		return
	}
	ps := states[0]

	p.pandaConnected.set("Yes", colorLime)
	if ps.IgnitionLine {
		p.pandaIgnition.set("On", colorLime)
	} else {
		p.pandaIgnition.set("Off", colorOrange)
	}
	if ps.ControlsAllowed {
		p.controlsAllowed.set("YES", colorLime)
	} else {
		p.controlsAllowed.set("NO", colorRed)
	}

	// Longitudinal source of truth is carParams, valid for every car brand.
	openpilotLong := false
	if cp, ok := topic[bus.CarParams](sm, bus.TopicCarParams); ok {
		openpilotLong = cp.OpenpilotLongitudinalControl
	}
	if openpilotLong {
		p.longitudinal.set("OPENPILOT", colorCyan)
	} else {
		p.longitudinal.set("STOCK", colorYellow)
	}

	loggingEnabled := false
	if tj, ok := topic[bus.TestJoystick](sm, bus.TopicTestJoystick); ok {
		loggingEnabled = tj.LoggingEnabled
	}
	if loggingEnabled {
		p.logging.set("ENABLED", colorLime)
	} else {
		p.logging.set("DISABLED", colorGray)
	}
}

func formatSpeed(vEgo float64, metric bool) string {
	if metric {
		return fmt.Sprintf("%.1f km/h", vEgo*msToKph)
	}
	return fmt.Sprintf("%.1f mph", vEgo*msToMph)
}

func pressed(b bool) string {
	if b {
		return "Pressed"
	}
	return "Released"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func onColor(b bool, on, off lipgloss.TerminalColor) lipgloss.TerminalColor {
	if b {
		return on
	}
	return off
}

// View renders the four equal-width columns inside the panel frame.
func (p *DiagPanel) View() string {
	width, height := p.width, p.height
	if width <= 0 || height <= 0 {
		width, height = fallbackPanelWidth, fallbackPanelHeight
	}

	// Interior space after border and padding.
	inner := width - 4
	colWidth := inner / len(p.columns)
	if colWidth < 12 {
		colWidth = 12
	}

	rendered := make([]string, 0, len(p.columns))
	for _, col := range p.columns {
		lines := []string{columnHeaderStyle.Width(colWidth - 1).Render(col.header)}
		for _, r := range col.rows {
			style := rowStyle.Foreground(r.color).Width(colWidth - 1)
			lines = append(lines, style.Render(r.Text()))
		}
		rendered = append(rendered, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return panelStyle.Width(width - 2).Render(body)
}
