// Package ui defines the per-tick UIState snapshot the onroad window and
// its children consume, and the sampler that builds it from the bus.
package ui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/driveline/onroad/internal/bus"
)

// Status is the coarse state of the driving-assistance loop. It drives the
// window border color.
type Status int

const (
	StatusDisengaged Status = iota
	StatusEngaged
	StatusOverride
	StatusAlert
)

func (s Status) String() string {
	switch s {
	case StatusEngaged:
		return "engaged"
	case StatusOverride:
		return "override"
	case StatusAlert:
		return "alert"
	default:
		return "disengaged"
	}
}

var bgColors = map[Status]lipgloss.Color{
	StatusDisengaged: lipgloss.Color("#173349"),
	StatusEngaged:    lipgloss.Color("#178644"),
	StatusOverride:   lipgloss.Color("#919B95"),
	StatusAlert:      lipgloss.Color("#C92231"),
}

// BGColor returns the border color for the status.
func (s Status) BGColor() lipgloss.Color {
	if c, ok := bgColors[s]; ok {
		return c
	}
	return bgColors[StatusDisengaged]
}

// State is the read-only snapshot delivered with every UI tick.
type State struct {
	Started  bool
	IsMetric bool
	Status   Status
	SM       bus.Reader // may be nil
}

// Sampler assembles a State from the bus each tick. The started flag is
// owned by whoever runs the session (the demo feed, or a key binding in the
// TUI); everything else is derived from topics.
type Sampler struct {
	sm       bus.Reader
	isMetric bool

	mu      sync.Mutex
	started bool
}

// NewSampler returns a sampler reading from sm with the given unit
// preference.
func NewSampler(sm bus.Reader, isMetric bool) *Sampler {
	return &Sampler{sm: sm, isMetric: isMetric}
}

// SetStarted flips the session-active flag.
func (s *Sampler) SetStarted(started bool) {
	s.mu.Lock()
	s.started = started
	s.mu.Unlock()
}

// Started reports the session-active flag.
func (s *Sampler) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Snapshot builds the State for one tick.
func (s *Sampler) Snapshot() State {
	return State{
		Started:  s.Started(),
		IsMetric: s.isMetric,
		Status:   s.status(),
		SM:       s.sm,
	}
}

// status derives the border status from selfdriveState. Unusable topic
// reads as disengaged.
func (s *Sampler) status() Status {
	if s.sm == nil || !bus.Usable(s.sm, bus.TopicSelfdriveState) {
		return StatusDisengaged
	}
	payload, ok := s.sm.Get(bus.TopicSelfdriveState)
	if !ok {
		return StatusDisengaged
	}
	ss, ok := payload.(bus.SelfdriveState)
	if !ok {
		return StatusDisengaged
	}

	switch {
	case ss.AlertStatus == bus.AlertStatusCritical:
		return StatusAlert
	case ss.Enabled && !ss.Active:
		return StatusOverride
	case ss.Enabled:
		return StatusEngaged
	default:
		return StatusDisengaged
	}
}
