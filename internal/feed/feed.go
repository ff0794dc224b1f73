// Package feed generates plausible telemetry on every topic the onroad UI
// consumes, standing in for a car (or a log replay) during demos and
// development.
package feed

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/driveline/onroad/internal/bus"
	"github.com/driveline/onroad/internal/ui"
)

// Base step period. Per-topic rates are decimated from this.
const stepInterval = 20 * time.Millisecond

// Steps between engage/disengage flips, roughly 15 s.
const engageCycleSteps = 750

// Feed drives the bus with synthetic messages until its context is
// canceled. It also owns the session-started flag on the sampler.
type Feed struct {
	pm      *bus.PubMaster
	sampler *ui.Sampler
}

// New returns a feed publishing through pm and flagging the session on
// sampler.
func New(pm *bus.PubMaster, sampler *ui.Sampler) *Feed {
	return &Feed{pm: pm, sampler: sampler}
}

// Run publishes until ctx is done. carParams goes out once up front; the
// periodic topics go out at their registered rates.
func (f *Feed) Run(ctx context.Context) error {
	if err := f.pm.Publish(bus.TopicCarParams, bus.CarParams{OpenpilotLongitudinalControl: true}); err != nil {
		return fmt.Errorf("publish carParams: %w", err)
	}

	f.sampler.SetStarted(true)
	defer f.sampler.SetStarted(false)

	ticker := time.NewTicker(stepInterval)
	defer ticker.Stop()

	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := f.step(step); err != nil {
			return err
		}
	}
}

func (f *Feed) step(step int) error {
	t := float64(step) * stepInterval.Seconds()
	engaged := (step/engageCycleSteps)%2 == 0

	// 50 Hz kinematics: cruise around 28 m/s with gentle weaving.
	cs := bus.CarState{
		VEgo:             28.0 + 3.0*math.Sin(t/7.0),
		SteeringAngleDeg: 8.0 * math.Sin(t/2.5),
		SteeringTorque:   0.4 * math.Sin(t/2.5),
		YawRate:          0.05 * math.Sin(t/2.5),
		BrakePressed:     !engaged && math.Sin(t) > 0.9,
		GasPressed:       false,
	}
	if err := f.pm.Publish(bus.TopicCarState, cs); err != nil {
		return fmt.Errorf("publish carState: %w", err)
	}

	longState := bus.LongControlOff
	if engaged {
		longState = bus.LongControlPID
	}
	cc := bus.CarControl{
		Enabled: engaged,
		Actuators: bus.Actuators{
			Torque:           0.3 * math.Sin(t/2.5),
			Accel:            0.8 * math.Sin(t/5.0),
			Gas:              math.Max(0, 0.2*math.Sin(t/5.0)),
			Brake:            math.Max(0, -0.2*math.Sin(t/5.0)),
			LongControlState: longState,
		},
	}
	if err := f.pm.Publish(bus.TopicCarControl, cc); err != nil {
		return fmt.Errorf("publish carControl: %w", err)
	}

	if step%5 == 0 {
		ps := []bus.PandaState{{IgnitionLine: true, ControlsAllowed: engaged}}
		if err := f.pm.Publish(bus.TopicPandaStates, ps); err != nil {
			return fmt.Errorf("publish pandaStates: %w", err)
		}
	}

	if step%3 == 0 {
		tj := bus.TestJoystick{Axes: []float64{0, 0}, LoggingEnabled: engaged}
		if err := f.pm.Publish(bus.TopicTestJoystick, tj); err != nil {
			return fmt.Errorf("publish testJoystick: %w", err)
		}
	}

	if step%25 == 0 {
		ss := bus.SelfdriveState{
			Enabled:    engaged,
			Active:     engaged,
			Engageable: true,
		}
		// Warn shortly before each disengage.
		remaining := engageCycleSteps - step%engageCycleSteps
		if engaged && remaining < 100 {
			ss.AlertText1 = "Disengaging soon"
			ss.AlertText2 = "Take over steering"
			ss.AlertStatus = bus.AlertStatusUserPrompt
		}
		if err := f.pm.Publish(bus.TopicSelfdriveState, ss); err != nil {
			return fmt.Errorf("publish selfdriveState: %w", err)
		}
	}

	return nil
}
