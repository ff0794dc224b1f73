// Package bus provides the in-process publish-subscribe message bus the
// onroad UI samples on every tick. Readers see the latest payload per topic
// behind three gates: the publisher is alive, the payload is valid, and at
// least one payload has ever been received.
package bus

// Topic names consumed by the UI.
const (
	TopicCarControl     = "carControl"
	TopicCarState       = "carState"
	TopicSelfdriveState = "selfdriveState"
	TopicPandaStates    = "pandaStates"
	TopicCarParams      = "carParams"
	TopicTestJoystick   = "testJoystick"
)

// LongControlState is the phase of the longitudinal control loop.
type LongControlState int

const (
	LongControlOff LongControlState = iota
	LongControlPID
	LongControlStopping
	LongControlStarting
)

func (s LongControlState) String() string {
	switch s {
	case LongControlOff:
		return "OFF"
	case LongControlPID:
		return "PID"
	case LongControlStopping:
		return "STOPPING"
	case LongControlStarting:
		return "STARTING"
	default:
		return "UNKNOWN"
	}
}

// Actuators is the actuator command block of a carControl message.
type Actuators struct {
	Torque           float64
	Accel            float64 // m/s²
	Gas              float64
	Brake            float64
	LongControlState LongControlState
}

// CarControl is the latest actuation command sent to the car.
type CarControl struct {
	Enabled   bool
	Actuators Actuators
}

// CarState carries measured vehicle kinematics.
type CarState struct {
	VEgo             float64 // m/s
	SteeringAngleDeg float64
	SteeringTorque   float64
	YawRate          float64 // rad/s
	BrakePressed     bool
	GasPressed       bool
}

// AlertStatus mirrors the severity ladder of selfdriveState alerts.
type AlertStatus int

const (
	AlertStatusNormal AlertStatus = iota
	AlertStatusUserPrompt
	AlertStatusCritical
)

// SelfdriveState is the high-level state of the driving-assistance loop.
type SelfdriveState struct {
	Enabled     bool
	Active      bool
	Engageable  bool
	AlertText1  string
	AlertText2  string
	AlertStatus AlertStatus
}

// PandaState is the reported state of one attached safety microcontroller.
type PandaState struct {
	IgnitionLine    bool
	ControlsAllowed bool
}

// CarParams holds static per-car configuration. Published once per session.
type CarParams struct {
	OpenpilotLongitudinalControl bool
}

// TestJoystick is the debug joystick topic; the UI only reads its
// logging flag.
type TestJoystick struct {
	Axes           []float64
	LoggingEnabled bool
}
