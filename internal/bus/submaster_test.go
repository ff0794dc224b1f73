package bus

import (
	"testing"
	"time"
)

func newTestBus() (*SubMaster, *PubMaster) {
	sm := NewSubMaster(DefaultTopics())
	return sm, NewPubMaster(sm)
}

func TestGatesBeforeFirstPayload(t *testing.T) {
	sm, _ := newTestBus()

	for _, spec := range DefaultTopics() {
		if sm.Alive(spec.Name) {
			t.Errorf("Alive(%s) = true before any payload", spec.Name)
		}
		if sm.Valid(spec.Name) {
			t.Errorf("Valid(%s) = true before any payload", spec.Name)
		}
		if got := sm.RcvFrame(spec.Name); got != 0 {
			t.Errorf("RcvFrame(%s) = %d, want 0", spec.Name, got)
		}
		if _, ok := sm.Get(spec.Name); ok {
			t.Errorf("Get(%s) ok before any payload", spec.Name)
		}
		if Usable(sm, spec.Name) {
			t.Errorf("Usable(%s) = true before any payload", spec.Name)
		}
	}
}

func TestPublishMakesTopicUsable(t *testing.T) {
	sm, pm := newTestBus()

	cs := CarState{VEgo: 12.5, SteeringAngleDeg: -3.0}
	if err := pm.Publish(TopicCarState, cs); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if !Usable(sm, TopicCarState) {
		t.Fatal("carState not usable after publish")
	}
	if got := sm.RcvFrame(TopicCarState); got != 1 {
		t.Errorf("RcvFrame = %d, want 1", got)
	}
	payload, ok := sm.Get(TopicCarState)
	if !ok {
		t.Fatal("Get not ok after publish")
	}
	if got := payload.(CarState); got != cs {
		t.Errorf("Get = %+v, want %+v", got, cs)
	}
}

func TestFrameCountIsMonotonic(t *testing.T) {
	sm, pm := newTestBus()

	for i := 1; i <= 5; i++ {
		if err := pm.Publish(TopicCarControl, CarControl{}); err != nil {
			t.Fatalf("Publish #%d: %v", i, err)
		}
		if got := sm.RcvFrame(TopicCarControl); got != uint64(i) {
			t.Errorf("RcvFrame after %d publishes = %d", i, got)
		}
	}
}

func TestInvalidPayloadGatesOut(t *testing.T) {
	sm, pm := newTestBus()

	if err := pm.PublishInvalid(TopicSelfdriveState, SelfdriveState{Enabled: true}); err != nil {
		t.Fatalf("PublishInvalid: %v", err)
	}

	if sm.Valid(TopicSelfdriveState) {
		t.Error("Valid = true for invalid payload")
	}
	if Usable(sm, TopicSelfdriveState) {
		t.Error("Usable = true for invalid payload")
	}
	// A good payload restores the topic.
	if err := pm.Publish(TopicSelfdriveState, SelfdriveState{Enabled: true}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !Usable(sm, TopicSelfdriveState) {
		t.Error("Usable = false after valid payload")
	}
}

func TestAliveGoesFalseWhenStale(t *testing.T) {
	sm, pm := newTestBus()

	now := time.Now()
	sm.SetClock(func() time.Time { return now })

	if err := pm.Publish(TopicCarState, CarState{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !sm.Alive(TopicCarState) {
		t.Fatal("freshly published topic not alive")
	}

	// carState runs at 100 Hz; ten intervals of grace is 100 ms.
	now = now.Add(99 * time.Millisecond)
	if !sm.Alive(TopicCarState) {
		t.Error("topic went stale within the grace window")
	}
	now = now.Add(2 * time.Second)
	if sm.Alive(TopicCarState) {
		t.Error("topic still alive long past the grace window")
	}
	if Usable(sm, TopicCarState) {
		t.Error("stale topic is usable")
	}
}

func TestStaticTopicNeverGoesStale(t *testing.T) {
	sm, pm := newTestBus()

	now := time.Now()
	sm.SetClock(func() time.Time { return now })

	if err := pm.Publish(TopicCarParams, CarParams{OpenpilotLongitudinalControl: true}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	now = now.Add(24 * time.Hour)
	if !sm.Alive(TopicCarParams) {
		t.Error("static carParams topic went stale")
	}
	if !Usable(sm, TopicCarParams) {
		t.Error("static carParams topic not usable")
	}
}

func TestUnregisteredTopic(t *testing.T) {
	sm, pm := newTestBus()

	if err := pm.Publish("noSuchTopic", 42); err == nil {
		t.Error("Publish to unregistered topic did not error")
	}
	if sm.Alive("noSuchTopic") || sm.Valid("noSuchTopic") || sm.RcvFrame("noSuchTopic") != 0 {
		t.Error("unregistered topic passes gates")
	}
}

func TestLongControlStateString(t *testing.T) {
	tests := []struct {
		state LongControlState
		want  string
	}{
		{LongControlOff, "OFF"},
		{LongControlPID, "PID"},
		{LongControlStopping, "STOPPING"},
		{LongControlStarting, "STARTING"},
		{LongControlState(9), "UNKNOWN"},
		{LongControlState(-1), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("LongControlState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
