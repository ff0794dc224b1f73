package feed

import (
	"testing"

	"github.com/driveline/onroad/internal/bus"
	"github.com/driveline/onroad/internal/ui"
)

func TestStepPublishesAllTopics(t *testing.T) {
	sm := bus.NewSubMaster(bus.DefaultTopics())
	pm := bus.NewPubMaster(sm)
	f := New(pm, ui.NewSampler(sm, true))

	if err := pm.Publish(bus.TopicCarParams, bus.CarParams{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	// Step 0 hits every decimation slot.
	if err := f.step(0); err != nil {
		t.Fatalf("step: %v", err)
	}

	for _, topic := range []string{
		bus.TopicCarState,
		bus.TopicCarControl,
		bus.TopicPandaStates,
		bus.TopicTestJoystick,
		bus.TopicSelfdriveState,
		bus.TopicCarParams,
	} {
		if !bus.Usable(sm, topic) {
			t.Errorf("topic %s not usable after step 0", topic)
		}
	}
}

func TestStepDecimatesSlowTopics(t *testing.T) {
	sm := bus.NewSubMaster(bus.DefaultTopics())
	pm := bus.NewPubMaster(sm)
	f := New(pm, ui.NewSampler(sm, true))

	for step := 0; step < 25; step++ {
		if err := f.step(step); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}

	if got := sm.RcvFrame(bus.TopicCarState); got != 25 {
		t.Errorf("carState frames = %d, want 25", got)
	}
	if got := sm.RcvFrame(bus.TopicPandaStates); got != 5 {
		t.Errorf("pandaStates frames = %d, want 5", got)
	}
	if got := sm.RcvFrame(bus.TopicSelfdriveState); got != 1 {
		t.Errorf("selfdriveState frames = %d, want 1", got)
	}
}

func TestEngagedValuesAreSane(t *testing.T) {
	sm := bus.NewSubMaster(bus.DefaultTopics())
	pm := bus.NewPubMaster(sm)
	f := New(pm, ui.NewSampler(sm, true))

	if err := f.step(0); err != nil {
		t.Fatalf("step: %v", err)
	}

	payload, ok := sm.Get(bus.TopicCarState)
	if !ok {
		t.Fatal("no carState payload")
	}
	cs := payload.(bus.CarState)
	if cs.VEgo < 20 || cs.VEgo > 35 {
		t.Errorf("VEgo = %v, outside plausible cruise band", cs.VEgo)
	}

	payload, ok = sm.Get(bus.TopicCarControl)
	if !ok {
		t.Fatal("no carControl payload")
	}
	cc := payload.(bus.CarControl)
	if !cc.Enabled {
		t.Error("feed starts disengaged, want engaged on step 0")
	}
	if cc.Actuators.LongControlState != bus.LongControlPID {
		t.Errorf("long state = %v while engaged, want PID", cc.Actuators.LongControlState)
	}
}
