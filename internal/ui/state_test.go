package ui

import (
	"testing"

	"github.com/driveline/onroad/internal/bus"
)

func newBus(t *testing.T) (*bus.SubMaster, *bus.PubMaster) {
	t.Helper()
	sm := bus.NewSubMaster(bus.DefaultTopics())
	return sm, bus.NewPubMaster(sm)
}

func TestStatusDerivation(t *testing.T) {
	tests := []struct {
		name string
		ss   bus.SelfdriveState
		want Status
	}{
		{"disengaged", bus.SelfdriveState{}, StatusDisengaged},
		{"engaged", bus.SelfdriveState{Enabled: true, Active: true}, StatusEngaged},
		{"override", bus.SelfdriveState{Enabled: true, Active: false}, StatusOverride},
		{"alert", bus.SelfdriveState{Enabled: true, Active: true, AlertStatus: bus.AlertStatusCritical}, StatusAlert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, pm := newBus(t)
			if err := pm.Publish(bus.TopicSelfdriveState, tt.ss); err != nil {
				t.Fatalf("Publish: %v", err)
			}
			s := NewSampler(sm, true)
			if got := s.Snapshot().Status; got != tt.want {
				t.Errorf("Status = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusWithoutTopic(t *testing.T) {
	sm, _ := newBus(t)
	s := NewSampler(sm, false)
	if got := s.Snapshot().Status; got != StatusDisengaged {
		t.Errorf("Status with no selfdriveState = %v, want disengaged", got)
	}
}

func TestSnapshotCarriesFlags(t *testing.T) {
	sm, _ := newBus(t)
	s := NewSampler(sm, true)

	snap := s.Snapshot()
	if snap.Started {
		t.Error("Started = true before SetStarted")
	}
	if !snap.IsMetric {
		t.Error("IsMetric not carried")
	}
	if snap.SM == nil {
		t.Error("SM handle missing")
	}

	s.SetStarted(true)
	if !s.Snapshot().Started {
		t.Error("Started = false after SetStarted(true)")
	}
}

func TestBGColorTableIsTotal(t *testing.T) {
	for _, st := range []Status{StatusDisengaged, StatusEngaged, StatusOverride, StatusAlert} {
		if st.BGColor() == "" {
			t.Errorf("no border color for status %v", st)
		}
	}
	// Unknown values fall back to the disengaged color.
	if Status(42).BGColor() != StatusDisengaged.BGColor() {
		t.Error("unknown status does not fall back to disengaged color")
	}
}
