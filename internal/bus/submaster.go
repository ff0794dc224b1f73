package bus

import (
	"fmt"
	"sync"
	"time"
)

// Reader is the read side of the bus. The UI consumes topics exclusively
// through this interface; tests substitute fakes.
type Reader interface {
	// Alive reports whether the topic's publisher is keeping up with its
	// expected rate.
	Alive(topic string) bool

	// Valid reports whether the most recent payload passed validity checks.
	Valid(topic string) bool

	// RcvFrame returns the count of payloads received for the topic.
	// Zero means nothing has ever arrived.
	RcvFrame(topic string) uint64

	// Get returns the most recent payload. ok is false until the first
	// payload arrives.
	Get(topic string) (payload any, ok bool)
}

// Usable reports whether a topic passes all three gates: alive, valid, and
// at least one payload received.
func Usable(r Reader, topic string) bool {
	return r.Alive(topic) && r.Valid(topic) && r.RcvFrame(topic) > 0
}

// TopicSpec declares a topic and its expected publish frequency in Hz.
// Freq 0 marks a static topic: once a payload arrives it never goes stale.
type TopicSpec struct {
	Name string
	Freq float64
}

// DefaultTopics lists every topic the onroad UI consumes, at the rates the
// publishers nominally run at.
func DefaultTopics() []TopicSpec {
	return []TopicSpec{
		{Name: TopicCarControl, Freq: 100},
		{Name: TopicCarState, Freq: 100},
		{Name: TopicSelfdriveState, Freq: 2},
		{Name: TopicPandaStates, Freq: 10},
		{Name: TopicCarParams, Freq: 0},
		{Name: TopicTestJoystick, Freq: 20},
	}
}

// aliveGrace is how many nominal publish intervals may elapse before a
// topic is considered stale.
const aliveGrace = 10

type topicState struct {
	freq     float64
	payload  any
	rcvFrame uint64
	rcvTime  time.Time
	valid    bool
}

// SubMaster holds the latest message per registered topic and answers the
// aliveness/validity/frame-count gates. All methods are safe for concurrent
// use; publishers and the UI loop share one instance.
type SubMaster struct {
	mu     sync.RWMutex
	topics map[string]*topicState
	now    func() time.Time
}

// NewSubMaster registers the given topics. Unregistered topics answer false
// to every gate.
func NewSubMaster(specs []TopicSpec) *SubMaster {
	sm := &SubMaster{
		topics: make(map[string]*topicState, len(specs)),
		now:    time.Now,
	}
	for _, spec := range specs {
		sm.topics[spec.Name] = &topicState{freq: spec.Freq}
	}
	return sm
}

// SetClock overrides the time source. Tests use this to simulate staleness.
func (sm *SubMaster) SetClock(now func() time.Time) {
	sm.mu.Lock()
	sm.now = now
	sm.mu.Unlock()
}

func (sm *SubMaster) Alive(topic string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ts, ok := sm.topics[topic]
	if !ok || ts.rcvFrame == 0 {
		return false
	}
	if ts.freq == 0 {
		// Static topic: alive forever once seen.
		return true
	}
	maxAge := time.Duration(float64(time.Second) / ts.freq * aliveGrace)
	return sm.now().Sub(ts.rcvTime) <= maxAge
}

func (sm *SubMaster) Valid(topic string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ts, ok := sm.topics[topic]
	return ok && ts.valid
}

func (sm *SubMaster) RcvFrame(topic string) uint64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ts, ok := sm.topics[topic]
	if !ok {
		return 0
	}
	return ts.rcvFrame
}

func (sm *SubMaster) Get(topic string) (any, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ts, ok := sm.topics[topic]
	if !ok || ts.rcvFrame == 0 {
		return nil, false
	}
	return ts.payload, true
}

func (sm *SubMaster) publish(topic string, payload any, valid bool) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ts, ok := sm.topics[topic]
	if !ok {
		return fmt.Errorf("publish %s: topic not registered", topic)
	}
	ts.payload = payload
	ts.rcvFrame++
	ts.rcvTime = sm.now()
	ts.valid = valid
	return nil
}

// PubMaster is the write side of the bus. The demo feed and tests publish
// through it; the UI never does.
type PubMaster struct {
	sm *SubMaster
}

// NewPubMaster returns a writer bound to sm.
func NewPubMaster(sm *SubMaster) *PubMaster {
	return &PubMaster{sm: sm}
}

// Publish stores payload as the latest valid message on topic.
func (pm *PubMaster) Publish(topic string, payload any) error {
	return pm.sm.publish(topic, payload, true)
}

// PublishInvalid stores payload but marks it as having failed validity
// checks, so readers gate it out.
func (pm *PubMaster) PublishInvalid(topic string, payload any) error {
	return pm.sm.publish(topic, payload, false)
}
