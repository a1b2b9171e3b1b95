// Package playback exposes a composed path as a step-wise animation
// state machine, decoupled from any rendering frontend.
package playback

import (
	"collection-route-service/internal/domain"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State of the playback machine.
//
//	Idle -> Running -> {Paused <-> Running} -> Finished
//
// Reset returns to Idle from any state; from Finished only Idle is
// reachable.
type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var speedMultipliers = map[int]bool{1: true, 2: true, 4: true, 8: true, 16: true}

var (
	ErrNotIdle      = errors.New("playback: a path can only be loaded while idle or finished")
	ErrNoPath       = errors.New("playback: no path loaded")
	ErrInvalidSpeed = errors.New("playback: speed multiplier must be one of 1, 2, 4, 8, 16")
)

// Stepper advances a cursor through a composed path one node per tick.
// Methods are safe for concurrent use so a timer loop and a control
// surface (HTTP, UI) can share one instance.
type Stepper struct {
	mu sync.Mutex

	state  State
	path   []domain.PathNode
	cursor int
	speed  int

	baseInterval time.Duration
	activeFloor  domain.FloorTag

	// Invoked whenever the cursor crosses a floor boundary; this is
	// the only trigger for switching the active-floor view. Called
	// with the stepper's lock held, so it must not call back in.
	onFloorChange func(domain.FloorTag)
}

func NewStepper(baseInterval time.Duration, onFloorChange func(domain.FloorTag)) *Stepper {
	if baseInterval <= 0 {
		baseInterval = 125 * time.Millisecond // the classic 8 ticks per second
	}
	return &Stepper{
		state:         Idle,
		speed:         1,
		baseInterval:  baseInterval,
		onFloorChange: onFloorChange,
	}
}

// Load stores a freshly composed path. Only permitted while Idle or
// Finished; a running playback must be reset (cancelled) first.
func (s *Stepper) Load(path []domain.PathNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle && s.state != Finished {
		return ErrNotIdle
	}
	s.path = path
	s.cursor = 0
	s.state = Idle
	return nil
}

// Start begins playback from the first node.
func (s *Stepper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return fmt.Errorf("playback: cannot start from state %s", s.state)
	}
	if len(s.path) == 0 {
		return ErrNoPath
	}

	s.cursor = 0
	s.state = Running
	s.switchFloorLocked(s.path[0].Floor)

	if len(s.path) == 1 {
		s.state = Finished
	}
	return nil
}

// Pause suspends ticking without losing the cursor position.
func (s *Stepper) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running {
		return fmt.Errorf("playback: cannot pause from state %s", s.state)
	}
	s.state = Paused
	return nil
}

// Resume continues a paused playback.
func (s *Stepper) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Paused {
		return fmt.Errorf("playback: cannot resume from state %s", s.state)
	}
	s.state = Running
	return nil
}

// Reset cancels playback: cursor back to zero, stored path cleared,
// state Idle. Valid from every state.
func (s *Stepper) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Idle
	s.cursor = 0
	s.path = nil
	s.activeFloor = ""
}

// SetSpeed selects the playback speed multiplier.
func (s *Stepper) SetSpeed(mult int) error {
	if !speedMultipliers[mult] {
		return ErrInvalidSpeed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = mult
	return nil
}

// Interval returns the current time between ticks.
func (s *Stepper) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseInterval / time.Duration(s.speed)
}

// Tick advances the cursor by one node. A tick in any state but
// Running is ignored; reaching the last node transitions to Finished.
func (s *Stepper) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running {
		return
	}

	s.cursor++
	node := s.path[s.cursor]
	if node.Floor != s.activeFloor {
		s.switchFloorLocked(node.Floor)
	}

	if s.cursor == len(s.path)-1 {
		s.state = Finished
	}
}

// Current returns the node under the cursor.
func (s *Stepper) Current() (domain.PathNode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.path) == 0 {
		return domain.PathNode{}, false
	}
	return s.path[s.cursor], true
}

// State returns the current machine state.
func (s *Stepper) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ActiveFloor returns the floor the view should currently display.
func (s *Stepper) ActiveFloor() domain.FloorTag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeFloor
}

func (s *Stepper) switchFloorLocked(tag domain.FloorTag) {
	s.activeFloor = tag
	if s.onFloorChange != nil {
		s.onFloorChange(tag)
	}
}

// Run drives the stepper with a cooperative timer loop: one tick in
// flight at a time, re-armed from the current interval so speed changes
// take effect on the next tick. Returns when playback finishes, is
// reset, or the context is cancelled.
func (s *Stepper) Run(ctx context.Context) error {
	for {
		switch s.State() {
		case Finished, Idle:
			return nil
		case Paused:
			// Poll cheaply while suspended; Resume picks ticking back up.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.Interval()):
			}
		case Running:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.Interval()):
				s.Tick()
			}
		}
	}
}
