// Package runner decides how often the simulation steps. It maps a speed setting to a number
// of update events per step and handles pause/resume; the simulator itself has no notion of
// wall-clock time.
package runner

import (
	"context"
	"sync"
	"time"
)

const (
	MinSpeed     = 1
	MaxSpeed     = 8
	DefaultSpeed = 3
)

// Stepper is the part of the simulator the runner drives.
type Stepper interface {
	Step()
}

// UpdatesPerStep maps a speed level to how many update events pass between steps. Unknown
// levels fall back to 120.
func UpdatesPerStep(speed int) uint64 {
	switch speed {
	case 1:
		return 240
	case 2:
		return 120
	case 3:
		return 60
	case 4:
		return 30
	case 5:
		return 15
	case 6:
		return 8
	case 7:
		return 4
	case 8:
		return 2
	default:
		return 120
	}
}

type Command int

const (
	CmdTogglePause Command = iota + 1
	CmdSpeedUp
	CmdSpeedDown
)

// Runner must be used from a single goroutine; other goroutines talk to a running Runner
// through Control().
type Runner struct {
	sim Stepper

	speed          int
	updatesPerStep uint64
	sinceStep      uint64
	paused         bool

	ctl      chan Command
	stop     chan struct{}
	stopOnce sync.Once
}

func New(sim Stepper, speed int) *Runner {
	if speed < MinSpeed || speed > MaxSpeed {
		speed = DefaultSpeed
	}
	return &Runner{
		sim:            sim,
		speed:          speed,
		updatesPerStep: UpdatesPerStep(speed),
		// The first update always steps.
		sinceStep: ^uint64(0),
		ctl:       make(chan Command, 16),
		stop:      make(chan struct{}),
	}
}

func (r *Runner) Control() chan<- Command { return r.ctl }

func (r *Runner) Speed() int   { return r.speed }
func (r *Runner) Paused() bool { return r.paused }

func (r *Runner) TogglePause() { r.paused = !r.paused }

func (r *Runner) SpeedUp()   { r.setSpeed(r.speed + 1) }
func (r *Runner) SpeedDown() { r.setSpeed(r.speed - 1) }

func (r *Runner) setSpeed(s int) {
	if s < MinSpeed {
		s = MinSpeed
	}
	if s > MaxSpeed {
		s = MaxSpeed
	}
	r.speed = s
	r.updatesPerStep = UpdatesPerStep(s)
}

// Update handles one update event and reports whether the simulation stepped. While paused
// the step is skipped but the counter still restarts.
func (r *Runner) Update() bool {
	if r.sinceStep < r.updatesPerStep {
		r.sinceStep++
		return false
	}
	r.sinceStep = 0
	if r.paused {
		return false
	}
	r.sim.Step()
	return true
}

func (r *Runner) apply(c Command) {
	switch c {
	case CmdTogglePause:
		r.TogglePause()
	case CmdSpeedUp:
		r.SpeedUp()
	case CmdSpeedDown:
		r.SpeedDown()
	}
}

// Run issues update events at hz until ctx is done or Stop is called.
func (r *Runner) Run(ctx context.Context, hz int) error {
	if hz <= 0 {
		hz = 120
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stop:
			return nil
		case c := <-r.ctl:
			r.apply(c)
		case <-ticker.C:
			r.Update()
		}
	}
}

// Stop ends Run. Calling it more than once is a no-op.
func (r *Runner) Stop() { r.stopOnce.Do(func() { close(r.stop) }) }
