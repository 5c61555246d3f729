package main

import (
	"errors"

	"antsim.dev/internal/sim/simulator"
)

// tickSinks fans one tick entry out to several loggers.
type tickSinks []simulator.TickLogger

func (s tickSinks) WriteTick(e simulator.TickLogEntry) error {
	var errs []error
	for _, l := range s {
		if err := l.WriteTick(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// progressStepper steps the simulator, logs a summary every `every` ticks and calls done once
// maxSteps is reached.
type progressStepper struct {
	sim      *simulator.Simulator
	every    uint64
	maxSteps uint64
	done     func()
	logf     func(format string, args ...any)
}

func (p *progressStepper) Step() {
	if p.maxSteps != 0 && p.sim.Tick() >= p.maxSteps {
		return
	}
	p.sim.Step()
	tick := p.sim.Tick()
	if p.every != 0 && tick%p.every == 0 && p.logf != nil {
		ws := p.sim.World()
		p.logf("tick=%d ants=%d food_cells=%d digest=%s", tick, p.sim.NumAnts(), len(ws.Food), ws.Digest()[:12])
	}
	if p.maxSteps != 0 && tick >= p.maxSteps && p.done != nil {
		p.done()
	}
}
