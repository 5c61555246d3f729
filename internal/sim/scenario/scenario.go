// Package scenario builds a populated simulator from tuning.
package scenario

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"antsim.dev/internal/sim/readings"
	"antsim.dev/internal/sim/simulator"
	"antsim.dev/internal/sim/tuning"
	"antsim.dev/internal/sim/world"
)

// Build creates a simulator with ants 1..Count at the configured start pose and every
// configured food group. The same tuning always yields the same initial state.
func Build(t tuning.Tuning, src readings.Source) (*simulator.Simulator, error) {
	sim := simulator.New(simulator.Config{
		Home:     mgl64.Vec2(t.Home),
		Ant:      t.AntParams(),
		Readings: src,
	})
	for _, g := range t.FoodGroups {
		sim.AddFoodGroup(mgl64.Vec2(g.Center), g.Radius)
	}
	start := world.Pose{Pos: mgl64.Vec2(t.Ants.StartPos), Heading: t.Ants.StartHeading}
	for id := uint64(1); id <= uint64(t.Ants.Count); id++ {
		if err := sim.AddAnt(id, start); err != nil {
			return nil, fmt.Errorf("add initial ant: %w", err)
		}
	}
	return sim, nil
}
