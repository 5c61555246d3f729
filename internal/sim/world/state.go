package world

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// HomeRadius is the drawn radius of a home location. The simulation itself does not use it.
const HomeRadius = 10.0

// Pose is the position and heading of one ant. Heading is in radians, 0 facing +X,
// counter-clockwise positive.
type Pose struct {
	Pos     mgl64.Vec2
	Heading float64
}

// State is the authoritative shared world data. It has no behavior of its own and no locking:
// the simulator is its only writer and embedders read it between steps.
type State struct {
	Homes []mgl64.Vec2
	Poses map[uint64]Pose
	Food  map[Cell]struct{}
}

func New(home mgl64.Vec2) *State {
	return &State{
		Homes: []mgl64.Vec2{home},
		Poses: map[uint64]Pose{},
		Food:  map[Cell]struct{}{},
	}
}

// AntIDs returns the ids present in the pose mapping in ascending order.
func (s *State) AntIDs() []uint64 {
	ids := make([]uint64, 0, len(s.Poses))
	for id := range s.Poses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
