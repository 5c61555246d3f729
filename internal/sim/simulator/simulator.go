package simulator

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"antsim.dev/internal/sim/ant"
	"antsim.dev/internal/sim/readings"
	"antsim.dev/internal/sim/world"
)

type Config struct {
	Home     mgl64.Vec2
	Ant      ant.Params
	Readings readings.Source
}

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

// TickLogEntry summarizes one completed step.
type TickLogEntry struct {
	Tick      uint64 `json:"tick"`
	Ants      int    `json:"ants"`
	FoodCells int    `json:"food_cells"`
	Digest    string `json:"digest"`
}

// Simulator owns the world state and the ants. It is single-threaded: every method must be
// called from the goroutine that drives it.
type Simulator struct {
	ws   *world.State
	ants map[uint64]*ant.Ant
	// ids is kept sorted; it fixes the per-tick processing order.
	ids []uint64

	params   ant.Params
	readings readings.Source

	tick uint64

	// Optional (may be nil). Implemented in internal/persistence/*.
	tickLogger TickLogger
}

func New(cfg Config) *Simulator {
	if cfg.Ant == (ant.Params{}) {
		cfg.Ant = ant.DefaultParams()
	}
	if cfg.Readings == nil {
		cfg.Readings = readings.Empty{}
	}
	return &Simulator{
		ws:       world.New(cfg.Home),
		ants:     map[uint64]*ant.Ant{},
		params:   cfg.Ant,
		readings: cfg.Readings,
	}
}

func (s *Simulator) SetTickLogger(l TickLogger) { s.tickLogger = l }

// World exposes the state for read-only use between steps.
func (s *Simulator) World() *world.State { return s.ws }

func (s *Simulator) Tick() uint64 { return s.tick }
func (s *Simulator) NumAnts() int { return len(s.ants) }

// AddAnt registers a new ant and its initial pose. A taken id yields *DuplicateIDError and
// leaves the simulation untouched.
func (s *Simulator) AddAnt(id uint64, pose world.Pose) error {
	if _, ok := s.ants[id]; ok {
		return &DuplicateIDError{ID: id}
	}
	s.ants[id] = ant.NewWithParams(id, s.params)
	s.ws.Poses[id] = pose

	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	s.ids = append(s.ids, 0)
	copy(s.ids[i+1:], s.ids[i:])
	s.ids[i] = id
	return nil
}

func (s *Simulator) AddFoodGroup(center mgl64.Vec2, radius float64) int {
	return s.ws.AddFoodGroup(center, radius)
}

// Step advances every ant by one tick in ascending id order. Actions are applied as soon as
// they are returned, so later ants observe earlier ants' moves within the same step.
func (s *Simulator) Step() {
	for _, id := range s.ids {
		a := s.ants[id]
		r := s.readings.Read(a, s.ws)
		for _, act := range a.Decide(r) {
			s.apply(a, act)
		}
	}
	s.tick++

	if s.tickLogger != nil {
		_ = s.tickLogger.WriteTick(TickLogEntry{
			Tick:      s.tick,
			Ants:      len(s.ants),
			FoodCells: len(s.ws.Food),
			Digest:    s.ws.Digest(),
		})
	}
}

// StepOnce steps and returns the number of the tick just completed with the resulting digest.
func (s *Simulator) StepOnce() (tick uint64, digest string) {
	s.Step()
	return s.tick, s.ws.Digest()
}

func (s *Simulator) apply(a *ant.Ant, act ant.Action) {
	switch act := act.(type) {
	case ant.Move:
		s.ws.Poses[a.ID] = resolveMove(s.pose(a.ID), act.Vec)
	default:
		panic(fmt.Sprintf("simulator: unhandled action %T", act))
	}
}

func (s *Simulator) pose(id uint64) world.Pose {
	p, ok := s.ws.Poses[id]
	if !ok {
		panic(fmt.Sprintf("simulator: ant %d has no pose", id))
	}
	return p
}

// resolveMove rotates a local displacement into the world frame and applies it. The heading
// follows the displacement; a zero displacement keeps it.
func resolveMove(p world.Pose, local mgl64.Vec2) world.Pose {
	d := mgl64.Rotate2D(p.Heading).Mul2x1(local)
	p.Pos = p.Pos.Add(d)
	if d[0] != 0 || d[1] != 0 {
		p.Heading = math.Atan2(d[1], d[0])
	}
	return p
}
