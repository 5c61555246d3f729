package simulator

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antsim.dev/internal/sim/ant"
	"antsim.dev/internal/sim/readings"
	"antsim.dev/internal/sim/world"
)

const deg45 = 0.78539816

func startPose() world.Pose {
	return world.Pose{Pos: mgl64.Vec2{10, 15}, Heading: deg45}
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})
	ws := s.World()
	require.Equal(t, []mgl64.Vec2{{0, 0}}, ws.Homes)
	assert.Empty(t, ws.Poses)
	assert.Empty(t, ws.Food)
	assert.Zero(t, s.Tick())
	assert.Zero(t, s.NumAnts())
}

func TestAddAnt_DuplicateRejected(t *testing.T) {
	s := New(Config{})
	require.NoError(t, s.AddAnt(7, startPose()))

	err := s.AddAnt(7, world.Pose{Pos: mgl64.Vec2{99, 99}, Heading: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))

	var dup *DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, uint64(7), dup.ID)

	assert.Equal(t, startPose(), s.World().Poses[7])
	assert.Equal(t, 1, s.NumAnts())
	assert.Len(t, s.World().Poses, 1)
}

func TestResolveMove_Straight(t *testing.T) {
	p := resolveMove(startPose(), mgl64.Vec2{1, 0})
	assert.InDelta(t, 10+math.Cos(deg45), p.Pos[0], 1e-9)
	assert.InDelta(t, 15+math.Sin(deg45), p.Pos[1], 1e-9)
	assert.InDelta(t, deg45, p.Heading, 1e-9)
}

func TestResolveMove_QuarterTurn(t *testing.T) {
	local := mgl64.Vec2{math.Cos(math.Pi / 2), math.Sin(math.Pi / 2)}
	p := resolveMove(startPose(), local)
	assert.InDelta(t, deg45+math.Pi/2, p.Heading, 1e-9)
	assert.InDelta(t, 10+math.Cos(deg45+math.Pi/2), p.Pos[0], 1e-9)
	assert.InDelta(t, 15+math.Sin(deg45+math.Pi/2), p.Pos[1], 1e-9)
}

func TestResolveMove_ZeroKeepsHeading(t *testing.T) {
	p := resolveMove(startPose(), mgl64.Vec2{})
	assert.Equal(t, startPose(), p)
}

func TestResolveMove_HeadingWraps(t *testing.T) {
	p := world.Pose{Heading: 3 * math.Pi / 4}
	p = resolveMove(p, mgl64.Vec2{0, 1})
	assert.InDelta(t, -3*math.Pi/4, p.Heading, 1e-9)
}

func TestStep_MovesEveryAntOneUnit(t *testing.T) {
	s := New(Config{})
	for id := uint64(1); id <= 10; id++ {
		require.NoError(t, s.AddAnt(id, startPose()))
	}
	s.Step()
	require.Equal(t, uint64(1), s.Tick())
	for id, p := range s.World().Poses {
		d := p.Pos.Sub(startPose().Pos).Len()
		assert.InDelta(t, 1.0, d, 1e-9, "ant %d", id)
	}
}

func TestStep_MatchesStandaloneAnt(t *testing.T) {
	s := New(Config{})
	require.NoError(t, s.AddAnt(5, startPose()))

	ref := ant.New(5)
	want := startPose()
	for i := 0; i < 100; i++ {
		for _, act := range ref.Decide(ant.Reading{}) {
			want = resolveMove(want, act.(ant.Move).Vec)
		}
		s.Step()
	}
	assert.Equal(t, want, s.World().Poses[5])
}

func TestStep_LaterAntsSeeEarlierMoves(t *testing.T) {
	var seen []world.Pose
	src := readings.Func(func(a *ant.Ant, ws *world.State) ant.Reading {
		if a.ID == 2 {
			seen = append(seen, ws.Poses[1])
		}
		return ant.Reading{}
	})
	s := New(Config{Readings: src})
	require.NoError(t, s.AddAnt(2, startPose()))
	require.NoError(t, s.AddAnt(1, startPose()))

	s.Step()
	require.Len(t, seen, 1)
	assert.NotEqual(t, startPose(), seen[0])
	assert.Equal(t, s.World().Poses[1], seen[0])
}

func TestStep_ReadingCalledOncePerAnt(t *testing.T) {
	calls := map[uint64]int{}
	src := readings.Func(func(a *ant.Ant, _ *world.State) ant.Reading {
		calls[a.ID]++
		return ant.Reading{}
	})
	s := New(Config{Readings: src})
	for _, id := range []uint64{9, 3, 6} {
		require.NoError(t, s.AddAnt(id, startPose()))
	}
	for i := 0; i < 4; i++ {
		s.Step()
	}
	assert.Equal(t, map[uint64]int{3: 4, 6: 4, 9: 4}, calls)
}

func TestAddAnt_KeepsOrderSorted(t *testing.T) {
	s := New(Config{})
	for _, id := range []uint64{50, 3, 99, 1, 42} {
		require.NoError(t, s.AddAnt(id, world.Pose{}))
	}
	assert.Equal(t, []uint64{1, 3, 42, 50, 99}, s.ids)
	assert.Equal(t, s.ids, s.World().AntIDs())
}

func TestStepOnce_Deterministic(t *testing.T) {
	build := func() *Simulator {
		s := New(Config{})
		s.AddFoodGroup(mgl64.Vec2{100, 100}, 40)
		for id := uint64(1); id <= 25; id++ {
			require.NoError(t, s.AddAnt(id, startPose()))
		}
		return s
	}
	s1, s2 := build(), build()
	for i := 0; i < 200; i++ {
		t1, d1 := s1.StepOnce()
		t2, d2 := s2.StepOnce()
		require.Equal(t, t1, t2)
		require.Equal(t, d1, d2, "digest mismatch at tick %d", t1)
	}
}

type recordingLogger struct{ entries []TickLogEntry }

func (r *recordingLogger) WriteTick(e TickLogEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func TestStep_WritesTickLog(t *testing.T) {
	s := New(Config{})
	rec := &recordingLogger{}
	s.SetTickLogger(rec)
	s.AddFoodGroup(mgl64.Vec2{}, 10)
	require.NoError(t, s.AddAnt(1, startPose()))

	s.Step()
	s.Step()
	require.Len(t, rec.entries, 2)
	assert.Equal(t, uint64(1), rec.entries[0].Tick)
	assert.Equal(t, uint64(2), rec.entries[1].Tick)
	assert.Equal(t, 1, rec.entries[1].Ants)
	assert.Equal(t, 5, rec.entries[1].FoodCells)
	assert.Equal(t, s.World().Digest(), rec.entries[1].Digest)
}

type unknownAction struct{ ant.Move }

func TestApply_MissingPosePanics(t *testing.T) {
	s := New(Config{})
	require.NoError(t, s.AddAnt(1, startPose()))
	delete(s.World().Poses, 1)
	assert.Panics(t, func() { s.Step() })
}

func TestApply_UnknownActionPanics(t *testing.T) {
	s := New(Config{})
	require.NoError(t, s.AddAnt(1, startPose()))
	assert.Panics(t, func() { s.apply(s.ants[1], unknownAction{}) })
}
