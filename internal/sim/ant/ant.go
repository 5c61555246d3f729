package ant

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// seedStream decorrelates the second PCG word from the id.
const seedStream = 0x9E3779B97F4A7C15

const (
	// DefaultPersistMax bounds how many ticks an ant keeps its heading before turning again.
	DefaultPersistMax = 5
	// DefaultTurnStdDev is the spread of a wander turn, in radians.
	DefaultTurnStdDev = math.Pi / 4
)

type Params struct {
	PersistMax int
	TurnStdDev float64
}

func DefaultParams() Params {
	return Params{PersistMax: DefaultPersistMax, TurnStdDev: DefaultTurnStdDev}
}

// Ant owns behavior only. Its pose lives in the world state, joined by ID.
type Ant struct {
	ID uint64

	rng        *rand.Rand
	turn       normal
	persistMax int
	wander     wander
}

func New(id uint64) *Ant {
	return NewWithParams(id, DefaultParams())
}

// NewWithParams seeds the ant's private random stream from all 64 bits of id, so equal ids
// replay equal behavior and distinct ids never share a stream. Invalid params panic.
func NewWithParams(id uint64, p Params) *Ant {
	if p.PersistMax < 0 {
		panic(fmt.Sprintf("ant: persist max must be >= 0, got %d", p.PersistMax))
	}
	a := &Ant{
		ID:         id,
		rng:        rand.New(rand.NewPCG(id, id^seedStream)),
		turn:       newNormal(0, p.TurnStdDev),
		persistMax: p.PersistMax,
	}
	a.wander = wander{remaining: a.drawPersist()}
	return a
}

// Decide returns this tick's actions. The reading is accepted but not yet used.
func (a *Ant) Decide(_ Reading) []Action {
	var offset float64
	a.wander, offset = a.wander.advance(a)
	return []Action{Move{Vec: fromAngle(offset)}}
}

// Remaining reports how many more ticks the ant will go straight before sampling a turn.
func (a *Ant) Remaining() int { return a.wander.remaining }

func (a *Ant) drawTurn() float64 { return a.turn.sample(a.rng) }

// drawPersist returns a fresh persistence count in [0, persistMax].
func (a *Ant) drawPersist() int { return a.rng.IntN(a.persistMax + 1) }

func fromAngle(rad float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(rad), math.Sin(rad)}
}
