package ant

import (
	"fmt"
	"math"
	"math/rand/v2"
)

type sampler interface {
	drawTurn() float64
	drawPersist() int
}

// wander is the persistence state: coasting while remaining > 0, resampling at 0.
type wander struct {
	remaining int
}

// advance returns the next state and the turn offset for this tick.
func (w wander) advance(s sampler) (wander, float64) {
	if w.remaining == 0 {
		turn := s.drawTurn()
		return wander{remaining: s.drawPersist()}, turn
	}
	return wander{remaining: w.remaining - 1}, 0
}

type normal struct {
	mean, stddev float64
}

func newNormal(mean, stddev float64) normal {
	if !(stddev > 0) || math.IsInf(stddev, 0) || math.IsNaN(mean) || math.IsInf(mean, 0) {
		panic(fmt.Sprintf("ant: invalid normal distribution mean=%v stddev=%v", mean, stddev))
	}
	return normal{mean: mean, stddev: stddev}
}

func (n normal) sample(rng *rand.Rand) float64 {
	return rng.NormFloat64()*n.stddev + n.mean
}
