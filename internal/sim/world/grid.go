package world

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// CellSize is the edge length of one food grid cell.
const CellSize = 10.0

// Cell indexes the food grid. Cell (i, j) covers [i*CellSize, (i+1)*CellSize) on each axis.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Snap moves p to the center of its grid cell. Each axis is truncated toward zero to a
// multiple of CellSize and then pushed half a cell in the direction of the original sign.
// Snap(Snap(p)) == Snap(p).
func Snap(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{snapAxis(p[0]), snapAxis(p[1])}
}

func snapAxis(v float64) float64 {
	return math.Trunc(v/CellSize)*CellSize + math.Copysign(CellSize/2, v)
}

// CellAt returns the cell containing p.
func CellAt(p mgl64.Vec2) Cell {
	return Cell{
		X: int(math.Floor(p[0] / CellSize)),
		Y: int(math.Floor(p[1] / CellSize)),
	}
}

// CellCenter returns the world position of the center of c.
func CellCenter(c Cell) mgl64.Vec2 {
	return mgl64.Vec2{
		(float64(c.X) + 0.5) * CellSize,
		(float64(c.Y) + 0.5) * CellSize,
	}
}

// AddFoodGroup fills a disk of food cells around the cell center nearest to center. The radius
// is quantized down to a whole number of cells and a cell is included when its center lies
// within that radius (inclusive). It returns how many cells were newly added.
func (s *State) AddFoodGroup(center mgl64.Vec2, radius float64) int {
	c := Snap(center)
	r := math.Floor(radius/CellSize) * CellSize
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	origin := orb.Point{c[0], c[1]}
	bound := orb.Point{c[0] - r, c[1] - r}.Bound().Extend(orb.Point{c[0] + r, c[1] + r})
	r2 := r * r

	lo, hi := cellSpan(bound)
	added := 0
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			cell := Cell{X: x, Y: y}
			cc := CellCenter(cell)
			if planar.DistanceSquared(origin, orb.Point{cc[0], cc[1]}) > r2 {
				continue
			}
			if _, ok := s.Food[cell]; ok {
				continue
			}
			s.Food[cell] = struct{}{}
			added++
		}
	}
	return added
}

// cellSpan returns the lowest and highest cells touched by b.
func cellSpan(b orb.Bound) (lo, hi Cell) {
	return CellAt(mgl64.Vec2{b.Min.X(), b.Min.Y()}), CellAt(mgl64.Vec2{b.Max.X(), b.Max.Y()})
}

func (s *State) HasFood(c Cell) bool {
	_, ok := s.Food[c]
	return ok
}

// FoodCells returns the food set ordered by X then Y.
func (s *State) FoodCells() []Cell {
	out := make([]Cell, 0, len(s.Food))
	for c := range s.Food {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}
