package readings

import (
	"antsim.dev/internal/sim/ant"
	"antsim.dev/internal/sim/world"
)

// Source computes what an ant perceives. It is called once per ant per tick and must not
// mutate ws.
type Source interface {
	Read(a *ant.Ant, ws *world.State) ant.Reading
}

// Empty perceives nothing.
type Empty struct{}

func (Empty) Read(*ant.Ant, *world.State) ant.Reading { return ant.Reading{} }

// Func adapts a plain function to Source.
type Func func(a *ant.Ant, ws *world.State) ant.Reading

func (f Func) Read(a *ant.Ant, ws *world.State) ant.Reading { return f(a, ws) }
