package ant

import "github.com/go-gl/mathgl/mgl64"

// Reading is what an ant perceives before it decides. It carries nothing yet.
type Reading struct{}

// Action is an intent emitted by an ant. The set of variants is closed to this package;
// the simulator resolves them with a type switch.
//
// Planned variants: pick up, drop, eat, feed, lay scent.
type Action interface {
	isAction()
}

// Move is a displacement in the ant's local frame (+X is straight ahead).
type Move struct {
	Vec mgl64.Vec2 `json:"vec"`
}

func (Move) isAction() {}
