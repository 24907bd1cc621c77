// Package physics is a small 2D collision world: an edge loop around the
// arena, static rectangles and dynamic circles. It reports contact-begin
// events by entity tag and knows nothing about the game rules.
package physics

import (
	"github.com/solarlune/resolv"

	"go.creack.net/breakout/entity"
)

// Shape enum type.
type Shape int

// Shape values.
const (
	_ Shape = iota
	Circle
	Rect
)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Rect:
		return "rect"
	default:
		return "unknown"
	}
}

type Body struct {
	Tag   entity.Tag
	Shape Shape

	Radius float64    // Circle only.
	Size   entity.Vec // Rect only.

	Position entity.Vec // Center.
	Velocity entity.Vec
	Mass     float64

	Dynamic           bool // Static bodies ignore forces and impulses.
	Restitution       float64
	Friction          float64
	LinearDamping     float64
	AffectedByGravity bool
	Precise           bool // Sub-step so the body never moves more than half its radius at once.

	collider *collider // Set while the body is in a world.
}

// half returns the half extents of the body's bounding box.
func (b *Body) half() entity.Vec {
	if b.Shape == Circle {
		return entity.Vec{X: b.Radius, Y: b.Radius}
	}
	return b.Size.Scale(0.5)
}

// newShape returns the narrow phase shape, placed at the body position.
func (b *Body) newShape() resolv.IShape {
	if b.Shape == Circle {
		return resolv.NewCircle(b.Position.X, b.Position.Y, b.Radius)
	}
	lo := b.Position.Sub(b.half())
	return resolv.NewRectangle(lo.X, lo.Y, b.Size.X, b.Size.Y)
}

// NewCircle returns a dynamic circle with the usual engine defaults.
func NewCircle(tag entity.Tag, radius, mass float64) *Body {
	return &Body{
		Tag:               tag,
		Shape:             Circle,
		Radius:            radius,
		Mass:              mass,
		Dynamic:           true,
		Restitution:       0.2,
		Friction:          0.2,
		LinearDamping:     0.1,
		AffectedByGravity: true,
	}
}

// NewRect returns a static rectangle.
func NewRect(tag entity.Tag, size entity.Vec) *Body {
	return &Body{
		Tag:         tag,
		Shape:       Rect,
		Size:        size,
		Restitution: 0.2,
		Friction:    0.2,
	}
}

// ApplyImpulse changes the velocity by j/Mass. No-op on static bodies.
func (b *Body) ApplyImpulse(j entity.Vec) {
	if !b.Dynamic {
		return
	}
	if b.Mass <= 0 {
		b.Velocity = b.Velocity.Add(j)
		return
	}
	b.Velocity = b.Velocity.Add(j.Scale(1 / b.Mass))
}

// Elastic sets the flags for a lossless, frictionless, gravity free body.
func (b *Body) Elastic() *Body {
	b.Restitution = 1
	b.Friction = 0
	b.LinearDamping = 0
	b.AffectedByGravity = false
	return b
}
