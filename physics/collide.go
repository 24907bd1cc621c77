package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"go.creack.net/breakout/entity"
)

// collider links a resolv object back to its body. Edges have no body.
type collider struct {
	seq    int // Insertion order, contacts are reported in it.
	body   *Body
	tag    entity.Tag
	object *resolv.Object
	shape  resolv.IShape
	center entity.Vec // Edges only, bodies use their position.
}

func (c *collider) position() entity.Vec {
	if c.body != nil {
		return c.body.Position
	}
	return c.center
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// penetration runs the resolv intersection test of the dynamic collider a
// against b. It returns the separation normal (pointing towards a) and the
// depth, from the minimum translation vector.
func penetration(a, b *collider) (normal entity.Vec, depth float64, ok bool) {
	cs := a.shape.Intersection(0, 0, b.shape)
	if cs == nil {
		return entity.Vec{}, 0, false
	}
	mtv := entity.Vec{X: cs.MTV.X, Y: cs.MTV.Y}
	depth = mtv.Len()
	if depth == 0 {
		return entity.Vec{}, 0, false
	}
	normal = mtv.Scale(1 / depth)
	// Always push a away from b.
	if normal.Dot(a.position().Sub(b.position())) < 0 {
		normal = normal.Scale(-1)
	}
	return normal, depth, true
}

// resolve pushes b out along normal and reflects the approaching part of
// its velocity. Tangential velocity is scaled down by friction.
func resolve(b *Body, normal entity.Vec, depth, restitution, friction float64) {
	b.Position = b.Position.Add(normal.Scale(depth))
	vn := b.Velocity.Dot(normal)
	if vn >= 0 {
		return
	}
	tangent := b.Velocity.Sub(normal.Scale(vn))
	tangent = tangent.Scale(1 - clamp(friction, 0, 1))
	b.Velocity = tangent.Sub(normal.Scale(vn * restitution))
}

// Material mixing.
func mixRestitution(a, b float64) float64 { return math.Max(a, b) }
func mixFriction(a, b float64) float64    { return math.Sqrt(a * b) }
