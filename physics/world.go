package physics

import (
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"go.creack.net/breakout/entity"
)

// Contact is a contact-begin event.
// Normal points from B towards A.
type Contact struct {
	A, B   entity.Tag
	Normal entity.Vec
}

type pair struct {
	a, b entity.Tag
}

const (
	// margin is the thickness of the edge walls, laid just outside the arena.
	margin   = 64
	cellSize = 16
)

// World holds the bodies inside an edge loop of Width x Height, on a
// resolv space. Only dynamic circles move; they collide with the edges and
// the static rectangles, not with each other.
type World struct {
	Width, Height float64
	Gravity       entity.Vec

	EdgeRestitution float64
	EdgeFriction    float64

	space    *resolv.Space // Offset by margin so the edges have non-negative cells.
	seq      int
	bodies   []*Body
	touching map[pair]struct{}
}

func NewWorld(width, height float64) *World {
	w := &World{
		Width:           width,
		Height:          height,
		EdgeRestitution: 0.2,
		EdgeFriction:    0.2,
		space:           resolv.NewSpace(int(math.Ceil(width))+2*margin, int(math.Ceil(height))+2*margin, cellSize, cellSize),
		touching:        map[pair]struct{}{},
	}

	// Left, right, bottom, top. The side walls span the corners.
	for _, r := range [][4]float64{
		{-margin, -margin, margin, height + 2*margin},
		{width, -margin, margin, height + 2*margin},
		{0, -margin, width, margin},
		{0, height, width, margin},
	} {
		x, y, rw, rh := r[0], r[1], r[2], r[3]
		c := &collider{
			seq:    w.next(),
			tag:    entity.EdgeTag,
			shape:  resolv.NewRectangle(x, y, rw, rh),
			center: entity.Vec{X: x + rw/2, Y: y + rh/2},
			object: resolv.NewObject(x+margin, y+margin, rw, rh, entity.EdgeTag.String()),
		}
		c.object.Data = c
		w.space.Add(c.object)
	}
	return w
}

func (w *World) next() int {
	w.seq++
	return w.seq
}

// Add inserts the body, replacing any body with the same tag.
func (w *World) Add(b *Body) {
	w.Remove(b.Tag)
	c := &collider{
		seq:   w.next(),
		body:  b,
		tag:   b.Tag,
		shape: b.newShape(),
	}
	c.object = resolv.NewObject(0, 0, 0, 0, b.Tag.String())
	c.object.Data = c
	b.collider = c
	w.place(b)
	w.space.Add(c.object)
	w.bodies = append(w.bodies, b)
}

// place moves the body's object and shape to its current position.
func (w *World) place(b *Body) {
	c := b.collider
	half := b.half()
	lo := b.Position.Sub(half)
	c.object.Position = resolv.Vector{X: lo.X + margin, Y: lo.Y + margin}
	c.object.Size = resolv.Vector{X: 2 * half.X, Y: 2 * half.Y}
	if c.object.Space != nil {
		c.object.Update()
	}
	if b.Shape == Circle {
		c.shape.SetPosition(b.Position.X, b.Position.Y)
	} else {
		c.shape.SetPosition(lo.X, lo.Y)
	}
}

// Remove drops the body with the given tag, if any.
func (w *World) Remove(tag entity.Tag) {
	w.bodies = slices.DeleteFunc(w.bodies, func(b *Body) bool {
		if b.Tag != tag {
			return false
		}
		w.detach(b)
		return true
	})
	for k := range w.touching {
		if k.a == tag || k.b == tag {
			delete(w.touching, k)
		}
	}
}

func (w *World) detach(b *Body) {
	if b.collider == nil {
		return
	}
	w.space.Remove(b.collider.object)
	b.collider = nil
}

// Clear drops every body. The edges stay.
func (w *World) Clear() {
	for _, b := range w.bodies {
		w.detach(b)
	}
	w.bodies = nil
	clear(w.touching)
}

func (w *World) Body(tag entity.Tag) *Body {
	for _, b := range w.bodies {
		if b.Tag == tag {
			return b
		}
	}
	return nil
}

func (w *World) Len() int { return len(w.bodies) }

// candidates returns the colliders sharing a cell with b, in insertion order.
func (w *World) candidates(b *Body) []*collider {
	col := b.collider.object.Check(0, 0)
	if col == nil {
		return nil
	}
	out := make([]*collider, 0, len(col.Objects))
	for _, o := range col.Objects {
		c, ok := o.Data.(*collider)
		if !ok || c == b.collider || (c.body != nil && c.body.Dynamic) {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *collider) int { return a.seq - b.seq })
	return slices.Compact(out)
}

// Step advances the world by dt seconds and returns the pairs that started
// touching during the step, in discovery order.
func (w *World) Step(dt float64) []Contact {
	var contacts []Contact
	touching := map[pair]struct{}{}

	touch := func(a, b entity.Tag, normal entity.Vec) {
		k := pair{a: a, b: b}
		if _, ok := touching[k]; ok {
			return
		}
		touching[k] = struct{}{}
		if _, ok := w.touching[k]; ok {
			return
		}
		contacts = append(contacts, Contact{A: a, B: b, Normal: normal})
	}

	// Static bodies may have been moved by the caller.
	for _, b := range w.bodies {
		w.place(b)
	}

	for _, b := range w.bodies {
		if !b.Dynamic || b.Shape != Circle {
			continue
		}
		if b.AffectedByGravity {
			b.Velocity = b.Velocity.Add(w.Gravity.Scale(dt))
		}
		if b.LinearDamping > 0 {
			b.Velocity = b.Velocity.Scale(1 / (1 + dt*b.LinearDamping))
		}

		steps := 1
		if b.Precise && b.Radius > 0 {
			steps = max(1, int(math.Ceil(b.Velocity.Len()*dt/(b.Radius/2))))
		}
		h := dt / float64(steps)
		for range steps {
			b.Position = b.Position.Add(b.Velocity.Scale(h))
			w.place(b)

			for _, o := range w.candidates(b) {
				n, depth, ok := penetration(b.collider, o)
				if !ok {
					continue
				}
				restitution, friction := w.EdgeRestitution, w.EdgeFriction
				if o.body != nil {
					restitution, friction = o.body.Restitution, o.body.Friction
				}
				resolve(b, n, depth, mixRestitution(b.Restitution, restitution), mixFriction(b.Friction, friction))
				w.place(b)
				touch(b.Tag, o.tag, n)
			}
		}
	}

	w.touching = touching
	return contacts
}
