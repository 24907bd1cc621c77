// Package entity holds the plain data records shared by the game core,
// the physics world and the hosts.
package entity

import "math"

// Brick grid dimensions. This may not be changed, brick ids are [0, BrickCount).
const (
	BrickRows  = 3
	BrickCols  = 7
	BrickCount = BrickRows * BrickCols
)

// Vec is a 2D vector. The arena is y-up with the origin at the bottom-left corner.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{X: v.X * f, Y: v.Y * f} }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }

// Ball is the only moving entity.
type Ball struct {
	Position Vec
	Velocity Vec
	Radius   float64
	Mass     float64
}

func (*Ball) Tag() Tag { return BallTag }

// ApplyImpulse changes the velocity by j/Mass.
// A massless ball takes the impulse as a raw velocity change.
func (b *Ball) ApplyImpulse(j Vec) {
	if b.Mass <= 0 {
		b.Velocity = b.Velocity.Add(j)
		return
	}
	b.Velocity = b.Velocity.Add(j.Scale(1 / b.Mass))
}

// Paddle only ever moves along X.
type Paddle struct {
	Position Vec
	Size     Vec
}

func (*Paddle) Tag() Tag { return PaddleTag }

// MoveTo sets the paddle center X. Y is fixed.
func (p *Paddle) MoveTo(x float64) { p.Position.X = x }

type Brick struct {
	Index    int
	Position Vec
	Size     Vec
	Color    Color
}

func (b *Brick) Tag() Tag { return BrickTag(b.Index) }

// Row and Col of the brick in the grid, row 0 being the top one.
func (b *Brick) Row() int { return b.Index / BrickCols }
func (b *Brick) Col() int { return b.Index % BrickCols }

// LoseZone is the static strip at the bottom of the arena.
type LoseZone struct {
	Position Vec
	Size     Vec
}

func (LoseZone) Tag() Tag { return LoseZoneTag }
