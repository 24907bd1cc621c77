package game

import (
	"math"

	"go.creack.net/breakout/entity"
)

// Axes reports which velocity axes actually got nudged.
type Axes struct {
	X, Y bool
}

// ApplySpeedFloor keeps the ball from creeping or locking on one axis.
// Each axis is checked on its own: when its speed is under floor, an impulse
// of draw(nudgeMax) (an integer in [-nudgeMax, nudgeMax]) is applied along it.
// There is no target speed, a zero draw leaves the axis as is until the next
// call and is not reported.
func ApplySpeedFloor(ball *entity.Ball, floor float64, nudgeMax int, draw func(n int) int) Axes {
	var out Axes
	if ball == nil {
		return out
	}
	if math.Abs(ball.Velocity.X) < floor {
		if j := draw(nudgeMax); j != 0 {
			ball.ApplyImpulse(entity.Vec{X: float64(j)})
			out.X = true
		}
	}
	if math.Abs(ball.Velocity.Y) < floor {
		if j := draw(nudgeMax); j != 0 {
			ball.ApplyImpulse(entity.Vec{Y: float64(j)})
			out.Y = true
		}
	}
	return out
}
