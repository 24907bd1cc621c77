// Package scene binds a game.Round to a physics.World.
//
// It mirrors the round entities into bodies, steps the world once per
// frame and feeds the contact-begin events back to the round.
package scene

import (
	"go.creack.net/breakout/entity"
	"go.creack.net/breakout/game"
	"go.creack.net/breakout/physics"
)

type Scene struct {
	Round *game.Round
	World *physics.World

	generation int
}

func New(r *game.Round) *Scene {
	s := &Scene{
		Round:      r,
		World:      physics.NewWorld(r.Config.Width, r.Config.Height),
		generation: -1,
	}
	s.sync()
	return s
}

// rebuild recreates every body from the round entities.
func (s *Scene) rebuild() {
	r := s.Round
	s.World.Clear()

	lz := physics.NewRect(entity.LoseZoneTag, r.LoseZone.Size)
	lz.Position = r.LoseZone.Position
	s.World.Add(lz)

	if r.Ball != nil {
		ball := physics.NewCircle(entity.BallTag, r.Ball.Radius, r.Ball.Mass).Elastic()
		ball.Precise = true
		ball.Position = r.Ball.Position
		ball.Velocity = r.Ball.Velocity
		s.World.Add(ball)
	}
	if r.Paddle != nil {
		pad := physics.NewRect(entity.PaddleTag, r.Paddle.Size)
		pad.Position = r.Paddle.Position
		s.World.Add(pad)
	}
	for _, elem := range r.Bricks.Live() {
		brick := physics.NewRect(elem.Tag(), elem.Size)
		brick.Position = elem.Position
		s.World.Add(brick)
	}
	s.generation = r.Generation
}

// sync brings the world in line with the round.
func (s *Scene) sync() {
	r := s.Round
	if r.Generation != s.generation {
		s.rebuild()
		return
	}
	for i := range entity.BrickCount {
		tag := entity.BrickTag(i)
		if r.Brick(i) == nil && s.World.Body(tag) != nil {
			s.World.Remove(tag)
		}
	}
	if r.Paddle != nil {
		if pad := s.World.Body(entity.PaddleTag); pad != nil {
			pad.Position = r.Paddle.Position
		}
	}
}

// Step runs one frame: tick the round, move the world and resolve the
// contacts. It returns the contacts that were forwarded to the round.
func (s *Scene) Step(dt float64) []physics.Contact {
	r := s.Round
	s.sync()
	r.OnTick(dt)
	s.sync()

	ball := s.World.Body(entity.BallTag)
	if ball != nil && r.Ball != nil {
		ball.Position = r.Ball.Position
		ball.Velocity = r.Ball.Velocity
	}

	contacts := s.World.Step(dt)

	if ball != nil && r.Ball != nil {
		r.Ball.Position = ball.Position
		r.Ball.Velocity = ball.Velocity
	}
	for _, c := range contacts {
		r.OnContact(c.A, c.B)
	}
	s.sync()
	return contacts
}

func (s *Scene) PointerDown(x float64) {
	s.Round.OnPointerDown(x)
	s.sync()
}

func (s *Scene) PointerMove(x float64) {
	s.Round.OnPointerMove(x)
	s.sync()
}
