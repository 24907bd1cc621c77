package scene

// Autopilot plays the game: it taps to start when no round is running and
// keeps the paddle under the ball.
type Autopilot struct {
	Scene *Scene
}

// Drive is called once per frame, before Scene.Step.
func (a *Autopilot) Drive() {
	r := a.Scene.Round
	if !r.Started {
		a.Scene.PointerDown(r.Config.Width / 2)
		return
	}
	if r.Ball != nil {
		a.Scene.PointerMove(r.Ball.Position.X)
	}
}
