package game

// OnPointerDown starts a round on the first touch, then follows the pointer.
func (r *Round) OnPointerDown(x float64) {
	if !r.Started {
		r.Start()
	}
	r.OnPointerMove(x)
}

// OnPointerMove moves the paddle center to x. Not clamped.
func (r *Round) OnPointerMove(x float64) {
	if r.Paddle == nil {
		return
	}
	r.Paddle.MoveTo(x)
}
