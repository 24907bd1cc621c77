package game

import (
	"fmt"

	"go.creack.net/breakout/entity"
)

// OnContact resolves a contact-begin event between two entities.
// Both sides are checked, the host may deliver the pair in any order.
func (r *Round) OnContact(a, b entity.Tag) {
	for _, pair := range [2][2]entity.Tag{{a, b}, {b, a}} {
		self, other := pair[0], pair[1]
		switch self.Kind {
		case entity.KindBrick:
			if other.Is(entity.KindBall) {
				r.OnBrickHit(self.ID)
			}
		case entity.KindLoseZone:
			r.OnLoseZoneHit()
			return
		}
	}
}

// OnBrickHit degrades brick i: green -> blue -> red -> removed.
// Every hit scores one point. Hits on bricks no longer in play are ignored.
func (r *Round) OnBrickHit(i int) {
	brick := r.Bricks.Get(i)
	if brick == nil {
		return
	}

	r.Score++
	switch brick.Color {
	case entity.Green, entity.Blue:
		prev := brick.Color
		brick.Color = brick.Color.Next()
		r.emit(MsgBrickHit, brick.Tag(), fmt.Sprintf("Brick %d %s -> %s", i, prev, brick.Color))
	default:
		r.Bricks.Remove(i)
		r.LiveBricks--
		r.emit(MsgBrickDestroyed, brick.Tag(), fmt.Sprintf("Brick %d destroyed, %d left", i, r.LiveBricks))
	}
}

// OnLoseZoneHit ends the round. Safe to call when it already ended.
func (r *Round) OnLoseZoneHit() {
	if r.Started {
		r.emit(MsgLose, entity.LoseZoneTag, "Ball lost")
	}
	r.Restart()
}
