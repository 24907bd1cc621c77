package game

import "go.creack.net/breakout/entity"

// Bricks is the round's brick collection, indexed by brick id.
// Removed bricks leave a nil slot so ids never shift.
type Bricks []*entity.Brick

// Get returns brick i, or nil if it is out of range or removed.
func (b Bricks) Get(i int) *entity.Brick {
	if i < 0 || i >= len(b) {
		return nil
	}
	return b[i]
}

// Remove drops brick i. Returns false if it was already gone.
func (b Bricks) Remove(i int) bool {
	if b.Get(i) == nil {
		return false
	}
	b[i] = nil
	return true
}

// Live returns the bricks still in play, in id order.
func (b Bricks) Live() []*entity.Brick {
	out := make([]*entity.Brick, 0, len(b))
	for _, elem := range b {
		if elem != nil {
			out = append(out, elem)
		}
	}
	return out
}

// newBricks lays out the grid. Rows missing from cfg.RowColors start green.
func newBricks(cfg Config) Bricks {
	size := entity.Vec{X: cfg.BrickWidth, Y: cfg.BrickHeight}
	bricks := make(Bricks, entity.BrickCount)
	for i := range bricks {
		color := entity.Green
		if row := i / entity.BrickCols; row < len(cfg.RowColors) && cfg.RowColors[row] != entity.ColorNone {
			color = cfg.RowColors[row]
		}
		bricks[i] = &entity.Brick{
			Index:    i,
			Position: cfg.BrickPosition(i),
			Size:     size,
			Color:    color,
		}
	}
	return bricks
}
