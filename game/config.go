package game

import (
	"errors"
	"fmt"

	"go.creack.net/breakout/entity"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the round geometry and the gameplay tunables.
// Distances are in arena points, y-up.
type Config struct {
	Width  float64 `toml:"width"`  // Arena width.
	Height float64 `toml:"height"` // Arena height.

	BallRadius float64 `toml:"ball_radius"`
	BallMass   float64 `toml:"ball_mass"` // Converts impulses into velocity changes.

	PaddleWidth  float64 `toml:"paddle_width"` // 0 means Width/4.
	PaddleHeight float64 `toml:"paddle_height"`
	PaddleOffset float64 `toml:"paddle_offset"` // Distance between the arena bottom and the paddle center.

	BrickWidth   float64 `toml:"brick_width"`
	BrickHeight  float64 `toml:"brick_height"`
	BrickSpacing float64 `toml:"brick_spacing"` // Column pitch.
	BrickInset   float64 `toml:"brick_inset"`   // Center X of the first column.
	BrickTop     float64 `toml:"brick_top"`     // Distance between the arena top and the first row center.
	RowSpacing   float64 `toml:"row_spacing"`   // Row pitch.

	LoseZoneHeight float64 `toml:"lose_zone_height"`

	// Initial color of each row, top to bottom.
	RowColors []entity.Color `toml:"row_colors"`

	LaunchSpread int     `toml:"launch_spread"` // Initial dx impulse is drawn in [-LaunchSpread, LaunchSpread].
	LaunchDy     float64 `toml:"launch_dy"`

	SpeedFloor float64 `toml:"speed_floor"` // Axis speed under which the ball gets nudged.
	NudgeMax   int     `toml:"nudge_max"`   // Nudge impulse is drawn in [-NudgeMax, NudgeMax].

	MessageBuffer int `toml:"message_buffer"`
}

// ClassicRowColors is the all green grid.
func ClassicRowColors() []entity.Color {
	return []entity.Color{entity.Green, entity.Green, entity.Green}
}

// TieredRowColors is the green/blue/red grid, top to bottom.
func TieredRowColors() []entity.Color {
	return []entity.Color{entity.Green, entity.Blue, entity.Red}
}

func DefaultConfig() Config {
	return Config{
		Width:  420,
		Height: 720,

		BallRadius: 10,
		BallMass:   0.02,

		PaddleHeight: 20,
		PaddleOffset: 125,

		BrickWidth:   50,
		BrickHeight:  20,
		BrickSpacing: 55,
		BrickInset:   40,
		BrickTop:     50,
		RowSpacing:   50,

		LoseZoneHeight: 50,

		RowColors: ClassicRowColors(),

		LaunchSpread: 3,
		LaunchDy:     5,

		SpeedFloor: 10,
		NudgeMax:   3,

		MessageBuffer: 64,
	}
}

// PaddleSize returns the paddle size, deriving the width from the arena when unset.
func (c Config) PaddleSize() entity.Vec {
	w := c.PaddleWidth
	if w <= 0 {
		w = c.Width / 4
	}
	return entity.Vec{X: w, Y: c.PaddleHeight}
}

// BrickPosition returns the center of brick i.
func (c Config) BrickPosition(i int) entity.Vec {
	row, col := i/entity.BrickCols, i%entity.BrickCols
	return entity.Vec{
		X: c.BrickSpacing*float64(col) + c.BrickInset,
		Y: c.Height - c.BrickTop - c.RowSpacing*float64(row),
	}
}

func (c Config) Validate() error {
	for _, elem := range []struct {
		name  string
		value float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"ball radius", c.BallRadius},
		{"ball mass", c.BallMass},
		{"paddle height", c.PaddleHeight},
		{"brick width", c.BrickWidth},
		{"brick height", c.BrickHeight},
		{"lose zone height", c.LoseZoneHeight},
	} {
		if elem.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v: %w", elem.name, elem.value, ErrInvalidConfig)
		}
	}
	if c.PaddleWidth < 0 {
		return fmt.Errorf("paddle width must not be negative, got %v: %w", c.PaddleWidth, ErrInvalidConfig)
	}
	if len(c.RowColors) != entity.BrickRows {
		return fmt.Errorf("expected %d row colors, got %d: %w", entity.BrickRows, len(c.RowColors), ErrInvalidConfig)
	}
	for i, elem := range c.RowColors {
		if elem == entity.ColorNone {
			return fmt.Errorf("row %d has no color: %w", i, ErrInvalidConfig)
		}
	}
	if c.LaunchSpread < 0 || c.NudgeMax < 0 || c.SpeedFloor < 0 {
		return fmt.Errorf("launch spread, nudge max and speed floor must not be negative: %w", ErrInvalidConfig)
	}
	if c.MessageBuffer < 0 {
		return fmt.Errorf("message buffer must not be negative, got %d: %w", c.MessageBuffer, ErrInvalidConfig)
	}
	return nil
}
