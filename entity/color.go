package entity

import (
	"fmt"
	"strings"
)

// Color is the brick health. Each hit moves it one step towards ColorNone.
type Color int

// Color values, in degrade order.
const (
	ColorNone Color = iota // Destroyed.
	Green
	Blue
	Red
)

func (c Color) String() string {
	switch c {
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return "none"
	}
}

// Next returns the color after one more hit.
func (c Color) Next() Color {
	switch c {
	case Green:
		return Blue
	case Blue:
		return Red
	default:
		return ColorNone
	}
}

// HitsLeft returns how many hits a brick of this color takes before removal.
func (c Color) HitsLeft() int {
	switch c {
	case Green:
		return 3
	case Blue:
		return 2
	case Red:
		return 1
	default:
		return 0
	}
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	case "red":
		return Red, nil
	}
	return ColorNone, fmt.Errorf("unknown color %q, must be green, blue or red", s)
}

func (c Color) MarshalText() ([]byte, error) {
	if c == ColorNone {
		return nil, fmt.Errorf("invalid color %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
