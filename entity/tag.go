package entity

import "strconv"

// Kind enum type.
type Kind int

// Kind values.
const (
	KindNone Kind = iota
	KindBall
	KindPaddle
	KindBrick
	KindLoseZone
	KindEdge // Arena boundary.
)

func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	case KindBrick:
		return "brick"
	case KindLoseZone:
		return "loseZone"
	case KindEdge:
		return "edge"
	default:
		return "none"
	}
}

// Tag identifies an entity in contact events.
// ID is the brick index for bricks, 0 for everything else.
type Tag struct {
	Kind Kind
	ID   int
}

// Fixed tags.
var (
	BallTag     = Tag{Kind: KindBall}
	PaddleTag   = Tag{Kind: KindPaddle}
	LoseZoneTag = Tag{Kind: KindLoseZone}
	EdgeTag     = Tag{Kind: KindEdge}
)

func BrickTag(i int) Tag { return Tag{Kind: KindBrick, ID: i} }

// Is reports whether the tag is of the given kind.
func (t Tag) Is(k Kind) bool { return t.Kind == k }

// String returns the display name, "brick3", "loseZone", etc.
// Only meant for logs, ids are never parsed back.
func (t Tag) String() string {
	if t.Kind == KindBrick {
		return "brick" + strconv.Itoa(t.ID)
	}
	return t.Kind.String()
}
