package spectate

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"go.creack.net/breakout/entity"
	"go.creack.net/breakout/game"
)

// Frame types, in the "type" field of every frame.
const (
	FrameSnapshot = "snapshot"
	FrameMessage  = "message"
)

func vec(v entity.Vec) map[string]any {
	return map[string]any{"x": v.X, "y": v.Y}
}

func rect(pos, size entity.Vec) map[string]any {
	return map[string]any{"x": pos.X, "y": pos.Y, "w": size.X, "h": size.Y}
}

func encode(m map[string]any) ([]byte, error) {
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("new struct: %w", err)
	}
	buf, err := proto.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return buf, nil
}

// EncodeSnapshot returns the protobuf encoding of the round state.
func EncodeSnapshot(s game.Snapshot) ([]byte, error) {
	m := map[string]any{
		"type":        FrameSnapshot,
		"width":       s.Width,
		"height":      s.Height,
		"started":     s.Started,
		"score":       s.Score,
		"best":        s.Best,
		"live_bricks": s.LiveBricks,
		"generation":  s.Generation,
		"elapsed":     s.Elapsed,
		"prompt":      s.Prompt,
		"lose_zone":   rect(s.LoseZone.Position, s.LoseZone.Size),
		"ball":        nil,
		"paddle":      nil,
	}
	if s.Ball != nil {
		ball := vec(s.Ball.Position)
		ball["radius"] = s.Ball.Radius
		ball["velocity"] = vec(s.Ball.Velocity)
		m["ball"] = ball
	}
	if s.Paddle != nil {
		m["paddle"] = rect(s.Paddle.Position, s.Paddle.Size)
	}
	bricks := make([]any, 0, len(s.Bricks))
	for _, elem := range s.Bricks {
		b := rect(elem.Position, elem.Size)
		b["index"] = elem.Index
		b["color"] = elem.Color.String()
		bricks = append(bricks, b)
	}
	m["bricks"] = bricks

	return encode(m)
}

// EncodeMessage returns the protobuf encoding of a round event.
func EncodeMessage(msg game.Message) ([]byte, error) {
	return encode(map[string]any{
		"type":    FrameMessage,
		"kind":    msg.Type.String(),
		"tag":     msg.Tag.String(),
		"score":   msg.Score,
		"message": msg.Message,
	})
}

// DecodeFrame parses a frame produced by EncodeSnapshot or EncodeMessage.
func DecodeFrame(buf []byte) (*structpb.Struct, error) {
	st := &structpb.Struct{}
	if err := proto.Unmarshal(buf, st); err != nil {
		return nil, fmt.Errorf("unmarshal frame: %w", err)
	}
	return st, nil
}
