package game

import "go.creack.net/breakout/entity"

type MessageType int

const (
	_ MessageType = iota
	MsgStart
	MsgRestart
	MsgLose
	MsgCleared
	MsgBrickHit
	MsgBrickDestroyed
	MsgNudge
)

func (mt MessageType) String() string {
	switch mt {
	case MsgStart:
		return "Start"
	case MsgRestart:
		return "Restart"
	case MsgLose:
		return "Lose"
	case MsgCleared:
		return "Cleared"
	case MsgBrickHit:
		return "Brick Hit"
	case MsgBrickDestroyed:
		return "Brick Destroyed"
	case MsgNudge:
		return "Nudge"
	default:
		return "Unknown"
	}
}

type Message struct {
	Type    MessageType
	Tag     entity.Tag // Entity the message is about, if any.
	Score   int        // Score when the message was emitted.
	Message string
}

func NewMessage(mt MessageType, tag entity.Tag, score int, msg string) Message {
	return Message{
		Type:    mt,
		Tag:     tag,
		Score:   score,
		Message: msg,
	}
}
