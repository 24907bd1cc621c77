// Package game implements the breakout rules: round lifecycle, brick
// contacts, scoring and the ball anti-stall heuristic.
//
// The host drives a Round through OnTick, OnContact and the pointer
// handlers, all from the same goroutine, and reads the state back.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.creack.net/breakout/entity"
)

// Prompts displayed while no round is running.
const (
	PromptStart   = "Tap To Start"
	PromptRestart = "Tap To Restart"
)

// Rand is the random source used for the launch and the nudges.
// *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type Round struct {
	Config Config

	Started    bool
	Score      int
	Best       int // Best score since the process started.
	LiveBricks int // Bricks left in the current round.
	Elapsed    float64

	// Entities. Ball and Paddle are nil and Bricks empty while no round is running.
	Ball     *entity.Ball
	Paddle   *entity.Paddle
	Bricks   Bricks
	LoseZone entity.LoseZone

	// Generation changes every time the entities are created or destroyed
	// as a whole so hosts know when to rebuild their own view.
	Generation int

	Prompt    string
	ScoreText string

	// Messages is a channel where the round sends events.
	// Sends never block, messages are dropped when nobody keeps up.
	Messages chan Message

	rand Rand
}

// NewRound creates an idle round. A nil rnd uses a time seeded source.
// cfg is expected to pass Validate; NewRound does not check it, a short
// RowColors only leaves the missing rows green.
func NewRound(cfg Config, rnd Rand) *Round {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	r := &Round{
		Config: cfg,
		LoseZone: entity.LoseZone{
			Position: entity.Vec{X: cfg.Width / 2, Y: cfg.LoseZoneHeight / 2},
			Size:     entity.Vec{X: cfg.Width, Y: cfg.LoseZoneHeight},
		},
		Prompt:   PromptStart,
		Messages: make(chan Message, cfg.MessageBuffer),
		rand:     rnd,
	}
	r.refreshScore()
	return r
}

// randRange returns an integer in [-n, n].
func (r *Round) randRange(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rand.IntN(2*n+1) - n
}

func (r *Round) emit(mt MessageType, tag entity.Tag, msg string) {
	select {
	case r.Messages <- NewMessage(mt, tag, r.Score, msg):
	default:
	}
}

func (r *Round) refreshScore() {
	r.ScoreText = fmt.Sprintf("Score: %d", r.Score)
}

// Start creates the entities and launches the ball.
func (r *Round) Start() {
	cfg := r.Config

	r.Ball = &entity.Ball{
		Position: entity.Vec{X: cfg.Width / 2, Y: cfg.Height / 2},
		Radius:   cfg.BallRadius,
		Mass:     cfg.BallMass,
	}
	r.Paddle = &entity.Paddle{
		Position: entity.Vec{X: cfg.Width / 2, Y: cfg.PaddleOffset},
		Size:     cfg.PaddleSize(),
	}
	r.Bricks = newBricks(cfg)
	r.LiveBricks = entity.BrickCount
	r.Score = 0
	r.Elapsed = 0
	r.Started = true
	r.Prompt = ""
	r.Generation++
	r.refreshScore()

	r.Ball.ApplyImpulse(entity.Vec{X: float64(r.randRange(cfg.LaunchSpread)), Y: cfg.LaunchDy})
	r.emit(MsgStart, entity.BallTag, fmt.Sprintf("Round %d started", r.Generation))
}

// Restart stops the round and destroys the transient entities.
// The lose zone stays. No-op when nothing is running.
func (r *Round) Restart() {
	if !r.Started && r.Ball == nil {
		return
	}
	r.Started = false
	r.Ball = nil
	r.Paddle = nil
	r.Bricks = nil
	r.LiveBricks = 0
	r.Best = max(r.Best, r.Score)
	r.Prompt = PromptRestart
	r.Generation++
	r.emit(MsgRestart, entity.Tag{}, fmt.Sprintf("Round over, score %d (best %d)", r.Score, r.Best))
}

// OnTick runs once per frame.
func (r *Round) OnTick(dt float64) {
	if r.Started {
		// Contacts from the last frame may have cleared the grid.
		if r.LiveBricks <= 0 {
			r.emit(MsgCleared, entity.Tag{}, "All bricks cleared")
			r.Restart()
		} else {
			r.Elapsed += dt
			nudged := ApplySpeedFloor(r.Ball, r.Config.SpeedFloor, r.Config.NudgeMax, r.randRange)
			if nudged.X || nudged.Y {
				r.emit(MsgNudge, entity.BallTag, fmt.Sprintf("Nudged ball (x: %t, y: %t), velocity %.1f,%.1f", nudged.X, nudged.Y, r.Ball.Velocity.X, r.Ball.Velocity.Y))
			}
		}
	}
	r.refreshScore()
}

// Brick returns brick i, nil if it is not in play.
func (r *Round) Brick(i int) *entity.Brick {
	return r.Bricks.Get(i)
}

// Snapshot is a copy of the round state, safe to hand to another goroutine.
type Snapshot struct {
	Width, Height float64

	Started    bool
	Score      int
	Best       int
	LiveBricks int
	Generation int
	Elapsed    float64

	Prompt    string
	ScoreText string

	Ball     *entity.Ball
	Paddle   *entity.Paddle
	Bricks   []entity.Brick
	LoseZone entity.LoseZone
}

func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Width:      r.Config.Width,
		Height:     r.Config.Height,
		Started:    r.Started,
		Score:      r.Score,
		Best:       r.Best,
		LiveBricks: r.LiveBricks,
		Generation: r.Generation,
		Elapsed:    r.Elapsed,
		Prompt:     r.Prompt,
		ScoreText:  r.ScoreText,
		LoseZone:   r.LoseZone,
	}
	if r.Ball != nil {
		b := *r.Ball
		s.Ball = &b
	}
	if r.Paddle != nil {
		p := *r.Paddle
		s.Paddle = &p
	}
	for _, elem := range r.Bricks.Live() {
		s.Bricks = append(s.Bricks, *elem)
	}
	return s
}
