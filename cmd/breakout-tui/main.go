package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"go.creack.net/breakout/audio"
	"go.creack.net/breakout/cli"
	"go.creack.net/breakout/entity"
	"go.creack.net/breakout/game"
	"go.creack.net/breakout/scene"
)

var brickColors = map[entity.Color]tcell.Color{
	entity.Green: tcell.ColorGreen,
	entity.Blue:  tcell.ColorBlue,
	entity.Red:   tcell.ColorRed,
}

var msgColors = map[game.MessageType]tcell.Color{
	game.MsgStart:          tcell.ColorLightGreen,
	game.MsgRestart:        tcell.ColorYellow,
	game.MsgLose:           tcell.ColorRed,
	game.MsgCleared:        tcell.ColorGold,
	game.MsgBrickHit:       tcell.ColorLightBlue,
	game.MsgBrickDestroyed: tcell.ColorFuchsia,
	game.MsgNudge:          tcell.ColorDimGray,
}

const helpText = `Mouse: click to start, move to steer the paddle.
Left/Right: move the paddle.
Enter: start a round.
a: toggle the autopilot.
Space: pause, n: single step.
?: this help, q/Esc: quit.`

func NewGame(ctx context.Context, sc *scene.Scene, sound *audio.SoundManager) *Game {
	app := tview.NewApplication().EnableMouse(true)

	newTextView := func(text string) *tview.TextView {
		return tview.NewTextView().
			SetDynamicColors(true).
			SetText(text)
	}

	boardView := tview.NewBox()
	boardView.SetBorder(true).SetTitle("Breakout")

	logsView := newTextView("")
	logsView.SetTitle("Logs").SetBorder(true)
	logsView.ScrollToEnd()

	stateView := newTextView("")
	stateView.SetTitle("State").SetBorder(true)

	bricksView := tview.NewTable().SetBorders(false)
	bricksView.SetTitle("Bricks").SetBorder(true)

	rightPane := tview.NewFlex().SetDirection(tview.FlexRow)
	rightPane.
		AddItem(stateView, 0, 2, false).
		AddItem(bricksView, 0, 1, false).
		AddItem(logsView, 0, 3, false)

	flex := tview.NewFlex().
		AddItem(boardView, 0, 2, true).
		AddItem(rightPane, 0, 1, false)

	helpView := newTextView(helpText)
	helpView.SetTitle("Help").SetBorder(true)

	pages := tview.NewPages()
	pages.AddPage("main", flex, true, true)
	pages.AddPage("help", helpView, true, false)

	ctx, cancel := context.WithCancel(ctx)

	g := &Game{
		app:  app,
		root: pages,

		boardView:  boardView,
		stateView:  stateView,
		bricksView: bricksView,
		logsView:   logsView,

		scene: sc,
		sound: sound,

		ctx:    ctx,
		cancel: cancel,
	}
	boardView.SetDrawFunc(g.drawBoard)
	return g
}

// Game is the terminal host. Everything touching the scene runs on the
// tview event goroutine.
type Game struct {
	app  *tview.Application
	root *tview.Pages

	boardView  *tview.Box
	stateView  *tview.TextView
	bricksView *tview.Table
	logsView   *tview.TextView

	scene *scene.Scene
	pilot *scene.Autopilot
	sound *audio.SoundManager

	paused   bool
	nextStep bool

	ctx    context.Context
	cancel context.CancelFunc
}

func (g *Game) Stop() {
	g.app.Stop()
	g.cancel()
}

func (g *Game) togglePilot() {
	if g.pilot == nil {
		g.pilot = &scene.Autopilot{Scene: g.scene}
	} else {
		g.pilot = nil
	}
}

// arenaX converts a terminal column into an arena x.
func (g *Game) arenaX(col int) float64 {
	x, _, w, _ := g.boardView.GetInnerRect()
	if w <= 0 {
		return 0
	}
	return (float64(col-x) + 0.5) / float64(w) * g.scene.Round.Config.Width
}

func (g *Game) Init() {
	f := func(event *tcell.EventKey) *tcell.EventKey {
		curPage, _ := g.root.GetFrontPage()
		if curPage != "main" {
			switch event.Key() {
			case tcell.KeyCtrlC:
				g.Stop()
			default:
				g.root.SwitchToPage("main")
			}
			return nil
		}

		r := g.scene.Round
		step := r.Config.Width / 20
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			g.Stop()
			return nil
		case tcell.KeyEnter:
			x := r.Config.Width / 2
			if r.Paddle != nil {
				x = r.Paddle.Position.X
			}
			g.scene.PointerDown(x)
			return nil
		case tcell.KeyLeft, tcell.KeyRight:
			if r.Paddle == nil {
				return nil
			}
			if event.Key() == tcell.KeyLeft {
				step = -step
			}
			g.scene.PointerMove(r.Paddle.Position.X + step)
			return nil
		}
		switch event.Rune() {
		case 'n':
			g.nextStep = true
			return nil
		case ' ':
			g.paused = !g.paused
			return nil
		case 'a':
			g.togglePilot()
			return nil
		case '?':
			g.root.SwitchToPage("help")
			return nil
		case 'q':
			g.Stop()
			return nil
		}
		return event
	}
	g.root.SetInputCapture(f)

	g.boardView.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		col, _ := event.Position()
		switch action {
		case tview.MouseLeftDown:
			g.scene.PointerDown(g.arenaX(col))
			return action, nil
		case tview.MouseMove:
			g.scene.PointerMove(g.arenaX(col))
			return action, nil
		}
		return action, event
	})

	go func() {
		msgs := g.scene.Round.Messages
	loop:
		select {
		case msg := <-msgs:
			g.sound.Play(msg)
			g.app.QueueUpdateDraw(func() {
				// NOTE: tview can't reset the color with [:], use the tcell default.
				colorCode := "[" + tcell.ColorDefault.String() + ":::]"
				if c, ok := msgColors[msg.Type]; ok {
					colorCode = "[" + c.String() + ":::]"
				}
				fmt.Fprintf(g.logsView, "%s[%s] %s[:::]\n", colorCode, msg.Type, strings.TrimSuffix(msg.Message, "\n"))
			})
		case <-g.ctx.Done():
			return
		}
		goto loop
	}()
}

// Update steps the scene unless paused. Runs on the event goroutine.
func (g *Game) Update(dt float64) {
	if g.paused && !g.nextStep {
		return
	}
	g.nextStep = false

	if g.pilot != nil {
		g.pilot.Drive()
	}
	g.scene.Step(dt)
}

func (g *Game) drawBoard(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	// Inside the border.
	x, y, width, height = x+1, y+1, width-2, height-2
	if width <= 0 || height <= 0 {
		return x, y, width, height
	}

	r := g.scene.Round
	cfg := r.Config
	sx := float64(width) / cfg.Width
	sy := float64(height) / cfg.Height

	fill := func(pos, size entity.Vec, ch rune, style tcell.Style) {
		x0 := int((pos.X - size.X/2) * sx)
		x1 := max(int((pos.X+size.X/2)*sx), x0+1)
		y0 := int((cfg.Height - pos.Y - size.Y/2) * sy)
		y1 := max(int((cfg.Height-pos.Y+size.Y/2)*sy), y0+1)
		for row := max(y0, 0); row < min(y1, height); row++ {
			for col := max(x0, 0); col < min(x1, width); col++ {
				screen.SetContent(x+col, y+row, ch, nil, style)
			}
		}
	}

	fill(r.LoseZone.Position, r.LoseZone.Size, '░', tcell.StyleDefault.Foreground(tcell.ColorDarkRed))
	for _, elem := range r.Bricks.Live() {
		fill(elem.Position, elem.Size, '█', tcell.StyleDefault.Foreground(brickColors[elem.Color]))
	}
	if r.Paddle != nil {
		fill(r.Paddle.Position, r.Paddle.Size, '▀', tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	if r.Ball != nil {
		col := int(r.Ball.Position.X * sx)
		row := int((cfg.Height - r.Ball.Position.Y) * sy)
		if col >= 0 && col < width && row >= 0 && row < height {
			screen.SetContent(x+col, y+row, '●', nil, tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true))
		}
	}

	tview.Print(screen, r.ScoreText, x, y, width, tview.AlignCenter, tcell.ColorWhite)
	if r.Prompt != "" {
		tview.Print(screen, r.Prompt, x, y+height/2, width, tview.AlignCenter, tcell.ColorYellow)
	}

	return x, y, width, height
}

func (g *Game) drawState() {
	r := g.scene.Round
	g.stateView.Clear()

	fmt.Fprintf(g.stateView, "Score: %d\n", r.Score)
	fmt.Fprintf(g.stateView, "Best: %d\n", r.Best)
	fmt.Fprintf(g.stateView, "Bricks left: %d\n", r.LiveBricks)
	fmt.Fprintf(g.stateView, "Round: %d\n", r.Generation)
	fmt.Fprintf(g.stateView, "Elapsed: %.1fs\n", r.Elapsed)
	if r.Ball != nil {
		fmt.Fprintf(g.stateView, "Ball: %.0f,%.0f\n", r.Ball.Position.X, r.Ball.Position.Y)
		fmt.Fprintf(g.stateView, "Velocity: %.1f,%.1f\n", r.Ball.Velocity.X, r.Ball.Velocity.Y)
	}
	fmt.Fprintf(g.stateView, "Paused: %t\n", g.paused)
	fmt.Fprintf(g.stateView, "Autopilot: %t\n", g.pilot != nil)
}

func (g *Game) drawBricks() {
	g.bricksView.Clear()
	r := g.scene.Round
	for i := range entity.BrickCount {
		cell := tview.NewTableCell("··").SetAlign(tview.AlignCenter)
		if b := r.Brick(i); b != nil {
			cell.SetText(fmt.Sprintf("%d", b.Color.HitsLeft())).SetTextColor(brickColors[b.Color])
		} else {
			cell.SetTextColor(tcell.ColorDimGray).SetAttributes(tcell.AttrDim)
		}
		g.bricksView.SetCell(i/entity.BrickCols, i%entity.BrickCols, cell)
	}
}

func (g *Game) Draw() {
	g.drawState()
	g.drawBricks()
}

func main() {
	cfg, opts, err := cli.ParseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to parse CLI config: %s.", err)
	}
	if opts.DumpConfig {
		if err := cli.WriteConfig(os.Stdout, cfg); err != nil {
			log.Fatalf("Failed to dump config: %s.", err)
		}
		return
	}

	sound := audio.NewSoundManager()
	if opts.Sound {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the game runs without sound.
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	defer sound.Cleanup()

	g := NewGame(context.Background(), scene.New(game.NewRound(cfg, opts.Rand())), sound)
	if opts.Demo {
		g.togglePilot()
	}

	g.Init()
	go func() {
		period := time.Second / time.Duration(opts.TPS)
		dt := period.Seconds()
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		defer func() {
			if e := recover(); e != nil {
				g.app.Stop()
				log.Printf("Recovered from panic: %v", e)
				debug.PrintStack()
			}
		}()
	loop:
		g.app.QueueUpdateDraw(func() {
			g.Update(dt)
			g.Draw()
		})

		select {
		case <-ticker.C:
		case <-g.ctx.Done():
			return
		}
		goto loop
	}()

	if err := g.app.SetRoot(g.root, true).SetFocus(g.root).Run(); err != nil {
		log.Fatalf("Failed to run the terminal UI: %s.", err)
	}
	g.cancel()
	log.Printf("Done")
}
