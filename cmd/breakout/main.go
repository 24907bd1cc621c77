package main

import (
	"errors"
	"flag"
	"image/color"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"go.creack.net/breakout/cli"
	"go.creack.net/breakout/entity"
	"go.creack.net/breakout/game"
	"go.creack.net/breakout/scene"
)

var fontFace text.Face = text.NewGoXFace(bitmapfont.Face)

var brickColors = map[entity.Color]color.Color{
	entity.Green: colornames.Limegreen,
	entity.Blue:  colornames.Royalblue,
	entity.Red:   colornames.Crimson,
}

// Game implements ebiten.Game interface.
type Game struct {
	scene *scene.Scene
	pilot *scene.Autopilot // Nil unless the autopilot plays.

	ui          *ebitenui.UI
	scoreLabel  *widget.Text
	promptLabel *widget.Text
}

func NewGame(sc *scene.Scene, demo bool) *Game {
	g := &Game{scene: sc}
	if demo {
		g.pilot = &scene.Autopilot{Scene: sc}
	}

	g.scoreLabel = widget.NewText(
		widget.TextOpts.Text(sc.Round.ScoreText, &fontFace, colornames.White),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)
	g.promptLabel = widget.NewText(
		widget.TextOpts.Text(sc.Round.Prompt, &fontFace, colornames.Gold),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout(
		widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(8)),
	)))
	root.AddChild(g.scoreLabel)
	root.AddChild(g.promptLabel)
	g.ui = &ebitenui.UI{Container: root}

	return g
}

// arenaX converts a screen x into arena coordinates. Both share the x axis.
func arenaX(x int) float64 { return float64(x) }

func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		g.scene.PointerDown(arenaX(x))
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		g.scene.PointerMove(arenaX(x))
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, _ := ebiten.TouchPosition(id)
		g.scene.PointerDown(arenaX(x))
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		if inpututil.TouchPressDuration(id) > 1 {
			x, _ := ebiten.TouchPosition(id)
			g.scene.PointerMove(arenaX(x))
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if g.pilot == nil {
			g.pilot = &scene.Autopilot{Scene: g.scene}
		} else {
			g.pilot = nil
		}
	}
}

// Update proceeds the game state.
// Update is called every tick (1/60 [s] by default).
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.handleInput()
	if g.pilot != nil {
		g.pilot.Drive()
	}
	g.scene.Step(1 / float64(ebiten.TPS()))

	r := g.scene.Round
loop:
	for {
		select {
		case msg := <-r.Messages:
			if msg.Type != game.MsgNudge {
				log.Printf("[%s] %s", msg.Type, msg.Message)
			}
		default:
			break loop
		}
	}

	g.scoreLabel.Label = r.ScoreText
	g.promptLabel.Label = r.Prompt
	g.ui.Update()
	return nil
}

// screenRect converts an arena rectangle (center, y-up) into a screen one (top-left, y-down).
func (g *Game) screenRect(pos, size entity.Vec) (x, y, w, h float32) {
	height := g.scene.Round.Config.Height
	return float32(pos.X - size.X/2), float32(height - pos.Y - size.Y/2), float32(size.X), float32(size.Y)
}

// Draw draws the game screen.
// Draw is called every frame (typically 1/60[s] for 60Hz display).
func (g *Game) Draw(screen *ebiten.Image) {
	r := g.scene.Round
	screen.Fill(colornames.Midnightblue)

	x, y, w, h := g.screenRect(r.LoseZone.Position, r.LoseZone.Size)
	vector.DrawFilledRect(screen, x, y, w, h, colornames.Darkred, false)

	for _, elem := range r.Bricks.Live() {
		x, y, w, h := g.screenRect(elem.Position, elem.Size)
		vector.DrawFilledRect(screen, x, y, w, h, brickColors[elem.Color], false)
	}
	if r.Paddle != nil {
		x, y, w, h := g.screenRect(r.Paddle.Position, r.Paddle.Size)
		vector.DrawFilledRect(screen, x, y, w, h, colornames.Whitesmoke, false)
	}
	if r.Ball != nil {
		cx, cy := float32(r.Ball.Position.X), float32(r.Config.Height-r.Ball.Position.Y)
		vector.DrawFilledCircle(screen, cx, cy, float32(r.Ball.Radius), colornames.Gold, true)
	}

	g.ui.Draw(screen)
}

// Layout takes the outside size (e.g., the window size) and returns the (logical) screen size.
// The logical screen is the arena, ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	cfg := g.scene.Round.Config
	return int(cfg.Width), int(cfg.Height)
}

func main() {
	cfg, opts, err := cli.ParseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to parse cli config: %s.", err)
	}
	if opts.DumpConfig {
		if err := cli.WriteConfig(os.Stdout, cfg); err != nil {
			log.Fatalf("Failed to dump config: %s.", err)
		}
		return
	}

	g := NewGame(scene.New(game.NewRound(cfg, opts.Rand())), opts.Demo)

	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("Breakout")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Call ebiten.RunGame to start your game loop.
	if err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		InitUnfocused: true,
	}); err != nil {
		log.Fatal(err)
	}
}
