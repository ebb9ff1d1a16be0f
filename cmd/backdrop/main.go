package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/1siamBot/neon-backdrop/engine/config"
	"github.com/1siamBot/neon-backdrop/engine/core"
	"github.com/1siamBot/neon-backdrop/engine/input"
	"github.com/1siamBot/neon-backdrop/engine/logging"
	"github.com/1siamBot/neon-backdrop/engine/render"
	"github.com/1siamBot/neon-backdrop/engine/render3d"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Game implements ebiten.Game interface
type Game struct {
	cfg      config.Config
	loop     *core.FrameLoop
	renderer *render.PointRenderer
	input    *input.InputState
	log      logging.Logger

	showStats bool
	fbW, fbH  int
}

func NewGame(cfg config.Config, log logging.Logger) (*Game, error) {
	loop := core.NewFrameLoop(cfg.LoopConfig())
	if err := loop.Start(); err != nil {
		return nil, err
	}

	opts := render3d.DefaultPointOptions()
	opts.MaxPointSize = cfg.MaxPointSize

	g := &Game{
		cfg:       cfg,
		loop:      loop,
		renderer:  render.NewPointRenderer(cfg.Width, cfg.Height, opts, log),
		input:     input.NewInputState(),
		log:       log,
		showStats: cfg.ShowStats,
	}
	log.Infof("field ready: %d particles, seed %d, %s", loop.Field.Len(), cfg.Seed, g.renderer)
	return g, nil
}

func (g *Game) Update() error {
	g.input.Update(g.loop)

	if g.input.Quit {
		return ebiten.Termination
	}
	if g.input.ToggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if g.input.ToggleStats {
		g.showStats = !g.showStats
	}

	g.loop.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.loop.Field, &g.loop.Uniforms)
	if g.showStats {
		g.drawStats(screen)
	}
}

func (g *Game) drawStats(screen *ebiten.Image) {
	u := &g.loop.Uniforms
	info := fmt.Sprintf(
		"TPS: %.0f | FPS: %.0f | Frame: %d\n"+
			"Particles: %d (drawn %d) | t=%.2f\n"+
			"Pointer: (%.2f, %.2f) | Viewport: %.0fx%.0f\n"+
			"[F] Fullscreen [H] Stats [Esc] Quit",
		ebiten.ActualTPS(),
		ebiten.ActualFPS(),
		g.loop.FrameCount,
		g.loop.Field.Len(), g.renderer.SpriteCount(), u.ElapsedTime,
		u.PointerPosition[0], u.PointerPosition[1],
		u.ViewportSize[0], u.ViewportSize[1],
	)
	ebitenutil.DebugPrint(screen, info)
}

// Layout renders at the device pixel ratio, capped to keep fill rate sane
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := math.Min(ebiten.Monitor().DeviceScaleFactor(), g.cfg.PixelRatioCap)
	if scale < 1 {
		scale = 1
	}
	w := int(float64(outsideWidth) * scale)
	h := int(float64(outsideHeight) * scale)

	if w != g.fbW || h != g.fbH {
		g.fbW, g.fbH = w, h
		g.renderer.Resize(w, h)
		g.loop.Resized(w, h)
		g.log.Debugf("viewport %dx%d (scale %.2f)", w, h, scale)
	}
	return w, h
}

func main() {
	cfgPath := flag.String("config", "backdrop.json", "Path to JSON config")
	particles := flag.Int("particles", 0, "Override particle count")
	seed := flag.Uint64("seed", 0, "Random seed (0 = time based)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	transparent := flag.Bool("transparent", false, "Transparent window background")
	flag.Parse()

	log := logging.NewDefaultLogger("backdrop", *debug)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(2)
	}
	if *particles > 0 {
		cfg.Particles = *particles
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if *debug || cfg.Debug {
		log.SetDebug(true)
	}
	if err := cfg.Validate(); err != nil {
		log.Errorf("invalid config: %v", err)
		os.Exit(2)
	}

	game, err := NewGame(cfg, log)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(2)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(60)

	// No drawable surface means no backdrop; report and leave cleanly
	if err := ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{ScreenTransparent: *transparent}); err != nil {
		log.Errorf("render surface: %v", err)
		os.Exit(1)
	}
}
