package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/1siamBot/neon-backdrop/engine/config"
	"github.com/1siamBot/neon-backdrop/engine/core"
	"github.com/1siamBot/neon-backdrop/engine/render3d"
	xdraw "golang.org/x/image/draw"
)

// background behind the additive glow, the hero section's near-black
var background = color.RGBA{5, 5, 15, 255}

type options struct {
	width, height int
	frames        int
	ssaa          int
	pointer       []float32 // normalized [0,1] viewport position, nil for none
}

// renderFrame runs the simulation headless and returns the downsampled still
func renderFrame(cfg config.Config, opts options) (*image.RGBA, error) {
	if opts.width <= 0 || opts.height <= 0 {
		return nil, fmt.Errorf("output size must be positive, got %dx%d", opts.width, opts.height)
	}
	if opts.ssaa < 1 {
		opts.ssaa = 1
	}
	w, h := opts.width*opts.ssaa, opts.height*opts.ssaa

	loop := core.NewFrameLoop(cfg.LoopConfig())
	if err := loop.Start(); err != nil {
		return nil, err
	}
	loop.Resized(w, h)
	if opts.pointer != nil {
		// one sample per frame, like a cursor resting on the spot
		for i := 0; i < opts.frames; i++ {
			loop.PointerMoved(opts.pointer[0]*float32(w), opts.pointer[1]*float32(h))
			loop.Tick()
		}
	} else {
		for i := 0; i < opts.frames; i++ {
			loop.Tick()
		}
	}
	loop.Events.Dispatch()

	cam := render3d.NewCamera3D(w, h)
	pointOpts := render3d.DefaultPointOptions()
	pointOpts.MaxPointSize = cfg.MaxPointSize
	pointOpts.PointScale = float32(opts.ssaa)

	sprites := render3d.BuildSprites(nil, loop.Field, &loop.Uniforms, cam, pointOpts)
	canvas := render3d.NewCanvas(w, h)
	canvas.Rasterize(sprites, loop.Uniforms.ElapsedTime)
	full := canvas.Image(background)

	if opts.ssaa == 1 {
		return full, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.width, opts.height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), full, full.Bounds(), xdraw.Src, nil)
	return out, nil
}

// parsePointer reads "x,y" with both in [0,1]
func parsePointer(s string) ([]float32, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("pointer must be x,y, got %q", s)
	}
	p := make([]float32, 2)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("pointer %q: %w", s, err)
		}
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("pointer coordinates must be in [0,1], got %g", v)
		}
		p[i] = float32(v)
	}
	return p, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	cfgPath := flag.String("config", "", "Path to JSON config")
	outPath := flag.String("out", "backdrop.png", "Output PNG")
	width := flag.Int("w", 1280, "Output width")
	height := flag.Int("h", 720, "Output height")
	frames := flag.Int("frames", 120, "Frames to simulate before capture")
	seed := flag.Uint64("seed", 1, "Random seed")
	ssaa := flag.Int("ssaa", 2, "Supersampling factor")
	pointer := flag.String("pointer", "", "Pointer position as x,y in [0,1]")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.Seed = *seed

	ptr, err := parsePointer(*pointer)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	img, err := renderFrame(cfg, options{
		width:   *width,
		height:  *height,
		frames:  *frames,
		ssaa:    *ssaa,
		pointer: ptr,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := savePNG(*outPath, img); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("  →", *outPath)
}
