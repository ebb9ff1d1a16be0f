package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/1siamBot/neon-backdrop/engine/core"
	"github.com/1siamBot/neon-backdrop/engine/particles"
	"github.com/go-gl/mathgl/mgl32"
)

// Config holds the backdrop settings. Zero-valued fields in a file keep
// their defaults because Load decodes over Default().
type Config struct {
	// Simulation
	Particles    int        `json:"particles"`
	Boundary     float32    `json:"boundary"`
	ShellMin     float64    `json:"shell_min"`
	ShellMax     float64    `json:"shell_max"`
	InitialSpeed float64    `json:"initial_speed"`
	Jitter       float64    `json:"jitter"`
	Damping      float32    `json:"damping"`
	Smoothing    float32    `json:"smoothing"`
	TimeStep     float32    `json:"time_step"`
	SpinRate     [3]float32 `json:"spin_rate"`
	Seed         uint64     `json:"seed"` // 0 picks a fresh seed at startup

	// Window and rendering
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Title         string  `json:"title"`
	MaxPointSize  float32 `json:"max_point_size"`
	PixelRatioCap float64 `json:"pixel_ratio_cap"`
	ShowStats     bool    `json:"show_stats"`
	Debug         bool    `json:"debug"`
}

// Default returns the stock configuration
func Default() Config {
	p := particles.DefaultParams()
	return Config{
		Particles:     p.Count,
		Boundary:      p.Boundary,
		ShellMin:      p.ShellMin,
		ShellMax:      p.ShellMax,
		InitialSpeed:  p.InitialSpeed,
		Jitter:        p.Jitter,
		Damping:       p.Damping,
		Smoothing:     particles.DefaultSmoothing,
		TimeStep:      0.016,
		SpinRate:      [3]float32{0.0008, 0.0012, 0.0004},
		Width:         1280,
		Height:        720,
		Title:         "Neon Backdrop",
		MaxPointSize:  256,
		PixelRatioCap: 2,
	}
}

// Load reads a JSON config file over the defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every invalid field
func (c Config) Validate() error {
	var errs []error
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("smoothing must be in (0, 1], got %g", c.Smoothing))
	}
	if c.TimeStep <= 0 {
		errs = append(errs, fmt.Errorf("time_step must be positive, got %g", c.TimeStep))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.MaxPointSize <= 0 {
		errs = append(errs, fmt.Errorf("max_point_size must be positive, got %g", c.MaxPointSize))
	}
	if c.PixelRatioCap < 1 {
		errs = append(errs, fmt.Errorf("pixel_ratio_cap must be at least 1, got %g", c.PixelRatioCap))
	}
	return errors.Join(errs...)
}

// Params returns the particle field parameters
func (c Config) Params() particles.Params {
	return particles.Params{
		Count:        c.Particles,
		Boundary:     c.Boundary,
		ShellMin:     c.ShellMin,
		ShellMax:     c.ShellMax,
		InitialSpeed: c.InitialSpeed,
		Jitter:       c.Jitter,
		Damping:      c.Damping,
	}
}

// LoopConfig returns the frame loop settings
func (c Config) LoopConfig() core.LoopConfig {
	return core.LoopConfig{
		Particles: c.Params(),
		Smoothing: c.Smoothing,
		TimeStep:  c.TimeStep,
		SpinRate:  mgl32.Vec3(c.SpinRate),
		Seed:      c.Seed,
	}
}
