package core

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/1siamBot/neon-backdrop/engine/particles"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrAlreadyRunning is returned by Start on a loop that has already started
var ErrAlreadyRunning = errors.New("core: frame loop already running")

// LoopState represents the lifecycle of the frame loop
type LoopState uint8

const (
	StateUninitialized LoopState = iota
	StateRunning
)

func (s LoopState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	}
	return fmt.Sprintf("LoopState(%d)", uint8(s))
}

// LoopConfig holds the fixed per-session simulation settings
type LoopConfig struct {
	Particles particles.Params
	Smoothing float32    // pointer low-pass factor per input sample
	TimeStep  float32    // ElapsedTime advance per frame
	SpinRate  mgl32.Vec3 // field rotation per frame, radians
	Seed      uint64
}

// DefaultLoopConfig returns the stock backdrop settings
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Particles: particles.DefaultParams(),
		Smoothing: particles.DefaultSmoothing,
		TimeStep:  0.016,
		SpinRate:  mgl32.Vec3{0.0008, 0.0012, 0.0004},
	}
}

// FrameLoop owns the particle field and its uniforms and advances them once
// per host frame. The host calls Tick from its frame callback; input
// handlers only Emit, so all state mutation happens inside Tick.
type FrameLoop struct {
	Field    *particles.Field
	Uniforms particles.Uniforms
	Pointer  *particles.Pointer
	Events   *EventBus

	State      LoopState
	FrameCount uint64

	cfg LoopConfig
}

// NewFrameLoop creates an uninitialized loop. Events may be emitted before
// Start; they are delivered on the first Tick.
func NewFrameLoop(cfg LoopConfig) *FrameLoop {
	l := &FrameLoop{
		Pointer: particles.NewPointer(cfg.Smoothing),
		Events:  NewEventBus(),
		cfg:     cfg,
	}
	l.Events.On(EvtPointerMove, l.onPointerMove)
	l.Events.On(EvtResize, l.onResize)
	return l
}

// Config returns the loop settings
func (l *FrameLoop) Config() LoopConfig { return l.cfg }

// Start allocates the particle field and moves the loop to Running
func (l *FrameLoop) Start() error {
	if l.State == StateRunning {
		return ErrAlreadyRunning
	}
	rng := rand.New(rand.NewPCG(l.cfg.Seed, l.cfg.Seed^0x9e3779b97f4a7c15))
	f, err := particles.NewField(l.cfg.Particles, rng)
	if err != nil {
		return fmt.Errorf("start frame loop: %w", err)
	}
	l.Field = f
	l.State = StateRunning
	return nil
}

// Tick advances the simulation by exactly one frame
func (l *FrameLoop) Tick() {
	if l.State != StateRunning {
		return
	}
	l.Events.Dispatch()
	l.Field.Step()
	l.Uniforms.Advance(l.cfg.TimeStep, l.cfg.SpinRate)
	l.FrameCount++
}

// PointerMoved queues a raw pointer sample
func (l *FrameLoop) PointerMoved(x, y float32) {
	l.Events.Emit(Event{Type: EvtPointerMove, Frame: l.FrameCount, Payload: PointerMove{X: x, Y: y}})
}

// Resized queues a viewport size change
func (l *FrameLoop) Resized(w, h int) {
	l.Events.Emit(Event{Type: EvtResize, Frame: l.FrameCount, Payload: Resize{Width: w, Height: h}})
}

func (l *FrameLoop) onPointerMove(e Event) {
	m, ok := e.Payload.(PointerMove)
	if !ok {
		return
	}
	l.Pointer.Sample(m.X, m.Y)
	l.Uniforms.PointerPosition = l.Pointer.Position()
}

func (l *FrameLoop) onResize(e Event) {
	r, ok := e.Payload.(Resize)
	if !ok {
		return
	}
	l.Pointer.Resize(r.Width, r.Height)
	l.Uniforms.Resize(r.Width, r.Height)
}
