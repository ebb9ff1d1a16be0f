package particles

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidParams is returned when field parameters cannot produce a field
var ErrInvalidParams = errors.New("particles: invalid params")

// Params configures a particle field. All values are fixed for the
// lifetime of the field.
type Params struct {
	Count        int     // number of particles
	Boundary     float32 // coordinates wrap at +/- Boundary
	ShellMin     float64 // spawn shell inner radius
	ShellMax     float64 // spawn shell outer radius (exclusive)
	InitialSpeed float64 // per-axis initial velocity in [-InitialSpeed, InitialSpeed)
	Jitter       float64 // per-axis velocity perturbation in [-Jitter, Jitter)
	Damping      float32 // velocity multiplier applied every step
}

// DefaultParams returns the stock backdrop parameters
func DefaultParams() Params {
	return Params{
		Count:        2000,
		Boundary:     25,
		ShellMin:     5,
		ShellMax:     25,
		InitialSpeed: 0.015,
		Jitter:       0.0005,
		Damping:      0.999,
	}
}

// Validate reports every parameter that is out of range
func (p Params) Validate() error {
	var errs []error
	if p.Count <= 0 {
		errs = append(errs, fmt.Errorf("count must be positive, got %d", p.Count))
	}
	if p.Boundary <= 0 {
		errs = append(errs, fmt.Errorf("boundary must be positive, got %g", p.Boundary))
	}
	if p.ShellMin < 0 || p.ShellMax <= p.ShellMin {
		errs = append(errs, fmt.Errorf("shell radii must satisfy 0 <= min < max, got [%g, %g)", p.ShellMin, p.ShellMax))
	}
	if p.InitialSpeed < 0 {
		errs = append(errs, fmt.Errorf("initial speed must not be negative, got %g", p.InitialSpeed))
	}
	if p.Jitter < 0 {
		errs = append(errs, fmt.Errorf("jitter must not be negative, got %g", p.Jitter))
	}
	if p.Damping < 0 || p.Damping > 1 {
		errs = append(errs, fmt.Errorf("damping must be in [0, 1], got %g", p.Damping))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
	}
	return nil
}

// Field owns a fixed set of point particles stored as parallel attribute
// buffers. Index i of every buffer describes particle i.
type Field struct {
	Positions  []mgl32.Vec3
	Velocities []mgl32.Vec3
	Colors     []mgl32.Vec3
	Sizes      []float32
	Opacities  []float32

	params Params
	rng    *rand.Rand
	dirty  bool
}

// NewField allocates and seeds a field of p.Count particles on a spherical
// shell around the origin.
func NewField(p Params, rng *rand.Rand) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParams)
	}

	n := p.Count
	f := &Field{
		Positions:  make([]mgl32.Vec3, n),
		Velocities: make([]mgl32.Vec3, n),
		Colors:     make([]mgl32.Vec3, n),
		Sizes:      make([]float32, n),
		Opacities:  make([]float32, n),
		params:     p,
		rng:        rng,
		dirty:      true,
	}

	for i := 0; i < n; i++ {
		radius := p.ShellMin + rng.Float64()*(p.ShellMax-p.ShellMin)
		theta := rng.Float64() * 2 * math.Pi
		phi := rng.Float64() * math.Pi

		f.Positions[i] = mgl32.Vec3{
			float32(radius * math.Sin(phi) * math.Cos(theta)),
			float32(radius * math.Sin(phi) * math.Sin(theta)),
			float32(radius * math.Cos(phi)),
		}

		f.Velocities[i] = mgl32.Vec3{
			symmetric(rng, p.InitialSpeed),
			symmetric(rng, p.InitialSpeed),
			symmetric(rng, p.InitialSpeed),
		}

		f.Colors[i] = PickColor(rng.Float64())
		f.Sizes[i] = float32(rng.Float64()*4 + 1.5)
		f.Opacities[i] = float32(rng.Float64()*0.8 + 0.2)
	}
	return f, nil
}

// symmetric draws uniformly from [-amp, amp)
func symmetric(rng *rand.Rand, amp float64) float32 {
	return float32((rng.Float64() - 0.5) * 2 * amp)
}

// Len returns the particle count
func (f *Field) Len() int { return len(f.Positions) }

// Params returns the parameters the field was built with
func (f *Field) Params() Params { return f.params }

// Step advances every particle by one frame. Per axis: perturb the
// velocity, damp it, integrate it into the position, then wrap the
// position to the opposite boundary if it left [-B, B].
func (f *Field) Step() {
	b := f.params.Boundary
	damp := f.params.Damping
	jitter := f.params.Jitter

	for i := range f.Positions {
		pos := &f.Positions[i]
		vel := &f.Velocities[i]
		for axis := 0; axis < 3; axis++ {
			if jitter > 0 {
				vel[axis] += symmetric(f.rng, jitter)
			}
			vel[axis] *= damp
			pos[axis] += vel[axis]

			if pos[axis] > b {
				pos[axis] = -b
			} else if pos[axis] < -b {
				pos[axis] = b
			}
		}
	}
	f.dirty = true
}

// Dirty reports whether positions changed since the last ClearDirty
func (f *Field) Dirty() bool { return f.dirty }

// ClearDirty marks the position buffer as uploaded
func (f *Field) ClearDirty() { f.dirty = false }
