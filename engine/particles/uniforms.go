package particles

import "github.com/go-gl/mathgl/mgl32"

// DefaultSmoothing is the pointer low-pass factor applied per input sample
const DefaultSmoothing = 0.1

// Uniforms are the per-frame values shared by every vertex and fragment
type Uniforms struct {
	ElapsedTime     float32
	PointerPosition mgl32.Vec2 // smoothed, normalized device coordinates
	ViewportSize    mgl32.Vec2 // pixels
	Rotation        mgl32.Vec3 // field orientation, Euler XYZ radians
}

// Advance moves the clock forward by dt and spins the field by spin
func (u *Uniforms) Advance(dt float32, spin mgl32.Vec3) {
	u.ElapsedTime += dt
	u.Rotation = u.Rotation.Add(spin)
}

// Resize records a new viewport size. Nothing else changes.
func (u *Uniforms) Resize(w, h int) {
	u.ViewportSize = mgl32.Vec2{float32(w), float32(h)}
}

// Pointer low-pass filters raw pointer samples into normalized device
// coordinates. The filter only moves when a sample arrives.
type Pointer struct {
	Factor float32

	halfW, halfH float32
	smoothed     mgl32.Vec2
}

// NewPointer creates a pointer filter resting at the viewport center
func NewPointer(factor float32) *Pointer {
	return &Pointer{Factor: factor}
}

// Resize changes the normalization denominators without touching the
// smoothed position
func (p *Pointer) Resize(w, h int) {
	p.halfW = float32(w) / 2
	p.halfH = float32(h) / 2
}

// Target converts device pixels into [-1, 1] relative to the viewport
// center, +Y up. ok is false while the viewport has no area.
func (p *Pointer) Target(x, y float32) (target mgl32.Vec2, ok bool) {
	if p.halfW <= 0 || p.halfH <= 0 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{
		(x - p.halfW) / p.halfW,
		-(y - p.halfH) / p.halfH,
	}, true
}

// Sample feeds one raw pointer position through the filter
func (p *Pointer) Sample(x, y float32) {
	target, ok := p.Target(x, y)
	if !ok {
		return
	}
	p.smoothed = p.smoothed.Add(target.Sub(p.smoothed).Mul(p.Factor))
}

// Position returns the smoothed pointer position
func (p *Pointer) Position() mgl32.Vec2 { return p.smoothed }
