package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex and fragment stage constants
const (
	WaveAmplitude   = 0.8
	SpiralAmplitude = 0.3
	PointerScale    = 15.0 // world units per unit of normalized pointer
	RepelRadius     = 8.0
	RepelStrength   = 3.0
	SizeAttenuation = 300.0
)

// Displace applies the wave, spiral and pointer-repulsion offsets to a
// simulated position in object space.
func Displace(pos mgl32.Vec3, u *Uniforms) mgl32.Vec3 {
	t := float64(u.ElapsedTime)
	x0, y0 := float64(pos[0]), float64(pos[1])

	p := pos
	p[0] += float32(math.Sin(t*0.5+y0*0.1) * WaveAmplitude)
	p[1] += float32(math.Cos(t*0.3+x0*0.1) * WaveAmplitude)
	p[2] += float32(math.Sin(t*0.7+x0*0.1) * WaveAmplitude)

	xy := mgl32.Vec2{p[0], p[1]}
	angle := t*0.2 + float64(xy.Len())*0.1
	p[0] += float32(math.Cos(angle) * SpiralAmplitude)
	p[1] += float32(math.Sin(angle) * SpiralAmplitude)

	xy = mgl32.Vec2{p[0], p[1]}
	away := xy.Sub(u.PointerPosition.Mul(PointerScale))
	if d := away.Len(); d < RepelRadius && d > 0 {
		push := away.Mul(1 / d).Mul(RepelStrength * (1 - d/RepelRadius))
		p[0] += push[0]
		p[1] += push[1]
	}
	return p
}

// PointSize returns the on-screen size in pixels of a point with base size
// base at view depth depth. pos is the undisplaced position. Depth must be
// positive.
func PointSize(base, depth float32, pos mgl32.Vec3, t float32) float32 {
	tt := float64(t)
	s := float64(base) * (SizeAttenuation / float64(depth))
	s *= 1 + math.Sin(tt*2+float64(pos[0])*0.1)*0.3
	s *= 1 + math.Sin(tt*1.5+float64(pos[1])*0.1)*0.2
	return float32(s)
}

// Flicker scales a point's opacity over time
func Flicker(depth, t float32) float32 {
	return float32(0.9 + 0.1*math.Sin(float64(t)*3+float64(depth)*0.1))
}

// Tint is the signed strength of the blue-ish halo color shift
func Tint(depth, t float32) float32 {
	return float32(math.Sin(float64(t)*2 + float64(depth)*0.05))
}

// TintColor is added to a point's halo, scaled by Tint
var TintColor = mgl32.Vec3{0.1, 0.1, 0.2}

// Smoothstep is the GLSL smoothstep
func Smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// Glow returns the disc falloff, inner core and outer halo weights at
// distance d from a point's center, in point-size units (0.5 is the edge).
func Glow(d float32) (disc, core, halo float32) {
	disc = 1 - Smoothstep(0, 0.5, d)
	core = 1 - Smoothstep(0, 0.2, d)
	halo = (1 - Smoothstep(0.3, 0.8, d)) * 0.5
	return
}

// Fragment shades one sample of a point. color is the particle color, alpha
// its opacity after flicker, tint the Tint value. The result is
// premultiplied for additive blending.
func Fragment(d float32, color mgl32.Vec3, alpha, tint float32) mgl32.Vec4 {
	disc, core, halo := Glow(d)
	a := disc * alpha
	rgb := color.Mul(core).Add(color.Mul(halo * 0.8)).Add(TintColor.Mul(halo * tint))
	return mgl32.Vec4{rgb[0] * a, rgb[1] * a, rgb[2] * a, a}
}
