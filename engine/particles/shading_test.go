package particles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDisplace_WaveAndSpiralBounded(t *testing.T) {
	u := &Uniforms{PointerPosition: mgl32.Vec2{10, 10}} // pointer far away
	pos := mgl32.Vec3{3, -4, 2}

	for i := 0; i < 200; i++ {
		u.ElapsedTime = float32(i) * 0.37
		d := Displace(pos, u).Sub(pos)
		// wave 0.8 per axis plus spiral 0.3 in xy
		assert.LessOrEqual(t, abs32(d[0]), float32(1.1+1e-4))
		assert.LessOrEqual(t, abs32(d[1]), float32(1.1+1e-4))
		assert.LessOrEqual(t, abs32(d[2]), float32(0.8+1e-4))
	}
}

func TestDisplace_PointerRepels(t *testing.T) {
	u := &Uniforms{}
	pos := mgl32.Vec3{2, 0, 0}

	u.PointerPosition = mgl32.Vec2{5, 5} // 75 world units away
	far := Displace(pos, u)

	u.PointerPosition = mgl32.Vec2{0, 0}
	near := Displace(pos, u)

	// same wave and spiral, so the difference is the push
	push := mgl32.Vec2{near[0] - far[0], near[1] - far[1]}
	assert.Greater(t, push.Len(), float32(0))
	assert.LessOrEqual(t, push.Len(), float32(RepelStrength+1e-4))
	assert.Equal(t, far[2], near[2], "repulsion is planar")

	// push points away from the pointer
	base := mgl32.Vec2{far[0], far[1]}
	assert.Greater(t, base.Dot(push), float32(0))
}

func TestPointSize_InverseDepth(t *testing.T) {
	pos := mgl32.Vec3{0, 0, 0}
	near := PointSize(2, 5, pos, 0)
	far := PointSize(2, 10, pos, 0)

	assert.InDelta(t, 2*300.0/5, near, 1e-3)
	assert.InDelta(t, near/2, far, 1e-3)

	// time modulation stays within the product of its envelopes
	for i := 0; i < 100; i++ {
		s := PointSize(2, 5, pos, float32(i)*0.1)
		assert.GreaterOrEqual(t, s, float32(120*0.7*0.8-1e-2))
		assert.LessOrEqual(t, s, float32(120*1.3*1.2+1e-2))
	}
}

func TestGlow_Falloff(t *testing.T) {
	disc, core, halo := Glow(0)
	assert.Equal(t, float32(1), disc)
	assert.Equal(t, float32(1), core)
	assert.Equal(t, float32(0.5), halo)

	disc, core, halo = Glow(0.5)
	assert.Equal(t, float32(0), disc)
	assert.Equal(t, float32(0), core)
	assert.Greater(t, halo, float32(0))

	_, _, halo = Glow(0.8)
	assert.Equal(t, float32(0), halo)
}

func TestFragment_Premultiplied(t *testing.T) {
	c := Fragment(0, NeonCyan, 0.5, 0)
	assert.InDelta(t, 0.5, c[3], 1e-6)
	// core + 0.8 * halo = 1.4 times the color, scaled by alpha
	assert.InDelta(t, 0.9*1.4*0.5, c[1], 1e-5)

	assert.Equal(t, mgl32.Vec4{}, Fragment(0.6, NeonCyan, 1, 1))
}

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, float32(0), Smoothstep(0, 1, -1))
	assert.Equal(t, float32(1), Smoothstep(0, 1, 2))
	assert.InDelta(t, 0.5, Smoothstep(0, 1, 0.5), 1e-6)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
