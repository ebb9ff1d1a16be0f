package particles

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newTestField(t *testing.T, p Params) *Field {
	t.Helper()
	f, err := NewField(p, newRand(42))
	require.NoError(t, err)
	return f
}

func TestNewField_Initialization(t *testing.T) {
	p := DefaultParams()
	f := newTestField(t, p)

	require.Equal(t, 2000, f.Len())
	require.Len(t, f.Velocities, 2000)
	require.Len(t, f.Colors, 2000)
	require.Len(t, f.Sizes, 2000)
	require.Len(t, f.Opacities, 2000)

	const eps = 1e-3
	for i := 0; i < f.Len(); i++ {
		r := f.Positions[i].Len()
		assert.GreaterOrEqual(t, r, float32(5-eps), "particle %d radius", i)
		assert.Less(t, r, float32(25+eps), "particle %d radius", i)

		for axis := 0; axis < 3; axis++ {
			v := f.Velocities[i][axis]
			assert.GreaterOrEqual(t, v, float32(-0.015))
			assert.Less(t, v, float32(0.015))
		}

		assert.NotEqual(t, -1, PaletteIndex(f.Colors[i]), "particle %d color %v", i, f.Colors[i])

		assert.GreaterOrEqual(t, f.Sizes[i], float32(1.5))
		assert.Less(t, f.Sizes[i], float32(5.5))
		assert.GreaterOrEqual(t, f.Opacities[i], float32(0.2))
		assert.Less(t, f.Opacities[i], float32(1.0))
	}
}

func TestNewField_PaletteDistribution(t *testing.T) {
	p := DefaultParams()
	p.Count = 200000
	f := newTestField(t, p)

	counts := make([]int, len(Palette))
	for _, c := range f.Colors {
		idx := PaletteIndex(c)
		require.NotEqual(t, -1, idx)
		counts[idx]++
	}

	for i, e := range Palette {
		got := float64(counts[i]) / float64(p.Count)
		assert.InDelta(t, e.Weight, got, 0.01, "palette slot %d", i)
	}
}

func TestNewField_InvalidParams(t *testing.T) {
	p := DefaultParams()
	p.Count = 0
	p.Damping = 1.5

	_, err := NewField(p, newRand(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParams))
	assert.Contains(t, err.Error(), "count")
	assert.Contains(t, err.Error(), "damping")

	_, err = NewField(DefaultParams(), nil)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestStep_StaysInBounds(t *testing.T) {
	p := DefaultParams()
	p.InitialSpeed = 0.5 // push particles across the boundary often
	f := newTestField(t, p)

	for step := 0; step < 500; step++ {
		f.Step()
		for i, pos := range f.Positions {
			for axis := 0; axis < 3; axis++ {
				if pos[axis] < -p.Boundary || pos[axis] > p.Boundary {
					t.Fatalf("step %d particle %d axis %d out of bounds: %v", step, i, axis, pos[axis])
				}
			}
		}
	}
}

func TestStep_WrapsInsteadOfClamping(t *testing.T) {
	p := DefaultParams()
	p.Count = 2
	p.Jitter = 0
	f := newTestField(t, p)

	f.Positions[0] = mgl32.Vec3{24.99, 0, 0}
	f.Velocities[0] = mgl32.Vec3{0.05, 0, 0}
	f.Positions[1] = mgl32.Vec3{0, -24.99, 0}
	f.Velocities[1] = mgl32.Vec3{0, -0.05, 0}

	f.Step()

	assert.Equal(t, float32(-25), f.Positions[0][0], "crossing +B reappears at -B")
	assert.Equal(t, float32(25), f.Positions[1][1], "crossing -B reappears at +B")

	// velocity keeps its direction, only damped
	assert.InDelta(t, 0.05*0.999, f.Velocities[0][0], 1e-6)
	assert.InDelta(t, -0.05*0.999, f.Velocities[1][1], 1e-6)

	// untouched axes stay put
	assert.Equal(t, float32(0), f.Positions[0][1])
	assert.Equal(t, float32(0), f.Positions[1][0])
}

func TestStep_PureDampingDecay(t *testing.T) {
	p := DefaultParams()
	p.Count = 1
	p.Jitter = 0
	f := newTestField(t, p)
	f.Velocities[0] = mgl32.Vec3{1, 1, 1}

	prev := f.Velocities[0].Len()
	for i := 0; i < 1000; i++ {
		f.Step()
		cur := f.Velocities[0].Len()
		require.LessOrEqual(t, cur, prev)
		prev = cur
	}

	want := math.Pow(0.999, 1000)
	for axis := 0; axis < 3; axis++ {
		assert.InDelta(t, want, f.Velocities[0][axis], 0.01)
	}
	assert.InDelta(t, 0.368, f.Velocities[0][0], 0.01)
}

func TestStep_JitterIsUnbiased(t *testing.T) {
	p := DefaultParams()
	p.Count = 20000
	p.InitialSpeed = 0
	f := newTestField(t, p)

	f.Step()

	var sum float64
	for _, v := range f.Velocities {
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, math.Abs(float64(v[axis])), 0.0005)
			sum += float64(v[axis])
		}
	}
	mean := sum / float64(3*p.Count)
	assert.InDelta(t, 0, mean, 1e-5)
}

func TestStep_ImmutableAttributes(t *testing.T) {
	f := newTestField(t, DefaultParams())

	colors := append([]mgl32.Vec3(nil), f.Colors...)
	sizes := append([]float32(nil), f.Sizes...)
	opacities := append([]float32(nil), f.Opacities...)
	positions := append([]mgl32.Vec3(nil), f.Positions...)

	for i := 0; i < 100; i++ {
		f.Step()
	}

	assert.Equal(t, colors, f.Colors)
	assert.Equal(t, sizes, f.Sizes)
	assert.Equal(t, opacities, f.Opacities)
	assert.NotEqual(t, positions, f.Positions)
	assert.Equal(t, 2000, f.Len())
}

func TestField_Dirty(t *testing.T) {
	f := newTestField(t, DefaultParams())
	assert.True(t, f.Dirty(), "fresh buffers need an upload")

	f.ClearDirty()
	assert.False(t, f.Dirty())

	f.Step()
	assert.True(t, f.Dirty())
}

func TestPickColor(t *testing.T) {
	assert.Equal(t, NeonGreen, PickColor(0))
	assert.Equal(t, NeonGreen, PickColor(0.34))
	assert.Equal(t, NeonCyan, PickColor(0.36))
	assert.Equal(t, NeonCyan, PickColor(0.64))
	assert.Equal(t, NeonMagenta, PickColor(0.66))
	assert.Equal(t, NeonMagenta, PickColor(0.84))
	assert.Equal(t, AccentBlue, PickColor(0.86))
	assert.Equal(t, AccentBlue, PickColor(0.9999))
}
