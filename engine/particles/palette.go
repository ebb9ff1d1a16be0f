package particles

import "github.com/go-gl/mathgl/mgl32"

// Neon palette entries
var (
	NeonGreen   = mgl32.Vec3{0.0, 1.0, 0.3}
	NeonCyan    = mgl32.Vec3{0.0, 0.9, 1.0}
	NeonMagenta = mgl32.Vec3{1.0, 0.0, 1.0}
	AccentBlue  = mgl32.Vec3{0.8, 0.9, 1.0}
)

// PaletteEntry is a color with its selection probability
type PaletteEntry struct {
	Color  mgl32.Vec3
	Weight float64
}

// Palette lists the particle colors in selection order. Weights sum to 1.
var Palette = [4]PaletteEntry{
	{NeonGreen, 0.35},
	{NeonCyan, 0.30},
	{NeonMagenta, 0.20},
	{AccentBlue, 0.15},
}

// PickColor maps a uniform draw u in [0, 1) onto the palette using
// cumulative weights.
func PickColor(u float64) mgl32.Vec3 {
	acc := 0.0
	for _, e := range Palette[:len(Palette)-1] {
		acc += e.Weight
		if u < acc {
			return e.Color
		}
	}
	return Palette[len(Palette)-1].Color
}

// PaletteIndex returns the palette slot of c, or -1 if c is not a palette color
func PaletteIndex(c mgl32.Vec3) int {
	for i, e := range Palette {
		if e.Color == c {
			return i
		}
	}
	return -1
}
