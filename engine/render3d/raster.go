package render3d

import (
	"image"
	"image/color"
	"math"

	"github.com/1siamBot/neon-backdrop/engine/particles"
	"github.com/go-gl/mathgl/mgl32"
)

// Canvas accumulates premultiplied RGBA in float precision so additive
// blending never saturates mid-frame
type Canvas struct {
	W, H int
	Pix  []float32 // 4 floats per pixel, row major
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{W: w, H: h, Pix: make([]float32, w*h*4)}
}

// Clear resets the canvas to transparent black
func (c *Canvas) Clear() {
	for i := range c.Pix {
		c.Pix[i] = 0
	}
}

// Splat adds one point sprite using the glow fragment model at time t
func (c *Canvas) Splat(s Sprite, t float32) {
	half := s.Size / 2
	x0 := int(math.Floor(float64(s.Center[0] - half)))
	y0 := int(math.Floor(float64(s.Center[1] - half)))
	x1 := int(math.Ceil(float64(s.Center[0] + half)))
	y1 := int(math.Ceil(float64(s.Center[1] + half)))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > c.W {
		x1 = c.W
	}
	if y1 > c.H {
		y1 = c.H
	}

	alpha := s.Opacity * particles.Flicker(s.Depth, t)
	tint := particles.Tint(s.Depth, t)
	left := s.Center[0] - half
	top := s.Center[1] - half

	for py := y0; py < y1; py++ {
		v := (float32(py) + 0.5 - top) / s.Size
		for px := x0; px < x1; px++ {
			u := (float32(px) + 0.5 - left) / s.Size
			d := mgl32.Vec2{u - 0.5, v - 0.5}.Len()
			if d >= 0.5 {
				continue
			}
			frag := particles.Fragment(d, s.Color, alpha, tint)
			i := (py*c.W + px) * 4
			c.Pix[i] += frag[0]
			c.Pix[i+1] += frag[1]
			c.Pix[i+2] += frag[2]
			c.Pix[i+3] += frag[3]
		}
	}
}

// Rasterize splats every sprite onto the canvas
func (c *Canvas) Rasterize(sprites []Sprite, t float32) {
	for _, s := range sprites {
		c.Splat(s, t)
	}
}

// Image composites the canvas additively over bg and clamps to 8 bits
func (c *Canvas) Image(bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.W, c.H))
	base := [4]float32{
		float32(bg.R) / 255,
		float32(bg.G) / 255,
		float32(bg.B) / 255,
		float32(bg.A) / 255,
	}
	for i := 0; i < len(c.Pix); i += 4 {
		for k := 0; k < 4; k++ {
			img.Pix[i+k] = toByte(base[k] + c.Pix[i+k])
		}
		// keep the premultiplied invariant of image.RGBA
		a := img.Pix[i+3]
		for k := 0; k < 3; k++ {
			if img.Pix[i+k] > a {
				img.Pix[i+k] = a
			}
		}
	}
	return img
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// GlowImage renders a single white point of the given pixel size with full
// opacity and no tint, for use as a sprite texture
func GlowImage(size int) *image.RGBA {
	c := NewCanvas(size, size)
	alpha := float32(1)
	white := mgl32.Vec3{1, 1, 1}
	for py := 0; py < size; py++ {
		v := (float32(py) + 0.5) / float32(size)
		for px := 0; px < size; px++ {
			u := (float32(px) + 0.5) / float32(size)
			d := mgl32.Vec2{u - 0.5, v - 0.5}.Len()
			frag := particles.Fragment(d, white, alpha, 0)
			i := (py*size + px) * 4
			copy(c.Pix[i:i+4], frag[:])
		}
	}
	return c.Image(color.RGBA{})
}
