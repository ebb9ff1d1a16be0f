package render

import (
	"fmt"

	"github.com/1siamBot/neon-backdrop/engine/logging"
	"github.com/1siamBot/neon-backdrop/engine/particles"
	"github.com/1siamBot/neon-backdrop/engine/render3d"
	"github.com/hajimehoshi/ebiten/v2"
)

// glowShaderSrc shades one point sprite. srcPos runs over [0, 1] across the
// quad, color carries the particle color with its opacity in alpha and
// custom.x the view depth.
const glowShaderSrc = `//kage:unit pixels

package main

var Time float

func Fragment(dstPos vec4, srcPos vec2, color vec4, custom vec4) vec4 {
	d := length(srcPos - vec2(0.5))
	depth := custom.x

	disc := 1.0 - smoothstep(0.0, 0.5, d)
	core := 1.0 - smoothstep(0.0, 0.2, d)
	halo := (1.0 - smoothstep(0.3, 0.8, d)) * 0.5

	a := disc * color.a * (0.9 + 0.1*sin(Time*3.0+depth*0.1))
	rgb := color.rgb*core + color.rgb*halo*0.8
	rgb += vec3(0.1, 0.1, 0.2) * halo * sin(Time*2.0+depth*0.05)

	return vec4(rgb*a, a)
}
`

// glowTextureSize is the side of the fallback sprite texture
const glowTextureSize = 64

// maxSpritesPerBatch keeps vertex indices within uint16
const maxSpritesPerBatch = 65535 / 4

// PointRenderer draws a particle field as additive glowing point sprites
type PointRenderer struct {
	Camera  *render3d.Camera3D
	Options render3d.PointOptions

	shader   *ebiten.Shader
	glowTex  *ebiten.Image
	sprites  []render3d.Sprite
	vertices []ebiten.Vertex
	indices  []uint16
	log      logging.Logger
}

// NewPointRenderer compiles the glow shader. A compile failure is not fatal:
// the renderer falls back to a pre-rendered glow texture.
func NewPointRenderer(screenW, screenH int, opts render3d.PointOptions, log logging.Logger) *PointRenderer {
	if log == nil {
		log = logging.Nop()
	}
	r := &PointRenderer{
		Camera:  render3d.NewCamera3D(screenW, screenH),
		Options: opts,
		log:     log,
	}

	shader, err := ebiten.NewShader([]byte(glowShaderSrc))
	if err != nil {
		log.Warnf("glow shader unavailable, using sprite fallback: %v", err)
		r.glowTex = ebiten.NewImageFromImage(render3d.GlowImage(glowTextureSize))
	} else {
		r.shader = shader
	}
	return r
}

// UsingShader reports whether the Kage glow shader is active
func (r *PointRenderer) UsingShader() bool { return r.shader != nil }

// Resize follows the framebuffer size
func (r *PointRenderer) Resize(w, h int) {
	r.Camera.Resize(w, h)
}

// SpriteCount returns the number of points drawn last frame
func (r *PointRenderer) SpriteCount() int { return len(r.sprites) }

// Draw clears screen and renders the field with its current uniforms
func (r *PointRenderer) Draw(screen *ebiten.Image, f *particles.Field, u *particles.Uniforms) {
	screen.Clear()
	if f == nil {
		return
	}

	r.sprites = render3d.BuildSprites(r.sprites[:0], f, u, r.Camera, r.Options)
	f.ClearDirty()

	for start := 0; start < len(r.sprites); start += maxSpritesPerBatch {
		end := start + maxSpritesPerBatch
		if end > len(r.sprites) {
			end = len(r.sprites)
		}
		r.buildBatch(r.sprites[start:end], u)
		r.flush(screen, u)
	}
}

func (r *PointRenderer) buildBatch(batch []render3d.Sprite, u *particles.Uniforms) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	texSize := float32(1)
	if r.shader == nil {
		texSize = glowTextureSize
	}

	for _, s := range batch {
		half := s.Size / 2
		x0, y0 := s.Center[0]-half, s.Center[1]-half
		x1, y1 := s.Center[0]+half, s.Center[1]+half

		opacity := s.Opacity
		if r.shader == nil {
			// without the shader, flicker is applied per point
			opacity *= particles.Flicker(s.Depth, u.ElapsedTime)
		}

		base := uint16(len(r.vertices))
		corners := [4][4]float32{
			{x0, y0, 0, 0},
			{x1, y0, 1, 0},
			{x1, y1, 1, 1},
			{x0, y1, 0, 1},
		}
		for _, c := range corners {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:    c[0],
				DstY:    c[1],
				SrcX:    c[2] * texSize,
				SrcY:    c[3] * texSize,
				ColorR:  s.Color[0],
				ColorG:  s.Color[1],
				ColorB:  s.Color[2],
				ColorA:  opacity,
				Custom0: s.Depth,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2, base, base+2, base+3)
	}
}

func (r *PointRenderer) flush(screen *ebiten.Image, u *particles.Uniforms) {
	if len(r.indices) == 0 {
		return
	}
	if r.shader != nil {
		op := &ebiten.DrawTrianglesShaderOptions{
			Uniforms: map[string]any{
				"Time": u.ElapsedTime,
			},
			Blend: ebiten.BlendLighter,
		}
		screen.DrawTrianglesShader(r.vertices, r.indices, r.shader, op)
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		Blend:  ebiten.BlendLighter,
		Filter: ebiten.FilterLinear,
	}
	screen.DrawTriangles(r.vertices, r.indices, r.glowTex, op)
}

// String describes the active shading path
func (r *PointRenderer) String() string {
	mode := "sprite"
	if r.shader != nil {
		mode = "shader"
	}
	return fmt.Sprintf("PointRenderer(%s, %dx%d)", mode, r.Camera.ScreenW, r.Camera.ScreenH)
}
