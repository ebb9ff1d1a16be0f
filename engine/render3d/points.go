package render3d

import (
	"github.com/1siamBot/neon-backdrop/engine/particles"
	"github.com/go-gl/mathgl/mgl32"
)

// Sprite is one particle after the vertex stage: a screen-space square
// point with its shading inputs
type Sprite struct {
	Center  mgl32.Vec2 // pixels, Y down
	Size    float32    // side length in pixels
	Color   mgl32.Vec3
	Opacity float32
	Depth   float32 // view-space distance, drives flicker and tint
}

// PointOptions tunes the vertex stage
type PointOptions struct {
	// MaxPointSize clamps the on-screen size, like a GL point size limit
	MaxPointSize float32
	// PointScale multiplies sizes, for supersampled targets
	PointScale float32
}

// DefaultPointOptions returns the options used by the live renderer
func DefaultPointOptions() PointOptions {
	return PointOptions{MaxPointSize: 256, PointScale: 1}
}

// BuildSprites runs the vertex stage over every particle of f and appends
// the visible ones to dst
func BuildSprites(dst []Sprite, f *particles.Field, u *particles.Uniforms, cam *Camera3D, opts PointOptions) []Sprite {
	pr := cam.Projector(u.Rotation)
	w, h := float32(cam.ScreenW), float32(cam.ScreenH)
	scale := opts.PointScale
	if scale <= 0 {
		scale = 1
	}

	for i := range f.Positions {
		pos := f.Positions[i]
		displaced := particles.Displace(pos, u)

		center, depth, ok := pr.Project(displaced)
		if !ok {
			continue
		}

		size := particles.PointSize(f.Sizes[i], depth, pos, u.ElapsedTime) * scale
		if opts.MaxPointSize > 0 && size > opts.MaxPointSize*scale {
			size = opts.MaxPointSize * scale
		}
		if size <= 0 {
			continue
		}

		// Skip points entirely off screen
		half := size / 2
		if center[0]+half < 0 || center[0]-half > w || center[1]+half < 0 || center[1]-half > h {
			continue
		}

		dst = append(dst, Sprite{
			Center:  center,
			Size:    size,
			Color:   f.Colors[i],
			Opacity: f.Opacities[i],
			Depth:   depth,
		})
	}
	return dst
}
