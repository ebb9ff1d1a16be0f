package render3d

import "github.com/go-gl/mathgl/mgl32"

// Camera3D is a perspective camera looking down -Z from Eye
type Camera3D struct {
	Eye       mgl32.Vec3
	FovY      float32 // degrees
	Near, Far float32

	// Screen dimensions
	ScreenW, ScreenH int

	// Computed matrices
	view  mgl32.Mat4
	proj  mgl32.Mat4
	dirty bool
}

// NewCamera3D creates the backdrop camera: 75 degree field of view, placed
// five units in front of the field center.
func NewCamera3D(screenW, screenH int) *Camera3D {
	return &Camera3D{
		Eye:     mgl32.Vec3{0, 0, 5},
		FovY:    75,
		Near:    0.1,
		Far:     1000,
		ScreenW: screenW,
		ScreenH: screenH,
		dirty:   true,
	}
}

// Resize updates the aspect ratio
func (c *Camera3D) Resize(screenW, screenH int) {
	if screenW == c.ScreenW && screenH == c.ScreenH {
		return
	}
	c.ScreenW = screenW
	c.ScreenH = screenH
	c.dirty = true
}

func (c *Camera3D) update() {
	if !c.dirty {
		return
	}
	c.dirty = false

	center := c.Eye.Sub(mgl32.Vec3{0, 0, 1})
	c.view = mgl32.LookAtV(c.Eye, center, mgl32.Vec3{0, 1, 0})

	aspect := float32(1)
	if c.ScreenH > 0 {
		aspect = float32(c.ScreenW) / float32(c.ScreenH)
	}
	c.proj = mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// View returns the view matrix
func (c *Camera3D) View() mgl32.Mat4 {
	c.update()
	return c.view
}

// Proj returns the projection matrix
func (c *Camera3D) Proj() mgl32.Mat4 {
	c.update()
	return c.proj
}

// Model builds the field's model matrix from Euler XYZ angles
func Model(rot mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(rot[0]).
		Mul4(mgl32.HomogRotate3DY(rot[1])).
		Mul4(mgl32.HomogRotate3DZ(rot[2]))
}

// Projector maps object-space points to the screen for one frame
type Projector struct {
	modelView mgl32.Mat4
	proj      mgl32.Mat4
	near, far float32
	w, h      float32
}

// Projector returns a projector for a field rotated by rot
func (c *Camera3D) Projector(rot mgl32.Vec3) Projector {
	c.update()
	return Projector{
		modelView: c.view.Mul4(Model(rot)),
		proj:      c.proj,
		near:      c.Near,
		far:       c.Far,
		w:         float32(c.ScreenW),
		h:         float32(c.ScreenH),
	}
}

// Project returns the screen position in pixels (Y down) and the view-space
// depth of p. ok is false when p lies outside the near/far range.
func (pr Projector) Project(p mgl32.Vec3) (screen mgl32.Vec2, depth float32, ok bool) {
	mv := pr.modelView.Mul4x1(p.Vec4(1))
	depth = -mv.Z()
	if depth <= pr.near || depth >= pr.far {
		return mgl32.Vec2{}, depth, false
	}
	clip := pr.proj.Mul4x1(mv)
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	screen = mgl32.Vec2{
		(ndcX*0.5 + 0.5) * pr.w,
		(1 - (ndcY*0.5 + 0.5)) * pr.h,
	}
	return screen, depth, true
}

// Project converts a single object-space point without rotation
func (c *Camera3D) Project(p mgl32.Vec3) (mgl32.Vec2, float32, bool) {
	return c.Projector(mgl32.Vec3{}).Project(p)
}
