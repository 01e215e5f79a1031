package graphics

import (
	"glbasics/internal/scene"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera is a scene node with a perspective projection. After
// changing FOV, Aspect, Near or Far call UpdateProjectionMatrix.
type PerspectiveCamera struct {
	scene.Node
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32

	projection mgl32.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.Init(c)
	c.Name = "camera"
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection from the current fields.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the matrix computed by the last UpdateProjectionMatrix.
func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// ViewMatrix is the inverse of the camera's world matrix.
func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	return c.WorldMatrix().Inv()
}

// LookAt rotates the camera so that its -Z axis points at target (given in
// the parent's space), keeping +Y up. Looking straight up or down falls back
// to +Z as the up reference.
func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	z := c.Position.Sub(target)
	if z.Len() == 0 {
		return
	}
	z = z.Normalize()

	up := mgl32.Vec3{0, 1, 0}
	x := up.Cross(z)
	if x.Len() < 1e-6 {
		up = mgl32.Vec3{0, 0, 1}
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	c.Rotation = eulerXYZFromBasis(x, y, z)
}

// eulerXYZFromBasis extracts Rx*Ry*Rz Euler angles from a rotation whose
// columns are x, y and z.
func eulerXYZFromBasis(x, y, z mgl32.Vec3) mgl32.Vec3 {
	// m[row][col]
	m11, m12, m13 := x[0], y[0], z[0]
	m22, m23 := y[1], z[1]
	m32, m33 := y[2], z[2]

	var e mgl32.Vec3
	e[1] = math32.Asin(mgl32.Clamp(m13, -1, 1))
	if math32.Abs(m13) < 0.9999999 {
		e[0] = math32.Atan2(-m23, m33)
		e[2] = math32.Atan2(-m12, m11)
	} else {
		e[0] = math32.Atan2(m32, m22)
		e[2] = 0
	}
	return e
}
