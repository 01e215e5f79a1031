// Package controls moves a camera from pointer input.
package controls

import (
	"glbasics/internal/graphics"
	"glbasics/internal/input"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// eps is the squared distance below which the camera counts as unmoved.
const eps = 1e-6

type spherical struct {
	radius float32
	theta  float32 // azimuth around +Y, 0 on +Z
	phi    float32 // polar angle from +Y
}

func sphericalFrom(v mgl32.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math32.Atan2(v.X(), v.Z()),
		phi:    math32.Acos(mgl32.Clamp(v.Y()/r, -1, 1)),
	}
}

func (s spherical) vec() mgl32.Vec3 {
	sinPhiR := math32.Sin(s.phi) * s.radius
	return mgl32.Vec3{
		sinPhiR * math32.Sin(s.theta),
		math32.Cos(s.phi) * s.radius,
		sinPhiR * math32.Cos(s.theta),
	}
}

type mode int

const (
	modeNone mode = iota
	modeRotate
	modePan
)

// Orbit keeps a camera on a sphere around Target. Left drag rotates, right
// drag pans, the wheel zooms. Call Update once per frame; with EnableDamping
// the motion eases out over the following frames.
type Orbit struct {
	Camera *graphics.PerspectiveCamera
	Target mgl32.Vec3

	Enabled bool

	EnableDamping bool
	DampingFactor float32

	EnableZoom bool
	ZoomSpeed  float32

	EnableRotate bool
	RotateSpeed  float32

	EnablePan bool
	PanSpeed  float32

	// AutoRotate turns around the target while no drag is in progress.
	// AutoRotateSpeed 2 is one turn per 30 seconds at 60 updates per second.
	AutoRotate      bool
	AutoRotateSpeed float32

	MinDistance, MaxDistance     float32
	MinPolarAngle, MaxPolarAngle float32

	sph       spherical
	delta     spherical
	scale     float32
	panOffset mgl32.Vec3

	// camera and target as left by the last Update, to notice outside moves
	placed       mgl32.Vec3
	placedTarget mgl32.Vec3
	synced       bool

	lastPos mgl32.Vec3
	lastRot mgl32.Vec3

	mode  mode
	start mgl32.Vec2

	target0   mgl32.Vec3
	position0 mgl32.Vec3
}

// NewOrbit attaches controls to camera orbiting target.
func NewOrbit(camera *graphics.PerspectiveCamera, target mgl32.Vec3) *Orbit {
	o := &Orbit{
		Camera:          camera,
		Target:          target,
		Enabled:         true,
		DampingFactor:   0.05,
		EnableZoom:      true,
		ZoomSpeed:       1,
		EnableRotate:    true,
		RotateSpeed:     1,
		EnablePan:       true,
		PanSpeed:        1,
		AutoRotateSpeed: 2,
		MinDistance:     0,
		MaxDistance:     math32.Inf(1),
		MinPolarAngle:   0,
		MaxPolarAngle:   math32.Pi,
		scale:           1,
	}
	o.SaveState()
	o.Update()
	return o
}

// SaveState remembers the current target and camera position for Reset.
func (o *Orbit) SaveState() {
	o.target0 = o.Target
	o.position0 = o.Camera.Position
}

// Reset moves back to the saved state and drops pending motion.
func (o *Orbit) Reset() {
	o.Target = o.target0
	o.Camera.Position = o.position0
	o.delta = spherical{}
	o.panOffset = mgl32.Vec3{}
	o.scale = 1
	o.mode = modeNone
	o.synced = false
	o.Update()
}

// AzimuthalAngle is the current angle around the vertical axis, in radians.
func (o *Orbit) AzimuthalAngle() float32 { return o.sph.theta }

// PolarAngle is the current angle from the vertical axis, in radians.
func (o *Orbit) PolarAngle() float32 { return o.sph.phi }

// Distance is the current distance from camera to target.
func (o *Orbit) Distance() float32 { return o.sph.radius }

// Update applies pending motion and reports whether the camera moved.
func (o *Orbit) Update() bool {
	cam := o.Camera
	if !o.synced || cam.Position != o.placed || o.Target != o.placedTarget {
		o.sph = sphericalFrom(cam.Position.Sub(o.Target))
		o.synced = false
	}

	if o.AutoRotate && o.mode == modeNone {
		o.rotateLeft(2 * math32.Pi / 60 / 60 * o.AutoRotateSpeed)
	}
	if o.synced && o.delta == (spherical{}) && o.scale == 1 && o.panOffset == (mgl32.Vec3{}) {
		return false
	}

	f := float32(1)
	if o.EnableDamping {
		f = o.DampingFactor
	}
	o.sph.theta += o.delta.theta * f
	o.sph.phi += o.delta.phi * f
	o.sph.phi = mgl32.Clamp(o.sph.phi, o.MinPolarAngle, o.MaxPolarAngle)
	o.sph.phi = mgl32.Clamp(o.sph.phi, eps, math32.Pi-eps)
	o.sph.radius = mgl32.Clamp(o.sph.radius*o.scale, o.MinDistance, o.MaxDistance)
	o.Target = o.Target.Add(o.panOffset.Mul(f))

	cam.Position = o.Target.Add(o.sph.vec())
	cam.LookAt(o.Target)
	o.placed, o.placedTarget, o.synced = cam.Position, o.Target, true

	if o.EnableDamping {
		keep := 1 - o.DampingFactor
		o.delta.theta = settle(o.delta.theta * keep)
		o.delta.phi = settle(o.delta.phi * keep)
		o.panOffset = mgl32.Vec3{
			settle(o.panOffset.X() * keep),
			settle(o.panOffset.Y() * keep),
			settle(o.panOffset.Z() * keep),
		}
	} else {
		o.delta = spherical{}
		o.panOffset = mgl32.Vec3{}
	}
	zoomed := o.scale != 1
	o.scale = 1

	if zoomed || cam.Position.Sub(o.lastPos).LenSqr() > eps || cam.Rotation.Sub(o.lastRot).LenSqr() > eps {
		o.lastPos, o.lastRot = cam.Position, cam.Rotation
		return true
	}
	return false
}

// settle drops residual motion too small to move the camera.
func settle(v float32) float32 {
	if math32.Abs(v) < eps {
		return 0
	}
	return v
}

func (o *Orbit) rotateLeft(angle float32) { o.delta.theta -= angle }
func (o *Orbit) rotateUp(angle float32)   { o.delta.phi -= angle }

// pan moves the target by a screen-space drag of dx, dy window units on a
// surface height units tall, along the camera's own right and up axes.
func (o *Orbit) pan(dx, dy, height float32) {
	offset := o.Camera.Position.Sub(o.Target)
	// half the visible height at the target distance
	targetDistance := offset.Len() * math32.Tan(mgl32.DegToRad(o.Camera.FOV)/2)

	m := o.Camera.RotationMatrix()
	right := m.Col(0).Vec3()
	up := m.Col(1).Vec3()

	o.panOffset = o.panOffset.
		Add(right.Mul(-2 * dx * targetDistance / height)).
		Add(up.Mul(2 * dy * targetDistance / height))
}

func (o *Orbit) zoomScale() float32 {
	return math32.Pow(0.95, o.ZoomSpeed)
}

func (o *Orbit) PointerDown(e input.PointerEvent) bool {
	if !o.Enabled {
		return false
	}
	switch {
	case e.Button == input.ButtonLeft && o.EnableRotate:
		o.mode = modeRotate
	case e.Button == input.ButtonRight && o.EnablePan:
		o.mode = modePan
	default:
		return false
	}
	o.start = mgl32.Vec2{e.X, e.Y}
	return true
}

func (o *Orbit) PointerMove(e input.PointerEvent) bool {
	if o.mode == modeNone || e.Height <= 0 {
		return false
	}
	end := mgl32.Vec2{e.X, e.Y}
	d := end.Sub(o.start)
	o.start = end

	switch o.mode {
	case modeRotate:
		d = d.Mul(o.RotateSpeed)
		o.rotateLeft(2 * math32.Pi * d.X() / e.Height)
		o.rotateUp(2 * math32.Pi * d.Y() / e.Height)
	case modePan:
		d = d.Mul(o.PanSpeed)
		o.pan(d.X(), d.Y(), e.Height)
	}
	return true
}

func (o *Orbit) PointerUp(input.PointerEvent) bool {
	handled := o.mode != modeNone
	o.mode = modeNone
	return handled
}

func (o *Orbit) Scroll(e input.ScrollEvent) bool {
	if !o.Enabled || !o.EnableZoom || o.mode != modeNone || e.DY == 0 {
		return false
	}
	if e.DY > 0 {
		o.scale *= o.zoomScale()
	} else {
		o.scale /= o.zoomScale()
	}
	return true
}

var _ input.PointerListener = (*Orbit)(nil)
