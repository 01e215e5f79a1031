package controls

import (
	"testing"

	"glbasics/internal/graphics"
	"glbasics/internal/input"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const height = 600

func newOrbit() (*Orbit, *graphics.PerspectiveCamera) {
	cam := graphics.NewPerspectiveCamera(75, 1.5, 1, 100)
	cam.Position = mgl32.Vec3{0, 0, 3}
	return NewOrbit(cam, mgl32.Vec3{}), cam
}

func drag(o *Orbit, b input.Button, dx, dy float32) {
	o.PointerDown(input.PointerEvent{X: 100, Y: 100, Button: b, Width: 900, Height: height})
	o.PointerMove(input.PointerEvent{X: 100 + dx, Y: 100 + dy, Width: 900, Height: height})
	o.PointerUp(input.PointerEvent{X: 100 + dx, Y: 100 + dy, Button: b})
}

func TestDampedRotationConvergesAndStops(t *testing.T) {
	o, cam := newOrbit()
	o.EnableDamping = true
	drag(o, input.ButtonLeft, 60, 0)

	want := -2 * math32.Pi * 60 / height
	prevGap := math32.Abs(want - o.AzimuthalAngle())
	settled := -1
	for i := 0; i < 2000; i++ {
		o.Update()
		gap := math32.Abs(want - o.AzimuthalAngle())
		require.LessOrEqual(t, gap, prevGap+1e-6, "update %d moved away from the target", i)
		prevGap = gap
		if settled < 0 && o.delta == (spherical{}) {
			settled = i
		}
	}
	require.Positive(t, settled, "motion never settled")
	assert.InDelta(t, want, o.AzimuthalAngle(), 1e-4)

	pos, rot := cam.Position, cam.Rotation
	for i := 0; i < 10; i++ {
		assert.False(t, o.Update())
	}
	assert.Equal(t, pos, cam.Position)
	assert.Equal(t, rot, cam.Rotation)
	assert.InDelta(t, 3, cam.Position.Len(), 1e-4)
}

func TestDampedStepsShrink(t *testing.T) {
	o, _ := newOrbit()
	o.EnableDamping = true
	drag(o, input.ButtonLeft, 0, -90)

	prev := o.PolarAngle()
	prevStep := float32(math32.Inf(1))
	for i := 0; i < 100; i++ {
		o.Update()
		step := math32.Abs(o.PolarAngle() - prev)
		assert.LessOrEqual(t, step, prevStep+1e-6)
		prev, prevStep = o.PolarAngle(), step
	}
}

func TestUndampedRotationAppliesAtOnce(t *testing.T) {
	o, cam := newOrbit()
	drag(o, input.ButtonLeft, 150, 0) // a quarter turn on a 600 tall surface
	require.True(t, o.Update())
	assert.InDelta(t, -math32.Pi/2, o.AzimuthalAngle(), 1e-5)
	assert.True(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{-3, 0, 0}, 1e-4), "%v", cam.Position)
	assert.False(t, o.Update())
}

func TestPolarAngleIsClamped(t *testing.T) {
	o, _ := newOrbit()
	o.MaxPolarAngle = math32.Pi / 2
	// dragging down lifts the camera over the top
	drag(o, input.ButtonLeft, 0, 1200)
	o.Update()
	assert.InDelta(t, eps, o.PolarAngle(), 1e-7)

	drag(o, input.ButtonLeft, 0, -2400)
	o.Update()
	assert.InDelta(t, math32.Pi/2, o.PolarAngle(), 1e-6)
}

func TestAutoRotateKeepsMoving(t *testing.T) {
	o, _ := newOrbit()
	o.EnableDamping = true
	o.DampingFactor = 0.01
	o.AutoRotate = true
	for i := 0; i < 1000; i++ {
		o.Update()
	}
	before := o.AzimuthalAngle()
	assert.True(t, o.Update())
	assert.Less(t, o.AzimuthalAngle(), before)
	assert.InDelta(t, 3, o.Distance(), 1e-4)
}

func TestZoomRespectsDistanceLimits(t *testing.T) {
	o, cam := newOrbit()
	o.MinDistance = 2
	o.MaxDistance = 4

	for i := 0; i < 50; i++ {
		require.True(t, o.Scroll(input.ScrollEvent{DY: 1}))
		o.Update()
	}
	assert.InDelta(t, 2, cam.Position.Len(), 1e-5)

	for i := 0; i < 50; i++ {
		o.Scroll(input.ScrollEvent{DY: -1})
		o.Update()
	}
	assert.InDelta(t, 4, cam.Position.Len(), 1e-5)

	o.EnableZoom = false
	assert.False(t, o.Scroll(input.ScrollEvent{DY: 1}))
}

func TestPanMovesTargetWithCamera(t *testing.T) {
	o, cam := newOrbit()
	drag(o, input.ButtonRight, 30, 0)
	o.Update()
	assert.Less(t, o.Target.X(), float32(0))
	assert.InDelta(t, 0, o.Target.Y(), 1e-6)
	assert.InDelta(t, o.Target.X(), cam.Position.X(), 1e-5)
	assert.InDelta(t, 3, cam.Position.Sub(o.Target).Len(), 1e-5)

	o.EnablePan = false
	assert.False(t, o.PointerDown(input.PointerEvent{Button: input.ButtonRight, Height: height}))
}

func TestOutsideMovesAreAdopted(t *testing.T) {
	o, cam := newOrbit()
	cam.Position = mgl32.Vec3{3, 0, 0}
	assert.True(t, o.Update())
	assert.InDelta(t, math32.Pi/2, o.AzimuthalAngle(), 1e-5)
}

func TestResetAndSaveState(t *testing.T) {
	o, cam := newOrbit()
	drag(o, input.ButtonLeft, 100, 40)
	o.Update()
	require.False(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 3}, 1e-3))

	o.Reset()
	assert.True(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 3}, 1e-5))

	o.Target = mgl32.Vec3{0, 1, 0}
	o.SaveState()
	drag(o, input.ButtonLeft, 10, 0)
	o.Update()
	o.Reset()
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, o.Target)
}

func TestDisabledIgnoresPointer(t *testing.T) {
	o, _ := newOrbit()
	o.Enabled = false
	assert.False(t, o.PointerDown(input.PointerEvent{Button: input.ButtonLeft, Height: height}))
	assert.False(t, o.PointerMove(input.PointerEvent{X: 50, Height: height}))
	assert.False(t, o.Scroll(input.ScrollEvent{DY: 1}))
	assert.False(t, o.Update())
}
