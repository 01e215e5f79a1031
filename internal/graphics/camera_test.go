package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func forward(c *PerspectiveCamera) mgl32.Vec3 {
	return c.RotationMatrix().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
}

func TestLookAtPointsForwardAtTarget(t *testing.T) {
	cases := []struct {
		pos, target mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}},
		{mgl32.Vec3{3, 0, 0}, mgl32.Vec3{}},
		{mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, -2}},
		{mgl32.Vec3{0, 5, 0}, mgl32.Vec3{}},
	}
	for _, tc := range cases {
		c := NewPerspectiveCamera(75, 1.5, 1, 100)
		c.Position = tc.pos
		c.LookAt(tc.target)

		want := tc.target.Sub(tc.pos).Normalize()
		got := forward(c)
		assert.True(t, got.ApproxEqualThreshold(want, 1e-5), "from %v: forward %v, want %v", tc.pos, got, want)
	}
}

func TestLookAtFromPositiveZIsIdentity(t *testing.T) {
	c := NewPerspectiveCamera(75, 1, 1, 100)
	c.Position = mgl32.Vec3{0, 0, 3}
	c.LookAt(mgl32.Vec3{})
	assert.True(t, c.Rotation.ApproxEqualThreshold(mgl32.Vec3{}, 1e-6), "rotation %v", c.Rotation)
}

func TestViewMatrixMovesTargetOntoNegativeZ(t *testing.T) {
	c := NewPerspectiveCamera(75, 1, 1, 100)
	c.Position = mgl32.Vec3{2, 2, 2}
	c.LookAt(mgl32.Vec3{})

	v := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	dist := mgl32.Vec3{2, 2, 2}.Len()
	assert.InDelta(t, 0, v.X(), 1e-5)
	assert.InDelta(t, 0, v.Y(), 1e-5)
	assert.InDelta(t, -dist, v.Z(), 1e-5)
}

func TestProjectionFollowsAspect(t *testing.T) {
	c := NewPerspectiveCamera(75, 1, 1, 100)
	before := c.ProjectionMatrix()
	c.Aspect = 2
	assert.Equal(t, before, c.ProjectionMatrix(), "projection only changes on update")

	c.UpdateProjectionMatrix()
	want := mgl32.Perspective(mgl32.DegToRad(75), 2, 1, 100)
	assert.Equal(t, want, c.ProjectionMatrix())
	// x scale is y scale divided by aspect
	p := c.ProjectionMatrix()
	assert.InDelta(t, p.At(1, 1)/2, p.At(0, 0), 1e-6)
}
