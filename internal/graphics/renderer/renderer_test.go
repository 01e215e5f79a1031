package renderer_test

import (
	"testing"

	"glbasics/internal/geometry"
	"glbasics/internal/graphics"
	"glbasics/internal/graphics/renderer"
	"glbasics/internal/graphics/renderer/renderertest"
	"glbasics/internal/material"
	"glbasics/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overlay struct {
	inits, renders, disposes int
	w, h                     int
	order                    *[]string
	name                     string
}

func (o *overlay) Init() error { o.inits++; return nil }
func (o *overlay) Render(ctx renderer.RenderContext) {
	o.renders++
	ctx.Canvas.FillRect(0, 0, ctx.Width, ctx.Height, material.MustParseColor("#000000"), 0.5)
}
func (o *overlay) Dispose() {
	o.disposes++
	if o.order != nil {
		*o.order = append(*o.order, o.name)
	}
}
func (o *overlay) SetViewport(w, h int) { o.w, o.h = w, h }

func setup(t *testing.T) (*renderertest.Device, *renderer.Renderer, *scene.Scene, *graphics.PerspectiveCamera) {
	t.Helper()
	dev := renderertest.New()
	r, err := renderer.New(dev)
	require.NoError(t, err)
	cam := graphics.NewPerspectiveCamera(75, 1.5, 1, 100)
	cam.Position = mgl32.Vec3{0, 0, 3}
	s := scene.NewScene()
	s.Add(cam)
	return dev, r, s, cam
}

func TestSizeAndPixelRatio(t *testing.T) {
	dev, r, _, _ := setup(t)
	r.SetPixelRatio(2)
	r.SetSize(901, 600)

	w, h := r.Size()
	assert.Equal(t, 901, w)
	assert.Equal(t, 600, h)
	bw, bh := r.DrawingBufferSize()
	assert.Equal(t, 1802, bw)
	assert.Equal(t, 1200, bh)
	assert.Equal(t, 901, dev.Width)
	assert.Equal(t, float32(2), dev.PixelRatio)

	r.SetPixelRatio(1.5)
	bw, _ = r.DrawingBufferSize()
	assert.Equal(t, 1351, bw, "drawing buffer size is floored")

	r.SetPixelRatio(-1)
	assert.Equal(t, float32(1), r.PixelRatio())
}

func TestRenderUploadsOncePerGeometry(t *testing.T) {
	dev, r, s, cam := setup(t)
	box := geometry.NewBox(1, 1, 1)
	for i := 0; i < 3; i++ {
		s.Add(scene.NewMesh(box, material.NewNormal()))
	}
	s.Add(scene.NewAxesHelper(1))

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Render(s, cam))
	}
	assert.Equal(t, 2, dev.Uploads)
	assert.Len(t, dev.Draws, 4)
	assert.Equal(t, 4, r.Info().Calls)
	assert.Equal(t, 2, r.Info().Geometries)
	assert.Equal(t, uint64(5), r.Info().Frames)
}

func TestRenderSkipsInvisibleAndPassesTransforms(t *testing.T) {
	dev, r, s, cam := setup(t)
	g := scene.NewGroup()
	g.Position = mgl32.Vec3{0, 0, -2}
	hidden := scene.NewMesh(geometry.NewBox(1, 1, 1), material.NewNormal())
	hidden.Visible = false
	shown := scene.NewMesh(geometry.NewBox(1, 1, 1), &material.Basic{Color: material.MustParseColor("#ff0000"), Wireframe: true})
	shown.Position = mgl32.Vec3{2, 0, 0}
	g.Add(hidden, shown)
	s.Add(g)

	require.NoError(t, r.Render(s, cam))
	require.Len(t, dev.Draws, 1)
	call := dev.Draws[0]
	assert.True(t, call.Wireframe)
	assert.Equal(t, material.ShadingBasic, call.Shading)
	assert.Equal(t, 36, call.Count)
	assert.Equal(t, mgl32.Vec3{2, 0, -2}, call.Model.Col(3).Vec3())
	assert.Equal(t, cam.ViewMatrix(), call.View)
	assert.Equal(t, 1, dev.Uploads, "hidden meshes are never uploaded")
}

func TestDisposedGeometryIsReleased(t *testing.T) {
	dev, r, s, cam := setup(t)
	m := scene.NewMesh(geometry.NewBox(1, 1, 1), material.NewNormal())
	s.Add(m)
	require.NoError(t, r.Render(s, cam))

	for n := 2; n <= 20; n++ {
		m.SetGeometry(geometry.NewSegmentedBox(1, 1, 1, n, n, n))
		require.NoError(t, r.Render(s, cam))
		require.Len(t, dev.Live, 1, "after change %d", n)
	}
	assert.Equal(t, 19, dev.Releases)
	assert.Same(t, m.Geometry, dev.LiveGeometries()[0])

	// a disposed geometry that is drawn again is uploaded again
	m.Geometry.Dispose()
	assert.Empty(t, dev.Live)
	require.NoError(t, r.Render(s, cam))
	assert.Len(t, dev.Live, 1)
}

func TestUploadFailureIsReported(t *testing.T) {
	dev, r, s, cam := setup(t)
	s.Add(scene.NewMesh(geometry.NewBox(1, 1, 1), material.NewNormal()))
	dev.FailUploads = true
	err := r.Render(s, cam)
	assert.ErrorContains(t, err, "out of memory")
	assert.Empty(t, dev.Draws)
}

func TestOverlaysLifecycle(t *testing.T) {
	dev := renderertest.New()
	var order []string
	a := &overlay{name: "a", order: &order}
	b := &overlay{name: "b", order: &order}
	r, err := renderer.New(dev, a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, a.inits)

	r.SetSize(640, 480)
	assert.Equal(t, 640, b.w)

	cam := graphics.NewPerspectiveCamera(75, 1, 1, 100)
	require.NoError(t, r.Render(scene.NewScene(), cam))
	assert.Equal(t, 1, a.renders)
	assert.Len(t, dev.Rects, 2)

	r.Dispose()
	assert.Equal(t, []string{"b", "a"}, order)
	assert.True(t, dev.Closed)
}
