package app_test

import (
	"errors"
	"testing"
	"time"

	"glbasics/internal/app"
	"glbasics/internal/app/apptest"
	"glbasics/internal/config"
	"glbasics/internal/geometry"
	"glbasics/internal/input"
	"glbasics/internal/material"
	"glbasics/internal/scene"
	"glbasics/internal/tween"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bootstrap(t *testing.T) (*app.Context, *apptest.Surface) {
	t.Helper()
	host := apptest.NewHost("webgl", 900, 600)
	ctx, err := app.Bootstrap(host, app.Options{CanvasID: "webgl", ClearAlpha: 1})
	require.NoError(t, err)
	return ctx, host.Surfaces["webgl"]
}

func uncapped(t *testing.T) {
	prev := config.GetFPSLimit()
	config.SetFPSLimit(0)
	t.Cleanup(func() { config.SetFPSLimit(prev) })
}

func TestMissingCanvasAbortsBeforeConstruction(t *testing.T) {
	host := apptest.NewHost("webgl", 900, 600)
	ctx, err := app.Bootstrap(host, app.Options{CanvasID: "canvas"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, app.ErrCanvasNotFound))
	assert.ErrorContains(t, err, `"canvas"`)
	assert.Nil(t, ctx)
	assert.Zero(t, host.Surfaces["webgl"].DeviceCalls, "no device is created")
	assert.Equal(t, []string{"canvas"}, host.Lookups)
}

func TestDeviceErrorIsWrapped(t *testing.T) {
	host := apptest.NewHost("webgl", 900, 600)
	host.Surfaces["webgl"].DeviceErr = errors.New("no GL 4.1")
	_, err := app.Bootstrap(host, app.Options{CanvasID: "webgl"})
	assert.ErrorContains(t, err, "create device: no GL 4.1")
}

func TestBootstrapBuildsCameraAndRenderer(t *testing.T) {
	ctx, s := bootstrap(t)
	cam := ctx.Camera
	assert.Equal(t, float32(75), cam.FOV)
	assert.Equal(t, float32(1), cam.Near)
	assert.Equal(t, float32(100), cam.Far)
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, cam.Position)
	assert.InDelta(t, 1.5, cam.Aspect, 1e-6)
	assert.Same(t, ctx.Scene.Base(), cam.Parent())
	assert.Equal(t, app.Sizes{Width: 900, Height: 600}, ctx.Sizes)

	w, h := ctx.Renderer.Size()
	assert.Equal(t, 900, w)
	assert.Equal(t, 600, h)
	assert.Same(t, ctx, s.Handlers)
}

func TestResizeKeepsCameraAndRendererInSync(t *testing.T) {
	ctx, s := bootstrap(t)
	s.Ratio = 3

	for _, size := range [][2]int{{1280, 720}, {333, 1000}, {1, 1}, {1920, 1080}} {
		ctx.HandleResize(size[0], size[1])

		assert.Equal(t, float32(size[0]), ctx.Sizes.Width)
		assert.Equal(t, float32(size[1]), ctx.Sizes.Height)
		assert.Equal(t, ctx.Sizes.Width/ctx.Sizes.Height, ctx.Camera.Aspect)
		assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(75), ctx.Camera.Aspect, 1, 100), ctx.Camera.ProjectionMatrix())

		w, h := ctx.Renderer.Size()
		assert.Equal(t, size[0], w)
		assert.Equal(t, size[1], h)
		assert.Equal(t, float32(2), ctx.Renderer.PixelRatio(), "device ratio is capped at 2")
		assert.Equal(t, size[0], s.Dev.Width)
	}

	s.Ratio = 1.25
	ctx.HandleResize(800, 600)
	assert.Equal(t, float32(1.25), ctx.Renderer.PixelRatio())
}

func TestMinimizedResizeIsIgnored(t *testing.T) {
	ctx, _ := bootstrap(t)
	ctx.HandleResize(0, 0)
	assert.Equal(t, app.Sizes{Width: 900, Height: 600}, ctx.Sizes)
	assert.InDelta(t, 1.5, ctx.Camera.Aspect, 1e-6)
}

func TestPixelRatioFollowsConfigReload(t *testing.T) {
	uncapped(t)
	ctx, s := bootstrap(t)
	s.Ratio = 3
	ctx.HandleResize(900, 600)
	require.Equal(t, float32(2), ctx.Renderer.PixelRatio())

	config.SetMaxPixelRatio(3)
	t.Cleanup(func() { config.SetMaxPixelRatio(2) })
	s.CloseAfter = 1
	require.NoError(t, ctx.Run(nil))
	assert.Equal(t, float32(3), ctx.Renderer.PixelRatio())
}

func TestCursorIsNormalized(t *testing.T) {
	ctx, _ := bootstrap(t)
	cases := []struct {
		cx, cy float32
		want   app.Cursor
	}{
		{0, 0, app.Cursor{X: -0.5, Y: 0.5}},
		{450, 300, app.Cursor{X: 0, Y: 0}},
		{900, 600, app.Cursor{X: 0.5, Y: -0.5}},
		{225, 450, app.Cursor{X: -0.25, Y: -0.25}},
	}
	for _, tc := range cases {
		ctx.HandlePointerMove(tc.cx, tc.cy)
		assert.InDelta(t, tc.want.X, ctx.Cursor.X, 1e-6)
		assert.InDelta(t, tc.want.Y, ctx.Cursor.Y, 1e-6)
		assert.Equal(t, tc.cx/ctx.Sizes.Width-0.5, ctx.Cursor.X)
		assert.Equal(t, -(tc.cy/ctx.Sizes.Height - 0.5), ctx.Cursor.Y)
	}

	ctx.HandleResize(1800, 600)
	ctx.HandlePointerMove(450, 300)
	assert.InDelta(t, -0.25, ctx.Cursor.X, 1e-6)
}

type recorder struct {
	name    string
	consume bool
	log     *[]string
}

func (r *recorder) note(ev string) bool {
	*r.log = append(*r.log, r.name+":"+ev)
	return r.consume
}
func (r *recorder) PointerDown(input.PointerEvent) bool { return r.note("down") }
func (r *recorder) PointerMove(input.PointerEvent) bool { return r.note("move") }
func (r *recorder) PointerUp(input.PointerEvent) bool   { return r.note("up") }
func (r *recorder) Scroll(input.ScrollEvent) bool       { return r.note("scroll") }

func TestPointerListenersLastRegisteredFirst(t *testing.T) {
	ctx, _ := bootstrap(t)
	var log []string
	controls := &recorder{name: "controls", log: &log}
	panel := &recorder{name: "panel", consume: true, log: &log}
	ctx.AddPointerListener(controls)
	ctx.AddPointerListener(panel)

	ctx.HandlePointerButton(input.ButtonLeft, input.Press, 10, 10)
	ctx.HandleScroll(0, 1)
	ctx.HandlePointerButton(input.ButtonLeft, input.Release, 10, 10)
	assert.Equal(t, []string{"panel:down", "panel:scroll", "panel:up", "controls:up"}, log)

	log = nil
	panel.consume = false
	ctx.HandlePointerMove(5, 5)
	assert.Equal(t, []string{"panel:move", "controls:move"}, log)
	assert.True(t, ctx.Input.JustReleased(input.ActionPointerPrimary))
}

func TestStepUpdatesBeforeDrawing(t *testing.T) {
	ctx, s := bootstrap(t)
	mesh := scene.NewMesh(geometry.NewBox(1, 1, 1), material.NewNormal())
	ctx.Scene.Add(mesh)
	ctx.Tweens.To(tween.Props{&mesh.Position[2]: -5}, tween.Vars{Duration: time.Second, Ease: tween.Linear})

	var seenZ float32
	frame := func(c *app.Context, elapsed time.Duration) {
		seenZ = mesh.Position.Z()
		mesh.Rotation = mgl32.Vec3{float32(elapsed.Seconds()), float32(elapsed.Seconds()), 0}
	}

	require.NoError(t, ctx.Step(0, frame))
	require.NoError(t, ctx.Step(500*time.Millisecond, frame))
	assert.InDelta(t, -2.5, seenZ, 1e-6, "tweens advance before the frame function")

	require.Len(t, s.Dev.Draws, 1)
	assert.Equal(t, mesh.WorldMatrix(), s.Dev.Draws[0].Model, "the draw uses the updated transform")
	assert.Equal(t, 2, s.Dev.Frames)
	assert.Equal(t, 500*time.Millisecond, ctx.Elapsed())
}

func TestRunStepsUntilClosed(t *testing.T) {
	uncapped(t)
	ctx, s := bootstrap(t)
	s.CloseAfter = 3
	frames := 0
	require.NoError(t, ctx.Run(func(*app.Context, time.Duration) { frames++ }))
	assert.Equal(t, 3, frames)
	assert.Equal(t, 3, s.Swaps)
	assert.Equal(t, 3, s.Polls)
	assert.Equal(t, 3, s.Dev.Frames)
}

func TestKeysRunActions(t *testing.T) {
	uncapped(t)
	ctx, s := bootstrap(t)
	toggles := 0
	ctx.OnAction(input.ActionTogglePanel, func() { toggles++ })

	s.Queue(func(h app.Handlers) { h.HandleKey(input.KeyH, input.Press) })
	s.Queue(func(h app.Handlers) { h.HandleKey(input.KeyF, input.Press) })
	s.Queue(func(h app.Handlers) { h.HandleKey(input.KeyP, input.Press) })
	s.CloseAfter = 2
	require.NoError(t, ctx.Run(nil))
	assert.Equal(t, 1, toggles, "a held key fires once")
	assert.True(t, s.Fullscreen)
	assert.True(t, ctx.Stats.Visible())
	assert.NotEmpty(t, s.Dev.Texts, "stats overlay drawn")

	s.CloseAfter = 0
	s.Queue(func(h app.Handlers) { h.HandleKey(input.KeyEscape, input.Press) })
	require.NoError(t, ctx.Run(nil))
	assert.True(t, s.ShouldClose())
}

func TestRefreshRedraws(t *testing.T) {
	ctx, s := bootstrap(t)
	ctx.HandleRefresh()
	assert.Equal(t, 1, s.Dev.Frames)
	assert.Equal(t, 1, s.Swaps)
}

func TestDispose(t *testing.T) {
	ctx, s := bootstrap(t)
	ctx.Scene.Add(scene.NewMesh(geometry.NewBox(1, 1, 1), material.NewNormal()))
	require.NoError(t, ctx.Step(0, nil))
	ctx.Dispose()
	assert.Empty(t, s.Dev.Live)
	assert.True(t, s.Dev.Closed)
}
