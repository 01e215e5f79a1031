// Package app holds the per-chapter application context: the canvas, scene,
// camera, renderer and the small records kept in sync with host events.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"glbasics/internal/graphics"
	"glbasics/internal/graphics/renderer"
	"glbasics/internal/hud"
	"glbasics/internal/input"
	"glbasics/internal/profiling"
	"glbasics/internal/scene"
	"glbasics/internal/tween"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrCanvasNotFound is returned by Bootstrap when the host has no canvas with
// the requested id.
var ErrCanvasNotFound = errors.New("canvas element not found")

const (
	cameraFOV  = 75
	cameraNear = 1
	cameraFar  = 100
	cameraZ    = 3
)

// Sizes is the drawable size in window units.
type Sizes struct {
	Width, Height float32
}

// Cursor is the pointer position normalized to [-0.5, 0.5], y up.
type Cursor struct {
	X, Y float32
}

// FrameFunc advances chapter state. elapsed is the time since the loop started.
type FrameFunc func(ctx *Context, elapsed time.Duration)

// Options configure Bootstrap.
type Options struct {
	CanvasID   string
	Logger     *slog.Logger
	ClearColor colorful.Color
	ClearAlpha float32
}

// Context is everything a chapter works with. All fields are owned by the
// main thread.
type Context struct {
	Sizes  Sizes
	Cursor Cursor

	Surface  Surface
	Scene    *scene.Scene
	Camera   *graphics.PerspectiveCamera
	Renderer *renderer.Renderer
	Tweens   *tween.Engine
	Input    *input.Manager
	Profiler *profiling.Profiler
	Stats    *hud.Stats
	Log      *slog.Logger

	listeners []input.PointerListener
	actions   map[input.Action][]func()

	pointerX, pointerY float32
	minimized          bool
	maxPixelRatio      float32
	elapsed            time.Duration

	limiter *FPSLimiter
	now     func() time.Time
}

// Bootstrap looks up the canvas, then builds the scene, a perspective camera
// at z=3 (fov 75, near 1, far 100, added to the scene) and a renderer sized
// to the canvas. A missing canvas fails before anything is constructed.
func Bootstrap(host Host, opts Options) (*Context, error) {
	surface, ok := host.Lookup(opts.CanvasID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCanvasNotFound, opts.CanvasID)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	w, h := surface.Size()
	sizes := Sizes{Width: float32(w), Height: float32(h)}

	s := scene.NewScene()
	camera := graphics.NewPerspectiveCamera(cameraFOV, aspect(sizes), cameraNear, cameraFar)
	camera.Position = mgl32.Vec3{0, 0, cameraZ}
	s.Add(camera)

	device, err := surface.Device()
	if err != nil {
		return nil, fmt.Errorf("create device: %w", err)
	}
	r, err := renderer.New(device)
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	r.SetClearColor(opts.ClearColor, opts.ClearAlpha)
	profiler := profiling.New()
	stats := hud.NewStats(profiler, r.Info)
	if err := r.AddOverlay(stats); err != nil {
		r.Dispose()
		return nil, err
	}
	// the window system may not honor the requested size
	w, h = surface.Size()

	ctx := &Context{
		Sizes:    sizes,
		Surface:  surface,
		Scene:    s,
		Camera:   camera,
		Renderer: r,
		Tweens:   tween.NewEngine(),
		Input:    input.NewManager(),
		Profiler: profiler,
		Stats:    stats,
		Log:      log.With("canvas", opts.CanvasID),
		actions:  make(map[input.Action][]func()),
		limiter:  NewFPSLimiter(),
		now:      time.Now,
	}
	ctx.applySize(w, h)

	ctx.OnAction(input.ActionQuit, func() { surface.SetShouldClose(true) })
	ctx.OnAction(input.ActionToggleFullscreen, surface.ToggleFullscreen)
	ctx.OnAction(input.ActionToggleProfiling, stats.Toggle)
	surface.SetHandlers(ctx)

	ctx.Log.Debug("bootstrap", "width", w, "height", h, "pixel_ratio", r.PixelRatio())
	return ctx, nil
}

// AddPointerListener registers l. Listeners added later see events first.
func (c *Context) AddPointerListener(l input.PointerListener) {
	c.listeners = append(c.listeners, l)
}

// OnAction calls fn on the frame the action is first pressed.
func (c *Context) OnAction(a input.Action, fn func()) {
	c.actions[a] = append(c.actions[a], fn)
}

// Elapsed is the time passed to the last Step.
func (c *Context) Elapsed() time.Duration { return c.elapsed }

// Dispose releases the renderer and its device.
func (c *Context) Dispose() {
	c.Tweens.KillAll()
	c.Renderer.Dispose()
}

func aspect(s Sizes) float32 {
	if s.Height == 0 {
		return 1
	}
	return s.Width / s.Height
}
