package renderer

import (
	"errors"
	"fmt"

	"glbasics/internal/geometry"
	"glbasics/internal/graphics"
	"glbasics/internal/material"
	"glbasics/internal/scene"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// Info reports resource usage after the last Render.
type Info struct {
	Geometries int // geometry buffers alive on the device
	Calls      int // draw calls issued by the last frame
	Frames     uint64
}

// Renderer draws a scene through a Device and owns the geometry buffers it uploads.
type Renderer struct {
	device     Device
	overlays   []Renderable
	width      int
	height     int
	pixelRatio float32

	clearColor colorful.Color
	clearAlpha float32

	buffers map[*geometry.Geometry]BufferID
	info    Info
}

// New creates a renderer and initializes overlays in order.
func New(device Device, overlays ...Renderable) (*Renderer, error) {
	r := &Renderer{
		device:     device,
		pixelRatio: 1,
		clearAlpha: 1,
		buffers:    make(map[*geometry.Geometry]BufferID),
	}
	for _, o := range overlays {
		if err := r.AddOverlay(o); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// AddOverlay initializes o and draws it after the scene on every Render.
func (r *Renderer) AddOverlay(o Renderable) error {
	if err := o.Init(); err != nil {
		return fmt.Errorf("init overlay: %w", err)
	}
	o.SetViewport(r.width, r.height)
	r.overlays = append(r.overlays, o)
	return nil
}

// SetSize sets the logical surface size and resizes the drawing buffer.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.device.SetViewport(width, height, r.pixelRatio)
	for _, o := range r.overlays {
		o.SetViewport(width, height)
	}
}

// Size returns the logical surface size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// SetPixelRatio sets how many drawing-buffer pixels back one logical unit.
// Non-positive ratios are treated as 1.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	if ratio == r.pixelRatio {
		return
	}
	r.pixelRatio = ratio
	r.device.SetViewport(r.width, r.height, r.pixelRatio)
}

// PixelRatio returns the current pixel ratio.
func (r *Renderer) PixelRatio() float32 { return r.pixelRatio }

// DrawingBufferSize is the size in device pixels: floor(size * ratio).
func (r *Renderer) DrawingBufferSize() (width, height int) {
	return int(math32.Floor(float32(r.width) * r.pixelRatio)),
		int(math32.Floor(float32(r.height) * r.pixelRatio))
}

// SetClearColor sets the color used to clear before each frame.
func (r *Renderer) SetClearColor(c colorful.Color, alpha float32) {
	r.clearColor, r.clearAlpha = c, alpha
}

// Info returns resource counters.
func (r *Renderer) Info() Info {
	r.info.Geometries = len(r.buffers)
	return r.info
}

// Render clears the surface, draws every visible mesh and line object of s
// as seen from camera, then draws the overlays. Objects whose geometry fails
// to upload are skipped; the errors are joined and returned.
func (r *Renderer) Render(s *scene.Scene, camera *graphics.PerspectiveCamera) error {
	bg := r.clearColor
	if s.Background != nil {
		bg = *s.Background
	}
	r.device.Clear(bg, r.clearAlpha)

	view := camera.ViewMatrix()
	proj := camera.ProjectionMatrix()

	var errs []error
	calls := 0
	s.TraverseVisible(func(o scene.Object) {
		var g *geometry.Geometry
		var m material.Material
		switch obj := o.(type) {
		case *scene.Mesh:
			g, m = obj.Geometry, obj.Material
		case *scene.LineSegments:
			g, m = obj.Geometry, obj.Material
		default:
			return
		}
		if g == nil || m == nil || g.VertexCount() == 0 {
			return
		}

		id, err := r.buffer(g)
		if err != nil {
			errs = append(errs, err)
			return
		}
		r.device.Draw(DrawCall{
			Buffer:     id,
			Kind:       g.Kind(),
			Count:      g.VertexCount(),
			Model:      o.Base().WorldMatrix(),
			View:       view,
			Projection: proj,
			Shading:    m.Shading(),
			Color:      m.BaseColor(),
			Opacity:    m.Opacity(),
			Wireframe:  m.IsWireframe(),
		})
		calls++
	})

	ctx := RenderContext{
		Canvas: r.device,
		Scene:  s,
		Camera: camera,
		Width:  float32(r.width),
		Height: float32(r.height),
	}
	for _, o := range r.overlays {
		o.Render(ctx)
	}

	r.info.Calls = calls
	r.info.Frames++
	return errors.Join(errs...)
}

// buffer returns the device buffer for g, uploading it on first use. The
// buffer is released when g is disposed.
func (r *Renderer) buffer(g *geometry.Geometry) (BufferID, error) {
	if id, ok := r.buffers[g]; ok {
		return id, nil
	}
	id, err := r.device.Upload(g)
	if err != nil {
		return 0, fmt.Errorf("upload geometry %d: %w", g.ID(), err)
	}
	r.buffers[g] = id
	g.OnDispose(r.release)
	return id, nil
}

func (r *Renderer) release(g *geometry.Geometry) {
	id, ok := r.buffers[g]
	if !ok {
		return
	}
	delete(r.buffers, g)
	r.device.Release(id)
}

// Dispose releases every geometry buffer and overlay, overlays in reverse
// order, then closes the device.
func (r *Renderer) Dispose() {
	for g, id := range r.buffers {
		r.device.Release(id)
		delete(r.buffers, g)
	}
	for i := len(r.overlays) - 1; i >= 0; i-- {
		r.overlays[i].Dispose()
	}
	r.overlays = nil
	r.device.Close()
}
