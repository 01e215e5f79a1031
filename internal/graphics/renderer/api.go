package renderer

import (
	"glbasics/internal/geometry"
	"glbasics/internal/graphics"
	"glbasics/internal/material"
	"glbasics/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// BufferID names a geometry uploaded to a Device.
type BufferID uint32

// DrawCall is everything a Device needs to draw one object.
type DrawCall struct {
	Buffer     BufferID
	Kind       geometry.Kind
	Count      int
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Shading    material.Shading
	Color      colorful.Color
	Opacity    float32
	Wireframe  bool
}

// Canvas2D draws screen-space overlays. Coordinates are window units with a
// top-left origin.
type Canvas2D interface {
	FillRect(x, y, w, h float32, c colorful.Color, alpha float32)
	DrawText(text string, x, y, scale float32, c colorful.Color)
	MeasureText(text string, scale float32) (w, h float32)
}

// Device is the GPU backend the renderer drives.
type Device interface {
	Canvas2D
	// SetViewport sizes the drawing buffer to width*pixelRatio by
	// height*pixelRatio and the 2D space to width by height.
	SetViewport(width, height int, pixelRatio float32)
	Clear(c colorful.Color, alpha float32)
	Upload(g *geometry.Geometry) (BufferID, error)
	Release(id BufferID)
	Draw(call DrawCall)
	Close()
}

// RenderContext provides shared context for overlays
type RenderContext struct {
	Canvas Canvas2D
	Scene  *scene.Scene
	Camera *graphics.PerspectiveCamera
	Width  float32
	Height float32
}

// Renderable is an overlay drawn after the scene, such as the debug panel
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
