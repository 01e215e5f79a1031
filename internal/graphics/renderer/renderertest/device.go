// Package renderertest provides an in-memory renderer.Device for tests.
package renderertest

import (
	"fmt"

	"glbasics/internal/geometry"
	"glbasics/internal/graphics/renderer"

	"github.com/lucasb-eyer/go-colorful"
)

// Rect is a recorded FillRect call.
type Rect struct {
	X, Y, W, H float32
	Color      colorful.Color
	Alpha      float32
}

// Text is a recorded DrawText call.
type Text struct {
	Text  string
	X, Y  float32
	Scale float32
}

// Device records every call. Text measures 8 units per rune and 16 units high
// at scale 1.
type Device struct {
	Width, Height int
	PixelRatio    float32
	Viewports     int

	Live     map[renderer.BufferID]*geometry.Geometry
	Uploads  int
	Releases int
	// FailUploads makes Upload return an error.
	FailUploads bool

	Frames int
	Draws  []renderer.DrawCall
	Rects  []Rect
	Texts  []Text
	Closed bool

	next renderer.BufferID
}

// New returns an empty Device.
func New() *Device {
	return &Device{Live: make(map[renderer.BufferID]*geometry.Geometry)}
}

func (d *Device) SetViewport(width, height int, pixelRatio float32) {
	d.Width, d.Height, d.PixelRatio = width, height, pixelRatio
	d.Viewports++
}

// Clear starts a new frame: the per-frame draw, rect and text logs are reset.
func (d *Device) Clear(colorful.Color, float32) {
	d.Frames++
	d.Draws = d.Draws[:0]
	d.Rects = d.Rects[:0]
	d.Texts = d.Texts[:0]
}

func (d *Device) Upload(g *geometry.Geometry) (renderer.BufferID, error) {
	if d.FailUploads {
		return 0, fmt.Errorf("out of memory")
	}
	d.next++
	d.Live[d.next] = g
	d.Uploads++
	return d.next, nil
}

func (d *Device) Release(id renderer.BufferID) {
	if _, ok := d.Live[id]; !ok {
		panic(fmt.Sprintf("release of unknown buffer %d", id))
	}
	delete(d.Live, id)
	d.Releases++
}

func (d *Device) Draw(call renderer.DrawCall) {
	if _, ok := d.Live[call.Buffer]; !ok {
		panic(fmt.Sprintf("draw with released buffer %d", call.Buffer))
	}
	d.Draws = append(d.Draws, call)
}

func (d *Device) FillRect(x, y, w, h float32, c colorful.Color, alpha float32) {
	d.Rects = append(d.Rects, Rect{X: x, Y: y, W: w, H: h, Color: c, Alpha: alpha})
}

func (d *Device) DrawText(text string, x, y, scale float32, _ colorful.Color) {
	d.Texts = append(d.Texts, Text{Text: text, X: x, Y: y, Scale: scale})
}

func (d *Device) MeasureText(text string, scale float32) (float32, float32) {
	return float32(len([]rune(text))) * 8 * scale, 16 * scale
}

func (d *Device) Close() { d.Closed = true }

// LiveGeometries returns the geometries that currently own a buffer.
func (d *Device) LiveGeometries() []*geometry.Geometry {
	out := make([]*geometry.Geometry, 0, len(d.Live))
	for _, g := range d.Live {
		out = append(out, g)
	}
	return out
}
