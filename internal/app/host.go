package app

import (
	"glbasics/internal/graphics/renderer"
	"glbasics/internal/input"
)

// Host owns the canvases a chapter can draw into.
type Host interface {
	// Lookup returns the canvas declared under id.
	Lookup(id string) (Surface, bool)
}

// Surface is one canvas: a window with a drawing context.
type Surface interface {
	// Size is the drawable size in window units.
	Size() (width, height int)
	// PixelRatio is the number of device pixels per window unit.
	PixelRatio() float32
	// Device creates the GPU device drawing into this surface.
	Device() (renderer.Device, error)
	// SetHandlers routes the surface's events to h. Events are delivered
	// synchronously from PollEvents.
	SetHandlers(h Handlers)
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	SetShouldClose(bool)
	ToggleFullscreen()
}

// Handlers receives surface events. Coordinates are window units with a
// top-left origin.
type Handlers interface {
	HandleResize(width, height int)
	HandlePointerMove(x, y float32)
	HandlePointerButton(b input.Button, s input.State, x, y float32)
	HandleScroll(dx, dy float32)
	HandleKey(k input.Key, s input.State)
	// HandleRefresh redraws without advancing time, e.g. during a live resize.
	HandleRefresh()
}
