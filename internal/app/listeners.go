package app

import (
	"glbasics/internal/config"
	"glbasics/internal/input"
)

var _ Handlers = (*Context)(nil)

// HandleResize brings Sizes, the camera aspect and the renderer in line with
// the new surface size. Zero sizes (minimized windows) are ignored.
func (c *Context) HandleResize(width, height int) {
	if width <= 0 || height <= 0 {
		c.minimized = true
		return
	}
	c.minimized = false
	c.applySize(width, height)
}

func (c *Context) applySize(width, height int) {
	c.Sizes = Sizes{Width: float32(width), Height: float32(height)}
	c.Camera.Aspect = aspect(c.Sizes)
	c.Camera.UpdateProjectionMatrix()
	c.Renderer.SetSize(width, height)
	c.maxPixelRatio = config.GetMaxPixelRatio()
	c.Renderer.SetPixelRatio(config.ClampPixelRatio(c.Surface.PixelRatio()))
}

// syncPixelRatio reapplies the pixel ratio cap after a config reload.
func (c *Context) syncPixelRatio() {
	if c.maxPixelRatio == config.GetMaxPixelRatio() {
		return
	}
	c.maxPixelRatio = config.GetMaxPixelRatio()
	c.Renderer.SetPixelRatio(config.ClampPixelRatio(c.Surface.PixelRatio()))
	c.Log.Debug("pixel ratio changed", "pixel_ratio", c.Renderer.PixelRatio())
}

// HandlePointerMove updates Cursor and forwards the move to pointer listeners.
func (c *Context) HandlePointerMove(x, y float32) {
	c.pointerX, c.pointerY = x, y
	if c.Sizes.Width > 0 && c.Sizes.Height > 0 {
		c.Cursor = Cursor{
			X: x/c.Sizes.Width - 0.5,
			Y: -(y/c.Sizes.Height - 0.5),
		}
	}
	e := c.pointerEvent(x, y, input.ButtonLeft)
	c.dispatch(func(l input.PointerListener) bool { return l.PointerMove(e) })
}

// HandlePointerButton records the button and forwards it. Presses stop at the
// first listener that consumes them; releases reach every listener so drags
// always end.
func (c *Context) HandlePointerButton(b input.Button, s input.State, x, y float32) {
	c.Input.HandleButton(b, s)
	c.pointerX, c.pointerY = x, y
	e := c.pointerEvent(x, y, b)
	if s == input.Release {
		for i := len(c.listeners) - 1; i >= 0; i-- {
			c.listeners[i].PointerUp(e)
		}
		return
	}
	if s == input.Press {
		c.dispatch(func(l input.PointerListener) bool { return l.PointerDown(e) })
	}
}

// HandleScroll forwards a scroll at the last pointer position.
func (c *Context) HandleScroll(dx, dy float32) {
	e := input.ScrollEvent{
		X: c.pointerX, Y: c.pointerY,
		DX: dx, DY: dy,
		Width: c.Sizes.Width, Height: c.Sizes.Height,
	}
	c.dispatch(func(l input.PointerListener) bool { return l.Scroll(e) })
}

func (c *Context) HandleKey(k input.Key, s input.State) {
	c.Input.HandleKey(k, s)
}

// HandleRefresh draws the current state again.
func (c *Context) HandleRefresh() {
	if err := c.Renderer.Render(c.Scene, c.Camera); err != nil {
		c.Log.Warn("refresh failed", "err", err)
		return
	}
	c.Surface.SwapBuffers()
}

func (c *Context) pointerEvent(x, y float32, b input.Button) input.PointerEvent {
	return input.PointerEvent{X: x, Y: y, Button: b, Width: c.Sizes.Width, Height: c.Sizes.Height}
}

func (c *Context) dispatch(fn func(input.PointerListener) bool) {
	for i := len(c.listeners) - 1; i >= 0; i-- {
		if fn(c.listeners[i]) {
			return
		}
	}
}

// runActions calls the handlers of every action pressed this frame.
func (c *Context) runActions() {
	for a := input.Action(0); a < input.ActionCount; a++ {
		if !c.Input.JustPressed(a) {
			continue
		}
		for _, fn := range c.actions[a] {
			fn()
		}
	}
}
