package app

import (
	"fmt"
	"time"
)

// slowFrame is the processing time above which a frame is logged.
const slowFrame = 16 * time.Millisecond

// Step advances tweens to elapsed, runs frame, then draws the scene and the
// overlays once. Drawing always sees the state frame left behind.
func (c *Context) Step(elapsed time.Duration, frame FrameFunc) error {
	c.elapsed = elapsed

	stop := c.Profiler.Track("tween")
	c.Tweens.Tick(elapsed)
	stop()

	if frame != nil {
		stop = c.Profiler.Track("frame")
		frame(c, elapsed)
		stop()
	}

	defer c.Profiler.Track("render")()
	return c.Renderer.Render(c.Scene, c.Camera)
}

// Run steps once per display refresh until the surface is asked to close.
// A nil frame renders the scene unchanged every refresh.
func (c *Context) Run(frame FrameFunc) error {
	start := c.now()
	for !c.Surface.ShouldClose() {
		if err := c.tick(start, frame); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) tick(start time.Time, frame FrameFunc) error {
	c.Profiler.ResetFrame()
	tickStart := c.now()

	c.Surface.PollEvents()
	c.runActions()
	c.syncPixelRatio()

	if err := c.Step(c.now().Sub(start), frame); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	stop := c.Profiler.Track("swap")
	c.Surface.SwapBuffers()
	stop()

	took := c.now().Sub(tickStart)
	switch {
	case c.Stats.Visible():
		c.Log.Info("frame", "took", took, "top", c.Profiler.TopN(5))
	case took > slowFrame:
		c.Log.Debug("slow frame", "took", took, "top", c.Profiler.TopN(5))
	}

	c.Input.PostUpdate()
	c.limiter.Wait(c.minimized)
	return nil
}
