// Package glfwhost provides app canvases as glfw windows with an OpenGL 4.1
// core context. Everything here must run on the main OS thread.
package glfwhost

import (
	"fmt"
	"log/slog"

	"glbasics/internal/app"
	"glbasics/internal/config"
	"glbasics/internal/graphics/gldevice"
	"glbasics/internal/graphics/renderer"
	"glbasics/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Host serves the canvases declared in the configuration.
type Host struct {
	cfg      *config.Config
	log      *slog.Logger
	surfaces []*Surface
}

// New initializes glfw. Call Close when done.
func New(cfg *config.Config, log *slog.Logger) (*Host, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}
	return &Host{cfg: cfg, log: log}, nil
}

// Lookup returns the canvas declared under id. The window is created when
// the surface's device is.
func (h *Host) Lookup(id string) (app.Surface, bool) {
	c, ok := h.cfg.Canvas(id)
	if !ok {
		return nil, false
	}
	s := &Surface{id: id, canvas: c, vsync: h.cfg.VSync, log: h.log}
	h.surfaces = append(h.surfaces, s)
	return s, true
}

// Close destroys every window and terminates glfw.
func (h *Host) Close() {
	for _, s := range h.surfaces {
		s.destroy()
	}
	h.surfaces = nil
	glfw.Terminate()
}

// Surface is a glfw window.
type Surface struct {
	id       string
	canvas   config.Canvas
	vsync    bool
	log      *slog.Logger
	window   *glfw.Window
	handlers app.Handlers

	fullscreen bool
	restore    [4]int // windowed x, y, width, height
}

func (s *Surface) Size() (int, int) {
	if s.window == nil {
		return s.canvas.Width, s.canvas.Height
	}
	return s.window.GetSize()
}

// PixelRatio is framebuffer pixels per window unit, or the primary monitor's
// content scale before the window exists.
func (s *Surface) PixelRatio() float32 {
	if s.window == nil {
		if m := glfw.GetPrimaryMonitor(); m != nil {
			x, _ := m.GetContentScale()
			return x
		}
		return 1
	}
	w, _ := s.window.GetSize()
	fw, _ := s.window.GetFramebufferSize()
	if w == 0 {
		return 1
	}
	return float32(fw) / float32(w)
}

// Device creates the window, makes its context current and returns the GL
// device drawing into it.
func (s *Surface) Device() (renderer.Device, error) {
	if s.window == nil {
		if err := s.create(); err != nil {
			return nil, err
		}
	}
	d, err := gldevice.New(s.window.GetFramebufferSize)
	if err != nil {
		return nil, fmt.Errorf("canvas %q: %w", s.id, err)
	}
	return d, nil
}

func (s *Surface) create() error {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Samples, 4)
	resizable := glfw.False
	if s.canvas.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	window, err := glfw.CreateWindow(s.canvas.Width, s.canvas.Height, s.canvas.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window for canvas %q: %w", s.id, err)
	}
	window.MakeContextCurrent()
	if s.vsync {
		glfw.SwapInterval(1)
	} else {
		// the app's own limiter paces frames
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	s.window = window
	s.installCallbacks()
	s.log.Debug("window created", "canvas", s.id, "width", s.canvas.Width, "height", s.canvas.Height, "vsync", s.vsync)
	return nil
}

func (s *Surface) installCallbacks() {
	w := s.window
	w.SetFramebufferSizeCallback(func(w *glfw.Window, _, _ int) {
		if s.handlers == nil {
			return
		}
		// handlers work in window units; the framebuffer size only feeds the ratio
		width, height := w.GetSize()
		s.handlers.HandleResize(width, height)
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if s.handlers != nil {
			s.handlers.HandlePointerMove(float32(x), float32(y))
		}
	})
	w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := mapButton(button)
		if !ok || s.handlers == nil {
			return
		}
		x, y := w.GetCursorPos()
		s.handlers.HandlePointerButton(b, mapState(action), float32(x), float32(y))
	})
	w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if s.handlers != nil {
			s.handlers.HandleScroll(float32(xoff), float32(yoff))
		}
	})
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if s.handlers != nil {
			s.handlers.HandleKey(mapKey(key), mapState(action))
		}
	})
	w.SetRefreshCallback(func(*glfw.Window) {
		if s.handlers != nil {
			s.handlers.HandleRefresh()
		}
	})
}

func (s *Surface) SetHandlers(h app.Handlers) { s.handlers = h }

func (s *Surface) PollEvents() { glfw.PollEvents() }

func (s *Surface) SwapBuffers() {
	if s.window != nil {
		s.window.SwapBuffers()
	}
}

func (s *Surface) ShouldClose() bool {
	return s.window == nil || s.window.ShouldClose()
}

func (s *Surface) SetShouldClose(v bool) {
	if s.window != nil {
		s.window.SetShouldClose(v)
	}
}

// ToggleFullscreen switches between the primary monitor's video mode and the
// last windowed placement.
func (s *Surface) ToggleFullscreen() {
	if s.window == nil {
		return
	}
	if s.fullscreen {
		r := s.restore
		s.window.SetMonitor(nil, r[0], r[1], r[2], r[3], 0)
		s.fullscreen = false
		return
	}
	m := glfw.GetPrimaryMonitor()
	if m == nil {
		return
	}
	x, y := s.window.GetPos()
	w, h := s.window.GetSize()
	s.restore = [4]int{x, y, w, h}
	mode := m.GetVideoMode()
	s.window.SetMonitor(m, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	s.fullscreen = true
}

func (s *Surface) destroy() {
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
}

func mapButton(b glfw.MouseButton) (input.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft, true
	case glfw.MouseButtonRight:
		return input.ButtonRight, true
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle, true
	}
	return 0, false
}

func mapState(a glfw.Action) input.State {
	switch a {
	case glfw.Press:
		return input.Press
	case glfw.Repeat:
		return input.Repeat
	}
	return input.Release
}

var keys = map[glfw.Key]input.Key{
	glfw.KeyEscape:       input.KeyEscape,
	glfw.KeySpace:        input.KeySpace,
	glfw.KeyEnter:        input.KeyEnter,
	glfw.KeyTab:          input.KeyTab,
	glfw.KeyF:            input.KeyF,
	glfw.KeyH:            input.KeyH,
	glfw.KeyP:            input.KeyP,
	glfw.KeyR:            input.KeyR,
	glfw.KeyF11:          input.KeyF11,
	glfw.KeyLeftShift:    input.KeyLeftShift,
	glfw.KeyRightShift:   input.KeyRightShift,
	glfw.KeyLeftControl:  input.KeyLeftControl,
	glfw.KeyRightControl: input.KeyRightControl,
}

func mapKey(k glfw.Key) input.Key {
	if key, ok := keys[k]; ok {
		return key
	}
	return input.KeyUnknown
}
