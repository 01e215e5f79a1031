// Package apptest provides an in-memory app.Host for tests.
package apptest

import (
	"glbasics/internal/app"
	"glbasics/internal/graphics/renderer"
	"glbasics/internal/graphics/renderer/renderertest"
)

// Host serves the surfaces in its map.
type Host struct {
	Surfaces map[string]*Surface
	Lookups  []string
}

// NewHost returns a host with a single canvas.
func NewHost(id string, width, height int) *Host {
	return &Host{Surfaces: map[string]*Surface{id: NewSurface(width, height)}}
}

func (h *Host) Lookup(id string) (app.Surface, bool) {
	h.Lookups = append(h.Lookups, id)
	s, ok := h.Surfaces[id]
	if !ok {
		return nil, false
	}
	return s, true
}

// Surface is a canvas backed by a renderertest.Device. Events queued with
// Queue are delivered by the next PollEvents.
type Surface struct {
	Width, Height int
	Ratio         float32

	Dev         *renderertest.Device
	DeviceErr   error
	DeviceCalls int

	Handlers app.Handlers
	Polls    int
	Swaps    int
	// CloseAfter makes ShouldClose report true after that many swaps; 0 never closes.
	CloseAfter int
	Fullscreen bool

	closing bool
	queued  []func(app.Handlers)
}

// NewSurface returns a surface with pixel ratio 1.
func NewSurface(width, height int) *Surface {
	return &Surface{Width: width, Height: height, Ratio: 1, Dev: renderertest.New()}
}

// Queue adds an event for the next PollEvents.
func (s *Surface) Queue(ev func(app.Handlers)) {
	s.queued = append(s.queued, ev)
}

func (s *Surface) Size() (int, int)           { return s.Width, s.Height }
func (s *Surface) PixelRatio() float32        { return s.Ratio }
func (s *Surface) SetHandlers(h app.Handlers) { s.Handlers = h }

func (s *Surface) Device() (renderer.Device, error) {
	s.DeviceCalls++
	if s.DeviceErr != nil {
		return nil, s.DeviceErr
	}
	return s.Dev, nil
}

func (s *Surface) PollEvents() {
	s.Polls++
	evs := s.queued
	s.queued = nil
	for _, ev := range evs {
		ev(s.Handlers)
	}
}

func (s *Surface) SwapBuffers() { s.Swaps++ }

func (s *Surface) ShouldClose() bool {
	return s.closing || (s.CloseAfter > 0 && s.Swaps >= s.CloseAfter)
}

func (s *Surface) SetShouldClose(v bool) { s.closing = v }

func (s *Surface) ToggleFullscreen() { s.Fullscreen = !s.Fullscreen }
