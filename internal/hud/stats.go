// Package hud draws the frame statistics overlay.
package hud

import (
	"fmt"
	"strings"
	"time"

	"glbasics/internal/graphics/renderer"
	"glbasics/internal/profiling"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	historySize = 60
	lineStep    = 17
	margin      = 10
	textScale   = 1
	topEntries  = 5
)

var (
	background = colorful.Color{}
	white      = colorful.Color{R: 1, G: 1, B: 1}
)

// Stats shows FPS, frame intervals, renderer counters and the profiler's
// largest entries in the top-left corner. Timing is collected while hidden.
type Stats struct {
	profiler *profiling.Profiler
	info     func() renderer.Info
	visible  bool
	now      func() time.Time

	frames    int
	lastCheck time.Time
	fps       int
	last      time.Time
	history   []time.Duration
}

var _ renderer.Renderable = (*Stats)(nil)

// NewStats returns a hidden overlay reading p and info.
func NewStats(p *profiling.Profiler, info func() renderer.Info) *Stats {
	return &Stats{profiler: p, info: info, now: time.Now}
}

func (s *Stats) Init() error {
	s.lastCheck = s.now()
	return nil
}

func (s *Stats) SetViewport(int, int) {}

func (s *Stats) Dispose() {}

// Toggle flips visibility.
func (s *Stats) Toggle() { s.visible = !s.visible }

func (s *Stats) Visible() bool { return s.visible }

// FPS is the number of frames rendered during the last full second.
func (s *Stats) FPS() int { return s.fps }

func (s *Stats) record() {
	t := s.now()
	if !s.last.IsZero() {
		if len(s.history) >= historySize {
			s.history = s.history[1:]
		}
		s.history = append(s.history, t.Sub(s.last))
	}
	s.last = t

	s.frames++
	if t.Sub(s.lastCheck) >= time.Second {
		s.fps = s.frames
		s.frames = 0
		s.lastCheck = t
	}
}

// Lines returns the text the overlay shows.
func (s *Stats) Lines() []string {
	lines := []string{fmt.Sprintf("FPS: %d", s.fps)}

	if len(s.history) > 0 {
		var total time.Duration
		lo, hi := s.history[0], s.history[0]
		for _, d := range s.history {
			total += d
			lo = min(lo, d)
			hi = max(hi, d)
		}
		avg := total / time.Duration(len(s.history))
		lines = append(lines, fmt.Sprintf("Frame: %.2fms avg (%.2fms min, %.2fms max)", ms(avg), ms(lo), ms(hi)))
	}

	if s.info != nil {
		in := s.info()
		lines = append(lines, fmt.Sprintf("Draw calls: %d | Geometries: %d", in.Calls, in.Geometries))
	}

	if top := s.profiler.TopN(topEntries); top != "" {
		for line := range strings.SplitSeq(top, ", ") {
			lines = append(lines, line)
		}
	}
	return lines
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

func (s *Stats) Render(ctx renderer.RenderContext) {
	s.record()
	if !s.visible {
		return
	}
	lines := s.Lines()
	var w float32
	for _, l := range lines {
		lw, _ := ctx.Canvas.MeasureText(l, textScale)
		w = max(w, lw)
	}
	ctx.Canvas.FillRect(margin/2, margin/2, w+margin, float32(len(lines))*lineStep+margin, background, 0.5)
	for i, l := range lines {
		ctx.Canvas.DrawText(l, margin, margin+float32(i)*lineStep, textScale, white)
	}
}
