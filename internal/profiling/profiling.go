// Package profiling is a lightweight per-frame CPU profiler.
package profiling

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Profiler accumulates named durations for the current frame.
// The zero value is ready to use.
type Profiler struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	now    func() time.Time
}

// New returns a profiler using the wall clock.
func New() *Profiler {
	return &Profiler{}
}

func (p *Profiler) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer p.Track("render")()
func (p *Profiler) Track(name string) func() {
	start := p.clock()
	return func() {
		p.Add(name, p.clock().Sub(start))
	}
}

// Add records d under name.
func (p *Profiler) Add(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.totals == nil {
		p.totals = make(map[string]time.Duration)
	}
	p.totals[name] += d
}

// ResetFrame clears the per-frame totals. Call at the start of each frame.
func (p *Profiler) ResetFrame() {
	p.mu.Lock()
	clear(p.totals)
	p.mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func (p *Profiler) Snapshot() map[string]time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]time.Duration, len(p.totals))
	for k, v := range p.totals {
		out[k] = v
	}
	return out
}

// TopN formats the n largest totals, largest first, ties by name.
// Example: "render:4.2ms, tween:0.1ms"
func (p *Profiler) TopN(n int) string {
	type entry struct {
		name string
		dur  time.Duration
	}
	snap := p.Snapshot()
	list := make([]entry, 0, len(snap))
	for k, v := range snap {
		list = append(list, entry{k, v})
	}
	slices.SortFunc(list, func(a, b entry) int {
		if c := cmp.Compare(b.dur, a.dur); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})
	n = min(max(n, 0), len(list))

	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		parts = append(parts, e.name+":"+formatMs(e.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	ms := math.Floor(float64(d.Microseconds())/100) / 10
	return strconv.FormatFloat(ms, 'f', -1, 64) + "ms"
}
