// Package tween interpolates float32 properties over time.
//
// A tween records its start values lazily: they are read from the targets the
// first time the engine ticks at or after the tween's start time, so tweens
// chained with delays continue from wherever the previous one left off.
package tween

import (
	"time"

	"github.com/chewxy/math32"
)

// DefaultDuration is used when Vars.Duration is zero and the tween is not Instant.
const DefaultDuration = 500 * time.Millisecond

// Props maps target fields to their end values.
type Props map[*float32]float32

// Vars configures a tween.
type Vars struct {
	Duration time.Duration // DefaultDuration when zero
	Instant  bool          // ignore Duration and jump to the end values
	Delay    time.Duration
	Ease     Ease // Power1Out when nil

	OnStart    func()
	OnUpdate   func()
	OnComplete func()
}

type prop struct {
	target   *float32
	from, to float32
}

// Tween is a running interpolation created by Engine.To.
type Tween struct {
	props    []prop
	vars     Vars
	start    time.Duration
	duration time.Duration

	progress float32
	started  bool
	done     bool
}

// Start is the engine time the tween begins at.
func (t *Tween) Start() time.Duration { return t.start }

// Duration is the effective duration.
func (t *Tween) Duration() time.Duration { return t.duration }

// Progress is the linear progress in [0, 1] at the last tick.
func (t *Tween) Progress() float32 { return t.progress }

// Done reports whether the tween completed or was killed.
func (t *Tween) Done() bool { return t.done }

// Kill stops the tween where it is. OnComplete is not called.
func (t *Tween) Kill() { t.done = true }

func (t *Tween) render(now time.Duration) {
	if t.done || now < t.start {
		return
	}
	if !t.started {
		t.started = true
		for i := range t.props {
			t.props[i].from = *t.props[i].target
		}
		if t.vars.OnStart != nil {
			t.vars.OnStart()
		}
		// OnStart may kill its own tween
		if t.done {
			return
		}
	}

	p := float32(1)
	if t.duration > 0 {
		p = math32.Min(float32(now-t.start)/float32(t.duration), 1)
	}
	t.progress = p

	if p >= 1 {
		for _, pr := range t.props {
			*pr.target = pr.to
		}
	} else {
		e := t.vars.Ease(p)
		for _, pr := range t.props {
			*pr.target = pr.from + (pr.to-pr.from)*e
		}
	}
	if t.vars.OnUpdate != nil {
		t.vars.OnUpdate()
	}
	if p >= 1 {
		t.done = true
		if t.vars.OnComplete != nil {
			t.vars.OnComplete()
		}
	}
}

func (t *Tween) targets(ptr *float32) bool {
	for _, pr := range t.props {
		if pr.target == ptr {
			return true
		}
	}
	return false
}

// Engine owns the tweens of one app. Not safe for concurrent use.
type Engine struct {
	now    time.Duration
	tweens []*Tween
}

// NewEngine returns an engine whose clock starts at zero.
func NewEngine() *Engine {
	return &Engine{}
}

// Now is the time of the last Tick.
func (e *Engine) Now() time.Duration { return e.now }

// To schedules a tween of props to their end values starting at Now()+vars.Delay.
func (e *Engine) To(props Props, vars Vars) *Tween {
	if vars.Ease == nil {
		vars.Ease = Power1Out
	}
	d := vars.Duration
	switch {
	case vars.Instant:
		d = 0
	case d <= 0:
		d = DefaultDuration
	}
	t := &Tween{
		vars:     vars,
		start:    e.now + max(vars.Delay, 0),
		duration: d,
	}
	for target, to := range props {
		if target == nil {
			continue
		}
		t.props = append(t.props, prop{target: target, to: to})
	}
	e.tweens = append(e.tweens, t)
	return t
}

// Tick advances the clock to now and renders every tween in creation order.
// Tweens created by callbacks during the tick are first rendered on the next tick.
func (e *Engine) Tick(now time.Duration) {
	e.now = now
	live := e.tweens
	for _, t := range live {
		t.render(now)
	}

	kept := e.tweens[:0]
	for _, t := range e.tweens {
		if !t.done {
			kept = append(kept, t)
		}
	}
	clear(e.tweens[len(kept):])
	e.tweens = kept
}

// KillTweensOf kills every tween animating ptr and reports how many it stopped.
func (e *Engine) KillTweensOf(ptr *float32) int {
	n := 0
	for _, t := range e.tweens {
		if !t.done && t.targets(ptr) {
			t.Kill()
			n++
		}
	}
	return n
}

// KillAll kills every tween.
func (e *Engine) KillAll() {
	for _, t := range e.tweens {
		t.Kill()
	}
	e.tweens = nil
}

// Active counts tweens that are scheduled or running.
func (e *Engine) Active() int {
	n := 0
	for _, t := range e.tweens {
		if !t.done {
			n++
		}
	}
	return n
}

// IsTweening reports whether ptr is the target of an unfinished tween.
func (e *Engine) IsTweening(ptr *float32) bool {
	for _, t := range e.tweens {
		if !t.done && t.targets(ptr) {
			return true
		}
	}
	return false
}
