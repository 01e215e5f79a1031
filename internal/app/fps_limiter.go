package app

import (
	"time"

	"glbasics/internal/config"
)

// idleFPS caps the loop while the surface is minimized.
const idleFPS = 30

// FPSLimiter paces the frame loop to the configured frame rate.
type FPSLimiter struct {
	next  time.Time
	sleep func(time.Duration)
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{sleep: time.Sleep}
}

// Wait blocks until the next frame is due. It sleeps for most of the
// interval and spins for the last 200µs.
func (f *FPSLimiter) Wait(idle bool) {
	limit := config.GetFPSLimit()
	if idle && (limit <= 0 || limit > idleFPS) {
		limit = idleFPS
	}
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			f.sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
