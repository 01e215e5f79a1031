package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTopNOrdersAndFormats(t *testing.T) {
	p := New()
	p.Add("tween", 100*time.Microsecond)
	p.Add("render", 4200*time.Microsecond)
	p.Add("frame", 12*time.Millisecond)
	p.Add("render", 0)

	assert.Equal(t, "frame:12ms, render:4.2ms", p.TopN(2))
	assert.Equal(t, "frame:12ms, render:4.2ms, tween:0.1ms", p.TopN(10))
	assert.Equal(t, "", p.TopN(0))
}

func TestTrackUsesClock(t *testing.T) {
	base := time.Unix(0, 0)
	calls := 0
	p := &Profiler{now: func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * 3 * time.Millisecond)
	}}
	stop := p.Track("step")
	stop()
	assert.Equal(t, 3*time.Millisecond, p.Snapshot()["step"])

	p.ResetFrame()
	assert.Empty(t, p.Snapshot())
}

func TestZeroValueIsUsable(t *testing.T) {
	var p Profiler
	p.Track("x")()
	assert.Contains(t, p.Snapshot(), "x")
}
