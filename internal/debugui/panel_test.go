package debugui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatClampsAndSnaps(t *testing.T) {
	var y float32
	changes := 0
	c := New("t").AddFloat(&y, -3, 3, 0.01).Name("elevation").OnChange(func() { changes++ })

	assert.True(t, c.SetValue(5))
	assert.Equal(t, float32(3), y)
	assert.False(t, c.SetValue(3), "same value is not a change")
	assert.Equal(t, 1, changes)

	c.SetValue(1.234)
	assert.InDelta(t, 1.23, y, 1e-6)
	c.SetValue(-7)
	assert.Equal(t, float32(-3), y)
	assert.Equal(t, 3, changes)
}

func TestIntBoundsFromFluentSetters(t *testing.T) {
	n := 1
	var seen []int
	c := New("t").AddInt(&n).Min(1).Max(20).Step(1).OnChange(func() { seen = append(seen, n) })

	assert.False(t, c.SetValue(0), "clamped to the current value")
	c.SetValue(7.6)
	c.SetValue(25)
	assert.Equal(t, []int{8, 20}, seen)

	lo, hi, ok := c.Range()
	assert.True(t, ok)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 20.0, hi)

	free := 0
	u := New("t").AddInt(&free)
	u.SetValue(-1000)
	assert.Equal(t, -1000, free)
	_, _, ok = u.Range()
	assert.False(t, ok)
}

func TestBoolChangeOnlyOnDifference(t *testing.T) {
	visible := true
	changes := 0
	c := New("t").AddBool(&visible).OnChange(func() { changes++ })

	assert.False(t, c.SetBool(true))
	assert.True(t, c.SetBool(false))
	assert.False(t, visible)
	assert.Equal(t, 1, changes)
	assert.False(t, c.SetValue(3), "numbers do not apply to bools")
}

func TestColorValidation(t *testing.T) {
	color := "#90b4ff"
	changes := 0
	c := New("t").AddColor(&color).OnChange(func() { changes++ })

	changed, err := c.SetColor("#90B4FF")
	require.NoError(t, err)
	assert.False(t, changed, "hex case does not matter")

	changed, err = c.SetColor("#abc")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "#aabbcc", color)

	_, err = c.SetColor("blue")
	require.ErrorIs(t, err, ErrInvalidColor)
	assert.Equal(t, "#aabbcc", color)
	assert.Equal(t, 1, changes)

	var f float32
	_, err = New("t").AddFloat(&f, 0, 1, 0).SetColor("#fff")
	assert.Error(t, err)
}

func TestFinishRunsOnlyAfterChange(t *testing.T) {
	var v float32
	finished := 0
	c := New("t").AddFloat(&v, 0, 1, 0.1).OnFinishChange(func() { finished++ })

	c.Finish()
	assert.Zero(t, finished)
	c.SetValue(0.5)
	c.SetValue(0.6)
	c.Finish()
	c.Finish()
	assert.Equal(t, 1, finished)
}

func TestFoldersAndLookup(t *testing.T) {
	p := New("Debug")
	calls := 0
	tweaks := p.AddFolder("Cube Tweaks")
	spin := tweaks.AddFunc(func() { calls++ }).Name("Spin Cube!")
	var on bool
	p.AddBool(&on)

	assert.Len(t, p.Folders(), 1)
	assert.Len(t, p.Controllers(), 1)
	assert.Equal(t, "bool", p.Controllers()[0].Label())

	got, ok := p.Find("Spin Cube!")
	require.True(t, ok)
	assert.Same(t, spin, got)
	got.Call()
	assert.Equal(t, 1, calls)

	_, ok = p.Find("missing")
	assert.False(t, ok)

	assert.True(t, p.Visible())
	p.Show(false)
	assert.False(t, p.Visible())
	assert.True(t, tweaks.Open(false).Closed)
}
