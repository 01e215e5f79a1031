package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	cv, ok := c.Canvas(DefaultCanvasID)
	require.True(t, ok)
	assert.Equal(t, 900, cv.Width)
	assert.Equal(t, 600, cv.Height)
	assert.Equal(t, 120, c.FPSLimit)
}

func TestLoadOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glbasics.yaml")
	data := []byte("fps_limit: 60\nmax_pixel_ratio: 1.5\ncanvases:\n  main:\n    width: 640\n    height: 480\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, c.FPSLimit)
	assert.Equal(t, float32(1.5), c.MaxPixelRatio)
	assert.Equal(t, "#000000", c.ClearColor, "unset fields keep defaults")

	_, ok := c.Canvas(DefaultCanvasID)
	assert.False(t, ok, "declared canvases replace the default set")
	cv, ok := c.Canvas("main")
	require.True(t, ok)
	assert.Equal(t, 640, cv.Width)
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("fps_limit: [oops"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	zero := filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(zero, []byte("canvases:\n  webgl:\n    width: 0\n    height: 10\n"), 0o644))
	_, err = Load(zero)
	assert.ErrorContains(t, err, "invalid size")
}

func TestRuntimeSettingsClamp(t *testing.T) {
	defer Apply(Default())

	SetFPSLimit(-5)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(3)
	assert.Equal(t, 10, GetFPSLimit())

	SetMaxPixelRatio(2)
	assert.Equal(t, float32(2), ClampPixelRatio(3))
	assert.Equal(t, float32(1.25), ClampPixelRatio(1.25))
	assert.Equal(t, float32(1), ClampPixelRatio(0))
}
