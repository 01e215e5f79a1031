package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#90b4ff")
	require.NoError(t, err)
	assert.Equal(t, "#90b4ff", c.Hex())

	c, err = ParseColor("#f00")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", c.Hex())

	_, err = ParseColor("blue")
	assert.Error(t, err)
}

func TestBasicSetHexKeepsColorOnError(t *testing.T) {
	m := NewBasic(MustParseColor("#ff0000"))
	require.Error(t, m.SetHex("#zzzzzz"))
	assert.Equal(t, "#ff0000", m.Color.Hex())

	require.NoError(t, m.SetHex("#00ff00"))
	assert.Equal(t, "#00ff00", m.BaseColor().Hex())
}

func TestOpacity(t *testing.T) {
	m := NewBasic(MustParseColor("#ffffff"))
	m.Alpha = 0.25
	assert.Equal(t, float32(1), m.Opacity(), "opaque unless transparent")
	m.Transparent = true
	assert.Equal(t, float32(0.25), m.Opacity())

	assert.Equal(t, ShadingNormal, NewNormal().Shading())
	assert.Equal(t, ShadingVertexColor, Line{}.Shading())
}
