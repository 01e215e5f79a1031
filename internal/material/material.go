// Package material describes how a mesh's surface is shaded.
package material

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Shading selects the shader program used for a draw.
type Shading int

const (
	// ShadingBasic draws a flat, unlit color.
	ShadingBasic Shading = iota
	// ShadingNormal maps view-space normals to RGB.
	ShadingNormal
	// ShadingVertexColor uses per-vertex colors (line helpers).
	ShadingVertexColor
)

// Material is implemented by every material type.
type Material interface {
	Shading() Shading
	// BaseColor is the uniform color; ignored by normal and vertex-color shading.
	BaseColor() colorful.Color
	IsWireframe() bool
	Opacity() float32
}

// Basic is an unlit single-color material.
type Basic struct {
	Color       colorful.Color
	Wireframe   bool
	Transparent bool
	Alpha       float32
}

// NewBasic returns an opaque basic material of the given color.
func NewBasic(c colorful.Color) *Basic {
	return &Basic{Color: c, Alpha: 1}
}

// NewBasicHex is NewBasic with a "#rrggbb" color.
func NewBasicHex(hex string) (*Basic, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return nil, err
	}
	return NewBasic(c), nil
}

func (m *Basic) Shading() Shading          { return ShadingBasic }
func (m *Basic) BaseColor() colorful.Color { return m.Color }
func (m *Basic) IsWireframe() bool         { return m.Wireframe }

func (m *Basic) Opacity() float32 {
	if !m.Transparent {
		return 1
	}
	return m.Alpha
}

// SetHex sets the color from a "#rrggbb" string. On error the color is unchanged.
func (m *Basic) SetHex(hex string) error {
	c, err := ParseColor(hex)
	if err != nil {
		return err
	}
	m.Color = c
	return nil
}

// Normal colors each fragment by its normal.
type Normal struct {
	Wireframe bool
}

// NewNormal returns a solid normal material.
func NewNormal() *Normal { return &Normal{} }

func (m *Normal) Shading() Shading          { return ShadingNormal }
func (m *Normal) BaseColor() colorful.Color { return colorful.Color{R: 1, G: 1, B: 1} }
func (m *Normal) IsWireframe() bool         { return m.Wireframe }
func (m *Normal) Opacity() float32          { return 1 }

// Line draws line segments with their per-vertex colors.
type Line struct{}

func (Line) Shading() Shading          { return ShadingVertexColor }
func (Line) BaseColor() colorful.Color { return colorful.Color{R: 1, G: 1, B: 1} }
func (Line) IsWireframe() bool         { return false }
func (Line) Opacity() float32          { return 1 }

// ParseColor parses "#rgb" or "#rrggbb".
func ParseColor(hex string) (colorful.Color, error) {
	if len(hex) == 4 && hex[0] == '#' {
		hex = "#" + string([]byte{hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("color %q: %w", hex, err)
	}
	return c, nil
}

// MustParseColor is ParseColor for literals; it panics on malformed input.
func MustParseColor(hex string) colorful.Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
