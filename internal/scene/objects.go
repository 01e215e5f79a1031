package scene

import (
	"glbasics/internal/geometry"
	"glbasics/internal/material"

	"github.com/lucasb-eyer/go-colorful"
)

// Scene is the root of a graph.
type Scene struct {
	Node
	// Background, when set, overrides the renderer's clear color.
	Background *colorful.Color
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	s := &Scene{}
	s.Init(s)
	return s
}

// Group is an empty node used to transform several children together.
type Group struct {
	Node
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	g := &Group{}
	g.Init(g)
	return g
}

// Mesh pairs triangle geometry with a material.
type Mesh struct {
	Node
	Geometry *geometry.Geometry
	Material material.Material
}

// NewMesh returns a mesh at the origin.
func NewMesh(g *geometry.Geometry, m material.Material) *Mesh {
	mesh := &Mesh{Geometry: g, Material: m}
	mesh.Init(mesh)
	return mesh
}

// SetGeometry disposes the current geometry, if any and different, and then
// assigns g. The old GPU buffers are released before the new geometry is
// ever drawn.
func (m *Mesh) SetGeometry(g *geometry.Geometry) {
	if m.Geometry != nil && m.Geometry != g {
		m.Geometry.Dispose()
	}
	m.Geometry = g
}

// LineSegments draws geometry.Lines data.
type LineSegments struct {
	Node
	Geometry *geometry.Geometry
	Material material.Material
}

// NewLineSegments returns a line object at the origin.
func NewLineSegments(g *geometry.Geometry, m material.Material) *LineSegments {
	l := &LineSegments{Geometry: g, Material: m}
	l.Init(l)
	return l
}

// NewAxesHelper returns X/Y/Z axis lines of the given length, colored
// red/green/blue.
func NewAxesHelper(size float32) *LineSegments {
	l := NewLineSegments(geometry.NewAxes(size), material.Line{})
	l.Name = "axes"
	return l
}
