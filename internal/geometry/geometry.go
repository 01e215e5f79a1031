// Package geometry holds vertex data for meshes and line segments.
//
// All geometry is non-indexed: every three positions form a triangle (or every
// two a line segment). A Geometry is CPU-side only; the renderer uploads it on
// first use and frees the GPU copy when Dispose is called.
package geometry

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind tells the renderer how to assemble vertices.
type Kind int

const (
	Triangles Kind = iota
	Lines
)

var nextID atomic.Uint64

// Geometry is a set of vertex attributes.
type Geometry struct {
	id        uint64
	kind      Kind
	positions []float32 // xyz per vertex
	normals   []float32 // xyz per vertex, empty for lines
	colors    []float32 // rgb per vertex, optional

	onDispose []func(*Geometry)
}

func newGeometry(kind Kind, positions, normals, colors []float32) *Geometry {
	return &Geometry{
		id:        nextID.Add(1),
		kind:      kind,
		positions: positions,
		normals:   normals,
		colors:    colors,
	}
}

// NewBuffer wraps raw triangle positions (xyz per vertex, three vertices per
// triangle). Flat normals are computed per triangle. Trailing floats that do
// not form a whole triangle are ignored.
func NewBuffer(positions []float32) *Geometry {
	n := len(positions) / 9 * 9
	positions = positions[:n]
	return newGeometry(Triangles, positions, flatNormals(positions), nil)
}

// ID is unique per geometry for the life of the process.
func (g *Geometry) ID() uint64 { return g.id }

// Kind reports whether the geometry holds triangles or lines.
func (g *Geometry) Kind() Kind { return g.kind }

// Positions returns xyz per vertex. The slice must not be modified.
func (g *Geometry) Positions() []float32 { return g.positions }

// Normals returns xyz per vertex, or nil for line geometry.
func (g *Geometry) Normals() []float32 { return g.normals }

// Colors returns rgb per vertex, or nil.
func (g *Geometry) Colors() []float32 { return g.colors }

// VertexCount is the number of vertices to draw.
func (g *Geometry) VertexCount() int { return len(g.positions) / 3 }

// OnDispose registers fn to run on the next Dispose.
func (g *Geometry) OnDispose(fn func(*Geometry)) {
	g.onDispose = append(g.onDispose, fn)
}

// Dispose releases the geometry's GPU resources through the listeners
// registered since the last Dispose; a second call without an upload in
// between does nothing. The CPU data stays readable, and drawing a disposed
// geometry uploads it again.
func (g *Geometry) Dispose() {
	listeners := g.onDispose
	g.onDispose = nil
	for _, fn := range listeners {
		fn(g)
	}
}

func flatNormals(positions []float32) []float32 {
	normals := make([]float32, len(positions))
	for i := 0; i+9 <= len(positions); i += 9 {
		a := mgl32.Vec3{positions[i], positions[i+1], positions[i+2]}
		b := mgl32.Vec3{positions[i+3], positions[i+4], positions[i+5]}
		c := mgl32.Vec3{positions[i+6], positions[i+7], positions[i+8]}
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		for v := 0; v < 3; v++ {
			copy(normals[i+v*3:i+v*3+3], n[:])
		}
	}
	return normals
}
