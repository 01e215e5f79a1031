// Package scene implements a small retained-mode scene graph: nodes with a
// parent-relative transform, grouped into a tree rooted at a Scene.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Object is anything that can be placed in the graph. Every object embeds a
// Node, which Base returns.
type Object interface {
	Base() *Node
}

// Node carries the transform and tree links shared by all objects.
//
// Rotation is Euler angles in radians applied in X, then Y, then Z order
// (the matrix is Rx * Ry * Rz). Tweens and controllers may hold pointers
// into Position, Rotation and Scale.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool

	parent   *Node
	self     Object
	children []Object
}

// Init resets the transform to identity and records self as the object that
// embeds n. Types outside this package that embed Node call it from their
// constructor.
func (n *Node) Init(self Object) {
	n.Scale = mgl32.Vec3{1, 1, 1}
	n.Visible = true
	n.self = self
}

// Base returns n itself so that embedding types satisfy Object.
func (n *Node) Base() *Node { return n }

// Object returns the value that embeds n.
func (n *Node) Object() Object {
	if n.self == nil {
		return n
	}
	return n.self
}

// Parent returns the node n is attached to, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []Object { return n.children }

// Add attaches objs as children of n, detaching each from its previous
// parent first. Adding n to itself is ignored.
func (n *Node) Add(objs ...Object) {
	for _, o := range objs {
		c := o.Base()
		if c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(o)
		}
		c.parent = n
		n.children = append(n.children, o)
	}
}

// Remove detaches objs from n. Objects that are not children are ignored.
func (n *Node) Remove(objs ...Object) {
	for _, o := range objs {
		c := o.Base()
		for i, existing := range n.children {
			if existing.Base() == c {
				n.children = append(n.children[:i], n.children[i+1:]...)
				c.parent = nil
				break
			}
		}
	}
}

// Traverse calls fn for n's object and every descendant, depth first.
func (n *Node) Traverse(fn func(Object)) {
	fn(n.Object())
	for _, c := range n.children {
		c.Base().Traverse(fn)
	}
}

// TraverseVisible is Traverse that skips invisible nodes and their subtrees.
func (n *Node) TraverseVisible(fn func(Object)) {
	if !n.Visible {
		return
	}
	fn(n.Object())
	for _, c := range n.children {
		c.Base().TraverseVisible(fn)
	}
}

// RotationMatrix returns Rx * Ry * Rz for the node's Euler angles.
func (n *Node) RotationMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(n.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(n.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation[2]))
}

// LocalMatrix composes translation, rotation and scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2]).
		Mul4(n.RotationMatrix()).
		Mul4(mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2]))
}

// WorldMatrix is the local matrix premultiplied by every ancestor's.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition is the node's origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}
