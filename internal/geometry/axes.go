package geometry

// NewAxes returns three line segments from the origin along +X (red),
// +Y (green) and +Z (blue), each size units long.
func NewAxes(size float32) *Geometry {
	positions := []float32{
		0, 0, 0, size, 0, 0,
		0, 0, 0, 0, size, 0,
		0, 0, 0, 0, 0, size,
	}
	colors := []float32{
		1, 0, 0, 1, 0.6, 0,
		0, 1, 0, 0.6, 1, 0,
		0, 0, 1, 0, 0.6, 1,
	}
	return newGeometry(Lines, positions, nil, colors)
}
