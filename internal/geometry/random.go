package geometry

import "math/rand/v2"

// NewRandomTriangles returns count triangles whose vertices are spread
// uniformly in the cube [-spread/2, spread/2)^3.
func NewRandomTriangles(count int, spread float32, rng *rand.Rand) *Geometry {
	positions := make([]float32, count*3*3)
	for i := range positions {
		positions[i] = (rng.Float32() - 0.5) * spread
	}
	return NewBuffer(positions)
}
