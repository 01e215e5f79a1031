package geometry

// NewBox returns an axis-aligned box centered on the origin with one
// segment per side.
func NewBox(width, height, depth float32) *Geometry {
	return NewSegmentedBox(width, height, depth, 1, 1, 1)
}

// NewSegmentedBox returns a box whose faces are subdivided into the given
// number of segments along each axis. Segment counts below 1 are treated as 1.
// Each face quad becomes two triangles, so the vertex count is
// 12 * (ws*hs + hs*ds + ws*ds).
func NewSegmentedBox(width, height, depth float32, ws, hs, ds int) *Geometry {
	ws, hs, ds = max(ws, 1), max(hs, 1), max(ds, 1)

	quads := 2 * (ws*hs + hs*ds + ws*ds)
	b := &boxBuilder{
		positions: make([]float32, 0, quads*18),
		normals:   make([]float32, 0, quads*18),
	}

	const x, y, z = 0, 1, 2
	b.plane(z, y, x, -1, -1, depth, height, width, ds, hs)  // +x
	b.plane(z, y, x, 1, -1, depth, height, -width, ds, hs)  // -x
	b.plane(x, z, y, 1, 1, width, depth, height, ws, ds)    // +y
	b.plane(x, z, y, 1, -1, width, depth, -height, ws, ds)  // -y
	b.plane(x, y, z, 1, -1, width, height, depth, ws, hs)   // +z
	b.plane(x, y, z, -1, -1, width, height, -depth, ws, hs) // -z

	return newGeometry(Triangles, b.positions, b.normals, nil)
}

type boxBuilder struct {
	positions []float32
	normals   []float32
}

// plane emits one face. u and v are the in-plane axes, w the axis the face
// is offset along by depth/2; the sign of depth selects the facing.
func (b *boxBuilder) plane(u, v, w int, udir, vdir, width, height, depth float32, gridX, gridY int) {
	segW := width / float32(gridX)
	segH := height / float32(gridY)
	halfW, halfH, halfD := width/2, height/2, depth/2

	var normal [3]float32
	if depth > 0 {
		normal[w] = 1
	} else {
		normal[w] = -1
	}

	vertex := func(ix, iy int) [3]float32 {
		var p [3]float32
		p[u] = (float32(ix)*segW - halfW) * udir
		p[v] = (float32(iy)*segH - halfH) * vdir
		p[w] = halfD
		return p
	}

	for iy := 0; iy < gridY; iy++ {
		for ix := 0; ix < gridX; ix++ {
			a := vertex(ix, iy)
			bb := vertex(ix, iy+1)
			c := vertex(ix+1, iy+1)
			d := vertex(ix+1, iy)
			for _, p := range [...][3]float32{a, bb, d, bb, c, d} {
				b.positions = append(b.positions, p[0], p[1], p[2])
				b.normals = append(b.normals, normal[0], normal[1], normal[2])
			}
		}
	}
}
