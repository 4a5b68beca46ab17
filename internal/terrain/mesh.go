package terrain

import (
	"github.com/Faultbox/midgard-grass/internal/grass"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// BuildPlane creates a flat grid in the XZ plane, centred on the origin.
// The grid has subdivX by subdivZ quads, each split into two triangles wound
// so their normals face +Y. UVs run from 0 to 1 across the whole plane.
func BuildPlane(subdivX, subdivZ int, size float32) *Mesh {
	subdivX = max(subdivX, 1)
	subdivZ = max(subdivZ, 1)
	row := subdivX + 1

	vertices := make([]Vertex, 0, row*(subdivZ+1))
	for z := 0; z <= subdivZ; z++ {
		for x := 0; x <= subdivX; x++ {
			u := float32(x) / float32(subdivX)
			v := float32(z) / float32(subdivZ)
			vertices = append(vertices, Vertex{
				Position: [3]float32{u*size - size/2, 0, v*size - size/2},
				Normal:   [3]float32{0, 1, 0},
				TexCoord: [2]float32{u, v},
			})
		}
	}

	indices := make([]uint32, 0, subdivX*subdivZ*6)
	for z := range subdivZ {
		for x := range subdivX {
			i := uint32(x + z*row)
			r := uint32(row)
			indices = append(indices,
				i, i+r, i+1,
				i+1, i+r, i+r+1,
			)
		}
	}

	m := &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Columns:  subdivX,
		Rows:     subdivZ,
		Size:     size,
	}
	m.recomputeBounds()
	return m
}

// Displace sets the height of every vertex from h, then rebuilds normals and bounds.
func (m *Mesh) Displace(h HeightFunc) {
	for i := range m.Vertices {
		p := &m.Vertices[i].Position
		p[1] = h(p[0], p[2])
	}
	m.ComputeNormals()
	m.recomputeBounds()
}

// ComputeNormals recomputes vertex normals as the area-weighted average of
// the faces sharing each vertex.
func (m *Mesh) ComputeNormals() {
	sums := make([][3]float32, len(m.Vertices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		if int(max(i0, i1, i2)) >= len(m.Vertices) {
			continue
		}
		p0 := m.Vertices[i0].Position
		p1 := m.Vertices[i1].Position
		p2 := m.Vertices[i2].Position

		// Unnormalized, so larger faces weigh more.
		n := cross(sub(p1, p0), sub(p2, p0))
		for _, i := range [3]uint32{i0, i1, i2} {
			sums[i] = add(sums[i], n)
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = normalize(sums[i])
	}
}

// Source returns the mesh attributes grass generation reads.
func (m *Mesh) Source() grass.Mesh {
	src := grass.Mesh{
		Positions: make([]math.Vec3, len(m.Vertices)),
		UVs:       make([]math.Vec2, len(m.Vertices)),
		Indices:   m.Indices,
	}
	for i, v := range m.Vertices {
		src.Positions[i] = math.Vec3FromArray(v.Position)
		src.UVs[i] = math.Vec2{X: v.TexCoord[0], Y: v.TexCoord[1]}
	}
	return src
}

func (m *Mesh) recomputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = math.AABB{}
		return
	}
	first := math.Vec3FromArray(m.Vertices[0].Position)
	b := math.AABB{Min: first, Max: first}
	for _, v := range m.Vertices[1:] {
		b = b.Extend(math.Vec3FromArray(v.Position))
	}
	m.Bounds = b
}

// Helper functions

func add(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	n := math.Vec3FromArray(v)
	if n.Length() < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return n.Normalize().Array()
}
