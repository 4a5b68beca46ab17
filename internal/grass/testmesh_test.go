package grass

import (
	"math/rand/v2"

	"github.com/Faultbox/midgard-grass/pkg/math"
)

// quadMesh is a 2x2 square in the XZ plane at y=0, split into two triangles.
func quadMesh() Mesh {
	return Mesh{
		Positions: []math.Vec3{{X: 0, Z: 0}, {X: 2, Z: 0}, {X: 2, Z: 2}, {X: 0, Z: 2}},
		UVs:       []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// gridMesh is an n x n grid of unit quads starting at the origin.
func gridMesh(n int) Mesh {
	var m Mesh
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			m.Positions = append(m.Positions, math.Vec3{X: float32(x), Z: float32(z)})
			m.UVs = append(m.UVs, math.Vec2{X: float32(x) / float32(n), Y: float32(z) / float32(n)})
		}
	}
	row := uint32(n + 1)
	for z := range uint32(n) {
		for x := range uint32(n) {
			i := z*row + x
			m.Indices = append(m.Indices, i, i+1, i+row+1, i, i+row+1, i+row)
		}
	}
	return m
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
