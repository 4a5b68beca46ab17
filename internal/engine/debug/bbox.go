// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/midgard-grass/internal/grass"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// FloatsPerBox is the number of floats BoxWireframe emits per box.
const FloatsPerBox = 24 * 3

// BoxWireframe appends the 12 edges of b as line vertices, [x, y, z] per vertex.
func BoxWireframe(dst []float32, b math.AABB) []float32 {
	lo, hi := b.Min, b.Max
	return append(dst,
		// Bottom face
		lo.X, lo.Y, lo.Z, hi.X, lo.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, lo.Y, hi.Z,
		hi.X, lo.Y, hi.Z, lo.X, lo.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, lo.Y, lo.Z,
		// Top face
		lo.X, hi.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, hi.Y, lo.Z, hi.X, hi.Y, hi.Z,
		hi.X, hi.Y, hi.Z, lo.X, hi.Y, hi.Z,
		lo.X, hi.Y, hi.Z, lo.X, hi.Y, lo.Z,
		// Vertical edges
		lo.X, lo.Y, lo.Z, lo.X, hi.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, lo.Y, hi.Z, hi.X, hi.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, hi.Y, hi.Z,
	)
}

// ChunkWireframe outlines every chunk in coords, in the chunk map's local space.
func ChunkWireframe(m *grass.ChunkMap, coords []grass.ChunkCoord) []float32 {
	if m == nil {
		return nil
	}
	out := make([]float32, 0, len(coords)*FloatsPerBox)
	for _, c := range coords {
		out = BoxWireframe(out, c.Bounds(m.ChunkSize()))
	}
	return out
}
