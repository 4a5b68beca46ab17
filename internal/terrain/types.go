// Package terrain builds the source meshes grass is grown on.
package terrain

import (
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// Vertex represents a terrain mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds the complete terrain mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   math.AABB

	// Grid layout, set by BuildPlane. Zero for meshes built any other way.
	Columns int     // quads along X
	Rows    int     // quads along Z
	Size    float32 // edge length in world units
}

// HeightFunc returns the terrain height at a point of the XZ plane.
type HeightFunc func(x, z float32) float32
