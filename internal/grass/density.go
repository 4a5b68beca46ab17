package grass

import (
	gomath "math"

	"github.com/Faultbox/midgard-grass/pkg/math"
)

// Triangles at or below this area are degenerate and receive no blades.
const degenerateArea = 1e-12

// TriangleArea returns the area of a triangle, |(P1-P0) x (P2-P0)| / 2.
func TriangleArea(p [3]math.Vec3) float32 {
	return p[1].Sub(p[0]).Cross(p[2].Sub(p[0])).Length() / 2
}

// InstanceCount returns how many blades a world-space triangle receives:
// ceil(density * area). Positions must already be scaled into world space
// so the count tracks the surface actually rendered. Counts beyond the
// uint32 range saturate at math.MaxUint32.
func InstanceCount(p [3]math.Vec3, density uint32) uint32 {
	if density == 0 {
		return 0
	}
	area := TriangleArea(p)
	if area <= degenerateArea {
		return 0
	}
	n := gomath.Ceil(float64(density) * float64(area))
	if n >= gomath.MaxUint32 {
		return gomath.MaxUint32
	}
	return uint32(n)
}
