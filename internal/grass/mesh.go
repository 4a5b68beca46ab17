package grass

import (
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// Mesh is the read-only source surface grass is grown on.
// A nil or empty attribute slice means the attribute is not available yet.
type Mesh struct {
	Positions []math.Vec3
	UVs       []math.Vec2
	Indices   []uint32 // triangle list
}

// Complete reports whether positions, UVs and indices are all present.
func (m Mesh) Complete() bool {
	return len(m.Positions) > 0 && len(m.UVs) > 0 && len(m.Indices) > 0
}

// TriangleCount returns the number of whole triangles in the index list.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m Mesh) validIndex(i uint32) bool {
	return int(i) < len(m.Positions) && int(i) < len(m.UVs)
}

// Transform places the source mesh in the world.
// Only Scale takes part in generation; rotation and translation are applied
// by the renderer through Placement.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
}

// IdentityTransform returns a transform with unit scale and no rotation.
func IdentityTransform() Transform {
	return Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// scale returns the effective scale; an unset (zero) scale means unit scale.
func (t Transform) scale() math.Vec3 {
	if t.Scale == (math.Vec3{}) {
		return math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return t.Scale
}

// Placement returns Translate * Rotate. Scale is excluded because it is
// already baked into generated instance positions.
func (t Transform) Placement() math.Mat4 {
	return math.Translate(t.Translation.X, t.Translation.Y, t.Translation.Z).Mul(t.Rotation.ToMat4())
}

// Matrix returns the full Translate * Rotate * Scale model matrix for the source mesh.
func (t Transform) Matrix() math.Mat4 {
	s := t.scale()
	return t.Placement().Mul(math.Scale(s.X, s.Y, s.Z))
}

// Unplace inverts Placement, taking a world-space point to the scaled space
// instance positions and chunk coordinates are expressed in.
func (t Transform) Unplace(p math.Vec3) math.Vec3 {
	return t.Rotation.Conjugate().Rotate(p.Sub(t.Translation))
}

// ToLocal maps a world-space point into the source mesh's own space,
// undoing Matrix.
func (t Transform) ToLocal(p math.Vec3) math.Vec3 {
	return t.unscale(t.Unplace(p))
}

// ToLocalDir maps a world-space direction into the source mesh's own space.
// The result is not normalized, so distances along a ray are preserved.
func (t Transform) ToLocalDir(d math.Vec3) math.Vec3 {
	return t.unscale(t.Rotation.Conjugate().Rotate(d))
}

func (t Transform) unscale(v math.Vec3) math.Vec3 {
	s := t.scale()
	return math.Vec3{X: v.X / s.X, Y: v.Y / s.Y, Z: v.Z / s.Z}
}

// Triangle is one world-space face of the source mesh.
type Triangle struct {
	Positions [3]math.Vec3
	UVs       [3]math.Vec2
	Normal    math.Vec3
}

// FaceNormal returns the unit normal of the triangle's winding, or zero for degenerate faces.
func FaceNormal(p [3]math.Vec3) math.Vec3 {
	return p[1].Sub(p[0]).Cross(p[2].Sub(p[0])).Normalize()
}
