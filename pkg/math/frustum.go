package math

// Plane is ax + by + cz + d = 0 with (a, b, c) stored in Normal.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// Frustum holds the six clip planes of a view-projection matrix.
// Planes point inward: a point is inside when it is on the positive side of all six.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// FrustumFromMatrix extracts normalized frustum planes from a column-major
// view-projection matrix (Gribb/Hartmann).
func FrustumFromMatrix(m Mat4) Frustum {
	// Row i of the matrix is (m[i], m[4+i], m[8+i], m[12+i]).
	row := func(i int) [4]float32 {
		return [4]float32{m[i], m[4+i], m[8+i], m[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	plane := func(a, b [4]float32, sign float32) Plane {
		p := Plane{
			Normal:   Vec3{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2]},
			Distance: a[3] + sign*b[3],
		}
		if l := p.Normal.Length(); l > 0 {
			p.Normal = p.Normal.Scale(1 / l)
			p.Distance /= l
		}
		return p
	}

	var f Frustum
	f.Planes[FrustumLeft] = plane(r3, r0, 1)
	f.Planes[FrustumRight] = plane(r3, r0, -1)
	f.Planes[FrustumBottom] = plane(r3, r1, 1)
	f.Planes[FrustumTop] = plane(r3, r1, -1)
	f.Planes[FrustumNear] = plane(r3, r2, 1)
	f.Planes[FrustumFar] = plane(r3, r2, -1)
	return f
}

// IntersectsAABB reports whether any part of the box is inside the frustum.
// It may report false positives near frustum corners, never false negatives.
func (f Frustum) IntersectsAABB(b AABB) bool {
	for _, p := range f.Planes {
		// Corner furthest along the plane normal.
		v := b.Min
		if p.Normal.X >= 0 {
			v.X = b.Max.X
		}
		if p.Normal.Y >= 0 {
			v.Y = b.Max.Y
		}
		if p.Normal.Z >= 0 {
			v.Z = b.Max.Z
		}
		if p.Normal.Dot(v)+p.Distance < 0 {
			return false
		}
	}
	return true
}
