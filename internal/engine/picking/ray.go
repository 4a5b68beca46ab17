// Package picking casts rays from the screen into the terrain.
package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-grass/internal/engine/camera"
	"github.com/Faultbox/midgard-grass/internal/grass"
	"github.com/Faultbox/midgard-grass/internal/terrain"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized for screen rays; local-space rays keep their scale
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay builds the world-space ray through a pixel of an orbit camera's view.
// screenX, screenY are pixel coordinates with the origin at the top left.
func ScreenToRay(cam *camera.OrbitCamera, screenX, screenY, viewportW, viewportH float32) Ray {
	// Normalized device coords (-1 to 1), Y flipped
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	eye := cam.Position()
	forward := cam.Center.Sub(eye).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	tanHalf := float32(gomath.Tan(float64(cam.FovY / 2)))
	aspect := viewportW / viewportH
	dir := forward.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf))

	return Ray{Origin: eye, Direction: dir.Normalize()}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// IntersectAABB returns the entry and exit distances of the ray through box.
// tmin is negative when the ray starts inside the box.
func (r Ray) IntersectAABB(box math.AABB) (tmin, tmax float32, hit bool) {
	tmin = float32(-gomath.MaxFloat32)
	tmax = float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo, hi := box.Min.Array(), box.Max.Array()

	for axis := range 3 {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// pickSteps is the number of samples taken along the ray inside the terrain bounds.
const pickSteps = 256

// PickTerrain returns the world-space point where r first meets the surface
// of a grid terrain placed by tf. The ray is taken into the mesh's own space,
// marched through the terrain bounds and refined by bisection.
func PickTerrain(r Ray, m *terrain.Mesh, tf grass.Transform) (math.Vec3, bool) {
	local := Ray{Origin: tf.ToLocal(r.Origin), Direction: tf.ToLocalDir(r.Direction)}
	p, ok := pickLocal(local, m)
	if !ok {
		return math.Vec3{}, false
	}
	return tf.Matrix().TransformVec3(p), true
}

func pickLocal(r Ray, m *terrain.Mesh) (math.Vec3, bool) {
	// Pad flat terrain so the slab test has some thickness.
	box := m.Bounds
	box.Min.Y -= 0.01
	box.Max.Y += 0.01

	tmin, tmax, ok := r.IntersectAABB(box)
	if !ok {
		return math.Vec3{}, false
	}
	tmin = max(tmin, 0)

	// above reports whether the ray is over the surface at distance t.
	above := func(t float32) bool {
		p := r.At(t)
		h, _ := m.HeightAt(p.X, p.Z)
		return p.Y > h
	}

	step := (tmax - tmin) / pickSteps
	prev := tmin
	if !above(prev) {
		return r.At(prev), true
	}
	for i := 1; i <= pickSteps; i++ {
		t := tmin + step*float32(i)
		if above(t) {
			prev = t
			continue
		}
		lo, hi := prev, t
		for range 16 {
			mid := (lo + hi) / 2
			if above(mid) {
				lo = mid
			} else {
				hi = mid
			}
		}
		return r.At(hi), true
	}
	return math.Vec3{}, false
}
