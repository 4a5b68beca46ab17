package scene

// DefaultBladeSegments is the number of quads stacked along a blade.
const DefaultBladeSegments = 4

// BladeMesh returns the blade template as a triangle strip of 2D vertices.
// X spans [-0.5, 0.5] across the blade and Y runs from root (0) to tip (1).
// The blade narrows towards the tip and closes in a single apex vertex,
// giving 2*segments+1 vertices.
func BladeMesh(segments int) []float32 {
	if segments < 1 {
		segments = 1
	}
	verts := make([]float32, 0, (2*segments+1)*2)
	for i := range segments {
		t := float32(i) / float32(segments)
		half := 0.5 * (1 - t)
		verts = append(verts, -half, t, half, t)
	}
	return append(verts, 0, 1)
}
