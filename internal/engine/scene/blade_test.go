package scene

import "testing"

func TestBladeMesh(t *testing.T) {
	for _, segments := range []int{1, 2, DefaultBladeSegments, 8} {
		v := BladeMesh(segments)
		if got, want := len(v)/2, 2*segments+1; got != want {
			t.Fatalf("segments=%d: %d vertices, want %d", segments, got, want)
		}

		// Root pair spans the full width at y=0.
		if v[0] != -0.5 || v[1] != 0 || v[2] != 0.5 || v[3] != 0 {
			t.Errorf("segments=%d: root = %v", segments, v[:4])
		}
		// Apex closes the strip.
		if x, y := v[len(v)-2], v[len(v)-1]; x != 0 || y != 1 {
			t.Errorf("segments=%d: apex = (%v, %v)", segments, x, y)
		}

		prevY, prevW := float32(-1), float32(2)
		for i := 0; i+3 < len(v)-2; i += 4 {
			left, y, right := v[i], v[i+1], v[i+2]
			if left != -right {
				t.Errorf("segments=%d: row %d not symmetric", segments, i/4)
			}
			if y <= prevY || right-left >= prevW {
				t.Errorf("segments=%d: row %d does not narrow upwards", segments, i/4)
			}
			prevY, prevW = y, right-left
		}
	}
}

func TestBladeMeshClampsSegments(t *testing.T) {
	if got := len(BladeMesh(0)) / 2; got != 3 {
		t.Errorf("BladeMesh(0) has %d vertices, want 3", got)
	}
}
