package grass

import (
	"testing"

	"github.com/Faultbox/midgard-grass/pkg/math"
)

func TestBarycentric(t *testing.T) {
	rng := seeded(1)
	for range 1000 {
		b := Barycentric(rng.Float32(), rng.Float32())
		if b.X < 0 || b.Y < 0 || b.Z < 0 {
			t.Fatalf("negative weight %+v", b)
		}
		if sum := b.X + b.Y + b.Z; abs32(sum-1) > 1e-5 {
			t.Fatalf("weights %+v sum to %v", b, sum)
		}
	}

	if b := Barycentric(0, 0.7); b != (math.Vec3{X: 1}) {
		t.Errorf("r1=0 should land on the first vertex, got %+v", b)
	}
}

func TestSamplerStaysInTriangle(t *testing.T) {
	tri := Triangle{
		Positions: [3]math.Vec3{{X: 0, Z: 0}, {X: 4, Z: 0}, {X: 0, Z: 4}},
		UVs:       [3]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Normal:    math.Vec3{Y: 1},
	}
	s := NewSampler(seeded(7))
	samples := s.Sample(tri, 500, nil)
	if len(samples) != 500 {
		t.Fatalf("got %d samples, want 500", len(samples))
	}

	for _, p := range samples {
		x, z := p.Position.X, p.Position.Z
		if x < -1e-5 || z < -1e-5 || x+z > 4+1e-4 {
			t.Fatalf("sample %+v outside triangle", p.Position)
		}
		if p.Position.Y != 0 {
			t.Fatalf("sample %+v left the triangle's plane", p.Position)
		}
		if p.Normal != tri.Normal {
			t.Fatalf("sample normal %+v, want face normal", p.Normal)
		}
		// UVs are positions / 4 on this triangle.
		if abs32(p.UV.X-x/4) > 1e-5 || abs32(p.UV.Y-z/4) > 1e-5 {
			t.Fatalf("uv %+v does not match position %+v", p.UV, p.Position)
		}
	}
}

func TestSamplerAppends(t *testing.T) {
	tri := Triangle{Positions: [3]math.Vec3{{}, {X: 1}, {Z: 1}}}
	s := NewSampler(seeded(3))

	dst := s.Sample(tri, 3, nil)
	dst = s.Sample(tri, 2, dst)
	if len(dst) != 5 {
		t.Errorf("len = %d, want 5", len(dst))
	}
	if got := s.Sample(tri, 0, nil); len(got) != 0 {
		t.Errorf("zero count returned %d samples", len(got))
	}
}

func TestSamplerDeterministic(t *testing.T) {
	tri := Triangle{Positions: [3]math.Vec3{{}, {X: 3}, {Y: 1, Z: 2}}}
	a := NewSampler(seeded(42)).Sample(tri, 20, nil)
	b := NewSampler(seeded(42)).Sample(tri, 20, nil)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs with the same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}
