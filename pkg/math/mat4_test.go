package math

import (
	"math"
	"testing"
)

func nearVec(a, b Vec3, eps float32) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps && abs(a.Z-b.Z) <= eps
}

func TestMat4Compose(t *testing.T) {
	yaw90 := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2)).ToMat4()

	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"identity", Identity(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 3, 4), Vec3{1, 1, 1}, Vec3{2, 3, 4}},
		{"scale then translate", Translate(1, 0, -1).Mul(Scale(2, 3, 4)), Vec3{1, 1, 1}, Vec3{3, 3, 3}},
		// Placement: rotate in place, then move. +X turns to -Z before the offset.
		{"rotate then translate", Translate(5, 0, 0).Mul(yaw90), Vec3{1, 0, 0}, Vec3{5, 0, -1}},
		{"translate then rotate", yaw90.Mul(Translate(5, 0, 0)), Vec3{1, 0, 0}, Vec3{0, 0, -6}},
		{"model", Translate(0, 1, 0).Mul(yaw90).Mul(Scale(2, 2, 2)), Vec3{0, 0, 1}, Vec3{2, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformVec3(tt.in); !nearVec(got, tt.want, 1e-5) {
				t.Errorf("TransformVec3(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Scale(4, 5, 6))
	if m.Mul(Identity()) != m || Identity().Mul(m) != m {
		t.Error("multiplying by identity changed the matrix")
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	eye := Vec3{3, 4, 5}
	view := LookAt(eye, Vec3{}, Vec3{Y: 1})

	if got := view.TransformVec3(eye); !nearVec(got, Vec3{}, 1e-5) {
		t.Errorf("eye in view space = %v, want origin", got)
	}
	// The look target sits straight ahead on -Z.
	got := view.TransformVec3(Vec3{})
	if !nearVec(got, Vec3{Z: -eye.Length()}, 1e-4) {
		t.Errorf("target in view space = %v", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)
	if m[11] != -1 || m[15] != 0 {
		t.Errorf("not a perspective matrix: w row = %v, %v", m[11], m[15])
	}

	// Points on the near and far planes land at depth -1 and 1 after the divide.
	for _, tc := range []struct {
		z, ndc float32
	}{{-0.1, -1}, {-100, 1}} {
		clipZ := m[10]*tc.z + m[14]
		clipW := m[11]*tc.z + m[15]
		if got := clipZ / clipW; abs(got-tc.ndc) > 1e-3 {
			t.Errorf("z=%v maps to depth %v, want %v", tc.z, got, tc.ndc)
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
