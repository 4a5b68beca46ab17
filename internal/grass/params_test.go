package grass

import (
	"encoding/binary"
	gomath "math"
	"testing"
)

func TestParamBlobLayout(t *testing.T) {
	if ParamBlobSize != 128 {
		t.Fatalf("ParamBlobSize = %d, want 128", ParamBlobSize)
	}

	blob := NewParamBlob(DefaultColor(), DefaultBlade(), DefaultWind())
	b := blob.Bytes()
	if len(b) != 128 {
		t.Fatalf("Bytes() length %d", len(b))
	}

	// Offsets are std140: each field starts on a 16-byte boundary.
	at := func(off int) float32 {
		return gomath.Float32frombits(binary.NativeEndian.Uint32(b[off:]))
	}
	checks := []struct {
		name string
		off  int
		want float32
	}{
		{"ao.r", 0, 0.01},
		{"color1.g", 16 + 4, 0.23},
		{"color2.b", 32 + 8, 0.15},
		{"tip.a", 48 + 12, 1},
		{"length", 64, 1.5},
		{"tilt variance", 64 + 12, 0.2},
		{"bend", 80, 0.5},
		{"wind dir x", 96, 1},
		{"wind strength", 96 + 8, 0.3},
		{"speed", 112, 1},
	}
	for _, c := range checks {
		if got := at(c.off); got != c.want {
			t.Errorf("%s at %d = %v, want %v", c.name, c.off, got, c.want)
		}
	}
}

func TestParamBlobWindDirection(t *testing.T) {
	tests := []struct {
		dir   [2]float32
		wantX float32
		wantZ float32
	}{
		{[2]float32{3, 4}, 0.6, 0.8},
		{[2]float32{0, -2}, 0, -1},
		{[2]float32{0, 0}, 1, 0},
	}
	for _, tt := range tests {
		w := DefaultWind()
		w.Direction = tt.dir
		blob := NewParamBlob(DefaultColor(), DefaultBlade(), w)
		if abs32(blob.Wind[0]-tt.wantX) > 1e-6 || abs32(blob.Wind[1]-tt.wantZ) > 1e-6 {
			t.Errorf("direction %v packed as (%v, %v), want (%v, %v)",
				tt.dir, blob.Wind[0], blob.Wind[1], tt.wantX, tt.wantZ)
		}
	}
}

func TestColorPresets(t *testing.T) {
	presets := ColorPresets()
	if len(presets) < 2 {
		t.Fatalf("only %d presets", len(presets))
	}
	if presets[0] != DefaultColor() {
		t.Error("first preset should be the default palette")
	}
}
