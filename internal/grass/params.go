package grass

import (
	gomath "math"
	"unsafe"
)

// Color is the blade palette. Components are linear RGBA in [0,1].
type Color struct {
	AO     [4]float32 `yaml:"ao"`      // darkening at the blade root
	Color1 [4]float32 `yaml:"color_1"` // first body blend color
	Color2 [4]float32 `yaml:"color_2"` // second body blend color
	Tip    [4]float32 `yaml:"tip"`
}

// DefaultColor returns the standard meadow palette.
func DefaultColor() Color {
	return Color{
		AO:     [4]float32{0.01, 0.02, 0.05, 1.0},
		Color1: [4]float32{0.1, 0.23, 0.09, 1.0},
		Color2: [4]float32{0.12, 0.39, 0.15, 1.0},
		Tip:    [4]float32{0.7, 0.7, 0.7, 1.0},
	}
}

// ColorPresets returns the palettes a viewer can cycle through.
// The first entry is DefaultColor.
func ColorPresets() []Color {
	return []Color{
		DefaultColor(),
		{ // dry
			AO:     [4]float32{0.05, 0.04, 0.02, 1.0},
			Color1: [4]float32{0.42, 0.36, 0.16, 1.0},
			Color2: [4]float32{0.58, 0.5, 0.24, 1.0},
			Tip:    [4]float32{0.85, 0.8, 0.6, 1.0},
		},
		{ // lush
			AO:     [4]float32{0.0, 0.03, 0.02, 1.0},
			Color1: [4]float32{0.05, 0.3, 0.06, 1.0},
			Color2: [4]float32{0.1, 0.5, 0.12, 1.0},
			Tip:    [4]float32{0.55, 0.8, 0.4, 1.0},
		},
	}
}

// Blade describes the shape of a single blade.
type Blade struct {
	Length       float32 `yaml:"length"`
	Width        float32 `yaml:"width"`
	Tilt         float32 `yaml:"tilt"`
	TiltVariance float32 `yaml:"tilt_variance"`
	Bend         float32 `yaml:"bend"`
}

// DefaultBlade returns the standard blade shape.
func DefaultBlade() Blade {
	return Blade{
		Length:       1.5,
		Width:        1.0,
		Tilt:         0.5,
		TiltVariance: 0.2,
		Bend:         0.5,
	}
}

// Wind drives the shader-side sway. Nothing here is simulated on the CPU.
type Wind struct {
	Direction [2]float32 `yaml:"direction"` // XZ, normalized when packed
	Strength  float32    `yaml:"strength"`
	Frequency float32    `yaml:"frequency"`
	Speed     float32    `yaml:"speed"`
}

// DefaultWind returns a light breeze along +X.
func DefaultWind() Wind {
	return Wind{
		Direction: [2]float32{1, 0},
		Strength:  0.3,
		Frequency: 0.5,
		Speed:     1.0,
	}
}

// ParamBlob is the fixed 128-byte uniform block consumed by the grass shader.
// Every field is a vec4 so the layout is identical under std140.
type ParamBlob struct {
	AO     [4]float32
	Color1 [4]float32
	Color2 [4]float32
	Tip    [4]float32
	Shape  [4]float32 // length, width, tilt, tilt variance
	Bend   [4]float32 // bend, unused x3
	Wind   [4]float32 // dir.x, dir.z, strength, frequency
	Motion [4]float32 // speed, unused x3
}

// ParamBlobSize is the byte size of ParamBlob.
const ParamBlobSize = int(unsafe.Sizeof(ParamBlob{}))

// NewParamBlob packs appearance parameters into the uniform layout.
func NewParamBlob(c Color, b Blade, w Wind) ParamBlob {
	dx, dz := w.Direction[0], w.Direction[1]
	if l := float32(gomath.Hypot(float64(dx), float64(dz))); l > 0 {
		dx, dz = dx/l, dz/l
	} else {
		dx, dz = 1, 0
	}
	return ParamBlob{
		AO:     c.AO,
		Color1: c.Color1,
		Color2: c.Color2,
		Tip:    c.Tip,
		Shape:  [4]float32{b.Length, b.Width, b.Tilt, b.TiltVariance},
		Bend:   [4]float32{b.Bend},
		Wind:   [4]float32{dx, dz, w.Strength, w.Frequency},
		Motion: [4]float32{w.Speed},
	}
}

// Bytes returns a view of the blob's memory for buffer uploads.
// The slice aliases b; copy it if b may change before the upload completes.
func (b *ParamBlob) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(b)), ParamBlobSize)
}
