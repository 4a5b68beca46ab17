package terrain

import (
	gomath "math"
)

// Flat is a HeightFunc that keeps the plane at y=0.
func Flat(_, _ float32) float32 { return 0 }

// Hills returns rolling sine hills. amplitude is the peak height and scale the
// angular frequency in radians per world unit; either at zero gives a flat plane.
func Hills(amplitude, scale float32) HeightFunc {
	if amplitude == 0 || scale == 0 {
		return Flat
	}
	return func(x, z float32) float32 {
		fx, fz := float64(x*scale), float64(z*scale)
		h := gomath.Sin(fx)*gomath.Cos(fz) + 0.5*gomath.Sin(2.3*fx+1.7)*gomath.Sin(1.9*fz)
		return amplitude * float32(h) / 1.5
	}
}

// HeightAt returns the interpolated terrain height at a world position on a
// plane built by BuildPlane. Positions off the grid are clamped to its edge.
// ok is false for meshes without a grid layout.
func (m *Mesh) HeightAt(worldX, worldZ float32) (h float32, ok bool) {
	if m.Columns == 0 || m.Rows == 0 || m.Size <= 0 {
		return 0, false
	}

	// Grid-local cell coordinates.
	cellFX := (worldX + m.Size/2) / m.Size * float32(m.Columns)
	cellFZ := (worldZ + m.Size/2) / m.Size * float32(m.Rows)

	cellX := clampi(int(gomath.Floor(float64(cellFX))), 0, m.Columns-1)
	cellZ := clampi(int(gomath.Floor(float64(cellFZ))), 0, m.Rows-1)

	fracX := clampf(cellFX-float32(cellX), 0, 1)
	fracZ := clampf(cellFZ-float32(cellZ), 0, 1)

	row := m.Columns + 1
	y := func(x, z int) float32 { return m.Vertices[x+z*row].Position[1] }

	// Lerp along X on both Z edges, then between them.
	south := y(cellX, cellZ)*(1-fracX) + y(cellX+1, cellZ)*fracX
	north := y(cellX, cellZ+1)*(1-fracX) + y(cellX+1, cellZ+1)*fracX
	return south*(1-fracZ) + north*fracZ, true
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
