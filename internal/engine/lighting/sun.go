// Package lighting provides lighting utilities for 3D rendering.
package lighting

import "math"

// SunDirection converts an azimuth around Y and an elevation above the
// horizon, both in degrees, to a unit vector pointing towards the sun.
func SunDirection(azimuth, elevation float32) [3]float32 {
	az := float64(azimuth) * math.Pi / 180.0
	el := float64(elevation) * math.Pi / 180.0

	x := float32(math.Cos(el) * math.Sin(az))
	y := float32(math.Sin(el))
	z := float32(math.Cos(el) * math.Cos(az))

	return [3]float32{x, y, z}
}

// Ambient returns a sky fill color that darkens as the sun drops.
func Ambient(elevation float32, base [3]float32) [3]float32 {
	k := float32(0.4 + 0.6*math.Max(0, math.Sin(float64(elevation)*math.Pi/180.0)))
	return [3]float32{base[0] * k, base[1] * k, base[2] * k}
}
