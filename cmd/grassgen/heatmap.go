package main

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Faultbox/midgard-grass/internal/grass"
)

// Heatmap renders blade counts per chunk column seen from above, one pixel
// per chunk along X and Z with chunks stacked in Y summed together.
// Row 0 is the smallest Z.
func Heatmap(m *grass.ChunkMap) *image.RGBA {
	coords := m.Coords()
	if len(coords) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	minX, maxX := coords[0].X, coords[0].X
	minZ, maxZ := coords[0].Z, coords[0].Z
	for _, c := range coords[1:] {
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minZ, maxZ = min(minZ, c.Z), max(maxZ, c.Z)
	}

	w, h := int(maxX-minX)+1, int(maxZ-minZ)+1
	counts := make([]int, w*h)
	peak := 0
	m.Range(func(c grass.ChunkCoord, insts []grass.Instance) bool {
		i := int(c.Z-minZ)*w + int(c.X-minX)
		counts[i] += len(insts)
		peak = max(peak, counts[i])
		return true
	})

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, n := range counts {
		img.SetRGBA(i%w, i/w, heat(float32(n)/float32(peak)))
	}
	return img
}

// heat maps t in [0, 1] from bare soil to dense green.
func heat(t float32) color.RGBA {
	if t <= 0 {
		return color.RGBA{A: 255}
	}
	lerp := func(a, b uint8) uint8 { return uint8(float32(a) + (float32(b)-float32(a))*t) }
	return color.RGBA{R: lerp(60, 40), G: lerp(40, 230), B: lerp(20, 60), A: 255}
}

// Upscale enlarges img with nearest-neighbour sampling so its longer side is
// at least minSide pixels. Chunk cells stay square and sharp.
func Upscale(img image.Image, minSide int) image.Image {
	b := img.Bounds()
	side := max(b.Dx(), b.Dy())
	if side >= minSide {
		return img
	}
	k := (minSide + side - 1) / side
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*k, b.Dy()*k))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
