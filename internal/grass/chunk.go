package grass

import (
	"cmp"
	gomath "math"
	"slices"

	"github.com/Faultbox/midgard-grass/pkg/math"
)

// DefaultChunkSize is the edge length of a chunk in world units.
const DefaultChunkSize float32 = 30.0

// ChunkCoord identifies a cubic chunk of the world.
type ChunkCoord struct {
	X, Y, Z int32
}

// ChunkOf returns the chunk containing p. Each axis is floor(p/size), so
// negative positions fall into negative chunks (-0.1 with size 30 is chunk -1).
func ChunkOf(p math.Vec3, size float32) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(p.X, size),
		Y: floorDiv(p.Y, size),
		Z: floorDiv(p.Z, size),
	}
}

// floorDiv saturates at the int32 range. NaN lands in chunk 0.
func floorDiv(v, size float32) int32 {
	q := gomath.Floor(float64(v) / float64(size))
	switch {
	case gomath.IsNaN(q):
		return 0
	case q <= gomath.MinInt32:
		return gomath.MinInt32
	case q >= gomath.MaxInt32:
		return gomath.MaxInt32
	}
	return int32(q)
}

// Vec3 returns the coordinate as floats, the form stored in each Instance.
func (c ChunkCoord) Vec3() math.Vec3 {
	return math.Vec3{X: float32(c.X), Y: float32(c.Y), Z: float32(c.Z)}
}

// Bounds returns the world-space box covered by the chunk.
func (c ChunkCoord) Bounds(size float32) math.AABB {
	origin := c.Vec3().Scale(size)
	return math.AABB{Min: origin, Max: origin.Add(math.Vec3{X: size, Y: size, Z: size})}
}

func compareCoords(a, b ChunkCoord) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

// Instance is one grass blade, laid out for direct upload as a per-instance
// vertex attribute stream (11 float32, 44 bytes).
type Instance struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
	Chunk    [3]float32
}

// ChunkMap groups instances by chunk coordinate.
//
// A ChunkMap is filled by a single generation pass and is read-only once
// published; a regeneration builds a new map instead of editing this one.
type ChunkMap struct {
	size   float32
	chunks map[ChunkCoord][]Instance
	total  int
}

// NewChunkMap returns an empty map with the given chunk size.
// A non-positive size falls back to DefaultChunkSize.
func NewChunkMap(size float32) *ChunkMap {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &ChunkMap{
		size:   size,
		chunks: make(map[ChunkCoord][]Instance),
	}
}

// ChunkSize returns the chunk edge length used to bucket this map.
func (m *ChunkMap) ChunkSize() float32 {
	return m.size
}

// Insert appends inst to the collection of the chunk containing its position.
func (m *ChunkMap) Insert(inst Instance) ChunkCoord {
	coord := ChunkOf(math.Vec3FromArray(inst.Position), m.size)
	inst.Chunk = coord.Vec3().Array()
	m.chunks[coord] = append(m.chunks[coord], inst)
	m.total++
	return coord
}

// absorb moves every collection of other into m. Both maps must share a chunk size.
func (m *ChunkMap) absorb(other *ChunkMap) {
	for coord, insts := range other.chunks {
		m.chunks[coord] = append(m.chunks[coord], insts...)
	}
	m.total += other.total
}

// Get returns the instances of one chunk.
func (m *ChunkMap) Get(coord ChunkCoord) ([]Instance, bool) {
	insts, ok := m.chunks[coord]
	return insts, ok
}

// Len returns the number of non-empty chunks.
func (m *ChunkMap) Len() int {
	return len(m.chunks)
}

// Total returns the number of instances across all chunks.
func (m *ChunkMap) Total() int {
	return m.total
}

// Coords returns all chunk coordinates sorted by X, then Y, then Z.
func (m *ChunkMap) Coords() []ChunkCoord {
	coords := make([]ChunkCoord, 0, len(m.chunks))
	for c := range m.chunks {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, compareCoords)
	return coords
}

// Range calls fn for every chunk in coordinate order until fn returns false.
func (m *ChunkMap) Range(fn func(coord ChunkCoord, insts []Instance) bool) {
	for _, c := range m.Coords() {
		if !fn(c, m.chunks[c]) {
			return
		}
	}
}

// Visible returns the chunks whose bounds, moved by placement, intersect f.
func (m *ChunkMap) Visible(f math.Frustum, placement math.Mat4) []ChunkCoord {
	var out []ChunkCoord
	for _, c := range m.Coords() {
		if f.IntersectsAABB(c.Bounds(m.size).Transform(placement)) {
			out = append(out, c)
		}
	}
	return out
}

// Flatten concatenates the instances of coords into one buffer.
func (m *ChunkMap) Flatten(coords []ChunkCoord) []Instance {
	n := 0
	for _, c := range coords {
		n += len(m.chunks[c])
	}
	out := make([]Instance, 0, n)
	for _, c := range coords {
		out = append(out, m.chunks[c]...)
	}
	return out
}
