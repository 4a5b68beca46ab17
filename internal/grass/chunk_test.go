package grass

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-grass/pkg/math"
)

func TestChunkOf(t *testing.T) {
	tests := []struct {
		name string
		p    math.Vec3
		size float32
		want ChunkCoord
	}{
		{"origin", math.Vec3{}, 30, ChunkCoord{0, 0, 0}},
		{"inside first", math.Vec3{X: 29.9, Y: 1, Z: 15}, 30, ChunkCoord{0, 0, 0}},
		{"on boundary", math.Vec3{X: 30, Y: 60, Z: 90}, 30, ChunkCoord{1, 2, 3}},
		{"just below zero", math.Vec3{X: -0.1, Y: 0, Z: -0.1}, 30, ChunkCoord{-1, 0, -1}},
		{"negative boundary", math.Vec3{X: -30, Y: -30.5, Z: -60}, 30, ChunkCoord{-1, -2, -2}},
		{"small size", math.Vec3{X: 2.5, Y: -0.5, Z: 0.99}, 1, ChunkCoord{2, -1, 0}},
		{"beyond int32", math.Vec3{X: 1e30, Y: -1e30, Z: 3e9}, 1, ChunkCoord{gomath.MaxInt32, gomath.MinInt32, gomath.MaxInt32}},
		{"infinite", math.Vec3{X: float32(gomath.Inf(1)), Y: float32(gomath.Inf(-1))}, 30, ChunkCoord{gomath.MaxInt32, gomath.MinInt32, 0}},
		{"nan", math.Vec3{X: float32(gomath.NaN()), Y: 45, Z: -45}, 30, ChunkCoord{0, 1, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChunkOf(tt.p, tt.size); got != tt.want {
				t.Errorf("ChunkOf(%+v, %v) = %+v, want %+v", tt.p, tt.size, got, tt.want)
			}
		})
	}
}

func TestChunkBoundsContainMembers(t *testing.T) {
	rng := seeded(11)
	for range 500 {
		p := math.Vec3{
			X: (rng.Float32() - 0.5) * 200,
			Y: (rng.Float32() - 0.5) * 200,
			Z: (rng.Float32() - 0.5) * 200,
		}
		if b := ChunkOf(p, 30).Bounds(30); !b.Contains(p) {
			t.Fatalf("point %+v not inside bounds %+v of its own chunk", p, b)
		}
	}
}

func TestChunkMapInsert(t *testing.T) {
	m := NewChunkMap(10)

	coords := []ChunkCoord{
		m.Insert(Instance{Position: [3]float32{1, 0, 1}}),
		m.Insert(Instance{Position: [3]float32{9, 0, 9}}),
		m.Insert(Instance{Position: [3]float32{-1, 0, 1}}),
		m.Insert(Instance{Position: [3]float32{15, 0, -15}}),
	}
	want := []ChunkCoord{{0, 0, 0}, {0, 0, 0}, {-1, 0, 0}, {1, 0, -2}}
	for i := range want {
		if coords[i] != want[i] {
			t.Errorf("insert %d went to %+v, want %+v", i, coords[i], want[i])
		}
	}

	if m.Total() != 4 {
		t.Errorf("Total = %d, want 4", m.Total())
	}
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.Len())
	}

	insts, ok := m.Get(ChunkCoord{0, 0, 0})
	if !ok || len(insts) != 2 {
		t.Fatalf("chunk (0,0,0) holds %d instances, want 2", len(insts))
	}
	for _, inst := range insts {
		if inst.Chunk != [3]float32{0, 0, 0} {
			t.Errorf("instance chunk tag %v, want origin", inst.Chunk)
		}
	}
	if insts, _ := m.Get(ChunkCoord{1, 0, -2}); insts[0].Chunk != [3]float32{1, 0, -2} {
		t.Errorf("chunk tag %v, want [1 0 -2]", insts[0].Chunk)
	}

	if _, ok := m.Get(ChunkCoord{5, 5, 5}); ok {
		t.Error("empty chunk reported present")
	}
}

func TestChunkMapDefaultSize(t *testing.T) {
	for _, size := range []float32{0, -4} {
		if got := NewChunkMap(size).ChunkSize(); got != DefaultChunkSize {
			t.Errorf("NewChunkMap(%v).ChunkSize() = %v, want %v", size, got, DefaultChunkSize)
		}
	}
}

func TestChunkMapCoordsSorted(t *testing.T) {
	m := NewChunkMap(1)
	for _, p := range [][3]float32{{2, 0, 0}, {-3, 1, 0}, {0, 0, 5}, {0, 0, -5}, {-3, 0, 0}} {
		m.Insert(Instance{Position: p})
	}
	got := m.Coords()
	want := []ChunkCoord{{-3, 0, 0}, {-3, 1, 0}, {0, 0, -5}, {0, 0, 5}, {2, 0, 0}}
	if len(got) != len(want) {
		t.Fatalf("Coords = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Coords[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	var visited []ChunkCoord
	m.Range(func(c ChunkCoord, _ []Instance) bool {
		visited = append(visited, c)
		return len(visited) < 2
	})
	if len(visited) != 2 || visited[0] != want[0] || visited[1] != want[1] {
		t.Errorf("Range visited %v, want first two coords then stop", visited)
	}
}

func TestChunkMapVisible(t *testing.T) {
	m := NewChunkMap(30)
	m.Insert(Instance{Position: [3]float32{15, 15, 15}})  // in front of the camera
	m.Insert(Instance{Position: [3]float32{315, 15, 15}}) // far to the right
	m.Insert(Instance{Position: [3]float32{15, 15, 165}}) // behind the camera

	proj := math.Perspective(float32(gomath.Pi/2), 1, 0.1, 100)
	view := math.LookAt(math.Vec3{X: 15, Y: 15, Z: 60}, math.Vec3{X: 15, Y: 15, Z: 15}, math.Vec3{Y: 1})
	f := math.FrustumFromMatrix(proj.Mul(view))

	got := m.Visible(f, math.Identity())
	if len(got) != 1 || got[0] != (ChunkCoord{0, 0, 0}) {
		t.Fatalf("Visible = %v, want only the origin chunk", got)
	}

	// Moving the placement far away culls everything.
	if got := m.Visible(f, math.Translate(0, 1000, 0)); len(got) != 0 {
		t.Errorf("Visible after translate = %v, want none", got)
	}

	flat := m.Flatten(m.Coords())
	if len(flat) != 3 {
		t.Errorf("Flatten returned %d instances, want 3", len(flat))
	}
	if got := m.Flatten(nil); len(got) != 0 {
		t.Errorf("Flatten(nil) returned %d instances", len(got))
	}
}
