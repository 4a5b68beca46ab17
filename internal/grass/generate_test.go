package grass

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/midgard-grass/pkg/math"
)

const eps = 1e-5

func TestGenerateQuad(t *testing.T) {
	m, stats := Generate(quadMesh(), IdentityTransform(),
		GenerateParams{Density: 10, ChunkSize: DefaultChunkSize}, WithRand(seeded(1)))

	// Area 4 at density 10: two triangles of ceil(10*2) blades each.
	if got := m.Total(); got < 38 || got > 42 {
		t.Fatalf("Total = %d, want 40 +/- 2", got)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want a single chunk", m.Len())
	}
	insts, ok := m.Get(ChunkCoord{0, 0, 0})
	if !ok {
		t.Fatal("all blades should be in chunk (0,0,0)")
	}
	for _, inst := range insts {
		p := inst.Position
		if p[0] < -eps || p[0] > 2+eps || p[2] < -eps || p[2] > 2+eps || p[1] != 0 {
			t.Fatalf("blade %v outside the quad", p)
		}
		if inst.UV[0] < -eps || inst.UV[0] > 1+eps || inst.UV[1] < -eps || inst.UV[1] > 1+eps {
			t.Fatalf("uv %v outside [0,1]", inst.UV)
		}
		if n := math.Vec3FromArray(inst.Normal); abs32(abs32(n.Y)-1) > 1e-5 {
			t.Fatalf("normal %v is not the face normal of a flat quad", inst.Normal)
		}
	}

	if stats.Triangles != 2 || stats.Instances != m.Total() || stats.Chunks != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGenerateChunkConsistency(t *testing.T) {
	mesh := gridMesh(20)
	for i := range mesh.Positions {
		mesh.Positions[i] = mesh.Positions[i].Sub(math.Vec3{X: 10, Y: 0.5, Z: 10})
	}
	m, _ := Generate(mesh, IdentityTransform(), GenerateParams{Density: 4, ChunkSize: 3}, WithRand(seeded(2)))

	count := 0
	m.Range(func(c ChunkCoord, insts []Instance) bool {
		for _, inst := range insts {
			if got := ChunkOf(math.Vec3FromArray(inst.Position), 3); got != c {
				t.Fatalf("blade %v stored in %+v but belongs to %+v", inst.Position, c, got)
			}
			if inst.Chunk != c.Vec3().Array() {
				t.Fatalf("blade tagged %v in chunk %+v", inst.Chunk, c)
			}
		}
		count += len(insts)
		return true
	})
	if count != m.Total() {
		t.Errorf("chunks hold %d blades, Total says %d", count, m.Total())
	}

	// Grid centred on the origin spans negative chunks.
	if _, ok := m.Get(ChunkCoord{-1, -1, -1}); !ok {
		t.Error("expected blades in chunk (-1,-1,-1)")
	}
}

func TestGenerateDensityScaling(t *testing.T) {
	mesh := gridMesh(4)
	prev := -1
	for _, d := range []uint32{0, 1, 2, 5, 10, 50} {
		m, _ := Generate(mesh, IdentityTransform(), GenerateParams{Density: d}, WithRand(seeded(3)))
		if m.Total() < prev {
			t.Fatalf("density %d produced %d blades, fewer than %d", d, m.Total(), prev)
		}
		prev = m.Total()
	}

	m, _ := Generate(mesh, IdentityTransform(), GenerateParams{Density: 0})
	if m.Total() != 0 {
		t.Errorf("density 0 produced %d blades", m.Total())
	}
}

func TestGenerateUsesWorldScale(t *testing.T) {
	tf := IdentityTransform()
	tf.Scale = math.Vec3{X: 2, Y: 1, Z: 2}
	tf.Translation = math.Vec3{X: 500, Y: 500, Z: 500}

	m, stats := Generate(quadMesh(), tf, GenerateParams{Density: 10}, WithRand(seeded(4)))
	// The quad covers 16 world units once scaled.
	if stats.Instances != 160 {
		t.Fatalf("Instances = %d, want 160", stats.Instances)
	}
	// Translation is left to the renderer.
	for _, inst := range m.Flatten(m.Coords()) {
		if inst.Position[0] > 4+eps || inst.Position[2] > 4+eps {
			t.Fatalf("blade %v not in scaled mesh space", inst.Position)
		}
	}

	// The same world area at unit scale gives the same count.
	big := quadMesh()
	for i := range big.Positions {
		big.Positions[i] = big.Positions[i].Scale(2)
	}
	_, unit := Generate(big, IdentityTransform(), GenerateParams{Density: 10})
	if unit.Instances != stats.Instances {
		t.Errorf("scaled mesh %d blades, pre-scaled mesh %d", stats.Instances, unit.Instances)
	}
}

func TestGenerateIncompleteMesh(t *testing.T) {
	q := quadMesh()
	tests := []struct {
		name string
		mesh Mesh
	}{
		{"empty", Mesh{}},
		{"no positions", Mesh{UVs: q.UVs, Indices: q.Indices}},
		{"no uvs", Mesh{Positions: q.Positions, Indices: q.Indices}},
		{"no indices", Mesh{Positions: q.Positions, UVs: q.UVs}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, stats := Generate(tt.mesh, IdentityTransform(), GenerateParams{Density: 100})
			if m == nil {
				t.Fatal("Generate returned a nil map")
			}
			if m.Total() != 0 || m.Len() != 0 {
				t.Errorf("incomplete mesh produced %d blades in %d chunks", m.Total(), m.Len())
			}
			if !stats.Missing {
				t.Error("stats.Missing not set")
			}
		})
	}
}

func TestGenerateDegenerate(t *testing.T) {
	mesh := Mesh{
		Positions: []math.Vec3{{}, {X: 1}, {X: 2}, {X: 1}},
		UVs:       []math.Vec2{{}, {}, {}, {}},
		Indices:   []uint32{0, 1, 2, 1, 3, 1},
	}
	m, stats := Generate(mesh, IdentityTransform(), GenerateParams{Density: 1000})
	if m.Total() != 0 {
		t.Errorf("degenerate mesh produced %d blades", m.Total())
	}
	if stats.Degenerate != 2 {
		t.Errorf("Degenerate = %d, want 2", stats.Degenerate)
	}
	if stats.Missing {
		t.Error("a complete degenerate mesh is not missing")
	}
}

func TestGenerateOutOfRangeIndex(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mesh := quadMesh()
	mesh.Indices = append(mesh.Indices, 0, 2, 9)

	m, stats := Generate(mesh, IdentityTransform(), GenerateParams{Density: 10},
		WithRand(seeded(5)), WithLogger(zap.New(core)))

	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if m.Total() != 40 {
		t.Errorf("Total = %d, want 40 from the two valid triangles", m.Total())
	}
	if n := logs.FilterMessage("grass mesh has out-of-range indices").Len(); n != 1 {
		t.Errorf("got %d warnings, want exactly 1 per pass", n)
	}

	// An index past the UVs but inside the positions is still out of range.
	short := quadMesh()
	short.UVs = short.UVs[:3]
	_, stats = Generate(short, IdentityTransform(), GenerateParams{Density: 10})
	if stats.Skipped != 1 {
		t.Errorf("short UVs: Skipped = %d, want 1", stats.Skipped)
	}
}

func TestGeneratePartialGroup(t *testing.T) {
	mesh := quadMesh()
	mesh.Indices = append(mesh.Indices, 1)

	m, stats := Generate(mesh, IdentityTransform(), GenerateParams{Density: 10})
	if stats.Dropped != 1 || stats.Triangles != 2 {
		t.Errorf("stats = %+v, want 1 dropped index and 2 triangles", stats)
	}
	if m.Total() != 40 {
		t.Errorf("Total = %d, want 40", m.Total())
	}
}

func TestGenerateParallelMatchesSerial(t *testing.T) {
	mesh := gridMesh(40) // 3200 triangles
	params := GenerateParams{Density: 3, ChunkSize: 7}

	serial, ss := Generate(mesh, IdentityTransform(), params, WithRand(seeded(6)))
	parallel, ps := Generate(mesh, IdentityTransform(), params, WithRand(seeded(6)), WithWorkers(4))

	if serial.Total() != parallel.Total() {
		t.Fatalf("serial %d blades, parallel %d", serial.Total(), parallel.Total())
	}
	if ss.Triangles != ps.Triangles || ps.Triangles != 3200 {
		t.Errorf("triangles serial=%d parallel=%d, want 3200", ss.Triangles, ps.Triangles)
	}
	if serial.Len() != parallel.Len() {
		t.Errorf("serial %d chunks, parallel %d", serial.Len(), parallel.Len())
	}

	count := 0
	parallel.Range(func(c ChunkCoord, insts []Instance) bool {
		for _, inst := range insts {
			if ChunkOf(math.Vec3FromArray(inst.Position), params.ChunkSize) != c {
				t.Fatalf("parallel pass misfiled blade %v", inst.Position)
			}
		}
		count += len(insts)
		return true
	})
	if count != parallel.Total() {
		t.Errorf("chunks hold %d, Total %d", count, parallel.Total())
	}
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	mesh := gridMesh(3)
	a, _ := Generate(mesh, IdentityTransform(), GenerateParams{Density: 5}, WithRand(seeded(9)))
	b, _ := Generate(mesh, IdentityTransform(), GenerateParams{Density: 5}, WithRand(seeded(9)))

	fa, fb := a.Flatten(a.Coords()), b.Flatten(b.Coords())
	if len(fa) != len(fb) {
		t.Fatalf("lengths differ: %d vs %d", len(fa), len(fb))
	}
	for i := range fa {
		if fa[i] != fb[i] {
			t.Fatalf("instance %d differs: %+v vs %+v", i, fa[i], fb[i])
		}
	}
}
