package grass

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-grass/pkg/math"
)

// Below this many triangles a pass always runs on the calling goroutine.
const minParallelTriangles = 512

// GenerateParams are the inputs that force a full regeneration when changed.
type GenerateParams struct {
	Density   uint32  // blades per square world unit
	ChunkSize float32 // world units; <= 0 means DefaultChunkSize
}

// Stats summarizes one generation pass.
type Stats struct {
	Triangles  int  // whole triangles walked
	Skipped    int  // triangles referencing an out-of-range vertex
	Degenerate int  // zero-area triangles
	Dropped    int  // trailing indices that did not form a triangle
	Instances  int  // blades placed
	Chunks     int  // non-empty chunks
	Missing    bool // a mesh attribute was absent; nothing was generated
	Elapsed    time.Duration
}

func (s *Stats) add(o Stats) {
	s.Triangles += o.Triangles
	s.Skipped += o.Skipped
	s.Degenerate += o.Degenerate
}

type generateOptions struct {
	rng     *rand.Rand
	workers int
	log     *zap.Logger
}

// GenerateOption customizes Generate.
type GenerateOption func(*generateOptions)

// WithRand sets the random source. Parallel passes derive one generator per
// worker from it before any worker starts.
func WithRand(rng *rand.Rand) GenerateOption {
	return func(o *generateOptions) { o.rng = rng }
}

// WithWorkers splits the triangle walk across n goroutines.
func WithWorkers(n int) GenerateOption {
	return func(o *generateOptions) { o.workers = n }
}

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(log *zap.Logger) GenerateOption {
	return func(o *generateOptions) { o.log = log }
}

// Generate grows grass on mesh and returns a new chunk map.
//
// Positions are scaled by the transform before any area or chunk math, so
// density and chunk size are both in world units. Mesh problems never fail
// the pass: a missing attribute yields an empty map, trailing indices are
// dropped, and triangles with out-of-range indices or zero area are skipped.
func Generate(mesh Mesh, tf Transform, params GenerateParams, opts ...GenerateOption) (*ChunkMap, Stats) {
	start := time.Now()
	o := generateOptions{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = newRand()
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	out := NewChunkMap(params.ChunkSize)
	var stats Stats

	if !mesh.Complete() {
		stats.Missing = true
		stats.Elapsed = time.Since(start)
		o.log.Debug("grass mesh not ready",
			zap.Int("positions", len(mesh.Positions)),
			zap.Int("uvs", len(mesh.UVs)),
			zap.Int("indices", len(mesh.Indices)),
		)
		return out, stats
	}

	triangles := mesh.TriangleCount()
	stats.Dropped = len(mesh.Indices) % 3
	job := pass{
		mesh:    mesh,
		scale:   tf.scale(),
		density: params.Density,
		size:    out.ChunkSize(),
	}

	workers := o.workers
	if workers > triangles/minParallelTriangles {
		workers = triangles / minParallelTriangles
	}
	if workers <= 1 {
		stats.add(job.run(0, triangles, NewSampler(o.rng), out))
	} else {
		generateParallel(job, triangles, workers, o.rng, out, &stats)
	}

	stats.Instances = out.Total()
	stats.Chunks = out.Len()
	stats.Elapsed = time.Since(start)

	if stats.Skipped > 0 {
		o.log.Warn("grass mesh has out-of-range indices",
			zap.Int("skipped_triangles", stats.Skipped),
			zap.Int("positions", len(mesh.Positions)),
			zap.Int("uvs", len(mesh.UVs)),
		)
	}
	o.log.Debug("grass generated",
		zap.Uint32("density", params.Density),
		zap.Float32("chunk_size", out.ChunkSize()),
		zap.Int("triangles", stats.Triangles),
		zap.Int("degenerate", stats.Degenerate),
		zap.Int("instances", stats.Instances),
		zap.Int("chunks", stats.Chunks),
		zap.Int("workers", max(workers, 1)),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return out, stats
}

// generateParallel samples contiguous triangle ranges into per-worker maps,
// then folds them into out on the calling goroutine.
func generateParallel(job pass, triangles, workers int, rng *rand.Rand, out *ChunkMap, stats *Stats) {
	partial := make([]*ChunkMap, workers)
	partialStats := make([]Stats, workers)
	per := (triangles + workers - 1) / workers

	var g errgroup.Group
	for w := range workers {
		from := w * per
		to := min(from+per, triangles)
		sampler := NewSampler(deriveRand(rng))
		partial[w] = NewChunkMap(job.size)
		g.Go(func() error {
			partialStats[w] = job.run(from, to, sampler, partial[w])
			return nil
		})
	}
	_ = g.Wait()

	for w := range workers {
		out.absorb(partial[w])
		stats.add(partialStats[w])
	}
}

// pass is the immutable per-generation state shared by all workers.
type pass struct {
	mesh    Mesh
	scale   math.Vec3
	density uint32
	size    float32
}

// run walks triangles [from, to) and inserts their blades into out.
func (p pass) run(from, to int, sampler *Sampler, out *ChunkMap) Stats {
	var stats Stats
	var samples []Sample
	idx := p.mesh.Indices

	for t := from; t < to; t++ {
		stats.Triangles++
		i0, i1, i2 := idx[3*t], idx[3*t+1], idx[3*t+2]
		if !p.mesh.validIndex(i0) || !p.mesh.validIndex(i1) || !p.mesh.validIndex(i2) {
			stats.Skipped++
			continue
		}

		tri := Triangle{
			Positions: [3]math.Vec3{
				p.mesh.Positions[i0].Mul(p.scale),
				p.mesh.Positions[i1].Mul(p.scale),
				p.mesh.Positions[i2].Mul(p.scale),
			},
			UVs: [3]math.Vec2{p.mesh.UVs[i0], p.mesh.UVs[i1], p.mesh.UVs[i2]},
		}
		if TriangleArea(tri.Positions) <= degenerateArea {
			stats.Degenerate++
			continue
		}
		tri.Normal = FaceNormal(tri.Positions)

		samples = sampler.Sample(tri, InstanceCount(tri.Positions, p.density), samples[:0])
		for _, s := range samples {
			out.Insert(Instance{
				Position: s.Position.Array(),
				Normal:   s.Normal.Array(),
				UV:       s.UV.Array(),
			})
		}
	}
	return stats
}
