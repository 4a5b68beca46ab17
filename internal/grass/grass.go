// Package grass grows instanced grass blades on triangulated terrain and
// buckets them into fixed-size chunks for culling and streaming.
package grass

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// EntityID identifies a scene node or a grass entity. Zero is never assigned.
type EntityID uint64

// State is the lifecycle state of a Grass entity.
type State uint8

const (
	StateUninitialized State = iota
	StateGenerated
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateGenerated:
		return "generated"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Settings configures a new Grass entity.
type Settings struct {
	Density   uint32
	ChunkSize float32
	Color     Color
	Blade     Blade
	Wind      Wind
	Workers   int        // per-entity triangle parallelism; <= 1 is serial
	Rand      *rand.Rand // nil for a randomly seeded source
	Logger    *zap.Logger
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Density:   25,
		ChunkSize: DefaultChunkSize,
		Color:     DefaultColor(),
		Blade:     DefaultBlade(),
		Wind:      DefaultWind(),
		Workers:   1,
	}
}

// Grass is the grass attached to one scene node.
//
// Setters only record changes. Update applies them: a change to the mesh,
// transform, density or chunk size rebuilds the whole chunk map; a change to
// color, blade or wind only repacks the ParamBlob. Readers use Chunks and
// Params, which always return a complete published value.
type Grass struct {
	Node EntityID // scene node whose mesh the grass covers

	mu          sync.Mutex
	mesh        Mesh
	transform   Transform
	density     uint32
	chunkSize   float32
	color       Color
	blade       Blade
	wind        Wind
	workers     int
	rng         *rand.Rand
	log         *zap.Logger
	state       State
	regenerate  bool
	paramsDirty bool
	stats       Stats

	chunks atomic.Pointer[ChunkMap]
	params atomic.Pointer[ParamBlob]
}

// New creates grass for node. Nothing is generated until the first Update.
func New(node EntityID, mesh Mesh, tf Transform, s Settings) *Grass {
	if s.ChunkSize <= 0 {
		s.ChunkSize = DefaultChunkSize
	}
	if s.Rand == nil {
		s.Rand = newRand()
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	g := &Grass{
		Node:        node,
		mesh:        mesh,
		transform:   tf,
		density:     s.Density,
		chunkSize:   s.ChunkSize,
		color:       s.Color,
		blade:       s.Blade,
		wind:        s.Wind,
		workers:     s.Workers,
		rng:         s.Rand,
		log:         s.Logger.With(zap.Uint64("node", uint64(node))),
		paramsDirty: true,
	}
	return g
}

// State returns the lifecycle state.
func (g *Grass) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Dirty reports whether the next Update has work to do.
func (g *Grass) Dirty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateDestroyed {
		return false
	}
	return g.state == StateUninitialized || g.regenerate || g.paramsDirty
}

// SetMesh replaces the source mesh and schedules regeneration.
func (g *Grass) SetMesh(m Mesh) {
	g.mu.Lock()
	g.mesh = m
	g.regenerate = true
	g.mu.Unlock()
}

// SetTransform schedules regeneration if the transform changed.
func (g *Grass) SetTransform(tf Transform) {
	g.mu.Lock()
	if tf != g.transform {
		g.transform = tf
		g.regenerate = true
	}
	g.mu.Unlock()
}

// Transform returns the current source transform.
func (g *Grass) Transform() Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.transform
}

// SetDensity schedules regeneration if the density changed.
func (g *Grass) SetDensity(d uint32) {
	g.mu.Lock()
	if d != g.density {
		g.density = d
		g.regenerate = true
	}
	g.mu.Unlock()
}

// Density returns the configured density.
func (g *Grass) Density() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.density
}

// SetChunkSize schedules regeneration if the size changed. Non-positive sizes are ignored.
func (g *Grass) SetChunkSize(size float32) {
	if size <= 0 {
		return
	}
	g.mu.Lock()
	if size != g.chunkSize {
		g.chunkSize = size
		g.regenerate = true
	}
	g.mu.Unlock()
}

// ChunkSize returns the configured chunk size.
func (g *Grass) ChunkSize() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chunkSize
}

// Regenerate forces a rebuild on the next Update, e.g. to reshuffle blades.
func (g *Grass) Regenerate() {
	g.mu.Lock()
	g.regenerate = true
	g.mu.Unlock()
}

// SetColor updates the palette without regenerating.
func (g *Grass) SetColor(c Color) {
	g.mu.Lock()
	if c != g.color {
		g.color = c
		g.paramsDirty = true
	}
	g.mu.Unlock()
}

// SetBlade updates the blade shape without regenerating.
func (g *Grass) SetBlade(b Blade) {
	g.mu.Lock()
	if b != g.blade {
		g.blade = b
		g.paramsDirty = true
	}
	g.mu.Unlock()
}

// SetWind updates the wind without regenerating.
func (g *Grass) SetWind(w Wind) {
	g.mu.Lock()
	if w != g.wind {
		g.wind = w
		g.paramsDirty = true
	}
	g.mu.Unlock()
}

// Update applies pending changes. It reports whether the chunk map was
// rebuilt and whether the parameter blob was repacked.
func (g *Grass) Update() (regenerated, paramsChanged bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateDestroyed {
		return false, false
	}

	if g.state == StateUninitialized || g.regenerate {
		chunks, stats := Generate(g.mesh, g.transform,
			GenerateParams{Density: g.density, ChunkSize: g.chunkSize},
			WithRand(g.rng),
			WithWorkers(g.workers),
			WithLogger(g.log),
		)
		g.chunks.Store(chunks)
		g.stats = stats
		g.regenerate = false
		g.state = StateGenerated
		regenerated = true
	}

	if g.paramsDirty {
		blob := NewParamBlob(g.color, g.blade, g.wind)
		g.params.Store(&blob)
		g.paramsDirty = false
		paramsChanged = true
	}
	return regenerated, paramsChanged
}

// Chunks returns the last published chunk map, or nil before the first
// Update and after Destroy. The returned map is never modified; hold on to
// it only until the next regeneration.
func (g *Grass) Chunks() *ChunkMap {
	return g.chunks.Load()
}

// Params returns the last packed parameter blob, or nil before the first Update.
func (g *Grass) Params() *ParamBlob {
	return g.params.Load()
}

// LastStats returns the stats of the most recent generation pass.
func (g *Grass) LastStats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

// Destroy releases the chunk map. Later Updates are no-ops.
func (g *Grass) Destroy() {
	g.mu.Lock()
	g.state = StateDestroyed
	g.mesh = Mesh{}
	g.regenerate = false
	g.paramsDirty = false
	g.mu.Unlock()
	g.chunks.Store(nil)
	g.params.Store(nil)
}
