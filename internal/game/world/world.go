// Package world builds the demo terrain and the grass grown on it from a Config.
package world

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-grass/internal/config"
	"github.com/Faultbox/midgard-grass/internal/grass"
	"github.com/Faultbox/midgard-grass/internal/terrain"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// Chunk size limits for interactive adjustment.
const (
	MinChunkSize = 1
	MaxChunkSize = 512
)

// TerrainNode is the node ID the terrain's grass is attached to.
const TerrainNode grass.EntityID = 1

// World owns the terrain mesh and the grass system.
type World struct {
	Terrain *terrain.Mesh
	System  *grass.System
	Grass   *grass.Grass
	ID      grass.EntityID

	preset int
	log    *zap.Logger
}

// New builds the terrain described by cfg and spawns grass on it.
// Nothing is generated until the first Tick.
func New(cfg *config.Config, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}

	mesh := terrain.BuildPlane(cfg.Terrain.Subdivisions, cfg.Terrain.Subdivisions, cfg.Terrain.Size)
	if cfg.Terrain.Amplitude != 0 {
		mesh.Displace(terrain.Hills(cfg.Terrain.Amplitude, cfg.Terrain.Scale))
	}

	settings := cfg.Settings()
	settings.Rand = Rand(cfg.Grass.Seed)
	settings.Logger = log.Named("grass")

	w := &World{
		Terrain: mesh,
		System:  grass.NewSystem(0, log.Named("system")),
		log:     log,
	}
	w.ID, w.Grass = w.System.Spawn(TerrainNode, mesh.Source(), cfg.Terrain.Transform(), settings)

	log.Info("world built",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3),
		zap.Float32("size", mesh.Size),
		zap.Uint32("density", settings.Density))
	return w
}

// Rand returns a generator for seed, or nil to let grass seed itself.
func Rand(seed *uint64) *rand.Rand {
	if seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
}

// Model returns the matrix placing the terrain mesh in the world. It follows
// the grass transform, so the ground and its blades stay aligned.
func (w *World) Model() math.Mat4 {
	return w.Grass.Transform().Matrix()
}

// Bounds returns the world-space box around the placed terrain.
func (w *World) Bounds() math.AABB {
	return w.Terrain.Bounds.Transform(w.Model())
}

// Tick applies pending grass changes and returns how many entities regenerated.
func (w *World) Tick() int {
	return w.System.Tick()
}

// AdjustDensity changes the density by step, stopping at zero.
func (w *World) AdjustDensity(step int) uint32 {
	d := max(int(w.Grass.Density())+step, 0)
	w.Grass.SetDensity(uint32(d))
	return uint32(d)
}

// ScaleChunkSize multiplies the chunk size by f within [MinChunkSize, MaxChunkSize].
func (w *World) ScaleChunkSize(f float32) float32 {
	size := min(max(w.Grass.ChunkSize()*f, MinChunkSize), MaxChunkSize)
	w.Grass.SetChunkSize(size)
	return size
}

// NextColorPreset switches to the next color preset and returns its index.
func (w *World) NextColorPreset() int {
	presets := grass.ColorPresets()
	w.preset = (w.preset + 1) % len(presets)
	w.Grass.SetColor(presets[w.preset])
	return w.preset
}

// Close destroys the grass and stops the system's workers.
func (w *World) Close() {
	w.System.Close()
}
