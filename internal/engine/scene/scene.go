// Package scene renders a terrain mesh and the grass grown on it.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-grass/internal/engine/camera"
	"github.com/Faultbox/midgard-grass/internal/engine/debug"
	"github.com/Faultbox/midgard-grass/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-grass/internal/engine/lighting"
	"github.com/Faultbox/midgard-grass/internal/grass"
	"github.com/Faultbox/midgard-grass/internal/terrain"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	Width         int32
	Height        int32
	BladeSegments int
	Culling       bool
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:         1280,
		Height:        720,
		BladeSegments: DefaultBladeSegments,
		Culling:       true,
	}
}

// Scene draws one terrain and any number of grass entities into an
// offscreen framebuffer, then presents it to the window.
type Scene struct {
	config Config
	log    *zap.Logger

	framebuffer *framebuffer.Framebuffer

	terrainRenderer *TerrainRenderer
	boundsRenderer  *BoundsRenderer
	grassRenderers  map[grass.EntityID]*GrassRenderer

	// Lighting
	LightDir     [3]float32
	AmbientColor [3]float32
	ClearColor   [4]float32

	// TerrainModel places the terrain mesh in the world.
	TerrainModel math.Mat4

	// Debug toggles
	ShowChunks  bool
	DebugChunks bool

	stats RenderStats
}

// New creates a new scene with the given configuration.
func New(cfg Config, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		config:         cfg,
		log:            log,
		grassRenderers: make(map[grass.EntityID]*GrassRenderer),
		ClearColor:     [4]float32{0.53, 0.71, 0.86, 1.0},
		TerrainModel:   math.Identity(),
	}
	s.SetSun(135, 50)

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	s.terrainRenderer, err = NewTerrainRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}

	s.boundsRenderer, err = NewBoundsRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating bounds renderer: %w", err)
	}

	return s, nil
}

// SetSun points the light from the given azimuth and elevation in degrees.
func (s *Scene) SetSun(azimuth, elevation float32) {
	s.LightDir = lighting.SunDirection(azimuth, elevation)
	s.AmbientColor = lighting.Ambient(elevation, [3]float32{0.45, 0.5, 0.55})
}

// SetTerrain uploads the ground mesh.
func (s *Scene) SetTerrain(m *terrain.Mesh) {
	s.terrainRenderer.LoadMesh(m)
}

// SetCulling toggles frustum culling for every grass entity.
func (s *Scene) SetCulling(on bool) {
	s.config.Culling = on
	for _, gr := range s.grassRenderers {
		gr.Culling = on
	}
}

// Culling reports whether frustum culling is on.
func (s *Scene) Culling() bool {
	return s.config.Culling
}

// SyncGrass uploads new data from every live entity in sys and drops the
// GPU resources of removed ones.
func (s *Scene) SyncGrass(sys *grass.System) error {
	live := make(map[grass.EntityID]struct{}, sys.Len())
	for _, id := range sys.IDs() {
		g, ok := sys.Get(id)
		if !ok {
			continue
		}
		live[id] = struct{}{}

		gr, ok := s.grassRenderers[id]
		if !ok {
			var err error
			gr, err = NewGrassRenderer(s.config.BladeSegments, s.log.With(zap.Uint64("entity", uint64(id))))
			if err != nil {
				return fmt.Errorf("creating grass renderer: %w", err)
			}
			gr.Culling = s.config.Culling
			s.grassRenderers[id] = gr
		}
		gr.DebugChunks = s.DebugChunks
		gr.Sync(g)
	}

	for id, gr := range s.grassRenderers {
		if _, ok := live[id]; !ok {
			gr.Destroy()
			delete(s.grassRenderers, id)
		}
	}
	return nil
}

// Render draws the scene from cam and presents it at the window's drawable size.
func (s *Scene) Render(cam *camera.OrbitCamera, sys *grass.System, time float32, drawableW, drawableH int32) RenderStats {
	aspect := float32(s.config.Width) / float32(max(s.config.Height, 1))
	viewProj := cam.ViewProjection(aspect)
	frustum := cam.Frustum(aspect)

	s.framebuffer.Bind()
	s.framebuffer.Clear(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], s.ClearColor[3])

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	s.terrainRenderer.Render(viewProj, s.TerrainModel, s.LightDir, s.AmbientColor)

	s.stats = RenderStats{}
	for _, id := range sys.IDs() {
		gr, ok := s.grassRenderers[id]
		if !ok {
			continue
		}
		g, ok := sys.Get(id)
		if !ok {
			continue
		}
		placement := g.Transform().Placement()
		gr.Render(viewProj, placement, frustum, time, s.LightDir, s.AmbientColor)

		st := gr.Stats()
		s.stats.Chunks += st.Chunks
		s.stats.VisibleChunks += st.VisibleChunks
		s.stats.Instances += st.Instances
		s.stats.DrawCalls += st.DrawCalls

		if s.ShowChunks {
			if m := g.Chunks(); m != nil {
				s.boundsRenderer.SetLines(debug.ChunkWireframe(m, m.Visible(frustum, placement)))
				s.boundsRenderer.Render(viewProj, placement)
			}
		}
	}

	s.framebuffer.Present(drawableW, drawableH)
	return s.stats
}

// Stats returns the counters of the last Render call.
func (s *Scene) Stats() RenderStats {
	return s.stats
}

// Resize updates the render target size.
func (s *Scene) Resize(width, height int32) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	s.framebuffer.Resize(width, height)
}

// CaptureImage reads the last rendered frame back as a top-down image.
func (s *Scene) CaptureImage() *image.RGBA {
	return s.framebuffer.Image()
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	for id, gr := range s.grassRenderers {
		gr.Destroy()
		delete(s.grassRenderers, id)
	}
	if s.boundsRenderer != nil {
		s.boundsRenderer.Destroy()
	}
	if s.terrainRenderer != nil {
		s.terrainRenderer.Destroy()
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
