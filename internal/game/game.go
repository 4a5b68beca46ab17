// Package game implements the interactive grass viewer loop.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-grass/internal/config"
	"github.com/Faultbox/midgard-grass/internal/engine/camera"
	"github.com/Faultbox/midgard-grass/internal/engine/debug"
	"github.com/Faultbox/midgard-grass/internal/engine/input"
	"github.com/Faultbox/midgard-grass/internal/engine/picking"
	"github.com/Faultbox/midgard-grass/internal/engine/scene"
	"github.com/Faultbox/midgard-grass/internal/engine/window"
	"github.com/Faultbox/midgard-grass/internal/game/world"
	"github.com/Faultbox/midgard-grass/internal/grass"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// DensityStep is how much one +/- key press changes the density.
const DensityStep = 5

const title = "Midgard Grass"

// Game is the viewer instance.
type Game struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window *window.Window
	input  *input.Input
	scene  *scene.Scene
	camera *camera.OrbitCamera
	world  *world.World
	shots  *debug.ScreenshotCapture

	start time.Time
}

// New opens the window and builds the world described by cfg.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen))

	g := &Game{
		config: cfg,
		log:    log,
		shots:  debug.NewScreenshotCapture("screenshots", "grass"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Scene needs the GL context, so it comes after the window.
	w, h := g.window.GetDrawableSize()
	sceneCfg := scene.DefaultConfig()
	sceneCfg.Width, sceneCfg.Height = int32(w), int32(h)
	sceneCfg.Culling = cfg.Graphics.Culling
	g.scene, err = scene.New(sceneCfg, log.Named("scene"))
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	g.world = world.New(cfg, log.Named("world"))
	g.scene.SetTerrain(g.world.Terrain)

	g.camera = camera.NewOrbitCamera()
	g.camera.FitToBounds(g.world.Bounds())

	g.input = input.New()

	log.Info("viewer initialized")
	return g, nil
}

// Run starts the main loop and returns when the window closes.
func (g *Game) Run() error {
	g.running = true
	g.start = time.Now()

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	g.log.Info("starting viewer loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleInput(dt)

		// 2. Apply grass changes, then hand the published data to the GPU
		if n := g.world.Tick(); n > 0 {
			st := g.world.Grass.LastStats()
			g.log.Debug("grass regenerated",
				zap.Int("instances", st.Instances),
				zap.Int("chunks", st.Chunks),
				zap.Duration("took", st.Elapsed))
		}
		if err := g.scene.SyncGrass(g.world.System); err != nil {
			return fmt.Errorf("sync grass: %w", err)
		}

		// 3. Render and present
		g.scene.TerrainModel = g.world.Model()
		w, h := g.window.GetDrawableSize()
		g.scene.Resize(int32(w), int32(h))
		g.scene.Render(g.camera, g.world.System, float32(time.Since(g.start).Seconds()), int32(w), int32(h))
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			st := g.scene.Stats()
			g.window.SetTitle(fmt.Sprintf("%s - %d fps - %d blades in %d/%d chunks - density %d",
				title, frameCount, st.Instances, st.VisibleChunks, st.Chunks, g.world.Grass.Density()))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

func (g *Game) handleInput(dt float32) {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventKeyDown:
			g.handleKey(event.Key)
		case input.EventMouseWheel:
			g.camera.HandleZoom(event.Wheel)
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				g.focus(event.MouseX, event.MouseY)
			}
		}
	}

	if g.input.IsButtonHeld(sdl.BUTTON_LEFT) {
		dx, dy := g.input.Drag()
		g.camera.HandleDrag(float32(dx), float32(dy))
	}

	var forward, right, up float32
	if g.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		// HandleMovement steps are tuned for 60 frames per second.
		step := dt * 60
		g.camera.HandleMovement(forward*step, right*step, up*step)
	}
}

func (g *Game) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		g.running = false
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		g.log.Info("density", zap.Uint32("value", g.world.AdjustDensity(DensityStep)))
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		g.log.Info("density", zap.Uint32("value", g.world.AdjustDensity(-DensityStep)))
	case sdl.SCANCODE_RIGHTBRACKET:
		g.log.Info("chunk size", zap.Float32("value", g.world.ScaleChunkSize(2)))
	case sdl.SCANCODE_LEFTBRACKET:
		g.log.Info("chunk size", zap.Float32("value", g.world.ScaleChunkSize(0.5)))
	case sdl.SCANCODE_R:
		g.world.Grass.Regenerate()
	case sdl.SCANCODE_C:
		g.log.Info("color preset", zap.Int("index", g.world.NextColorPreset()))
	case sdl.SCANCODE_B:
		g.scene.ShowChunks = !g.scene.ShowChunks
	case sdl.SCANCODE_V:
		g.scene.DebugChunks = !g.scene.DebugChunks
	case sdl.SCANCODE_F:
		g.scene.SetCulling(!g.scene.Culling())
		g.log.Info("frustum culling", zap.Bool("enabled", g.scene.Culling()))
	case sdl.SCANCODE_P:
		path, err := g.shots.Capture(g.scene.CaptureImage())
		if err != nil {
			g.log.Error("screenshot failed", zap.Error(err))
			return
		}
		g.log.Info("screenshot saved", zap.String("path", path))
	}
}

// focus re-centres the camera on the terrain under the cursor and reports
// the chunk found there. Rays that miss the surface land on the terrain's
// base plane instead.
func (g *Game) focus(x, y int) {
	w, h := g.window.GetSize()
	ray := picking.ScreenToRay(g.camera, float32(x), float32(y), float32(w), float32(h))
	tf := g.world.Grass.Transform()
	p, ok := picking.PickTerrain(ray, g.world.Terrain, tf)
	if !ok {
		base := g.world.Bounds().Min.Y
		px, pz, hit := ray.IntersectPlaneY(base)
		if !hit {
			return
		}
		p = math.Vec3{X: px, Y: base, Z: pz}
	}
	g.camera.Center = p

	if m := g.world.Grass.Chunks(); m != nil {
		coord := grass.ChunkOf(tf.Unplace(p), m.ChunkSize())
		insts, _ := m.Get(coord)
		g.log.Info("chunk under cursor",
			zap.Int32("x", coord.X), zap.Int32("y", coord.Y), zap.Int32("z", coord.Z),
			zap.Int("blades", len(insts)))
	}
}

// Close releases the world, GPU resources and the window.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.world != nil {
		g.world.Close()
	}
	if g.scene != nil {
		g.scene.Destroy()
	}
	if g.window != nil {
		g.window.Close()
	}
}
