package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagDensity      = flag.Int("density", -1, "Grass blades per square unit")
	flagChunkSize    = flag.Float64("chunk-size", 0, "Chunk edge length in world units")
	flagWorkers      = flag.Int("workers", -1, "Goroutines per generation pass")
	flagSubdivisions = flag.Int("subdivisions", 0, "Terrain quads per axis")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDensity >= 0 {
		cfg.Grass.Density = uint32(*flagDensity)
	}
	if *flagChunkSize > 0 {
		cfg.Grass.ChunkSize = float32(*flagChunkSize)
	}
	if *flagWorkers >= 0 {
		cfg.Grass.Workers = *flagWorkers
	}
	if *flagSubdivisions > 0 {
		cfg.Terrain.Subdivisions = *flagSubdivisions
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
