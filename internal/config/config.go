// Package config handles grass generator and viewer configuration.
package config

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-grass/internal/grass"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// MaxSubdivisions bounds the demo terrain grid per axis.
const MaxSubdivisions = 2048

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Grass    GrassConfig    `yaml:"grass"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Color    grass.Color    `yaml:"color"`
	Blade    grass.Blade    `yaml:"blade"`
	Wind     grass.Wind     `yaml:"wind"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Culling    bool `yaml:"culling"` // skip chunks outside the view frustum
}

// GrassConfig holds generation settings.
type GrassConfig struct {
	Density   uint32  `yaml:"density"`    // blades per square world unit
	ChunkSize float32 `yaml:"chunk_size"` // world units
	Workers   int     `yaml:"workers"`    // goroutines per generation pass
	Seed      *uint64 `yaml:"seed"`       // nil for a different field every run
}

// TerrainConfig describes the demo ground plane.
type TerrainConfig struct {
	Subdivisions int     `yaml:"subdivisions"` // quads per axis
	Size         float32 `yaml:"size"`         // edge length in world units
	Amplitude    float32 `yaml:"amplitude"`    // hill height; 0 is flat
	Scale        float32 `yaml:"scale"`        // hill frequency in radians per unit

	// Placement of the terrain and its grass in the world.
	Offset [3]float32 `yaml:"offset"`
	Yaw    float32    `yaml:"yaw"` // degrees about +Y
}

// Transform returns the placement described by Offset and Yaw.
func (t TerrainConfig) Transform() grass.Transform {
	tf := grass.IdentityTransform()
	tf.Translation = math.Vec3FromArray(t.Offset)
	tf.Rotation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, t.Yaw*gomath.Pi/180)
	return tf
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	JSON       bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			Culling:    true,
		},
		Grass: GrassConfig{
			Density:   25,
			ChunkSize: grass.DefaultChunkSize,
			Workers:   1,
		},
		Terrain: TerrainConfig{
			Subdivisions: 1,
			Size:         10,
			Amplitude:    0,
			Scale:        0.3,
		},
		Color: grass.DefaultColor(),
		Blade: grass.DefaultBlade(),
		Wind:  grass.DefaultWind(),
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Grass.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("grass.chunk_size must be positive, got %v", c.Grass.ChunkSize))
	}
	if c.Grass.Workers < 0 {
		errs = append(errs, fmt.Errorf("grass.workers must not be negative, got %d", c.Grass.Workers))
	}
	if c.Terrain.Subdivisions < 1 || c.Terrain.Subdivisions > MaxSubdivisions {
		errs = append(errs, fmt.Errorf("terrain.subdivisions must be in [1, %d], got %d",
			MaxSubdivisions, c.Terrain.Subdivisions))
	}
	if c.Terrain.Size <= 0 {
		errs = append(errs, fmt.Errorf("terrain.size must be positive, got %v", c.Terrain.Size))
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics size must be positive, got %dx%d",
			c.Graphics.Width, c.Graphics.Height))
	}
	return errors.Join(errs...)
}

// Settings returns the grass entity settings described by the config.
// Rand and Logger are left for the caller.
func (c *Config) Settings() grass.Settings {
	return grass.Settings{
		Density:   c.Grass.Density,
		ChunkSize: c.Grass.ChunkSize,
		Color:     c.Color,
		Blade:     c.Blade,
		Wind:      c.Wind,
		Workers:   c.Grass.Workers,
	}
}
