// grassgen generates grass for the configured terrain without opening a window.
package main

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-grass/internal/config"
	"github.com/Faultbox/midgard-grass/internal/game/world"
	"github.com/Faultbox/midgard-grass/internal/logger"
)

// heatmapMinSide is the smallest edge of a written heatmap in pixels.
const heatmapMinSide = 512

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := args[0]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage(os.Stdout)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case "stats":
		err = cmdStats(cfg, os.Stdout)
	case "chunks":
		err = cmdChunks(cfg, os.Stdout)
	case "heatmap":
		err = cmdHeatmap(cfg, args[1:])
	case "config":
		err = cmdConfig(cfg, args[1:], os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `grassgen - procedural grass generator

Usage:
  grassgen [flags] <command> [args]

Commands:
  stats               Generate once and print pass statistics
  chunks              Print blade counts per chunk
  heatmap <out.png>   Write a top-down chunk density heatmap
  config [out.yaml]   Print or save the effective configuration

Flags:
  -config <path>      Config file (default ./config.yaml or the user config dir)
  -density <n>        Blades per square unit
  -chunk-size <size>  Chunk edge length
  -workers <n>        Goroutines per generation pass
  -subdivisions <n>   Terrain quads per axis
  -debug              Debug logging

Examples:
  grassgen -density 40 stats
  grassgen -subdivisions 64 -chunk-size 2 heatmap field.png
  grassgen config > config.yaml`)
}

func initLogger(cfg *config.Config) error {
	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		fileCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
		fileCfg.MaxBackups = cfg.Logging.MaxBackups
		fileCfg.MaxAgeDays = cfg.Logging.MaxAgeDays
		fileCfg.JSON = cfg.Logging.JSON
	}
	return logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true)
}

// generate builds the world and runs one generation pass.
func generate(cfg *config.Config) *world.World {
	w := world.New(cfg, logger.Named("world"))
	w.Tick()
	return w
}

func cmdStats(cfg *config.Config, out io.Writer) error {
	w := generate(cfg)
	defer w.Close()

	st := w.Grass.LastStats()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Terrain:\t%d x %d quads, %.1f units\n",
		cfg.Terrain.Subdivisions, cfg.Terrain.Subdivisions, cfg.Terrain.Size)
	fmt.Fprintf(tw, "Density:\t%d\n", w.Grass.Density())
	fmt.Fprintf(tw, "Chunk size:\t%g\n", w.Grass.ChunkSize())
	fmt.Fprintf(tw, "Triangles:\t%d\n", st.Triangles)
	fmt.Fprintf(tw, "Skipped:\t%d\n", st.Skipped)
	fmt.Fprintf(tw, "Degenerate:\t%d\n", st.Degenerate)
	fmt.Fprintf(tw, "Dropped indices:\t%d\n", st.Dropped)
	fmt.Fprintf(tw, "Instances:\t%d\n", st.Instances)
	fmt.Fprintf(tw, "Chunks:\t%d\n", st.Chunks)
	fmt.Fprintf(tw, "Elapsed:\t%s\n", st.Elapsed)
	return tw.Flush()
}

func cmdChunks(cfg *config.Config, out io.Writer) error {
	w := generate(cfg)
	defer w.Close()

	m := w.Grass.Chunks()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "X\tY\tZ\tBlades\t")
	for _, c := range m.Coords() {
		insts, _ := m.Get(c)
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t\n", c.X, c.Y, c.Z, len(insts))
	}
	fmt.Fprintf(tw, "\t\tTotal\t%d\t\n", m.Total())
	return tw.Flush()
}

func cmdHeatmap(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: grassgen heatmap <out.png>")
	}
	w := generate(cfg)
	defer w.Close()

	img := Upscale(Heatmap(w.Grass.Chunks()), heatmapMinSide)

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("creating %s: %w", args[0], err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", args[0], err)
	}

	logger.Info("heatmap written",
		zap.String("path", args[0]),
		zap.Int("chunks", w.Grass.Chunks().Len()))
	return nil
}

func cmdConfig(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		logger.Info("config saved", zap.String("path", args[0]))
		return nil
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
