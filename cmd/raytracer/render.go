package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/output"
	"github.com/oneweekend/pathtracer/pkg/renderer"
	"github.com/oneweekend/pathtracer/pkg/scene"
	"github.com/oneweekend/pathtracer/pkg/watcher"
)

// renderOptions holds the render command flags
type renderOptions struct {
	sceneName string
	file      string
	width     int
	height    int
	samples   int
	depth     int
	seed      int64
	workers   int
	tileSize  int
	output    string
	watch     bool
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to an image file",
		Long: `Render a built-in scene or a YAML/TOML scene file. Flags override the scene's
image size, sample count and bounce depth. With --watch the scene file is
re-rendered every time it changes until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sceneName, "scene", "random", "Built-in scene name (see 'raytracer scenes')")
	flags.StringVarP(&opts.file, "file", "f", "", "Scene file (.yaml, .yml or .toml); overrides --scene")
	flags.IntVar(&opts.width, "width", 0, "Image width in pixels (0 keeps the scene's)")
	flags.IntVar(&opts.height, "height", 0, "Image height in pixels (0 keeps the scene's)")
	flags.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 keeps the scene's)")
	flags.IntVar(&opts.depth, "depth", 0, "Maximum bounces per path (0 keeps the scene's)")
	flags.Int64Var(&opts.seed, "seed", 42, "Random seed for scene generation and sampling")
	flags.IntVar(&opts.workers, "workers", 1, "Parallel tile workers")
	flags.IntVar(&opts.tileSize, "tile-size", renderer.DefaultTileSize, "Tile edge length in pixels")
	flags.StringVarP(&opts.output, "output", "o", "", fmt.Sprintf("Output path; the extension picks the format (%s) (default output/<scene>/render_<timestamp>.ppm)", strings.Join(output.Formats, ", ")))
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Re-render whenever --file changes")

	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	if opts.watch && opts.file == "" {
		return errors.New("--watch requires --file")
	}
	for name, v := range map[string]int{"width": opts.width, "height": opts.height, "samples": opts.samples, "depth": opts.depth} {
		if v < 0 {
			return fmt.Errorf("--%s must not be negative, got %d", name, v)
		}
	}
	if opts.output != "" {
		if _, err := output.FormatFromPath(opts.output); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := renderer.NewWriterLogger(cmd.OutOrStdout())

	if !opts.watch {
		_, err := renderOnce(ctx, opts, logger)
		return err
	}
	return watchAndRender(ctx, opts, logger)
}

// createScene builds the scene named by the flags. A scene name that looks like a
// scene file path is loaded as one.
func createScene(opts renderOptions) (*scene.Scene, error) {
	if opts.file != "" {
		return scene.LoadFile(opts.file)
	}
	if _, err := scene.FormatFromPath(opts.sceneName); err == nil {
		return scene.LoadFile(opts.sceneName)
	}
	if opts.sceneName == "" {
		return nil, fmt.Errorf("%w: empty scene name", scene.ErrUnknownScene)
	}
	return scene.DefaultRegistry().Lookup(opts.sceneName, opts.seed)
}

// renderOnce renders a single frame and returns the path it was saved to
func renderOnce(ctx context.Context, opts renderOptions, logger core.Logger) (string, error) {
	s, err := createScene(opts)
	if err != nil {
		return "", err
	}

	if err := s.ApplySamplingOverrides(renderer.SamplingConfig{
		Width:           opts.width,
		Height:          opts.height,
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
	}); err != nil {
		return "", err
	}

	config := renderer.RenderConfig{
		Sampling: s.SamplingConfig,
		Seed:     opts.seed,
		Workers:  opts.workers,
		TileSize: opts.tileSize,
	}
	rt, err := renderer.NewRaytracer(s.World, s.Camera, config, logger)
	if err != nil {
		return "", err
	}

	logger.Printf("Rendering %q: %dx%d, %d samples, depth %d, %d spheres, %d workers\n",
		s.Name, config.Sampling.Width, config.Sampling.Height, config.Sampling.SamplesPerPixel,
		config.Sampling.MaxDepth, s.GetPrimitiveCount(), rt.Config().Workers)

	img, _, err := rt.Render(ctx)
	if err != nil {
		return "", err
	}

	path := opts.output
	if path == "" {
		path = output.DefaultPath(sanitizeName(s.Name), output.FormatPPM, time.Now())
	}
	if err := output.SaveImage(path, img); err != nil {
		return "", err
	}

	logger.Printf("Render saved as %s (average luminance %.3f)\n", path, renderer.CalculateAverageLuminance(img))
	return path, nil
}

// watchAndRender renders once, then again on every change to the scene file until ctx is done
func watchAndRender(ctx context.Context, opts renderOptions, logger core.Logger) error {
	if _, err := renderOnce(ctx, opts, logger); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		logger.Printf("Render failed: %v\n", err)
	}

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	changes := make(chan string, 1)
	if err := fw.Watch([]string{opts.file}, func(path string) {
		select {
		case changes <- path:
		default:
			// A re-render is already queued
		}
	}); err != nil {
		return err
	}
	fw.Start()

	logger.Printf("Watching %s for changes (Ctrl+C to stop)\n", opts.file)
	for {
		select {
		case <-ctx.Done():
			logger.Printf("Stopped watching %s\n", opts.file)
			return nil
		case path := <-changes:
			logger.Printf("%s changed, re-rendering\n", path)
			if _, err := renderOnce(ctx, opts, logger); err != nil && ctx.Err() == nil {
				logger.Printf("Render failed: %v\n", err)
			}
		}
	}
}

// sanitizeName turns a scene name into a directory name
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "scene"
	}
	return strings.Map(func(r rune) rune {
		if r == filepath.Separator || r == '/' || r == ' ' {
			return '_'
		}
		return r
	}, name)
}
