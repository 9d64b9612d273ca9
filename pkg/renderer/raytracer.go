package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/geometry"
	"github.com/oneweekend/pathtracer/pkg/integrator"
)

// ErrInvalidConfig is returned when a render configuration cannot produce an image
var ErrInvalidConfig = errors.New("invalid render config")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// MergeSamplingConfig returns base with every positive field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// Validate reports whether the configuration describes a renderable frame
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d must be positive", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d must be positive", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// RenderConfig contains everything needed to drive one frame
type RenderConfig struct {
	Sampling SamplingConfig
	Seed     int64 // Base seed; tile i uses Seed+i
	Workers  int   // Parallel tile workers, 1 renders sequentially
	TileSize int   // Tile edge length in pixels
}

// DefaultRenderConfig returns a single-worker configuration
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Sampling: DefaultSamplingConfig(),
		Seed:     42,
		Workers:  1,
		TileSize: DefaultTileSize,
	}
}

// Raytracer handles the rendering process
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer for the given world and camera
func NewRaytracer(world geometry.Shape, camera *Camera, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Sampling.Validate(); err != nil {
		return nil, err
	}
	if world == nil {
		return nil, fmt.Errorf("%w: world is nil", ErrInvalidConfig)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: camera is nil", ErrInvalidConfig)
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.Sampling.MaxDepth),
		config:     config,
		logger:     logger,
	}, nil
}

// Config returns the effective render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Render traces the full frame. It returns ctx.Err() if ctx is done before every
// tile has been rendered.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	sampling := rt.config.Sampling
	img := image.NewRGBA(image.Rect(0, 0, sampling.Width, sampling.Height))

	tiles := NewTileGrid(sampling.Width, sampling.Height, rt.config.TileSize, rt.config.Seed)
	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.integrator, sampling)

	pool := NewWorkerPool(tileRenderer, rt.config.Workers, len(tiles))
	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Image: img})
	}

	stats := RenderStats{
		SamplesPerPixel: sampling.SamplesPerPixel,
		Workers:         pool.GetNumWorkers(),
	}
	var renderErr error
	remaining := len(tiles)
	for remaining > 0 {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		remaining--
		if result.Error != nil {
			renderErr = result.Error
			continue
		}
		stats.Merge(result.Stats)
		rt.logger.Printf("\rTiles remaining: %d ", remaining)
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if renderErr != nil {
		rt.logger.Printf("\nRender interrupted after %d of %d tiles\n", stats.Tiles, len(tiles))
		return img, stats, renderErr
	}

	rt.logger.Printf("\nDone. %dx%d, %d samples in %v (%.2f bounces/path, %d escaped, %d absorbed, %d depth-limited)\n",
		sampling.Width, sampling.Height, stats.TotalSamples, stats.Duration,
		stats.AverageBounces(), stats.Escaped, stats.Absorbed, stats.DepthExhausted)
	return img, stats, nil
}
