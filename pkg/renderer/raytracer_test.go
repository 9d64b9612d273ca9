package renderer

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/oneweekend/pathtracer/pkg/geometry"
)

func newTestRaytracer(t *testing.T, world geometry.Shape, config RenderConfig) *Raytracer {
	t.Helper()
	rt, err := NewRaytracer(world, createTestCamera(t), config, NopLogger{})
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}
	return rt
}

func TestSamplingConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  SamplingConfig
		wantErr bool
	}{
		{"default", DefaultSamplingConfig(), false},
		{"single pixel", SamplingConfig{Width: 1, Height: 1, SamplesPerPixel: 1, MaxDepth: 1}, false},
		{"zero width", SamplingConfig{Width: 0, Height: 10, SamplesPerPixel: 1, MaxDepth: 1}, true},
		{"negative height", SamplingConfig{Width: 10, Height: -1, SamplesPerPixel: 1, MaxDepth: 1}, true},
		{"zero samples", SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 0, MaxDepth: 1}, true},
		{"zero depth", SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 1, MaxDepth: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestMergeSamplingConfig(t *testing.T) {
	merged := MergeSamplingConfig(DefaultSamplingConfig(), SamplingConfig{Width: 64, SamplesPerPixel: 3})
	expected := SamplingConfig{Width: 64, Height: 225, SamplesPerPixel: 3, MaxDepth: 50}
	if merged != expected {
		t.Errorf("Expected %+v, got %+v", expected, merged)
	}
}

func TestNewRaytracer_RejectsInvalidInput(t *testing.T) {
	camera := createTestCamera(t)
	world := geometry.NewHittableList()
	config := DefaultRenderConfig()

	bad := config
	bad.Sampling.SamplesPerPixel = 0
	if _, err := NewRaytracer(world, camera, bad, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for zero samples, got %v", err)
	}
	if _, err := NewRaytracer(nil, camera, config, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil world, got %v", err)
	}
	if _, err := NewRaytracer(world, nil, config, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil camera, got %v", err)
	}

	// Non-positive workers and tile size fall back to defaults
	config.Workers = 0
	config.TileSize = -3
	rt, err := NewRaytracer(world, camera, config, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rt.Config().Workers != 1 || rt.Config().TileSize != DefaultTileSize {
		t.Errorf("Expected default workers and tile size, got %+v", rt.Config())
	}
}

func TestRenderEmptySceneIsSky(t *testing.T) {
	config := RenderConfig{
		Sampling: SamplingConfig{Width: 2, Height: 2, SamplesPerPixel: 1, MaxDepth: 5},
		Seed:     42,
		Workers:  1,
		TileSize: 1,
	}
	rt := newTestRaytracer(t, geometry.NewHittableList(), config)

	img, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Expected 2x2 image, got %v", img.Bounds())
	}
	if stats.Tiles != 4 || stats.TotalPixels != 4 || stats.TotalSamples != 4 || stats.Escaped != 4 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c := img.RGBAAt(x, y)
			if c.B != 255 || c.A != 255 {
				t.Errorf("Pixel (%d,%d) should be sky, got %v", x, y, c)
			}
		}
	}
}

func TestRenderDeterministicAcrossWorkerCounts(t *testing.T) {
	world := createSphereWorld(t)
	base := RenderConfig{
		Sampling: SamplingConfig{Width: 24, Height: 16, SamplesPerPixel: 4, MaxDepth: 8},
		Seed:     7,
		Workers:  1,
		TileSize: 8,
	}

	reference, refStats, err := newTestRaytracer(t, world, base).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, workers := range []int{2, 4, 9} {
		config := base
		config.Workers = workers
		img, stats, err := newTestRaytracer(t, world, config).Render(context.Background())
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		if string(img.Pix) != string(reference.Pix) {
			t.Errorf("Render with %d workers differs from single-worker render", workers)
		}
		if stats.TotalBounces != refStats.TotalBounces || stats.Absorbed != refStats.Absorbed {
			t.Errorf("Stats with %d workers differ: %+v vs %+v", workers, stats, refStats)
		}
		if stats.Workers != workers {
			t.Errorf("Expected %d workers in stats, got %d", workers, stats.Workers)
		}
	}

	// A different seed changes the noise
	other := base
	other.Seed = 8
	img, _, err := newTestRaytracer(t, world, other).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if string(img.Pix) == string(reference.Pix) {
		t.Error("Expected a different seed to produce a different image")
	}
}

func TestRenderHitsSphereInCenter(t *testing.T) {
	config := RenderConfig{
		Sampling: SamplingConfig{Width: 21, Height: 21, SamplesPerPixel: 2, MaxDepth: 10},
		Seed:     42,
		Workers:  2,
		TileSize: 5,
	}
	img, stats, err := newTestRaytracer(t, createSphereWorld(t), config).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Sphere of radius 0.5 at distance 1 covers the middle of a 90 degree view
	center := img.RGBAAt(10, 10)
	if center.B == 255 {
		t.Errorf("Center pixel should be shaded by the sphere, got %v", center)
	}
	corner := img.RGBAAt(0, 0)
	if corner.B != 255 {
		t.Errorf("Corner pixel should be sky, got %v", corner)
	}
	if stats.TotalBounces == 0 {
		t.Error("Expected at least one bounce off the sphere")
	}
	if lum := CalculateAverageLuminance(img); lum <= 0 || lum >= 1 {
		t.Errorf("Expected average luminance in (0, 1), got %f", lum)
	}
}

func TestRenderCancelled(t *testing.T) {
	config := DefaultRenderConfig()
	config.Sampling = SamplingConfig{Width: 8, Height: 8, SamplesPerPixel: 1, MaxDepth: 2}
	config.TileSize = 4
	rt := newTestRaytracer(t, geometry.NewHittableList(), config)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, stats, err := rt.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if stats.Tiles != 0 {
		t.Errorf("Expected no tiles to render after cancellation, got %d", stats.Tiles)
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestRenderLogsProgress(t *testing.T) {
	logger := &recordingLogger{}
	config := DefaultRenderConfig()
	config.Sampling = SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 1, MaxDepth: 2}
	config.TileSize = 2

	rt, err := NewRaytracer(geometry.NewHittableList(), createTestCamera(t), config, logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := rt.Render(context.Background()); err != nil {
		t.Fatal(err)
	}

	// One progress line per tile plus the summary
	if len(logger.lines) != 5 {
		t.Errorf("Expected 5 log lines, got %d", len(logger.lines))
	}
}

func TestRenderSinglePixel(t *testing.T) {
	config := DefaultRenderConfig()
	config.Sampling = SamplingConfig{Width: 1, Height: 1, SamplesPerPixel: 3, MaxDepth: 3}
	img, _, err := newTestRaytracer(t, geometry.NewHittableList(), config).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c := img.RGBAAt(0, 0); c.B != 255 {
		t.Errorf("Expected sky for a single-pixel render, got %v", c)
	}
}
