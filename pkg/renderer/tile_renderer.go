package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/geometry"
	"github.com/oneweekend/pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
}

// NewTileRenderer creates a new tile renderer for a fixed image size and sample count
func NewTileRenderer(world geometry.Shape, camera *Camera, integratorInst integrator.Integrator, sampling SamplingConfig) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		width:      sampling.Width,
		height:     sampling.Height,
		samples:    sampling.SamplesPerPixel,
	}
}

// RenderTile renders every pixel of the tile into img. Tiles never overlap, so
// concurrent calls on distinct tiles may share img.
func (tr *TileRenderer) RenderTile(tile *Tile, img *image.RGBA) RenderStats {
	sampler := core.NewRandomSampler(tile.Random)
	stats := RenderStats{
		TotalPixels:     tile.Bounds.Dx() * tile.Bounds.Dy(),
		SamplesPerPixel: tr.samples,
		Tiles:           1,
	}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		// Image row 0 is the top of the frame
		j := tr.height - 1 - y
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			var ps PixelStats
			for s := 0; s < tr.samples; s++ {
				result := tr.samplePixel(i, j, sampler)
				ps.AddSample(result.Color)
				stats.AddPath(result)
			}
			img.SetRGBA(i, y, ToDisplayColor(ps.ColorAccum, ps.SampleCount))
		}
	}

	return stats
}

// samplePixel traces one jittered camera ray through pixel (i, j), where j counts up from the bottom row
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) integrator.PathResult {
	u := (float64(i) + sampler.Get1D()) / jitterDenominator(tr.width)
	v := (float64(j) + sampler.Get1D()) / jitterDenominator(tr.height)
	ray := tr.camera.GetRay(u, v, sampler)
	return tr.integrator.Trace(ray, tr.world, sampler)
}

// jitterDenominator maps pixel indices onto [0, 1]; a single-pixel dimension uses 1
func jitterDenominator(size int) float64 {
	return float64(max(size-1, 1))
}

// ToDisplayColor averages an accumulated linear color over samples, applies gamma 2
// and quantizes each channel to 8 bits
func ToDisplayColor(linear core.Vec3, samples int) color.RGBA {
	scale := 1.0
	if samples > 0 {
		scale = 1.0 / float64(samples)
	}
	c := linear.Multiply(scale).Sqrt()

	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(c float64) uint8 {
	if math.IsNaN(c) {
		c = 0
	}
	return uint8(256 * math.Max(0, math.Min(c, 0.999)))
}
