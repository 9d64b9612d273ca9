package renderer

import (
	"image"
	"time"

	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Samples taken for every pixel
	Tiles           int           // Number of tiles rendered
	Workers         int           // Number of workers used
	Escaped         int           // Paths that reached the sky
	Absorbed        int           // Paths absorbed by a material
	DepthExhausted  int           // Paths cut off by the bounce limit
	TotalBounces    int           // Scatter events across all paths
	Duration        time.Duration // Wall time of the render
}

// AddPath records the outcome of a single camera ray
func (rs *RenderStats) AddPath(result integrator.PathResult) {
	rs.TotalSamples++
	rs.TotalBounces += result.Bounces
	switch result.Termination {
	case integrator.Escaped:
		rs.Escaped++
	case integrator.Absorbed:
		rs.Absorbed++
	case integrator.DepthExhausted:
		rs.DepthExhausted++
	}
}

// Merge folds the counters of other into rs
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.Tiles += other.Tiles
	rs.Escaped += other.Escaped
	rs.Absorbed += other.Absorbed
	rs.DepthExhausted += other.DepthExhausted
	rs.TotalBounces += other.TotalBounces
}

// AverageBounces returns the mean number of scatter events per camera ray
func (rs RenderStats) AverageBounces() float64 {
	if rs.TotalSamples == 0 {
		return 0
	}
	return float64(rs.TotalBounces) / float64(rs.TotalSamples)
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixelCount := bounds.Dx() * bounds.Dy()
	if pixelCount == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			total += 0.2126*float64(r)/65535.0 + 0.7152*float64(g)/65535.0 + 0.0722*float64(b)/65535.0
		}
	}

	return total / float64(pixelCount)
}
