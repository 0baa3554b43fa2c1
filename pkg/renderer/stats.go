package renderer

import (
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples traced
	SamplesPerPixel int           // Samples taken for every pixel
	Units           int           // Number of scanline units dispatched
	Elapsed         time.Duration // Wall-clock time from dispatch to join
}

// unitStats is what a single scanline unit reports back after the join
type unitStats struct {
	pixels  int
	samples int
}

// mergeUnitStats sums per-unit counters into a RenderStats
func mergeUnitStats(units []unitStats, samplesPerPixel int, elapsed time.Duration) RenderStats {
	stats := RenderStats{
		SamplesPerPixel: samplesPerPixel,
		Units:           len(units),
		Elapsed:         elapsed,
	}
	for _, u := range units {
		stats.TotalPixels += u.pixels
		stats.TotalSamples += u.samples
	}
	return stats
}

// SamplesPerSecond returns traced samples per wall-clock second
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// CalculateAverageLuminance returns the mean luminance of an image in [0, 1]
func CalculateAverageLuminance(pb *PixelBuffer) float64 {
	img := pb.Image()
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
