package material

import (
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials.
// Implementations must be safe for concurrent use.
type ColorSource interface {
	// Evaluate returns the color at a world-space point
	Evaluate(point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker is a 3D checkerboard: space is divided into cells by the sign of
// sin(k·x)·sin(k·y)·sin(k·z), alternating between Odd and Even.
type Checker struct {
	Odd, Even ColorSource
	Frequency float64 // k; cells are π/k wide
}

// DefaultCheckerFrequency gives cells roughly 0.31 units wide
const DefaultCheckerFrequency = 10.0

// NewChecker creates a checker texture from two solid colors
func NewChecker(odd, even core.Vec3) *Checker {
	return &Checker{
		Odd:       NewSolidColor(odd),
		Even:      NewSolidColor(even),
		Frequency: DefaultCheckerFrequency,
	}
}

// Evaluate returns Odd where the sine product is negative, Even otherwise
func (c *Checker) Evaluate(point core.Vec3) core.Vec3 {
	k := c.Frequency
	sines := math.Sin(k*point.X) * math.Sin(k*point.Y) * math.Sin(k*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(point)
	}
	return c.Even.Evaluate(point)
}
