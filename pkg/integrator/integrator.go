package integrator

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray from world, following
	// at most depth bounces. Implementations must be safe for concurrent use
	// as long as each caller supplies its own sampler.
	RayColor(ray core.Ray, world core.Shape, sampler core.Sampler, depth int) core.Vec3
}

// Background is a vertical gradient seen by rays that escape the scene
type Background struct {
	Horizon core.Vec3 // Color looking straight down (t = 0)
	Zenith  core.Vec3 // Color looking straight up (t = 1)
}

// DefaultBackground is white at the horizon fading to light sky blue overhead
func DefaultBackground() Background {
	return Background{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(135.0/255.0, 206.0/255.0, 250.0/255.0),
	}
}

// Color returns the background color in the direction of ray
func (b Background) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return b.Horizon.Lerp(b.Zenith, t)
}
