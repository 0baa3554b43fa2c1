package scene

import (
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// EarthRadius is the globe radius in the earth scene
const EarthRadius = 2.0

// NewEarthScene creates a single globe wrapped in an equirectangular texture.
// A nil texture selects a generated stand-in map.
func NewEarthScene(texture *material.ImageTexture, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 12),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        20.0,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene("earth", cameraConfig, renderer.DefaultSamplingConfig())

	if texture == nil {
		texture = generatedEarthTexture(128, 64)
	}
	globeCenter := core.NewVec3(0, 0, 0)
	texture.Center = globeCenter

	s.Add(geometry.NewSphere(globeCenter, EarthRadius, material.NewTexturedLambertian(texture)))

	return s
}

// generatedEarthTexture paints ocean, smooth pseudo-continents and polar ice
// into an equirectangular map
func generatedEarthTexture(width, height int) *material.ImageTexture {
	ocean := core.NewVec3(0.1, 0.25, 0.6)
	land := core.NewVec3(0.2, 0.45, 0.15)
	ice := core.NewVec3(0.95, 0.95, 0.95)

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		// Latitude from +π/2 at the top row to -π/2 at the bottom
		lat := math.Pi/2 - (float64(y)+0.5)/float64(height)*math.Pi
		for x := 0; x < width; x++ {
			lon := (float64(x)+0.5)/float64(width)*2*math.Pi - math.Pi

			color := ocean
			switch {
			case math.Abs(lat) > 70*math.Pi/180:
				color = ice
			case math.Sin(3*lon)*math.Cos(2*lat)+0.5*math.Sin(7*lon+1)*math.Sin(5*lat) > 0.35:
				color = land
			}
			pixels[y*width+x] = color
		}
	}

	return material.NewImageTexture(width, height, pixels)
}
