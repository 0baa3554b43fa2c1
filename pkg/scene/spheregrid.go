package scene

import (
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	lCube := l + 0.3963377774*a + 0.2158037573*b
	mCube := l - 0.1055613458*a - 0.0638541728*b
	sCube := l - 0.0894841775*a - 1.2914855480*b

	lCube = lCube * lCube * lCube
	mCube = mCube * mCube * mCube
	sCube = sCube * sCube * sCube

	// LMS to linear RGB
	return core.NewVec3(
		+4.0767416621*lCube-3.3077115913*mCube+0.2309699292*sCube,
		-1.2684380046*lCube+2.6097574011*mCube-0.3413193965*sCube,
		-0.0041960863*lCube-0.7034186147*mCube+1.7076147010*sCube,
	).Clamp(0, 1)
}

// NewSphereGridScene creates a square grid of metal spheres whose hue varies
// along X and saturation along Z, resting on a checkered ground sphere
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(4.5, 6, 18),
		LookAt:        core.NewVec3(4.5, 0.8, 4.5), // Center of grid, slightly lower
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.02, // Small depth of field for some focus variation
		FocusDistance: 0.0,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene("sphere-grid", cameraConfig, renderer.SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        40,
		Gamma:           1.2,
	})

	ground := material.NewTexturedLambertian(material.NewChecker(
		core.NewVec3(0.35, 0.35, 0.35),
		core.NewVec3(0.6, 0.6, 0.6),
	))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	gridSize := 10

	// Fit the grid into a 9x9 area around the look-at point
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			s.Add(geometry.NewSphere(position, sphereRadius, material.NewMetal(color, roughness)))
		}
	}

	return s
}
