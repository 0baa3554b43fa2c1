package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// NewCheckerScene creates two large spheres, one above the other, that share
// a single checkered diffuse material
func NewCheckerScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        20.0,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene("checker", cameraConfig, renderer.DefaultSamplingConfig())

	checker := material.NewChecker(
		core.NewVec3(0.9, 0.9, 0.9), // odd
		core.NewVec3(0.2, 0.3, 0.1), // even
	)
	sphereMat := material.NewTexturedLambertian(checker)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, sphereMat),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, sphereMat),
	)

	return s
}
