package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// NewMetalScene creates polished and brushed metal spheres, a glass sphere and
// a diffuse sphere that moves while the shutter is open, all on a checkered ground
func NewMetalScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(0, 1.2, 4.5),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          35.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate focus distance
		Time0:         0.0,
		Time1:         1.0,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene("metal", cameraConfig, renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        30, // Mirrors facing each other need extra bounces
		Gamma:           1.2,
	})

	ground := material.NewTexturedLambertian(material.NewChecker(
		core.NewVec3(0.2, 0.3, 0.1),
		core.NewVec3(0.9, 0.9, 0.9),
	))
	diffuseRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewSphere(core.NewVec3(-1.1, 0.5, 0), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1.1, 0.5, 0), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1.2), 0.5, glass),
		geometry.NewMovingSphere(
			core.NewVec3(0, 0.35, 0.6), core.NewVec3(0, 0.6, 0.6),
			cameraConfig.Time0, cameraConfig.Time1,
			0.35, diffuseRed,
		),
	)

	return s
}
