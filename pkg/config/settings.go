package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// ErrInvalidSettings is wrapped by every error Validate returns
var ErrInvalidSettings = errors.New("invalid settings")

// DefaultPath is where the CLI looks for settings when none are given
const DefaultPath = "settings.json"

// Settings controls a single render
type Settings struct {
	FolderPath      string  `json:"folderPath"`      // Output directory
	FileName        string  `json:"fileName"`        // Output file; extension selects the format
	NumTasks        int     `json:"numTasks"`        // Scanline bands (0 = CPU count)
	SamplesPerPixel int     `json:"samplesPerPixel"` // Rays per pixel
	MaxDepth        int     `json:"maxDepth"`        // Maximum ray bounce depth
	Gamma           float64 `json:"gamma"`           // Display gamma
	Epsilon         float64 `json:"epsilon"`         // Minimum hit distance for scattered rays
	Seed            int64   `json:"seed"`            // Base seed; unit i uses Seed+i
	Parallelism     int     `json:"parallelism"`     // Units running at once (0 = GOMAXPROCS)
	Scene           string  `json:"scene"`           // Built-in scene name
	Width           int     `json:"width"`           // Image width (0 = scene default)
	TexturePath     string  `json:"texturePath"`     // Equirectangular map for the earth scene
}

// DefaultSettings returns the settings used for fields a file leaves out
func DefaultSettings() Settings {
	return Settings{
		FolderPath:      "output",
		FileName:        "render.png",
		NumTasks:        runtime.NumCPU(),
		SamplesPerPixel: 50,
		MaxDepth:        20,
		Gamma:           1.2,
		Epsilon:         0.001,
		Seed:            42,
		Scene:           "checker",
	}
}

// Load reads settings from a JSON file on top of DefaultSettings. A missing
// file yields an error wrapping os.ErrNotExist.
func Load(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("reading settings %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if settings.NumTasks == 0 {
		settings.NumTasks = runtime.NumCPU()
	}

	core.Log().Debug("settings loaded", "path", path,
		"scene", settings.Scene, "spp", settings.SamplesPerPixel, "maxDepth", settings.MaxDepth,
		"numTasks", settings.NumTasks, "gamma", settings.Gamma)
	return settings, nil
}

// LoadOrDefault is Load, except that a missing file yields DefaultSettings
func LoadOrDefault(path string) (Settings, error) {
	settings, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		core.Log().Warn("settings file not found, using defaults", "path", path)
		return DefaultSettings(), nil
	}
	return settings, err
}

// Validate reports the first unusable value
func (s Settings) Validate() error {
	switch {
	case s.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samplesPerPixel must be positive, got %d", ErrInvalidSettings, s.SamplesPerPixel)
	case s.MaxDepth < 0:
		return fmt.Errorf("%w: maxDepth must not be negative, got %d", ErrInvalidSettings, s.MaxDepth)
	case s.NumTasks <= 0:
		return fmt.Errorf("%w: numTasks must be positive, got %d", ErrInvalidSettings, s.NumTasks)
	case s.Parallelism < 0:
		return fmt.Errorf("%w: parallelism must not be negative, got %d", ErrInvalidSettings, s.Parallelism)
	case s.Gamma <= 0:
		return fmt.Errorf("%w: gamma must be positive, got %g", ErrInvalidSettings, s.Gamma)
	case s.Epsilon < 0:
		return fmt.Errorf("%w: epsilon must not be negative, got %g", ErrInvalidSettings, s.Epsilon)
	case s.Width < 0:
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalidSettings, s.Width)
	case s.FileName == "":
		return fmt.Errorf("%w: fileName is required", ErrInvalidSettings)
	}

	if _, err := renderer.FormatFromPath(s.FileName); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// OutputPath joins the output folder and file name
func (s Settings) OutputPath() string {
	return filepath.Join(s.FolderPath, s.FileName)
}

// SamplingConfig converts the settings into the renderer's per-pixel config
func (s Settings) SamplingConfig() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		SamplesPerPixel: s.SamplesPerPixel,
		MaxDepth:        s.MaxDepth,
		Gamma:           s.Gamma,
	}
}

// SchedulerConfig converts the settings into the renderer's scheduling config
func (s Settings) SchedulerConfig() renderer.SchedulerConfig {
	return renderer.SchedulerConfig{
		NumTasks:    s.NumTasks,
		Parallelism: s.Parallelism,
		Seed:        s.Seed,
	}
}
