package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-scanline-raytracer/pkg/config"
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
	"github.com/df07/go-scanline-raytracer/pkg/loaders"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

// cliOptions holds the flags that are not part of config.Settings
type cliOptions struct {
	settingsPath string
	thumbSize    int
	annotate     bool
	list         bool
	verbose      bool
	help         bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts cliOptions
	fs.StringVar(&opts.settingsPath, "settings", config.DefaultPath, "Path to a JSON settings file (missing file = defaults)")
	fs.IntVar(&opts.thumbSize, "thumb", 0, "Also write a PNG thumbnail whose longer side is this many pixels (0 = off)")
	fs.BoolVar(&opts.annotate, "annotate", false, "Stamp scene and render statistics onto the image")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log every finished scanline")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	sceneName := fs.String("scene", "", "Scene to render (see -list)")
	out := fs.String("out", "", "Output file; .png, .bmp or .tiff (overrides folderPath/fileName)")
	spp := fs.Int("spp", 0, "Samples per pixel")
	depth := fs.Int("depth", 0, "Maximum ray bounce depth")
	tasks := fs.Int("tasks", 0, "Number of scanline bands")
	parallelism := fs.Int("parallelism", 0, "Bands rendered at once (0 = GOMAXPROCS)")
	seed := fs.Int64("seed", 0, "Base random seed; negative picks one from the clock")
	width := fs.Int("width", 0, "Image width in pixels (0 = scene default)")
	texture := fs.String("texture", "", "Equirectangular image (.png, .jpg, .bmp, .tiff) for the earth scene")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.help {
		printHelp(stdout, fs)
		return 0
	}
	if opts.list {
		printScenes(stdout)
		return 0
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	settings, err := config.LoadOrDefault(opts.settingsPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading settings: %v\n", err)
		return 1
	}

	// Flags given on the command line override the settings file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			settings.Scene = *sceneName
		case "out":
			settings.FolderPath, settings.FileName = filepath.Split(*out)
		case "spp":
			settings.SamplesPerPixel = *spp
		case "depth":
			settings.MaxDepth = *depth
		case "tasks":
			settings.NumTasks = *tasks
		case "parallelism":
			settings.Parallelism = *parallelism
		case "seed":
			settings.Seed = *seed
		case "width":
			settings.Width = *width
		case "texture":
			settings.TexturePath = *texture
		}
	})
	if settings.Seed < 0 {
		settings.Seed = time.Now().UnixNano()
		core.Log().Info("using clock seed", "seed", settings.Seed)
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := render(ctx, settings, opts, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// createScene builds the named scene, applying a width override when non-zero.
// A texture path only applies to the earth scene.
func createScene(name string, width int, texturePath string) (*scene.Scene, error) {
	if name == "" {
		name = scene.DefaultSceneName
	}
	overrides := renderer.CameraConfig{Width: width}

	if texturePath != "" {
		if name != "earth" {
			core.Log().Warn("texture ignored, only the earth scene is textured", "scene", name, "texture", texturePath)
			return scene.ByName(name, overrides)
		}
		texture, err := loaders.LoadImageTexture(texturePath)
		if err != nil {
			return nil, fmt.Errorf("loading texture: %w", err)
		}
		return scene.NewEarthScene(texture, overrides), nil
	}

	return scene.ByName(name, overrides)
}

func render(ctx context.Context, settings config.Settings, opts cliOptions, stdout io.Writer) error {
	selectedScene, err := createScene(settings.Scene, settings.Width, settings.TexturePath)
	if err != nil {
		return err
	}
	camera := selectedScene.Camera()
	pathTracer := integrator.NewPathTracingIntegrator(selectedScene.Background, settings.Epsilon)

	schedulerConfig := settings.SchedulerConfig()
	step := max(1, camera.Height()/10)
	schedulerConfig.Progress = func(remaining int) {
		if remaining%step == 0 {
			core.Log().Info("scanlines remaining", "remaining", remaining)
		}
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "Rendering %s scene at %dx%d with %d samples per pixel...\n",
		selectedScene.Name, camera.Width(), camera.Height(), settings.SamplesPerPixel)

	scheduler := renderer.NewScheduler(camera, selectedScene.World(), pathTracer, settings.SamplingConfig(), schedulerConfig)
	buffer, stats, err := scheduler.Render(ctx)
	if err != nil {
		return err
	}

	if opts.annotate {
		caption := p.Sprintf("%s  %d spp  %d bounces  %v  %.0f samples/s",
			selectedScene.Name, stats.SamplesPerPixel, settings.MaxDepth,
			stats.Elapsed.Round(time.Millisecond), stats.SamplesPerSecond())
		if err := renderer.Annotate(buffer.Image(), caption); err != nil {
			return err
		}
	}

	outputPath := settings.OutputPath()
	if err := buffer.WriteToFile(outputPath); err != nil {
		return fmt.Errorf("saving render: %w", err)
	}

	p.Fprintf(stdout, "Render completed in %v: %d pixels, %d samples (%.0f samples/s) over %d units\n",
		stats.Elapsed.Round(time.Millisecond), stats.TotalPixels, stats.TotalSamples, stats.SamplesPerSecond(), stats.Units)
	p.Fprintf(stdout, "Average luminance: %.3f\n", renderer.CalculateAverageLuminance(buffer))
	fmt.Fprintf(stdout, "Render saved as %s\n", outputPath)

	if opts.thumbSize > 0 {
		thumbPath := thumbnailPath(outputPath)
		if err := writeThumbnail(buffer, opts.thumbSize, thumbPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Thumbnail saved as %s\n", thumbPath)
	}

	return nil
}

// thumbnailPath derives "<name>_thumb.png" next to the output file
func thumbnailPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_thumb.png"
}

func writeThumbnail(buffer *renderer.PixelBuffer, size int, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating thumbnail: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing thumbnail: %w", cerr)
		}
	}()

	if err := png.Encode(file, buffer.Thumbnail(size)); err != nil {
		return fmt.Errorf("encoding thumbnail: %w", err)
	}
	return nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Scanline Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	printScenes(w)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Settings are read from %s when present; flags override them.\n", config.DefaultPath)
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-12s - %s\n", info.ID, info.Description)
	}
}
