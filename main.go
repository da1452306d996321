package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-phong-raytracer/pkg/canvas"
	"github.com/df07/go-phong-raytracer/pkg/preview"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// pollInterval is how often progressive renders collect finished pixels
const pollInterval = 100 * time.Millisecond

// options holds parsed command line flags
type options struct {
	scene      string
	width      int
	height     int
	mode       string
	chunkSize  int
	numWorkers int
	tui        bool
	output     string
	shadowMode string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, renders the selected scene and saves it as a PNG
func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	printer := message.NewPrinter(language.English)
	renderID := uuid.NewString()

	sc, err := createScene(opts)
	if err != nil {
		return err
	}
	printer.Fprintf(stdout, "Render %s: %s at %dx%d (%d pixels, shadows: %s, mode: %s)\n",
		renderID, sc.Name, sc.Camera.Width(), sc.Camera.Height(),
		sc.Camera.Width()*sc.Camera.Height(), sc.World.ShadowMode(), opts.mode)

	startTime := time.Now()
	var img *canvas.Canvas
	switch opts.mode {
	case "batch":
		img = sc.Camera.Render(sc.World)
		printer.Fprintf(stdout, "Render completed in %v\n", time.Since(startTime))
	case "progressive":
		if img, err = renderProgressive(sc, opts, stdout); err != nil {
			return err
		}
	}

	filename := opts.output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir(opts.scene), fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := img.SavePNG(filename); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}

	fmt.Fprintf(stdout, "Render saved as %s\n", filename)
	return nil
}

// parseFlags parses and validates command line flags
func parseFlags(args []string, stdout io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	fs.StringVar(&opts.scene, "scene", "default", "Scene: built-in name, file:<name> or path to a .json scene")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 = 400)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 = 225)")
	fs.StringVar(&opts.mode, "mode", "batch", "Render mode: 'batch' or 'progressive'")
	fs.IntVar(&opts.chunkSize, "chunk", renderer.DefaultProgressiveConfig().ChunkSize, "Pixels per chunk in progressive mode")
	fs.IntVar(&opts.numWorkers, "workers", 0, "Workers in progressive mode (0 = CPU count)")
	fs.BoolVar(&opts.tui, "tui", false, "Show a terminal preview in progressive mode")
	fs.StringVar(&opts.output, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&opts.shadowMode, "shadow", "", "Shadow mode override: 'all' or 'per-light'")
	help := fs.Bool("help", false, "Show help information")

	fs.Usage = func() {
		fmt.Fprintln(stdout, "Phong Raytracer")
		fmt.Fprintln(stdout, "Usage: raytracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Available scenes:")
		for _, info := range scene.ListBuiltinScenes() {
			fmt.Fprintf(stdout, "  %-10s %s\n", info.ID, info.Description)
		}
		if files, err := scene.ListFileScenes(""); err == nil {
			for _, info := range files {
				fmt.Fprintf(stdout, "  %-10s %s\n", info.ID, info.Description)
			}
		}
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if *help {
		fs.Usage()
		return opts, flag.ErrHelp
	}

	switch opts.mode {
	case "batch", "progressive":
	default:
		return opts, fmt.Errorf("unknown mode %q (want batch or progressive)", opts.mode)
	}
	if opts.tui && opts.mode != "progressive" {
		return opts, errors.New("-tui requires -mode progressive")
	}
	if opts.chunkSize <= 0 {
		return opts, fmt.Errorf("chunk size must be positive, got %d", opts.chunkSize)
	}
	if opts.numWorkers < 0 {
		return opts, fmt.Errorf("workers must not be negative, got %d", opts.numWorkers)
	}
	return opts, nil
}

// createScene builds the selected scene at the requested size
func createScene(opts options) (*scene.Scene, error) {
	sceneOpts := scene.DefaultOptions()
	if opts.width > 0 {
		sceneOpts.Width = opts.width
	}
	if opts.height > 0 {
		sceneOpts.Height = opts.height
	}
	sceneOpts.ShadowMode = opts.shadowMode
	return scene.Create(opts.scene, sceneOpts)
}

// renderProgressive renders in the background until done or interrupted
func renderProgressive(sc *scene.Scene, opts options, stdout io.Writer) (*canvas.Canvas, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config := renderer.DefaultProgressiveConfig()
	config.ChunkSize = opts.chunkSize
	config.NumWorkers = opts.numWorkers

	var logger = renderer.NewDefaultLogger()
	if opts.tui {
		// The preview owns the terminal
		logger = nopLogger{}
	}
	p := renderer.NewProgressive(ctx, sc.Camera, sc.World, config, logger)

	if !opts.tui {
		return p.Wait(pollInterval), nil
	}

	if _, err := tea.NewProgram(preview.New(sc.Name, p, pollInterval)).Run(); err != nil {
		p.Stop()
		return nil, fmt.Errorf("preview: %w", err)
	}
	img := p.Stop()

	stats := p.Stats()
	message.NewPrinter(language.English).Fprintf(stdout, "Rendered %d of %d pixels in %v\n",
		stats.CompletedPixels, stats.TotalPixels, stats.Elapsed.Round(time.Millisecond))
	return img, nil
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// outputDir returns the directory renders of a scene are saved to
func outputDir(sceneID string) string {
	name := strings.TrimPrefix(sceneID, "file:")
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "scene"
	}
	return filepath.Join("output", name)
}
