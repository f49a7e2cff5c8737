package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gravlens/go-blackhole-raytracer/pkg/background"
	"github.com/gravlens/go-blackhole-raytracer/pkg/renderer"
	"github.com/gravlens/go-blackhole-raytracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene preset: "+strings.Join(scene.SceneNames(), ", "))
	width := flag.Int("width", 640, "Image width in pixels")
	height := flag.Int("height", 360, "Image height in pixels")
	samples := flag.Int("samples", 1, "Supersamples per axis (1 = one ray per pixel)")
	frames := flag.Int("frames", 1, "Number of animation frames to render")
	timeStep := flag.Float64("timestep", 0.25, "Scene-time increment between frames")
	startTime := flag.Float64("time", 0, "Scene time of the first frame")
	bgImage := flag.String("background", "", "Optional equirectangular background image (PNG/JPEG)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Black Hole Raytracer")
		fmt.Println("Usage: blackhole [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, name := range scene.SceneNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
		fmt.Println("Output is saved to output/<scene>/frame_<n>_<timestamp>.png")
		return
	}

	selectedScene, err := scene.NewScene(*sceneType)
	if err != nil {
		fmt.Printf("%v. Using default scene.\n", err)
		selectedScene = scene.NewDefaultScene()
		*sceneType = "default"
	}

	if *bgImage != "" {
		tex, err := background.LoadTexture(*bgImage, 2048)
		if err != nil {
			fmt.Printf("Error loading background image: %v\n", err)
			return
		}
		selectedScene.SetBackgroundTexture(tex)
	}

	outputDir := filepath.Join("output", *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		return
	}

	config := selectedScene.Frame
	config.Width = *width
	config.Height = *height
	config.SamplesPerAxis = *samples

	r := renderer.NewRenderer(selectedScene, config, nil)

	fmt.Printf("Rendering scene %q at %dx%d (%d frame(s))...\n", *sceneType, *width, *height, *frames)

	anim := renderer.AnimationConfig{
		Frames:    *frames,
		StartTime: *startTime,
		TimeStep:  *timeStep,
	}

	startWall := time.Now()
	frameChan, errChan := r.RenderAnimation(context.Background(), anim)

	timestamp := time.Now().Format("20060102_150405")
	for result := range frameChan {
		filename := filepath.Join(outputDir, fmt.Sprintf("frame_%03d_%s.png", result.FrameNumber, timestamp))
		if err := savePNG(filename, result); err != nil {
			fmt.Printf("Error saving frame %d: %v\n", result.FrameNumber, err)
			return
		}
		fmt.Printf("Saved %s (absorbed %d, escaped %d, disk hits %d)\n",
			filename, result.Stats.AbsorbedRays, result.Stats.EscapedRays, result.Stats.DiskRays)
	}
	if err := <-errChan; err != nil {
		fmt.Printf("Render error: %v\n", err)
		return
	}

	fmt.Printf("Render completed in %v\n", time.Since(startWall))
}

func savePNG(filename string, result renderer.FrameResult) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, result.Image)
}
