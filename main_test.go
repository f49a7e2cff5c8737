package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gravlens/go-blackhole-raytracer/pkg/renderer"
)

func TestSavePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Pix[0] = 255 // one red pixel so the file isn't degenerate

	filename := filepath.Join(t.TempDir(), "frame_000.png")
	result := renderer.FrameResult{FrameNumber: 0, Image: img}

	if err := savePNG(filename, result); err != nil {
		t.Fatalf("savePNG failed: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Saved file missing: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Saved file is not a valid PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Bounds changed on round trip: %v vs %v", decoded.Bounds(), img.Bounds())
	}
}

func TestSavePNG_BadPath(t *testing.T) {
	result := renderer.FrameResult{Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}
	if err := savePNG(filepath.Join(t.TempDir(), "missing", "frame.png"), result); err == nil {
		t.Errorf("Expected error for missing directory")
	}
}
