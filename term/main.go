package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/gravlens/go-blackhole-raytracer/pkg/renderer"
	"github.com/gravlens/go-blackhole-raytracer/pkg/scene"
)

// silentLogger drops renderer log output; it would corrupt the tcell screen
type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

// Viewer renders the scene live into the terminal. Each character cell shows
// two image rows using the upper-half block: foreground paints the top row,
// background the bottom.
type Viewer struct {
	screen   tcell.Screen
	scene    *scene.Scene
	timeStep float64

	sceneTime float64
	paused    bool
	frames    int
}

// NewViewer initializes the terminal screen for a scene
func NewViewer(s *scene.Scene, timeStep float64) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &Viewer{screen: screen, scene: s, timeStep: timeStep}, nil
}

// renderFrame renders one frame sized to the current terminal
func (v *Viewer) renderFrame(ctx context.Context) (*image.RGBA, renderer.RenderStats, error) {
	cols, rows := v.screen.Size()
	if cols < 2 || rows < 2 {
		return nil, renderer.RenderStats{}, fmt.Errorf("terminal too small")
	}

	config := v.scene.Frame
	config.Width = cols
	config.Height = (rows - 1) * 2 // reserve the bottom row for status
	config.TileSize = 32
	config.SamplesPerAxis = 1

	rend := renderer.NewRenderer(v.scene, config, silentLogger{})
	return rend.RenderFrame(ctx, v.sceneTime)
}

// draw blits a frame onto the screen with half-block cells
func (v *Viewer) draw(img *image.RGBA, stats renderer.RenderStats) {
	bounds := img.Bounds()
	cols, rows := v.screen.Size()

	for cy := 0; cy < rows-1; cy++ {
		topY := cy * 2
		botY := topY + 1
		for cx := 0; cx < cols && cx < bounds.Dx(); cx++ {
			if topY >= bounds.Dy() {
				break
			}
			top := img.RGBAAt(cx, topY)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)))
			if botY < bounds.Dy() {
				bot := img.RGBAAt(cx, botY)
				style = style.Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			}
			v.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}

	status := fmt.Sprintf(" %s | t=%.2f | frame %d | absorbed %d escaped %d disk %d | space: pause, q: quit ",
		v.scene.Name, v.sceneTime, v.frames, stats.AbsorbedRays, stats.EscapedRays, stats.DiskRays)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue)
	for cx := 0; cx < cols; cx++ {
		ch := ' '
		if cx < len(status) {
			ch = rune(status[cx])
		}
		v.screen.SetContent(cx, rows-1, ch, nil, statusStyle)
	}

	v.screen.Show()
}

// handleInput returns false when the viewer should exit
func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				v.paused = !v.paused
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// run is the main loop: render a frame, drain input, advance scene time
func (v *Viewer) run(ctx context.Context) error {
	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	var lastImg *image.RGBA
	var lastStats renderer.RenderStats

	for {
		// Drain pending input before committing to the next frame
		for {
			select {
			case ev := <-eventChan:
				if !v.handleInput(ev) {
					return nil
				}
				continue
			default:
			}
			break
		}

		if v.paused {
			if lastImg != nil {
				v.draw(lastImg, lastStats)
			}
			// Block on input while paused instead of spinning
			select {
			case ev := <-eventChan:
				if !v.handleInput(ev) {
					return nil
				}
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		img, stats, err := v.renderFrame(ctx)
		if err != nil {
			return err
		}
		lastImg, lastStats = img, stats
		v.draw(img, stats)

		v.sceneTime += v.timeStep
		v.frames++
	}
}

func (v *Viewer) cleanup() {
	v.screen.Fini()
}

func main() {
	sceneType := flag.String("scene", "default", "Scene preset: "+strings.Join(scene.SceneNames(), ", "))
	timeStep := flag.Float64("timestep", 0.35, "Scene-time increment between frames")
	flag.Parse()

	selectedScene, err := scene.NewScene(*sceneType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	viewer, err := NewViewer(selectedScene, *timeStep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	err = viewer.run(context.Background())
	viewer.cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
		os.Exit(1)
	}
}
