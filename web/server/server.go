package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
	"github.com/gravlens/go-blackhole-raytracer/pkg/renderer"
	"github.com/gravlens/go-blackhole-raytracer/pkg/scene"
)

// Server handles web requests for the black-hole renderer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client. Physical and
// visual parameters default to the selected scene preset's values.
type RenderRequest struct {
	Scene          string  `json:"scene"`          // Scene preset name
	Width          int     `json:"width"`          // Image width
	Height         int     `json:"height"`         // Image height
	Frames         int     `json:"frames"`         // Animation frames to stream
	TimeStep       float64 `json:"timeStep"`       // Scene-time increment per frame
	SamplesPerAxis int     `json:"samplesPerAxis"` // Supersampling grid per axis

	Params core.ParameterSet `json:"params"`
}

// FrameUpdate represents a single frame sent via SSE
type FrameUpdate struct {
	FrameNumber int    `json:"frameNumber"`
	TotalFrames int    `json:"totalFrames"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats represents render statistics for one frame
type Stats struct {
	TotalPixels   int     `json:"totalPixels"`
	TotalRays     int     `json:"totalRays"`
	AbsorbedRays  int     `json:"absorbedRays"`
	EscapedRays   int     `json:"escapedRays"`
	ExhaustedRays int     `json:"exhaustedRays"`
	DiskRays      int     `json:"diskRays"`
	AverageSteps  float64 `json:"averageSteps"`
}

// Start starts the web server
func (s *Server) Start() error {
	// Serve static files
	http.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	http.HandleFunc("/api/render", s.handleRender)
	http.HandleFunc("/api/health", s.handleHealth)
	http.HandleFunc("/api/params", s.handleParams)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, nil)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRender handles streaming render requests with SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Apply the (possibly overridden) parameter set; validation warnings go
	// to the SSE console so the control surface can show them
	validated, warnings := req.Params.Validate()
	sceneObj.Params = validated

	consoleChan := make(chan ConsoleMessage, 32)
	logger := NewWebLogger("render", consoleChan)
	for _, warning := range warnings {
		logger.Printf("parameter warning: %s\n", warning)
	}

	config := sceneObj.Frame
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerAxis = req.SamplesPerAxis

	rend := renderer.NewRenderer(sceneObj, config, logger)

	// Use request context to detect client disconnection
	ctx := r.Context()
	startTime := time.Now()

	frameChan, errChan := rend.RenderAnimation(ctx, renderer.AnimationConfig{
		Frames:   req.Frames,
		TimeStep: req.TimeStep,
	})

	for {
		select {
		case msg, ok := <-consoleChan:
			if ok {
				s.sendSSEConsole(w, msg)
			}
		case result, ok := <-frameChan:
			if !ok {
				if err := <-errChan; err != nil {
					s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
					return
				}
				s.sendSSEEvent(w, "complete", "Rendering completed")
				return
			}
			imageData, err := s.imageToBase64PNG(result.Image)
			if err != nil {
				s.sendSSEError(w, fmt.Sprintf("Failed to encode frame: %v", err))
				return
			}
			update := FrameUpdate{
				FrameNumber: result.FrameNumber,
				TotalFrames: req.Frames,
				ImageData:   imageData,
				Stats: Stats{
					TotalPixels:   result.Stats.TotalPixels,
					TotalRays:     result.Stats.TotalRays,
					AbsorbedRays:  result.Stats.AbsorbedRays,
					EscapedRays:   result.Stats.EscapedRays,
					ExhaustedRays: result.Stats.ExhaustedRays,
					DiskRays:      result.Stats.DiskRays,
					AverageSteps:  result.Stats.AverageSteps(),
				},
				IsComplete: result.IsLast,
				ElapsedMs:  time.Since(startTime).Milliseconds(),
			}
			if err := s.sendSSEUpdate(w, update); err != nil {
				return
			}
		}
	}
}

// parseRenderRequest parses request parameters; physical parameters default
// to the preset's values so the client only sends what it changes
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()

	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}
	sceneObj, err := scene.NewScene(sceneName)
	if err != nil {
		return nil, nil, err
	}

	req := &RenderRequest{Scene: sceneName}

	if req.Width, err = parseIntParam(query, "width", 640, 64, 2000); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 360, 64, 2000); err != nil {
		return nil, nil, err
	}
	if req.Frames, err = parseIntParam(query, "frames", 1, 1, 600); err != nil {
		return nil, nil, err
	}
	if req.TimeStep, err = parseFloatParam(query, "timeStep", 0.25, 0.001, 10); err != nil {
		return nil, nil, err
	}
	if req.SamplesPerAxis, err = parseIntParam(query, "samples", 1, 1, 4); err != nil {
		return nil, nil, err
	}

	p := sceneObj.Params
	if p.Mass, err = parseFloatParam(query, "mass", p.Mass, core.MinMass, 100); err != nil {
		return nil, nil, err
	}
	if p.Spin, err = parseFloatParam(query, "spin", p.Spin, 0, core.MaxSpin); err != nil {
		return nil, nil, err
	}
	if p.DiskInnerRadius, err = parseFloatParam(query, "diskInner", p.DiskInnerRadius, 0.1, 50); err != nil {
		return nil, nil, err
	}
	if p.DiskOuterRadius, err = parseFloatParam(query, "diskOuter", p.DiskOuterRadius, 0.2, 90); err != nil {
		return nil, nil, err
	}
	if p.DiskThickness, err = parseFloatParam(query, "diskThickness", p.DiskThickness, 0.01, 10); err != nil {
		return nil, nil, err
	}
	if p.DiskRotationSpeed, err = parseFloatParam(query, "rotationSpeed", p.DiskRotationSpeed, 0, 10); err != nil {
		return nil, nil, err
	}
	if p.LensStrength, err = parseFloatParam(query, "lensStrength", p.LensStrength, 0, core.MaxLensStrength); err != nil {
		return nil, nil, err
	}
	if p.VignetteStrength, err = parseFloatParam(query, "vignette", p.VignetteStrength, 0, 1); err != nil {
		return nil, nil, err
	}
	if p.GlowIntensity, err = parseFloatParam(query, "glow", p.GlowIntensity, 0, 5); err != nil {
		return nil, nil, err
	}
	req.Params = p

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Frames > 30 {
		log.Printf("Render warning: large image with many frames may stream slowly")
	}

	return req, sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate sends a frame update via SSE
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update FrameUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "frame", string(data))
}

// sendSSEConsole forwards a console message via SSE
func (s *Server) sendSSEConsole(w http.ResponseWriter, msg ConsoleMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "console", string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}

// handleParams returns the parameter schema for a scene: preset defaults
// plus the validation limits the render endpoint enforces
func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.NewScene(sceneName)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	p := sceneObj.Params
	response := map[string]interface{}{
		"scene":  sceneName,
		"scenes": scene.SceneNames(),
		"defaults": map[string]interface{}{
			"mass":          p.Mass,
			"spin":          p.Spin,
			"diskInner":     p.DiskInnerRadius,
			"diskOuter":     p.DiskOuterRadius,
			"diskThickness": p.DiskThickness,
			"rotationSpeed": p.DiskRotationSpeed,
			"lensStrength":  p.LensStrength,
			"vignette":      p.VignetteStrength,
			"glow":          p.GlowIntensity,
			"horizonModel":  p.Horizon.String(),
		},
		"limits": map[string]interface{}{
			"width":        map[string]int{"min": 64, "max": 2000},
			"height":       map[string]int{"min": 64, "max": 2000},
			"frames":       map[string]int{"min": 1, "max": 600},
			"samples":      map[string]int{"min": 1, "max": 4},
			"mass":         map[string]float64{"min": core.MinMass, "max": 100},
			"spin":         map[string]float64{"min": 0, "max": core.MaxSpin},
			"lensStrength": map[string]float64{"min": 0, "max": core.MaxLensStrength},
			"vignette":     map[string]float64{"min": 0, "max": 1},
			"glow":         map[string]float64{"min": 0, "max": 5},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
