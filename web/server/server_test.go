package server

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		key       string
		expected  int
		expectErr bool
	}{
		{"missing uses default", "", "width", 640, false},
		{"valid value", "width=800", "width", 800, false},
		{"at minimum", "width=64", "width", 64, false},
		{"below minimum", "width=10", "width", 0, true},
		{"above maximum", "width=5000", "width", 0, true},
		{"not a number", "width=abc", "width", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			got, err := parseIntParam(values, tt.key, 640, 64, 2000)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestParseFloatParam(t *testing.T) {
	values, _ := url.ParseQuery("spin=0.75")

	got, err := parseFloatParam(values, "spin", 0.6, 0, 0.999)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != 0.75 {
		t.Errorf("Expected 0.75, got %v", got)
	}

	// Missing key falls back to the default
	got, err = parseFloatParam(values, "mass", 1.0, 0.001, 100)
	if err != nil || got != 1.0 {
		t.Errorf("Expected default 1.0, got %v (err %v)", got, err)
	}

	// Out of range errors
	values, _ = url.ParseQuery("spin=1.5")
	if _, err := parseFloatParam(values, "spin", 0.6, 0, 0.999); err == nil {
		t.Errorf("Expected range error for spin=1.5")
	}
}

func TestParseRenderRequest_Defaults(t *testing.T) {
	s := NewServer(8080)
	r := httptest.NewRequest("GET", "/api/render", nil)

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if req.Scene != "default" {
		t.Errorf("Expected default scene, got %q", req.Scene)
	}
	if req.Width != 640 || req.Height != 360 {
		t.Errorf("Unexpected default size %dx%d", req.Width, req.Height)
	}
	if req.Frames != 1 {
		t.Errorf("Expected 1 frame by default, got %d", req.Frames)
	}
	// Physical parameters come from the preset
	if req.Params != sceneObj.Params {
		t.Errorf("Expected preset parameters, got %+v", req.Params)
	}
}

func TestParseRenderRequest_Overrides(t *testing.T) {
	s := NewServer(8080)
	r := httptest.NewRequest("GET", "/api/render?scene=schwarzschild&width=320&height=180&spin=0.3&lensStrength=1.2&diskOuter=12", nil)

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sceneObj.Name != "schwarzschild" {
		t.Errorf("Expected schwarzschild scene, got %q", sceneObj.Name)
	}
	if req.Width != 320 || req.Height != 180 {
		t.Errorf("Size overrides not applied: %dx%d", req.Width, req.Height)
	}
	if req.Params.Spin != 0.3 {
		t.Errorf("Spin override not applied: %v", req.Params.Spin)
	}
	if req.Params.LensStrength != 1.2 {
		t.Errorf("Lens strength override not applied: %v", req.Params.LensStrength)
	}
	if req.Params.DiskOuterRadius != 12 {
		t.Errorf("Disk outer override not applied: %v", req.Params.DiskOuterRadius)
	}
	// Untouched parameters keep the preset value
	if req.Params.Mass != sceneObj.Params.Mass {
		t.Errorf("Mass drifted from the preset: %v", req.Params.Mass)
	}
}

func TestParseRenderRequest_Invalid(t *testing.T) {
	s := NewServer(8080)

	for _, query := range []string{
		"?scene=nonexistent",
		"?width=banana",
		"?spin=2.0",
		"?frames=0",
	} {
		r := httptest.NewRequest("GET", "/api/render"+query, nil)
		if _, _, err := s.parseRenderRequest(r); err == nil {
			t.Errorf("Expected error for query %q", query)
		}
	}
}

func TestHandleParams(t *testing.T) {
	s := NewServer(8080)

	r := httptest.NewRequest("GET", "/api/params?scene=high-spin", nil)
	w := httptest.NewRecorder()
	s.handleParams(w, r)

	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if response["scene"] != "high-spin" {
		t.Errorf("Expected high-spin scene in response, got %v", response["scene"])
	}

	defaults, ok := response["defaults"].(map[string]interface{})
	if !ok {
		t.Fatalf("Missing defaults block")
	}
	if defaults["spin"] != 0.998 {
		t.Errorf("Expected preset spin 0.998, got %v", defaults["spin"])
	}

	if _, ok := response["limits"].(map[string]interface{}); !ok {
		t.Errorf("Missing limits block")
	}
}

func TestHandleParams_UnknownScene(t *testing.T) {
	s := NewServer(8080)

	r := httptest.NewRequest("GET", "/api/params?scene=nope", nil)
	w := httptest.NewRecorder()
	s.handleParams(w, r)

	if w.Code != 400 {
		t.Errorf("Expected 400 for unknown scene, got %d", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(8080)

	r := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, r)

	if w.Code != 200 {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("Expected ok status, got %q", response["status"])
	}
}

func TestWebLogger_NonBlocking(t *testing.T) {
	// An unbuffered full channel must not block the logger
	consoleChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test", consoleChan)

	logger.Printf("first %d\n", 1)
	logger.Printf("second %d\n", 2) // channel full, dropped

	msg := <-consoleChan
	if msg.Message != "first 1\n" {
		t.Errorf("Unexpected message %q", msg.Message)
	}
	select {
	case extra := <-consoleChan:
		t.Errorf("Expected second message dropped, got %q", extra.Message)
	default:
	}
}
