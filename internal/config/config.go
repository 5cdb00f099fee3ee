// Package config holds the engine tunables with sensible defaults.
package config

// CameraConfig tunes the virtual-camera focus machine.
type CameraConfig struct {
	IdlePx         float64
	IdleWindowMs   float64
	CaretWindowMs  float64
	CaretSmoothing float64
	MouseSmoothing float64
	ScaleSmoothing float64
	EvictAfterMs   float64
}

// CursorConfig tunes the cursor overlay defaults used when no cursor effect
// is active on the timeline.
type CursorConfig struct {
	Size          float64
	IdleHide      bool
	IdleTimeoutMs float64
	MotionBlur    bool
	Trail         bool
	TrailLength   int
}

// CanvasConfig describes the output canvas.
type CanvasConfig struct {
	Width   float64
	Height  float64
	Padding float64
}

// ExportConfig controls frame export.
type ExportConfig struct {
	FPS       int
	ChunkSize int
	OutputDir string
}

// RecordingConfig controls the telemetry recorder.
type RecordingConfig struct {
	SampleHz  int
	OutputDir string
}

// Config is the full engine configuration.
type Config struct {
	Camera    CameraConfig
	Cursor    CursorConfig
	Canvas    CanvasConfig
	Export    ExportConfig
	Recording RecordingConfig
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Camera: CameraConfig{
			IdlePx:         3,
			IdleWindowMs:   150,
			CaretWindowMs:  300,
			CaretSmoothing: 0.85,
			MouseSmoothing: 0.25,
			ScaleSmoothing: 0.3,
			EvictAfterMs:   5000,
		},
		Cursor: CursorConfig{
			Size:          1,
			IdleHide:      false,
			IdleTimeoutMs: 2000,
			MotionBlur:    false,
			Trail:         false,
			TrailLength:   3,
		},
		Canvas: CanvasConfig{
			Width:   1920,
			Height:  1080,
			Padding: 0,
		},
		Export: ExportConfig{
			FPS:       60,
			ChunkSize: 120,
			OutputDir: "output",
		},
		Recording: RecordingConfig{
			SampleHz:  60,
			OutputDir: "output",
		},
	}
}
