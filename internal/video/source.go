// Package video probes source recordings and renders composed frames to
// disk. Decoding and encoding go through ffmpeg via Vidio; compositing is
// pure raster work over RGBA buffers.
package video

import (
	"fmt"

	vidio "github.com/AlexEidt/Vidio"
)

// SourceInfo is the probed metadata of a recorded video file.
type SourceInfo struct {
	Path       string
	Width      int
	Height     int
	FPS        float64
	Frames     int
	DurationMs float64
}

// Probe opens the video just long enough to read its stream metadata.
func Probe(path string) (SourceInfo, error) {
	v, err := vidio.NewVideo(path)
	if err != nil {
		return SourceInfo{}, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	defer v.Close()

	return SourceInfo{
		Path:       path,
		Width:      v.Width(),
		Height:     v.Height(),
		FPS:        v.FPS(),
		Frames:     v.Frames(),
		DurationMs: v.Duration() * 1000,
	}, nil
}
