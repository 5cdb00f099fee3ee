// Package project loads and saves the recording project file: source video
// metadata, recorded telemetry streams, and the effect timeline. The engine
// itself never touches disk; this is the boundary to the editor.
package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/reelcut/reelcut/internal/compose"
	"github.com/reelcut/reelcut/internal/effects"
	"github.com/reelcut/reelcut/internal/events"
)

// VideoMeta describes the captured source video.
type VideoMeta struct {
	Path       string  `json:"path"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	FPS        float64 `json:"fps"`
	DurationMs float64 `json:"durationMs"`
}

// Recording is the telemetry captured alongside the video.
type Recording struct {
	Mouse   []events.MouseMoveEvent `json:"mouse,omitempty"`
	Clicks  []events.ClickEvent     `json:"clicks,omitempty"`
	Carets  []events.CaretEvent     `json:"carets,omitempty"`
	Keys    []events.KeyEvent       `json:"keys,omitempty"`
	Scrolls []events.ScrollEvent    `json:"scrolls,omitempty"`
}

// Project is the persisted project document.
type Project struct {
	Name      string           `json:"name"`
	Video     VideoMeta        `json:"video"`
	Recording Recording        `json:"recording"`
	Effects   []effects.Effect `json:"effects,omitempty"`
}

// Load reads a project file.
func Load(path string) (*Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	return &p, nil
}

// Save writes the project file.
func (p *Project) Save(path string) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

// Input converts the project into a composition input.
func (p *Project) Input() compose.Input {
	return compose.Input{
		Timeline:     effects.Timeline{Effects: p.Effects},
		Mouse:        p.Recording.Mouse,
		Clicks:       p.Recording.Clicks,
		Carets:       p.Recording.Carets,
		Keys:         p.Recording.Keys,
		SourceWidth:  p.Video.Width,
		SourceHeight: p.Video.Height,
	}
}
