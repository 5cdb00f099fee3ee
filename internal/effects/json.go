package effects

import (
	"encoding/json"
	"fmt"
)

// wireEffect is the persisted shape produced by the editor.
type wireEffect struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	StartMs float64         `json:"startTime"`
	EndMs   float64         `json:"endTime"`
	Enabled bool            `json:"enabled"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// UnmarshalJSON decodes an effect, dispatching the payload on the type tag.
// Unknown types are rejected so a newer project file fails loudly at load
// time instead of silently dropping blocks mid-render.
func (e *Effect) UnmarshalJSON(b []byte) error {
	var w wireEffect
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	var payload Payload
	switch w.Type {
	case "background":
		var d BackgroundData
		if err := unmarshalPayload(w.Data, &d); err != nil {
			return err
		}
		payload = d
	case "cursor":
		var d CursorData
		if err := unmarshalPayload(w.Data, &d); err != nil {
			return err
		}
		payload = d
	case "zoom":
		var d ZoomData
		if err := unmarshalPayload(w.Data, &d); err != nil {
			return err
		}
		payload = d
	case "keystroke":
		var d KeystrokeData
		if err := unmarshalPayload(w.Data, &d); err != nil {
			return err
		}
		payload = d
	case "screen":
		var d ScreenData
		if err := unmarshalPayload(w.Data, &d); err != nil {
			return err
		}
		payload = d
	case "annotation":
		var d AnnotationData
		if err := unmarshalPayload(w.Data, &d); err != nil {
			return err
		}
		payload = d
	default:
		return fmt.Errorf("unknown effect type %q", w.Type)
	}

	e.ID = w.ID
	e.StartMs = w.StartMs
	e.EndMs = w.EndMs
	e.Enabled = w.Enabled
	e.Data = payload
	return nil
}

// MarshalJSON encodes an effect with its type tag.
func (e Effect) MarshalJSON() ([]byte, error) {
	if e.Data == nil {
		return nil, fmt.Errorf("effect %s has no payload", e.ID)
	}
	data, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireEffect{
		ID:      e.ID,
		Type:    e.Data.Kind().String(),
		StartMs: e.StartMs,
		EndMs:   e.EndMs,
		Enabled: e.Enabled,
		Data:    data,
	})
}

func unmarshalPayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		// Missing payloads fall back to zero values; Normalized() fills the
		// documented defaults downstream.
		return nil
	}
	return json.Unmarshal(raw, dst)
}
