package compose

import (
	"github.com/reelcut/reelcut/internal/effects"
	"github.com/reelcut/reelcut/internal/events"
)

// visibleKeys returns the keystrokes inside the display window before nowMs,
// newest last, capped at MaxKeys. Age runs 0 (fresh) to 1 (about to fade).
func visibleKeys(keys []events.KeyEvent, nowMs float64, data effects.KeystrokeData) []KeyLabel {
	if len(keys) == 0 || data.DisplayMs <= 0 {
		return nil
	}

	var out []KeyLabel
	for i := range keys {
		t := keys[i].ResolvedMs()
		if t > nowMs {
			break
		}
		age := (nowMs - t) / data.DisplayMs
		if age >= 1 {
			continue
		}
		out = append(out, KeyLabel{Key: keys[i].Key, Age: age})
	}
	if len(out) > data.MaxKeys {
		out = out[len(out)-data.MaxKeys:]
	}
	return out
}
