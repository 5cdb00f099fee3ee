// Package cursor computes the per-frame cursor overlay: sprite selection,
// interpolated position, click pulses, idle fade and motion trails. Every
// state is a pure function of source time and the recorded streams, cached
// by source time so chunked, out-of-order export renders identical frames.
package cursor

// Type is the rendered cursor sprite kind.
type Type int

const (
	Arrow Type = iota
	Text
	Pointer
	Crosshair
	Grab
	Grabbing
	ResizeEW
	ResizeNS
)

func (t Type) String() string {
	switch t {
	case Arrow:
		return "arrow"
	case Text:
		return "text"
	case Pointer:
		return "pointer"
	case Crosshair:
		return "crosshair"
	case Grab:
		return "grab"
	case Grabbing:
		return "grabbing"
	case ResizeEW:
		return "resize-ew"
	case ResizeNS:
		return "resize-ns"
	default:
		return "arrow"
	}
}

// Sprite describes a cursor image asset and the hotspot: the offset within
// the image, in pixels, that sits over the true pointer tip.
type Sprite struct {
	Asset    string
	Width    int
	Height   int
	HotspotX float64
	HotspotY float64
}

var sprites = map[Type]Sprite{
	Arrow:     {Asset: "cursor-arrow.png", Width: 28, Height: 28, HotspotX: 4, HotspotY: 3},
	Text:      {Asset: "cursor-text.png", Width: 20, Height: 28, HotspotX: 10, HotspotY: 14},
	Pointer:   {Asset: "cursor-pointer.png", Width: 28, Height: 28, HotspotX: 9, HotspotY: 3},
	Crosshair: {Asset: "cursor-crosshair.png", Width: 26, Height: 26, HotspotX: 13, HotspotY: 13},
	Grab:      {Asset: "cursor-grab.png", Width: 28, Height: 28, HotspotX: 14, HotspotY: 10},
	Grabbing:  {Asset: "cursor-grabbing.png", Width: 28, Height: 28, HotspotX: 14, HotspotY: 10},
	ResizeEW:  {Asset: "cursor-resize-ew.png", Width: 28, Height: 14, HotspotX: 14, HotspotY: 7},
	ResizeNS:  {Asset: "cursor-resize-ns.png", Width: 14, Height: 28, HotspotX: 7, HotspotY: 14},
}

// AllTypes lists every cursor type with a sprite, in enum order.
func AllTypes() []Type {
	return []Type{Arrow, Text, Pointer, Crosshair, Grab, Grabbing, ResizeEW, ResizeNS}
}

// SpriteFor returns the sprite metadata for a cursor type.
func SpriteFor(t Type) Sprite {
	if s, ok := sprites[t]; ok {
		return s
	}
	return sprites[Arrow]
}

// rawKinds maps captured OS cursor identifiers (AppKit/Win32/X11 naming all
// funnel through the recorder) onto the sprite enum.
var rawKinds = map[string]Type{
	"arrow":           Arrow,
	"default":         Arrow,
	"ibeam":           Text,
	"text":            Text,
	"xterm":           Text,
	"pointinghand":    Pointer,
	"hand":            Pointer,
	"pointer":         Pointer,
	"crosshair":       Crosshair,
	"cross":           Crosshair,
	"openhand":        Grab,
	"grab":            Grab,
	"closedhand":      Grabbing,
	"grabbing":        Grabbing,
	"resizeleftright": ResizeEW,
	"ew-resize":       ResizeEW,
	"col-resize":      ResizeEW,
	"resizeupdown":    ResizeNS,
	"ns-resize":       ResizeNS,
	"row-resize":      ResizeNS,
}

// TypeFromRaw maps a raw OS cursor identifier to a sprite type, defaulting
// to the arrow for anything unrecognized.
func TypeFromRaw(raw string) Type {
	if t, ok := rawKinds[normalizeRaw(raw)]; ok {
		return t
	}
	return Arrow
}

func normalizeRaw(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
