package effects

// FollowStrategy selects what the virtual camera tracks inside a zoom block.
type FollowStrategy string

const (
	FollowMouse          FollowStrategy = "mouse"
	FollowCaret          FollowStrategy = "caret"
	FollowAutoMouseFirst FollowStrategy = "auto_mouse_first"
)

// Fallbacks for malformed zoom payloads. A zoom block missing its scale
// still has to render something sane rather than fail the frame.
const (
	DefaultZoomScale   = 2.0
	DefaultIntroMs     = 400.0
	DefaultOutroMs     = 400.0
	DefaultSmoothing   = 0.3
	DefaultTrailLength = 3
)

// ZoomData configures a virtual-camera zoom block.
type ZoomData struct {
	Scale     float64        `json:"scale"`
	TargetX   float64        `json:"targetX"`
	TargetY   float64        `json:"targetY"`
	IntroMs   float64        `json:"introMs"`
	OutroMs   float64        `json:"outroMs"`
	Smoothing float64        `json:"smoothing"`
	Follow    FollowStrategy `json:"followStrategy"`
}

func (ZoomData) Kind() Kind { return Zoom }

// Normalized returns a copy with missing or out-of-range fields replaced by
// the documented fallbacks.
func (d ZoomData) Normalized() ZoomData {
	if d.Scale <= 1 {
		d.Scale = DefaultZoomScale
	}
	if d.IntroMs <= 0 {
		d.IntroMs = DefaultIntroMs
	}
	if d.OutroMs <= 0 {
		d.OutroMs = DefaultOutroMs
	}
	if d.Smoothing <= 0 || d.Smoothing > 1 {
		d.Smoothing = DefaultSmoothing
	}
	switch d.Follow {
	case FollowMouse, FollowCaret, FollowAutoMouseFirst:
	default:
		d.Follow = FollowMouse
	}
	return d
}

// BackgroundData styles the canvas behind the video layer.
type BackgroundData struct {
	Color         string  `json:"color,omitempty"`
	GradientFrom  string  `json:"gradientFrom,omitempty"`
	GradientTo    string  `json:"gradientTo,omitempty"`
	PaddingPx     float64 `json:"padding"`
	CornerRadius  float64 `json:"cornerRadius"`
	ShadowOpacity float64 `json:"shadowOpacity"`
}

func (BackgroundData) Kind() Kind { return Background }

// CursorData configures the rendered cursor overlay.
type CursorData struct {
	Size          float64 `json:"size"`
	IdleHide      bool    `json:"idleHide"`
	IdleTimeoutMs float64 `json:"idleTimeoutMs"`
	MotionBlur    bool    `json:"motionBlur"`
	Trail         bool    `json:"trail"`
	TrailLength   int     `json:"trailLength"`
}

func (CursorData) Kind() Kind { return Cursor }

// Normalized fills unset cursor fields with usable defaults.
func (d CursorData) Normalized() CursorData {
	if d.Size <= 0 {
		d.Size = 1
	}
	if d.IdleTimeoutMs <= 0 {
		d.IdleTimeoutMs = 2000
	}
	if d.TrailLength <= 0 || d.TrailLength > 5 {
		d.TrailLength = DefaultTrailLength
	}
	return d
}

// KeystrokeData configures the keystroke overlay.
type KeystrokeData struct {
	DisplayMs float64 `json:"displayMs"`
	MaxKeys   int     `json:"maxKeys"`
}

func (KeystrokeData) Kind() Kind { return Keystroke }

// Normalized fills unset keystroke fields with usable defaults.
func (d KeystrokeData) Normalized() KeystrokeData {
	if d.DisplayMs <= 0 {
		d.DisplayMs = 1500
	}
	if d.MaxKeys <= 0 {
		d.MaxKeys = 6
	}
	return d
}

// ScreenData applies a 3D presentation tilt to the video layer. Preset names
// map to tilt/perspective defaults; explicit values override the preset.
type ScreenData struct {
	Preset      string  `json:"preset"`
	TiltX       float64 `json:"tiltX,omitempty"`
	TiltY       float64 `json:"tiltY,omitempty"`
	Perspective float64 `json:"perspective,omitempty"`
}

func (ScreenData) Kind() Kind { return Screen }

// AnnotationData is a positioned text callout.
type AnnotationData struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (AnnotationData) Kind() Kind { return Annotation }
