package transform

// Zoom builds the video-layer transform for a virtual-camera state: scale
// about the element center, then a translation chosen so the focus point
// stays visually fixed while everything expands around it.
//
// centerX/centerY are the normalized focus point, panX/panY an extra offset
// in element pixels. elemW/elemH are the on-canvas element dimensions.
func Zoom(scale, centerX, centerY, panX, panY, elemW, elemH float64) *Matrix {
	if scale <= 0 {
		scale = 1
	}
	if elemW <= 0 || elemH <= 0 {
		return Identity()
	}

	fx := centerX * elemW
	fy := centerY * elemH

	// compensation = -(focus - elementCenter) * (scale - 1)
	tx := -(fx - elemW/2)*(scale-1) + panX
	ty := -(fy - elemH/2)*(scale-1) + panY

	return Translate(tx, ty, 0).Mul(Scale(scale).AboutOrigin(elemW/2, elemH/2))
}

// VideoOffset is the on-canvas rectangle occupied by the (possibly padded,
// letterboxed) video content. Stable across frames until the container,
// source dimensions, or padding change.
type VideoOffset struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ComputeVideoOffset letterbox-fits a sourceW x sourceH video into the
// container, inset by padding on all sides.
func ComputeVideoOffset(containerW, containerH, sourceW, sourceH, padding float64) VideoOffset {
	if containerW <= 0 || containerH <= 0 || sourceW <= 0 || sourceH <= 0 {
		return VideoOffset{}
	}
	availW := containerW - 2*padding
	availH := containerH - 2*padding
	if availW <= 0 || availH <= 0 {
		return VideoOffset{X: containerW / 2, Y: containerH / 2}
	}

	fit := availW / sourceW
	if h := availH / sourceH; h < fit {
		fit = h
	}
	w := sourceW * fit
	h := sourceH * fit
	return VideoOffset{
		X:      (containerW - w) / 2,
		Y:      (containerH - h) / 2,
		Width:  w,
		Height: h,
	}
}

// ToCanvas maps a capture-space point into the offset rectangle.
func (o VideoOffset) ToCanvas(x, y, captureW, captureH float64) (float64, float64) {
	if captureW <= 0 || captureH <= 0 || o.Width <= 0 || o.Height <= 0 {
		return o.X, o.Y
	}
	return o.X + x/captureW*o.Width, o.Y + y/captureH*o.Height
}
