package video

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/reelcut/reelcut/internal/compose"
	"github.com/reelcut/reelcut/internal/config"
	"github.com/reelcut/reelcut/internal/cursor"
)

// Renderer rasterizes composed frames onto an RGBA canvas. One renderer
// drives one composition session; it is not safe for concurrent use.
type Renderer struct {
	config  *config.Config
	log     *zap.Logger
	session *compose.Session

	assetDir   string
	spriteOnce sync.Once
	sprites    map[cursor.Type]image.Image

	tiltWarned bool
}

// NewRenderer builds a renderer over a session. assetDir holds the cursor
// sprite PNGs; an empty or missing directory falls back to procedural
// cursor shapes.
func NewRenderer(cfg *config.Config, log *zap.Logger, session *compose.Session, assetDir string) *Renderer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		config:  cfg,
		log:     log,
		session: session,
		assetDir: assetDir,
	}
}

// loadSprites decodes every known cursor sprite once, before the first
// frame, so sprite IO never lands mid-render.
func (r *Renderer) loadSprites() {
	r.spriteOnce.Do(func() {
		r.sprites = make(map[cursor.Type]image.Image)
		if r.assetDir == "" {
			return
		}
		for _, t := range cursor.AllTypes() {
			sp := cursor.SpriteFor(t)
			f, err := os.Open(filepath.Join(r.assetDir, sp.Asset))
			if err != nil {
				continue
			}
			img, err := png.Decode(f)
			f.Close()
			if err != nil {
				r.log.Warn("bad cursor sprite", zap.String("asset", sp.Asset), zap.Error(err))
				continue
			}
			r.sprites[t] = img
		}
		r.log.Debug("cursor sprites loaded", zap.Int("count", len(r.sprites)))
	})
}

// RenderFrame composes the frame at nowMs onto dst, drawing src as the
// video layer. dst must match the configured canvas size.
func (r *Renderer) RenderFrame(dst *image.RGBA, src image.Image, nowMs float64) compose.Frame {
	r.loadSprites()

	f := r.session.Frame(nowMs)

	r.drawBackground(dst, f.Background)
	r.drawVideo(dst, src, f.Video)
	if f.Annotation != nil {
		r.drawAnnotation(dst, f.Annotation)
	}
	if f.Keystrokes != nil {
		r.drawKeystrokes(dst, f.Keystrokes)
	}
	if f.Cursor != nil {
		r.drawCursor(dst, f.Cursor)
	}
	return f
}

func (r *Renderer) drawBackground(dst *image.RGBA, bg *compose.BackgroundLayer) {
	bounds := dst.Bounds()
	if bg == nil {
		fillRect(dst, bounds, color.RGBA{A: 255})
		return
	}
	if bg.GradientFrom != "" && bg.GradientTo != "" {
		from := parseHexColor(bg.GradientFrom, color.RGBA{A: 255})
		to := parseHexColor(bg.GradientTo, color.RGBA{A: 255})
		fillVerticalGradient(dst, bounds, from, to)
		return
	}
	fillRect(dst, bounds, parseHexColor(bg.Color, color.RGBA{A: 255}))
}

func (r *Renderer) drawVideo(dst *image.RGBA, src image.Image, v compose.VideoLayer) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	if sw <= 0 || sh <= 0 || v.Offset.Width <= 0 || v.Offset.Height <= 0 {
		return
	}

	aff, exact := v.Matrix.Affine()
	if !exact && !r.tiltWarned {
		r.tiltWarned = true
		r.log.Warn("perspective tilt flattened to its affine part for raster output")
	}

	// Source pixel -> element-local -> video matrix -> canvas.
	sx, sy := v.Offset.Width/sw, v.Offset.Height/sh
	m := f64.Aff3{
		aff[0] * sx, aff[1] * sy, aff[2] + v.Offset.X,
		aff[3] * sx, aff[4] * sy, aff[5] + v.Offset.Y,
	}
	xdraw.ApproxBiLinear.Transform(dst, m, src, sb, xdraw.Over, nil)
}

func (r *Renderer) drawAnnotation(dst *image.RGBA, layer *compose.AnnotationLayer) {
	bounds := dst.Bounds()
	face := basicfont.Face7x13
	pad := 6

	w := font.MeasureString(face, layer.Text).Ceil() + 2*pad
	h := face.Height + 2*pad
	x := bounds.Min.X + int(layer.X*float64(bounds.Dx())) - w/2
	y := bounds.Min.Y + int(layer.Y*float64(bounds.Dy())) - h/2

	blendRect(dst, image.Rect(x, y, x+w, y+h), color.RGBA{R: 20, G: 20, B: 24, A: 255}, 0.8)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 250, G: 250, B: 200, A: 255}),
		Face: face,
		Dot:  fixed.P(x+pad, y+pad+face.Ascent),
	}
	d.DrawString(layer.Text)
}

func (r *Renderer) drawKeystrokes(dst *image.RGBA, layer *compose.KeystrokeLayer) {
	bounds := dst.Bounds()
	face := basicfont.Face7x13
	pad := 8
	gap := 6
	boxH := face.Height + 2*pad

	// Measure total width so the strip is centered near the bottom edge.
	total := 0
	for i, k := range layer.Keys {
		if i > 0 {
			total += gap
		}
		total += font.MeasureString(face, k.Key).Ceil() + 2*pad
	}

	x := bounds.Min.X + (bounds.Dx()-total)/2
	y := bounds.Max.Y - boxH - 32

	for _, k := range layer.Keys {
		alpha := 1 - k.Age
		if alpha < 0 {
			alpha = 0
		}
		w := font.MeasureString(face, k.Key).Ceil() + 2*pad
		box := image.Rect(x, y, x+w, y+boxH)
		blendRect(dst, box, color.RGBA{R: 20, G: 20, B: 24, A: 255}, 0.75*alpha)

		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(color.RGBA{R: 240, G: 240, B: 245, A: uint8(255 * alpha)}),
			Face: face,
			Dot:  fixed.P(x+pad, y+pad+face.Ascent),
		}
		d.DrawString(k.Key)
		x += w + gap
	}
}

func (r *Renderer) drawCursor(dst *image.RGBA, layer *compose.CursorLayer) {
	// Trail copies go under the live sprite, oldest first.
	for i := len(layer.Trail) - 1; i >= 0; i-- {
		tr := layer.Trail[i]
		r.drawCursorSprite(dst, layer, layer.X+tr.OffsetX, layer.Y+tr.OffsetY, tr.Opacity*layer.Opacity)
	}

	for _, cp := range layer.Clicks {
		radius := 14 + 30*cp.Progress
		drawRing(dst, layer.X, layer.Y, radius, color.RGBA{R: 255, G: 255, B: 255, A: 255}, (1-cp.Progress)*0.6)
	}

	r.drawCursorSprite(dst, layer, layer.X, layer.Y, layer.Opacity)
}

func (r *Renderer) drawCursorSprite(dst *image.RGBA, layer *compose.CursorLayer, x, y, opacity float64) {
	if opacity <= 0 {
		return
	}
	img, ok := r.sprites[layer.Type]
	if !ok {
		drawDot(dst, x, y, 6*layer.Scale, color.RGBA{R: 250, G: 250, B: 250, A: 255}, opacity)
		return
	}

	sp := cursor.SpriteFor(layer.Type)
	w := float64(sp.Width) * layer.Scale
	h := float64(sp.Height) * layer.Scale
	sb := img.Bounds()
	m := f64.Aff3{
		w / float64(sb.Dx()), 0, x - sp.HotspotX*layer.Scale,
		0, h / float64(sb.Dy()), y - sp.HotspotY*layer.Scale,
	}
	// Full-opacity sprites go straight through; faded copies blend via a
	// uniform alpha mask.
	if opacity >= 1 {
		xdraw.ApproxBiLinear.Transform(dst, m, img, sb, xdraw.Over, nil)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(255 * opacity)})
	xdraw.ApproxBiLinear.Transform(dst, m, img, sb, xdraw.Over, &xdraw.Options{
		SrcMask: mask,
	})
}

// fillRect overwrites the rectangle with a solid color.
func fillRect(dst *image.RGBA, rect image.Rectangle, c color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
}

// blendRect alpha-blends a solid color over the rectangle.
func blendRect(dst *image.RGBA, rect image.Rectangle, c color.RGBA, alpha float64) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.SetRGBA(x, y, blend(dst.RGBAAt(x, y), c, alpha))
		}
	}
}

func fillVerticalGradient(dst *image.RGBA, rect image.Rectangle, from, to color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	h := rect.Dy()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y-rect.Min.Y) / float64(h-1)
		}
		c := color.RGBA{
			R: lerpByte(from.R, to.R, t),
			G: lerpByte(from.G, to.G, t),
			B: lerpByte(from.B, to.B, t),
			A: 255,
		}
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
}

func drawDot(dst *image.RGBA, cx, cy, radius float64, c color.RGBA, opacity float64) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	minX, maxX := int(cx-radius)-1, int(cx+radius)+1
	minY, maxY := int(cy-radius)-1, int(cy+radius)+1
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !image.Pt(x, y).In(dst.Bounds()) {
				continue
			}
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r2 {
				dst.SetRGBA(x, y, blend(dst.RGBAAt(x, y), c, opacity))
			}
		}
	}
}

func drawRing(dst *image.RGBA, cx, cy, radius float64, c color.RGBA, opacity float64) {
	if radius <= 0 || opacity <= 0 {
		return
	}
	thickness := 2.5
	outer2 := (radius + thickness/2) * (radius + thickness/2)
	inner2 := (radius - thickness/2) * (radius - thickness/2)
	lim := radius + thickness
	minX, maxX := int(cx-lim)-1, int(cx+lim)+1
	minY, maxY := int(cy-lim)-1, int(cy+lim)+1
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !image.Pt(x, y).In(dst.Bounds()) {
				continue
			}
			dx, dy := float64(x)-cx, float64(y)-cy
			d2 := dx*dx + dy*dy
			if d2 >= inner2 && d2 <= outer2 {
				dst.SetRGBA(x, y, blend(dst.RGBAAt(x, y), c, opacity))
			}
		}
	}
}

func blend(under, over color.RGBA, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(under.R)*(1-a) + float64(over.R)*a),
		G: uint8(float64(under.G)*(1-a) + float64(over.G)*a),
		B: uint8(float64(under.B)*(1-a) + float64(over.B)*a),
		A: 255,
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// parseHexColor parses #rgb and #rrggbb. Anything else yields the fallback.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}
	hex := s[1:]
	digit := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	pair := func(hi, lo byte) (uint8, bool) {
		h, ok1 := digit(hi)
		l, ok2 := digit(lo)
		return h<<4 | l, ok1 && ok2
	}
	switch len(hex) {
	case 3:
		r, ok1 := pair(hex[0], hex[0])
		g, ok2 := pair(hex[1], hex[1])
		b, ok3 := pair(hex[2], hex[2])
		if ok1 && ok2 && ok3 {
			return color.RGBA{R: r, G: g, B: b, A: 255}
		}
	case 6:
		r, ok1 := pair(hex[0], hex[1])
		g, ok2 := pair(hex[2], hex[3])
		b, ok3 := pair(hex[4], hex[5])
		if ok1 && ok2 && ok3 {
			return color.RGBA{R: r, G: g, B: b, A: 255}
		}
	}
	return fallback
}
