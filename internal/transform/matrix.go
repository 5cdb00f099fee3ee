// Package transform composes the zoom/pan camera state and optional 3D tilt
// into a single 4x4 matrix shared by the video layer and the cursor overlay.
// Both layers mapping through the identical matrix is what keeps the cursor
// pinned to the pixel it was recorded over, at any zoom or tilt.
package transform

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a 4x4 homogeneous transform. Row-vector-free convention: points
// are column vectors, transforms compose left to right via Mul.
type Matrix struct {
	d *mat.Dense
}

// Identity returns the identity transform.
func Identity() *Matrix {
	return &Matrix{d: identityDense()}
}

func identityDense() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float64) *Matrix {
	return &Matrix{d: mat.NewDense(4, 4, []float64{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	})}
}

// Scale returns a uniform XY scale about the origin.
func Scale(s float64) *Matrix {
	return &Matrix{d: mat.NewDense(4, 4, []float64{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})}
}

// RotateX returns a rotation about the X axis by deg degrees.
func RotateX(deg float64) *Matrix {
	r := deg * math.Pi / 180
	c, s := math.Cos(r), math.Sin(r)
	return &Matrix{d: mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})}
}

// RotateY returns a rotation about the Y axis by deg degrees.
func RotateY(deg float64) *Matrix {
	r := deg * math.Pi / 180
	c, s := math.Cos(r), math.Sin(r)
	return &Matrix{d: mat.NewDense(4, 4, []float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})}
}

// Perspective returns a CSS-style perspective transform with the given
// distance in pixels. Non-positive distances yield the identity.
func Perspective(d float64) *Matrix {
	m := Identity()
	if d > 0 {
		m.d.Set(3, 2, -1/d)
	}
	return m
}

// Mul returns m · o, applying o first.
func (m *Matrix) Mul(o *Matrix) *Matrix {
	out := mat.NewDense(4, 4, nil)
	out.Mul(m.d, o.d)
	return &Matrix{d: out}
}

// Inverse returns the inverse transform. Singular matrices (degenerate
// perspective setups) return the identity so a bad frame renders untransformed
// rather than failing the render loop.
func (m *Matrix) Inverse() *Matrix {
	var inv mat.Dense
	if err := inv.Inverse(m.d); err != nil {
		return Identity()
	}
	return &Matrix{d: &inv}
}

// homography extracts the projective map the matrix induces on the z=0
// plane: the x, y and translation columns acting on (x, y, 1).
func (m *Matrix) homography() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m.d.At(0, 0), m.d.At(0, 1), m.d.At(0, 3),
		m.d.At(1, 0), m.d.At(1, 1), m.d.At(1, 3),
		m.d.At(3, 0), m.d.At(3, 1), m.d.At(3, 3),
	})
}

// Unapply maps a post-transform screen point back to the pre-transform
// plane, the exact inverse of Apply even under perspective. Degenerate
// matrices return the input unchanged.
func (m *Matrix) Unapply(x, y float64) (float64, float64) {
	var inv mat.Dense
	if err := inv.Inverse(m.homography()); err != nil {
		return x, y
	}
	out := mat.NewVecDense(3, nil)
	out.MulVec(&inv, mat.NewVecDense(3, []float64{x, y, 1}))
	w := out.AtVec(2)
	if w == 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return x, y
	}
	return out.AtVec(0) / w, out.AtVec(1) / w
}

// Affine returns the plane map as the six affine coefficients
// (a, b, c, d, e, f) of
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// The second return is false when the matrix carries perspective terms the
// affine form cannot represent; rasterizers using it then get a flattened
// approximation of the tilt.
func (m *Matrix) Affine() ([6]float64, bool) {
	h := m.homography()
	w := h.At(2, 2)
	if w == 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return [6]float64{1, 0, 0, 0, 1, 0}, false
	}
	aff := [6]float64{
		h.At(0, 0) / w, h.At(0, 1) / w, h.At(0, 2) / w,
		h.At(1, 0) / w, h.At(1, 1) / w, h.At(1, 2) / w,
	}
	exact := math.Abs(h.At(2, 0)/w) < 1e-9 && math.Abs(h.At(2, 1)/w) < 1e-9
	return aff, exact
}

// Apply maps a point through the matrix with perspective divide.
func (m *Matrix) Apply(x, y float64) (float64, float64) {
	v := mat.NewVecDense(4, []float64{x, y, 0, 1})
	out := mat.NewVecDense(4, nil)
	out.MulVec(m.d, v)
	w := out.AtVec(3)
	if w == 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return x, y
	}
	return out.AtVec(0) / w, out.AtVec(1) / w
}

// AboutOrigin re-bases the transform on the given origin point, matching a
// CSS transform-origin: translate to the origin, apply, translate back.
func (m *Matrix) AboutOrigin(ox, oy float64) *Matrix {
	return Translate(ox, oy, 0).Mul(m).Mul(Translate(-ox, -oy, 0))
}

// CSS renders the matrix as a matrix3d() value, column-major per the CSS
// transform spec.
func (m *Matrix) CSS() string {
	var sb strings.Builder
	sb.WriteString("matrix3d(")
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			if col != 0 || row != 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatCSSNumber(m.d.At(row, col)))
		}
	}
	sb.WriteString(")")
	return sb.String()
}

func formatCSSNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}
