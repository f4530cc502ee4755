package transform

import (
	"fmt"
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
)

// minDeterminant is the smallest determinant magnitude Invert accepts.
const minDeterminant = 1e-12

// Affine describes one transform call.
type Affine struct {
	// Matrix maps source pixel coordinates to destination coordinates.
	Matrix matrix.Matrix
	// TargetSize limits the destination area written, anchored at the
	// origin. The zero value means the whole destination.
	TargetSize image.Point
	// SourceRect is the part of the source that may be sampled. The zero
	// value means the whole source.
	SourceRect image.Rectangle
}

// IsIdentity reports whether the transform is a plain copy. The zero
// matrix counts as identity so that a zero Affine is meaningful.
func (t Affine) IsIdentity() bool {
	return t.Matrix == matrix.Identity || t.Matrix == matrix.Zero
}

// Invert returns the inverse of m. Matrices with non-finite entries or a
// determinant below 1e-12 in magnitude yield ErrDegenerateMatrix.
func Invert(m matrix.Matrix) (matrix.Matrix, error) {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return matrix.Matrix{}, fmt.Errorf("%w: non-finite entry in %v", ErrDegenerateMatrix, m)
		}
	}
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < minDeterminant {
		return matrix.Matrix{}, fmt.Errorf("%w: determinant %g", ErrDegenerateMatrix, det)
	}
	return m.Inv(), nil
}

// Scale scales by sx and sy about the origin.
func Scale(sx, sy float64) matrix.Matrix {
	return matrix.Scale(sx, sy)
}

// Translate shifts by (dx, dy).
func Translate(dx, dy float64) matrix.Matrix {
	return matrix.Translate(dx, dy)
}

// Rotate turns by deg degrees about the centre of an image of the given
// size. In image coordinates, where y grows downwards, positive angles turn
// clockwise.
func Rotate(deg float64, size image.Point) matrix.Matrix {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	cx, cy := float64(size.X)/2, float64(size.Y)/2
	return Compose(
		matrix.Translate(-cx, -cy),
		matrix.Matrix{cos, sin, -sin, cos, 0, 0},
		matrix.Translate(cx, cy),
	)
}

// Compose returns the transform that applies ms in order, first to last.
func Compose(ms ...matrix.Matrix) matrix.Matrix {
	out := matrix.Identity
	for _, m := range ms {
		out = out.Mul(m)
	}
	return out
}

// Bounds returns the smallest integer rectangle containing r mapped
// through m.
func Bounds(m matrix.Matrix, r image.Rectangle) image.Rectangle {
	corners := [4][2]float64{
		{float64(r.Min.X), float64(r.Min.Y)},
		{float64(r.Max.X), float64(r.Min.Y)},
		{float64(r.Min.X), float64(r.Max.Y)},
		{float64(r.Max.X), float64(r.Max.Y)},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		x, y := m.Apply(p[0], p[1])
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	// Absorb rounding noise so exact integer edges stay put.
	const eps = 1e-9
	return image.Rect(
		int(math.Floor(minX+eps)), int(math.Floor(minY+eps)),
		int(math.Ceil(maxX-eps)), int(math.Ceil(maxY-eps)),
	)
}

// TargetSize returns the size of the bounding box of src mapped through m.
func TargetSize(m matrix.Matrix, src image.Rectangle) image.Point {
	return Bounds(m, src).Size()
}

// Fit returns an Affine that maps src through m and shifts the result so
// its bounding box starts at the origin, with TargetSize covering it.
func Fit(m matrix.Matrix, src image.Rectangle) Affine {
	b := Bounds(m, src)
	return Affine{
		Matrix:     m.Mul(matrix.Translate(float64(-b.Min.X), float64(-b.Min.Y))),
		TargetSize: b.Size(),
		SourceRect: src,
	}
}
