package resample

import (
	"image"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"seehuhn.de/go/geom/matrix"

	"github.com/cwbudde/algo-imaging/imaging/pixel"
)

// Sampler exposes source pixels as rows of normalised vectors.
type Sampler interface {
	Row(y int) []pixel.Vector4
}

// axis describes the sampling geometry along one direction.
type axis struct {
	size   int     // source samples along the axis
	scale  float64 // kernel stretch when downscaling, >= 1
	radius float64 // stretched support radius
	length int     // upper bound on window length

	// Per destination coordinate, only for separable maps.
	starts  []int
	counts  []int
	weights []float64 // length entries per coordinate
}

func newAxis(r Resampler, srcSize, dstSize int) axis {
	scale := 1.0
	if dstSize > 0 && srcSize > dstSize {
		scale = float64(srcSize) / float64(dstSize)
	}
	radius := r.Radius() * scale
	return axis{
		size:   srcSize,
		scale:  scale,
		radius: radius,
		length: 2*int(math.Ceil(radius)) + 1,
	}
}

// window writes the normalised weights of the source samples around center
// into w and returns the first sample index and the window length. The
// window is clamped to the source; a zero length means nothing contributes.
func (a *axis) window(r Resampler, center float64, w []float64) (start, n int) {
	if math.IsNaN(center) || center+a.radius < 0 || center-a.radius > float64(a.size-1) {
		return 0, 0
	}
	lo := max(0, int(math.Ceil(center-a.radius)))
	hi := min(a.size-1, int(math.Floor(center+a.radius)))
	n = min(hi-lo+1, len(w))
	if n <= 0 {
		return 0, 0
	}

	sum := 0.0
	for i := range n {
		v := r.Weight((float64(lo+i) - center) / a.scale)
		w[i] = v
		sum += v
	}
	if sum == 0 {
		return 0, 0
	}
	if sum != 1 {
		vecmath.ScaleBlock(w[:n], w[:n], 1/sum)
	}
	return lo, n
}

func (a *axis) precompute(r Resampler, dstSize int, scale, offset float64) {
	a.starts = make([]int, dstSize)
	a.counts = make([]int, dstSize)
	a.weights = make([]float64, dstSize*a.length)
	for d := range dstSize {
		w := a.weights[d*a.length : (d+1)*a.length]
		a.starts[d], a.counts[d] = a.window(r, scale*float64(d)+offset, w)
	}
}

func (a *axis) row(d int) (int, []float64) {
	off := d * a.length
	return a.starts[d], a.weights[off : off+a.counts[d] : off+a.counts[d]]
}

// KernelMap holds the resampling weights for one transform call. It is
// immutable once built and safe for concurrent use.
//
// The map is built from a matrix that takes destination pixel indices to
// continuous source coordinates, with source sample centres on integers.
// When that matrix has no rotation or shear, every destination column and
// row has a fixed window, and the map precomputes them all. Otherwise the
// windows depend on both coordinates and are computed per pixel into caller
// scratch.
type KernelMap struct {
	r         Resampler
	m         matrix.Matrix
	src, dst  image.Point
	x, y      axis
	separable bool
}

// NewKernelMap builds the map for resampling a src-sized image into a
// dst-sized one. m takes destination pixel indices to source coordinates.
func NewKernelMap(r Resampler, m matrix.Matrix, src, dst image.Point) *KernelMap {
	k := &KernelMap{
		r:         r,
		m:         m,
		src:       src,
		dst:       dst,
		x:         newAxis(r, src.X, dst.X),
		y:         newAxis(r, src.Y, dst.Y),
		separable: m[1] == 0 && m[2] == 0,
	}
	if k.separable {
		k.x.precompute(r, dst.X, m[0], m[4])
		k.y.precompute(r, dst.Y, m[3], m[5])
	}
	return k
}

// Resampler returns the kernel the map was built for.
func (k *KernelMap) Resampler() Resampler {
	return k.r
}

// Separable reports whether windows were precomputed per axis.
func (k *KernelMap) Separable() bool {
	return k.separable
}

// Radii returns the stretched support radius along x and y.
func (k *KernelMap) Radii() (float64, float64) {
	return k.x.radius, k.y.radius
}

// ScratchLen is the number of float64 values Convolve needs as scratch for
// non-separable maps.
func (k *KernelMap) ScratchLen() int {
	return k.x.length + k.y.length
}

// XRow returns the first source column and the weights for destination
// column x of a separable map. The weights alias the map's table and must
// not be modified.
func (k *KernelMap) XRow(x int) (start int, weights []float64) {
	return k.x.row(x)
}

// YRow returns the first source row and the weights for destination row y
// of a separable map. The weights alias the map's table and must not be
// modified.
func (k *KernelMap) YRow(y int) (start int, weights []float64) {
	return k.y.row(y)
}

// Convolve computes the resampled value of destination pixel (x, y) whose
// continuous source position is (sx, sy). Separable maps read their
// precomputed windows for x and y; other maps build windows around (sx, sy)
// in scratch, which must hold at least ScratchLen values. The boolean is
// false when no source sample lies within the kernel support, in which case
// the caller keeps its own value.
func (k *KernelMap) Convolve(sx, sy float64, x, y int, src Sampler, scratch []float64) (pixel.Vector4, bool) {
	var (
		xs, ys int
		xw, yw []float64
	)
	if k.separable {
		xs, xw = k.x.row(x)
		ys, yw = k.y.row(y)
	} else {
		xbuf := scratch[:k.x.length]
		ybuf := scratch[k.x.length : k.x.length+k.y.length]
		var n int
		xs, n = k.x.window(k.r, sx, xbuf)
		xw = xbuf[:n]
		ys, n = k.y.window(k.r, sy, ybuf)
		yw = ybuf[:n]
	}
	if len(xw) == 0 || len(yw) == 0 {
		return pixel.Vector4{}, false
	}

	var acc pixel.Vector4
	for j, wy := range yw {
		row := src.Row(ys + j)[xs : xs+len(xw)]
		var h pixel.Vector4
		for i, wx := range xw {
			p := row[i]
			h.X += wx * p.X
			h.Y += wx * p.Y
			h.Z += wx * p.Z
			h.W += wx * p.W
		}
		acc.X += wy * h.X
		acc.Y += wy * h.Y
		acc.Z += wy * h.Z
		acc.W += wy * h.W
	}
	return acc, true
}
