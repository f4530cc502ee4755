// Package frame provides a generic, row-addressable pixel container.
//
// Rows are contiguous and the stride equals the width, so a frame is also a
// single bulk-copyable slice. Frames can either own heap storage or borrow a
// pooled buffer from an allocator.
package frame

import (
	"errors"
	"fmt"
	"image"

	"github.com/cwbudde/algo-imaging/imaging/buffer"
)

// ErrSizeMismatch indicates frames of different dimensions.
var ErrSizeMismatch = errors.New("frame: size mismatch")

// Frame is a width x height grid of pixels of type P.
type Frame[P any] struct {
	width  int
	height int
	pix    []P
	owner  *buffer.Finalizable[P]
}

// New returns a zeroed frame. Non-positive dimensions yield an empty frame.
func New[P any](width, height int) *Frame[P] {
	if width <= 0 || height <= 0 {
		return &Frame[P]{}
	}
	return &Frame[P]{width: width, height: height, pix: make([]P, width*height)}
}

// NewPooled returns a zeroed frame whose storage is rented from a.
// Call Release when done; a leaked frame is released by the garbage
// collector.
func NewPooled[P any](a *buffer.Allocator, width, height int) (*Frame[P], error) {
	if width <= 0 || height <= 0 {
		return &Frame[P]{}, nil
	}
	owner, err := buffer.AllocateFinalizable[P](a, width*height)
	if err != nil {
		return nil, fmt.Errorf("frame: allocate %dx%d: %w", width, height, err)
	}
	pix, err := owner.View()
	if err != nil {
		return nil, err
	}
	return &Frame[P]{width: width, height: height, pix: pix, owner: owner}, nil
}

// FromPix wraps pix without copying. len(pix) must equal width*height.
func FromPix[P any](width, height int, pix []P) (*Frame[P], error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrSizeMismatch, len(pix), width, height)
	}
	return &Frame[P]{width: width, height: height, pix: pix}, nil
}

// Width returns the frame width in pixels.
func (f *Frame[P]) Width() int {
	return f.width
}

// Height returns the frame height in pixels.
func (f *Frame[P]) Height() int {
	return f.height
}

// Size returns the dimensions as a point.
func (f *Frame[P]) Size() image.Point {
	return image.Pt(f.width, f.height)
}

// Bounds returns the frame rectangle anchored at the origin.
func (f *Frame[P]) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// Empty reports whether the frame has no pixels.
func (f *Frame[P]) Empty() bool {
	return f.width == 0 || f.height == 0
}

// Pix returns all pixels in row-major order.
func (f *Frame[P]) Pix() []P {
	return f.pix
}

// Row returns row y. It panics if y is out of range.
func (f *Frame[P]) Row(y int) []P {
	start := y * f.width
	return f.pix[start : start+f.width : start+f.width]
}

// At returns the pixel at (x, y), or the zero value outside the frame.
func (f *Frame[P]) At(x, y int) P {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		var zero P
		return zero
	}
	return f.pix[y*f.width+x]
}

// Set writes the pixel at (x, y). Writes outside the frame are ignored.
func (f *Frame[P]) Set(x, y int, p P) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.pix[y*f.width+x] = p
}

// Fill sets every pixel to p.
func (f *Frame[P]) Fill(p P) {
	for i := range f.pix {
		f.pix[i] = p
	}
}

// CopyTo copies every pixel into dst, which must have the same size.
func (f *Frame[P]) CopyTo(dst *Frame[P]) error {
	if f.Size() != dst.Size() {
		return fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, f.Size(), dst.Size())
	}
	copy(dst.pix, f.pix)
	return nil
}

// Clone returns a heap-backed deep copy.
func (f *Frame[P]) Clone() *Frame[P] {
	c := New[P](f.width, f.height)
	copy(c.pix, f.pix)
	return c
}

// SubFrame copies the pixels inside r (clipped to the frame) into a new
// heap-backed frame.
func (f *Frame[P]) SubFrame(r image.Rectangle) *Frame[P] {
	r = r.Intersect(f.Bounds())
	sub := New[P](r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(sub.Row(y-r.Min.Y), f.Row(y)[r.Min.X:r.Max.X])
	}
	return sub
}

// Release returns pooled storage to its allocator. The frame is empty
// afterwards. Heap-backed frames are simply emptied.
func (f *Frame[P]) Release() {
	if f.owner != nil {
		f.owner.Dispose()
		f.owner = nil
	}
	f.pix = nil
	f.width, f.height = 0, 0
}
