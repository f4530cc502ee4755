package transform

import (
	"image"

	"github.com/cwbudde/algo-imaging/imaging/frame"
	"github.com/cwbudde/algo-imaging/imaging/pixel"
)

// ApplyImage transforms a standard library image. Without an explicit
// TargetSize the result covers the bounding box of the transformed source.
func ApplyImage(e *Engine, img image.Image, t Affine) (*image.NRGBA, error) {
	src := frame.FromImage(img)

	size := t.TargetSize
	if size == (image.Point{}) {
		size = src.Size()
		if !t.IsIdentity() {
			size = TargetSize(t.Matrix, src.Bounds())
		}
	}

	dst, err := frame.NewPooled[pixel.RGBA32](e.Allocator(), size.X, size.Y)
	if err != nil {
		return nil, err
	}
	defer dst.Release()

	if err := Apply(e, src, dst, t); err != nil {
		return nil, err
	}
	return frame.ToImage(dst), nil
}
