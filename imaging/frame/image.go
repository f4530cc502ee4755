package frame

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/cwbudde/algo-imaging/imaging/pixel"
)

// FromImage converts any image into an RGBA32 frame of straight
// (non-premultiplied) pixels.
func FromImage(img image.Image) *Frame[pixel.RGBA32] {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(nrgba, nrgba.Bounds(), img, b.Min, xdraw.Src)
	}

	f := New[pixel.RGBA32](b.Dx(), b.Dy())
	for y := range f.height {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+4*f.width]
		row := f.Row(y)
		for x := range row {
			row[x] = pixel.RGBA32{R: src[4*x], G: src[4*x+1], B: src[4*x+2], A: src[4*x+3]}
		}
	}
	return f
}

// ToImage converts an RGBA32 frame into an *image.NRGBA.
func ToImage(f *Frame[pixel.RGBA32]) *image.NRGBA {
	img := image.NewNRGBA(f.Bounds())
	for y := range f.height {
		dst := img.Pix[y*img.Stride : y*img.Stride+4*f.width]
		for x, p := range f.Row(y) {
			dst[4*x], dst[4*x+1], dst[4*x+2], dst[4*x+3] = p.R, p.G, p.B, p.A
		}
	}
	return img
}
