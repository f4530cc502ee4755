package testutil

import (
	"math/rand"

	"github.com/cwbudde/algo-imaging/imaging/frame"
	"github.com/cwbudde/algo-imaging/imaging/pixel"
)

// Gradient returns an opaque frame whose red channel rises left to right and
// green channel top to bottom.
func Gradient(width, height int) *frame.Frame[pixel.RGBA32] {
	f := frame.New[pixel.RGBA32](width, height)
	for y := range height {
		row := f.Row(y)
		for x := range row {
			row[x] = pixel.RGBA32{
				R: ramp(x, width),
				G: ramp(y, height),
				B: uint8((x + y) % 256),
				A: 255,
			}
		}
	}
	return f
}

// DeterministicNoise returns a frame of random opaque pixels with a fixed
// seed for reproducibility.
func DeterministicNoise(seed int64, width, height int) *frame.Frame[pixel.RGBA32] {
	f := frame.New[pixel.RGBA32](width, height)
	rng := rand.New(rand.NewSource(seed))
	pix := f.Pix()
	for i := range pix {
		pix[i] = pixel.RGBA32{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
			A: 255,
		}
	}
	return f
}

// Solid returns a frame filled with p.
func Solid[P any](width, height int, p P) *frame.Frame[P] {
	f := frame.New[P](width, height)
	f.Fill(p)
	return f
}

func ramp(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(i * 255 / (n - 1))
}
