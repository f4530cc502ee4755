package pixel

import "github.com/cwbudde/algo-vecmath"

// ToVectorRow converts src into normalised vectors in dst.
// dst must be at least as long as src.
func ToVectorRow[P Format[P]](src []P, dst []Vector4) {
	dst = dst[:len(src)]
	for i := range src {
		dst[i] = src[i].Raw()
	}
	var zero P
	if m := zero.MaxValue(); m != 1 {
		flat := Flatten(dst)
		vecmath.ScaleBlock(flat, flat, 1/m)
	}
}

// FromVectorRowDestructive converts normalised vectors back to pixels.
// The vectors are rescaled in place, so src holds no meaningful values
// afterwards. dst must be at least as long as src.
func FromVectorRowDestructive[P Format[P]](src []Vector4, dst []P) {
	dst = dst[:len(src)]
	var zero P
	if m := zero.MaxValue(); m != 1 {
		flat := Flatten(src)
		vecmath.ScaleBlock(flat, flat, m)
	}
	for i := range src {
		dst[i] = zero.FromRaw(src[i])
	}
}

// ToVector4 converts a single pixel.
func ToVector4[P Format[P]](p P) Vector4 {
	return p.Raw().Scale(1 / p.MaxValue())
}

// FromVector4 converts a single normalised vector.
func FromVector4[P Format[P]](v Vector4) P {
	var zero P
	return zero.FromRaw(v.Scale(zero.MaxValue()))
}
