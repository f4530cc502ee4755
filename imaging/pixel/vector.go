// Package pixel defines pixel formats and their conversion to and from the
// four-channel floating point representation used while resampling.
//
// Every format maps its channels linearly to [0, 1]. Color-space and alpha
// premultiplication policy are left to the caller.
package pixel

import "unsafe"

// Vector4 holds four normalised channels (R, G, B, A) in [0, 1].
type Vector4 struct {
	X, Y, Z, W float64
}

// Add returns v + o.
func (v Vector4) Add(o Vector4) Vector4 {
	return Vector4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W}
}

// Scale returns v * s.
func (v Vector4) Scale(s float64) Vector4 {
	return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Raw implements Format.
func (v Vector4) Raw() Vector4 { return v }

// FromRaw implements Format. Floating point pixels are stored unclamped.
func (Vector4) FromRaw(r Vector4) Vector4 { return r }

// MaxValue implements Format.
func (Vector4) MaxValue() float64 { return 1 }

// Flatten reinterprets a vector row as its channel values, four per pixel,
// without copying.
func Flatten(row []Vector4) []float64 {
	if len(row) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(row))), 4*len(row))
}
