package pixel

import "math"

// Format is implemented by pixel types. Raw and FromRaw work in the
// format's own channel range [0, MaxValue]; FromRaw rounds and clamps.
type Format[P any] interface {
	Raw() Vector4
	FromRaw(v Vector4) P
	MaxValue() float64
}

// RGBA32 is 8 bits per channel, non-premultiplied.
type RGBA32 struct {
	R, G, B, A uint8
}

// Raw implements Format.
func (p RGBA32) Raw() Vector4 {
	return Vector4{float64(p.R), float64(p.G), float64(p.B), float64(p.A)}
}

// FromRaw implements Format.
func (RGBA32) FromRaw(v Vector4) RGBA32 {
	return RGBA32{quantize8(v.X), quantize8(v.Y), quantize8(v.Z), quantize8(v.W)}
}

// MaxValue implements Format.
func (RGBA32) MaxValue() float64 { return math.MaxUint8 }

// RGBA64 is 16 bits per channel, non-premultiplied.
type RGBA64 struct {
	R, G, B, A uint16
}

// Raw implements Format.
func (p RGBA64) Raw() Vector4 {
	return Vector4{float64(p.R), float64(p.G), float64(p.B), float64(p.A)}
}

// FromRaw implements Format.
func (RGBA64) FromRaw(v Vector4) RGBA64 {
	return RGBA64{quantize16(v.X), quantize16(v.Y), quantize16(v.Z), quantize16(v.W)}
}

// MaxValue implements Format.
func (RGBA64) MaxValue() float64 { return math.MaxUint16 }

// Gray8 is a single 8-bit luminance channel. It expands to (Y, Y, Y, 1).
type Gray8 struct {
	Y uint8
}

// Raw implements Format.
func (p Gray8) Raw() Vector4 {
	y := float64(p.Y)
	return Vector4{y, y, y, math.MaxUint8}
}

// FromRaw implements Format. Only the first channel is kept.
func (Gray8) FromRaw(v Vector4) Gray8 {
	return Gray8{quantize8(v.X)}
}

// MaxValue implements Format.
func (Gray8) MaxValue() float64 { return math.MaxUint8 }

func quantize8(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(v)
}

func quantize16(v float64) uint16 {
	v = math.Round(v)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(v)
}
