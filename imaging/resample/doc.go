// Package resample provides reconstruction kernels and the per-axis weight
// tables used to resample images at non-integer source coordinates.
//
// Kernels, roughly from cheapest to sharpest:
//
//	kernel              radius   notes
//	NearestNeighbor     -        copy, recognised by IsNearest
//	Box                 0.5
//	Triangle            1        bilinear
//	Hermite             2        cubic B=0 C=0
//	Spline              2        cubic B=1 C=0, smooth
//	MitchellNetravali   2        cubic B=1/3 C=1/3
//	Robidoux            2
//	RobidouxSharp       2
//	CatmullRom          2        cubic B=0 C=1/2, interpolating
//	Bicubic             2        Keys a=-0.5
//	Welch               3        windowed sinc
//	Lanczos2/3/5/8      2/3/5/8  windowed sinc
//
// A KernelMap is built once per resample call and is read-only afterwards,
// so it can be shared by all row workers.
package resample
