// Package transform resamples frames under 2D affine transforms.
//
// An [Affine] carries a forward matrix from source to destination pixel
// coordinates. [Apply] inverts it and fills every destination pixel by
// mapping its centre back into the source:
//
//   - an identity (or zero) matrix is a plain bulk copy,
//   - the nearest-neighbor resampler copies the source pixel under the
//     mapped centre, leaving destination pixels outside the source alone,
//   - every other resampler convolves the source with the kernel through a
//     [resample.KernelMap] built once per call.
//
// Work is split into destination row intervals that run in parallel. Each
// interval borrows its scratch row from the engine's buffer allocator.
//
// Matrices use the row-vector layout of seehuhn.de/go/geom/matrix:
// a point (x, y) maps to (a*x + c*y + e, b*x + d*y + f) for
// Matrix{a, b, c, d, e, f}.
package transform
