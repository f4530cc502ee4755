// Package testutil holds assertions and deterministic fixtures shared by the
// imaging tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-imaging/imaging/pixel"
)

// RequireVectorNear fails t if any channel of got differs from want by more
// than eps.
func RequireVectorNear(t *testing.T, got, want pixel.Vector4, eps float64) {
	t.Helper()
	if d := vectorDiff(got, want); d > eps {
		t.Fatalf("got %+v, want %+v (diff %v > eps %v)", got, want, d, eps)
	}
}

// RequireVectorsNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps in any channel.
func RequireVectorsNearlyEqual(t *testing.T, got, want []pixel.Vector4, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := vectorDiff(got[i], want[i]); d > eps {
			t.Fatalf("index %d: got %+v, want %+v (diff %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t if any channel of any element is NaN or Inf.
func RequireFinite(t *testing.T, data []pixel.Vector4) {
	t.Helper()
	for i, v := range data {
		for _, c := range [4]float64{v.X, v.Y, v.Z, v.W} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				t.Fatalf("index %d: non-finite value %+v", i, v)
			}
		}
	}
}

// RequireWeightsNormalized fails t if the weights do not sum to 1 within eps.
func RequireWeightsNormalized(t *testing.T, weights []float64, eps float64) {
	t.Helper()
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1) > eps {
		t.Fatalf("weights %v sum to %v, want 1", weights, sum)
	}
}

// MaxAbsDiff returns the maximum per-channel difference between two vector
// slices. Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []pixel.Vector4) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		maxDiff = max(maxDiff, vectorDiff(a[i], b[i]))
	}
	return maxDiff, nil
}

func vectorDiff(a, b pixel.Vector4) float64 {
	return max(
		math.Abs(a.X-b.X),
		math.Abs(a.Y-b.Y),
		math.Abs(a.Z-b.Z),
		math.Abs(a.W-b.W),
	)
}
