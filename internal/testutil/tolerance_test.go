package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-imaging/imaging/pixel"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []pixel.Vector4{{X: 1}, {Y: 2}, {W: 3}}
	b := []pixel.Vector4{{X: 1}, {Y: 2.1}, {W: 3}}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]pixel.Vector4{{}}, []pixel.Vector4{{}, {}})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffIdentical(t *testing.T) {
	a := []pixel.Vector4{{X: 1, Y: 2, Z: 3, W: 4}}

	d, err := MaxAbsDiff(a, a)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if d != 0 {
		t.Fatalf("MaxAbsDiff = %v, want 0 for identical slices", d)
	}
}

func TestGradientCorners(t *testing.T) {
	f := Gradient(5, 3)
	if got := f.At(0, 0); got.R != 0 || got.G != 0 || got.A != 255 {
		t.Fatalf("At(0,0) = %+v, want black opaque", got)
	}
	if got := f.At(4, 2); got.R != 255 || got.G != 255 {
		t.Fatalf("At(4,2) = %+v, want full red and green", got)
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 8, 8).Pix()
	b := DeterministicNoise(42, 8, 8).Pix()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
	}
}

func TestSolid(t *testing.T) {
	want := pixel.Gray8{Y: 7}
	for i, p := range Solid(3, 2, want).Pix() {
		if p != want {
			t.Fatalf("pixel %d = %+v, want %+v", i, p, want)
		}
	}
}
