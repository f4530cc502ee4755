package transform

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/matrix"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestInvertRoundTrip(t *testing.T) {
	ms := []matrix.Matrix{
		{2, 0, 0, 3, 5, -7},
		{0.8, 0.6, -0.6, 0.8, 10, 20},
		Compose(Scale(1.5, 0.5), Rotate(33, image.Pt(10, 6)), Translate(-4, 2)),
	}
	for _, m := range ms {
		inv, err := Invert(m)
		if err != nil {
			t.Fatalf("Invert(%v) error = %v", m, err)
		}
		got := Compose(m, inv)
		if d := cmp.Diff(matrix.Identity, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
			t.Fatalf("m then inverse is not identity (-want +got):\n%s", d)
		}
	}
}

func TestInvertMapsPointsBack(t *testing.T) {
	m := Compose(Scale(2, 0.5), Rotate(30, image.Pt(8, 8)), Translate(3, -1))
	inv, err := Invert(m)
	if err != nil {
		t.Fatalf("Invert() error = %v", err)
	}
	for _, p := range [][2]float64{{0, 0}, {7.5, 2.25}, {-3, 11}} {
		x, y := m.Apply(p[0], p[1])
		bx, by := inv.Apply(x, y)
		if d := cmp.Diff(p, [2]float64{bx, by}, cmpopts.EquateApprox(0, 1e-9)); d != "" {
			t.Fatalf("inverse of %v mismatch (-want +got):\n%s", p, d)
		}
	}
}

func TestInvertDegenerate(t *testing.T) {
	tests := []struct {
		name string
		m    matrix.Matrix
	}{
		{"zero scale", matrix.Matrix{0, 0, 0, 1, 0, 0}},
		{"collinear", matrix.Matrix{1, 2, 2, 4, 0, 0}},
		{"tiny", matrix.Matrix{1e-7, 0, 0, 1e-7, 0, 0}},
		{"nan", matrix.Matrix{1, 0, 0, 1, math.NaN(), 0}},
		{"inf", matrix.Matrix{math.Inf(1), 0, 0, 1, 0, 0}},
	}
	for _, tc := range tests {
		if _, err := Invert(tc.m); !errors.Is(err, ErrDegenerateMatrix) {
			t.Fatalf("%s: Invert() error = %v, want ErrDegenerateMatrix", tc.name, err)
		}
	}
}

func TestComposeAppliesInOrder(t *testing.T) {
	m := Compose(Scale(2, 2), Translate(1, 0))
	x, y := m.Apply(1, 1)
	if x != 3 || y != 2 {
		t.Fatalf("Apply(1, 1) = (%v, %v), want (3, 2)", x, y)
	}
}

func TestRotateAboutCentre(t *testing.T) {
	m := Rotate(90, image.Pt(4, 2))
	tests := []struct{ in, want [2]float64 }{
		{[2]float64{2, 1}, [2]float64{2, 1}},
		{[2]float64{4, 1}, [2]float64{2, 3}},
		{[2]float64{2, 0}, [2]float64{3, 1}},
	}
	for _, tc := range tests {
		x, y := m.Apply(tc.in[0], tc.in[1])
		if d := cmp.Diff(tc.want, [2]float64{x, y}, approx); d != "" {
			t.Fatalf("Apply(%v) mismatch (-want +got):\n%s", tc.in, d)
		}
	}
}

func TestTargetSize(t *testing.T) {
	if got := TargetSize(Scale(2, 3), image.Rect(0, 0, 4, 5)); got != image.Pt(8, 15) {
		t.Fatalf("TargetSize(scale) = %v, want (8,15)", got)
	}
	if got := TargetSize(Rotate(90, image.Pt(4, 2)), image.Rect(0, 0, 4, 2)); got != image.Pt(2, 4) {
		t.Fatalf("TargetSize(rotate 90) = %v, want (2,4)", got)
	}
}

func TestFitMovesBoundsToOrigin(t *testing.T) {
	src := image.Rect(0, 0, 30, 20)
	a := Fit(Rotate(30, src.Size()), src)
	b := Bounds(a.Matrix, src)
	if b.Min != (image.Point{}) {
		t.Fatalf("fitted bounds start at %v, want origin", b.Min)
	}
	if b.Size() != a.TargetSize {
		t.Fatalf("fitted bounds size %v, TargetSize %v", b.Size(), a.TargetSize)
	}
	if a.SourceRect != src {
		t.Fatalf("SourceRect = %v, want %v", a.SourceRect, src)
	}
}

func TestIsIdentity(t *testing.T) {
	if !(Affine{}).IsIdentity() {
		t.Fatal("zero Affine is not identity")
	}
	if !(Affine{Matrix: matrix.Identity}).IsIdentity() {
		t.Fatal("identity matrix is not identity")
	}
	if (Affine{Matrix: Scale(2, 2)}).IsIdentity() {
		t.Fatal("scale reported as identity")
	}
}
