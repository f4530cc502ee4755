package transform_test

import (
	"fmt"
	"image"

	"github.com/cwbudde/algo-imaging/imaging/frame"
	"github.com/cwbudde/algo-imaging/imaging/pixel"
	"github.com/cwbudde/algo-imaging/imaging/resample"
	"github.com/cwbudde/algo-imaging/imaging/transform"
)

func ExampleApply() {
	src, _ := frame.FromPix(2, 1, []pixel.Gray8{{Y: 0}, {Y: 200}})
	dst := frame.New[pixel.Gray8](4, 1)

	e := transform.NewEngine(transform.WithResampler(resample.Triangle))
	if err := transform.Apply(e, src, dst, transform.Affine{Matrix: transform.Scale(2, 1)}); err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range dst.Pix() {
		fmt.Print(p.Y, " ")
	}
	fmt.Println()
	// Output:
	// 0 50 150 200
}

func ExampleFit() {
	a := transform.Fit(transform.Rotate(90, image.Pt(40, 30)), image.Rect(0, 0, 40, 30))
	fmt.Println(a.TargetSize)
	// Output:
	// (30,40)
}
