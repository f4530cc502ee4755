// Command affine scales, rotates and resamples images and reports the
// frequency response of the available reconstruction kernels.
//
// Usage:
//
//	affine transform [flags] input...
//	affine kernels [flags] [resampler ...]
//
// Examples:
//
//	affine transform --scale 0.5 -o small.png photo.png
//	affine transform --rotate 15 --resampler lanczos3 --out-dir out a.bmp b.tiff
//	affine transform --width 800 --jobs 4 --out-dir thumbs *.jpg
//	affine kernels lanczos3 mitchell
//	affine kernels --list
package main

import "github.com/cwbudde/algo-imaging/cmd/affine/cmd"

func main() {
	cmd.Execute()
}
