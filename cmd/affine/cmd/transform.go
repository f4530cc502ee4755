package cmd

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	concpool "github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/matrix"

	"github.com/cwbudde/algo-imaging/imaging/parallel"
	"github.com/cwbudde/algo-imaging/imaging/resample"
	"github.com/cwbudde/algo-imaging/imaging/transform"
)

type transformFlags struct {
	resampler   string
	scale       float64
	width       int
	height      int
	rotate      float64
	output      string
	outDir      string
	format      string
	quality     int
	jobs        int
	parallelism int
	cacheSize   int
}

func newTransformCmd(opts *options) *cobra.Command {
	f := &transformFlags{}

	cmd := &cobra.Command{
		Use:   "transform [flags] input...",
		Short: "Scale and rotate images",
		Long: `Resample each input image under a scale and rotation about its centre.
The output covers the bounding box of the transformed image.

With a single input, --output names the result. Otherwise results are written
to --out-dir under the input's base name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, opts, f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.resampler, "resampler", "r", resample.Bicubic.Name(), "reconstruction kernel (see 'affine kernels --list')")
	fl.Float64VarP(&f.scale, "scale", "s", 1, "uniform scale factor, ignored when --width or --height is set")
	fl.IntVar(&f.width, "width", 0, "output width before rotation, keeps the aspect ratio if --height is unset")
	fl.IntVar(&f.height, "height", 0, "output height before rotation, keeps the aspect ratio if --width is unset")
	fl.Float64Var(&f.rotate, "rotate", 0, "clockwise rotation in degrees")
	fl.StringVarP(&f.output, "output", "o", "", "output file for a single input")
	fl.StringVar(&f.outDir, "out-dir", ".", "output directory for several inputs")
	fl.StringVar(&f.format, "format", "", "output extension such as png or tiff, defaults to the input's")
	fl.IntVar(&f.quality, "quality", 90, "JPEG quality")
	fl.IntVarP(&f.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "images processed concurrently")
	fl.IntVar(&f.parallelism, "parallelism", 0, "row workers per image, 0 means GOMAXPROCS")
	fl.IntVar(&f.cacheSize, "kernel-cache", transform.DefaultKernelCacheSize, "kernel maps kept for reuse, 0 disables")

	return cmd
}

func runTransform(cmd *cobra.Command, opts *options, f *transformFlags, inputs []string) error {
	r, err := resample.ByName(f.resampler)
	if err != nil {
		return err
	}
	if f.output != "" && len(inputs) > 1 {
		return errors.New("--output needs exactly one input, use --out-dir")
	}
	if f.scale <= 0 || f.width < 0 || f.height < 0 {
		return fmt.Errorf("invalid size: scale %g, width %d, height %d", f.scale, f.width, f.height)
	}

	engine := transform.NewEngine(
		transform.WithResampler(r),
		transform.WithParallelism(parallel.Settings{MaxDegreeOfParallelism: f.parallelism}),
		transform.WithKernelCache(f.cacheSize),
		transform.WithLogger(opts.logger),
	)
	defer engine.Close()

	p := concpool.New().WithErrors().WithMaxGoroutines(max(1, f.jobs))
	for _, in := range inputs {
		p.Go(func() error {
			out, err := outputPath(f, in)
			if err != nil {
				return err
			}
			return transformFile(cmd, opts, engine, f, in, out)
		})
	}
	return p.Wait()
}

func transformFile(cmd *cobra.Command, opts *options, engine *transform.Engine, f *transformFlags, in, out string) error {
	start := time.Now()
	img, format, err := decodeFile(in)
	if err != nil {
		return err
	}

	src := image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	t := transform.Fit(buildMatrix(f, src.Size()), src)
	opts.logger.Debug("transforming", "input", in, "format", format, "size", src.Size(), "target", t.TargetSize)

	res, err := transform.ApplyImage(engine, img, t)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := encodeFile(out, res, f.quality); err != nil {
		return err
	}

	opts.logger.Info("wrote image",
		"input", in,
		"output", out,
		"size", res.Bounds().Size(),
		"resampler", engine.Resampler().Name(),
		"elapsed", time.Since(start),
	)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// buildMatrix scales to the requested size, then rotates about the centre
// of the scaled image.
func buildMatrix(f *transformFlags, size image.Point) matrix.Matrix {
	sx, sy := f.scale, f.scale
	switch {
	case f.width > 0 && f.height > 0:
		sx = float64(f.width) / float64(size.X)
		sy = float64(f.height) / float64(size.Y)
	case f.width > 0:
		sx = float64(f.width) / float64(size.X)
		sy = sx
	case f.height > 0:
		sy = float64(f.height) / float64(size.Y)
		sx = sy
	}

	m := transform.Scale(sx, sy)
	if f.rotate != 0 {
		scaled := transform.TargetSize(m, image.Rectangle{Max: size})
		m = transform.Compose(m, transform.Rotate(f.rotate, scaled))
	}
	return m
}

func outputPath(f *transformFlags, in string) (string, error) {
	out := f.output
	if out == "" {
		base := filepath.Base(in)
		ext := filepath.Ext(base)
		if f.format != "" {
			ext = "." + strings.TrimPrefix(strings.ToLower(f.format), ".")
		}
		out = filepath.Join(f.outDir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
	}
	if sameFile(in, out) {
		return "", fmt.Errorf("%s: output would overwrite the input", in)
	}
	if f.output == "" {
		if err := os.MkdirAll(f.outDir, 0o755); err != nil {
			return "", err
		}
	}
	return out, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	sa, errA := os.Stat(a)
	sb, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(sa, sb)
}
