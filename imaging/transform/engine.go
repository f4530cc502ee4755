package transform

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"seehuhn.de/go/geom/matrix"

	"github.com/cwbudde/algo-imaging/imaging/buffer"
	"github.com/cwbudde/algo-imaging/imaging/frame"
	"github.com/cwbudde/algo-imaging/imaging/parallel"
	"github.com/cwbudde/algo-imaging/imaging/pixel"
	"github.com/cwbudde/algo-imaging/imaging/resample"
)

// Engine applies affine transforms with a fixed resampler. It is safe for
// concurrent use.
type Engine struct {
	cfg      config
	ownAlloc bool
	cache    *lru.Cache[kernelKey, *resample.KernelMap]
}

// kernelKey identifies a kernel map by the geometry it was built for.
// Resamplers are told apart by name.
type kernelKey struct {
	m        matrix.Matrix
	src, dst image.Point
	name     string
}

// NewEngine creates an engine. Without WithAllocator the engine creates
// and owns its allocator, which Close releases.
func NewEngine(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg = cfg.finalized()

	e := &Engine{cfg: cfg}
	if cfg.allocator == nil {
		e.cfg.allocator = buffer.NewAllocator()
		e.ownAlloc = true
	}
	if cfg.cacheSize > 0 {
		if c, err := lru.New[kernelKey, *resample.KernelMap](cfg.cacheSize); err == nil {
			e.cache = c
		}
	}
	return e
}

// Resampler returns the engine's reconstruction kernel.
func (e *Engine) Resampler() resample.Resampler {
	return e.cfg.resampler
}

// Allocator returns the allocator buffers are rented from.
func (e *Engine) Allocator() *buffer.Allocator {
	return e.cfg.allocator
}

// CachedKernelMaps returns the number of kernel maps currently cached.
func (e *Engine) CachedKernelMaps() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.Len()
}

// Close drops cached kernel maps and, if the engine created its own
// allocator, releases its pools. The engine remains usable.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Purge()
	}
	if e.ownAlloc {
		e.cfg.allocator.Close()
	}
}

// Apply resamples src into dst under t.
//
// Destination pixels are addressed by their centres: pixel (x, y) samples
// the source at the inverse image of (x+0.5, y+0.5). Pixels whose sample
// position falls outside t.SourceRect keep their current value when the
// resampler is nearest-neighbor, and when no source pixel lies within the
// kernel support otherwise.
//
// A degenerate matrix is rejected with ErrDegenerateMatrix before dst is
// touched.
func Apply[P pixel.Format[P]](e *Engine, src, dst *frame.Frame[P], t Affine) error {
	if src.Empty() || dst.Empty() {
		return ErrEmptyFrame
	}
	log := e.cfg.logger

	if t.IsIdentity() {
		log.Debug("transform: identity copy", "size", src.Size())
		if src.Size() != dst.Size() {
			return fmt.Errorf("%w: identity copy from %v to %v", ErrSizeMismatch, src.Size(), dst.Size())
		}
		return src.CopyTo(dst)
	}

	inv, err := Invert(t.Matrix)
	if err != nil {
		return err
	}

	srcRect := src.Bounds()
	if !t.SourceRect.Empty() {
		srcRect = t.SourceRect.Intersect(srcRect)
	}
	target := dst.Bounds()
	if t.TargetSize != (image.Point{}) {
		target = target.Intersect(image.Rectangle{Max: t.TargetSize})
	}
	if srcRect.Empty() || target.Empty() {
		return fmt.Errorf("%w: source %v, target %v", ErrEmptyFrame, srcRect, target)
	}

	if resample.IsNearest(e.cfg.resampler) {
		log.Debug("transform: nearest neighbor", "source", srcRect, "target", target)
		return applyNearest(e.cfg.parallel, src, dst, inv, srcRect, target)
	}
	return applyKernel(e, src, dst, inv, srcRect, target)
}

func applyNearest[P any](s parallel.Settings, src, dst *frame.Frame[P], inv matrix.Matrix, srcRect, target image.Rectangle) error {
	minX, minY := float64(srcRect.Min.X), float64(srcRect.Min.Y)
	maxX, maxY := float64(srcRect.Max.X), float64(srcRect.Max.Y)

	return parallel.Rows(target, s, func(rows parallel.RowInterval) error {
		for y := rows.Min; y < rows.Max; y++ {
			row := dst.Row(y)
			fy := float64(y) + 0.5
			for x := target.Min.X; x < target.Max.X; x++ {
				sx, sy := inv.Apply(float64(x)+0.5, fy)
				sx, sy = math.Floor(sx), math.Floor(sy)
				// Negated comparisons also reject NaN.
				if !(sx >= minX && sx < maxX && sy >= minY && sy < maxY) {
					continue
				}
				row[x] = src.Row(int(sy))[int(sx)]
			}
		}
		return nil
	})
}

func applyKernel[P pixel.Format[P]](e *Engine, src, dst *frame.Frame[P], inv matrix.Matrix, srcRect, target image.Rectangle) error {
	cfg := e.cfg

	// Take destination indices straight to source-rect-local coordinates
	// with sample centres on integers.
	local := inv
	local[4] += 0.5*(inv[0]+inv[2]) - 0.5 - float64(srcRect.Min.X)
	local[5] += 0.5*(inv[1]+inv[3]) - 0.5 - float64(srcRect.Min.Y)

	kmap := e.kernelMap(local, srcRect.Size(), target.Size())
	cfg.logger.Debug("transform: kernel convolution",
		slog.String("resampler", cfg.resampler.Name()),
		slog.Any("source", srcRect),
		slog.Any("target", target),
		slog.Bool("separable", kmap.Separable()),
	)

	vec, err := frame.NewPooled[pixel.Vector4](cfg.allocator, srcRect.Dx(), srcRect.Dy())
	if err != nil {
		return fmt.Errorf("transform: source vectors: %w", err)
	}
	defer vec.Release()

	err = parallel.Rows(vec.Bounds(), cfg.parallel, func(rows parallel.RowInterval) error {
		for y := rows.Min; y < rows.Max; y++ {
			pixel.ToVectorRow(src.Row(y + srcRect.Min.Y)[srcRect.Min.X:srcRect.Max.X], vec.Row(y))
		}
		return nil
	})
	if err != nil {
		return err
	}

	width := target.Dx()
	// One vector row for the destination plus the per-point weight windows,
	// rounded up to whole vectors.
	length := width + (kmap.ScratchLen()+3)/4

	return parallel.RowsWithBuffer[pixel.Vector4](target, cfg.parallel, cfg.allocator, length,
		func(rows parallel.RowInterval, scratch []pixel.Vector4) error {
			line := scratch[:width]
			weights := pixel.Flatten(scratch[width:])
			for y := rows.Min; y < rows.Max; y++ {
				row := dst.Row(y)[:width]
				pixel.ToVectorRow(row, line)
				fy := float64(y)
				for x := range line {
					sx, sy := local.Apply(float64(x), fy)
					if v, ok := kmap.Convolve(sx, sy, x, y, vec, weights); ok {
						line[x] = v
					}
				}
				pixel.FromVectorRowDestructive(line, row)
			}
			return nil
		})
}

func (e *Engine) kernelMap(m matrix.Matrix, src, dst image.Point) *resample.KernelMap {
	r := e.cfg.resampler
	if e.cache == nil {
		return resample.NewKernelMap(r, m, src, dst)
	}

	key := kernelKey{m: m, src: src, dst: dst, name: r.Name()}
	if k, ok := e.cache.Get(key); ok {
		e.cfg.logger.Debug("transform: kernel map cache hit", "resampler", key.name)
		return k
	}
	k := resample.NewKernelMap(r, m, src, dst)
	e.cache.Add(key, k)
	return k
}
