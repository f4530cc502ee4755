package transform

import (
	"log/slog"

	"github.com/cwbudde/algo-imaging/imaging/buffer"
	"github.com/cwbudde/algo-imaging/imaging/parallel"
	"github.com/cwbudde/algo-imaging/imaging/resample"
)

// DefaultKernelCacheSize is the number of kernel maps an engine keeps.
const DefaultKernelCacheSize = 8

type config struct {
	resampler resample.Resampler
	parallel  parallel.Settings
	allocator *buffer.Allocator
	cacheSize int
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*config)

// WithResampler selects the reconstruction kernel. The default is
// resample.Bicubic.
func WithResampler(r resample.Resampler) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.resampler = r
		}
	}
}

// WithParallelism controls how destination rows are split across
// goroutines.
func WithParallelism(s parallel.Settings) Option {
	return func(cfg *config) {
		cfg.parallel = s
	}
}

// WithAllocator makes the engine rent scratch and working buffers from a.
// The caller keeps ownership of a.
func WithAllocator(a *buffer.Allocator) Option {
	return func(cfg *config) {
		if a != nil {
			cfg.allocator = a
		}
	}
}

// WithKernelCache keeps up to n kernel maps for reuse across calls with the
// same geometry. n <= 0 disables the cache.
func WithKernelCache(n int) Option {
	return func(cfg *config) {
		cfg.cacheSize = n
	}
}

// WithLogger routes debug output about dispatch decisions to l.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

func defaultConfig() config {
	return config{
		resampler: resample.Bicubic,
		parallel:  parallel.DefaultSettings(),
		cacheSize: DefaultKernelCacheSize,
	}
}

func (c config) finalized() config {
	if c.resampler == nil {
		c.resampler = resample.Bicubic
	}
	if c.cacheSize < 0 {
		c.cacheSize = 0
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}
