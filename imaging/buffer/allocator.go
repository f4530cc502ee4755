package buffer

import (
	"math/bits"
	"sync"
)

const (
	defaultMinClass     = 256
	defaultMaxClass     = 16 << 20
	defaultSlabsPerPool = 64
)

// AllocatorOption configures an Allocator.
type AllocatorOption func(*allocatorConfig)

type allocatorConfig struct {
	minClass     int
	maxClass     int
	slabsPerPool int
	poolOpts     []PoolOption
}

// WithSizeClasses sets the smallest and largest pooled slab sizes in bytes.
// Both are rounded up to a power of two.
func WithSizeClasses(minBytes, maxBytes int) AllocatorOption {
	return func(cfg *allocatorConfig) {
		if minBytes > 0 && maxBytes >= minBytes {
			cfg.minClass = minBytes
			cfg.maxClass = maxBytes
		}
	}
}

// WithSlabsPerPool sets the capacity of each size-class pool.
func WithSlabsPerPool(n int) AllocatorOption {
	return func(cfg *allocatorConfig) {
		if n >= 0 {
			cfg.slabsPerPool = n
		}
	}
}

// WithPoolOptions forwards options to every pool the allocator creates.
func WithPoolOptions(opts ...PoolOption) AllocatorOption {
	return func(cfg *allocatorConfig) {
		cfg.poolOpts = append(cfg.poolOpts, opts...)
	}
}

// Allocator owns one Pool per power-of-two size class. Pools are created on
// first use. Requests above the largest class are served with unpooled
// storage that is left to the garbage collector on Dispose.
//
// All methods are safe for concurrent use.
type Allocator struct {
	cfg allocatorConfig

	mu    sync.RWMutex
	pools map[int]*Pool
}

// NewAllocator returns an allocator with default size classes
// (256 B to 16 MiB, 64 slabs per class).
func NewAllocator(opts ...AllocatorOption) *Allocator {
	cfg := allocatorConfig{
		minClass:     defaultMinClass,
		maxClass:     defaultMaxClass,
		slabsPerPool: defaultSlabsPerPool,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.minClass = roundPow2(cfg.minClass)
	cfg.maxClass = roundPow2(cfg.maxClass)

	return &Allocator{
		cfg:   cfg,
		pools: make(map[int]*Pool),
	}
}

func roundPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// classFor returns the slab size serving n bytes, or 0 when n is too large.
func (a *Allocator) classFor(n int) int {
	c := roundPow2(n)
	if c < a.cfg.minClass {
		c = a.cfg.minClass
	}
	if c > a.cfg.maxClass {
		return 0
	}
	return c
}

// Pool returns the pool serving requests of n bytes, creating it if needed.
// It returns nil when n exceeds the largest size class.
func (a *Allocator) Pool(n int) *Pool {
	class := a.classFor(n)
	if class == 0 {
		return nil
	}

	a.mu.RLock()
	p, ok := a.pools[class]
	a.mu.RUnlock()
	if ok {
		return p
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pools[class]; ok {
		return p
	}
	// class and slabsPerPool are validated above, so NewPool cannot fail.
	p, _ = NewPool(class, a.cfg.slabsPerPool, a.cfg.poolOpts...)
	a.pools[class] = p
	return p
}

// Stats returns a snapshot of every pool keyed by slab size.
func (a *Allocator) Stats() map[int]PoolStats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[int]PoolStats, len(a.pools))
	for class, p := range a.pools {
		out[class] = p.Stats()
	}
	return out
}

// Close closes every pool and forgets them. Buffers still rented are dropped
// when disposed.
func (a *Allocator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for class, p := range a.pools {
		p.Close()
		delete(a.pools, class)
	}
}

// Allocate rents an owner of length elements from the matching size class.
// The contents are whatever the previous renter left behind.
func Allocate[T any](a *Allocator, length int) (*Owner[T], error) {
	n, err := byteLen[T](length)
	if err != nil {
		return nil, err
	}
	p := a.Pool(n)
	if p == nil {
		s := &Slab{data: make([]byte, n), transient: true}
		return &Owner[T]{l: newLease(s, nil), length: length}, nil
	}
	return Rent[T](p, length)
}

// AllocateClean is Allocate with the view zeroed.
func AllocateClean[T any](a *Allocator, length int) (*Owner[T], error) {
	o, err := Allocate[T](a, length)
	if err != nil {
		return nil, err
	}
	raw, err := o.PinnableHandle()
	if err != nil {
		return nil, err
	}
	clear(raw)
	return o, nil
}

// AllocateFinalizable is Allocate for standalone rentals that may outlive
// any explicit scope.
func AllocateFinalizable[T any](a *Allocator, length int) (*Finalizable[T], error) {
	o, err := AllocateClean[T](a, length)
	if err != nil {
		return nil, err
	}
	return newFinalizable(o), nil
}
