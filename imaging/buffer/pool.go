package buffer

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Slab is a fixed-length block of bytes handed out by a Pool.
//
// A slab records the id of the pool that allocated it rather than a pointer,
// so holding a slab never keeps its pool alive.
type Slab struct {
	data      []byte
	poolID    uint64
	transient bool
	out       bool // rented and not yet returned; guarded by the pool mutex
}

// Bytes returns the slab storage.
func (s *Slab) Bytes() []byte {
	return s.data
}

// Len returns the slab length in bytes.
func (s *Slab) Len() int {
	return len(s.data)
}

// Transient reports whether the slab was allocated past the pool capacity.
// Transient slabs are dropped instead of being put on the free list.
func (s *Slab) Transient() bool {
	return s.transient
}

// PoolStats is a snapshot of pool accounting.
type PoolStats struct {
	SlabSize  int
	Capacity  int
	Allocated int   // slabs owned by the pool
	Available int   // slabs on the free list
	Rented    int64 // slabs currently handed out, transient ones included
	Transient int64 // transient slabs handed out since creation
}

var nextPoolID atomic.Uint64

// Pool is a bounded free list of equally sized slabs. All methods are safe
// for concurrent use.
//
// The pool owns at most Capacity slabs. When the free list is empty and the
// capacity is exhausted, Rent falls back to a transient slab that is not
// tracked and is discarded on Return. Rent never blocks.
type Pool struct {
	id       uint64
	slabSize int
	capacity int
	clear    bool

	mu        sync.Mutex
	free      []*Slab
	allocated int
	closed    bool

	rented    atomic.Int64
	transient atomic.Int64
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithClearOnReturn zeroes slabs when they go back on the free list.
func WithClearOnReturn() PoolOption {
	return func(p *Pool) {
		p.clear = true
	}
}

// NewPool returns a pool of slabSize-byte slabs that retains at most capacity
// slabs.
func NewPool(slabSize, capacity int, opts ...PoolOption) (*Pool, error) {
	if slabSize <= 0 {
		return nil, fmt.Errorf("%w: slab size %d", ErrInvalidSize, slabSize)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidSize, capacity)
	}

	p := &Pool{
		id:       nextPoolID.Add(1),
		slabSize: slabSize,
		capacity: capacity,
		free:     make([]*Slab, 0, capacity),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// SlabSize returns the length of every slab in bytes.
func (p *Pool) SlabSize() int {
	return p.slabSize
}

// Capacity returns the maximum number of slabs the pool retains.
func (p *Pool) Capacity() int {
	return p.capacity
}

// Rent returns a slab able to hold size bytes. The slab always has the
// pool's slab size; size only has to fit in it.
func (p *Pool) Rent(size int) (*Slab, error) {
	if size <= 0 || size > p.slabSize {
		return nil, fmt.Errorf("%w: request %d, slab size %d", ErrInvalidSize, size, p.slabSize)
	}

	p.mu.Lock()
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		s.out = true
		p.mu.Unlock()
		p.rented.Add(1)
		return s, nil
	}
	pooled := !p.closed && p.allocated < p.capacity
	if pooled {
		p.allocated++
	}
	p.mu.Unlock()

	s := &Slab{
		data:      make([]byte, p.slabSize),
		poolID:    p.id,
		transient: !pooled,
		out:       true,
	}
	p.rented.Add(1)
	if !pooled {
		p.transient.Add(1)
	}
	return s, nil
}

// Return puts s back on the free list. It fails fast on slabs from another
// pool, slabs of the wrong size and slabs that are not currently rented.
// Transient slabs and slabs returned after Close are dropped.
func (p *Pool) Return(s *Slab) error {
	if err := p.check(s); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.putLocked(s)
}

// ReturnAll returns a batch of slabs under a single lock acquisition. Every
// slab is validated before any is put back, so a rejected batch leaves the
// pool unchanged.
func (p *Pool) ReturnAll(slabs []*Slab) error {
	for _, s := range slabs {
		if err := p.check(s); err != nil {
			return err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	seen := make(map[*Slab]struct{}, len(slabs))
	for _, s := range slabs {
		if _, dup := seen[s]; dup || !s.out {
			return ErrDoubleReturn
		}
		seen[s] = struct{}{}
	}
	for _, s := range slabs {
		if err := p.putLocked(s); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pool) check(s *Slab) error {
	if s == nil || s.poolID != p.id {
		return ErrForeignSlab
	}
	if len(s.data) != p.slabSize {
		return fmt.Errorf("%w: got %d, want %d", ErrSlabSizeMismatch, len(s.data), p.slabSize)
	}
	return nil
}

func (p *Pool) putLocked(s *Slab) error {
	if !s.out {
		return ErrDoubleReturn
	}
	s.out = false
	p.rented.Add(-1)
	if s.transient {
		return nil
	}
	if p.closed {
		p.allocated--
		return nil
	}
	if p.clear {
		clear(s.data)
	}
	p.free = append(p.free, s)
	return nil
}

// Close drops the free list. Slabs returned afterwards are discarded and
// further rentals are transient.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.allocated -= len(p.free)
	clear(p.free)
	p.free = p.free[:0]
	p.closed = true
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	allocated, available := p.allocated, len(p.free)
	p.mu.Unlock()

	return PoolStats{
		SlabSize:  p.slabSize,
		Capacity:  p.capacity,
		Allocated: allocated,
		Available: available,
		Rented:    p.rented.Load(),
		Transient: p.transient.Load(),
	}
}
