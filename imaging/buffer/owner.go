package buffer

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"sync/atomic"
	"unsafe"
	"weak"
)

// rental is the immutable record of one slab handed to one owner.
type rental struct {
	slab *Slab
	pool weak.Pointer[Pool]
}

// lease holds the current rental. Swapping it to nil is the single point at
// which ownership of the slab ends, so release is idempotent and race-free.
type lease struct {
	state atomic.Pointer[rental]
}

func newLease(s *Slab, p *Pool) *lease {
	r := &rental{slab: s}
	if p != nil {
		r.pool = weak.Make(p)
	}
	l := &lease{}
	l.state.Store(r)
	return l
}

// release returns the slab to its pool if the pool is still alive.
func (l *lease) release() {
	r := l.state.Swap(nil)
	if r == nil {
		return
	}
	if p := r.pool.Value(); p != nil {
		// Only a rental produced by p can reach here, so Return cannot
		// reject it.
		_ = p.Return(r.slab)
	}
}

// detach ends the lease without returning the slab and hands the rental to
// the caller.
func (l *lease) detach() *rental {
	return l.state.Swap(nil)
}

func (l *lease) slab() (*Slab, error) {
	r := l.state.Load()
	if r == nil {
		return nil, ErrUseAfterRelease
	}
	return r.slab, nil
}

// Owner is a disposable typed view over a rented slab. T must not contain
// pointers; Rent and Allocate reject such types with ErrPointerElement.
//
// Exactly one Owner refers to a rental. The owner does not keep the pool
// alive: if the pool has been reclaimed by the time Dispose runs, the slab is
// dropped.
type Owner[T any] struct {
	l      *lease
	length int
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// pointerFree caches hasPointers per element type.
var pointerFree sync.Map // reflect.Type -> bool

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	}
	return true
}

func checkElem[T any]() error {
	t := reflect.TypeFor[T]()
	ok, cached := pointerFree.Load(t)
	if !cached {
		ok = !hasPointers(t)
		pointerFree.Store(t, ok)
	}
	if !ok.(bool) {
		return fmt.Errorf("%w: %v", ErrPointerElement, t)
	}
	return nil
}

func byteLen[T any](length int) (int, error) {
	if err := checkElem[T](); err != nil {
		return 0, err
	}
	size := elemSize[T]()
	if length <= 0 || size == 0 || length > math.MaxInt/size {
		return 0, fmt.Errorf("%w: %d elements of %d bytes", ErrInvalidSize, length, size)
	}
	return length * size, nil
}

// Rent takes a slab from p and wraps it as an Owner of length elements.
func Rent[T any](p *Pool, length int) (*Owner[T], error) {
	n, err := byteLen[T](length)
	if err != nil {
		return nil, err
	}
	s, err := p.Rent(n)
	if err != nil {
		return nil, err
	}
	return &Owner[T]{l: newLease(s, p), length: length}, nil
}

// Len returns the number of elements in the view.
func (o *Owner[T]) Len() int {
	return o.length
}

// View returns the slab reinterpreted as length elements of T. It fails
// with ErrUseAfterRelease once the owner has been disposed or marked
// released.
func (o *Owner[T]) View() ([]T, error) {
	s, err := o.l.slab()
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(s.data))), o.length), nil
}

// Dispose returns the slab to its pool. Calls after the first are no-ops.
func (o *Owner[T]) Dispose() {
	o.l.release()
}

// MarkReleased ends ownership without returning the slab. Aggregate owners
// use it after returning all of their slabs in one batch.
func (o *Owner[T]) MarkReleased() {
	o.l.detach()
}

// Released reports whether the owner has been disposed or marked released.
func (o *Owner[T]) Released() bool {
	return o.l.state.Load() == nil
}

// PinnableHandle returns the raw slab storage for interop with code that
// needs the underlying bytes. The slice is only valid until Dispose.
func (o *Owner[T]) PinnableHandle() ([]byte, error) {
	s, err := o.l.slab()
	if err != nil {
		return nil, err
	}
	return s.data, nil
}
