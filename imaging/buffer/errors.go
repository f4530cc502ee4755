package buffer

import "errors"

var (
	// ErrUseAfterRelease indicates access to a buffer that was already disposed.
	ErrUseAfterRelease = errors.New("buffer: use after release")
	// ErrForeignSlab indicates a slab returned to a pool that did not allocate it.
	ErrForeignSlab = errors.New("buffer: slab does not belong to this pool")
	// ErrSlabSizeMismatch indicates a slab whose length differs from the pool's slab size.
	ErrSlabSizeMismatch = errors.New("buffer: slab size mismatch")
	// ErrDoubleReturn indicates a slab that is not currently rented.
	ErrDoubleReturn = errors.New("buffer: slab returned twice")
	// ErrInvalidSize indicates a non-positive or oversized request.
	ErrInvalidSize = errors.New("buffer: invalid size")
	// ErrPointerElement indicates an element type that contains pointers.
	ErrPointerElement = errors.New("buffer: element type contains pointers")
)
