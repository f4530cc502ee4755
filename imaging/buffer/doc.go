// Package buffer provides pooled, disposable storage for pixel and scratch
// buffers.
//
// A [Pool] hands out fixed-size byte [Slab]s from a mutex-guarded free list.
// An [Owner] is a typed, disposable view over one rented slab; it refers back
// to its pool through a weak pointer, so a buffer that outlives its pool is
// simply dropped on Dispose. [Finalizable] adds a GC cleanup for standalone
// rentals that might never be disposed explicitly, and [Group] manages many
// owners with a single bulk return and a single cleanup.
//
// An [Allocator] owns one pool per power-of-two size class and is the usual
// entry point:
//
//	alloc := buffer.NewAllocator()
//	row, err := buffer.Allocate[float64](alloc, 1024)
//	if err != nil {
//		return err
//	}
//	defer row.Dispose()
//
//	samples, err := row.View()
//
// Element types must be fixed-size and must not contain pointers.
package buffer
