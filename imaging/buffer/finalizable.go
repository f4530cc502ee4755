package buffer

import "runtime"

// Finalizable is an Owner for standalone rentals that also releases its slab
// when it becomes unreachable without having been disposed.
//
// The GC cleanup runs the same idempotent release as Dispose, so the two can
// race safely. Callers still using a view must keep the Finalizable reachable
// (for example with runtime.KeepAlive) until they are done with it.
type Finalizable[T any] struct {
	owner   *Owner[T]
	cleanup runtime.Cleanup
}

// RentFinalizable is Rent with a GC cleanup attached.
func RentFinalizable[T any](p *Pool, length int) (*Finalizable[T], error) {
	o, err := Rent[T](p, length)
	if err != nil {
		return nil, err
	}
	return newFinalizable(o), nil
}

func newFinalizable[T any](o *Owner[T]) *Finalizable[T] {
	f := &Finalizable[T]{owner: o}
	// The cleanup argument is the lease, never f itself.
	f.cleanup = runtime.AddCleanup(f, func(l *lease) { l.release() }, o.l)
	return f
}

// Len returns the number of elements in the view.
func (f *Finalizable[T]) Len() int {
	return f.owner.Len()
}

// View returns the typed view, or ErrUseAfterRelease after disposal.
func (f *Finalizable[T]) View() ([]T, error) {
	return f.owner.View()
}

// Dispose releases the slab and cancels the pending cleanup.
func (f *Finalizable[T]) Dispose() {
	f.owner.Dispose()
	f.cleanup.Stop()
}

// MarkReleased ends ownership without returning the slab.
func (f *Finalizable[T]) MarkReleased() {
	f.owner.MarkReleased()
	f.cleanup.Stop()
}

// Released reports whether the buffer has been released.
func (f *Finalizable[T]) Released() bool {
	return f.owner.Released()
}

// PinnableHandle returns the raw slab storage.
func (f *Finalizable[T]) PinnableHandle() ([]byte, error) {
	return f.owner.PinnableHandle()
}
