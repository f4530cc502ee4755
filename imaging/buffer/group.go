package buffer

import (
	"runtime"
	"sync/atomic"
	"weak"
)

// Group owns a fixed set of equally sized buffers rented from one pool.
// Disposing the group returns every slab in one batch; a single GC cleanup
// covers the whole group instead of one per member.
type Group[T any] struct {
	members []*Owner[T]
	state   *groupState
	cleanup runtime.Cleanup
}

type groupState struct {
	leases []*lease
	pool   weak.Pointer[Pool]
	done   atomic.Bool
}

func (g *groupState) release() {
	if !g.done.CompareAndSwap(false, true) {
		return
	}
	slabs := make([]*Slab, 0, len(g.leases))
	for _, l := range g.leases {
		if r := l.detach(); r != nil {
			slabs = append(slabs, r.slab)
		}
	}
	if p := g.pool.Value(); p != nil && len(slabs) > 0 {
		_ = p.ReturnAll(slabs)
	}
}

// RentGroup rents count buffers of length elements each from p. On failure
// every slab rented so far goes back to the pool.
func RentGroup[T any](p *Pool, count, length int) (*Group[T], error) {
	members := make([]*Owner[T], 0, count)
	for range count {
		o, err := Rent[T](p, length)
		if err != nil {
			for _, m := range members {
				m.Dispose()
			}
			return nil, err
		}
		members = append(members, o)
	}

	state := &groupState{
		leases: make([]*lease, len(members)),
		pool:   weak.Make(p),
	}
	for i, m := range members {
		state.leases[i] = m.l
	}

	g := &Group[T]{members: members, state: state}
	g.cleanup = runtime.AddCleanup(g, func(s *groupState) { s.release() }, state)
	return g, nil
}

// Len returns the number of members.
func (g *Group[T]) Len() int {
	return len(g.members)
}

// Member returns the i-th buffer. Members must not be disposed individually;
// the group releases them.
func (g *Group[T]) Member(i int) *Owner[T] {
	return g.members[i]
}

// Dispose returns all slabs in one batch. Calls after the first are no-ops.
func (g *Group[T]) Dispose() {
	g.state.release()
	g.cleanup.Stop()
}
