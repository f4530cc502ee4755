package buffer

import (
	"errors"
	"sync"
	"testing"
)

func TestAllocatorSizeClasses(t *testing.T) {
	a := NewAllocator(WithSizeClasses(64, 1024))

	tests := []struct {
		n    int
		want int
	}{
		{1, 64},
		{64, 64},
		{65, 128},
		{1000, 1024},
		{1024, 1024},
		{1025, 0},
	}
	for _, tc := range tests {
		p := a.Pool(tc.n)
		switch {
		case tc.want == 0 && p != nil:
			t.Fatalf("Pool(%d) = %d-byte pool, want nil", tc.n, p.SlabSize())
		case tc.want != 0 && (p == nil || p.SlabSize() != tc.want):
			t.Fatalf("Pool(%d) = %v, want %d-byte pool", tc.n, p, tc.want)
		}
	}
	if a.Pool(60) != a.Pool(64) {
		t.Fatal("requests in the same class must share a pool")
	}
}

func TestAllocateReturnsToClassPool(t *testing.T) {
	a := NewAllocator(WithSizeClasses(64, 1024), WithSlabsPerPool(2))

	o, err := Allocate[float64](a, 20)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	o.Dispose()

	st, ok := a.Stats()[256]
	if !ok {
		t.Fatalf("Stats() = %v, want a 256-byte class", a.Stats())
	}
	if st.Available != 1 {
		t.Fatalf("Available = %d, want 1", st.Available)
	}
}

func TestAllocateLargeIsUnpooled(t *testing.T) {
	a := NewAllocator(WithSizeClasses(64, 128))

	o, err := Allocate[byte](a, 4096)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	v, err := o.View()
	if err != nil || len(v) != 4096 {
		t.Fatalf("View() = %d elements, %v; want 4096, nil", len(v), err)
	}
	o.Dispose()
	if _, err := o.View(); !errors.Is(err, ErrUseAfterRelease) {
		t.Fatalf("View() error = %v, want ErrUseAfterRelease", err)
	}
	if len(a.Stats()) != 0 {
		t.Fatalf("Stats() = %v, want no pools", a.Stats())
	}
}

func TestAllocateCleanZeroesReusedSlab(t *testing.T) {
	a := NewAllocator(WithSizeClasses(64, 64))

	o, _ := Allocate[byte](a, 64)
	v, _ := o.View()
	for i := range v {
		v[i] = 0xff
	}
	o.Dispose()

	o, err := AllocateClean[byte](a, 32)
	if err != nil {
		t.Fatalf("AllocateClean() error = %v", err)
	}
	v, _ = o.View()
	for i, b := range v {
		if b != 0 {
			t.Fatalf("View()[%d] = %#x, want 0", i, b)
		}
	}
}

func TestAllocateInvalidLength(t *testing.T) {
	a := NewAllocator()
	if _, err := Allocate[int32](a, 0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Allocate(0) error = %v, want ErrInvalidSize", err)
	}
	if _, err := Allocate[struct{}](a, 4); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Allocate(zero-size) error = %v, want ErrInvalidSize", err)
	}
	if _, err := Allocate[[16]byte](a, 1<<60+1); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Allocate(overflowing length) error = %v, want ErrInvalidSize", err)
	}
}

func TestRentOverflowingLength(t *testing.T) {
	p, err := NewPool(64, 1)
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	if _, err := Rent[[16]byte](p, 1<<60+1); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Rent(overflowing length) error = %v, want ErrInvalidSize", err)
	}
	if got := p.Stats().Rented; got != 0 {
		t.Fatalf("Rented = %d, want 0", got)
	}
}

func TestAllocateRejectsPointerElements(t *testing.T) {
	type withPointer struct {
		x   float64
		ref *int
	}
	a := NewAllocator()
	if _, err := Allocate[*int](a, 4); !errors.Is(err, ErrPointerElement) {
		t.Fatalf("Allocate[*int]() error = %v, want ErrPointerElement", err)
	}
	if _, err := Allocate[string](a, 4); !errors.Is(err, ErrPointerElement) {
		t.Fatalf("Allocate[string]() error = %v, want ErrPointerElement", err)
	}
	if _, err := Allocate[[2]withPointer](a, 4); !errors.Is(err, ErrPointerElement) {
		t.Fatalf("Allocate[[2]withPointer]() error = %v, want ErrPointerElement", err)
	}

	type plain struct {
		r, g, b, a uint8
		w          [2]float32
	}
	o, err := Allocate[plain](a, 4)
	if err != nil {
		t.Fatalf("Allocate[plain]() error = %v", err)
	}
	o.Dispose()
}

func TestAllocatorClose(t *testing.T) {
	a := NewAllocator(WithSizeClasses(64, 64))
	o, _ := Allocate[byte](a, 64)
	p := a.Pool(64)

	a.Close()
	o.Dispose()

	if st := p.Stats(); st.Available != 0 {
		t.Fatalf("Available = %d after Close, want 0", st.Available)
	}
	if a.Pool(64) == p {
		t.Fatal("Close should forget existing pools")
	}
}

func TestAllocatorConcurrentAllocate(t *testing.T) {
	a := NewAllocator(WithSizeClasses(64, 4096), WithSlabsPerPool(4))

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				o, err := Allocate[uint32](a, 16+(i+w)%512)
				if err != nil {
					t.Error(err)
					return
				}
				v, _ := o.View()
				v[0] = uint32(w)
				o.Dispose()
			}
		}()
	}
	wg.Wait()

	for class, st := range a.Stats() {
		if st.Rented != 0 {
			t.Fatalf("class %d: Rented = %d, want 0", class, st.Rented)
		}
		if st.Available > st.Capacity {
			t.Fatalf("class %d: Available = %d > Capacity %d", class, st.Available, st.Capacity)
		}
	}
}
