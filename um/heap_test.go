package um

import "testing"

func TestHeapHandleCount(t *testing.T) {
	h := NewHeap([]Platter{0}, false)
	if got := h.HandleCount(); got != 1 {
		t.Fatalf("HandleCount() = %d, want 1 (array 0 only)", got)
	}
	h1 := h.Allocate(1)
	h.Allocate(1)
	if got := h.HandleCount(); got != 3 {
		t.Fatalf("HandleCount() = %d, want 3", got)
	}
	if err := h.Abandon(h1); err != nil {
		t.Fatal(err)
	}
	if got := h.HandleCount(); got != 2 {
		t.Fatalf("HandleCount() = %d, want 2 after abandoning one handle", got)
	}
	h.Allocate(1)
	if got := h.HandleCount(); got != 3 {
		t.Fatalf("HandleCount() = %d, want 3 after reusing the freed handle", got)
	}
}

func TestHeapAllocateZeroed(t *testing.T) {
	h := NewHeap([]Platter{0}, false)
	handle := h.Allocate(4)
	if handle == 0 {
		t.Fatalf("Allocate returned reserved handle 0")
	}
	for idx := Platter(0); idx < 4; idx++ {
		v, err := h.Load(handle, idx)
		if err != nil {
			t.Fatalf("Load(%d, %d): %v", handle, idx, err)
		}
		if v != 0 {
			t.Errorf("index %d = %d, want 0", idx, v)
		}
	}
}

func TestHeapAllocationReuseLIFO(t *testing.T) {
	h := NewHeap([]Platter{0}, false)
	h1 := h.Allocate(1)
	h2 := h.Allocate(1)
	if err := h.Abandon(h1); err != nil {
		t.Fatal(err)
	}
	if err := h.Abandon(h2); err != nil {
		t.Fatal(err)
	}
	h3 := h.Allocate(1)
	h4 := h.Allocate(1)
	if h3 != h2 {
		t.Errorf("h3 = %d, want %d (LIFO reuse of h2)", h3, h2)
	}
	if h4 != h1 {
		t.Errorf("h4 = %d, want %d (LIFO reuse of h1)", h4, h1)
	}
}

func TestHeapAllocationReuseIsZeroed(t *testing.T) {
	h := NewHeap([]Platter{0}, false)
	handle := h.Allocate(2)
	if err := h.Store(handle, 0, 42); err != nil {
		t.Fatal(err)
	}
	if err := h.Abandon(handle); err != nil {
		t.Fatal(err)
	}
	reused := h.Allocate(2)
	if reused != handle {
		t.Fatalf("reused = %d, want %d", reused, handle)
	}
	v, err := h.Load(reused, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Errorf("reused array index 0 = %d, want 0 (abandon must clear contents)", v)
	}
}

func TestHeapAbandonHandleZero(t *testing.T) {
	h := NewHeap([]Platter{0}, false)
	if err := h.Abandon(0); err == nil {
		t.Fatal("Abandon(0) succeeded, want a RuntimeError")
	}
}

func TestHeapAbandonUseAfterFree(t *testing.T) {
	h := NewHeap([]Platter{0}, false)
	handle := h.Allocate(1)
	if err := h.Abandon(handle); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Load(handle, 0); err == nil {
		t.Fatal("Load on abandoned handle succeeded, want an error")
	}
}

func TestHeapCopyIntoProgramIsolation(t *testing.T) {
	for _, cow := range []bool{false, true} {
		h := NewHeap([]Platter{0xAA}, cow)
		handle := h.Allocate(1)
		if err := h.Store(handle, 0, 0xBB); err != nil {
			t.Fatal(err)
		}
		if err := h.CopyIntoProgram(handle); err != nil {
			t.Fatal(err)
		}
		v0, err := h.Load(0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if v0 != 0xBB {
			t.Fatalf("cow=%v: array 0 index 0 = %#x, want 0xbb", cow, v0)
		}
		// Mutate the source array; array 0 must not observe it.
		if err := h.Store(handle, 0, 0xCC); err != nil {
			t.Fatal(err)
		}
		v0, err = h.Load(0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if v0 != 0xBB {
			t.Errorf("cow=%v: array 0 index 0 changed to %#x after mutating source, want 0xbb", cow, v0)
		}
		// And the reverse: mutate array 0, source must be unaffected.
		if err := h.Store(0, 0, 0xDD); err != nil {
			t.Fatal(err)
		}
		vh, err := h.Load(handle, 0)
		if err != nil {
			t.Fatal(err)
		}
		if vh != 0xCC {
			t.Errorf("cow=%v: source array changed to %#x after mutating array 0, want 0xcc", cow, vh)
		}
	}
}

func TestHeapCopyIntoProgramHandleZeroNoop(t *testing.T) {
	h := NewHeap([]Platter{1, 2, 3}, false)
	if err := h.CopyIntoProgram(0); err != nil {
		t.Fatal(err)
	}
	v, err := h.Load(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 2 {
		t.Errorf("array 0 index 1 = %d, want 2 (no-op expected)", v)
	}
}
