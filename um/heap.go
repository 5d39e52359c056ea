package um

// Heap owns the collection of heap arrays addressed by non-negative
// integer handles. Handle 0 is reserved for the executing program array
// and is never placed on the free list. Freed handles are reclaimed via a
// LIFO free list so that the next allocation reuses the most recently
// abandoned handle.
type Heap struct {
	arrays   []array // nil entry means the handle is on the free list
	freeList []Platter
	cow      bool
}

// NewHeap creates a Heap whose array 0 is program. If cow is true, arrays
// are backed by copy-on-write buffers (see cow.go); otherwise every array
// owns its storage outright.
func NewHeap(program []Platter, cow bool) *Heap {
	var a array
	if cow {
		a = newCOWArray(append([]Platter(nil), program...))
	} else {
		cp := make(plainArray, len(program))
		copy(cp, program)
		a = cp
	}
	return &Heap{arrays: []array{a}, cow: cow}
}

// Allocate returns a handle referring to a fresh array of size
// zero-platters, reusing the most recently abandoned handle if one is
// available. The returned handle is always nonzero.
func (h *Heap) Allocate(size Platter) Platter {
	a := newArray(int(size), h.cow)
	if n := len(h.freeList); n > 0 {
		handle := h.freeList[n-1]
		h.freeList = h.freeList[:n-1]
		h.arrays[handle] = a
		return handle
	}
	h.arrays = append(h.arrays, a)
	return Platter(len(h.arrays) - 1)
}

// Abandon releases the array at handle and pushes handle onto the free
// list. Handle 0 may never be abandoned.
func (h *Heap) Abandon(handle Platter) error {
	if handle == 0 {
		return runtimeErr(ErrInvalidHandle, -1)
	}
	if int(handle) >= len(h.arrays) || h.arrays[handle] == nil {
		return runtimeErr(ErrInvalidHandle, -1)
	}
	h.arrays[handle] = nil
	h.freeList = append(h.freeList, handle)
	return nil
}

// Load returns element index of the array at handle.
func (h *Heap) Load(handle, index Platter) (Platter, error) {
	a, err := h.live(handle)
	if err != nil {
		return 0, err
	}
	if int(index) >= a.len() {
		return 0, runtimeErr(ErrInvalidHandle, -1)
	}
	return a.at(index), nil
}

// Store writes value into element index of the array at handle.
func (h *Heap) Store(handle, index, value Platter) error {
	a, err := h.live(handle)
	if err != nil {
		return err
	}
	if int(index) >= a.len() {
		return runtimeErr(ErrInvalidHandle, -1)
	}
	a.set(index, value)
	return nil
}

// Length reports the array's length. None of the fourteen VM opcodes
// uses it.
func (h *Heap) Length(handle Platter) (int, error) {
	a, err := h.live(handle)
	if err != nil {
		return 0, err
	}
	return a.len(), nil
}

// HandleCount reports the number of live (non-abandoned) handles,
// including handle 0. Used by debug tooling to report heap pressure.
func (h *Heap) HandleCount() int {
	return len(h.arrays) - len(h.freeList)
}

// CopyIntoProgram replaces array 0 with a value-level copy of the array at
// handle. The source array is left intact and independent of the new
// array 0: subsequent amendments to either must not affect the other.
// When handle is 0, this is a no-op.
func (h *Heap) CopyIntoProgram(handle Platter) error {
	if handle == 0 {
		return nil
	}
	a, err := h.live(handle)
	if err != nil {
		return err
	}
	h.arrays[0] = a.snapshot()
	return nil
}

// Program returns the raw backing slice of array 0, valid until the next
// CopyIntoProgram or Store(0, ...) call that forces a uniquify.
func (h *Heap) Program() []Platter {
	return h.arrays[0].raw()
}

func (h *Heap) live(handle Platter) (array, error) {
	if int(handle) >= len(h.arrays) {
		return nil, runtimeErr(ErrInvalidHandle, -1)
	}
	a := h.arrays[handle]
	if a == nil {
		return nil, runtimeErr(ErrInvalidHandle, -1)
	}
	return a, nil
}
