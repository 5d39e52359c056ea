package um

// array is the storage backing a single heap array. Two implementations
// exist: plainArray (a directly owned slice) and cowArray (a
// reference-counted, copy-on-write buffer). Both satisfy this interface so
// Heap can treat them identically.
type array interface {
	// len reports the number of platters in the array.
	len() int
	// at returns the platter at index idx. Caller guarantees bounds.
	at(idx Platter) Platter
	// set writes value at index idx, uniquifying storage first if needed.
	set(idx, value Platter)
	// snapshot returns an array sharing storage with the receiver until
	// the first mutation of either. For plainArray this is a deep copy
	// (no sharing is possible without reference counting).
	snapshot() array
	// raw returns the backing slice for bulk operations (loading a fresh
	// program image, tests). Mutating the result of raw may or may not
	// be reflected depending on the backend; callers that need a private
	// copy should use snapshot first.
	raw() []Platter
}

// newArray allocates a zero-filled array of the given size using the
// storage strategy selected by cow.
func newArray(size int, cow bool) array {
	if cow {
		return newCOWArray(make([]Platter, size))
	}
	return plainArray(make([]Platter, size))
}

// plainArray is the non-COW backend: every array is independently owned,
// and copying one always performs a full linear copy.
type plainArray []Platter

func (a plainArray) len() int                { return len(a) }
func (a plainArray) at(idx Platter) Platter  { return a[idx] }
func (a plainArray) set(idx, value Platter)  { a[idx] = value }
func (a plainArray) raw() []Platter          { return a }
func (a plainArray) snapshot() array {
	cp := make(plainArray, len(a))
	copy(cp, a)
	return cp
}
