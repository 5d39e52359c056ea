package um

// cowBuffer is the shared, reference-counted payload behind a cowArray:
// a shared buffer duplicated only on first mutation after a share.
type cowBuffer struct {
	data []Platter
	refs int
}

// cowArray is a handle into a shared cowBuffer. Reads go straight to the
// shared buffer. Any mutation first calls uniquify, which copies the
// buffer if it has more than one referent so the mutation is invisible to
// sibling handles created by snapshot.
type cowArray struct {
	buf *cowBuffer
}

func newCOWArray(data []Platter) *cowArray {
	return &cowArray{buf: &cowBuffer{data: data, refs: 1}}
}

func (a *cowArray) len() int               { return len(a.buf.data) }
func (a *cowArray) at(idx Platter) Platter { return a.buf.data[idx] }

func (a *cowArray) set(idx, value Platter) {
	a.uniquify()
	a.buf.data[idx] = value
}

// uniquify gives the array sole ownership of its buffer, deep-copying it
// first if any other handle still shares it. This is the only place a
// COW array physically copies.
func (a *cowArray) uniquify() {
	if a.buf.refs <= 1 {
		return
	}
	a.buf.refs--
	cp := make([]Platter, len(a.buf.data))
	copy(cp, a.buf.data)
	a.buf = &cowBuffer{data: cp, refs: 1}
}

// snapshot bumps the reference count and returns a new handle sharing the
// same buffer: a pointer-level operation, not a copy. This is what makes
// load_program cheap under COW — copy_into_program becomes a share
// instead of a linear copy, deferred until either side mutates.
func (a *cowArray) snapshot() array {
	a.buf.refs++
	return &cowArray{buf: a.buf}
}

func (a *cowArray) raw() []Platter { return a.buf.data }
