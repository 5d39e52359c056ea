// Package umi holds small helpers shared by um and disasm that don't
// belong in the public API.
package umi

import (
	"io"

	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer and remembers the first error encountered.
// Once Err is set, subsequent writes are no-ops that keep returning the
// same error, so callers can chain a sequence of writes and check Err
// once at the end instead of after every call.
type ErrWriter struct {
	w   io.Writer
	Err error
}

// NewErrWriter returns a new ErrWriter wrapping w.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// WriteByte writes a single byte, tracking errors the same way Write does.
func (w *ErrWriter) WriteByte(c byte) error {
	_, err := w.Write([]byte{c})
	return err
}
