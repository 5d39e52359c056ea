package um

import (
	"io"

	"github.com/pkg/errors"
)

// eofPlatter is the all-ones value the input opcode stores on EOF.
const eofPlatter Platter = 0xFFFFFFFF

// ByteReader is the narrow input side of the Host I/O Adapter: pull one
// byte at a time from the host, surfacing EOF as io.EOF. EOF is sticky —
// once returned, subsequent calls must keep returning it.
type ByteReader interface {
	ReadByte() (byte, error)
}

// ByteWriter is the narrow output side of the Host I/O Adapter: push one
// byte to the host. Implementations must make the byte visible promptly
// (in particular before halt); buffering internally is fine as long as
// Flush, if any, is called by the caller at halt.
type ByteWriter interface {
	WriteByte(c byte) error
}

// stickyEOFReader wraps a ByteReader so that once EOF has been observed,
// every subsequent read returns EOF again without touching the
// underlying reader.
type stickyEOFReader struct {
	r   ByteReader
	eof bool
}

func (s *stickyEOFReader) readByte() (byte, bool, error) {
	if s.eof {
		return 0, true, nil
	}
	b, err := s.r.ReadByte()
	if err == io.EOF {
		s.eof = true
		return 0, true, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "read byte")
	}
	return b, false, nil
}
