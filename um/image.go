package um

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Image is the initial contents of array 0: a sequence of big-endian
// 32-bit words with no header and no trailer.
type Image []Platter

// Load reads a program image from r. The byte stream must have a length
// that is a nonnegative multiple of 4; violating this is reported as a
// MalformedProgramError before any execution begins. Words are
// reinterpreted as big-endian platters.
func Load(r io.Reader) (Image, error) {
	raw, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, wrapMalformed(err, "read program image")
	}
	if len(raw)%4 != 0 {
		return nil, malformed("program length %d is not a multiple of 4", len(raw))
	}
	img := make(Image, len(raw)/4)
	for i := range img {
		img[i] = Platter(binary.BigEndian.Uint32(raw[i*4:]))
	}
	return img, nil
}
