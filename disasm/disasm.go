// Package disasm renders UM-32 platters — or a recorded opcode trace — as
// human-readable mnemonics. It has no bearing on execution; it exists to
// make self-modifying programs and the opcode_trace debug output
// legible.
package disasm

import (
	"fmt"
	"io"

	"github.com/um32vm/um32/internal/umi"
	"github.com/um32vm/um32/um"
)

var mnemonics = [...]string{
	"cmove", "aidx", "amend", "add", "mul", "div",
	"nand", "halt", "alloc", "abandon", "out", "in", "ldprog", "ldval",
}

// One formats a single platter as its mnemonic and operands, e.g.
// "add r0 r1 r2" or "ldval r3 65". Platters with an opcode field >= 14
// are rendered as "invalid <op>".
func One(p um.Platter) string {
	op := p >> 28
	if op >= 14 {
		return fmt.Sprintf("invalid %d", op)
	}
	if op == 13 {
		a := (p >> 25) & 0x7
		v := p & 0x1FFFFFF
		return fmt.Sprintf("%s r%d %d", mnemonics[op], a, v)
	}
	a := (p >> 6) & 0x7
	b := (p >> 3) & 0x7
	c := p & 0x7
	return fmt.Sprintf("%s r%d r%d r%d", mnemonics[op], a, b, c)
}

// Program writes a disassembly of every platter in img to w, one
// instruction per line prefixed with its index.
func Program(img []um.Platter, w io.Writer) error {
	ew := umi.NewErrWriter(w)
	for pc, p := range img {
		fmt.Fprintf(ew, "% 8d\t%s\n", pc, One(p))
		if ew.Err != nil {
			return ew.Err
		}
	}
	return ew.Err
}

// Trace reads an opcode-trace byte stream (one byte per executed
// opcode) from r and writes the corresponding mnemonic names,
// one per line, to w.
func Trace(r io.Reader, w io.Writer) error {
	ew := umi.NewErrWriter(w)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			name := "invalid"
			if int(b) < len(mnemonics) {
				name = mnemonics[b]
			}
			io.WriteString(ew, name)
			ew.WriteByte('\n')
			if ew.Err != nil {
				return ew.Err
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
