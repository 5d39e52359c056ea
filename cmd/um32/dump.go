package main

import (
	"fmt"
	"io"

	"github.com/um32vm/um32/um"
)

// dumpVM writes the instance's registers, finger, heap-handle count, and
// instruction count to w when -debug is set and a run aborts on a fatal
// error.
func dumpVM(i *um.Instance, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "finger=%d instructions=%d handles=%d\n", i.Finger, i.InstructionCount(), i.Heap.HandleCount()); err != nil {
		return err
	}
	for n, v := range i.Registers {
		if _, err := fmt.Fprintf(w, "r%d=%d (0x%08x)\n", n, v, uint32(v)); err != nil {
			return err
		}
	}
	return nil
}
