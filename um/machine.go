package um

import (
	"io"

	"github.com/um32vm/um32/internal/umi"
)

// Instance is a single UM-32 virtual machine: eight registers, an
// execution finger into array 0, and a heap of handle-addressed arrays.
// An Instance is not safe for concurrent use.
type Instance struct {
	Registers [8]Platter
	Finger    int
	Heap      *Heap

	insCount int64
	halted   bool

	cow           bool
	branchPredict bool
	input         *stickyEOFReader
	output        ByteWriter
	trace         *umi.ErrWriter
}

// Option configures an Instance at construction time, in the functional
// options style.
type Option func(*Instance)

// CopyOnWrite selects the heap's array storage strategy. When enabled,
// load_program shares array 0's new backing with the source array instead
// of deep-copying it, deferring the copy until either side is mutated.
// Observable behavior is identical either way. Default: off.
func CopyOnWrite(enabled bool) Option {
	return func(i *Instance) { i.cow = enabled }
}

// BranchPrediction enables the speculative next-opcode fast path
// described below. It is a pure optimization hint: it must not
// (and does not) change observable behavior. Default: off.
func BranchPrediction(enabled bool) Option {
	return func(i *Instance) { i.branchPredict = enabled }
}

// Input sets the Host I/O Adapter's input side. Default: none — a VM
// executing the input opcode without an Input option always sees EOF.
func Input(r ByteReader) Option {
	return func(i *Instance) { i.input = &stickyEOFReader{r: r} }
}

// Output sets the Host I/O Adapter's output side. Default: none — a VM
// executing the output opcode without an Output option is a no-op.
func Output(w ByteWriter) Option {
	return func(i *Instance) { i.output = w }
}

// OpcodeTrace writes one byte per executed opcode to w, per the
// opcode-trace option. The disasm package can replay
// this stream back into a mnemonic listing.
func OpcodeTrace(w io.Writer) Option {
	return func(i *Instance) { i.trace = umi.NewErrWriter(w) }
}

// New creates an Instance with program installed as array 0. Options are
// applied before the heap is built, so CopyOnWrite must be passed here
// rather than set later.
func New(program Image, opts ...Option) *Instance {
	i := &Instance{}
	for _, opt := range opts {
		opt(i)
	}
	i.Heap = NewHeap([]Platter(program), i.cow)
	return i
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 { return i.insCount }

// Halted reports whether the halt opcode has been executed.
func (i *Instance) Halted() bool { return i.halted }

// Run drives the fetch-decode-dispatch loop until the halt opcode
// executes or a fatal error occurs. On halt, Run returns nil and Halted
// reports true.
func (i *Instance) Run() error {
	for !i.halted {
		if err := i.step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes exactly one instruction: the branch-prediction fast path
// is not taken, even when BranchPrediction is enabled. It is exported so
// tests and debug tooling can single-step an Instance.
func (i *Instance) Step() error {
	if i.halted {
		return nil
	}
	predict := i.branchPredict
	i.branchPredict = false
	err := i.step()
	i.branchPredict = predict
	return err
}

func (i *Instance) step() error {
	finger := i.Finger
	raw, err := i.Heap.Load(0, Platter(finger))
	if err != nil {
		return runtimeErrWrap(ErrInvalidHandle, finger, err)
	}
	i.Finger++
	op := decodeOp(raw)

	if i.trace != nil {
		if werr := i.trace.WriteByte(byte(op)); werr != nil {
			return runtimeErrWrap(ErrHostIO, finger, werr)
		}
	}

	if op == opLoadValue {
		a, v := decodeLoadValue(raw)
		i.Registers[a] = v
		i.insCount++
		return nil
	}

	a, b, c := decodeABC(raw)
	if err := i.dispatch(finger, op, a, b, c); err != nil {
		return err
	}
	i.insCount++

	if i.branchPredict {
		switch op {
		case opCondMove:
			return i.fastPath(opLoadProgram)
		case opArrayAmend:
			return i.fastPath(opLoadValue)
		}
	}
	return nil
}

// fastPath speculatively peeks the next instruction and, if it matches
// the predicted opcode, executes it immediately
// instead of returning control to Run's loop. This is purely an
// optimization: if the peek doesn't match, or fails, it is silently
// abandoned and the normal loop performs the real fetch on its next
// iteration, producing identical observable behavior either way.
func (i *Instance) fastPath(predicted opcode) error {
	if i.halted {
		return nil
	}
	raw, err := i.Heap.Load(0, Platter(i.Finger))
	if err != nil {
		return nil
	}
	if decodeOp(raw) != predicted {
		return nil
	}
	return i.step()
}

func (i *Instance) dispatch(finger int, op opcode, a, b, c uint8) error {
	r := &i.Registers
	switch op {
	case opCondMove:
		if r[c] != 0 {
			r[a] = r[b]
		}
	case opArrayIndex:
		v, err := i.Heap.Load(r[b], r[c])
		if err != nil {
			return wrapFatal(err, finger)
		}
		r[a] = v
	case opArrayAmend:
		if err := i.Heap.Store(r[a], r[b], r[c]); err != nil {
			return wrapFatal(err, finger)
		}
	case opAdd:
		r[a] = r[b] + r[c]
	case opMul:
		r[a] = r[b] * r[c]
	case opDiv:
		if r[c] == 0 {
			return runtimeErr(ErrDivisionByZero, finger)
		}
		r[a] = r[b] / r[c]
	case opNotAnd:
		r[a] = ^(r[b] & r[c])
	case opHalt:
		i.halted = true
	case opAlloc:
		r[b] = i.Heap.Allocate(r[c])
	case opAbandon:
		if err := i.Heap.Abandon(r[c]); err != nil {
			return wrapFatal(err, finger)
		}
	case opOutput:
		if r[c] > 255 {
			return runtimeErr(ErrOutputRange, finger)
		}
		if i.output != nil {
			if err := i.output.WriteByte(byte(r[c])); err != nil {
				return runtimeErrWrap(ErrHostIO, finger, err)
			}
		}
	case opInput:
		if i.input == nil {
			r[c] = eofPlatter
			break
		}
		b, eof, err := i.input.readByte()
		if err != nil {
			return runtimeErrWrap(ErrHostIO, finger, err)
		}
		if eof {
			r[c] = eofPlatter
		} else {
			r[c] = Platter(b)
		}
	case opLoadProgram:
		if err := i.Heap.CopyIntoProgram(r[b]); err != nil {
			return wrapFatal(err, finger)
		}
		i.Finger = int(r[c])
	default:
		return runtimeErr(ErrIllegalOpcode, finger)
	}
	return nil
}

// wrapFatal promotes an internal heap error (always an *ErrInvalidHandle
// RuntimeError with no Finger set) to one carrying the finger of the
// instruction that triggered it.
func wrapFatal(err error, finger int) error {
	if re, ok := err.(*RuntimeError); ok {
		return &RuntimeError{Kind: re.Kind, Finger: finger, cause: re.cause}
	}
	return runtimeErrWrap(ErrInvalidHandle, finger, err)
}
