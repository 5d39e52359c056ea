package um

// Platter is the 32-bit machine word, the sole datum type of the VM. All
// arithmetic on platters wraps modulo 2^32; signedness is never observed.
type Platter uint32

// opcode is the 4-bit instruction tag in bits 28..31 of a platter.
type opcode uint8

const (
	opCondMove opcode = iota
	opArrayIndex
	opArrayAmend
	opAdd
	opMul
	opDiv
	opNotAnd
	opHalt
	opAlloc
	opAbandon
	opOutput
	opInput
	opLoadProgram
	opLoadValue
	opInvalid // anything >= 14
)

var opcodeNames = [...]string{
	"conditional_move",
	"array_index",
	"array_amendment",
	"addition",
	"multiplication",
	"division",
	"not_and",
	"halt",
	"allocation",
	"abandonment",
	"output",
	"input",
	"load_program",
	"orthography",
}

// String returns the name the original UM-32 specification gives this
// opcode, or "invalid" for values outside the 14 defined opcodes.
func (op opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "invalid"
}

// decodeOp extracts the opcode field (bits 28..31) of a platter.
func decodeOp(p Platter) opcode {
	op := opcode(p >> 28)
	if op > opLoadValue {
		return opInvalid
	}
	return op
}

// decodeABC extracts the three 3-bit register indices (bits 6..8, 3..5,
// 0..2) used by every opcode except load-value. Bits 9..27 are ignored,
// not rejected.
func decodeABC(p Platter) (a, b, c uint8) {
	a = uint8(p>>6) & 0x7
	b = uint8(p>>3) & 0x7
	c = uint8(p) & 0x7
	return
}

// decodeLoadValue extracts the register index (bits 25..27) and the
// 25-bit immediate (bits 0..24) used by the load-value opcode.
func decodeLoadValue(p Platter) (a uint8, v Platter) {
	a = uint8(p>>25) & 0x7
	v = p & 0x1FFFFFF
	return
}
