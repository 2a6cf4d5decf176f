package bytecode

import "encoding/binary"

// MaxConstants is the hard compile-time limit on a function's constant
// pool: constant operands are a single byte wide.
const MaxConstants = 256

// Chunk is an append-only bytecode buffer: a byte-code sequence, an
// indexable constant pool, and a parallel line map used for error
// reporting. Invariant: len(Code) == len(Lines).
type Chunk struct {
	Code      []byte
	Constants []Value
	Lines     []int
}

// WriteByte appends a single bytecode byte, recording the source line it
// came from.
func (c *Chunk) WriteByte(b byte, line int) int {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
	return len(c.Code) - 1
}

// WriteOp appends an opcode byte.
func (c *Chunk) WriteOp(op OpCode, line int) int {
	return c.WriteByte(byte(op), line)
}

// WriteShort appends a big-endian 16-bit operand, two bytes, both
// attributed to line.
func (c *Chunk) WriteShort(v uint16, line int) int {
	start := c.WriteByte(byte(v>>8), line)
	c.WriteByte(byte(v), line)
	return start
}

// AddConstant appends v to the constant pool and returns its index. Callers
// are responsible for enforcing the MaxConstants compile-time limit — the
// Chunk itself just grows.
func (c *Chunk) AddConstant(v Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// PatchJump backpatches the 16-bit operand of the jump instruction starting
// at offset (the byte right after the one-byte opcode) so that it resolves
// to the current end of the chunk: emit a placeholder, come back and fix
// it up once the jump target is known.
func (c *Chunk) PatchJump(offset int) {
	jump := len(c.Code) - offset - 2
	binary.BigEndian.PutUint16(c.Code[offset:offset+2], uint16(jump))
}

// ReadShort reads the big-endian 16-bit operand starting at offset.
func (c *Chunk) ReadShort(offset int) uint16 {
	return binary.BigEndian.Uint16(c.Code[offset : offset+2])
}
