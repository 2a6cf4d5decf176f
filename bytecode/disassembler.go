package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders chunk as a human-readable listing: a header line
// naming the chunk, then one line per instruction in the form
// "OFFSET LINE OP_NAME operand". Nested Function constants (emitted by
// OP_CLOSURE) are disassembled recursively and indented four spaces per
// nesting level, appearing inline right after their OP_CLOSURE instruction.
func Disassemble(chunk *Chunk, name string) string {
	var b strings.Builder
	disassembleAt(&b, chunk, name, 0)
	return b.String()
}

func disassembleAt(b *strings.Builder, chunk *Chunk, name string, depth int) {
	indent := strings.Repeat("    ", depth)
	fmt.Fprintf(b, "%s== %s ==\n", indent, name)

	previousLine := -1
	offset := 0
	for offset < len(chunk.Code) {
		next, line := disassembleInstruction(b, chunk, offset, previousLine, depth)
		offset = next
		previousLine = line
	}
}

// DisassembleInstruction renders exactly one instruction at offset and
// returns the offset of the following instruction. Exposed for tests.
func DisassembleInstruction(chunk *Chunk, offset int) (string, int) {
	var b strings.Builder
	next, _ := disassembleInstruction(&b, chunk, offset, -1, 0)
	return strings.TrimRight(b.String(), "\n"), next
}

func disassembleInstruction(b *strings.Builder, chunk *Chunk, offset int, previousLine int, depth int) (int, int) {
	indent := strings.Repeat("    ", depth)
	line := chunk.Lines[offset]

	fmt.Fprintf(b, "%s%04d ", indent, offset)
	if offset > 0 && line == previousLine {
		fmt.Fprint(b, "   | ")
	} else {
		fmt.Fprintf(b, "%4d ", line)
	}

	op := OpCode(chunk.Code[offset])
	switch op {
	case OpConstant, OpGetGlobal, OpDefineGlobal, OpSetGlobal:
		index := chunk.Code[offset+1]
		fmt.Fprintf(b, "%-16s %4d '%s'\n", op, index, chunk.Constants[index].String())
		return offset + 2, line

	case OpGetLocal, OpSetLocal, OpGetUpvalue, OpSetUpvalue, OpCall:
		slot := chunk.Code[offset+1]
		fmt.Fprintf(b, "%-16s %4d\n", op, slot)
		return offset + 2, line

	case OpJump, OpJumpIfFalse:
		jump := chunk.ReadShort(offset + 1)
		target := offset + 3 + int(jump)
		fmt.Fprintf(b, "%-16s %4d -> %d\n", op, offset, target)
		return offset + 3, line

	case OpLoop:
		jump := chunk.ReadShort(offset + 1)
		target := offset + 3 - int(jump)
		fmt.Fprintf(b, "%-16s %4d -> %d\n", op, offset, target)
		return offset + 3, line

	case OpClosure:
		index := chunk.Code[offset+1]
		fn := chunk.Constants[index].AsObject().(*ObjFunction)
		fmt.Fprintf(b, "%-16s %4d '%s'\n", op, index, fn.String())
		pos := offset + 2
		for i := 0; i < fn.UpvalueCount; i++ {
			isLocal := chunk.Code[pos]
			idx := chunk.Code[pos+1]
			kind := "upvalue"
			if isLocal == 1 {
				kind = "local"
			}
			fmt.Fprintf(b, "%s%04d      |                     %s %d\n", indent, pos, kind, idx)
			pos += 2
		}
		if fn.Chunk.Code != nil {
			disassembleAt(b, &fn.Chunk, fn.String(), depth+1)
		}
		return pos, line

	default:
		fmt.Fprintf(b, "%s\n", op)
		return offset + 1, line
	}
}
