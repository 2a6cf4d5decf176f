package bytecode

// OpCode identifies a single bytecode instruction. Every instruction is
// either operand-less, takes one inline operand byte (a local slot, arg
// count, constant index, or upvalue index), or takes a 16-bit inline short
// (jumps and loops).
type OpCode byte

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpGetLocal
	OpSetLocal
	OpGetGlobal
	OpDefineGlobal
	OpSetGlobal
	OpGetUpvalue
	OpSetUpvalue
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpJump
	OpJumpIfFalse
	OpLoop
	OpCall
	OpClosure
	OpCloseUpvalue
	OpReturn
)

// operandWidth is the number of inline operand bytes following the opcode
// byte itself; jump/loop targets encode as a 16-bit short, everything else
// that takes an operand takes a single byte (the constant-pool-over-256
// limit is exactly this single-byte addressing).
var operandWidth = map[OpCode]int{
	OpConstant:     1,
	OpNil:          0,
	OpTrue:         0,
	OpFalse:        0,
	OpPop:          0,
	OpGetLocal:     1,
	OpSetLocal:     1,
	OpGetGlobal:    1,
	OpDefineGlobal: 1,
	OpSetGlobal:    1,
	OpGetUpvalue:   1,
	OpSetUpvalue:   1,
	OpEqual:        0,
	OpGreater:      0,
	OpLess:         0,
	OpAdd:          0,
	OpSubtract:     0,
	OpMultiply:     0,
	OpDivide:       0,
	OpNot:          0,
	OpNegate:       0,
	OpPrint:        0,
	OpJump:         2,
	OpJumpIfFalse:  2,
	OpLoop:         2,
	OpCall:         1,
	// OpClosure's single-byte constant-index operand is followed by N
	// upvalue descriptor pairs, handled specially by both the compiler and
	// the disassembler rather than through this table.
	OpClosure:      1,
	OpCloseUpvalue: 0,
	OpReturn:       0,
}

var opcodeNames = map[OpCode]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpGetUpvalue:   "OP_GET_UPVALUE",
	OpSetUpvalue:   "OP_SET_UPVALUE",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpCall:         "OP_CALL",
	OpClosure:      "OP_CLOSURE",
	OpCloseUpvalue: "OP_CLOSE_UPVALUE",
	OpReturn:       "OP_RETURN",
}

func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}
