// Package vm implements the stack-based machine that executes compiled
// Nilan bytecode: the value stack, call frames, closure/upvalue handling,
// arithmetic and comparison dispatch, and the runtime error + stack-trace
// model.
package vm

import (
	"fmt"
	"io"

	"nilan/bytecode"
)

const (
	stackMax  = 64 * 1024
	framesMax = 64
)

// callFrame is one active function invocation: which Closure is running,
// where its instruction pointer is within that Closure's Function's
// Chunk, and the stack index at which its locals begin.
type callFrame struct {
	closure *bytecode.ObjClosure
	ip      int
	base    int
}

// VM is the single-threaded bytecode interpreter. Every mutation of the
// Heap during execution (allocating strings, capturing/closing upvalues)
// happens through vm.heap so that root-marking during GC always has a
// consistent view of the stack and frames.
type VM struct {
	stack    [stackMax]bytecode.Value
	stackTop int

	frames     [framesMax]callFrame
	frameCount int

	globals map[*bytecode.ObjString]bytecode.Value
	heap    *bytecode.Heap
	out     io.Writer
}

// New creates a VM that writes Print output to out and allocates through
// heap. Natives (including clock) must be registered separately via
// DefineNative.
func New(out io.Writer, heap *bytecode.Heap) *VM {
	return &VM{
		globals: make(map[*bytecode.ObjString]bytecode.Value),
		heap:    heap,
		out:     out,
	}
}

// DefineNative installs a host function as a global callable under name.
func (vm *VM) DefineNative(name string, fn bytecode.NativeFn) {
	native := vm.heap.NewNative(name, fn, vm.markRoots)
	key := vm.heap.InternString(name, vm.markRoots)
	vm.globals[key] = bytecode.FromObject(native)
}

// Interpret runs fn (the top-level script Function returned by
// compiler.Compile) to completion. It wraps fn in an initial Closure and
// calls it as if it were invoked with zero arguments.
func (vm *VM) Interpret(fn *bytecode.ObjFunction) error {
	vm.stackTop = 0
	vm.frameCount = 0

	closure := vm.heap.NewClosure(fn, vm.markRoots)
	vm.push(bytecode.FromObject(closure))
	if err := vm.callClosure(closure, 0); err != nil {
		return err
	}

	return vm.run()
}

// markRoots implements bytecode.RootMarker over this VM's live state: the
// stack (up to stackTop), every call frame's Closure, and the globals
// table (both its keys, themselves ObjStrings, and its values).
func (vm *VM) markRoots(mark func(bytecode.Value)) {
	for i := 0; i < vm.stackTop; i++ {
		mark(vm.stack[i])
	}
	for i := 0; i < vm.frameCount; i++ {
		mark(bytecode.FromObject(vm.frames[i].closure))
	}
	for key, value := range vm.globals {
		mark(bytecode.FromObject(key))
		mark(value)
	}
}

func (vm *VM) push(v bytecode.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() bytecode.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) bytecode.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) frame() *callFrame {
	return &vm.frames[vm.frameCount-1]
}

func (vm *VM) readByte() byte {
	f := vm.frame()
	b := f.closure.Function.Chunk.Code[f.ip]
	f.ip++
	return b
}

func (vm *VM) readShort() uint16 {
	f := vm.frame()
	v := f.closure.Function.Chunk.ReadShort(f.ip)
	f.ip += 2
	return v
}

func (vm *VM) readConstant() bytecode.Value {
	idx := vm.readByte()
	return vm.frame().closure.Function.Chunk.Constants[idx]
}

// callClosure pushes a new call frame for closure, assuming argCount
// argument values (plus the closure itself) are already sitting at the
// top of the stack.
func (vm *VM) callClosure(closure *bytecode.ObjClosure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError(fmt.Sprintf("Expected %d arguments but got %d.", closure.Function.Arity, argCount))
	}
	if vm.frameCount == framesMax {
		return vm.runtimeError("Stack overflow.")
	}
	vm.frames[vm.frameCount] = callFrame{
		closure: closure,
		ip:      0,
		base:    vm.stackTop - argCount - 1,
	}
	vm.frameCount++
	return nil
}

// callValue dispatches a Call opcode: callee is a Closure, a Native, or
// neither (a runtime error).
func (vm *VM) callValue(callee bytecode.Value, argCount int) error {
	if callee.IsObject() {
		switch obj := callee.AsObject().(type) {
		case *bytecode.ObjClosure:
			return vm.callClosure(obj, argCount)
		case *bytecode.ObjNative:
			args := make([]bytecode.Value, argCount)
			copy(args, vm.stack[vm.stackTop-argCount:vm.stackTop])
			result, err := obj.Fn(args)
			if err != nil {
				return vm.runtimeError(err.Error())
			}
			vm.stackTop -= argCount + 1
			vm.push(result)
			return nil
		}
	}
	return vm.runtimeError("Can only call functions and classes.")
}

// runtimeError builds a RuntimeError carrying the current call-stack
// trace, innermost frame first.
func (vm *VM) runtimeError(message string) error {
	trace := make([]string, 0, vm.frameCount)
	for i := vm.frameCount - 1; i >= 0; i-- {
		f := &vm.frames[i]
		line := f.closure.Function.Chunk.Lines[f.ip-1]
		name := "<script>"
		if f.closure.Function.Name != nil {
			name = f.closure.Function.String()
		}
		trace = append(trace, fmt.Sprintf("[line %d] in %s", line, name))
	}
	return RuntimeError{Message: message, Trace: trace}
}

// run executes the fetch-decode-dispatch loop until the outermost frame
// returns.
func (vm *VM) run() error {
	for {
		op := bytecode.OpCode(vm.readByte())
		switch op {
		case bytecode.OpConstant:
			vm.push(vm.readConstant())

		case bytecode.OpNil:
			vm.push(bytecode.Nil)
		case bytecode.OpTrue:
			vm.push(bytecode.Bool(true))
		case bytecode.OpFalse:
			vm.push(bytecode.Bool(false))
		case bytecode.OpPop:
			vm.pop()

		case bytecode.OpGetLocal:
			slot := vm.readByte()
			vm.push(vm.stack[vm.frame().base+int(slot)])
		case bytecode.OpSetLocal:
			slot := vm.readByte()
			vm.stack[vm.frame().base+int(slot)] = vm.peek(0)

		case bytecode.OpGetGlobal:
			name := vm.readConstant().AsObject().(*bytecode.ObjString)
			value, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError(fmt.Sprintf("Undefined variable: '%s'.", name.Chars))
			}
			vm.push(value)
		case bytecode.OpDefineGlobal:
			name := vm.readConstant().AsObject().(*bytecode.ObjString)
			vm.globals[name] = vm.peek(0)
			vm.pop()
		case bytecode.OpSetGlobal:
			name := vm.readConstant().AsObject().(*bytecode.ObjString)
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError(fmt.Sprintf("Undefined variable: '%s'.", name.Chars))
			}
			vm.globals[name] = vm.peek(0)

		case bytecode.OpGetUpvalue:
			slot := vm.readByte()
			vm.push(*vm.frame().closure.Upvalues[slot].Location)
		case bytecode.OpSetUpvalue:
			slot := vm.readByte()
			*vm.frame().closure.Upvalues[slot].Location = vm.peek(0)

		case bytecode.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(bytecode.Bool(bytecode.Equal(a, b)))
		case bytecode.OpGreater:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Bool(a > b) }); err != nil {
				return err
			}
		case bytecode.OpLess:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Bool(a < b) }); err != nil {
				return err
			}

		case bytecode.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case bytecode.OpSubtract:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Number(a - b) }); err != nil {
				return err
			}
		case bytecode.OpMultiply:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Number(a * b) }); err != nil {
				return err
			}
		case bytecode.OpDivide:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Number(a / b) }); err != nil {
				return err
			}

		case bytecode.OpNot:
			vm.push(bytecode.Bool(vm.pop().IsFalsey()))
		case bytecode.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(bytecode.Number(-vm.pop().AsNumber()))

		case bytecode.OpPrint:
			fmt.Fprintln(vm.out, vm.pop().String())

		case bytecode.OpJump:
			offset := vm.readShort()
			vm.frame().ip += int(offset)
		case bytecode.OpJumpIfFalse:
			offset := vm.readShort()
			if vm.peek(0).IsFalsey() {
				vm.frame().ip += int(offset)
			}
		case bytecode.OpLoop:
			offset := vm.readShort()
			vm.frame().ip -= int(offset)

		case bytecode.OpCall:
			argCount := int(vm.readByte())
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}

		case bytecode.OpClosure:
			fn := vm.readConstant().AsObject().(*bytecode.ObjFunction)
			closure := vm.heap.NewClosure(fn, vm.markRoots)
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte()
				index := int(vm.readByte())
				if isLocal == 1 {
					base := vm.frame().base
					closure.Upvalues[i] = vm.heap.CaptureUpvalue(&vm.stack[base+index], base+index, vm.markRoots)
				} else {
					closure.Upvalues[i] = vm.frame().closure.Upvalues[index]
				}
			}
			vm.push(bytecode.FromObject(closure))

		case bytecode.OpCloseUpvalue:
			vm.heap.CloseUpvalues(vm.stackTop - 1)
			vm.pop()

		case bytecode.OpReturn:
			result := vm.pop()
			finishedFrame := vm.frame()
			vm.heap.CloseUpvalues(finishedFrame.base)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return nil
			}
			vm.stackTop = finishedFrame.base
			vm.push(result)

		default:
			return vm.runtimeError(fmt.Sprintf("Unknown opcode %v.", op))
		}
	}
}

func (vm *VM) binaryNumberOp(f func(a, b float64) bytecode.Value) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	vm.push(f(a, b))
	return nil
}

// add implements the Add opcode's dual behavior: number+number or
// string+string (interned concatenation); anything else is a type error.
func (vm *VM) add() error {
	if vm.peek(0).IsNumber() && vm.peek(1).IsNumber() {
		b := vm.pop().AsNumber()
		a := vm.pop().AsNumber()
		vm.push(bytecode.Number(a + b))
		return nil
	}
	if vm.peek(0).IsString() && vm.peek(1).IsString() {
		b := vm.pop().AsString()
		a := vm.pop().AsString()
		vm.push(bytecode.FromObject(vm.heap.InternString(a+b, vm.markRoots)))
		return nil
	}
	return vm.runtimeError("Operands must be numbers.")
}
