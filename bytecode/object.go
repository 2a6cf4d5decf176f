package bytecode

// Obj is the interface implemented by every heap-allocated object variant.
// The unexported marker method closes the set to the five types defined in
// this file (String, Function, NativeFunction, Upvalue, Closure): a fixed
// tagged sum rather than open polymorphism. Go has no sum types, so a
// closed interface plus an embedded header is the idiomatic stand-in: every
// variant embeds ObjHeader for the GC bookkeeping (the intrusive
// all-objects link and the mark bit) every object needs.
type Obj interface {
	objHeader() *ObjHeader
	String() string
	isObj()
}

// ObjHeader is embedded by every object variant. Next chains every live
// object through the Heap's intrusive all-objects list (used by sweep);
// Marked is set and cleared by the tracing collector.
type ObjHeader struct {
	Next   Obj
	Marked bool
}

func (h *ObjHeader) objHeader() *ObjHeader { return h }
func (*ObjHeader) isObj()                  {}

// ObjString is an immutable, interned UTF-8 string plus its precomputed
// FNV-1a hash. Because the Heap interns every string (Heap.InternString),
// two ObjStrings with equal content are always the same pointer, so the VM
// can treat string equality as object identity (Equal, in value.go).
type ObjString struct {
	ObjHeader
	Chars string
	Hash  uint32
}

func (s *ObjString) String() string { return s.Chars }

// hashString computes the 32-bit FNV-1a hash used to key interned
// ObjStrings.
func hashString(s string) uint32 {
	var hash uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= 16777619
	}
	return hash
}

// ObjFunction is compiled code: a Chunk, its arity, how many upvalues its
// closures capture, and an optional name. The top-level script is a
// Function with Name == nil.
type ObjFunction struct {
	ObjHeader
	Name         *ObjString
	Arity        int
	UpvalueCount int
	Chunk        Chunk
}

func (f *ObjFunction) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return "<function: " + f.Name.Chars + ">"
}

// NativeFn is the signature every native function implements: it receives
// its arguments and returns a single Value. Natives must not allocate
// managed objects unless they keep them rooted for the duration of the
// call; clock never allocates.
type NativeFn func(args []Value) (Value, error)

// ObjNative wraps a host function pointer so it can be called like any
// other callable from Nilan code.
type ObjNative struct {
	ObjHeader
	Name string
	Fn   NativeFn
}

func (n *ObjNative) String() string { return "<native func>" }

// ObjUpvalue indirects a captured variable. While Open, Location points at a
// live slot on the VM's value stack and multiple Upvalues may share it,
// which is what makes closures over the same local actually share
// mutations. Once Closed, Location points at the Closed field inside this
// same object, which survives the stack frame that created it.
//
// OpenNext chains this Upvalue into the Heap's sorted open-upvalue list,
// separate from the all-objects list in ObjHeader.Next.
type ObjUpvalue struct {
	ObjHeader
	Location *Value
	Closed   Value
	OpenNext *ObjUpvalue

	// Slot is the VM value-stack index Location pointed at while this
	// upvalue was open. Go pointers can't be ordered, only compared for
	// equality, so the Heap's open-upvalue list (sorted by decreasing
	// stack slot) orders on this index instead of on Location itself.
	Slot int
}

func (u *ObjUpvalue) String() string { return "upvalue" }

// IsOpen reports whether this upvalue still points into the stack.
func (u *ObjUpvalue) IsOpen() bool { return u.Location != &u.Closed }

// Close copies the current value out of the stack slot into the upvalue's
// own storage and redirects Location at it, so the captured value survives
// the stack frame going away.
func (u *ObjUpvalue) Close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
}

// ObjClosure pairs a Function with the fixed-length vector of Upvalues it
// captured. A new Closure is allocated each time the Closure opcode runs.
type ObjClosure struct {
	ObjHeader
	Function *ObjFunction
	Upvalues []*ObjUpvalue
}

func (c *ObjClosure) String() string { return c.Function.String() }
