package bytecode

// approxSize gives the GC's bytesAllocated counter something to grow on.
// The real memory is owned and reclaimed by the Go runtime; this is just
// bookkeeping for deciding when to run a collection, not a real allocator.
func approxSize(o Obj) int {
	switch v := o.(type) {
	case *ObjString:
		return 32 + len(v.Chars)
	case *ObjFunction:
		return 64
	case *ObjNative:
		return 32
	case *ObjUpvalue:
		return 24
	case *ObjClosure:
		return 24 + 8*len(v.Upvalues)
	}
	return 16
}

const (
	initialGCThreshold = 1 << 10 // 1 KiB of simulated allocation before the first collection
	gcGrowFactor       = 2
)

// Heap owns every heap-allocated Object: it allocates them, interns
// strings, keeps the intrusive all-objects list the sweeper walks, keeps
// the sorted open-upvalue list, and runs the tracing mark-sweep collector.
type Heap struct {
	objects Obj // head of the intrusive all-objects list (ObjHeader.Next chains it)
	strings map[string]*ObjString

	openUpvalues *ObjUpvalue

	bytesAllocated int
	nextGC         int

	// compilerRoots holds the Function currently being compiled by every
	// open compilation context. These aren't reachable from the VM stack
	// or globals (compilation hasn't produced a runnable value yet), so
	// without this they'd be collected out from under the compiler
	// mid-compile.
	compilerRoots []*ObjFunction

	gray []Obj

	// Allocations and Collections are exposed for tests that verify GC
	// behavior by instrumenting allocator counts rather than timing.
	Allocations int
	Collections int
}

// NewHeap creates an empty Heap ready to allocate.
func NewHeap() *Heap {
	return &Heap{
		strings: make(map[string]*ObjString),
		nextGC:  initialGCThreshold,
	}
}

func (h *Heap) register(o Obj) {
	o.objHeader().Next = h.objects
	h.objects = o
	h.bytesAllocated += approxSize(o)
	h.Allocations++
}

// InternString returns the canonical *ObjString for s, allocating one the
// first time s is seen and returning the existing object on every
// subsequent call: calling InternString twice with equal content always
// returns the same pointer.
func (h *Heap) InternString(s string, markRoots RootMarker) *ObjString {
	if existing, ok := h.strings[s]; ok {
		return existing
	}
	h.maybeCollect(markRoots)
	obj := &ObjString{Chars: s, Hash: hashString(s)}
	h.register(obj)
	h.strings[s] = obj
	return obj
}

// NewFunction allocates an empty Function object. Its Chunk is filled in by
// the compiler as it emits code.
func (h *Heap) NewFunction(markRoots RootMarker) *ObjFunction {
	h.maybeCollect(markRoots)
	fn := &ObjFunction{}
	h.register(fn)
	return fn
}

// NewNative allocates a native function wrapper.
func (h *Heap) NewNative(name string, fn NativeFn, markRoots RootMarker) *ObjNative {
	h.maybeCollect(markRoots)
	native := &ObjNative{Name: name, Fn: fn}
	h.register(native)
	return native
}

// NewClosure allocates a Closure over function with numUpvalues empty
// upvalue slots, to be filled in by the VM's OP_CLOSURE handler.
func (h *Heap) NewClosure(function *ObjFunction, markRoots RootMarker) *ObjClosure {
	h.maybeCollect(markRoots)
	closure := &ObjClosure{Function: function, Upvalues: make([]*ObjUpvalue, function.UpvalueCount)}
	h.register(closure)
	return closure
}

// CaptureUpvalue returns the open upvalue for the stack slot at index slot
// (whose current value lives at *location), reusing an existing open
// upvalue for that slot if one is already live, so that multiple closures
// over the same local observe each other's writes.
func (h *Heap) CaptureUpvalue(location *Value, slot int, markRoots RootMarker) *ObjUpvalue {
	var prev *ObjUpvalue
	cur := h.openUpvalues
	for cur != nil && cur.Slot > slot {
		prev = cur
		cur = cur.OpenNext
	}
	if cur != nil && cur.Slot == slot {
		return cur
	}

	up := &ObjUpvalue{Location: location, Slot: slot, OpenNext: cur}
	h.register(up)
	if prev == nil {
		h.openUpvalues = up
	} else {
		prev.OpenNext = up
	}
	h.maybeCollect(markRoots)
	return up
}

// CloseUpvalues closes every open upvalue whose slot is >= fromSlot,
// copying its value out of the stack and removing it from the open list.
// Called on CloseUpvalue (block exit) and on Return.
func (h *Heap) CloseUpvalues(fromSlot int) {
	for h.openUpvalues != nil && h.openUpvalues.Slot >= fromSlot {
		up := h.openUpvalues
		up.Close()
		h.openUpvalues = up.OpenNext
		up.OpenNext = nil
	}
}

// PushCompilerRoot registers fn as a GC root for the duration of its
// compilation context.
func (h *Heap) PushCompilerRoot(fn *ObjFunction) {
	h.compilerRoots = append(h.compilerRoots, fn)
}

// PopCompilerRoot unregisters the most recently pushed compiler root, once
// that function compilation context has finished (the resulting Function
// is by then reachable through its enclosing Chunk's constant pool, or
// about to be handed to the VM at the top level).
func (h *Heap) PopCompilerRoot() {
	h.compilerRoots = h.compilerRoots[:len(h.compilerRoots)-1]
}
