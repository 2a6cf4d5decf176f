package bytecode

// RootMarker is supplied by the owner of a Heap (the VM, in practice) and
// called back during collection to mark every root it owns directly: live
// stack slots, active call frames' Closures, and the globals table. These
// sit alongside the Heap-owned roots (open upvalues, in-progress compiler
// Functions) that Collect marks on its own.
//
// Allocation-site calls to maybeCollect accept a nil RootMarker (the
// compiler and unit tests pass nil). A collection triggered through such a
// call marks only the Heap-owned roots before sweeping.
type RootMarker func(mark func(Value))

// Collect runs one stop-the-world mark-sweep cycle: markRoots (VM-owned
// roots) plus the Heap's own roots (open upvalues, compiler roots) are
// marked, the gray worklist is traced to a fixed point, then every
// unreached object is swept from the all-objects list and, if it was an
// interned string, from the intern table.
func (h *Heap) Collect(markRoots RootMarker) {
	h.Collections++

	if markRoots != nil {
		markRoots(h.markValue)
	}
	for up := h.openUpvalues; up != nil; up = up.OpenNext {
		h.markObject(up)
	}
	for _, fn := range h.compilerRoots {
		h.markObject(fn)
	}

	h.traceReferences()
	h.sweep()

	h.nextGC = h.bytesAllocated * gcGrowFactor
	if h.nextGC < initialGCThreshold {
		h.nextGC = initialGCThreshold
	}
}

func (h *Heap) maybeCollect(markRoots RootMarker) {
	if h.bytesAllocated > h.nextGC {
		h.Collect(markRoots)
	}
}

func (h *Heap) markValue(v Value) {
	if v.IsObject() {
		h.markObject(v.AsObject())
	}
}

func (h *Heap) markObject(o Obj) {
	if o == nil {
		return
	}
	header := o.objHeader()
	if header.Marked {
		return
	}
	header.Marked = true
	h.gray = append(h.gray, o)
}

// traceReferences drains the gray worklist, blackening each object by
// marking whatever it references in turn, until nothing new turns gray —
// the standard tricolor mark phase.
func (h *Heap) traceReferences() {
	for len(h.gray) > 0 {
		n := len(h.gray) - 1
		obj := h.gray[n]
		h.gray = h.gray[:n]
		h.blacken(obj)
	}
}

func (h *Heap) blacken(o Obj) {
	switch obj := o.(type) {
	case *ObjString, *ObjNative:
		// no outgoing references

	case *ObjUpvalue:
		h.markValue(obj.Closed)

	case *ObjFunction:
		h.markObject(obj.Name)
		for _, c := range obj.Chunk.Constants {
			h.markValue(c)
		}

	case *ObjClosure:
		h.markObject(obj.Function)
		for _, up := range obj.Upvalues {
			h.markObject(up)
		}
	}
}

// sweep walks the intrusive all-objects list, unlinking and discarding
// every object left unmarked, and clears the mark bit on every survivor so
// the next cycle starts white.
func (h *Heap) sweep() {
	var prev Obj
	obj := h.objects
	for obj != nil {
		header := obj.objHeader()
		next := header.Next
		if header.Marked {
			header.Marked = false
			prev = obj
			obj = next
			continue
		}

		if prev == nil {
			h.objects = next
		} else {
			prev.objHeader().Next = next
		}
		if s, ok := obj.(*ObjString); ok {
			delete(h.strings, s.Chars)
		}
		h.bytesAllocated -= approxSize(obj)
		obj = next
	}
}
