package bytecode

import "testing"

func TestInternStringReturnsSamePointer(t *testing.T) {
	h := NewHeap()
	a := h.InternString("hello", nil)
	b := h.InternString("hello", nil)
	if a != b {
		t.Errorf("InternString returned distinct objects for equal content")
	}
	c := h.InternString("world", nil)
	if a == c {
		t.Errorf("InternString returned the same object for different content")
	}
}

func TestCaptureUpvalueSharesSameSlot(t *testing.T) {
	h := NewHeap()
	v := Number(1)
	a := h.CaptureUpvalue(&v, 2, nil)
	b := h.CaptureUpvalue(&v, 2, nil)
	if a != b {
		t.Errorf("CaptureUpvalue allocated two upvalues for the same open slot")
	}
}

func TestCaptureUpvalueOrdersBySlotDescending(t *testing.T) {
	h := NewHeap()
	v1, v2, v3 := Number(1), Number(2), Number(3)
	h.CaptureUpvalue(&v1, 1, nil)
	h.CaptureUpvalue(&v3, 5, nil)
	h.CaptureUpvalue(&v2, 3, nil)

	var slots []int
	for up := h.openUpvalues; up != nil; up = up.OpenNext {
		slots = append(slots, up.Slot)
	}
	want := []int{5, 3, 1}
	if len(slots) != len(want) {
		t.Fatalf("open upvalue count - got: %d, want: %d", len(slots), len(want))
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot order[%d] - got: %d, want: %d", i, slots[i], want[i])
		}
	}
}

func TestCloseUpvaluesClosesFromSlotUp(t *testing.T) {
	h := NewHeap()
	v1, v2 := Number(10), Number(20)
	low := h.CaptureUpvalue(&v1, 1, nil)
	high := h.CaptureUpvalue(&v2, 4, nil)

	h.CloseUpvalues(3)

	if low.IsOpen() {
		t.Errorf("slot below threshold should remain open")
	}
	if high.IsOpen() {
		t.Errorf("slot at/above threshold should be closed")
	}
	if h.openUpvalues != nil {
		t.Errorf("open upvalue list should be empty after closing everything from the base up")
	}
}

func TestCloseUpvaluesLeavesLowerSlotsOpen(t *testing.T) {
	h := NewHeap()
	v1, v2 := Number(10), Number(20)
	low := h.CaptureUpvalue(&v1, 0, nil)
	h.CaptureUpvalue(&v2, 4, nil)

	h.CloseUpvalues(3)

	if !low.IsOpen() {
		t.Errorf("slot below threshold should remain open")
	}
	if h.openUpvalues != low {
		t.Errorf("remaining open list should contain only the untouched upvalue")
	}
}

func TestCompilerRootStack(t *testing.T) {
	h := NewHeap()
	fn := &ObjFunction{}
	h.PushCompilerRoot(fn)
	if len(h.compilerRoots) != 1 {
		t.Fatalf("PushCompilerRoot did not register root")
	}
	h.PopCompilerRoot()
	if len(h.compilerRoots) != 0 {
		t.Errorf("PopCompilerRoot did not remove root")
	}
}
