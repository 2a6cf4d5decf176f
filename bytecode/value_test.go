package bytecode

import "testing"

func TestIsFalsey(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", Nil, true},
		{"false", Bool(false), true},
		{"true", Bool(true), false},
		{"zero", Number(0), false},
		{"string", FromObject(&ObjString{Chars: ""}), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFalsey(); got != tt.want {
			t.Errorf("%s: IsFalsey() - got: %v, want: %v", tt.name, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	s1 := &ObjString{Chars: "hi"}
	s2 := &ObjString{Chars: "hi"}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil==nil", Nil, Nil, true},
		{"bool==bool same", Bool(true), Bool(true), true},
		{"bool==bool diff", Bool(true), Bool(false), false},
		{"number==number", Number(1), Number(1), true},
		{"number!=number", Number(1), Number(2), false},
		{"nan!=nan", Number(nan()), Number(nan()), false},
		{"type mismatch", Number(0), Bool(false), false},
		{"same object pointer", FromObject(s1), FromObject(s1), true},
		{"distinct objects equal content", FromObject(s1), FromObject(s2), false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Equal() - got: %v, want: %v", tt.name, got, tt.want)
		}
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"nil", Nil, "nil"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"number", Number(3), "3.000000"},
		{"string", FromObject(&ObjString{Chars: "hello"}), "hello"},
		{"script function", FromObject(&ObjFunction{}), "<script>"},
		{"named function", FromObject(&ObjFunction{Name: &ObjString{Chars: "add"}}), "<function: add>"},
		{"native", FromObject(&ObjNative{Name: "clock"}), "<native func>"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%s: String() - got: %q, want: %q", tt.name, got, tt.want)
		}
	}
}

func TestValueStringSpecialNumbers(t *testing.T) {
	inf := Number(1)
	inf = Number(posInf())
	if got := inf.String(); got != "inf" {
		t.Errorf("+inf - got: %q, want: %q", got, "inf")
	}
	if got := Number(negInf()).String(); got != "-inf" {
		t.Errorf("-inf - got: %q, want: %q", got, "-inf")
	}
	if got := Number(nan()).String(); got != "nan" {
		t.Errorf("nan - got: %q, want: %q", got, "nan")
	}
}

func posInf() float64 {
	return 1 / zero()
}

func negInf() float64 {
	return -1 / zero()
}

func zero() float64 {
	var z float64
	return z
}
