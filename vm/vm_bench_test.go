package vm_test

import (
	"io"
	"testing"

	"nilan/bytecode"
	"nilan/compiler"
	"nilan/vm"
)

// BenchmarkFib and BenchmarkEquality mirror the shape of the reference
// implementation's recursive-fib and repeated-equality micro-benchmarks,
// expressed as ordinary Go benchmarks rather than a separate harness.

func BenchmarkFib(b *testing.B) {
	source := `
fun fib(n) {
  if (n < 2) { return n; }
  return fib(n - 1) + fib(n - 2);
}
print fib(20);
`
	heap := bytecode.NewHeap()
	fn, errs := compiler.Compile(source, heap)
	if len(errs) > 0 {
		b.Fatalf("unexpected compile errors: %v", errs)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		machine := vm.New(io.Discard, heap)
		if err := machine.Interpret(fn); err != nil {
			b.Fatalf("unexpected runtime error: %v", err)
		}
	}
}

func BenchmarkEquality(b *testing.B) {
	source := `
var a = "same content";
var b = "same content";
var i = 0;
while (i < 10000) {
  if (a == b) { i = i + 1; } else { i = i + 1; }
}
`
	heap := bytecode.NewHeap()
	fn, errs := compiler.Compile(source, heap)
	if len(errs) > 0 {
		b.Fatalf("unexpected compile errors: %v", errs)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		machine := vm.New(io.Discard, heap)
		if err := machine.Interpret(fn); err != nil {
			b.Fatalf("unexpected runtime error: %v", err)
		}
	}
}
