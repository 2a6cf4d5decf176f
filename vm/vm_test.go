package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"nilan/bytecode"
	"nilan/compiler"
	"nilan/vm"
)

func run(t *testing.T, source string) (string, error) {
	t.Helper()
	heap := bytecode.NewHeap()
	fn, errs := compiler.Compile(source, heap)
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors for %q: %v", source, errs)
	}
	var out bytes.Buffer
	machine := vm.New(&out, heap)
	err := machine.Interpret(fn)
	return out.String(), err
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out, err := run(t, "print 1 + 2 * 3;")
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "7.000000\n" {
		t.Errorf("output - got: %q, want: %q", out, "7.000000\n")
	}
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "foobar\n" {
		t.Errorf("output - got: %q, want: %q", out, "foobar\n")
	}
}

func TestInterpretGlobalVariableAssignment(t *testing.T) {
	out, err := run(t, "var x = 1; x = x + 1; print x;")
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "2.000000\n" {
		t.Errorf("output - got: %q, want: %q", out, "2.000000\n")
	}
}

func TestInterpretIfElse(t *testing.T) {
	out, err := run(t, `if (1 < 2) { print "yes"; } else { print "no"; }`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "yes\n" {
		t.Errorf("output - got: %q, want: %q", out, "yes\n")
	}
}

func TestInterpretWhileLoop(t *testing.T) {
	out, err := run(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	want := "0.000000\n1.000000\n2.000000\n"
	if out != want {
		t.Errorf("output - got: %q, want: %q", out, want)
	}
}

func TestInterpretForLoop(t *testing.T) {
	out, err := run(t, `
for (var i = 0; i < 3; i = i + 1) {
  print i;
}
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	want := "0.000000\n1.000000\n2.000000\n"
	if out != want {
		t.Errorf("output - got: %q, want: %q", out, want)
	}
}

func TestInterpretFunctionCallAndReturn(t *testing.T) {
	out, err := run(t, `
fun add(a, b) {
  return a + b;
}
print add(1, 2);
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "3.000000\n" {
		t.Errorf("output - got: %q, want: %q", out, "3.000000\n")
	}
}

// TestInterpretClosuresShareUpvalue covers a mutable capture that outlives
// its frame: the closure returned from makeCounter keeps the captured local
// alive, and each call sees the write made by the call before it.
func TestInterpretClosuresShareUpvalue(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    print count;
  }
  return increment;
}

var counter = makeCounter();
counter();
counter();
counter();
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	want := "1.000000\n2.000000\n3.000000\n"
	if out != want {
		t.Errorf("output - got: %q, want: %q", out, want)
	}
}

func TestInterpretRecursion(t *testing.T) {
	out, err := run(t, `
fun fib(n) {
  if (n < 2) { return n; }
  return fib(n - 1) + fib(n - 2);
}
print fib(8);
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "21.000000\n" {
		t.Errorf("output - got: %q, want: %q", out, "21.000000\n")
	}
}

func TestInterpretUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, err := run(t, "print x;")
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Undefined variable: 'x'.") {
		t.Errorf("error message - got: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "[line 1] in <script>") {
		t.Errorf("error trace - got: %q", err.Error())
	}
}

func TestInterpretArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `
fun f(a, b) { return a + b; }
f(1);
`)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Expected 2 arguments but got 1.") {
		t.Errorf("error message - got: %q", err.Error())
	}
}

func TestInterpretArithmeticOfNonNumbersIsRuntimeError(t *testing.T) {
	_, err := run(t, "print 1 + true;")
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Operands must be numbers.") {
		t.Errorf("error message - got: %q", err.Error())
	}
}

// --- exact end-to-end scenarios, wording and output pinned literally ---

func TestScenarioPrecedence(t *testing.T) {
	out, err := run(t, "print 2 + 3 * 4;")
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "14.000000\n" {
		t.Errorf("output - got: %q, want: %q", out, "14.000000\n")
	}
}

func TestScenarioSharedClosure(t *testing.T) {
	out, err := run(t, `
var f; var g;
{
  var local = "local";
  fun f_() { print local; local = "after f"; print local; }
  f = f_;
  fun g_() { print local; local = "after g"; print local; }
  g = g_;
}
f(); g();
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	want := "local\nafter f\nafter f\nafter g\n"
	if out != want {
		t.Errorf("output - got: %q, want: %q", out, want)
	}
}

func TestScenarioUndefinedGlobalTrace(t *testing.T) {
	_, err := run(t, `unknown = "x";`)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	want := "Undefined variable: 'unknown'.\n[line 1] in <script>\n"
	if err.Error() != want {
		t.Errorf("error - got: %q, want: %q", err.Error(), want)
	}
}

func TestScenarioArityMismatchTrace(t *testing.T) {
	_, err := run(t, `fun f(a,b){} f(1);`)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Expected 2 arguments but got 1.") {
		t.Errorf("error message - got: %q", err.Error())
	}
	if !strings.HasSuffix(strings.TrimRight(err.Error(), "\n"), "<script>") {
		t.Errorf("error trace should end in <script> - got: %q", err.Error())
	}
}

func TestScenarioArithmeticOfNonNumbers(t *testing.T) {
	_, err := run(t, `"1" - 1;`)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Operands must be numbers.") {
		t.Errorf("error message - got: %q", err.Error())
	}
}

func TestDefineNativeIsCallableFromSource(t *testing.T) {
	heap := bytecode.NewHeap()
	fn, errs := compiler.Compile(`print double(21);`, heap)
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	var out bytes.Buffer
	machine := vm.New(&out, heap)
	machine.DefineNative("double", func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.Number(args[0].AsNumber() * 2), nil
	})
	if err := machine.Interpret(fn); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out.String() != "42.000000\n" {
		t.Errorf("output - got: %q, want: %q", out.String(), "42.000000\n")
	}
}
