package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"nilan/bytecode"
	"nilan/compiler"
)

// disasmCmd compiles a source file and prints its disassembled bytecode,
// without executing it.
type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Compile a source file and print its bytecode" }
func (*disasmCmd) Usage() string {
	return `disasm <path>:
  Compile a Nilan source file and print its disassembled bytecode.
`
}
func (d *disasmCmd) SetFlags(f *flag.FlagSet) {}

func (d *disasmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	heap := bytecode.NewHeap()
	fn, errs := compiler.Compile(string(data), heap)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return subcommands.ExitFailure
	}

	fmt.Print(bytecode.Disassemble(&fn.Chunk, "<script>"))
	return subcommands.ExitSuccess
}
