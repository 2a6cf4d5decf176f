package main

import (
	"time"

	"nilan/bytecode"
	"nilan/vm"
)

// registerNatives installs the host functions every Nilan program can call
// without a corresponding declaration.
func registerNatives(machine *vm.VM) {
	machine.DefineNative("clock", func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.Number(float64(time.Now().UnixNano()) / 1e9), nil
	})
}
