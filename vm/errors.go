package vm

import "strings"

// RuntimeError is the VM's own error kind: a message plus the call-frame
// trace active when the error was detected, innermost frame first. Its
// Error() format is fixed: the message on its own line, then one
// `[line N] in <name>` line per frame.
type RuntimeError struct {
	Message string
	Trace   []string
}

func (e RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	b.WriteByte('\n')
	for _, frame := range e.Trace {
		b.WriteString(frame)
		b.WriteByte('\n')
	}
	return b.String()
}
