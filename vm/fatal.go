package vm

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// The execution core trusts the guest completely: it does not validate
// operand values before using them. A handful of conditions are explicitly
// unrecoverable - an unknown heap id, integer division by zero, call-stack
// underflow on RET - and fatalf is how each of them is reported, as are
// panics caught by Worker.recoverFault. Heap allocation failure is not
// checked here (see Worker.Run). There is no guest-visible signal; the
// process ends immediately, mirroring the source's unconditional
// process::exit calls.
var fatalErr = color.New(color.FgRed, color.Bold)

// osExit is a var, not a direct os.Exit call, so tests can substitute a
// panicking stand-in and observe a fatal condition without killing the test
// binary.
var osExit = os.Exit

func fatalf(format string, args ...any) {
	fatalErr.Fprintln(os.Stderr, "fatal:", fmt.Sprintf(format, args...))
	osExit(1)
}
