//go:build linux

package vm

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinCurrentThread locks the calling goroutine to its own OS thread and
// pins that thread to core (index mod NumCPU), per §4.7's "pin worker i to
// core i mod N" affinity policy.
func pinCurrentThread(index, total int) {
	runtime.LockOSThread()

	n := runtime.NumCPU()
	if n == 0 {
		n = 1
	}
	core := index % n

	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	_ = unix.SchedSetaffinity(0, &set)
}
