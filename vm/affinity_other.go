//go:build !linux

package vm

// pinCurrentThread is a no-op outside Linux: sched_setaffinity has no
// portable equivalent, and the spec's affinity policy is an optimization,
// not a correctness requirement.
func pinCurrentThread(index, total int) {}
