package vm

import "fmt"

// Worker is one VM instance: its own state plus a worker-local snapshot of
// the function table. Workers never share registers or heaps; the only
// shared thing is the CodeImage each worker's snapshot was drawn from.
type Worker struct {
	ID            uint64
	State         *State
	FunctionTable []*Function
	Image         *CodeImage

	// ExitCode is set from register 0 when EXIT runs; embedders read it
	// after Run returns.
	ExitCode uint64
}

// NewWorker creates a worker positioned at function 0 (MAIN), PC 0, with a
// freshly initialized register file and heap.
func NewWorker(id uint64, image *CodeImage) *Worker {
	return &Worker{
		ID:            id,
		State:         NewState(),
		FunctionTable: image.Snapshot(),
		Image:         image,
	}
}

func (w *Worker) currentFunction() *Function {
	return w.FunctionTable[w.State.NowCallIndex]
}

// Run enters the dispatch loop at the worker's current function and PC and
// does not return until the PAUSE flag is observed. A small recover guard
// converts unexpected panics (a malformed jump target walking off the end
// of a function, for instance) into a fatal report instead of a raw Go
// stack trace. Unknown heap ids, division by zero and call-stack underflow
// already exit through fatalf before a panic would ever happen, so this is
// a backstop for other invariant violations, not the primary error path.
// Heap.Alloc has no failure check of its own: a size make cannot satisfy
// panics and lands here, and a real out-of-memory condition ends the
// process through the Go runtime instead.
func (w *Worker) Run() {
	defer w.recoverFault()

	for !w.State.Paused() {
		fn := w.currentFunction()
		pc := w.State.PC
		ins := fn.Instructions[pc]
		// PC is advanced before the handler runs, exactly like the
		// source's pc += 1 ahead of the big dispatch switch. Control-flow
		// handlers (JUMP/CALL/RET and the conditional jumps) overwrite
		// State.PC themselves when they take their branch; every other
		// handler leaves this pre-advance alone.
		w.State.PC = pc + 1
		ins.Op(w, ins.A, ins.B)
	}

	w.ExitCode = w.State.Regs[ZeroRegister]
}

func (w *Worker) recoverFault() {
	if r := recover(); r != nil {
		fatalf("worker %d faulted at function %q pc %d: %v", w.ID, w.currentFunctionName(), w.State.PC, r)
	}
}

func (w *Worker) currentFunctionName() string {
	if w.State.NowCallIndex < 0 || w.State.NowCallIndex >= len(w.FunctionTable) {
		return fmt.Sprintf("<index %d>", w.State.NowCallIndex)
	}
	return w.currentFunction().Name
}
