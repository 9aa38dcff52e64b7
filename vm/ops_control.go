package vm

// Control flow. PC has already been advanced to the fall-through address
// by the dispatch loop before any of these run (see dispatch.go); a taken
// branch overwrites it, a not-taken conditional jump simply does nothing
// and keeps the fall-through value dispatch.go already installed.

func opJump(w *Worker, a, b uint64) {
	dst := Unpack1(a)
	w.State.PC = w.State.Regs[dst] + b
}

func condJump(w *Worker, a, b uint64, take func(x, y uint64) bool) {
	addrReg, aReg, bReg := Unpack3(a)
	if take(w.State.Regs[aReg], w.State.Regs[bReg]) {
		w.State.PC = w.State.Regs[addrReg] + b
	}
}

func opEqJump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return x == y })
}

func opNeqJump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return x != y })
}

func opLtU64Jump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return x < y })
}

func opLteU64Jump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return x <= y })
}

func opGtU64Jump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return x > y })
}

func opGteU64Jump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return x >= y })
}

func opLtI64Jump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return int64(x) < int64(y) })
}

func opLteI64Jump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return int64(x) <= int64(y) })
}

func opGtI64Jump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return int64(x) > int64(y) })
}

func opGteI64Jump(w *Worker, a, b uint64) {
	condJump(w, a, b, func(x, y uint64) bool { return int64(x) >= int64(y) })
}

// opCall pushes the fall-through (pc, now_call_index) pair dispatch.go has
// already computed for PC, then jumps into function a at instruction b
// (the pre-decoder always emits b == 0: functions always start at their
// first instruction).
func opCall(w *Worker, a, b uint64) {
	w.State.PushFrame(w.State.PC, w.State.NowCallIndex)
	w.State.NowCallIndex = int(a)
	w.State.PC = b
}

// opRet pops the most recent call frame and resumes there. An empty call
// stack is the spec's call-stack-underflow fatal condition.
func opRet(w *Worker, a, b uint64) {
	frame, ok := w.State.PopFrame()
	if !ok {
		fatalf("call stack underflow on RET")
	}
	w.State.NowCallIndex = frame.CallIndex
	w.State.PC = frame.PC
}
