package vm

// Register-to-register data movement. None of these validate which
// register index is targeted - slot 0 and slot 255 are guest conventions,
// not enforced invariants (spec.md §9, "register file semantics vs slot 0
// convention", option (b)).

func opMov(w *Worker, a, b uint64) {
	d, s := Unpack2(a)
	w.State.Regs[d] = w.State.Regs[s]
}

func opLoadU64Immediate(w *Worker, a, b uint64) {
	d := Unpack1(a)
	w.State.Regs[d] = b
}

func opSwap(w *Worker, a, b uint64) {
	x, y := Unpack2(a)
	w.State.Regs[x], w.State.Regs[y] = w.State.Regs[y], w.State.Regs[x]
}
