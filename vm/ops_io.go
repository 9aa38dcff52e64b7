package vm

import "fmt"

// PRINT_U64 writes the decimal value of its source register followed by a
// newline - the only handler in the whole catalogue that blocks on I/O.
func opPrintU64(w *Worker, a, b uint64) {
	src := Unpack1(a)
	fmt.Printf("%d\n", w.State.Regs[src])
}

// ALLOC allocates size_reg + add_size bytes (wrapping) and writes the new
// heap id into id_res_reg.
func opAlloc(w *Worker, a, b uint64) {
	sizeReg, idResReg := Unpack2(a)
	size := w.State.Regs[sizeReg] + b
	w.State.Regs[idResReg] = w.State.Heap.Alloc(size)
}

// REALLOC resizes the buffer named by id_reg to size_reg + add_size bytes
// (wrapping), keeping the same id.
func opRealloc(w *Worker, a, b uint64) {
	idReg, sizeReg := Unpack2(a)
	newSize := w.State.Regs[sizeReg] + b
	w.State.Heap.Realloc(w.State.Regs[idReg], newSize)
}

// DEALLOC releases the buffer named by id_reg.
func opDealloc(w *Worker, a, b uint64) {
	idReg := Unpack1(a)
	w.State.Heap.Dealloc(w.State.Regs[idReg])
}

// EXIT copies its source register into register 0 and sets PAUSE; the
// dispatch loop observes PAUSE at the top of its next iteration and stops
// before running another instruction. The demo programs in spec.md pass
// r0 itself as the source when they want exit code 0, since r0 holds zero
// unless the guest has written to it.
func opExit(w *Worker, a, b uint64) {
	src := Unpack1(a)
	w.State.Regs[ZeroRegister] = w.State.Regs[src]
	w.State.SetPaused()
}
