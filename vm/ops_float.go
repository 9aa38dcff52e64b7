package vm

import "math"

// Float arithmetic. Registers carry floats as their raw IEEE-754 bit
// pattern in a uint64, same convention as every other register value.

func f64bits(f float64) uint64     { return math.Float64bits(f) }
func f64frombits(v uint64) float64 { return math.Float64frombits(v) }

func regBinaryF64(w *Worker, a uint64, f func(dst, src float64) float64) {
	d, s := Unpack2(a)
	dst := f64frombits(w.State.Regs[d])
	src := f64frombits(w.State.Regs[s])
	w.State.Regs[d] = f64bits(f(dst, src))
}

func regImmediateF64(w *Worker, a, b uint64, f func(dst, imm float64) float64) {
	d := Unpack1(a)
	dst := f64frombits(w.State.Regs[d])
	w.State.Regs[d] = f64bits(f(dst, f64frombits(b)))
}

func opAddF64(w *Worker, a, b uint64) {
	regBinaryF64(w, a, func(dst, src float64) float64 { return dst + src })
}

func opAddF64Immediate(w *Worker, a, b uint64) {
	regImmediateF64(w, a, b, func(dst, imm float64) float64 { return dst + imm })
}

func opSubF64(w *Worker, a, b uint64) {
	regBinaryF64(w, a, func(dst, src float64) float64 { return dst - src })
}

func opSubF64Immediate(w *Worker, a, b uint64) {
	regImmediateF64(w, a, b, func(dst, imm float64) float64 { return dst - imm })
}

func opMulF64(w *Worker, a, b uint64) {
	regBinaryF64(w, a, func(dst, src float64) float64 { return dst * src })
}

func opMulF64Immediate(w *Worker, a, b uint64) {
	regImmediateF64(w, a, b, func(dst, imm float64) float64 { return dst * imm })
}

func opDivF64(w *Worker, a, b uint64) {
	regBinaryF64(w, a, func(dst, src float64) float64 { return dst / src })
}

func opDivF64Immediate(w *Worker, a, b uint64) {
	regImmediateF64(w, a, b, func(dst, imm float64) float64 { return dst / imm })
}

func opAbsF64(w *Worker, a, b uint64) {
	d, s := Unpack2(a)
	w.State.Regs[d] = f64bits(math.Abs(f64frombits(w.State.Regs[s])))
}

func opNegF64(w *Worker, a, b uint64) {
	d, s := Unpack2(a)
	w.State.Regs[d] = f64bits(-f64frombits(w.State.Regs[s]))
}

func opToI64(w *Worker, a, b uint64) {
	d, s := Unpack2(a)
	w.State.Regs[d] = uint64(int64(f64frombits(w.State.Regs[s])))
}
