package vm

import "math/bits"

// Bitwise and shift/rotate family. Shift and rotate counts are masked to
// the low 7 bits before use; math/bits.RotateLeft64 additionally reduces
// its count modulo 64 internally, so a masked count of 64 naturally behaves
// as a rotate by 0, which is the documented boundary behavior. Go's own
// shift operators are well defined for counts >= 64 (the result is all
// zero bits shifted out, or the sign bit smeared for a signed right shift),
// so SHL/SHR need no special-casing at all once the count is masked.
const shiftCountMask = 0x7F

func opAndU64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return dst & src })
}

func opAndU64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return dst & imm })
}

func opOrU64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return dst | src })
}

func opOrU64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return dst | imm })
}

func opXorU64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return dst ^ src })
}

func opXorU64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return dst ^ imm })
}

func opNotU64(w *Worker, a, b uint64) {
	regUnary(w, a, func(v uint64) uint64 { return ^v })
}

func opShlU64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return dst << (src & shiftCountMask) })
}

func opShlU64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return dst << (imm & shiftCountMask) })
}

func opShlI64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return dst << (src & shiftCountMask) })
}

func opShlI64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return dst << (imm & shiftCountMask) })
}

func opShrU64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return dst >> (src & shiftCountMask) })
}

func opShrU64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return dst >> (imm & shiftCountMask) })
}

func opShrI64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 {
		return uint64(int64(dst) >> (src & shiftCountMask))
	})
}

func opShrI64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 {
		return uint64(int64(dst) >> (imm & shiftCountMask))
	})
}

func opRolU64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return bits.RotateLeft64(dst, int(src&shiftCountMask)) })
}

func opRolU64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return bits.RotateLeft64(dst, int(imm&shiftCountMask)) })
}

func opRolI64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return bits.RotateLeft64(dst, int(src&shiftCountMask)) })
}

func opRolI64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return bits.RotateLeft64(dst, int(imm&shiftCountMask)) })
}

func opRorU64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return bits.RotateLeft64(dst, -int(src&shiftCountMask)) })
}

func opRorU64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return bits.RotateLeft64(dst, -int(imm&shiftCountMask)) })
}

func opRorI64(w *Worker, a, b uint64) {
	regBinary(w, a, func(dst, src uint64) uint64 { return bits.RotateLeft64(dst, -int(src&shiftCountMask)) })
}

func opRorI64Immediate(w *Worker, a, b uint64) {
	regImmediate(w, a, b, func(dst, imm uint64) uint64 { return bits.RotateLeft64(dst, -int(imm&shiftCountMask)) })
}

func opCountOnesU64(w *Worker, a, b uint64) {
	regUnary(w, a, func(v uint64) uint64 { return uint64(bits.OnesCount64(v)) })
}

func opCountZerosU64(w *Worker, a, b uint64) {
	regUnary(w, a, func(v uint64) uint64 { return uint64(64 - bits.OnesCount64(v)) })
}

func opTrailingZerosU64(w *Worker, a, b uint64) {
	regUnary(w, a, func(v uint64) uint64 { return uint64(bits.TrailingZeros64(v)) })
}
