package vm

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"
)

// Memory access. Effective address = base_of(*id_reg) + *addr_reg +
// immediate offset; none of it is bounds-checked against the guest's
// allocation (the guest is trusted, per spec.md §1 non-goals) so an
// out-of-range access panics and is converted to a fatal report by the
// dispatch loop's recover guard rather than silently corrupting memory.

func memOperands(w *Worker, a, b uint64) (buf []byte, addr uint64, dataReg byte) {
	idReg, addrReg, dReg := Unpack3(a)
	buf = w.State.Heap.BaseOf(w.State.Regs[idReg])
	addr = w.State.Regs[addrReg] + b
	dataReg = dReg
	return
}

func opLoadU64(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = binary.LittleEndian.Uint64(buf[addr:])
}

func opStoreU64(w *Worker, a, b uint64) {
	buf, addr, src := memOperands(w, a, b)
	binary.LittleEndian.PutUint64(buf[addr:], w.State.Regs[src])
}

func opLoadU32(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = uint64(binary.LittleEndian.Uint32(buf[addr:]))
}

func opStoreU32(w *Worker, a, b uint64) {
	buf, addr, src := memOperands(w, a, b)
	binary.LittleEndian.PutUint32(buf[addr:], uint32(w.State.Regs[src]))
}

func opLoadU16(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = uint64(binary.LittleEndian.Uint16(buf[addr:]))
}

func opStoreU16(w *Worker, a, b uint64) {
	buf, addr, src := memOperands(w, a, b)
	binary.LittleEndian.PutUint16(buf[addr:], uint16(w.State.Regs[src]))
}

func opLoadU8(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = uint64(buf[addr])
}

func opStoreU8(w *Worker, a, b uint64) {
	buf, addr, src := memOperands(w, a, b)
	buf[addr] = byte(w.State.Regs[src])
}

// Sign-extended loads place the sign-extended value into the destination
// register, bit-identical with its 64-bit two's-complement representation.
// The corresponding stores are bit-identical to their unsigned counterparts
// - truncation doesn't care about signedness - so they just delegate.

func opLoadI8(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = uint64(int64(int8(buf[addr])))
}

func opStoreI8(w *Worker, a, b uint64) { opStoreU8(w, a, b) }

func opLoadI16(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = uint64(int64(int16(binary.LittleEndian.Uint16(buf[addr:]))))
}

func opStoreI16(w *Worker, a, b uint64) { opStoreU16(w, a, b) }

func opLoadI32(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = uint64(int64(int32(binary.LittleEndian.Uint32(buf[addr:]))))
}

func opStoreI32(w *Worker, a, b uint64) { opStoreU32(w, a, b) }

func opLoadI64(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = binary.LittleEndian.Uint64(buf[addr:])
}

func opStoreI64(w *Worker, a, b uint64) { opStoreU64(w, a, b) }

// Atomics. u32/u64 widths use sync/atomic's lock-free primitives directly
// on a pointer into the heap buffer. sync/atomic exposes no 8 or 16-bit
// primitive (Go only guarantees lock-free atomics at 32 and 64 bits), so
// those two widths fall back to Heap.atomicMu - a single mutex shared by
// every narrow atomic op on that heap, coarser than per-address locking
// but still sequentially consistent, which is all the spec requires.

func ptr64(buf []byte, addr uint64) *uint64 {
	return (*uint64)(unsafe.Pointer(&buf[addr]))
}

func ptr32(buf []byte, addr uint64) *uint32 {
	return (*uint32)(unsafe.Pointer(&buf[addr]))
}

func opAtomicLoadU64(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = atomic.LoadUint64(ptr64(buf, addr))
}

func opAtomicStoreU64(w *Worker, a, b uint64) {
	buf, addr, src := memOperands(w, a, b)
	atomic.StoreUint64(ptr64(buf, addr), w.State.Regs[src])
}

func opAtomicLoadU32(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = uint64(atomic.LoadUint32(ptr32(buf, addr)))
}

func opAtomicStoreU32(w *Worker, a, b uint64) {
	buf, addr, src := memOperands(w, a, b)
	atomic.StoreUint32(ptr32(buf, addr), uint32(w.State.Regs[src]))
}

func opAtomicLoadU16(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Heap.atomicMu.Lock()
	w.State.Regs[dst] = uint64(binary.LittleEndian.Uint16(buf[addr:]))
	w.State.Heap.atomicMu.Unlock()
}

func opAtomicStoreU16(w *Worker, a, b uint64) {
	buf, addr, src := memOperands(w, a, b)
	w.State.Heap.atomicMu.Lock()
	binary.LittleEndian.PutUint16(buf[addr:], uint16(w.State.Regs[src]))
	w.State.Heap.atomicMu.Unlock()
}

func opAtomicLoadU8(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Heap.atomicMu.Lock()
	w.State.Regs[dst] = uint64(buf[addr])
	w.State.Heap.atomicMu.Unlock()
}

func opAtomicStoreU8(w *Worker, a, b uint64) {
	buf, addr, src := memOperands(w, a, b)
	w.State.Heap.atomicMu.Lock()
	buf[addr] = byte(w.State.Regs[src])
	w.State.Heap.atomicMu.Unlock()
}

// Signed atomic load/store reinterpret the same bit pattern; only loads
// sign-extend.

func opAtomicLoadI64(w *Worker, a, b uint64) { opAtomicLoadU64(w, a, b) }
func opAtomicStoreI64(w *Worker, a, b uint64) { opAtomicStoreU64(w, a, b) }

func opAtomicLoadI32(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Regs[dst] = uint64(int64(int32(atomic.LoadUint32(ptr32(buf, addr)))))
}
func opAtomicStoreI32(w *Worker, a, b uint64) { opAtomicStoreU32(w, a, b) }

func opAtomicLoadI16(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Heap.atomicMu.Lock()
	v := int16(binary.LittleEndian.Uint16(buf[addr:]))
	w.State.Heap.atomicMu.Unlock()
	w.State.Regs[dst] = uint64(int64(v))
}
func opAtomicStoreI16(w *Worker, a, b uint64) { opAtomicStoreU16(w, a, b) }

func opAtomicLoadI8(w *Worker, a, b uint64) {
	buf, addr, dst := memOperands(w, a, b)
	w.State.Heap.atomicMu.Lock()
	v := int8(buf[addr])
	w.State.Heap.atomicMu.Unlock()
	w.State.Regs[dst] = uint64(int64(v))
}
func opAtomicStoreI8(w *Worker, a, b uint64) { opAtomicStoreU8(w, a, b) }

// Atomic RMW: four packed registers, [result_reg, id_reg, addr_reg,
// src_reg]. result_reg receives the value the buffer held immediately
// before the operation - the usual fetch-and-op convention.

func rmwOperands(w *Worker, a uint64) (buf []byte, addr uint64, resultReg, srcReg byte) {
	resReg, idReg, addrReg, sReg := Unpack4(a)
	buf = w.State.Heap.BaseOf(w.State.Regs[idReg])
	addr = w.State.Regs[addrReg]
	return buf, addr, resReg, sReg
}

func opAtomicAddU64(w *Worker, a, b uint64) {
	buf, addr, res, src := rmwOperands(w, a)
	old := atomic.AddUint64(ptr64(buf, addr), w.State.Regs[src]) - w.State.Regs[src]
	w.State.Regs[res] = old
}

func opAtomicSubU64(w *Worker, a, b uint64) {
	buf, addr, res, src := rmwOperands(w, a)
	old := atomic.AddUint64(ptr64(buf, addr), -w.State.Regs[src]) + w.State.Regs[src]
	w.State.Regs[res] = old
}

func opAtomicAddU32(w *Worker, a, b uint64) {
	buf, addr, res, src := rmwOperands(w, a)
	delta := uint32(w.State.Regs[src])
	old := atomic.AddUint32(ptr32(buf, addr), delta) - delta
	w.State.Regs[res] = uint64(old)
}

func opAtomicSubU32(w *Worker, a, b uint64) {
	buf, addr, res, src := rmwOperands(w, a)
	delta := uint32(w.State.Regs[src])
	old := atomic.AddUint32(ptr32(buf, addr), -delta) + delta
	w.State.Regs[res] = uint64(old)
}

func narrowAtomicRMW(w *Worker, a uint64, width int, add bool) {
	buf, addr, res, src := rmwOperands(w, a)
	w.State.Heap.atomicMu.Lock()
	defer w.State.Heap.atomicMu.Unlock()
	switch width {
	case 1:
		old := buf[addr]
		delta := byte(w.State.Regs[src])
		if add {
			buf[addr] = old + delta
		} else {
			buf[addr] = old - delta
		}
		w.State.Regs[res] = uint64(old)
	case 2:
		old := binary.LittleEndian.Uint16(buf[addr:])
		delta := uint16(w.State.Regs[src])
		var nv uint16
		if add {
			nv = old + delta
		} else {
			nv = old - delta
		}
		binary.LittleEndian.PutUint16(buf[addr:], nv)
		w.State.Regs[res] = uint64(old)
	}
}

func opAtomicAddU16(w *Worker, a, b uint64) { narrowAtomicRMW(w, a, 2, true) }
func opAtomicSubU16(w *Worker, a, b uint64) { narrowAtomicRMW(w, a, 2, false) }
func opAtomicAddU8(w *Worker, a, b uint64)  { narrowAtomicRMW(w, a, 1, true) }
func opAtomicSubU8(w *Worker, a, b uint64)  { narrowAtomicRMW(w, a, 1, false) }

// Signed atomic RMW reuses the unsigned bit-level implementation: two's
// complement add/sub is the same operation regardless of signedness.

func opAtomicAddI64(w *Worker, a, b uint64) { opAtomicAddU64(w, a, b) }
func opAtomicSubI64(w *Worker, a, b uint64) { opAtomicSubU64(w, a, b) }
func opAtomicAddI32(w *Worker, a, b uint64) { opAtomicAddU32(w, a, b) }
func opAtomicSubI32(w *Worker, a, b uint64) { opAtomicSubU32(w, a, b) }
func opAtomicAddI16(w *Worker, a, b uint64) { narrowAtomicRMW(w, a, 2, true) }
func opAtomicSubI16(w *Worker, a, b uint64) { narrowAtomicRMW(w, a, 2, false) }
func opAtomicAddI8(w *Worker, a, b uint64)  { narrowAtomicRMW(w, a, 1, true) }
func opAtomicSubI8(w *Worker, a, b uint64)  { narrowAtomicRMW(w, a, 1, false) }
