package vm

// VM control opcodes rewrite the worker's function-table snapshot from the
// shared CodeImage. The execution core does not implement the decode
// policy itself (spec.md §1 places the lazy-decode code manager out of
// scope); these two opcodes only invoke CodeImage's published hooks and
// install whatever snapshot comes back.

// opGetDecode requests a targeted re-decode. decode_id travels in a;
// caller_index and depth are packed into the two halves of b since the
// dispatch convention only carries two operand words.
func opGetDecode(w *Worker, a, b uint64) {
	callerIndex := int(b >> 32)
	depth := int(uint32(b))
	w.FunctionTable = w.Image.Refresh(a, callerIndex, depth)
}

// opGetDecoded installs the code image's current snapshot outright.
func opGetDecoded(w *Worker, a, b uint64) {
	w.FunctionTable = w.Image.Snapshot()
}
