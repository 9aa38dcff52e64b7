package vm

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// pendingDecodeCacheSize bounds how many distinct in-flight decode_id
// requests CodeImage will dedupe at once; this is a storm-suppression
// mechanism, not a correctness requirement.
const pendingDecodeCacheSize = 256

// CodeImage is the process-wide owner of every installed function. It is
// the execution core's view of the "code manager" the spec places out of
// scope: this package only ever sees a function-table snapshot and the two
// re-fetch hooks below, never the policy that decides what to decode next.
type CodeImage struct {
	mu        sync.RWMutex
	functions []*Function

	// pending records the decode_id of each GET_DECODE request, keeping a
	// given id once however many workers ask for it. It does not change
	// what Refresh returns: every call still takes its own Snapshot.
	pending *lru.Cache
}

// NewCodeImage installs fns as the initial function table. Index 0 must be
// MAIN; the assembler guarantees that ordering before functions ever reach
// here.
func NewCodeImage(fns []*Function) *CodeImage {
	cache, err := lru.New(pendingDecodeCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// pendingDecodeCacheSize never is.
		panic(err)
	}
	return &CodeImage{functions: fns, pending: cache}
}

// Snapshot returns an immutable, self-contained view of the currently
// installed functions, safe to hand to a worker or read concurrently with
// InstallAll.
func (ci *CodeImage) Snapshot() []*Function {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	out := make([]*Function, len(ci.functions))
	copy(out, ci.functions)
	return out
}

// InstallAll appends newly decoded functions to the image. Existing
// *Function values are never touched, so any snapshot already handed out
// stays valid - only a fresh Snapshot call observes the new functions.
func (ci *CodeImage) InstallAll(fns []*Function) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.functions = append(ci.functions, fns...)
}

// Refresh services a GET_DECODE request: decodeID names the unit of code a
// worker wants re-fetched, callerIndex and depth describe where the request
// came from. The execution core does not implement a decode policy of its
// own - lazy decoding and hot-swapping are the out-of-scope code manager's
// job - so Refresh only records decodeID in the pending cache (once per id)
// and returns a fresh copy of the current snapshot, which is always a
// complete, usable function table even when no new function was added.
func (ci *CodeImage) Refresh(decodeID uint64, callerIndex, depth int) []*Function {
	if _, ok := ci.pending.Get(decodeID); !ok {
		ci.pending.Add(decodeID, struct{}{})
	}
	return ci.Snapshot()
}
