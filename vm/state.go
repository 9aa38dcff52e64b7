package vm

// Register file conventions: r0 starts at zero and r255 at the all-ones
// pattern, r254 is the sink register callers agree never to read. None of
// this is enforced - writes to r0 and r255 go through like any other (EXIT
// itself writes r0).
const (
	NumRegisters  = 256
	ZeroRegister  = 0
	SinkRegister  = 254
	OnesRegister  = 255
	onesConstant  = ^uint64(0)
	flagPauseBit  = uint32(1) << 0
	stackGrowStep = 64
)

// Registers is the fixed 256-slot register file.
type Registers [NumRegisters]uint64

// Frame is one call-stack entry: where to resume and which function to
// resume it in.
type Frame struct {
	PC        uint64
	CallIndex int
}

// State bundles everything that belongs to a single VM instance: its
// registers, its private heap, the program counter, the call stack, and the
// bit of status the dispatch loop watches to know when to stop.
type State struct {
	Regs         Registers
	Heap         *Heap
	PC           uint64
	CallStack    []Frame
	NowCallIndex int
	Flags        uint32
}

// NewState returns a freshly initialized VM state: zeroed registers except
// for the two hardwired constants, an empty call stack, and a fresh heap.
func NewState() *State {
	s := &State{
		Heap:      NewHeap(),
		CallStack: make([]Frame, 0, stackGrowStep),
	}
	s.Regs[ZeroRegister] = 0
	s.Regs[OnesRegister] = onesConstant
	return s
}

// Paused reports whether the PAUSE flag has been set, meaning the dispatch
// loop must not invoke another handler.
func (s *State) Paused() bool {
	return s.Flags&flagPauseBit != 0
}

// SetPaused sets the PAUSE flag. There is no corresponding clear: once a
// worker pauses it is done.
func (s *State) SetPaused() {
	s.Flags |= flagPauseBit
}

// PushFrame records a return site for a subsequent RET.
func (s *State) PushFrame(pc uint64, callIndex int) {
	s.CallStack = append(s.CallStack, Frame{PC: pc, CallIndex: callIndex})
}

// PopFrame removes and returns the most recent call frame. Callers must
// check ok; popping an empty stack is the spec's call-stack-underflow fatal
// condition and is handled by RET itself, not here.
func (s *State) PopFrame() (Frame, bool) {
	if len(s.CallStack) == 0 {
		return Frame{}, false
	}
	top := len(s.CallStack) - 1
	f := s.CallStack[top]
	s.CallStack = s.CallStack[:top]
	return f, true
}
