package vm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// instructionFacts strips Instruction down to the fields that matter for a
// round-trip comparison - Op is a func value and not comparable by cmp.
type instructionFacts struct {
	Name string
	A, B uint64
}

func programFacts(t *testing.T, funcs []*Function) map[string][]instructionFacts {
	t.Helper()
	out := make(map[string][]instructionFacts, len(funcs))
	for _, f := range funcs {
		list := make([]instructionFacts, len(f.Instructions))
		for i, ins := range f.Instructions {
			list[i] = instructionFacts{Name: ins.Name, A: ins.A, B: ins.B}
		}
		out[f.Name] = list
	}
	return out
}

// assertRoundTrips parses src, re-emits it with FormatProgram, reparses the
// re-emitted text, and requires the two decoded programs to agree on every
// function's handler/operand sequence - spec.md §8's round-trip law.
func assertRoundTrips(t *testing.T, src string) []*Function {
	t.Helper()
	funcs, err := ParseSource(src)
	require.NoError(t, err)

	reemitted := FormatProgram(funcs)

	reparsed, err := ParseSource(reemitted)
	require.NoError(t, err)

	if diff := cmp.Diff(programFacts(t, funcs), programFacts(t, reparsed)); diff != "" {
		t.Fatalf("re-emitted program decoded differently (-want +got):\n%s\nre-emitted source:\n%s", diff, reemitted)
	}
	return reparsed
}

// TestAssemblerRoundTripsScenarioOneCounter is the spec's flagship demo
// (counter-to-billion via atomics, spec.md §8 scenario 1). It is also the
// program that exercises STORE_U64's abbreviated packed-register form
// (r3 r0 0, the last register given as a bare integer), so a round trip
// here covers both the mandatory demo and the packed-register heuristic.
func TestAssemblerRoundTripsScenarioOneCounter(t *testing.T) {
	src := `
MAIN
	CALL INIT
	ATOMIC_ADD_U64 r8 r3 r0 r1
	ATOMIC_LOAD_U64 r3 r0 r4
	LT_U64_JUMP r0 r4 r2 1
	PRINT_U64 r4
	EXIT 0

INIT
	ALLOC r0 r3 1
	ADD_U64_IMMEDIATE r1 1
	LOAD_U64_IMMEDIATE r2 1000000000
	STORE_U64 r3 r0 0
	RET
`
	reparsed := assertRoundTrips(t, src)
	require.Len(t, reparsed, 2)

	// STORE_U64 r3 r0 0 must decode as pack([3,0,0]) with a zero offset,
	// not as ErrNotEnoughPackedRegisters.
	var init *Function
	for _, f := range reparsed {
		if f.Name == "INIT" {
			init = f
		}
	}
	require.NotNil(t, init)
	store := init.Instructions[3]
	require.Equal(t, "STORE_U64", store.Name)
	idReg, addrReg, dataReg := Unpack3(store.A)
	require.EqualValues(t, 3, idReg)
	require.EqualValues(t, 0, addrReg)
	require.EqualValues(t, 0, dataReg)
	require.EqualValues(t, 0, store.B)
}

func TestAssemblerRoundTripsHelloSum(t *testing.T) {
	assertRoundTrips(t, `
MAIN
	LOAD_U64_IMMEDIATE r1 40
	LOAD_U64_IMMEDIATE r2 2
	ADD_U64 r1 r2
	PRINT_U64 r1
	EXIT r0
`)
}

func TestAssemblerRoundTripsCallReturn(t *testing.T) {
	assertRoundTrips(t, `
MAIN
	CALL F
	PRINT_U64 r1
	EXIT r0

F
	LOAD_U64_IMMEDIATE r1 7
	RET
`)
}

func TestParseSourceStoreU64AbbreviatedTrailingRegister(t *testing.T) {
	// The flagship demo's exact line in isolation: STORE_U64 packs three
	// registers, and the trailing "0" is the third register index, not a
	// pre-packed literal or a not-enough-packed-registers error.
	src := "MAIN\n\tSTORE_U64 r3 r0 0\n\tEXIT r0\n"
	funcs, err := ParseSource(src)
	require.NoError(t, err)

	ins := funcs[0].Instructions[0]
	require.Equal(t, "STORE_U64", ins.Name)
	r0, r1, r2 := Unpack3(ins.A)
	require.EqualValues(t, 3, r0)
	require.EqualValues(t, 0, r1)
	require.EqualValues(t, 0, r2)
	require.EqualValues(t, 0, ins.B)
}
