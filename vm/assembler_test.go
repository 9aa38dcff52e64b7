package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceHelloSum(t *testing.T) {
	src := `
MAIN
	LOAD_U64_IMMEDIATE r1 10
	LOAD_U64_IMMEDIATE r2 32
	ADD_U64 r1 r2
	PRINT_U64 r2
	EXIT r0
`
	funcs, err := ParseSource(src)
	require.NoError(t, err)
	require.Len(t, funcs, 1)
	assert.Equal(t, "MAIN", funcs[0].Name)
	assert.Len(t, funcs[0].Instructions, 5)
}

func TestParseSourceMainForcedToSlotZero(t *testing.T) {
	src := `
HELPER
	RET
MAIN
	CALL HELPER
	EXIT r0
`
	funcs, err := ParseSource(src)
	require.NoError(t, err)
	require.Len(t, funcs, 2)
	assert.Equal(t, "MAIN", funcs[0].Name)
	assert.Equal(t, "HELPER", funcs[1].Name)

	// CALL's target operand must have been remapped to HELPER's new slot.
	assert.EqualValues(t, 1, funcs[0].Instructions[0].A)
}

func TestParseSourceMissingMain(t *testing.T) {
	_, err := ParseSource("HELPER\n\tRET\n")
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, ErrMissingMain, de.Kind)
}

func TestParseSourceDuplicateFunction(t *testing.T) {
	src := "MAIN\n\tEXIT r0\nMAIN\n\tEXIT r0\n"
	_, err := ParseSource(src)
	require.Error(t, err)
	de := err.(*DecodeError)
	assert.Equal(t, ErrDuplicateFunction, de.Kind)
}

func TestParseSourceUnknownOpcode(t *testing.T) {
	src := "MAIN\n\tFROBNICATE r1 r2\n"
	_, err := ParseSource(src)
	require.Error(t, err)
	de := err.(*DecodeError)
	assert.Equal(t, ErrUnknownOpcode, de.Kind)
}

func TestParseSourceInstructionOutsideFunction(t *testing.T) {
	src := "\tEXIT r0\nMAIN\n\tEXIT r0\n"
	_, err := ParseSource(src)
	require.Error(t, err)
	de := err.(*DecodeError)
	assert.Equal(t, ErrInstructionOutsideFunction, de.Kind)
}

func TestParseSourcePackedRegistersPartialRejected(t *testing.T) {
	// ADD_U64 wants two packed registers; giving one register then a
	// non-register token is the disallowed hybrid.
	src := "MAIN\n\tADD_U64 r1 notaregister\n"
	_, err := ParseSource(src)
	require.Error(t, err)
	de := err.(*DecodeError)
	assert.Equal(t, ErrNotEnoughPackedRegisters, de.Kind)
}

func TestParseSourcePackedRegistersAcceptsPrePackedLiteral(t *testing.T) {
	src := "MAIN\n\tADD_U64 0x0102\n\tEXIT r0\n"
	funcs, err := ParseSource(src)
	require.NoError(t, err)
	assert.EqualValues(t, 0x0102, funcs[0].Instructions[0].A)
}

func TestParseSourceMissingTrailingOperandsDefaultToZero(t *testing.T) {
	src := "MAIN\n\tADD_U64_IMMEDIATE r1\n"
	funcs, err := ParseSource(src)
	require.NoError(t, err)
	assert.EqualValues(t, 0, funcs[0].Instructions[0].B)
}

func TestParseSourceUnknownCallTarget(t *testing.T) {
	src := "MAIN\n\tCALL NOPE\n"
	_, err := ParseSource(src)
	require.Error(t, err)
	de := err.(*DecodeError)
	assert.Equal(t, ErrUnknownFunction, de.Kind)
}

func TestParseSourceLabelOutsideCall(t *testing.T) {
	src := "MAIN\n\tADD_U64_IMMEDIATE r1 somelabel\n"
	_, err := ParseSource(src)
	require.Error(t, err)
	de := err.(*DecodeError)
	assert.Equal(t, ErrUnexpectedLabel, de.Kind)
}

func TestParseSourceRegisterOutOfRange(t *testing.T) {
	src := "MAIN\n\tADD_U64 r1 r999\n"
	_, err := ParseSource(src)
	require.Error(t, err)
	de := err.(*DecodeError)
	assert.Equal(t, ErrRegisterOutOfRange, de.Kind)
}

func TestParseSourceCommentsAndBlankLinesIgnored(t *testing.T) {
	src := `
; leading comment

MAIN ; function header comment
	EXIT r0 ; trailing comment

`
	funcs, err := ParseSource(src)
	require.NoError(t, err)
	require.Len(t, funcs[0].Instructions, 1)
}

func TestParseLiteralBasesAndSeparators(t *testing.T) {
	cases := map[string]uint64{
		"0x10":      16,
		"0b101":     5,
		"0o17":      15,
		"1_000_000": 1000000,
		"-1":        ^uint64(0),
	}
	for tok, want := range cases {
		got, err := parseLiteral(tok)
		require.NoError(t, err, tok)
		assert.Equal(t, want, got, tok)
	}
}
