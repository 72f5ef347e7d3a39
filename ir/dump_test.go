package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpcodeString(t *testing.T) {
	require.Equal(t, "Add", OpAdd.String())
	require.Equal(t, "Float_ToGPR_ZS", OpFloatToGPRZS.String())
	require.Equal(t, "Opcode(999)", Opcode(999).String())
}

func TestDumpOp(t *testing.T) {
	op := &Op{Code: OpBfi, Size: 8, Width: 8, LSB: 16, Args: [MaxArgs]NodeID{3, 4}}
	require.Equal(t, "Bfi i8 (%3, %4) width=8 lsb=16", DumpOp(op))

	op = &Op{Code: OpConstant, Size: 8, Constant: 0xCAFE}
	require.Equal(t, "Constant i8 #0xcafe", DumpOp(op))

	op = &Op{Code: OpSelect, Size: 4, Cond: CondSLT, CompareSize: 4, Args: [MaxArgs]NodeID{0, 1, 2, 3}}
	require.Equal(t, "Select i4 (%0, %1, %2, %3) cond=7 cmpsize=4", DumpOp(op))
}

func TestProgramOpSize(t *testing.T) {
	p := &Program{Ops: []Op{{Code: OpConstant, Size: 16}}}
	require.Equal(t, uint8(16), p.OpSize(0))
}
