package ir

import (
	"fmt"
	"strings"
)

var opcodeNames = [OpMax]string{
	OpTruncElementPair:       "TruncElementPair",
	OpConstant:               "Constant",
	OpEntrypointOffset:       "EntrypointOffset",
	OpInlineConstant:         "InlineConstant",
	OpInlineEntrypointOffset: "InlineEntrypointOffset",
	OpCycleCounter:           "CycleCounter",
	OpAdd:                    "Add",
	OpSub:                    "Sub",
	OpNeg:                    "Neg",
	OpMul:                    "Mul",
	OpUMul:                   "UMul",
	OpDiv:                    "Div",
	OpUDiv:                   "UDiv",
	OpRem:                    "Rem",
	OpURem:                   "URem",
	OpMulH:                   "MulH",
	OpUMulH:                  "UMulH",
	OpOr:                     "Or",
	OpAnd:                    "And",
	OpAndn:                   "Andn",
	OpXor:                    "Xor",
	OpLshl:                   "Lshl",
	OpLshr:                   "Lshr",
	OpAshr:                   "Ashr",
	OpRor:                    "Ror",
	OpExtr:                   "Extr",
	OpLDiv:                   "LDiv",
	OpLUDiv:                  "LUDiv",
	OpLRem:                   "LRem",
	OpLURem:                  "LURem",
	OpNot:                    "Not",
	OpPopcount:               "Popcount",
	OpFindLSB:                "FindLSB",
	OpFindMSB:                "FindMSB",
	OpFindTrailingZeros:      "FindTrailingZeros",
	OpCountLeadingZeroes:     "CountLeadingZeroes",
	OpRev:                    "Rev",
	OpBfi:                    "Bfi",
	OpBfe:                    "Bfe",
	OpSbfe:                   "Sbfe",
	OpSelect:                 "Select",
	OpVExtractToGPR:          "VExtractToGPR",
	OpFloatToGPRZS:           "Float_ToGPR_ZS",
	OpFloatToGPRS:            "Float_ToGPR_S",
	OpFCmp:                   "FCmp",
}

func (o Opcode) String() string {
	if o < OpMax && opcodeNames[o] != "" {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", uint16(o))
}

// argCount is the number of operand node ids each op actually reads.
var argCount = [OpMax]uint8{
	OpTruncElementPair:   1,
	OpAdd:                2,
	OpSub:                2,
	OpNeg:                1,
	OpMul:                2,
	OpUMul:               2,
	OpDiv:                2,
	OpUDiv:               2,
	OpRem:                2,
	OpURem:               2,
	OpMulH:               2,
	OpUMulH:              2,
	OpOr:                 2,
	OpAnd:                2,
	OpAndn:               2,
	OpXor:                2,
	OpLshl:               2,
	OpLshr:               2,
	OpAshr:               2,
	OpRor:                2,
	OpExtr:               2,
	OpLDiv:               3,
	OpLUDiv:              3,
	OpLRem:               3,
	OpLURem:              3,
	OpNot:                1,
	OpPopcount:           1,
	OpFindLSB:            1,
	OpFindMSB:            1,
	OpFindTrailingZeros:  1,
	OpCountLeadingZeroes: 1,
	OpRev:                1,
	OpBfi:                2,
	OpBfe:                1,
	OpSbfe:               1,
	OpSelect:             4,
	OpVExtractToGPR:      1,
	OpFloatToGPRZS:       1,
	OpFloatToGPRS:        1,
	OpFCmp:               2,
}

// DumpOp renders one operation on a single line for diagnostics, e.g.
//
//	Bfi i8 (%3, %4) width=8 lsb=16
func DumpOp(op *Op) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s i%d", op.Code, op.Size)
	if op.ElementSize != 0 && op.ElementSize != op.Size {
		fmt.Fprintf(&sb, " v%dx%d", op.ElementSize, op.Size/max8(op.ElementSize, 1))
	}
	n := int(argCount[op.Code])
	if n > 0 {
		sb.WriteString(" (")
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%%%d", op.Args[i])
		}
		sb.WriteString(")")
	}
	switch op.Code {
	case OpConstant:
		fmt.Fprintf(&sb, " #0x%x", op.Constant)
	case OpEntrypointOffset:
		fmt.Fprintf(&sb, " offset=%d", op.Offset)
	case OpExtr:
		fmt.Fprintf(&sb, " lsb=%d", op.LSB)
	case OpBfi, OpBfe, OpSbfe:
		fmt.Fprintf(&sb, " width=%d lsb=%d", op.Width, op.LSB)
	case OpSelect:
		fmt.Fprintf(&sb, " cond=%d cmpsize=%d", op.Cond, op.CompareSize)
	case OpVExtractToGPR:
		fmt.Fprintf(&sb, " idx=%d", op.Index)
	case OpFloatToGPRZS, OpFloatToGPRS:
		fmt.Fprintf(&sb, " srcelem=%d", op.SrcElementSize)
	case OpFCmp:
		fmt.Fprintf(&sb, " flags=0x%x", op.Flags)
	}
	return sb.String()
}

func max8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
