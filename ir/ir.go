package ir

// NodeID indexes an SSA value inside one lowered basic block. Node 0 is
// valid; IDs are dense per block.
type NodeID uint32

// Opcode identifies one IR operation kind. The set below is the ALU
// subset executed by the interp package; control flow, memory and vector
// arithmetic live elsewhere.
type Opcode uint16

const (
	OpTruncElementPair Opcode = iota
	OpConstant
	OpEntrypointOffset
	OpInlineConstant
	OpInlineEntrypointOffset
	OpCycleCounter
	OpAdd
	OpSub
	OpNeg
	OpMul
	OpUMul
	OpDiv
	OpUDiv
	OpRem
	OpURem
	OpMulH
	OpUMulH
	OpOr
	OpAnd
	OpAndn
	OpXor
	OpLshl
	OpLshr
	OpAshr
	OpRor
	OpExtr
	OpLDiv
	OpLUDiv
	OpLRem
	OpLURem
	OpNot
	OpPopcount
	OpFindLSB
	OpFindMSB
	OpFindTrailingZeros
	OpCountLeadingZeroes
	OpRev
	OpBfi
	OpBfe
	OpSbfe
	OpSelect
	OpVExtractToGPR
	OpFloatToGPRZS
	OpFloatToGPRS
	OpFCmp
	OpMax
)

// CondCode selects the comparison applied by Select. Integer codes exist
// in signed and unsigned forms; the F-prefixed codes compare the operands
// as floating point. FLU and FLEU are also true on unordered, FU is true
// only on unordered and FNU only on ordered operands.
type CondCode uint8

const (
	CondEQ CondCode = iota
	CondNEQ
	CondUGE
	CondULT
	CondUGT
	CondULE
	CondSGE
	CondSLT
	CondSGT
	CondSLE
	CondFLU
	CondFGE
	CondFLEU
	CondFGT
	CondFU
	CondFNU
)

// FCmp result flag bit positions.
const (
	FCmpFlagLT        = 0
	FCmpFlagUnordered = 1
	FCmpFlagEQ        = 2
)

// MaxArgs is the widest operand list of any ALU op (Select).
const MaxArgs = 4

// Op is the in-memory record of one SSA operation. The leading fields are
// the shared header every op carries; the trailing fields are opcode
// specific payload and are only meaningful for the ops that name them.
type Op struct {
	Code        Opcode
	Size        uint8 // result width in bytes: 1, 2, 4, 8 or 16
	ElementSize uint8 // sub-element width for vector sources and FCmp
	Args        [MaxArgs]NodeID

	Constant       uint64   // Constant: literal payload
	Offset         int64    // EntrypointOffset: delta from the block entry address
	Width          uint8    // Bfi/Bfe/Sbfe: bitfield width
	LSB            uint8    // Extr/Bfi/Bfe/Sbfe: bitfield least significant bit
	Cond           CondCode // Select
	CompareSize    uint8    // Select: width of the comparison, 4 or 8
	Flags          uint8    // FCmp: requested flag mask
	Index          uint8    // VExtractToGPR: element index
	SrcElementSize uint8    // FloatToGPR*: width of the float source element
}

// Program is the lowered block being interpreted: one Op per SSA node,
// indexed by NodeID in reverse-post-order.
type Program struct {
	Ops []Op
}

// OpSize returns the declared result width of a node. Used by handlers
// whose semantics depend on an operand's width rather than their own
// (VExtractToGPR).
func (p *Program) OpSize(id NodeID) uint8 {
	return p.Ops[id].Size
}
