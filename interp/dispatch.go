package interp

import (
	"github.com/emberemu/ember/ir"
	"github.com/emberemu/ember/log"
)

// Handler computes one op's result into the destination slot at node.
// Handlers never mutate the IR and never retain the context.
type Handler func(op *ir.Op, x *Context, node ir.NodeID)

var handlerTable [ir.OpMax]Handler

func init() {
	RegisterHandlers()
}

// Execute dispatches the op to its registered handler. Opcodes outside the
// ALU set are a dispatch error here: the execution loop routes them to the
// control flow / memory / vector cores before this one is consulted.
func Execute(op *ir.Op, x *Context, node ir.NodeID) {
	if op.Code >= ir.OpMax || handlerTable[op.Code] == nil {
		log.Crit(log.InterpMonitoring, "unhandled opcode", "op", ir.DumpOp(op), "node", node)
	}
	handlerTable[op.Code](op, x, node)
}

// RegisterHandlers populates the dispatch table. It runs from package init
// and is idempotent; the table is immutable afterwards and safe to share
// across threads.
func RegisterHandlers() {
	handlerTable[ir.OpTruncElementPair] = opTruncElementPair
	handlerTable[ir.OpConstant] = opConstant
	handlerTable[ir.OpEntrypointOffset] = opEntrypointOffset
	handlerTable[ir.OpInlineConstant] = opInlineConstant
	handlerTable[ir.OpInlineEntrypointOffset] = opInlineEntrypointOffset
	handlerTable[ir.OpCycleCounter] = opCycleCounter
	handlerTable[ir.OpAdd] = opAdd
	handlerTable[ir.OpSub] = opSub
	handlerTable[ir.OpNeg] = opNeg
	handlerTable[ir.OpMul] = opMul
	handlerTable[ir.OpUMul] = opUMul
	handlerTable[ir.OpDiv] = opDiv
	handlerTable[ir.OpUDiv] = opUDiv
	handlerTable[ir.OpRem] = opRem
	handlerTable[ir.OpURem] = opURem
	handlerTable[ir.OpMulH] = opMulH
	handlerTable[ir.OpUMulH] = opUMulH
	handlerTable[ir.OpOr] = opOr
	handlerTable[ir.OpAnd] = opAnd
	handlerTable[ir.OpAndn] = opAndn
	handlerTable[ir.OpXor] = opXor
	handlerTable[ir.OpLshl] = opLshl
	handlerTable[ir.OpLshr] = opLshr
	handlerTable[ir.OpAshr] = opAshr
	handlerTable[ir.OpRor] = opRor
	handlerTable[ir.OpExtr] = opExtr
	handlerTable[ir.OpLDiv] = opLDiv
	handlerTable[ir.OpLUDiv] = opLUDiv
	handlerTable[ir.OpLRem] = opLRem
	handlerTable[ir.OpLURem] = opLURem
	handlerTable[ir.OpNot] = opNot
	handlerTable[ir.OpPopcount] = opPopcount
	handlerTable[ir.OpFindLSB] = opFindLSB
	handlerTable[ir.OpFindMSB] = opFindMSB
	handlerTable[ir.OpFindTrailingZeros] = opFindTrailingZeros
	handlerTable[ir.OpCountLeadingZeroes] = opCountLeadingZeroes
	handlerTable[ir.OpRev] = opRev
	handlerTable[ir.OpBfi] = opBfi
	handlerTable[ir.OpBfe] = opBfe
	handlerTable[ir.OpSbfe] = opSbfe
	handlerTable[ir.OpSelect] = opSelect
	handlerTable[ir.OpVExtractToGPR] = opVExtractToGPR
	handlerTable[ir.OpFloatToGPRZS] = opFloatToGPRZS
	handlerTable[ir.OpFloatToGPRS] = opFloatToGPRS
	handlerTable[ir.OpFCmp] = opFCmp
}
