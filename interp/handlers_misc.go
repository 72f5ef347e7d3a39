package interp

import (
	"time"

	"github.com/emberemu/ember/ir"
	"github.com/emberemu/ember/log"
)

func opTruncElementPair(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 4:
		lane0, lane1 := x.Scratch.ReadU128(op.Args[0])
		result := lane0 & 0xFFFFFFFF
		result |= lane1 << 32
		x.Scratch.WriteU64(node, result)
	default:
		log.Crit(log.InterpMonitoring, "unhandled truncation size", "size", op.Size)
	}
}

func opConstant(op *ir.Op, x *Context, node ir.NodeID) {
	x.Scratch.WriteU64(node, op.Constant)
}

func opEntrypointOffset(op *ir.Op, x *Context, node ir.NodeID) {
	x.Scratch.WriteU64(node, x.CurrentEntry+uint64(op.Offset))
}

// InlineConstant and InlineEntrypointOffset fuse their literal into the
// consuming op; their slot is never read, so nothing is computed here.
func opInlineConstant(op *ir.Op, x *Context, node ir.NodeID) {
}

func opInlineEntrypointOffset(op *ir.Op, x *Context, node ir.NodeID) {
}

func opCycleCounter(op *ir.Op, x *Context, node ir.NodeID) {
	if debugCycles {
		x.Scratch.WriteU64(node, 0)
		return
	}
	// Wall clock, nanoseconds. Subject to adjustment; kept for guest
	// compatibility even though a monotonic source would drift less.
	x.Scratch.WriteU64(node, uint64(time.Now().UnixNano()))
}
