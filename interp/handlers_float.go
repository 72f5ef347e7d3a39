package interp

import (
	"encoding/binary"
	"math"

	"github.com/emberemu/ember/ir"
	"github.com/emberemu/ember/log"
)

// Float to integer conversions. Out-of-range and NaN sources take the
// host's conversion result; the IR has already lowered any guest trap
// semantics before these ops are emitted.

func opFloatToGPRZS(op *ir.Op, x *Context, node ir.NodeID) {
	floatToGPR(op, x, node, math.Trunc)
}

func opFloatToGPRS(op *ir.Op, x *Context, node ir.NodeID) {
	floatToGPR(op, x, node, math.RoundToEven)
}

func floatToGPR(op *ir.Op, x *Context, node ir.NodeID, round func(float64) float64) {
	var src float64
	switch op.SrcElementSize {
	case 4:
		src = float64(x.Scratch.ReadF32(op.Args[0]))
	case 8:
		src = x.Scratch.ReadF64(op.Args[0])
	default:
		log.Crit(log.InterpMonitoring, "unknown float source element size", "srcelementsize", op.SrcElementSize)
	}

	switch op.Size {
	case 8:
		x.Scratch.WriteU64(node, uint64(int64(round(src))))
	case 4:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(int32(round(src))))
		x.Scratch.WriteBytes(node, buf[:])
	default:
		log.Crit(log.InterpMonitoring, "unknown float conversion size", "size", op.Size)
	}
}

func opFCmp(op *ir.Op, x *Context, node ir.NodeID) {
	var src1, src2 float64
	switch op.ElementSize {
	case 4:
		src1 = float64(x.Scratch.ReadF32(op.Args[0]))
		src2 = float64(x.Scratch.ReadF32(op.Args[1]))
	case 8:
		src1 = x.Scratch.ReadF64(op.Args[0])
		src2 = x.Scratch.ReadF64(op.Args[1])
	default:
		log.Crit(log.InterpMonitoring, "unknown FCmp element size", "elementsize", op.ElementSize)
	}

	unordered := math.IsNaN(src1) || math.IsNaN(src2)

	var resultFlags uint64
	if op.Flags&(1<<ir.FCmpFlagLT) != 0 {
		if unordered || src1 < src2 {
			resultFlags |= 1 << ir.FCmpFlagLT
		}
	}
	if op.Flags&(1<<ir.FCmpFlagUnordered) != 0 {
		if unordered {
			resultFlags |= 1 << ir.FCmpFlagUnordered
		}
	}
	if op.Flags&(1<<ir.FCmpFlagEQ) != 0 {
		if unordered || src1 == src2 {
			resultFlags |= 1 << ir.FCmpFlagEQ
		}
	}

	x.Scratch.WriteU64(node, resultFlags)
}
