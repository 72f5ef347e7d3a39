package interp

import (
	"encoding/binary"
	"math"

	"github.com/emberemu/ember/ir"
	"github.com/emberemu/ember/log"
)

// condTrue evaluates a Select condition over two raw operand scalars at the
// given compare width. Integer codes compare at the truncated or
// sign-extended width; float codes reinterpret the operand bits, with the
// unordered-inclusive variants also true when either side is NaN.
func condTrue(cond ir.CondCode, compareSize uint8, src1, src2 uint64) bool {
	var (
		u1, u2 uint64
		i1, i2 int64
		f1, f2 float64
	)
	switch compareSize {
	case 4:
		u1, u2 = uint64(uint32(src1)), uint64(uint32(src2))
		i1, i2 = int64(int32(src1)), int64(int32(src2))
		f1 = float64(math.Float32frombits(uint32(src1)))
		f2 = float64(math.Float32frombits(uint32(src2)))
	case 8:
		u1, u2 = src1, src2
		i1, i2 = int64(src1), int64(src2)
		f1 = math.Float64frombits(src1)
		f2 = math.Float64frombits(src2)
	default:
		log.Crit(log.InterpMonitoring, "unknown Select compare size", "comparesize", compareSize)
	}
	unordered := math.IsNaN(f1) || math.IsNaN(f2)

	switch cond {
	case ir.CondEQ:
		return u1 == u2
	case ir.CondNEQ:
		return u1 != u2
	case ir.CondUGE:
		return u1 >= u2
	case ir.CondULT:
		return u1 < u2
	case ir.CondUGT:
		return u1 > u2
	case ir.CondULE:
		return u1 <= u2
	case ir.CondSGE:
		return i1 >= i2
	case ir.CondSLT:
		return i1 < i2
	case ir.CondSGT:
		return i1 > i2
	case ir.CondSLE:
		return i1 <= i2
	case ir.CondFLU:
		return f1 < f2 || unordered
	case ir.CondFGE:
		return f1 >= f2
	case ir.CondFLEU:
		return f1 <= f2 || unordered
	case ir.CondFGT:
		return f1 > f2
	case ir.CondFU:
		return unordered
	case ir.CondFNU:
		return !unordered
	default:
		log.Crit(log.InterpMonitoring, "unknown Select condition", "cond", cond)
		return false
	}
}

func opSelect(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])

	var argTrue, argFalse uint64
	if op.Size == 4 {
		argTrue = uint64(uint32(x.Scratch.ReadU64(op.Args[2])))
		argFalse = uint64(uint32(x.Scratch.ReadU64(op.Args[3])))
	} else {
		argTrue = x.Scratch.ReadU64(op.Args[2])
		argFalse = x.Scratch.ReadU64(op.Args[3])
	}

	if condTrue(op.Cond, op.CompareSize, src1, src2) {
		x.Scratch.WriteU64(node, argTrue)
	} else {
		x.Scratch.WriteU64(node, argFalse)
	}
}

func opVExtractToGPR(op *ir.Op, x *Context, node ir.NodeID) {
	if op.Size > 16 {
		log.Crit(log.InterpMonitoring, "OpSize is too large for VExtractToGPR", "size", op.Size)
	}

	elemBits := uint(op.ElementSize) * 8
	shift := uint(op.ElementSize) * uint(op.Index) * 8
	sourceSize := x.Program.OpSize(op.Args[0])

	if sourceSize == 16 {
		lo, hi := x.Scratch.ReadU128(op.Args[0])
		lo, hi = shrU128(lo, hi, shift)
		if op.ElementSize != 8 {
			lo &= 1<<elemBits - 1
			hi = 0
		}
		var buf [16]byte
		binary.LittleEndian.PutUint64(buf[:], lo)
		binary.LittleEndian.PutUint64(buf[8:], hi)
		x.Scratch.WriteBytes(node, buf[:op.ElementSize])
	} else {
		src := x.Scratch.ReadU64(op.Args[0])
		src >>= shift
		if op.ElementSize != 8 {
			src &= 1<<elemBits - 1
		}
		x.Scratch.WriteU64(node, src)
	}
}
