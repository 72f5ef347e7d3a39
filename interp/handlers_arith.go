package interp

import (
	"math/bits"

	"golang.org/x/exp/constraints"

	"github.com/emberemu/ember/ir"
	"github.com/emberemu/ember/log"
)

// binOp reads both operands truncated to T, applies f and stores the result
// zero-extended. One instantiation per supported width replaces the
// macro-expanded kernels of a hand-written interpreter.
func binOp[T constraints.Unsigned](op *ir.Op, x *Context, node ir.NodeID, f func(a, b T) T) {
	a := T(x.Scratch.ReadU64(op.Args[0]))
	b := T(x.Scratch.ReadU64(op.Args[1]))
	x.Scratch.WriteU64(node, uint64(f(a, b)))
}

func opAdd(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 4:
		binOp(op, x, node, func(a, b uint32) uint32 { return a + b })
	case 8:
		binOp(op, x, node, func(a, b uint64) uint64 { return a + b })
	default:
		log.Crit(log.InterpMonitoring, "unknown Add size", "size", op.Size)
	}
}

func opSub(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 4:
		binOp(op, x, node, func(a, b uint32) uint32 { return a - b })
	case 8:
		binOp(op, x, node, func(a, b uint64) uint64 { return a - b })
	default:
		log.Crit(log.InterpMonitoring, "unknown Sub size", "size", op.Size)
	}
}

func opNeg(op *ir.Op, x *Context, node ir.NodeID) {
	src := x.Scratch.ReadU64(op.Args[0])
	switch op.Size {
	case 4:
		x.Scratch.WriteU64(node, uint64(int64(-int32(src))))
	case 8:
		x.Scratch.WriteU64(node, uint64(-int64(src)))
	default:
		log.Crit(log.InterpMonitoring, "unknown Neg size", "size", op.Size)
	}
}

func opMul(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])

	switch op.Size {
	case 4:
		x.Scratch.WriteU64(node, uint64(int64(int32(src1))*int64(int32(src2))))
	case 8:
		x.Scratch.WriteU64(node, uint64(int64(src1)*int64(src2)))
	case 16:
		lo, hi := mulS128(int64(src1), int64(src2))
		x.Scratch.WriteU128(node, lo, hi)
	default:
		log.Crit(log.InterpMonitoring, "unknown Mul size", "size", op.Size)
	}
}

func opUMul(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])

	switch op.Size {
	case 4:
		x.Scratch.WriteU64(node, uint64(uint32(src1)*uint32(src2)))
	case 8:
		x.Scratch.WriteU64(node, src1*src2)
	case 16:
		lo, hi := mulU128(src1, src2)
		x.Scratch.WriteU128(node, lo, hi)
	default:
		log.Crit(log.InterpMonitoring, "unknown UMul size", "size", op.Size)
	}
}

func opDiv(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 1:
		binSigned(op, x, node, 8, func(a, b int64) int64 { return a / b })
	case 2:
		binSigned(op, x, node, 16, func(a, b int64) int64 { return a / b })
	case 4:
		binSigned(op, x, node, 32, func(a, b int64) int64 { return a / b })
	case 8:
		binSigned(op, x, node, 64, func(a, b int64) int64 { return a / b })
	case 16:
		aLo, aHi := x.Scratch.ReadU128(op.Args[0])
		bLo, bHi := x.Scratch.ReadU128(op.Args[1])
		lo, hi := divS128(aLo, aHi, bLo, bHi)
		x.Scratch.WriteU128(node, lo, hi)
	default:
		log.Crit(log.InterpMonitoring, "unknown Div size", "size", op.Size)
	}
}

func opUDiv(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 1:
		binOp(op, x, node, func(a, b uint8) uint8 { return a / b })
	case 2:
		binOp(op, x, node, func(a, b uint16) uint16 { return a / b })
	case 4:
		binOp(op, x, node, func(a, b uint32) uint32 { return a / b })
	case 8:
		binOp(op, x, node, func(a, b uint64) uint64 { return a / b })
	case 16:
		aLo, aHi := x.Scratch.ReadU128(op.Args[0])
		bLo, bHi := x.Scratch.ReadU128(op.Args[1])
		lo, hi := divU128(aLo, aHi, bLo, bHi)
		x.Scratch.WriteU128(node, lo, hi)
	default:
		log.Crit(log.InterpMonitoring, "unknown UDiv size", "size", op.Size)
	}
}

func opRem(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 1:
		binSigned(op, x, node, 8, func(a, b int64) int64 { return a % b })
	case 2:
		binSigned(op, x, node, 16, func(a, b int64) int64 { return a % b })
	case 4:
		binSigned(op, x, node, 32, func(a, b int64) int64 { return a % b })
	case 8:
		binSigned(op, x, node, 64, func(a, b int64) int64 { return a % b })
	case 16:
		aLo, aHi := x.Scratch.ReadU128(op.Args[0])
		bLo, bHi := x.Scratch.ReadU128(op.Args[1])
		lo, hi := remS128(aLo, aHi, bLo, bHi)
		x.Scratch.WriteU128(node, lo, hi)
	default:
		log.Crit(log.InterpMonitoring, "unknown Rem size", "size", op.Size)
	}
}

func opURem(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 1:
		binOp(op, x, node, func(a, b uint8) uint8 { return a % b })
	case 2:
		binOp(op, x, node, func(a, b uint16) uint16 { return a % b })
	case 4:
		binOp(op, x, node, func(a, b uint32) uint32 { return a % b })
	case 8:
		binOp(op, x, node, func(a, b uint64) uint64 { return a % b })
	case 16:
		aLo, aHi := x.Scratch.ReadU128(op.Args[0])
		bLo, bHi := x.Scratch.ReadU128(op.Args[1])
		lo, hi := remU128(aLo, aHi, bLo, bHi)
		x.Scratch.WriteU128(node, lo, hi)
	default:
		log.Crit(log.InterpMonitoring, "unknown URem size", "size", op.Size)
	}
}

// binSigned sign-extends both operands from w bits, applies f at 64-bit
// width and stores the sign-extended result.
func binSigned(op *ir.Op, x *Context, node ir.NodeID, w uint, f func(a, b int64) int64) {
	a := signExtend(x.Scratch.ReadU64(op.Args[0]), w)
	b := signExtend(x.Scratch.ReadU64(op.Args[1]), w)
	x.Scratch.WriteU64(node, uint64(f(a, b)))
}

func signExtend(v uint64, w uint) int64 {
	shift := 64 - w
	return int64(v<<shift) >> shift
}

func opMulH(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])

	switch op.Size {
	case 4:
		tmp := int64(int32(src1)) * int64(int32(src2))
		x.Scratch.WriteU64(node, uint64(tmp>>32))
	case 8:
		_, hi := mulS128(int64(src1), int64(src2))
		x.Scratch.WriteU64(node, hi)
	default:
		log.Crit(log.InterpMonitoring, "unknown MulH size", "size", op.Size)
	}
}

func opUMulH(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])

	switch op.Size {
	case 4:
		x.Scratch.WriteU64(node, (src1*src2)>>32)
	case 8:
		hi, _ := bits.Mul64(src1, src2)
		x.Scratch.WriteU64(node, hi)
	case 16:
		// XXX: This is incorrect
		hi, _ := bits.Mul64(src1, src2)
		x.Scratch.WriteU64(node, hi)
	default:
		log.Crit(log.InterpMonitoring, "unknown UMulH size", "size", op.Size)
	}
}

// Long divide family: dividend is (high << w) | low at twice the op size,
// divisor is one op size wide. Only the low op-size bits of the result are
// stored.

func opLDiv(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 2:
		srcLow := uint16(x.Scratch.ReadU64(op.Args[0]))
		srcHigh := uint16(x.Scratch.ReadU64(op.Args[1]))
		divisor := int16(x.Scratch.ReadU64(op.Args[2]))
		source := int32(uint32(srcHigh)<<16 | uint32(srcLow))
		res := source / int32(divisor)
		x.Scratch.WriteU64(node, uint64(int64(int16(res))))
	case 4:
		srcLow := uint32(x.Scratch.ReadU64(op.Args[0]))
		srcHigh := uint32(x.Scratch.ReadU64(op.Args[1]))
		divisor := int32(x.Scratch.ReadU64(op.Args[2]))
		source := int64(uint64(srcHigh)<<32 | uint64(srcLow))
		res := source / int64(divisor)
		x.Scratch.WriteU64(node, uint64(int64(int32(res))))
	case 8:
		srcLow := x.Scratch.ReadU64(op.Args[0])
		srcHigh := x.Scratch.ReadU64(op.Args[1])
		divisor := int64(x.Scratch.ReadU64(op.Args[2]))
		lo, _ := divS128From(srcLow, srcHigh, divisor)
		x.Scratch.WriteU64(node, lo)
	default:
		log.Crit(log.InterpMonitoring, "unknown LDiv size", "size", op.Size)
	}
}

func opLUDiv(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 2:
		srcLow := uint16(x.Scratch.ReadU64(op.Args[0]))
		srcHigh := uint16(x.Scratch.ReadU64(op.Args[1]))
		divisor := uint16(x.Scratch.ReadU64(op.Args[2]))
		source := uint32(srcHigh)<<16 | uint32(srcLow)
		res := source / uint32(divisor)
		x.Scratch.WriteU64(node, uint64(uint16(res)))
	case 4:
		srcLow := uint32(x.Scratch.ReadU64(op.Args[0]))
		srcHigh := uint32(x.Scratch.ReadU64(op.Args[1]))
		divisor := uint32(x.Scratch.ReadU64(op.Args[2]))
		source := uint64(srcHigh)<<32 | uint64(srcLow)
		res := source / uint64(divisor)
		x.Scratch.WriteU64(node, uint64(uint32(res)))
	case 8:
		srcLow := x.Scratch.ReadU64(op.Args[0])
		srcHigh := x.Scratch.ReadU64(op.Args[1])
		divisor := x.Scratch.ReadU64(op.Args[2])
		lo, _ := divU128(srcLow, srcHigh, divisor, 0)
		x.Scratch.WriteU64(node, lo)
	default:
		log.Crit(log.InterpMonitoring, "unknown LUDiv size", "size", op.Size)
	}
}

func opLRem(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 2:
		srcLow := uint16(x.Scratch.ReadU64(op.Args[0]))
		srcHigh := uint16(x.Scratch.ReadU64(op.Args[1]))
		divisor := int16(x.Scratch.ReadU64(op.Args[2]))
		source := int32(uint32(srcHigh)<<16 | uint32(srcLow))
		res := source % int32(divisor)
		x.Scratch.WriteU64(node, uint64(int64(int16(res))))
	case 4:
		srcLow := uint32(x.Scratch.ReadU64(op.Args[0]))
		srcHigh := uint32(x.Scratch.ReadU64(op.Args[1]))
		divisor := int32(x.Scratch.ReadU64(op.Args[2]))
		source := int64(uint64(srcHigh)<<32 | uint64(srcLow))
		res := source % int64(divisor)
		x.Scratch.WriteU64(node, uint64(int64(int32(res))))
	case 8:
		srcLow := x.Scratch.ReadU64(op.Args[0])
		srcHigh := x.Scratch.ReadU64(op.Args[1])
		divisor := int64(x.Scratch.ReadU64(op.Args[2]))
		lo, _ := remS128From(srcLow, srcHigh, divisor)
		x.Scratch.WriteU64(node, lo)
	default:
		log.Crit(log.InterpMonitoring, "unknown LRem size", "size", op.Size)
	}
}

func opLURem(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 2:
		srcLow := uint16(x.Scratch.ReadU64(op.Args[0]))
		srcHigh := uint16(x.Scratch.ReadU64(op.Args[1]))
		divisor := uint16(x.Scratch.ReadU64(op.Args[2]))
		source := uint32(srcHigh)<<16 | uint32(srcLow)
		res := source % uint32(divisor)
		x.Scratch.WriteU64(node, uint64(uint16(res)))
	case 4:
		srcLow := uint32(x.Scratch.ReadU64(op.Args[0]))
		srcHigh := uint32(x.Scratch.ReadU64(op.Args[1]))
		divisor := uint32(x.Scratch.ReadU64(op.Args[2]))
		source := uint64(srcHigh)<<32 | uint64(srcLow)
		res := source % uint64(divisor)
		x.Scratch.WriteU64(node, uint64(uint32(res)))
	case 8:
		srcLow := x.Scratch.ReadU64(op.Args[0])
		srcHigh := x.Scratch.ReadU64(op.Args[1])
		divisor := x.Scratch.ReadU64(op.Args[2])
		lo, _ := remU128(srcLow, srcHigh, divisor, 0)
		x.Scratch.WriteU64(node, lo)
	default:
		log.Crit(log.InterpMonitoring, "unknown LURem size", "size", op.Size)
	}
}

// divS128From divides the 128-bit two's complement value (lo, hi) by a
// 64-bit signed divisor at full width.
func divS128From(lo, hi uint64, divisor int64) (uint64, uint64) {
	return divS128(lo, hi, uint64(divisor), uint64(divisor>>63))
}

func remS128From(lo, hi uint64, divisor int64) (uint64, uint64) {
	return remS128(lo, hi, uint64(divisor), uint64(divisor>>63))
}
