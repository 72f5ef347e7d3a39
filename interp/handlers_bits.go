package interp

import (
	"math/bits"

	"github.com/emberemu/ember/ir"
	"github.com/emberemu/ember/log"
)

func opOr(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 1:
		binOp(op, x, node, func(a, b uint8) uint8 { return a | b })
	case 2:
		binOp(op, x, node, func(a, b uint16) uint16 { return a | b })
	case 4:
		binOp(op, x, node, func(a, b uint32) uint32 { return a | b })
	case 8:
		binOp(op, x, node, func(a, b uint64) uint64 { return a | b })
	case 16:
		aLo, aHi := x.Scratch.ReadU128(op.Args[0])
		bLo, bHi := x.Scratch.ReadU128(op.Args[1])
		x.Scratch.WriteU128(node, aLo|bLo, aHi|bHi)
	default:
		log.Crit(log.InterpMonitoring, "unknown Or size", "size", op.Size)
	}
}

func opAnd(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 1:
		binOp(op, x, node, func(a, b uint8) uint8 { return a & b })
	case 2:
		binOp(op, x, node, func(a, b uint16) uint16 { return a & b })
	case 4:
		binOp(op, x, node, func(a, b uint32) uint32 { return a & b })
	case 8:
		binOp(op, x, node, func(a, b uint64) uint64 { return a & b })
	default:
		log.Crit(log.InterpMonitoring, "unknown And size", "size", op.Size)
	}
}

func opAndn(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 1:
		binOp(op, x, node, func(a, b uint8) uint8 { return a &^ b })
	case 2:
		binOp(op, x, node, func(a, b uint16) uint16 { return a &^ b })
	case 4:
		binOp(op, x, node, func(a, b uint32) uint32 { return a &^ b })
	case 8:
		binOp(op, x, node, func(a, b uint64) uint64 { return a &^ b })
	default:
		log.Crit(log.InterpMonitoring, "unknown Andn size", "size", op.Size)
	}
}

func opXor(op *ir.Op, x *Context, node ir.NodeID) {
	switch op.Size {
	case 1:
		binOp(op, x, node, func(a, b uint8) uint8 { return a ^ b })
	case 2:
		binOp(op, x, node, func(a, b uint16) uint16 { return a ^ b })
	case 4:
		binOp(op, x, node, func(a, b uint32) uint32 { return a ^ b })
	case 8:
		binOp(op, x, node, func(a, b uint64) uint64 { return a ^ b })
	default:
		log.Crit(log.InterpMonitoring, "unknown Xor size", "size", op.Size)
	}
}

// Shift amounts are masked to the operand width before applying, matching
// the guest's shift-count truncation.

func opLshl(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])
	mask := uint64(op.Size)*8 - 1
	switch op.Size {
	case 4:
		x.Scratch.WriteU64(node, uint64(uint32(src1)<<(src2&mask)))
	case 8:
		x.Scratch.WriteU64(node, src1<<(src2&mask))
	default:
		log.Crit(log.InterpMonitoring, "unknown Lshl size", "size", op.Size)
	}
}

func opLshr(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])
	mask := uint64(op.Size)*8 - 1
	switch op.Size {
	case 4:
		x.Scratch.WriteU64(node, uint64(uint32(src1)>>(src2&mask)))
	case 8:
		x.Scratch.WriteU64(node, src1>>(src2&mask))
	default:
		log.Crit(log.InterpMonitoring, "unknown Lshr size", "size", op.Size)
	}
}

func opAshr(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])
	mask := uint64(op.Size)*8 - 1
	switch op.Size {
	case 4:
		x.Scratch.WriteU64(node, uint64(uint32(int32(src1)>>(src2&mask))))
	case 8:
		x.Scratch.WriteU64(node, uint64(int64(src1)>>(src2&mask)))
	default:
		log.Crit(log.InterpMonitoring, "unknown Ashr size", "size", op.Size)
	}
}

func opRor(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])
	switch op.Size {
	case 4:
		x.Scratch.WriteU64(node, uint64(bits.RotateLeft32(uint32(src1), -int(src2&31))))
	case 8:
		x.Scratch.WriteU64(node, bits.RotateLeft64(src1, -int(src2&63)))
	default:
		log.Crit(log.InterpMonitoring, "unknown Ror size", "size", op.Size)
	}
}

// Extr shifts the lsb-indexed bitfield out of the double-width
// concatenation (src1 << w) | src2 and truncates to the op size.
func opExtr(op *ir.Op, x *Context, node ir.NodeID) {
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])
	switch op.Size {
	case 4:
		pair := uint64(uint32(src1))<<32 | uint64(uint32(src2))
		x.Scratch.WriteU64(node, uint64(uint32(pair>>op.LSB)))
	case 8:
		lo, _ := shrU128(src2, src1, uint(op.LSB))
		x.Scratch.WriteU64(node, lo)
	default:
		log.Crit(log.InterpMonitoring, "unknown Extr size", "size", op.Size)
	}
}

// notMask holds the result mask per op size. Sizes 3, 5, 6 and 7 hold 0;
// a Not at those sizes therefore produces 0.
var notMask = [9]uint64{0, 0xFF, 0xFFFF, 0, 0xFFFFFFFF, 0, 0, 0, 0xFFFFFFFFFFFFFFFF}

func opNot(op *ir.Op, x *Context, node ir.NodeID) {
	if op.Size > 8 {
		log.Crit(log.InterpMonitoring, "unknown Not size", "size", op.Size)
	}
	src := x.Scratch.ReadU64(op.Args[0])
	x.Scratch.WriteU64(node, ^src&notMask[op.Size])
}

func opPopcount(op *ir.Op, x *Context, node ir.NodeID) {
	src := x.Scratch.ReadU64(op.Args[0])
	x.Scratch.WriteU64(node, uint64(bits.OnesCount64(src)))
}

// FindLSB keeps the find-first-set convention: position of the lowest set
// bit, or all-ones for a zero input (ffs(0) == 0, minus one).
func opFindLSB(op *ir.Op, x *Context, node ir.NodeID) {
	src := x.Scratch.ReadU64(op.Args[0])
	ffs := uint64(0)
	if src != 0 {
		ffs = uint64(bits.TrailingZeros64(src)) + 1
	}
	x.Scratch.WriteU64(node, ffs-1)
}

func opFindMSB(op *ir.Op, x *Context, node ir.NodeID) {
	src := x.Scratch.ReadU64(op.Args[0])
	switch op.Size {
	case 1:
		x.Scratch.WriteU64(node, uint64(int64(8-bits.LeadingZeros8(uint8(src))-1)))
	case 2:
		x.Scratch.WriteU64(node, uint64(int64(16-bits.LeadingZeros16(uint16(src))-1)))
	case 4:
		x.Scratch.WriteU64(node, uint64(int64(32-bits.LeadingZeros32(uint32(src))-1)))
	case 8:
		x.Scratch.WriteU64(node, uint64(int64(64-bits.LeadingZeros64(src)-1)))
	default:
		log.Crit(log.InterpMonitoring, "unknown FindMSB size", "size", op.Size)
	}
}

func opFindTrailingZeros(op *ir.Op, x *Context, node ir.NodeID) {
	src := x.Scratch.ReadU64(op.Args[0])
	switch op.Size {
	case 1:
		x.Scratch.WriteU64(node, uint64(bits.TrailingZeros8(uint8(src))))
	case 2:
		x.Scratch.WriteU64(node, uint64(bits.TrailingZeros16(uint16(src))))
	case 4:
		x.Scratch.WriteU64(node, uint64(bits.TrailingZeros32(uint32(src))))
	case 8:
		x.Scratch.WriteU64(node, uint64(bits.TrailingZeros64(src)))
	default:
		log.Crit(log.InterpMonitoring, "unknown FindTrailingZeros size", "size", op.Size)
	}
}

func opCountLeadingZeroes(op *ir.Op, x *Context, node ir.NodeID) {
	src := x.Scratch.ReadU64(op.Args[0])
	switch op.Size {
	case 1:
		x.Scratch.WriteU64(node, uint64(bits.LeadingZeros8(uint8(src))))
	case 2:
		x.Scratch.WriteU64(node, uint64(bits.LeadingZeros16(uint16(src))))
	case 4:
		x.Scratch.WriteU64(node, uint64(bits.LeadingZeros32(uint32(src))))
	case 8:
		x.Scratch.WriteU64(node, uint64(bits.LeadingZeros64(src)))
	default:
		log.Crit(log.InterpMonitoring, "unknown CountLeadingZeroes size", "size", op.Size)
	}
}

func opRev(op *ir.Op, x *Context, node ir.NodeID) {
	src := x.Scratch.ReadU64(op.Args[0])
	switch op.Size {
	case 2:
		x.Scratch.WriteU64(node, uint64(bits.ReverseBytes16(uint16(src))))
	case 4:
		x.Scratch.WriteU64(node, uint64(bits.ReverseBytes32(uint32(src))))
	case 8:
		x.Scratch.WriteU64(node, bits.ReverseBytes64(src))
	default:
		log.Crit(log.InterpMonitoring, "unknown Rev size", "size", op.Size)
	}
}

// widthMask is (1 << width) - 1 with width 64 meaning all ones.
func widthMask(width uint8) uint64 {
	if width == 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}

func opBfi(op *ir.Op, x *Context, node ir.NodeID) {
	sourceMask := widthMask(op.Width)
	destMask := ^(sourceMask << op.LSB)
	src1 := x.Scratch.ReadU64(op.Args[0])
	src2 := x.Scratch.ReadU64(op.Args[1])
	x.Scratch.WriteU64(node, src1&destMask|(src2&sourceMask)<<op.LSB)
}

func opBfe(op *ir.Op, x *Context, node ir.NodeID) {
	if op.Size > 8 {
		log.Crit(log.InterpMonitoring, "OpSize is too large for Bfe", "size", op.Size)
	}
	sourceMask := widthMask(op.Width) << op.LSB
	src := x.Scratch.ReadU64(op.Args[0])
	x.Scratch.WriteU64(node, (src&sourceMask)>>op.LSB)
}

func opSbfe(op *ir.Op, x *Context, node ir.NodeID) {
	if op.Size > 8 {
		log.Crit(log.InterpMonitoring, "OpSize is too large for Sbfe", "size", op.Size)
	}
	src := int64(x.Scratch.ReadU64(op.Args[0]))
	shiftLeft := 64 - (uint(op.Width) + uint(op.LSB))
	shiftRight := shiftLeft + uint(op.LSB)
	x.Scratch.WriteU64(node, uint64(src<<shiftLeft>>shiftRight))
}
