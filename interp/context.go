package interp

import (
	"encoding/binary"
	"math"

	"github.com/emberemu/ember/ir"
	"github.com/emberemu/ember/log"
)

// SlotSize is the per-node allotment in the scratch arena. Wide enough for
// the largest result an ALU op produces (16 bytes).
const SlotSize = 16

// Scratch is the SSA scratch buffer for one block execution: a flat byte
// arena holding every node's runtime value at a fixed 16-byte stride.
// Values are stored little endian. The buffer is owned by the execution
// loop and is thread local by contract.
type Scratch struct {
	data []byte
}

// NewScratch allocates a scratch buffer sized for nodes SSA values.
func NewScratch(nodes int) *Scratch {
	return &Scratch{data: make([]byte, nodes*SlotSize)}
}

func (s *Scratch) slot(id ir.NodeID) []byte {
	off := int(id) * SlotSize
	return s.data[off : off+SlotSize]
}

// ReadUint reads a node's value zero-extended from the given byte width.
func (s *Scratch) ReadUint(id ir.NodeID, width uint8) uint64 {
	b := s.slot(id)
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	default:
		log.Crit(log.InterpMonitoring, "unsupported scratch read width", "width", width)
		return 0
	}
}

// ReadU64 reads the full 8-byte scalar of a node's slot. Handlers use this
// for operands they then truncate to the declared width themselves.
func (s *Scratch) ReadU64(id ir.NodeID) uint64 {
	return binary.LittleEndian.Uint64(s.slot(id))
}

// ReadU128 reads a 16-byte value as a low/high pair.
func (s *Scratch) ReadU128(id ir.NodeID) (lo, hi uint64) {
	b := s.slot(id)
	return binary.LittleEndian.Uint64(b), binary.LittleEndian.Uint64(b[8:])
}

func (s *Scratch) ReadF32(id ir.NodeID) float32 {
	return math.Float32frombits(uint32(s.ReadU64(id)))
}

func (s *Scratch) ReadF64(id ir.NodeID) float64 {
	return math.Float64frombits(s.ReadU64(id))
}

// WriteU64 stores a zero-extended 64-bit scalar result (the GD write).
func (s *Scratch) WriteU64(id ir.NodeID, v uint64) {
	binary.LittleEndian.PutUint64(s.slot(id), v)
}

// WriteU128 stores a 16-byte result as a low/high pair.
func (s *Scratch) WriteU128(id ir.NodeID, lo, hi uint64) {
	b := s.slot(id)
	binary.LittleEndian.PutUint64(b, lo)
	binary.LittleEndian.PutUint64(b[8:], hi)
}

// WriteBytes copies exactly len(src) bytes into the node's slot (the GDP
// write for results narrower than a full scalar store).
func (s *Scratch) WriteBytes(id ir.NodeID, src []byte) {
	copy(s.slot(id), src)
}

// Context carries everything a handler touches during one block execution:
// the scratch buffer, the program for operand width lookups, and the guest
// address of the block's first instruction.
type Context struct {
	Scratch      *Scratch
	Program      *ir.Program
	CurrentEntry uint64
}
