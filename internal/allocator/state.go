package allocator

import (
	"github.com/KevinKickass/OpenIOTable/internal/modbus"
	"github.com/KevinKickass/OpenIOTable/internal/types"
)

// Counter origins. Every build starts from these; nothing carries over between builds.
const (
	RealOrigin     uint32 = 320
	RealStride     uint32 = 4
	BoolOriginByte uint32 = 20

	FirstRack uint32 = 1
	// Slot 1 holds the communication module.
	FirstSlot uint32 = 2
	LastSlot  uint32 = 11
)

// State is the mutable allocation state of a single build. It is not safe for
// concurrent use and must not be shared between builds.
type State struct {
	realCursor uint32
	boolByte   uint32
	boolBit    uint8

	rack         uint32
	slot         uint32
	rackCapacity uint32

	moduleCounters map[types.ChannelClass]uint32
}

// New returns a state at the fixed origins for a station with rackCapacity racks.
func New(rackCapacity uint32) *State {
	counters := make(map[types.ChannelClass]uint32, len(types.ChannelClasses))
	for _, class := range types.ChannelClasses {
		counters[class] = 1
	}

	return &State{
		realCursor:     RealOrigin,
		boolByte:       BoolOriginByte,
		boolBit:        0,
		rack:           FirstRack,
		slot:           FirstSlot,
		rackCapacity:   rackCapacity,
		moduleCounters: counters,
	}
}

// NextReal hands out the next %MD address.
func (s *State) NextReal() modbus.Address {
	addr := modbus.RealAddress(s.realCursor)
	s.realCursor += RealStride
	return addr
}

// NextBool hands out the next %MX address, rolling to the next byte after bit 7.
func (s *State) NextBool() modbus.Address {
	addr := modbus.BoolAddress(s.boolByte, s.boolBit)
	if s.boolBit < modbus.MaxBit {
		s.boolBit++
	} else {
		s.boolByte++
		s.boolBit = 0
	}
	return addr
}

// Next hands out an address of the given register type.
func (s *State) Next(rt types.RegisterType) modbus.Address {
	if rt == types.RegisterTypeReal {
		return s.NextReal()
	}
	return s.NextBool()
}

// ModuleNumber returns the 1-based number the next module of class will get.
func (s *State) ModuleNumber(class types.ChannelClass) uint32 {
	return s.moduleCounters[class]
}

// Snapshot is a read-only copy of the cursors.
type Snapshot struct {
	RealCursor uint32 `json:"real_cursor"`
	BoolByte   uint32 `json:"bool_byte"`
	BoolBit    uint8  `json:"bool_bit"`
	Rack       uint32 `json:"rack"`
	Slot       uint32 `json:"slot"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		RealCursor: s.realCursor,
		BoolByte:   s.boolByte,
		BoolBit:    s.boolBit,
		Rack:       s.rack,
		Slot:       s.slot,
	}
}

// BoolOffset is the number of bits between the origin and the cursor.
func (s Snapshot) BoolOffset() uint32 {
	return (s.BoolByte-BoolOriginByte)*8 + uint32(s.BoolBit)
}
