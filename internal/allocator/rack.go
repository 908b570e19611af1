package allocator

import (
	"errors"
	"fmt"

	"github.com/KevinKickass/OpenIOTable/internal/types"
)

// ErrSlotOverflow is matched by every *SlotOverflowError.
var ErrSlotOverflow = errors.New("io modules exceed available racks")

// SlotOverflowError reports that a module needed a rack the station does not have.
type SlotOverflowError struct {
	RackCount    uint32 `json:"rack_count"`
	RequiredRack uint32 `json:"required_rack"`
}

func (e *SlotOverflowError) Error() string {
	return fmt.Sprintf("io modules exceed available racks: rack_count=%d, required_rack=%d",
		e.RackCount, e.RequiredRack)
}

func (e *SlotOverflowError) Is(target error) bool {
	return target == ErrSlotOverflow
}

// SlotsPerRack is the number of I/O module slots of one rack.
const SlotsPerRack = LastSlot - FirstSlot + 1

// MaxRackCount bounds the rack count of a station. It keeps every address
// cursor far below its wrap-around point.
const MaxRackCount uint32 = 1000

// ErrRackCount is returned for a rack count above MaxRackCount.
var ErrRackCount = errors.New("rack count out of range")

// UnitCapacity is the number of modules a station with rackCapacity racks can
// place. Rack 1 is usable even with a capacity of 0.
func UnitCapacity(rackCapacity uint32) uint64 {
	return uint64(max(rackCapacity, FirstRack)) * uint64(SlotsPerRack)
}

// CheckCapacity reports up front the error PlaceUnit would return while placing
// units modules, so a build can be rejected before allocating anything.
func CheckCapacity(rackCapacity uint32, units uint64) error {
	if rackCapacity > MaxRackCount {
		return fmt.Errorf("%w: %d racks, at most %d", ErrRackCount, rackCapacity, MaxRackCount)
	}
	if units > UnitCapacity(rackCapacity) {
		return &SlotOverflowError{
			RackCount:    rackCapacity,
			RequiredRack: max(rackCapacity, FirstRack) + 1,
		}
	}
	return nil
}

// Position is the physical location of one module.
type Position struct {
	Rack uint32 `json:"rack"`
	Slot uint32 `json:"slot"`
}

// PlaceUnit returns the position of the next module. It moves to the next rack
// once slot 11 has been used and fails when that rack exceeds the capacity.
// The capacity is only checked on a rack change, so rack 1 is always usable.
func (s *State) PlaceUnit() (Position, error) {
	if s.slot > LastSlot {
		s.rack++
		s.slot = FirstSlot

		if s.rack > s.rackCapacity {
			return Position{}, &SlotOverflowError{
				RackCount:    s.rackCapacity,
				RequiredRack: s.rack,
			}
		}
	}
	return Position{Rack: s.rack, Slot: s.slot}, nil
}

// FinishUnit is called after all channels of a module have been allocated.
func (s *State) FinishUnit(class types.ChannelClass) {
	s.moduleCounters[class]++
	s.slot++
}
