package iotable

import (
	"fmt"
	"strconv"

	"github.com/KevinKickass/OpenIOTable/internal/allocator"
	"github.com/KevinKickass/OpenIOTable/internal/catalog"
	"github.com/KevinKickass/OpenIOTable/internal/types"
	"go.uber.org/zap"
)

const (
	readWriteProperty = "R/W"
	yesMarker         = "是"
)

// Builder turns an equipment list into a point table. A Builder holds no build
// state and may be used from several goroutines.
type Builder struct {
	catalog  *catalog.Catalog
	nameMode NameMode
	logger   *zap.Logger
}

type Option func(*Builder)

// WithNameMode selects how REAL sub-point names are written.
func WithNameMode(mode NameMode) Option {
	return func(b *Builder) {
		b.nameMode = mode
	}
}

func NewBuilder(cat *catalog.Catalog, logger *zap.Logger, opts ...Option) *Builder {
	b := &Builder{
		catalog:  cat,
		nameMode: NameModeValue,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build allocates rack positions and PLC addresses for every channel of every
// module in items. On error no table is returned.
func (b *Builder) Build(stationName string, items []types.EquipmentItem) (*Table, error) {
	rackCount := catalog.RackCount(items)
	state := allocator.New(rackCount)
	groups := b.catalog.Classify(items)

	b.logger.Debug("Building point table",
		zap.String("station", stationName),
		zap.Int("equipment_items", len(items)),
		zap.Uint32("rack_count", rackCount))

	units := b.countUnits(groups)
	if err := allocator.CheckCapacity(rackCount, units); err != nil {
		return nil, fmt.Errorf("failed to place %d modules: %w", units, err)
	}

	points := make([]IOPoint, 0)

	for _, class := range types.ChannelClasses {
		for _, item := range groups.Items(class) {
			profile, ok := b.catalog.Lookup(item.SpecModel)
			if !ok {
				continue
			}

			for unit := uint32(0); unit < item.Quantity; unit++ {
				pos, err := state.PlaceUnit()
				if err != nil {
					return nil, fmt.Errorf("failed to place %s (%s): %w", item.EquipmentName, item.SpecModel, err)
				}

				for ch := uint32(0); ch < profile.ChannelCount; ch++ {
					index := len(points) + 1
					points = append(points, b.newPoint(state, index, item, profile, pos, ch))
				}

				b.logger.Debug("Module placed",
					zap.String("module", item.EquipmentName),
					zap.String("class", string(class)),
					zap.Uint32("module_number", state.ModuleNumber(class)),
					zap.Uint32("rack", pos.Rack),
					zap.Uint32("slot", pos.Slot))

				state.FinishUnit(class)
			}
		}
	}

	snap := state.Snapshot()
	b.logger.Info("Point table built",
		zap.String("station", stationName),
		zap.Int("points", len(points)),
		zap.Uint32("real_cursor", snap.RealCursor),
		zap.Uint32("bool_offset", snap.BoolOffset()))

	return &Table{
		Name:      stationName + "_IO表",
		Station:   stationName,
		NameMode:  b.nameMode,
		RackCount: rackCount,
		Summary:   b.catalog.Summarize(items),
		Points:    points,
	}, nil
}

// countUnits is the number of modules Build will place.
func (b *Builder) countUnits(groups catalog.Groups) uint64 {
	var units uint64
	for _, class := range types.ChannelClasses {
		for _, item := range groups.Items(class) {
			if _, ok := b.catalog.Lookup(item.SpecModel); ok {
				units += uint64(item.Quantity)
			}
		}
	}
	return units
}

func (b *Builder) newPoint(
	state *allocator.State,
	index int,
	item types.EquipmentItem,
	profile types.ChannelProfile,
	pos allocator.Position,
	channel uint32,
) IOPoint {
	class := profile.ChannelClass
	primary := state.Next(profile.RegisterType)

	p := IOPoint{
		Index:           strconv.Itoa(index),
		ModuleName:      item.EquipmentName,
		ModuleType:      string(class),
		ChannelTag:      fmt.Sprintf("%d_%d_%s_%d", pos.Rack, pos.Slot, class, channel),
		StationName:     item.StationName,
		DataType:        string(profile.RegisterType),
		ReadWrite:       readWriteProperty,
		SaveHistory:     yesMarker,
		PowerOffProtect: yesMarker,
		// Maintenance values are entered on the HMI, never in the table.
		MaintenanceValue:   Placeholder,
		PLCAbsoluteAddress: primary.String(),
		HostCommAddress:    strconv.FormatUint(uint64(primary.Modbus()), 10),
	}

	if class == types.ChannelClassAO {
		p.PowerSupplyType = Placeholder
		p.WireSystem = Placeholder
	}

	if !class.IsAnalog() {
		fillDigitalPlaceholders(&p)
		return p
	}

	for _, sp := range subPoints {
		addr := state.Next(sp.registerType)
		p.SetField(sp.plc, addr.String())
		p.SetField(sp.comm, strconv.FormatUint(uint64(addr.Modbus()), 10))
	}
	// Header occupies sheet row 1.
	nameSubPoints(&p, b.nameMode, index+1)

	return p
}

// fillDigitalPlaceholders marks every auxiliary column of a BOOL point as not
// applicable. No addresses are allocated for them.
func fillDigitalPlaceholders(p *IOPoint) {
	p.RangeLowerLimit = Placeholder
	p.RangeUpperLimit = Placeholder
	p.SLLValue = Placeholder
	p.SLValue = Placeholder
	p.SHValue = Placeholder
	p.SHHValue = Placeholder
	for _, sp := range subPoints {
		p.SetField(sp.name, Placeholder)
		p.SetField(sp.plc, Placeholder)
		p.SetField(sp.comm, Placeholder)
	}
}
