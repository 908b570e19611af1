package catalog

import (
	"math"

	"github.com/KevinKickass/OpenIOTable/internal/types"
)

// ChannelTotal is the number of channels of one class and their data type.
type ChannelTotal struct {
	Count    uint64 `json:"count"`
	DataType string `json:"data_type"`
}

// Summary maps a channel class name to its totals.
type Summary map[string]ChannelTotal

// Summarize counts channels per class without building a point table. All four
// classes are always present. The data type of a class is the register type of
// its catalog profile. Counts saturate at math.MaxUint64.
func (c *Catalog) Summarize(items []types.EquipmentItem) Summary {
	summary := make(Summary, len(types.ChannelClasses))
	for _, class := range types.ChannelClasses {
		summary[string(class)] = ChannelTotal{DataType: string(c.registerType(class))}
	}

	for _, item := range items {
		if item.SpecModel == "" || item.Quantity == 0 {
			continue
		}
		profile, ok := c.Lookup(item.SpecModel)
		if !ok {
			continue
		}

		total := summary[string(profile.ChannelClass)]
		n := uint64(item.Quantity) * uint64(profile.ChannelCount)
		if total.Count > math.MaxUint64-n {
			total.Count = math.MaxUint64
		} else {
			total.Count += n
		}
		total.DataType = string(profile.RegisterType)
		summary[string(profile.ChannelClass)] = total
	}

	return summary
}

// registerType is the register type of the first profile of class, falling
// back to REAL for analog and BOOL for digital classes.
func (c *Catalog) registerType(class types.ChannelClass) types.RegisterType {
	for _, p := range c.profiles {
		if p.ChannelClass == class {
			return p.RegisterType
		}
	}
	if class.IsAnalog() {
		return types.RegisterTypeReal
	}
	return types.RegisterTypeBool
}
