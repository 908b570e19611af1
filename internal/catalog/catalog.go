package catalog

import (
	"strings"

	"github.com/KevinKickass/OpenIOTable/internal/types"
)

// RackModelKey marks the rack module; its quantity is the number of racks available.
const RackModelKey = "LK117"

// Catalog maps model codes to channel profiles. Matching is by substring and the
// first profile in declaration order wins.
type Catalog struct {
	profiles []types.ChannelProfile
}

// New creates a catalog from an ordered profile list.
func New(profiles []types.ChannelProfile) *Catalog {
	p := make([]types.ChannelProfile, len(profiles))
	copy(p, profiles)
	return &Catalog{profiles: p}
}

// Default returns the built-in LK series catalog.
func Default() *Catalog {
	return New([]types.ChannelProfile{
		{ModelKey: "LK610", ChannelClass: types.ChannelClassDI, ChannelCount: 16, RegisterType: types.RegisterTypeBool},
		{ModelKey: "LK710", ChannelClass: types.ChannelClassDO, ChannelCount: 16, RegisterType: types.RegisterTypeBool},
		{ModelKey: "LK411", ChannelClass: types.ChannelClassAI, ChannelCount: 8, RegisterType: types.RegisterTypeReal},
		{ModelKey: "LK512", ChannelClass: types.ChannelClassAO, ChannelCount: 8, RegisterType: types.RegisterTypeReal},
	})
}

// Lookup returns the first profile whose model key is contained in specModel.
func (c *Catalog) Lookup(specModel string) (types.ChannelProfile, bool) {
	if specModel == "" {
		return types.ChannelProfile{}, false
	}
	for _, p := range c.profiles {
		if strings.Contains(specModel, p.ModelKey) {
			return p, true
		}
	}
	return types.ChannelProfile{}, false
}

// Profiles returns a copy of the ordered profile list.
func (c *Catalog) Profiles() []types.ChannelProfile {
	p := make([]types.ChannelProfile, len(c.profiles))
	copy(p, c.profiles)
	return p
}

// RackCount returns the quantity of the first rack module in the list, or 1 when
// the list carries none.
func RackCount(items []types.EquipmentItem) uint32 {
	for _, item := range items {
		if strings.Contains(item.SpecModel, RackModelKey) {
			return item.Quantity
		}
	}
	return 1
}
