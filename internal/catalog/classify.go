package catalog

import "github.com/KevinKickass/OpenIOTable/internal/types"

// Groups holds equipment partitioned by channel class, each group in input order.
type Groups map[types.ChannelClass][]types.EquipmentItem

// Items returns the equipment of one class.
func (g Groups) Items(class types.ChannelClass) []types.EquipmentItem {
	return g[class]
}

// Classify partitions items by the channel class of their model in a single pass.
// Items whose model matches no profile are left out.
func (c *Catalog) Classify(items []types.EquipmentItem) Groups {
	groups := make(Groups, len(types.ChannelClasses))
	for _, class := range types.ChannelClasses {
		groups[class] = make([]types.EquipmentItem, 0)
	}

	for _, item := range items {
		profile, ok := c.Lookup(item.SpecModel)
		if !ok {
			continue
		}
		groups[profile.ChannelClass] = append(groups[profile.ChannelClass], item)
	}

	return groups
}
