package equipment

import "github.com/KevinKickass/OpenIOTable/internal/types"

// Document is an equipment list file for one station.
type Document struct {
	StationName   string                `json:"station_name" yaml:"station_name"`
	ProjectNumber string                `json:"project_number,omitempty" yaml:"project_number,omitempty"`
	Equipment     []types.EquipmentItem `json:"equipment" yaml:"equipment"`
}

// Items returns the equipment with the document's station filled in where an
// item does not name its own.
func (d *Document) Items() []types.EquipmentItem {
	items := make([]types.EquipmentItem, len(d.Equipment))
	for i, item := range d.Equipment {
		if item.StationName == "" {
			item.StationName = d.StationName
		}
		items[i] = item
	}
	return items
}
