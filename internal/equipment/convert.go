package equipment

import (
	"errors"
	"fmt"
	"math"

	"github.com/KevinKickass/OpenIOTable/internal/allocator"
	"github.com/KevinKickass/OpenIOTable/internal/types"
)

// ConvertItems converts loosely typed equipment records, as delivered by the
// project data source, into equipment items. Records missing a name, model,
// numeric quantity or station name are dropped. Fractional quantities are
// truncated and negative ones become zero.
func ConvertItems(raw []map[string]any) []types.EquipmentItem {
	items := make([]types.EquipmentItem, 0, len(raw))
	for _, r := range raw {
		name, ok := r["name"].(string)
		if !ok {
			continue
		}
		model, ok := r["model"].(string)
		if !ok {
			continue
		}
		quantity, ok := toQuantity(r["quantity"])
		if !ok {
			continue
		}
		station, ok := r["station_name"].(string)
		if !ok {
			continue
		}

		items = append(items, types.EquipmentItem{
			EquipmentName: name,
			SpecModel:     model,
			Quantity:      quantity,
			StationName:   station,
		})
	}
	return items
}

func toQuantity(v any) (uint32, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint32:
		return n, true
	default:
		return 0, false
	}
	if math.IsNaN(f) || f <= 0 {
		return 0, true
	}
	if f >= math.MaxUint32 {
		return math.MaxUint32, true
	}
	return uint32(f), true
}

// MaxQuantity is the largest quantity of one equipment item: every slot of the
// largest station allowed.
const MaxQuantity = uint32(allocator.MaxRackCount) * allocator.SlotsPerRack

// ErrQuantityRange is returned for items whose quantity exceeds MaxQuantity.
var ErrQuantityRange = errors.New("equipment quantity out of range")

// CheckQuantities rejects items whose quantity cannot be placed by any station.
func CheckQuantities(items []types.EquipmentItem) error {
	for _, item := range items {
		if item.Quantity > MaxQuantity {
			return fmt.Errorf("%w: %s (%s) has quantity %d, at most %d",
				ErrQuantityRange, item.EquipmentName, item.SpecModel, item.Quantity, MaxQuantity)
		}
	}
	return nil
}
