package types

// EquipmentItem is one line of a station's bill of equipment. A single item may
// stand for several physical modules when Quantity > 1.
type EquipmentItem struct {
	EquipmentName string `json:"name" yaml:"name"`
	SpecModel     string `json:"model" yaml:"model"`
	Quantity      uint32 `json:"quantity" yaml:"quantity"`
	StationName   string `json:"station_name" yaml:"station_name"`
}

type ChannelClass string

const (
	ChannelClassAI ChannelClass = "AI"
	ChannelClassAO ChannelClass = "AO"
	ChannelClassDI ChannelClass = "DI"
	ChannelClassDO ChannelClass = "DO"
)

// ChannelClasses is the fixed processing order of a point table build.
var ChannelClasses = []ChannelClass{
	ChannelClassAI,
	ChannelClassAO,
	ChannelClassDI,
	ChannelClassDO,
}

// IsAnalog reports whether channels of this class carry setpoint and alarm sub-points.
func (c ChannelClass) IsAnalog() bool {
	return c == ChannelClassAI || c == ChannelClassAO
}

type RegisterType string

const (
	RegisterTypeReal RegisterType = "REAL"
	RegisterTypeBool RegisterType = "BOOL"
)

// ChannelProfile describes the I/O a module model contributes.
type ChannelProfile struct {
	ModelKey     string       `json:"model_key"`
	ChannelClass ChannelClass `json:"channel_class"`
	ChannelCount uint32       `json:"channel_count"`
	RegisterType RegisterType `json:"register_type"`
}
