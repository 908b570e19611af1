package iotable

// Placeholder marks a column that does not apply to a point.
const Placeholder = "/"

// IOPoint is one row of the point table. Every field is the final cell text.
type IOPoint struct {
	Index           string `json:"index"`
	ModuleName      string `json:"module_name"`
	ModuleType      string `json:"module_type"`
	PowerSupplyType string `json:"power_supply_type"`
	WireSystem      string `json:"wire_system"`
	ChannelTag      string `json:"channel_tag"`
	Tag             string `json:"tag"`
	StationName     string `json:"station_name"`
	VariableNameHMI string `json:"variable_name_hmi"`
	VariableDesc    string `json:"variable_description"`
	DataType        string `json:"data_type"`
	ReadWrite       string `json:"read_write_property"`
	SaveHistory     string `json:"save_history"`
	PowerOffProtect string `json:"power_off_protection"`
	RangeLowerLimit string `json:"range_lower_limit"`
	RangeUpperLimit string `json:"range_upper_limit"`

	SLLValue           string `json:"sll_value"`
	SLLSetpoint        string `json:"sll_setpoint"`
	SLLSetpointPLC     string `json:"sll_setpoint_plc_address"`
	SLLSetpointComm    string `json:"sll_setpoint_comm_address"`
	SLValue            string `json:"sl_value"`
	SLSetpoint         string `json:"sl_setpoint"`
	SLSetpointPLC      string `json:"sl_setpoint_plc_address"`
	SLSetpointComm     string `json:"sl_setpoint_comm_address"`
	SHValue            string `json:"sh_value"`
	SHSetpoint         string `json:"sh_setpoint"`
	SHSetpointPLC      string `json:"sh_setpoint_plc_address"`
	SHSetpointComm     string `json:"sh_setpoint_comm_address"`
	SHHValue           string `json:"shh_value"`
	SHHSetpoint        string `json:"shh_setpoint"`
	SHHSetpointPLC     string `json:"shh_setpoint_plc_address"`
	SHHSetpointComm    string `json:"shh_setpoint_comm_address"`
	LLAlarm            string `json:"ll_alarm"`
	LLAlarmPLC         string `json:"ll_alarm_plc_address"`
	LLAlarmComm        string `json:"ll_alarm_comm_address"`
	LAlarm             string `json:"l_alarm"`
	LAlarmPLC          string `json:"l_alarm_plc_address"`
	LAlarmComm         string `json:"l_alarm_comm_address"`
	HAlarm             string `json:"h_alarm"`
	HAlarmPLC          string `json:"h_alarm_plc_address"`
	HAlarmComm         string `json:"h_alarm_comm_address"`
	HHAlarm            string `json:"hh_alarm"`
	HHAlarmPLC         string `json:"hh_alarm_plc_address"`
	HHAlarmComm        string `json:"hh_alarm_comm_address"`
	MaintenanceValue   string `json:"maintenance_value"`
	MaintenanceSetpt   string `json:"maintenance_setpoint"`
	MaintenanceSetPLC  string `json:"maintenance_setpoint_plc_address"`
	MaintenanceSetComm string `json:"maintenance_setpoint_comm_address"`
	MaintenanceSwitch  string `json:"maintenance_enable_switch"`
	MaintenanceSwPLC   string `json:"maintenance_enable_switch_plc_address"`
	MaintenanceSwComm  string `json:"maintenance_enable_switch_comm_address"`

	PLCAbsoluteAddress string `json:"plc_absolute_address"`
	HostCommAddress    string `json:"host_comm_address"`
}

// Field returns the value of the column with the given header.
func (p *IOPoint) Field(header string) (string, bool) {
	i, ok := columnIndex[header]
	if !ok {
		return "", false
	}
	return *columns[i].field(p), true
}

// SetField sets the value of the column with the given header.
func (p *IOPoint) SetField(header, value string) bool {
	i, ok := columnIndex[header]
	if !ok {
		return false
	}
	*columns[i].field(p) = value
	return true
}

// Values returns the row in column order.
func (p *IOPoint) Values() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = *c.field(p)
	}
	return out
}

// IsReal reports whether the point carries REAL data and therefore sub-points.
func (p *IOPoint) IsReal() bool {
	return p.DataType == "REAL"
}
