package iotable

// Column headers. The spreadsheet consumer maps fields to columns by these names.
const (
	HeaderIndex              = "序号"
	HeaderModuleName         = "模块名称"
	HeaderModuleType         = "模块类型"
	HeaderPowerSupplyType    = "供电类型（有源/无源）"
	HeaderWireSystem         = "线制"
	HeaderChannelTag         = "通道位号"
	HeaderTag                = "位号"
	HeaderStationName        = "场站名"
	HeaderVariableNameHMI    = "变量名称（HMI）"
	HeaderVariableDesc       = "变量描述"
	HeaderDataType           = "数据类型"
	HeaderReadWrite          = "读写属性"
	HeaderSaveHistory        = "保存历史"
	HeaderPowerOffProtect    = "掉电保护"
	HeaderRangeLowerLimit    = "量程低限"
	HeaderRangeUpperLimit    = "量程高限"
	HeaderSLLValue           = "SLL设定值"
	HeaderSLLSetpoint        = "SLL设定点位"
	HeaderSLLSetpointPLC     = "SLL设定点位_PLC地址"
	HeaderSLLSetpointComm    = "SLL设定点位_通讯地址"
	HeaderSLValue            = "SL设定值"
	HeaderSLSetpoint         = "SL设定点位"
	HeaderSLSetpointPLC      = "SL设定点位_PLC地址"
	HeaderSLSetpointComm     = "SL设定点位_通讯地址"
	HeaderSHValue            = "SH设定值"
	HeaderSHSetpoint         = "SH设定点位"
	HeaderSHSetpointPLC      = "SH设定点位_PLC地址"
	HeaderSHSetpointComm     = "SH设定点位_通讯地址"
	HeaderSHHValue           = "SHH设定值"
	HeaderSHHSetpoint        = "SHH设定点位"
	HeaderSHHSetpointPLC     = "SHH设定点位_PLC地址"
	HeaderSHHSetpointComm    = "SHH设定点位_通讯地址"
	HeaderLLAlarm            = "LL报警"
	HeaderLLAlarmPLC         = "LL报警_PLC地址"
	HeaderLLAlarmComm        = "LL报警_通讯地址"
	HeaderLAlarm             = "L报警"
	HeaderLAlarmPLC          = "L报警_PLC地址"
	HeaderLAlarmComm         = "L报警_通讯地址"
	HeaderHAlarm             = "H报警"
	HeaderHAlarmPLC          = "H报警_PLC地址"
	HeaderHAlarmComm         = "H报警_通讯地址"
	HeaderHHAlarm            = "HH报警"
	HeaderHHAlarmPLC         = "HH报警_PLC地址"
	HeaderHHAlarmComm        = "HH报警_通讯地址"
	HeaderMaintenanceValue   = "维护值设定"
	HeaderMaintenanceSetpt   = "维护值设定点位"
	HeaderMaintenanceSetPLC  = "维护值设定点位_PLC地址"
	HeaderMaintenanceSetComm = "维护值设定点位_通讯地址"
	HeaderMaintenanceSwitch  = "维护使能开关点位"
	HeaderMaintenanceSwPLC   = "维护使能开关点位_PLC地址"
	HeaderMaintenanceSwComm  = "维护使能开关点位_通讯地址"
	HeaderPLCAbsoluteAddress = "PLC绝对地址"
	HeaderHostCommAddress    = "上位机通讯地址"
)

type column struct {
	header  string
	jsonKey string
	field   func(*IOPoint) *string
}

var columns = []column{
	{HeaderIndex, "index", func(p *IOPoint) *string { return &p.Index }},
	{HeaderModuleName, "module_name", func(p *IOPoint) *string { return &p.ModuleName }},
	{HeaderModuleType, "module_type", func(p *IOPoint) *string { return &p.ModuleType }},
	{HeaderPowerSupplyType, "power_supply_type", func(p *IOPoint) *string { return &p.PowerSupplyType }},
	{HeaderWireSystem, "wire_system", func(p *IOPoint) *string { return &p.WireSystem }},
	{HeaderChannelTag, "channel_tag", func(p *IOPoint) *string { return &p.ChannelTag }},
	{HeaderTag, "tag", func(p *IOPoint) *string { return &p.Tag }},
	{HeaderStationName, "station_name", func(p *IOPoint) *string { return &p.StationName }},
	{HeaderVariableNameHMI, "variable_name_hmi", func(p *IOPoint) *string { return &p.VariableNameHMI }},
	{HeaderVariableDesc, "variable_description", func(p *IOPoint) *string { return &p.VariableDesc }},
	{HeaderDataType, "data_type", func(p *IOPoint) *string { return &p.DataType }},
	{HeaderReadWrite, "read_write_property", func(p *IOPoint) *string { return &p.ReadWrite }},
	{HeaderSaveHistory, "save_history", func(p *IOPoint) *string { return &p.SaveHistory }},
	{HeaderPowerOffProtect, "power_off_protection", func(p *IOPoint) *string { return &p.PowerOffProtect }},
	{HeaderRangeLowerLimit, "range_lower_limit", func(p *IOPoint) *string { return &p.RangeLowerLimit }},
	{HeaderRangeUpperLimit, "range_upper_limit", func(p *IOPoint) *string { return &p.RangeUpperLimit }},
	{HeaderSLLValue, "sll_value", func(p *IOPoint) *string { return &p.SLLValue }},
	{HeaderSLLSetpoint, "sll_setpoint", func(p *IOPoint) *string { return &p.SLLSetpoint }},
	{HeaderSLLSetpointPLC, "sll_setpoint_plc_address", func(p *IOPoint) *string { return &p.SLLSetpointPLC }},
	{HeaderSLLSetpointComm, "sll_setpoint_comm_address", func(p *IOPoint) *string { return &p.SLLSetpointComm }},
	{HeaderSLValue, "sl_value", func(p *IOPoint) *string { return &p.SLValue }},
	{HeaderSLSetpoint, "sl_setpoint", func(p *IOPoint) *string { return &p.SLSetpoint }},
	{HeaderSLSetpointPLC, "sl_setpoint_plc_address", func(p *IOPoint) *string { return &p.SLSetpointPLC }},
	{HeaderSLSetpointComm, "sl_setpoint_comm_address", func(p *IOPoint) *string { return &p.SLSetpointComm }},
	{HeaderSHValue, "sh_value", func(p *IOPoint) *string { return &p.SHValue }},
	{HeaderSHSetpoint, "sh_setpoint", func(p *IOPoint) *string { return &p.SHSetpoint }},
	{HeaderSHSetpointPLC, "sh_setpoint_plc_address", func(p *IOPoint) *string { return &p.SHSetpointPLC }},
	{HeaderSHSetpointComm, "sh_setpoint_comm_address", func(p *IOPoint) *string { return &p.SHSetpointComm }},
	{HeaderSHHValue, "shh_value", func(p *IOPoint) *string { return &p.SHHValue }},
	{HeaderSHHSetpoint, "shh_setpoint", func(p *IOPoint) *string { return &p.SHHSetpoint }},
	{HeaderSHHSetpointPLC, "shh_setpoint_plc_address", func(p *IOPoint) *string { return &p.SHHSetpointPLC }},
	{HeaderSHHSetpointComm, "shh_setpoint_comm_address", func(p *IOPoint) *string { return &p.SHHSetpointComm }},
	{HeaderLLAlarm, "ll_alarm", func(p *IOPoint) *string { return &p.LLAlarm }},
	{HeaderLLAlarmPLC, "ll_alarm_plc_address", func(p *IOPoint) *string { return &p.LLAlarmPLC }},
	{HeaderLLAlarmComm, "ll_alarm_comm_address", func(p *IOPoint) *string { return &p.LLAlarmComm }},
	{HeaderLAlarm, "l_alarm", func(p *IOPoint) *string { return &p.LAlarm }},
	{HeaderLAlarmPLC, "l_alarm_plc_address", func(p *IOPoint) *string { return &p.LAlarmPLC }},
	{HeaderLAlarmComm, "l_alarm_comm_address", func(p *IOPoint) *string { return &p.LAlarmComm }},
	{HeaderHAlarm, "h_alarm", func(p *IOPoint) *string { return &p.HAlarm }},
	{HeaderHAlarmPLC, "h_alarm_plc_address", func(p *IOPoint) *string { return &p.HAlarmPLC }},
	{HeaderHAlarmComm, "h_alarm_comm_address", func(p *IOPoint) *string { return &p.HAlarmComm }},
	{HeaderHHAlarm, "hh_alarm", func(p *IOPoint) *string { return &p.HHAlarm }},
	{HeaderHHAlarmPLC, "hh_alarm_plc_address", func(p *IOPoint) *string { return &p.HHAlarmPLC }},
	{HeaderHHAlarmComm, "hh_alarm_comm_address", func(p *IOPoint) *string { return &p.HHAlarmComm }},
	{HeaderMaintenanceValue, "maintenance_value", func(p *IOPoint) *string { return &p.MaintenanceValue }},
	{HeaderMaintenanceSetpt, "maintenance_setpoint", func(p *IOPoint) *string { return &p.MaintenanceSetpt }},
	{HeaderMaintenanceSetPLC, "maintenance_setpoint_plc_address", func(p *IOPoint) *string { return &p.MaintenanceSetPLC }},
	{HeaderMaintenanceSetComm, "maintenance_setpoint_comm_address", func(p *IOPoint) *string { return &p.MaintenanceSetComm }},
	{HeaderMaintenanceSwitch, "maintenance_enable_switch", func(p *IOPoint) *string { return &p.MaintenanceSwitch }},
	{HeaderMaintenanceSwPLC, "maintenance_enable_switch_plc_address", func(p *IOPoint) *string { return &p.MaintenanceSwPLC }},
	{HeaderMaintenanceSwComm, "maintenance_enable_switch_comm_address", func(p *IOPoint) *string { return &p.MaintenanceSwComm }},
	{HeaderPLCAbsoluteAddress, "plc_absolute_address", func(p *IOPoint) *string { return &p.PLCAbsoluteAddress }},
	{HeaderHostCommAddress, "host_comm_address", func(p *IOPoint) *string { return &p.HostCommAddress }},
}

var columnIndex = func() map[string]int {
	m := make(map[string]int, len(columns))
	for i, c := range columns {
		m[c.header] = i
	}
	return m
}()

// Column describes one sheet column: its header and the JSON key of the field
// it holds.
type Column struct {
	Header  string `json:"header"`
	JSONKey string `json:"json_key"`
}

var columnList = func() []Column {
	out := make([]Column, len(columns))
	for i, c := range columns {
		out[i] = Column{Header: c.header, JSONKey: c.jsonKey}
	}
	return out
}()

// Columns returns the column table in sheet order.
func Columns() []Column {
	out := make([]Column, len(columnList))
	copy(out, columnList)
	return out
}

// Headers returns the column headers in table order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// ColumnNumber returns the 1-based column of header, or 0 when unknown.
func ColumnNumber(header string) int {
	i, ok := columnIndex[header]
	if !ok {
		return 0
	}
	return i + 1
}
