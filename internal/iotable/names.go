package iotable

import (
	"fmt"

	"github.com/KevinKickass/OpenIOTable/internal/types"
)

// NameMode selects how sub-point names of REAL points are written.
type NameMode string

const (
	// NameModeValue writes the finished name.
	NameModeValue NameMode = "value"
	// NameModeFormula writes a spreadsheet formula that reads the HMI name cell.
	NameModeFormula NameMode = "formula"
)

// ParseNameMode accepts "value", "formula" or "" (value).
func ParseNameMode(s string) (NameMode, error) {
	switch NameMode(s) {
	case "", NameModeValue:
		return NameModeValue, nil
	case NameModeFormula:
		return NameModeFormula, nil
	default:
		return "", fmt.Errorf("unknown name mode %q", s)
	}
}

// subPoint is an auxiliary point of an analog channel. The order of subPoints is
// the allocation order.
type subPoint struct {
	suffix       string
	registerType types.RegisterType
	name         string
	plc          string
	comm         string
}

var subPoints = []subPoint{
	{"_LoLoLimit", types.RegisterTypeReal, HeaderSLLSetpoint, HeaderSLLSetpointPLC, HeaderSLLSetpointComm},
	{"_LoLimit", types.RegisterTypeReal, HeaderSLSetpoint, HeaderSLSetpointPLC, HeaderSLSetpointComm},
	{"_HiLimit", types.RegisterTypeReal, HeaderSHSetpoint, HeaderSHSetpointPLC, HeaderSHSetpointComm},
	{"_HiHiLimit", types.RegisterTypeReal, HeaderSHHSetpoint, HeaderSHHSetpointPLC, HeaderSHHSetpointComm},
	{"_LL", types.RegisterTypeBool, HeaderLLAlarm, HeaderLLAlarmPLC, HeaderLLAlarmComm},
	{"_L", types.RegisterTypeBool, HeaderLAlarm, HeaderLAlarmPLC, HeaderLAlarmComm},
	{"_H", types.RegisterTypeBool, HeaderHAlarm, HeaderHAlarmPLC, HeaderHAlarmComm},
	{"_HH", types.RegisterTypeBool, HeaderHHAlarm, HeaderHHAlarmPLC, HeaderHHAlarmComm},
	{"_whz", types.RegisterTypeReal, HeaderMaintenanceSetpt, HeaderMaintenanceSetPLC, HeaderMaintenanceSetComm},
	{"_whzzt", types.RegisterTypeBool, HeaderMaintenanceSwitch, HeaderMaintenanceSwPLC, HeaderMaintenanceSwComm},
}

var subPointNameHeaders = func() map[string]bool {
	m := make(map[string]bool, len(subPoints))
	for _, sp := range subPoints {
		m[sp.name] = true
	}
	return m
}()

// IsSubPointNameColumn reports whether header is one of the sub-point name
// columns, the only columns that hold formulas in formula mode.
func IsSubPointNameColumn(header string) bool {
	return subPointNameHeaders[header]
}

// SubPointName is the display name of a sub-point: the HMI name followed by the
// suffix, or the suffix alone when no HMI name has been entered.
func SubPointName(hmiName, suffix string) string {
	if hmiName == "" {
		return suffix
	}
	return hmiName + suffix
}

// subPointFormula evaluates to SubPointName in a spreadsheet. row is the 1-based
// sheet row of the point.
func subPointFormula(row int, suffix string) string {
	cell := fmt.Sprintf("%s%d", columnLetter(ColumnNumber(HeaderVariableNameHMI)), row)
	return fmt.Sprintf(`=IF(ISBLANK(%s),"%s",%s&"%s")`, cell, suffix, cell, suffix)
}

func columnLetter(n int) string {
	var out []byte
	for n > 0 {
		m := (n - 1) % 26
		out = append([]byte{byte('A' + m)}, out...)
		n = (n - m - 1) / 26
	}
	return string(out)
}

// nameSubPoints writes the sub-point name columns of a REAL point.
func nameSubPoints(p *IOPoint, mode NameMode, row int) {
	for _, sp := range subPoints {
		if mode == NameModeFormula {
			p.SetField(sp.name, subPointFormula(row, sp.suffix))
			continue
		}
		p.SetField(sp.name, SubPointName(p.VariableNameHMI, sp.suffix))
	}
}
