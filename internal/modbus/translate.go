package modbus

import "github.com/KevinKickass/OpenIOTable/internal/types"

// Host communication address bases. These come from the legacy spreadsheet
// formulas and must not change.
const (
	RealBase = 43001
	BoolBase = 3001
)

// Modbus returns the host communication address of a.
//
//	REAL: word/2 + 43001
//	BOOL: byte*8 + bit + 3001
func (a Address) Modbus() uint32 {
	if a.Type == types.RegisterTypeReal {
		return a.Word/2 + RealBase
	}
	return a.Byte*8 + uint32(a.Bit) + BoolBase
}

// Translate parses a textual PLC address and returns its host communication address.
func Translate(plcAddress string) (uint32, error) {
	addr, err := ParseAddress(plcAddress)
	if err != nil {
		return 0, err
	}
	return addr.Modbus(), nil
}
