package modbus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KevinKickass/OpenIOTable/internal/types"
)

const (
	realPrefix = "%MD"
	boolPrefix = "%MX"

	// MaxBit is the highest bit index inside a %MX byte.
	MaxBit = 7
)

// ErrAddrParse is matched by every *AddrParseError.
var ErrAddrParse = errors.New("invalid PLC address")

// AddrParseError reports a textual PLC address that is neither %MD<n> nor %MX<n>.<0-7>.
type AddrParseError struct {
	Address string
	Reason  string
}

func (e *AddrParseError) Error() string {
	return fmt.Sprintf("invalid PLC address %q: %s", e.Address, e.Reason)
}

func (e *AddrParseError) Is(target error) bool {
	return target == ErrAddrParse
}

// Address is a PLC memory address. REAL addresses are word offsets (%MD), BOOL
// addresses are byte.bit pairs (%MX).
type Address struct {
	Type types.RegisterType
	Word uint32
	Byte uint32
	Bit  uint8
}

func RealAddress(word uint32) Address {
	return Address{Type: types.RegisterTypeReal, Word: word}
}

// BoolAddress panics on a bit outside 0..7; callers construct bits from a cursor
// that never leaves that range.
func BoolAddress(byteOffset uint32, bit uint8) Address {
	if bit > MaxBit {
		panic(fmt.Sprintf("modbus: bit %d out of range", bit))
	}
	return Address{Type: types.RegisterTypeBool, Byte: byteOffset, Bit: bit}
}

func (a Address) String() string {
	if a.Type == types.RegisterTypeReal {
		return fmt.Sprintf("%s%d", realPrefix, a.Word)
	}
	return fmt.Sprintf("%s%d.%d", boolPrefix, a.Byte, a.Bit)
}

// ParseAddress parses "%MD<digits>" or "%MX<digits>.<digit 0-7>".
func ParseAddress(s string) (Address, error) {
	switch {
	case strings.HasPrefix(s, realPrefix):
		word, err := parseDigits(s[len(realPrefix):])
		if err != nil {
			return Address{}, &AddrParseError{Address: s, Reason: "word offset " + err.Error()}
		}
		return RealAddress(word), nil

	case strings.HasPrefix(s, boolPrefix):
		byteStr, bitStr, ok := strings.Cut(s[len(boolPrefix):], ".")
		if !ok {
			return Address{}, &AddrParseError{Address: s, Reason: "missing bit separator"}
		}
		byteOffset, err := parseDigits(byteStr)
		if err != nil {
			return Address{}, &AddrParseError{Address: s, Reason: "byte offset " + err.Error()}
		}
		if len(bitStr) != 1 || bitStr[0] < '0' || bitStr[0] > '0'+MaxBit {
			return Address{}, &AddrParseError{Address: s, Reason: "bit must be a single digit 0-7"}
		}
		return BoolAddress(byteOffset, bitStr[0]-'0'), nil

	default:
		return Address{}, &AddrParseError{Address: s, Reason: "unknown prefix"}
	}
}

func parseDigits(s string) (uint32, error) {
	if s == "" {
		return 0, errors.New("is empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("contains non-digit %q", r)
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.New("out of range")
	}
	return uint32(n), nil
}
