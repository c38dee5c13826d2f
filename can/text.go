package can

import (
	"fmt"
	"strings"
)

// ParseByteOrder accepts the DBC digit ("0", "1") and the usual names.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "motorola", "big_endian", "bigendian", "big":
		return Motorola, nil
	case "1", "intel", "little_endian", "littleendian", "little":
		return Intel, nil
	}
	return 0, fmt.Errorf("unknown byte order %q", s)
}

func (o ByteOrder) MarshalText() ([]byte, error) {
	if o != Motorola && o != Intel {
		return nil, fmt.Errorf("unknown byte order %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *ByteOrder) UnmarshalText(text []byte) error {
	v, err := ParseByteOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ParseValueKind accepts the DBC sign character ("+", "-") and the kind
// names. An empty string is Unsigned.
func ParseValueKind(s string) (ValueKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "+", "u", "unsigned":
		return Unsigned, nil
	case "-", "s", "signed":
		return Signed, nil
	case "f", "float", "ieee":
		return Float, nil
	}
	return 0, fmt.Errorf("unknown value type %q", s)
}

func (k ValueKind) MarshalText() ([]byte, error) {
	if k < Unsigned || k > Float {
		return nil, fmt.Errorf("unknown value type %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ValueKind) UnmarshalText(text []byte) error {
	v, err := ParseValueKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
