package can

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const (
	MaxStandardID = 0x7FF
	MaxExtendedID = 0x1FFFFFFF
)

// Frame is a CAN or CAN FD frame with its payload.
type Frame struct {
	ID       uint32
	Extended bool
	FD       bool
	Data     []byte
}

// Length is the payload byte count (the DLC in bytes).
func (f Frame) Length() int {
	return len(f.Data)
}

// String renders the frame in candump form: "121#0CB5" for classic
// frames and "0000D001##0<hex>" for FD frames.
func (f Frame) String() string {
	var b strings.Builder
	if f.Extended {
		fmt.Fprintf(&b, "%08X", f.ID)
	} else {
		fmt.Fprintf(&b, "%03X", f.ID)
	}
	if f.FD {
		b.WriteString("##0")
	} else {
		b.WriteString("#")
	}
	b.WriteString(strings.ToUpper(hex.EncodeToString(f.Data)))
	return b.String()
}

// HexDump renders the payload as space separated upper case bytes,
// "0C B5 01 6E".
func (f Frame) HexDump() string {
	var b strings.Builder
	for i, oneByte := range f.Data {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(byteToHexChar(oneByte))
	}
	return b.String()
}

func byteToHexChar(oneByte byte) string {
	high := strings.ToUpper(strconv.FormatUint(uint64(oneByte>>4), 16))
	low := strings.ToUpper(strconv.FormatUint(uint64(oneByte&0x0F), 16))
	return high + low
}
