// Package candump reads frames in the text form of the SocketCAN candump
// and cansend tools, and converts between can.Frame and einride frames.
package candump

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	einride "go.einride.tech/can"

	"github.com/mobility-lab-vsb/can-library-generator/can"
)

// Parse parses a candump style frame. Classic frames ("ID#hex") go through
// the einride parser; FD frames ("ID##<flags><hex>") are handled here.
func Parse(s string) (can.Frame, error) {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "##"); idx >= 0 {
		return parseFD(s[:idx], s[idx+2:])
	}

	var ef einride.Frame
	if err := ef.UnmarshalString(s); err != nil {
		return can.Frame{}, err
	}
	return FromEinride(ef), nil
}

func parseFD(id, payload string) (can.Frame, error) {
	if len(payload) < 1 {
		return can.Frame{}, fmt.Errorf("missing FD flags in %q", id+"##"+payload)
	}
	v, err := strconv.ParseUint(id, 16, 32)
	if err != nil {
		return can.Frame{}, fmt.Errorf("invalid frame id %q: %w", id, err)
	}
	if v > can.MaxExtendedID {
		return can.Frame{}, fmt.Errorf("frame id %q out of range", id)
	}

	// first nibble carries the FD flags
	data, err := hex.DecodeString(payload[1:])
	if err != nil {
		return can.Frame{}, fmt.Errorf("invalid FD payload: %w", err)
	}
	if len(data) > can.MaxFDLength {
		return can.Frame{}, fmt.Errorf("FD payload of %d bytes exceeds %d", len(data), can.MaxFDLength)
	}

	return can.Frame{
		ID:       uint32(v),
		Extended: len(id) > 3 || v > can.MaxStandardID,
		FD:       true,
		Data:     data,
	}, nil
}

// FromEinride converts a classic einride frame.
func FromEinride(ef einride.Frame) can.Frame {
	data := make([]byte, ef.Length)
	copy(data, ef.Data[:ef.Length])
	return can.Frame{
		ID:       ef.ID,
		Extended: ef.IsExtended,
		Data:     data,
	}
}

// ToEinride converts f to an einride frame. FD frames and payloads longer
// than 8 bytes can not be represented.
func ToEinride(f can.Frame) (einride.Frame, error) {
	if f.FD || len(f.Data) > einride.MaxDataLength {
		return einride.Frame{}, fmt.Errorf("frame %s does not fit a classic CAN frame", f)
	}
	ef := einride.Frame{
		ID:         f.ID,
		Length:     uint8(len(f.Data)),
		IsExtended: f.Extended,
	}
	copy(ef.Data[:], f.Data)
	return ef, nil
}
