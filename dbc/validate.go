package dbc

import (
	"fmt"
	"strings"

	"github.com/mobility-lab-vsb/can-library-generator/can"
)

// ValidationKind classifies a catalog defect that blocks code generation.
type ValidationKind int

const (
	DuplicateMessageID ValidationKind = iota + 1
	DuplicateSignalName
	SignalOutOfFrame
	ZeroFactor
	InvalidFrameLength
	InvalidBitLength
	InvalidFloatLength
	EmptyName
)

var kindNames = map[ValidationKind]string{
	DuplicateMessageID:  "duplicate message id",
	DuplicateSignalName: "duplicate signal name",
	SignalOutOfFrame:    "signal out of frame",
	ZeroFactor:          "zero factor",
	InvalidFrameLength:  "invalid frame length",
	InvalidBitLength:    "invalid bit length",
	InvalidFloatLength:  "invalid float length",
	EmptyName:           "empty name",
}

func (k ValidationKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ValidationKind(%d)", int(k))
}

// Payload sizes an FD data length code can express above the classic 8 bytes.
var fdLengths = map[int]bool{12: true, 16: true, 20: true, 24: true, 32: true, 48: true, 64: true}

// ValidFrameLength reports whether length is a legal payload size: 1 to 8
// bytes for classic frames, 1 to 64 for FD frames.
func ValidFrameLength(length int, fd bool) bool {
	if length < 1 {
		return false
	}
	if fd {
		return length <= can.MaxFDLength
	}
	return length <= can.MaxClassicLength
}

// DLCLength reports whether an FD frame of length bytes is sent without
// padding. Senders round any other length up to the next DLC size.
func DLCLength(length int) bool {
	return length <= can.MaxClassicLength || fdLengths[length]
}

type ValidationError struct {
	Kind      ValidationKind
	MessageID uint32
	Message   string
	Signal    string
	Detail    string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: message %s(0x%X)", e.Kind, e.Message, e.MessageID)
	if e.Signal != "" {
		fmt.Fprintf(&b, " signal %s", e.Signal)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// ValidationErrors is every defect found in one pass over a catalog.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d validation errors: %s", len(v), strings.Join(msgs, "; "))
}

// Has reports whether any error is of kind k.
func (v ValidationErrors) Has(k ValidationKind) bool {
	for _, e := range v {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Validate checks the catalog invariants and returns ValidationErrors, or
// nil when the catalog can be compiled.
func Validate(c *Catalog) error {
	var errs ValidationErrors
	add := func(kind ValidationKind, m *Message, signal, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Kind:      kind,
			MessageID: m.ID,
			Message:   m.Name,
			Signal:    signal,
			Detail:    fmt.Sprintf(format, args...),
		})
	}

	seenID := make(map[uint32]*Message)
	for _, m := range c.Messages {
		if m.Name == "" {
			add(EmptyName, m, "", "message has no name")
		}
		if first, ok := seenID[m.ID]; ok {
			add(DuplicateMessageID, m, "", "already declared by %s", first.Name)
		} else {
			seenID[m.ID] = m
		}
		if !ValidFrameLength(m.Length, m.FD) {
			add(InvalidFrameLength, m, "", "%d bytes (fd=%t)", m.Length, m.FD)
		}

		seenSig := make(map[string]bool)
		for i := range m.Signals {
			s := &m.Signals[i]
			if s.Name == "" {
				add(EmptyName, m, "", "signal %d has no name", i)
			} else if seenSig[s.Name] {
				add(DuplicateSignalName, m, s.Name, "")
			}
			seenSig[s.Name] = true

			if s.Factor == 0 {
				add(ZeroFactor, m, s.Name, "")
			}
			if s.Length < 1 || s.Length > can.MaxBitLength {
				add(InvalidBitLength, m, s.Name, "%d bits", s.Length)
				continue
			}
			if s.Kind == can.Float && s.Length != 32 && s.Length != 64 {
				add(InvalidFloatLength, m, s.Name, "%d bits", s.Length)
				continue
			}
			if f := s.Field(); !f.FitsIn(m.Length) {
				add(SignalOutOfFrame, m, s.Name, "start %d length %d %s needs %d bytes, frame has %d",
					s.StartBit, s.Length, s.ByteOrder, f.MinFrameLength(), m.Length)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
