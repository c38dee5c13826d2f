package dbc

import (
	"fmt"

	"github.com/mobility-lab-vsb/can-library-generator/can"
)

// byte order
const (
	Motorola = can.Motorola
	Intel    = can.Intel
)

// value type
const (
	Unsigned = can.Unsigned
	Signed   = can.Signed
	Float    = can.Float
)

// Signal is one SG_ record.
type Signal struct {
	Name      string        `json:"name"`
	StartBit  int           `json:"startBit"`
	Length    int           `json:"length"`
	ByteOrder can.ByteOrder `json:"byteOrder"` // 0 Motorola, 1 Intel
	Kind      can.ValueKind `json:"kind"`
	/**
	* physical = raw * Factor + Offset
	 */
	Factor float64 `json:"factor"`
	Offset float64 `json:"offset"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Unit   string  `json:"unit"`
	/**
	* receiving nodes, Vector__XXX when the DBC names none
	 */
	Receivers []string `json:"receivers"`
	// line in the source the signal came from, 0 when built in code
	Line int `json:"-"`
}

// Field returns the codec view of the signal.
func (s *Signal) Field() can.Field {
	return can.Field{
		StartBit:  s.StartBit,
		Length:    s.Length,
		ByteOrder: s.ByteOrder,
		Kind:      s.Kind,
		Factor:    s.Factor,
		Offset:    s.Offset,
	}
}

// Message is one BO_ record with its signals in declaration order.
type Message struct {
	ID       uint32   `json:"id"`
	Extended bool     `json:"extended"`
	Name     string   `json:"name"`
	Length   int      `json:"length"`
	FD       bool     `json:"fd"`
	Sender   string   `json:"sender"`
	Signals  []Signal `json:"signals"`
	Line     int      `json:"-"`
}

// Signal looks a signal up by name.
func (m *Message) Signal(name string) (*Signal, bool) {
	for i := range m.Signals {
		if m.Signals[i].Name == name {
			return &m.Signals[i], true
		}
	}
	return nil, false
}

func (m *Message) String() string {
	return fmt.Sprintf("%s(0x%X)", m.Name, m.ID)
}

// Catalog holds every message of a database. Message identifiers are the
// primary key; duplicates are kept so that validation can report them.
type Catalog struct {
	Messages []*Message `json:"messages"`
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Add(m *Message) {
	c.Messages = append(c.Messages, m)
}

// Message returns the first message declared with id.
func (c *Catalog) Message(id uint32) (*Message, bool) {
	for _, m := range c.Messages {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

func (c *Catalog) MessageByName(name string) (*Message, bool) {
	for _, m := range c.Messages {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// SignalCount is the number of signals over all messages.
func (c *Catalog) SignalCount() int {
	n := 0
	for _, m := range c.Messages {
		n += len(m.Signals)
	}
	return n
}

// Diagnostic is a line the parser skipped.
type Diagnostic struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Reason, d.Text)
}
