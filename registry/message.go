package registry

import (
	"fmt"

	"github.com/mobility-lab-vsb/can-library-generator/can"
)

// Signal is a signal descriptor with its last raw and physical value.
type Signal struct {
	SignalSpec
	field    can.Field
	raw      uint64
	physical float64
}

func (s *Signal) Raw() uint64 {
	return s.raw
}

func (s *Signal) Physical() float64 {
	return s.physical
}

// Set stores a physical value for the next Pack. The raw value follows
// the encode rule of the codec.
func (s *Signal) Set(physical float64) {
	s.physical = physical
	s.raw = s.field.Raw(physical)
}

// SetRaw stores a raw bit pattern, truncated to the signal length.
func (s *Signal) SetRaw(raw uint64) {
	s.raw = can.Mask(raw, s.Length)
	s.physical = s.field.Physical(s.raw)
}

func (s *Signal) String() string {
	if s.Unit == "" {
		return fmt.Sprintf("%s=%g", s.Name, s.physical)
	}
	return fmt.Sprintf("%s=%g %s", s.Name, s.physical, s.Unit)
}

// Message is a message descriptor. Its signals form an arena addressed by
// declaration index.
type Message struct {
	ID       uint32
	Extended bool
	Name     string
	Length   int
	FD       bool
	Sender   string

	signals []Signal
	byName  map[string]int
	// frame buffer of the last Unpack or Pack
	buf []byte
	// smallest payload every signal fits in
	need int
	// set when a signal can not be handled by the codec
	invalid error
}

func newMessage(spec MessageSpec) *Message {
	m := &Message{
		ID:       spec.ID,
		Extended: spec.Extended,
		Name:     spec.Name,
		Length:   spec.Length,
		FD:       spec.FD,
		Sender:   spec.Sender,
		signals:  make([]Signal, len(spec.Signals)),
		byName:   make(map[string]int, len(spec.Signals)),
		buf:      make([]byte, spec.Length),
		need:     spec.Length,
	}
	for i, s := range spec.Signals {
		f := s.Field()
		m.signals[i] = Signal{SignalSpec: s, field: f}
		if _, ok := m.byName[s.Name]; !ok {
			m.byName[s.Name] = i
		}
		if n := f.MinFrameLength(); n == 0 {
			m.invalid = fmt.Errorf("signal %s of %s: %w", s.Name, spec.Name, can.ErrInvalidField)
		} else if n > m.need {
			m.need = n
		}
	}
	return m
}

// Signal returns the signal at index i in declaration order, nil when out
// of range.
func (m *Message) Signal(i int) *Signal {
	if i < 0 || i >= len(m.signals) {
		return nil
	}
	return &m.signals[i]
}

func (m *Message) SignalByName(name string) (*Signal, bool) {
	i, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return &m.signals[i], true
}

func (m *Message) SignalCount() int {
	return len(m.signals)
}

// Signals returns every signal in declaration order.
func (m *Message) Signals() []*Signal {
	out := make([]*Signal, len(m.signals))
	for i := range m.signals {
		out[i] = &m.signals[i]
	}
	return out
}

// Data returns a copy of the frame buffer.
func (m *Message) Data() []byte {
	out := make([]byte, len(m.buf))
	copy(out, m.buf)
	return out
}

// Values maps signal names to physical values.
func (m *Message) Values() map[string]float64 {
	out := make(map[string]float64, len(m.signals))
	for i := range m.signals {
		out[m.signals[i].Name] = m.signals[i].physical
	}
	return out
}

// Reset zeroes the frame buffer and every signal value.
func (m *Message) Reset() {
	for i := range m.buf {
		m.buf[i] = 0
	}
	for i := range m.signals {
		m.signals[i].raw = 0
		m.signals[i].physical = 0
	}
}

func (m *Message) check(data []byte) error {
	if m.invalid != nil {
		return m.invalid
	}
	if len(data) < m.need {
		return ErrBufferTooShort
	}
	return nil
}

// Unpack decodes data into every signal in declaration order.
func (m *Message) Unpack(data []byte) error {
	if err := m.check(data); err != nil {
		return err
	}
	for i := range m.signals {
		s := &m.signals[i]
		// bounds were checked above
		s.raw, s.physical, _ = can.Decode(data, s.field)
	}
	copy(m.buf, data)
	return nil
}

// Pack encodes the physical value of every signal into data. Bits not
// covered by a signal are left as they are.
func (m *Message) Pack(data []byte) error {
	if err := m.check(data); err != nil {
		return err
	}
	for i := range m.signals {
		s := &m.signals[i]
		s.raw, _ = can.Encode(data, s.field, s.physical)
	}
	copy(m.buf, data)
	return nil
}

func (m *Message) String() string {
	return fmt.Sprintf("%s(0x%X)", m.Name, m.ID)
}
