// Package registry is the runtime dispatch table of a compiled CAN
// database: message descriptors keyed by id, each owning its signals, with
// Unpack and Pack entry points running the codec per signal.
//
// A Registry is a plain value owned by its caller. Signal state lives
// inside it and is not synchronised; share one across goroutines through
// Locked or give each goroutine its own.
package registry

import (
	"errors"
	"fmt"

	"github.com/mobility-lab-vsb/can-library-generator/can"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrBufferTooShort  = fmt.Errorf("registry: %w", can.ErrBufferTooShort)
)

// SignalSpec is the static description of a signal.
type SignalSpec struct {
	Name      string
	StartBit  int
	Length    int
	ByteOrder can.ByteOrder
	Kind      can.ValueKind
	Factor    float64
	Offset    float64
	Min       float64
	Max       float64
	Unit      string
	Receivers []string
}

// Field returns the codec view of the signal.
func (s SignalSpec) Field() can.Field {
	return can.Field{
		StartBit:  s.StartBit,
		Length:    s.Length,
		ByteOrder: s.ByteOrder,
		Kind:      s.Kind,
		Factor:    s.Factor,
		Offset:    s.Offset,
	}
}

// MessageSpec is the static description of a message, signals in
// declaration order.
type MessageSpec struct {
	ID       uint32
	Extended bool
	Name     string
	Length   int
	FD       bool
	Sender   string
	Signals  []SignalSpec
}

// SignalRef names a signal by its message and its index in that message.
type SignalRef struct {
	MessageID uint32
	Index     int
}

type Registry struct {
	messages []*Message
	byID     map[uint32]*Message
	byName   map[string]*Message
}

// New builds a registry with zeroed signal state. A spec repeating an id
// already present is ignored.
func New(specs ...MessageSpec) *Registry {
	r := &Registry{
		messages: make([]*Message, 0, len(specs)),
		byID:     make(map[uint32]*Message, len(specs)),
		byName:   make(map[string]*Message, len(specs)),
	}
	for _, spec := range specs {
		if _, ok := r.byID[spec.ID]; ok {
			continue
		}
		m := newMessage(spec)
		r.messages = append(r.messages, m)
		r.byID[m.ID] = m
		if _, ok := r.byName[m.Name]; !ok {
			r.byName[m.Name] = m
		}
	}
	return r
}

func (r *Registry) Message(id uint32) (*Message, bool) {
	m, ok := r.byID[id]
	return m, ok
}

func (r *Registry) MessageByName(name string) (*Message, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Messages returns the messages in declaration order.
func (r *Registry) Messages() []*Message {
	out := make([]*Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *Registry) Len() int {
	return len(r.messages)
}

// Unpack decodes data into the signals of message id. Nothing is modified
// when an error is returned.
func (r *Registry) Unpack(id uint32, data []byte) error {
	m, ok := r.byID[id]
	if !ok {
		return ErrMessageNotFound
	}
	return m.Unpack(data)
}

// Pack encodes the current physical value of every signal of message id
// into data.
func (r *Registry) Pack(id uint32, data []byte) error {
	m, ok := r.byID[id]
	if !ok {
		return ErrMessageNotFound
	}
	return m.Pack(data)
}

// Ref returns the reference of the named signal of message id.
func (r *Registry) Ref(id uint32, signal string) (SignalRef, bool) {
	m, ok := r.byID[id]
	if !ok {
		return SignalRef{}, false
	}
	i, ok := m.byName[signal]
	if !ok {
		return SignalRef{}, false
	}
	return SignalRef{MessageID: id, Index: i}, true
}

func (r *Registry) Signal(ref SignalRef) (*Signal, bool) {
	m, ok := r.byID[ref.MessageID]
	if !ok {
		return nil, false
	}
	s := m.Signal(ref.Index)
	return s, s != nil
}

// UnpackFrame decodes a frame into the message with the frame's id and
// id format. A standard frame never matches an extended message.
func (r *Registry) UnpackFrame(f can.Frame) error {
	m, ok := r.byID[f.ID]
	if !ok || m.Extended != f.Extended {
		return ErrMessageNotFound
	}
	return m.Unpack(f.Data)
}

// PackFrame encodes message id into a new frame of the declared length.
// Bits not covered by a signal keep the value of the last unpacked frame.
func (r *Registry) PackFrame(id uint32) (can.Frame, error) {
	m, ok := r.byID[id]
	if !ok {
		return can.Frame{}, ErrMessageNotFound
	}
	data := m.Data()
	if err := m.Pack(data); err != nil {
		return can.Frame{}, err
	}
	return can.Frame{ID: m.ID, Extended: m.Extended, FD: m.FD, Data: data}, nil
}

// Reset zeroes the state of every message.
func (r *Registry) Reset() {
	for _, m := range r.messages {
		m.Reset()
	}
}
