package registry

import (
	"sync"

	"github.com/mobility-lab-vsb/can-library-generator/rwmap"
)

// Locked serialises access to a shared Registry with one mutex per
// message id. Calls on different messages run in parallel.
type Locked struct {
	r     *Registry
	locks *rwmap.RWMap[uint32, *sync.Mutex]
}

func NewLocked(r *Registry) *Locked {
	l := &Locked{
		r:     r,
		locks: rwmap.NewRWMap[uint32, *sync.Mutex](r.Len()),
	}
	for _, m := range r.messages {
		l.locks.Set(m.ID, &sync.Mutex{})
	}
	return l
}

func (l *Locked) lock(id uint32) *sync.Mutex {
	mu, ok := l.locks.Get(id)
	if !ok {
		mu, _ = l.locks.GetOrSet(id, &sync.Mutex{})
	}
	return mu
}

func (l *Locked) Unpack(id uint32, data []byte) error {
	return l.Do(id, func(m *Message) error {
		return m.Unpack(data)
	})
}

func (l *Locked) Pack(id uint32, data []byte) error {
	return l.Do(id, func(m *Message) error {
		return m.Pack(data)
	})
}

// Do runs fn with the lock of message id held, for reading or setting
// several signals consistently.
func (l *Locked) Do(id uint32, fn func(m *Message) error) error {
	m, ok := l.r.Message(id)
	if !ok {
		return ErrMessageNotFound
	}
	mu := l.lock(id)
	mu.Lock()
	defer mu.Unlock()
	return fn(m)
}
