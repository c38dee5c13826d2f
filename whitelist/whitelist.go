// Package whitelist selects the messages and signals of a catalog that go
// into a generated library.
//
// Entries are keyed by message name or id (decimal or 0x hex). A signal
// list of "*" takes every signal of the message; "!name" drops one signal
// from such an entry.
package whitelist

import (
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"

	"github.com/mobility-lab-vsb/can-library-generator/base"
	"github.com/mobility-lab-vsb/can-library-generator/dbc"
)

var (
	log  = base.Logger
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// Action
const (
	Do_ResetWith int = iota + 1
	Do_Add
	Do_Delete
)

const (
	allSignals = "*"
	exclude    = "!"
)

// WhiteListReq is the file format and the change request: an action and
// the signals per message.
type WhiteListReq struct {
	TaskId    int                 `json:"taskId"`
	Action    int                 `json:"action"`
	CanList   map[string][]string `json:"canList"`
	TimeStamp string              `json:"timeStamp,omitempty"`
}

type selection struct {
	all      bool
	signals  map[string]bool
	excluded map[string]bool
}

func newSelection() *selection {
	return &selection{signals: make(map[string]bool), excluded: make(map[string]bool)}
}

func (s *selection) has(signal string) bool {
	if s.all {
		return !s.excluded[signal]
	}
	return s.signals[signal]
}

func (s *selection) list() []string {
	var out []string
	if s.all {
		out = append(out, allSignals)
		for name := range s.excluded {
			out = append(out, exclude+name)
		}
	} else {
		for name := range s.signals {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

type WhiteList struct {
	mu     sync.Mutex
	byID   map[uint32]*selection
	byName map[string]*selection
}

func New() *WhiteList {
	return &WhiteList{
		byID:   make(map[uint32]*selection),
		byName: make(map[string]*selection),
	}
}

// Load decodes a WhiteListReq from r and applies it to an empty list. An
// empty input gives an empty list.
func Load(r io.Reader) (*WhiteList, error) {
	w := New()
	var req WhiteListReq
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		if err == io.EOF {
			return w, nil
		}
		return nil, errors.Wrap(err, "decode whitelist")
	}
	if err := w.Handle(&req); err != nil {
		return nil, err
	}
	return w, nil
}

func LoadFile(whiteListFile string) (*WhiteList, error) {
	if len(whiteListFile) <= 0 {
		return nil, errors.New("whitelist filename is empty")
	}
	file, err := os.Open(whiteListFile)
	if err != nil {
		return nil, errors.Wrap(err, "open whitelist")
	}
	defer file.Close()

	w, err := Load(file)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", whiteListFile)
	}
	log.Debugf("whitelist %s: %d entries", whiteListFile, w.Len())
	return w, nil
}

// SaveFile writes the list in the format LoadFile reads.
func (w *WhiteList) SaveFile(whiteListFile string) error {
	buf, err := w.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(whiteListFile, buf, 0o666); err != nil {
		return errors.Wrapf(err, "write %s", whiteListFile)
	}
	log.Debugf("write (%s) ok! has written (%d) bytes", whiteListFile, len(buf))
	return nil
}

// Handle applies a change request. Action 0 is treated as Do_Add.
func (w *WhiteList) Handle(req *WhiteListReq) error {
	switch req.Action {
	case Do_ResetWith:
		w.reset()
		fallthrough
	case 0, Do_Add:
		for key, signals := range req.CanList {
			w.Add(key, signals...)
		}
	case Do_Delete:
		for key, signals := range req.CanList {
			w.Delete(key, signals...)
		}
	default:
		return errors.Newf("invalid whitelist action %d", req.Action)
	}
	return nil
}

func (w *WhiteList) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.byID = make(map[uint32]*selection)
	w.byName = make(map[string]*selection)
}

// parseKey returns the id when key is numeric.
func parseKey(key string) (uint32, bool) {
	id, err := strconv.ParseUint(key, 0, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

// entry returns the selection stored for key, creating it when create is
// set. Must be called with mu held.
func (w *WhiteList) entry(key string, create bool) *selection {
	key = strings.TrimSpace(key)
	if id, ok := parseKey(key); ok {
		sel := w.byID[id]
		if sel == nil && create {
			sel = newSelection()
			w.byID[id] = sel
		}
		return sel
	}
	sel := w.byName[key]
	if sel == nil && create {
		sel = newSelection()
		w.byName[key] = sel
	}
	return sel
}

func (w *WhiteList) drop(key string) {
	key = strings.TrimSpace(key)
	if id, ok := parseKey(key); ok {
		delete(w.byID, id)
		return
	}
	delete(w.byName, key)
}

// Add selects signals of a message. No signals selects all of them.
func (w *WhiteList) Add(message string, signals ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sel := w.entry(message, true)
	if len(signals) == 0 {
		sel.all = true
		return
	}
	for _, signal := range signals {
		switch {
		case signal == allSignals:
			sel.all = true
		case strings.HasPrefix(signal, exclude):
			sel.excluded[signal[len(exclude):]] = true
		default:
			sel.signals[signal] = true
			delete(sel.excluded, signal)
		}
	}
}

// Delete removes signals from a message entry. No signals, or "*",
// removes the entry.
func (w *WhiteList) Delete(message string, signals ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sel := w.entry(message, false)
	if sel == nil {
		return
	}
	if len(signals) == 0 || (len(signals) == 1 && signals[0] == allSignals) {
		w.drop(message)
		return
	}
	for _, signal := range signals {
		delete(sel.signals, signal)
		if sel.all {
			sel.excluded[signal] = true
		}
	}
	if !sel.all && len(sel.signals) <= 0 {
		w.drop(message)
	}
}

// Len is the number of message entries.
func (w *WhiteList) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.byID) + len(w.byName)
}

// lookup returns the entries matching m by id and by name. Must be called
// with mu held.
func (w *WhiteList) lookup(m *dbc.Message) []*selection {
	var out []*selection
	if sel, ok := w.byID[m.ID]; ok {
		out = append(out, sel)
	}
	if sel, ok := w.byName[m.Name]; ok {
		out = append(out, sel)
	}
	return out
}

func (w *WhiteList) QueryMessage(m *dbc.Message) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.lookup(m)) > 0
}

func (w *WhiteList) QuerySignal(m *dbc.Message, signal string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sel := range w.lookup(m) {
		if sel.has(signal) {
			return true
		}
	}
	return false
}

// Apply returns a catalog holding the selected messages with their
// selected signals, in catalog order. The input is not modified.
func (w *WhiteList) Apply(c *dbc.Catalog) *dbc.Catalog {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := dbc.NewCatalog()
	matchedID := make(map[uint32]bool)
	matchedName := make(map[string]bool)
	for _, m := range c.Messages {
		sels := w.lookup(m)
		if len(sels) == 0 {
			continue
		}
		if _, ok := w.byID[m.ID]; ok {
			matchedID[m.ID] = true
		}
		if _, ok := w.byName[m.Name]; ok {
			matchedName[m.Name] = true
		}

		kept := *m
		kept.Signals = nil
		for _, s := range m.Signals {
			for _, sel := range sels {
				if sel.has(s.Name) {
					kept.Signals = append(kept.Signals, s)
					break
				}
			}
		}
		for _, sel := range sels {
			for name := range sel.signals {
				if _, ok := m.Signal(name); !ok {
					log.Warnf("whitelist: %s has no signal %s", m, name)
				}
			}
		}
		out.Add(&kept)
	}

	for id := range w.byID {
		if !matchedID[id] {
			log.Warnf("whitelist: no message with id %d", id)
		}
	}
	for name := range w.byName {
		if !matchedName[name] {
			log.Warnf("whitelist: no message named %s", name)
		}
	}
	return out
}

// Request returns the list as a Do_ResetWith request.
func (w *WhiteList) Request() *WhiteListReq {
	w.mu.Lock()
	defer w.mu.Unlock()

	req := &WhiteListReq{Action: Do_ResetWith, CanList: make(map[string][]string)}
	for id, sel := range w.byID {
		req.CanList[strconv.FormatUint(uint64(id), 10)] = sel.list()
	}
	for name, sel := range w.byName {
		req.CanList[name] = sel.list()
	}
	return req
}

func (w *WhiteList) Marshal() ([]byte, error) {
	jData, err := json.MarshalIndent(w.Request(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal whitelist")
	}
	jData = append(jData, '\n')
	return jData, nil
}

// ParseSelector splits a command line selector "message:sig1,sig2". A
// bare message name selects every signal.
func ParseSelector(s string) (message string, signals []string, err error) {
	message, rest, found := strings.Cut(strings.TrimSpace(s), ":")
	message = strings.TrimSpace(message)
	if message == "" {
		return "", nil, errors.Newf("selector %q has no message", s)
	}
	if !found {
		return message, nil, nil
	}
	for _, sig := range strings.Split(rest, ",") {
		if sig = strings.TrimSpace(sig); sig != "" {
			signals = append(signals, sig)
		}
	}
	if len(signals) == 0 {
		return "", nil, errors.Newf("selector %q has no signals after ':'", s)
	}
	return message, signals, nil
}
