package dbc

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mobility-lab-vsb/can-library-generator/base"
	"github.com/mobility-lab-vsb/can-library-generator/can"
)

var log = base.Logger

const (
	kBO       = "BO_"
	kSG       = "SG_"
	kSGIndent = " " + kSG

	// BO_ ids with this bit set describe 29 bit frames.
	extendedFlag = 0x80000000

	independentSignalsID   = 0xC0000000
	independentSignalsName = "VECTOR__INDEPENDENT_SIG_MSG"
)

const utf8BOM = "\ufeff"

type Parser struct {
	r   io.Reader
	buf []string
	err error

	catalog *Catalog
	diags   []Diagnostic
	cur     *Message
	// true while inside a BO_ block whose signals are dropped
	skipping bool
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		r:       r,
		catalog: NewCatalog(),
	}
}

// ParseFile opens path and parses it as DBC text.
func ParseFile(path string) (*Catalog, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open dbc %s", path)
	}
	defer f.Close()

	return NewParser(f).Parse()
}

// Parse reads the whole input and returns the catalog with the lines it
// had to skip. Only a read failure is returned as an error; malformed
// records end up in the diagnostics.
func (p *Parser) Parse() (*Catalog, []Diagnostic, error) {
	input := bufio.NewReader(p.r)

	for {
		line, err := input.ReadString('\n')
		if len(line) > 0 {
			p.buf = append(p.buf, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			var name string
			if f, ok := p.r.(*os.File); ok {
				name = f.Name()
			}
			log.Debugln("read EOF from ", name)
			break
		}
		if err != nil {
			p.setErr(err)
			return nil, nil, errors.Wrap(err, "read dbc")
		}
	}

	if len(p.buf) > 0 {
		p.buf[0] = strings.TrimPrefix(p.buf[0], utf8BOM)
	}

	for idx, line := range p.buf {
		p.parseLine(idx+1, line)
	}
	p.closeMessage()

	log.Infof("dbc parsed: %d messages, %d signals, %d skipped lines",
		len(p.catalog.Messages), p.catalog.SignalCount(), len(p.diags))
	return p.catalog, p.diags, nil
}

func (p *Parser) parseLine(lineNo int, line string) {
	if strings.HasPrefix(line, kSGIndent) && (len(line) == len(kSGIndent) || isBlank(line[len(kSGIndent)])) {
		p.parseSG(lineNo, line)
		return
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case kBO:
		p.parseBO(lineNo, line)
	case kSG:
		p.diagnose(lineNo, line, "signal marker must be indented by exactly one space")
	}
}

// closeMessage pushes the open message into the catalog.
func (p *Parser) closeMessage() {
	if p.cur != nil && p.cur.Name != "" {
		p.catalog.Add(p.cur)
	}
	p.cur = nil
	p.skipping = false
}

func (p *Parser) parseBO(lineNo int, line string) {
	p.closeMessage()

	body := strings.TrimSpace(line)[len(kBO):]
	var subs []string
	for _, field := range strings.Fields(body) {
		if field == ":" {
			continue
		}
		// "name:8" without a blank after the colon
		if name, rest, ok := strings.Cut(field, ":"); ok && name != "" && rest != "" {
			subs = append(subs, name, rest)
			continue
		}
		subs = append(subs, strings.TrimSuffix(field, ":"))
	}
	if len(subs) < 3 || len(subs) > 4 {
		p.skipping = true
		p.diagnose(lineNo, line, "message needs id, name, length and sender")
		return
	}

	rawID, err := strconv.ParseUint(subs[0], 10, 32)
	if err != nil {
		p.skipping = true
		p.diagnose(lineNo, line, "invalid message id "+strconv.Quote(subs[0]))
		return
	}
	if rawID == independentSignalsID || subs[1] == independentSignalsName {
		log.Debugf("line %d: skip %s", lineNo, independentSignalsName)
		p.skipping = true
		return
	}
	if !isIdent(subs[1]) {
		p.skipping = true
		p.diagnose(lineNo, line, "invalid message name "+strconv.Quote(subs[1]))
		return
	}
	length, err := strconv.Atoi(subs[2])
	if err != nil || length < 0 {
		p.skipping = true
		p.diagnose(lineNo, line, "invalid message length "+strconv.Quote(subs[2]))
		return
	}

	id, extended := SplitID(uint32(rawID))
	msg := &Message{
		ID:       id,
		Extended: extended,
		Name:     subs[1],
		Length:   length,
		FD:       length > can.MaxClassicLength,
		Line:     lineNo,
	}
	if len(subs) == 4 {
		msg.Sender = subs[3]
	}
	p.cur = msg
}

func (p *Parser) parseSG(lineNo int, line string) {
	if p.skipping {
		log.Debugf("line %d: signal of a skipped message dropped", lineNo)
		return
	}
	if p.cur == nil {
		p.diagnose(lineNo, line, "signal outside of a message")
		return
	}

	sig, err := scanSignal(line[len(kSGIndent):])
	if err != nil {
		var se *syntaxError
		if errors.As(err, &se) {
			se.col += len(kSGIndent)
		}
		p.diagnose(lineNo, line, err.Error())
		return
	}
	sig.Line = lineNo
	p.cur.Signals = append(p.cur.Signals, sig)
}

func (p *Parser) diagnose(lineNo int, line, reason string) {
	d := Diagnostic{Line: lineNo, Text: line, Reason: reason}
	log.Debugln("skip", d)
	p.diags = append(p.diags, d)
}

// SplitID strips the extended flag from a DBC message id. Ids above the
// 11 bit range are extended even without the flag.
func SplitID(raw uint32) (id uint32, extended bool) {
	if raw&extendedFlag != 0 {
		return raw & can.MaxExtendedID, true
	}
	return raw, raw > can.MaxStandardID
}

func isIdent(s string) bool {
	if s == "" || isDigit(s[0]) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// Err returns the first non-EOF error that was encountered by the Parser.
func (p *Parser) Err() error {
	if p.err == io.EOF {
		return nil
	}
	return p.err
}

// setErr records the first error encountered.
func (p *Parser) setErr(err error) {
	if p.err == nil || p.err == io.EOF {
		p.err = err
	}
}
