package dbc

import (
	"fmt"
	"strconv"
	"strings"
)

// syntaxError marks the column at which a record stopped matching the
// grammar.
type syntaxError struct {
	col int
	msg string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("col %d: %s", e.col, e.msg)
}

// scanner walks a single record. All accepted forms are fixed literals
// separated by optional blanks, so there is no backtracking.
type scanner struct {
	input string
	pos   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

func (s *scanner) errorf(format string, args ...any) error {
	return &syntaxError{col: s.pos + 1, msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentChar(c byte) bool {
	return c == '_' || isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func (s *scanner) skipBlanks() {
	for !s.eof() && isBlank(s.input[s.pos]) {
		s.pos++
	}
}

// expect consumes c after optional blanks.
func (s *scanner) expect(c byte) error {
	s.skipBlanks()
	if s.peek() != c {
		if s.eof() {
			return s.errorf("expected %q, got end of line", c)
		}
		return s.errorf("expected %q, got %q", c, s.peek())
	}
	s.pos++
	return nil
}

func (s *scanner) ident() (string, error) {
	s.skipBlanks()
	start := s.pos
	for !s.eof() && isIdentChar(s.input[s.pos]) {
		s.pos++
	}
	if start == s.pos {
		return "", s.errorf("expected identifier")
	}
	if isDigit(s.input[start]) {
		s.pos = start
		return "", s.errorf("identifier must not start with a digit")
	}
	return s.input[start:s.pos], nil
}

func (s *scanner) uint() (int, error) {
	s.skipBlanks()
	start := s.pos
	for !s.eof() && isDigit(s.input[s.pos]) {
		s.pos++
	}
	if start == s.pos {
		return 0, s.errorf("expected unsigned integer")
	}
	text := s.input[start:s.pos]
	v, err := strconv.Atoi(text)
	if err != nil {
		s.pos = start
		return 0, s.errorf("invalid integer %q", text)
	}
	return v, nil
}

// number reads [+-] digits* [. digits*] [eE [+-] digits+] with at least
// one mantissa digit: "12", "-3", ".5", "12.75", "1E-007".
func (s *scanner) number() (float64, error) {
	s.skipBlanks()
	start := s.pos
	if c := s.peek(); c == '+' || c == '-' {
		s.pos++
	}
	digits := 0
	for !s.eof() && isDigit(s.input[s.pos]) {
		s.pos++
		digits++
	}
	if s.peek() == '.' {
		s.pos++
		for !s.eof() && isDigit(s.input[s.pos]) {
			s.pos++
			digits++
		}
	}
	if digits == 0 {
		s.pos = start
		return 0, s.errorf("expected number")
	}
	if c := s.peek(); c == 'e' || c == 'E' {
		mark := s.pos
		s.pos++
		if c := s.peek(); c == '+' || c == '-' {
			s.pos++
		}
		exp := 0
		for !s.eof() && isDigit(s.input[s.pos]) {
			s.pos++
			exp++
		}
		if exp == 0 {
			s.pos = mark
			return 0, s.errorf("malformed exponent")
		}
	}

	text := s.input[start:s.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.pos = start
		return 0, s.errorf("invalid number %q", text)
	}
	return v, nil
}

// quoted reads a double quoted string without escapes.
func (s *scanner) quoted() (string, error) {
	if err := s.expect('"'); err != nil {
		return "", err
	}
	end := strings.IndexByte(s.input[s.pos:], '"')
	if end < 0 {
		return "", s.errorf("unterminated string")
	}
	v := s.input[s.pos : s.pos+end]
	s.pos += end + 1
	return v, nil
}

// receivers reads a comma separated node list up to the end of the line.
func (s *scanner) receivers() ([]string, error) {
	var nodes []string
	for {
		s.skipBlanks()
		if s.eof() {
			return nodes, nil
		}
		if len(nodes) > 0 && s.peek() == ',' {
			s.pos++
		}
		node, err := s.ident()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// isMultiplexor matches the "M" and "m<n>" indicators that may follow a
// signal name.
func isMultiplexor(word string) bool {
	if word == "M" {
		return true
	}
	if len(word) < 2 || word[0] != 'm' {
		return false
	}
	rest := strings.TrimSuffix(word[1:], "M")
	if rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if !isDigit(rest[i]) {
			return false
		}
	}
	return true
}

// scanSignal parses the part of an SG_ line following the marker:
//
//	name : start|length@order sign (factor,offset) [min|max] "unit" receivers
func scanSignal(body string) (Signal, error) {
	var sig Signal
	s := newScanner(body)

	name, err := s.ident()
	if err != nil {
		return sig, err
	}
	sig.Name = name

	s.skipBlanks()
	if s.peek() != ':' && !s.eof() {
		mark := s.pos
		word, err := s.ident()
		if err == nil && isMultiplexor(word) {
			s.pos = mark
			return sig, s.errorf("multiplexed signal %q is not supported", word)
		}
		s.pos = mark
	}
	if err := s.expect(':'); err != nil {
		return sig, err
	}

	if sig.StartBit, err = s.uint(); err != nil {
		return sig, err
	}
	if err := s.expect('|'); err != nil {
		return sig, err
	}
	if sig.Length, err = s.uint(); err != nil {
		return sig, err
	}
	if err := s.expect('@'); err != nil {
		return sig, err
	}
	switch s.peek() {
	case '0':
		sig.ByteOrder = Motorola
	case '1':
		sig.ByteOrder = Intel
	default:
		return sig, s.errorf("byte order must be 0 or 1")
	}
	s.pos++
	switch s.peek() {
	case '+':
		sig.Kind = Unsigned
	case '-':
		sig.Kind = Signed
	default:
		return sig, s.errorf("value type must be + or -")
	}
	s.pos++

	if err := s.expect('('); err != nil {
		return sig, err
	}
	if sig.Factor, err = s.number(); err != nil {
		return sig, err
	}
	if err := s.expect(','); err != nil {
		return sig, err
	}
	if sig.Offset, err = s.number(); err != nil {
		return sig, err
	}
	if err := s.expect(')'); err != nil {
		return sig, err
	}

	if err := s.expect('['); err != nil {
		return sig, err
	}
	if sig.Min, err = s.number(); err != nil {
		return sig, err
	}
	if err := s.expect('|'); err != nil {
		return sig, err
	}
	if sig.Max, err = s.number(); err != nil {
		return sig, err
	}
	if err := s.expect(']'); err != nil {
		return sig, err
	}

	if sig.Unit, err = s.quoted(); err != nil {
		return sig, err
	}
	if sig.Receivers, err = s.receivers(); err != nil {
		return sig, err
	}
	return sig, nil
}
