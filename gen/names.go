package gen

import (
	"strconv"
	"strings"
	"unicode"
)

// Identifier turns a DBC name into an exported Go identifier by dropping
// separators and upper-casing the letter after each one:
// msgMotor_01 -> MsgMotor01, sigMO_CRC -> SigMOCRC.
func Identifier(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r == '_' || !(unicode.IsLetter(r) || unicode.IsDigit(r)):
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}

	s := b.String()
	if s == "" || unicode.IsDigit(rune(s[0])) {
		s = "X" + s
	}
	return s
}

// names hands out identifiers that are unique within one scope.
type names map[string]bool

// claim returns the first of base, base2, base3... for which every form
// is free, and marks those forms as taken.
func (n names) claim(base string, forms ...func(string) string) string {
	if len(forms) == 0 {
		forms = []func(string) string{func(s string) string { return s }}
	}
	for i := 1; ; i++ {
		name := base
		if i > 1 {
			name = base + strconv.Itoa(i)
		}
		free := true
		for _, form := range forms {
			if n[form(name)] {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		for _, form := range forms {
			n[form(name)] = true
		}
		return name
	}
}

// package scope identifiers the template defines itself
var packageReserved = []string{"New", "messageSpecs"}

// promoted through the embedded *registry.Message of a typed view
var viewReserved = []string{
	"Message", "ID", "Extended", "Name", "Length", "FD", "Sender",
	"Signal", "SignalByName", "SignalCount", "Signals", "Data", "Values",
	"Reset", "Unpack", "Pack", "String",
}

func newNames(reserved []string) names {
	n := make(names, len(reserved))
	for _, r := range reserved {
		n[r] = true
	}
	return n
}
