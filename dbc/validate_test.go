package dbc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u8(name string, start int) Signal {
	return Signal{Name: name, StartBit: start, Length: 8, ByteOrder: Intel, Factor: 1}
}

func TestValidateExample(t *testing.T) {
	c, _, err := ParseFile("testdata/example.dbc")
	require.NoError(t, err)
	assert.NoError(t, Validate(c))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		msgs []*Message
		want []ValidationKind
	}{
		{
			name: "ok",
			msgs: []*Message{{ID: 1, Name: "a", Length: 8, Signals: []Signal{u8("x", 0), u8("y", 56)}}},
		},
		{
			name: "duplicate id",
			msgs: []*Message{
				{ID: 1, Name: "a", Length: 8},
				{ID: 1, Name: "b", Length: 8},
			},
			want: []ValidationKind{DuplicateMessageID},
		},
		{
			name: "duplicate signal",
			msgs: []*Message{{ID: 1, Name: "a", Length: 8, Signals: []Signal{u8("x", 0), u8("x", 8)}}},
			want: []ValidationKind{DuplicateSignalName},
		},
		{
			name: "out of frame",
			msgs: []*Message{{ID: 1, Name: "a", Length: 2, Signals: []Signal{u8("x", 9)}}},
			want: []ValidationKind{SignalOutOfFrame},
		},
		{
			name: "motorola out of frame",
			msgs: []*Message{{ID: 1, Name: "a", Length: 1, Signals: []Signal{
				{Name: "x", StartBit: 3, Length: 6, ByteOrder: Motorola, Factor: 1},
			}}},
			want: []ValidationKind{SignalOutOfFrame},
		},
		{
			name: "zero factor",
			msgs: []*Message{{ID: 1, Name: "a", Length: 8, Signals: []Signal{{Name: "x", Length: 8, Factor: 0}}}},
			want: []ValidationKind{ZeroFactor},
		},
		{
			name: "bit length",
			msgs: []*Message{{ID: 1, Name: "a", Length: 8, Signals: []Signal{
				{Name: "x", Length: 0, Factor: 1},
				{Name: "y", Length: 65, Factor: 1},
			}}},
			want: []ValidationKind{InvalidBitLength, InvalidBitLength},
		},
		{
			name: "float length",
			msgs: []*Message{{ID: 1, Name: "a", Length: 8, Signals: []Signal{
				{Name: "x", Length: 16, Kind: Float, Factor: 1},
			}}},
			want: []ValidationKind{InvalidFloatLength},
		},
		{
			name: "frame length",
			msgs: []*Message{
				{ID: 1, Name: "a", Length: 0},
				{ID: 2, Name: "b", Length: 9, FD: true},
				{ID: 3, Name: "c", Length: 16, FD: false},
				{ID: 4, Name: "d", Length: 48, FD: true},
				{ID: 5, Name: "e", Length: 8, FD: true},
				{ID: 6, Name: "f", Length: 65, FD: true},
			},
			want: []ValidationKind{InvalidFrameLength, InvalidFrameLength, InvalidFrameLength},
		},
		{
			name: "empty names",
			msgs: []*Message{{ID: 1, Length: 8, Signals: []Signal{{Length: 8, Factor: 1}}}},
			want: []ValidationKind{EmptyName, EmptyName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Catalog{Messages: tt.msgs})
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}

			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			var kinds []ValidationKind
			for _, e := range errs {
				kinds = append(kinds, e.Kind)
			}
			assert.Equal(t, tt.want, kinds)
			assert.True(t, errs.Has(tt.want[0]))
		})
	}
}

func TestValidationErrorText(t *testing.T) {
	err := Validate(&Catalog{Messages: []*Message{
		{ID: 0x121, Name: "msgA", Length: 1, Signals: []Signal{u8("x", 4)}},
	}})
	assert.EqualError(t, err,
		"1 validation errors: signal out of frame: message msgA(0x121) signal x: start 4 length 8 little_endian needs 2 bytes, frame has 1")
}

func TestValidFrameLength(t *testing.T) {
	for n := 1; n <= 8; n++ {
		assert.True(t, ValidFrameLength(n, false))
		assert.True(t, ValidFrameLength(n, true))
	}
	for n := 9; n <= 64; n++ {
		assert.True(t, ValidFrameLength(n, true), n)
		assert.False(t, ValidFrameLength(n, false), n)
	}
	for _, n := range []int{-1, 0, 65} {
		assert.False(t, ValidFrameLength(n, true), n)
	}
}

func TestDLCLength(t *testing.T) {
	for _, n := range []int{1, 8, 12, 16, 20, 24, 32, 48, 64} {
		assert.True(t, DLCLength(n), n)
	}
	for _, n := range []int{9, 10, 13, 63} {
		assert.False(t, DLCLength(n), n)
	}
}

func TestValidateOddFDLength(t *testing.T) {
	c, diags, err := NewParser(strings.NewReader("BO_ 1000 msgFD: 10 ECU\n" +
		" SG_ sigTail : 72|8@1+ (1,0) [0|255] \"\" Vector__XXX\n")).Parse()
	require.NoError(t, err)
	require.Empty(t, diags)
	m, ok := c.Message(1000)
	require.True(t, ok)
	assert.True(t, m.FD)
	assert.Equal(t, 10, m.Length)
	assert.False(t, DLCLength(m.Length))
	assert.NoError(t, Validate(c))
}
