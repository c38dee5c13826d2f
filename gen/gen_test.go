package gen

import (
	"flag"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobility-lab-vsb/can-library-generator/dbc"
)

var update = flag.Bool("update", false, "rewrite the checked-in vehicle package")

func example(t *testing.T) *dbc.Catalog {
	t.Helper()
	c, diags, err := dbc.ParseFile("../dbc/testdata/example.dbc")
	require.NoError(t, err)
	require.Empty(t, diags)
	return c
}

func TestIdentifier(t *testing.T) {
	tests := map[string]string{
		"msgMotor_01":                   "MsgMotor01",
		"sigMO_CRC":                     "SigMOCRC",
		"sigMO_Oil_pressure":            "SigMOOilPressure",
		"msgVD_GNSS_precision_position": "MsgVDGNSSPrecisionPosition",
		"DDC12V_IOUT":                   "DDC12VIOUT",
		"_x":                            "X",
		"1st":                           "X1st",
		"__":                            "X",
		"":                              "X",
	}
	for in, want := range tests {
		assert.Equal(t, want, Identifier(in), in)
	}
}

func TestNames(t *testing.T) {
	n := newNames(packageReserved)
	id := func(s string) string { return s + "ID" }
	assert.Equal(t, "A", n.claim("A", func(s string) string { return s }, id))
	assert.Equal(t, "A2", n.claim("A", func(s string) string { return s }, id))
	// AID is taken by the const of A
	assert.Equal(t, "AID2", n.claim("AID", func(s string) string { return s }, id))
	assert.Equal(t, "New2", n.claim("New"))
}

// decls collects the top level names of a generated file, methods as
// Type.Method.
func decls(t *testing.T, src []byte) (*ast.File, map[string]bool) {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err, string(src))

	out := map[string]bool{}
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				name = d.Recv.List[0].Type.(*ast.Ident).Name + "." + name
			}
			out[name] = true
		case *ast.GenDecl:
			for _, s := range d.Specs {
				switch s := s.(type) {
				case *ast.TypeSpec:
					out[s.Name.Name] = true
				case *ast.ValueSpec:
					for _, n := range s.Names {
						out[n.Name] = true
					}
				}
			}
		}
	}
	return f, out
}

func TestGenerateExample(t *testing.T) {
	src, err := Generate(example(t), Options{Package: "vehicle", Source: "example.dbc"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(src), "// Code generated by cangen from example.dbc. DO NOT EDIT."))

	f, names := decls(t, src)
	assert.Equal(t, "vehicle", f.Name.Name)
	for _, want := range []string{
		"New", "messageSpecs",
		"MsgMotor01ID", "MsgMotor01", "GetMsgMotor01",
		"MsgMotor01.SigMOCRC", "MsgMotor01.SigMOOilTemperature", "MsgMotor01.SigMOOilPressure",
		"MsgVDGNSSPrecisionPositionID", "MsgVDGNSSPrecisionPosition.SigVDGNSSHeading",
		"MsgBrake02ID", "MsgBrake02.SigBRYawRate",
	} {
		assert.True(t, names[want], want)
	}

	s := string(src)
	for _, re := range []string{
		`MsgMotor01ID\s+uint32 = 0x121\n`,
		`MsgVDGNSSPrecisionPositionID\s+uint32 = 0xD001\n`,
		`Extended:\s+true,`,
		`ByteOrder:\s+can\.Motorola,`,
		`Kind:\s+can\.Signed,`,
		`Factor:\s+1e-07,`,
		`Receivers:\s+\[\]string\{"Gateway", "Motor"\},`,
		`return m\.Signal\(7\)`,
	} {
		assert.Regexp(t, re, s)
	}
}

// internal/vehicle holds the output for example.dbc; its own tests run the
// typed views.
func TestGenerateGolden(t *testing.T) {
	const golden = "internal/vehicle/vehicle.go"
	src, err := Generate(example(t), Options{Package: "vehicle", Source: "example.dbc"})
	require.NoError(t, err)
	if *update {
		require.NoError(t, os.WriteFile(golden, src, 0o644))
	}

	want, err := os.ReadFile(golden)
	require.NoError(t, err)
	want, err = format.Source(want)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(src))
}

func TestGenerateOddFDLength(t *testing.T) {
	c, diags, err := dbc.NewParser(strings.NewReader("BO_ 1000 msgFD: 10 ECU\n" +
		" SG_ sigTail : 72|8@1+ (1,0) [0|255] \"\" Vector__XXX\n")).Parse()
	require.NoError(t, err)
	require.Empty(t, diags)

	src, err := Generate(c, Options{})
	require.NoError(t, err)
	assert.Regexp(t, `Length:\s+10,`, string(src))
	assert.Regexp(t, `FD:\s+true,`, string(src))

	r, err := NewRegistry(c)
	require.NoError(t, err)
	frame := make([]byte, 10)
	frame[9] = 0x7F
	require.NoError(t, r.Unpack(1000, frame))
	m, _ := r.Message(1000)
	assert.Equal(t, 127.0, m.Signal(0).Physical())
}

func TestGenerateCollisions(t *testing.T) {
	c := dbc.NewCatalog()
	c.Add(&dbc.Message{ID: 1, Name: "a", Length: 8, Signals: []dbc.Signal{
		{Name: "ID", Length: 8, ByteOrder: dbc.Intel, Factor: 1},
		{Name: "x_1", StartBit: 8, Length: 8, ByteOrder: dbc.Intel, Factor: 1},
		{Name: "x1", StartBit: 16, Length: 8, ByteOrder: dbc.Intel, Factor: 1},
	}})
	c.Add(&dbc.Message{ID: 2, Name: "A", Length: 1})
	c.Add(&dbc.Message{ID: 3, Name: "new", Length: 1})

	src, err := Generate(c, Options{})
	require.NoError(t, err)

	f, names := decls(t, src)
	assert.Equal(t, DefaultPackage, f.Name.Name)
	for _, want := range []string{"A", "A2", "A2ID", "GetA2", "New2", "A.ID2", "A.X1", "A.X12"} {
		assert.True(t, names[want], want)
	}
}

func TestGenerateNoSignals(t *testing.T) {
	c := dbc.NewCatalog()
	c.Add(&dbc.Message{ID: 5, Name: "empty", Length: 1})

	src, err := Generate(c, Options{})
	require.NoError(t, err)
	assert.NotContains(t, string(src), `"github.com/mobility-lab-vsb/can-library-generator/can"`)
	decls(t, src)

	src, err = Generate(dbc.NewCatalog(), Options{})
	require.NoError(t, err)
	decls(t, src)
}

func TestGenerateRefusesInvalid(t *testing.T) {
	c := dbc.NewCatalog()
	c.Add(&dbc.Message{ID: 1, Name: "a", Length: 8})
	c.Add(&dbc.Message{ID: 1, Name: "b", Length: 8, Signals: []dbc.Signal{{Name: "s", Length: 8, Factor: 0}}})

	src, err := Generate(c, Options{})
	assert.Nil(t, src)
	var errs dbc.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has(dbc.DuplicateMessageID))
	assert.True(t, errs.Has(dbc.ZeroFactor))

	_, err = NewRegistry(c)
	assert.ErrorAs(t, err, &errs)
}

func TestGenerateBadInput(t *testing.T) {
	_, err := Generate(example(t), Options{Package: "not a name"})
	assert.Error(t, err)

	c := dbc.NewCatalog()
	c.Add(&dbc.Message{ID: 1, Name: "a", Length: 8, Signals: []dbc.Signal{
		{Name: "s", Length: 8, ByteOrder: dbc.Intel, Factor: 1, Offset: math.NaN()},
	}})
	_, err = Generate(c, Options{})
	assert.Error(t, err)
}

func TestSpecsDecodeVectors(t *testing.T) {
	r, err := NewRegistry(example(t))
	require.NoError(t, err)

	tests := []struct {
		id    uint32
		frame []byte
		want  []float64
		delta float64
	}{
		{0x121, []byte{0x0C, 0xB5, 0x01, 0x6E, 0xC4, 0xD0, 0xB6, 0x01}, []float64{12, 5, 1, 5.2, 880, 49, 87, 1}, 1e-9},
		{0xD001, []byte{0x10, 0x37, 0xBB, 0x1D, 0x64, 0x49, 0xE5, 0x0A, 0xE7, 0x04, 0, 0, 0, 0, 0, 0}, []float64{110.491736, 189.047311, 7.8}, 1e-6},
		{0x200, []byte{0x12, 0x34, 0x56, 0x78, 0xFA, 0xB3, 0xC0, 0x5A}, []float64{46.6, 221.36, -4.25, 3, 12, 90}, 1e-9},
	}
	for _, tt := range tests {
		require.NoError(t, r.Unpack(tt.id, tt.frame))
		m, ok := r.Message(tt.id)
		require.True(t, ok)
		require.Equal(t, len(tt.want), m.SignalCount())
		for i, want := range tt.want {
			assert.InDelta(t, want, m.Signal(i).Physical(), tt.delta, "%s.%s", m.Name, m.Signal(i).Name)
		}

		out := make([]byte, len(tt.frame))
		require.NoError(t, r.Pack(tt.id, out))
		assert.Equal(t, tt.frame, out, m.Name)
	}
}

func TestSpecsCopy(t *testing.T) {
	c := example(t)
	specs := Specs(c)
	require.Len(t, specs, 3)
	specs[0].Signals[0].Receivers[0] = "changed"
	assert.Equal(t, "Gateway", c.Messages[0].Signals[0].Receivers[0])
	assert.Equal(t, "Motor", specs[0].Sender)
}
