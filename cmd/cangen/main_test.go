package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobility-lab-vsb/can-library-generator/base"
	"github.com/mobility-lab-vsb/can-library-generator/dbc"
	"github.com/mobility-lab-vsb/can-library-generator/gen"
	"github.com/mobility-lab-vsb/can-library-generator/registry"
	"github.com/mobility-lab-vsb/can-library-generator/whitelist"
)

const exampleDBC = "../../dbc/testdata/example.dbc"

func exampleRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	c, _, err := dbc.ParseFile(exampleDBC)
	require.NoError(t, err)
	r, err := gen.NewRegistry(c)
	require.NoError(t, err)
	return r
}

func exampleConfig(t *testing.T) *base.Config {
	cfg := base.NewConfig()
	cfg.DBCPath = exampleDBC
	cfg.Dir = t.TempDir()
	return cfg
}

func writeDBC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dbc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDecode(t *testing.T) {
	r := exampleRegistry(t)
	out, err := decode(r, []string{
		"121#0CB5016EC4D0B601",
		"0000D001##01037BB1D6449E50AE704000000000000",
		"7FF#00",
		"not a frame",
	}, 1000)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, 1000.0, got["ts"])
	assert.Equal(t, map[string]any{
		"msgMotor_01":                   "1000 121 8 0C B5 01 6E C4 D0 B6 01",
		"msgVD_GNSS_precision_position": "1000 0000D001 16 10 37 BB 1D 64 49 E5 0A E7 04 00 00 00 00 00 00",
	}, got["raw"])

	motor := got["msgMotor_01"].(map[string]any)
	assert.Equal(t, 289.0, motor["id"])
	assert.Equal(t, false, motor["ext"])
	assert.Equal(t, 12.0, motor["sigMO_CRC"])
	assert.Equal(t, 880.0, motor["sigMO_EngineSpeed"])
	assert.InDelta(t, 87.0, motor["sigMO_Oil_Temperature"], 1e-9)

	gnss := got["msgVD_GNSS_precision_position"].(map[string]any)
	assert.Equal(t, true, gnss["ext"])
	assert.Equal(t, true, gnss["fd"])
	assert.InDelta(t, 7.8, gnss["sigVD_GNSS_heading"], 1e-9)
	assert.NotContains(t, got, "brake")

	out, err = decode(r, []string{"7FF#00", "121#00"}, 1000)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestEncode(t *testing.T) {
	r := exampleRegistry(t)
	f, err := encode(r, "msgMotor_01", []string{
		"sigMO_CRC=12", "sigMO_CTR=5", "sigMO_MotorRunningStatus=1", "sigMO_PedalPosition=5.2",
		"sigMO_EngineSpeed=880", "sigMO_EngineTorque=49", "sigMO_Oil_Temperature=87", "sigMO_Oil_pressure = 1",
	})
	require.NoError(t, err)
	assert.Equal(t, "121#0CB5016EC4D0B601", f.String())

	// previous values do not leak into the next frame
	f, err = encode(r, "0x121", []string{"sigMO_CRC=255"})
	require.NoError(t, err)
	assert.Equal(t, "121#FF00000000000000", f.String())

	f, err = encode(r, "512", nil)
	require.NoError(t, err)
	assert.Equal(t, "200#0000000000000000", f.String())

	for _, tt := range []struct {
		key     string
		assigns []string
	}{
		{"missing", nil},
		{"0x7FF", nil},
		{"msgMotor_01", []string{"sigMO_CRC"}},
		{"msgMotor_01", []string{"nope=1"}},
		{"msgMotor_01", []string{"sigMO_CRC=x"}},
	} {
		_, err := encode(r, tt.key, tt.assigns)
		assert.Error(t, err, tt.key, tt.assigns)
	}
}

func TestGenerate(t *testing.T) {
	cfg := exampleConfig(t)
	cfg.Package = "vehicle"
	cfg.FileName = ""
	cfg.ExportJSON = filepath.Join(cfg.Dir, "json", "catalog.json")

	path, err := generate(cfg, []string{"msgMotor_01:sigMO_CRC"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Dir, "vehicle.go"), path)

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package vehicle")
	assert.Contains(t, string(src), "func (m MsgMotor01) SigMOCRC() *registry.Signal")
	assert.NotContains(t, string(src), "SigMOCTR")
	assert.NotContains(t, string(src), "MsgBrake02")

	data, err := os.ReadFile(cfg.ExportJSON)
	require.NoError(t, err)
	c, err := dbc.UnmarshalCatalog(data)
	require.NoError(t, err)
	require.Len(t, c.Messages, 1)
	assert.Equal(t, 1, c.SignalCount())
}

func TestGenerateErrors(t *testing.T) {
	cfg := exampleConfig(t)
	cfg.DBCPath = ""
	_, err := generate(cfg, nil)
	assert.Error(t, err)

	cfg = exampleConfig(t)
	_, err = generate(cfg, []string{":bad"})
	assert.Error(t, err)

	cfg = exampleConfig(t)
	cfg.DBCPath = writeDBC(t, "BO_ 100 a: 8 X\nBO_ 100 b: 8 X\n")
	_, err = generate(cfg, nil)
	var errs dbc.ValidationErrors
	assert.ErrorAs(t, err, &errs)

	cfg = exampleConfig(t)
	cfg.StrictDiagnostics = true
	cfg.DBCPath = writeDBC(t, "BO_ 100 a: 8 X\n SG_ s : x|8@1+ (1,0) [0|1] \"\" X\n")
	_, err = generate(cfg, nil)
	assert.Error(t, err)
}

func TestGenerateSavesWhiteList(t *testing.T) {
	cfg := exampleConfig(t)
	cfg.SaveWhiteList = filepath.Join(cfg.Dir, "lists", "whitelist.json")
	_, err := generate(cfg, []string{"msgMotor_01:sigMO_CRC", "512"})
	require.NoError(t, err)

	w, err := whitelist.LoadFile(cfg.SaveWhiteList)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Len())

	// the saved list selects what the flags did
	again := exampleConfig(t)
	again.WhiteListFile = cfg.SaveWhiteList
	path, err := generate(again, nil)
	require.NoError(t, err)
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), "func (m MsgMotor01) SigMOCRC() *registry.Signal")
	assert.Contains(t, string(src), "func (m MsgBrake02) SigBRChecksum() *registry.Signal")
	assert.NotContains(t, string(src), "SigMOCTR")
	assert.NotContains(t, string(src), "MsgVDGNSSPrecisionPosition")
}

func TestGenerateOddFDLength(t *testing.T) {
	cfg := exampleConfig(t)
	cfg.DBCPath = writeDBC(t, "BO_ 1000 msgFD: 10 ECU\n SG_ sigTail : 72|8@1+ (1,0) [0|255] \"\" X\n")
	_, err := generate(cfg, nil)
	require.NoError(t, err)

	cfg.StrictDiagnostics = true
	_, err = generate(cfg, nil)
	assert.ErrorContains(t, err, "1 FD messages need padding")
}

func TestCheck(t *testing.T) {
	var out bytes.Buffer
	ok, err := check(&out, exampleConfig(t), nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3 messages, 17 signals, 0 validation errors\n", out.String())

	out.Reset()
	ok, err = check(&out, exampleConfig(t), []string{"msgMotor_01:sigMO_CRC,sigMO_CTR", "512", "missing"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "select msgMotor_01(0x121): 2/8 signals\n"+
		"select msgBrake_02(0x200): 6/6 signals\n"+
		"2 messages, 8 signals, 0 validation errors\n", out.String())

	cfg := exampleConfig(t)
	cfg.StrictDiagnostics = true
	cfg.DBCPath = writeDBC(t, "BO_ 100 a: 8 X\n SG_ s : x|8@1+ (1,0) [0|1] \"\" X\nBO_ 100 b: 8 X\n")
	out.Reset()
	ok, err = check(&out, cfg, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "message b(0x64)")
	assert.Contains(t, out.String(), "2 messages, 0 signals, 1 validation errors\n")
	assert.True(t, cfg.StrictDiagnostics)
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	err := newApp().Run([]string{"cangen", "--log-level", "warn",
		"generate", "-d", exampleDBC, "-o", dir, "-p", "vehicle", "-f", "vehicle_gen.go"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "vehicle_gen.go"))
	assert.Equal(t, "vehicle", cfg.Package)

	list := filepath.Join(dir, "keep.json")
	err = newApp().Run([]string{"cangen", "--log-level", "warn",
		"generate", "-d", exampleDBC, "-o", dir, "-s", "msgMotor_01", "--save-whitelist", list})
	require.NoError(t, err)
	assert.FileExists(t, list)
}
