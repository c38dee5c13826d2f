package base

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type LOG struct {
	LogToFile bool   `json:"LogToFile" yaml:"logToFile"`
	Format    string `json:"Format" yaml:"format"`     // json, text
	LogLevel  string `json:"LogLevel" yaml:"logLevel"` // panic, fatal, error, warn warning, info, debug, trace
}

type DBC struct {
	DBCPath  string `json:"DBCPath" yaml:"dbcPath"`
	DBCExcel string `json:"DBCExcel" yaml:"dbcExcel"` // read instead of DBCPath when set
}

type Output struct {
	Dir        string `json:"Dir" yaml:"dir"`
	Package    string `json:"Package" yaml:"package"`
	FileName   string `json:"FileName" yaml:"fileName"`
	ExportJSON string `json:"ExportJSON" yaml:"exportJSON"` // catalog dump, skipped when empty
	// merged selection written back in whitelist form, skipped when empty
	SaveWhiteList string `json:"SaveWhiteList" yaml:"saveWhiteList"`
}

type Config struct {
	DBC           `json:"DBC" yaml:"dbc"`
	Output        `json:"Output" yaml:"output"`
	WhiteListFile string `json:"WhiteListFile" yaml:"whiteListFile"`
	LOG           `json:"LOG" yaml:"log"`
	// fail on parse diagnostics instead of only reporting them
	StrictDiagnostics bool `json:"StrictDiagnostics" yaml:"strictDiagnostics"`
}

func NewConfig() *Config {
	return &Config{
		DBC{"./can.dbc", ""},
		Output{"./canlib", "canlib", "canlib.go", "", ""},
		"",
		LOG{false, "text", "info"},
		false,
	}
}

// LoadConfig reads path over the defaults. YAML is chosen for .yaml and
// .yml files, JSON otherwise. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}
