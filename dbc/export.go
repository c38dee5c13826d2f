package dbc

import (
	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalCatalog renders the catalog as indented JSON.
func MarshalCatalog(c *Catalog) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal catalog")
	}
	return append(data, '\n'), nil
}

func UnmarshalCatalog(data []byte) (*Catalog, error) {
	c := NewCatalog()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "unmarshal catalog")
	}
	return c, nil
}
