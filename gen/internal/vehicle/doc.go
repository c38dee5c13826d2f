// Package vehicle is the cangen output for dbc/testdata/example.dbc, kept
// in the tree so the typed views are compiled and exercised.
package vehicle

//go:generate go run ../../../cmd/cangen generate -d ../../../dbc/testdata/example.dbc -o . -p vehicle -f vehicle.go
