// Package gen compiles a validated catalog into a Go package that embeds
// the dispatch table and exposes one typed view per message.
package gen

import (
	"bytes"
	"go/format"
	"go/token"

	"github.com/cockroachdb/errors"

	"github.com/mobility-lab-vsb/can-library-generator/base"
	"github.com/mobility-lab-vsb/can-library-generator/dbc"
	"github.com/mobility-lab-vsb/can-library-generator/registry"
)

var log = base.Logger

const DefaultPackage = "canlib"

type Options struct {
	// Package is the name of the generated package, DefaultPackage when
	// empty.
	Package string
	// Source is named in the header comment.
	Source string
}

type signalData struct {
	Method string
	Index  int
	Spec   registry.SignalSpec
}

type messageData struct {
	Type    string
	Spec    registry.MessageSpec
	Signals []signalData
}

type fileData struct {
	Package  string
	Source   string
	UsesCan  bool
	Messages []messageData
}

// Specs converts the catalog into registry specs, messages and signals in
// declaration order. Use it to decode without generating code.
func Specs(c *dbc.Catalog) []registry.MessageSpec {
	specs := make([]registry.MessageSpec, 0, len(c.Messages))
	for _, m := range c.Messages {
		spec := registry.MessageSpec{
			ID:       m.ID,
			Extended: m.Extended,
			Name:     m.Name,
			Length:   m.Length,
			FD:       m.FD,
			Sender:   m.Sender,
			Signals:  make([]registry.SignalSpec, 0, len(m.Signals)),
		}
		for _, s := range m.Signals {
			spec.Signals = append(spec.Signals, registry.SignalSpec{
				Name:      s.Name,
				StartBit:  s.StartBit,
				Length:    s.Length,
				ByteOrder: s.ByteOrder,
				Kind:      s.Kind,
				Factor:    s.Factor,
				Offset:    s.Offset,
				Min:       s.Min,
				Max:       s.Max,
				Unit:      s.Unit,
				Receivers: append([]string(nil), s.Receivers...),
			})
		}
		specs = append(specs, spec)
	}
	return specs
}

// NewRegistry validates the catalog and builds a dispatch table from it.
func NewRegistry(c *dbc.Catalog) (*registry.Registry, error) {
	if err := dbc.Validate(c); err != nil {
		return nil, errors.Wrap(err, "catalog is not valid")
	}
	return registry.New(Specs(c)...), nil
}

// Generate returns the gofmt'ed source of the package. Nothing is
// generated when the catalog has validation errors.
func Generate(c *dbc.Catalog, opts Options) ([]byte, error) {
	if err := dbc.Validate(c); err != nil {
		return nil, errors.Wrap(err, "catalog is not valid")
	}
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}
	if !token.IsIdentifier(opts.Package) {
		return nil, errors.Newf("invalid package name %q", opts.Package)
	}

	data := fileData{Package: opts.Package, Source: opts.Source}
	pkgNames := newNames(packageReserved)
	for _, spec := range Specs(c) {
		md := messageData{
			Type: pkgNames.claim(Identifier(spec.Name),
				func(s string) string { return s },
				func(s string) string { return s + "ID" },
				func(s string) string { return "Get" + s },
			),
			Spec: spec,
		}
		methods := newNames(viewReserved)
		for i, s := range spec.Signals {
			md.Signals = append(md.Signals, signalData{
				Method: methods.claim(Identifier(s.Name)),
				Index:  i,
				Spec:   s,
			})
			data.UsesCan = true
		}
		log.Debugf("gen: %s -> %s, %d signals", spec.Name, md.Type, len(md.Signals))
		data.Messages = append(data.Messages, md)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "execute template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "format generated source:\n%s", buf.String())
	}

	log.Infof("gen: package %s, %d messages", opts.Package, len(data.Messages))
	return src, nil
}
