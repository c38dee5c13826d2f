package gen

import (
	"fmt"
	"math"
	"strconv"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/mobility-lab-vsb/can-library-generator/can"
)

var funcs = template.FuncMap{
	"quote": strconv.Quote,
	"hex": func(id uint32) string {
		return fmt.Sprintf("0x%X", id)
	},
	"float": func(v float64) (string, error) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", errors.Newf("%v has no Go literal", v)
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	},
	"byteOrder": func(o can.ByteOrder) string {
		if o == can.Intel {
			return "can.Intel"
		}
		return "can.Motorola"
	},
	"kind": func(k can.ValueKind) string {
		switch k {
		case can.Signed:
			return "can.Signed"
		case can.Float:
			return "can.Float"
		}
		return "can.Unsigned"
	},
}

var fileTemplate = template.Must(template.New("file").Funcs(funcs).Parse(`// Code generated by cangen{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

package {{.Package}}

import (
{{- if .UsesCan}}
	"github.com/mobility-lab-vsb/can-library-generator/can"
{{- end}}
	"github.com/mobility-lab-vsb/can-library-generator/registry"
)

const (
{{- range .Messages}}
	{{.Type}}ID uint32 = {{hex .Spec.ID}}
{{- end}}
)

var messageSpecs = []registry.MessageSpec{
{{- range .Messages}}
	{
		ID:       {{.Type}}ID,
		Extended: {{.Spec.Extended}},
		Name:     {{quote .Spec.Name}},
		Length:   {{.Spec.Length}},
		FD:       {{.Spec.FD}},
		Sender:   {{quote .Spec.Sender}},
		Signals: []registry.SignalSpec{
{{- range .Signals}}
			{
				Name:      {{quote .Spec.Name}},
				StartBit:  {{.Spec.StartBit}},
				Length:    {{.Spec.Length}},
				ByteOrder: {{byteOrder .Spec.ByteOrder}},
				Kind:      {{kind .Spec.Kind}},
				Factor:    {{float .Spec.Factor}},
				Offset:    {{float .Spec.Offset}},
				Min:       {{float .Spec.Min}},
				Max:       {{float .Spec.Max}},
				Unit:      {{quote .Spec.Unit}},
{{- if .Spec.Receivers}}
				Receivers: []string{ {{- range $i, $r := .Spec.Receivers}}{{if $i}}, {{end}}{{quote $r}}{{end -}} },
{{- end}}
			},
{{- end}}
		},
	},
{{- end}}
}

// New returns a dispatch table with every message zeroed. Each call
// returns an independent table.
func New() *registry.Registry {
	return registry.New(messageSpecs...)
}
{{range .Messages}}
// {{.Type}} is {{.Spec.Name}} ({{hex .Spec.ID}}), {{.Spec.Length}} bytes{{if .Spec.FD}}, CAN FD{{end}}{{if .Spec.Sender}}, sent by {{.Spec.Sender}}{{end}}.
type {{.Type}} struct {
	*registry.Message
}

// Get{{.Type}} returns the {{.Spec.Name}} view of r. r must come from New.
func Get{{.Type}}(r *registry.Registry) {{.Type}} {
	m, _ := r.Message({{.Type}}ID)
	return {{.Type}}{m}
}
{{$type := .Type}}{{range .Signals}}
// {{.Method}} is {{.Spec.Name}}{{if .Spec.Unit}} in {{.Spec.Unit}}{{end}}.
func (m {{$type}}) {{.Method}}() *registry.Signal {
	return m.Signal({{.Index}})
}
{{end}}{{end}}`))
