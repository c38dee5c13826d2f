package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli"

	"github.com/mobility-lab-vsb/can-library-generator/base"
	"github.com/mobility-lab-vsb/can-library-generator/can"
	"github.com/mobility-lab-vsb/can-library-generator/candump"
	"github.com/mobility-lab-vsb/can-library-generator/dbc"
	"github.com/mobility-lab-vsb/can-library-generator/gen"
	"github.com/mobility-lab-vsb/can-library-generator/registry"
	"github.com/mobility-lab-vsb/can-library-generator/whitelist"
)

// applyFlags lets command flags override the loaded config.
func applyFlags(c *cli.Context, cfg *base.Config) {
	if c.IsSet("dbc") {
		cfg.DBCPath, cfg.DBCExcel = c.String("dbc"), ""
	}
	if c.IsSet("excel") {
		cfg.DBCExcel = c.String("excel")
	}
	if c.IsSet("whitelist") {
		cfg.WhiteListFile = c.String("whitelist")
	}
	if c.IsSet("out") {
		cfg.Dir = c.String("out")
	}
	if c.IsSet("package") {
		cfg.Package = c.String("package")
	}
	if c.IsSet("file") {
		cfg.FileName = c.String("file")
	}
	if c.IsSet("json") {
		cfg.ExportJSON = c.String("json")
	}
	if c.IsSet("save-whitelist") {
		cfg.SaveWhiteList = c.String("save-whitelist")
	}
}

// readCatalog parses the configured source. It returns the path it read.
func readCatalog(cfg *base.Config) (*dbc.Catalog, string, error) {
	var (
		catalog *dbc.Catalog
		diags   []dbc.Diagnostic
		err     error
		source  string
	)
	switch {
	case cfg.DBCExcel != "":
		source = cfg.DBCExcel
		catalog, diags, err = dbc.ParseExcel(source)
	case cfg.DBCPath != "":
		source = cfg.DBCPath
		catalog, diags, err = dbc.ParseFile(source)
	default:
		return nil, "", errors.New("no DBC file given")
	}
	if err != nil {
		return nil, source, err
	}

	for _, d := range diags {
		log.Warnf("%s: %s", source, d)
	}
	padded := 0
	for _, m := range catalog.Messages {
		if m.FD && !dbc.DLCLength(m.Length) {
			log.Warnf("%s: %s has %d bytes, no FD length code matches it exactly", source, m, m.Length)
			padded++
		}
	}
	if cfg.StrictDiagnostics {
		if len(diags) > 0 {
			return nil, source, errors.Newf("%s: %d lines could not be parsed", source, len(diags))
		}
		if padded > 0 {
			return nil, source, errors.Newf("%s: %d FD messages need padding", source, padded)
		}
	}
	return catalog, source, nil
}

// loadCatalog reads the configured source and returns the selected part
// of it together with the selection.
func loadCatalog(cfg *base.Config, selectors []string) (*dbc.Catalog, *whitelist.WhiteList, string, error) {
	catalog, source, err := readCatalog(cfg)
	if err != nil {
		return nil, nil, source, err
	}
	w, err := selection(cfg.WhiteListFile, selectors)
	if err != nil {
		return nil, nil, source, err
	}
	if w.Len() > 0 {
		catalog = w.Apply(catalog)
	}
	return catalog, w, source, nil
}

func selection(file string, selectors []string) (*whitelist.WhiteList, error) {
	w := whitelist.New()
	if file != "" {
		var err error
		if w, err = whitelist.LoadFile(file); err != nil {
			return nil, err
		}
	}
	for _, s := range selectors {
		message, signals, err := whitelist.ParseSelector(s)
		if err != nil {
			return nil, err
		}
		w.Add(message, signals...)
	}
	return w, nil
}

func makeDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := makeDir(path); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}

func generate(cfg *base.Config, selectors []string) (string, error) {
	catalog, w, source, err := loadCatalog(cfg, selectors)
	if err != nil {
		return "", err
	}

	src, err := gen.Generate(catalog, gen.Options{Package: cfg.Package, Source: filepath.Base(source)})
	if err != nil {
		return "", err
	}
	fileName := cfg.FileName
	if fileName == "" {
		fileName = cfg.Package + ".go"
	}
	path := filepath.Join(cfg.Dir, fileName)
	if err := writeFile(path, src); err != nil {
		return "", err
	}

	if cfg.ExportJSON != "" {
		data, err := dbc.MarshalCatalog(catalog)
		if err != nil {
			return "", err
		}
		if err := writeFile(cfg.ExportJSON, data); err != nil {
			return "", err
		}
	}
	if cfg.SaveWhiteList != "" {
		if err := makeDir(cfg.SaveWhiteList); err != nil {
			return "", err
		}
		if err := w.SaveFile(cfg.SaveWhiteList); err != nil {
			return "", err
		}
	}

	log.Infof("wrote %s: %d messages, %d signals", path, len(catalog.Messages), catalog.SignalCount())
	return path, nil
}

func generateAction(c *cli.Context) error {
	applyFlags(c, cfg)
	path, err := generate(cfg, c.StringSlice("select"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Println(path)
	return nil
}

// check writes one line per selected message and one per problem to w,
// and reports whether the selected catalog can be compiled.
func check(w io.Writer, cfg *base.Config, selectors []string) (bool, error) {
	strict := cfg.StrictDiagnostics
	cfg.StrictDiagnostics = false
	defer func() { cfg.StrictDiagnostics = strict }()

	catalog, _, err := readCatalog(cfg)
	if err != nil {
		return false, err
	}
	list, err := selection(cfg.WhiteListFile, selectors)
	if err != nil {
		return false, err
	}
	if list.Len() > 0 {
		for _, m := range catalog.Messages {
			if !list.QueryMessage(m) {
				continue
			}
			n := 0
			for _, s := range m.Signals {
				if list.QuerySignal(m, s.Name) {
					n++
				}
			}
			fmt.Fprintf(w, "select %s: %d/%d signals\n", m, n, len(m.Signals))
		}
		catalog = list.Apply(catalog)
	}

	err = dbc.Validate(catalog)
	var errs dbc.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			fmt.Fprintln(w, e)
		}
	}
	fmt.Fprintf(w, "%d messages, %d signals, %d validation errors\n",
		len(catalog.Messages), catalog.SignalCount(), len(errs))
	return err == nil, nil
}

func checkAction(c *cli.Context) error {
	applyFlags(c, cfg)
	ok, err := check(os.Stdout, cfg, c.StringSlice("select"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if !ok {
		return cli.NewExitError("catalog is not valid", 1)
	}
	return nil
}

// decode unpacks every frame of one batch. Unknown ids and malformed
// frames are logged and skipped; nil is returned when nothing decoded.
func decode(r *registry.Registry, frames []string, ts int64) ([]byte, error) {
	jData := NewJsonData(ts)
	for _, s := range frames {
		f, err := candump.Parse(s)
		if err != nil {
			log.Warnf("Invalid frame !!! %q: %v", s, err)
			continue
		}
		if err := r.UnpackFrame(f); err != nil {
			if errors.Is(err, registry.ErrMessageNotFound) {
				log.Debugf("No dbc data !!! canId(0x%X)", f.ID)
			} else {
				log.Warnf("%s: %v", f, err)
			}
			continue
		}
		m, _ := r.Message(f.ID)
		jData.Add(f, m)
	}
	if jData.Len() == 0 {
		return nil, nil
	}
	return json.Marshal(jData)
}

func decodeAction(c *cli.Context) error {
	applyFlags(c, cfg)
	catalog, _, _, err := loadCatalog(cfg, c.StringSlice("select"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	r, err := gen.NewRegistry(catalog)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	emit := func(frames []string) error {
		out, err := decode(r, frames, time.Now().UnixMilli())
		if err != nil || out == nil {
			return err
		}
		_, err = fmt.Printf("%s\n", out)
		return err
	}

	if c.NArg() > 0 {
		if err := emit(c.Args()); err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := emit([]string{line}); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	if err := scanner.Err(); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func lookupMessage(r *registry.Registry, key string) (*registry.Message, bool) {
	if m, ok := r.MessageByName(key); ok {
		return m, true
	}
	id, err := strconv.ParseUint(key, 0, 32)
	if err != nil {
		return nil, false
	}
	return r.Message(uint32(id))
}

// encode packs one frame of message key from name=value assignments.
// Signals that are not assigned keep a raw value of zero.
func encode(r *registry.Registry, key string, assigns []string) (can.Frame, error) {
	m, ok := lookupMessage(r, key)
	if !ok {
		return can.Frame{}, errors.Newf("unknown message %q", key)
	}
	m.Reset()
	for _, s := range m.Signals() {
		s.SetRaw(0)
	}

	for _, a := range assigns {
		name, value, found := strings.Cut(a, "=")
		if !found {
			return can.Frame{}, errors.Newf("expected signal=value, got %q", a)
		}
		s, ok := m.SignalByName(strings.TrimSpace(name))
		if !ok {
			return can.Frame{}, errors.Newf("message %s has no signal %q", m.Name, name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return can.Frame{}, errors.Wrapf(err, "value of %s", s.Name)
		}
		s.Set(v)
	}
	return r.PackFrame(m.ID)
}

func encodeAction(c *cli.Context) error {
	applyFlags(c, cfg)
	catalog, _, _, err := loadCatalog(cfg, c.StringSlice("select"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	r, err := gen.NewRegistry(catalog)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := encode(r, c.String("message"), c.Args())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Println(f)
	return nil
}
