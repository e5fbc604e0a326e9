package project

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/google/uuid"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"wse/common"
	"wse/fetch"
	"wse/misc"
	"wse/style"
)

//go:embed templates/*.tmpl
var templates embed.FS

const stampLayout = "2006-01-02 15:04:05"

const (
	methodBrowser  = "CSS analysis + computed styles via headless browser"
	methodDegraded = "CSS analysis only, computed styles replaced with defaults"
)

// Info is everything known about a single extraction run which goes into
// supporting documents.
type Info struct {
	Profile   *style.Profile
	Format    common.OutputFmt
	Generated time.Time
	RunID     uuid.UUID
	Sheets    []fetch.SheetResult
}

type colorRow struct {
	Index int
	Hex   string
	OKLCH string
}

// Badge returns shields.io swatch image URL for the color.
func (c colorRow) Badge() string {
	h := strings.TrimPrefix(c.Hex, "#")
	return "https://img.shields.io/badge/-" + h + "-" + h + "?style=flat-square"
}

type fontRow struct {
	Name           string
	Classification string
	Usage          style.FontUsage
	Fallback       string
}

type featureRow struct {
	Name  string
	Count int
}

// docValues are available to metadata and README templates.
type docValues struct {
	URL        string
	Host       string
	Program    string
	Version    string
	Stamp      string
	RunID      string
	FormatName string
	OutputName string
	Method     string
	Descriptor common.Descriptor
	Computed   style.Computed
	Colors     []colorRow
	Fonts      []fontRow
	Properties []style.Property
	Features   []featureRow
	Sheets     []fetch.SheetResult
}

func naturalProperties(cp *style.CustomProperties) []style.Property {
	names := make([]string, 0, cp.Len())
	for _, p := range cp.All() {
		names = append(names, p.Name)
	}
	sort.Sort(natural.StringSlice(names))

	res := make([]style.Property, 0, len(names))
	for _, n := range names {
		v, _ := cp.Get(n)
		res = append(res, style.Property{Name: n, Value: v})
	}
	return res
}

func newDocValues(info *Info, l Layout) *docValues {
	p := info.Profile
	v := &docValues{
		URL:        p.URL(),
		Host:       HostName(p.URL()),
		Program:    misc.GetDisplayName(),
		Version:    misc.GetVersion(),
		Stamp:      info.Generated.Format(stampLayout),
		RunID:      info.RunID.String(),
		FormatName: info.Format.String(),
		OutputName: filepath.Base(l.Output),
		Method:     methodBrowser,
		Descriptor: info.Format.Descriptor(),
		Computed:   p.Computed(),
		Properties: naturalProperties(p.CustomProperties()),
		Sheets:     info.Sheets,
	}
	if v.Computed.Degraded {
		v.Method = methodDegraded
	}
	for i, c := range p.Colors() {
		v.Colors = append(v.Colors, colorRow{Index: i + 1, Hex: c, OKLCH: style.HexToOKLCH(c)})
	}
	for _, f := range p.Fonts() {
		v.Fonts = append(v.Fonts, fontRow{
			Name:           f,
			Classification: style.Classification(f),
			Usage:          style.ClassifyUsage(f),
			Fallback:       style.Fallback(f),
		})
	}
	features := p.Features()
	for _, f := range style.AllFeatures() {
		if n := len(features.Matches(f)); n > 0 {
			v.Features = append(v.Features, featureRow{Name: f.String(), Count: n})
		}
	}
	return v
}

func readTemplate(name string) (string, error) {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("unable to read template %s: %w", name, err)
	}
	return string(data), nil
}

func expandText(name string, v *docValues) ([]byte, error) {
	text, err := readTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template %s: %w", name, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, v); err != nil {
		return nil, fmt.Errorf("unable to expand template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func expandHTML(name string, v *docValues) ([]byte, error) {
	text, err := readTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := htmltemplate.New(name).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template %s: %w", name, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, v); err != nil {
		return nil, fmt.Errorf("unable to expand template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Metadata returns content of metadata.txt.
func Metadata(info *Info, l Layout) ([]byte, error) {
	return expandText("metadata.txt.tmpl", newDocValues(info, l))
}

// Readme returns content of README.md.
func Readme(info *Info, l Layout) ([]byte, error) {
	return expandText("readme.md.tmpl", newDocValues(info, l))
}

// ReadmeHTML returns content of README.html with live font previews.
func ReadmeHTML(info *Info, l Layout) ([]byte, error) {
	return expandHTML("readme.html.tmpl", newDocValues(info, l))
}

// Save writes document to the layout creating missing directories. In
// project mode supporting documents are produced next to it.
func Save(l Layout, document string, info *Info, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("project")

	if err := os.MkdirAll(filepath.Dir(l.Output), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := writeFile(l.Output, []byte(document)); err != nil {
		return err
	}
	log.Debug("Output saved", zap.String("path", l.Output), zap.Int("size", len(document)))

	if !l.ProjectMode() {
		return nil
	}

	for _, s := range []struct {
		path string
		gen  func(*Info, Layout) ([]byte, error)
	}{
		{l.Metadata(), Metadata},
		{l.Readme(), Readme},
		{l.ReadmeHTML(), ReadmeHTML},
	} {
		data, err := s.gen(info, l)
		if err != nil {
			return err
		}
		if err := writeFile(s.path, data); err != nil {
			return err
		}
		log.Debug("Supporting document saved", zap.String("path", s.path))
	}
	return nil
}
