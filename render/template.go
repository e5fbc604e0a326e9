package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"wse/common"
	"wse/style"
)

//go:embed templates
var builtinTemplates embed.FS

// TemplateSet is a source of templates for template driven formats. For
// every format it must provide base_<format>.<ext>, color_table_<format>.<ext>
// and font_table_<format>.<ext> where ext is "wiki" for mediawiki and format
// name otherwise.
type TemplateSet struct {
	fsys fs.FS
	name string
}

// NewTemplateSet creates template set over file system, name is used in
// diagnostics only.
func NewTemplateSet(fsys fs.FS, name string) *TemplateSet {
	return &TemplateSet{fsys: fsys, name: name}
}

// DefaultTemplates returns templates compiled into the program.
func DefaultTemplates() *TemplateSet {
	sub, err := fs.Sub(builtinTemplates, "templates")
	if err != nil {
		// this should never happen
		panic(err)
	}
	return NewTemplateSet(sub, "built-in")
}

// DirTemplates returns templates from the directory on disk.
func DirTemplates(dir string) *TemplateSet {
	return NewTemplateSet(os.DirFS(dir), dir)
}

func (ts *TemplateSet) String() string { return ts.name }

// formatTemplates is a loaded set of templates for a single format.
type formatTemplates struct {
	base, color, font string
}

func templateExt(f common.OutputFmt) string {
	if f == common.OutputFmtMediawiki {
		return "wiki"
	}
	return f.String()
}

// TemplateFiles lists file names required for the format.
func TemplateFiles(f common.OutputFmt) (base, color, font string) {
	ext := templateExt(f)
	return fmt.Sprintf("base_%s.%s", f, ext),
		fmt.Sprintf("color_table_%s.%s", f, ext),
		fmt.Sprintf("font_table_%s.%s", f, ext)
}

func (ts *TemplateSet) load(f common.OutputFmt) (*formatTemplates, error) {
	base, color, font := TemplateFiles(f)
	names := [...]string{base, color, font}

	var texts [3]string
	for i, name := range names {
		data, err := fs.ReadFile(ts.fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s in %s", ErrTemplateMissing, name, ts.name)
			}
			return nil, fmt.Errorf("unable to read template %s from %s: %w", name, ts.name, err)
		}
		texts[i] = string(data)
	}
	// rows are joined with new lines, final line break of a row is dropped
	return &formatTemplates{
		base:  texts[0],
		color: trimLineBreak(texts[1]),
		font:  trimLineBreak(texts[2]),
	}, nil
}

func trimLineBreak(s string) string {
	if v, ok := strings.CutSuffix(s, "\n"); ok {
		return strings.TrimSuffix(v, "\r")
	}
	return s
}

type templateRenderer struct {
	format common.OutputFmt
	set    *TemplateSet
	log    *zap.Logger
}

func (r *templateRenderer) Render(p *style.Profile) (string, error) {
	t, err := r.set.load(r.format)
	if err != nil {
		r.log.Debug("Unable to load templates", zap.Stringer("format", r.format), zap.Error(err))
		return "", err
	}

	colors := p.Colors()
	colorRows := make([]string, 0, len(colors))
	for _, c := range colors {
		colorRows = append(colorRows, strings.ReplaceAll(t.color, "{color}", c))
	}

	fonts := p.Fonts()
	fontRows := make([]string, 0, len(fonts))
	for _, f := range fonts {
		fontRows = append(fontRows, strings.ReplaceAll(t.font, "{font}", f))
	}

	// single pass, substituted values are never expanded again
	return strings.NewReplacer(
		"{url}", p.URL(),
		"{body_bg}", p.BodyBackground(),
		"{body_font}", p.BodyFont(),
		"{heading_color}", p.HeadingColor(),
		"{link_color}", p.LinkColor(),
		"{color_rows}", strings.Join(colorRows, "\n"),
		"{font_rows}", strings.Join(fontRows, "\n"),
	).Replace(t.base), nil
}
