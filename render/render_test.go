package render

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/zap/zaptest"

	"wse/common"
	"wse/style"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func testOptions(t *testing.T) Options {
	return Options{
		Now: func() time.Time { return fixedNow },
		Log: zaptest.NewLogger(t),
	}
}

func newProfile(t *testing.T, colors, fonts []string, raw string) *style.Profile {
	t.Helper()
	p, err := style.NewProfile("https://example.com/", colors, fonts, style.Computed{
		BodyBackground: "#fafafa",
		BodyFont:       "Inter, sans-serif",
		HeadingColor:   "#111111",
		LinkColor:      "#0969da",
	}, raw)
	if err != nil {
		t.Fatalf("NewProfile() error = %v", err)
	}
	return p
}

func render(t *testing.T, reg *Registry, f common.OutputFmt, p *style.Profile) string {
	t.Helper()
	out, err := reg.Render(f, p)
	if err != nil {
		t.Fatalf("Render(%s) error = %v", f, err)
	}
	return out
}

func mustContain(t *testing.T, out string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if !strings.Contains(out, part) {
			t.Errorf("output does not contain %q", part)
		}
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(testOptions(t))

	if got := reg.Formats(); !slices.Equal(got, common.OutputFmtValues()) {
		t.Errorf("Formats() = %v, want every format", got)
	}

	p := newProfile(t, nil, nil, "")
	if _, err := reg.Render(common.OutputFmt(99), p); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}

	reg.Register(common.OutputFmtCss, RendererFunc(func(*style.Profile) (string, error) { return "custom", nil }))
	if got := render(t, reg, common.OutputFmtCss, p); got != "custom" {
		t.Errorf("replaced renderer not used, got %q", got)
	}
	if got := render(t, reg, common.OutputFmtJson, p); !strings.HasPrefix(got, "{") {
		t.Errorf("other formats must not be affected, got %q", got)
	}
}

func TestRender_AllFormatsDeterministic(t *testing.T) {
	p := newProfile(t, []string{"#ff0000", "#00ff00"}, []string{"Inter", "Fira Mono"}, ":root{--x:1px}")
	a := NewRegistry(testOptions(t))
	b := NewRegistry(testOptions(t))
	for _, f := range common.OutputFmtValues() {
		if render(t, a, f, p) != render(t, b, f, p) {
			t.Errorf("%s output is not deterministic with fixed clock", f)
		}
	}
}

func TestJSON(t *testing.T) {
	reg := NewRegistry(testOptions(t))
	out := render(t, reg, common.OutputFmtJson, newProfile(t, []string{"#ff0000"}, nil, ""))

	var doc struct {
		URL            string            `json:"url"`
		ExtractionDate string            `json:"extraction_date"`
		Styles         map[string]string `json:"styles"`
		Colors         []string          `json:"colors"`
		Fonts          []string          `json:"fonts"`
		Metadata       map[string]any    `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if doc.URL != "https://example.com/" || doc.ExtractionDate != "2025-03-14T15:09:26Z" {
		t.Errorf("unexpected url/date %q %q", doc.URL, doc.ExtractionDate)
	}
	if doc.Styles["body_background"] != "#fafafa" || doc.Styles["link_color"] != "#0969da" {
		t.Errorf("unexpected styles %v", doc.Styles)
	}
	if !slices.Equal(doc.Colors, []string{"#ff0000"}) {
		t.Errorf("unexpected colors %v", doc.Colors)
	}
	if doc.Metadata["total_colors_found"] != float64(1) || doc.Metadata["total_fonts_found"] != float64(0) {
		t.Errorf("unexpected metadata %v", doc.Metadata)
	}
	mustContain(t, out, `"fonts": []`, `"extractor_version": "1.0"`)
}

func TestCSS(t *testing.T) {
	reg := NewRegistry(testOptions(t))
	out := render(t, reg, common.OutputFmtCss, newProfile(t, []string{"#ff0000"}, []string{"Inter", "Consolas"}, ""))

	mustContain(t, out,
		"Generated from: https://example.com/",
		"Date: 2025-03-14 15:09:26",
		"    --color-1: #ff0000;  /* Color 1 */\n",
		"--color-primary: #ff0000;",
		"--color-secondary: #666666;",
		"--color-accent: #999999;",
		"--font-primary: Inter;",
		"--font-secondary: Consolas;",
		"--font-mono: Consolas;",
		"--font-stack: Inter, sans-serif;",
		"--text-color: #111111;",
		".border-color-1 { border-color: var(--color-1); }",
		".palette-5 { --current-color: var(--color-5); }",
		"--font-size-4xl: 2.25rem;",
		".text-4xl { font-size: var(--font-size-4xl); }",
	)
	if strings.Contains(out, "--color-2:") {
		t.Error("unexpected second color")
	}
	if !strings.HasSuffix(out, "*/") {
		t.Error("usage notes must close the document")
	}
}

func TestCSS_NoFonts(t *testing.T) {
	reg := NewRegistry(testOptions(t))
	out := render(t, reg, common.OutputFmtCss, newProfile(t, nil, nil, ""))
	mustContain(t, out, "--color-primary: #000000;", "--font-primary: Arial;", "--font-secondary: sans-serif;", "--font-mono: monospace;")
}

func TestModernCSS(t *testing.T) {
	reg := NewRegistry(testOptions(t))
	p := newProfile(t, []string{"#ff0000"}, []string{"Inter"}, ":root{--zeta: 2px; --alpha: 1px}")
	out := render(t, reg, common.OutputFmtModernCss, p)

	mustContain(t, out,
		"--color-1-oklch: oklch(50.0% 0.370 0.0deg);  /* Modern equivalent */",
		"--color-primary-oklch: oklch(50.0% 0.370 0.0deg);",
		"--color-secondary: #666666;",
		"--color-secondary-oklch: oklch(50% 0.1 120deg);",
		"--space-2xl: 4rem;  /* 64px */",
		"--font-size-fluid-2xl: clamp(1.875rem, 5vw, 2.5rem);",
		"--shadow-lg: ",
		".bg-color-1-oklch { background: var(--color-1-oklch); }",
		".space-lg { margin: var(--space-lg); }",
		"/* === Existing CSS Custom Properties (Extracted) === */\n:root {\n    --alpha: 1px;\n    --zeta: 2px;\n}",
	)
	for _, absent := range []string{"--space-3xl", ".space-xl", "Container Queries Detected", ":has() Selector Patterns Detected"} {
		if strings.Contains(out, absent) {
			t.Errorf("unexpected %q in output", absent)
		}
	}
}

func TestModernCSS_FeatureSections(t *testing.T) {
	reg := NewRegistry(testOptions(t))

	plain := render(t, reg, common.OutputFmtModernCss, newProfile(t, nil, nil, ""))
	if strings.Contains(plain, "Existing CSS Custom Properties") {
		t.Error("custom properties section must be omitted when there are none")
	}
	mustContain(t, plain, "--color-primary-oklch: oklch(50% 0.1 0deg);")

	raw := "@container card (min-width: 400px) { .x { display: grid } }\n.card:has(img) { padding: 0 }"
	out := render(t, reg, common.OutputFmtModernCss, newProfile(t, nil, nil, raw))
	mustContain(t, out, "/* === Container Queries Detected === */", "/* === :has() Selector Patterns Detected === */")
	if strings.Index(out, "Container Queries Detected") > strings.Index(out, ":has() Selector Patterns") {
		t.Error("container query section must come first")
	}
}

func TestTailwind(t *testing.T) {
	reg := NewRegistry(testOptions(t))
	p := newProfile(t, []string{"#000000", "#123456"}, []string{"Inter", "Menlo", "Fira Mono", "Georgia"}, "")
	out := render(t, reg, common.OutputFmtTailwind, p)

	mustContain(t, out,
		"// Source: https://example.com/",
		"        'primary': {\n          50: '#666666',",
		"          400: '#000000',",
		"          500: '#000000',",
		"          900: '#000000',",
		"        'color-2': '#123456',",
		"        'sans': ['Inter', 'Menlo', 'Fira Mono'],",
		"        'mono': ['Menlo', 'Fira Mono'],",
		"        '18': '4.5rem',",
		"        '2xl': '1.5rem',",
	)
	if strings.Contains(out, "'color-1'") {
		t.Error("first color must only appear as primary ramp")
	}
}

func TestTailwind_Empty(t *testing.T) {
	reg := NewRegistry(testOptions(t))
	out := render(t, reg, common.OutputFmtTailwind, newProfile(t, nil, nil, ""))
	if strings.Contains(out, "fontFamily") || strings.Contains(out, "primary") {
		t.Errorf("unexpected sections for empty profile:\n%s", out)
	}
	mustContain(t, out, "      colors: {\n      },", "spacing: {")
}

func TestTailwind_QuotedFonts(t *testing.T) {
	reg := NewRegistry(testOptions(t))
	p := newProfile(t, []string{"#000000"}, []string{"O'Reilly Sans", `Back\slash`}, "")
	out := render(t, reg, common.OutputFmtTailwind, p)

	mustContain(t, out, `        'sans': ['O\'Reilly Sans', 'Back\\slash'],`)
}

func TestGeneratedIsUTC(t *testing.T) {
	opts := testOptions(t)
	opts.Now = func() time.Time { return fixedNow.In(time.FixedZone("UTC-5", -5*60*60)) }
	reg := NewRegistry(opts)
	p := newProfile(t, []string{"#000000"}, []string{"Inter"}, "")

	for _, f := range []common.OutputFmt{common.OutputFmtJson, common.OutputFmtDesignTokens} {
		out := render(t, reg, f, p)
		if !strings.Contains(out, `"2025-03-14T15:09:26Z"`) {
			t.Errorf("%s: generated time is not UTC:\n%s", f, out)
		}
	}
}

func TestDesignTokens(t *testing.T) {
	reg := NewRegistry(testOptions(t))
	colors := []string{"#ff0000", "#00ff00", "#0000ff"}
	out := render(t, reg, common.OutputFmtDesignTokens, newProfile(t, colors, []string{"Inter", "JetBrains Mono"}, ""))

	var doc struct {
		DesignSystem struct {
			Colors struct {
				Palette  map[string]map[string]string `json:"palette"`
				Semantic map[string]map[string]string `json:"semantic"`
			} `json:"colors"`
			Typography struct {
				FontFamilies map[string]struct {
					Value []string `json:"value"`
					Type  string   `json:"type"`
				} `json:"fontFamilies"`
				FontSizes map[string]map[string]string `json:"fontSizes"`
			} `json:"typography"`
			Spacing struct {
				Scale map[string]map[string]string `json:"scale"`
			} `json:"spacing"`
			Metadata map[string]string `json:"metadata"`
		} `json:"designSystem"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	ds := doc.DesignSystem

	if len(ds.Colors.Palette) != len(colors) {
		t.Errorf("palette has %d entries, want %d", len(ds.Colors.Palette), len(colors))
	}
	if c := ds.Colors.Palette["color-02"]; c["value"] != "#00ff00" || c["type"] != "color" || !strings.HasPrefix(c["oklch"], "oklch(") {
		t.Errorf("unexpected color-02 token %v", c)
	}
	if ds.Colors.Semantic["text-link"]["value"] != "#0969da" {
		t.Errorf("unexpected semantic tokens %v", ds.Colors.Semantic)
	}
	if f := ds.Typography.FontFamilies["font-02"]; f.Type != "fontFamily.monospace" || f.Value[0] != "JetBrains Mono" {
		t.Errorf("unexpected font-02 token %+v", f)
	}
	if ds.Typography.FontFamilies["font-01"].Type != "fontFamily.sans-serif" {
		t.Error("font-01 must be sans-serif")
	}
	if ds.Typography.FontSizes["base"]["static"] != "1rem" || ds.Spacing.Scale["3xl"]["pixel"] != "96px" {
		t.Error("fixed scales missing")
	}
	if ds.Metadata["generated"] != "2025-03-14T15:09:26Z" || ds.Metadata["version"] != "1.0" {
		t.Errorf("unexpected metadata %v", ds.Metadata)
	}

	// keys keep insertion order
	if strings.Index(out, `"color-01"`) > strings.Index(out, `"color-03"`) ||
		strings.Index(out, `"colors"`) > strings.Index(out, `"metadata"`) {
		t.Error("token order is not preserved")
	}
}

func TestTemplates_Default(t *testing.T) {
	reg := NewRegistry(testOptions(t))
	p := newProfile(t, []string{"#ff0000", "#00ff00"}, []string{"Inter"}, "")

	wiki := render(t, reg, common.OutputFmtMediawiki, p)
	mustContain(t, wiki, "https://example.com/", "<code>#ff0000</code>", "<code>#00ff00</code>", "font-family:'Inter';", "<code>#fafafa</code>")
	if strings.Contains(wiki, "{color_rows}") || strings.Contains(wiki, "{url}") {
		t.Error("placeholders left unexpanded")
	}

	html := render(t, reg, common.OutputFmtHtml, p)
	mustContain(t, html, `<a href="https://example.com/">`, "<code>#00ff00</code>", "font-family: 'Inter', sans-serif;")
}

func TestTemplates_Custom(t *testing.T) {
	fsys := fstest.MapFS{
		"base_mediawiki.wiki":        {Data: []byte("{url}|{body_bg}|{body_font}|{heading_color}|{link_color}\n{color_rows}\n--\n{font_rows}")},
		"color_table_mediawiki.wiki": {Data: []byte("* {color}\n")},
		"font_table_mediawiki.wiki":  {Data: []byte("# {font}")},
	}
	opts := testOptions(t)
	opts.Templates = NewTemplateSet(fsys, "test")
	reg := NewRegistry(opts)

	p := newProfile(t, []string{"#ff0000", "#00ff00"}, []string{"{url}", "Inter"}, "")
	got := render(t, reg, common.OutputFmtMediawiki, p)
	want := "https://example.com/|#fafafa|Inter, sans-serif|#111111|#0969da\n* #ff0000\n* #00ff00\n--\n# {url}\n# Inter"
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}

	if _, err := reg.Render(common.OutputFmtHtml, p); !errors.Is(err, ErrTemplateMissing) {
		t.Errorf("expected ErrTemplateMissing for html, got %v", err)
	}
	if _, err := reg.Render(common.OutputFmtJson, p); err != nil {
		t.Errorf("missing templates must not affect other formats: %v", err)
	}
}

func TestTemplateFiles(t *testing.T) {
	base, color, font := TemplateFiles(common.OutputFmtMediawiki)
	if base != "base_mediawiki.wiki" || color != "color_table_mediawiki.wiki" || font != "font_table_mediawiki.wiki" {
		t.Errorf("unexpected mediawiki names %q %q %q", base, color, font)
	}
	base, _, _ = TemplateFiles(common.OutputFmtHtml)
	if base != "base_html.html" {
		t.Errorf("unexpected html base name %q", base)
	}
}
