package project

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wse/common"
	"wse/fetch"
	"wse/style"
)

const testRaw = `:root { --space-10: 4rem; --space-2: 1rem; --brand: #0969da; }
.card:has(img) { padding: clamp(1rem, 2vw, 2rem); }`

func testInfo(t *testing.T, format common.OutputFmt) *Info {
	t.Helper()
	p, err := style.NewProfile("https://www.example.com/",
		[]string{"#0969da", "#ffffff"},
		[]string{"Helvetica Neue", "Menlo", "<Script>"},
		style.Computed{BodyBackground: "#ffffff", BodyFont: "Arial, sans-serif", HeadingColor: "#111111", LinkColor: "#0969da"},
		testRaw)
	if err != nil {
		t.Fatalf("NewProfile() error = %v", err)
	}
	return &Info{
		Profile:   p,
		Format:    format,
		Generated: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
		RunID:     uuid.MustParse("6f1c1c3e-3c8b-4d39-9c3e-5b4a1f0e2d7a"),
		Sheets: []fetch.SheetResult{
			{URL: "https://example.com/main.css", Bytes: 120},
			{URL: "https://example.com/missing.css", Err: errors.New("status 404")},
			{URL: "https://example.com/fonts.css", Bytes: 40, ImportedBy: "https://example.com/main.css"},
		},
	}
}

func testLayout(t *testing.T) Layout {
	dir := filepath.Join(t.TempDir(), "example.com")
	return Layout{Dir: dir, Output: filepath.Join(dir, "styles.json")}
}

func TestMetadata(t *testing.T) {
	data, err := Metadata(testInfo(t, common.OutputFmtJson), testLayout(t))
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	got := string(data)

	for _, want := range []string{
		"Web Style Extraction Metadata\n",
		"Generated: 2025-03-14 15:09:26\n",
		"Source URL: https://www.example.com/\n",
		"Run ID: 6f1c1c3e-3c8b-4d39-9c3e-5b4a1f0e2d7a\n",
		"Format: json\n",
		"- Colors found: 2\n",
		"- Fonts found: 3\n",
		"- Heading color: #111111\n",
		"Colors extracted:\n  - #0969da (",
		"  - Menlo [Monospace]\n",
		"  - https://example.com/main.css (120 bytes)\n",
		"  - https://example.com/missing.css (failed: status 404)\n",
		"  - https://example.com/fonts.css (40 bytes) imported by https://example.com/main.css\n",
		"  - has_selectors: 1\n",
		"  - fluid_typography: 1\n",
		"Extraction method: " + methodBrowser + "\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("metadata missing %q\n%s", want, got)
		}
	}

	// custom properties are listed in natural order
	i2 := strings.Index(got, "--space-2: 1rem")
	i10 := strings.Index(got, "--space-10: 4rem")
	ib := strings.Index(got, "--brand: #0969da")
	if ib < 0 || i2 < 0 || i10 < 0 || !(ib < i2 && i2 < i10) {
		t.Errorf("custom properties not in natural order\n%s", got)
	}
	if strings.Contains(got, "container_queries") {
		t.Error("undetected features must not be listed")
	}
}

func TestMetadata_Degraded(t *testing.T) {
	p, err := style.NewProfile("https://example.com", nil, nil, style.DefaultComputed(), "")
	if err != nil {
		t.Fatal(err)
	}
	info := &Info{Profile: p, Format: common.OutputFmtCss, Generated: time.Now()}
	data, err := Metadata(info, testLayout(t))
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	got := string(data)
	if !strings.Contains(got, methodDegraded) {
		t.Errorf("degraded method not reported\n%s", got)
	}
	for _, unexpected := range []string{"Custom properties", "Modern CSS features", "Linked style sheets"} {
		if strings.Contains(got, unexpected) {
			t.Errorf("empty section %q rendered", unexpected)
		}
	}
}

func TestReadme(t *testing.T) {
	data, err := Readme(testInfo(t, common.OutputFmtJson), testLayout(t))
	if err != nil {
		t.Fatalf("Readme() error = %v", err)
	}
	got := string(data)

	for _, want := range []string{
		"# Style Guide for example.com\n",
		"**Format:** JSON",
		"| 1 | `#0969da` | `" + style.HexToOKLCH("#0969da") + "` | ![#0969da](https://img.shields.io/badge/-0969da-0969da?style=flat-square) |",
		"| `Menlo` | Monospace | Monospace/Code | monospace, 'Courier New' |",
		"- **`styles.json`**",
		"## " + common.OutputFmtJson.Descriptor().HowtoTitle,
		common.OutputFmtJson.Descriptor().ImportExample,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("README.md missing %q\n%s", want, got)
		}
	}
}

func TestReadmeHTML(t *testing.T) {
	data, err := ReadmeHTML(testInfo(t, common.OutputFmtHtml), testLayout(t))
	if err != nil {
		t.Fatalf("ReadmeHTML() error = %v", err)
	}
	got := string(data)

	for _, want := range []string{
		"<title>Style Guide for example.com</title>",
		`style="background-color: #0969da;"`,
		`<span class="usage-badge monospace">Monospace/Code</span>`,
		"font-family: 'Menlo', monospace, sans-serif;",
		"&lt;Script&gt;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("README.html missing %q", want)
		}
	}
	if strings.Contains(got, "<Script>") {
		t.Error("font names must be escaped")
	}
}

func TestSave(t *testing.T) {
	l := testLayout(t)
	if err := Save(l, `{"ok":true}`, testInfo(t, common.OutputFmtJson), zap.NewNop()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	for _, name := range l.Files() {
		fi, err := os.Stat(name)
		if err != nil {
			t.Errorf("%s not written: %v", filepath.Base(name), err)
			continue
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", filepath.Base(name))
		}
	}
	data, err := os.ReadFile(l.Output)
	if err != nil || string(data) != `{"ok":true}` {
		t.Errorf("output = %q, %v", data, err)
	}
}

func TestSave_SingleFile(t *testing.T) {
	dir := t.TempDir()
	l := Layout{Output: filepath.Join(dir, "my.css")}
	if err := Save(l, "body{}", testInfo(t, common.OutputFmtCss), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "my.css" {
		t.Errorf("unexpected directory content: %v", entries)
	}
}

func TestSummary(t *testing.T) {
	info := testInfo(t, common.OutputFmtJson)
	l := testLayout(t)

	var buf bytes.Buffer
	if err := Summary(&buf, info.Profile, info.Format, l, true); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		"Project created: " + l.Dir,
		"Main output: " + l.Output,
		"Extraction Summary:",
		"Colors found: 2",
		"Fonts found: 3",
		"Heading color: #111111",
		"Palette: ",
		"JSON data ready for:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("escape sequences written to non-terminal")
	}
}

func TestSummary_SingleFileDegraded(t *testing.T) {
	p, err := style.NewProfile("https://example.com", []string{"#000000"}, nil, style.DefaultComputed(), "")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Summary(&buf, p, common.OutputFmtCss, Layout{Output: "out.css"}, false); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "Style file created: out.css") {
		t.Errorf("missing output line\n%s", got)
	}
	if !strings.Contains(got, "defaults used") {
		t.Errorf("degraded note missing\n%s", got)
	}
	if strings.Contains(got, "Palette:") {
		t.Error("swatches must be skipped when disabled")
	}
}
