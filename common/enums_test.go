package common

import (
	"errors"
	"strings"
	"testing"
)

func TestParseOutputFmt(t *testing.T) {
	tests := []struct {
		in   string
		want OutputFmt
	}{
		{"mediawiki", OutputFmtMediawiki},
		{"HTML", OutputFmtHtml},
		{"json", OutputFmtJson},
		{"css", OutputFmtCss},
		{" modern-css ", OutputFmtModernCss},
		{"tailwind", OutputFmtTailwind},
		{"design-tokens", OutputFmtDesignTokens},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFmt(tt.in)
			if err != nil {
				t.Fatalf("ParseOutputFmt(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFmt(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseOutputFmt("scss"); !errors.Is(err, ErrInvalidOutputFmt) {
		t.Errorf("expected ErrInvalidOutputFmt, got %v", err)
	}
}

func TestOutputFmt_RoundTripNames(t *testing.T) {
	for _, f := range OutputFmtValues() {
		back, err := ParseOutputFmt(f.String())
		if err != nil || back != f {
			t.Errorf("format %d does not survive String/Parse: %v", f, err)
		}
	}
	if got := OutputFmt(42).String(); got != "OutputFmt(42)" {
		t.Errorf("String() for invalid value = %q", got)
	}
}

func TestOutputFmt_Ext(t *testing.T) {
	want := map[OutputFmt]string{
		OutputFmtMediawiki:    "mediawiki",
		OutputFmtHtml:         "html",
		OutputFmtJson:         "json",
		OutputFmtCss:          "css",
		OutputFmtModernCss:    "css",
		OutputFmtTailwind:     "js",
		OutputFmtDesignTokens: "json",
	}
	for f, ext := range want {
		if got := f.Ext(); got != ext {
			t.Errorf("%s.Ext() = %q, want %q", f, got, ext)
		}
	}
}

func TestOutputFmt_TemplateDriven(t *testing.T) {
	for _, f := range OutputFmtValues() {
		want := f == OutputFmtMediawiki || f == OutputFmtHtml
		if got := f.TemplateDriven(); got != want {
			t.Errorf("%s.TemplateDriven() = %v, want %v", f, got, want)
		}
	}
}

func TestOutputFmt_TerminalHint(t *testing.T) {
	msg := OutputFmtMediawiki.TerminalHint("/out/styles.mediawiki", "/out/README.html")
	if !strings.Contains(msg, "/out/styles.mediawiki") || !strings.Contains(msg, "/out/README.html") {
		t.Errorf("placeholders not substituted: %q", msg)
	}
	if strings.Contains(OutputFmtJson.TerminalHint("x", "y"), "{") {
		t.Error("json hint should not contain placeholders")
	}
	if OutputFmt(99).Descriptor().Name != "JSON" {
		t.Error("unknown format should fall back to json descriptor")
	}
}
