package style

import (
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"wse/css"
)

// MaxFonts is the maximum number of font families kept in a profile.
const MaxFonts = 5

var fontFamilyRe = regexp.MustCompile(`(?i)font-family\s*:\s*([^;}]+)`)

// ExtractFonts collects font family names from raw style text in order of
// appearance. Structured parse is used first, when it reports malformed input
// direct pattern scan of the same text is used instead. Both produce the same
// result for well-formed style sheets.
func ExtractFonts(raw string, log *zap.Logger) []string {
	if log == nil {
		log = zap.NewNop()
	}

	var values []string
	sheet, err := css.NewParser(log).Parse([]byte(raw), "font-family")
	if err == nil {
		values = sheet.Values("font-family")
	} else {
		log.Debug("Falling back to pattern scan for fonts", zap.Error(err))
		values = scanFontFamilies(raw)
	}

	var fonts []string
	for _, v := range values {
		fonts = append(fonts, splitFamilies(v)...)
	}
	return firstUnique(fonts, MaxFonts)
}

// scanFontFamilies finds font-family declaration values with a pattern.
func scanFontFamilies(raw string) []string {
	var values []string
	for _, m := range fontFamilyRe.FindAllStringSubmatch(raw, -1) {
		values = append(values, m[1])
	}
	return values
}

// splitFamilies splits declaration value on commas, quotes are stripped from
// both ends of every part independently.
func splitFamilies(value string) []string {
	value = strings.TrimSpace(value)
	if v, ok := strings.CutSuffix(value, "important"); ok {
		if v, ok = strings.CutSuffix(strings.TrimSpace(v), "!"); ok {
			value = v
		}
	}

	var names []string
	for part := range strings.SplitSeq(value, ",") {
		if name := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"'`)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// FontUsage is coarse category describing what font is likely used for.
type FontUsage string

const (
	FontUsageMonospace     FontUsage = "Monospace/Code"
	FontUsageSystem        FontUsage = "UI/System"
	FontUsageSerif         FontUsage = "Serif/Reading"
	FontUsageKeyword       FontUsage = "CSS Keyword"
	FontUsageSansFallback  FontUsage = "Sans-serif Fallback"
	FontUsageSerifFallback FontUsage = "Serif Fallback"
	FontUsageDisplay       FontUsage = "Display/Custom"
)

// Badge returns short class name for the usage suitable for HTML markup.
func (u FontUsage) Badge() string {
	switch u {
	case FontUsageMonospace:
		return "monospace"
	case FontUsageSystem:
		return "system"
	case FontUsageSerif, FontUsageSerifFallback:
		return "serif"
	case FontUsageKeyword:
		return "keyword"
	case FontUsageSansFallback:
		return "fallback"
	default:
		return "custom"
	}
}

var (
	monoNames        = []string{"consolas", "courier", "menlo", "monaco"}
	systemUsageNames = []string{"-apple-system", "blinkmacsystemfont", "segoe ui", "roboto", "helvetica neue", "arial"}
	serifUsageNames  = []string{"times", "georgia", "serif"}
	cssKeywords      = []string{"inherit", "initial", "unset"}

	classMonoNames    = []string{"consolas", "courier", "menlo", "monaco", "sfmono-regular"}
	classSystemNames  = []string{"-apple-system", "blinkmacsystemfont", "segoe ui", "roboto", "helvetica neue"}
	classSerifNames   = []string{"times", "times new roman", "georgia", "baskerville"}
	classSansNames    = []string{"helvetica", "arial", "verdana", "tahoma"}
	classKeywordNames = []string{"inherit", "initial", "unset", "auto"}
	fallbackSansNames = []string{"segoe ui", "roboto", "helvetica neue", "arial"}
)

// IsMonospace reports whether font family name looks like monospace one. The
// extra names are matched exactly (case-insensitive) in addition to any name
// containing "mono".
func IsMonospace(font string, extra ...string) bool {
	lower := strings.ToLower(font)
	return strings.Contains(lower, "mono") || slices.Contains(extra, lower)
}

// ClassifyUsage returns likely usage of a font family.
func ClassifyUsage(font string) FontUsage {
	lower := strings.ToLower(font)
	switch {
	case IsMonospace(font, monoNames...):
		return FontUsageMonospace
	case slices.Contains(systemUsageNames, lower):
		return FontUsageSystem
	case slices.Contains(serifUsageNames, lower):
		return FontUsageSerif
	case slices.Contains(cssKeywords, lower):
		return FontUsageKeyword
	case strings.Contains(lower, "sans"):
		return FontUsageSansFallback
	case strings.Contains(lower, "serif"):
		return FontUsageSerifFallback
	default:
		return FontUsageDisplay
	}
}

// Classification returns typographic class of a font family.
func Classification(font string) string {
	lower := strings.ToLower(font)
	switch {
	case IsMonospace(font, classMonoNames...):
		return "Monospace"
	case slices.Contains(classSystemNames, lower):
		return "System UI"
	case slices.Contains(classSerifNames, lower):
		return "Serif"
	case slices.Contains(classSansNames, lower):
		return "Sans-serif"
	case slices.Contains(classKeywordNames, lower):
		return "CSS Keyword"
	case strings.Contains(lower, "display") || strings.Contains(lower, "heading"):
		return "Display"
	default:
		return "Custom"
	}
}

// Fallback returns recommended fallback stack for a font family.
func Fallback(font string) string {
	lower := strings.ToLower(font)
	switch {
	case IsMonospace(font, monoNames...):
		return "monospace, 'Courier New'"
	case lower == "-apple-system" || lower == "blinkmacsystemfont":
		return "system-ui, sans-serif"
	case slices.Contains(fallbackSansNames, lower):
		return "sans-serif, Arial"
	case lower == "times" || lower == "georgia":
		return "serif, 'Times New Roman'"
	case slices.Contains(cssKeywords, lower):
		return "inherits parent"
	default:
		return "sans-serif"
	}
}
