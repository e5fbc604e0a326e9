package render

import (
	"fmt"
	"strings"

	"wse/style"
)

// Fallbacks used when profile has fewer colors or fonts than named slots.
const (
	fallbackPrimary   = "#000000"
	fallbackSecondary = "#666666"
	fallbackAccent    = "#999999"

	fallbackFontPrimary   = "Arial"
	fallbackFontSecondary = "sans-serif"
	fallbackFontMono      = "monospace"
)

// cssMonoNames are matched exactly in addition to names containing "mono"
// when picking monospace font for style sheets.
var cssMonoNames = []string{"consolas", "courier"}

// paletteClasses is the number of palette helper classes emitted.
const paletteClasses = 5

type cssRenderer struct {
	opts Options
}

// monoFont returns first monospace looking font or generic family.
func monoFont(p *style.Profile) string {
	if mono := p.MonoFonts(cssMonoNames...); len(mono) > 0 {
		return mono[0]
	}
	return fallbackFontMono
}

// writeLines writes every line followed by new line.
func writeLines(sb *strings.Builder, lines ...string) {
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}

func (r *cssRenderer) Render(p *style.Profile) (string, error) {
	var sb strings.Builder
	colors := p.Colors()

	writeLines(&sb,
		"/* ",
		"   CSS Variables and Utilities",
		"   Generated from: "+p.URL(),
		"   Date: "+r.opts.now().Format(stampLayout),
		"   Web Style Extractor v"+ExtractorVersion,
		"*/",
		"",
		":root {",
		"    /* === Color Palette === */",
	)
	for i, c := range colors {
		fmt.Fprintf(&sb, "    --color-%d: %s;  /* Color %d */\n", i+1, c, i+1)
	}
	writeLines(&sb,
		"    ",
		"    /* === Named Colors === */",
		"    --color-primary: "+p.Color(0, fallbackPrimary)+";",
		"    --color-secondary: "+p.Color(1, fallbackSecondary)+";",
		"    --color-accent: "+p.Color(2, fallbackAccent)+";",
		"    ",
		"    /* === Typography === */",
		"    --font-primary: "+p.Font(0, fallbackFontPrimary)+";",
		"    --font-secondary: "+p.Font(1, fallbackFontSecondary)+";",
		"    --font-mono: "+monoFont(p)+";",
		"    --font-stack: "+p.BodyFont()+";",
		"    ",
		"    /* === Extracted Styles === */",
		"    --body-background: "+p.BodyBackground()+";",
		"    --heading-color: "+p.HeadingColor()+";",
		"    --link-color: "+p.LinkColor()+";",
		"    --text-color: "+p.HeadingColor()+";",
		"}",
		"",
		"/* === Color Utility Classes === */",
	)
	for i := range colors {
		n := i + 1
		fmt.Fprintf(&sb, ".bg-color-%d { background-color: var(--color-%d); }\n", n, n)
		fmt.Fprintf(&sb, ".text-color-%d { color: var(--color-%d); }\n", n, n)
		fmt.Fprintf(&sb, ".border-color-%d { border-color: var(--color-%d); }\n", n, n)
	}
	writeLines(&sb,
		"",
		"/* === Typography Utility Classes === */",
		".font-primary { font-family: var(--font-primary), var(--font-stack); }",
		".font-secondary { font-family: var(--font-secondary), var(--font-stack); }",
		".font-mono { font-family: var(--font-mono), monospace; }",
		"",
		"/* === Layout Utility Classes === */",
		".bg-body { background: var(--body-background); }",
		".text-heading { color: var(--heading-color); }",
		".text-link { color: var(--link-color); }",
		"",
		"/* === Component Base Styles === */",
		"body {",
		"    background: var(--body-background);",
		"    font-family: var(--font-stack);",
		"    color: var(--text-color);",
		"}",
		"",
		"h1, h2, h3, h4, h5, h6 {",
		"    color: var(--heading-color);",
		"    font-family: var(--font-primary), var(--font-stack);",
		"}",
		"",
		"a {",
		"    color: var(--link-color);",
		"}",
		"",
		"code, pre {",
		"    font-family: var(--font-mono), monospace;",
		"}",
		"",
		"/* === Color Palette Classes === */",
	)
	for i := 1; i <= paletteClasses; i++ {
		fmt.Fprintf(&sb, ".palette-%d { --current-color: var(--color-%d); }\n", i, i)
	}
	writeLines(&sb,
		"",
		"/* Use with: background: var(--current-color); or color: var(--current-color); */",
		"",
		"/* === Responsive Font Sizes === */",
		":root {",
	)
	sizes := style.StaticFontSizes()
	for _, t := range sizes {
		fmt.Fprintf(&sb, "    --font-size-%s: %s;\n", t.Name, t.Value)
	}
	writeLines(&sb, "}", "")
	for _, t := range sizes {
		fmt.Fprintf(&sb, ".text-%s { font-size: var(--font-size-%s); }\n", t.Name, t.Name)
	}
	writeLines(&sb,
		"",
		"/* === Usage Examples ===",
		"",
		"Example 1: Basic usage",
		`<div class="bg-color-1 text-color-2 font-primary">`,
		"    Content with extracted colors and fonts",
		"</div>",
		"",
		"Example 2: Component styling",
		".my-button {",
		"    background: var(--color-primary);",
		"    color: var(--color-secondary);",
		"    font-family: var(--font-primary);",
		"}",
		"",
		"Example 3: Theme-aware components",
		".card {",
		"    background: var(--body-background);",
		"    color: var(--text-color);",
		"    border: 1px solid var(--color-accent);",
		"}",
		"",
	)
	sb.WriteString("*/")
	return sb.String(), nil
}
