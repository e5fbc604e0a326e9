package render

import (
	"fmt"
	"strings"

	"wse/style"
)

const (
	tailwindSansFonts = 3
	tailwindMonoFonts = 2
)

var tailwindMonoNames = []string{"consolas", "courier", "menlo"}

type tailwindRenderer struct {
	opts Options
}

func quoteList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, jsQuote(v))
	}
	return strings.Join(quoted, ", ")
}

var jsEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

// jsQuote makes single quoted JavaScript string literal.
func jsQuote(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}

func (r *tailwindRenderer) Render(p *style.Profile) (string, error) {
	var sb strings.Builder
	colors := p.Colors()
	fonts := p.Fonts()

	writeLines(&sb,
		"// tailwind.config.js - Generated from extracted styles",
		"// Source: "+p.URL(),
		"// Generated: "+r.opts.now().Format(stampLayout),
		"",
		"module.exports = {",
		"  theme: {",
		"    extend: {",
	)
	sb.WriteString("      colors: {")
	for i, c := range colors {
		if i == 0 {
			sb.WriteString("\n        'primary': {")
			for _, s := range style.ShadeRamp() {
				fmt.Fprintf(&sb, "\n          %s: '%s',", s.Name, s.Apply(c))
			}
			sb.WriteString("\n        },")
			continue
		}
		fmt.Fprintf(&sb, "\n        'color-%d': '%s',", i+1, c)
	}
	sb.WriteString("\n      },")

	if len(fonts) > 0 {
		sb.WriteString("\n      fontFamily: {")
		fmt.Fprintf(&sb, "\n        'sans': [%s],", quoteList(fonts[:min(len(fonts), tailwindSansFonts)]))
		if mono := p.MonoFonts(tailwindMonoNames...); len(mono) > 0 {
			fmt.Fprintf(&sb, "\n        'mono': [%s],", quoteList(mono[:min(len(mono), tailwindMonoFonts)]))
		}
		sb.WriteString("\n      },")
	}

	sb.WriteString("\n      spacing: {")
	for _, t := range style.TailwindSpacing() {
		fmt.Fprintf(&sb, "\n        '%s': '%s',", t.Name, t.Value)
	}
	sb.WriteString("\n      },\n      borderRadius: {")
	for _, t := range style.TailwindRadii() {
		fmt.Fprintf(&sb, "\n        '%s': '%s',", t.Name, t.Value)
	}
	sb.WriteString("\n      }")

	sb.WriteString(`
    }
  },
  plugins: [
    // Add any Tailwind plugins here
  ]
}`)
	return sb.String(), nil
}
