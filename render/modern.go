package render

import (
	"fmt"
	"strings"

	"wse/style"
)

const (
	fallbackPrimaryOKLCH   = "oklch(50% 0.1 0deg)"
	fallbackSecondaryOKLCH = "oklch(50% 0.1 120deg)"

	// modernSpacingTokens is the number of spacing tokens declared in :root,
	// modernSpacingUtilities the number of margin helper classes.
	modernSpacingTokens    = 8
	modernSpacingUtilities = 6
)

var modernShadows = []string{"xs", "sm", "md", "lg"}

type modernCSSRenderer struct {
	opts Options
}

func (r *modernCSSRenderer) Render(p *style.Profile) (string, error) {
	var sb strings.Builder
	colors := p.Colors()

	primaryOKLCH, secondaryOKLCH := fallbackPrimaryOKLCH, fallbackSecondaryOKLCH
	if len(colors) > 0 {
		primaryOKLCH = style.HexToOKLCH(colors[0])
	}
	if len(colors) > 1 {
		secondaryOKLCH = style.HexToOKLCH(colors[1])
	}

	writeLines(&sb,
		"/* ",
		"   Modern CSS Variables and Utilities",
		"   Generated from: "+p.URL(),
		"   Date: "+r.opts.now().Format(stampLayout),
		"   Web Style Extractor v"+ExtractorVersion+" - Modern CSS Edition",
		"*/",
		"",
		":root {",
		"    /* === Traditional Color Palette === */",
	)
	for i, c := range colors {
		fmt.Fprintf(&sb, "    --color-%d: %s;  /* Color %d */\n", i+1, c, i+1)
	}
	writeLines(&sb,
		"    ",
		"    /* === Modern OKLCH Colors === */",
	)
	for i, c := range colors {
		fmt.Fprintf(&sb, "    --color-%d-oklch: %s;  /* Modern equivalent */\n", i+1, style.HexToOKLCH(c))
	}
	writeLines(&sb,
		"    ",
		"    /* === Named Color System === */",
		"    --color-primary: "+p.Color(0, fallbackPrimary)+";",
		"    --color-primary-oklch: "+primaryOKLCH+";",
		"    --color-secondary: "+p.Color(1, fallbackSecondary)+";",
		"    --color-secondary-oklch: "+secondaryOKLCH+";",
		"    ",
		"    /* === Dynamic Color Variations === */",
		"    --color-primary-light: oklch(from var(--color-primary-oklch) calc(l + 0.2) c h);",
		"    --color-primary-dark: oklch(from var(--color-primary-oklch) calc(l - 0.2) c h);",
		"    --color-secondary-light: oklch(from var(--color-secondary-oklch) calc(l + 0.2) c h);",
		"    --color-secondary-dark: oklch(from var(--color-secondary-oklch) calc(l - 0.2) c h);",
		"    ",
		"    /* === Design Token System === */",
	)
	spacing := style.SpacingScale()
	for _, t := range spacing[:modernSpacingTokens] {
		fmt.Fprintf(&sb, "    --space-%s: %s;  /* %s */\n", t.Name, t.Value, t.Px)
	}
	writeLines(&sb,
		"    ",
		"    /* === Typography Scale === */",
		"    --font-primary: "+p.Font(0, fallbackFontPrimary)+";",
		"    --font-secondary: "+p.Font(1, fallbackFontSecondary)+";",
		"    --font-mono: "+monoFont(p)+";",
		"    --font-stack: "+p.BodyFont()+";",
		"    ",
		"    /* === Fluid Typography System === */",
	)
	fluid := style.FluidFontSizes()
	for _, t := range fluid {
		fmt.Fprintf(&sb, "    --font-size-fluid-%s: %s;\n", t.Name, t.Value)
	}
	writeLines(&sb,
		"    ",
		"    /* === Extracted Styles === */",
		"    --body-background: "+p.BodyBackground()+";",
		"    --heading-color: "+p.HeadingColor()+";",
		"    --link-color: "+p.LinkColor()+";",
		"    --text-color: "+p.HeadingColor()+";",
		"    ",
		"    /* === Shadow System === */",
	)
	shadows := style.Shadows()
	for _, name := range modernShadows {
		if t, ok := style.LookupToken(shadows, name); ok {
			fmt.Fprintf(&sb, "    --shadow-%s: %s;\n", t.Name, t.Value)
		}
	}
	sb.WriteString("}")

	if props := p.CustomProperties().Sorted(); len(props) > 0 {
		writeLines(&sb,
			"",
			"",
			"/* === Existing CSS Custom Properties (Extracted) === */",
			":root {",
		)
		for _, prop := range props {
			fmt.Fprintf(&sb, "    --%s: %s;\n", prop.Name, prop.Value)
		}
		sb.WriteString("}")
	}

	writeLines(&sb,
		"",
		"",
		"/* === Modern Color Utility Classes === */",
	)
	for i := range colors {
		n := i + 1
		fmt.Fprintf(&sb, ".bg-color-%d { background: var(--color-%d); }\n", n, n)
		fmt.Fprintf(&sb, ".bg-color-%d-oklch { background: var(--color-%d-oklch); }\n", n, n)
		fmt.Fprintf(&sb, ".text-color-%d { color: var(--color-%d); }\n", n, n)
		fmt.Fprintf(&sb, ".text-color-%d-oklch { color: var(--color-%d-oklch); }\n", n, n)
	}
	writeLines(&sb,
		"",
		"/* === Typography Utilities === */",
		".font-primary { font-family: var(--font-primary), var(--font-stack); }",
		".font-secondary { font-family: var(--font-secondary), var(--font-stack); }",
		".font-mono { font-family: var(--font-mono), monospace; }",
		"",
		"/* === Fluid Typography Classes === */",
	)
	for _, t := range fluid {
		fmt.Fprintf(&sb, ".text-fluid-%s { font-size: var(--font-size-fluid-%s); }\n", t.Name, t.Name)
	}
	writeLines(&sb,
		"",
		"/* === Spacing Utilities === */",
	)
	for _, t := range spacing[:modernSpacingUtilities] {
		fmt.Fprintf(&sb, ".space-%s { margin: var(--space-%s); }\n", t.Name, t.Name)
	}
	sb.WriteString(modernComponents)

	features := p.Features()
	if features.Has(style.FeatureContainerQueries) {
		sb.WriteString(containerQuerySection)
	}
	if features.Has(style.FeatureHasSelector) {
		sb.WriteString(hasSelectorSection)
	}
	sb.WriteString(modernUsage)
	return sb.String(), nil
}

const modernComponents = `
/* === Modern Component Base Styles === */
body {
    background: var(--body-background);
    font-family: var(--font-stack);
    color: var(--text-color);
    font-size: var(--font-size-fluid-base);
}

h1 {
    color: var(--heading-color);
    font-family: var(--font-primary), var(--font-stack);
    font-size: var(--font-size-fluid-2xl);
}

h2 {
    color: var(--heading-color);
    font-size: var(--font-size-fluid-xl);
}

h3 {
    color: var(--heading-color);
    font-size: var(--font-size-fluid-lg);
}

a {
    color: var(--link-color);
    transition: color 0.2s ease;

    &:hover {
        color: var(--color-primary-light);
    }
}

/* === Modern Button Component === */
.btn {
    display: inline-flex;
    align-items: center;
    gap: var(--space-2xs);
    padding: var(--space-xs) var(--space-sm);
    border-radius: 0.375rem;
    font-weight: 500;
    font-size: var(--font-size-fluid-sm);
    transition: all 0.2s ease;
    border: none;
    cursor: pointer;

    &:hover {
        transform: translateY(-1px);
        box-shadow: var(--shadow-md);
    }

    &:focus-visible {
        outline: 2px solid var(--color-primary);
        outline-offset: 2px;
    }
}

.btn--primary {
    background: var(--color-primary);
    color: white;

    &:hover {
        background: var(--color-primary-dark);
    }
}

.btn--secondary {
    background: transparent;
    color: var(--color-primary);
    border: 1px solid var(--color-primary);

    &:hover {
        background: var(--color-primary);
        color: white;
    }
}`

const containerQuerySection = `

/* === Container Queries Detected === */
.container-aware {
    container-type: inline-size;
    container-name: component;
}

@container component (min-width: 400px) {
    .responsive-content { display: grid; }
}`

const hasSelectorSection = `

/* === :has() Selector Patterns Detected === */
.form:has(input:invalid) {
    border-color: var(--color-danger);
}

.card:has(img) {
    grid-template-areas: "image content";
}`

const modernUsage = `

/* === Usage Examples ===

Example 1: Modern color usage
.my-component {
    background: var(--color-primary-oklch);
    color: var(--color-primary-light);
}

Example 2: Fluid typography
.heading {
    font-size: var(--font-size-fluid-xl);
    line-height: 1.2;
}

Example 3: Design token spacing
.card {
    padding: var(--space-md);
    margin-bottom: var(--space-lg);
    border-radius: var(--space-xs);
}

Example 4: Modern button with container queries
<div class="container-aware">
    <button class="btn btn--primary">Click me</button>
</div>

*/`
