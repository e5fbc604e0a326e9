package common

import (
	"strings"
)

// Descriptor holds human oriented information about output format used in
// terminal hints and generated project documentation.
type Descriptor struct {
	Name              string
	Extension         string
	ShortDescription  string
	FullDescription   string
	TerminalMessage   string
	HowtoTitle        string
	HowtoInstructions []string
	HowtoDescription  string
	Capabilities      []string
	UseCases          []string
	ImportExample     string
}

var descriptors = map[OutputFmt]Descriptor{
	OutputFmtMediawiki: {
		Name:             "MediaWiki",
		Extension:        "mediawiki",
		ShortDescription: "MediaWiki template with color tables and font documentation",
		FullDescription:  "Ready-to-use MediaWiki template with color tables and font documentation",
		TerminalMessage: `Next steps:
   1. Open {output_path}
   2. Copy content to your MediaWiki page
   3. View {html_path} to see fonts rendered!`,
		HowtoTitle: "For MediaWiki Documentation",
		HowtoInstructions: []string{
			"1. Open `styles.mediawiki`",
			"2. Copy all the content",
			"3. Paste into your MediaWiki page",
			"4. Save and view the formatted style guide",
		},
		HowtoDescription: "The MediaWiki template includes color palette tables with visual swatches, font lists with proper formatting, and key style information ready for documentation.",
		Capabilities: []string{
			"Color palette tables with visual swatches",
			"Font lists with classifications",
			"Wiki-formatted documentation",
			"Copy-paste ready templates",
		},
		UseCases: []string{"Wiki documentation", "Style guides", "Design system docs", "Team knowledge bases"},
		ImportExample: "```bash\n# Copy the generated file to your wiki\ncp styles.mediawiki /path/to/wiki/\n```",
	},
	OutputFmtJson: {
		Name:             "JSON",
		Extension:        "json",
		ShortDescription: "Structured data for APIs and automation",
		FullDescription:  "Structured data format perfect for APIs, automation, and data analysis",
		TerminalMessage: `JSON data ready for:
   - API integration
   - Automated workflows
   - Data analysis`,
		HowtoTitle: "For Development & APIs",
		HowtoInstructions: []string{
			"1. Import `styles.json` into your application",
			"2. Access structured color and font data",
			"3. Use for automated workflows and API integration",
			"4. Generate CSS/SCSS variables programmatically",
		},
		HowtoDescription: "The JSON format is perfect for API integration, automated workflows, design token systems, and data analysis and processing.",
		Capabilities:     []string{"Structured data format", "API-ready output", "Programmatic access", "Cross-platform compatibility"},
		UseCases:         []string{"API integration", "Build tool automation", "Data analysis", "CI/CD pipelines"},
		ImportExample:    "```javascript\nimport styles from './styles.json';\n\nconst colors = styles.colors;\nconst fonts = styles.fonts;\n```",
	},
	OutputFmtModernCss: {
		Name:             "Modern CSS",
		Extension:        "css",
		ShortDescription: "Cutting-edge CSS with OKLCH and container queries",
		FullDescription:  "Cutting-edge CSS with OKLCH colors, container queries, fluid typography, and design tokens",
		TerminalMessage: `Modern CSS with cutting-edge features:
   - OKLCH color space support
   - Container query patterns
   - Fluid typography with clamp()
   - Design token variables`,
		HowtoTitle: "For Modern CSS Development",
		HowtoInstructions: []string{
			"1. Import `styles.css` with cutting-edge CSS features",
			"2. Use OKLCH colors for better color accuracy",
			"3. Implement container queries and fluid typography",
			"4. Leverage dynamic color variations with relative color syntax",
		},
		HowtoDescription: "Modern CSS with OKLCH color space, container queries, fluid typography, and CSS relative color syntax for future-proof styling.",
		Capabilities: []string{
			"OKLCH color space",
			"Container queries",
			"Fluid typography with clamp()",
			"CSS custom properties",
			"Relative color syntax",
			"Modern selectors (:has, :is, :where)",
		},
		UseCases:      []string{"Modern web applications", "Progressive enhancement", "Future-proof styling", "Component libraries"},
		ImportExample: "```css\n@import 'styles.css';\n\n.component {\n  background: var(--color-primary-oklch);\n}\n\n@container (min-width: 400px) {\n  .card { display: grid; }\n}\n```",
	},
	OutputFmtCss: {
		Name:             "CSS",
		Extension:        "css",
		ShortDescription: "Standard CSS with variables and utility classes",
		FullDescription:  "Standard CSS file with custom properties and utility classes",
		TerminalMessage: `CSS generated with:
   - Custom properties (variables)
   - Utility classes
   - Responsive helpers`,
		HowtoTitle: "For CSS Integration",
		HowtoInstructions: []string{
			"1. Import `styles.css` into your project",
			"2. Use CSS custom properties for theming",
			"3. Apply utility classes for quick styling",
			"4. Customize variables as needed",
		},
		HowtoDescription: "Standard CSS with custom properties for easy theming and utility classes for rapid development.",
		Capabilities:     []string{"CSS custom properties", "Utility classes", "Cross-browser compatible", "Easy customization"},
		UseCases:         []string{"Traditional websites", "WordPress themes", "Static sites", "Legacy browser support"},
		ImportExample:    "```html\n<link rel=\"stylesheet\" href=\"styles.css\">\n```",
	},
	OutputFmtTailwind: {
		Name:             "Tailwind CSS",
		Extension:        "js",
		ShortDescription: "Tailwind configuration with custom colors and fonts",
		FullDescription:  "Complete Tailwind CSS configuration with extracted color palettes and font families",
		TerminalMessage: `Tailwind configuration ready:
   - Custom color palette
   - Font family setup
   - Ready to use with your Tailwind project`,
		HowtoTitle: "For Tailwind CSS Projects",
		HowtoInstructions: []string{
			"1. Copy `tailwind.config.js` to your project root",
			"2. Merge with existing Tailwind configuration",
			"3. Use extracted colors as Tailwind utilities",
			"4. Apply custom font families in your components",
		},
		HowtoDescription: "Tailwind CSS configuration with extracted design system ready for immediate use in your Tailwind projects.",
		Capabilities:     []string{"Custom color palettes", "Font family configuration", "Spacing scales", "Component classes", "Dark mode variants"},
		UseCases:         []string{"Tailwind CSS projects", "Rapid prototyping", "Component libraries", "Design system implementation"},
		ImportExample:    "```javascript\n// tailwind.config.js\nmodule.exports = require('./styles.js');\n```",
	},
	OutputFmtDesignTokens: {
		Name:             "Design Tokens",
		Extension:        "json",
		ShortDescription: "Style Dictionary compatible design tokens",
		FullDescription:  "Comprehensive design tokens in Style Dictionary format for multi-platform generation",
		TerminalMessage: `Design tokens generated:
   - Style Dictionary compatible
   - Multi-platform ready
   - Semantic naming`,
		HowtoTitle: "For Design Systems",
		HowtoInstructions: []string{
			"1. Import `design-tokens.json` into Style Dictionary",
			"2. Configure platform-specific outputs",
			"3. Generate tokens for iOS, Android, Web",
			"4. Use semantic color and typography scales",
		},
		HowtoDescription: "Design tokens following industry standards, ready for Style Dictionary or other token transformation tools.",
		Capabilities:     []string{"Style Dictionary format", "Semantic naming", "Platform-agnostic", "Typography scales", "Spacing systems", "Component tokens"},
		UseCases:         []string{"Cross-platform apps", "Design system libraries", "Multi-brand theming", "Component documentation"},
		ImportExample:    "```javascript\nconst StyleDictionary = require('style-dictionary');\n\nStyleDictionary.extend({ source: ['design-tokens.json'] }).buildAllPlatforms();\n```",
	},
	OutputFmtHtml: {
		Name:             "HTML Report",
		Extension:        "html",
		ShortDescription: "Interactive HTML report with visual previews",
		FullDescription:  "Interactive HTML report with live previews and visual analysis",
		TerminalMessage: `HTML report generated:
   - Visual color swatches
   - Interactive previews
   - Shareable documentation`,
		HowtoTitle: "For Visual Documentation",
		HowtoInstructions: []string{
			"1. Open `styles.html` in your browser",
			"2. Review visual color swatches",
			"3. Check font rendering previews",
			"4. Share with design team for review",
		},
		HowtoDescription: "Interactive HTML report perfect for design reviews, documentation, and team collaboration.",
		Capabilities:     []string{"Visual color previews", "Live font rendering", "Interactive elements", "Print-friendly layout"},
		UseCases:         []string{"Design reviews", "Client presentations", "Documentation", "Style guide reference"},
		ImportExample:    "```html\n<a href=\"styles.html\">View Style Guide</a>\n```",
	},
}

// Descriptor returns information about format. Unknown formats get json
// descriptor, same as the rest of the program falls back to json.
func (o OutputFmt) Descriptor() Descriptor {
	if d, ok := descriptors[o]; ok {
		return d
	}
	return descriptors[OutputFmtJson]
}

// TerminalHint returns terminal message with output locations substituted.
func (o OutputFmt) TerminalHint(outputPath, htmlPath string) string {
	msg := o.Descriptor().TerminalMessage
	if outputPath != "" {
		msg = strings.ReplaceAll(msg, "{output_path}", outputPath)
	}
	if htmlPath != "" {
		msg = strings.ReplaceAll(msg, "{html_path}", htmlPath)
	}
	return msg
}
