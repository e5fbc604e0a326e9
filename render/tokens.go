package render

import (
	"fmt"
	"strings"
	"time"

	"wse/style"
)

var tokenMonoMarkers = []string{"mono", "consolas", "courier", "menlo"}

type colorToken struct {
	Value       string `json:"value"`
	OKLCH       string `json:"oklch,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type fontToken struct {
	Value       []string `json:"value"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
}

type dimensionToken struct {
	Value       string `json:"value"`
	Pixel       string `json:"pixel,omitempty"`
	Static      string `json:"static,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type tokensRenderer struct {
	opts Options
}

func fontTokenType(font string) string {
	lower := strings.ToLower(font)
	for _, m := range tokenMonoMarkers {
		if strings.Contains(lower, m) {
			return "fontFamily.monospace"
		}
	}
	return "fontFamily.sans-serif"
}

func dimensions(tokens []style.Token, typ, what string) object {
	var o object
	for _, t := range tokens {
		o.set(t.Name, dimensionToken{
			Value:       t.Value,
			Pixel:       t.Px,
			Static:      t.Static,
			Type:        typ,
			Description: what + " " + t.Name,
		})
	}
	return o
}

func (r *tokensRenderer) Render(p *style.Profile) (string, error) {
	var palette, semantic, families object

	for i, c := range p.Colors() {
		palette.set(fmt.Sprintf("color-%02d", i+1), colorToken{
			Value:       c,
			OKLCH:       style.HexToOKLCH(c),
			Type:        "color",
			Description: fmt.Sprintf("Extracted color #%d", i+1),
		})
	}

	for _, s := range []struct{ key, value, what string }{
		{"background", p.BodyBackground(), "Primary background color"},
		{"text-primary", p.HeadingColor(), "Primary text color"},
		{"text-link", p.LinkColor(), "Link color"},
	} {
		if s.value != "" {
			semantic.set(s.key, colorToken{Value: s.value, Type: "color", Description: s.what})
		}
	}

	for i, f := range p.Fonts() {
		families.set(fmt.Sprintf("font-%02d", i+1), fontToken{
			Value:       []string{f},
			Type:        fontTokenType(f),
			Description: fmt.Sprintf("Font family #%d", i+1),
		})
	}

	system := object{
		{"colors", object{
			{"palette", palette},
			{"semantic", semantic},
		}},
		{"typography", object{
			{"fontFamilies", families},
			{"fontSizes", dimensions(style.FluidFontSizes(), "fontSize.fluid", "Font size")},
			{"fontWeights", object{}},
		}},
		{"spacing", object{
			{"scale", dimensions(style.SpacingScale(), "dimension", "Spacing")},
		}},
		{"borderRadius", dimensions(style.BorderRadii(), "borderRadius", "Border radius")},
		{"shadows", dimensions(style.Shadows(), "boxShadow", "Box shadow")},
		{"metadata", object{
			{"source", p.URL()},
			{"generated", r.opts.now().UTC().Format(time.RFC3339)},
			{"version", ExtractorVersion},
		}},
	}
	return marshalIndent(object{{"designSystem", system}})
}
