package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"wse/style"
)

type jsonStyles struct {
	BodyBackground string `json:"body_background"`
	BodyFont       string `json:"body_font"`
	HeadingColor   string `json:"heading_color"`
	LinkColor      string `json:"link_color"`
}

type jsonMetadata struct {
	ExtractorVersion string `json:"extractor_version"`
	TotalColors      int    `json:"total_colors_found"`
	TotalFonts       int    `json:"total_fonts_found"`
	Method           string `json:"extraction_method"`
	Browser          string `json:"browser_used"`
}

type jsonDocument struct {
	URL            string       `json:"url"`
	ExtractionDate string       `json:"extraction_date"`
	Styles         jsonStyles   `json:"styles"`
	Colors         []string     `json:"colors"`
	Fonts          []string     `json:"fonts"`
	Metadata       jsonMetadata `json:"metadata"`
}

type jsonRenderer struct {
	opts Options
}

func (r *jsonRenderer) Render(p *style.Profile) (string, error) {
	doc := jsonDocument{
		URL:            p.URL(),
		ExtractionDate: r.opts.now().UTC().Format(time.RFC3339),
		Styles: jsonStyles{
			BodyBackground: p.BodyBackground(),
			BodyFont:       p.BodyFont(),
			HeadingColor:   p.HeadingColor(),
			LinkColor:      p.LinkColor(),
		},
		Colors: nonNil(p.Colors()),
		Fonts:  nonNil(p.Fonts()),
		Metadata: jsonMetadata{
			ExtractorVersion: ExtractorVersion,
			TotalColors:      len(p.Colors()),
			TotalFonts:       len(p.Fonts()),
			Method:           "css_analysis_and_computed_styles",
			Browser:          "Chrome (headless)",
		},
	}
	return marshalIndent(doc)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// marshalIndent encodes value with two space indentation and without HTML
// escaping.
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// member is a single key of ordered JSON object.
type member struct {
	Key   string
	Value any
}

// object is JSON object which keeps keys in insertion order.
type object []member

func (o *object) set(key string, value any) {
	*o = append(*o, member{Key: key, Value: value})
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	out := bytes.NewBufferString("{")
	for i, m := range o {
		if i > 0 {
			out.WriteByte(',')
		}
		if err := enc.Encode(m.Key); err != nil {
			return nil, err
		}
		out.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
		out.WriteByte(':')
		buf.Reset()
		if err := enc.Encode(m.Value); err != nil {
			return nil, err
		}
		out.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
		buf.Reset()
	}
	out.WriteByte('}')
	return out.Bytes(), nil
}
