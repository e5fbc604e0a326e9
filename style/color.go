package style

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MaxColors is the maximum number of colors kept in a profile.
const MaxColors = 10

var (
	hexLiteralRe = regexp.MustCompile(`#(?:[0-9a-fA-F]{3,4}){1,2}\b`)
	rgbLiteralRe = regexp.MustCompile(`rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)(?:,\s*[\d.]+)?\)`)
)

// RGB is 8 bit per channel color.
type RGB struct {
	R, G, B uint8
}

// Hex formats color as lowercase 6-digit hex string with leading '#'.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// DecodeHex decodes hex color. Leading '#' is optional, 3 and 6 digit forms
// are accepted, 4 and 8 digit forms have alpha ignored.
func DecodeHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3, 4:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	case 8:
		h = h[:6]
	default:
		return RGB{}, fmt.Errorf("bad hex color length %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// NormalizeHex returns canonical 6-digit lowercase form of hex color literal.
func NormalizeHex(s string) (string, bool) {
	c, err := DecodeHex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// HexToOKLCH renders hex color as CSS oklch() value. The mapping is derived
// from HSL decomposition (L = lightness, C = saturation * 0.37, H = hue) and
// is an approximation, not colorimetric conversion. Never fails: undecodable
// input produces fixed fallback annotated with the input.
func HexToOKLCH(hex string) string {
	c, err := DecodeHex(hex)
	if err != nil {
		return fmt.Sprintf("oklch(50%% 0.1 0deg)  /* fallback for %s */", hex)
	}
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	return fmt.Sprintf("oklch(%.1f%% %.3f %.1fdeg)", l*100, s*0.37, h)
}

// Lighten moves every channel towards 255 by ratio r. Undecodable input is
// returned unchanged.
func Lighten(hex string, r float64) string {
	return adjust(hex, func(c float64) float64 { return c + (255-c)*r })
}

// Darken moves every channel towards 0 by ratio r. Undecodable input is
// returned unchanged.
func Darken(hex string, r float64) string {
	return adjust(hex, func(c float64) float64 { return c * (1 - r) })
}

func adjust(hex string, fn func(float64) float64) string {
	c, err := DecodeHex(hex)
	if err != nil {
		return hex
	}
	ch := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, math.Round(fn(float64(v))))))
	}
	return RGB{R: ch(c.R), G: ch(c.G), B: ch(c.B)}.Hex()
}

var computedRGBRe = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+)\s*)?\)$`)

// ComputedToHex converts opaque rgb()/rgba() value reported by browser into
// hex form. Anything else, including transparent colors, is returned as is.
func ComputedToHex(value string) string {
	m := computedRGBRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return value
	}
	if m[4] != "" {
		if a, err := strconv.ParseFloat(m[4], 64); err != nil || a < 1 {
			return value
		}
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			v = 255
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}.Hex()
}

// ExtractColors collects colors from raw style text: hex literals first, then
// rgb()/rgba() literals, then sampled image colors. Result is deduplicated in
// first-seen order and limited to MaxColors.
func ExtractColors(raw string, sampled []string) []string {
	var found []string

	for _, lit := range hexLiteralRe.FindAllString(raw, -1) {
		if hex, ok := NormalizeHex(lit); ok {
			found = append(found, hex)
		}
	}

	for _, m := range rgbLiteralRe.FindAllStringSubmatch(raw, -1) {
		var ch [3]uint8
		for i := range ch {
			// regexp guarantees digits, only overflow could fail
			v, err := strconv.Atoi(m[i+1])
			if err != nil || v > 255 {
				v = 255
			}
			ch[i] = uint8(v)
		}
		found = append(found, RGB{R: ch[0], G: ch[1], B: ch[2]}.Hex())
	}

	for _, s := range sampled {
		if hex, ok := NormalizeHex(s); ok {
			found = append(found, hex)
		}
	}

	return firstUnique(found, MaxColors)
}

// firstUnique returns up to limit unique non-empty values keeping first-seen
// order.
func firstUnique(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	res := make([]string, 0, min(len(values), limit))
	for _, v := range values {
		if len(res) == limit {
			break
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
