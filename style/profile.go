package style

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Computed holds values browser reports for the rendered page. Degraded is
// set when any value had to be substituted with default.
type Computed struct {
	BodyBackground string
	BodyFont       string
	HeadingColor   string
	LinkColor      string
	Degraded       bool
}

// DefaultComputed returns fully substituted computed values.
func DefaultComputed() Computed {
	return Computed{
		BodyBackground: DefaultBodyBackground,
		BodyFont:       DefaultBodyFont,
		HeadingColor:   DefaultHeadingColor,
		LinkColor:      DefaultLinkColor,
		Degraded:       true,
	}
}

// WithDefaults replaces every empty value with its default.
func (c Computed) WithDefaults() Computed {
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
			c.Degraded = true
		}
	}
	fill(&c.BodyBackground, DefaultBodyBackground)
	fill(&c.BodyFont, DefaultBodyFont)
	fill(&c.HeadingColor, DefaultHeadingColor)
	fill(&c.LinkColor, DefaultLinkColor)
	return c
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	hex6Pattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("hex6", func(fl validator.FieldLevel) bool {
			return hex6Pattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

type profileFields struct {
	SourceURL string   `validate:"required"`
	Colors    []string `validate:"max=10,unique,dive,hex6"`
	Fonts     []string `validate:"max=5,unique,dive,required"`
}

// Profile is the result of a single extraction. It is never changed after
// creation, all accessors return copies.
type Profile struct {
	sourceURL string
	colors    []string
	fonts     []string
	computed  Computed
	raw       string
}

// NewProfile assembles profile and checks its invariants. Empty computed
// values are replaced with defaults.
func NewProfile(sourceURL string, colors, fonts []string, computed Computed, raw string) (*Profile, error) {
	fields := profileFields{
		SourceURL: sourceURL,
		Colors:    colors,
		Fonts:     fonts,
	}
	if err := validatorInstance().Struct(&fields); err != nil {
		return nil, fmt.Errorf("invalid style profile: %w", err)
	}
	return &Profile{
		sourceURL: sourceURL,
		colors:    slices.Clone(colors),
		fonts:     slices.Clone(fonts),
		computed:  computed.WithDefaults(),
		raw:       raw,
	}, nil
}

func (p *Profile) URL() string { return p.sourceURL }

// Host returns host part of the source URL or empty string.
func (p *Profile) Host() string {
	u, err := url.Parse(p.sourceURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func (p *Profile) Colors() []string       { return slices.Clone(p.colors) }
func (p *Profile) Fonts() []string        { return slices.Clone(p.fonts) }
func (p *Profile) Computed() Computed     { return p.computed }
func (p *Profile) BodyBackground() string { return p.computed.BodyBackground }
func (p *Profile) BodyFont() string       { return p.computed.BodyFont }
func (p *Profile) HeadingColor() string   { return p.computed.HeadingColor }
func (p *Profile) LinkColor() string      { return p.computed.LinkColor }
func (p *Profile) RawStyleText() string   { return p.raw }

// Color returns i-th color or def when there is not enough colors.
func (p *Profile) Color(i int, def string) string {
	if i >= 0 && i < len(p.colors) {
		return p.colors[i]
	}
	return def
}

// Font returns i-th font or def when there is not enough fonts.
func (p *Profile) Font(i int, def string) string {
	if i >= 0 && i < len(p.fonts) {
		return p.fonts[i]
	}
	return def
}

// MonoFonts returns fonts which look like monospace ones, extra names are
// matched exactly.
func (p *Profile) MonoFonts(extra ...string) []string {
	var res []string
	for _, f := range p.fonts {
		if IsMonospace(f, extra...) {
			res = append(res, f)
		}
	}
	return res
}

// CustomProperties extracts custom properties from raw style text.
func (p *Profile) CustomProperties() *CustomProperties {
	return ExtractCustomProperties(p.raw)
}

// Features detects modern syntax usage in raw style text.
func (p *Profile) Features() *Features {
	return DetectFeatures(p.raw)
}
