package style

import "slices"

// Token is a named design value. Px holds pixel equivalent when it is
// meaningful, Static holds non-fluid fallback for fluid values.
type Token struct {
	Name   string
	Value  string
	Px     string
	Static string
}

// Default computed values used when page does not provide them.
const (
	DefaultBodyBackground = "#ffffff"
	DefaultBodyFont       = "Arial, sans-serif"
	DefaultHeadingColor   = "#000000"
	DefaultLinkColor      = "#0000ee"
)

var (
	spacingScale = [...]Token{
		{Name: "3xs", Value: "0.25rem", Px: "4px"},
		{Name: "2xs", Value: "0.5rem", Px: "8px"},
		{Name: "xs", Value: "0.75rem", Px: "12px"},
		{Name: "sm", Value: "1rem", Px: "16px"},
		{Name: "md", Value: "1.5rem", Px: "24px"},
		{Name: "lg", Value: "2rem", Px: "32px"},
		{Name: "xl", Value: "3rem", Px: "48px"},
		{Name: "2xl", Value: "4rem", Px: "64px"},
		{Name: "3xl", Value: "6rem", Px: "96px"},
	}

	fluidFontSizes = [...]Token{
		{Name: "xs", Value: "clamp(0.75rem, 1.5vw, 0.875rem)", Static: "0.75rem"},
		{Name: "sm", Value: "clamp(0.875rem, 2vw, 1rem)", Static: "0.875rem"},
		{Name: "base", Value: "clamp(1rem, 2.5vw, 1.125rem)", Static: "1rem"},
		{Name: "lg", Value: "clamp(1.125rem, 3vw, 1.375rem)", Static: "1.125rem"},
		{Name: "xl", Value: "clamp(1.375rem, 4vw, 1.875rem)", Static: "1.375rem"},
		{Name: "2xl", Value: "clamp(1.875rem, 5vw, 2.5rem)", Static: "1.875rem"},
	}

	staticFontSizes = [...]Token{
		{Name: "xs", Value: "0.75rem"},
		{Name: "sm", Value: "0.875rem"},
		{Name: "base", Value: "1rem"},
		{Name: "lg", Value: "1.125rem"},
		{Name: "xl", Value: "1.25rem"},
		{Name: "2xl", Value: "1.5rem"},
		{Name: "3xl", Value: "1.875rem"},
		{Name: "4xl", Value: "2.25rem"},
	}

	shadows = [...]Token{
		{Name: "xs", Value: "0 1px 2px 0 rgba(0, 0, 0, 0.05)"},
		{Name: "sm", Value: "0 1px 3px 0 rgba(0, 0, 0, 0.1), 0 1px 2px 0 rgba(0, 0, 0, 0.06)"},
		{Name: "base", Value: "0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -1px rgba(0, 0, 0, 0.06)"},
		{Name: "md", Value: "0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -1px rgba(0, 0, 0, 0.06)"},
		{Name: "lg", Value: "0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -2px rgba(0, 0, 0, 0.05)"},
		{Name: "xl", Value: "0 20px 25px -5px rgba(0, 0, 0, 0.1), 0 10px 10px -5px rgba(0, 0, 0, 0.04)"},
		{Name: "2xl", Value: "0 25px 50px -12px rgba(0, 0, 0, 0.25)"},
	}

	borderRadii = [...]Token{
		{Name: "none", Value: "0"},
		{Name: "sm", Value: "0.125rem"},
		{Name: "base", Value: "0.25rem"},
		{Name: "md", Value: "0.375rem"},
		{Name: "lg", Value: "0.5rem"},
		{Name: "xl", Value: "0.75rem"},
		{Name: "2xl", Value: "1rem"},
		{Name: "full", Value: "9999px"},
	}

	tailwindSpacing = [...]Token{
		{Name: "18", Value: "4.5rem"},
		{Name: "88", Value: "22rem"},
	}

	tailwindRadii = [...]Token{
		{Name: "xl", Value: "1rem"},
		{Name: "2xl", Value: "1.5rem"},
	}
)

// Shade is one step of a color ramp: Ratio is applied with Lighten when
// Lighter is set and with Darken otherwise, zero Ratio keeps base color.
type Shade struct {
	Name    string
	Ratio   float64
	Lighter bool
}

var shadeRamp = [...]Shade{
	{Name: "50", Ratio: 0.4, Lighter: true},
	{Name: "100", Ratio: 0.3, Lighter: true},
	{Name: "200", Ratio: 0.2, Lighter: true},
	{Name: "300", Ratio: 0.1, Lighter: true},
	{Name: "400"},
	{Name: "500"},
	{Name: "600", Ratio: 0.1},
	{Name: "700", Ratio: 0.2},
	{Name: "800", Ratio: 0.3},
	{Name: "900", Ratio: 0.4},
}

// Apply produces shade of the base color.
func (s Shade) Apply(base string) string {
	switch {
	case s.Ratio == 0:
		return base
	case s.Lighter:
		return Lighten(base, s.Ratio)
	default:
		return Darken(base, s.Ratio)
	}
}

// Tables below are returned as copies, callers are free to modify results.

// SpacingScale returns spacing tokens from 3xs to 3xl.
func SpacingScale() []Token { return slices.Clone(spacingScale[:]) }

// FluidFontSizes returns clamp() based type scale.
func FluidFontSizes() []Token { return slices.Clone(fluidFontSizes[:]) }

// StaticFontSizes returns rem based type scale.
func StaticFontSizes() []Token { return slices.Clone(staticFontSizes[:]) }

// Shadows returns box shadow tokens.
func Shadows() []Token { return slices.Clone(shadows[:]) }

// BorderRadii returns border radius tokens.
func BorderRadii() []Token { return slices.Clone(borderRadii[:]) }

// TailwindSpacing returns extra spacing entries for tailwind theme.
func TailwindSpacing() []Token { return slices.Clone(tailwindSpacing[:]) }

// TailwindRadii returns extra border radius entries for tailwind theme.
func TailwindRadii() []Token { return slices.Clone(tailwindRadii[:]) }

// ShadeRamp returns 50..900 shade steps.
func ShadeRamp() []Shade { return slices.Clone(shadeRamp[:]) }

// LookupToken finds token by name.
func LookupToken(tokens []Token, name string) (Token, bool) {
	i := slices.IndexFunc(tokens, func(t Token) bool { return t.Name == name })
	if i < 0 {
		return Token{}, false
	}
	return tokens[i], true
}
