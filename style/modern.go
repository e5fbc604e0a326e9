package style

import (
	"regexp"
	"slices"
	"strings"
)

var customPropertyRe = regexp.MustCompile(`--([a-zA-Z0-9-_]+)\s*:\s*([^;}]+)`)

// Property is a single custom property: name without leading "--" and its
// trimmed value.
type Property struct {
	Name  string
	Value string
}

// CustomProperties maps custom property names to their last declared values.
// Redeclaration keeps the slot of the first declaration.
type CustomProperties struct {
	names  []string
	values map[string]string
}

// Set stores value for the name.
func (cp *CustomProperties) Set(name, value string) {
	if cp.values == nil {
		cp.values = make(map[string]string)
	}
	if _, ok := cp.values[name]; !ok {
		cp.names = append(cp.names, name)
	}
	cp.values[name] = value
}

// Get returns value of the property.
func (cp *CustomProperties) Get(name string) (string, bool) {
	v, ok := cp.values[name]
	return v, ok
}

// Len returns number of distinct properties.
func (cp *CustomProperties) Len() int {
	return len(cp.names)
}

// All returns properties in order of first declaration.
func (cp *CustomProperties) All() []Property {
	res := make([]Property, 0, len(cp.names))
	for _, n := range cp.names {
		res = append(res, Property{Name: n, Value: cp.values[n]})
	}
	return res
}

// Sorted returns properties ordered by name, this is the order used for
// rendering.
func (cp *CustomProperties) Sorted() []Property {
	res := cp.All()
	slices.SortFunc(res, func(a, b Property) int { return strings.Compare(a.Name, b.Name) })
	return res
}

// ExtractCustomProperties scans raw style text for custom property
// declarations, last declaration wins.
func ExtractCustomProperties(raw string) *CustomProperties {
	cp := &CustomProperties{values: make(map[string]string)}
	for _, m := range customPropertyRe.FindAllStringSubmatch(raw, -1) {
		cp.Set(m[1], strings.TrimSpace(m[2]))
	}
	return cp
}

// Feature is a category of modern CSS syntax.
type Feature int

const (
	FeatureContainerQueries Feature = iota
	FeatureNesting
	FeatureHasSelector
	FeatureFluidTypography
	FeatureColorFunctions
)

var featureNames = [...]string{
	FeatureContainerQueries: "container_queries",
	FeatureNesting:          "css_nesting",
	FeatureHasSelector:      "has_selectors",
	FeatureFluidTypography:  "fluid_typography",
	FeatureColorFunctions:   "color_functions",
}

func (f Feature) String() string {
	if f >= 0 && int(f) < len(featureNames) {
		return featureNames[f]
	}
	return "unknown"
}

// AllFeatures lists every category in declaration order.
func AllFeatures() []Feature {
	res := make([]Feature, len(featureNames))
	for i := range featureNames {
		res[i] = Feature(i)
	}
	return res
}

var featurePatterns = [...]*regexp.Regexp{
	FeatureContainerQueries: regexp.MustCompile(`@container[^{]*\{[^}]*\}`),
	FeatureNesting:          regexp.MustCompile(`&\s*[^{]*\{[^}]*\}`),
	FeatureHasSelector:      regexp.MustCompile(`:has\([^)]*\)`),
	FeatureFluidTypography:  regexp.MustCompile(`(?:clamp|min|max)\([^)]*\)`),
	FeatureColorFunctions:   regexp.MustCompile(`(?:oklch|lch|lab|color)\([^)]*\)`),
}

// Features holds raw matched snippets for every modern syntax category.
// Categories with no matches have empty, non-nil lists.
type Features struct {
	matches [len(featureNames)][]string
}

// Matches returns snippets detected for the category.
func (fs *Features) Matches(f Feature) []string {
	if !fs.Has(f) {
		return []string{}
	}
	return slices.Clone(fs.matches[f])
}

// Has reports whether category was detected at all.
func (fs *Features) Has(f Feature) bool {
	return f >= 0 && int(f) < len(fs.matches) && len(fs.matches[f]) > 0
}

// DetectFeatures scans raw style text for modern syntax usage.
func DetectFeatures(raw string) *Features {
	fs := &Features{}
	for i, re := range featurePatterns {
		found := re.FindAllString(raw, -1)
		if found == nil {
			found = []string{}
		}
		fs.matches[i] = found
	}
	return fs
}
