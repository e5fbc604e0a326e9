// Package common keeps enumerations shared between configuration, rendering
// and project output so that none of them has to import another.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// OutputFmt is the requested output document type.
type OutputFmt int

const (
	OutputFmtMediawiki OutputFmt = iota
	OutputFmtHtml
	OutputFmtJson
	OutputFmtCss
	OutputFmtModernCss
	OutputFmtTailwind
	OutputFmtDesignTokens
)

// ErrInvalidOutputFmt is returned when format name is not recognized.
var ErrInvalidOutputFmt = errors.New("not a valid OutputFmt")

var outputFmtNames = [...]string{
	OutputFmtMediawiki:    "mediawiki",
	OutputFmtHtml:         "html",
	OutputFmtJson:         "json",
	OutputFmtCss:          "css",
	OutputFmtModernCss:    "modern-css",
	OutputFmtTailwind:     "tailwind",
	OutputFmtDesignTokens: "design-tokens",
}

// OutputFmtNames returns a list of possible string values of OutputFmt.
func OutputFmtNames() []string {
	names := make([]string, len(outputFmtNames))
	copy(names, outputFmtNames[:])
	return names
}

// OutputFmtValues returns a list of all values of OutputFmt.
func OutputFmtValues() []OutputFmt {
	values := make([]OutputFmt, len(outputFmtNames))
	for i := range outputFmtNames {
		values[i] = OutputFmt(i)
	}
	return values
}

// String implements the Stringer interface.
func (o OutputFmt) String() string {
	if o.IsValid() {
		return outputFmtNames[o]
	}
	return fmt.Sprintf("OutputFmt(%d)", o)
}

// IsValid reports whether value is a member of the enumeration.
func (o OutputFmt) IsValid() bool {
	return o >= 0 && int(o) < len(outputFmtNames)
}

// ParseOutputFmt attempts to convert a string to an OutputFmt.
func ParseOutputFmt(name string) (OutputFmt, error) {
	lname := strings.ToLower(strings.TrimSpace(name))
	for i, n := range outputFmtNames {
		if n == lname {
			return OutputFmt(i), nil
		}
	}
	return OutputFmt(0), fmt.Errorf("%s is %w", name, ErrInvalidOutputFmt)
}

// MarshalText implements the text marshaller method.
func (o OutputFmt) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements the text unmarshaller method.
func (o *OutputFmt) UnmarshalText(text []byte) error {
	tmp, err := ParseOutputFmt(string(text))
	if err != nil {
		return err
	}
	*o = tmp
	return nil
}

// TemplateDriven reports whether the format is produced by filling externally
// supplied text templates rather than generated programmatically.
func (o OutputFmt) TemplateDriven() bool {
	return o == OutputFmtMediawiki || o == OutputFmtHtml
}

// Ext returns file extension (without leading dot) for the produced document.
func (o OutputFmt) Ext() string {
	return o.Descriptor().Extension
}
