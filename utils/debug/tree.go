// Package debug formats diagnostic dumps stored in the debug report.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented text, one entry per line.
type TreeWriter struct {
	sb strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

// Bytes returns accumulated text ready to be stored in the report.
func (tw *TreeWriter) Bytes() []byte {
	return []byte(tw.sb.String())
}

func (tw *TreeWriter) pad(depth int) {
	tw.sb.WriteString(strings.Repeat(indent, max(depth, 0)))
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
}

// Value writes "label: value" with value quoted so whitespace and control
// characters stay visible. Empty value is written as is.
func (tw *TreeWriter) Value(depth int, label, value string) {
	tw.pad(depth)
	tw.sb.WriteString(label)
	tw.sb.WriteString(": ")
	if len(value) > 0 {
		value = strconv.Quote(value)
	}
	tw.sb.WriteString(value)
	tw.sb.WriteByte('\n')
}

// List writes label with item count followed by quoted items one level deeper.
func (tw *TreeWriter) List(depth int, label string, items []string) {
	tw.Line(depth, "%s (%d)", label, len(items))
	for i, it := range items {
		tw.Value(depth+1, strconv.Itoa(i+1), it)
	}
}
