package dump

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter builds indented text, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes a label with a quoted value, nothing for empty values.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	if value == "" {
		return
	}
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(strconv.Quote(value))
	tw.w.WriteByte('\n')
}

// Cell writes a property cell. Explicit cells are marked with '*', cells
// without a value are skipped.
func (tw TreeWriter) Cell(depth int, label string, set, explicit bool, value any) {
	if !set {
		return
	}
	tw.indent(depth)
	if explicit {
		tw.w.WriteByte('*')
	} else {
		tw.w.WriteByte(' ')
	}
	fmt.Fprintf(tw.w, "%s: %v\n", label, value)
}
