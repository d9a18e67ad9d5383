package style

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Tracer records how ConnectStyles links, repairs and cascades styles.
// When enabled (via non-empty workDir), every step is captured and written
// to a file by Flush, so it ends up in the debug report archive.
//
// A nil *Tracer is valid and disabled.
type Tracer struct {
	enabled  bool
	workDir  string
	entries  []traceEntry
	sections map[string]int // section name -> entry count for summary
}

type traceEntry struct {
	operation string // "REGISTER", "LINK", "REPAIR", "INHERIT", "CYCLE"
	styleName string
	details   string
}

// TraceFileName is the name of the file Flush writes.
const TraceFileName = "style-trace.txt"

// NewTracer creates a new tracer. If workDir is empty, tracing is disabled.
func NewTracer(workDir string) *Tracer {
	return &Tracer{
		workDir:  workDir,
		enabled:  workDir != "",
		sections: make(map[string]int),
	}
}

// IsEnabled returns true if tracing is active.
func (t *Tracer) IsEnabled() bool {
	if t == nil {
		return false
	}
	return t.enabled
}

func (t *Tracer) add(section string, e traceEntry) {
	t.entries = append(t.entries, e)
	t.sections[section]++
}

// TraceRegister logs insertion of a style into the catalog.
func (t *Tracer) TraceRegister(s *Style) {
	if !t.IsEnabled() {
		return
	}
	details := fmt.Sprintf("#%d %s", s.number, s.kind)
	if s.BasedOnName != "" {
		details += ", based on " + s.BasedOnName
	}
	if s.NextName != "" {
		details += ", next " + s.NextName
	}
	t.add("registered", traceEntry{operation: "REGISTER", styleName: s.name, details: details})
}

// TraceLink logs the references a style ends up with after linking.
func (t *Tracer) TraceLink(s *Style) {
	if !t.IsEnabled() {
		return
	}
	base, next := "(root)", "(none)"
	if s.basedOn != nil {
		base = s.basedOn.name
	}
	if s.next != nil {
		next = s.next.name
	}
	t.add("linked", traceEntry{
		operation: "LINK",
		styleName: s.name,
		details:   fmt.Sprintf("based on: %s, next: %s", base, next),
	})
}

// TraceRepair logs a broken reference being replaced.
func (t *Tracer) TraceRepair(name, ref, from, to string) {
	if !t.IsEnabled() {
		return
	}
	if to == "" {
		to = "(none)"
	}
	t.add("repaired", traceEntry{
		operation: "REPAIR",
		styleName: name,
		details:   fmt.Sprintf("%s: %q -> %s", ref, from, to),
	})
}

// TraceInheritance logs the resolved state of a style.
func (t *Tracer) TraceInheritance(s *Style) {
	if !t.IsEnabled() {
		return
	}
	parentInfo := "(no parent)"
	if s.basedOn != nil {
		parentInfo = "inherits from " + s.basedOn.name
	}
	var details strings.Builder
	details.WriteString(parentInfo)
	details.WriteString("\nfont: " + s.DefaultFont.String())
	for _, ws := range s.WritingSystems() {
		details.WriteString(fmt.Sprintf("\nws %d: %s", ws, s.Overrides[ws].String()))
	}
	t.add("inherited", traceEntry{operation: "INHERIT", styleName: s.name, details: details.String()})
}

// TraceCycle logs a based-on loop.
func (t *Tracer) TraceCycle(chain []string) {
	if !t.IsEnabled() || len(chain) == 0 {
		return
	}
	t.add("cycles", traceEntry{
		operation: "CYCLE",
		styleName: chain[0],
		details:   strings.Join(chain, " -> "),
	})
}

// WriteTo writes the formatted trace to w.
func (t *Tracer) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString("=== Style Trace ===\n\n")

	sb.WriteString("Summary:\n")
	sections := make([]string, 0, len(t.sections))
	for section := range t.sections {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	for _, section := range sections {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", section, t.sections[section]))
	}
	sb.WriteString("\n")

	sb.WriteString("Detailed Trace:\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i, entry := range t.entries {
		sb.WriteString(fmt.Sprintf("[%04d] %s: %s\n", i+1, entry.operation, entry.styleName))
		if entry.details != "" {
			for line := range strings.SplitSeq(entry.details, "\n") {
				sb.WriteString("       " + line + "\n")
			}
		}
		sb.WriteString("\n")
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// Flush writes the trace to a file and clears the buffer.
// Returns the path to the trace file, or empty string if tracing is disabled.
func (t *Tracer) Flush() string {
	if !t.IsEnabled() || len(t.entries) == 0 {
		return ""
	}

	var sb strings.Builder
	if _, err := t.WriteTo(&sb); err != nil {
		return ""
	}

	tracePath := filepath.Join(t.workDir, TraceFileName)
	if err := os.WriteFile(tracePath, []byte(sb.String()), 0644); err != nil {
		return ""
	}

	t.entries = nil
	t.sections = make(map[string]int)

	return tracePath
}
