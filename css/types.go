package css

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"sort"
	"strings"
	"unicode"
)

// EscapeString escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func EscapeString(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// Raw returns a value which is written out verbatim.
func Raw(s string) Value {
	return Value{Raw: s, Keyword: s}
}

// Quoted returns a string value written in double quotes.
func Quoted(s string) Value {
	return Value{Raw: `"` + EscapeString(s) + `"`, Keyword: s}
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	// If there's a unit, it's definitely numeric
	if v.Unit != "" {
		return true
	}
	// Non-zero value with no keyword is numeric
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// Check if Raw looks like a numeric value (handles "0" case)
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Text returns the value as written, with quotes of string values removed.
func (v Value) Text() string {
	return unquote(v.Raw)
}

// Selector represents a parsed selector. Only simple selectors are supported:
// element, class or element.class, optionally restricted to a language with
// the :lang() pseudo-class.
type Selector struct {
	Raw     string // Original selector string
	Element string // Element name (e.g., "p", "span") or empty for class-only
	Class   string // Class name without dot or empty
	Lang    string // Argument of :lang() or empty
}

// IsSimple returns true if this is a simple selector (element, class, or element.class).
func (s Selector) IsSimple() bool {
	return s.Element != "" || s.Class != ""
}

// BaseName returns the class name, or the element name for element-only
// selectors.
func (s Selector) BaseName() string {
	switch {
	case s.Class != "":
		return s.Class
	case s.Element != "":
		return s.Element
	default:
		return s.Raw
	}
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector         // Parsed selector
	Properties map[string]Value // Property name -> value
	Order      []string         // Property names by last declaration, may be empty
	Comment    string           // Written above the rule, never parsed
}

// Declarations yields properties in declaration order, so that of two
// declarations setting the same thing the later one is applied last. Rules
// built without Order yield properties sorted by name.
func (r Rule) Declarations() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		names := r.Order
		if len(names) == 0 {
			names = slices.Sorted(maps.Keys(r.Properties))
		}
		for _, name := range names {
			v, ok := r.Properties[name]
			if !ok {
				continue
			}
			if !yield(name, v) {
				return
			}
		}
	}
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule   // Supported rules in source order
	Imports  []string // @import URLs in source order
	Warnings []string // Warnings for unsupported features
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, rule := range s.Rules {
		if rule.Selector.Raw == selector {
			matches = append(matches, rule)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, url := range s.Imports {
		n, err := fmt.Fprintf(w, "@import url(\"%s\");\n", EscapeString(url))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	for i := range s.Rules {
		if total > 0 {
			n, err := fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	if rule.Comment != "" {
		n, err := fmt.Fprintf(w, "/* %s */\n", strings.ReplaceAll(rule.Comment, "*/", "* /"))
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector.Raw)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]Value) (int, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		val := props[name]
		n, err := fmt.Fprintf(w, "  %s: %s;\n", name, val.Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
