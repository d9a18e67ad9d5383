// Package font holds the cascading font property bundle of a style and the
// compact binary blob used to persist its explicitly set cells.
package font

import (
	"fmt"
	"image/color"
	"strings"

	"stylecascade/inherit"
)

// DefaultFontName is the magic family name standing for "the default font of
// the writing system in use". It is resolved by the style catalog.
const DefaultFontName = "<default font>"

// DefaultSize is the font size of a cascade root, in millipoints.
const DefaultSize int32 = 10000

// Underline is the kind of line drawn under (or through) text.
type Underline int32

const (
	UnderlineNone Underline = iota
	UnderlineDotted
	UnderlineDashed
	UnderlineSingle
	UnderlineDouble
	UnderlineStrikethrough
	UnderlineSquiggle
)

var underlineNames = []string{"none", "dotted", "dashed", "single", "double", "strikethrough", "squiggle"}

func (u Underline) String() string {
	if u >= 0 && int(u) < len(underlineNames) {
		return underlineNames[u]
	}
	return fmt.Sprintf("Underline(%d)", int32(u))
}

// ParseUnderline converts a name as produced by Underline.String back.
func ParseUnderline(s string) (Underline, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range underlineNames {
		if n == s {
			return Underline(i), nil
		}
	}
	return UnderlineNone, fmt.Errorf("unknown underline %q", s)
}

// SuperSub selects superscript or subscript rendering.
type SuperSub int32

const (
	SuperSubNone SuperSub = iota
	Superscript
	Subscript
)

var superSubNames = []string{"none", "super", "sub"}

func (s SuperSub) String() string {
	if s >= 0 && int(s) < len(superSubNames) {
		return superSubNames[s]
	}
	return fmt.Sprintf("SuperSub(%d)", int32(s))
}

// ParseSuperSub converts a name as produced by SuperSub.String back.
func ParseSuperSub(s string) (SuperSub, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "superscript":
		return Superscript, nil
	case "subscript":
		return Subscript, nil
	}
	for i, n := range superSubNames {
		if n == s {
			return SuperSub(i), nil
		}
	}
	return SuperSubNone, fmt.Errorf("unknown super/subscript value %q", s)
}

// Transparent is the "no color" value used for backgrounds.
var Transparent = color.RGBA{}

// Black is the default text and underline color.
var Black = color.RGBA{A: 0xff}

// Properties is the bundle of cascading font cells owned by a style (its
// default font) or by one of its writing system overrides.
//
// Field order matters: it is the order in which Encode writes cells. Colors
// are either opaque or fully transparent, the blob keeps no partial alpha.
type Properties struct {
	BackColor      inherit.Value[color.RGBA]
	Bold           inherit.Value[bool]
	ForeColor      inherit.Value[color.RGBA]
	Size           inherit.Value[int32] // millipoints
	Italic         inherit.Value[bool]
	Underline      inherit.Value[Underline]
	UnderlineColor inherit.Value[color.RGBA]
	Offset         inherit.Value[int32] // baseline offset, millipoints
	SuperSub       inherit.Value[SuperSub]
	Family         inherit.Value[string]
	Features       inherit.Value[string] // OpenType feature settings
}

// NewProperties returns a bundle carrying default values with no cell marked
// explicit.
func NewProperties() Properties {
	return Properties{
		BackColor:      inherit.Inherited(Transparent),
		Bold:           inherit.Inherited(false),
		ForeColor:      inherit.Inherited(Black),
		Size:           inherit.Inherited(DefaultSize),
		Italic:         inherit.Inherited(false),
		Underline:      inherit.Inherited(UnderlineNone),
		UnderlineColor: inherit.Inherited(Black),
		Offset:         inherit.Inherited(int32(0)),
		SuperSub:       inherit.Inherited(SuperSubNone),
		Family:         inherit.Inherited(DefaultFontName),
		Features:       inherit.Inherited(""),
	}
}

// SetAllDefaults forces every cell into the explicit state. Cells already set
// explicitly keep their value, all others receive the defaults.
func (p *Properties) SetAllDefaults() {
	p.BackColor.SetDefault(Transparent)
	p.Bold.SetDefault(false)
	p.ForeColor.SetDefault(Black)
	p.Size.SetDefault(DefaultSize)
	p.Italic.SetDefault(false)
	p.Underline.SetDefault(UnderlineNone)
	p.UnderlineColor.SetDefault(Black)
	p.Offset.SetDefault(0)
	p.SuperSub.SetDefault(SuperSubNone)
	p.Family.SetDefault(DefaultFontName)
	p.Features.SetDefault("")
}

// InheritValues pushes every cell of src into the non-explicit cells of p.
func (p *Properties) InheritValues(src *Properties) {
	p.BackColor.InheritValue(src.BackColor)
	p.Bold.InheritValue(src.Bold)
	p.ForeColor.InheritValue(src.ForeColor)
	p.Size.InheritValue(src.Size)
	p.Italic.InheritValue(src.Italic)
	p.Underline.InheritValue(src.Underline)
	p.UnderlineColor.InheritValue(src.UnderlineColor)
	p.Offset.InheritValue(src.Offset)
	p.SuperSub.InheritValue(src.SuperSub)
	p.Family.InheritValue(src.Family)
	p.Features.InheritValue(src.Features)
}

// Clone returns a copy of p. Properties holds no references, so this is a
// plain value copy, spelled out for readability at call sites.
func (p Properties) Clone() Properties {
	return p
}

// Equal reports whether both bundles hold the same values in the same states.
func (p Properties) Equal(o Properties) bool {
	return p == o
}

// ExplicitCount returns the number of cells set explicitly.
func (p Properties) ExplicitCount() int {
	n := 0
	for _, explicit := range p.explicitFlags() {
		if explicit {
			n++
		}
	}
	return n
}

// ExplicitTags lists the blob tags of the explicit cells in field order.
func (p Properties) ExplicitTags() []Tag {
	var tags []Tag
	for i, explicit := range p.explicitFlags() {
		if explicit {
			tags = append(tags, Tag(i+1))
		}
	}
	return tags
}

// IsComplete reports whether every cell carries a value.
func (p Properties) IsComplete() bool {
	return p.BackColor.IsSet() && p.Bold.IsSet() && p.ForeColor.IsSet() &&
		p.Size.IsSet() && p.Italic.IsSet() && p.Underline.IsSet() &&
		p.UnderlineColor.IsSet() && p.Offset.IsSet() && p.SuperSub.IsSet() &&
		p.Family.IsSet() && p.Features.IsSet()
}

func (p Properties) explicitFlags() [tagCount]bool {
	return [tagCount]bool{
		p.BackColor.IsExplicit(),
		p.Bold.IsExplicit(),
		p.ForeColor.IsExplicit(),
		p.Size.IsExplicit(),
		p.Italic.IsExplicit(),
		p.Underline.IsExplicit(),
		p.UnderlineColor.IsExplicit(),
		p.Offset.IsExplicit(),
		p.SuperSub.IsExplicit(),
		p.Family.IsExplicit(),
		p.Features.IsExplicit(),
	}
}

// String lists explicit cells only, in field order.
func (p Properties) String() string {
	var parts []string
	add := func(explicit bool, name string, v any) {
		if explicit {
			parts = append(parts, fmt.Sprintf("%s=%v", name, v))
		}
	}
	add(p.BackColor.IsExplicit(), "back-color", FormatColor(p.BackColor.Value()))
	add(p.Bold.IsExplicit(), "bold", p.Bold.Value())
	add(p.ForeColor.IsExplicit(), "fore-color", FormatColor(p.ForeColor.Value()))
	add(p.Size.IsExplicit(), "size", p.Size.Value())
	add(p.Italic.IsExplicit(), "italic", p.Italic.Value())
	add(p.Underline.IsExplicit(), "underline", p.Underline.Value())
	add(p.UnderlineColor.IsExplicit(), "underline-color", FormatColor(p.UnderlineColor.Value()))
	add(p.Offset.IsExplicit(), "offset", p.Offset.Value())
	add(p.SuperSub.IsExplicit(), "super-sub", p.SuperSub.Value())
	add(p.Family.IsExplicit(), "family", fmt.Sprintf("%q", p.Family.Value()))
	add(p.Features.IsExplicit(), "features", fmt.Sprintf("%q", p.Features.Value()))
	return "{" + strings.Join(parts, " ") + "}"
}

// FormatColor renders c as "#rrggbb", or "transparent" when fully transparent.
func FormatColor(c color.RGBA) string {
	if c.A == 0 {
		return "transparent"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
