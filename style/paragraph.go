package style

import (
	"fmt"
	"image/color"
	"strings"

	"stylecascade/font"
	"stylecascade/inherit"
)

// Alignment is the paragraph alignment. Leading and Trailing follow the
// paragraph direction, Left and Right do not.
type Alignment int32

const (
	AlignLeading Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignTrailing
	AlignJustify
)

var alignmentNames = []string{"leading", "left", "center", "right", "trailing", "justify"}

func (a Alignment) String() string {
	if a >= 0 && int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", int32(a))
}

// ParseAlignment converts a name as produced by Alignment.String back. CSS
// spellings "start" and "end" are accepted as well.
func ParseAlignment(s string) (Alignment, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "start":
		return AlignLeading, nil
	case "end":
		return AlignTrailing, nil
	}
	for i, n := range alignmentNames {
		if n == s {
			return Alignment(i), nil
		}
	}
	return AlignLeading, fmt.Errorf("unknown alignment %q", s)
}

// LineHeight is either an absolute height in millipoints or, when Relative,
// a multiple of single spacing where 10000 means 100%.
type LineHeight struct {
	Height   int32
	Relative bool
}

// SingleSpacing is the line height of a cascade root.
var SingleSpacing = LineHeight{Height: 10000, Relative: true}

func (h LineHeight) String() string {
	if h.Relative {
		return fmt.Sprintf("%d%%", h.Height/100)
	}
	return fmt.Sprintf("%dmpt", h.Height)
}

// BorderThickness holds border widths in millipoints.
type BorderThickness struct {
	Leading  int32
	Trailing int32
	Top      int32
	Bottom   int32
}

func (b BorderThickness) IsZero() bool {
	return b == BorderThickness{}
}

func (b BorderThickness) String() string {
	return fmt.Sprintf("%d %d %d %d", b.Top, b.Trailing, b.Bottom, b.Leading)
}

// Paragraph holds the cascading cells only meaningful for paragraph styles.
// Lengths are in millipoints.
type Paragraph struct {
	RightToLeft     inherit.Value[bool]
	Alignment       inherit.Value[Alignment]
	LineSpacing     inherit.Value[LineHeight]
	SpaceBefore     inherit.Value[int32]
	SpaceAfter      inherit.Value[int32]
	FirstLineIndent inherit.Value[int32]
	LeadingIndent   inherit.Value[int32]
	TrailingIndent  inherit.Value[int32]
	Border          inherit.Value[BorderThickness]
	BorderColor     inherit.Value[color.RGBA]
	Bullet          inherit.Value[BulletInfo]
}

// SetAllDefaults makes every cell explicit, keeping values already set.
func (p *Paragraph) SetAllDefaults() {
	p.RightToLeft.SetDefault(false)
	p.Alignment.SetDefault(AlignLeading)
	p.LineSpacing.SetDefault(SingleSpacing)
	p.SpaceBefore.SetDefault(0)
	p.SpaceAfter.SetDefault(0)
	p.FirstLineIndent.SetDefault(0)
	p.LeadingIndent.SetDefault(0)
	p.TrailingIndent.SetDefault(0)
	p.Border.SetDefault(BorderThickness{})
	p.BorderColor.SetDefault(font.Black)
	p.Bullet.SetDefault(BulletInfo{Font: font.NewProperties()})
}

// InheritValues pushes every cell of src into the non-explicit cells of p.
func (p *Paragraph) InheritValues(src *Paragraph) {
	p.RightToLeft.InheritValue(src.RightToLeft)
	p.Alignment.InheritValue(src.Alignment)
	p.LineSpacing.InheritValue(src.LineSpacing)
	p.SpaceBefore.InheritValue(src.SpaceBefore)
	p.SpaceAfter.InheritValue(src.SpaceAfter)
	p.FirstLineIndent.InheritValue(src.FirstLineIndent)
	p.LeadingIndent.InheritValue(src.LeadingIndent)
	p.TrailingIndent.InheritValue(src.TrailingIndent)
	p.Border.InheritValue(src.Border)
	p.BorderColor.InheritValue(src.BorderColor)
	p.Bullet.InheritValue(src.Bullet)
}

// IsComplete reports whether every cell carries a value.
func (p Paragraph) IsComplete() bool {
	return p.RightToLeft.IsSet() && p.Alignment.IsSet() && p.LineSpacing.IsSet() &&
		p.SpaceBefore.IsSet() && p.SpaceAfter.IsSet() && p.FirstLineIndent.IsSet() &&
		p.LeadingIndent.IsSet() && p.TrailingIndent.IsSet() && p.Border.IsSet() &&
		p.BorderColor.IsSet() && p.Bullet.IsSet()
}

// ExplicitCount returns the number of cells set explicitly.
func (p Paragraph) ExplicitCount() int {
	n := 0
	for _, b := range []bool{
		p.RightToLeft.IsExplicit(), p.Alignment.IsExplicit(), p.LineSpacing.IsExplicit(),
		p.SpaceBefore.IsExplicit(), p.SpaceAfter.IsExplicit(), p.FirstLineIndent.IsExplicit(),
		p.LeadingIndent.IsExplicit(), p.TrailingIndent.IsExplicit(), p.Border.IsExplicit(),
		p.BorderColor.IsExplicit(), p.Bullet.IsExplicit(),
	} {
		if b {
			n++
		}
	}
	return n
}
