package style

import (
	"stylecascade/font"
	"stylecascade/inherit"
)

type inheritInt32 = inherit.Value[int32]

// Emit writes the properties of s into sink: every paragraph cell carrying a
// value (paragraph styles only), the blob of the explicitly set default font
// cells and, when a bullet is set, its numbering properties.
func (s *Style) Emit(sink PropertySink) {
	if s.IsParagraph() {
		s.Paragraph.emit(sink)
	}
	if blob := font.Encode(s.DefaultFont); len(blob) > 0 {
		sink.SetStringProperty(PropFontInfo, string(blob))
	}
}

func (p *Paragraph) emit(sink PropertySink) {
	if p.RightToLeft.IsSet() {
		v := int32(0)
		if p.RightToLeft.Value() {
			v = 1
		}
		sink.SetIntProperty(PropRightToLeft, VarEnum, v)
	}
	if p.Alignment.IsSet() {
		sink.SetIntProperty(PropAlign, VarEnum, int32(p.Alignment.Value()))
	}
	if p.LineSpacing.IsSet() {
		h := p.LineSpacing.Value()
		if h.Relative {
			sink.SetIntProperty(PropLineHeight, VarRelative, h.Height)
		} else {
			sink.SetIntProperty(PropLineHeight, VarMilliPoint, h.Height)
		}
	}
	lengths := []struct {
		tag  Prop
		cell *inheritInt32
	}{
		{PropSpaceBefore, &p.SpaceBefore},
		{PropSpaceAfter, &p.SpaceAfter},
		{PropFirstIndent, &p.FirstLineIndent},
		{PropLeadingIndent, &p.LeadingIndent},
		{PropTrailingIndent, &p.TrailingIndent},
	}
	for _, l := range lengths {
		if l.cell.IsSet() {
			sink.SetIntProperty(l.tag, VarMilliPoint, l.cell.Value())
		}
	}
	if p.Border.IsSet() {
		b := p.Border.Value()
		sink.SetIntProperty(PropBorderLeading, VarMilliPoint, b.Leading)
		sink.SetIntProperty(PropBorderTrailing, VarMilliPoint, b.Trailing)
		sink.SetIntProperty(PropBorderTop, VarMilliPoint, b.Top)
		sink.SetIntProperty(PropBorderBottom, VarMilliPoint, b.Bottom)
	}
	if p.BorderColor.IsSet() {
		sink.SetIntProperty(PropBorderColor, VarDefault, int32(font.ColorToBGR(p.BorderColor.Value())))
	}
	if p.Bullet.IsSet() {
		p.Bullet.Value().Emit(sink)
	}
}
