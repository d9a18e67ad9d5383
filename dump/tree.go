// Package dump renders connected style catalogs for inspection: as an
// indented based-on tree, as Ion records and as a CSS style sheet that the
// sheet package can load back.
package dump

import (
	"sort"

	"github.com/maruel/natural"

	"stylecascade/font"
	"stylecascade/style"
)

// Tree returns the based-on hierarchy of cat. Siblings are ordered by name.
// With cells set every property cell carrying a value is listed, explicit
// ones marked with '*'.
func Tree(cat *style.Catalog, cells bool) string {
	if cat == nil {
		return "<nil Catalog>"
	}

	children := make(map[string][]string)
	var roots []string
	for _, s := range cat.Styles() {
		if base := s.BasedOn(); base != nil && base != s {
			children[base.Name()] = append(children[base.Name()], s.Name())
		} else {
			roots = append(roots, s.Name())
		}
	}
	sort.Sort(natural.StringSlice(roots))
	for k := range children {
		sort.Sort(natural.StringSlice(children[k]))
	}

	tw := NewTreeWriter()
	tw.Line(0, "Styles: %d (normal %q, connected %t)", cat.Len(), cat.NormalStyleName(), cat.Connected())

	visited := make(map[string]bool)
	var walk func(depth int, name string)
	walk = func(depth int, name string) {
		if visited[name] {
			tw.Line(depth, "%s (cycle)", name)
			return
		}
		visited[name] = true
		s, _ := cat.Lookup(name)
		writeStyle(tw, depth, s, cells)
		for _, child := range children[name] {
			walk(depth+1, child)
		}
	}
	for _, r := range roots {
		walk(1, r)
	}
	return tw.String()
}

func writeStyle(tw *TreeWriter, depth int, s *style.Style, cells bool) {
	next := ""
	if n := s.Next(); n != nil && n != s {
		next = " next=" + n.Name()
	}
	tw.Line(depth, "%s [%s #%d]%s", s.Name(), s.Kind(), s.Number(), next)
	if !cells {
		return
	}
	tw.TextBlock(depth+1, "usage", s.Usage)
	tw.Line(depth+1, "font:")
	writeFont(tw, depth+2, &s.DefaultFont)
	for _, ws := range s.WritingSystems() {
		o, _ := s.OverrideFor(ws)
		tw.Line(depth+1, "ws %d:", ws)
		writeFont(tw, depth+2, o)
	}
	if s.IsParagraph() {
		tw.Line(depth+1, "paragraph:")
		writeParagraph(tw, depth+2, &s.Paragraph)
	}
}

func writeFont(tw *TreeWriter, depth int, p *font.Properties) {
	tw.Cell(depth, "family", p.Family.IsSet(), p.Family.IsExplicit(), p.Family.Value())
	tw.Cell(depth, "size", p.Size.IsSet(), p.Size.IsExplicit(), formatLength(p.Size.Value()))
	tw.Cell(depth, "bold", p.Bold.IsSet(), p.Bold.IsExplicit(), p.Bold.Value())
	tw.Cell(depth, "italic", p.Italic.IsSet(), p.Italic.IsExplicit(), p.Italic.Value())
	tw.Cell(depth, "color", p.ForeColor.IsSet(), p.ForeColor.IsExplicit(), font.FormatColor(p.ForeColor.Value()))
	tw.Cell(depth, "background", p.BackColor.IsSet(), p.BackColor.IsExplicit(), font.FormatColor(p.BackColor.Value()))
	tw.Cell(depth, "underline", p.Underline.IsSet(), p.Underline.IsExplicit(), p.Underline.Value())
	tw.Cell(depth, "underline color", p.UnderlineColor.IsSet(), p.UnderlineColor.IsExplicit(), font.FormatColor(p.UnderlineColor.Value()))
	tw.Cell(depth, "offset", p.Offset.IsSet(), p.Offset.IsExplicit(), formatLength(p.Offset.Value()))
	tw.Cell(depth, "super/sub", p.SuperSub.IsSet(), p.SuperSub.IsExplicit(), p.SuperSub.Value())
	tw.Cell(depth, "features", p.Features.IsSet(), p.Features.IsExplicit(), p.Features.Value())
}

func writeParagraph(tw *TreeWriter, depth int, p *style.Paragraph) {
	tw.Cell(depth, "rtl", p.RightToLeft.IsSet(), p.RightToLeft.IsExplicit(), p.RightToLeft.Value())
	tw.Cell(depth, "align", p.Alignment.IsSet(), p.Alignment.IsExplicit(), p.Alignment.Value())
	tw.Cell(depth, "line spacing", p.LineSpacing.IsSet(), p.LineSpacing.IsExplicit(), formatLineHeight(p.LineSpacing.Value()))
	tw.Cell(depth, "space before", p.SpaceBefore.IsSet(), p.SpaceBefore.IsExplicit(), formatLength(p.SpaceBefore.Value()))
	tw.Cell(depth, "space after", p.SpaceAfter.IsSet(), p.SpaceAfter.IsExplicit(), formatLength(p.SpaceAfter.Value()))
	tw.Cell(depth, "first line indent", p.FirstLineIndent.IsSet(), p.FirstLineIndent.IsExplicit(), formatLength(p.FirstLineIndent.Value()))
	tw.Cell(depth, "leading indent", p.LeadingIndent.IsSet(), p.LeadingIndent.IsExplicit(), formatLength(p.LeadingIndent.Value()))
	tw.Cell(depth, "trailing indent", p.TrailingIndent.IsSet(), p.TrailingIndent.IsExplicit(), formatLength(p.TrailingIndent.Value()))
	tw.Cell(depth, "border", p.Border.IsSet(), p.Border.IsExplicit(), formatBorder(p.Border.Value()))
	tw.Cell(depth, "border color", p.BorderColor.IsSet(), p.BorderColor.IsExplicit(), font.FormatColor(p.BorderColor.Value()))
	if p.Bullet.IsSet() {
		b := p.Bullet.Value()
		tw.Cell(depth, "bullet", true, p.Bullet.IsExplicit(), formatBullet(b))
		if b.Scheme != style.SchemeNone && b.Font.ExplicitCount() > 0 {
			tw.Line(depth+1, "font %s", b.Font)
		}
	}
}
