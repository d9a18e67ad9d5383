package dump

import (
	"stylecascade/font"
	"stylecascade/style"
)

// Fonts lists the font every style of cat uses for writing system ws, with
// the default font magic name already resolved. Styles are in catalog order.
func Fonts(cat *style.Catalog, ws int) string {
	tw := NewTreeWriter()
	tw.Line(0, "Fonts for writing system %d:", ws)
	for _, s := range cat.Styles() {
		p := cat.ResolvedFont(s, ws)
		tw.Line(1, "%s:", s.Name())
		writeFont(tw, 2, &p)
	}
	return tw.String()
}

// Font lists the cells of p carrying a value.
func Font(p *font.Properties) string {
	tw := NewTreeWriter()
	writeFont(tw, 0, p)
	return tw.String()
}
