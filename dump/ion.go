package dump

import (
	"fmt"

	"github.com/amazon-ion/ion-go/ion"

	"stylecascade/font"
	"stylecascade/style"
)

// Record is the Ion form of one connected style. Font and paragraph values
// are the resolved ones, Explicit lists the cells set by the author. Props
// holds what the style emits into a property sink.
type Record struct {
	Name      string           `ion:"name"`
	Kind      string           `ion:"kind"`
	Number    int              `ion:"number"`
	BasedOn   string           `ion:"based_on"`
	Next      string           `ion:"next"`
	Guid      string           `ion:"guid"`
	Usage     string           `ion:"usage"`
	UserLevel int              `ion:"user_level"`
	Font      FontRecord       `ion:"font"`
	Overrides []OverrideRecord `ion:"overrides"`
	Paragraph *ParagraphRecord `ion:"paragraph"`
	Props     []PropRecord     `ion:"props"`
}

type FontRecord struct {
	Family         string   `ion:"family"`
	Size           int32    `ion:"size"`
	Bold           bool     `ion:"bold"`
	Italic         bool     `ion:"italic"`
	ForeColor      string   `ion:"fore_color"`
	BackColor      string   `ion:"back_color"`
	Underline      string   `ion:"underline"`
	UnderlineColor string   `ion:"underline_color"`
	Offset         int32    `ion:"offset"`
	SuperSub       string   `ion:"super_sub"`
	Features       string   `ion:"features"`
	Explicit       []string `ion:"explicit"`
	Blob           []byte   `ion:"blob"`
}

type OverrideRecord struct {
	WS   int        `ion:"ws"`
	Font FontRecord `ion:"font"`
}

type ParagraphRecord struct {
	RightToLeft     bool     `ion:"rtl"`
	Alignment       string   `ion:"align"`
	LineSpacing     string   `ion:"line_spacing"`
	SpaceBefore     int32    `ion:"space_before"`
	SpaceAfter      int32    `ion:"space_after"`
	FirstLineIndent int32    `ion:"first_line_indent"`
	LeadingIndent   int32    `ion:"leading_indent"`
	TrailingIndent  int32    `ion:"trailing_indent"`
	Border          string   `ion:"border"`
	BorderColor     string   `ion:"border_color"`
	Bullet          string   `ion:"bullet"`
	Explicit        []string `ion:"explicit"`
}

// PropRecord is a single emitted property, either integer or string.
type PropRecord struct {
	Prop      string `ion:"prop"`
	Variation int    `ion:"variation"`
	Value     int32  `ion:"value"`
	Text      []byte `ion:"text"`
}

// Records converts every style of cat in catalog order.
func Records(cat *style.Catalog) []Record {
	styles := cat.Styles()
	out := make([]Record, 0, len(styles))
	for _, s := range styles {
		out = append(out, newRecord(s))
	}
	return out
}

func newRecord(s *style.Style) Record {
	r := Record{
		Name:      s.Name(),
		Kind:      s.Kind().String(),
		Number:    s.Number(),
		Guid:      s.Guid.String(),
		Usage:     s.Usage,
		UserLevel: s.UserLevel,
		Font:      newFontRecord(&s.DefaultFont),
	}
	if b := s.BasedOn(); b != nil {
		r.BasedOn = b.Name()
	}
	if n := s.Next(); n != nil {
		r.Next = n.Name()
	}
	for _, ws := range s.WritingSystems() {
		o, _ := s.OverrideFor(ws)
		r.Overrides = append(r.Overrides, OverrideRecord{WS: ws, Font: newFontRecord(o)})
	}
	if s.IsParagraph() {
		r.Paragraph = newParagraphRecord(&s.Paragraph)
	}

	bag := style.NewPropertyBag()
	s.Emit(bag)
	for p := style.PropRightToLeft; p <= style.PropFontInfo; p++ {
		if v, ok := bag.Int(p); ok {
			r.Props = append(r.Props, PropRecord{Prop: p.String(), Variation: int(v.Variation), Value: v.Value})
		}
		if v, ok := bag.String(p); ok {
			r.Props = append(r.Props, PropRecord{Prop: p.String(), Text: []byte(v)})
		}
	}
	return r
}

func newFontRecord(p *font.Properties) FontRecord {
	r := FontRecord{
		Family:         p.Family.Value(),
		Size:           p.Size.Value(),
		Bold:           p.Bold.Value(),
		Italic:         p.Italic.Value(),
		ForeColor:      font.FormatColor(p.ForeColor.Value()),
		BackColor:      font.FormatColor(p.BackColor.Value()),
		Underline:      p.Underline.Value().String(),
		UnderlineColor: font.FormatColor(p.UnderlineColor.Value()),
		Offset:         p.Offset.Value(),
		SuperSub:       p.SuperSub.Value().String(),
		Features:       p.Features.Value(),
		Blob:           font.Encode(*p),
	}
	for _, tag := range p.ExplicitTags() {
		r.Explicit = append(r.Explicit, tag.String())
	}
	return r
}

func newParagraphRecord(p *style.Paragraph) *ParagraphRecord {
	r := &ParagraphRecord{
		RightToLeft:     p.RightToLeft.Value(),
		Alignment:       p.Alignment.Value().String(),
		LineSpacing:     formatLineHeight(p.LineSpacing.Value()),
		SpaceBefore:     p.SpaceBefore.Value(),
		SpaceAfter:      p.SpaceAfter.Value(),
		FirstLineIndent: p.FirstLineIndent.Value(),
		LeadingIndent:   p.LeadingIndent.Value(),
		TrailingIndent:  p.TrailingIndent.Value(),
		Border:          formatBorder(p.Border.Value()),
		BorderColor:     font.FormatColor(p.BorderColor.Value()),
		Bullet:          formatBullet(p.Bullet.Value()),
	}
	for _, c := range []struct {
		name     string
		explicit bool
	}{
		{"rtl", p.RightToLeft.IsExplicit()},
		{"align", p.Alignment.IsExplicit()},
		{"line_spacing", p.LineSpacing.IsExplicit()},
		{"space_before", p.SpaceBefore.IsExplicit()},
		{"space_after", p.SpaceAfter.IsExplicit()},
		{"first_line_indent", p.FirstLineIndent.IsExplicit()},
		{"leading_indent", p.LeadingIndent.IsExplicit()},
		{"trailing_indent", p.TrailingIndent.IsExplicit()},
		{"border", p.Border.IsExplicit()},
		{"border_color", p.BorderColor.IsExplicit()},
		{"bullet", p.Bullet.IsExplicit()},
	} {
		if c.explicit {
			r.Explicit = append(r.Explicit, c.name)
		}
	}
	return r
}

// MarshalIon encodes the records of cat as an Ion list, text or binary.
func MarshalIon(cat *style.Catalog, binary bool) ([]byte, error) {
	recs := Records(cat)
	var (
		data []byte
		err  error
	)
	if binary {
		data, err = ion.MarshalBinary(recs)
	} else {
		data, err = ion.MarshalText(recs)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to encode styles: %w", err)
	}
	return data, nil
}

// UnmarshalIon decodes records produced by MarshalIon.
func UnmarshalIon(data []byte) ([]Record, error) {
	var recs []Record
	if err := ion.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("unable to decode styles: %w", err)
	}
	return recs, nil
}
