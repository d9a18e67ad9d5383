package dump

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"stylecascade/css"
	"stylecascade/font"
	"stylecascade/inherit"
	"stylecascade/sheet"
	"stylecascade/style"
	"stylecascade/wsys"
)

// CSS writes the explicit cells of every style of cat as a style sheet the
// sheet package loads back into an equivalent catalog. Class names are slugs
// of the style names, the names themselves travel in -style-name. Overrides
// become :lang() rules, which needs wss to name the writing systems;
// overrides of writing systems wss does not know are dropped.
func CSS(cat *style.Catalog, wss *wsys.Directory, log *zap.Logger) *css.Stylesheet {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("dump")

	names := cat.Names()
	sort.Sort(natural.StringSlice(names))

	sheetOut := &css.Stylesheet{}
	used := make(map[string]bool)
	for _, name := range names {
		s, _ := cat.Lookup(name)
		class := className(s, used)

		props := make(map[string]css.Value)
		props[sheet.PropStyleName] = css.Quoted(s.Name())
		if !s.IsParagraph() {
			props[sheet.PropStyleKind] = css.Raw(s.Kind().String())
		}
		basedOn, next := s.BasedOnName, s.NextName
		if cat.Connected() {
			basedOn, next = linkName(s.BasedOn()), linkName(s.Next())
		}
		if basedOn != "" {
			props[sheet.PropStyleBasedOn] = css.Quoted(basedOn)
		}
		if next != "" && next != s.Name() {
			props[sheet.PropStyleNext] = css.Quoted(next)
		}
		props[sheet.PropStyleGuid] = css.Quoted(s.Guid.String())
		if s.Usage != "" {
			props[sheet.PropStyleUsage] = css.Quoted(s.Usage)
		}
		if s.UserLevel != 0 {
			props[sheet.PropStyleUserLevel] = css.Raw(strconv.Itoa(s.UserLevel))
		}
		fontCSS(props, &s.DefaultFont)
		if s.IsParagraph() {
			paragraphCSS(props, &s.Paragraph)
		}
		sheetOut.Rules = append(sheetOut.Rules, css.Rule{
			Selector:   css.Selector{Raw: "." + class, Class: class},
			Properties: props,
			Comment:    fmt.Sprintf("%s style #%d", s.Kind(), s.Number()),
		})

		for _, ws := range s.WritingSystems() {
			o, _ := s.OverrideFor(ws)
			if o.ExplicitCount() == 0 {
				continue
			}
			lang, ok := langOf(wss, ws)
			if !ok {
				log.Warn("Override of unknown writing system dropped", zap.String("style", s.Name()), zap.Int("ws", ws))
				continue
			}
			oprops := make(map[string]css.Value)
			fontCSS(oprops, o)
			sheetOut.Rules = append(sheetOut.Rules, css.Rule{
				Selector:   css.Selector{Raw: fmt.Sprintf(".%s:lang(%s)", class, lang), Class: class, Lang: lang},
				Properties: oprops,
			})
		}
	}
	return sheetOut
}

func linkName(s *style.Style) string {
	if s == nil {
		return ""
	}
	return s.Name()
}

func langOf(wss *wsys.Directory, ws int) (string, bool) {
	if wss == nil {
		return "", false
	}
	sys, ok := wss.Get(ws)
	if !ok {
		return "", false
	}
	return sys.Tag.String(), true
}

func className(s *style.Style, used map[string]bool) string {
	base := slug.Make(s.Name())
	if base == "" {
		base = fmt.Sprintf("style-%d", s.Number())
	}
	class := base
	for i := 2; used[class]; i++ {
		class = fmt.Sprintf("%s-%d", base, i)
	}
	used[class] = true
	return class
}

var underlineCSS = map[font.Underline]string{
	font.UnderlineNone:          "none",
	font.UnderlineDotted:        "underline dotted",
	font.UnderlineDashed:        "underline dashed",
	font.UnderlineSingle:        "underline",
	font.UnderlineDouble:        "underline double",
	font.UnderlineStrikethrough: "line-through",
	font.UnderlineSquiggle:      "underline wavy",
}

func fontCSS(props map[string]css.Value, p *font.Properties) {
	if p.Family.IsExplicit() {
		props["font-family"] = css.Quoted(p.Family.Value())
	}
	if p.Size.IsExplicit() {
		props["font-size"] = css.Raw(formatLength(p.Size.Value()))
	}
	if p.Bold.IsExplicit() {
		props["font-weight"] = css.Raw(choose(p.Bold.Value(), "bold", "normal"))
	}
	if p.Italic.IsExplicit() {
		props["font-style"] = css.Raw(choose(p.Italic.Value(), "italic", "normal"))
	}
	if p.ForeColor.IsExplicit() {
		props["color"] = css.Raw(font.FormatColor(p.ForeColor.Value()))
	}
	if p.BackColor.IsExplicit() {
		props["background-color"] = css.Raw(font.FormatColor(p.BackColor.Value()))
	}
	if p.Underline.IsExplicit() {
		props["text-decoration"] = css.Raw(underlineCSS[p.Underline.Value()])
	}
	if p.UnderlineColor.IsExplicit() {
		props["text-decoration-color"] = css.Raw(font.FormatColor(p.UnderlineColor.Value()))
	}
	if p.Offset.IsExplicit() {
		props[sheet.PropOffset] = css.Raw(formatLength(p.Offset.Value()))
	}
	if p.SuperSub.IsExplicit() {
		v := p.SuperSub.Value().String()
		if p.SuperSub.Value() == font.SuperSubNone {
			v = "baseline"
		}
		props["vertical-align"] = css.Raw(v)
	}
	if p.Features.IsExplicit() {
		v := p.Features.Value()
		if v == "" {
			v = "normal"
		}
		props["font-feature-settings"] = css.Raw(v)
	}
}

func paragraphCSS(props map[string]css.Value, p *style.Paragraph) {
	if p.RightToLeft.IsExplicit() {
		props["direction"] = css.Raw(choose(p.RightToLeft.Value(), "rtl", "ltr"))
	}
	if p.Alignment.IsExplicit() {
		v := p.Alignment.Value().String()
		switch p.Alignment.Value() {
		case style.AlignLeading:
			v = "start"
		case style.AlignTrailing:
			v = "end"
		}
		props["text-align"] = css.Raw(v)
	}
	if p.LineSpacing.IsExplicit() {
		props["line-height"] = css.Raw(formatLineHeight(p.LineSpacing.Value()))
	}
	for _, l := range []struct {
		name string
		cell *inherit.Value[int32]
	}{
		{"margin-top", &p.SpaceBefore},
		{"margin-bottom", &p.SpaceAfter},
		{"text-indent", &p.FirstLineIndent},
		{"margin-inline-start", &p.LeadingIndent},
		{"margin-inline-end", &p.TrailingIndent},
	} {
		if l.cell.IsExplicit() {
			props[l.name] = css.Raw(formatLength(l.cell.Value()))
		}
	}
	if p.Border.IsExplicit() {
		props["border-width"] = css.Raw(formatBorder(p.Border.Value()))
	}
	if p.BorderColor.IsExplicit() {
		props["border-color"] = css.Raw(font.FormatColor(p.BorderColor.Value()))
	}
	if p.Bullet.IsExplicit() {
		b := p.Bullet.Value()
		props[sheet.PropBullet] = css.Raw(b.Scheme.String())
		if b.Scheme.IsNumbered() {
			props[sheet.PropBulletStart] = css.Raw(strconv.Itoa(int(b.Start)))
			if b.TextBefore != "" {
				props[sheet.PropBulletBefore] = css.Quoted(b.TextBefore)
			}
			if b.TextAfter != "" {
				props[sheet.PropBulletAfter] = css.Quoted(b.TextAfter)
			}
		}
	}
}

func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
