package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"stylecascade/css"
)

// Style level declarations carried as vendor properties in CSS style sheets.
const (
	PropStyleName      = "-style-name"
	PropStyleKind      = "-style-kind"
	PropStyleBasedOn   = "-style-based-on"
	PropStyleNext      = "-style-next"
	PropStyleGuid      = "-style-guid"
	PropStyleUsage     = "-style-usage"
	PropStyleUserLevel = "-style-user-level"
	PropOffset         = "-style-offset"
	PropBullet         = "-style-bullet"
	PropBulletStart    = "-style-bullet-start"
	PropBulletBefore   = "-style-bullet-before"
	PropBulletAfter    = "-style-bullet-after"
)

// CSSLoader reads style sheets written as CSS. Every class rule describes a
// style, rules restricted with :lang() describe writing system overrides of
// the font. Repeated rules for the same class are merged in source order.
type CSSLoader struct {
	parser  *css.Parser
	log     *zap.Logger
	visited map[string]bool
}

// NewCSSLoader creates a loader.
func NewCSSLoader(log *zap.Logger) *CSSLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &CSSLoader{
		parser: css.NewParser(log),
		log:    log.Named("css-sheet"),
	}
}

// Load reads the file at path following its @import statements relative to
// the importing file. Imported rules precede the rules of the importer.
func (l *CSSLoader) Load(path string) ([]Definition, error) {
	l.visited = make(map[string]bool)
	rules, err := l.collect(path)
	if err != nil {
		return nil, err
	}
	return l.definitions(rules, path), nil
}

// Parse converts CSS text into definitions. Imports are not followed.
func (l *CSSLoader) Parse(data []byte, source string) []Definition {
	sheet := l.parser.Parse(data, source)
	l.report(sheet, source)
	if len(sheet.Imports) > 0 {
		l.log.Warn("@import is not followed here, ignoring", zap.String("source", source), zap.Strings("imports", sheet.Imports))
	}
	return l.definitions(sheet.Rules, source)
}

func (l *CSSLoader) collect(path string) ([]css.Rule, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve %s: %w", path, err)
	}
	if l.visited[abs] {
		l.log.Warn("Circular @import, ignoring", zap.String("path", path))
		return nil, nil
	}
	l.visited[abs] = true

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("unable to read style sheet: %w", err)
	}
	sheet := l.parser.Parse(data, path)
	l.report(sheet, path)

	var rules []css.Rule
	for _, imp := range sheet.Imports {
		target := imp
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(abs), filepath.FromSlash(imp))
		}
		imported, err := l.collect(target)
		if err != nil {
			return nil, fmt.Errorf("%s: @import %q: %w", path, imp, err)
		}
		rules = append(rules, imported...)
	}
	return append(rules, sheet.Rules...), nil
}

func (l *CSSLoader) report(sheet *css.Stylesheet, source string) {
	for _, w := range sheet.Warnings {
		l.log.Warn("Unsupported CSS ignored", zap.String("source", source), zap.String("detail", w))
	}
}

// cssStyle accumulates the rules of one class.
type cssStyle struct {
	def   Definition
	langs map[string]int // index into def.Overrides
}

func (l *CSSLoader) definitions(rules []css.Rule, source string) []Definition {
	var (
		order  []string
		byName = make(map[string]*cssStyle)
	)
	get := func(key string) *cssStyle {
		cs, ok := byName[key]
		if !ok {
			cs = &cssStyle{
				def:   Definition{Name: key, Source: fmt.Sprintf("%s .%s", source, key)},
				langs: make(map[string]int),
			}
			byName[key] = cs
			order = append(order, key)
		}
		return cs
	}

	for _, rule := range rules {
		key := rule.Selector.BaseName()
		cs := get(key)
		if rule.Selector.Lang != "" {
			idx, ok := cs.langs[rule.Selector.Lang]
			if !ok {
				idx = len(cs.def.Overrides)
				cs.def.Overrides = append(cs.def.Overrides, OverrideDef{Lang: rule.Selector.Lang})
				cs.langs[rule.Selector.Lang] = idx
			}
			for name, v := range rule.Declarations() {
				if !applyCSSFont(&cs.def.Overrides[idx].Font, name, v) {
					l.log.Warn("Property not allowed in :lang() rule, ignoring",
						zap.String("selector", rule.Selector.Raw), zap.String("property", name))
				}
			}
			continue
		}
		for name, v := range rule.Declarations() {
			if !l.applyCSS(&cs.def, name, v) {
				l.log.Debug("Unknown CSS property, ignoring",
					zap.String("selector", rule.Selector.Raw), zap.String("property", name))
			}
		}
	}

	defs := make([]Definition, 0, len(order))
	for _, key := range order {
		defs = append(defs, byName[key].def)
	}
	return defs
}

func (l *CSSLoader) applyCSS(d *Definition, name string, v css.Value) bool {
	text := strings.TrimSpace(v.Text())
	switch name {
	case PropStyleName:
		d.Name = text
	case PropStyleKind:
		d.Kind = text
	case PropStyleBasedOn:
		d.BasedOn = text
	case PropStyleNext:
		d.Next = text
	case PropStyleGuid:
		d.Guid = text
	case PropStyleUsage:
		d.Usage = text
	case PropStyleUserLevel:
		n, err := parseInt(text)
		if err != nil {
			l.log.Warn("Bad user level, ignoring", zap.String("value", text), zap.Error(err))
			return true
		}
		d.UserLevel = n
	case "direction":
		switch strings.ToLower(text) {
		case "rtl":
			d.Paragraph.RightToLeft = "true"
		case "ltr":
			d.Paragraph.RightToLeft = "false"
		default:
			d.Paragraph.RightToLeft = text
		}
	case "text-align":
		d.Paragraph.Alignment = text
	case "line-height":
		d.Paragraph.LineSpacing = text
	case "margin-top":
		d.Paragraph.SpaceBefore = text
	case "margin-bottom":
		d.Paragraph.SpaceAfter = text
	case "text-indent":
		d.Paragraph.FirstLineIndent = text
	case "margin-inline-start", "margin-left":
		d.Paragraph.LeadingIndent = text
	case "margin-inline-end", "margin-right":
		d.Paragraph.TrailingIndent = text
	case "border-width":
		d.Paragraph.Border = text
	case "border-color":
		d.Paragraph.BorderColor = text
	case PropBullet:
		bullet(d).Scheme = text
	case PropBulletStart:
		n, err := parseInt(text)
		if err != nil {
			l.log.Warn("Bad bullet start, ignoring", zap.String("value", text), zap.Error(err))
			return true
		}
		bullet(d).Start = int32(n)
	case PropBulletBefore:
		bullet(d).TextBefore = v.Text()
	case PropBulletAfter:
		bullet(d).TextAfter = v.Text()
	default:
		return applyCSSFont(&d.Font, name, v)
	}
	return true
}

func bullet(d *Definition) *BulletDef {
	if d.Paragraph.Bullet == nil {
		d.Paragraph.Bullet = &BulletDef{}
	}
	return d.Paragraph.Bullet
}

// applyCSSFont maps a CSS font property onto f, reporting whether the
// property is a font property at all.
func applyCSSFont(f *FontDef, name string, v css.Value) bool {
	text := strings.TrimSpace(v.Text())
	switch name {
	case "font-family":
		first, _, _ := strings.Cut(v.Raw, ",")
		f.Family = strings.Trim(strings.TrimSpace(first), `"'`)
	case "font-size":
		f.Size = text
	case "font-weight":
		f.Bold = text
	case "font-style":
		f.Italic = text
	case "color":
		f.ForeColor = text
	case "background-color":
		f.BackColor = text
	case "text-decoration", "text-decoration-line":
		f.Underline = text
	case "text-decoration-color":
		f.UnderlineColor = text
	case "vertical-align":
		switch strings.ToLower(text) {
		case "super", "sub":
			f.SuperSub = text
		case "baseline":
			f.SuperSub = "none"
		default:
			f.Offset = text
		}
	case PropOffset:
		f.Offset = text
	case "font-feature-settings":
		f.Features = text
	default:
		return false
	}
	return true
}
