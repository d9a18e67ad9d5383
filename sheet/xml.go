package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// LoadXML reads definitions from an XML style sheet:
//
//	<Styles>
//	  <markup>
//	    <tag id="Normal" type="paragraph" basedOn="" next="" guid="" userlevel="0">
//	      <usage>...</usage>
//	      <font family="Times" size="12pt" bold="false">
//	        <override ws="2" lang="ar" family="Amiri"/>
//	      </font>
//	      <paragraph align="justify" spaceAfter="6pt">
//	        <bullet scheme="arabic" start="1" before="" after=".">
//	          <font bold="true"/>
//	        </bullet>
//	      </paragraph>
//	    </tag>
//	  </markup>
//	</Styles>
//
// Unknown elements are reported and skipped.
func LoadXML(r io.Reader, source string, log *zap.Logger) ([]Definition, error) {
	if log == nil {
		log = zap.NewNop()
	}

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", source, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%s: empty document", source)
	}
	if !strings.EqualFold(root.Tag, "Styles") {
		return nil, fmt.Errorf("%s: unexpected root element <%s>", source, root.Tag)
	}

	var defs []Definition
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "markup":
			for _, tag := range child.ChildElements() {
				if tag.Tag != "tag" {
					log.Warn("Unexpected tag in markup, ignoring", zap.String("parent", child.Tag), zap.String("tag", tag.Tag))
					continue
				}
				def, err := parseTag(tag, log)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", source, err)
				}
				def.Source = fmt.Sprintf("%s #%d", source, len(defs)+1)
				defs = append(defs, def)
			}
		default:
			log.Warn("Unexpected tag in Styles, ignoring", zap.String("parent", root.Tag), zap.String("tag", child.Tag))
		}
	}
	return defs, nil
}

func parseTag(el *etree.Element, log *zap.Logger) (Definition, error) {
	def := Definition{
		Name:    el.SelectAttrValue("id", ""),
		Kind:    el.SelectAttrValue("type", ""),
		BasedOn: el.SelectAttrValue("basedOn", ""),
		Next:    el.SelectAttrValue("next", ""),
		Guid:    el.SelectAttrValue("guid", ""),
	}
	if lvl := el.SelectAttrValue("userlevel", ""); lvl != "" {
		n, err := parseInt(lvl)
		if err != nil {
			return def, fmt.Errorf("style %q: userlevel: %w", def.Name, err)
		}
		def.UserLevel = n
	}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "usage":
			def.Usage = strings.TrimSpace(child.Text())
		case "font":
			def.Font = parseFontAttrs(child)
			for _, o := range child.ChildElements() {
				if o.Tag != "override" {
					log.Warn("Unexpected tag in font, ignoring", zap.String("parent", child.Tag), zap.String("tag", o.Tag))
					continue
				}
				ov, err := parseOverride(o)
				if err != nil {
					return def, fmt.Errorf("style %q: %w", def.Name, err)
				}
				def.Overrides = append(def.Overrides, ov)
			}
		case "paragraph":
			p, err := parseParagraph(child, log)
			if err != nil {
				return def, fmt.Errorf("style %q: %w", def.Name, err)
			}
			def.Paragraph = p
		default:
			log.Warn("Unexpected tag in tag, ignoring", zap.String("parent", el.Tag), zap.String("tag", child.Tag))
		}
	}
	return def, nil
}

func parseFontAttrs(el *etree.Element) FontDef {
	return FontDef{
		Family:         el.SelectAttrValue("family", ""),
		Size:           el.SelectAttrValue("size", ""),
		Bold:           el.SelectAttrValue("bold", ""),
		Italic:         el.SelectAttrValue("italic", ""),
		ForeColor:      el.SelectAttrValue("color", ""),
		BackColor:      el.SelectAttrValue("background", ""),
		Underline:      el.SelectAttrValue("underline", ""),
		UnderlineColor: el.SelectAttrValue("underlineColor", ""),
		Offset:         el.SelectAttrValue("offset", ""),
		SuperSub:       el.SelectAttrValue("superSub", ""),
		Features:       el.SelectAttrValue("features", ""),
	}
}

func parseOverride(el *etree.Element) (OverrideDef, error) {
	ov := OverrideDef{
		Lang: el.SelectAttrValue("lang", ""),
		Font: parseFontAttrs(el),
	}
	if ws := el.SelectAttrValue("ws", ""); ws != "" {
		n, err := parseInt(ws)
		if err != nil {
			return ov, fmt.Errorf("override ws: %w", err)
		}
		ov.WS = n
	}
	return ov, nil
}

func parseParagraph(el *etree.Element, log *zap.Logger) (ParagraphDef, error) {
	p := ParagraphDef{
		RightToLeft:     el.SelectAttrValue("rtl", ""),
		Alignment:       el.SelectAttrValue("align", ""),
		LineSpacing:     el.SelectAttrValue("lineSpacing", ""),
		SpaceBefore:     el.SelectAttrValue("spaceBefore", ""),
		SpaceAfter:      el.SelectAttrValue("spaceAfter", ""),
		FirstLineIndent: el.SelectAttrValue("firstLineIndent", ""),
		LeadingIndent:   el.SelectAttrValue("leadingIndent", ""),
		TrailingIndent:  el.SelectAttrValue("trailingIndent", ""),
		Border:          el.SelectAttrValue("border", ""),
		BorderColor:     el.SelectAttrValue("borderColor", ""),
	}
	for _, child := range el.ChildElements() {
		if child.Tag != "bullet" {
			log.Warn("Unexpected tag in paragraph, ignoring", zap.String("parent", el.Tag), zap.String("tag", child.Tag))
			continue
		}
		b := &BulletDef{
			Scheme:     child.SelectAttrValue("scheme", ""),
			TextBefore: child.SelectAttrValue("before", ""),
			TextAfter:  child.SelectAttrValue("after", ""),
		}
		if start := child.SelectAttrValue("start", ""); start != "" {
			n, err := parseInt(start)
			if err != nil {
				return p, fmt.Errorf("bullet start: %w", err)
			}
			b.Start = int32(n)
		}
		if f := child.SelectElement("font"); f != nil {
			b.Font = parseFontAttrs(f)
		}
		p.Bullet = b
	}
	return p, nil
}
