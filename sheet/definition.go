// Package sheet loads style sheets from YAML, XML and CSS files and builds
// style catalogs from them.
package sheet

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylecascade/font"
	"stylecascade/inherit"
	"stylecascade/style"
	"stylecascade/wsys"
)

// Definition is the raw description of one style as found in a style sheet.
// Values are kept as written and converted by Build.
type Definition struct {
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind,omitempty"`
	BasedOn   string        `yaml:"based_on,omitempty"`
	Next      string        `yaml:"next,omitempty"`
	Guid      string        `yaml:"guid,omitempty"`
	Usage     string        `yaml:"usage,omitempty"`
	UserLevel int           `yaml:"user_level,omitempty"`
	Font      FontDef       `yaml:"font,omitempty"`
	Overrides []OverrideDef `yaml:"overrides,omitempty"`
	Paragraph ParagraphDef  `yaml:"paragraph,omitempty"`

	// Source locates the definition for error messages.
	Source string `yaml:"-"`
}

// FontDef holds raw font property values. Empty means not set.
type FontDef struct {
	Family         string `yaml:"family,omitempty"`
	Size           string `yaml:"size,omitempty"`
	Bold           string `yaml:"bold,omitempty"`
	Italic         string `yaml:"italic,omitempty"`
	ForeColor      string `yaml:"color,omitempty"`
	BackColor      string `yaml:"background,omitempty"`
	Underline      string `yaml:"underline,omitempty"`
	UnderlineColor string `yaml:"underline_color,omitempty"`
	Offset         string `yaml:"offset,omitempty"`
	SuperSub       string `yaml:"super_sub,omitempty"`
	Features       string `yaml:"features,omitempty"`
}

// OverrideDef refines the font for one writing system, selected either by
// numeric id or by language.
type OverrideDef struct {
	WS   int     `yaml:"ws,omitempty"`
	Lang string  `yaml:"lang,omitempty"`
	Font FontDef `yaml:"font"`
}

// ParagraphDef holds raw paragraph property values. Empty means not set.
type ParagraphDef struct {
	RightToLeft     string     `yaml:"rtl,omitempty"`
	Alignment       string     `yaml:"align,omitempty"`
	LineSpacing     string     `yaml:"line_spacing,omitempty"`
	SpaceBefore     string     `yaml:"space_before,omitempty"`
	SpaceAfter      string     `yaml:"space_after,omitempty"`
	FirstLineIndent string     `yaml:"first_line_indent,omitempty"`
	LeadingIndent   string     `yaml:"leading_indent,omitempty"`
	TrailingIndent  string     `yaml:"trailing_indent,omitempty"`
	Border          string     `yaml:"border,omitempty"`
	BorderColor     string     `yaml:"border_color,omitempty"`
	Bullet          *BulletDef `yaml:"bullet,omitempty"`
}

// BulletDef describes paragraph numbering.
type BulletDef struct {
	Scheme     string  `yaml:"scheme"`
	Start      int32   `yaml:"start,omitempty"`
	TextBefore string  `yaml:"before,omitempty"`
	TextAfter  string  `yaml:"after,omitempty"`
	Font       FontDef `yaml:"font,omitempty"`
}

// Builder turns definitions into a style catalog.
type Builder struct {
	wss  *wsys.Directory
	log  *zap.Logger
	opts []style.Option
}

// NewBuilder creates a builder. wss is used to map override languages to
// writing system ids and may be nil when all overrides use numeric ids.
// Catalog options are passed to style.NewCatalog.
func NewBuilder(wss *wsys.Directory, log *zap.Logger, opts ...style.Option) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{wss: wss, log: log.Named("sheet"), opts: opts}
}

// Build creates a catalog holding every definition which could be converted.
// Problems with individual definitions are collected into the returned
// error, the catalog is returned regardless. It is not connected yet.
func (b *Builder) Build(defs []Definition) (*style.Catalog, error) {
	opts := append([]style.Option{style.WithLogger(b.log)}, b.opts...)
	if b.wss != nil {
		opts = append([]style.Option{style.WithWritingSystems(b.wss)}, opts...)
	}
	cat := style.NewCatalog(opts...)

	var errs error
	for i := range defs {
		s, err := b.convert(&defs[i])
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := cat.Add(s); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", defs[i].location(), err))
		}
	}
	if errs != nil {
		b.log.Warn("Style sheet has problems", zap.Int("count", len(multierr.Errors(errs))))
	}
	return cat, errs
}

func (d *Definition) location() string {
	if d.Source != "" {
		return fmt.Sprintf("style %q (%s)", d.Name, d.Source)
	}
	return fmt.Sprintf("style %q", d.Name)
}

func (b *Builder) convert(d *Definition) (*style.Style, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, fmt.Errorf("%s: style without name", d.location())
	}
	kind, err := style.ParseKind(strings.ToLower(strings.TrimSpace(d.Kind)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.location(), err)
	}

	s := style.New(name, kind)
	s.BasedOnName = strings.TrimSpace(d.BasedOn)
	s.NextName = strings.TrimSpace(d.Next)
	s.Usage = d.Usage
	s.UserLevel = d.UserLevel

	var errs error
	if d.Guid != "" {
		if s.Guid, err = uuid.Parse(d.Guid); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("guid: %w", err))
		}
	} else {
		s.Guid = uuid.NewSHA1(uuid.NameSpaceOID, []byte("style:"+name))
	}

	errs = multierr.Append(errs, applyFont(&s.DefaultFont, &d.Font))

	for _, o := range d.Overrides {
		ws, err := b.writingSystem(o)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		errs = multierr.Append(errs, applyFont(s.Override(ws), &o.Font))
	}

	if kind == style.KindParagraph {
		errs = multierr.Append(errs, applyParagraph(&s.Paragraph, &d.Paragraph))
	} else if d.Paragraph != (ParagraphDef{}) {
		b.log.Debug("Ignoring paragraph properties of character style", zap.String("style", name))
	}

	if errs != nil {
		return nil, fmt.Errorf("%s: %w", d.location(), errs)
	}
	return s, nil
}

func (b *Builder) writingSystem(o OverrideDef) (int, error) {
	if o.Lang == "" {
		if o.WS <= 0 {
			return 0, fmt.Errorf("override without writing system")
		}
		return o.WS, nil
	}
	if b.wss == nil {
		return 0, fmt.Errorf("override for %q: no writing systems configured", o.Lang)
	}
	ws, ok := b.wss.ID(o.Lang)
	if !ok {
		return 0, fmt.Errorf("override for %q: unknown writing system", o.Lang)
	}
	return ws, nil
}

// applyFont sets every value present in def explicitly on p.
func applyFont(p *font.Properties, def *FontDef) error {
	var errs error
	set := func(raw string, apply func(string) error) {
		if raw == "" {
			return
		}
		errs = multierr.Append(errs, apply(raw))
	}
	setColor := func(raw, name string, cell *inherit.Value[color.RGBA]) {
		set(raw, func(v string) error {
			c, err := ParseColor(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			cell.SetExplicit(c)
			return nil
		})
	}

	set(def.Family, func(v string) error {
		if strings.ContainsRune(v, 0) {
			return errors.New("family: NUL character is not allowed")
		}
		p.Family.SetExplicit(strings.TrimSpace(v))
		return nil
	})
	set(def.Size, func(v string) error {
		l, err := ParseLength(v)
		if err != nil {
			return fmt.Errorf("size: %w", err)
		}
		p.Size.SetExplicit(l)
		return nil
	})
	set(def.Bold, func(v string) error {
		b, err := ParseFontWeight(v)
		if err != nil {
			return fmt.Errorf("bold: %w", err)
		}
		p.Bold.SetExplicit(b)
		return nil
	})
	set(def.Italic, func(v string) error {
		b, err := ParseFontStyle(v)
		if err != nil {
			return fmt.Errorf("italic: %w", err)
		}
		p.Italic.SetExplicit(b)
		return nil
	})
	setColor(def.ForeColor, "color", &p.ForeColor)
	setColor(def.BackColor, "background", &p.BackColor)
	setColor(def.UnderlineColor, "underline color", &p.UnderlineColor)
	set(def.Underline, func(v string) error {
		u, err := ParseUnderline(v)
		if err != nil {
			return fmt.Errorf("underline: %w", err)
		}
		p.Underline.SetExplicit(u)
		return nil
	})
	set(def.Offset, func(v string) error {
		l, err := ParseLength(v)
		if err != nil {
			return fmt.Errorf("offset: %w", err)
		}
		p.Offset.SetExplicit(l)
		return nil
	})
	set(def.SuperSub, func(v string) error {
		s, err := font.ParseSuperSub(v)
		if err != nil {
			return fmt.Errorf("super/sub: %w", err)
		}
		p.SuperSub.SetExplicit(s)
		return nil
	})
	set(def.Features, func(v string) error {
		if strings.ContainsRune(v, 0) {
			return errors.New("features: NUL character is not allowed")
		}
		v = strings.TrimSpace(v)
		if v == "normal" {
			v = ""
		}
		p.Features.SetExplicit(v)
		return nil
	})
	return errs
}

// applyParagraph sets every value present in def explicitly on p.
func applyParagraph(p *style.Paragraph, def *ParagraphDef) error {
	var errs error
	set := func(raw, name string, apply func(string) error) {
		if raw == "" {
			return
		}
		if err := apply(raw); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	length := func(raw, name string, cell *inherit.Value[int32]) {
		set(raw, name, func(v string) error {
			l, err := ParseLength(v)
			if err == nil {
				cell.SetExplicit(l)
			}
			return err
		})
	}

	set(def.RightToLeft, "rtl", func(v string) error {
		b, err := ParseBool(v)
		if err == nil {
			p.RightToLeft.SetExplicit(b)
		}
		return err
	})
	set(def.Alignment, "align", func(v string) error {
		a, err := style.ParseAlignment(v)
		if err == nil {
			p.Alignment.SetExplicit(a)
		}
		return err
	})
	set(def.LineSpacing, "line spacing", func(v string) error {
		h, err := ParseLineHeight(v)
		if err == nil {
			p.LineSpacing.SetExplicit(h)
		}
		return err
	})
	length(def.SpaceBefore, "space before", &p.SpaceBefore)
	length(def.SpaceAfter, "space after", &p.SpaceAfter)
	length(def.FirstLineIndent, "first line indent", &p.FirstLineIndent)
	length(def.LeadingIndent, "leading indent", &p.LeadingIndent)
	length(def.TrailingIndent, "trailing indent", &p.TrailingIndent)
	set(def.Border, "border", func(v string) error {
		b, err := ParseBorder(v)
		if err == nil {
			p.Border.SetExplicit(b)
		}
		return err
	})
	set(def.BorderColor, "border color", func(v string) error {
		c, err := ParseColor(v)
		if err == nil {
			p.BorderColor.SetExplicit(c)
		}
		return err
	})

	if def.Bullet != nil {
		scheme, err := style.ParseBulletScheme(def.Bullet.Scheme)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("bullet: %w", err))
		} else {
			info := style.BulletInfo{
				Scheme:     scheme,
				Start:      def.Bullet.Start,
				TextBefore: def.Bullet.TextBefore,
				TextAfter:  def.Bullet.TextAfter,
				Font:       font.NewProperties(),
			}
			if scheme.IsNumbered() && info.Start == 0 {
				info.Start = 1
			}
			if err := applyFont(&info.Font, &def.Bullet.Font); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("bullet font: %w", err))
			}
			p.Bullet.SetExplicit(info)
		}
	}
	return errs
}

// parseInt is shared by the XML and CSS loaders for integer attributes.
func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
