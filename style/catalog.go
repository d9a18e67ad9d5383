// Package style implements named paragraph and character styles, the catalog
// owning them and the cascade which resolves inherited values.
package style

import (
	"fmt"

	"go.uber.org/zap"

	"stylecascade/font"
	"stylecascade/inherit"
)

// DefaultNormalStyle is the name paragraph styles fall back to when their
// based-on reference is broken.
const DefaultNormalStyle = "Normal"

// WritingSystems provides per writing system information needed to resolve
// magic font names.
type WritingSystems interface {
	DefaultFontFamily(ws int) string
}

// Catalog owns an ordered set of uniquely named styles.
//
// A catalog is filled with Add and then connected once with ConnectStyles.
// It is not safe for concurrent use while being built. Once connected it is
// sealed and may be read from several goroutines.
type Catalog struct {
	styles map[string]*Style
	order  []string // Preserve insertion order
	last   int      // last assigned style number

	normal    string
	wss       WritingSystems
	log       *zap.Logger
	tracer    *Tracer
	connected bool

	repairCycles bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithNormalStyle sets the fallback style name used when repairing paragraph
// styles with unknown based-on references.
func WithNormalStyle(name string) Option {
	return func(c *Catalog) {
		c.normal = name
	}
}

// WithWritingSystems sets the directory used by ResolveMagicFontName.
func WithWritingSystems(wss WritingSystems) Option {
	return func(c *Catalog) {
		c.wss = wss
	}
}

// WithLogger sets the logger for repairs and magic name misuse. Nil keeps the
// no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Catalog) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTracer makes the catalog record its work.
func WithTracer(t *Tracer) Option {
	return func(c *Catalog) {
		c.tracer = t
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		styles: make(map[string]*Style),
		normal: DefaultNormalStyle,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("catalog")
	return c
}

// Add inserts s, assigning the next style number. Styles are owned by the
// catalog from this point on.
func (c *Catalog) Add(s *Style) error {
	if c.connected {
		return ErrCatalogSealed
	}
	if s.catalog != nil {
		return fmt.Errorf("style %q: %w", s.name, ErrStyleOwned)
	}
	if _, exists := c.styles[s.name]; exists {
		return &DuplicateStyleError{Name: s.name}
	}
	c.last++
	s.number = c.last
	s.catalog = c
	c.styles[s.name] = s
	c.order = append(c.order, s.name)
	c.tracer.TraceRegister(s)
	return nil
}

// Get returns the named style or *UnknownStyleError.
func (c *Catalog) Get(name string) (*Style, error) {
	if s, ok := c.styles[name]; ok {
		return s, nil
	}
	return nil, &UnknownStyleError{Name: name}
}

// Lookup returns the named style if present.
func (c *Catalog) Lookup(name string) (*Style, bool) {
	s, ok := c.styles[name]
	return s, ok
}

// Names returns style names in insertion order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Styles returns the styles in insertion order.
func (c *Catalog) Styles() []*Style {
	out := make([]*Style, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.styles[name])
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func (c *Catalog) NormalStyleName() string {
	return c.normal
}

// Connected reports whether ConnectStyles completed successfully.
func (c *Catalog) Connected() bool {
	return c.connected
}

func (c *Catalog) Tracer() *Tracer {
	return c.tracer
}

// ResolveMagicFontName maps font.DefaultFontName to the default font family
// of writing system ws. Passing any other name is a programming error: it is
// reported with DPanic and the name is returned unchanged.
func (c *Catalog) ResolveMagicFontName(name string, ws int) string {
	if name != font.DefaultFontName {
		c.log.DPanic("Not a magic font name", zap.String("name", name), zap.Int("ws", ws))
		return name
	}
	if c.wss == nil {
		c.log.Warn("Unable to resolve default font, no writing systems configured", zap.Int("ws", ws))
		return name
	}
	family := c.wss.DefaultFontFamily(ws)
	if family == "" {
		c.log.Warn("Writing system has no default font", zap.Int("ws", ws))
		return name
	}
	return family
}

// ResolvedFont returns the font of s for writing system ws: the override if
// the style has one and the default font otherwise, with a magic family name
// replaced by the real one.
func (c *Catalog) ResolvedFont(s *Style, ws int) font.Properties {
	p := s.DefaultFont.Clone()
	if o, ok := s.OverrideFor(ws); ok {
		p = o.Clone()
	}
	if p.Family.Value() == font.DefaultFontName {
		family := c.ResolveMagicFontName(font.DefaultFontName, ws)
		if p.Family.IsExplicit() {
			p.Family.SetExplicit(family)
		} else {
			p.Family = inherit.Inherited(family)
		}
	}
	return p
}
