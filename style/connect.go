package style

import (
	"slices"

	"go.uber.org/zap"
)

// WithCycleRepair makes ConnectStyles break based-on loops instead of failing:
// the style closing the loop is detached from its base and, for paragraph
// styles, becomes a cascade root.
func WithCycleRepair() Option {
	return func(c *Catalog) {
		c.repairCycles = true
	}
}

// ConnectStyles links based-on and next references of all styles and then
// cascades inherited values down the based-on chains and into writing system
// overrides. Broken references are repaired, never reported. The only error
// is *CyclicInheritanceError, unless cycle repair is enabled.
//
// On success the catalog is sealed. Calling ConnectStyles again is a no-op.
func (c *Catalog) ConnectStyles() error {
	if c.connected {
		return nil
	}

	styles := c.Styles()
	for _, s := range styles {
		c.link(s)
	}

	r := &resolver{
		cat:  c,
		done: make(map[*Style]bool, len(styles)),
		busy: make(map[*Style]bool),
	}
	for _, s := range styles {
		if err := r.resolve(s); err != nil {
			c.log.Error("Unable to connect styles", zap.Error(err))
			return err
		}
	}

	c.connected = true
	c.log.Debug("Styles connected", zap.Int("count", len(styles)))
	return nil
}

// link resolves the raw references of s, repairing broken ones, and turns
// paragraph styles without a base into cascade roots.
func (c *Catalog) link(s *Style) {
	s.basedOn = nil
	switch name := s.BasedOnName; {
	case name == "":
	case name == s.name:
		c.repair(s, "based-on", name, "")
		s.BasedOnName = ""
	default:
		if base, ok := c.styles[name]; ok && base.kind == s.kind {
			s.basedOn = base
			break
		}
		if normal, ok := c.styles[c.normal]; ok && s.IsParagraph() && normal.IsParagraph() && normal != s {
			c.repair(s, "based-on", name, normal.name)
			s.basedOn = normal
			s.BasedOnName = normal.name
			break
		}
		c.repair(s, "based-on", name, "")
		s.BasedOnName = ""
	}
	if s.basedOn == nil {
		c.makeRoot(s)
	}

	s.next = nil
	if !s.IsParagraph() {
		if s.NextName != "" {
			c.log.Debug("Ignoring next style of character style", zap.String("style", s.name), zap.String("next", s.NextName))
		}
		c.tracer.TraceLink(s)
		return
	}
	s.next = s
	if name := s.NextName; name != "" {
		if next, ok := c.styles[name]; ok && next.IsParagraph() {
			s.next = next
		} else {
			c.repair(s, "next", name, s.name)
			s.NextName = s.name
		}
	}
	c.tracer.TraceLink(s)
}

// makeRoot forces all cells of a paragraph style into the explicit state.
// Character styles without a base keep their unset cells.
func (c *Catalog) makeRoot(s *Style) {
	if !s.IsParagraph() {
		return
	}
	s.DefaultFont.SetAllDefaults()
	s.Paragraph.SetAllDefaults()
}

func (c *Catalog) repair(s *Style, ref, from, to string) {
	c.log.Debug("Repairing style reference",
		zap.String("style", s.name),
		zap.String("ref", ref),
		zap.String("from", from),
		zap.String("to", to))
	c.tracer.TraceRepair(s.name, ref, from, to)
}

type resolver struct {
	cat   *Catalog
	done  map[*Style]bool
	busy  map[*Style]bool
	stack []string
}

// resolve cascades values into s after resolving its base.
func (r *resolver) resolve(s *Style) error {
	if r.done[s] {
		return nil
	}
	r.busy[s] = true
	r.stack = append(r.stack, s.name)
	defer func() {
		delete(r.busy, s)
		r.stack = r.stack[:len(r.stack)-1]
	}()

	base := s.basedOn
	if base != nil && r.busy[base] {
		chain := append(slices.Clone(r.stack[slices.Index(r.stack, base.name):]), base.name)
		r.cat.tracer.TraceCycle(chain)
		if !r.cat.repairCycles {
			return &CyclicInheritanceError{Chain: chain}
		}
		r.cat.log.Warn("Breaking cyclic style inheritance", zap.Strings("chain", chain))
		r.cat.repair(s, "based-on", s.BasedOnName, "")
		s.basedOn, s.BasedOnName, base = nil, "", nil
		r.cat.makeRoot(s)
	}

	if base != nil && base.name != s.name {
		if err := r.resolve(base); err != nil {
			return err
		}
		s.DefaultFont.InheritValues(&base.DefaultFont)
		if s.IsParagraph() {
			s.Paragraph.InheritValues(&base.Paragraph)
		}
	}

	// overrides refine the style's own font first
	for _, ws := range s.WritingSystems() {
		s.Overrides[ws].InheritValues(&s.DefaultFont)
	}
	// and then the base style's override for the same writing system
	if base != nil && base.name != s.name {
		for _, ws := range s.WritingSystems() {
			if bo, ok := base.Overrides[ws]; ok {
				s.Overrides[ws].InheritValues(bo)
			}
		}
	}

	r.done[s] = true
	r.cat.tracer.TraceInheritance(s)
	return nil
}
