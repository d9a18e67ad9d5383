// Package wsys maps the numeric writing system ids used by style overrides to
// languages and their default fonts.
package wsys

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// System describes a single writing system.
type System struct {
	ID          int
	Tag         language.Tag
	DefaultFont string
}

// Name returns the English name of the writing system language.
func (s *System) Name() string {
	return display.English.Tags().Name(s.Tag)
}

// Directory is a read-only lookup of writing systems once built.
type Directory struct {
	byID     map[int]*System
	ids      []int
	matcher  language.Matcher
	fallback string
	log      *zap.Logger
}

// New creates an empty directory. fallback is reported as default font of
// writing systems which do not have their own, it may be empty.
func New(fallback string, log *zap.Logger) *Directory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Directory{
		byID:     make(map[int]*System),
		fallback: fallback,
		log:      log.Named("wsys"),
	}
}

// Add registers writing system id for the language lang, given either as
// BCP 47 tag or as the language's own name.
func (d *Directory) Add(id int, lang, defaultFont string) error {
	if _, exists := d.byID[id]; exists {
		return fmt.Errorf("duplicate writing system id %d", id)
	}
	tag, err := ParseTag(lang)
	if err != nil {
		return fmt.Errorf("writing system %d: %w", id, err)
	}
	d.byID[id] = &System{ID: id, Tag: tag, DefaultFont: strings.TrimSpace(defaultFont)}
	d.ids = append(d.ids, id)
	slices.Sort(d.ids)
	tags := make([]language.Tag, 0, len(d.ids))
	for _, i := range d.ids {
		tags = append(tags, d.byID[i].Tag)
	}
	d.matcher = language.NewMatcher(tags)
	return nil
}

// ParseTag parses a BCP 47 tag. As a last resort the input is compared with
// the self names of all supported languages ("Deutsch", "русский").
func ParseTag(in string) (language.Tag, error) {
	lang := strings.TrimSpace(in)
	if lang == "" {
		return language.Und, fmt.Errorf("empty language")
	}
	tag, err := language.Parse(lang)
	if err == nil {
		return tag, nil
	}
	for _, supportedTag := range display.Supported.Tags() {
		if strings.EqualFold(display.Self.Name(supportedTag), lang) {
			return supportedTag, nil
		}
	}
	return language.Und, fmt.Errorf("unable to parse language %q: %w", lang, err)
}

// Get returns the writing system with the given id.
func (d *Directory) Get(ws int) (*System, bool) {
	s, ok := d.byID[ws]
	return s, ok
}

// IDs returns all registered ids in ascending order.
func (d *Directory) IDs() []int {
	return slices.Clone(d.ids)
}

func (d *Directory) Len() int {
	return len(d.ids)
}

// DefaultFontFamily returns the default font family of writing system ws,
// the fallback font for writing systems without one and for unknown ids.
func (d *Directory) DefaultFontFamily(ws int) string {
	if s, ok := d.byID[ws]; ok && s.DefaultFont != "" {
		return s.DefaultFont
	}
	if _, ok := d.byID[ws]; !ok {
		d.log.Debug("Unknown writing system", zap.Int("ws", ws))
	}
	return d.fallback
}

// ID finds the writing system best matching lang.
func (d *Directory) ID(lang string) (int, bool) {
	if len(d.ids) == 0 {
		return 0, false
	}
	tag, err := ParseTag(lang)
	if err != nil {
		d.log.Debug("Unable to look up writing system", zap.String("lang", lang), zap.Error(err))
		return 0, false
	}
	for _, id := range d.ids {
		if d.byID[id].Tag == tag {
			return id, true
		}
	}
	_, index, confidence := d.matcher.Match(tag)
	if confidence == language.No {
		return 0, false
	}
	return d.ids[index], true
}
