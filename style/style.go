package style

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"stylecascade/font"
)

// Kind separates paragraph styles from character styles. Inheritance and next
// style links never cross kinds.
type Kind int

const (
	KindParagraph Kind = iota
	KindCharacter
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindCharacter:
		return "character"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts "paragraph"/"para"/"p" and "character"/"char"/"c".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "paragraph", "para", "p", "":
		return KindParagraph, nil
	case "character", "char", "c":
		return KindCharacter, nil
	}
	return KindParagraph, fmt.Errorf("unknown style kind %q", s)
}

// Style is a single named style. Loaders fill in the exported fields, the
// owning Catalog links references and cascades values in ConnectStyles.
type Style struct {
	name   string
	kind   Kind
	number int

	// BasedOnName and NextName hold the raw references, empty meaning none.
	// ConnectStyles may rewrite them when it repairs a broken reference.
	BasedOnName string
	NextName    string

	DefaultFont font.Properties
	// Overrides refine DefaultFont for individual writing systems.
	Overrides map[int]*font.Properties
	// Paragraph is ignored for character styles.
	Paragraph Paragraph

	Guid      uuid.UUID
	Usage     string
	UserLevel int

	basedOn *Style
	next    *Style
	catalog *Catalog
}

// New returns a style with nothing set explicitly.
func New(name string, kind Kind) *Style {
	return &Style{
		name:        name,
		kind:        kind,
		DefaultFont: font.NewProperties(),
	}
}

func (s *Style) Name() string { return s.name }
func (s *Style) Kind() Kind   { return s.kind }

// Number is the sequence number assigned on insertion into a catalog, zero
// for styles not added yet.
func (s *Style) Number() int { return s.number }

// BasedOn returns the style values are inherited from, nil for cascade roots
// and before ConnectStyles.
func (s *Style) BasedOn() *Style { return s.basedOn }

// Next returns the style applied to the paragraph following this one. It is
// never nil for connected paragraph styles and always nil for character ones.
func (s *Style) Next() *Style { return s.next }

// Catalog returns the owning catalog, nil before insertion.
func (s *Style) Catalog() *Catalog { return s.catalog }

// IsParagraph is shorthand for Kind() == KindParagraph.
func (s *Style) IsParagraph() bool { return s.kind == KindParagraph }

// Override returns the override bundle for writing system ws, creating an
// empty one when missing.
func (s *Style) Override(ws int) *font.Properties {
	if s.Overrides == nil {
		s.Overrides = make(map[int]*font.Properties)
	}
	if p, ok := s.Overrides[ws]; ok {
		return p
	}
	p := font.NewProperties()
	s.Overrides[ws] = &p
	return &p
}

// OverrideFor returns the override bundle for ws if the style has one.
func (s *Style) OverrideFor(ws int) (*font.Properties, bool) {
	p, ok := s.Overrides[ws]
	return p, ok
}

// WritingSystems returns the ids of all overrides in ascending order.
func (s *Style) WritingSystems() []int {
	ids := make([]int, 0, len(s.Overrides))
	for ws := range s.Overrides {
		ids = append(ids, ws)
	}
	slices.Sort(ids)
	return ids
}

func (s *Style) String() string {
	return fmt.Sprintf("%s style %q (#%d)", s.kind, s.name, s.number)
}
