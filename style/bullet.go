package style

import (
	"fmt"
	"strconv"
	"strings"

	"stylecascade/font"
)

// BulletScheme selects paragraph numbering. Values 10..99 are numbered
// schemes, values 100..199 are bullet characters. Numbered schemes without a
// name of their own are spelled "numbered<value>".
type BulletScheme int32

const (
	SchemeNone BulletScheme = 0

	SchemeArabic      BulletScheme = 10
	SchemeRomanUpper  BulletScheme = 11
	SchemeRomanLower  BulletScheme = 12
	SchemeLetterUpper BulletScheme = 13
	SchemeLetterLower BulletScheme = 14
	SchemeArabic01    BulletScheme = 15

	SchemeBullet BulletScheme = 100

	schemeNumberedFirst = 10
	schemeNumberedLast  = 99
	schemeBulletLast    = 199
)

var numberedNames = map[BulletScheme]string{
	SchemeArabic:      "arabic",
	SchemeRomanUpper:  "roman-upper",
	SchemeRomanLower:  "roman-lower",
	SchemeLetterUpper: "letter-upper",
	SchemeLetterLower: "letter-lower",
	SchemeArabic01:    "arabic01",
}

// IsNumbered reports whether s produces numbers.
func (s BulletScheme) IsNumbered() bool {
	return s >= schemeNumberedFirst && s <= schemeNumberedLast
}

// IsBullet reports whether s produces a bullet character.
func (s BulletScheme) IsBullet() bool {
	return s >= SchemeBullet && s <= schemeBulletLast
}

func (s BulletScheme) String() string {
	switch {
	case s == SchemeNone:
		return "none"
	case s.IsBullet():
		return fmt.Sprintf("bullet%d", int32(s-SchemeBullet))
	}
	if n, ok := numberedNames[s]; ok {
		return n
	}
	if s.IsNumbered() {
		return fmt.Sprintf("numbered%d", int32(s))
	}
	return fmt.Sprintf("BulletScheme(%d)", int32(s))
}

// ParseBulletScheme converts a name as produced by BulletScheme.String back.
func ParseBulletScheme(s string) (BulletScheme, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "none" || s == "" {
		return SchemeNone, nil
	}
	if rest, ok := strings.CutPrefix(s, "bullet"); ok {
		n := 0
		if rest != "" {
			var err error
			if n, err = strconv.Atoi(rest); err != nil || n < 0 || n > schemeBulletLast-int(SchemeBullet) {
				return SchemeNone, fmt.Errorf("unknown bullet scheme %q", s)
			}
		}
		return SchemeBullet + BulletScheme(n), nil
	}
	if rest, ok := strings.CutPrefix(s, "numbered"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || !BulletScheme(n).IsNumbered() {
			return SchemeNone, fmt.Errorf("unknown bullet scheme %q", s)
		}
		return BulletScheme(n), nil
	}
	for k, v := range numberedNames {
		if v == s {
			return k, nil
		}
	}
	return SchemeNone, fmt.Errorf("unknown bullet scheme %q", s)
}

// BulletInfo describes paragraph numbering. It is a plain value, copies do
// not share anything.
type BulletInfo struct {
	Scheme     BulletScheme
	Start      int32
	TextBefore string
	TextAfter  string
	Font       font.Properties
}

// Emit writes the numbering properties into sink. What gets written depends
// on the scheme: no numbering clears everything and writes the (-1, -1) start
// sentinel, numbered schemes write start, surrounding text and font, bullet
// schemes only the font.
func (b BulletInfo) Emit(sink PropertySink) {
	sink.SetIntProperty(PropBulletScheme, VarEnum, int32(b.Scheme))
	switch {
	case b.Scheme.IsNumbered():
		sink.SetIntProperty(PropBulletStart, VarDefault, b.Start)
		sink.SetStringProperty(PropBulletTextBefore, b.TextBefore)
		sink.SetStringProperty(PropBulletTextAfter, b.TextAfter)
		sink.SetStringProperty(PropBulletFontInfo, string(font.Encode(b.Font)))
	case b.Scheme.IsBullet():
		sink.SetStringProperty(PropBulletFontInfo, string(font.Encode(b.Font)))
	default:
		sink.SetIntProperty(PropBulletStart, -1, -1)
		sink.SetStringProperty(PropBulletTextBefore, "")
		sink.SetStringProperty(PropBulletTextAfter, "")
		sink.SetStringProperty(PropBulletFontInfo, "")
	}
}
