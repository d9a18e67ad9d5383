package style

import "fmt"

// Prop identifies a property written to a PropertySink.
type Prop int

const (
	PropRightToLeft Prop = iota + 1
	PropAlign
	PropLineHeight
	PropSpaceBefore
	PropSpaceAfter
	PropFirstIndent
	PropLeadingIndent
	PropTrailingIndent
	PropBorderLeading
	PropBorderTrailing
	PropBorderTop
	PropBorderBottom
	PropBorderColor
	PropBulletScheme
	PropBulletStart
	PropBulletTextBefore
	PropBulletTextAfter
	PropBulletFontInfo
	PropFontInfo
)

var propNames = [...]string{
	PropRightToLeft:      "right-to-left",
	PropAlign:            "align",
	PropLineHeight:       "line-height",
	PropSpaceBefore:      "space-before",
	PropSpaceAfter:       "space-after",
	PropFirstIndent:      "first-indent",
	PropLeadingIndent:    "leading-indent",
	PropTrailingIndent:   "trailing-indent",
	PropBorderLeading:    "border-leading",
	PropBorderTrailing:   "border-trailing",
	PropBorderTop:        "border-top",
	PropBorderBottom:     "border-bottom",
	PropBorderColor:      "border-color",
	PropBulletScheme:     "bullet-scheme",
	PropBulletStart:      "bullet-start",
	PropBulletTextBefore: "bullet-text-before",
	PropBulletTextAfter:  "bullet-text-after",
	PropBulletFontInfo:   "bullet-font-info",
	PropFontInfo:         "font-info",
}

func (p Prop) String() string {
	if p >= PropRightToLeft && p <= PropFontInfo {
		return propNames[p]
	}
	return fmt.Sprintf("Prop(%d)", int(p))
}

// Variation qualifies how an integer property value is to be read.
type Variation int

const (
	VarDefault Variation = iota
	VarMilliPoint
	VarRelative
	VarEnum
)

// PropertySink receives style properties, typically a text properties
// builder of a layout engine.
type PropertySink interface {
	SetIntProperty(tag Prop, variation Variation, value int32)
	SetStringProperty(tag Prop, value string)
}

// IntProperty is an integer value stored in a PropertyBag.
type IntProperty struct {
	Variation Variation
	Value     int32
}

// PropertyBag is an in-memory PropertySink. Later writes replace earlier ones.
type PropertyBag struct {
	Ints    map[Prop]IntProperty
	Strings map[Prop]string
}

func NewPropertyBag() *PropertyBag {
	return &PropertyBag{
		Ints:    make(map[Prop]IntProperty),
		Strings: make(map[Prop]string),
	}
}

func (b *PropertyBag) SetIntProperty(tag Prop, variation Variation, value int32) {
	b.Ints[tag] = IntProperty{Variation: variation, Value: value}
}

func (b *PropertyBag) SetStringProperty(tag Prop, value string) {
	b.Strings[tag] = value
}

// Int returns the stored integer property.
func (b *PropertyBag) Int(tag Prop) (IntProperty, bool) {
	v, ok := b.Ints[tag]
	return v, ok
}

// String returns the stored string property.
func (b *PropertyBag) String(tag Prop) (string, bool) {
	v, ok := b.Strings[tag]
	return v, ok
}

// Len returns the number of stored properties.
func (b *PropertyBag) Len() int {
	return len(b.Ints) + len(b.Strings)
}
