package font

import (
	"encoding/binary"
	"image/color"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Tag identifies the property stored in a blob record.
//
// Blob layout, in 16-bit little-endian units:
//
//	integer record: tag, low 16 bits, high 16 bits
//	string record:  tag, UTF-16 units..., 0
//
// There is no header, no length prefix and no checksum. Records follow the
// field order of Properties and only explicit cells are written.
type Tag uint16

const (
	TagBackColor Tag = iota + 1
	TagBold
	TagForeColor
	TagSize
	TagItalic
	TagUnderline
	TagUnderlineColor
	TagOffset
	TagSuperSub
	TagFamily
	TagFeatures
)

const tagCount = int(TagFeatures)

var tagNames = [...]string{
	TagBackColor:      "back-color",
	TagBold:           "bold",
	TagForeColor:      "fore-color",
	TagSize:           "size",
	TagItalic:         "italic",
	TagUnderline:      "underline",
	TagUnderlineColor: "underline-color",
	TagOffset:         "offset",
	TagSuperSub:       "super-sub",
	TagFamily:         "family",
	TagFeatures:       "features",
}

func (t Tag) String() string {
	if t >= TagBackColor && t <= TagFeatures {
		return tagNames[t]
	}
	return "unknown"
}

// IsString reports whether records with this tag carry a string payload.
func (t Tag) IsString() bool {
	return t == TagFamily || t == TagFeatures
}

const unitSize = 2

// transparentBGR is the packed value standing for "no color".
const transparentBGR uint32 = 0xC0000000

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Encode serializes the explicit cells of p. A bundle without explicit cells
// encodes to nil.
//
// Strings are NUL terminated in the blob, so NUL characters inside family and
// feature strings are dropped.
func Encode(p Properties) []byte {
	var out []byte
	if p.BackColor.IsExplicit() {
		out = appendInt(out, TagBackColor, ColorToBGR(p.BackColor.Value()))
	}
	if p.Bold.IsExplicit() {
		out = appendInt(out, TagBold, boolToUint(p.Bold.Value()))
	}
	if p.ForeColor.IsExplicit() {
		out = appendInt(out, TagForeColor, ColorToBGR(p.ForeColor.Value()))
	}
	if p.Size.IsExplicit() {
		out = appendInt(out, TagSize, uint32(p.Size.Value()))
	}
	if p.Italic.IsExplicit() {
		out = appendInt(out, TagItalic, boolToUint(p.Italic.Value()))
	}
	if p.Underline.IsExplicit() {
		out = appendInt(out, TagUnderline, uint32(p.Underline.Value()))
	}
	if p.UnderlineColor.IsExplicit() {
		out = appendInt(out, TagUnderlineColor, ColorToBGR(p.UnderlineColor.Value()))
	}
	if p.Offset.IsExplicit() {
		out = appendInt(out, TagOffset, uint32(p.Offset.Value()))
	}
	if p.SuperSub.IsExplicit() {
		out = appendInt(out, TagSuperSub, uint32(p.SuperSub.Value()))
	}
	if p.Family.IsExplicit() {
		out = appendString(out, TagFamily, p.Family.Value())
	}
	if p.Features.IsExplicit() {
		out = appendString(out, TagFeatures, p.Features.Value())
	}
	return out
}

// Decode restores a bundle from a blob produced by Encode. Nil or empty input
// yields defaults with no explicit cell.
//
// Parsing stops after the first string record: anything following it is
// ignored. Parsing also stops silently at the first record that cannot be read
// completely or carries an unknown tag.
func Decode(data []byte) Properties {
	p, _ := DecodeN(data)
	return p
}

// DecodeN is Decode which also returns the number of bytes consumed.
func DecodeN(data []byte) (Properties, int) {
	p := NewProperties()
	pos := 0
	for pos+unitSize <= len(data) {
		tag := Tag(binary.LittleEndian.Uint16(data[pos:]))
		if tag < TagBackColor || tag > TagFeatures {
			break
		}
		if tag.IsString() {
			s, n, ok := readString(data[pos+unitSize:])
			if !ok {
				break
			}
			if tag == TagFamily {
				p.Family.SetExplicit(s)
			} else {
				p.Features.SetExplicit(s)
			}
			pos += unitSize + n
			break
		}
		if pos+3*unitSize > len(data) {
			break
		}
		low := uint32(binary.LittleEndian.Uint16(data[pos+unitSize:]))
		high := uint32(binary.LittleEndian.Uint16(data[pos+2*unitSize:]))
		p.setInt(tag, low|high<<16)
		pos += 3 * unitSize
	}
	return p, pos
}

func (p *Properties) setInt(tag Tag, v uint32) {
	switch tag {
	case TagBackColor:
		p.BackColor.SetExplicit(BGRToColor(v))
	case TagBold:
		p.Bold.SetExplicit(v == 1)
	case TagForeColor:
		p.ForeColor.SetExplicit(BGRToColor(v))
	case TagSize:
		p.Size.SetExplicit(int32(v))
	case TagItalic:
		p.Italic.SetExplicit(v == 1)
	case TagUnderline:
		p.Underline.SetExplicit(Underline(int32(v)))
	case TagUnderlineColor:
		p.UnderlineColor.SetExplicit(BGRToColor(v))
	case TagOffset:
		p.Offset.SetExplicit(int32(v))
	case TagSuperSub:
		p.SuperSub.SetExplicit(SuperSub(int32(v)))
	}
}

// readString returns the string up to the first NUL unit and the number of
// bytes used including the terminator. An unterminated string is rejected.
func readString(data []byte) (string, int, bool) {
	for i := 0; i+unitSize <= len(data); i += unitSize {
		if binary.LittleEndian.Uint16(data[i:]) != 0 {
			continue
		}
		s, err := utf16le.NewDecoder().Bytes(data[:i])
		if err != nil {
			return "", 0, false
		}
		return string(s), i + unitSize, true
	}
	return "", 0, false
}

func appendInt(out []byte, tag Tag, v uint32) []byte {
	out = binary.LittleEndian.AppendUint16(out, uint16(tag))
	out = binary.LittleEndian.AppendUint16(out, uint16(v&0xffff))
	return binary.LittleEndian.AppendUint16(out, uint16(v>>16))
}

func appendString(out []byte, tag Tag, s string) []byte {
	s = strings.ReplaceAll(strings.ToValidUTF8(s, "\uFFFD"), "\x00", "")
	units, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return out
	}
	out = binary.LittleEndian.AppendUint16(out, uint16(tag))
	out = append(out, units...)
	return binary.LittleEndian.AppendUint16(out, 0)
}

func boolToUint(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// ColorToBGR packs c the way colors are stored in blobs: red in the low byte,
// blue in the third. Fully transparent colors map to a reserved value. Any
// other alpha is dropped, so only A == 0 and A == 0xff survive BGRToColor.
func ColorToBGR(c color.RGBA) uint32 {
	if c.A == 0 {
		return transparentBGR
	}
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16
}

// BGRToColor is the inverse of ColorToBGR.
func BGRToColor(v uint32) color.RGBA {
	if v == transparentBGR {
		return Transparent
	}
	return color.RGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: 0xff}
}
