package font

import (
	"bytes"
	"image/color"
	"testing"
)

func TestEncodeEmpty(t *testing.T) {
	if b := Encode(NewProperties()); len(b) != 0 {
		t.Errorf("Encode(all inherited) = % x, want empty", b)
	}
	var zero Properties
	if b := Encode(zero); len(b) != 0 {
		t.Errorf("Encode(zero) = % x, want empty", b)
	}
}

func TestEncodeLayout(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *Properties)
		want  []byte
	}{
		{
			name:  "bold",
			setup: func(p *Properties) { p.Bold.SetExplicit(true) },
			want:  []byte{0x02, 0x00, 0x01, 0x00, 0x00, 0x00},
		},
		{
			name:  "size splits low and high word",
			setup: func(p *Properties) { p.Size.SetExplicit(0x00012345) },
			want:  []byte{0x04, 0x00, 0x45, 0x23, 0x01, 0x00},
		},
		{
			name:  "negative offset",
			setup: func(p *Properties) { p.Offset.SetExplicit(-1) },
			want:  []byte{0x08, 0x00, 0xff, 0xff, 0xff, 0xff},
		},
		{
			name:  "fore color is packed as BGR",
			setup: func(p *Properties) { p.ForeColor.SetExplicit(color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}) },
			want:  []byte{0x03, 0x00, 0x11, 0x22, 0x33, 0x00},
		},
		{
			name:  "transparent back color",
			setup: func(p *Properties) { p.BackColor.SetExplicit(Transparent) },
			want:  []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0xc0},
		},
		{
			name:  "family is NUL terminated UTF-16",
			setup: func(p *Properties) { p.Family.SetExplicit("Ab") },
			want:  []byte{0x0a, 0x00, 'A', 0x00, 'b', 0x00, 0x00, 0x00},
		},
		{
			name: "field order, not call order",
			setup: func(p *Properties) {
				p.Italic.SetExplicit(true)
				p.BackColor.SetExplicit(Black)
			},
			want: []byte{
				0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x05, 0x00, 0x01, 0x00, 0x00, 0x00,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProperties()
			tt.setup(&p)
			if got := Encode(p); !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	p := NewProperties()
	p.BackColor.SetExplicit(color.RGBA{R: 0xff, G: 0xff, B: 0xe0, A: 0xff})
	p.Bold.SetExplicit(true)
	p.ForeColor.SetExplicit(color.RGBA{R: 0x80, A: 0xff})
	p.Size.SetExplicit(14000)
	p.Italic.SetExplicit(false)
	p.Underline.SetExplicit(UnderlineDouble)
	p.UnderlineColor.SetExplicit(color.RGBA{B: 0xff, A: 0xff})
	p.Offset.SetExplicit(-3000)
	p.SuperSub.SetExplicit(Subscript)
	p.Features.SetExplicit("+smcp,-liga")

	got := Decode(Encode(p))
	if got != p {
		t.Errorf("Decode(Encode(p)) = %v, want %v", got, p)
	}
}

func TestRoundTripSubsets(t *testing.T) {
	setters := []func(p *Properties){
		func(p *Properties) { p.BackColor.SetExplicit(Black) },
		func(p *Properties) { p.Bold.SetExplicit(true) },
		func(p *Properties) { p.ForeColor.SetExplicit(color.RGBA{G: 0x40, A: 0xff}) },
		func(p *Properties) { p.Size.SetExplicit(8000) },
		func(p *Properties) { p.Italic.SetExplicit(true) },
		func(p *Properties) { p.Underline.SetExplicit(UnderlineSquiggle) },
		func(p *Properties) { p.UnderlineColor.SetExplicit(color.RGBA{R: 1, G: 2, B: 3, A: 0xff}) },
		func(p *Properties) { p.Offset.SetExplicit(2500) },
		func(p *Properties) { p.SuperSub.SetExplicit(Superscript) },
		func(p *Properties) { p.Family.SetExplicit("Charis SIL") },
	}

	// every subset of the integer cells plus optionally one string cell
	for mask := 0; mask < 1<<len(setters); mask++ {
		p := NewProperties()
		for i, set := range setters {
			if mask&(1<<i) != 0 {
				set(&p)
			}
		}
		if got := Decode(Encode(p)); got != p {
			t.Fatalf("mask %#x: Decode(Encode(p)) = %v, want %v", mask, got, p)
		}
	}
}

func TestDecodeStopsAfterFirstString(t *testing.T) {
	p := NewProperties()
	p.Family.SetExplicit("Arial")
	p.Features.SetExplicit("+smcp")
	p.Bold.SetExplicit(true)

	// bold precedes family in field order, so move it behind by hand to
	// model a blob where another property follows the string record
	blob := Encode(p)
	boldRecord := blob[:6]
	rest := blob[6:]
	reordered := append(append([]byte{}, rest[:len(rest)-len(encodeFeatures("+smcp"))]...), boldRecord...)
	reordered = append(reordered, encodeFeatures("+smcp")...)

	got := Decode(reordered)
	if !got.Family.IsExplicit() || got.Family.Value() != "Arial" {
		t.Errorf("Family = %v, want explicit Arial", got.Family)
	}
	if got.Bold.IsExplicit() {
		t.Error("Bold must be dropped when it follows a string record")
	}
	if got.Features.IsExplicit() {
		t.Error("Features must never be reached")
	}

	// the plain encoding loses the second string as well
	got = Decode(blob)
	if !got.Bold.IsExplicit() || !got.Family.IsExplicit() || got.Features.IsExplicit() {
		t.Errorf("Decode(Encode(p)) = %v, want bold and family only", got)
	}
}

func encodeFeatures(s string) []byte {
	p := NewProperties()
	p.Features.SetExplicit(s)
	return Encode(p)
}

func TestDecodeEmpty(t *testing.T) {
	for _, in := range [][]byte{nil, {}} {
		got, n := DecodeN(in)
		if n != 0 || got.ExplicitCount() != 0 {
			t.Errorf("DecodeN(%v) = %v, %d", in, got, n)
		}
		if got != NewProperties() {
			t.Errorf("DecodeN(%v) did not return defaults", in)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		consumed int
		explicit int
	}{
		{"single byte", []byte{0x02}, 0, 0},
		{"tag only", []byte{0x02, 0x00}, 0, 0},
		{"short integer", []byte{0x02, 0x00, 0x01, 0x00, 0x00}, 0, 0},
		{"unknown tag", []byte{0x7f, 0x00, 0x01, 0x00, 0x00, 0x00}, 0, 0},
		{"zero tag", []byte{0x00, 0x00, 0x01, 0x00, 0x00, 0x00}, 0, 0},
		{"valid then garbage", []byte{0x02, 0x00, 0x01, 0x00, 0x00, 0x00, 0xee}, 6, 1},
		{"valid then truncated", []byte{0x02, 0x00, 0x01, 0x00, 0x00, 0x00, 0x05, 0x00, 0x01}, 6, 1},
		{"unterminated string", []byte{0x0a, 0x00, 'A', 0x00, 'b', 0x00}, 0, 0},
		{"string odd tail", []byte{0x0a, 0x00, 'A', 0x00, 0x00}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := DecodeN(tt.in)
			if n != tt.consumed {
				t.Errorf("consumed = %d, want %d", n, tt.consumed)
			}
			if c := got.ExplicitCount(); c != tt.explicit {
				t.Errorf("explicit cells = %d, want %d", c, tt.explicit)
			}
		})
	}
}

func TestDecodeBoolIsValueOne(t *testing.T) {
	got := Decode([]byte{0x02, 0x00, 0x02, 0x00, 0x00, 0x00})
	if !got.Bold.IsExplicit() || got.Bold.Value() {
		t.Errorf("Bold = %v, want explicit false for value 2", got.Bold)
	}
}

func TestDecodeNonASCII(t *testing.T) {
	p := NewProperties()
	p.Family.SetExplicit("Noto Sans 日本 𝄞")
	if got := Decode(Encode(p)); got.Family.Value() != "Noto Sans 日本 𝄞" {
		t.Errorf("Family = %q", got.Family.Value())
	}
}

func TestColorPacking(t *testing.T) {
	c := color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}
	if v := ColorToBGR(c); v != 0x563412 {
		t.Errorf("ColorToBGR() = %#x", v)
	}
	if got := BGRToColor(0x563412); got != c {
		t.Errorf("BGRToColor() = %v", got)
	}
	if got := BGRToColor(transparentBGR); got != Transparent {
		t.Errorf("BGRToColor(transparent) = %v", got)
	}
}

func TestColorPartialAlpha(t *testing.T) {
	p := NewProperties()
	p.ForeColor.SetExplicit(color.RGBA{R: 10, A: 128})
	got := Decode(Encode(p)).ForeColor.Value()
	if got != (color.RGBA{R: 10, A: 0xff}) {
		t.Errorf("partial alpha decoded as %v, want opaque", got)
	}
}

func TestEncodeDropsNUL(t *testing.T) {
	p := NewProperties()
	p.Family.SetExplicit("A\x00B")
	blob := Encode(p)
	// tag, "AB", terminator
	if len(blob) != 4*unitSize {
		t.Fatalf("Encode() = % x", blob)
	}
	got := Decode(blob)
	if !got.Family.IsExplicit() || got.Family.Value() != "AB" {
		t.Errorf("Family = %q", got.Family.Value())
	}
}

func TestTagString(t *testing.T) {
	if TagFeatures.String() != "features" || Tag(0).String() != "unknown" || Tag(99).String() != "unknown" {
		t.Error("unexpected tag names")
	}
}
