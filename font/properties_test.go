package font

import (
	"image/color"
	"strings"
	"testing"
)

func TestSetAllDefaultsKeepsExplicit(t *testing.T) {
	p := Properties{}
	p.Size.SetExplicit(12000)
	p.SetAllDefaults()

	if !p.IsComplete() || p.ExplicitCount() != tagCount {
		t.Fatalf("SetAllDefaults() left cells unset: %v", p)
	}
	if p.Size.Value() != 12000 {
		t.Errorf("Size = %d, want explicit 12000 kept", p.Size.Value())
	}
	if p.Family.Value() != DefaultFontName {
		t.Errorf("Family = %q, want %q", p.Family.Value(), DefaultFontName)
	}
	if p.BackColor.Value() != Transparent || p.ForeColor.Value() != Black {
		t.Error("unexpected default colors")
	}
}

func TestInheritValues(t *testing.T) {
	var parent Properties
	parent.SetAllDefaults()
	parent.Bold.SetExplicit(true)

	var child Properties
	child.Italic.SetExplicit(true)
	child.Bold.ResetToInherited()
	child.InheritValues(&parent)

	if !child.IsComplete() {
		t.Fatalf("child not complete after InheritValues: %v", child)
	}
	if child.Bold.IsExplicit() || !child.Bold.Value() {
		t.Errorf("Bold = %v, want inherited true", child.Bold)
	}
	if !child.Italic.IsExplicit() || !child.Italic.Value() {
		t.Errorf("Italic = %v, want explicit true", child.Italic)
	}
	if child.ExplicitCount() != 1 {
		t.Errorf("ExplicitCount() = %d, want 1", child.ExplicitCount())
	}
}

func TestNewPropertiesNotExplicit(t *testing.T) {
	p := NewProperties()
	if p.ExplicitCount() != 0 {
		t.Errorf("ExplicitCount() = %d", p.ExplicitCount())
	}
	if !p.IsComplete() {
		t.Error("defaults must carry values")
	}
}

func TestPropertiesString(t *testing.T) {
	p := NewProperties()
	p.Bold.SetExplicit(true)
	p.ForeColor.SetExplicit(color.RGBA{R: 0xff, A: 0xff})
	p.Family.SetExplicit("Arial")
	s := p.String()
	for _, want := range []string{"bold=true", "fore-color=#ff0000", `family="Arial"`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %s, missing %s", s, want)
		}
	}
	if strings.Contains(s, "italic") {
		t.Errorf("String() = %s lists inherited cell", s)
	}
}

func TestParseEnums(t *testing.T) {
	if u, err := ParseUnderline("Double"); err != nil || u != UnderlineDouble {
		t.Errorf("ParseUnderline() = %v, %v", u, err)
	}
	if _, err := ParseUnderline("wavy"); err == nil {
		t.Error("ParseUnderline(wavy) must fail")
	}
	if s, err := ParseSuperSub("superscript"); err != nil || s != Superscript {
		t.Errorf("ParseSuperSub() = %v, %v", s, err)
	}
	if s, err := ParseSuperSub("sub"); err != nil || s != Subscript {
		t.Errorf("ParseSuperSub() = %v, %v", s, err)
	}
	if Underline(42).String() != "Underline(42)" {
		t.Error("unexpected name for out of range underline")
	}
}
