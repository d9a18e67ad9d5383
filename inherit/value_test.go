package inherit

import "testing"

func TestInheritValueExplicitIsNoop(t *testing.T) {
	tests := []struct {
		name string
		src  Value[int]
	}{
		{"unset source", Value[int]{}},
		{"inherited source", Inherited(7)},
		{"explicit source", Explicit(9)},
		{"explicit same value", Explicit(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Explicit(42)
			c.InheritValue(tt.src)
			if !c.IsExplicit() || c.Value() != 42 {
				t.Errorf("InheritValue() changed explicit cell: got %v", c)
			}
		})
	}
}

func TestInheritValueCopiesIntoNonExplicit(t *testing.T) {
	var c Value[string]
	if c.IsSet() {
		t.Fatal("zero cell must be unset")
	}

	c.InheritValue(Explicit("Arial"))
	if c.IsExplicit() {
		t.Error("inherited cell must not become explicit")
	}
	if !c.IsSet() || c.Value() != "Arial" {
		t.Errorf("InheritValue() = %v, want inherited Arial", c)
	}

	// later pushes replace earlier inherited values
	c.InheritValue(Inherited("Times"))
	if c.Value() != "Times" {
		t.Errorf("InheritValue() = %q, want Times", c.Value())
	}

	// unset sources leave the cell alone
	c.InheritValue(Value[string]{})
	if c.Value() != "Times" {
		t.Errorf("InheritValue(unset) = %q, want Times", c.Value())
	}
}

func TestSetDefault(t *testing.T) {
	var c Value[bool]
	c.SetDefault(false)
	if !c.IsExplicit() || c.Value() {
		t.Errorf("SetDefault() on unset cell = %v", c)
	}

	e := Explicit(true)
	e.SetDefault(false)
	if !e.Value() {
		t.Error("SetDefault() must keep explicit value")
	}
}

func TestResetToInherited(t *testing.T) {
	c := Explicit(3)
	c.ResetToInherited()
	if c.IsExplicit() {
		t.Error("ResetToInherited() must clear explicit flag")
	}
	c.InheritValue(Explicit(5))
	if c.Value() != 5 {
		t.Errorf("value after reset and inherit = %d, want 5", c.Value())
	}
}

func TestString(t *testing.T) {
	var unset Value[int]
	if s := unset.String(); s != "unset" {
		t.Errorf("String() = %q", s)
	}
	if s := Inherited(1).String(); s != "(1)" {
		t.Errorf("String() = %q", s)
	}
	if s := Explicit(1).String(); s != "1" {
		t.Errorf("String() = %q", s)
	}
}
