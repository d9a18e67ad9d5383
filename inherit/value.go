// Package inherit provides the cell type used by style cascading: a value
// that is either set explicitly by the author of a style sheet or pushed down
// from a based-on style.
package inherit

import "fmt"

// Value is a single cascading property cell.
//
// A cell is in one of three states:
//   - explicit: the style sheet author set the value directly
//   - inherited: the value was copied from an ancestor by InheritValue
//   - unset: neither of the above, Value returns the zero value of T
//
// The zero Value is unset.
type Value[T comparable] struct {
	value    T
	explicit bool
	set      bool
}

// Explicit returns an explicit cell holding v.
func Explicit[T comparable](v T) Value[T] {
	return Value[T]{value: v, explicit: true, set: true}
}

// Inherited returns a non-explicit cell already carrying v, as if it was
// pushed down by the cascade.
func Inherited[T comparable](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// Value returns the current value of the cell.
func (c Value[T]) Value() T {
	return c.value
}

// IsExplicit reports whether the value was set directly.
func (c Value[T]) IsExplicit() bool {
	return c.explicit
}

// IsSet reports whether the cell carries a value, explicit or inherited.
func (c Value[T]) IsSet() bool {
	return c.explicit || c.set
}

// SetExplicit stores v and marks the cell explicit.
func (c *Value[T]) SetExplicit(v T) {
	c.value = v
	c.explicit = true
	c.set = true
}

// SetDefault stores v and marks the cell explicit unless the cell is already
// explicit, in which case the author's value is kept.
func (c *Value[T]) SetDefault(v T) {
	if c.explicit {
		return
	}
	c.SetExplicit(v)
}

// ResetToInherited drops the explicit flag. The current value is kept until
// the next InheritValue call replaces it.
func (c *Value[T]) ResetToInherited() {
	c.explicit = false
}

// InheritValue copies the value of src into c unless c is explicit.
// Nothing happens when src carries no value itself.
func (c *Value[T]) InheritValue(src Value[T]) {
	if c.explicit || !src.IsSet() {
		return
	}
	c.value = src.value
	c.set = true
}

func (c Value[T]) String() string {
	switch {
	case c.explicit:
		return fmt.Sprintf("%v", c.value)
	case c.set:
		return fmt.Sprintf("(%v)", c.value)
	}
	return "unset"
}
