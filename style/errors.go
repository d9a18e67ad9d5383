package style

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCatalogSealed is returned by Add once ConnectStyles has run.
var ErrCatalogSealed = errors.New("style catalog is already connected")

// ErrStyleOwned is returned by Add for a style which already belongs to a
// catalog.
var ErrStyleOwned = errors.New("style already belongs to a catalog")

// DuplicateStyleError is returned when a name is added twice.
type DuplicateStyleError struct {
	Name string
}

func (e *DuplicateStyleError) Error() string {
	return fmt.Sprintf("duplicate style %q", e.Name)
}

// UnknownStyleError is returned by strict lookups of names not in the catalog.
type UnknownStyleError struct {
	Name string
}

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("unknown style %q", e.Name)
}

// CyclicInheritanceError reports a based-on chain which loops. Chain starts
// and ends with the same style name.
type CyclicInheritanceError struct {
	Chain []string
}

func (e *CyclicInheritanceError) Error() string {
	return "cyclic style inheritance: " + strings.Join(e.Chain, " -> ")
}
