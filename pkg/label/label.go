// Package label defines the identity of a schema type: its name and, for role
// types, the relation type scoping it.
package label

import (
	"fmt"
	"strings"

	"github.com/jzelinskie/stringz"
)

const scopeSeparator = ":"

// Label identifies a schema type. Labels are comparable and may be used as map
// keys; two labels are equal iff their scope and name are equal.
type Label struct {
	// Scope is the label of the relation type that scopes a role type, or empty
	// for every other type.
	Scope string

	// Name is the name of the type within its scope.
	Name string
}

// Of returns an unscoped label.
func Of(name string) Label {
	return Label{Name: name}
}

// Scoped returns a label scoped by the given relation type name.
func Scoped(scope, name string) Label {
	return Label{Scope: scope, Name: name}
}

// Parse parses a label of the form `name` or `scope:name`.
func Parse(s string) (Label, error) {
	if !strings.Contains(s, scopeSeparator) {
		if s == "" {
			return Label{}, fmt.Errorf("empty label")
		}
		return Of(s), nil
	}

	var scope, name string
	if err := stringz.SplitExact(s, scopeSeparator, &scope, &name); err != nil {
		return Label{}, fmt.Errorf("invalid scoped label `%s`: %w", s, err)
	}
	if scope == "" || name == "" {
		return Label{}, fmt.Errorf("invalid scoped label `%s`", s)
	}
	return Scoped(scope, name), nil
}

// HasScope returns whether the label is scoped.
func (l Label) HasScope() bool {
	return l.Scope != ""
}

// IsEmpty returns whether the label has no name.
func (l Label) IsEmpty() bool {
	return l.Name == ""
}

// String renders the label as `scope:name` or `name`.
func (l Label) String() string {
	if !l.HasScope() {
		return l.Name
	}
	return l.Scope + scopeSeparator + l.Name
}
