package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/npillmayer/scopedtags/scope"
)

// Errors returned by the registry. They are wrapped with details, clients
// should check with errors.Is.
var (
	// ErrValidation flags a definition with a missing or illegal field.
	ErrValidation = errors.New("invalid tag definition")
	// ErrDuplicateHandler flags a handler which is already attached to a definition.
	ErrDuplicateHandler = errors.New("handler already in use")
	// ErrNameCollision flags a concrete or logical name which is already taken.
	ErrNameCollision = errors.New("name already in use")
)

// Handler is an opaque reference to the behavior registered for an element
// name, e.g. a constructor. Handlers are compared by identity and must therefore
// be comparable; pointers are the natural choice.
type Handler interface{}

// TagDefinition is a single row of the registry.
type TagDefinition struct {
	Concrete string   // name used in materialized markup, unique across all scopes
	Logical  string   // name the author wrote
	Scope    scope.ID // owning scope
	Handler  Handler  // nil for forward declarations
}

// IsForward is true for definitions without a handler.
func (def TagDefinition) IsForward() bool {
	return def.Handler == nil
}

func (def TagDefinition) String() string {
	h := "<forward>"
	if def.Handler != nil {
		h = fmt.Sprintf("%T", def.Handler)
	}
	return fmt.Sprintf("[%s → %s @ %v %s]", def.Logical, def.Concrete, def.Scope, h)
}

// validate checks the fields of a definition against a scope tree.
func (def TagDefinition) validate(scopes *scope.Tree) error {
	switch {
	case def.Concrete == "":
		return fmt.Errorf("%w: concrete name is mandatory", ErrValidation)
	case def.Logical == "":
		return fmt.Errorf("%w: logical name is mandatory", ErrValidation)
	case def.Scope == scope.None:
		return fmt.Errorf("%w: scope is mandatory", ErrValidation)
	}
	if err := scopes.Validate(def.Scope); err != nil {
		return err
	}
	if scopes.IsRoot(def.Scope) && def.Concrete != def.Logical {
		return fmt.Errorf("%w: root scope cannot rename %s to %s", ErrValidation,
			def.Logical, def.Concrete)
	}
	if def.Handler != nil && !isComparable(def.Handler) {
		return fmt.Errorf("%w: handler of type %T is not comparable", ErrValidation, def.Handler)
	}
	return nil
}

func isComparable(h Handler) bool {
	return reflect.TypeOf(h).Comparable()
}

// IsCustomName is a predicate: may name be scoped? Only names starting with an
// ASCII letter and containing a dash are subject to scoping, all other names
// are reserved for built-in elements.
func IsCustomName(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return false
	}
	return strings.IndexByte(name, '-') > 0
}
