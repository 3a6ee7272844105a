package registry

import (
	"fmt"

	"github.com/npillmayer/scopedtags/scope"
)

// Define registers a handler for a logical name in scope s and returns the
// concrete name the handler is now bound to. It resolves the logical name first,
// so a forward declaration created by earlier rewrites is completed.
func (reg *Registry) Define(logical string, s scope.ID, h Handler) (string, error) {
	if h == nil {
		return "", fmt.Errorf("%w: handler is mandatory for %s", ErrValidation, logical)
	}
	if logical == "" {
		return "", fmt.Errorf("%w: logical name is mandatory", ErrValidation)
	}
	if err := reg.scopes.Validate(s); err != nil {
		return "", err
	}
	if !isComparable(h) {
		return "", fmt.Errorf("%w: handler of type %T is not comparable", ErrValidation, h)
	}
	reg.mx.Lock()
	defer reg.mx.Unlock()
	if other, found := reg.byHdlr[h]; found {
		err := fmt.Errorf("%w: handler is attached to %s", ErrDuplicateHandler, other.Concrete)
		tracer().Errorf("cannot define %s: %v", logical, err)
		return "", err
	}
	concrete, err := reg.resolve(scopedName{scope: s, logical: logical})
	if err != nil {
		return "", err
	}
	if err = reg.add(TagDefinition{Concrete: concrete, Logical: logical, Scope: s, Handler: h}); err != nil {
		tracer().Errorf("cannot define %s: %v", logical, err)
		return "", err
	}
	return concrete, nil
}

// Get returns the handler for a logical name as seen from scope s. Scopes are
// searched from s up to the root; the nearest scope holding a definition for
// the name decides. If that definition is a forward declaration, Get returns
// (nil, false).
func (reg *Registry) Get(logical string, s scope.ID) (Handler, bool) {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	for _, a := range reg.scopes.Ancestors(s) {
		if row, found := reg.byScope[scopedName{scope: a, logical: logical}]; found {
			return row.Handler, row.Handler != nil
		}
	}
	return nil, false
}

// OwningScope returns the nearest scope, starting from s and walking towards the
// root, which holds a definition for a logical name.
func (reg *Registry) OwningScope(logical string, s scope.ID) (scope.ID, bool) {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	for _, a := range reg.scopes.Ancestors(s) {
		if _, found := reg.byScope[scopedName{scope: a, logical: logical}]; found {
			return a, true
		}
	}
	return scope.None, false
}

// LogicalName maps a concrete name back to the logical name it has been
// created for. Names unknown to the registry are returned unchanged.
func (reg *Registry) LogicalName(concrete string) string {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	if row, found := reg.byName[concrete]; found {
		return row.Logical
	}
	return concrete
}

// ConcreteNames returns the logical name itself, followed by every other
// concrete name it has been given in any scope.
func (reg *Registry) ConcreteNames(logical string) []string {
	names := []string{logical}
	for _, def := range reg.FindByLogicalName(logical) {
		if def.Concrete != logical {
			names = append(names, def.Concrete)
		}
	}
	return names
}

// Dump renders the scope tree with the names defined in every scope.
func (reg *Registry) Dump() string {
	return reg.scopes.Dump(func(s scope.ID) string {
		defs := reg.FindByScope(s)
		if len(defs) == 0 {
			return ""
		}
		names := make([]string, len(defs))
		for i, def := range defs {
			names[i] = def.Logical + "=" + def.Concrete
			if def.IsForward() {
				names[i] += "?"
			}
		}
		return fmt.Sprintf("%v", names)
	})
}
