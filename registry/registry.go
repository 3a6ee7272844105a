package registry

import (
	"fmt"
	"sync"

	"github.com/npillmayer/scopedtags/mint"
	"github.com/npillmayer/scopedtags/scope"
)

// maxRemint limits the attempts to find an unused concrete name.
const maxRemint = 64

type scopedName struct {
	scope   scope.ID
	logical string
}

// Registry holds the tag definitions for a tree of scopes.
type Registry struct {
	mx      sync.RWMutex
	scopes  *scope.Tree
	minter  mint.Minter
	rows    []*TagDefinition              // in order of insertion
	byName  map[string]*TagDefinition     // concrete name → row
	byScope map[scopedName]*TagDefinition // (scope, logical) → representative row
	byHdlr  map[Handler]*TagDefinition    // handler → row
	waiters map[waitKey][]chan struct{}   // (scope, concrete) → pending waits
}

// New creates an empty registry for a tree of scopes. If minter is nil,
// mint.Counter(1) is used.
func New(scopes *scope.Tree, minter mint.Minter) *Registry {
	if scopes == nil {
		panic("registry needs a scope tree")
	}
	if minter == nil {
		minter = mint.Counter(1)
	}
	return &Registry{
		scopes:  scopes,
		minter:  minter,
		byName:  make(map[string]*TagDefinition),
		byScope: make(map[scopedName]*TagDefinition),
		byHdlr:  make(map[Handler]*TagDefinition),
		waiters: make(map[waitKey][]chan struct{}),
	}
}

// Scopes returns the scope tree this registry is working on.
func (reg *Registry) Scopes() *scope.Tree {
	return reg.scopes
}

// Len returns the number of definitions.
func (reg *Registry) Len() int {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	return len(reg.rows)
}

// Add stores a tag definition.
//
// If a definition for def.Concrete already exists and has no handler yet, the
// handler of def is attached to it (completing a forward declaration). If it
// already has a handler, Add fails with ErrNameCollision. A forward
// declaration is completed only by a definition for the same scope and logical
// name: if the existing definition without handler belongs to another scope or
// logical name, Add fails with ErrNameCollision instead of attaching the
// handler, as a concrete name stays bound to the pair it has been minted for.
// A handler may be attached to one definition only (ErrDuplicateHandler), and
// a logical name may carry at most one handler per scope (ErrNameCollision).
//
// If Add returns an error, the registry is unchanged.
func (reg *Registry) Add(def TagDefinition) error {
	if err := def.validate(reg.scopes); err != nil {
		tracer().Errorf("rejecting definition %v: %v", def, err)
		return err
	}
	reg.mx.Lock()
	defer reg.mx.Unlock()
	if err := reg.add(def); err != nil {
		tracer().Errorf("rejecting definition %v: %v", def, err)
		return err
	}
	return nil
}

// add expects def to be validated and reg to be locked.
func (reg *Registry) add(def TagDefinition) error {
	if def.Handler != nil {
		if other, found := reg.byHdlr[def.Handler]; found {
			return fmt.Errorf("%w: handler is attached to %s", ErrDuplicateHandler, other.Concrete)
		}
	}
	key := scopedName{scope: def.Scope, logical: def.Logical}
	if row, found := reg.byName[def.Concrete]; found {
		if row.Handler != nil {
			return fmt.Errorf("%w: %s is already defined", ErrNameCollision, def.Concrete)
		}
		if row.Scope != def.Scope || row.Logical != def.Logical {
			return fmt.Errorf("%w: %s is declared for %s in %v", ErrNameCollision,
				def.Concrete, row.Logical, row.Scope)
		}
		if def.Handler == nil {
			return nil // repeated forward declaration
		}
		if err := reg.checkLogicalHandler(key, row); err != nil {
			return err
		}
		reg.attach(row, def.Handler)
		return nil
	}
	if def.Handler != nil {
		if err := reg.checkLogicalHandler(key, nil); err != nil {
			return err
		}
	}
	row := &TagDefinition{Concrete: def.Concrete, Logical: def.Logical, Scope: def.Scope}
	reg.rows = append(reg.rows, row)
	reg.byName[row.Concrete] = row
	if _, found := reg.byScope[key]; !found {
		reg.byScope[key] = row
	}
	tracer().P("scope", def.Scope).Debugf("declared %s as %s", def.Logical, def.Concrete)
	if def.Handler != nil {
		reg.attach(row, def.Handler)
	}
	return nil
}

// checkLogicalHandler fails if the logical name of key already has a handler
// on a row other than row.
func (reg *Registry) checkLogicalHandler(key scopedName, row *TagDefinition) error {
	if rep, found := reg.byScope[key]; found && rep != row && rep.Handler != nil {
		return fmt.Errorf("%w: %s is already defined in %v as %s", ErrNameCollision,
			key.logical, key.scope, rep.Concrete)
	}
	return nil
}

// attach sets the handler of a row and notifies waiters. reg must be locked.
func (reg *Registry) attach(row *TagDefinition, h Handler) {
	row.Handler = h
	reg.byHdlr[h] = row
	reg.byScope[scopedName{scope: row.Scope, logical: row.Logical}] = row
	tracer().P("scope", row.Scope).Debugf("defined %s as %s", row.Logical, row.Concrete)
	reg.notify(row)
}

// Resolve returns the concrete name for a logical name in scope s.
//
// For the root scope, a logical name always resolves to itself. For other
// scopes, the first resolve of a name mints a fresh concrete name and stores a
// forward declaration for it; every later call returns the same name.
func (reg *Registry) Resolve(logical string, s scope.ID) (string, error) {
	if logical == "" {
		return "", fmt.Errorf("%w: logical name is mandatory", ErrValidation)
	}
	if err := reg.scopes.Validate(s); err != nil {
		return "", err
	}
	key := scopedName{scope: s, logical: logical}
	reg.mx.RLock()
	row, found := reg.byScope[key]
	reg.mx.RUnlock()
	if found {
		return row.Concrete, nil
	}
	if reg.scopes.IsRoot(s) {
		return logical, nil
	}
	reg.mx.Lock()
	defer reg.mx.Unlock()
	return reg.resolve(key)
}

// resolve mints and declares a concrete name. reg must be locked.
func (reg *Registry) resolve(key scopedName) (string, error) {
	if row, found := reg.byScope[key]; found {
		return row.Concrete, nil
	}
	if reg.scopes.IsRoot(key.scope) {
		return key.logical, nil
	}
	for i := 0; i < maxRemint; i++ {
		concrete := reg.minter.Mint(key.logical)
		if _, taken := reg.byName[concrete]; taken || concrete == key.logical {
			tracer().Debugf("minted name %s is taken, minting again", concrete)
			continue
		}
		err := reg.add(TagDefinition{Concrete: concrete, Logical: key.logical, Scope: key.scope})
		return concrete, err
	}
	return "", fmt.Errorf("%w: cannot mint an unused name for %s", ErrNameCollision, key.logical)
}

// FindByConcreteName returns the definition for a concrete name.
func (reg *Registry) FindByConcreteName(concrete string) (TagDefinition, bool) {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	if row, found := reg.byName[concrete]; found {
		return *row, true
	}
	return TagDefinition{}, false
}

// FindByHandler returns the definition a handler is attached to.
func (reg *Registry) FindByHandler(h Handler) (TagDefinition, bool) {
	if h == nil || !isComparable(h) {
		return TagDefinition{}, false
	}
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	if row, found := reg.byHdlr[h]; found {
		return *row, true
	}
	return TagDefinition{}, false
}

// FindByLogicalName returns all definitions for a logical name, across all scopes,
// in order of insertion.
func (reg *Registry) FindByLogicalName(logical string) []TagDefinition {
	return reg.filter(func(row *TagDefinition) bool {
		return row.Logical == logical
	})
}

// FindByScope returns all definitions owned by scope s (not its ancestors),
// in order of insertion.
func (reg *Registry) FindByScope(s scope.ID) []TagDefinition {
	return reg.filter(func(row *TagDefinition) bool {
		return row.Scope == s
	})
}

func (reg *Registry) filter(pred func(*TagDefinition) bool) []TagDefinition {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	var defs []TagDefinition
	for _, row := range reg.rows {
		if pred(row) {
			defs = append(defs, *row)
		}
	}
	return defs
}
