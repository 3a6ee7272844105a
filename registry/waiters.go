package registry

import (
	"context"

	"github.com/npillmayer/scopedtags/scope"
)

type waitKey struct {
	scope    scope.ID
	concrete string
}

// WhenDefined returns a channel which is closed as soon as a handler is attached
// to the logical name in scope s. If the name already has a handler, the
// channel is closed on return.
//
// For a non-root scope, WhenDefined resolves the name, i.e. it may create a
// forward declaration.
func (reg *Registry) WhenDefined(logical string, s scope.ID) (<-chan struct{}, error) {
	if logical == "" {
		return nil, ErrValidation
	}
	if err := reg.scopes.Validate(s); err != nil {
		return nil, err
	}
	reg.mx.Lock()
	defer reg.mx.Unlock()
	concrete, err := reg.resolve(scopedName{scope: s, logical: logical})
	if err != nil {
		return nil, err
	}
	ch := make(chan struct{})
	if row, found := reg.byName[concrete]; found && row.Handler != nil {
		close(ch)
		return ch, nil
	}
	key := waitKey{scope: s, concrete: concrete}
	reg.waiters[key] = append(reg.waiters[key], ch)
	tracer().P("scope", s).Debugf("waiting for %s to be defined", concrete)
	return ch, nil
}

// Wait blocks until a handler is attached to the logical name in scope s, or
// until ctx is done. Cancelling ctx abandons this wait only.
func (reg *Registry) Wait(ctx context.Context, logical string, s scope.ID) error {
	ch, err := reg.WhenDefined(logical, s)
	if err != nil {
		return err
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// notify releases all waiters for a row. reg must be locked.
func (reg *Registry) notify(row *TagDefinition) {
	key := waitKey{scope: row.Scope, concrete: row.Concrete}
	waiting := reg.waiters[key]
	if len(waiting) == 0 {
		return
	}
	for _, ch := range waiting {
		close(ch)
	}
	delete(reg.waiters, key)
	tracer().P("scope", row.Scope).Debugf("released %d waiter(s) for %s", len(waiting), row.Concrete)
}
