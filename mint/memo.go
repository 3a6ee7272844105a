package mint

import (
	gocache "github.com/patrickmn/go-cache"
)

// Memo remembers the concrete names found for logical names during a single
// pass over a text or a tree. A pass typically resolves the same names over and
// over again (every open and close tag); the memo asks the resolver at most once
// per logical name.
//
// A Memo must not outlive the pass it has been created for: entries never expire.
type Memo struct {
	cache *gocache.Cache
	hits  int
}

// NewMemo creates an empty memo.
func NewMemo() *Memo {
	return &Memo{cache: gocache.New(gocache.NoExpiration, 0)}
}

// Lookup returns the memoized concrete name for logical, calling resolve
// on a miss. Errors from resolve are not memoized.
func (m *Memo) Lookup(logical string, resolve func(string) (string, error)) (string, error) {
	if v, found := m.cache.Get(logical); found {
		if concrete, ok := v.(string); ok {
			m.hits++
			return concrete, nil
		}
	}
	concrete, err := resolve(logical)
	if err != nil {
		return "", err
	}
	m.cache.Set(logical, concrete, gocache.NoExpiration)
	return concrete, nil
}

// Len returns the number of memoized names.
func (m *Memo) Len() int {
	return m.cache.ItemCount()
}

// Hits returns the number of lookups answered from the memo.
func (m *Memo) Hits() int {
	return m.hits
}
