package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scopedtags/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with -race.
func TestConcurrentResolveAndDefine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s1, s2 := setup(t)
	scopes := []scope.ID{s1, s2}
	logicals := []string{"x-a", "x-b", "x-c", "x-d"}
	const workers = 8
	var (
		mx       sync.Mutex
		resolved = make(map[scopedName]map[string]bool)
		defined  = make(map[scopedName]int)
		waits    []<-chan struct{}
	)
	record := func(key scopedName, concrete string, define bool) {
		mx.Lock()
		defer mx.Unlock()
		if resolved[key] == nil {
			resolved[key] = make(map[string]bool)
		}
		resolved[key][concrete] = true
		if define {
			defined[key]++
		}
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, s := range scopes {
				for _, logical := range logicals {
					key := scopedName{scope: s, logical: logical}
					ch, err := reg.WhenDefined(logical, s)
					if err != nil {
						t.Errorf("when defined %v: %v", key, err)
						return
					}
					mx.Lock()
					waits = append(waits, ch)
					mx.Unlock()
					concrete, err := reg.Resolve(logical, s)
					if err != nil {
						t.Errorf("resolve %v: %v", key, err)
						return
					}
					record(key, concrete, false)
					concrete, err = reg.Define(logical, s, &ctor{logical})
					if err == nil {
						record(key, concrete, true)
					} else if !errors.Is(err, ErrNameCollision) {
						t.Errorf("define %v: unexpected error %v", key, err)
					}
				}
			}
		}()
	}
	wg.Wait()
	//
	require.Len(t, resolved, len(scopes)*len(logicals))
	owner := make(map[string]scopedName)
	for key, names := range resolved {
		require.Len(t, names, 1, "%v has been given more than one concrete name: %v", key, names)
		assert.Equal(t, 1, defined[key], "%v should have been defined exactly once", key)
		for name := range names {
			other, taken := owner[name]
			assert.False(t, taken, "%s is used for both %v and %v", name, key, other)
			owner[name] = key
		}
	}
	for i, ch := range waits {
		select {
		case <-ch:
		default:
			t.Errorf("wait %d has not been released", i)
		}
	}
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	assert.Empty(t, reg.waiters, "released waiters should be removed")
	assert.Len(t, reg.rows, len(scopes)*len(logicals))
}
