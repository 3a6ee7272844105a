package registry

import (
	"fmt"
	"testing"

	"github.com/npillmayer/scopedtags/mint"
	"github.com/npillmayer/scopedtags/scope"
	"pgregory.net/rapid"
)

var logicalNames = rapid.StringMatching(`[a-z][a-z0-9]{0,6}-[a-z0-9]{1,6}`)

func TestPropertyResolveIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scopes := scope.NewTree()
		reg := New(scopes, mint.Counter(1))
		s, _ := scopes.NewScope(scopes.Root())
		n := logicalNames.Draw(t, "name")
		first, err := reg.Resolve(n, s)
		if err != nil {
			t.Fatal(err)
		}
		second, _ := reg.Resolve(n, s)
		if first != second {
			t.Fatalf("resolve not idempotent: %s vs %s", first, second)
		}
		if root, _ := reg.Resolve(n, scopes.Root()); root != n {
			t.Fatalf("root resolved %s to %s", n, root)
		}
	})
}

func TestPropertyConcreteNamesUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scopes := scope.NewTree()
		reg := New(scopes, mint.Counter(1))
		ids := []scope.ID{scopes.Root()}
		k := rapid.IntRange(1, 6).Draw(t, "scopes")
		for i := 0; i < k; i++ {
			parent := rapid.SampledFrom(ids).Draw(t, "parent")
			id, _ := scopes.NewScope(parent)
			ids = append(ids, id)
		}
		ops := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			n := logicalNames.Draw(t, "name")
			s := rapid.SampledFrom(ids).Draw(t, "scope")
			if rapid.Bool().Draw(t, "define") {
				reg.Define(n, s, &ctor{fmt.Sprintf("%d", i)})
			} else {
				reg.Resolve(n, s)
			}
		}
		seen := make(map[string]bool)
		handlers := make(map[string]bool)
		for _, id := range ids {
			for _, def := range reg.FindByScope(id) {
				if seen[def.Concrete] {
					t.Fatalf("concrete name %s defined twice", def.Concrete)
				}
				seen[def.Concrete] = true
				if scopes.IsRoot(id) && def.Concrete != def.Logical {
					t.Fatalf("root definition renamed: %v", def)
				}
				if !def.IsForward() {
					key := fmt.Sprintf("%v/%s", id, def.Logical)
					if handlers[key] {
						t.Fatalf("two handlers for %s", key)
					}
					handlers[key] = true
				}
			}
		}
	})
}

func TestPropertyScopesDoNotCollide(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scopes := scope.NewTree()
		reg := New(scopes, mint.RandomDigits(nil))
		s1, _ := scopes.NewScope(scopes.Root())
		s2, _ := scopes.NewScope(scopes.Root())
		n := logicalNames.Draw(t, "name")
		c1, _ := reg.Resolve(n, s1)
		c2, _ := reg.Resolve(n, s2)
		if c1 == c2 {
			t.Fatalf("scopes %v and %v share concrete name %s", s1, s2, c1)
		}
	})
}
