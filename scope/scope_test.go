package scope

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRootScope(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.scope")
	defer teardown()
	//
	scopes := NewTree()
	root := scopes.Root()
	if !scopes.IsRoot(root) {
		t.Errorf("expected root scope to be root, isn't")
	}
	if p, ok := scopes.Parent(root); ok || p != None {
		t.Errorf("expected root scope to have no parent, has %v", p)
	}
	if scopes.Len() != 1 {
		t.Errorf("expected fresh tree to hold 1 scope, holds %d", scopes.Len())
	}
}

func TestNewScopeChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.scope")
	defer teardown()
	//
	scopes := NewTree()
	a, err := scopes.NewScope(scopes.Root())
	if err != nil {
		t.Fatal(err)
	}
	b, err := scopes.NewScope(a)
	if err != nil {
		t.Fatal(err)
	}
	if scopes.IsRoot(b) {
		t.Errorf("expected child scope not to be root")
	}
	if p, ok := scopes.Parent(b); !ok || p != a {
		t.Errorf("expected parent of %v to be %v, is %v", b, a, p)
	}
	chain := scopes.Ancestors(b)
	if len(chain) != 3 || chain[0] != b || chain[1] != a || chain[2] != scopes.Root() {
		t.Errorf("expected ancestor chain [b a root], is %v", chain)
	}
	if d := scopes.Depth(b); d != 2 {
		t.Errorf("expected depth of b to be 2, is %d", d)
	}
	if ch := scopes.Children(scopes.Root()); len(ch) != 1 || ch[0] != a {
		t.Errorf("expected root to have single child a, has %v", ch)
	}
}

func TestInvalidParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.scope")
	defer teardown()
	//
	scopes := NewTree()
	if _, err := scopes.NewScope(None); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("expected ErrInvalidScope for parent None, got %v", err)
	}
	if _, err := scopes.NewScope(ID(42)); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("expected ErrInvalidScope for unknown parent, got %v", err)
	}
	other := NewTree()
	s, _ := other.NewScope(other.Root())
	if err := scopes.Validate(s); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("expected scope of another tree to be invalid, got %v", err)
	}
	if len(scopes.Ancestors(ID(42))) != 0 {
		t.Errorf("expected unknown scope to have no ancestors")
	}
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.scope")
	defer teardown()
	//
	scopes := NewTree()
	a, _ := scopes.NewScope(scopes.Root())
	scopes.NewScope(a)
	scopes.NewScope(scopes.Root())
	out := scopes.Dump(func(id ID) string {
		if id == a {
			return "[app]"
		}
		return ""
	})
	t.Logf("\n%s", out)
	if !strings.Contains(out, "scope#2 [app]") {
		t.Errorf("expected dump to contain labelled scope#2, is\n%s", out)
	}
	if !strings.Contains(out, "scope#3") || !strings.Contains(out, "scope#4") {
		t.Errorf("expected dump to contain all scopes, is\n%s", out)
	}
}
