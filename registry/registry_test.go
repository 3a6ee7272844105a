package registry

import (
	"errors"
	"regexp"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scopedtags/mint"
	"github.com/npillmayer/scopedtags/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctor struct {
	name string
}

func setup(t *testing.T) (*Registry, scope.ID, scope.ID) {
	scopes := scope.NewTree()
	s1, err := scopes.NewScope(scopes.Root())
	require.NoError(t, err)
	s2, err := scopes.NewScope(scopes.Root())
	require.NoError(t, err)
	return New(scopes, mint.Counter(1)), s1, s2
}

func TestAddValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s, _ := setup(t)
	root := reg.Scopes().Root()
	tests := []struct {
		name string
		def  TagDefinition
		err  error
	}{
		{"no concrete", TagDefinition{Logical: "x-y", Scope: s}, ErrValidation},
		{"no logical", TagDefinition{Concrete: "x-y-1", Scope: s}, ErrValidation},
		{"no scope", TagDefinition{Concrete: "x-y-1", Logical: "x-y"}, ErrValidation},
		{"unknown scope", TagDefinition{Concrete: "x-y-1", Logical: "x-y", Scope: scope.ID(99)}, scope.ErrInvalidScope},
		{"root rename", TagDefinition{Concrete: "x-y-1", Logical: "x-y", Scope: root}, ErrValidation},
		{"slice handler", TagDefinition{Concrete: "x-y-1", Logical: "x-y", Scope: s, Handler: []int{1}}, ErrValidation},
	}
	for _, tt := range tests {
		err := reg.Add(tt.def)
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: expected error %v, got %v", tt.name, tt.err, err)
		}
	}
	if reg.Len() != 0 {
		t.Errorf("expected invalid definitions not to be stored, registry holds %d", reg.Len())
	}
}

func TestResolveRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, _, _ := setup(t)
	name, err := reg.Resolve("my-tag", reg.Scopes().Root())
	require.NoError(t, err)
	assert.Equal(t, "my-tag", name)
	assert.Equal(t, 0, reg.Len(), "resolving in root scope must not declare anything")
}

func TestResolveForwardDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s, _ := setup(t)
	name, err := reg.Resolve("my-tag", s)
	require.NoError(t, err)
	if !regexp.MustCompile(`^my-tag-\d+$`).MatchString(name) {
		t.Errorf("expected minted name to match my-tag-<n>, is %s", name)
	}
	def, found := reg.FindByConcreteName(name)
	require.True(t, found)
	assert.True(t, def.IsForward())
	assert.Equal(t, "my-tag", def.Logical)
	assert.Equal(t, s, def.Scope)
	again, err := reg.Resolve("my-tag", s)
	require.NoError(t, err)
	assert.Equal(t, name, again, "resolve must be idempotent")
	assert.Equal(t, 1, reg.Len())
}

func TestResolveScopesDiffer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s1, s2 := setup(t)
	n1, _ := reg.Resolve("my-tag", s1)
	n2, _ := reg.Resolve("my-tag", s2)
	if n1 == n2 {
		t.Errorf("expected different concrete names for different scopes, both are %s", n1)
	}
	assert.Len(t, reg.FindByLogicalName("my-tag"), 2)
	assert.Len(t, reg.FindByScope(s1), 1)
}

func TestResolveReminting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	scopes := scope.NewTree()
	s, _ := scopes.NewScope(scopes.Root())
	suffixes := []string{"1", "1", "1", "2"}
	i := 0
	reg := New(scopes, mint.MinterFunc(func(logical string) string {
		suffix := suffixes[i%len(suffixes)]
		i++
		return logical + "-" + suffix
	}))
	require.NoError(t, reg.Add(TagDefinition{Concrete: "x-y-1", Logical: "x-y-1", Scope: scopes.Root()}))
	name, err := reg.Resolve("x-y", s)
	require.NoError(t, err)
	assert.Equal(t, "x-y-2", name, "colliding minted names must be re-minted")
}

func TestAddCompletesForwardDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s, _ := setup(t)
	name, _ := reg.Resolve("my-tag", s)
	h := &ctor{"my-tag"}
	require.NoError(t, reg.Add(TagDefinition{Concrete: name, Logical: "my-tag", Scope: s, Handler: h}))
	assert.Equal(t, 1, reg.Len(), "forward declaration must be completed in place")
	def, found := reg.FindByHandler(h)
	require.True(t, found)
	assert.Equal(t, name, def.Concrete)
	assert.False(t, def.IsForward())
}

func TestDuplicateHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s1, s2 := setup(t)
	h := &ctor{"x"}
	require.NoError(t, reg.Add(TagDefinition{Concrete: "x-a-1", Logical: "x-a", Scope: s1, Handler: h}))
	err := reg.Add(TagDefinition{Concrete: "x-b-1", Logical: "x-b", Scope: s2, Handler: h})
	assert.ErrorIs(t, err, ErrDuplicateHandler)
	_, found := reg.FindByConcreteName("x-b-1")
	assert.False(t, found, "rejected definition must not be stored")
}

func TestNameCollision(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s1, s2 := setup(t)
	h1, h2, h3 := &ctor{"1"}, &ctor{"2"}, &ctor{"3"}
	require.NoError(t, reg.Add(TagDefinition{Concrete: "x-1", Logical: "x", Scope: s1, Handler: h1}))
	// same concrete name, already has a handler
	err := reg.Add(TagDefinition{Concrete: "x-1", Logical: "x", Scope: s1, Handler: h2})
	assert.ErrorIs(t, err, ErrNameCollision)
	// same logical name in same scope, different concrete name
	err = reg.Add(TagDefinition{Concrete: "x-2", Logical: "x", Scope: s1, Handler: h2})
	assert.ErrorIs(t, err, ErrNameCollision)
	// forward declaration of another scope cannot be taken over
	fwd, _ := reg.Resolve("y-z", s2)
	err = reg.Add(TagDefinition{Concrete: fwd, Logical: "y-z", Scope: s1, Handler: h3})
	assert.ErrorIs(t, err, ErrNameCollision)
	assert.Equal(t, 2, reg.Len())
	_, found := reg.FindByHandler(h2)
	assert.False(t, found)
}

func TestRepeatedForwardDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s, _ := setup(t)
	def := TagDefinition{Concrete: "p-q-9", Logical: "p-q", Scope: s}
	require.NoError(t, reg.Add(def))
	require.NoError(t, reg.Add(def))
	assert.Equal(t, 1, reg.Len())
}

func TestRootDefinition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s, _ := setup(t)
	root := reg.Scopes().Root()
	h := &ctor{"root"}
	require.NoError(t, reg.Add(TagDefinition{Concrete: "my-app", Logical: "my-app", Scope: root, Handler: h}))
	name, _ := reg.Resolve("my-app", root)
	assert.Equal(t, "my-app", name)
	name, _ = reg.Resolve("my-app", s)
	assert.NotEqual(t, "my-app", name, "child scope resolves its own name")
	assert.Equal(t, "my-app", reg.LogicalName(name))
	assert.Equal(t, []string{"my-app", name}, reg.ConcreteNames("my-app"))
}

func TestFindByHandlerNonComparable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, _, _ := setup(t)
	_, found := reg.FindByHandler(map[string]int{})
	assert.False(t, found)
	_, found = reg.FindByHandler(nil)
	assert.False(t, found)
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.registry")
	defer teardown()
	//
	reg, s1, _ := setup(t)
	reg.Resolve("my-tag", s1)
	out := reg.Dump()
	t.Logf("\n%s", out)
	assert.Contains(t, out, "my-tag=my-tag-1?")
}
