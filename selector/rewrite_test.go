package selector

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scopedtags/mint"
	"github.com/npillmayer/scopedtags/registry"
	"github.com/npillmayer/scopedtags/scope"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func setup() (*Rewriter, scope.ID, scope.ID) {
	scopes := scope.NewTree()
	s1, _ := scopes.NewScope(scopes.Root())
	s2, _ := scopes.NewScope(scopes.Root())
	return New(registry.New(scopes, mint.Counter(1))), s1, s2
}

func TestRewriteSelectors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.selector")
	defer teardown()
	//
	tests := []struct {
		input, output string
	}{
		{`.my-tag`, `.my-tag`},
		{`.my-tag.my-tag`, `.my-tag.my-tag`},
		{`#my-tag`, `#my-tag`},
		{`*`, `*`},
		{`my-tag`, `my-tag-1`},
		{`my-tag.my-tag`, `my-tag-1.my-tag`},
		{`my-tag,my-tag`, `my-tag-1,my-tag-1`},
		{`my-tag my-tag`, `my-tag-1 my-tag-1`},
		{"my-tag\n\tmy-tag", "my-tag-1\n\tmy-tag-1"},
		{`my-tag>my-tag`, `my-tag-1>my-tag-1`},
		{`my-tag+my-tag`, `my-tag-1+my-tag-1`},
		{`my-tag~my-tag`, `my-tag-1~my-tag-1`},
		{`my-tag[my-tag]`, `my-tag-1[my-tag]`},
		{`my-tag[my-tag="my-tag"]`, `my-tag-1[my-tag="my-tag"]`},
		{`my-tag[my-tag|="my-tag"]`, `my-tag-1[my-tag|="my-tag"]`},
		{`my-tag[my-tag*="my-tag" i]`, `my-tag-1[my-tag*="my-tag" i]`},
		{`my-tag[title="]my-tag"]`, `my-tag-1[title="]my-tag"]`},
		{`my-tag:hover`, `my-tag-1:hover`},
		{`my-tag::after`, `my-tag-1::after`},
		{`my-tag:first-child`, `my-tag-1:first-child`},
		{`my-tag:lang(my-tag)`, `my-tag-1:lang(my-tag)`},
		{`my-tag:nth-child(2n+1)`, `my-tag-1:nth-child(2n+1)`},
		{`my-tag:not(my-tag, my-tag)`, `my-tag-1:not(my-tag-1, my-tag-1)`},
		{`my-tag:has(> my-tag)`, `my-tag-1:has(> my-tag-1)`},
		{`:is(my-tag, .my-tag):where(div my-tag)`, `:is(my-tag-1, .my-tag):where(div my-tag-1)`},
		{`:not(:not(my-tag))`, `:not(:not(my-tag-1))`},
		{`::slotted(my-tag)`, `::slotted(my-tag-1)`},
		{`:host(my-tag) ::part(my-tag)`, `:host(my-tag-1) ::part(my-tag)`},
		{`my-tag || my-tag`, `my-tag-1 || my-tag-1`},
		{`svg|my-tag`, `svg|my-tag-1`},
		{`:root`, `:root`},
		{`::selection`, `::selection`},
		{`MY-TAG`, `my-tag-1`},
		{`div p`, `div p`},
		{`my-tag:nth-child(2) { my-tag }`, `my-tag-1:nth-child(2) { my-tag }`},
		{`/* my-tag */ my-tag`, `/* my-tag */ my-tag-1`},
	}
	for _, tt := range tests {
		rw, s, _ := setup()
		assert.Equal(t, tt.output, rw.Rewrite(tt.input, s), "rewriting %q", tt.input)
	}
}

func TestRewriteStyleSheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.selector")
	defer teardown()
	//
	rw, s, _ := setup()
	css := `@import "my-tag.css";
@charset "utf-8";
my-tag { color: red; }
@media screen and (min-width: 100px) {
  my-tag > x-item { content: "}"; }
}
@font-face { font-family: my-font; src: url(my-tag.woff); }
@keyframes my-spin { from { opacity: 0; } to { opacity: 1; } }
@supports (display: grid) { @media print { my-tag { display: none } } }`
	expected := `@import "my-tag.css";
@charset "utf-8";
my-tag-1 { color: red; }
@media screen and (min-width: 100px) {
  my-tag-1 > x-item-2 { content: "}"; }
}
@font-face { font-family: my-font; src: url(my-tag.woff); }
@keyframes my-spin { from { opacity: 0; } to { opacity: 1; } }
@supports (display: grid) { @media print { my-tag-1 { display: none } } }`
	assert.Equal(t, expected, rw.Rewrite(css, s))
}

func TestRewriteRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.selector")
	defer teardown()
	//
	rw, _, _ := setup()
	in := `my-tag > my-other { color: red }`
	assert.Equal(t, in, rw.Rewrite(in, rw.Registry().Scopes().Root()))
	assert.Equal(t, 0, rw.Registry().Len())
}

func TestRewriteScopesDiffer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.selector")
	defer teardown()
	//
	rw, s1, s2 := setup()
	rule := `my-tag { color: red; }`
	pattern := regexp.MustCompile(`^my-tag-\d+ \{ color: red; \}$`)
	out1, out2 := rw.Rewrite(rule, s1), rw.Rewrite(rule, s2)
	assert.Regexp(t, pattern, out1)
	assert.Regexp(t, pattern, out2)
	assert.NotEqual(t, out1, out2)
	// moving a rewritten rule to another scope
	assert.Equal(t, out2, rw.Rewrite(out1, s2))
	assert.Equal(t, rule, rw.Restore(out2))
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scopedtags.selector")
	defer teardown()
	//
	in := `a-b.c#d:not(e-f)[g] {h}`
	tokens := Tokenize(in)
	kinds := make([]TokenKind, len(tokens))
	var b strings.Builder
	for i, token := range tokens {
		kinds[i] = token.Kind
		b.WriteString(token.Text)
	}
	assert.Equal(t, in, b.String())
	assert.Equal(t, []TokenKind{Ident, Class, ID, Function, Ident, Single, Attribute, Single, Block}, kinds,
		"%v", tokens)
}

func TestPropertyOnlyTypeSelectorsChange(t *testing.T) {
	ident := rapid.StringMatching(`[a-z]{1,5}(-[a-z]{1,4})?`)
	rapid.Check(t, func(t *rapid.T) {
		rw, s, _ := setup()
		var in, expected strings.Builder
		n := rapid.IntRange(1, 8).Draw(t, "parts")
		for i := 0; i < n; i++ {
			name := ident.Draw(t, "ident")
			var part string
			switch rapid.IntRange(0, 3).Draw(t, "kind") {
			case 0:
				part = "." + name
			case 1:
				part = "#" + name
			case 2:
				part = fmt.Sprintf(`[%s="%s"]`, name, name)
			default:
				part = " " + name + " "
			}
			in.WriteString(part)
			if strings.HasPrefix(part, " ") && strings.Contains(name, "-") {
				concrete, _ := rw.Registry().Resolve(name, s)
				part = " " + concrete + " "
			}
			expected.WriteString(part)
		}
		if out := rw.Rewrite(in.String(), s); out != expected.String() {
			t.Fatalf("expected %q, is %q", expected.String(), out)
		}
	})
}
