package scopedtags

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/scopedtags/dom/htmldom"
	"github.com/npillmayer/scopedtags/markup"
	"github.com/npillmayer/scopedtags/mint"
	"github.com/npillmayer/scopedtags/registry"
	"github.com/npillmayer/scopedtags/scope"
	"github.com/npillmayer/scopedtags/selector"
	"github.com/npillmayer/scopedtags/stylesheet"
	"github.com/npillmayer/scopedtags/transform"
)

// ErrConfig is returned for invalid configuration values.
var ErrConfig = errors.New("invalid configuration")

// Configuration keys read by FromConfig.
const (
	KeyMarker        = "scopedtags.marker"          // name of the marker attribute
	KeyMinter        = "scopedtags.minter"          // counter, random or uuid
	KeyCounterStart  = "scopedtags.counter.start"   // first number of the counter minter
	KeyRegisterAtUse = "scopedtags.register-at-use" // declare unowned names where they are used
)

// Polyfill bundles a scope tree with everything needed to scope names in it.
type Polyfill struct {
	Scopes      *scope.Tree
	Registry    *registry.Registry
	Markup      *markup.Rewriter
	Selectors   *selector.Rewriter
	Transformer *transform.Transformer
	Host        *htmldom.Host
}

type settings struct {
	minter        mint.Minter
	marker        string
	registerAtUse bool
}

// Option is a type to help initializing polyfills at creation time.
type Option struct {
	config func(*settings)
}

// Minter sets the strategy to mint concrete names. Default is a counter
// starting at 1.
func Minter(m mint.Minter) Option {
	return Option{config: func(s *settings) {
		s.minter = m
	}}
}

// Marker sets the name of the attribute carrying logical names.
func Marker(attr string) Option {
	return Option{config: func(s *settings) {
		s.marker = attr
	}}
}

// RegisterAtUse controls whether names no scope owns are declared in the scope
// they are used in (default) or left unscoped.
func RegisterAtUse(on bool) Option {
	return Option{config: func(s *settings) {
		s.registerAtUse = on
	}}
}

// New creates a polyfill with a fresh scope tree.
func New(opts ...Option) *Polyfill {
	s := &settings{
		minter:        mint.Counter(1),
		marker:        markup.DefaultMarker,
		registerAtUse: true,
	}
	for _, option := range opts {
		option.config(s)
	}
	p := &Polyfill{Scopes: scope.NewTree()}
	p.Registry = registry.New(p.Scopes, s.minter)
	p.Markup = markup.New(p.Registry, markup.Marker(s.marker))
	p.Selectors = selector.New(p.Registry)
	p.Transformer = transform.New(p.Registry, p.Selectors,
		transform.Marker(s.marker),
		transform.RegisterAtUse(s.registerAtUse))
	p.Host = htmldom.NewHost(p.Transformer, p.Markup)
	return p
}

// FromConfig creates a polyfill with settings taken from conf.
func FromConfig(conf schuko.Configuration) (*Polyfill, error) {
	var opts []Option
	start := 1
	if conf.IsSet(KeyCounterStart) {
		if start = conf.GetInt(KeyCounterStart); start < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrConfig, KeyCounterStart)
		}
	}
	name := strings.ToLower(strings.TrimSpace(conf.GetString(KeyMinter)))
	minter, ok := mint.ByName(name, uint64(start))
	if !ok {
		return nil, fmt.Errorf("%w: unknown minter %q", ErrConfig, name)
	}
	opts = append(opts, Minter(minter))
	if marker := strings.TrimSpace(conf.GetString(KeyMarker)); marker != "" {
		if strings.ContainsAny(marker, " \t\n\"'<>=/") {
			return nil, fmt.Errorf("%w: marker %q is not an attribute name", ErrConfig, marker)
		}
		opts = append(opts, Marker(marker))
	}
	if conf.IsSet(KeyRegisterAtUse) {
		opts = append(opts, RegisterAtUse(conf.GetBool(KeyRegisterAtUse)))
	}
	tracer().Debugf("polyfill from configuration: minter=%q start=%d", name, start)
	return New(opts...), nil
}

// Root returns the root scope.
func (p *Polyfill) Root() scope.ID {
	return p.Scopes.Root()
}

// NewScope creates a scope below parent.
func (p *Polyfill) NewScope(parent scope.ID) (scope.ID, error) {
	return p.Scopes.NewScope(parent)
}

// Define binds a handler to a logical name in scope s and returns the concrete
// name.
func (p *Polyfill) Define(logical string, s scope.ID, h registry.Handler) (string, error) {
	return p.Registry.Define(logical, s, h)
}

// Document returns the document for scope s.
func (p *Polyfill) Document(s scope.ID) (*htmldom.Document, error) {
	return p.Host.Document(s)
}

// RewriteMarkup scopes element names in markup text for scope s.
func (p *Polyfill) RewriteMarkup(text string, s scope.ID) string {
	return p.Markup.Rewrite(text, s)
}

// RewriteCSS scopes the selectors of a style sheet for scope s.
func (p *Polyfill) RewriteCSS(text string, s scope.ID) (string, error) {
	return stylesheet.Rewrite(text, s, p.Selectors)
}

// Adopt creates a view of a constructable style sheet, scoped for s.
func (p *Polyfill) Adopt(sheet *stylesheet.Sheet, s scope.ID) *stylesheet.Adopted {
	return stylesheet.Adopt(sheet, s, p.Selectors)
}

var defaultPolyfill struct {
	once sync.Once
	p    *Polyfill
}

// Default returns a process-wide polyfill, creating it on first use.
func Default() *Polyfill {
	defaultPolyfill.once.Do(func() {
		defaultPolyfill.p = New()
	})
	return defaultPolyfill.p
}
