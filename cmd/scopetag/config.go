package main

import (
	"fmt"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/viperadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/scopedtags"
	"github.com/npillmayer/scopedtags/scope"
)

// tracers which --trace sets the level for.
var traceKeys = []string{
	"scopedtags",
	"scopedtags.scope",
	"scopedtags.mint",
	"scopedtags.registry",
	"scopedtags.markup",
	"scopedtags.selector",
	"scopedtags.stylesheet",
	"scopedtags.dom",
	"scopedtags.htmldom",
	"scopedtags.transform",
}

// placeholder is the handler bound to names given with --define.
type placeholder struct {
	name string
}

// session is a polyfill together with the scope input is rewritten for.
type session struct {
	polyfill *scopedtags.Polyfill
	scope    scope.ID
}

func configure() schuko.Configuration {
	conf := viperadapter.New(appName)
	conf.InitDefaults()
	if flagConfig {
		conf.InitConfigPath()
	}
	if flagMinter != "" {
		conf.Set(scopedtags.KeyMinter, flagMinter)
	}
	if flagTrace != "" {
		for _, key := range traceKeys {
			conf.Set("trace."+key, flagTrace)
		}
	}
	return conf
}

func setupTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func setup() (*session, error) {
	conf := configure()
	if err := setupTracing(conf); err != nil {
		return nil, fmt.Errorf("cannot set up tracing: %w", err)
	}
	p, err := scopedtags.FromConfig(conf)
	if err != nil {
		return nil, err
	}
	if flagDepth < 0 {
		return nil, fmt.Errorf("depth must not be negative: %d", flagDepth)
	}
	s := p.Root()
	for i := 0; i < flagDepth; i++ {
		if s, err = p.NewScope(s); err != nil {
			return nil, err
		}
	}
	for _, name := range flagDefine {
		concrete, err := p.Define(name, s, &placeholder{name: name})
		if err != nil {
			return nil, fmt.Errorf("cannot define %q: %w", name, err)
		}
		tracing.Select("scopedtags").Debugf("defined %s as %s in %v", name, concrete, s)
	}
	return &session{polyfill: p, scope: s}, nil
}
