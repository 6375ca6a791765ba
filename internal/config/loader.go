// internal/config/loader.go
//
// Configuration resolver and process-lifetime provider.
//
/*
Context
--------
`Resolver.Resolve()` builds one immutable `Resolved` value:

  1. Locate the source (first candidate file, else DBD_* environment).
  2. Load it into a raw tree.
  3. Merge the raw tree with the default tree; raw values win.
  4. Decode the merged tree into the typed `Config`.

`Provider` wraps a Resolver and caches the first successful result in an
`atomic.Pointer` for lock-free reads.  There is no reload; the value lives
as long as the Provider, which is built once in main and passed to whoever
needs it.

Instrumentation
---------------
  • DEBUG span  – "config source loaded" with the file path or "env".
  • INFO  span  – "config resolved" with the source and port.
  • Logs use the global *sugared* logger (`zap.S()`) so they are silent
    until main installs a real logger.

Notes
-----
  • A failed resolution is not cached; the next Get retries.
  • The validator never reads the Provider cache.  It re-loads the source.
*/
package config

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/discord-dashboard/core/internal/fault"
	"github.com/discord-dashboard/core/internal/metrics"
)

/*──────────────────────────── resolver ────────────────────────────────────*/

// Resolver locates, loads, and merges configuration.  It keeps no state
// between calls.
type Resolver struct {
	dir         string
	defaults    map[string]any
	scripts     bool
	envFallback bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDefaults replaces the default tree.
func WithDefaults(defaults map[string]any) Option {
	return func(r *Resolver) { r.defaults = copyTree(defaults) }
}

// WithScriptLoading enables evaluation of `.js` and `.ts` candidates.
func WithScriptLoading(enabled bool) Option {
	return func(r *Resolver) { r.scripts = enabled }
}

// WithEnvFallback controls whether DBD_* variables are used when no file
// is found.  On by default.
func WithEnvFallback(enabled bool) Option {
	return func(r *Resolver) { r.envFallback = enabled }
}

// NewResolver returns a Resolver searching dir.  An empty dir means the
// working directory.
func NewResolver(dir string, opts ...Option) *Resolver {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	r := &Resolver{
		dir:         dir,
		defaults:    DefaultValues(),
		envFallback: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Defaults returns a copy of the resolver's default tree.
func (r *Resolver) Defaults() map[string]any { return copyTree(r.defaults) }

// Resolve runs locate, load, merge, and decode.
func (r *Resolver) Resolve() (*Resolved, error) {
	source, raw, err := r.LoadSource()
	if err != nil {
		metrics.ConfigResolveErrorsTotal.Inc()
		zap.S().Errorw("config load failed", "dir", r.dir, "err", err)
		return nil, err
	}
	zap.S().Debugw("config source loaded", "source", source)

	tree := MergeDefaults(raw, r.defaults)
	cfg, err := decode(tree)
	if err != nil {
		metrics.ConfigResolveErrorsTotal.Inc()
		zap.S().Errorw("config decode failed", "source", source, "err", err)
		return nil, err
	}

	metrics.ConfigResolutionsTotal.Inc()
	zap.S().Infow("config resolved", "source", source, "port", cfg.Server.Port)
	return &Resolved{source: source, tree: tree, cfg: cfg}, nil
}

// decode unmarshals a tree into Config.  Input is weakly typed, so "8080"
// from the environment decodes as 8080.
func decode(tree map[string]any) (Config, error) {
	var cfg Config

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(tree, "."), nil); err != nil {
		return cfg, invalidValue(err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, invalidValue(err)
	}
	return cfg, nil
}

func invalidValue(err error) error {
	return fault.Configuration(
		fmt.Sprintf("Invalid configuration value: %v", err),
		critical,
	).Wrap(fmt.Errorf("%w: %w", ErrInvalidValue, err))
}

/*──────────────────────────── resolved ────────────────────────────────────*/

// Resolved is a fully defaulted configuration.  It is never mutated.
type Resolved struct {
	source string
	tree   map[string]any
	cfg    Config
}

// Source is the file path the tree came from, or SourceEnv.
func (r *Resolved) Source() string { return r.source }

// Config returns the typed view.
func (r *Resolved) Config() Config { return r.cfg }

// Tree returns a deep copy of the merged tree.
func (r *Resolved) Tree() map[string]any { return copyTree(r.tree) }

// Lookup reads one dotted path from the merged tree.
func (r *Resolved) Lookup(path string) any { return Lookup(r.tree, path) }

/*──────────────────────────── provider ────────────────────────────────────*/

// Provider resolves once and hands out the cached result.  Safe for
// concurrent use.
type Provider struct {
	resolver *Resolver
	mu       sync.Mutex
	current  atomic.Pointer[Resolved]
}

// NewProvider wraps r.
func NewProvider(r *Resolver) *Provider {
	return &Provider{resolver: r}
}

// Resolver returns the wrapped resolver.
func (p *Provider) Resolver() *Resolver { return p.resolver }

// Get returns the cached configuration, resolving it on first use.
func (p *Provider) Get() (*Resolved, error) {
	if res := p.current.Load(); res != nil {
		return res, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if res := p.current.Load(); res != nil {
		return res, nil
	}
	res, err := p.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	p.current.Store(res)
	return res, nil
}
