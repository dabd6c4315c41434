// Package registry builds and memoizes search-engine instances keyed by
// "<engine>_<backend>", the Go analogue of the reference system's
// SearchEngineFactory — minus its package-level singleton: callers
// construct a Registry value explicitly (per Design Note §9) instead of
// reaching for a shared global.
package registry

import (
	"strings"
	"sync"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/engine"
	"github.com/5u5urrus/retriever/internal/envelope"
	"github.com/5u5urrus/retriever/internal/fetchclient"
)

// constructor builds a fresh engine.Service bound to one fetch client.
type constructor func(cfg config.Config, client fetchclient.Client) engine.Service

var builders = map[string]constructor{
	"baidu":      func(cfg config.Config, c fetchclient.Client) engine.Service { return engine.NewBaidu(cfg, c) },
	"bing":       func(cfg config.Config, c fetchclient.Client) engine.Service { return engine.NewBing(cfg, c) },
	"google":     func(cfg config.Config, c fetchclient.Client) engine.Service { return engine.NewGoogle(cfg, c) },
	"sogou":      func(cfg config.Config, c fetchclient.Client) engine.Service { return engine.NewSogou(cfg, c) },
	"so":         func(cfg config.Config, c fetchclient.Client) engine.Service { return engine.NewSo(cfg, c) },
	"douban":     func(cfg config.Config, c fetchclient.Client) engine.Service { return engine.NewDouban(cfg, c) },
	"duckduckgo": func(cfg config.Config, c fetchclient.Client) engine.Service { return engine.NewDuckDuckGo(cfg, c) },
}

// Registry is a thread-safe cache of engine instances, keyed by
// "<engine>_<backend>" exactly as _generate_cache_key builds it.
type Registry struct {
	cfg   config.Config
	mu    sync.Mutex
	cache map[string]engine.Service
}

func New(cfg config.Config) *Registry {
	return &Registry{cfg: cfg, cache: map[string]engine.Service{}}
}

// Get returns the cached engine.Service for (engineName, backend),
// constructing and memoizing it on first use. When forceNew is true the
// cache entry is bypassed and rebuilt, and the fresh instance replaces
// whatever was cached under that key, per SearchEngineFactory.get_service's
// force_new parameter.
func (r *Registry) Get(engineName string, backend fetchclient.Kind, forceNew bool) (engine.Service, error) {
	key := strings.ToLower(engineName) + "_" + string(backend)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !forceNew {
		if svc, ok := r.cache[key]; ok {
			return svc, nil
		}
	}

	build, ok := builders[strings.ToLower(engineName)]
	if !ok {
		return nil, envelope.ErrUnknownEngine
	}

	client, err := fetchclient.NewClient(backend, r.cfg)
	if err != nil {
		return nil, err
	}

	svc := build(r.cfg, client)
	r.cache[key] = svc
	return svc, nil
}

// DuckDuckGo returns a concrete *engine.DuckDuckGo for SearchSuggest, which
// isn't part of the shared engine.Service contract.
func (r *Registry) DuckDuckGo(backend fetchclient.Kind, forceNew bool) (*engine.DuckDuckGo, error) {
	svc, err := r.Get("duckduckgo", backend, forceNew)
	if err != nil {
		return nil, err
	}
	ddg, ok := svc.(*engine.DuckDuckGo)
	if !ok {
		return nil, envelope.ErrUnknownEngine
	}
	return ddg, nil
}
