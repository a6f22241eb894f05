package media

import (
	"sort"
	"strings"
	"sync"
)

// Matcher decides whether a provider handles the supplied base layer name
// (for example "google.streets").
type Matcher func(layer string) bool

// Source builds the script URL a provider needs from the configuration.
type Source func(cfg Config) string

type rule struct {
	name     string
	priority int
	match    Matcher
	source   Source
	order    int
}

// Registry resolves the provider script required by each base layer. Higher
// priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in providers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a provider. Blank names and nil functions are ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher, source Source) {
	if r == nil || matcher == nil || source == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		source:   source,
		order:    len(r.rules),
	})
}

// Resolve returns the provider name and script URL for a base layer.
func (r *Registry) Resolve(cfg Config, layer string) (string, string, bool) {
	if r == nil {
		return "", "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	cfg = cfg.WithDefaults()
	for _, entry := range rules {
		if entry.match(layer) {
			return entry.name, entry.source(cfg), true
		}
	}
	return "", "", false
}

// Assets returns the scripts and stylesheets a map using layers requires:
// the mapping library, the widget script, then one script per provider in
// first use order.
func (r *Registry) Assets(cfg Config, layers []string) Assets {
	cfg = cfg.WithDefaults()
	assets := Assets{
		Scripts:     []string{cfg.OpenLayersAPI, cfg.WidgetScript()},
		Stylesheets: []string{cfg.Stylesheet()},
	}
	for _, layer := range layers {
		if _, script, ok := r.Resolve(cfg, layer); ok && script != "" {
			assets.Scripts = append(assets.Scripts, script)
		}
	}
	return assets.normalize()
}

func prefix(p string) Matcher {
	return func(layer string) bool {
		return strings.HasPrefix(strings.TrimSpace(layer), p)
	}
}

func (r *Registry) registerBuiltins() {
	r.Register("osm", 50, prefix("osm."), func(cfg Config) string {
		return cfg.OSMAPI
	})
	r.Register("google", 50, prefix("google."), func(cfg Config) string {
		return cfg.GoogleAPI + "&key=" + cfg.GoogleAPIKey
	})
	r.Register("yahoo", 50, prefix("yahoo."), func(cfg Config) string {
		return cfg.YahooAPI + "&appid=" + cfg.YahooAppID
	})
	r.Register("ve", 50, prefix("ve."), func(cfg Config) string {
		return cfg.VirtualEarthAPI
	})
	r.Register("cloudmade", 50, prefix("cloudmade."), func(cfg Config) string {
		return cfg.CloudmadeAPI + "#" + cfg.CloudmadeAPIKey
	})
}
