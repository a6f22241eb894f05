package widgets

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-mapform/pkg/media"
	"github.com/goliatone/go-mapform/pkg/options"
	rendertemplate "github.com/goliatone/go-mapform/pkg/render/template"
)

// Attrs are HTML attributes applied to a rendered control.
type Attrs map[string]string

// Widget renders a named value as HTML.
type Widget interface {
	Render(name string, value any, attrs Attrs) (string, error)
}

// Prepared holds the two halves of a rendered layer.
type Prepared struct {
	Script string
	HTML   string
}

// Layer is a geometry bearing sub widget of a Map.
type Layer interface {
	Widget
	Prepare(name string, value any, attrs Attrs) (Prepared, error)
	Options() options.Map
}

// Option configures widgets at construction time.
type Option func(*config)

type config struct {
	templates rendertemplate.TemplateRenderer
	template  string
	media     media.Config
	registry  *media.Registry
	srid      int
	sanitizer *bluemonday.Policy
}

// WithTemplates injects the template renderer used for markup.
func WithTemplates(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithTemplate overrides the template identifier (or inline template
// content) used to render the widget.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.template = trimmed
		}
	}
}

// WithMedia supplies provider endpoints and keys used by Map.Media.
func WithMedia(mediaConfig media.Config) Option {
	return func(cfg *config) {
		cfg.media = mediaConfig
	}
}

// WithMediaRegistry overrides the provider registry used by Map.Media.
func WithMediaRegistry(registry *media.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithSRID sets the spatial reference geometries are rendered in.
func WithSRID(srid int) Option {
	return func(cfg *config) {
		if srid > 0 {
			cfg.srid = srid
		}
	}
}

// WithSanitizer overrides the policy applied to info layer popup HTML.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

func newConfig(defaultTemplate string, configure []Option) config {
	cfg := config{template: defaultTemplate}
	for _, opt := range configure {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

func (cfg config) renderer() (rendertemplate.TemplateRenderer, error) {
	if cfg.templates != nil {
		return cfg.templates, nil
	}
	return DefaultTemplates()
}

func (cfg config) mediaRegistry() *media.Registry {
	if cfg.registry != nil {
		return cfg.registry
	}
	return defaultRegistry
}

var defaultRegistry = media.NewRegistry()

// PrettyName turns a field name into a label: "root_spread" becomes
// "Root spread".
func PrettyName(name string) string {
	if name == "" {
		return ""
	}
	spaced := strings.ReplaceAll(name, "_", " ")
	first, size := utf8.DecodeRuneInString(spaced)
	return string(unicode.ToUpper(first)) + spaced[size:]
}

type attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func sortedAttrs(attrs Attrs) []map[string]string {
	list := make([]attr, 0, len(attrs))
	for name, value := range attrs {
		if strings.TrimSpace(name) == "" {
			continue
		}
		list = append(list, attr{Name: name, Value: value})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	out := make([]map[string]string, len(list))
	for idx, item := range list {
		out[idx] = map[string]string{"name": item.Name, "value": item.Value}
	}
	return out
}

func mergeAttrs(base Attrs, extra Attrs) Attrs {
	out := make(Attrs, len(base)+len(extra))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range extra {
		out[key] = value
	}
	return out
}
