package regroup

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Spec declares one group of fields sharing a map.
type Spec struct {
	Fields   []string
	Options  options.Map
	Template string
}

// NameFunc derives a composite name from its member names.
type NameFunc func(members []string) string

// LayerFactory builds the layer for a field whose widget is not already a
// layer.
type LayerFactory func(name string, field fields.Definition) (widgets.Layer, error)

// Option configures Regroup.
type Option func(*config)

type config struct {
	template     string
	nameFunc     NameFunc
	layerFactory LayerFactory
	widgetOpts   []widgets.Option
	logger       *zap.Logger
}

// WithTemplate sets the map template used by groups that do not name one.
func WithTemplate(template string) Option {
	return func(cfg *config) {
		cfg.template = strings.TrimSpace(template)
	}
}

// WithNameFunc overrides how composite names are derived.
func WithNameFunc(fn NameFunc) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.nameFunc = fn
		}
	}
}

// WithLayerFactory overrides how plain fields are turned into layers.
func WithLayerFactory(factory LayerFactory) Option {
	return func(cfg *config) {
		if factory != nil {
			cfg.layerFactory = factory
		}
	}
}

// WithWidgetOptions forwards options to every map and default layer built.
func WithWidgetOptions(opts ...widgets.Option) Option {
	return func(cfg *config) {
		cfg.widgetOpts = append(cfg.widgetOpts, opts...)
	}
}

// WithLogger records regroup decisions at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func newConfig(configure []Option) config {
	cfg := config{
		nameFunc: JoinNames,
		logger:   zap.NewNop(),
	}
	for _, opt := range configure {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.layerFactory == nil {
		cfg.layerFactory = defaultLayerFactory(cfg.widgetOpts)
	}
	return cfg
}

// JoinNames joins member names with "_".
func JoinNames(members []string) string {
	return strings.Join(members, "_")
}
