package fields

import (
	"github.com/goliatone/go-mapform/pkg/geometry"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Option configures a built-in field.
type Option func(*settings)

type settings struct {
	required   bool
	maxLength  int
	srid       int
	widget     widgets.Widget
	widgetOpts []widgets.Option
}

func newSettings(configure []Option) settings {
	cfg := settings{required: true, srid: geometry.DefaultSRID}
	for _, opt := range configure {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Required toggles whether an empty value fails validation. Fields are
// required by default.
func Required(required bool) Option {
	return func(cfg *settings) {
		cfg.required = required
	}
}

// WithMaxLength bounds the length of text values. Zero disables the check.
func WithMaxLength(n int) Option {
	return func(cfg *settings) {
		if n >= 0 {
			cfg.maxLength = n
		}
	}
}

// WithSRID sets the spatial reference cleaned geometries are stored in.
func WithSRID(srid int) Option {
	return func(cfg *settings) {
		if srid > 0 {
			cfg.srid = srid
		}
	}
}

// WithWidget overrides the default widget.
func WithWidget(widget widgets.Widget) Option {
	return func(cfg *settings) {
		cfg.widget = widget
	}
}

// WithWidgetOptions forwards options to the default widget constructor.
func WithWidgetOptions(opts ...widgets.Option) Option {
	return func(cfg *settings) {
		cfg.widgetOpts = append(cfg.widgetOpts, opts...)
	}
}
