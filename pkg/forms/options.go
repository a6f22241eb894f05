package forms

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/regroup"
	"github.com/goliatone/go-mapform/pkg/render"
	rendertemplate "github.com/goliatone/go-mapform/pkg/render/template"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Config describes how a form groups its geometry fields.
type Config struct {
	// Maps lists the field groups. Empty means one map per geometry field.
	Maps []regroup.Spec
	// Options are the map defaults every group merges its own options over.
	Options options.Map
	// Template is the map template used by groups that do not set one.
	Template string
	// Widgets are forwarded to every map and layer built for the form.
	Widgets []widgets.Option
}

// CleanHook runs after field cleaning and fan-in. It sees the original
// field names and may return a replacement map. Returning a
// *fields.ValidationError attaches its messages to the named field, or to
// the form when Field is empty.
type CleanHook func(cleaned map[string]any) (map[string]any, error)

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used for lifecycle debugging.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithCleanHook installs a form wide validation step.
func WithCleanHook(hook CleanHook) Option {
	return func(f *Form) {
		f.cleanHook = hook
	}
}

// WithTemplates overrides the renderer used for the form template.
func WithTemplates(renderer rendertemplate.TemplateRenderer) Option {
	return func(f *Form) {
		if renderer != nil {
			f.templates = renderer
		}
	}
}

// WithHiddenFields adds hidden inputs, such as a CSRF token, to Render.
func WithHiddenFields(hidden ...render.HiddenField) Option {
	return func(f *Form) {
		f.hidden = render.MergeHiddenFields(f.hidden, hidden...)
	}
}

// WithLocalizer translates row labels using the "fields.<name>.label" key.
func WithLocalizer(localizer render.Localizer) Option {
	return func(f *Form) {
		f.localizer = &localizer
	}
}
