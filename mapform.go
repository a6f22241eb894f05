// Package mapform regroups geometry fields of a form into shared multi-layer
// map widgets and translates initial and cleaned data between the grouped
// and the original field names.
//
// Most callers only need New, or LoadConfig followed by FormConfig.Build.
// The subpackages stay importable for finer control.
package mapform

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-mapform/pkg/config"
	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/forms"
	"github.com/goliatone/go-mapform/pkg/options"
	"github.com/goliatone/go-mapform/pkg/regroup"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// Aliases for the types most callers touch.
type (
	Form    = forms.Form
	Config  = forms.Config
	Option  = forms.Option
	Spec    = regroup.Spec
	KeyMap  = regroup.KeyMap
	Options = options.Map
)

// New regroups set according to cfg and returns an unbound form.
func New(set *fields.Set, cfg Config, opts ...Option) (*Form, error) {
	return forms.New(set, cfg, opts...)
}

// Regroup is a shortcut to regroup.Regroup.
func Regroup(set *fields.Set, specs []Spec, defaults Options, opts ...regroup.Option) (*fields.Set, KeyMap, error) {
	return regroup.Regroup(set, specs, defaults, opts...)
}

// LoadConfig loads form declarations from fsys.
func LoadConfig(fsys fs.FS) (*config.Document, error) {
	return config.LoadFS(fsys)
}

// LoadConfigDir loads form declarations from a directory on disk.
func LoadConfigDir(dir string) (*config.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("mapform: config dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mapform: config dir %q is not a directory", dir)
	}
	return config.LoadFS(os.DirFS(dir))
}

// TranslateOptions rewrites option keys to the widget's camelCase form.
func TranslateOptions(m Options) (Options, error) {
	return options.Translate(m, options.CamelCase)
}

// EmbeddedTemplates exposes the built-in widget templates so callers can
// reuse or extend them without importing the widgets package directly.
func EmbeddedTemplates() fs.FS {
	return widgets.TemplatesFS()
}
