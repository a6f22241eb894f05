package widgets

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	rendertemplate "github.com/goliatone/go-mapform/pkg/render/template"
	"github.com/goliatone/go-mapform/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Built-in template identifiers.
const (
	TemplateMultiLayerMap = "templates/multi_layer_map"
	TemplateAdminMap      = "templates/admin_map"
	TemplateEditableLayer = "templates/editable_layer"
	TemplateInfoLayer     = "templates/info_layer"
	TemplateTextarea      = "templates/textarea"
	TemplateTextInput     = "templates/text_input"
	TemplateForm          = "templates/form"
)

var (
	defaultOnce      sync.Once
	defaultTemplates rendertemplate.TemplateRenderer
	defaultErr       error
)

// TemplatesFS exposes the embedded widget templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// DefaultTemplates returns the shared engine over the embedded templates.
// The engine is safe for concurrent use.
func DefaultTemplates() (rendertemplate.TemplateRenderer, error) {
	defaultOnce.Do(func() {
		engine, err := gotemplate.New(
			gotemplate.WithFS(embeddedTemplates),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			defaultErr = fmt.Errorf("widgets: configure template renderer: %w", err)
			return
		}
		defaultTemplates = engine
	})
	return defaultTemplates, defaultErr
}
