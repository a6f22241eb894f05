package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-mapform/pkg/fields"
	"github.com/goliatone/go-mapform/pkg/media"
	"github.com/goliatone/go-mapform/pkg/regroup"
	"github.com/goliatone/go-mapform/pkg/render"
	rendertemplate "github.com/goliatone/go-mapform/pkg/render/template"
	"github.com/goliatone/go-mapform/pkg/widgets"
)

// ErrNotBound is returned by Clean before Bind was called.
var ErrNotBound = errors.New("forms: form has no bound data")

// Form is one instance of a form: its regrouped fields plus the initial and
// submitted data of a single request. A Form must not be shared between
// requests; build one per request from the same field set.
type Form struct {
	fields  *fields.Set
	keymap  regroup.KeyMap
	initial map[string]any
	data    map[string]any
	bound   bool

	cleaned map[string]any
	errors  *fields.Errors
	cleanOK bool

	cleanHook CleanHook
	templates rendertemplate.TemplateRenderer
	hidden    map[string]string
	localizer *render.Localizer
	logger    *zap.Logger
}

// New regroups set according to cfg. Configuration mistakes in cfg.Maps are
// returned here, before anything renders. set itself is not modified.
func New(set *fields.Set, cfg Config, opts ...Option) (*Form, error) {
	form := &Form{
		initial: map[string]any{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(form)
		}
	}

	regrouped, keymap, err := regroup.Regroup(set, cfg.Maps, cfg.Options,
		regroup.WithTemplate(cfg.Template),
		regroup.WithWidgetOptions(cfg.Widgets...),
		regroup.WithLogger(form.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("forms: %w", err)
	}
	form.fields = regrouped
	form.keymap = keymap
	return form, nil
}

// Fields returns the regrouped field set.
func (f *Form) Fields() *fields.Set {
	return f.fields.Clone()
}

// KeyMap returns the composite bookkeeping.
func (f *Form) KeyMap() regroup.KeyMap {
	return f.keymap
}

// SetInitial installs initial values keyed by original field names.
func (f *Form) SetInitial(initial map[string]any) {
	f.initial = regroup.ApplyInitial(initial, f.keymap)
	f.reset()
}

// Initial returns the initial values keyed by form row.
func (f *Form) Initial() map[string]any {
	return copyMap(f.initial)
}

// Bind attaches submitted data, keyed by input name.
func (f *Form) Bind(data map[string]any) {
	f.data = copyMap(data)
	f.bound = true
	f.reset()
}

// BindValues binds url encoded form values. Single values are unwrapped.
func (f *Form) BindValues(values url.Values) {
	data := make(map[string]any, len(values))
	for key, items := range values {
		switch len(items) {
		case 0:
		case 1:
			data[key] = items[0]
		default:
			data[key] = append([]string(nil), items...)
		}
	}
	f.Bind(data)
}

// IsBound reports whether submitted data is attached.
func (f *Form) IsBound() bool {
	return f.bound
}

func (f *Form) reset() {
	f.cleaned = nil
	f.errors = nil
	f.cleanOK = false
}

// Value returns the submitted value of a row.
func (f *Form) Value(name string) any {
	field, ok := f.fields.Get(name)
	if !ok {
		return nil
	}
	return f.value(name, field)
}

func (f *Form) value(name string, field fields.Definition) any {
	if composite, ok := field.(*regroup.Composite); ok {
		values, found := composite.Map().ValueFromData(f.data, name)
		if !found {
			return nil
		}
		return values
	}
	return f.data[name]
}

// Clean validates every row and returns the cleaned data keyed by original
// field names. Validation failures are returned as *fields.Errors; the same
// value is available from Errors.
func (f *Form) Clean() (map[string]any, error) {
	if !f.bound {
		return nil, ErrNotBound
	}
	if f.cleanOK {
		return copyMap(f.cleaned), nil
	}
	if f.errors != nil {
		return nil, f.errors
	}

	errs := &fields.Errors{}
	cleaned := make(map[string]any, f.fields.Len())
	for _, entry := range f.fields.Entries() {
		value, err := entry.Field.Clean(f.value(entry.Name, entry.Field))
		if err != nil {
			if !errors.Is(err, fields.ErrValidation) {
				return nil, fmt.Errorf("forms: clean %q: %w", entry.Name, err)
			}
			f.recordError(errs, entry.Name, err)
			continue
		}
		cleaned[entry.Name] = value
	}
	if !errs.Empty() {
		return nil, f.fail(errs)
	}

	flat, err := regroup.ApplyCleaned(cleaned, f.keymap)
	if err != nil {
		errs.Add("", messagesOf(err)...)
		return nil, f.fail(errs)
	}

	if f.cleanHook != nil {
		replaced, err := f.cleanHook(copyMap(flat))
		if err != nil {
			var verr *fields.ValidationError
			if !errors.As(err, &verr) {
				return nil, fmt.Errorf("forms: clean hook: %w", err)
			}
			errs.Add(verr.Field, verr.Messages...)
			return nil, f.fail(errs)
		}
		if replaced != nil {
			flat = replaced
		}
	}

	f.cleaned = flat
	f.cleanOK = true
	f.logger.Debug("forms: cleaned", zap.Int("fields", len(flat)))
	return copyMap(flat), nil
}

func (f *Form) fail(errs *fields.Errors) error {
	f.errors = errs
	f.logger.Debug("forms: validation failed", zap.Error(errs))
	return errs
}

// recordError keys layer failures by the original field behind each layer
// so messages follow the names the caller declared.
func (f *Form) recordError(errs *fields.Errors, name string, err error) {
	var layerErrs *regroup.LayerErrors
	if errors.As(err, &layerErrs) {
		originals, _ := f.keymap.Originals(name)
		for idx, messages := range layerErrs.Layers {
			if idx < len(originals) {
				errs.Add(originals[idx], messages...)
			} else {
				errs.Add(name, messages...)
			}
		}
		return
	}
	errs.Add(name, messagesOf(err)...)
}

func messagesOf(err error) []string {
	var verr *fields.ValidationError
	if errors.As(err, &verr) {
		return verr.Messages
	}
	return []string{err.Error()}
}

// IsValid cleans the form and reports whether it passed.
func (f *Form) IsValid() bool {
	_, err := f.Clean()
	return err == nil
}

// Errors returns the errors of the last Clean, or nil.
func (f *Form) Errors() *fields.Errors {
	return f.errors
}

// AddErrors merges server side error payloads, keyed by original field
// names or paths, into the form errors so Render can show them.
func (f *Form) AddErrors(payload map[string][]string) {
	mapping := render.MapErrorPayload(payload, func(name string) (string, bool) {
		if f.fields.Index(name) >= 0 {
			return name, true
		}
		if _, ok := f.keymap.Composite(name); ok {
			return name, true
		}
		return "", false
	})
	if f.errors == nil {
		f.errors = &fields.Errors{}
	}
	for name, messages := range mapping.Fields {
		f.errors.Add(name, messages...)
	}
	f.errors.Add("", mapping.Form...)
	f.cleanOK = false
}

// ChangedFields lists original field names whose submitted value differs
// from the initial one.
func (f *Form) ChangedFields() []string {
	if !f.bound {
		return nil
	}
	var changed []string
	for _, entry := range f.fields.Entries() {
		initial := f.initial[entry.Name]
		data := f.value(entry.Name, entry.Field)
		composite, ok := entry.Field.(*regroup.Composite)
		if !ok {
			if fields.HasChanged(entry.Field, initial, data) {
				changed = append(changed, entry.Name)
			}
			continue
		}
		before, after := listOf(initial, len(composite.Children())), listOf(data, len(composite.Children()))
		for idx, child := range composite.Children() {
			if fields.HasChanged(child, before[idx], after[idx]) {
				changed = append(changed, composite.Names()[idx])
			}
		}
	}
	return changed
}

// HasChanged reports whether any field changed.
func (f *Form) HasChanged() bool {
	return len(f.ChangedFields()) > 0
}

func listOf(value any, size int) []any {
	out := make([]any, size)
	switch typed := value.(type) {
	case []any:
		copy(out, typed)
	case []string:
		for idx := 0; idx < size && idx < len(typed); idx++ {
			out[idx] = typed[idx]
		}
	case nil:
	default:
		if size > 0 {
			out[0] = typed
		}
	}
	return out
}

// Media collects the assets required by every map in the form.
func (f *Form) Media() media.Assets {
	var assets media.Assets
	for _, entry := range f.fields.Entries() {
		if holder, ok := entry.Field.Widget().(interface{ Media() media.Assets }); ok {
			assets = assets.Merge(holder.Media())
		}
	}
	return assets
}

// Render renders every row in order through the form template. Bound forms
// echo the submission, unbound forms show initial data.
func (f *Form) Render() (string, error) {
	renderer, err := f.renderer()
	if err != nil {
		return "", err
	}

	rows := make([]map[string]any, 0, f.fields.Len())
	for _, entry := range f.fields.Entries() {
		row, err := f.row(entry)
		if err != nil {
			return "", err
		}
		rows = append(rows, row)
	}

	hidden := make([]map[string]string, 0, len(f.hidden))
	for _, field := range render.SortedHiddenFields(f.hidden) {
		hidden = append(hidden, map[string]string{"name": field.Name, "value": field.Value})
	}

	var formErrors []string
	if f.errors != nil {
		formErrors = f.errors.Form
	}
	out, err := renderer.Render(widgets.TemplateForm, map[string]any{
		"rows":        rows,
		"form_errors": formErrors,
		"hidden":      hidden,
	})
	if err != nil {
		return "", fmt.Errorf("forms: render: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (f *Form) row(entry fields.Entry) (map[string]any, error) {
	id := "id_" + entry.Name
	value := f.initial[entry.Name]
	if f.bound {
		value = f.value(entry.Name, entry.Field)
	}

	html, err := entry.Field.Widget().Render(entry.Name, value, widgets.Attrs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("forms: render %q: %w", entry.Name, err)
	}

	labelFor := id
	var rowErrors []string
	if f.errors != nil {
		rowErrors = append(rowErrors, f.errors.For(entry.Name)...)
	}
	if composite, ok := entry.Field.(*regroup.Composite); ok {
		labelFor = composite.Map().IDForLabel(id)
		if f.errors != nil {
			for _, original := range composite.Names() {
				if original != entry.Name {
					rowErrors = append(rowErrors, f.errors.For(original)...)
				}
			}
		}
	}

	return map[string]any{
		"name":      entry.Name,
		"label":     f.label(entry.Name),
		"label_for": labelFor,
		"required":  entry.Field.Required(),
		"errors":    rowErrors,
		"html":      html,
	}, nil
}

func (f *Form) label(name string) string {
	fallback := widgets.PrettyName(name)
	if f.localizer == nil {
		return fallback
	}
	return f.localizer.Label("fields."+name+".label", fallback)
}

func (f *Form) renderer() (rendertemplate.TemplateRenderer, error) {
	if f.templates != nil {
		return f.templates, nil
	}
	return widgets.DefaultTemplates()
}

func copyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
