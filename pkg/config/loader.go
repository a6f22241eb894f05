package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mapform/pkg/options"
)

// LoadFS walks fsys and merges every JSON/YAML document found. Global
// options deep merge in path order; a form may only be declared once.
func LoadFS(fsys fs.FS) (*Document, error) {
	doc := &Document{Options: options.Map{}, forms: map[string]FormConfig{}}
	if fsys == nil {
		return doc, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		file, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		merged, err := options.MergeCanonical(doc.Options, file.Options)
		if err != nil {
			return fmt.Errorf("config: file %s options: %w", path, err)
		}
		doc.Options = merged
		doc.Media = file.Media.apply(doc.Media)

		for rawName, form := range file.Forms {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("config: file %s defines a form with an empty name", path)
			}
			if existing, exists := doc.forms[name]; exists {
				return fmt.Errorf("config: duplicate form %q (files %s and %s)", name, existing.Source, path)
			}
			normalised, err := normaliseForm(form, name, path)
			if err != nil {
				return err
			}
			doc.forms[name] = normalised
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Form returns the named form. Global options and media are attached so
// the form can be built on its own.
func (d *Document) Form(name string) (FormConfig, bool) {
	if d == nil {
		return FormConfig{}, false
	}
	form, ok := d.forms[name]
	if !ok {
		return FormConfig{}, false
	}
	form.global = options.Clone(d.Options)
	form.media = d.Media
	return form, true
}

// Names lists the declared forms in sorted order.
func (d *Document) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.forms))
	for name := range d.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether no forms were loaded.
func (d *Document) Empty() bool {
	return d == nil || len(d.forms) == 0
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("config: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(raw FormConfig, name, source string) (FormConfig, error) {
	form := raw
	form.Name = name
	form.Source = source
	var err error
	if form.Options, err = canonical(raw.Options); err != nil {
		return FormConfig{}, fmt.Errorf("config: form %q (file %s) options: %w", name, source, err)
	}
	if form.ListMapOptions, err = canonical(raw.ListMapOptions); err != nil {
		return FormConfig{}, fmt.Errorf("config: form %q (file %s) list map options: %w", name, source, err)
	}
	form.Template = strings.TrimSpace(raw.Template)

	form.Maps = make([]MapConfig, len(raw.Maps))
	for idx, group := range raw.Maps {
		if len(group.Fields) == 0 {
			return FormConfig{}, fmt.Errorf("config: form %q (file %s) map %d lists no fields", name, source, idx)
		}
		members := make([]string, len(group.Fields))
		for pos, field := range group.Fields {
			trimmed := strings.TrimSpace(field)
			if trimmed == "" {
				return FormConfig{}, fmt.Errorf("config: form %q (file %s) map %d has an empty field at index %d", name, source, idx, pos)
			}
			members[pos] = trimmed
		}
		groupOpts, err := canonical(group.Options)
		if err != nil {
			return FormConfig{}, fmt.Errorf("config: form %q (file %s) map %d options: %w", name, source, idx, err)
		}
		form.Maps[idx] = MapConfig{
			Fields:   members,
			Options:  groupOpts,
			Template: strings.TrimSpace(group.Template),
		}
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	form.Fields = make([]FieldConfig, len(raw.Fields))
	for idx, field := range raw.Fields {
		field.Name = strings.TrimSpace(field.Name)
		field.Type = strings.ToLower(strings.TrimSpace(field.Type))
		if field.Name == "" {
			return FormConfig{}, fmt.Errorf("config: form %q (file %s) field %d has no name", name, source, idx)
		}
		if _, dup := seen[field.Name]; dup {
			return FormConfig{}, fmt.Errorf("config: form %q (file %s) declares field %q twice", name, source, field.Name)
		}
		seen[field.Name] = struct{}{}
		if field.Type == "" {
			field.Type = FieldTypeChar
		}
		form.Fields[idx] = field
	}
	return form, nil
}

// canonical spells every option key in one convention so documents may mix
// snake_case and camelCase.
func canonical(m options.Map) (options.Map, error) {
	return options.Translate(m, options.Canonical)
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
