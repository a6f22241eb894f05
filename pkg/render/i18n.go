package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the text shown when key cannot be
// translated.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Localizer translates labels with a fallback.
type Localizer struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Label translates key, returning fallback (or the key when fallback is
// blank) when no translation exists.
func (l Localizer) Label(key, fallback string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if l.Translator == nil {
		return l.missing(key, fallback, ErrMissingTranslator)
	}
	result, err := l.Translator.Translate(l.Locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return l.missing(key, fallback, err)
}

func (l Localizer) missing(key, fallback string, err error) string {
	if l.OnMissing != nil {
		return l.OnMissing(l.Locale, key, fallback, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
