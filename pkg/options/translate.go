package options

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Convention rewrites a single option key.
type Convention func(key string) string

var (
	separatedPattern = regexp.MustCompile(`_+[A-Za-z0-9]`)
	camelPattern     = regexp.MustCompile(`[a-z0-9][A-Z]`)
	plainKeyPattern  = regexp.MustCompile(`^[A-Za-z0-9_]*$`)
)

// CamelCase turns underscore separated keys into lower camelCase:
// "overlay_style" becomes "overlayStyle". A run of underscores collapses with
// the character after it. Keys already in camelCase are
// returned unchanged.
func CamelCase(key string) string {
	if !plainKeyPattern.MatchString(key) {
		return key
	}
	return separatedPattern.ReplaceAllStringFunc(key, func(match string) string {
		return strings.ToUpper(match[len(match)-1:])
	})
}

// Canonical spells key the way every configuration source is normalised
// to before merging: the snake_case form of its CamelCase rendering. Two keys
// share a canonical form exactly when they translate to the same client key.
func Canonical(key string) string {
	return SnakeCase(CamelCase(key))
}

// SnakeCase is the inverse of CamelCase: "overlayStyle" becomes
// "overlay_style".
func SnakeCase(key string) string {
	if !plainKeyPattern.MatchString(key) {
		return key
	}
	return camelPattern.ReplaceAllStringFunc(key, func(match string) string {
		runes := []rune(match)
		return string(runes[0]) + "_" + string(unicode.ToLower(runes[1]))
	})
}

// Translate rewrites every key of m, recursing into nested maps. Sequences and
// scalars are copied through untouched, including sequences of maps. The
// input is never mutated.
func Translate(m Map, convention Convention) (Map, error) {
	if convention == nil {
		convention = CamelCase
	}
	return translateMap(m, convention, "")
}

// MustTranslate panics when Translate fails. Useful for literal option maps.
func MustTranslate(m Map, convention Convention) Map {
	out, err := Translate(m, convention)
	if err != nil {
		panic(err)
	}
	return out
}

func translateMap(m Map, convention Convention, path string) (Map, error) {
	out := make(Map, len(m))
	for key, value := range m {
		next := convention(key)
		childPath := joinPath(path, key)
		translated, err := translateValue(value, convention, childPath)
		if err != nil {
			return nil, err
		}
		if _, exists := out[next]; exists {
			return nil, &ConfigError{Path: childPath, Reason: fmt.Sprintf("key %q collides after translation", next)}
		}
		out[next] = translated
	}
	return out, nil
}

func translateValue(value any, convention Convention, path string) (any, error) {
	nested, ok, err := asMap(value, path)
	if err != nil {
		return nil, err
	}
	if ok {
		return translateMap(nested, convention, path)
	}
	return cloneValue(value), nil
}

// asMap normalises the map shapes produced by literals and decoders into Map.
func asMap(value any, path string) (Map, bool, error) {
	switch typed := value.(type) {
	case Map:
		return typed, true, nil
	case map[string]any:
		return Map(typed), true, nil
	case map[string]string:
		out := make(Map, len(typed))
		for key, item := range typed {
			out[key] = item
		}
		return out, true, nil
	case map[any]any:
		out := make(Map, len(typed))
		for key, item := range typed {
			str, ok := key.(string)
			if !ok {
				return nil, false, &ConfigError{
					Path:   path,
					Reason: fmt.Sprintf("non-string key %v (%T)", key, key),
				}
			}
			out[str] = item
		}
		return out, true, nil
	default:
		return nil, false, nil
	}
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
