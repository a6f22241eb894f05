package render

import (
	"sort"
	"strconv"
	"strings"
)

// ErrorMapping splits an error payload into row level and form level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Resolver maps a submitted field name onto the form row rendering it. A
// composite row resolves each of its original field names.
type Resolver func(name string) (row string, ok bool)

// MergeFormErrors concatenates message slices, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload routes server side errors keyed by field path onto rows.
// Paths may be JSON pointers ("/body/route") or dotted ("data.route");
// wrapper segments and indexes are ignored. Unknown and form level keys
// ("__all__", "non_field_errors") end up in Form so nothing is lost.
func MapErrorPayload(payload map[string][]string, resolve Resolver) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, rawPath := range paths {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		row, ok := resolvePath(rawPath, resolve)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[row] = MergeFormErrors(mapping.Fields[row], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func resolvePath(raw string, resolve Resolver) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) || resolve == nil {
		return "", false
	}
	segments := parsePathSegments(trimmed)
	for _, variant := range [][]string{segments, dropWrapperSegments(segments)} {
		for _, segment := range variant {
			if _, err := strconv.Atoi(segment); err == nil {
				continue
			}
			if row, ok := resolve(segment); ok {
				return row, true
			}
			break
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimLeft(clean, "#/.$")
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 && isWrapperSegment(out[0]) {
		out = out[1:]
	}
	return out
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "body", "request", "payload", "data", "attributes":
		return true
	default:
		return false
	}
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
