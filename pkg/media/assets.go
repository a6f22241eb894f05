package media

import "strings"

// Assets lists the script and stylesheet URLs a rendered map depends on.
type Assets struct {
	Scripts     []string `json:"scripts,omitempty"`
	Stylesheets []string `json:"stylesheets,omitempty"`
}

// Merge combines two asset lists, keeping first occurrence order.
func (a Assets) Merge(other Assets) Assets {
	merged := Assets{
		Scripts:     append(append([]string(nil), a.Scripts...), other.Scripts...),
		Stylesheets: append(append([]string(nil), a.Stylesheets...), other.Stylesheets...),
	}
	return merged.normalize()
}

// Empty reports whether no assets are listed.
func (a Assets) Empty() bool {
	return len(a.Scripts) == 0 && len(a.Stylesheets) == 0
}

func (a Assets) normalize() Assets {
	return Assets{
		Scripts:     dedupe(a.Scripts),
		Stylesheets: dedupe(a.Stylesheets),
	}
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
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
