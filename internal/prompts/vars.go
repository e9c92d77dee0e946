package prompts

import (
	"regexp"
	"strings"
)

// Placeholder is one {{VAR:name|option=value...}} slot in a template
// context. Recognised options are default and join.
type Placeholder struct {
	Raw     string
	Name    string
	Options map[string]string
}

var placeholderRe = regexp.MustCompile(`\{\{VAR:([A-Za-z0-9_-]+)([^}]*)}}`)

var escapes = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\t`, "\t", `\r`, "\r")

// ParsePlaceholders lists the placeholders of body in order of appearance.
func ParsePlaceholders(body string) []Placeholder {
	var out []Placeholder
	for _, m := range placeholderRe.FindAllStringSubmatch(body, -1) {
		out = append(out, Placeholder{Raw: m[0], Name: m[1], Options: parseOptions(m[2])})
	}
	return out
}

// parseOptions reads "|key=value|key2='value'" segments. Keys are
// lower-cased; one level of matching quotes is removed from values.
func parseOptions(s string) map[string]string {
	opts := make(map[string]string)
	for _, seg := range strings.Split(s, "|") {
		key, val, ok := strings.Cut(seg, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" {
			continue
		}
		opts[key] = escapes.Replace(unquote(strings.TrimSpace(val)))
	}
	return opts
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
		return s[1 : len(s)-1]
	}
	return s
}

// Render fills every placeholder in body from vars. A blank variable takes
// the placeholder default (or nothing); a join option collapses the
// non-empty lines of a value with its separator.
func Render(body string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(body, func(raw string) string {
		ph := ParsePlaceholders(raw)[0]
		val := strings.TrimSpace(vars[ph.Name])
		if val == "" {
			return ph.Options["default"]
		}
		sep, ok := ph.Options["join"]
		if !ok {
			return val
		}
		var lines []string
		for _, line := range strings.Split(val, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, sep)
	})
}
