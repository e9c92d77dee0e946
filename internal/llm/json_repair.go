package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// RepairStats records what RepairPayload had to do to a payload.
type RepairStats struct {
	OriginalBytes int      `json:"original_bytes"`
	RepairedBytes int      `json:"repaired_bytes"`
	Strategies    []string `json:"strategies"`
	WasRepaired   bool     `json:"was_repaired"`
	// Truncated is set when an unterminated string or structure had to be
	// closed, so the repaired payload may be missing content.
	Truncated bool `json:"truncated"`
}

var (
	codeFence     = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*(.*?)\\s*```\\s*$")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// RepairPayload turns an almost-JSON response body into valid JSON. Cheap
// fixes run first (markdown fences, surrounding prose, trailing commas,
// unclosed brackets); anything still invalid goes through jsonrepair.
// Closing brackets or running jsonrepair marks the result Truncated.
func RepairPayload(raw string) (string, RepairStats, error) {
	stats := RepairStats{OriginalBytes: len(raw)}
	if json.Valid([]byte(raw)) {
		stats.RepairedBytes = len(raw)
		return raw, stats, nil
	}
	stats.WasRepaired = true

	s := raw
	apply := func(name string, lossy bool, fix func(string) string) {
		if json.Valid([]byte(s)) {
			return
		}
		if out := fix(s); out != s {
			s = out
			stats.Strategies = append(stats.Strategies, name)
			stats.Truncated = stats.Truncated || lossy
		}
	}

	apply("code_fence", false, func(in string) string {
		if m := codeFence.FindStringSubmatch(in); m != nil {
			return m[1]
		}
		return in
	})
	apply("surrounding_text", false, extractObject)
	apply("trailing_commas", false, func(in string) string {
		return trailingComma.ReplaceAllString(in, "$1")
	})
	apply("completion", true, closeBrackets)
	apply("jsonrepair", true, func(in string) string {
		out, err := jsonrepair.JSONRepair(in)
		if err != nil {
			return in
		}
		return out
	})

	stats.RepairedBytes = len(s)
	if !json.Valid([]byte(s)) {
		return s, stats, fmt.Errorf("payload still invalid after %d repair strategies", len(stats.Strategies))
	}
	return s, stats, nil
}

// extractObject drops any text before the first '{' and after the last '}'.
func extractObject(in string) string {
	start := strings.Index(in, "{")
	if start < 0 {
		return in
	}
	end := strings.LastIndex(in, "}")
	if end < start {
		return in[start:]
	}
	return in[start : end+1]
}

// closeBrackets appends the closers for any '{' or '[' left open, ignoring
// brackets inside string literals.
func closeBrackets(in string) string {
	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			stack = append(stack, '}')
		case c == '[':
			stack = append(stack, ']')
		case (c == '}' || c == ']') && len(stack) > 0 && stack[len(stack)-1] == c:
			stack = stack[:len(stack)-1]
		}
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(in, " \t\r\n,"))
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}
