package scanner

import (
	"regexp"

	"github.com/tigerprompts/pkg/models"
)

// RulesVersion identifies the rule tables below. Bump it whenever a pattern,
// message or allowlist entry changes so stored results can be compared.
const RulesVersion = "2026.1"

// Issue categories.
const (
	CategoryTruncation    = "Truncation"
	CategoryMissingImport = "Missing Import"
	CategoryUndefined     = "Undefined Function"
	CategoryErrorHandling = "Error Handling"
	CategoryDebug         = "Debug Code"
	CategoryTodo          = "Incomplete Code"
)

// Rule is a single line-oriented pattern check.
type Rule struct {
	ID       string
	Category string
	Severity models.Severity
	Pattern  *regexp.Regexp
	Problem  string
	Fix      string
}

const truncationFix = "Ask for the complete code with no placeholders, ellipses, or omitted sections."

// commentLead matches the start of a line or block comment in the common
// languages.
const commentLead = `(?://|#|--|/\*|<!--|\{/\*)`

// TruncationRules are evaluated in order; a line reports at most one
// truncation issue, from the first rule that matches it.
var TruncationRules = []Rule{
	{
		ID:      "ellipsis-comment",
		Pattern: regexp.MustCompile(`(?m)` + commentLead + `\s*(?:\.{3}|…)`),
		Problem: "Code truncated with an ellipsis comment",
	},
	{
		ID:      "rest-of",
		Pattern: regexp.MustCompile(`(?im)` + commentLead + `.*\b(?:rest|remainder) of (?:the )?(?:code|file|implementation|function|component|class|logic|methods?)\b`),
		Problem: "Code truncated with a \"rest of\" placeholder",
	},
	{
		ID:      "continued",
		Pattern: regexp.MustCompile(`(?im)` + commentLead + `.*\b(?:continued|continues|to be continued)\b`),
		Problem: "Code marked as continued elsewhere",
	},
	{
		ID:      "same-as",
		Pattern: regexp.MustCompile(`(?im)` + commentLead + `.*\bsame as (?:above|before|previous|earlier)\b`),
		Problem: "Code replaced with a \"same as above\" reference",
	},
	{
		ID:      "existing-code",
		Pattern: regexp.MustCompile(`(?im)` + commentLead + `.*\b(?:existing|previous|other|original) (?:code|logic|implementation|methods?) (?:here|remains?|unchanged|stays|omitted|\.{3})`),
		Problem: "Existing code omitted behind a placeholder comment",
	},
	{
		ID:      "goes-here",
		Pattern: regexp.MustCompile(`(?im)` + commentLead + `.*\b(?:code|logic|implementation) (?:goes )?here\b`),
		Problem: "Placeholder comment instead of an implementation",
	},
	{
		ID:      "bare-ellipsis",
		Pattern: regexp.MustCompile(`(?m)^[ \t]*(?:\.{3}|…)[ \t]*$`),
		Problem: "Line consisting only of an ellipsis",
	},
}

func init() {
	for i := range TruncationRules {
		TruncationRules[i].Category = CategoryTruncation
		TruncationRules[i].Severity = models.SeverityCritical
		TruncationRules[i].Fix = truncationFix
	}
}

// Hooks that must be imported from their framework before use.
var frameworkHooks = []string{
	"useState", "useEffect", "useContext", "useReducer", "useRef",
	"useMemo", "useCallback", "useLayoutEffect",
}

// builtins are callable names that are never reported as undefined.
var builtins = toSet(
	// JavaScript
	"console", "fetch", "Math", "JSON", "parseInt", "parseFloat", "isNaN", "isFinite",
	"setTimeout", "setInterval", "clearTimeout", "clearInterval", "requestAnimationFrame",
	"require", "Promise", "Array", "Object", "String", "Number", "Boolean", "Date",
	"Error", "TypeError", "Map", "Set", "Symbol", "RegExp", "alert", "confirm", "prompt",
	"encodeURIComponent", "decodeURIComponent", "structuredClone", "super", "BigInt",
	"describe", "it", "test", "expect", "beforeEach", "afterEach",
	// React
	"useState", "useEffect", "useContext", "useReducer", "useRef", "useMemo",
	"useCallback", "useLayoutEffect",
	// Python
	"print", "len", "range", "str", "int", "float", "bool", "list", "dict", "set",
	"tuple", "open", "enumerate", "zip", "map", "filter", "sorted", "reversed",
	"isinstance", "type", "input", "sum", "min", "max", "abs", "round", "any", "all",
	"format", "repr", "hasattr", "getattr", "setattr", "iter", "next", "object",
	"ValueError", "KeyError", "Exception",
	// Go
	"make", "append", "cap", "panic", "recover", "new", "copy", "delete",
)

// keywords precede "(" without being calls.
var keywords = toSet(
	"if", "for", "while", "switch", "catch", "function", "return", "typeof",
	"def", "elif", "with", "await", "async", "yield", "in", "of", "not", "and", "or",
	"except", "class", "import", "export", "from", "func", "sizeof", "assert", "lambda",
	"else", "do", "try", "throw", "case", "void", "delete", "instanceof", "print",
)

func toSet(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}
