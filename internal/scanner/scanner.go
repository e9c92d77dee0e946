// Package scanner statically audits pasted source code for the usual
// failure modes of AI-generated code: truncation placeholders, missing
// imports, calls to functions that were never defined, unhandled async
// errors and leftover debug output.
package scanner

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/tigerprompts/pkg/models"
)

// Score penalties per issue severity.
const (
	CriticalPenalty = 30
	WarningPenalty  = 10
	maxReported     = 3 // undefined names listed per issue
	debugThreshold  = 3
)

type check func(src *source) []models.Issue

var checks = []check{
	checkTruncation,
	checkMissingImports,
	checkUndefinedCalls,
	checkErrorHandling,
	checkDebugResidue,
	checkTodos,
}

// Scan runs every check over code. It never fails: empty or malformed
// input yields an empty issue list and a score of 100.
func Scan(code string) models.ValidationResult {
	src := newSource(code)

	issues := []models.Issue{}
	for _, c := range checks {
		issues = append(issues, c(src)...)
	}

	result := models.ValidationResult{Issues: issues}
	result.Score = Score(result.CriticalCount(), result.WarningCount())
	result.Passed = result.CriticalCount() == 0
	if len(issues) > 0 {
		p := FollowUpPrompt(issues)
		result.FollowUpPrompt = &p
	}
	return result
}

// Score returns max(0, 100 - 30*critical - 10*warning).
func Score(critical, warning int) int {
	s := 100 - CriticalPenalty*critical - WarningPenalty*warning
	if s < 0 {
		return 0
	}
	return s
}

// source holds the raw code and a copy with comments and string literals
// blanked out, so identifier checks do not see prose.
type source struct {
	raw  string
	code string
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	hashComment  = regexp.MustCompile(`(?m)(?:^|[ \t])#[ \t!][^\n]*`)
	stringLit    = regexp.MustCompile("\"(?:\\\\.|[^\"\\\\\\n])*\"|'(?:\\\\.|[^'\\\\\\n])*'|`[^`]*`")
)

func newSource(raw string) *source {
	code := stringLit.ReplaceAllString(raw, `""`)
	code = blockComment.ReplaceAllString(code, " ")
	code = lineComment.ReplaceAllString(code, "")
	code = hashComment.ReplaceAllString(code, "")
	return &source{raw: raw, code: code}
}

// lineAt returns the 1-based line number of byte offset off in s.
func lineAt(s string, off int) int {
	return strings.Count(s[:off], "\n") + 1
}

func checkTruncation(src *source) []models.Issue {
	var issues []models.Issue
	seen := map[int]bool{}
	for _, r := range TruncationRules {
		for _, loc := range r.Pattern.FindAllStringIndex(src.raw, -1) {
			line := lineAt(src.raw, loc[0])
			if seen[line] {
				continue
			}
			seen[line] = true
			issues = append(issues, models.Issue{
				Type:     r.Severity,
				Category: r.Category,
				Problem:  r.Problem,
				Fix:      r.Fix,
				Line:     line,
			})
		}
	}
	slices.SortStableFunc(issues, func(a, b models.Issue) int { return cmp.Compare(a.Line, b.Line) })
	return issues
}

var importLine = regexp.MustCompile(`(?m)^\s*(?:import\b[^\n]*|(?:const|let|var)\s*\{[^}]*\}\s*=\s*require\([^)]*\)[^\n]*)`)

type hookPattern struct {
	name     string
	used     *regexp.Regexp
	imported *regexp.Regexp
}

var hookPatterns = func() []hookPattern {
	out := make([]hookPattern, len(frameworkHooks))
	for i, h := range frameworkHooks {
		out[i] = hookPattern{
			name:     h,
			used:     regexp.MustCompile(`(?:^|[^.\w$])` + h + `\s*\(`),
			imported: regexp.MustCompile(`\b` + h + `\b`),
		}
	}
	return out
}()

func checkMissingImports(src *source) []models.Issue {
	imports := strings.Join(importLine.FindAllString(src.raw, -1), "\n")

	var missing []string
	for _, h := range hookPatterns {
		if h.used.MatchString(src.code) && !h.imported.MatchString(imports) {
			missing = append(missing, h.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []models.Issue{{
		Type:     models.SeverityCritical,
		Category: CategoryMissingImport,
		Problem:  "Hooks used without an import: " + strings.Join(missing, ", "),
		Fix:      "Add the missing import, e.g. import { " + strings.Join(missing, ", ") + " } from 'react';",
	}}
}

var (
	callPattern = regexp.MustCompile(`[A-Za-z_$][\w$]*\s*\(`)
	defPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bfunction\s*\*?\s*([A-Za-z_$][\w$]*)`),
		regexp.MustCompile(`\b(?:const|let|var)\s+([A-Za-z_$][\w$]*)`),
		regexp.MustCompile(`\b(?:def|class|func)\s+([A-Za-z_$][\w$]*)`),
		regexp.MustCompile(`\bfunc\s*\([^)]*\)\s*([A-Za-z_$][\w$]*)`),
		regexp.MustCompile(`\bimport\s+([A-Za-z_$][\w$]*)`),
		regexp.MustCompile(`\bas\s+([A-Za-z_$][\w$]*)`),
		regexp.MustCompile(`(?m)^\s*(?:async\s+|static\s+|get\s+|set\s+)*([A-Za-z_$][\w$]*)\s*\([^)]*\)\s*\{`),
	}
	// lists of names: destructuring, named imports, parameters
	defListPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:const|let|var)\s*[{\[]([^}\]]*)[}\]]`),
		regexp.MustCompile(`\bimport\s*(?:[\w$]+\s*,\s*)?\{([^}]*)\}`),
		regexp.MustCompile(`\bimport\s+([\w$., ]+)\s*$`),
		regexp.MustCompile(`\bfrom\s+[\w.]+\s+import\s+([^\n]+)`),
		regexp.MustCompile(`\b(?:function\s*\*?\s*[\w$]*|def\s+[\w$]+|func\s+[\w$]*)\s*\(([^)]*)\)`),
		regexp.MustCompile(`\(([^()]*)\)\s*=>`),
		regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*=>`),
		regexp.MustCompile(`\bcatch\s*\(([^)]*)\)`),
		regexp.MustCompile(`\bfor\s*\(\s*(?:const|let|var)\s+([\w$]+)`),
	}
	identPattern = regexp.MustCompile(`[A-Za-z_$][\w$]*`)
)

func definitions(code string) map[string]struct{} {
	defs := map[string]struct{}{}
	for _, p := range defPatterns {
		for _, m := range p.FindAllStringSubmatch(code, -1) {
			defs[m[1]] = struct{}{}
		}
	}
	for _, p := range defListPatterns {
		for _, m := range p.FindAllStringSubmatch(code, -1) {
			for _, id := range identPattern.FindAllString(m[1], -1) {
				defs[id] = struct{}{}
			}
		}
	}
	return defs
}

// calls returns called identifiers in order of first appearance, skipping
// member calls and keywords.
func calls(code string) []string {
	var out []string
	seen := map[string]bool{}
	for _, loc := range callPattern.FindAllStringIndex(code, -1) {
		if loc[0] > 0 {
			prev := code[loc[0]-1]
			if prev == '.' || prev == '$' || prev == '_' || isWordByte(prev) {
				continue
			}
		}
		name := strings.TrimRight(code[loc[0]:loc[1]-1], " \t\r\n")
		if _, kw := keywords[name]; kw || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func checkUndefinedCalls(src *source) []models.Issue {
	defs := definitions(src.code)

	var undefined []string
	for _, name := range calls(src.code) {
		if _, ok := defs[name]; ok {
			continue
		}
		if _, ok := builtins[name]; ok {
			continue
		}
		undefined = append(undefined, name)
	}
	if len(undefined) == 0 {
		return nil
	}

	listed := undefined
	if len(listed) > maxReported {
		listed = listed[:maxReported]
	}
	return []models.Issue{{
		Type:     models.SeverityCritical,
		Category: CategoryUndefined,
		Problem:  "Functions called but never defined or imported: " + strings.Join(listed, ", "),
		Fix:      "Define these functions or import them from the module that provides them.",
	}}
}

var (
	asyncPattern   = regexp.MustCompile(`\basync\b|\.then\s*\(|\bawait\b`)
	tryPattern     = regexp.MustCompile(`\btry\b`)
	catchPattern   = regexp.MustCompile(`\bcatch\b|\bexcept\b`)
	catchCallPatt  = regexp.MustCompile(`\.catch\s*\(`)
	consolePattern = regexp.MustCompile(`\bconsole\.(?:log|warn|error)\s*\(`)
	todoPattern    = regexp.MustCompile(`\b(?:TODO|FIXME|HACK|XXX)\b`)
)

func checkErrorHandling(src *source) []models.Issue {
	if !asyncPattern.MatchString(src.code) {
		return nil
	}
	if catchCallPatt.MatchString(src.code) || (tryPattern.MatchString(src.code) && catchPattern.MatchString(src.code)) {
		return nil
	}
	return []models.Issue{{
		Type:     models.SeverityWarning,
		Category: CategoryErrorHandling,
		Problem:  "Async code without try/catch or .catch()",
		Fix:      "Wrap awaited calls in try/catch or attach a .catch() handler.",
	}}
}

func checkDebugResidue(src *source) []models.Issue {
	n := len(consolePattern.FindAllStringIndex(src.code, -1))
	if n <= debugThreshold {
		return nil
	}
	return []models.Issue{{
		Type:     models.SeverityWarning,
		Category: CategoryDebug,
		Problem:  "Too many console statements (" + strconv.Itoa(n) + ")",
		Fix:      "Remove debug logging or route it through a logger before shipping.",
	}}
}

func checkTodos(src *source) []models.Issue {
	loc := todoPattern.FindStringIndex(src.raw)
	if loc == nil {
		return nil
	}
	return []models.Issue{{
		Type:     models.SeverityWarning,
		Category: CategoryTodo,
		Problem:  "Unfinished work marker (" + src.raw[loc[0]:loc[1]] + ")",
		Fix:      "Implement the marked work or remove the marker.",
		Line:     lineAt(src.raw, loc[0]),
	}}
}
