package models

import (
	"strings"
)

// Prompt enhancement models

// TaskType is the coarse category a raw prompt is classified into.
type TaskType string

const (
	TaskGenerate  TaskType = "generate"
	TaskTransform TaskType = "transform"
	TaskAnalyze   TaskType = "analyze"
	TaskPlan      TaskType = "plan"
	TaskExtract   TaskType = "extract"
	TaskCode      TaskType = "code"
	TaskMath      TaskType = "math"
	TaskImage     TaskType = "image"
)

// TaskTypes lists every task type in classification order.
var TaskTypes = []TaskType{
	TaskGenerate,
	TaskTransform,
	TaskAnalyze,
	TaskPlan,
	TaskExtract,
	TaskCode,
	TaskMath,
	TaskImage,
}

// ParseTaskType returns the task type named by s and whether it is known.
func ParseTaskType(s string) (TaskType, bool) {
	want := TaskType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range TaskTypes {
		if t == want {
			return t, true
		}
	}
	return TaskGenerate, false
}

// Depth selects the synthesis verbosity tier.
type Depth string

const (
	DepthLight Depth = "light"
	DepthDeep  Depth = "deep"
)

// ParseDepth returns the depth named by s; anything other than "deep" is light.
func ParseDepth(s string) Depth {
	if strings.EqualFold(strings.TrimSpace(s), string(DepthDeep)) {
		return DepthDeep
	}
	return DepthLight
}

// Scaffold holds the boolean flags that decide which optional sections
// the synthesizer emits.
type Scaffold struct {
	NeedsAssumptions  bool `json:"needs_assumptions"`
	NeedsExamples     bool `json:"needs_examples"`
	NeedsVerification bool `json:"needs_verification"`
}

// CodeContext is the coding-mode session configuration supplied by the caller.
// A nil *CodeContext means coding mode is off.
type CodeContext struct {
	ExistingCode    string   `json:"existing_code,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	IsNewFeature    bool     `json:"is_new_feature"`
	NeedsTesting    bool     `json:"needs_testing"`
	FileDefinitions string   `json:"file_definitions,omitempty"` // comma separated file names
}

// Files splits FileDefinitions into trimmed, non-empty file names.
func (c *CodeContext) Files() []string {
	if c == nil {
		return nil
	}
	var files []string
	for _, f := range strings.Split(c.FileDefinitions, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}

// Clone returns a deep copy so callers' contexts are never mutated.
func (c *CodeContext) Clone() *CodeContext {
	if c == nil {
		return nil
	}
	out := *c
	out.Languages = append([]string(nil), c.Languages...)
	return &out
}

// PromptRecord is the result of a single enhancement call.
type PromptRecord struct {
	Original       string   `json:"original"`
	Enhanced       string   `json:"enhanced"`
	TaskType       TaskType `json:"task_type"`
	AmbiguityScore float64  `json:"ambiguity_score"`
	PQSBefore      float64  `json:"pqs_before"`
	PQSAfter       float64  `json:"pqs_after"`
	DeltaQ         float64  `json:"delta_q"`
	Explanation    []string `json:"explanation,omitempty"`
	Mode           string   `json:"mode"` // e.g. local-light, llm-deep
}

// Code scanning models

// Severity represents the severity level of a scanner issue
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
)

// Issue is a single problem found by the code scanner.
type Issue struct {
	Type     Severity `json:"type"`
	Category string   `json:"category"`
	Problem  string   `json:"problem"`
	Fix      string   `json:"fix"`
	Line     int      `json:"line,omitempty"` // 1-based; 0 when the issue is file-wide
}

// ValidationResult is the outcome of one scanner invocation.
type ValidationResult struct {
	Issues         []Issue `json:"issues"`
	Score          int     `json:"score"`
	Passed         bool    `json:"passed"`
	FollowUpPrompt *string `json:"follow_up_prompt"`
}

// CriticalCount returns the number of CRITICAL issues.
func (r ValidationResult) CriticalCount() int {
	return r.count(SeverityCritical)
}

// WarningCount returns the number of WARNING issues.
func (r ValidationResult) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r ValidationResult) count(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Type == s {
			n++
		}
	}
	return n
}

// SavedPrompt is a persisted enhancement kept in the recent-prompts list.
type SavedPrompt struct {
	ID        string `json:"id"`
	Original  string `json:"original"`
	Enhanced  string `json:"enhanced"`
	Timestamp string `json:"timestamp"`
}
