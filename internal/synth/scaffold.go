// Package synth turns a classified prompt into a restructured, sectioned
// prompt. Deep results are built as a Document (an ordered list of headed
// sections) and only serialized to text at the end, so later passes such as
// the pro expansion can rewrite sections by heading.
package synth

import (
	"github.com/tigerprompts/pkg/models"
)

// Ambiguity thresholds above which optional sections are added.
const (
	AssumptionsThreshold = 0.35
	ExamplesThreshold    = 0.5
)

// BuildScaffold derives the synthesis flags from the ambiguity score and
// task type.
func BuildScaffold(ambiguity float64, taskType models.TaskType) models.Scaffold {
	return models.Scaffold{
		NeedsAssumptions:  ambiguity > AssumptionsThreshold,
		NeedsExamples:     ambiguity > ExamplesThreshold,
		NeedsVerification: needsVerification(taskType),
	}
}

func needsVerification(t models.TaskType) bool {
	switch t {
	case models.TaskCode, models.TaskMath, models.TaskExtract:
		return true
	default:
		return false
	}
}
