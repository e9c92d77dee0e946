package pipeline

import (
	"fmt"

	"github.com/tigerprompts/internal/textstat"
	"github.com/tigerprompts/pkg/models"
)

func localExplanation(req request, rec *models.PromptRecord, pro bool) []string {
	lines := []string{fmt.Sprintf("⚡ Local Mode: Enhanced via TPEM (%s)", req.depth)}
	if req.code != nil {
		lines = append(lines, "💻 Vibe Coding Mode: Applied coding-specific constraints")
	}
	if req.template != nil {
		lines = append(lines, "Template: "+req.template.Name)
	}
	lines = append(lines,
		"Task Classification: "+string(rec.TaskType),
		fmt.Sprintf("Ambiguity Score: %.2f", rec.AmbiguityScore),
		fmt.Sprintf("PQS Improvement: %.2f → %.2f", rec.PQSBefore, rec.PQSAfter),
		"Enhancement: Added structure, constraints, and process steps",
	)
	if pro {
		lines = append(lines, "Pro Expansion: Extended process and quality bar, added verification steps and common pitfalls")
	}
	return lines
}

func remoteExplanation(req request, rec *models.PromptRecord) []string {
	lines := []string{fmt.Sprintf("🤖 LLM Mode: Enhanced via %s (%s)", req.model, req.depth)}
	if req.code != nil {
		lines = append(lines, "💻 Vibe Coding Mode: Applied coding-specific optimizations")
	}
	if req.template != nil {
		lines = append(lines, "Template: "+req.template.Name)
	}
	change := textstat.Length(rec.Enhanced) - textstat.Length(rec.Original)
	lines = append(lines,
		fmt.Sprintf("PQS Improvement: %.2f → %.2f (%+.2f)", rec.PQSBefore, rec.PQSAfter, rec.DeltaQ),
		"Length Change: "+signedInt(change)+" characters",
	)
	return lines
}

func signedInt(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
