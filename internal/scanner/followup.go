package scanner

import (
	"fmt"
	"strings"

	"github.com/tigerprompts/pkg/models"
)

// FollowUpPrompt renders the remediation report for issues: critical
// findings with their fixes, then warnings, then a block the user can paste
// back into the assistant that produced the code.
func FollowUpPrompt(issues []models.Issue) string {
	var critical, warnings []models.Issue
	for _, i := range issues {
		if i.Type == models.SeverityCritical {
			critical = append(critical, i)
		} else {
			warnings = append(warnings, i)
		}
	}

	var b strings.Builder
	b.WriteString("# Code Review Findings\n")

	if len(critical) > 0 {
		fmt.Fprintf(&b, "\n## 🔴 Critical Issues (%d)\n", len(critical))
		writeIssues(&b, critical)
	}
	if len(warnings) > 0 {
		fmt.Fprintf(&b, "\n## 🟡 Warnings (%d)\n", len(warnings))
		writeIssues(&b, warnings)
	}

	b.WriteString("\n## Follow-up Prompt for AI\n")
	b.WriteString("Copy and paste this into your AI assistant:\n\n```\n")
	if len(critical) > 0 {
		b.WriteString("The code you provided has these critical problems:\n")
		for _, i := range critical {
			fmt.Fprintf(&b, "- %s\n", describe(i))
		}
	} else {
		b.WriteString("The code you provided has these problems:\n")
		for _, i := range warnings {
			fmt.Fprintf(&b, "- %s\n", describe(i))
		}
	}
	b.WriteString("\nPlease provide the COMPLETE code with:\n")
	b.WriteString("- No truncation, ellipses, or placeholder comments\n")
	b.WriteString("- Every import and dependency included\n")
	b.WriteString("- Every called function defined\n")
	b.WriteString("- Proper error handling (try/catch) around async operations\n")
	b.WriteString("```")
	return b.String()
}

func writeIssues(b *strings.Builder, issues []models.Issue) {
	for n, i := range issues {
		fmt.Fprintf(b, "%d. [%s] %s\n   Fix: %s\n", n+1, i.Category, describe(i), i.Fix)
	}
}

func describe(i models.Issue) string {
	if i.Line > 0 {
		return fmt.Sprintf("Line %d: %s", i.Line, i.Problem)
	}
	return i.Problem
}
