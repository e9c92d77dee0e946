package synth

import (
	"github.com/tigerprompts/pkg/models"
)

// profile is the per-task content used by both synthesis tiers.
type profile struct {
	roles       []string // first entry is the canonical phrasing
	constraints []string
	process     []string
	output      []string
}

var defaultProfile = profile{
	roles: []string{
		"You are an expert assistant with broad professional knowledge.",
	},
	constraints: []string{
		"Clear and specific output",
		"Address all requirements",
		"Provide actionable results",
	},
	process: []string{
		"Understand requirements",
		"Plan approach",
		"Execute systematically",
		"Review and verify",
	},
	output: []string{
		"Use clear Markdown formatting",
		"Organize with logical structure",
		"Include relevant examples",
	},
}

var profiles = map[models.TaskType]profile{
	models.TaskGenerate: {
		roles: []string{
			"You are an expert content creator and writer with deep knowledge of persuasive communication.",
			"You are a seasoned writer who crafts clear, engaging, and persuasive content.",
			"You are a professional copywriter with a track record of compelling, audience-focused writing.",
		},
		constraints: []string{
			"Clear and specific output",
			"Address all requirements",
			"Match the tone to the intended audience",
			"Provide actionable results",
		},
		process: []string{
			"Identify the audience and purpose",
			"Outline the key points",
			"Draft the content",
			"Refine tone, flow, and clarity",
			"Proofread the final text",
		},
		output: defaultProfile.output,
	},
	models.TaskTransform: {
		roles: []string{
			"You are a professional editor and content transformer skilled in style adaptation.",
			"You are an experienced editor who adapts text across styles without losing meaning.",
		},
		constraints: []string{
			"Preserve the original meaning",
			"Address all requirements",
			"Keep facts, names, and numbers unchanged",
		},
		process: []string{
			"Read the source text completely",
			"Identify what must be preserved",
			"Apply the requested transformation",
			"Compare the result against the source for fidelity",
		},
		output: []string{
			"Return the transformed text only",
			"Note any significant changes after the text",
			"Keep the original structure unless asked otherwise",
		},
	},
	models.TaskAnalyze: {
		roles: []string{
			"You are a senior analyst with expertise in critical thinking and evidence-based reasoning.",
			"You are an experienced analyst who reasons from evidence to clear conclusions.",
		},
		constraints: []string{
			"Support every claim with evidence",
			"Address all requirements",
			"Distinguish facts from interpretation",
			"Provide actionable results",
		},
		process: []string{
			"Clarify the question being answered",
			"Gather the relevant evidence",
			"Evaluate strengths, weaknesses, and trade-offs",
			"Draw conclusions",
			"State confidence and limitations",
		},
		output: []string{
			"Lead with a short summary",
			"Use headings for each point of analysis",
			"End with a conclusion and recommendation",
		},
	},
	models.TaskPlan: {
		roles: []string{
			"You are a strategic planner and consultant with experience in project management.",
			"You are a pragmatic project strategist who turns goals into executable plans.",
		},
		constraints: []string{
			"Define measurable goals",
			"Address all requirements",
			"Account for time and resource limits",
			"Provide actionable results",
		},
		process: []string{
			"Define the goal and success criteria",
			"Identify constraints and resources",
			"Break the work into phases and milestones",
			"Identify risks and mitigations",
			"Lay out the timeline",
		},
		output: []string{
			"Phased plan with numbered steps",
			"Timeline or milestone table",
			"Risks and mitigations list",
		},
	},
	models.TaskExtract: {
		roles: []string{
			"You are a data extraction specialist with expertise in structured data processing.",
			"You are a meticulous data specialist who pulls structured facts out of raw text.",
		},
		constraints: []string{
			"Extract only what is present in the source",
			"Use consistent field names",
			"Mark missing values explicitly",
		},
		process: []string{
			"Identify the target fields",
			"Scan the source for each field",
			"Normalize the extracted values",
			"Validate the output against the requested structure",
		},
		output: []string{
			"Structured output (JSON or table) matching the requested fields",
			"One record per item",
			"No commentary outside the structure",
		},
	},
	models.TaskCode: {
		roles: []string{
			codingRole,
			"You are a principal engineer who ships reliable, well-tested production code.",
			"You are a veteran software developer who writes clean, complete, maintainable code.",
		},
		constraints: codingBaseConstraints,
		process: []string{
			"Understand the requirements and any existing code",
			"Plan the approach and interfaces",
			"Implement the complete solution",
			"Handle errors and edge cases",
			"Review and test the result",
		},
		output: []string{
			"Syntax-highlighted code blocks",
			"Inline comments explaining key logic",
			"Usage examples",
		},
	},
	models.TaskMath: {
		roles: []string{
			"You are a mathematics expert skilled in clear explanations and rigorous proofs.",
			"You are a mathematician who explains every step precisely and rigorously.",
		},
		constraints: []string{
			"Show all work",
			"Use standard notation",
			"State any assumptions",
		},
		process: []string{
			"Restate the problem",
			"Identify knowns and unknowns",
			"Solve step by step",
			"Verify the result",
		},
		output: []string{
			"Numbered solution steps",
			"Final answer clearly marked",
			"Short explanation of the method",
		},
	},
	models.TaskImage: {
		roles: []string{
			"You are an expert prompt engineer specializing in image generation systems.",
			"You are a visual prompt specialist who writes vivid, precise image generation prompts.",
		},
		constraints: []string{
			"Describe subject, style, and composition",
			"Use concrete visual language",
			"Avoid contradictory descriptors",
		},
		process: []string{
			"Identify the subject",
			"Define style and composition",
			"Specify lighting, color, and mood",
			"Add technical parameters",
		},
		output: []string{
			"A single prompt paragraph",
			"Comma-separated descriptors",
			"Negative prompt if the target system supports it",
		},
	},
}

func profileFor(t models.TaskType) profile {
	if p, ok := profiles[t]; ok {
		return p
	}
	return defaultProfile
}

var qualityBar = []string{
	"Meets all specified constraints",
	"Clear, unambiguous, and directly usable",
	"Self-check for errors before finalizing",
}

var assumptions = []string{
	"Audience: a general professional audience",
	"Tone: clear, neutral, and professional",
	"Format: Markdown with headings and bullet points",
	"Length: as concise as possible while fully addressing the task",
}
