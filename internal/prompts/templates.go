package prompts

import (
	"strings"

	"github.com/tigerprompts/pkg/models"
)

// Template is a named starting point for a prompt. Its Context is
// prepended to the user's prompt and may contain {{VAR:...}} placeholders.
type Template struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Placeholder string       `json:"placeholder"`
	Context     string       `json:"context"`
	Coding      bool         `json:"coding"`
	Depth       models.Depth `json:"depth"`
}

var templates = []Template{
	{
		Key:         "fresh-session",
		Name:        "Fresh Coding Session",
		Placeholder: "Describe the feature or component you want to build...",
		Context: `You are helping a developer start a fresh coding session. Their vibe coding context provides tech stack and files. Structure your response to include:
- Clear role definition for the AI
- File structure awareness
- Code that integrates with their existing patterns
- Best practices for {{VAR:stack|default="their stack"}}`,
		Coding: true,
		Depth:  models.DepthDeep,
	},
	{
		Key:         "code-feature",
		Name:        "Code Feature",
		Placeholder: "What feature do you want to build?",
		Context: `Structure this as a feature request with:
- Clear requirements
- Integration points with existing code
- Error handling needs
- Documentation requirements`,
		Coding: true,
		Depth:  models.DepthDeep,
	},
	{
		Key:         "fix-bug",
		Name:        "Fix Bug",
		Placeholder: "Describe the bug or issue you're experiencing...",
		Context: `This is a debugging request. Structure to include:
- Problem description
- Expected vs actual behavior
- Error messages or symptoms{{VAR:error|default=""}}
- Code context for debugging`,
		Coding: true,
		Depth:  models.DepthDeep,
	},
	{
		Key:         "draft-email",
		Name:        "Draft Email",
		Placeholder: "What should this email be about?",
		Context: `Structure as a professional email request including:
- Recipient context{{VAR:recipient|default=""}}
- Purpose and key points
- Appropriate tone
- Clear call to action`,
		Depth: models.DepthLight,
	},
	{
		Key:         "write-content",
		Name:        "Write Content",
		Placeholder: "What content do you need? (blog post, article, social media, etc.)",
		Context: `Structure as a content creation request with:
- Content type and format
- Target audience{{VAR:audience|default=""}}
- Key messages
- Tone and style guidelines`,
		Depth: models.DepthLight,
	},
	{
		Key:         "analyze-data",
		Name:        "Analyze Data",
		Placeholder: "What data do you need analyzed? (paste data or describe it)",
		Context: `Structure as a data analysis request:
- Data description and format
- Analysis objectives
- Insights needed
- Visualization preferences`,
		Depth: models.DepthDeep,
	},
	{
		Key:         "research",
		Name:        "Research Query",
		Placeholder: "What topic do you want to research?",
		Context: `Structure as a research request including:
- Specific research areas
- Depth and scope
- Desired output format
- Source credibility requirements`,
		Depth: models.DepthDeep,
	},
	{
		Key:         "social-media",
		Name:        "Social Media",
		Placeholder: "What's the topic or message for your social media post?",
		Context: `Structure as a social media content request:
- Platform ({{VAR:platform|default="Instagram, Twitter, LinkedIn, etc."}})
- Tone and voice ({{VAR:tone|default="casual, professional, witty"}})
- Key message and hook
- Hashtag strategy
- Call to action`,
		Depth: models.DepthLight,
	},
	{
		Key:         "brainstorm",
		Name:        "Brainstorm",
		Placeholder: "What do you need ideas for?",
		Context: `Structure as a creative brainstorming session:
- Problem or opportunity to explore
- Constraints or requirements
- Target audience or use case
- Desired number of ideas
- Evaluation criteria for ideas`,
		Depth: models.DepthLight,
	},
}

// Templates returns every template in display order.
func Templates() []Template {
	return append([]Template(nil), templates...)
}

// Lookup returns the template registered under key.
func Lookup(key string) (Template, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, t := range templates {
		if t.Key == key {
			return t, true
		}
	}
	return Template{}, false
}

// Keys returns the registered template keys.
func Keys() []string {
	keys := make([]string, len(templates))
	for i, t := range templates {
		keys[i] = t.Key
	}
	return keys
}

// Apply renders the template context with vars and prepends it to prompt,
// separated by a blank line.
func (t Template) Apply(prompt string, vars map[string]string) string {
	return Render(t.Context, vars) + "\n\n" + prompt
}
