package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerprompts/pkg/models"
)

func TestParseDocumentRoundTrip(t *testing.T) {
	code := &models.CodeContext{ExistingCode: "## not a heading\nprint(1)", FileDefinitions: "main.py"}
	var s Synthesizer
	doc := s.Deep("sort a list", models.TaskCode, models.Scaffold{true, true, true}, code)

	text := doc.String()
	parsed := ParseDocument(text)
	assert.Equal(t, doc.Headings(), parsed.Headings())
	assert.Equal(t, text, parsed.String())
}

func TestParseDocumentFreeform(t *testing.T) {
	doc := ParseDocument("Intro line\n\n## Requirements & Constraints\n- a\n\n## Steps\n1. x\n\n")
	assert.Equal(t, "", doc.Title)
	assert.Equal(t, []string{"Intro line"}, doc.Preamble)
	assert.Equal(t, []string{"Requirements & Constraints", "Steps"}, doc.Headings())
	assert.Equal(t, 0, doc.Index("constraints"))
	assert.Equal(t, -1, doc.Index("Quality"))
}

func TestInsertAfter(t *testing.T) {
	var d Document
	d.Add("A")
	d.Add("C")
	d.InsertAfter(0, Section{Heading: "B"})
	d.InsertAfter(-1, Section{Heading: "D"})
	assert.Equal(t, []string{"A", "B", "C", "D"}, d.Headings())
}

func TestCloneIsDeep(t *testing.T) {
	var d Document
	d.Add("A", "x")
	c := d.Clone()
	c.Sections[0].Lines[0] = "y"
	require.Equal(t, "x", d.Sections[0].Lines[0])
}
