package synth

import (
	"strings"
)

// Section is one "## Heading" block of a synthesized prompt.
type Section struct {
	Heading string
	Lines   []string
}

// Document is a synthesized prompt before serialization.
type Document struct {
	Title    string   // rendered as "# Title"; empty for untitled documents
	Preamble []string // lines between the title and the first section
	Sections []Section
}

// Index returns the position of the first section whose heading matches
// name, or -1. Matching is case-insensitive on the heading text and
// accepts headings that contain name, so "Requirements & Constraints"
// matches "constraints".
func (d *Document) Index(name string) int {
	want := strings.ToLower(name)
	for i, s := range d.Sections {
		if strings.EqualFold(s.Heading, name) {
			return i
		}
		if strings.Contains(strings.ToLower(s.Heading), want) {
			return i
		}
	}
	return -1
}

// Section returns the section matching name.
func (d *Document) Section(name string) (Section, bool) {
	i := d.Index(name)
	if i < 0 {
		return Section{}, false
	}
	return d.Sections[i], true
}

// Has reports whether a section matching name exists.
func (d *Document) Has(name string) bool {
	return d.Index(name) >= 0
}

// Headings returns the section headings in order.
func (d *Document) Headings() []string {
	out := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = s.Heading
	}
	return out
}

// Add appends a section.
func (d *Document) Add(heading string, lines ...string) {
	d.Sections = append(d.Sections, Section{Heading: heading, Lines: lines})
}

// InsertAfter inserts sections immediately after position i. With i out of
// range the sections are appended.
func (d *Document) InsertAfter(i int, secs ...Section) {
	if i < 0 || i >= len(d.Sections) {
		d.Sections = append(d.Sections, secs...)
		return
	}
	rest := append([]Section(nil), d.Sections[i+1:]...)
	d.Sections = append(append(d.Sections[:i+1], secs...), rest...)
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := Document{
		Title:    d.Title,
		Preamble: append([]string(nil), d.Preamble...),
		Sections: make([]Section, len(d.Sections)),
	}
	for i, s := range d.Sections {
		out.Sections[i] = Section{Heading: s.Heading, Lines: append([]string(nil), s.Lines...)}
	}
	return out
}

// String serializes the document to markdown.
func (d Document) String() string {
	var parts []string
	if d.Title != "" {
		parts = append(parts, "# "+d.Title)
	}
	parts = append(parts, d.Preamble...)

	for i, s := range d.Sections {
		if i > 0 || len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, "## "+s.Heading)
		parts = append(parts, s.Lines...)
	}
	return strings.Join(parts, "\n")
}

// ParseDocument splits markdown text into a Document on "## " headings.
// Headings inside fenced code blocks are ignored. It is used to bring text
// produced elsewhere (for example by a remote model) into the section model.
func ParseDocument(text string) Document {
	var (
		doc     Document
		current *Section
		inFence bool
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}

		switch {
		case !inFence && strings.HasPrefix(line, "## "):
			doc.Sections = append(doc.Sections, Section{Heading: strings.TrimSpace(line[3:])})
			current = &doc.Sections[len(doc.Sections)-1]
		case current != nil:
			current.Lines = append(current.Lines, line)
		case !inFence && doc.Title == "" && len(doc.Preamble) == 0 && strings.HasPrefix(line, "# "):
			doc.Title = strings.TrimSpace(line[2:])
		default:
			doc.Preamble = append(doc.Preamble, line)
		}
	}

	doc.Preamble = trimTrailingBlank(doc.Preamble)
	for i := range doc.Sections {
		doc.Sections[i].Lines = trimTrailingBlank(doc.Sections[i].Lines)
	}
	return doc
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
