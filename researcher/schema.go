package researcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/words"

	"github.com/urferr/embabel-agent-examples/schema"
)

// Category classifies what kind of research a user input calls for.
type Category string

const (
	// QuestionCategory marks input that asks a specific question
	QuestionCategory Category = "QUESTION"
	// DiscussionCategory marks input that names a topic to explore
	DiscussionCategory Category = "DISCUSSION"
)

// UserInput is the user's research request.
type UserInput struct {
	schema.Base
	// Content is the question or topic to research.
	Content string `json:"content" jsonschema:"title=content,description=The question or topic to research." validate:"required"`
	// Timestamp records when the request was made.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

func NewUserInput(content string) *UserInput {
	return &UserInput{
		Content:   content,
		Timestamp: time.Now(),
	}
}

func (s UserInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Categorization is the model's classification of the user input.
type Categorization struct {
	schema.Base
	// Category of the input.
	Category Category `json:"category" jsonschema:"title=category,enum=QUESTION,enum=DISCUSSION,description=Whether the input asks a specific question or names a topic for discussion."`
}

func (s Categorization) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Link is a reference supporting a research report.
type Link struct {
	// URL of the reference.
	URL string `json:"url" jsonschema:"title=url,description=The URL of the reference."`
	// Summary of why the reference is relevant.
	Summary string `json:"summary,omitempty" jsonschema:"title=summary,description=Why the reference is relevant."`
}

// ResearchReport is a detailed report on a question or topic with
// supporting references.
type ResearchReport struct {
	schema.Base
	// Title of the report.
	Title string `json:"title" jsonschema:"title=title,description=The title of the report."`
	// Content is the body of the report.
	Content string `json:"content" jsonschema:"title=content,description=The body of the report."`
	// Links are references relevant to the report.
	Links []Link `json:"links,omitempty" jsonschema:"title=links,description=References relevant to the report."`
}

func (s ResearchReport) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Render formats the report for inclusion in a prompt.
func (s ResearchReport) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", s.Title, s.Content)
	if len(s.Links) > 0 {
		b.WriteString("\nReferences:\n")
		for _, link := range s.Links {
			fmt.Fprintf(&b, "- %s", link.URL)
			if link.Summary != "" {
				fmt.Fprintf(&b, " (%s)", link.Summary)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}

// WordCount counts the words in the report body.
func (s ResearchReport) WordCount() int {
	return WordCount(s.Content)
}

// SingleLlmReport pairs a research report with the model that produced it.
type SingleLlmReport struct {
	schema.Base
	// Report is the research report.
	Report ResearchReport `json:"report"`
	// Model is the model that produced the report.
	Model string `json:"model"`
	// Timestamp records when the report was produced.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

func (s SingleLlmReport) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Critique is the critic model's evaluation of a merged report.
type Critique struct {
	schema.Base
	// Accepted reports whether the report is satisfactory.
	Accepted bool `json:"accepted" jsonschema:"title=accepted,description=Whether the report is satisfactory."`
	// Reasoning explains the verdict.
	Reasoning string `json:"reasoning" jsonschema:"title=reasoning,description=Why the report was accepted or rejected."`
}

func (s Critique) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// WordCount counts the words in a text, skipping whitespace and punctuation
// segments.
func WordCount(text string) int {
	n := 0
	for _, seg := range words.SegmentAll([]byte(text)) {
		seg = bytes.TrimSpace(seg)
		if len(seg) == 0 {
			continue
		}
		r, _ := utf8.DecodeRune(seg)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
