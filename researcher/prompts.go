package researcher

import (
	"fmt"
	"strings"

	"github.com/urferr/embabel-agent-examples/schema"
)

// categorizePrompt asks the cheapest model to classify the user input.
func categorizePrompt(input *UserInput) string {
	return fmt.Sprintf(`Categorize the following user input as either a QUESTION that asks for a specific answer, or a DISCUSSION of a topic to explore.

Respond in JSON with the following schema:
%s

User input:
%s`, schema.ExampleOf(&Categorization{}), input.Content)
}

// researchPrompt asks a research model for a report on the user input.
// The critique, when present, carries the reasons a previous report was
// rejected so the model can address them.
func researchPrompt(input *UserInput, categorization *Categorization, maxWordCount int, critique *Critique) string {
	var b strings.Builder
	switch categorization.Category {
	case QuestionCategory:
		fmt.Fprintf(&b, `Answer the given question in at most %d words.
Use any web context provided above and cite the links you relied on.

Question:
%s`, maxWordCount, input.Content)
	default:
		fmt.Fprintf(&b, `Perform deep research on the given topic.
Write a detailed report in at most %d words, including links to relevant sources.
Use any web context provided above and cite the links you relied on.

Topic:
%s`, maxWordCount, input.Content)
	}
	if critique != nil {
		fmt.Fprintf(&b, `

A previous report was rejected for the following reason. Address it in your new report.
%s`, critique.Reasoning)
	}
	return b.String()
}

// mergePrompt asks the merge model to combine the single-model reports.
// The template line between the direction and the reports is part of the
// prompt's fixed text and must stay byte-for-byte as it is.
func mergePrompt(input *UserInput, reports []*SingleLlmReport) string {
	rendered := make([]string, 0, len(reports))
	for _, r := range reports {
		rendered = append(rendered, fmt.Sprintf("Report from %s\n%s", r.Model, r.Report.Render()))
	}
	return fmt.Sprintf(`Merge the following research reports into a single report, taking the best of each.
Consider the user direction: %s

${reports.joinToString("\n\n") { "Report from ${it.model}\n${it.report.infoString(verbose = true)}" }}

%s`, input.Content, strings.Join(rendered, "\n\n"))
}

// critiquePrompt asks the critic model whether the merged report is
// satisfactory.
func critiquePrompt(input *UserInput, report *ResearchReport, maxWordCount int) string {
	return fmt.Sprintf(`Is this research report satisfactory?
It is satisfactory if it addresses the user direction with adequate detail and cites relevant links.
The report contains %d words; it should not exceed %d.

User direction:
%s

Report:
%s`, report.WordCount(), maxWordCount, input.Content, report.Render())
}
