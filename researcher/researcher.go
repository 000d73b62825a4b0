package researcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bububa/instructor-go/pkg/instructor"

	"github.com/urferr/embabel-agent-examples/agents"
	"github.com/urferr/embabel-agent-examples/components"
	"github.com/urferr/embabel-agent-examples/components/systemprompt"
	"github.com/urferr/embabel-agent-examples/components/systemprompt/simple"
	"github.com/urferr/embabel-agent-examples/schema"
	"github.com/urferr/embabel-agent-examples/tools"
	"github.com/urferr/embabel-agent-examples/tools/webscraper"
	"github.com/urferr/embabel-agent-examples/tools/websearch"
	"github.com/urferr/embabel-agent-examples/workflow"
)

// Blackboard bindings published by the researcher actions.
const (
	userInputBinding      = "userInput"
	categorizationBinding = "categorization"
	gpt4ReportBinding     = "gpt4Report"
	claudeReportBinding   = "claudeReport"
	mergedReportBinding   = "mergedReport"
	critiqueBinding       = "critique"
	finalReportBinding    = "finalResearchReport"
)

// Conditions gating the critique loop.
const (
	reportSatisfactoryCondition   = "reportSatisfactory"
	reportUnsatisfactoryCondition = "reportUnsatisfactory"
)

const (
	basePrompt       = "You are part of a research workflow. Follow the instructions precisely."
	defaultMaxTokens = 4096
	// pages longer than this are truncated before entering a prompt
	maxPageContextLen = 8000
)

// Researcher researches questions and topics with two independent models,
// merges their reports, and loops the merged report through a critic until
// it is accepted.
type Researcher struct {
	config    Config
	openAI    instructor.Instructor
	anthropic instructor.Instructor
	search    *websearch.Tool
	scraper   *webscraper.Tool
	groups    *tools.Groups
	logger    *slog.Logger
}

type Option func(*Researcher)

// WithOpenAIClient sets the client serving OpenAI model names.
func WithOpenAIClient(clt instructor.Instructor) Option {
	return func(r *Researcher) {
		r.openAI = clt
	}
}

// WithAnthropicClient sets the client serving Claude model names.
func WithAnthropicClient(clt instructor.Instructor) Option {
	return func(r *Researcher) {
		r.anthropic = clt
	}
}

// WithSearchTool sets the web search tool used to gather research context.
func WithSearchTool(t *websearch.Tool) Option {
	return func(r *Researcher) {
		r.search = t
	}
}

// WithScraperTool sets the page reader used to expand the top search result.
func WithScraperTool(t *webscraper.Tool) Option {
	return func(r *Researcher) {
		r.scraper = t
	}
}

// WithLogger sets the researcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Researcher) {
		r.logger = logger
	}
}

// New returns a Researcher for the given config.
func New(config Config, opts ...Option) *Researcher {
	ret := &Researcher{
		config: config,
		groups: tools.NewGroups(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.search != nil {
		ret.groups.Register(tools.WebGroup, ret.search)
	}
	if ret.scraper != nil {
		ret.groups.Register(tools.BrowserGroup, ret.scraper)
	}
	ret.logger.Info("researcher configured",
		"openai_model", config.OpenAIModelName,
		"claude_model", config.ClaudeModelName,
		"cheapest_model", config.CheapestModelName,
		"critic_model", config.CriticModelName,
		"merge_model", config.MergeModelName,
		"max_word_count", config.MaxWordCount,
	)
	return ret
}

// Run researches the user input and returns the accepted report.
func (r *Researcher) Run(ctx context.Context, input *UserInput) (*ResearchReport, error) {
	if input == nil || input.Content == "" {
		return nil, errors.New("missing user input")
	}
	board := workflow.NewBlackboard()
	board.Set(userInputBinding, input)
	engine := workflow.New(
		workflow.WithLogger(r.logger),
		workflow.WithToolGroups(r.groups),
	).
		AddConditions(r.conditions()...).
		AddActions(r.actions()...)
	out, err := engine.Run(ctx, board)
	if err != nil {
		return nil, err
	}
	report, ok := out.(*ResearchReport)
	if !ok {
		return nil, fmt.Errorf("unexpected workflow result %T", out)
	}
	return report, nil
}

func (r *Researcher) conditions() []workflow.Condition {
	return []workflow.Condition{
		workflow.On[*Critique](reportSatisfactoryCondition, critiqueBinding, func(c *Critique) bool {
			return c.Accepted
		}),
		workflow.On[*Critique](reportUnsatisfactoryCondition, critiqueBinding, func(c *Critique) bool {
			return !c.Accepted
		}),
	}
}

func (r *Researcher) actions() []workflow.Action {
	var researchGroups []string
	if r.search != nil {
		researchGroups = append(researchGroups, tools.WebGroup)
	}
	if r.scraper != nil {
		researchGroups = append(researchGroups, tools.BrowserGroup)
	}
	return []workflow.Action{
		{
			Name:          "categorize",
			Inputs:        []string{userInputBinding},
			OutputBinding: categorizationBinding,
			Handler:       r.categorize,
		},
		{
			Name:          "researchWithGpt4",
			Inputs:        []string{userInputBinding, categorizationBinding},
			Post:          []string{reportSatisfactoryCondition},
			OutputBinding: gpt4ReportBinding,
			ToolGroups:    researchGroups,
			Handler: func(ctx context.Context, b *workflow.Blackboard) (any, error) {
				return r.research(ctx, b, r.config.OpenAIModelName, nil)
			},
		},
		{
			Name:          "researchWithClaude",
			Inputs:        []string{userInputBinding, categorizationBinding},
			Post:          []string{reportSatisfactoryCondition},
			OutputBinding: claudeReportBinding,
			ToolGroups:    researchGroups,
			Handler: func(ctx context.Context, b *workflow.Blackboard) (any, error) {
				return r.research(ctx, b, r.config.ClaudeModelName, nil)
			},
		},
		{
			Name:          "redoResearchWithGpt4",
			Inputs:        []string{userInputBinding, categorizationBinding, critiqueBinding},
			Pre:           []string{reportUnsatisfactoryCondition},
			Post:          []string{reportSatisfactoryCondition},
			OutputBinding: gpt4ReportBinding,
			CanRerun:      true,
			ToolGroups:    researchGroups,
			Handler: func(ctx context.Context, b *workflow.Blackboard) (any, error) {
				critique, _ := workflow.Get[*Critique](b, critiqueBinding)
				return r.research(ctx, b, r.config.OpenAIModelName, critique)
			},
		},
		{
			Name:          "redoResearchWithClaude",
			Inputs:        []string{userInputBinding, categorizationBinding, critiqueBinding},
			Pre:           []string{reportUnsatisfactoryCondition},
			Post:          []string{reportSatisfactoryCondition},
			OutputBinding: claudeReportBinding,
			CanRerun:      true,
			ToolGroups:    researchGroups,
			Handler: func(ctx context.Context, b *workflow.Blackboard) (any, error) {
				critique, _ := workflow.Get[*Critique](b, critiqueBinding)
				return r.research(ctx, b, r.config.ClaudeModelName, critique)
			},
		},
		{
			Name:          "mergeReports",
			Inputs:        []string{userInputBinding, gpt4ReportBinding, claudeReportBinding},
			OutputBinding: mergedReportBinding,
			CanRerun:      true,
			Handler:       r.merge,
		},
		{
			Name:          "critiqueReport",
			Inputs:        []string{userInputBinding, mergedReportBinding},
			OutputBinding: critiqueBinding,
			CanRerun:      true,
			Handler:       r.critique,
		},
		{
			Name:          "acceptReport",
			Inputs:        []string{mergedReportBinding, critiqueBinding},
			Pre:           []string{reportSatisfactoryCondition},
			OutputBinding: finalReportBinding,
			AchievesGoal:  true,
			Handler:       r.accept,
		},
	}
}

func (r *Researcher) categorize(ctx context.Context, b *workflow.Blackboard) (any, error) {
	input, ok := workflow.Get[*UserInput](b, userInputBinding)
	if !ok {
		return nil, errors.New("user input not bound")
	}
	out, err := createObject[Categorization](ctx, r, r.config.CheapestModelName, "categorizer", categorizePrompt(input))
	if err != nil {
		return nil, err
	}
	r.logger.Info("categorized input", "category", out.Category)
	return out, nil
}

func (r *Researcher) research(ctx context.Context, b *workflow.Blackboard, model string, critique *Critique) (any, error) {
	input, ok := workflow.Get[*UserInput](b, userInputBinding)
	if !ok {
		return nil, errors.New("user input not bound")
	}
	categorization, ok := workflow.Get[*Categorization](b, categorizationBinding)
	if !ok {
		return nil, errors.New("categorization not bound")
	}
	providers := r.config.PromptContributors()
	providers = append(providers, r.webContext(ctx, input.Content)...)
	prompt := researchPrompt(input, categorization, r.config.MaxWordCount, critique)
	report, err := createObject[ResearchReport](ctx, r, model, "researcher-"+model, prompt, providers...)
	if err != nil {
		return nil, err
	}
	r.logger.Info("research report produced", "model", model, "words", report.WordCount(), "links", len(report.Links))
	return &SingleLlmReport{
		Report:    *report,
		Model:     model,
		Timestamp: time.Now(),
	}, nil
}

func (r *Researcher) merge(ctx context.Context, b *workflow.Blackboard) (any, error) {
	input, ok := workflow.Get[*UserInput](b, userInputBinding)
	if !ok {
		return nil, errors.New("user input not bound")
	}
	gpt4Report, ok := workflow.Get[*SingleLlmReport](b, gpt4ReportBinding)
	if !ok {
		return nil, errors.New("gpt4 report not bound")
	}
	claudeReport, ok := workflow.Get[*SingleLlmReport](b, claudeReportBinding)
	if !ok {
		return nil, errors.New("claude report not bound")
	}
	prompt := mergePrompt(input, []*SingleLlmReport{gpt4Report, claudeReport})
	merged, err := createObject[ResearchReport](ctx, r, r.config.MergeModelName, "merger", prompt, r.config.PromptContributors()...)
	if err != nil {
		return nil, err
	}
	r.logger.Info("reports merged", "model", r.config.MergeModelName, "words", merged.WordCount())
	return merged, nil
}

func (r *Researcher) critique(ctx context.Context, b *workflow.Blackboard) (any, error) {
	input, ok := workflow.Get[*UserInput](b, userInputBinding)
	if !ok {
		return nil, errors.New("user input not bound")
	}
	merged, ok := workflow.Get[*ResearchReport](b, mergedReportBinding)
	if !ok {
		return nil, errors.New("merged report not bound")
	}
	out, err := createObject[Critique](ctx, r, r.config.CriticModelName, "critic", critiquePrompt(input, merged, r.config.MaxWordCount))
	if err != nil {
		return nil, err
	}
	r.logger.Info("report critiqued", "accepted", out.Accepted, "reasoning", out.Reasoning)
	return out, nil
}

func (r *Researcher) accept(_ context.Context, b *workflow.Blackboard) (any, error) {
	merged, ok := workflow.Get[*ResearchReport](b, mergedReportBinding)
	if !ok {
		return nil, errors.New("merged report not bound")
	}
	r.logger.Info("report accepted", "title", merged.Title, "words", merged.WordCount())
	return merged, nil
}

// clientFor routes a model name to the provider client serving it.
func (r *Researcher) clientFor(model string) instructor.Instructor {
	if strings.HasPrefix(model, "claude") {
		return r.anthropic
	}
	return r.openAI
}

// webContext gathers search results, and the content of the top result,
// as system prompt context providers.
func (r *Researcher) webContext(ctx context.Context, query string) []systemprompt.ContextProvider {
	if r.search == nil {
		return nil
	}
	searchOut := new(websearch.Output)
	if err := r.search.Run(ctx, websearch.NewInput("", []string{query}), searchOut); err != nil {
		r.logger.Warn("web search failed", "query", query, "error", err)
		return nil
	}
	providers := []systemprompt.ContextProvider{*searchOut}
	if r.scraper != nil && len(searchOut.Results) > 0 {
		link := searchOut.Results[0].URL
		scraped := new(webscraper.Output)
		if err := r.scraper.Run(ctx, webscraper.NewInput(link), scraped); err != nil {
			r.logger.Warn("page read failed", "url", link, "error", err)
		} else if scraped.Content != "" {
			providers = append(providers, pageContext{url: link, content: scraped.Content})
		}
	}
	return providers
}

// pageContext feeds a scraped page into the system prompt.
type pageContext struct {
	url     string
	content string
}

func (p pageContext) Title() string {
	return "Web page: " + p.url
}

func (p pageContext) Info() string {
	if len(p.content) > maxPageContextLen {
		return p.content[:maxPageContextLen]
	}
	return p.content
}

// createObject runs a single-shot agent for the given model and prompt and
// returns the structured result.
func createObject[O schema.Schema](ctx context.Context, r *Researcher, model, name, prompt string, providers ...systemprompt.ContextProvider) (*O, error) {
	agent := agents.NewAgent[schema.String, O](
		agents.WithClient(r.clientFor(model)),
		agents.WithModel(model),
		agents.WithName(name),
		agents.WithMaxTokens(defaultMaxTokens),
		agents.WithSystemPromptGenerator(simple.New(basePrompt, simple.WithContextProviders(providers...))),
	)
	input := schema.String(prompt)
	output := new(O)
	apiResp := new(components.ApiResponse)
	if err := agent.Run(ctx, &input, output, apiResp); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if apiResp.Usage != nil {
		r.logger.Debug("llm call completed", "agent", name, "model", model,
			"input_tokens", apiResp.Usage.InputTokens, "output_tokens", apiResp.Usage.OutputTokens)
	}
	return output, nil
}
