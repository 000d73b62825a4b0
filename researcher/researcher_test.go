package researcher

import (
	"context"
	"strings"
	"testing"

	"github.com/bububa/instructor-go/pkg/instructor"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/urferr/embabel-agent-examples/tools"
	"github.com/urferr/embabel-agent-examples/tools/websearch"
	"github.com/urferr/embabel-agent-examples/workflow"
)

func TestConditions(t *testing.T) {
	r := New(DefaultConfig())
	conditions := make(map[string]workflow.Condition)
	for _, c := range r.conditions() {
		conditions[c.Name] = c
	}
	board := workflow.NewBlackboard()
	if conditions[reportSatisfactoryCondition].Eval(board) {
		t.Error("Expect satisfactory to be false without a critique")
	}
	if conditions[reportUnsatisfactoryCondition].Eval(board) {
		t.Error("Expect unsatisfactory to be false without a critique")
	}
	board.Set(critiqueBinding, &Critique{Accepted: false, Reasoning: "too short"})
	if conditions[reportSatisfactoryCondition].Eval(board) {
		t.Error("Expect satisfactory to be false for a rejected report")
	}
	if !conditions[reportUnsatisfactoryCondition].Eval(board) {
		t.Error("Expect unsatisfactory to be true for a rejected report")
	}
	board.Set(critiqueBinding, &Critique{Accepted: true})
	if !conditions[reportSatisfactoryCondition].Eval(board) {
		t.Error("Expect satisfactory to be true for an accepted report")
	}
}

func TestActionsWiring(t *testing.T) {
	r := New(DefaultConfig())
	actions := make(map[string]workflow.Action)
	for _, a := range r.actions() {
		actions[a.Name] = a
	}
	if len(actions) != 8 {
		t.Fatalf("Expect 8 actions, but got %d", len(actions))
	}
	for _, name := range []string{"researchWithGpt4", "researchWithClaude"} {
		if actions[name].CanRerun {
			t.Errorf("Expect %s to run once", name)
		}
	}
	for _, name := range []string{"redoResearchWithGpt4", "redoResearchWithClaude", "mergeReports", "critiqueReport"} {
		if !actions[name].CanRerun {
			t.Errorf("Expect %s to be rerunnable", name)
		}
	}
	for _, name := range []string{"redoResearchWithGpt4", "redoResearchWithClaude"} {
		if pre := actions[name].Pre; len(pre) != 1 || pre[0] != reportUnsatisfactoryCondition {
			t.Errorf("Expect %s to require an unsatisfactory report, but got %v", name, pre)
		}
	}
	accept := actions["acceptReport"]
	if !accept.AchievesGoal {
		t.Error("Expect acceptReport to achieve the goal")
	}
	if pre := accept.Pre; len(pre) != 1 || pre[0] != reportSatisfactoryCondition {
		t.Errorf("Expect acceptReport to require a satisfactory report, but got %v", pre)
	}
	if out := actions["mergeReports"].OutputBinding; out != mergedReportBinding {
		t.Errorf("Expect mergeReports to publish %s, but got %s", mergedReportBinding, out)
	}
}

func TestToolGroupRegistration(t *testing.T) {
	r := New(DefaultConfig(), WithSearchTool(websearch.New()))
	for _, a := range r.actions() {
		if a.Name != "researchWithGpt4" {
			continue
		}
		if len(a.ToolGroups) != 1 || a.ToolGroups[0] != tools.WebGroup {
			t.Errorf("Expect research to use the web group, but got %v", a.ToolGroups)
		}
	}
	if _, err := r.groups.Group(tools.WebGroup); err != nil {
		t.Errorf("Expect web group to be registered, but got %v", err)
	}
	if _, err := r.groups.Group(tools.BrowserGroup); err == nil {
		t.Error("Expect no browser group without a scraper")
	}
}

func TestClientRouting(t *testing.T) {
	openAIClient := instructor.FromOpenAI(openai.NewClient("test-key"))
	anthropicClient := instructor.FromAnthropic(anthropic.NewClient("test-key"))
	r := New(DefaultConfig(), WithOpenAIClient(openAIClient), WithAnthropicClient(anthropicClient))
	if _, ok := r.clientFor("claude-3-7-sonnet-latest").(*instructor.InstructorAnthropic); !ok {
		t.Error("Expect claude models to route to the anthropic client")
	}
	if _, ok := r.clientFor("gpt-4o").(*instructor.InstructorOpenAI); !ok {
		t.Error("Expect other models to route to the openai client")
	}
}

func TestAcceptReturnsMergedReport(t *testing.T) {
	r := New(DefaultConfig())
	board := workflow.NewBlackboard()
	merged := &ResearchReport{Title: "T", Content: "C"}
	board.Set(mergedReportBinding, merged)
	out, err := r.accept(context.Background(), board)
	if err != nil {
		t.Fatalf("Expect accept to succeed, but got %v", err)
	}
	if out != merged {
		t.Error("Expect accept to return the merged report unchanged")
	}
}

func TestRunRequiresInput(t *testing.T) {
	r := New(DefaultConfig())
	if _, err := r.Run(context.Background(), nil); err == nil {
		t.Error("Expect error for nil input, but got none")
	}
	if _, err := r.Run(context.Background(), &UserInput{}); err == nil {
		t.Error("Expect error for empty input, but got none")
	}
}

func TestRunWithoutClients(t *testing.T) {
	r := New(DefaultConfig())
	_, err := r.Run(context.Background(), NewUserInput("what is a goroutine"))
	if err == nil {
		t.Fatal("Expect error without llm clients, but got none")
	}
	if !strings.Contains(err.Error(), "no llm client configured") {
		t.Errorf("Expect missing client error, but got %v", err)
	}
}
