package researcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/urferr/embabel-agent-examples/components/systemprompt/persona"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expect default config to be valid, but got %v", err)
	}
	if cfg.MaxWordCount != DefaultMaxWordCount {
		t.Errorf("Expect max word count %d, but got %d", DefaultMaxWordCount, cfg.MaxWordCount)
	}
	if cfg.ResponseFormat != persona.Markdown {
		t.Errorf("Expect markdown response format, but got %q", cfg.ResponseFormat)
	}
	if cfg.OpenAIModelName == cfg.ClaudeModelName {
		t.Error("Expect the two research models to differ")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "researcher.yaml")
	content := []byte(`
openai_model_name: gpt-4.1
max_word_count: 500
persona:
  name: Hypatia
  voice: Scholarly
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expect config to load, but got %v", err)
	}
	if cfg.OpenAIModelName != "gpt-4.1" {
		t.Errorf("Expect openai model gpt-4.1, but got %q", cfg.OpenAIModelName)
	}
	if cfg.MaxWordCount != 500 {
		t.Errorf("Expect max word count 500, but got %d", cfg.MaxWordCount)
	}
	if cfg.ClaudeModelName != DefaultClaudeModelName {
		t.Errorf("Expect default claude model, but got %q", cfg.ClaudeModelName)
	}
	if cfg.Persona.Name != "Hypatia" {
		t.Errorf("Expect persona Hypatia, but got %q", cfg.Persona.Name)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expect error for missing file, but got none")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxWordCount = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expect error for zero word count, but got none")
	}
	cfg = DefaultConfig()
	cfg.CriticModelName = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expect error for missing critic model, but got none")
	}
	cfg = DefaultConfig()
	cfg.ResponseFormat = "latex"
	if err := cfg.Validate(); err == nil {
		t.Error("Expect error for unknown response format, but got none")
	}
}

func TestConfigPromptContributors(t *testing.T) {
	cfg := DefaultConfig()
	providers := cfg.PromptContributors()
	if len(providers) != 2 {
		t.Fatalf("Expect 2 prompt contributors, but got %d", len(providers))
	}
	if providers[0].Title() != "Persona" {
		t.Errorf("Expect persona first, but got %q", providers[0].Title())
	}
	cfg.ResponseFormat = ""
	if providers = cfg.PromptContributors(); len(providers) != 1 {
		t.Errorf("Expect 1 prompt contributor without response format, but got %d", len(providers))
	}
}
