package researcher

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/urferr/embabel-agent-examples/components/systemprompt"
	"github.com/urferr/embabel-agent-examples/components/systemprompt/persona"
)

// Default model assignments. The two research models come from different
// providers so the merged report draws on independent drafts.
const (
	DefaultOpenAIModelName   = "gpt-4o"
	DefaultClaudeModelName   = "claude-3-7-sonnet-latest"
	DefaultCheapestModelName = "gpt-4o-mini"
	DefaultCriticModelName   = "gpt-4o"
	DefaultMergeModelName    = "claude-3-7-sonnet-latest"
	DefaultMaxWordCount      = 300
)

// PersonaConfig configures the researcher persona.
type PersonaConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Voice       string `yaml:"voice"`
	Objective   string `yaml:"objective"`
}

// Config configures the researcher workflow.
type Config struct {
	// OpenAIModelName is the OpenAI research model.
	OpenAIModelName string `yaml:"openai_model_name" validate:"required"`
	// ClaudeModelName is the Anthropic research model.
	ClaudeModelName string `yaml:"claude_model_name" validate:"required"`
	// CheapestModelName handles cheap classification work.
	CheapestModelName string `yaml:"cheapest_model_name" validate:"required"`
	// CriticModelName evaluates merged reports.
	CriticModelName string `yaml:"critic_model_name" validate:"required"`
	// MergeModelName combines the research reports.
	MergeModelName string `yaml:"merge_model_name" validate:"required"`
	// MaxWordCount bounds the length of research reports.
	MaxWordCount int `yaml:"max_word_count" validate:"gt=0"`
	// ResponseFormat requested from the models.
	ResponseFormat persona.ResponseFormat `yaml:"response_format" validate:"omitempty,oneof=markdown text html"`
	// Persona adopted by the research models.
	Persona PersonaConfig `yaml:"persona"`
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		OpenAIModelName:   DefaultOpenAIModelName,
		ClaudeModelName:   DefaultClaudeModelName,
		CheapestModelName: DefaultCheapestModelName,
		CriticModelName:   DefaultCriticModelName,
		MergeModelName:    DefaultMergeModelName,
		MaxWordCount:      DefaultMaxWordCount,
		ResponseFormat:    persona.Markdown,
		Persona: PersonaConfig{
			Name:        "Aristotle",
			Description: "A researcher who helps people find information",
			Voice:       "Professional and informative",
			Objective:   "Answer questions and research topics thoroughly, citing sources",
		},
	}
}

// LoadConfig reads a YAML config file, applies defaults for fields the file
// omits, and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config against its field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// PromptContributors returns the context providers every researcher prompt
// carries: the persona and the requested response format.
func (c Config) PromptContributors() []systemprompt.ContextProvider {
	providers := []systemprompt.ContextProvider{
		&persona.Persona{
			Name:        c.Persona.Name,
			Description: c.Persona.Description,
			Voice:       c.Persona.Voice,
			Objective:   c.Persona.Objective,
		},
	}
	if c.ResponseFormat != "" {
		providers = append(providers, c.ResponseFormat)
	}
	return providers
}
