package components

import (
	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ApiResponse is a provider chat response normalized across providers.
type ApiResponse struct {
	ID        string      `json:"id,omitempty"`
	Role      MessageRole `json:"role,omitempty"`
	Model     string      `json:"model,omitempty"`
	Usage     *ApiUsage   `json:"usage,omitempty"`
	Timestamp int64       `json:"ts,omitempty"`
	Details   any         `json:"content,omitempty"`
}

// FromOpenAI convert response from openai
func (r *ApiResponse) FromOpenAI(v *openai.ChatCompletionResponse) {
	r.ID = v.ID
	r.Role = AssistantRole
	r.Model = v.Model
	r.Usage = &ApiUsage{
		InputTokens:  v.Usage.PromptTokens,
		OutputTokens: v.Usage.CompletionTokens,
	}
	r.Details = v.Choices
}

// FromAnthropic convert response from anthropic
func (r *ApiResponse) FromAnthropic(v *anthropic.MessagesResponse) {
	r.ID = v.ID
	r.Role = AssistantRole
	r.Model = string(v.Model)
	r.Usage = &ApiUsage{
		InputTokens:  v.Usage.InputTokens,
		OutputTokens: v.Usage.OutputTokens,
	}
	r.Details = v.Content
}

// FromCohere convert response from cohere
func (r *ApiResponse) FromCohere(v *cohere.NonStreamedChatResponse) {
	if v.GenerationId != nil {
		r.ID = *v.GenerationId
	}
	r.Role = AssistantRole
	if meta := v.Meta; meta != nil {
		if usage := meta.Tokens; usage != nil {
			r.Usage = new(ApiUsage)
			if usage.InputTokens != nil {
				r.Usage.InputTokens = int(*usage.InputTokens)
			}
			if usage.OutputTokens != nil {
				r.Usage.OutputTokens = int(*usage.OutputTokens)
			}
		}
		if version := meta.ApiVersion; version != nil {
			r.Model = version.Version
		}
	}
	r.Details = v
}

type ApiUsage struct {
	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
}

// Merge accumulates usage from another response
func (u *ApiUsage) Merge(v *ApiUsage) {
	if v == nil {
		return
	}
	u.InputTokens += v.InputTokens
	u.OutputTokens += v.OutputTokens
}
