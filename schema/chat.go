package schema

import "encoding/json"

// Input is the default user-facing chat input schema.
type Input struct {
	Base
	// ChatMessage is the message sent by the user to the assistant.
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The message sent by the user." validate:"required"`
}

func NewInput(msg string) *Input {
	return &Input{
		ChatMessage: msg,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is the default assistant chat output schema.
type Output struct {
	Base
	// ChatMessage is the response generated by the assistant.
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The response generated by the assistant." validate:"required"`
}

func NewOutput(msg string) *Output {
	return &Output{
		ChatMessage: msg,
	}
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
