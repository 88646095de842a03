package xai

import (
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// completionsRequest is the wire format for a chat completions request
type completionsRequest struct {
	Model          string          `json:"model"`
	Messages       []wireMessage   `json:"messages"`
	MaxTokens      *uint           `json:"max_tokens,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	Seed           *uint           `json:"seed,omitempty"`
	Stop           []string        `json:"stop,omitempty"`
	Tools          []wireTool      `json:"tools,omitempty"`
	ToolChoice     any             `json:"tool_choice,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	User           string          `json:"user,omitempty"`
}

// wireMessage is a single message on the wire
type wireMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallId string         `json:"tool_call_id,omitempty"`
}

// wireToolCall is a tool invocation on the wire
type wireToolCall struct {
	Id       string       `json:"id"`
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

// wireFunction carries the function name and JSON-encoded arguments
type wireFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// wireTool is a tool definition on the wire
type wireTool struct {
	Type     string       `json:"type"`
	Function wireToolMeta `json:"function"`
}

type wireToolMeta struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// responseFormat requests structured output from the model
type responseFormat struct {
	Type       string          `json:"type"`
	JSONSchema *wireJSONSchema `json:"json_schema,omitempty"`
}

type wireJSONSchema struct {
	Name   string             `json:"name"`
	Schema *jsonschema.Schema `json:"schema"`
	Strict bool               `json:"strict,omitempty"`
}

// completionsResponse is the wire format for a chat completions response
type completionsResponse struct {
	Id      string              `json:"id"`
	Object  string              `json:"object,omitempty"`
	Model   string              `json:"model,omitempty"`
	Choices []completionsChoice `json:"choices"`
	Usage   completionsUsage    `json:"usage"`
}

// completionsChoice is a single generation candidate in a response
type completionsChoice struct {
	Index        int         `json:"index"`
	Message      wireMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

// completionsUsage reports the token accounting for a request
type completionsUsage struct {
	PromptTokens     uint `json:"prompt_tokens,omitempty"`
	CompletionTokens uint `json:"completion_tokens,omitempty"`
	TotalTokens      uint `json:"total_tokens,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	finishReasonStop      = "stop"
	finishReasonLength    = "length"
	finishReasonToolCalls = "tool_calls"
)

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r completionsRequest) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
