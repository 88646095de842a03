package xai

import (
	"context"
	"encoding/json"
	"testing"

	// Packages
	schema "github.com/ayush27316/Athena/pkg/schema"
	tool "github.com/ayush27316/Athena/pkg/tool"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

type clockTool struct{}

func (clockTool) Name() string        { return "clock" }
func (clockTool) Description() string { return "Returns the current time" }
func (clockTool) Schema() (*jsonschema.Schema, error) {
	return &jsonschema.Schema{Type: "object"}, nil
}
func (clockTool) Run(context.Context, json.RawMessage) (any, error) {
	return "12:00", nil
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_marshal_001(t *testing.T) {
	// Test that a plain user message is converted to a single wire message
	assert := assert.New(t)
	conversation := schema.Conversation{
		schema.NewMessage(schema.RoleUser, "hello"),
	}
	messages, err := wireMessagesFromConversation(&conversation)
	assert.NoError(err)
	assert.Len(messages, 1)
	assert.Equal("user", messages[0].Role)
	assert.Equal("hello", messages[0].Content)
}

func Test_marshal_002(t *testing.T) {
	// Test that an assistant message with a tool call carries tool_calls
	assert := assert.New(t)
	conversation := schema.Conversation{
		{
			Role: schema.RoleAssistant,
			Content: []schema.ContentBlock{
				{ToolCall: &schema.ToolCall{
					ID:    "call_1",
					Name:  "clock",
					Input: json.RawMessage(`{}`),
				}},
			},
		},
	}
	messages, err := wireMessagesFromConversation(&conversation)
	assert.NoError(err)
	assert.Len(messages, 1)
	assert.Equal("assistant", messages[0].Role)
	assert.Len(messages[0].ToolCalls, 1)
	assert.Equal("call_1", messages[0].ToolCalls[0].Id)
	assert.Equal("clock", messages[0].ToolCalls[0].Function.Name)
}

func Test_marshal_003(t *testing.T) {
	// Test that tool results become separate "tool" role messages
	assert := assert.New(t)
	conversation := schema.Conversation{
		{
			Role: schema.RoleUser,
			Content: []schema.ContentBlock{
				schema.NewToolResult("call_1", "clock", "12:00"),
			},
		},
	}
	messages, err := wireMessagesFromConversation(&conversation)
	assert.NoError(err)
	assert.Len(messages, 1)
	assert.Equal("tool", messages[0].Role)
	assert.Equal("call_1", messages[0].ToolCallId)
	assert.Equal(`"12:00"`, messages[0].Content)
}

func Test_marshal_004(t *testing.T) {
	// Test that an unsupported role returns an error
	assert := assert.New(t)
	conversation := schema.Conversation{
		{Role: "function"},
	}
	_, err := wireMessagesFromConversation(&conversation)
	assert.Error(err)
}

func Test_marshal_005(t *testing.T) {
	// Test that a toolkit is converted to wire tool definitions
	assert := assert.New(t)
	toolkit, err := tool.NewToolkit(clockTool{})
	assert.NoError(err)

	tools, err := wireToolsFromToolkit(toolkit)
	assert.NoError(err)
	assert.Len(tools, 1)
	assert.Equal("function", tools[0].Type)
	assert.Equal("clock", tools[0].Function.Name)
	assert.Equal("Returns the current time", tools[0].Function.Description)
	assert.NotNil(tools[0].Function.Parameters)
}

func Test_marshal_006(t *testing.T) {
	// Test that a stop response is converted to an assistant message
	assert := assert.New(t)
	response := completionsResponse{
		Choices: []completionsChoice{
			{
				Message: wireMessage{
					Role:    "assistant",
					Content: "hello back",
				},
				FinishReason: finishReasonStop,
			},
		},
	}
	message, err := messageFromResponse(&response)
	assert.NoError(err)
	assert.Equal(schema.RoleAssistant, message.Role)
	assert.Equal("hello back", message.Text())
	assert.Equal(schema.ResultStop, message.Result)
}

func Test_marshal_007(t *testing.T) {
	// Test that tool call responses carry the calls and result type
	assert := assert.New(t)
	response := completionsResponse{
		Choices: []completionsChoice{
			{
				Message: wireMessage{
					Role: "assistant",
					ToolCalls: []wireToolCall{
						{
							Id:   "call_9",
							Type: "function",
							Function: wireFunction{
								Name:      "clock",
								Arguments: `{}`,
							},
						},
					},
				},
				FinishReason: finishReasonToolCalls,
			},
		},
	}
	message, err := messageFromResponse(&response)
	assert.NoError(err)
	assert.Equal(schema.ResultToolCall, message.Result)
	calls := message.ToolCalls()
	assert.Len(calls, 1)
	assert.Equal("call_9", calls[0].ID)
	assert.Equal("clock", calls[0].Name)
}

func Test_marshal_008(t *testing.T) {
	// Test that a truncated response maps to the max tokens result
	assert := assert.New(t)
	response := completionsResponse{
		Choices: []completionsChoice{
			{
				Message:      wireMessage{Role: "assistant", Content: "partial"},
				FinishReason: finishReasonLength,
			},
		},
	}
	message, err := messageFromResponse(&response)
	assert.NoError(err)
	assert.Equal(schema.ResultMaxTokens, message.Result)
}

func Test_marshal_009(t *testing.T) {
	// Test request building with options applied
	assert := assert.New(t)
	conversation := schema.Conversation{
		schema.NewMessage(schema.RoleUser, "hello"),
	}
	request, err := GenerateRequest("test-model", &conversation,
		WithSystemPrompt("You are helpful"),
		WithTemperature(0.5),
		WithMaxTokens(100),
	)
	assert.NoError(err)
	assert.NotNil(request)

	req, ok := request.(*completionsRequest)
	assert.True(ok)
	assert.Equal("test-model", req.Model)
	assert.Len(req.Messages, 2)
	assert.Equal("system", req.Messages[0].Role)
	assert.Equal("You are helpful", req.Messages[0].Content)
	assert.Equal(types.Ptr(0.5), req.Temperature)
	assert.Equal(types.Ptr(uint(100)), req.MaxTokens)
}

func Test_marshal_010(t *testing.T) {
	// Test that a JSON output option produces a response_format section
	assert := assert.New(t)
	conversation := schema.Conversation{
		schema.NewMessage(schema.RoleUser, "hello"),
	}
	request, err := GenerateRequest("test-model", &conversation,
		WithJSONOutput(&jsonschema.Schema{Type: "object"}),
	)
	assert.NoError(err)
	req := request.(*completionsRequest)
	assert.NotNil(req.ResponseFormat)
	assert.Equal("json_schema", req.ResponseFormat.Type)
	assert.NotNil(req.ResponseFormat.JSONSchema)
	assert.True(req.ResponseFormat.JSONSchema.Strict)
}
