package xai

import (
	"encoding/json"

	// Packages
	athena "github.com/ayush27316/Athena"
	schema "github.com/ayush27316/Athena/pkg/schema"
	tool "github.com/ayush27316/Athena/pkg/tool"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// wireMessagesFromConversation converts a conversation into the wire format.
// Assistant tool calls become tool_calls entries; tool results are emitted
// as individual "tool" role messages keyed by the call id.
func wireMessagesFromConversation(conversation *schema.Conversation) ([]wireMessage, error) {
	result := make([]wireMessage, 0, len(*conversation))
	for _, message := range *conversation {
		switch message.Role {
		case schema.RoleAssistant:
			wire := wireMessage{
				Role:    schema.RoleAssistant,
				Content: message.Text(),
			}
			for _, call := range message.ToolCalls() {
				wire.ToolCalls = append(wire.ToolCalls, wireToolCall{
					Id:   call.ID,
					Type: "function",
					Function: wireFunction{
						Name:      call.Name,
						Arguments: string(call.Input),
					},
				})
			}
			result = append(result, wire)
		case schema.RoleUser, schema.RoleSystem:
			// Tool results travel as separate "tool" role messages
			var text []wireMessage
			var tools []wireMessage
			for _, block := range message.Content {
				if block.ToolResult != nil {
					tools = append(tools, wireMessage{
						Role:       "tool",
						Content:    string(block.ToolResult.Content),
						ToolCallId: block.ToolResult.ID,
					})
				}
			}
			if len(tools) == 0 {
				text = append(text, wireMessage{
					Role:    message.Role,
					Content: message.Text(),
				})
			}
			result = append(result, append(tools, text...)...)
		default:
			return nil, athena.ErrBadParameter.Withf("unsupported role: %q", message.Role)
		}
	}
	return result, nil
}

// wireToolsFromToolkit converts toolkit tools into wire tool definitions
func wireToolsFromToolkit(toolkit *tool.Toolkit) ([]wireTool, error) {
	tools := toolkit.Tools()
	result := make([]wireTool, 0, len(tools))
	for _, t := range tools {
		s, err := t.Schema()
		if err != nil {
			return nil, err
		}
		result = append(result, wireTool{
			Type: "function",
			Function: wireToolMeta{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  s,
			},
		})
	}
	return result, nil
}

// messageFromResponse converts a wire response choice into a schema message
func messageFromResponse(response *completionsResponse) (*schema.Message, error) {
	if len(response.Choices) == 0 {
		return nil, athena.ErrInternalServerError.With("no choices in response")
	}

	choice := response.Choices[0]
	message := schema.Message{
		Role: schema.RoleAssistant,
	}
	if choice.Message.Content != "" {
		message.Content = append(message.Content, schema.ContentBlock{
			Text: types.Ptr(choice.Message.Content),
		})
	}
	for _, call := range choice.Message.ToolCalls {
		message.Content = append(message.Content, schema.ContentBlock{
			ToolCall: &schema.ToolCall{
				ID:    call.Id,
				Name:  call.Function.Name,
				Input: json.RawMessage(call.Function.Arguments),
			},
		})
	}

	// Map the finish reason onto a result type
	switch choice.FinishReason {
	case finishReasonStop, "":
		message.Result = schema.ResultStop
	case finishReasonLength:
		message.Result = schema.ResultMaxTokens
	case finishReasonToolCalls:
		message.Result = schema.ResultToolCall
	default:
		message.Result = schema.ResultOther
	}

	return &message, nil
}
