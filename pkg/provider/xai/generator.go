package xai

import (
	"context"
	"encoding/json"

	// Packages
	athena "github.com/ayush27316/Athena"
	opt "github.com/ayush27316/Athena/pkg/opt"
	schema "github.com/ayush27316/Athena/pkg/schema"
	tool "github.com/ayush27316/Athena/pkg/tool"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// INTERFACE CHECK

var _ athena.Generator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithoutSession sends a single message and returns the response (stateless)
func (c *Client) WithoutSession(ctx context.Context, model schema.Model, message *schema.Message, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	if message == nil {
		return nil, nil, athena.ErrBadParameter.With("message is required")
	}
	conversation := schema.Conversation{message}
	return c.generate(ctx, model.Name, &conversation, opts...)
}

// WithSession sends a message within a conversation and returns the response (stateful)
func (c *Client) WithSession(ctx context.Context, model schema.Model, conversation *schema.Conversation, message *schema.Message, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	if conversation == nil {
		return nil, nil, athena.ErrBadParameter.With("conversation is required")
	}
	if message == nil {
		return nil, nil, athena.ErrBadParameter.With("message is required")
	}
	conversation.Append(*message)
	return c.generate(ctx, model.Name, conversation, opts...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// generate is the core method that builds a request from options and sends it
func (c *Client) generate(ctx context.Context, model string, conversation *schema.Conversation, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	// Apply options
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, nil, err
	}

	// Build request
	request, err := generateRequestFromOpts(model, conversation, options)
	if err != nil {
		return nil, nil, err
	}

	// Create JSON payload
	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, nil, err
	}

	// Request -> Response
	var response completionsResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, nil, err
	}

	// Convert response to schema message
	message, err := messageFromResponse(&response)
	if err != nil {
		return nil, nil, err
	}

	// Append the message to the conversation
	message.Tokens = response.Usage.CompletionTokens
	conversation.Append(*message)

	// Return error for finish reasons that need caller attention
	usage := &schema.Usage{
		InputTokens:  response.Usage.PromptTokens,
		OutputTokens: response.Usage.CompletionTokens,
	}
	if message.Result == schema.ResultMaxTokens {
		return message, usage, athena.ErrMaxTokens
	}
	return message, usage, nil
}

///////////////////////////////////////////////////////////////////////////////
// REQUEST BUILDING

// generateRequestFromOpts builds a completionsRequest from the conversation
// and applied options
func generateRequestFromOpts(model string, conversation *schema.Conversation, options opt.Options) (*completionsRequest, error) {
	// Convert conversation to wire format
	messages, err := wireMessagesFromConversation(conversation)
	if err != nil {
		return nil, err
	}

	// System prompt becomes the leading message
	if systemPrompt := options.GetString(opt.SystemPromptKey); systemPrompt != "" {
		messages = append([]wireMessage{{
			Role:    schema.RoleSystem,
			Content: systemPrompt,
		}}, messages...)
	}

	// Temperature
	var temperature *float64
	if options.Has(opt.TemperatureKey) {
		temperature = types.Ptr(options.GetFloat64(opt.TemperatureKey))
	}

	// Max tokens
	var maxTokens *uint
	if options.Has(opt.MaxTokensKey) {
		maxTokens = types.Ptr(options.GetUint(opt.MaxTokensKey))
	}

	// Seed
	var seed *uint
	if options.Has(opt.SeedKey) {
		seed = types.Ptr(options.GetUint(opt.SeedKey))
	}

	// Output format (JSON schema)
	var format *responseFormat
	if schemaJSON := options.GetString(opt.JSONSchemaKey); schemaJSON != "" {
		var s jsonschema.Schema
		if err := json.Unmarshal([]byte(schemaJSON), &s); err != nil {
			return nil, athena.ErrBadParameter.Withf("invalid JSON schema: %v", err)
		}
		format = &responseFormat{
			Type: "json_schema",
			JSONSchema: &wireJSONSchema{
				Name:   "output",
				Schema: &s,
				Strict: true,
			},
		}
	}

	// Tools from toolkit
	var tools []wireTool
	if v := options.Get(opt.ToolkitKey); v != nil {
		if tk, ok := v.(*tool.Toolkit); ok {
			tools, err = wireToolsFromToolkit(tk)
			if err != nil {
				return nil, err
			}
		}
	}

	// Tool choice
	var toolChoice any
	if tc := options.GetString(opt.ToolChoiceKey); tc != "" {
		switch tc {
		case "auto", "none", "required":
			toolChoice = tc
		default:
			toolChoice = map[string]any{
				"type":     "function",
				"function": map[string]string{"name": tc},
			}
		}
	}

	return &completionsRequest{
		Model:          model,
		Messages:       messages,
		MaxTokens:      maxTokens,
		Temperature:    temperature,
		Seed:           seed,
		Stop:           options.GetStringArray(opt.StopSequencesKey),
		Tools:          tools,
		ToolChoice:     toolChoice,
		ResponseFormat: format,
		User:           options.GetString(opt.UserIdKey),
	}, nil
}

// GenerateRequest builds a generate request from options without sending it.
// Useful for testing and debugging.
func GenerateRequest(model string, conversation *schema.Conversation, opts ...opt.Opt) (any, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}
	return generateRequestFromOpts(model, conversation, options)
}
