package agent

import (
	"context"
	"encoding/json"

	// Packages
	athena "github.com/ayush27316/Athena"
	opt "github.com/ayush27316/Athena/pkg/opt"
	schema "github.com/ayush27316/Athena/pkg/schema"
	tool "github.com/ayush27316/Athena/pkg/tool"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// System prompt for the first pass, which may call tools
	generateSystemPrompt = "You are a helpful assistant. You have access to tools: " +
		"get_word_count (counts words in text) and get_current_datetime " +
		"(gets the current UTC time). Use them when relevant to the user's query. " +
		"After gathering any tool results, provide your final answer."

	// System prompt for the coercion pass, which produces structured output
	coerceSystemPrompt = "Convert the following assistant response into the required JSON format. " +
		"Set confidence between 0 and 1 based on how certain the answer is. " +
		"Include any sources if referenced."
)

// generateOutput is the coercion target. It mirrors the response body
// without the usage accounting, which is filled in locally.
type generateOutput struct {
	Answer     string   `json:"answer" jsonschema:"The generated answer"`
	Confidence float64  `json:"confidence" jsonschema:"Confidence score between 0 and 1"`
	Sources    []string `json:"sources" jsonschema:"Referenced sources if any"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate answers a prompt with tool support, then coerces the final
// answer into a structured response with a confidence score and sources.
func (m *Manager) Generate(ctx context.Context, request schema.GenerateRequest, opts ...opt.Opt) (*schema.GenerateResponse, error) {
	// Validate the prompt
	if !request.Valid() {
		return nil, athena.ErrBadParameter.Withf("prompt must be between %d and %d characters", schema.MinPromptLength, schema.MaxPromptLength)
	}

	// Resolve the model and its generator client
	model, err := m.GetModel(ctx, "", m.model)
	if err != nil {
		return nil, err
	}
	client := m.clientForModel(model)
	if client == nil {
		return nil, athena.ErrNotFound.Withf("no client found for model %q", model.Name)
	}
	generator, ok := client.(athena.Generator)
	if !ok {
		return nil, athena.ErrNotImplemented.Withf("client %q does not support generation", client.Name())
	}

	// First pass: let the model decide whether to call tools
	conversation := schema.Conversation{}
	message := schema.NewMessage(schema.RoleUser, request.Prompt)
	passOpts := append([]opt.Opt{
		opt.SetString(opt.SystemPromptKey, generateSystemPrompt),
		tool.WithToolkit(m.toolkit),
	}, opts...)

	result, usage, err := generator.WithSession(ctx, *model, &conversation, message, passOpts...)
	if err != nil {
		return nil, err
	}
	if usage == nil {
		usage = new(schema.Usage)
	}

	// Tool-calling loop: execute requested tools and feed results back
	// until we get a final response or hit the iteration limit
	for i := uint(0); i < schema.DefaultMaxIterations && result.Result == schema.ResultToolCall; i++ {
		toolCalls := result.ToolCalls()
		if len(toolCalls) == 0 {
			break
		}

		// Execute each tool call and collect result blocks
		var toolResults []schema.ContentBlock
		for _, call := range toolCalls {
			output, err := m.toolkit.Run(ctx, call.Name, call.Input)
			if err != nil {
				toolResults = append(toolResults, schema.NewToolError(call.ID, call.Name, err))
			} else {
				toolResults = append(toolResults, schema.NewToolResult(call.ID, call.Name, output))
			}
		}

		// Send the tool results back to the model
		toolMessage := &schema.Message{
			Role:    schema.RoleUser,
			Content: toolResults,
		}
		var u *schema.Usage
		result, u, err = generator.WithSession(ctx, *model, &conversation, toolMessage, passOpts...)
		if err != nil {
			return nil, err
		}
		usage.Add(u)
	}

	// If the model still wants tool calls, report the condition
	if result.Result == schema.ResultToolCall {
		return nil, athena.ErrInternalServerError.With("tool iteration limit exceeded")
	}

	// Coercion pass: convert the final answer into structured output
	response, u, err := m.coerce(ctx, generator, *model, result.Text(), opts...)
	if err != nil {
		return nil, err
	}
	usage.Add(u)

	response.Usage = usage
	response.Clamp()
	return response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// coerce sends the answer back through the model with a JSON schema
// response format and decodes the structured result.
func (m *Manager) coerce(ctx context.Context, generator athena.Generator, model schema.Model, answer string, opts ...opt.Opt) (*schema.GenerateResponse, *schema.Usage, error) {
	outputSchema, err := jsonschema.For[generateOutput](nil)
	if err != nil {
		return nil, nil, err
	}
	schemaJSON, err := json.Marshal(outputSchema)
	if err != nil {
		return nil, nil, err
	}

	message := schema.NewMessage(schema.RoleUser, answer)
	coerceOpts := append([]opt.Opt{
		opt.SetString(opt.SystemPromptKey, coerceSystemPrompt),
		opt.SetString(opt.JSONSchemaKey, string(schemaJSON)),
	}, opts...)

	result, usage, err := generator.WithoutSession(ctx, model, message, coerceOpts...)
	if err != nil {
		return nil, nil, err
	}

	// Decode the structured output
	var output generateOutput
	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		return nil, nil, athena.ErrInternalServerError.Withf("failed to decode structured output: %v", err)
	}

	return &schema.GenerateResponse{
		Answer:     output.Answer,
		Confidence: output.Confidence,
		Sources:    output.Sources,
	}, usage, nil
}
