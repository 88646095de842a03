package xai

import (
	"encoding/json"
	"fmt"

	// Packages
	opt "github.com/ayush27316/Athena/pkg/opt"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

////////////////////////////////////////////////////////////////////////////////
// MESSAGE OPTIONS

// WithSystemPrompt sets the system prompt for the request
func WithSystemPrompt(value string) opt.Opt {
	return opt.SetString(opt.SystemPromptKey, value)
}

// WithTemperature sets the temperature for the request (0.0 to 2.0)
func WithTemperature(value float64) opt.Opt {
	if value < 0 || value > 2 {
		return opt.Error(fmt.Errorf("temperature must be between 0.0 and 2.0"))
	}
	return opt.SetFloat64(opt.TemperatureKey, value)
}

// WithMaxTokens sets the maximum number of tokens to generate (minimum 1)
func WithMaxTokens(value uint) opt.Opt {
	if value < 1 {
		return opt.Error(fmt.Errorf("max_tokens must be at least 1"))
	}
	return opt.SetUint(opt.MaxTokensKey, value)
}

// WithSeed sets a deterministic sampling seed
func WithSeed(value uint) opt.Opt {
	return opt.SetUint(opt.SeedKey, value)
}

// WithStopSequences sets custom stop sequences for the request
func WithStopSequences(values ...string) opt.Opt {
	if len(values) == 0 {
		return opt.Error(fmt.Errorf("at least one stop sequence is required"))
	}
	return opt.AddString(opt.StopSequencesKey, values...)
}

// WithUser sets the user identifier for the request
func WithUser(value string) opt.Opt {
	return opt.SetString(opt.UserIdKey, value)
}

// WithJSONOutput sets the output format to JSON with the given schema
func WithJSONOutput(schema *jsonschema.Schema) opt.Opt {
	if schema == nil {
		return opt.Error(fmt.Errorf("schema is required for JSON output"))
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return opt.Error(fmt.Errorf("failed to serialize JSON schema: %w", err))
	}
	return opt.SetString(opt.JSONSchemaKey, string(data))
}

////////////////////////////////////////////////////////////////////////////////
// TOOL CHOICE OPTIONS

// WithToolChoiceAuto lets the model decide whether to use tools
func WithToolChoiceAuto() opt.Opt {
	return opt.SetString(opt.ToolChoiceKey, "auto")
}

// WithToolChoiceRequired forces the model to use one of the available tools
func WithToolChoiceRequired() opt.Opt {
	return opt.SetString(opt.ToolChoiceKey, "required")
}

// WithToolChoiceNone prevents the model from using any tools
func WithToolChoiceNone() opt.Opt {
	return opt.SetString(opt.ToolChoiceKey, "none")
}

// WithToolChoice forces the model to use a specific tool by name
func WithToolChoice(name string) opt.Opt {
	if name == "" {
		return opt.Error(fmt.Errorf("tool name is required"))
	}
	return opt.SetString(opt.ToolChoiceKey, name)
}
