package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// GenerateRequest represents a request to generate a structured answer
// from a user prompt.
type GenerateRequest struct {
	Prompt string `json:"prompt" help:"The user prompt"`
}

// GenerateResponse is the structured output the model is coerced into.
type GenerateResponse struct {
	Answer     string   `json:"answer" jsonschema:"The generated answer"`
	Confidence float64  `json:"confidence" jsonschema:"Confidence score between 0 and 1"`
	Sources    []string `json:"sources" jsonschema:"Referenced sources if any"`
	Usage      *Usage   `json:"usage,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Prompt length bounds, in characters
	MinPromptLength = 1
	MaxPromptLength = 2000

	// DefaultMaxIterations bounds the tool-calling loop
	DefaultMaxIterations = uint(5)
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Valid returns true if the prompt is within length bounds
func (r GenerateRequest) Valid() bool {
	n := len([]rune(r.Prompt))
	return n >= MinPromptLength && n <= MaxPromptLength
}

// Clamp forces the confidence score into [0,1] and ensures sources is
// never nil.
func (r *GenerateResponse) Clamp() {
	if r.Confidence < 0 {
		r.Confidence = 0
	} else if r.Confidence > 1 {
		r.Confidence = 1
	}
	if r.Sources == nil {
		r.Sources = []string{}
	}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r GenerateRequest) String() string {
	return types.Stringify(r)
}

func (r GenerateResponse) String() string {
	return types.Stringify(r)
}
