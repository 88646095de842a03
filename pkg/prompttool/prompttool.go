// Package prompttool provides the tools made available to the model
// when answering a prompt.
package prompttool

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	// Packages
	athena "github.com/ayush27316/Athena"
	tool "github.com/ayush27316/Athena/pkg/tool"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// wordCount counts the number of words in a text
type wordCount struct{}

// currentDatetime returns the current UTC time
type currentDatetime struct{}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the tools available during prompt generation
func NewTools() []tool.Tool {
	return []tool.Tool{
		wordCount{},
		currentDatetime{},
	}
}

///////////////////////////////////////////////////////////////////////////////
// WORD COUNT

func (wordCount) Name() string {
	return "get_word_count"
}

func (wordCount) Description() string {
	return "Count the number of words in a given text."
}

func (wordCount) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[struct {
		Text string `json:"text" jsonschema:"The text to count words in"`
	}](nil)
}

func (wordCount) Run(_ context.Context, input json.RawMessage) (any, error) {
	var args struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, athena.ErrBadParameter.Withf("invalid input: %v", err)
	}
	return len(strings.Fields(args.Text)), nil
}

///////////////////////////////////////////////////////////////////////////////
// CURRENT DATETIME

func (currentDatetime) Name() string {
	return "get_current_datetime"
}

func (currentDatetime) Description() string {
	return "Return the current date and time in ISO-8601 format."
}

func (currentDatetime) Schema() (*jsonschema.Schema, error) {
	return &jsonschema.Schema{Type: "object"}, nil
}

func (currentDatetime) Run(context.Context, json.RawMessage) (any, error) {
	return time.Now().UTC().Format(time.RFC3339Nano), nil
}
