package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Conversation is a sequence of messages exchanged with an LLM
type Conversation []*Message

// Usage records token consumption for a generation request
type Usage struct {
	InputTokens  uint `json:"input_tokens,omitempty"`
	OutputTokens uint `json:"output_tokens,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds a message to the conversation
func (c *Conversation) Append(message Message) {
	*c = append(*c, &message)
}

// Tokens returns the total number of tokens in the conversation
func (c Conversation) Tokens() uint {
	total := uint(0)
	for _, msg := range c {
		total += msg.Tokens
	}
	return total
}

// Add accumulates usage from another request
func (u *Usage) Add(other *Usage) {
	if other == nil {
		return
	}
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Conversation) String() string {
	return types.Stringify(c)
}
