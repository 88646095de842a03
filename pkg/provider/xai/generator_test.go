package xai

import (
	"context"
	"os"
	"testing"

	// Packages
	opt "github.com/ayush27316/Athena/pkg/opt"
	schema "github.com/ayush27316/Athena/pkg/schema"
	tool "github.com/ayush27316/Athena/pkg/tool"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// UNIT TESTS: generateRequestFromOpts

func Test_generateRequest_001(t *testing.T) {
	// Test minimal request with a single user message
	assert := assert.New(t)

	conversation := schema.Conversation{
		schema.NewMessage(schema.RoleUser, "Hello"),
	}
	o, err := opt.Apply()
	assert.NoError(err)

	req, err := generateRequestFromOpts(DefaultModel, &conversation, o)
	assert.NoError(err)
	assert.NotNil(req)
	assert.Equal(DefaultModel, req.Model)
	assert.Len(req.Messages, 1)
	assert.Equal("user", req.Messages[0].Role)
	assert.Equal("Hello", req.Messages[0].Content)
	assert.Nil(req.Temperature)
	assert.Nil(req.MaxTokens)
	assert.Nil(req.Seed)
	assert.Nil(req.ToolChoice)
	assert.Nil(req.Tools)
	assert.Nil(req.ResponseFormat)
}

func Test_generateRequest_002(t *testing.T) {
	// Test tool choice options
	assert := assert.New(t)

	conversation := schema.Conversation{
		schema.NewMessage(schema.RoleUser, "Hi"),
	}

	o, err := opt.Apply(WithToolChoiceRequired())
	assert.NoError(err)
	req, err := generateRequestFromOpts(DefaultModel, &conversation, o)
	assert.NoError(err)
	assert.Equal("required", req.ToolChoice)

	o, err = opt.Apply(WithToolChoice("clock"))
	assert.NoError(err)
	req, err = generateRequestFromOpts(DefaultModel, &conversation, o)
	assert.NoError(err)
	choice, ok := req.ToolChoice.(map[string]any)
	assert.True(ok)
	assert.Equal("function", choice["type"])
}

func Test_generateRequest_003(t *testing.T) {
	// Test toolkit tools are attached to the request
	assert := assert.New(t)

	toolkit, err := tool.NewToolkit(clockTool{})
	assert.NoError(err)

	conversation := schema.Conversation{
		schema.NewMessage(schema.RoleUser, "What time is it?"),
	}
	o, err := opt.Apply(tool.WithToolkit(toolkit))
	assert.NoError(err)

	req, err := generateRequestFromOpts(DefaultModel, &conversation, o)
	assert.NoError(err)
	assert.Len(req.Tools, 1)
	assert.Equal("clock", req.Tools[0].Function.Name)
}

func Test_generateRequest_004(t *testing.T) {
	// Test invalid option values produce errors
	assert := assert.New(t)

	_, err := opt.Apply(WithTemperature(3.0))
	assert.Error(err)

	_, err = opt.Apply(WithMaxTokens(0))
	assert.Error(err)

	_, err = opt.Apply(WithStopSequences())
	assert.Error(err)

	_, err = opt.Apply(WithJSONOutput(nil))
	assert.Error(err)
}

///////////////////////////////////////////////////////////////////////////////
// UNIT TESTS: WithoutSession / WithSession validation

func Test_WithoutSession_nil_message(t *testing.T) {
	assert := assert.New(t)
	c, err := New("test-key")
	assert.NoError(err)
	_, _, err = c.WithoutSession(context.TODO(), schema.Model{Name: "test"}, nil)
	assert.Error(err)
}

func Test_WithSession_nil_conversation(t *testing.T) {
	assert := assert.New(t)
	c, err := New("test-key")
	assert.NoError(err)
	_, _, err = c.WithSession(context.TODO(), schema.Model{Name: "test"}, nil, schema.NewMessage(schema.RoleUser, "Hi"))
	assert.Error(err)
}

///////////////////////////////////////////////////////////////////////////////
// LIVE TESTS

func Test_generate_001(t *testing.T) {
	// Test a simple text completion
	key := os.Getenv("XAI_API_KEY")
	if key == "" {
		t.Skip("XAI_API_KEY not set, skipping")
	}
	assert := assert.New(t)
	c, err := New(key)
	assert.NoError(err)

	msg := schema.NewMessage(schema.RoleUser, "Reply with the single word: hello")
	response, usage, err := c.WithoutSession(context.TODO(), schema.Model{Name: DefaultModel}, msg)
	assert.NoError(err)
	assert.NotNil(response)
	assert.Equal(schema.RoleAssistant, response.Role)
	assert.NotEmpty(response.Text())
	assert.NotNil(usage)
	assert.NotZero(usage.OutputTokens)
	t.Logf("response: %s", response.Text())
}

func Test_generate_002(t *testing.T) {
	// Test structured output with a JSON schema
	key := os.Getenv("XAI_API_KEY")
	if key == "" {
		t.Skip("XAI_API_KEY not set, skipping")
	}
	assert := assert.New(t)
	c, err := New(key)
	assert.NoError(err)

	outputSchema, err := jsonschema.For[struct {
		Answer string `json:"answer"`
	}](nil)
	assert.NoError(err)

	msg := schema.NewMessage(schema.RoleUser, "What is the capital of France?")
	response, _, err := c.WithoutSession(context.TODO(), schema.Model{Name: DefaultModel}, msg,
		WithJSONOutput(outputSchema),
	)
	assert.NoError(err)
	assert.NotNil(response)
	assert.Contains(response.Text(), "Paris")
}
