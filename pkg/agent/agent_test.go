package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	// Packages
	athena "github.com/ayush27316/Athena"
	opt "github.com/ayush27316/Athena/pkg/opt"
	schema "github.com/ayush27316/Athena/pkg/schema"
	tool "github.com/ayush27316/Athena/pkg/tool"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// MOCKS

// mockClient implements athena.Client only (no Generator)
type mockClient struct {
	name   string
	models []schema.Model
}

func (c *mockClient) Name() string { return c.name }
func (c *mockClient) ListModels(_ context.Context, _ ...opt.Opt) ([]schema.Model, error) {
	return c.models, nil
}
func (c *mockClient) GetModel(_ context.Context, name string, _ ...opt.Opt) (*schema.Model, error) {
	for _, m := range c.models {
		if m.Name == name {
			return &m, nil
		}
	}
	return nil, athena.ErrNotFound
}

// mockGenerator implements both athena.Client and athena.Generator.
// It replies with a scripted sequence of messages; requests with a JSON
// schema option always receive the structured reply.
type mockGenerator struct {
	mockClient
	replies    []*schema.Message
	structured string
	calls      int
}

func (g *mockGenerator) WithoutSession(ctx context.Context, model schema.Model, message *schema.Message, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	conversation := schema.Conversation{}
	return g.WithSession(ctx, model, &conversation, message, opts...)
}

func (g *mockGenerator) WithSession(_ context.Context, _ schema.Model, conversation *schema.Conversation, message *schema.Message, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	conversation.Append(*message)
	g.calls++

	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, nil, err
	}
	if options.Has(opt.JSONSchemaKey) {
		reply := schema.NewMessage(schema.RoleAssistant, g.structured)
		reply.Result = schema.ResultStop
		conversation.Append(*reply)
		return reply, &schema.Usage{InputTokens: 10, OutputTokens: 5}, nil
	}

	if len(g.replies) == 0 {
		return nil, nil, fmt.Errorf("no more scripted replies")
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	conversation.Append(*reply)
	return reply, &schema.Usage{InputTokens: 10, OutputTokens: 5}, nil
}

// wordCountTool counts words, for exercising the tool loop
type wordCountTool struct{}

func (wordCountTool) Name() string        { return "get_word_count" }
func (wordCountTool) Description() string { return "Count the number of words in a given text" }
func (wordCountTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[struct {
		Text string `json:"text"`
	}](nil)
}
func (wordCountTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	var args struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, err
	}
	return len(strings.Fields(args.Text)), nil
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

func textReply(text string) *schema.Message {
	reply := schema.NewMessage(schema.RoleAssistant, text)
	reply.Result = schema.ResultStop
	return reply
}

func toolCallReply(id, name, input string) *schema.Message {
	return &schema.Message{
		Role: schema.RoleAssistant,
		Content: []schema.ContentBlock{
			{ToolCall: &schema.ToolCall{ID: id, Name: name, Input: json.RawMessage(input)}},
		},
		Result: schema.ResultToolCall,
	}
}

///////////////////////////////////////////////////////////////////////////////
// MANAGER TESTS

func Test_manager_001(t *testing.T) {
	// Test that a manager requires at least one client
	assert := assert.New(t)
	_, err := NewManager()
	assert.Error(err)
}

func Test_manager_002(t *testing.T) {
	// Test that duplicate clients are rejected
	assert := assert.New(t)
	_, err := NewManager(
		WithClient(&mockClient{name: "provider-1"}),
		WithClient(&mockClient{name: "provider-1"}),
	)
	assert.Error(err)
}

func Test_manager_003(t *testing.T) {
	// Test that ListModels aggregates models across clients
	assert := assert.New(t)
	m, err := NewManager(
		WithClient(&mockClient{name: "provider-1", models: []schema.Model{
			{Name: "model-1", OwnedBy: "provider-1"},
		}}),
		WithClient(&mockClient{name: "provider-2", models: []schema.Model{
			{Name: "model-2", OwnedBy: "provider-2"},
		}}),
	)
	assert.NoError(err)

	models, err := m.ListModels(context.TODO())
	assert.NoError(err)
	assert.Len(models, 2)
}

func Test_manager_004(t *testing.T) {
	// Test that GetModel searches all providers when none is named
	assert := assert.New(t)
	m, err := NewManager(
		WithClient(&mockClient{name: "provider-1", models: []schema.Model{
			{Name: "model-1", OwnedBy: "provider-1"},
		}}),
		WithClient(&mockClient{name: "provider-2", models: []schema.Model{
			{Name: "model-2", OwnedBy: "provider-2"},
		}}),
	)
	assert.NoError(err)

	model, err := m.GetModel(context.TODO(), "", "model-2")
	assert.NoError(err)
	assert.NotNil(model)
	assert.Equal("provider-2", model.OwnedBy)

	_, err = m.GetModel(context.TODO(), "", "model-9")
	assert.Error(err)
	assert.ErrorIs(err, athena.ErrNotFound)
}

func Test_manager_005(t *testing.T) {
	// Test that GetModel with a provider name queries that client only
	assert := assert.New(t)
	m, err := NewManager(
		WithClient(&mockClient{name: "provider-1", models: []schema.Model{
			{Name: "model-1", OwnedBy: "provider-1"},
		}}),
	)
	assert.NoError(err)

	model, err := m.GetModel(context.TODO(), "provider-1", "model-1")
	assert.NoError(err)
	assert.NotNil(model)

	_, err = m.GetModel(context.TODO(), "provider-9", "model-1")
	assert.Error(err)
}

///////////////////////////////////////////////////////////////////////////////
// GENERATE TESTS

func newGenerateManager(t *testing.T, g *mockGenerator) *Manager {
	t.Helper()
	toolkit, err := tool.NewToolkit(wordCountTool{})
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewManager(
		WithClient(g),
		WithToolkit(toolkit),
		WithModel("mock-model"),
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func Test_generate_001(t *testing.T) {
	// Test that an invalid prompt is rejected
	assert := assert.New(t)
	g := &mockGenerator{
		mockClient: mockClient{name: "mock", models: []schema.Model{
			{Name: "mock-model", OwnedBy: "mock"},
		}},
	}
	m := newGenerateManager(t, g)

	_, err := m.Generate(context.TODO(), schema.GenerateRequest{Prompt: ""})
	assert.Error(err)
	assert.ErrorIs(err, athena.ErrBadParameter)

	_, err = m.Generate(context.TODO(), schema.GenerateRequest{Prompt: strings.Repeat("x", 2001)})
	assert.Error(err)
	assert.ErrorIs(err, athena.ErrBadParameter)
}

func Test_generate_002(t *testing.T) {
	// Test a direct answer without tool calls
	assert := assert.New(t)
	g := &mockGenerator{
		mockClient: mockClient{name: "mock", models: []schema.Model{
			{Name: "mock-model", OwnedBy: "mock"},
		}},
		replies:    []*schema.Message{textReply("Paris is the capital of France.")},
		structured: `{"answer":"Paris is the capital of France.","confidence":0.95,"sources":[]}`,
	}
	m := newGenerateManager(t, g)

	response, err := m.Generate(context.TODO(), schema.GenerateRequest{Prompt: "What is the capital of France?"})
	assert.NoError(err)
	assert.NotNil(response)
	assert.Equal("Paris is the capital of France.", response.Answer)
	assert.Equal(0.95, response.Confidence)
	assert.NotNil(response.Sources)
	assert.NotNil(response.Usage)
	assert.NotZero(response.Usage.OutputTokens)
}

func Test_generate_003(t *testing.T) {
	// Test a tool call round trip before the final answer
	assert := assert.New(t)
	g := &mockGenerator{
		mockClient: mockClient{name: "mock", models: []schema.Model{
			{Name: "mock-model", OwnedBy: "mock"},
		}},
		replies: []*schema.Message{
			toolCallReply("call_1", "get_word_count", `{"text":"one two three"}`),
			textReply("The text has 3 words."),
		},
		structured: `{"answer":"The text has 3 words.","confidence":1,"sources":[]}`,
	}
	m := newGenerateManager(t, g)

	response, err := m.Generate(context.TODO(), schema.GenerateRequest{Prompt: "How many words in: one two three"})
	assert.NoError(err)
	assert.NotNil(response)
	assert.Equal("The text has 3 words.", response.Answer)
	// First pass, tool round trip, coercion pass
	assert.Equal(3, g.calls)
}

func Test_generate_004(t *testing.T) {
	// Test that confidence is clamped into [0,1]
	assert := assert.New(t)
	g := &mockGenerator{
		mockClient: mockClient{name: "mock", models: []schema.Model{
			{Name: "mock-model", OwnedBy: "mock"},
		}},
		replies:    []*schema.Message{textReply("Certain.")},
		structured: `{"answer":"Certain.","confidence":1.7}`,
	}
	m := newGenerateManager(t, g)

	response, err := m.Generate(context.TODO(), schema.GenerateRequest{Prompt: "Is this certain?"})
	assert.NoError(err)
	assert.Equal(1.0, response.Confidence)
	assert.NotNil(response.Sources)
}

func Test_generate_005(t *testing.T) {
	// Test that the iteration limit is enforced
	assert := assert.New(t)
	var replies []*schema.Message
	for i := 0; i < 10; i++ {
		replies = append(replies, toolCallReply(fmt.Sprintf("call_%d", i), "get_word_count", `{"text":"loop"}`))
	}
	g := &mockGenerator{
		mockClient: mockClient{name: "mock", models: []schema.Model{
			{Name: "mock-model", OwnedBy: "mock"},
		}},
		replies: replies,
	}
	m := newGenerateManager(t, g)

	_, err := m.Generate(context.TODO(), schema.GenerateRequest{Prompt: "Loop forever"})
	assert.Error(err)
}
