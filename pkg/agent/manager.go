package agent

import (
	"context"
	"strings"
	"sync"

	// Packages
	athena "github.com/ayush27316/Athena"
	schema "github.com/ayush27316/Athena/pkg/schema"
	tool "github.com/ayush27316/Athena/pkg/tool"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Manager routes generation requests to the registered provider clients
// and executes tool calls through its toolkit.
type Manager struct {
	clients map[string]athena.Client
	toolkit *tool.Toolkit
	model   string
}

// Opt is a function which modifies the manager on creation
type Opt func(*Manager) error

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewManager(opts ...Opt) (*Manager, error) {
	// Create the manager
	m := new(Manager)
	m.clients = make(map[string]athena.Client)

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	// At least one client is required
	if len(m.clients) == 0 {
		return nil, athena.ErrBadParameter.With("at least one client is required")
	}

	// Default to empty toolkit if none was provided
	if m.toolkit == nil {
		m.toolkit, _ = tool.NewToolkit()
	}

	// Return success
	return m, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithClient registers a provider client with the manager
func WithClient(client athena.Client) Opt {
	return func(m *Manager) error {
		if client == nil {
			return athena.ErrBadParameter.With("client is required")
		}
		name := client.Name()
		if _, exists := m.clients[name]; exists {
			return athena.ErrConflict.Withf("client %q already exists", name)
		}
		m.clients[name] = client
		return nil
	}
}

// WithToolkit sets the toolkit used to execute tool calls
func WithToolkit(toolkit *tool.Toolkit) Opt {
	return func(m *Manager) error {
		if toolkit == nil {
			return athena.ErrBadParameter.With("toolkit is required")
		}
		m.toolkit = toolkit
		return nil
	}
}

// WithModel sets the default model for generation requests
func WithModel(model string) Opt {
	return func(m *Manager) error {
		if model = strings.TrimSpace(model); model == "" {
			return athena.ErrBadParameter.With("model is required")
		}
		m.model = model
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListModels returns the list of available models from all clients
func (m *Manager) ListModels(ctx context.Context) ([]schema.Model, error) {
	var result []schema.Model
	for _, client := range m.clients {
		models, err := client.ListModels(ctx)
		if err != nil {
			return nil, err
		}
		result = append(result, models...)
	}
	return result, nil
}

// GetModel returns the named model, searching the given provider or,
// when provider is empty, all registered providers in parallel.
func (m *Manager) GetModel(ctx context.Context, provider, model string) (*schema.Model, error) {
	if provider := strings.TrimSpace(provider); provider == "" {
		// Search all clients for the model in parallel
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		var mu sync.Mutex
		var result *schema.Model

		g, ctx := errgroup.WithContext(ctx)
		for _, client := range m.clients {
			g.Go(func() error {
				models, err := client.ListModels(ctx)
				if err != nil {
					return nil // Swallow per-provider errors
				}

				mu.Lock()
				defer mu.Unlock()
				if result != nil {
					return nil // Already found
				}
				for _, m := range models {
					if m.Name == model {
						result = &m
						cancel()
						return nil
					}
				}
				return nil
			})
		}
		g.Wait()

		if result != nil {
			return result, nil
		}
		return nil, athena.ErrNotFound.Withf("model %q not found in any provider", model)
	} else if client, ok := m.clients[provider]; !ok {
		return nil, athena.ErrNotFound.Withf("no client found for provider %q", provider)
	} else {
		return client.GetModel(ctx, model)
	}
}

// Toolkit returns the manager's toolkit
func (m *Manager) Toolkit() *tool.Toolkit {
	return m.toolkit
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (m *Manager) clientForModel(model *schema.Model) athena.Client {
	if model == nil {
		return nil
	}
	return m.clients[model.OwnedBy]
}
