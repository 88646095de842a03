/*
xai implements an API client for the xAI chat completions API.
https://docs.x.ai/docs/api-reference
*/
package xai

import (
	"context"
	"time"

	// Packages
	athena "github.com/ayush27316/Athena"
	modelcache "github.com/ayush27316/Athena/pkg/modelcache"
	opt "github.com/ayush27316/Athena/pkg/opt"
	schema "github.com/ayush27316/Athena/pkg/schema"
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	*modelcache.ModelCache
}

var _ athena.Client = (*Client)(nil)
var _ athena.Generator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.x.ai/v1"

	// DefaultModel is used when no model name is configured
	DefaultModel = "grok-4-1-fast-non-reasoning"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new xAI API client with the given API key
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, athena.ErrBadParameter.With("missing API key")
	}
	opts = append(opts,
		client.OptEndpoint(endPoint),
		client.OptReqToken(client.Token{
			Scheme: client.Bearer,
			Value:  apiKey,
		}),
	)
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{c, modelcache.NewModelCache(time.Hour, 40)}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the provider name
func (*Client) Name() string {
	return schema.XAI
}

// ListModels returns all available models
func (c *Client) ListModels(ctx context.Context, opts ...opt.Opt) ([]schema.Model, error) {
	return c.ModelCache.ListModels(ctx, opts, func(ctx context.Context, _ ...opt.Opt) ([]schema.Model, error) {
		var response struct {
			Data []modelMeta `json:"data"`
		}
		if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models")); err != nil {
			return nil, err
		}
		result := make([]schema.Model, 0, len(response.Data))
		for _, meta := range response.Data {
			result = append(result, meta.Model())
		}
		return result, nil
	})
}

// GetModel returns the model with the given name
func (c *Client) GetModel(ctx context.Context, name string, _ ...opt.Opt) (*schema.Model, error) {
	return c.ModelCache.GetModel(ctx, name, func(ctx context.Context, name string) (*schema.Model, error) {
		var response modelMeta
		if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models", name)); err != nil {
			return nil, err
		}
		if response.Id == "" {
			return nil, athena.ErrNotFound.Withf("model %q", name)
		}
		return types.Ptr(response.Model()), nil
	})
}
