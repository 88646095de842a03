package modelcache_test

import (
	"context"
	"testing"
	"time"

	// Packages
	athena "github.com/ayush27316/Athena"
	modelcache "github.com/ayush27316/Athena/pkg/modelcache"
	opt "github.com/ayush27316/Athena/pkg/opt"
	schema "github.com/ayush27316/Athena/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_modelcache_001(t *testing.T) {
	// A list fetch populates the cache; subsequent lists do not call the fetcher
	assert := assert.New(t)
	cache := modelcache.NewModelCache(time.Minute, 10)

	calls := 0
	fetch := func(context.Context, ...opt.Opt) ([]schema.Model, error) {
		calls++
		return []schema.Model{{Name: "b"}, {Name: "a"}}, nil
	}

	models, err := cache.ListModels(context.Background(), nil, fetch)
	assert.NoError(err)
	assert.Len(models, 2)
	assert.Equal("a", models[0].Name)

	_, err = cache.ListModels(context.Background(), nil, fetch)
	assert.NoError(err)
	assert.Equal(1, calls)
}

func Test_modelcache_002(t *testing.T) {
	// GetModel caches single models and invalidates on not-found
	assert := assert.New(t)
	cache := modelcache.NewModelCache(time.Minute, 10)

	calls := 0
	fetch := func(_ context.Context, name string) (*schema.Model, error) {
		calls++
		return &schema.Model{Name: name}, nil
	}

	model, err := cache.GetModel(context.Background(), "m", fetch)
	assert.NoError(err)
	assert.Equal("m", model.Name)

	_, err = cache.GetModel(context.Background(), "m", fetch)
	assert.NoError(err)
	assert.Equal(1, calls)

	// Errors are passed through
	_, err = cache.GetModel(context.Background(), "missing", func(context.Context, string) (*schema.Model, error) {
		return nil, athena.ErrNotFound.With("missing")
	})
	assert.ErrorIs(err, athena.ErrNotFound)
}

func Test_modelcache_003(t *testing.T) {
	// With a zero TTL every list goes to the fetcher
	assert := assert.New(t)
	cache := modelcache.NewModelCache(0, 10)

	calls := 0
	fetch := func(context.Context, ...opt.Opt) ([]schema.Model, error) {
		calls++
		return []schema.Model{{Name: "a"}}, nil
	}

	for range 3 {
		_, err := cache.ListModels(context.Background(), nil, fetch)
		assert.NoError(err)
	}
	assert.Equal(3, calls)
}
