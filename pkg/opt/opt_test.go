package opt_test

import (
	"errors"
	"testing"

	// Packages
	opt "github.com/ayush27316/Athena/pkg/opt"
	assert "github.com/stretchr/testify/assert"
)

func Test_opt_001(t *testing.T) {
	// Applying no options returns an empty set
	assert := assert.New(t)
	o, err := opt.Apply()
	assert.NoError(err)
	assert.False(o.Has(opt.SystemPromptKey))
	assert.Equal("", o.GetString(opt.SystemPromptKey))
}

func Test_opt_002(t *testing.T) {
	// String, uint and float values round-trip
	assert := assert.New(t)
	o, err := opt.Apply(
		opt.SetString(opt.SystemPromptKey, " prompt "),
		opt.SetUint(opt.MaxTokensKey, 100),
		opt.SetFloat64(opt.TemperatureKey, 0.5),
	)
	assert.NoError(err)
	assert.Equal("prompt", o.GetString(opt.SystemPromptKey))
	assert.Equal(uint(100), o.GetUint(opt.MaxTokensKey))
	assert.Equal(0.5, o.GetFloat64(opt.TemperatureKey))
}

func Test_opt_003(t *testing.T) {
	// An error option aborts Apply
	assert := assert.New(t)
	boom := errors.New("boom")
	_, err := opt.Apply(opt.SetString("a", "b"), opt.Error(boom))
	assert.ErrorIs(err, boom)
}

func Test_opt_004(t *testing.T) {
	// AddString accumulates values
	assert := assert.New(t)
	o, err := opt.Apply(
		opt.AddString(opt.StopSequencesKey, "one"),
		opt.AddString(opt.StopSequencesKey, "two", "three"),
	)
	assert.NoError(err)
	assert.Equal([]string{"one", "two", "three"}, o.GetStringArray(opt.StopSequencesKey))
}

func Test_opt_005(t *testing.T) {
	// SetAny stores arbitrary values retrievable with Get
	assert := assert.New(t)
	type custom struct{ A int }
	o, err := opt.Apply(opt.SetAny(opt.ToolkitKey, &custom{A: 1}))
	assert.NoError(err)
	v, ok := o.Get(opt.ToolkitKey).(*custom)
	assert.True(ok)
	assert.Equal(1, v.A)
}
