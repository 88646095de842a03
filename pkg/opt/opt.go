package opt

import (
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a client or request
type Opt func(*Options) error

// Options is the set of applied options
type Options struct {
	values map[string]any
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Well-known option keys
const (
	SystemPromptKey   = "system_prompt"
	TemperatureKey    = "temperature"
	MaxTokensKey      = "max_tokens"
	JSONSchemaKey     = "json_schema"
	ToolkitKey        = "toolkit"
	ToolChoiceKey     = "tool_choice"
	ToolChoiceNameKey = "tool_choice_name"
	UserIdKey         = "user_id"
	SeedKey           = "seed"
	StopSequencesKey  = "stop_sequences"
	LimitKey          = "limit"
	OffsetKey         = "offset"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (Options, error) {
	options := Options{values: make(map[string]any, len(o))}
	for _, opt := range o {
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}
	return options, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Has returns true if the key has been set
func (o Options) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Get returns the raw value for key, or nil if not set
func (o Options) Get(key string) any {
	return o.values[key]
}

// GetString returns the trimmed string value for key, or empty string if not set
func (o Options) GetString(key string) string {
	if v, ok := o.values[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// GetStringArray returns the string slice value for key, or nil if not set
func (o Options) GetStringArray(key string) []string {
	if v, ok := o.values[key].([]string); ok {
		return v
	}
	return nil
}

// GetUint returns the uint value for key, or 0 if not set
func (o Options) GetUint(key string) uint {
	switch v := o.values[key].(type) {
	case uint:
		return v
	case int:
		if v >= 0 {
			return uint(v)
		}
	case string:
		if parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
			return uint(parsed)
		}
	}
	return 0
}

// GetFloat64 returns the float64 value for key, or 0 if not set
func (o Options) GetFloat64(key string) float64 {
	if v, ok := o.values[key].(float64); ok {
		return v
	}
	return 0
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(*Options) error {
		return err
	}
}

// WithOpts combines multiple options into a single option
func WithOpts(opts ...Opt) Opt {
	return func(o *Options) error {
		for _, opt := range opts {
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// SetString sets a string value for the key
func SetString(key, value string) Opt {
	return func(o *Options) error {
		o.values[key] = value
		return nil
	}
}

// AddString appends string values for the key
func AddString(key string, values ...string) Opt {
	return func(o *Options) error {
		existing, _ := o.values[key].([]string)
		o.values[key] = append(existing, values...)
		return nil
	}
}

// SetUint sets a uint value for the key
func SetUint(key string, value uint) Opt {
	return func(o *Options) error {
		o.values[key] = value
		return nil
	}
}

// SetFloat64 sets a float64 value for the key
func SetFloat64(key string, value float64) Opt {
	return func(o *Options) error {
		o.values[key] = value
		return nil
	}
}

// SetAny sets any value for the key
func SetAny(key string, value any) Opt {
	return func(o *Options) error {
		o.values[key] = value
		return nil
	}
}
