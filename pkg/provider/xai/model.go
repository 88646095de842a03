package xai

import (
	"time"

	// Packages
	schema "github.com/ayush27316/Athena/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// modelMeta is the wire representation of a model
type modelMeta struct {
	Id      string `json:"id"`
	Object  string `json:"object,omitempty"`
	Created int64  `json:"created,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Model converts the wire representation into a schema model
func (m modelMeta) Model() schema.Model {
	model := schema.Model{
		Name:    m.Id,
		OwnedBy: schema.XAI,
	}
	if m.Created > 0 {
		model.Created = time.Unix(m.Created, 0)
	}
	return model
}
