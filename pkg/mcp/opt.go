package mcp

import (
	// Packages
	tool "github.com/ayush27316/Athena/pkg/tool"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithToolkit sets the toolkit whose tools the server exposes
func WithToolkit(v *tool.Toolkit) Opt {
	return func(server *Server) error {
		server.toolkit = v
		return nil
	}
}

// WithInstructions sets the server instructions returned on initialize
func WithInstructions(v string) Opt {
	return func(server *Server) error {
		server.instructions = v
		return nil
	}
}
