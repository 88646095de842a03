package main

import (
	"fmt"
	"os"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type MCPCmd struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *MCPCmd) Run(ctx *Globals) error {
	server, err := newMCPServer(ctx.Data)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Running MCP server on stdio...")
	defer fmt.Fprintln(os.Stderr, "MCP server stopped")
	return server.RunStdio(ctx.ctx, os.Stdin, os.Stdout)
}
