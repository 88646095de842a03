package main

import (
	"crypto/tls"
	"fmt"
	"log"
	"os"

	// Packages
	agent "github.com/ayush27316/Athena/pkg/agent"
	greenhouse "github.com/ayush27316/Athena/pkg/greenhouse"
	httphandler "github.com/ayush27316/Athena/pkg/httphandler"
	mcp "github.com/ayush27316/Athena/pkg/mcp"
	prompttool "github.com/ayush27316/Athena/pkg/prompttool"
	xai "github.com/ayush27316/Athena/pkg/provider/xai"
	tool "github.com/ayush27316/Athena/pkg/tool"
	version "github.com/ayush27316/Athena/pkg/version"
	client "github.com/mutablelogic/go-client"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type RunCmd struct {
	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	serverName         = "StatCan Greenhouse Database"
	serverInstructions = "This MCP server provides access to Statistics Canada's Open Database " +
		"of Greenhouses (ODG v1). The database contains 2,476 greenhouse polygon " +
		"records across Canadian provinces (Ontario, Quebec, British Columbia, Alberta) " +
		"identified from satellite imagery. You can query greenhouses by province, " +
		"area, image year, or get aggregate statistics. " +
		"Tool responses include markdown tables — render them directly for the user."
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunCmd) Run(ctx *Globals) error {
	manager, err := newManager(ctx)
	if err != nil {
		return err
	}

	mcpServer, err := newMCPServer(ctx.Data)
	if err != nil {
		return err
	}

	// Start the HTTP server and wait for shutdown
	return cmd.Serve(ctx, manager, mcpServer, version.Version())
}

// Serve creates the httpserver instance and blocks until context
// cancellation (e.g. SIGINT).
func (cmd *RunCmd) Serve(ctx *Globals, manager *agent.Manager, mcpServer *mcp.Server, versionTag string) error {
	// Create the TLS config if TLS options are provided
	var tlsConfig *tls.Config
	if cmd.TLS.CertFile != "" || cmd.TLS.KeyFile != "" {
		var pemData [][]byte
		if cmd.TLS.CertFile != "" {
			certData, err := os.ReadFile(cmd.TLS.CertFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS certificate: %w", err)
			}
			pemData = append(pemData, certData)
		}
		if cmd.TLS.KeyFile != "" {
			keyData, err := os.ReadFile(cmd.TLS.KeyFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS key: %w", err)
			}
			pemData = append(pemData, keyData)
		}
		var err error
		tlsConfig, err = httpserver.TLSConfig(cmd.TLS.ServerName, false, pemData...)
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	// Create the HTTP router
	router, err := httprouter.NewRouter(ctx.ctx, ctx.HTTP.Prefix, ctx.HTTP.Origin, "Athena", versionTag)
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(manager, router, true); err != nil {
		return err
	}

	// Mount the MCP streamable HTTP transport
	mcpHandler := mcpServer.HTTPHandler()
	if err := router.RegisterFunc("/mcp", mcpHandler.ServeHTTP, true, types.Ptr(openapi.PathItem{
		Post: &openapi.Operation{
			Description: "MCP streamable HTTP transport (JSON-RPC)",
		},
	})); err != nil {
		return err
	}

	// Create the server
	httpserver, err := httpserver.New(ctx.HTTP.Addr, router, tlsConfig)
	if err != nil {
		return err
	}

	// Run the server
	log.Printf("%s@%s started on %s", ctx.execName, versionTag, ctx.HTTP.Addr)
	if err := httpserver.Run(ctx.ctx); err != nil {
		return err
	}

	// Return success
	log.Printf("%s@%s stopped", ctx.execName, versionTag)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// newManager creates the xAI-backed agent manager with the prompt tools
// registered.
func newManager(ctx *Globals) (*agent.Manager, error) {
	// Make client opts
	clientOpts := []client.ClientOpt{}
	if ctx.Debug {
		clientOpts = append(clientOpts, client.OptTrace(os.Stderr, ctx.Verbose))
	}
	if ctx.HTTP.Timeout != 0 {
		clientOpts = append(clientOpts, client.OptTimeout(ctx.HTTP.Timeout))
	}

	// xAI client
	if ctx.XAIAPIKey == "" {
		return nil, fmt.Errorf("no API key configured. Set --xai-api-key (or the XAI_API_KEY environment variable)")
	}
	xaiClient, err := xai.New(ctx.XAIAPIKey, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create xAI client: %w", err)
	}

	// Toolkit with the prompt tools
	toolkit, err := tool.NewToolkit(prompttool.NewTools()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create toolkit: %w", err)
	}

	// Create the manager
	return agent.NewManager(
		agent.WithClient(xaiClient),
		agent.WithToolkit(toolkit),
		agent.WithModel(xai.DefaultModel),
	)
}

// newMCPServer creates the MCP server over the greenhouse dataset.
// The shapefile is read lazily on first tool call.
func newMCPServer(data string) (*mcp.Server, error) {
	if data == "" {
		return nil, fmt.Errorf("no dataset configured. Set --data (or the ATHENA_DATA environment variable)")
	}
	toolkit, err := tool.NewToolkit(greenhouse.NewTools(greenhouse.Open(data))...)
	if err != nil {
		return nil, fmt.Errorf("failed to create toolkit: %w", err)
	}
	return mcp.New(serverName, version.Version(),
		mcp.WithToolkit(toolkit),
		mcp.WithInstructions(serverInstructions),
	)
}
