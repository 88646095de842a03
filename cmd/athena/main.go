package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Provider API key
	XAIAPIKey string `name:"xai-api-key" env:"XAI_API_KEY" help:"xAI API key"`

	// Greenhouse dataset
	Data string `name:"data" env:"ATHENA_DATA" help:"Path to the greenhouse shapefile (.shp)"`

	// HTTP server options
	HTTP struct {
		Addr    string        `name:"addr" default:":8080" help:"Listen address"`
		Prefix  string        `name:"prefix" default:"/" help:"Path prefix"`
		Origin  string        `name:"origin" default:"*" help:"CORS origin"`
		Timeout time.Duration `name:"timeout" help:"Client request timeout"`
	} `embed:"" prefix:"http."`

	// Context
	ctx      context.Context
	execName string
}

type CLI struct {
	Globals

	// Commands
	Run     RunCmd     `cmd:"" help:"Run the HTTP server (generate API and MCP transport)"`
	MCP     MCPCmd     `cmd:"" name:"mcp" help:"Run the greenhouse MCP server on stdio"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Greenhouse geodata tool server and LLM generate API"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context which is cancelled on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Run the command
	cmd.FatalIfErrorf(cmd.Run(&cli.Globals))
}

func execName() string {
	name, err := os.Executable()
	if err != nil {
		return "athena"
	}
	return filepath.Base(name)
}
