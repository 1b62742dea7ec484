package options

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

// MCPOptions locates the tool servers. The servers file uses the
// Claude Desktop "mcpServers" layout; without it a single stdio server is
// started from Command and Args.
type MCPOptions struct {
	ConfigFile     string        `json:"config-file"     mapstructure:"config-file"`
	Command        string        `json:"command"         mapstructure:"command"`
	Args           []string      `json:"args"            mapstructure:"args"`
	ConnectTimeout time.Duration `json:"connect-timeout" mapstructure:"connect-timeout"`
}

func NewMCPOptions() *MCPOptions {
	return &MCPOptions{
		ConfigFile:     "conf/mcp.json",
		Command:        "notesd",
		Args:           []string{"serve"},
		ConnectTimeout: 30 * time.Second,
	}
}

func (o *MCPOptions) Validate() []error {
	var errs []error
	if o.ConfigFile == "" && o.Command == "" {
		errs = append(errs, errors.New("mcp.config-file or mcp.command is required"))
	}
	if o.ConnectTimeout < 0 {
		errs = append(errs, errors.New("mcp.connect-timeout must not be negative"))
	}
	return errs
}

func (o *MCPOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "mcp.config-file", o.ConfigFile, "Path to the MCP servers file.")
	fs.StringVar(&o.Command, "mcp.command", o.Command, "Tool server started over stdio when no servers file exists.")
	fs.StringSliceVar(&o.Args, "mcp.args", o.Args, "Arguments for mcp.command.")
	fs.DurationVar(&o.ConnectTimeout, "mcp.connect-timeout", o.ConnectTimeout, "Time allowed for the MCP handshake and tool discovery.")
}
