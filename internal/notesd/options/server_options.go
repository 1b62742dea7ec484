package options

import (
	"errors"

	"github.com/spf13/pflag"
)

// ServerOptions is what the server announces in the MCP handshake.
type ServerOptions struct {
	Name    string `json:"name"    mapstructure:"name"`
	Version string `json:"version" mapstructure:"version"`
}

func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		Name:    "Simple Note Reader",
		Version: "1.0.0",
	}
}

func (o *ServerOptions) Validate() []error {
	if o.Name == "" {
		return []error{errors.New("server.name is required")}
	}
	return nil
}

func (o *ServerOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Name, "server.name", o.Name, "Server name reported to MCP clients.")
	fs.StringVar(&o.Version, "server.version", o.Version, "Server version reported to MCP clients.")
}
