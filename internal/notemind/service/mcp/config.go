package mcp

import (
	"errors"
	"fmt"
	"os"

	"github.com/kiosk404/echonote/pkg/utils/json"
)

const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPConfig is the servers file, in the Claude Desktop layout:
//
//	{
//	  "mcpServers": {
//	    "notes": {"command": "notesd", "args": ["serve"]}
//	  }
//	}
type MCPConfig struct {
	MCPServers map[string]*ServerConfig `json:"mcpServers"`
}

// ServerConfig describes one tool server.
type ServerConfig struct {
	// Transport is "stdio" (default) or "sse".
	Transport string `json:"transport,omitempty"`

	// stdio
	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
	Env     []string `json:"env,omitempty"`

	// sse
	URL string `json:"url,omitempty"`

	// ToolFilter limits the exposed tools; empty exposes all.
	ToolFilter []string `json:"toolFilter,omitempty"`
}

// LoadMCPConfig reads the servers file. A missing file yields an empty
// config.
func LoadMCPConfig(path string) (*MCPConfig, error) {
	if path == "" {
		return NewMCPConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewMCPConfig(), nil
		}
		return nil, fmt.Errorf("read MCP config %q: %w", path, err)
	}

	cfg := &MCPConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse MCP config %q: %w", path, err)
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]*ServerConfig)
	}
	return cfg, nil
}

func NewMCPConfig() *MCPConfig {
	return &MCPConfig{MCPServers: make(map[string]*ServerConfig)}
}

// Validate fills the default transport and reports incomplete servers.
func (c *MCPConfig) Validate() []error {
	var errs []error
	for name, srv := range c.MCPServers {
		if srv == nil {
			errs = append(errs, fmt.Errorf("mcpServers.%s: empty configuration", name))
			continue
		}
		if srv.Transport == "" {
			srv.Transport = TransportStdio
		}
		switch srv.Transport {
		case TransportStdio:
			if srv.Command == "" {
				errs = append(errs, fmt.Errorf("mcpServers.%s: command is required for stdio transport", name))
			}
		case TransportSSE:
			if srv.URL == "" {
				errs = append(errs, fmt.Errorf("mcpServers.%s: url is required for sse transport", name))
			}
		default:
			errs = append(errs, fmt.Errorf("mcpServers.%s: unsupported transport %q", name, srv.Transport))
		}
	}
	return errs
}
