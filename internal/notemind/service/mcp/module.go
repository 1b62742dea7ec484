package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiosk404/echonote/internal/notemind/options"
	"github.com/kiosk404/echonote/pkg/logger"
)

// DefaultServerName is used for the server started from mcp.command.
const DefaultServerName = "notes"

type Config struct {
	Options   *options.MCPOptions
	MCPConfig *MCPConfig
}

type CompletedConfig struct {
	*Config
}

// Complete loads the servers file when no MCPConfig was given and falls
// back to the single stdio server of the options.
func (c *Config) Complete() (CompletedConfig, error) {
	if c.Options == nil {
		c.Options = options.NewMCPOptions()
	}
	if c.MCPConfig == nil {
		cfg, err := LoadMCPConfig(c.Options.ConfigFile)
		if err != nil {
			return CompletedConfig{}, err
		}
		c.MCPConfig = cfg
	}
	if len(c.MCPConfig.MCPServers) == 0 && c.Options.Command != "" {
		c.MCPConfig.MCPServers[DefaultServerName] = &ServerConfig{
			Transport: TransportStdio,
			Command:   c.Options.Command,
			Args:      c.Options.Args,
		}
	}
	if errs := c.MCPConfig.Validate(); len(errs) > 0 {
		return CompletedConfig{}, errors.Join(errs...)
	}
	return CompletedConfig{c}, nil
}

type Module struct {
	Manager Manager
}

// New connects to every server. The connection is held until Close.
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	mgr := newManager(c.MCPConfig)
	return newModule(ctx, mgr, c.Options)
}

func newModule(ctx context.Context, mgr *managerImpl, opts *options.MCPOptions) (*Module, error) {
	if opts != nil && opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}
	if err := mgr.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("mcp: %w", err)
	}
	logger.Info("[MCP] module initialized (%d servers)", len(mgr.ServerNames()))
	return &Module{Manager: mgr}, nil
}

func (m *Module) Close() error {
	if m.Manager != nil {
		return m.Manager.Close()
	}
	return nil
}
