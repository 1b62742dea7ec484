package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/kiosk404/echonote/pkg/logger"
	"github.com/kiosk404/echonote/pkg/version"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

type ServerStatus int

const (
	ServerStatusDisconnected ServerStatus = iota
	ServerStatusConnecting
	ServerStatusConnected
	ServerStatusError
)

func (s ServerStatus) String() string {
	switch s {
	case ServerStatusDisconnected:
		return "Disconnected"
	case ServerStatusConnecting:
		return "Connecting"
	case ServerStatusConnected:
		return "Connected"
	case ServerStatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// MCPServer is one connection to a tool server.
type MCPServer struct {
	name   string
	config *ServerConfig
	dial   func(ctx context.Context) (client.MCPClient, error)

	mu     sync.RWMutex
	client client.MCPClient
	tools  []mcp.Tool
	status ServerStatus
	err    error
}

func NewMCPServer(name string, cfg *ServerConfig) *MCPServer {
	s := &MCPServer{name: name, config: cfg}
	s.dial = s.createClient
	return s
}

// newServerWithClient connects through an already constructed client,
// such as an in-process one.
func newServerWithClient(name string, cfg *ServerConfig, cli client.MCPClient) *MCPServer {
	if cfg == nil {
		cfg = &ServerConfig{}
	}
	return &MCPServer{
		name:   name,
		config: cfg,
		dial:   func(context.Context) (client.MCPClient, error) { return cli, nil },
	}
}

func (s *MCPServer) Name() string { return s.name }

func (s *MCPServer) Status() ServerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err is the last connection error, if any.
func (s *MCPServer) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Tools returns the discovered tools after the filter was applied.
func (s *MCPServer) Tools() []mcp.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]mcp.Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Connect performs the handshake and lists the server's tools.
func (s *MCPServer) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = ServerStatusConnecting
	s.err = nil

	cli, err := s.dial(ctx)
	if err != nil {
		return s.failLocked(fmt.Errorf("server %q: create client: %w", s.name, err))
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "echonote-notemind",
		Version: version.Get().GitVersion,
	}
	if _, err := cli.Initialize(ctx, initReq); err != nil {
		_ = cli.Close()
		return s.failLocked(fmt.Errorf("server %q: initialize: %w", s.name, err))
	}

	listed, err := cli.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		_ = cli.Close()
		return s.failLocked(fmt.Errorf("server %q: list tools: %w", s.name, err))
	}

	s.client = cli
	s.tools = filterTools(listed.Tools, s.config.ToolFilter)
	s.status = ServerStatusConnected
	logger.Info("[MCP] server %q connected (%d tools)", s.name, len(s.tools))
	return nil
}

func (s *MCPServer) failLocked(err error) error {
	s.status = ServerStatusError
	s.err = err
	return err
}

// CallTool forwards one call. The returned error is a protocol or
// transport failure; tool failures come back in the result.
func (s *MCPServer) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	s.mu.RLock()
	cli := s.client
	s.mu.RUnlock()
	if cli == nil {
		return nil, fmt.Errorf("server %q is not connected", s.name)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return cli.CallTool(ctx, req)
}

// Ping checks whether the server still answers.
func (s *MCPServer) Ping(ctx context.Context) error {
	s.mu.RLock()
	cli := s.client
	s.mu.RUnlock()
	if cli == nil {
		return fmt.Errorf("server %q is not connected", s.name)
	}
	return cli.Ping(ctx)
}

// MarkLost records that the connection went away.
func (s *MCPServer) MarkLost(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = ServerStatusError
	s.err = err
}

func (s *MCPServer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		if err := s.client.Close(); err != nil {
			logger.Warn("[MCP] server %q: close client: %v", s.name, err)
		}
		s.client = nil
	}
	s.tools = nil
	s.status = ServerStatusDisconnected
	s.err = nil
}

// createClient starts the transport. The stdio client spawns the
// subprocess itself; the SSE client must be started explicitly.
func (s *MCPServer) createClient(ctx context.Context) (client.MCPClient, error) {
	switch s.config.Transport {
	case TransportStdio, "":
		return client.NewStdioMCPClient(s.config.Command, s.config.Env, s.config.Args...)
	case TransportSSE:
		cli, err := client.NewSSEMCPClient(s.config.URL)
		if err != nil {
			return nil, err
		}
		if err := cli.Start(context.WithoutCancel(ctx)); err != nil {
			_ = cli.Close()
			return nil, err
		}
		return cli, nil
	default:
		return nil, fmt.Errorf("unknown transport: %s", s.config.Transport)
	}
}

func filterTools(tools []mcp.Tool, allow []string) []mcp.Tool {
	if len(allow) == 0 {
		return tools
	}
	keep := make(map[string]struct{}, len(allow))
	for _, name := range allow {
		keep[name] = struct{}{}
	}
	out := make([]mcp.Tool, 0, len(allow))
	for _, t := range tools {
		if _, ok := keep[t.Name]; ok {
			out = append(out, t)
		}
	}
	return out
}
