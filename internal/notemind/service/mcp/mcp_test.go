package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/echonote/internal/notemind/options"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
)

func newNotesServer() *server.MCPServer {
	s := server.NewMCPServer("notes-test", "0.0.1", server.WithToolCapabilities(true))
	s.AddTool(mcp.NewTool("list_items",
		mcp.WithDescription("List all files in the notes folder"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(`[{"filename":"a.txt","size":10}]`), nil
	})
	s.AddTool(mcp.NewTool("read_text",
		mcp.WithDescription("Read a text file"),
		mcp.WithString("filename", mcp.Required(), mcp.Description("File to read")),
		mcp.WithString("encoding"),
		mcp.WithNumber("limit"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("filename")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if name != "a.txt" {
			return mcp.NewToolResultError("File '" + name + "' not found in notes folder"), nil
		}
		return mcp.NewToolResultText("hello"), nil
	})
	return s
}

func startInProcess(t *testing.T, s *server.MCPServer) *client.Client {
	t.Helper()
	cli, err := client.NewInProcessClient(s)
	require.NoError(t, err)
	require.NoError(t, cli.Start(context.Background()))
	return cli
}

// flakyClient fails tool calls and optionally pings.
type flakyClient struct {
	client.MCPClient
	pingErr error
}

func (f *flakyClient) CallTool(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return nil, errors.New("write |1: broken pipe")
}

func (f *flakyClient) Ping(context.Context) error {
	return f.pingErr
}

func TestManagerRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := newServerWithClient("notes", nil, startInProcess(t, newNotesServer()))
	m := newManagerWithServers(srv)
	require.NoError(t, m.Initialize(ctx))
	defer m.Close()

	tools, err := m.DiscoverTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 2)

	byName := map[string][]string{}
	for _, d := range tools {
		byName[d.Name] = d.ParameterNames()
	}
	assert.Equal(t, []string{"filename", "encoding", "limit"}, byName["read_text"])
	assert.Empty(t, byName["list_items"])

	out, err := m.Invoke(ctx, "list_items", map[string]any{})
	require.NoError(t, err)
	assert.False(t, out.IsError)
	assert.Equal(t, []string{`[{"filename":"a.txt","size":10}]`}, out.Contents)

	out, err = m.Invoke(ctx, "read_text", map[string]any{"filename": "missing.txt"})
	require.NoError(t, err)
	assert.True(t, out.IsError)
	assert.Equal(t, "File 'missing.txt' not found in notes folder", out.Text())

	_, err = m.Invoke(ctx, "read_pdf", nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errno.ErrConnection)
	assert.True(t, m.Alive())
	assert.Equal(t, ServerStatusConnected, m.ServerStatus("notes"))
}

func TestManagerToolFilter(t *testing.T) {
	ctx := context.Background()
	srv := newServerWithClient("notes", &ServerConfig{ToolFilter: []string{"read_text"}}, startInProcess(t, newNotesServer()))
	m := newManagerWithServers(srv)
	require.NoError(t, m.Initialize(ctx))
	defer m.Close()

	tools, err := m.DiscoverTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "read_text", tools[0].Name)
}

func TestManagerConnectionLost(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyClient{MCPClient: startInProcess(t, newNotesServer()), pingErr: errors.New("EOF")}
	m := newManagerWithServers(newServerWithClient("notes", nil, flaky))
	require.NoError(t, m.Initialize(ctx))
	_, err := m.DiscoverTools(ctx)
	require.NoError(t, err)

	_, err = m.Invoke(ctx, "list_items", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errno.ErrConnection)
	assert.False(t, m.Alive())
	assert.Equal(t, ServerStatusError, m.ServerStatus("notes"))
}

func TestManagerCallFailureWithLiveServer(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyClient{MCPClient: startInProcess(t, newNotesServer())}
	m := newManagerWithServers(newServerWithClient("notes", nil, flaky))
	require.NoError(t, m.Initialize(ctx))
	_, err := m.DiscoverTools(ctx)
	require.NoError(t, err)

	_, err = m.Invoke(ctx, "list_items", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errno.ErrConnection)
	assert.True(t, m.Alive())
}

func TestInitializeFailsWithoutServers(t *testing.T) {
	err := newManagerWithServers().Initialize(context.Background())
	assert.ErrorIs(t, err, errno.ErrConnection)
}

func TestInitializeFailsForMissingCommand(t *testing.T) {
	cfg := &Config{
		Options:   &options.MCPOptions{},
		MCPConfig: &MCPConfig{MCPServers: map[string]*ServerConfig{"notes": {Command: "/nonexistent/notesd-for-tests"}}},
	}
	completed, err := cfg.Complete()
	require.NoError(t, err)

	_, err = completed.New(context.Background())
	assert.ErrorIs(t, err, errno.ErrConnection)
}

func TestLoadMCPConfig(t *testing.T) {
	cfg, err := LoadMCPConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, cfg.MCPServers)

	path := filepath.Join(t.TempDir(), "mcp.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mcpServers": {
		"notes": {"command": "notesd", "args": ["serve"]},
		"remote": {"transport": "sse"},
		"odd": {"transport": "grpc"}
	}}`), 0o644))
	cfg, err = LoadMCPConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Validate(), 2)
	assert.Equal(t, TransportStdio, cfg.MCPServers["notes"].Transport)
}

func TestCompleteFallsBackToDefaultServer(t *testing.T) {
	opts := options.NewMCPOptions()
	opts.ConfigFile = filepath.Join(t.TempDir(), "absent.json")

	completed, err := (&Config{Options: opts}).Complete()
	require.NoError(t, err)
	srv := completed.MCPConfig.MCPServers[DefaultServerName]
	require.NotNil(t, srv)
	assert.Equal(t, "notesd", srv.Command)
	assert.Equal(t, []string{"serve"}, srv.Args)
}

func TestToOutput(t *testing.T) {
	res := &mcp.CallToolResult{Content: []mcp.Content{
		mcp.TextContent{Type: "text", Text: "one"},
		&mcp.TextContent{Type: "text", Text: "two"},
	}}
	assert.Equal(t, []string{"one", "two"}, toOutput(res).Contents)
	assert.Nil(t, toOutput(nil))
}
