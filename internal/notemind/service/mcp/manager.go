package mcp

import (
	"context"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
)

// Manager owns the tool server connections of a session and routes calls
// by tool name.
type Manager interface {
	// Initialize connects every configured server. Any failure is fatal
	// and wraps errno.ErrConnection.
	Initialize(ctx context.Context) error

	DiscoverTools(ctx context.Context) ([]*entity.ToolDescriptor, error)
	Invoke(ctx context.Context, toolName string, arguments map[string]any) (*entity.ToolOutput, error)

	// Alive is false once a server was found unreachable after a failed call.
	Alive() bool

	ServerNames() []string
	ServerStatus(serverName string) ServerStatus
	Close() error
}
