package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
	"github.com/kiosk404/echonote/pkg/logger"
)

const pingTimeout = 5 * time.Second

type managerImpl struct {
	mu      sync.RWMutex
	servers map[string]*MCPServer
	order   []string
	routes  map[string]*MCPServer
	lost    atomic.Bool
}

var _ Manager = (*managerImpl)(nil)

func newManager(cfg *MCPConfig) *managerImpl {
	m := &managerImpl{
		servers: make(map[string]*MCPServer, len(cfg.MCPServers)),
		routes:  make(map[string]*MCPServer),
	}
	for name, srvCfg := range cfg.MCPServers {
		m.servers[name] = NewMCPServer(name, srvCfg)
		m.order = append(m.order, name)
	}
	sort.Strings(m.order)
	return m
}

func newManagerWithServers(servers ...*MCPServer) *managerImpl {
	m := &managerImpl{
		servers: make(map[string]*MCPServer, len(servers)),
		routes:  make(map[string]*MCPServer),
	}
	for _, s := range servers {
		m.servers[s.Name()] = s
		m.order = append(m.order, s.Name())
	}
	return m
}

// Initialize connects all servers concurrently. The session needs every
// configured server, so one failure closes the rest.
func (m *managerImpl) Initialize(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.servers) == 0 {
		return fmt.Errorf("%w: no tool servers configured", errno.ErrConnection)
	}
	logger.Info("[MCP] connecting %d servers...", len(m.servers))

	var (
		wg    sync.WaitGroup
		errMu sync.Mutex
		errs  []error
	)
	for _, srv := range m.servers {
		wg.Add(1)
		go func(s *MCPServer) {
			defer wg.Done()
			if err := s.Connect(ctx); err != nil {
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
			}
		}(srv)
	}
	wg.Wait()

	if len(errs) > 0 {
		for _, srv := range m.servers {
			srv.Close()
		}
		return fmt.Errorf("%w: %w", errno.ErrConnection, errors.Join(errs...))
	}
	logger.Info("[MCP] all %d servers connected", len(m.servers))
	return nil
}

// DiscoverTools lists the tools of all connected servers in server name
// order. When two servers offer the same tool the first one keeps it.
func (m *managerImpl) DiscoverTools(_ context.Context) ([]*entity.ToolDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	routes := make(map[string]*MCPServer)
	var out []*entity.ToolDescriptor
	for _, name := range m.order {
		srv := m.servers[name]
		if srv.Status() != ServerStatusConnected {
			return nil, fmt.Errorf("%w: server %q is %s", errno.ErrConnection, name, srv.Status())
		}
		for _, t := range srv.Tools() {
			if owner, dup := routes[t.Name]; dup {
				logger.Warn("[MCP] tool %q of server %q shadowed by server %q", t.Name, name, owner.Name())
				continue
			}
			routes[t.Name] = srv
			out = append(out, toDescriptor(t))
		}
	}
	m.routes = routes
	return out, nil
}

// Invoke routes a call to the server owning the tool. A failed call is
// followed by a ping; if that fails too the connection counts as lost.
func (m *managerImpl) Invoke(ctx context.Context, toolName string, arguments map[string]any) (*entity.ToolOutput, error) {
	m.mu.RLock()
	srv, ok := m.routes[toolName]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("tool %q is not served by any connected server", toolName)
	}

	res, err := srv.CallTool(ctx, toolName, arguments)
	if err != nil {
		pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if pingErr := srv.Ping(pingCtx); pingErr != nil {
			srv.MarkLost(pingErr)
			m.lost.Store(true)
			logger.Error("[MCP] server %q unreachable: %v", srv.Name(), pingErr)
			return nil, fmt.Errorf("%w: server %q: %v", errno.ErrConnection, srv.Name(), err)
		}
		return nil, fmt.Errorf("call %s: %w", toolName, err)
	}
	out := toOutput(res)
	if out == nil {
		return nil, fmt.Errorf("call %s: empty result", toolName)
	}
	return out, nil
}

func (m *managerImpl) Alive() bool {
	return !m.lost.Load()
}

func (m *managerImpl) ServerNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *managerImpl) ServerStatus(serverName string) ServerStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	srv, ok := m.servers[serverName]
	if !ok {
		return ServerStatusDisconnected
	}
	return srv.Status()
}

func (m *managerImpl) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, srv := range m.servers {
		srv.Close()
	}
	m.routes = make(map[string]*MCPServer)
	logger.Info("[MCP] all servers closed")
	return nil
}
