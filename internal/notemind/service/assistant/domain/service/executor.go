package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
	"github.com/kiosk404/echonote/pkg/logger"
)

// Executor runs a single tool call and always answers with an envelope.
type Executor struct {
	registry  *Registry
	transport ToolTransport
}

func NewExecutor(registry *Registry, transport ToolTransport) *Executor {
	return &Executor{registry: registry, transport: transport}
}

// Execute validates the tool name against the registry before the transport
// is contacted. Every failure ends up in the envelope's Error; nothing is
// returned as a Go error. A dispatched call is never rolled back.
func (e *Executor) Execute(ctx context.Context, req *entity.ToolCallRequest) *entity.ToolResultEnvelope {
	if req == nil || strings.TrimSpace(req.ToolName) == "" {
		return &entity.ToolResultEnvelope{Error: errno.ErrToolNameRequired.Error()}
	}

	env := &entity.ToolResultEnvelope{
		ToolName:  req.ToolName,
		Arguments: req.Arguments,
	}

	if !e.registry.Has(req.ToolName) {
		env.Error = fmt.Sprintf("%s: %q", errno.ErrUnknownTool, req.ToolName)
		logger.Warn("[Executor] rejected call to unknown tool %q", req.ToolName)
		return env
	}

	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}

	logger.Debug("[Executor] calling %s with %d arguments", req.ToolName, len(args))
	out, err := e.transport.Invoke(ctx, req.ToolName, args)
	if err != nil {
		env.Error = err.Error()
		env.ConnectionLost = errors.Is(err, errno.ErrConnection)
		logger.Warn("[Executor] tool %s failed in transport: %v", req.ToolName, err)
		return env
	}
	if out == nil {
		env.Error = fmt.Sprintf("tool %q returned no result", req.ToolName)
		return env
	}
	if out.IsError {
		env.Error = out.Text()
		if env.Error == "" {
			env.Error = fmt.Sprintf("tool %q reported an error without details", req.ToolName)
		}
		return env
	}

	env.OK = true
	env.Payload = append([]string(nil), out.Contents...)
	return env
}
