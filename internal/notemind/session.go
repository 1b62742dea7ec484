package notemind

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kiosk404/echonote/internal/notemind/config"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm"
	llmEntity "github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/mcp"
	"github.com/kiosk404/echonote/pkg/logger"
)

// Session is one connected assistant: tool servers, the model and the
// orchestrator. Close releases the tool server processes.
type Session struct {
	ID string

	mcpModule       *mcp.Module
	llmModule       *llm.Module
	assistantModule *assistant.Module
	model           *llm.ChatCompleter
}

// SessionOption customizes NewSession.
type SessionOption func(*sessionSettings)

type sessionSettings struct {
	observer func(entity.OrchestratorState)
	model    llmEntity.ModelRef
}

// WithStateObserver forwards orchestrator state changes, e.g. to a spinner.
func WithStateObserver(fn func(entity.OrchestratorState)) SessionOption {
	return func(s *sessionSettings) { s.observer = fn }
}

// WithModel overrides the configured default model.
func WithModel(ref llmEntity.ModelRef) SessionOption {
	return func(s *sessionSettings) { s.model = ref }
}

// NewSession builds the modules in dependency order: tool servers, model,
// assistant. Anything already started is closed again on failure.
func NewSession(ctx context.Context, cfg *config.Config, opts ...SessionOption) (*Session, error) {
	settings := &sessionSettings{}
	for _, opt := range opts {
		opt(settings)
	}
	s := &Session{ID: uuid.NewString()}

	mcpCfg, err := (&mcp.Config{Options: cfg.MCP}).Complete()
	if err != nil {
		return nil, fmt.Errorf("mcp config: %w", err)
	}
	if s.mcpModule, err = mcpCfg.New(ctx); err != nil {
		return nil, err
	}

	if s.llmModule, err = (&llm.Config{ModelOptions: cfg.Models}).Complete().New(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	if s.model, err = s.llmModule.Completer(ctx, settings.model); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("chat model: %w", err)
	}

	s.assistantModule, err = (&assistant.Config{
		Options:   cfg.Assistant,
		Transport: s.mcpModule.Manager,
		Model:     s.model,
		Observer:  settings.observer,
	}).Complete().New(ctx)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	logger.Info("[Session] %s ready (model=%s, tools=%d)", s.ID, s.model.Ref(), s.assistantModule.Registry.Len())
	return s, nil
}

// Process answers a free-text request.
func (s *Session) Process(ctx context.Context, query string) string {
	return s.assistantModule.Orchestrator.Process(ctx, query)
}

// Invoke calls a named tool directly.
func (s *Session) Invoke(ctx context.Context, toolName string, arguments map[string]any) string {
	return s.assistantModule.Orchestrator.Invoke(ctx, &entity.ToolCallRequest{ToolName: toolName, Arguments: arguments})
}

func (s *Session) Tools() []*entity.ToolDescriptor {
	return s.assistantModule.Registry.Descriptors()
}

// Describe is the tool catalog as shown to the model.
func (s *Session) Describe() string {
	return s.assistantModule.Registry.Describe()
}

func (s *Session) Model() llmEntity.ModelRef {
	return s.model.Ref()
}

// Alive is false once the tool transport was lost; the session must then
// be recreated.
func (s *Session) Alive() bool {
	if s.assistantModule != nil && s.assistantModule.Orchestrator.ConnectionLost() {
		return false
	}
	return s.mcpModule != nil && s.mcpModule.Manager.Alive()
}

// Close tears the modules down in reverse order of creation.
func (s *Session) Close() error {
	var errs []error
	if s.assistantModule != nil {
		errs = append(errs, s.assistantModule.Close())
	}
	if s.mcpModule != nil {
		errs = append(errs, s.mcpModule.Close())
	}
	logger.Debug("[Session] %s closed", s.ID)
	return errors.Join(errs...)
}
