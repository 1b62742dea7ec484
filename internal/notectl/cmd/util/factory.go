package util

import (
	"context"

	"github.com/kiosk404/echonote/internal/notemind"
	"github.com/kiosk404/echonote/internal/notemind/config"
	"github.com/kiosk404/echonote/internal/notemind/options"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	llmEntity "github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
)

// Assistant is what commands need from a session.
type Assistant interface {
	Process(ctx context.Context, query string) string
	Invoke(ctx context.Context, toolName string, arguments map[string]any) string
	Tools() []*entity.ToolDescriptor
	Model() llmEntity.ModelRef
	Alive() bool
	Close() error
}

// Factory builds assistants from the completed command line options.
type Factory interface {
	Options() *options.Options
	NewAssistant(ctx context.Context, observer func(entity.OrchestratorState)) (Assistant, error)
}

type factoryImpl struct {
	opts  *options.Options
	model *string
}

// NewFactory uses opts as filled in by flags and config. model points at the
// --model flag value; empty means the configured default.
func NewFactory(opts *options.Options, model *string) Factory {
	return &factoryImpl{opts: opts, model: model}
}

func (f *factoryImpl) Options() *options.Options {
	return f.opts
}

func (f *factoryImpl) NewAssistant(ctx context.Context, observer func(entity.OrchestratorState)) (Assistant, error) {
	cfg, err := config.CreateConfigFromOptions(f.opts)
	if err != nil {
		return nil, err
	}
	sessionOpts := []notemind.SessionOption{notemind.WithStateObserver(observer)}
	if f.model != nil && *f.model != "" {
		ref, err := llmEntity.ParseModelRef(*f.model)
		if err != nil {
			return nil, err
		}
		sessionOpts = append(sessionOpts, notemind.WithModel(ref))
	}
	s, err := notemind.NewSession(ctx, cfg, sessionOpts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}
