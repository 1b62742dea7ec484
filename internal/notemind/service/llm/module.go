package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/service"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/store/inmemory"
	"github.com/kiosk404/echonote/internal/pkg/options"
	"github.com/kiosk404/echonote/pkg/logger"
)

type Config struct {
	ModelOptions *options.ModelOptions

	// OutOfTreeRegistry adds provider plugins next to the built-in ones.
	OutOfTreeRegistry *provider.Registry
}

type CompletedConfig struct {
	*Config
}

func (c *Config) Complete() CompletedConfig {
	if c.ModelOptions == nil {
		c.ModelOptions = options.NewModelOptions()
	}
	return CompletedConfig{c}
}

// Module exposes the model manager plus the completer used for decisions.
type Module struct {
	Manager  service.ModelManager
	Registry *provider.Registry

	opts *options.ModelOptions
}

func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	registry := provider.NewInTreeRegistry()
	if err := registry.Merge(c.OutOfTreeRegistry); err != nil {
		return nil, fmt.Errorf("failed to merge out-of-tree providers: %w", err)
	}

	manager := service.NewModelManager(c.ModelOptions, inmemory.NewModelStore(), inmemory.NewProviderStore(), registry)
	if err := manager.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize LLM module: %w", err)
	}
	logger.Info("[LLM] module ready with %d provider plugins", registry.Len())

	return &Module{
		Manager:  manager,
		Registry: registry,
		opts:     c.ModelOptions,
	}, nil
}

func (m *Module) DefaultChatModel(ctx context.Context) (model.BaseChatModel, error) {
	inst, err := m.Manager.GetDefaultModel(ctx)
	if err != nil {
		return nil, err
	}
	return m.Manager.GetChatModel(ctx, inst.Ref())
}

// Params returns the generation settings configured for every call.
func (m *Module) Params() *entity.LLMParams {
	params := &entity.LLMParams{MaxTokens: m.opts.MaxTokens}
	t := m.opts.Temperature
	params.Temperature = &t
	return params
}

// Completer builds a completer for ref, or for the default model when ref
// is the zero value.
func (m *Module) Completer(ctx context.Context, ref entity.ModelRef) (*ChatCompleter, error) {
	if ref == (entity.ModelRef{}) {
		inst, err := m.Manager.GetDefaultModel(ctx)
		if err != nil {
			return nil, err
		}
		ref = inst.Ref()
	}
	cm, err := m.Manager.BuildChatModel(ctx, ref, m.Params())
	if err != nil {
		return nil, err
	}
	return NewChatCompleter(ref, cm), nil
}
