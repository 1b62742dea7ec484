package spi

import (
	"context"

	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/pkg/options"
)

// ProviderPlugin turns provider configuration into entities.
type ProviderPlugin interface {
	Name() string
	// DefaultConfig is used when the provider is discovered from the
	// environment rather than configured. APIKey may be a ${ENV} reference.
	DefaultConfig() *options.ProviderConfig
	BuildProvider(cfg *options.ProviderConfig) (*entity.ModelProvider, error)
	BuildModels(provider *entity.ModelProvider, cfg *options.ProviderConfig) ([]*entity.ModelInstance, error)
}

// ChatModelPlugin can also build an eino chat model for one of its models.
// params may be nil, in which case provider defaults apply.
type ChatModelPlugin interface {
	ProviderPlugin
	BuildChatModel(ctx context.Context, instance *entity.ModelInstance, provider *entity.ModelProvider, params *entity.LLMParams) (model.BaseChatModel, error)
}

type PluginFactory func() ProviderPlugin
