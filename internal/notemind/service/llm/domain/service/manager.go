package service

import (
	"context"

	einoModel "github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
)

// ModelManager owns provider and model registration and builds chat models
// on demand.
type ModelManager interface {
	RegisterProvider(ctx context.Context, p *entity.ModelProvider) error
	ListProviders(ctx context.Context) ([]*entity.ModelProvider, error)

	RegisterModel(ctx context.Context, instance *entity.ModelInstance) (int64, error)
	GetModelByRef(ctx context.Context, ref entity.ModelRef) (*entity.ModelInstance, error)
	GetDefaultModel(ctx context.Context) (*entity.ModelInstance, error)
	ListAllModels(ctx context.Context) ([]*entity.ModelInstance, error)

	// GetChatModel returns a cached chat model built with provider defaults.
	GetChatModel(ctx context.Context, ref entity.ModelRef) (einoModel.BaseChatModel, error)
	// BuildChatModel always builds a fresh chat model for params.
	BuildChatModel(ctx context.Context, ref entity.ModelRef, params *entity.LLMParams) (einoModel.BaseChatModel, error)

	// Initialize registers the providers from configuration and, in merge
	// mode, the built-in ones whose credentials are in the environment.
	Initialize(ctx context.Context) error
}
