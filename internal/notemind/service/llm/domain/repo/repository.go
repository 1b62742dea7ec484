package repo

import (
	"context"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
)

// ModelRepository stores the models known to a session.
type ModelRepository interface {
	// Save inserts instance, assigning an ID when it has none, or replaces it.
	Save(ctx context.Context, instance *entity.ModelInstance) error
	FindByRef(ctx context.Context, ref entity.ModelRef) (*entity.ModelInstance, error)
	FindDefault(ctx context.Context) (*entity.ModelInstance, error)
	FindAll(ctx context.Context) ([]*entity.ModelInstance, error)
	SetDefault(ctx context.Context, id int64) error
}

type ProviderRepository interface {
	Save(ctx context.Context, provider *entity.ModelProvider) error
	FindByID(ctx context.Context, id string) (*entity.ModelProvider, error)
	FindAll(ctx context.Context) ([]*entity.ModelProvider, error)
}
