package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/repo"
)

var _ repo.ProviderRepository = (*ProviderStore)(nil)

type ProviderStore struct {
	mu        sync.RWMutex
	providers map[string]*entity.ModelProvider
}

func NewProviderStore() *ProviderStore {
	return &ProviderStore{providers: make(map[string]*entity.ModelProvider)}
}

func (p *ProviderStore) Save(_ context.Context, provider *entity.ModelProvider) error {
	if provider == nil || provider.ID == "" {
		return fmt.Errorf("provider ID is required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.providers[provider.ID] = provider
	return nil
}

func (p *ProviderStore) FindByID(_ context.Context, id string) (*entity.ModelProvider, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	provider, ok := p.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider %q not found", id)
	}
	return provider, nil
}

// FindAll returns the providers sorted by ID.
func (p *ProviderStore) FindAll(_ context.Context) ([]*entity.ModelProvider, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*entity.ModelProvider, 0, len(p.providers))
	for _, provider := range p.providers {
		out = append(out, provider)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
