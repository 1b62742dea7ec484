package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/repo"
)

var _ repo.ModelRepository = (*ModelStore)(nil)

// ModelStore keeps model instances in memory. IDs start at 1; 0 means
// "not saved yet".
type ModelStore struct {
	mu        sync.RWMutex
	models    map[int64]*entity.ModelInstance
	refIndex  map[string]int64
	defaultID int64
	nextID    int64
}

func NewModelStore() *ModelStore {
	return &ModelStore{
		models:   make(map[int64]*entity.ModelInstance),
		refIndex: make(map[string]int64),
	}
}

func (m *ModelStore) Save(_ context.Context, instance *entity.ModelInstance) error {
	if instance == nil {
		return fmt.Errorf("nil model instance")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := instance.Ref().String()
	if instance.ID == 0 {
		// Re-registering the same ref replaces the earlier entry.
		if id, ok := m.refIndex[key]; ok {
			instance.ID = id
		} else {
			m.nextID++
			instance.ID = m.nextID
		}
	}
	m.models[instance.ID] = instance
	m.refIndex[key] = instance.ID
	if instance.IsDefault {
		m.defaultID = instance.ID
	}
	return nil
}

func (m *ModelStore) FindByRef(_ context.Context, ref entity.ModelRef) (*entity.ModelInstance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.refIndex[ref.String()]
	if !ok {
		return nil, fmt.Errorf("model %s not found", ref)
	}
	return m.models[id], nil
}

func (m *ModelStore) FindDefault(_ context.Context) (*entity.ModelInstance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.models[m.defaultID]
	if !ok {
		return nil, fmt.Errorf("no default model set")
	}
	return inst, nil
}

// FindAll returns the instances ordered by ID, i.e. registration order.
func (m *ModelStore) FindAll(_ context.Context) ([]*entity.ModelInstance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*entity.ModelInstance, 0, len(m.models))
	for _, inst := range m.models {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *ModelStore) SetDefault(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.models[id]
	if !ok {
		return fmt.Errorf("model with ID %d not found", id)
	}
	if prev, ok := m.models[m.defaultID]; ok {
		prev.IsDefault = false
	}
	inst.IsDefault = true
	m.defaultID = id
	return nil
}
