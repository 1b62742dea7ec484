package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
)

// Registry maps provider IDs to plugin factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]spi.PluginFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]spi.PluginFactory)}
}

func (r *Registry) Register(name string, factory spi.PluginFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(name, factory)
}

func (r *Registry) registerLocked(name string, factory spi.PluginFactory) error {
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("provider %s is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

func (r *Registry) MustRegister(name string, factory spi.PluginFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (spi.PluginFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("provider %s is not registered", name)
	}
	return factory, nil
}

// Names returns the registered provider IDs sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge adds every factory of other. A name present in both is an error
// and leaves r unchanged.
func (r *Registry) Merge(other *Registry) error {
	if other == nil || other == r {
		return nil
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range other.factories {
		if _, ok := r.factories[name]; ok {
			return fmt.Errorf("provider %s is already registered", name)
		}
	}
	for name, factory := range other.factories {
		if err := r.registerLocked(name, factory); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}
