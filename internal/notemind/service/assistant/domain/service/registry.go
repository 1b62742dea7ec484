package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
	"github.com/kiosk404/echonote/pkg/logger"
)

// Registry is the per-session catalog of tools, filled once by Discover.
type Registry struct {
	transport ToolTransport

	mu          sync.RWMutex
	descriptors []*entity.ToolDescriptor
	index       map[string]int
}

func NewRegistry(transport ToolTransport) *Registry {
	return &Registry{
		transport: transport,
		index:     make(map[string]int),
	}
}

// Discover queries the transport and replaces the catalog. A transport
// failure is returned wrapped in errno.ErrConnection and is not retried.
func (r *Registry) Discover(ctx context.Context) ([]*entity.ToolDescriptor, error) {
	discovered, err := r.transport.DiscoverTools(ctx)
	if err != nil {
		if !errors.Is(err, errno.ErrConnection) {
			err = fmt.Errorf("%w: %w", errno.ErrConnection, err)
		}
		return nil, fmt.Errorf("discover tools: %w", err)
	}

	descriptors := make([]*entity.ToolDescriptor, 0, len(discovered))
	index := make(map[string]int, len(discovered))
	for _, d := range discovered {
		if d == nil || d.Name == "" {
			continue
		}
		if _, dup := index[d.Name]; dup {
			logger.Warn("[Registry] duplicate tool %q ignored", d.Name)
			continue
		}
		cp, err := cloneDescriptor(d)
		if err != nil {
			return nil, fmt.Errorf("copy descriptor %q: %w", d.Name, err)
		}
		index[d.Name] = len(descriptors)
		descriptors = append(descriptors, cp)
	}

	r.mu.Lock()
	r.descriptors = descriptors
	r.index = index
	r.mu.Unlock()

	logger.Info("[Registry] discovered %d tools", len(descriptors))
	return r.Descriptors(), nil
}

// Describe renders the catalog as the prompt fragment handed to the model,
// one line per tool with parameter names in declaration order.
func (r *Registry) Describe() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.descriptors) == 0 {
		return "No tools available"
	}

	var b strings.Builder
	b.WriteString("Available tools:\n")
	for _, d := range r.descriptors {
		fmt.Fprintf(&b, "- %s: %s", d.Name, oneLine(d.Description))
		if names := d.ParameterNames(); len(names) > 0 {
			fmt.Fprintf(&b, " Parameters: %s", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Lookup returns a copy of the named descriptor.
func (r *Registry) Lookup(name string) (*entity.ToolDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	cp, err := cloneDescriptor(r.descriptors[i])
	if err != nil {
		return nil, false
	}
	return cp, true
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[name]
	return ok
}

// Descriptors returns deep copies in discovery order.
func (r *Registry) Descriptors() []*entity.ToolDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.ToolDescriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		if cp, err := cloneDescriptor(d); err == nil {
			out = append(out, cp)
		}
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

func cloneDescriptor(d *entity.ToolDescriptor) (*entity.ToolDescriptor, error) {
	cp := &entity.ToolDescriptor{}
	if err := copier.CopyWithOption(cp, d, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return cp, nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
