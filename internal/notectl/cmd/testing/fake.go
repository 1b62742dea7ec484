// Package testing provides an in-memory assistant for command tests.
package testing

import (
	"context"
	"sync"

	"github.com/kiosk404/echonote/internal/notectl/cmd/util"
	"github.com/kiosk404/echonote/internal/notemind/options"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	llmEntity "github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
)

// Call records one Invoke.
type Call struct {
	Tool string
	Args map[string]any
}

// FakeAssistant answers every query with Reply and records what it was
// asked.
type FakeAssistant struct {
	Reply    string
	ToolList []*entity.ToolDescriptor
	Dead     bool
	Observer func(entity.OrchestratorState)

	mu      sync.Mutex
	Queries []string
	Calls   []Call
	Closed  bool
}

func (a *FakeAssistant) Process(_ context.Context, query string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Queries = append(a.Queries, query)
	if a.Observer != nil {
		a.Observer(entity.StateExecuting)
	}
	return a.Reply
}

func (a *FakeAssistant) Invoke(_ context.Context, toolName string, arguments map[string]any) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Calls = append(a.Calls, Call{Tool: toolName, Args: arguments})
	return a.Reply
}

func (a *FakeAssistant) Tools() []*entity.ToolDescriptor { return a.ToolList }

func (a *FakeAssistant) Model() llmEntity.ModelRef {
	return llmEntity.ModelRef{ProviderID: "fake", ModelID: "model"}
}

func (a *FakeAssistant) Alive() bool { return !a.Dead }

func (a *FakeAssistant) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Closed = true
	return nil
}

// Factory hands out the same FakeAssistant, or Err.
type Factory struct {
	Opts      *options.Options
	Assistant *FakeAssistant
	Err       error
}

func NewFactory(a *FakeAssistant) *Factory {
	return &Factory{Opts: options.NewOptions(), Assistant: a}
}

func (f *Factory) Options() *options.Options { return f.Opts }

func (f *Factory) NewAssistant(_ context.Context, observer func(entity.OrchestratorState)) (util.Assistant, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.Assistant.Observer = observer
	return f.Assistant, nil
}
