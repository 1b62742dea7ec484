package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
)

type invocation struct {
	name string
	args map[string]any
}

type fakeTransport struct {
	mu          sync.Mutex
	tools       []*entity.ToolDescriptor
	discoverErr error
	results     map[string]*entity.ToolOutput
	errs        map[string]error
	calls       []invocation
}

func newFakeTransport(names ...string) *fakeTransport {
	t := &fakeTransport{
		results: map[string]*entity.ToolOutput{},
		errs:    map[string]error{},
	}
	for _, n := range names {
		t.tools = append(t.tools, &entity.ToolDescriptor{
			Name:        n,
			Description: "tool " + n,
			Parameters:  []entity.ToolParameter{{Name: "filename", Type: "string", Required: true}},
		})
	}
	return t
}

func (t *fakeTransport) reply(name string, contents ...string) *fakeTransport {
	t.results[name] = &entity.ToolOutput{Contents: contents}
	return t
}

func (t *fakeTransport) fail(name, message string) *fakeTransport {
	t.results[name] = &entity.ToolOutput{Contents: []string{message}, IsError: true}
	return t
}

func (t *fakeTransport) DiscoverTools(_ context.Context) ([]*entity.ToolDescriptor, error) {
	if t.discoverErr != nil {
		return nil, t.discoverErr
	}
	return t.tools, nil
}

func (t *fakeTransport) Invoke(_ context.Context, name string, args map[string]any) (*entity.ToolOutput, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, invocation{name: name, args: args})
	if err := t.errs[name]; err != nil {
		return nil, err
	}
	if out, ok := t.results[name]; ok {
		return out, nil
	}
	return &entity.ToolOutput{}, nil
}

func (t *fakeTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

// scriptedModel returns its replies in order and records every prompt.
type scriptedModel struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (m *scriptedModel) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.prompts) > len(m.replies) {
		return "", errors.New("no scripted reply left")
	}
	return m.replies[len(m.prompts)-1], nil
}

func (m *scriptedModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

type echoPrompts struct{}

func (echoPrompts) DecisionPrompt(_ context.Context, query, catalog string) (string, error) {
	return "decide: " + query + "\n" + catalog, nil
}

func (echoPrompts) SelectionPrompt(_ context.Context, query, candidates string) (string, error) {
	return "select: " + query + "\n" + candidates, nil
}

func (echoPrompts) AnalysisPrompt(_ context.Context, query, filename, document string) (string, error) {
	return "analyze: " + query + "\n" + filename + "\n" + document, nil
}

var errConnectionForTest = fmt.Errorf("%w: stdio closed", errno.ErrConnection)
