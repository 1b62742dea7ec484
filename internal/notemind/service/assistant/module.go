package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiosk404/echonote/internal/notemind/options"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/service"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/prompt"
	"github.com/kiosk404/echonote/pkg/logger"
)

// Config holds what the assistant module is built from.
// Config → Complete() → New(ctx).
type Config struct {
	Options   *options.AssistantOptions
	Transport service.ToolTransport
	Model     service.LanguageModel

	// Observer, when set, receives every orchestrator state change.
	Observer func(entity.OrchestratorState)
}

type CompletedConfig struct {
	*Config
}

func (c *Config) Complete() CompletedConfig {
	if c.Options == nil {
		c.Options = options.NewAssistantOptions()
	}
	return CompletedConfig{c}
}

// Module exposes the tool catalog and the orchestrator of one session.
type Module struct {
	Registry     *service.Registry
	Orchestrator *service.Orchestrator

	prompts *prompt.Builder
}

// New discovers the tools once and wires the control loop. A discovery
// failure is returned as is; it wraps errno.ErrConnection.
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	if c.Transport == nil {
		return nil, errors.New("assistant: tool transport is required")
	}
	if c.Model == nil {
		return nil, errors.New("assistant: language model is required")
	}
	o := c.Options

	categories := service.DefaultCategories()
	for tool, name := range o.ToolCategories {
		cat, err := service.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("assistant: tool %q: %w", tool, err)
		}
		categories[tool] = cat
	}

	registry := service.NewRegistry(c.Transport)
	if _, err := registry.Discover(ctx); err != nil {
		return nil, err
	}

	prompts := prompt.NewBuilder(prompt.ToolNames{
		List:           o.ListTool,
		TextReader:     o.TextReader,
		PDFReader:      o.PDFReader,
		CalendarList:   o.CalendarListTool,
		CalendarCreate: o.CalendarCreateTool,
	}, prompt.NewInstructionLoader(o.InstructionsDir))

	opts := []service.OrchestratorOption{
		service.WithSelector(service.NewSelector(c.Model, prompts)),
	}
	if c.Observer != nil {
		opts = append(opts, service.WithStateObserver(c.Observer))
	}
	if o.AnalyzeSelection {
		opts = append(opts, service.WithAnalyzer(service.NewAnalyzer(c.Model, prompts)))
	}

	orchestrator := service.NewOrchestrator(
		registry,
		service.NewDecisionEngine(c.Model, prompts),
		service.NewExecutor(registry, c.Transport),
		service.NewFormatter(categories),
		service.Routing{
			MetaKeywords:           o.MetaKeywords,
			DisambiguationKeywords: o.DisambiguationKeywords,
			TextReader:             o.TextReader,
			PDFReader:              o.PDFReader,
		},
		opts...,
	)

	logger.Info("[Assistant] module initialized (%d tools, analyze-selection=%t)", registry.Len(), o.AnalyzeSelection)
	return &Module{
		Registry:     registry,
		Orchestrator: orchestrator,
		prompts:      prompts,
	}, nil
}

func (m *Module) Close() error {
	if m.prompts != nil {
		m.prompts.Close()
	}
	return nil
}
