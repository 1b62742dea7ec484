package service

import (
	"context"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
)

// ToolTransport is the remote side that owns the tools.
// Invoke returns an error only for transport failures; tool-level failures
// come back as ToolOutput.IsError.
type ToolTransport interface {
	DiscoverTools(ctx context.Context) ([]*entity.ToolDescriptor, error)
	Invoke(ctx context.Context, toolName string, arguments map[string]any) (*entity.ToolOutput, error)
}

// LanguageModel completes a single prompt.
type LanguageModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PromptBuilder renders the prompts sent to the LanguageModel.
type PromptBuilder interface {
	DecisionPrompt(ctx context.Context, query, catalog string) (string, error)
	SelectionPrompt(ctx context.Context, query, candidates string) (string, error)
	AnalysisPrompt(ctx context.Context, query, filename, document string) (string, error)
}
