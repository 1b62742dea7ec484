package service

import (
	"context"
	"strings"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
	"github.com/kiosk404/echonote/pkg/logger"
)

// UninterpretableRequest is the reasoning attached to the Answer returned
// when the model reply cannot be used.
const UninterpretableRequest = "could not interpret request"

// DecisionEngine turns one utterance into a Decision. Decide never fails:
// every problem with the model or its reply ends in an Answer.
type DecisionEngine interface {
	Decide(ctx context.Context, query, catalog string) *entity.Decision
}

type modelDecision struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
	Reasoning string         `json:"reasoning"`
}

type llmDecisionEngine struct {
	model   LanguageModel
	prompts PromptBuilder
}

var _ DecisionEngine = (*llmDecisionEngine)(nil)

// NewDecisionEngine returns an engine that makes a single model call per
// utterance, without retries.
func NewDecisionEngine(model LanguageModel, prompts PromptBuilder) DecisionEngine {
	return &llmDecisionEngine{model: model, prompts: prompts}
}

func (e *llmDecisionEngine) Decide(ctx context.Context, query, catalog string) *entity.Decision {
	prompt, err := e.prompts.DecisionPrompt(ctx, query, catalog)
	if err != nil {
		logger.Warn("[DecisionEngine] build prompt: %v", err)
		return entity.NewAnswer(UninterpretableRequest)
	}

	reply, err := e.model.Complete(ctx, prompt)
	if err != nil {
		logger.Warn("[DecisionEngine] model call failed: %v", err)
		return entity.NewAnswer(UninterpretableRequest)
	}
	return ParseDecision(reply)
}

// ParseDecision normalizes a raw model reply. A reply without a usable
// JSON object becomes an Answer; an empty tool_name is the model choosing
// to answer directly.
func ParseDecision(reply string) *entity.Decision {
	if strings.TrimSpace(reply) == "" {
		logger.Warn("[DecisionEngine] %v", errno.ErrEmptyModelReply)
		return entity.NewAnswer(UninterpretableRequest)
	}

	d := decodeModelJSON[modelDecision](reply)
	if !d.Parsed() {
		logger.Warn("[DecisionEngine] %v: %v", errno.ErrUnparseableReply, d.Err)
		return entity.NewAnswer(UninterpretableRequest)
	}

	name := strings.TrimSpace(d.Value.ToolName)
	if name == "" {
		reasoning := d.Value.Reasoning
		if reasoning == "" {
			reasoning = UninterpretableRequest
		}
		return entity.NewAnswer(reasoning)
	}
	logger.Debug("[DecisionEngine] dispatch %s: %s", name, d.Value.Reasoning)
	return entity.NewDispatch(name, d.Value.Arguments, d.Value.Reasoning)
}
