package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
)

// Selection is the model's pick among listed candidates.
type Selection struct {
	Filename  string `json:"filename"`
	Reasoning string `json:"reasoning"`
}

// Selector asks the model to choose one document from a candidate listing.
type Selector struct {
	model   LanguageModel
	prompts PromptBuilder
}

func NewSelector(model LanguageModel, prompts PromptBuilder) *Selector {
	return &Selector{model: model, prompts: prompts}
}

// Select returns the chosen candidate. The returned filename is always one
// of candidates, spelled as listed.
func (s *Selector) Select(ctx context.Context, query string, candidates []entity.ListedItem) (*Selection, error) {
	if len(candidates) == 0 {
		return nil, errno.ErrNoSelection
	}
	prompt, err := s.prompts.SelectionPrompt(ctx, query, renderListing(candidates))
	if err != nil {
		return nil, fmt.Errorf("build selection prompt: %w", err)
	}
	reply, err := s.model.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("selection model call: %w", err)
	}

	d := decodeModelJSON[Selection](reply)
	if !d.Parsed() {
		return nil, fmt.Errorf("%w: %v", errno.ErrUnparseableReply, d.Err)
	}
	picked := strings.TrimSpace(d.Value.Filename)
	if picked == "" {
		return nil, errno.ErrNoSelection
	}
	for _, c := range candidates {
		if strings.EqualFold(c.Filename, picked) {
			return &Selection{Filename: c.Filename, Reasoning: d.Value.Reasoning}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", errno.ErrNotACandidate, picked)
}

// ReaderFor picks the follow-up reader tool from the file's content type.
func ReaderFor(filename, textReader, pdfReader string) string {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return pdfReader
	}
	return textReader
}

// Analyzer asks the model to answer the query from a document's text.
type Analyzer struct {
	model   LanguageModel
	prompts PromptBuilder
}

func NewAnalyzer(model LanguageModel, prompts PromptBuilder) *Analyzer {
	return &Analyzer{model: model, prompts: prompts}
}

func (a *Analyzer) Analyze(ctx context.Context, query, filename, document string) (string, error) {
	prompt, err := a.prompts.AnalysisPrompt(ctx, query, filename, document)
	if err != nil {
		return "", fmt.Errorf("build analysis prompt: %w", err)
	}
	reply, err := a.model.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("analysis model call: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", errno.ErrEmptyModelReply
	}
	return reply, nil
}
