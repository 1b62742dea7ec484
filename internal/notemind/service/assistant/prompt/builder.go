package prompt

import (
	"context"
	"time"
)

const (
	decisionRole = `You are an AI assistant that helps users manage their notes and calendar.
You decide which tool, if any, should handle the user's request.`

	selectionRole = `You help pick the right file for a user request.
Choose the single file from the list below that best matches what the user is asking for.`

	selectionContract = `Respond with a JSON object:
{"filename": "<exact file name from the list>", "reasoning": "<why this file matches>"}`

	analysisRole = `You are an assistant reading a document on behalf of the user.`

	analysisFocus = `Answer the user's request using only the document above.
When the document is a CV or resume, focus on:
- skills
- experience
- projects
- education`
)

// Builder renders the three prompt kinds the assistant sends to a model.
type Builder struct {
	tools  ToolNames
	loader *InstructionLoader
	now    func() time.Time

	decision  *Pipeline
	selection *Pipeline
	analysis  *Pipeline
}

// NewBuilder wires the decision, selection and analysis pipelines. loader
// may be nil; when set its files are added to the decision prompt.
func NewBuilder(tools ToolNames, loader *InstructionLoader) *Builder {
	b := &Builder{tools: tools, loader: loader, now: time.Now}

	b.decision = NewPipeline("decision").
		RegisterSection(fixedSection("role", 100, decisionRole)).
		RegisterSection(&DateSection{}).
		RegisterSection(&CatalogSection{}).
		RegisterSection(&QuerySection{}).
		RegisterSection(&StrategySection{}).
		RegisterSection(&ContractSection{}).
		RegisterSection(&ExamplesSection{}).
		RegisterMutator(&jsonOnlyMutator{})
	if loader != nil {
		b.decision.SetExtraSections(loader.Sections)
	}

	b.selection = NewPipeline("selection").
		RegisterSection(fixedSection("role", 100, selectionRole)).
		RegisterSection(&CandidatesSection{}).
		RegisterSection(&QuerySection{Label: "User request"}).
		RegisterSection(fixedSection("contract", 500, selectionContract)).
		RegisterMutator(&jsonOnlyMutator{})

	b.analysis = NewPipeline("analysis").
		RegisterSection(fixedSection("role", 100, analysisRole)).
		RegisterSection(&DocumentSection{}).
		RegisterSection(&QuerySection{Label: "User request"}).
		RegisterSection(fixedSection("focus", 400, analysisFocus))

	return b
}

// WithClock overrides the time source used for date anchoring.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

func (b *Builder) DecisionPrompt(ctx context.Context, query, catalog string) (string, error) {
	return b.decision.Assemble(ctx, &PromptContext{
		Query:   query,
		Catalog: catalog,
		Now:     b.now(),
		Tools:   b.tools,
	})
}

func (b *Builder) SelectionPrompt(ctx context.Context, query, candidates string) (string, error) {
	return b.selection.Assemble(ctx, &PromptContext{
		Query:      query,
		Candidates: candidates,
		Tools:      b.tools,
	})
}

func (b *Builder) AnalysisPrompt(ctx context.Context, query, filename, document string) (string, error) {
	return b.analysis.Assemble(ctx, &PromptContext{
		Query:    query,
		Filename: filename,
		Document: document,
		Tools:    b.tools,
	})
}

func (b *Builder) Close() {
	b.loader.Close()
}
