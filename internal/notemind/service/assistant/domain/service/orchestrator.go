package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/pkg/logger"
)

// Routing holds the keyword lists and tool names the control loop keys on.
type Routing struct {
	MetaKeywords           []string
	DisambiguationKeywords []string
	TextReader             string
	PDFReader              string
}

type OrchestratorOption func(*Orchestrator)

// WithSelector enables the disambiguation step for list results.
func WithSelector(s *Selector) OrchestratorOption {
	return func(o *Orchestrator) { o.selector = s }
}

// WithAnalyzer makes a selected document go through one more model call
// that answers the query from its text.
func WithAnalyzer(a *Analyzer) OrchestratorOption {
	return func(o *Orchestrator) { o.analyzer = a }
}

// WithStateObserver is called on every state change, under the turn lock.
func WithStateObserver(fn func(entity.OrchestratorState)) OrchestratorOption {
	return func(o *Orchestrator) { o.observer = fn }
}

// Orchestrator runs one utterance at a time through decision, execution,
// optional disambiguation and formatting. A second caller waits for the
// turn in progress.
type Orchestrator struct {
	registry  *Registry
	engine    DecisionEngine
	executor  *Executor
	formatter *Formatter
	selector  *Selector
	analyzer  *Analyzer
	routing   Routing
	observer  func(entity.OrchestratorState)

	mu       sync.Mutex
	state    atomic.Int32
	connLost atomic.Bool
}

func NewOrchestrator(registry *Registry, engine DecisionEngine, executor *Executor, formatter *Formatter, routing Routing, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		registry:  registry,
		engine:    engine,
		executor:  executor,
		formatter: formatter,
		routing:   routing,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) State() entity.OrchestratorState {
	return entity.OrchestratorState(o.state.Load())
}

// ConnectionLost reports whether a call failed because the tool transport
// went away. The session should be torn down once this is set.
func (o *Orchestrator) ConnectionLost() bool {
	return o.connLost.Load()
}

// Process turns a free-text request into reply text. It never panics and
// never returns an error; every failure is explained in the reply.
func (o *Orchestrator) Process(ctx context.Context, query string) (reply string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.transition(entity.StateIdle)
	defer o.recoverTurn(&reply)

	catalog := o.registry.Describe()
	if strings.TrimSpace(query) == "" || containsAny(query, o.routing.MetaKeywords) {
		return CapabilityListing(catalog)
	}

	o.transition(entity.StateAwaitingDecision)
	decision := o.engine.Decide(ctx, query, catalog)
	if !decision.IsDispatch() {
		logger.Debug("[Orchestrator] no tool applies: %s", decision.Reasoning)
		return GeneralHelp(catalog)
	}

	o.transition(entity.StateExecuting)
	logger.Info("[Orchestrator] dispatching %s (%s)", decision.ToolName, decision.Reasoning)
	env := o.execute(ctx, decision.Request())

	if o.wantsDisambiguation(query, env) {
		o.transition(entity.StateDisambiguating)
		return o.disambiguate(ctx, query, env)
	}

	o.transition(entity.StateFormatting)
	return o.formatter.Format(env)
}

// Invoke runs an explicit tool call, skipping the decision step.
func (o *Orchestrator) Invoke(ctx context.Context, req *entity.ToolCallRequest) (reply string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.transition(entity.StateIdle)
	defer o.recoverTurn(&reply)

	o.transition(entity.StateExecuting)
	env := o.execute(ctx, req)
	o.transition(entity.StateFormatting)
	return o.formatter.Format(env)
}

func (o *Orchestrator) execute(ctx context.Context, req *entity.ToolCallRequest) *entity.ToolResultEnvelope {
	env := o.executor.Execute(ctx, req)
	if env.ConnectionLost {
		o.connLost.Store(true)
	}
	return env
}

func (o *Orchestrator) wantsDisambiguation(query string, env *entity.ToolResultEnvelope) bool {
	return o.selector != nil &&
		env.OK &&
		o.formatter.CategoryOf(env.ToolName) == CategoryList &&
		containsAny(query, o.routing.DisambiguationKeywords)
}

// disambiguate picks one document from a listing and reads it. Any failure
// falls back to showing the listing.
func (o *Orchestrator) disambiguate(ctx context.Context, query string, listing *entity.ToolResultEnvelope) string {
	candidates := decodeListing(listing.Payload)
	if !candidates.Parsed() {
		return o.candidatesFallback(listing, candidates.Err)
	}
	if len(candidates.Value) == 0 {
		o.transition(entity.StateFormatting)
		return o.formatter.Format(listing)
	}

	sel, err := o.selector.Select(ctx, query, candidates.Value)
	if err != nil {
		return o.candidatesFallback(listing, err)
	}

	reader := ReaderFor(sel.Filename, o.routing.TextReader, o.routing.PDFReader)
	logger.Info("[Orchestrator] selected %s, reading with %s", sel.Filename, reader)
	content := o.execute(ctx, &entity.ToolCallRequest{
		ToolName:  reader,
		Arguments: map[string]any{"filename": sel.Filename},
	})
	if !content.OK {
		return o.candidatesFallback(listing, fmt.Errorf("%s: %s", sel.Filename, content.Error))
	}

	o.transition(entity.StateFormatting)
	if o.analyzer != nil {
		analysis, err := o.analyzer.Analyze(ctx, query, sel.Filename, content.PayloadText())
		if err == nil {
			return fmt.Sprintf("**Analysis of %s** (selected because: %s)\n\n%s", sel.Filename, sel.Reasoning, analysis)
		}
		logger.Warn("[Orchestrator] analysis of %s failed, showing content: %v", sel.Filename, err)
	}

	header := "Selected " + sel.Filename
	if sel.Reasoning != "" {
		header += " (" + sel.Reasoning + ")"
	}
	return header + "\n\n" + o.formatter.Format(content)
}

func (o *Orchestrator) candidatesFallback(listing *entity.ToolResultEnvelope, reason error) string {
	logger.Warn("[Orchestrator] disambiguation failed: %v", reason)
	o.transition(entity.StateFormatting)
	return fmt.Sprintf("Could not pick a document for this request (%v). Candidates:\n\n%s",
		reason, o.formatter.Format(listing))
}

func (o *Orchestrator) recoverTurn(reply *string) {
	if r := recover(); r != nil {
		logger.Error("[Orchestrator] turn aborted in state %s: %v", o.State(), r)
		*reply = fmt.Sprintf("Sorry, something went wrong while handling your request: %v", r)
	}
}

func (o *Orchestrator) transition(to entity.OrchestratorState) {
	o.state.Store(int32(to))
	if o.observer != nil {
		o.observer(to)
	}
}
