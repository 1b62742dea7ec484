package entity

// DecisionKind tags the Decision variant.
type DecisionKind int

const (
	DecisionAnswer DecisionKind = iota
	DecisionDispatch
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionDispatch:
		return "Dispatch"
	case DecisionAnswer:
		return "Answer"
	default:
		return "Unknown"
	}
}

// Decision is the normalized outcome of consulting the model for one
// utterance: either call a tool (Dispatch) or answer directly (Answer).
// ToolName and Arguments are only meaningful for Dispatch.
type Decision struct {
	Kind      DecisionKind
	ToolName  string
	Arguments map[string]any
	Reasoning string
}

func NewDispatch(toolName string, arguments map[string]any, reasoning string) *Decision {
	if arguments == nil {
		arguments = map[string]any{}
	}
	return &Decision{
		Kind:      DecisionDispatch,
		ToolName:  toolName,
		Arguments: arguments,
		Reasoning: reasoning,
	}
}

func NewAnswer(reasoning string) *Decision {
	return &Decision{Kind: DecisionAnswer, Reasoning: reasoning}
}

func (d *Decision) IsDispatch() bool {
	return d != nil && d.Kind == DecisionDispatch
}

// Request converts a Dispatch into the call handed to the executor.
func (d *Decision) Request() *ToolCallRequest {
	return &ToolCallRequest{ToolName: d.ToolName, Arguments: d.Arguments}
}
