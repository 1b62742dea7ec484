package entity

import "strings"

// ToolParameter is one argument accepted by a tool, in declaration order.
type ToolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// ToolDescriptor describes a tool discovered from the transport.
// Descriptors are immutable once the registry is built.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters"`
}

// ParameterNames returns the parameter names in declaration order.
func (d *ToolDescriptor) ParameterNames() []string {
	names := make([]string, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		names = append(names, p.Name)
	}
	return names
}

// ToolCallRequest is a single validated-before-execution tool invocation.
type ToolCallRequest struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
}

// StringArg returns the named argument when it is a string.
func (r *ToolCallRequest) StringArg(name string) string {
	if r == nil || r.Arguments == nil {
		return ""
	}
	s, _ := r.Arguments[name].(string)
	return s
}

// ToolOutput is what the transport returned for one call, before it is
// wrapped into an envelope.
type ToolOutput struct {
	Contents []string
	IsError  bool
}

// Text joins the text content items with newlines.
func (o *ToolOutput) Text() string {
	if o == nil {
		return ""
	}
	return strings.Join(o.Contents, "\n")
}

// ToolResultEnvelope is the uniform success/error wrapper for a tool call.
// On success Payload holds the raw content items; on failure Error is set.
type ToolResultEnvelope struct {
	ToolName  string
	Arguments map[string]any
	OK        bool
	Payload   []string
	Error     string

	// ConnectionLost is set when the transport itself went away during the call.
	ConnectionLost bool
}

// PayloadText joins the payload content items with newlines.
func (e *ToolResultEnvelope) PayloadText() string {
	return strings.Join(e.Payload, "\n")
}

// Arg returns a string argument of the originating request.
func (e *ToolResultEnvelope) Arg(name string) string {
	if e.Arguments == nil {
		return ""
	}
	s, _ := e.Arguments[name].(string)
	return s
}

// ListedItem is one entry of a list-type tool result.
type ListedItem struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}
