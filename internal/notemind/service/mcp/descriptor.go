package mcp

import (
	"sort"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/mark3labs/mcp-go/mcp"
)

// toDescriptor maps an MCP tool onto the assistant's descriptor. JSON
// Schema objects carry no property order, so required parameters come
// first in their declared order and the optional ones follow by name.
func toDescriptor(t mcp.Tool) *entity.ToolDescriptor {
	props := t.InputSchema.Properties
	required := make(map[string]bool, len(t.InputSchema.Required))

	params := make([]entity.ToolParameter, 0, len(props))
	for _, name := range t.InputSchema.Required {
		if required[name] {
			continue
		}
		required[name] = true
		params = append(params, toParameter(name, props[name], true))
	}

	optional := make([]string, 0, len(props))
	for name := range props {
		if !required[name] {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)
	for _, name := range optional {
		params = append(params, toParameter(name, props[name], false))
	}

	return &entity.ToolDescriptor{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  params,
	}
}

func toParameter(name string, schema any, required bool) entity.ToolParameter {
	p := entity.ToolParameter{Name: name, Type: "any", Required: required}
	if m, ok := schema.(map[string]any); ok {
		if typ, ok := m["type"].(string); ok && typ != "" {
			p.Type = typ
		}
		if desc, ok := m["description"].(string); ok {
			p.Description = desc
		}
	}
	return p
}

// toOutput collects the text items of a call result. Non-text content is
// noted by its type so the caller still sees that something came back.
func toOutput(res *mcp.CallToolResult) *entity.ToolOutput {
	if res == nil {
		return nil
	}
	out := &entity.ToolOutput{IsError: res.IsError}
	for _, c := range res.Content {
		switch v := c.(type) {
		case mcp.TextContent:
			out.Contents = append(out.Contents, v.Text)
		case *mcp.TextContent:
			out.Contents = append(out.Contents, v.Text)
		case mcp.ImageContent:
			out.Contents = append(out.Contents, "[image: "+v.MIMEType+"]")
		case *mcp.ImageContent:
			out.Contents = append(out.Contents, "[image: "+v.MIMEType+"]")
		}
	}
	return out
}
