package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// AssistantOptions tunes the request routing of the assistant.
type AssistantOptions struct {
	// MetaKeywords short-circuit to the tool listing.
	MetaKeywords []string `json:"meta-keywords" mapstructure:"meta-keywords"`
	// DisambiguationKeywords mark requests about a document whose exact
	// name the user did not give.
	DisambiguationKeywords []string `json:"disambiguation-keywords" mapstructure:"disambiguation-keywords"`
	AnalyzeSelection       bool     `json:"analyze-selection"       mapstructure:"analyze-selection"`
	InstructionsDir        string   `json:"instructions-dir"        mapstructure:"instructions-dir"`

	// ToolCategories maps tool names to list, content, calendar-list,
	// calendar-create or generic. Entries extend the built-in table.
	ToolCategories map[string]string `json:"tool-categories" mapstructure:"tool-categories"`

	ListTool           string `json:"list-tool"            mapstructure:"list-tool"`
	TextReader         string `json:"text-reader"          mapstructure:"text-reader"`
	PDFReader          string `json:"pdf-reader"           mapstructure:"pdf-reader"`
	CalendarListTool   string `json:"calendar-list-tool"   mapstructure:"calendar-list-tool"`
	CalendarCreateTool string `json:"calendar-create-tool" mapstructure:"calendar-create-tool"`
}

func NewAssistantOptions() *AssistantOptions {
	return &AssistantOptions{
		MetaKeywords: []string{
			"what tools", "available tools", "list tools", "what can you do",
			"your capabilities", "show tools", "tool list",
		},
		DisambiguationKeywords: []string{"cv", "resume", "curriculum vitae", "skills", "experience"},
		AnalyzeSelection:       true,
		InstructionsDir:        "",
		ToolCategories:         map[string]string{},
		ListTool:               "list_items",
		TextReader:             "read_text",
		PDFReader:              "read_pdf",
		CalendarListTool:       "list_events",
		CalendarCreateTool:     "create_event",
	}
}

func (o *AssistantOptions) Validate() []error {
	var errs []error
	if o.TextReader == "" || o.PDFReader == "" {
		errs = append(errs, fmt.Errorf("assistant.text-reader and assistant.pdf-reader are required"))
	}
	for tool, category := range o.ToolCategories {
		switch category {
		case "list", "content", "calendar-list", "calendar-create", "generic":
		default:
			errs = append(errs, fmt.Errorf("assistant.tool-categories.%s: unknown category %q", tool, category))
		}
	}
	return errs
}

func (o *AssistantOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.MetaKeywords, "assistant.meta-keywords", o.MetaKeywords, "Phrases that make the assistant list its tools instead of asking the model.")
	fs.StringSliceVar(&o.DisambiguationKeywords, "assistant.disambiguation-keywords", o.DisambiguationKeywords, "Words that make a file listing go through document selection.")
	fs.BoolVar(&o.AnalyzeSelection, "assistant.analyze-selection", o.AnalyzeSelection, "Answer the request from a selected document instead of printing it.")
	fs.StringVar(&o.InstructionsDir, "assistant.instructions-dir", o.InstructionsDir, "Directory with INSTRUCTIONS.md and prompts/*.md added to the decision prompt.")
	fs.StringToStringVar(&o.ToolCategories, "assistant.tool-categories", o.ToolCategories, "Extra tool=category formatting rules.")
	fs.StringVar(&o.ListTool, "assistant.list-tool", o.ListTool, "Tool that lists documents.")
	fs.StringVar(&o.TextReader, "assistant.text-reader", o.TextReader, "Tool that reads text documents.")
	fs.StringVar(&o.PDFReader, "assistant.pdf-reader", o.PDFReader, "Tool that reads PDF documents.")
	fs.StringVar(&o.CalendarListTool, "assistant.calendar-list-tool", o.CalendarListTool, "Tool that lists calendar events.")
	fs.StringVar(&o.CalendarCreateTool, "assistant.calendar-create-tool", o.CalendarCreateTool, "Tool that creates calendar events.")
}
