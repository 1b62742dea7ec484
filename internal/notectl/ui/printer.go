package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mitchellh/go-wordwrap"
	"github.com/muesli/termenv"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
)

// Printer renders answers and status lines. Colors and markdown styling are
// only used when out is a terminal.
type Printer struct {
	out      io.Writer
	width    int
	tty      bool
	renderer *lipgloss.Renderer

	ok, info, warn, fail *color.Color
}

func NewPrinter(out io.Writer) *Printer {
	p := &Printer{
		out:      out,
		width:    Width(out),
		tty:      IsTerminal(out),
		renderer: lipgloss.NewRenderer(out),
		ok:       color.New(color.FgGreen, color.Bold),
		info:     color.New(color.FgCyan),
		warn:     color.New(color.FgYellow),
		fail:     color.New(color.FgRed, color.Bold),
	}
	if !p.tty {
		p.renderer.SetColorProfile(termenv.Ascii)
		for _, c := range []*color.Color{p.ok, p.info, p.warn, p.fail} {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) Width() int {
	return p.width
}

// Answer prints body in a bordered panel under title.
func (p *Printer) Answer(title, body string) {
	inner := p.width - 4
	if inner < 20 {
		inner = 20
	}
	content := body
	if p.tty {
		content = RenderMarkdown(body, inner-2)
	}

	titleStyle := p.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	panel := p.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1).
		Width(inner)

	fmt.Fprintln(p.out, titleStyle.Render(title))
	fmt.Fprintln(p.out, panel.Render(content))
}

// Plain prints text unchanged, for piping.
func (p *Printer) Plain(text string) {
	fmt.Fprintln(p.out, text)
}

func (p *Printer) Success(format string, args ...any) { p.status(p.ok, "✓", format, args...) }
func (p *Printer) Info(format string, args ...any)    { p.status(p.info, "•", format, args...) }
func (p *Printer) Warn(format string, args ...any)    { p.status(p.warn, "!", format, args...) }
func (p *Printer) Error(format string, args ...any)   { p.status(p.fail, "✗", format, args...) }

func (p *Printer) status(c *color.Color, mark, format string, args ...any) {
	msg := wordwrap.WrapString(fmt.Sprintf(format, args...), uint(p.width-2))
	msg = strings.ReplaceAll(msg, "\n", "\n  ")
	c.Fprintf(p.out, "%s %s\n", mark, msg)
}

// Tools prints one row per tool: name, parameters (required ones marked
// with *) and description.
func (p *Printer) Tools(tools []*entity.ToolDescriptor) {
	if len(tools) == 0 {
		p.Warn("No tools available.")
		return
	}
	sorted := make([]*entity.ToolDescriptor, len(tools))
	copy(sorted, tools)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	table := uitable.New()
	table.MaxColWidth = uint(max(p.width/2, 30))
	table.Wrap = true
	table.AddRow("TOOL", "PARAMETERS", "DESCRIPTION")
	for _, t := range sorted {
		params := make([]string, 0, len(t.Parameters))
		for _, param := range t.Parameters {
			name := param.Name
			if param.Required {
				name += "*"
			}
			params = append(params, name)
		}
		table.AddRow(t.Name, strings.Join(params, ", "), t.Description)
	}
	fmt.Fprintln(p.out, table)
}

// RenderMarkdown renders content for a 256-color terminal, falling back to
// the raw text when rendering fails.
func RenderMarkdown(content string, width int) string {
	if width <= 0 {
		width = defaultWidth - 4
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithColorProfile(termenv.ANSI256),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
