package ui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

// StateFeed forwards orchestrator state changes to the spinner currently
// on screen, if any. Its Observe method is handed to the session.
type StateFeed struct {
	mu   sync.Mutex
	sink func(entity.OrchestratorState)
}

func (f *StateFeed) Observe(s entity.OrchestratorState) {
	f.mu.Lock()
	sink := f.sink
	f.mu.Unlock()
	if sink != nil {
		sink(s)
	}
}

func (f *StateFeed) attach(sink func(entity.OrchestratorState)) {
	f.mu.Lock()
	f.sink = sink
	f.mu.Unlock()
}

// StateLabel is the spinner text for a state. Idle has none.
func StateLabel(s entity.OrchestratorState) string {
	switch s {
	case entity.StateAwaitingDecision:
		return "Choosing a tool..."
	case entity.StateExecuting:
		return "Running the tool..."
	case entity.StateDisambiguating:
		return "Picking a document..."
	case entity.StateFormatting:
		return "Preparing the answer..."
	default:
		return ""
	}
}

type stateMsg entity.OrchestratorState

type doneMsg struct{ reply string }

type spinnerModel struct {
	spinner     spinner.Model
	label       string
	reply       string
	done        bool
	interrupted bool
	cancel      context.CancelFunc
}

func newSpinnerModel(label string, cancel context.CancelFunc) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205"))),
		),
		label:  label,
		cancel: cancel,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.interrupted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case stateMsg:
		if label := StateLabel(entity.OrchestratorState(msg)); label != "" {
			m.label = label
		}
	case doneMsg:
		m.reply = msg.reply
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done || m.interrupted {
		return ""
	}
	return m.spinner.View() + " " + m.label + "\n"
}

// RunWithSpinner runs work while a spinner on ErrOut follows the states
// published on feed. Without a terminal work just runs. Ctrl+C cancels the
// context handed to work and returns context.Canceled.
func RunWithSpinner(ctx context.Context, streams genericclioptions.IOStreams, feed *StateFeed, label string, work func(context.Context) string) (string, error) {
	if !IsTerminal(streams.ErrOut) || !IsTerminal(streams.In) {
		return work(ctx), nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(label, cancel),
		tea.WithInput(streams.In),
		tea.WithOutput(streams.ErrOut),
	)
	if feed != nil {
		feed.attach(func(s entity.OrchestratorState) { p.Send(stateMsg(s)) })
		defer feed.attach(nil)
	}
	go func() {
		p.Send(doneMsg{reply: work(ctx)})
	}()

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m := final.(spinnerModel)
	if m.interrupted {
		return "", context.Canceled
	}
	return m.reply, nil
}
