package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user interrupts a spinner.
var ErrCanceled = errors.New("operation canceled")

// RunSpinner runs a Bubble Tea spinner while executing the given action.
// The UI exits when the action completes and returns the action's error.
// When the user interrupts, the action's context is canceled and RunSpinner
// waits for the action to return before reporting ErrCanceled.
func RunSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	task := startTask(ctx, action)
	defer task.cancel()

	m := newSpinnerModel(title, task)
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err == nil && !m.interrupted {
		return task.err
	}
	return task.stop(err)
}

// task runs an action in the background with a cancelable context.
type task struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func startTask(ctx context.Context, action func(ctx context.Context) error) *task {
	actionCtx, cancel := context.WithCancel(ctx)
	t := &task{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.err = action(actionCtx)
	}()
	return t
}

// stop cancels the action and waits for it to return. It reports cause, or
// ErrCanceled when cause is nil.
func (t *task) stop(cause error) error {
	t.cancel()
	<-t.done
	if cause != nil {
		return cause
	}
	return ErrCanceled
}

type actionDoneMsg struct{}

type spinnerModel struct {
	title string
	spin  spinner.Model
	task  *task
	over  bool
	err   error
	// interrupted is set when the user quit before the action finished.
	interrupted bool
	style       lipgloss.Style
}

func newSpinnerModel(title string, t *task) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &spinnerModel{
		title: title,
		spin:  s,
		task:  t,
		style: lipgloss.NewStyle().Padding(0, 1),
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForCompletion)
}

func (m *spinnerModel) waitForCompletion() tea.Msg {
	<-m.task.done
	return actionDoneMsg{}
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.over = true
			m.interrupted = true
			m.err = ErrCanceled
			return m, tea.Quit
		}
	case actionDoneMsg:
		m.over = true
		m.err = m.task.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.over {
		if m.err != nil {
			return m.style.Render(FailureStyle.Render("✗") + " " + m.title + " (" + m.err.Error() + ")\n")
		}
		return m.style.Render(SuccessStyle.Render("✓") + " " + m.title + "\n")
	}
	return m.style.Render(m.spin.View() + " " + m.title)
}
