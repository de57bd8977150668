package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Confirmer answers yes/no gates during a run. Interactive runs prompt the
// user; non-interactive runs fall back to the per-gate default so batch and
// CI invocations never block.
type Confirmer interface {
	Confirm(message string, defaultAnswer bool) bool
}

// FixedConfirmer always answers with the gate's default.
type FixedConfirmer struct{}

func (FixedConfirmer) Confirm(_ string, defaultAnswer bool) bool {
	return defaultAnswer
}

// InteractiveConfirmer runs the terminal confirm component.
type InteractiveConfirmer struct{}

func (InteractiveConfirmer) Confirm(message string, defaultAnswer bool) bool {
	model := NewConfirm(message, defaultAnswer)
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		return defaultAnswer
	}

	confirm, ok := final.(ConfirmModel)
	if !ok {
		return defaultAnswer
	}
	return confirm.IsConfirmed()
}

// NewConfirmer selects the interactive implementation when stdin is attached
// to a terminal, the fixed-default one otherwise.
func NewConfirmer() Confirmer {
	if IsTerminal() {
		return InteractiveConfirmer{}
	}
	return FixedConfirmer{}
}

// IsTerminal reports whether stdin is a character device.
func IsTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// ConfirmModel is a simple yes/no confirmation component
type ConfirmModel struct {
	message   string
	cursor    int
	confirmed bool
	done      bool
}

// NewConfirm creates a new confirmation component with the cursor on the
// default answer
func NewConfirm(message string, defaultAnswer bool) ConfirmModel {
	cursor := 1
	if defaultAnswer {
		cursor = 0
	}
	return ConfirmModel{
		message: message,
		cursor:  cursor,
	}
}

// Init initializes the component
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.cursor = 0
		case "right", "l":
			m.cursor = 1
		case "enter", " ":
			m.confirmed = m.cursor == 0
			m.done = true
			return m, tea.Quit
		case "y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the component
func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}

	yes := "Yes"
	no := "No"

	if m.cursor == 0 {
		yes = SelectedStyle.Render("> " + yes)
	} else {
		yes = "  " + yes
	}

	if m.cursor == 1 {
		no = SelectedStyle.Render("> " + no)
	} else {
		no = "  " + no
	}

	return fmt.Sprintf("%s\n\n%s  %s\n\n%s",
		m.message,
		yes, no,
		HelpStyle.Render("←→ navigate • enter confirm • y/n quick select"))
}

// IsConfirmed returns whether the user confirmed
func (m ConfirmModel) IsConfirmed() bool {
	return m.confirmed
}

// IsDone returns whether the user finished
func (m ConfirmModel) IsDone() bool {
	return m.done
}
