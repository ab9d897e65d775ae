package scoring

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"arete/internal/score"
)

// SaveFunc persists the scores collected so far. It is called after
// every accepted rating so an interrupted session loses nothing.
type SaveFunc func(score.File) error

// Model drives the scoring session with Bubble Tea.
type Model struct {
	state   State
	input   textinput.Model
	save    SaveFunc
	saveErr error
	noColor bool
}

// Options configures the scoring UI model.
type Options struct {
	NoColor bool
}

// NewModel constructs a scoring model over a session state.
func NewModel(state State, save SaveFunc, opts Options) Model {
	input := textinput.New()
	input.Placeholder = "3,2,4,3,3"
	input.CharLimit = 32
	input.Focus()
	return Model{
		state:   state,
		input:   input,
		save:    save,
		noColor: opts.NoColor,
	}
}

// State returns the session state, for inspection after the program exits.
func (m Model) State() State {
	return m.state
}

// SaveErr reports the last persistence failure, if any.
func (m Model) SaveErr() error {
	return m.saveErr
}

// Init focuses the input field.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input for the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.state = Submit(m.state, m.input.Value())
		if m.state.ErrLine == "" {
			m.input.SetValue("")
			if m.save != nil {
				if err := m.save(m.state.Scores); err != nil {
					m.saveErr = err
					return m, tea.Quit
				}
			}
		}
		if m.state.Done {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyCtrlS:
		m.state = Skip(m.state)
		m.input.SetValue("")
		if m.state.Done {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the current item and the input prompt.
func (m Model) View() string {
	return renderSession(m.state, m.input.View(), m.noColor)
}
