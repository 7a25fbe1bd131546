// Package searchbar is the query input with its history panel.
//
// The bar is controlled: the caller passes the query text, history and panel
// visibility in State on every call, and applies the Result it gets back.
package searchbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// Placeholder is shown in an empty input.
	Placeholder = "Recommend me an action movie..."
	// EmptyHistory is the panel text when there is no history.
	EmptyHistory = "No search history"

	historyRows = 6

	clockLabel = "◷ ^R"
	clockGap   = "  "
)

// Intent is what the caller should do after a key press.
type Intent int

const (
	IntentNone          Intent = iota // only the query text may have changed
	IntentSearch                      // search for Result.Query
	IntentToggleHistory               // flip history visibility
	IntentSelectHistory               // set the query to Result.Query, search it, hide history
	IntentFocus                       // input focused again: hide history
)

func (i Intent) String() string {
	switch i {
	case IntentSearch:
		return "search"
	case IntentToggleHistory:
		return "toggle-history"
	case IntentSelectHistory:
		return "select-history"
	case IntentFocus:
		return "focus"
	default:
		return "none"
	}
}

// State is the caller-owned data the bar reads.
type State struct {
	Query       string
	History     []string
	ShowHistory bool
	Loading     bool
}

// Result is the bar's answer to one message.
type Result struct {
	Intent Intent
	Query  string
	Cmd    tea.Cmd
}

// KeyMap holds the bar's bindings.
type KeyMap struct {
	Search        key.Binding
	Button        key.Binding
	ToggleHistory key.Binding
	Up            key.Binding
	Down          key.Binding
	Focus         key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Button:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "get recommendations")),
		ToggleHistory: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "history")),
		Up:            key.NewBinding(key.WithKeys("up")),
		Down:          key.NewBinding(key.WithKeys("down")),
		Focus:         key.NewBinding(key.WithKeys("esc")),
	}
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 1)
	focusedBoxStyle = boxStyle.BorderForeground(lipgloss.Color("#3b82f6"))
	clockStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#374151"))
	entryStyle    = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = entryStyle.Background(lipgloss.Color("#374151")).Foreground(lipgloss.Color("#ffffff"))
	emptyStyle    = entryStyle.Foreground(lipgloss.Color("#6b7280")).Italic(true)
)

// Model is the search bar. It keeps only presentation state: the text input
// widget, the history cursor and the width.
type Model struct {
	input  textinput.Model
	keys   KeyMap
	cursor int // highlighted history entry, -1 for none
	width  int
}

// New creates a focused search bar.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	ti.Focus()
	return Model{input: ti, keys: DefaultKeyMap(), cursor: -1}
}

// SetWidth sets the outer width of the bar.
func (m *Model) SetWidth(w int) {
	m.width = w
	// frame and padding, prompt, cursor cell, then separator and clock
	m.input.Width = max(w-4-lipgloss.Width(m.input.Prompt)-1-len(clockGap)-lipgloss.Width(clockLabel), 10)
}

// KeyMap returns the bar's bindings so callers can honour the button
// outside the input.
func (m Model) KeyMap() KeyMap { return m.keys }

// Focus gives the text input the cursor.
func (m *Model) Focus() tea.Cmd {
	m.input.Focus()
	return textinput.Blink
}

// Blur takes the cursor away from the text input.
func (m *Model) Blur() {
	m.input.Blur()
}

// Focused reports whether the text input has the cursor.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Cursor returns the highlighted history entry, -1 for none.
func (m Model) Cursor() int {
	return m.cursor
}

// sync loads the caller's query into the widget. Unchanged text keeps the
// cursor where it is.
func (m *Model) sync(query string) {
	if m.input.Value() != query {
		m.input.SetValue(query)
	}
}

// Update handles one message against st.
func (m Model) Update(msg tea.Msg, st State) (Model, Result) {
	m.sync(st.Query)
	res := Result{Query: st.Query}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.ToggleHistory):
			m.cursor = -1
			res.Intent = IntentToggleHistory
			return m, res

		case key.Matches(k, m.keys.Focus):
			m.cursor = -1
			res.Intent = IntentFocus
			return m, res

		case key.Matches(k, m.keys.Button):
			// The button is disabled while a search is running.
			if !st.Loading {
				res.Intent = IntentSearch
			}
			return m, res

		case st.ShowHistory && key.Matches(k, m.keys.Down):
			if m.cursor < len(st.History)-1 {
				m.cursor++
			}
			return m, res

		case st.ShowHistory && key.Matches(k, m.keys.Up):
			if m.cursor >= 0 {
				m.cursor--
			}
			return m, res

		case key.Matches(k, m.keys.Search):
			if st.ShowHistory && m.cursor >= 0 && m.cursor < len(st.History) {
				res.Intent = IntentSelectHistory
				res.Query = st.History[m.cursor]
				m.cursor = -1
				return m, res
			}
			res.Intent = IntentSearch
			return m, res
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	res.Query = m.input.Value()
	res.Cmd = cmd
	return m, res
}

// View renders the input box and, when st.ShowHistory is set, the history
// panel under it.
func (m Model) View(st State) string {
	m.sync(st.Query)

	box := boxStyle
	if m.input.Focused() {
		box = focusedBoxStyle
	}
	line := m.input.View() + clockGap + clockStyle.Render(clockLabel)
	if m.width > 0 {
		box = box.Width(m.width - 2)
	}
	out := box.Render(line)

	if st.ShowHistory {
		out += "\n" + m.historyView(st.History)
	}
	return out
}

// historyView lists the entries in insertion order, scrolled so the cursor
// stays visible.
func (m Model) historyView(history []string) string {
	panel := panelStyle
	if m.width > 0 {
		panel = panel.Width(m.width - 2)
	}
	if len(history) == 0 {
		return panel.Render(emptyStyle.Render(EmptyHistory))
	}

	start := 0
	if m.cursor >= historyRows {
		start = m.cursor - historyRows + 1
	}
	end := min(start+historyRows, len(history))

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		style := entryStyle
		if i == m.cursor {
			style = selectedStyle
		}
		rows = append(rows, style.Render(history[i]))
	}
	if end < len(history) {
		rows = append(rows, emptyStyle.Render("…"))
	}
	return panel.Render(strings.Join(rows, "\n"))
}
