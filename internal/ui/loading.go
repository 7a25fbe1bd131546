package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingCaption is shown next to the spinner.
const LoadingCaption = "Fetching recommendations..."

// loadingIndicator wraps the spinner. It only draws while a search runs;
// ticking tracks whether a tick is in flight so restarts never double it.
type loadingIndicator struct {
	spinner spinner.Model
	ticking bool
}

func newLoadingIndicator() loadingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return loadingIndicator{spinner: s}
}

// start returns the first tick unless one is already running.
func (l *loadingIndicator) start() tea.Cmd {
	if l.ticking {
		return nil
	}
	l.ticking = true
	return l.spinner.Tick
}

// update advances the frame while active and lets the tick chain die
// otherwise.
func (l *loadingIndicator) update(msg spinner.TickMsg, active bool) tea.Cmd {
	if !active {
		l.ticking = false
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

func (l loadingIndicator) view(active bool) string {
	if !active {
		return ""
	}
	return l.spinner.View() + " " + LoadingText.Render(LoadingCaption)
}
