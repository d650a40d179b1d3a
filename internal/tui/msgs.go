package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/yogapath/internal/route"
	"github.com/naveenspark/yogapath/internal/session"
)

// navigateMsg asks the App to move to another screen.
type navigateMsg struct {
	to route.Route
}

func navigate(to route.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// sessionReadyMsg carries the session state once the stored token has been
// checked.
type sessionReadyMsg struct {
	state session.State
}

// viewMsg tags a view's result with the mount it was issued from. Results
// for a screen that has since been replaced are dropped.
type viewMsg struct {
	seq int
	msg tea.Msg
}

// tagCmd wraps the result of cmd, and of any batch it returns, in a viewMsg.
// Views must not return tea.Sequence; its message is not unwrapped.
func tagCmd(seq int, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			out := make(tea.BatchMsg, 0, len(msg))
			for _, c := range msg {
				if c != nil {
					out = append(out, tagCmd(seq, c))
				}
			}
			return out
		default:
			return viewMsg{seq: seq, msg: msg}
		}
	}
}

// apiFailure is implemented by results of authenticated API calls so the
// App can end the session when the backend rejects the token.
type apiFailure interface {
	failure() error
}

// apiResult is embedded in data-load messages.
type apiResult struct {
	err error
}

func (r apiResult) failure() error { return r.err }

// statusMsg sets a transient status line inside a view.
type statusMsg struct {
	text string
	err  error
}
