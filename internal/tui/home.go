package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/yogapath/internal/route"
	"github.com/naveenspark/yogapath/internal/session"
)

// homeModel is the landing screen.
type homeModel struct {
	store  *session.Store
	width  int
	height int
}

func newHomeModel(s *session.Store) homeModel {
	return homeModel{store: s}
}

func (m homeModel) signedIn() bool {
	return m.store != nil && m.store.State().IsAuthenticated()
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if m.signedIn() {
			if msg.String() == "enter" || msg.String() == "d" {
				return m, navigate(route.Dashboard)
			}
			return m, nil
		}
		switch msg.String() {
		case "l", "enter":
			return m, navigate(route.Login)
		case "r":
			return m, navigate(route.Register)
		}
	}
	return m, nil
}

func (m homeModel) helpKeys() string {
	if m.signedIn() {
		return helpEntry("enter", "dashboard")
	}
	return helpEntry("l", "sign in") + "  " + helpEntry("r", "create account")
}

func (m homeModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(center(titleStyle.Render("Your personal yoga practice planner"), m.width) + "\n\n")

	lines := []string{
		"Tell us how much time you have and what you want from your practice.",
		"Get a session plan balanced across asana, pranayama and meditation.",
		"Log every session and watch the minutes add up.",
	}
	for _, l := range lines {
		sb.WriteString("   " + accentStyle.Render("·") + " " + normalStyle.Render(l) + "\n")
	}
	sb.WriteString("\n")

	if m.signedIn() {
		name := m.store.State().User.Name
		sb.WriteString("   " + normalStyle.Render("Welcome back, ") + selectedStyle.Render(name) + normalStyle.Render(".") + "\n")
		sb.WriteString("   " + dimStyle.Render("Press enter to open your dashboard.") + "\n")
		return sb.String()
	}
	sb.WriteString("   " + helpEntry("l", "Sign in") + "    " + helpEntry("r", "Get started") + "\n")
	return sb.String()
}
