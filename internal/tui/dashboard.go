package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/yogapath/internal/route"
	"github.com/naveenspark/yogapath/internal/session"
	"github.com/naveenspark/yogapath/pkg/client"
	"github.com/naveenspark/yogapath/pkg/domain"
)

// weekLoadedMsg carries the last seven days of practice for the summary.
type weekLoadedMsg struct {
	apiResult
	logs []domain.PracticeLog
}

type dashboardModel struct {
	client  *client.Client
	store   *session.Store
	week    []domain.PracticeLog
	loading bool
	err     string
	now     func() time.Time
	width   int
	height  int
}

func newDashboardModel(c *client.Client, s *session.Store) dashboardModel {
	return dashboardModel{client: c, store: s, loading: true, now: time.Now}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadWeek()
}

func (m dashboardModel) loadWeek() tea.Cmd {
	c := m.client
	userID := currentUserID(m.store)
	end := domain.NewDate(m.now())
	start := domain.NewDate(end.AddDate(0, 0, -6))
	return func() tea.Msg {
		logs, err := c.ListPracticeLogsInRange(context.Background(), userID, start, end)
		return weekLoadedMsg{apiResult: apiResult{err: err}, logs: logs}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case weekLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "Failed to load this week's practice"
			return m, nil
		}
		m.err = ""
		m.week = msg.logs
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadWeek()
		case "p":
			return m, navigate(route.Profile)
		case "g":
			return m, navigate(route.Recommendations)
		case "a":
			return m, navigate(route.PracticeLog)
		}
	}
	return m, nil
}

func (m dashboardModel) helpKeys() string {
	return helpEntry("p", "profile") + "  " + helpEntry("g", "plan") + "  " + helpEntry("a", "log practice") + "  " + helpEntry("r", "refresh")
}

func (m dashboardModel) View() string {
	var sb strings.Builder
	st := session.State{}
	if m.store != nil {
		st = m.store.State()
	}
	if st.User == nil {
		return "\n " + dimStyle.Render("not signed in")
	}
	u := st.User

	sb.WriteString("\n " + titleStyle.Render(fmt.Sprintf("Welcome, %s!", u.Name)) + "\n\n")
	sb.WriteString(" " + sectionHeaderStyle.Render("ACCOUNT") + "\n")
	sb.WriteString("   " + metaStyle.Render("email   ") + normalStyle.Render(u.Email) + "\n")
	if !u.CreatedAt.IsZero() {
		sb.WriteString("   " + metaStyle.Render("member  ") + normalStyle.Render("since "+u.CreatedAt.Format("January 2, 2006")) + "\n")
	}
	if exp, ok := m.store.ExpiresAt(); ok {
		left := exp.Sub(m.now())
		line := "expires " + exp.Local().Format("Jan 2 15:04")
		if left > 0 {
			line += fmt.Sprintf(" (in %s)", left.Round(time.Minute))
		}
		sb.WriteString("   " + metaStyle.Render("session ") + dimStyle.Render(line) + "\n")
	}

	sb.WriteString("\n " + sectionHeaderStyle.Render("THIS WEEK") + "\n")
	switch {
	case m.loading && len(m.week) == 0:
		sb.WriteString("   " + dimStyle.Render("loading...") + "\n")
	case m.err != "":
		sb.WriteString("   " + errorStyle.Render(m.err) + "\n")
	case len(m.week) == 0:
		sb.WriteString("   " + dimStyle.Render("No practice logged in the last 7 days.") + "\n")
	default:
		sb.WriteString(fmt.Sprintf("   %s %s\n",
			accentStyle.Render(formatMinutes(domain.TotalMinutes(m.week))),
			dimStyle.Render(fmt.Sprintf("across %d sessions", len(m.week)))))
	}

	sb.WriteString("\n " + sectionHeaderStyle.Render("NEXT STEPS") + "\n")
	sb.WriteString("   " + helpEntry("p", "Set your preferences and goals") + "\n")
	sb.WriteString("   " + helpEntry("g", "See your recommended practice") + "\n")
	sb.WriteString("   " + helpEntry("a", "Log a practice session") + "\n")
	return sb.String()
}

// currentUserID is the signed-in user's ID, or 0.
func currentUserID(s *session.Store) int64 {
	if s == nil {
		return 0
	}
	if u := s.State().User; u != nil {
		return u.ID
	}
	return 0
}
