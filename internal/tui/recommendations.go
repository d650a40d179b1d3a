package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/yogapath/internal/route"
	"github.com/naveenspark/yogapath/internal/session"
	"github.com/naveenspark/yogapath/pkg/client"
	"github.com/naveenspark/yogapath/pkg/domain"
)

// recProfileMsg is the first load step. Recommendations are fetched only
// once a profile exists.
type recProfileMsg struct {
	apiResult
	profile *domain.Profile
}

type recsLoadedMsg struct {
	apiResult
	latest  *domain.Recommendation
	history []domain.Recommendation
}

type recGeneratedMsg struct {
	apiResult
	rec *domain.Recommendation
}

type clearStatusMsg struct{}

type recommendationsModel struct {
	client     *client.Client
	store      *session.Store
	profile    *domain.Profile
	noProfile  bool
	latest     *domain.Recommendation
	history    []domain.Recommendation
	loading    bool
	generating bool
	err        string
	status     string
	width      int
	height     int
}

func newRecommendationsModel(c *client.Client, s *session.Store) recommendationsModel {
	return recommendationsModel{client: c, store: s, loading: true}
}

func (m recommendationsModel) Init() tea.Cmd {
	c := m.client
	userID := currentUserID(m.store)
	return func() tea.Msg {
		p, err := c.GetProfileByUser(context.Background(), userID)
		return recProfileMsg{apiResult: apiResult{err: err}, profile: p}
	}
}

func (m recommendationsModel) loadRecs(profileID int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()
		latest, err := c.LatestRecommendation(ctx, profileID)
		if err != nil {
			return recsLoadedMsg{apiResult: apiResult{err: err}}
		}
		history, err := c.ListRecommendations(ctx, profileID)
		return recsLoadedMsg{apiResult: apiResult{err: err}, latest: latest, history: history}
	}
}

func (m recommendationsModel) generate() tea.Cmd {
	c := m.client
	profileID := m.profile.ID
	return func() tea.Msg {
		rec, err := c.GenerateRecommendation(context.Background(), profileID)
		return recGeneratedMsg{apiResult: apiResult{err: err}, rec: rec}
	}
}

func (m recommendationsModel) Update(msg tea.Msg) (recommendationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case recProfileMsg:
		if msg.err != nil {
			m.loading = false
			m.err = "Failed to load recommendations"
			return m, nil
		}
		if msg.profile == nil {
			m.loading = false
			m.noProfile = true
			return m, nil
		}
		m.profile = msg.profile
		m.noProfile = false
		return m, m.loadRecs(msg.profile.ID)

	case recsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "Failed to load recommendations"
			return m, nil
		}
		m.err = ""
		m.latest = msg.latest
		m.history = msg.history

	case recGeneratedMsg:
		m.generating = false
		if msg.err != nil || msg.rec == nil {
			m.status = "Failed to generate recommendation"
			return m, nil
		}
		m.latest = msg.rec
		m.history = append([]domain.Recommendation{*msg.rec}, m.history...)
		m.status = "New recommendation generated"

	case statusMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.status = msg.text
		}
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.status = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "p", "enter":
			if m.noProfile {
				return m, navigate(route.Profile)
			}
		case "g":
			if m.profile == nil || m.generating || m.loading {
				return m, nil
			}
			m.generating = true
			m.status = ""
			return m, m.generate()
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.err = ""
			return m, m.Init()
		case "c":
			if m.latest == nil {
				return m, nil
			}
			text := planSummary(m.latest)
			return m, func() tea.Msg {
				err := clipboard.WriteAll(text)
				return statusMsg{text: "copied!", err: err}
			}
		}
	}
	return m, nil
}

// planSummary is the plain-text plan placed on the clipboard.
func planSummary(r *domain.Recommendation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Yoga Path practice plan (%d min per session)\n", r.TotalMinutesPerSession)
	for _, c := range planComponents(r) {
		fmt.Fprintf(&sb, "- %s: %d min\n", c.label, c.minutes)
	}
	if names := r.StyleNames(); len(names) > 0 {
		fmt.Fprintf(&sb, "Styles: %s\n", strings.Join(names, ", "))
	}
	return sb.String()
}

type planComponent struct {
	key     string
	label   string
	minutes int
}

// planComponents lists the non-empty parts of a plan in practice order.
func planComponents(r *domain.Recommendation) []planComponent {
	all := []planComponent{
		{"asana", "Asana (postures)", r.AsanaMinutes},
		{"pranayama", "Pranayama (breath)", r.PranayamaMinutes},
		{"meditation", "Meditation", r.MeditationMinutes},
		{"mantra", "Mantra", r.MantraMinutes},
		{"relaxation", "Relaxation", r.RelaxationMinutes},
	}
	out := all[:0]
	for _, c := range all {
		if c.minutes > 0 {
			out = append(out, c)
		}
	}
	return out
}

func (m recommendationsModel) helpKeys() string {
	if m.noProfile {
		return helpEntry("p", "create profile") + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
	}
	return helpBar("g", "generate", "c", "copy", "r", "refresh", "?", "help", "q", "quit")
}

func (m recommendationsModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n " + titleStyle.Render("Your Practice Recommendations") + "\n")
	if m.status != "" {
		sb.WriteString(" " + accentStyle.Render(m.status) + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(" " + dimStyle.Render("loading recommendations...") + "\n")
		return sb.String()
	case m.err != "":
		sb.WriteString(" " + errorStyle.Render(m.err) + "\n")
		return sb.String()
	case m.noProfile:
		sb.WriteString(" " + normalStyle.Render("Please create your profile first to get personalized recommendations.") + "\n\n")
		sb.WriteString(" " + helpEntry("p", "Go to profile") + "\n")
		return sb.String()
	case m.latest == nil:
		sb.WriteString(" " + dimStyle.Render("No recommendations yet. Press g to generate your first plan.") + "\n")
		return sb.String()
	}

	r := m.latest
	if m.generating {
		sb.WriteString(" " + dimStyle.Render("generating...") + "\n")
	}
	if domain.IsOutdated(m.profile, r) {
		sb.WriteString(" " + warnStyle.Render("! Your profile changed after this plan was generated. Press g for an updated plan.") + "\n")
	}
	if domain.ExceedsSessionBudget(m.profile, r) {
		sb.WriteString(" " + warnStyle.Render(fmt.Sprintf("! This plan runs %d min per session, more than the %d min your schedule allows.",
			r.TotalMinutesPerSession, m.profile.SessionBudget())) + "\n")
	}

	sb.WriteString(" " + sectionHeaderStyle.Render("CURRENT PLAN") + "  " +
		accentStyle.Render(formatMinutes(r.TotalMinutesPerSession)) + dimStyle.Render(" per session") + "\n\n")
	sb.WriteString(" " + m.breakdownBar(r) + "\n\n")
	for _, c := range planComponents(r) {
		sb.WriteString(fmt.Sprintf("   %s %s\n",
			ComponentStyle(c.key).Render(fmt.Sprintf("%-20s", c.label)),
			normalStyle.Render(fmt.Sprintf("%3d min", c.minutes))))
	}

	if len(r.Styles) > 0 {
		sb.WriteString("\n " + sectionHeaderStyle.Render("STYLES") + "\n")
		for _, s := range r.Styles {
			line := "   " + selectedStyle.Render(s.Name)
			if s.Description != "" {
				line += "  " + dimStyle.Render(truncStr(s.Description, 60))
			}
			sb.WriteString(line + "\n")
		}
	}
	if !r.CreatedAt.IsZero() {
		sb.WriteString("\n " + metaStyle.Render("generated "+formatTime(r.CreatedAt.Time)) + "\n")
	}

	var older []domain.Recommendation
	for _, h := range m.history {
		if h.ID != r.ID {
			older = append(older, h)
		}
	}
	if len(older) > 0 {
		sb.WriteString("\n " + sectionHeaderStyle.Render("HISTORY") + "\n")
		for _, h := range older {
			when := ""
			if !h.CreatedAt.IsZero() {
				when = h.CreatedAt.Format("Jan 2 2006")
			}
			line := fmt.Sprintf("   %-12s %s  %s", when, normalStyle.Render(formatMinutes(h.TotalMinutesPerSession)),
				dimStyle.Render(strings.Join(h.StyleNames(), ", ")))
			if h.IsOutdated {
				line += "  " + metaStyle.Render("outdated")
			}
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}

// breakdownBar draws the session as a bar split by component.
func (m recommendationsModel) breakdownBar(r *domain.Recommendation) string {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	if width > 60 {
		width = 60
	}
	total := r.TotalMinutesPerSession
	if total <= 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	comps := planComponents(r)
	for i, c := range comps {
		n := c.minutes * width / total
		if i == len(comps)-1 {
			n = width - used
		}
		if n < 0 {
			n = 0
		}
		used += n
		sb.WriteString(lipgloss.NewStyle().Foreground(componentColors[c.key]).Render(strings.Repeat("█", n)))
	}
	return sb.String()
}
