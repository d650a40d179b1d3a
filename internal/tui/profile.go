package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/yogapath/internal/form"
	"github.com/naveenspark/yogapath/internal/session"
	"github.com/naveenspark/yogapath/pkg/client"
	"github.com/naveenspark/yogapath/pkg/domain"
)

// profileLoadedMsg carries the profile (nil for a new user) and the goal
// catalogue.
type profileLoadedMsg struct {
	apiResult
	profile *domain.Profile
	goals   []domain.Goal
}

type profileSavedMsg struct {
	apiResult
	profile *domain.Profile
}

type limitationsLoadedMsg struct {
	apiResult
	limitations []domain.Limitation
}

// Profile form focus order; goals follow the fixed fields.
var profileFields = []string{
	form.FieldWeeklyMinutes,
	form.FieldSessionsPerWeek,
	form.FieldDynamic,
	form.FieldStructure,
	form.FieldPhilosophy,
}

type profileModel struct {
	client  *client.Client
	store   *session.Store
	profile *domain.Profile
	goals   []domain.Goal
	loading bool
	err     string

	editing   bool
	form      form.Profile
	focus     int
	submitted bool
	saving    bool
	status    string
	statusOK  bool

	limitsOpen  bool
	limitations []domain.Limitation
	limitsErr   string

	width  int
	height int
}

func newProfileModel(c *client.Client, s *session.Store) profileModel {
	return profileModel{client: c, store: s, loading: true}
}

func (m profileModel) Init() tea.Cmd {
	c := m.client
	userID := currentUserID(m.store)
	return func() tea.Msg {
		ctx := context.Background()
		p, err := c.GetProfileByUser(ctx, userID)
		if err != nil {
			return profileLoadedMsg{apiResult: apiResult{err: err}}
		}
		goals, err := c.ListGoals(ctx)
		return profileLoadedMsg{apiResult: apiResult{err: err}, profile: p, goals: goals}
	}
}

func (m profileModel) isEditing() bool {
	return m.editing || m.limitsOpen
}

func (m profileModel) focusCount() int {
	return len(profileFields) + len(m.goals)
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "Failed to load profile data"
			return m, nil
		}
		m.err = ""
		m.profile = msg.profile
		m.goals = msg.goals
		m.form = form.NewProfile(msg.profile)
		// A new user goes straight to the create form.
		m.editing = msg.profile == nil
		m.focus = 0
		return m, nil

	case profileSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = "Failed to save profile"
			m.statusOK = false
			return m, nil
		}
		m.profile = msg.profile
		m.form = form.NewProfile(msg.profile)
		m.editing = false
		m.submitted = false
		m.status = "Profile saved successfully!"
		m.statusOK = true
		return m, nil

	case limitationsLoadedMsg:
		if msg.err != nil {
			m.limitsErr = "Failed to load limitations"
			return m, nil
		}
		m.limitsErr = ""
		m.limitations = msg.limitations
		if m.limitations == nil {
			m.limitations = []domain.Limitation{}
		}
		return m, nil

	case tea.KeyMsg:
		if m.limitsOpen {
			switch msg.String() {
			case "esc", "L":
				m.limitsOpen = false
			}
			return m, nil
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "e":
			if m.loading || m.err != "" {
				return m, nil
			}
			m.form = form.NewProfile(m.profile)
			m.editing = true
			m.focus = 0
			m.submitted = false
			m.status = ""
			return m, nil
		case "r":
			m.loading = true
			m.status = ""
			return m, m.Init()
		case "L":
			m.limitsOpen = true
			if m.limitations == nil {
				return m, m.loadLimitations()
			}
		}
	}
	return m, nil
}

func (m profileModel) loadLimitations() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		lims, err := c.ListLimitations(context.Background())
		return limitationsLoadedMsg{apiResult: apiResult{err: err}, limitations: lims}
	}
}

func (m profileModel) updateEditing(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.editing = false
		m.submitted = false
		m.form = form.NewProfile(m.profile)
		return m, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % m.focusCount()
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + m.focusCount()) % m.focusCount()
		return m, nil
	case "ctrl+s", "enter":
		return m.save()
	}

	if m.focus >= len(profileFields) {
		if key == " " || key == "space" || key == "x" {
			g := m.goals[m.focus-len(profileFields)]
			m.form = m.form.ToggleGoal(g.ID)
		}
		return m, nil
	}

	switch field := profileFields[m.focus]; field {
	case form.FieldWeeklyMinutes:
		m.form = m.form.Set(field, editDigits(m.form.WeeklyMinutes, key))
	case form.FieldSessionsPerWeek:
		m.form = m.form.Set(field, editDigits(m.form.SessionsPerWeek, key))
	default:
		step := 0
		switch key {
		case "l", "right", " ":
			step = 1
		case "h", "left":
			step = -1
		}
		if step != 0 {
			m.form = m.form.Set(field, cycleOption(field, m.form, step))
		}
	}
	return m, nil
}

// cycleOption returns the option after (or before) the current value of a
// selector field.
func cycleOption(field string, f form.Profile, step int) string {
	var opts []string
	var cur string
	switch field {
	case form.FieldDynamic:
		for _, o := range domain.DynamicPreferences {
			opts = append(opts, string(o))
		}
		cur = string(f.Dynamic)
	case form.FieldStructure:
		for _, o := range domain.StructurePreferences {
			opts = append(opts, string(o))
		}
		cur = string(f.Structure)
	case form.FieldPhilosophy:
		for _, o := range domain.PhilosophyOptions {
			opts = append(opts, string(o))
		}
		cur = string(f.Philosophy)
	}
	if len(opts) == 0 {
		return cur
	}
	idx := 0
	for i, o := range opts {
		if o == cur {
			idx = i
			break
		}
	}
	return opts[(idx+step+len(opts))%len(opts)]
}

// save validates and sends a create or update. Invalid forms send nothing.
func (m profileModel) save() (profileModel, tea.Cmd) {
	m.submitted = true
	if m.saving || !m.form.Validate().OK() {
		return m, nil
	}
	m.saving = true
	m.status = ""
	c := m.client
	req := m.form.Request(currentUserID(m.store))
	existing := m.profile
	return m, func() tea.Msg {
		var p *domain.Profile
		var err error
		if existing == nil {
			p, err = c.CreateProfile(context.Background(), req)
		} else {
			p, err = c.UpdateProfile(context.Background(), existing.ID, req)
		}
		return profileSavedMsg{apiResult: apiResult{err: err}, profile: p}
	}
}

func (m profileModel) helpKeys() string {
	switch {
	case m.limitsOpen:
		return helpEntry("esc", "close")
	case m.editing:
		return helpEntry("tab", "next") + "  " + helpEntry("h/l", "choose") + "  " + helpEntry("space", "toggle goal") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("e", "edit") + "  " + helpEntry("L", "limitations") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("?", "help")
}

func (m profileModel) View() string {
	if m.loading {
		return "\n " + dimStyle.Render("loading profile...")
	}
	if m.err != "" {
		return "\n " + errorStyle.Render(m.err) + "\n\n " + dimStyle.Render("press r to retry")
	}
	if m.limitsOpen {
		return m.limitsView()
	}

	var sb strings.Builder
	title := "Your Practice Profile"
	if m.profile == nil {
		title = "Create Your Practice Profile"
	}
	sb.WriteString("\n " + titleStyle.Render(title) + "\n")
	if m.status != "" {
		style := errorStyle
		if m.statusOK {
			style = successStyle
		}
		sb.WriteString(" " + style.Render(m.status) + "\n")
	}
	sb.WriteString("\n")

	if m.editing {
		sb.WriteString(m.formView())
		return sb.String()
	}
	if m.profile == nil {
		sb.WriteString(" " + dimStyle.Render("No profile yet. Press e to create one.") + "\n")
		return sb.String()
	}

	p := m.profile
	row := func(label, value string) {
		sb.WriteString("   " + metaStyle.Render(fmt.Sprintf("%-22s", label)) + normalStyle.Render(value) + "\n")
	}
	sb.WriteString(" " + sectionHeaderStyle.Render("AVAILABILITY") + "\n")
	row("Weekly minutes", fmt.Sprintf("%d", p.WeeklyMinutesAvailable))
	row("Sessions per week", fmt.Sprintf("%d", p.SessionsPerWeek))
	row("Per session", formatMinutes(p.SessionBudget()))
	sb.WriteString("\n " + sectionHeaderStyle.Render("PREFERENCES") + "\n")
	row("Dynamic preference", humanize(string(p.DynamicPreference)))
	row("Structure preference", humanize(string(p.StructurePreference)))
	row("Philosophy", humanize(string(p.PhilosophyOpenness)))
	sb.WriteString("\n " + sectionHeaderStyle.Render("GOALS") + "\n")
	if len(p.Goals) == 0 {
		sb.WriteString("   " + dimStyle.Render("none selected") + "\n")
	}
	for _, g := range p.Goals {
		sb.WriteString("   " + accentStyle.Render("·") + " " + normalStyle.Render(g.Name) + "\n")
	}
	if !p.UpdatedAt.IsZero() {
		sb.WriteString("\n " + metaStyle.Render("updated "+formatTime(p.UpdatedAt.Time)) + "\n")
	}
	return sb.String()
}

func (m profileModel) formView() string {
	var sb strings.Builder
	var errs form.Errors
	if m.submitted {
		errs = m.form.Validate()
	}

	labels := map[string]string{
		form.FieldWeeklyMinutes:   "Weekly minutes",
		form.FieldSessionsPerWeek: "Sessions per week",
		form.FieldDynamic:         "Dynamic preference",
		form.FieldStructure:       "Structure preference",
		form.FieldPhilosophy:      "Philosophy openness",
	}
	for i, f := range profileFields {
		var value string
		switch f {
		case form.FieldWeeklyMinutes:
			value = m.form.WeeklyMinutes
		case form.FieldSessionsPerWeek:
			value = m.form.SessionsPerWeek
		case form.FieldDynamic:
			value = "< " + humanize(string(m.form.Dynamic)) + " >"
		case form.FieldStructure:
			value = "< " + humanize(string(m.form.Structure)) + " >"
		case form.FieldPhilosophy:
			value = "< " + humanize(string(m.form.Philosophy)) + " >"
		}
		sb.WriteString(renderInput(labels[f], value, "", errs.Get(f), i == m.focus, false))
	}

	sb.WriteString("\n " + sectionHeaderStyle.Render("GOALS") + "\n")
	if len(m.goals) == 0 {
		sb.WriteString("   " + dimStyle.Render("no goals available") + "\n")
	}
	for i, g := range m.goals {
		box := "[ ]"
		if m.form.HasGoal(g.ID) {
			box = accentStyle.Render("[x]")
		}
		name := normalStyle.Render(g.Name)
		prefix := "     "
		if m.focus == len(profileFields)+i {
			prefix = "   " + accentStyle.Render(">") + " "
			name = selectedStyle.Render(g.Name)
		}
		line := prefix + box + " " + name
		if g.Description != "" {
			line += "  " + dimStyle.Render(truncStr(g.Description, 50))
		}
		sb.WriteString(line + "\n")
	}

	if m.saving {
		sb.WriteString("\n " + dimStyle.Render("saving...") + "\n")
	}
	return sb.String()
}

func (m profileModel) limitsView() string {
	var sb strings.Builder
	sb.WriteString("\n " + titleStyle.Render("Physical Limitations") + "\n\n")
	switch {
	case m.limitsErr != "":
		sb.WriteString(" " + errorStyle.Render(m.limitsErr) + "\n")
	case m.limitations == nil:
		sb.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case len(m.limitations) == 0:
		sb.WriteString(" " + dimStyle.Render("none recorded") + "\n")
	}
	for _, l := range m.limitations {
		sb.WriteString("   " + selectedStyle.Render(l.Name) + "\n")
		if l.Description != "" {
			sb.WriteString("     " + dimStyle.Render(l.Description) + "\n")
		}
	}
	sb.WriteString("\n " + metaStyle.Render("Mention any of these to your instructor before class.") + "\n")
	return sb.String()
}
