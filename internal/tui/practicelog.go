package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/yogapath/internal/form"
	"github.com/naveenspark/yogapath/internal/session"
	"github.com/naveenspark/yogapath/pkg/client"
	"github.com/naveenspark/yogapath/pkg/domain"
)

// practiceState tracks the practice log's add/edit/delete mode.
type practiceState int

const (
	plNormal   practiceState = iota
	plAdding                 // inline form for a new entry
	plEditing                // inline form for the selected entry
	plDeleting               // delete confirmation
)

// practiceFilter narrows the list to a trailing window of days.
type practiceFilter int

const (
	filterAll practiceFilter = iota
	filterWeek
	filterMonth
)

func (f practiceFilter) String() string {
	switch f {
	case filterWeek:
		return "last 7 days"
	case filterMonth:
		return "last 30 days"
	}
	return "all time"
}

// days is the window length including today, or 0 for no window.
func (f practiceFilter) days() int {
	switch f {
	case filterWeek:
		return 7
	case filterMonth:
		return 30
	}
	return 0
}

type logsLoadedMsg struct {
	apiResult
	logs []domain.PracticeLog
}

type logSavedMsg struct {
	apiResult
	log     *domain.PracticeLog
	created bool
}

type logDeletedMsg struct {
	apiResult
	id int64
}

var practiceFields = []string{form.FieldDate, form.FieldMinutes, form.FieldNotes}

type practiceLogModel struct {
	client  *client.Client
	store   *session.Store
	logs    []domain.PracticeLog
	cursor  int
	filter  practiceFilter
	loading bool
	err     string
	now     func() time.Time

	state     practiceState
	form      form.PracticeLog
	focus     int
	submitted bool
	saving    bool
	deleting  bool
	editID    int64
	status    string
	statusOK  bool

	width  int
	height int
}

func newPracticeLogModel(c *client.Client, s *session.Store) practiceLogModel {
	return practiceLogModel{client: c, store: s, loading: true, now: time.Now}
}

func (m practiceLogModel) Init() tea.Cmd {
	return m.load()
}

func (m practiceLogModel) load() tea.Cmd {
	c := m.client
	userID := currentUserID(m.store)
	days := m.filter.days()
	end := domain.NewDate(m.now())
	start := domain.NewDate(end.AddDate(0, 0, -(days - 1)))
	return func() tea.Msg {
		var logs []domain.PracticeLog
		var err error
		if days == 0 {
			logs, err = c.ListPracticeLogs(context.Background(), userID)
		} else {
			logs, err = c.ListPracticeLogsInRange(context.Background(), userID, start, end)
		}
		return logsLoadedMsg{apiResult: apiResult{err: err}, logs: logs}
	}
}

func (m practiceLogModel) Update(msg tea.Msg) (practiceLogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case logsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "Failed to load practice logs"
			return m, nil
		}
		m.err = ""
		m.logs = msg.logs
		if m.cursor >= len(m.logs) {
			m.cursor = max(len(m.logs)-1, 0)
		}
		return m, nil

	case logSavedMsg:
		m.saving = false
		if msg.err != nil || msg.log == nil {
			m.status = "Failed to save practice log"
			m.statusOK = false
			return m, nil
		}
		m.state = plNormal
		m.submitted = false
		m.statusOK = true
		if msg.created {
			m.status = "Practice session logged"
		} else {
			m.status = "Practice log updated"
		}
		// Re-fetch so the list keeps the server's order and filter.
		m.loading = true
		return m, m.load()

	case logDeletedMsg:
		m.state = plNormal
		m.deleting = false
		if msg.err != nil {
			m.status = "Failed to delete practice log"
			m.statusOK = false
			return m, nil
		}
		kept := make([]domain.PracticeLog, 0, len(m.logs))
		for _, l := range m.logs {
			if l.ID != msg.id {
				kept = append(kept, l)
			}
		}
		m.logs = kept
		if m.cursor >= len(m.logs) && m.cursor > 0 {
			m.cursor--
		}
		m.status = "Practice log deleted"
		m.statusOK = true
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case plAdding, plEditing:
			return m.updateForm(msg)
		case plDeleting:
			return m.updateDeleting(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m practiceLogModel) updateNormal(msg tea.KeyMsg) (practiceLogModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.logs)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.state = plAdding
		m.form = form.NewPracticeLog(m.now())
		m.focus = 0
		m.submitted = false
		m.status = ""
	case "e":
		if len(m.logs) == 0 {
			return m, nil
		}
		l := m.logs[m.cursor]
		m.state = plEditing
		m.editID = l.ID
		m.form = form.EditPracticeLog(l)
		m.focus = 0
		m.submitted = false
		m.status = ""
	case "d":
		if len(m.logs) == 0 {
			return m, nil
		}
		m.state = plDeleting
		m.status = ""
	case "f":
		m.filter = (m.filter + 1) % 3
		m.loading = true
		m.cursor = 0
		return m, m.load()
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

// updateDeleting asks for confirmation. Only y sends the delete, and keys are
// ignored until its result arrives.
func (m practiceLogModel) updateDeleting(msg tea.KeyMsg) (practiceLogModel, tea.Cmd) {
	if m.deleting {
		return m, nil
	}
	switch msg.String() {
	case "y", "Y":
		if m.cursor >= len(m.logs) {
			m.state = plNormal
			return m, nil
		}
		m.deleting = true
		c := m.client
		id := m.logs[m.cursor].ID
		return m, func() tea.Msg {
			err := c.DeletePracticeLog(context.Background(), id)
			return logDeletedMsg{apiResult: apiResult{err: err}, id: id}
		}
	case "n", "N", "esc":
		m.state = plNormal
	}
	return m, nil
}

func (m practiceLogModel) updateForm(msg tea.KeyMsg) (practiceLogModel, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.state = plNormal
		m.submitted = false
		return m, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % len(practiceFields)
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(practiceFields)) % len(practiceFields)
		return m, nil
	case "enter":
		if m.focus < len(practiceFields)-1 {
			m.focus++
			return m, nil
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	}

	field := practiceFields[m.focus]
	cur := m.form.Value(field)
	if field == form.FieldMinutes {
		m.form = m.form.Set(field, editDigits(cur, key))
	} else {
		m.form = m.form.Set(field, editRune(cur, key))
	}
	return m, nil
}

// submit validates and sends a create or update. An invalid form shows its
// errors and sends nothing.
func (m practiceLogModel) submit() (practiceLogModel, tea.Cmd) {
	m.submitted = true
	if m.saving || !m.form.Validate().OK() {
		return m, nil
	}
	m.saving = true
	c := m.client
	req := m.form.Request(currentUserID(m.store))
	if m.state == plEditing {
		id := m.editID
		return m, func() tea.Msg {
			l, err := c.UpdatePracticeLog(context.Background(), id, req)
			return logSavedMsg{apiResult: apiResult{err: err}, log: l}
		}
	}
	return m, func() tea.Msg {
		l, err := c.CreatePracticeLog(context.Background(), req)
		return logSavedMsg{apiResult: apiResult{err: err}, log: l, created: true}
	}
}

func (m practiceLogModel) helpKeys() string {
	switch m.state {
	case plAdding, plEditing:
		return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	case plDeleting:
		if m.deleting {
			return dimStyle.Render("deleting...")
		}
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	}
	return helpBar("j/k", "nav", "a", "add", "e", "edit", "d", "delete", "f", "filter", "?", "help")
}

func (m practiceLogModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n " + titleStyle.Render("Practice Log") + "  " + metaStyle.Render(m.filter.String()) + "\n")
	if m.status != "" {
		style := errorStyle
		if m.statusOK {
			style = successStyle
		}
		sb.WriteString(" " + style.Render(m.status) + "\n")
	}
	sb.WriteString("\n")

	if m.state == plAdding || m.state == plEditing {
		sb.WriteString(m.formView())
		sb.WriteString("\n")
	}

	switch {
	case m.loading && len(m.logs) == 0:
		sb.WriteString(" " + dimStyle.Render("loading practice logs...") + "\n")
		return sb.String()
	case m.err != "":
		sb.WriteString(" " + errorStyle.Render(m.err) + "\n")
		return sb.String()
	case len(m.logs) == 0:
		sb.WriteString(" " + dimStyle.Render("No practice sessions logged yet. Press a to add one.") + "\n")
		return sb.String()
	}

	total := domain.TotalMinutes(m.logs)
	sb.WriteString(" " + sectionHeaderStyle.Render("TOTAL") + "  " +
		accentStyle.Render(formatMinutes(total)) + dimStyle.Render(fmt.Sprintf(" across %d sessions", len(m.logs))) + "\n\n")

	for i, l := range m.logs {
		date := l.PracticeDate.Format("Mon Jan 2 2006")
		mins := fmt.Sprintf("%3d min", l.MinutesPracticed)
		notes := truncStr(strings.ReplaceAll(l.Notes, "\n", " "), 40)
		var line string
		if i == m.cursor {
			line = " " + accentStyle.Render(">") + " " + selectedStyle.Render(fmt.Sprintf("%-16s", date)) + " " + selectedStyle.Render(mins) + "  " + normalStyle.Render(notes)
		} else {
			line = "   " + normalStyle.Render(fmt.Sprintf("%-16s", date)) + " " + dimStyle.Render(mins) + "  " + dimStyle.Render(notes)
		}
		sb.WriteString(line + "\n")

		// Delete confirmation on selected row
		if i == m.cursor && m.state == plDeleting {
			sb.WriteString("     " + warnStyle.Render("Delete this practice log? (y/n)") + "\n")
		}
	}
	return sb.String()
}

func (m practiceLogModel) formView() string {
	var sb strings.Builder
	title := "LOG A SESSION"
	if m.state == plEditing {
		title = "EDIT SESSION"
	}
	sb.WriteString(" " + sectionHeaderStyle.Render(title) + "\n")

	var errs form.Errors
	if m.submitted {
		errs = m.form.Validate()
	}
	labels := map[string]string{
		form.FieldDate:    "Date",
		form.FieldMinutes: "Minutes",
		form.FieldNotes:   "Notes",
	}
	placeholders := map[string]string{
		form.FieldDate:    "YYYY-MM-DD",
		form.FieldMinutes: "1-300",
		form.FieldNotes:   "How did it feel?",
	}
	for i, f := range practiceFields {
		sb.WriteString(renderInput(labels[f], m.form.Value(f), placeholders[f], errs.Get(f), i == m.focus, false))
	}
	if m.saving {
		sb.WriteString(" " + dimStyle.Render("saving...") + "\n")
	}
	return sb.String()
}
