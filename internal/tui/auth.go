package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/yogapath/internal/form"
	"github.com/naveenspark/yogapath/internal/route"
	"github.com/naveenspark/yogapath/internal/session"
	"github.com/naveenspark/yogapath/pkg/domain"
)

// authResultMsg is the outcome of a sign-in or sign-up. It does not carry
// apiResult: a 401 here means bad credentials, not an expired session.
type authResultMsg struct {
	user domain.Identity
	err  error
}

// authModel is the sign-in and sign-up screen. Both share focus handling and
// inline validation; register adds the name field.
type authModel struct {
	store      *session.Store
	register   bool
	login      form.Login
	signup     form.Register
	focus      int
	touched    map[string]bool
	submitted  bool
	submitting bool
	err        string
	width      int
	height     int
}

func newAuthModel(s *session.Store, register bool) authModel {
	return authModel{store: s, register: register, touched: map[string]bool{}}
}

func (m authModel) fields() []string {
	if m.register {
		return []string{form.FieldName, form.FieldEmail, form.FieldPassword}
	}
	return []string{form.FieldEmail, form.FieldPassword}
}

func (m authModel) value(field string) string {
	if m.register {
		return m.signup.Value(field)
	}
	return m.login.Value(field)
}

func (m authModel) set(field, v string) authModel {
	if m.register {
		m.signup = m.signup.Set(field, v)
	} else {
		m.login = m.login.Set(field, v)
	}
	return m
}

func (m authModel) validate() form.Errors {
	if m.register {
		return m.signup.Validate()
	}
	return m.login.Validate()
}

// fieldError is shown once the field was edited or a submit was attempted.
func (m authModel) fieldError(errs form.Errors, field string) string {
	if m.submitted || m.touched[field] {
		return errs.Get(field)
	}
	return ""
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			if m.register {
				m.err = "Registration failed. Email may already exist."
			} else {
				m.err = "Invalid email or password"
			}
			return m, nil
		}
		m.err = ""
		return m, navigate(route.Dashboard)

	case tea.KeyMsg:
		fields := m.fields()
		switch msg.String() {
		case "esc":
			return m, navigate(route.Home)
		case "ctrl+r":
			if !m.register {
				return m, navigate(route.Register)
			}
			return m, nil
		case "ctrl+l":
			if m.register {
				return m, navigate(route.Login)
			}
			return m, nil
		case "tab", "down":
			m.focus = (m.focus + 1) % len(fields)
			return m, nil
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + len(fields)) % len(fields)
			return m, nil
		case "enter":
			if m.focus < len(fields)-1 {
				m.focus++
				return m, nil
			}
			return m.submit()
		case "ctrl+s":
			return m.submit()
		}
		field := fields[m.focus]
		next := editRune(m.value(field), msg.String())
		if next != m.value(field) {
			m = m.set(field, next)
			m.touched[field] = true
			m.err = ""
		}
	}
	return m, nil
}

// submit validates and, only when the form is clean, sends the request.
func (m authModel) submit() (authModel, tea.Cmd) {
	m.submitted = true
	if m.submitting || !m.validate().OK() {
		return m, nil
	}
	m.submitting = true
	m.err = ""
	store := m.store
	if m.register {
		req := m.signup.Request()
		return m, func() tea.Msg {
			user, err := store.Register(context.Background(), req)
			return authResultMsg{user: user, err: err}
		}
	}
	req := m.login.Request()
	return m, func() tea.Msg {
		user, err := store.Login(context.Background(), req)
		return authResultMsg{user: user, err: err}
	}
}

func (m authModel) helpKeys() string {
	other := helpEntry("ctrl+r", "create account")
	if m.register {
		other = helpEntry("ctrl+l", "sign in")
	}
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + other + "  " + helpEntry("esc", "back")
}

var fieldLabels = map[string]string{
	form.FieldName:     "Name",
	form.FieldEmail:    "Email",
	form.FieldPassword: "Password",
}

var fieldPlaceholders = map[string]string{
	form.FieldName:     "Your name",
	form.FieldEmail:    "you@example.com",
	form.FieldPassword: "at least 6 characters",
}

func (m authModel) View() string {
	var sb strings.Builder
	title := "Sign in to Yoga Path"
	if m.register {
		title = "Create your account"
	}
	sb.WriteString("\n " + titleStyle.Render(title) + "\n\n")

	errs := m.validate()
	for i, f := range m.fields() {
		sb.WriteString(renderInput(fieldLabels[f], m.value(f), fieldPlaceholders[f],
			m.fieldError(errs, f), i == m.focus, f == form.FieldPassword))
	}
	sb.WriteString("\n")

	switch {
	case m.submitting && m.register:
		sb.WriteString(" " + dimStyle.Render("creating account...") + "\n")
	case m.submitting:
		sb.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	case m.err != "":
		sb.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}

	if m.register {
		sb.WriteString("\n " + dimStyle.Render("Already have an account? ") + helpEntry("ctrl+l", "sign in") + "\n")
	} else {
		sb.WriteString("\n " + dimStyle.Render("New here? ") + helpEntry("ctrl+r", "create an account") + "\n")
	}
	return sb.String()
}
