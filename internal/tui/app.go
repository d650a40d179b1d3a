package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/naveenspark/yogapath/internal/browser"
	"github.com/naveenspark/yogapath/internal/route"
	"github.com/naveenspark/yogapath/internal/session"
	"github.com/naveenspark/yogapath/pkg/client"
)

// chrome is the number of lines outside the body:
// header(2) + tabs(1) + status(1) + help(1).
const chrome = 5

// Options configures NewApp.
type Options struct {
	Client  *client.Client
	Session *session.Store
	Logger  *zap.Logger
	Version string
	// WebURL is the web app's base URL for the help overlay links.
	WebURL string
	// Start is the first screen. Empty means the dashboard for a signed-in
	// user and home otherwise.
	Start route.Route
}

// App is the root Bubbletea model.
type App struct {
	client  *client.Client
	store   *session.Store
	logger  *zap.Logger
	version string
	links   []helpItem

	route     route.Route
	pending   route.Route
	checking  bool // waiting for the session before resolving pending
	autoStart bool
	seq       int // bumped on every mount
	startCmd  tea.Cmd

	home      homeModel
	auth      authModel
	dashboard dashboardModel
	profile   profileModel
	recs      recommendationsModel
	practice  practiceLogModel

	helpOpen   bool
	helpCursor int
	status     string
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates the TUI application and resolves its first screen.
func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	a := App{
		client:  opts.Client,
		store:   opts.Session,
		logger:  logger.Named("tui"),
		version: opts.Version,
		links:   helpItems(opts.WebURL),
		route:   route.Home,
		home:    newHomeModel(opts.Session),
	}
	if opts.Start == "" {
		a.autoStart = true
		a.checking = true
		return a
	}
	a, a.startCmd = a.navigate(opts.Start)
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.initSession(), a.startCmd)
}

// initSession restores the session off the UI goroutine.
func (a App) initSession() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		return sessionReadyMsg{state: store.Initialize(context.Background())}
	}
}

// navigate runs the route guard for to and mounts the resulting screen.
func (a App) navigate(to route.Route) (App, tea.Cmd) {
	d := route.Resolve(to, a.store.State())
	a.logger.Debug("navigate",
		zap.String("to", to.String()),
		zap.String("decision", d.Status.String()),
		zap.String("target", d.Target.String()))
	switch d.Status {
	case route.Checking:
		a.checking = true
		a.pending = to
		return a, nil
	case route.Redirect:
		a.status = "Please sign in to continue"
	}
	a.checking = false
	a.pending = ""
	return a.mount(d.Target)
}

// mount builds a fresh model for r. Each mount gets a new sequence number so
// results addressed to the previous screen are ignored.
func (a App) mount(r route.Route) (App, tea.Cmd) {
	a.seq++
	a.route = r
	size := tea.WindowSizeMsg{Width: a.width, Height: a.height - chrome}

	var cmd tea.Cmd
	switch r {
	case route.Login, route.Register:
		a.auth = newAuthModel(a.store, r == route.Register)
		a.auth, _ = a.auth.Update(size)
	case route.Dashboard:
		a.dashboard = newDashboardModel(a.client, a.store)
		a.dashboard, _ = a.dashboard.Update(size)
		cmd = a.dashboard.Init()
	case route.Profile:
		a.profile = newProfileModel(a.client, a.store)
		a.profile, _ = a.profile.Update(size)
		cmd = a.profile.Init()
	case route.Recommendations:
		a.recs = newRecommendationsModel(a.client, a.store)
		a.recs, _ = a.recs.Update(size)
		cmd = a.recs.Init()
	case route.PracticeLog:
		a.practice = newPracticeLogModel(a.client, a.store)
		a.practice, _ = a.practice.Update(size)
		cmd = a.practice.Init()
	default:
		a.route = route.Home
		a.home = newHomeModel(a.store)
		a.home, _ = a.home.Update(size)
	}
	return a, tagCmd(a.seq, cmd)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.updateView(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - chrome})

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionReadyMsg:
		if !a.checking {
			return a, nil
		}
		target := a.pending
		if a.autoStart {
			a.autoStart = false
			target = route.Home
			if msg.state.IsAuthenticated() {
				target = route.Dashboard
			}
		}
		return a.navigate(target)

	case navigateMsg:
		return a.navigate(msg.to)

	case viewMsg:
		if msg.seq != a.seq {
			a.logger.Debug("dropped stale view result", zap.Int("seq", msg.seq), zap.Int("current", a.seq))
			return a, nil
		}
		if nav, ok := msg.msg.(navigateMsg); ok {
			a.status = ""
			return a.navigate(nav.to)
		}
		if f, ok := msg.msg.(apiFailure); ok && client.IsUnauthorized(f.failure()) {
			a.logger.Warn("session rejected by backend", zap.Error(f.failure()))
			a.store.Logout()
			var cmd tea.Cmd
			a, cmd = a.navigate(route.Login)
			a.status = "Your session has expired. Please sign in again."
			return a, cmd
		}
		return a.updateView(msg.msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(a.links)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				if a.helpCursor < len(a.links) {
					url := a.links[a.helpCursor].url
					if err := browser.Open(url); err != nil {
						a.logger.Warn("open browser", zap.String("url", url), zap.Error(err))
					}
				}
			}
			return a, nil
		}

		if a.checking {
			if msg.String() == "q" {
				return a, tea.Quit
			}
			return a, nil
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "?":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "0":
				return a.switchTo(route.Home)
			case "1":
				return a.switchTo(route.Dashboard)
			case "2":
				return a.switchTo(route.Profile)
			case "3":
				return a.switchTo(route.Recommendations)
			case "4":
				return a.switchTo(route.PracticeLog)
			case "o":
				if a.store.State().IsAuthenticated() {
					a.store.Logout()
					var cmd tea.Cmd
					a, cmd = a.navigate(route.Home)
					a.status = "Signed out"
					return a, cmd
				}
			}
		}
		a.status = ""
	}

	return a.updateView(msg)
}

// switchTo navigates unless r is already showing.
func (a App) switchTo(r route.Route) (App, tea.Cmd) {
	if a.route == r {
		return a, nil
	}
	a.status = ""
	return a.navigate(r)
}

// updateView forwards msg to the current screen and tags what it returns.
func (a App) updateView(msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.route {
	case route.Login, route.Register:
		a.auth, cmd = a.auth.Update(msg)
	case route.Dashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case route.Profile:
		a.profile, cmd = a.profile.Update(msg)
	case route.Recommendations:
		a.recs, cmd = a.recs.Update(msg)
	case route.PracticeLog:
		a.practice, cmd = a.practice.Update(msg)
	default:
		a.home, cmd = a.home.Update(msg)
	}
	return a, tagCmd(a.seq, cmd)
}

func (a App) isEditing() bool {
	switch a.route {
	case route.Login, route.Register:
		return true
	case route.Profile:
		return a.profile.isEditing()
	case route.PracticeLog:
		return a.practice.state != plNormal
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)
	header := center(logo, a.width) + "\n"
	if st := a.store.State(); st.User != nil {
		header += center(metaStyle.Render("Hello, ")+normalStyle.Render(st.User.Name), a.width)
	}

	// Tab bar: 0 Home  1 Dashboard  2 Profile  3 Plans  4 Practice
	type tabEntry struct {
		key  string
		name string
		r    route.Route
	}
	tabs := []tabEntry{
		{"0", "Home", route.Home},
		{"1", "Dashboard", route.Dashboard},
		{"2", "Profile", route.Profile},
		{"3", "Plans", route.Recommendations},
		{"4", "Practice", route.PracticeLog},
	}
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		active := t.r == a.route ||
			(t.r == route.Home && (a.route == route.Login || a.route == route.Register))
		var label string
		if active {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	nav := helpEntry("0-4", "tabs")
	switch {
	case a.checking:
		body = "\n " + dimStyle.Render("checking authentication...")
		help = " " + helpEntry("q", "quit")
	case a.route == route.Login || a.route == route.Register:
		body = a.auth.View()
		help = " " + a.auth.helpKeys()
	case a.route == route.Dashboard:
		body = a.dashboard.View()
		help = " " + nav + "  " + a.dashboard.helpKeys() + "  " + helpEntry("o", "sign out") + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
	case a.route == route.Profile:
		body = a.profile.View()
		help = " " + a.profile.helpKeys()
		if !a.profile.isEditing() {
			help = " " + nav + "  " + help
		}
	case a.route == route.Recommendations:
		body = a.recs.View()
		help = " " + nav + "  " + a.recs.helpKeys()
	case a.route == route.PracticeLog:
		body = a.practice.View()
		help = " " + a.practice.helpKeys()
		if a.practice.state == plNormal {
			help = " " + nav + "  " + help
		}
	default:
		body = a.home.View()
		help = " " + nav + "  " + a.home.helpKeys() + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
	}

	// Help overlay
	if a.helpOpen {
		body = helpView(a.links, a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	statusLine := ""
	if a.status != "" {
		statusLine = " " + warnStyle.Render(a.status)
	} else if a.version != "" {
		statusLine = " " + metaStyle.Render("v"+a.version)
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabBar.String(), body, statusLine, help)
}

// center pads s so it sits in the middle of width columns.
func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
