package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/yogapath/internal/browser"
	"github.com/naveenspark/yogapath/internal/config"
	"github.com/naveenspark/yogapath/internal/logging"
	"github.com/naveenspark/yogapath/internal/route"
	"github.com/naveenspark/yogapath/internal/session"
	"github.com/naveenspark/yogapath/internal/tui"
	"github.com/naveenspark/yogapath/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// command is what the arguments asked for. start is only meaningful for
// cmdTUI; an empty start lets the app pick from the session.
type command struct {
	name  string
	start route.Route
}

const (
	cmdTUI     = "tui"
	cmdVersion = "version"
	cmdHelp    = "help"
	cmdWhoami  = "whoami"
	cmdLogout  = "logout"
	cmdWeb     = "web"
)

func parseArgs(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: cmdTUI}, nil
	}
	switch args[0] {
	case "--version", "version", "-v":
		return command{name: cmdVersion}, nil
	case "help", "--help", "-h":
		return command{name: cmdHelp}, nil
	case "whoami":
		return command{name: cmdWhoami}, nil
	case "logout":
		return command{name: cmdLogout}, nil
	case "web":
		return command{name: cmdWeb}, nil
	}
	r, ok := route.Parse(args[0])
	if !ok {
		return command{}, fmt.Errorf("unknown command %q", args[0])
	}
	return command{name: cmdTUI, start: r}, nil
}

func run(args []string) error {
	cmd, err := parseArgs(args)
	if err != nil {
		printHelp(os.Stderr)
		return err
	}
	switch cmd.name {
	case cmdVersion:
		fmt.Println("yogapath " + version)
		return nil
	case cmdHelp:
		printHelp(os.Stdout)
		return nil
	}

	cfg := config.Load()
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best effort on exit

	tokens := session.NewFileTokens(cfg.TokenFile)
	c := client.New(cfg.APIURL, tokens,
		client.WithLogger(logger),
		client.WithTimeout(cfg.HTTPTimeout),
	)
	store := session.New(c, tokens, logger)

	switch cmd.name {
	case cmdWhoami:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		defer cancel()
		return runWhoami(ctx, os.Stdout, store, time.Now())
	case cmdLogout:
		store.Logout()
		printFarewell(os.Stdout)
		return nil
	case cmdWeb:
		return openWeb(cfg.WebURL)
	}

	logger.Info("starting", zap.String("version", version), zap.String("api", cfg.APIURL), zap.String("start", cmd.start.String()))
	app := tui.NewApp(tui.Options{
		Client:  c,
		Session: store,
		Logger:  logger,
		Version: version,
		WebURL:  cfg.WebURL,
		Start:   cmd.start,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runWhoami verifies the stored token and prints who it belongs to.
func runWhoami(ctx context.Context, w io.Writer, store *session.Store, now time.Time) error {
	st := store.Initialize(ctx)
	if !st.IsAuthenticated() {
		fmt.Fprintln(w, "Not signed in. To sign in: yogapath login")
		return nil
	}
	u := st.User
	fmt.Fprintf(w, "%s <%s>\n", u.Name, u.Email)
	if exp, ok := store.ExpiresAt(); ok {
		if exp.After(now) {
			fmt.Fprintf(w, "session expires %s (in %s)\n", exp.Local().Format("Jan 2 15:04"), exp.Sub(now).Round(time.Minute))
		} else {
			fmt.Fprintf(w, "session expired %s\n", exp.Local().Format("Jan 2 15:04"))
		}
	}
	return nil
}

// openWeb opens the web app, printing the URL when no browser is available.
func openWeb(url string) error {
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}
