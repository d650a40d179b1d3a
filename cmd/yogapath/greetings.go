package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var farewells = [...]string{
	"Roll up the mat. The practice stays with you.",
	"Rest is part of the practice too.",
	"Breathe out. You can come back any time.",
	"The body remembers what the mind forgets.",
	"A short practice done is better than a long one planned.",
	"Stillness is also a pose.",
	"Drink some water. Your spine will thank you.",
	"Every sunrise is another chance to unroll the mat.",
}

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	quoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func printHelp(w io.Writer) {
	title := bannerStyle.Render("Y O G A P A T H")
	quote := quoteStyle.Render(`"Yoga is the journey of the self, through the self, to the self."`)
	attrib := lipgloss.NewStyle().Foreground(lipgloss.Color("#FB7185")).Render("Bhagavad Gita")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	commands := []struct{ cmd, desc string }{
		{"yogapath", "Open the app (dashboard when signed in)"},
		{"yogapath login", "Sign in"},
		{"yogapath register", "Create an account"},
		{"yogapath dashboard", "Open a screen directly"},
		{"yogapath profile", "Edit preferences and goals"},
		{"yogapath recommendations", "See your practice plan"},
		{"yogapath practice-log", "Log and review sessions"},
		{"yogapath whoami", "Show the signed-in account"},
		{"yogapath logout", "Clear your session"},
		{"yogapath web", "Open the web app"},
		{"yogapath --version", "Show version"},
		{"yogapath help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  %s\n  %s\n\n  Commands:\n", title, quote, attrib)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-26s", c.cmd)), mutedStyle.Render(c.desc))
	}
	fmt.Fprintf(w, "\n  %s\n\n", mutedStyle.Render("Set YOGAPATH_API_URL to point at another backend."))
}

func printFarewell(w io.Writer) {
	msg := farewells[rand.Intn(len(farewells))]
	fmt.Fprintf(w, "\n%s\n\n%s\n\n%s\n\n",
		bannerStyle.Render("Signed out"),
		quoteStyle.Render(msg),
		mutedStyle.Render("To sign in again: yogapath login"))
}
