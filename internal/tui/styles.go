package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "YOGA PATH" as a slow sunrise wave, deep clay
// (#3a2414) to saffron (#f5a524).
func renderShimmerLogo(frame int) string {
	const text = "YOGAPATH"
	n := len(text)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// A breath: slower than a flicker, one wave per cycle.
		phase := t*0.06 - x*2.5
		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.4)
		b = b*0.8 + math.Sin(t*0.02)*0.1 + 0.15
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(58 + b*(245-58))
		g := clampByte(36 + b*(165-36))
		bl := clampByte(20 + b*(36-20))
		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(text[i])))
		switch {
		case i == 3:
			out.WriteString("     ") // word gap between YOGA and PATH
		case i < n-1:
			out.WriteString("  ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles: warm neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9a9088"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f2ece4")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cfc6bc"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#625a52"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9a9088"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#625a52"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f5a524"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f5a524")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7cc47f"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d9665b"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e8c35a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7a7067"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f5a524")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4a433c"))

	// Practice component colors, used by the plan breakdown bar.
	componentColors = map[string]lipgloss.Color{
		"asana":      lipgloss.Color("#f5a524"),
		"pranayama":  lipgloss.Color("#5fb3c9"),
		"meditation": lipgloss.Color("#a48be0"),
		"relaxation": lipgloss.Color("#7cc47f"),
		"mantra":     lipgloss.Color("#e07a9b"),
	}
)

// ComponentStyle returns a bold style colored for a practice component.
func ComponentStyle(name string) lipgloss.Style {
	if c, ok := componentColors[name]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#9a9088")).Bold(true)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries given as key, label pairs.
func helpBar(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

// helpItems returns the overlay links for the web app at webURL.
func helpItems(webURL string) []helpItem {
	base := strings.TrimRight(webURL, "/")
	if base == "" {
		return nil
	}
	return []helpItem{
		{"Website", base, base},
		{"Dashboard", base + "/dashboard", base + "/dashboard"},
		{"Profile", base + "/profile", base + "/profile"},
		{"Practice log", base + "/practice-log", base + "/practice-log"},
	}
}

// helpView renders the interactive help overlay with a cursor.
func helpView(items []helpItem, cursor int) string {
	title := titleStyle.Render("Y O G A   P A T H")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Practice, and all is coming."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	keys := []struct{ key, desc string }{
		{"0", "Home"},
		{"1", "Dashboard"},
		{"2", "Profile"},
		{"3", "Recommendations"},
		{"4", "Practice log"},
		{"o", "Sign out"},
		{"?", "Toggle this help"},
		{"q / ctrl+c", "Quit"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, quote)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-12s", k.key)), descStyle.Render(k.desc))
	}

	if len(items) > 0 {
		fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Open on the web (enter)"))
		for i, item := range items {
			label := cmdStyle.Render(fmt.Sprintf("%-14s", item.label))
			prefix := "    "
			if i == cursor {
				label = accentStyle.Bold(true).Render(fmt.Sprintf("%-14s", item.label))
				prefix = "  > "
			}
			fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
		}
	}
	return b.String()
}
