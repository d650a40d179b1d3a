package tui

import (
	"strings"
	"testing"
)

func TestComponentStyleKnownComponent(t *testing.T) {
	for _, name := range []string{"asana", "pranayama", "meditation", "relaxation", "mantra"} {
		t.Run(name, func(t *testing.T) {
			rendered := ComponentStyle(name).Render(name)
			if !strings.Contains(rendered, name) {
				t.Errorf("ComponentStyle(%q).Render(%q) = %q, want to contain %q", name, name, rendered, name)
			}
		})
	}
}

func TestComponentStyleUnknownFallback(t *testing.T) {
	rendered := ComponentStyle("nonexistent-xyz").Render("nonexistent-xyz")
	if !strings.Contains(rendered, "nonexistent-xyz") {
		t.Errorf("ComponentStyle fallback did not render text: %q", rendered)
	}
}

func TestHelpEntryFormat(t *testing.T) {
	result := helpEntry("q", "quit")
	if !strings.Contains(result, "q") {
		t.Errorf("helpEntry('q','quit') does not contain key 'q': %q", result)
	}
	if !strings.Contains(result, "quit") {
		t.Errorf("helpEntry('q','quit') does not contain label 'quit': %q", result)
	}
}

func TestHelpBarPairs(t *testing.T) {
	bar := helpBar("a", "add", "d", "delete")
	for _, want := range []string{"a", "add", "d", "delete"} {
		if !strings.Contains(bar, want) {
			t.Errorf("helpBar missing %q: %q", want, bar)
		}
	}
}

func TestShimmerLogoSpellsName(t *testing.T) {
	for _, frame := range []int{0, 7, 500} {
		logo := renderShimmerLogo(frame)
		for _, r := range "YOGAPATH" {
			if !strings.ContainsRune(logo, r) {
				t.Errorf("frame %d: logo missing %q", frame, r)
			}
		}
	}
}

func TestHelpItemsFromWebURL(t *testing.T) {
	items := helpItems("http://localhost:3000/")
	if len(items) == 0 {
		t.Fatal("expected links for a configured web URL")
	}
	if items[0].url != "http://localhost:3000" {
		t.Errorf("first link = %q, want base URL without trailing slash", items[0].url)
	}
	if helpItems("") != nil {
		t.Error("expected no links without a web URL")
	}
}

func TestHelpViewMarksCursor(t *testing.T) {
	items := helpItems("http://localhost:3000")
	out := helpView(items, 1)
	if !strings.Contains(out, "> ") {
		t.Errorf("help view should mark the selected link: %q", out)
	}
	if !strings.Contains(out, "Practice log") {
		t.Errorf("help view should list keys and links: %q", out)
	}
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"NO_PREFERENCE": "No preference",
		"DYNAMIC":       "Dynamic",
		"NOT_OPEN":      "Not open",
		"":              "",
	}
	for in, want := range tests {
		if got := humanize(in); got != want {
			t.Errorf("humanize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{45, "45 min"},
		{60, "1h"},
		{90, "1h 30m"},
	}
	for _, tc := range tests {
		if got := formatMinutes(tc.in); got != tc.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"under limit", "hello", 10, "hello"},
		{"at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hell…"},
		{"multi-byte at boundary", "cafés are nice", 5, "café…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncStr(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("truncStr(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}
