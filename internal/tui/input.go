package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case "space":
		key = " "
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// editDigits is editRune restricted to digits, for numeric fields.
func editDigits(text string, key string) string {
	if key == "backspace" {
		return editRune(text, key)
	}
	r, size := utf8.DecodeRuneInString(key)
	if size != len(key) || !unicode.IsDigit(r) || len(text) >= 4 {
		return text
	}
	return text + key
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderInput renders one labeled form line with a cursor when focused and
// the field's error beneath it.
func renderInput(label, value, placeholder, errMsg string, focused, masked bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	var line string
	if focused {
		line = "   " + accentStyle.Render(">") + " " + inputPromptStyle.Render(label+":") + " " + shown + accentStyle.Render("_")
	} else {
		if shown == "" {
			shown = inputPlaceholderStyle.Render(placeholder)
		} else {
			shown = dimStyle.Render(shown)
		}
		line = "     " + inputPromptStyle.Render(label+":") + " " + shown
	}
	if errMsg != "" {
		line += "\n       " + errorStyle.Render(errMsg)
	}
	return line + "\n"
}
