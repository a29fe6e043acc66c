package tui

import "strings"

const maxInputLen = 2000

// editRune applies a key event to a plain string being edited.
// Handles backspace, space, printable runes, and pasted chunks.
// Named keys ("enter", "ctrl+c", ...) are ignored.
func editRune(s string, key string) string {
	switch key {
	case "backspace":
		if s == "" {
			return s
		}
		r := []rune(s)
		return string(r[:len(r)-1])
	case " ", "space":
		if len([]rune(s)) < maxInputLen {
			return s + " "
		}
		return s
	default:
		if isNamedKey(key) {
			return s
		}
		have := len([]rune(s))
		room := maxInputLen - have
		if room <= 0 {
			return s
		}
		in := []rune(key)
		if len(in) > room {
			in = in[:room]
		}
		return s + string(in)
	}
}

// namedKeys are the Bubbletea special-key names that reach editRune as
// multi-rune strings. Anything else multi-rune is pasted text.
var namedKeys = map[string]bool{
	"enter": true, "esc": true, "tab": true, "backspace": true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
	"delete": true, "insert": true,
}

// isNamedKey reports whether key is a Bubbletea key name rather than
// typed or pasted text. A word like "there" pasted from the clipboard
// must not match, so names are an explicit set plus modifier combos
// ("ctrl+c", "shift+tab") and function keys.
func isNamedKey(key string) bool {
	if namedKeys[key] {
		return true
	}
	if i := strings.IndexByte(key, '+'); i > 0 {
		switch key[:i] {
		case "ctrl", "alt", "shift", "super", "meta":
			return true
		}
	}
	if len(key) >= 2 && len(key) <= 3 && key[0] == 'f' {
		for _, r := range key[1:] {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}

// maskString renders a password as bullets, one per rune.
func maskString(s string) string {
	return strings.Repeat("•", len([]rune(s)))
}

// truncateToHeight keeps at most h lines of s. Non-positive h means
// no limit.
func truncateToHeight(s string, h int) string {
	if h <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= h {
		return s
	}
	return strings.Join(lines[:h], "\n")
}
